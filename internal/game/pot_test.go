package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPotContributionsTrackRoundAndHand(t *testing.T) {
	t.Parallel()

	p := NewPot(3)
	p.AddContribution(0, 100)
	p.AddContribution(1, 100)
	p.AddContribution(2, 300)

	assert.Equal(t, uint(500), p.Total)
	assert.Equal(t, uint(300), p.CurrentBet)
	assert.Equal(t, uint(200), p.ToCall(0))
	assert.Equal(t, uint(0), p.ToCall(2))

	p.ResetRound()
	assert.Equal(t, uint(500), p.Total)
	assert.Equal(t, uint(0), p.CurrentBet)
	assert.Equal(t, []uint{0, 0, 0}, p.RoundBets)
	assert.Equal(t, []uint{100, 100, 300}, p.Contributions)

	p.AddContribution(1, 50)
	assert.Equal(t, uint(150), p.Contribution(1))
	assert.Equal(t, uint(50), p.RoundBet(1))

	p.ResetHand()
	assert.Equal(t, uint(0), p.Total)
	assert.Equal(t, []uint{0, 0, 0}, p.Contributions)
}

func TestPotCurrentBetIsLargestRoundBet(t *testing.T) {
	t.Parallel()

	p := NewPot(2)
	p.AddContribution(0, 100)
	p.AddContribution(1, 40)
	assert.Equal(t, uint(100), p.CurrentBet)

	p.AddContribution(1, 60)
	assert.Equal(t, uint(100), p.CurrentBet)
	assert.Equal(t, uint(0), p.ToCall(1))
}

func TestPotIgnoresUnknownSeats(t *testing.T) {
	t.Parallel()

	p := NewPot(1)
	p.AddContribution(5, 100)
	p.AddContribution(-1, 100)

	assert.Equal(t, uint(0), p.Total)
	assert.Equal(t, uint(0), p.ToCall(5))
	assert.Equal(t, uint(0), p.RoundBet(-1))
}

func TestPotAddSeatExtendsLedger(t *testing.T) {
	t.Parallel()

	p := NewPot(0)
	p.AddSeat()
	p.AddSeat()
	p.AddContribution(1, 25)

	assert.Len(t, p.Contributions, 2)
	assert.Equal(t, uint(25), p.Contribution(1))
}

func TestPotCloneIsIndependent(t *testing.T) {
	t.Parallel()

	p := NewPot(2)
	p.AddContribution(0, 10)
	c := p.Clone()
	p.AddContribution(0, 10)

	assert.Equal(t, uint(10), c.Contributions[0])
	assert.Equal(t, uint(20), p.Contributions[0])
}
