package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-table/internal/randutil"
)

func TestNewDeckHasEveryCardOnce(t *testing.T) {
	t.Parallel()

	d := NewDeck(randutil.New(1))
	d.Shuffle()
	require.Equal(t, Size, d.Remaining())

	cards, err := d.Draw(Size)
	require.NoError(t, err)

	seen := make(map[Card]bool, Size)
	for _, c := range cards {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, Size)
	assert.Equal(t, 0, d.Remaining())
}

func TestDrawInsufficientCardsLeavesDeckUntouched(t *testing.T) {
	t.Parallel()

	d := NewDeck(randutil.New(2))
	_, err := d.Draw(50)
	require.NoError(t, err)

	_, err = d.Draw(3)
	require.ErrorIs(t, err, ErrInsufficientCards)
	assert.Equal(t, 2, d.Remaining())

	last, err := d.Draw(2)
	require.NoError(t, err)
	assert.Len(t, last, 2)
}

func TestSameSeedSameOrder(t *testing.T) {
	t.Parallel()

	a := NewDeck(randutil.New(42))
	b := NewDeck(randutil.New(42))
	a.Reset()
	b.Reset()

	ca, err := a.Draw(10)
	require.NoError(t, err)
	cb, err := b.Draw(10)
	require.NoError(t, err)
	assert.Equal(t, ca, cb)
}

func TestStackDrawsInOrder(t *testing.T) {
	t.Parallel()

	d := NewDeck(randutil.New(3))
	d.Stack(MustParseCards("AsKhQd"))

	first, err := d.Draw(1)
	require.NoError(t, err)
	assert.Equal(t, MustParseCards("As"), first)

	rest, err := d.Draw(2)
	require.NoError(t, err)
	assert.Equal(t, MustParseCards("KhQd"), rest)
}
