package game

import (
	"fmt"
	"slices"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
)

// Winner is one seat's share of a completed pot
type Winner struct {
	Seat   int
	Name   string
	Amount uint
	Label  string
}

// finishUncontested ends the hand when every other seat has folded. The
// remaining seat takes the pot without showing its cards.
func (t *Table) finishUncontested(seat int) {
	t.phase = Showdown
	t.turn = -1
	t.award([]int{seat})
}

// showdown ranks every live seat and splits the pot among the best hands
func (t *Table) showdown() error {
	t.phase = Showdown
	t.turn = -1

	live := t.liveSeats()
	if len(live) == 1 {
		t.award(live)
		return nil
	}

	var (
		best    evaluator.Result
		winners []int
	)
	for _, seat := range live {
		s := t.seats[seat]
		cards := make([]deck.Card, 0, len(s.HoleCards)+len(t.board))
		cards = append(cards, s.HoleCards...)
		cards = append(cards, t.board...)

		res, err := t.cfg.evaluator.Evaluate(cards)
		if err != nil {
			return t.abortHand(fmt.Errorf("evaluate seat %d: %w", seat, err))
		}
		t.labels[seat] = res.Label

		switch cmp := res.Compare(best); {
		case winners == nil || cmp > 0:
			best = res
			winners = []int{seat}
		case cmp == 0:
			winners = append(winners, seat)
		}
	}

	t.revealed = true
	t.award(winners)
	return nil
}

// award pays the pot to winners. An uneven split gives the odd chips one at
// a time to the winners closest to the left of the button.
func (t *Table) award(winners []int) {
	n := len(t.seats)
	slices.SortFunc(winners, func(a, b int) int {
		return ((a-t.button-1)%n+n)%n - ((b-t.button-1)%n+n)%n
	})

	total := t.pot.Total
	share := total / uint(len(winners))
	odd := total % uint(len(winners))

	t.winners = t.winners[:0]
	for i, seat := range winners {
		amount := share
		if uint(i) < odd {
			amount++
		}
		s := t.seats[seat]
		s.Stack += amount
		t.winners = append(t.winners, Winner{
			Seat:   seat,
			Name:   s.Name,
			Amount: amount,
			Label:  t.labels[seat],
		})
	}
	t.pot.ResetHand()

	t.logger.Info("Hand complete", "hand", t.handID, "pot", total, "winners", t.winners)
}
