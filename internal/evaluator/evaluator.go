// Package evaluator ranks Hold'em hands of five to seven cards.
//
// Ranking is delegated to github.com/paulhankin/poker. Scores are totally
// ordered and a higher score is a stronger hand; equal scores tie.
package evaluator

import (
	"fmt"

	"github.com/paulhankin/poker"

	"github.com/lox/holdem-table/internal/deck"
)

// Result is the strength of a hand plus a readable description
type Result struct {
	Score int16
	Label string
}

// Compare returns 1 if r beats other, -1 if other beats r, 0 on a tie
func (r Result) Compare(other Result) int {
	switch {
	case r.Score > other.Score:
		return 1
	case r.Score < other.Score:
		return -1
	}
	return 0
}

// Evaluator provides poker hand evaluation
type Evaluator struct{}

// New creates a new evaluator
func New() *Evaluator {
	return &Evaluator{}
}

// Evaluate ranks the best five-card hand that can be made from cards
func (e *Evaluator) Evaluate(cards []deck.Card) (Result, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Result{}, fmt.Errorf("evaluate %d cards: need between 5 and 7", len(cards))
	}

	pcs := make([]poker.Card, len(cards))
	for i, c := range cards {
		pc, err := toLibrary(c)
		if err != nil {
			return Result{}, err
		}
		pcs[i] = pc
	}

	var score int16
	switch len(pcs) {
	case 7:
		var a7 [7]poker.Card
		copy(a7[:], pcs)
		score = poker.Eval7(&a7)
	case 5:
		var a5 [5]poker.Card
		copy(a5[:], pcs)
		score = poker.Eval5(&a5)
	default:
		score = bestOfFive(pcs)
	}

	label, err := poker.Describe(pcs)
	if err != nil {
		label = ""
	}

	return Result{Score: score, Label: label}, nil
}

// bestOfFive scores every five-card subset and keeps the strongest
func bestOfFive(pcs []poker.Card) int16 {
	var (
		best   int16
		found  bool
		five   [5]poker.Card
		choose [5]int
	)
	var rec func(start, k int)
	rec = func(start, k int) {
		if k == 5 {
			for i := range five {
				five[i] = pcs[choose[i]]
			}
			if s := poker.Eval5(&five); !found || s > best {
				best, found = s, true
			}
			return
		}
		for i := start; i <= len(pcs)-(5-k); i++ {
			choose[k] = i
			rec(i+1, k+1)
		}
	}
	rec(0, 0)
	return best
}

// toLibrary converts a deck card; the library numbers ranks Ace=1 .. King=13
func toLibrary(c deck.Card) (poker.Card, error) {
	var (
		none poker.Card
		s    poker.Suit
	)
	switch c.Suit {
	case deck.Clubs:
		s = poker.Club
	case deck.Diamonds:
		s = poker.Diamond
	case deck.Hearts:
		s = poker.Heart
	case deck.Spades:
		s = poker.Spade
	default:
		return none, fmt.Errorf("invalid suit in card %v", c)
	}
	if !c.Rank.Valid() {
		return none, fmt.Errorf("invalid rank in card %v", c)
	}

	r := poker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		r = poker.Rank(1)
	}
	pc, err := poker.MakeCard(s, r)
	if err != nil {
		return none, fmt.Errorf("convert %s: %w", c, err)
	}
	return pc, nil
}
