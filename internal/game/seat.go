package game

import "github.com/lox/holdem-table/internal/deck"

// SeatStatus tracks whether the client behind a seat is still connected
type SeatStatus int

const (
	Active SeatStatus = iota
	Disconnected
)

func (s SeatStatus) String() string {
	if s == Disconnected {
		return "disconnected"
	}
	return "active"
}

// Seat is one player's position at the table. Seats are never removed so
// that a seat index stays stable for the life of the table.
type Seat struct {
	ID        int
	Name      string
	Stack     uint
	HoleCards []deck.Card
	Status    SeatStatus

	// InHand is set for seats dealt into the current hand. Seats that
	// joined mid-hand or had no chips sit the hand out.
	InHand         bool
	Folded         bool
	AllIn          bool
	ActedThisRound bool
}

// live reports whether the seat still contests the pot
func (s *Seat) live() bool {
	return s.InHand && !s.Folded
}

// canAct reports whether the seat still has betting decisions to make
func (s *Seat) canAct() bool {
	return s.live() && !s.AllIn
}

// eligible reports whether the seat can be dealt into the next hand
func (s *Seat) eligible() bool {
	return s.Status == Active && s.Stack > 0
}

func (s *Seat) clone() Seat {
	c := *s
	c.HoleCards = append([]deck.Card(nil), s.HoleCards...)
	return c
}
