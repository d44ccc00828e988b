package game

import "github.com/lox/holdem-table/internal/deck"

// PlayerView is what one viewer may see of a seat
type PlayerView struct {
	ID         int
	Name       string
	Chips      uint
	Folded     bool
	AllIn      bool
	SittingOut bool
	RoundBet   uint
	Connected  bool
	HoleCards  []deck.Card
	HandLabel  string
}

// View is a snapshot of the table filtered for a single seat. It shares no
// memory with the table and can be used after the table lock is released.
type View struct {
	HandID      string
	HandNumber  int
	Phase       Phase
	Pot         uint
	CurrentBet  uint
	Board       []deck.Card
	Players     []PlayerView
	CurrentTurn int
	Button      int
	Winners     []Winner
}

// View builds the snapshot for viewer. Hole cards are shown for the
// viewer's own seat and, once a hand reaches a contested showdown, for every
// seat that was still in it. Pass -1 for a spectator view.
func (t *Table) View(viewer int) View {
	v := View{
		HandID:      t.handID,
		HandNumber:  t.handNum,
		Phase:       t.phase,
		Pot:         t.pot.Total,
		CurrentBet:  t.pot.CurrentBet,
		Board:       append([]deck.Card{}, t.board...),
		Players:     make([]PlayerView, 0, len(t.seats)),
		CurrentTurn: t.turn,
		Button:      t.button,
		Winners:     append([]Winner(nil), t.winners...),
	}

	for _, s := range t.seats {
		p := PlayerView{
			ID:         s.ID,
			Name:       s.Name,
			Chips:      s.Stack,
			Folded:     s.Folded,
			AllIn:      s.AllIn,
			SittingOut: !s.InHand,
			RoundBet:   t.pot.RoundBet(s.ID),
			Connected:  s.Status == Active,
		}
		shown := t.phase == Showdown && t.revealed && s.live()
		if s.ID == viewer || shown {
			p.HoleCards = append([]deck.Card(nil), s.HoleCards...)
		}
		if shown {
			p.HandLabel = t.labels[s.ID]
		}
		v.Players = append(v.Players, p)
	}
	return v
}
