package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/gameid"
)

// Table is a single Hold'em table: its seats, the pot ledger, the deck and
// the hand state machine. A Table is not safe for concurrent use; callers
// serialize access (the server holds one mutex per table).
type Table struct {
	seats  []*Seat
	pot    *Pot
	deck   *deck.Deck
	board  []deck.Card
	phase  Phase
	turn   int
	button int

	handID   string
	handNum  int
	winners  []Winner
	labels   []string // per-seat hand labels, set when hands are shown down
	revealed bool

	cfg    *tableConfig
	logger *log.Logger
}

// NewTable creates an empty table in the Waiting phase. The RNG drives every
// shuffle and is required so that games can be replayed from a seed.
func NewTable(rng *rand.Rand, opts ...TableOption) *Table {
	if rng == nil {
		panic("rng is required for table creation")
	}

	cfg := defaultTableConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Table{
		pot:    NewPot(0),
		deck:   deck.NewDeck(rng),
		phase:  Waiting,
		turn:   -1,
		button: -1,
		cfg:    cfg,
		logger: cfg.logger,
	}
}

// AddSeat seats a new player with the starting stack and returns its index.
// A player seated while a hand is running sits out until the next deal.
func (t *Table) AddSeat(name string) (int, error) {
	if len(t.seats) >= t.cfg.maxSeats {
		return -1, fmt.Errorf("add seat %q: %w", name, ErrTableFull)
	}

	id := len(t.seats)
	if name == "" {
		name = fmt.Sprintf("Player%d", id)
	}
	t.seats = append(t.seats, &Seat{
		ID:    id,
		Name:  name,
		Stack: t.cfg.startingChips,
	})
	t.pot.AddSeat()
	t.growLabels()

	t.logger.Debug("Seat added", "seat", id, "name", name, "phase", t.phase)
	return id, nil
}

// Rename changes the display name of a seat
func (t *Table) Rename(seat int, name string) error {
	if !t.validSeat(seat) {
		return fmt.Errorf("rename seat %d: %w", seat, ErrInvalidSeat)
	}
	if name != "" {
		t.seats[seat].Name = name
	}
	return nil
}

// Disconnect marks the seat's client as gone. The seat keeps its place and
// chips but is no longer dealt into new hands.
func (t *Table) Disconnect(seat int) error {
	if !t.validSeat(seat) {
		return fmt.Errorf("disconnect seat %d: %w", seat, ErrInvalidSeat)
	}
	t.seats[seat].Status = Disconnected
	t.logger.Info("Seat disconnected", "seat", seat, "name", t.seats[seat].Name)
	return nil
}

// CanStart reports whether enough connected seats with chips are present to deal
func (t *Table) CanStart() bool {
	n := 0
	for _, s := range t.seats {
		if s.eligible() {
			n++
		}
	}
	return n >= 2
}

// StartGame deals the first hand from the Waiting phase
func (t *Table) StartGame() error {
	if t.phase != Waiting {
		return fmt.Errorf("start game in %s: %w", t.phase, ErrHandInProgress)
	}
	return t.startHand()
}

// NextHand deals a new hand once the previous one has been shown down. The
// button moves one eligible seat to the left. When fewer than two seats can
// play the table returns to Waiting and ErrNotEnoughPlayers is returned.
func (t *Table) NextHand() error {
	switch {
	case t.phase.Betting():
		return fmt.Errorf("next hand in %s: %w", t.phase, ErrHandInProgress)
	case t.phase == Waiting:
		return fmt.Errorf("next hand: %w", ErrNoHandInProgress)
	}
	return t.startHand()
}

func (t *Table) startHand() error {
	for _, s := range t.seats {
		s.InHand = s.eligible()
		s.Folded = false
		s.AllIn = false
		s.ActedThisRound = false
		s.HoleCards = nil
	}
	t.board = nil
	t.winners = nil
	t.revealed = false
	t.clearLabels()
	t.pot.ResetHand()
	t.turn = -1

	if !t.CanStart() {
		for _, s := range t.seats {
			s.InHand = false
		}
		t.phase = Waiting
		return ErrNotEnoughPlayers
	}

	if t.handNum == 0 {
		// first to act after the button is then the lowest seat
		t.button = t.previousInHand(0)
	} else {
		t.button = t.nextInHand(t.button)
	}
	t.handNum++
	t.handID = gameid.New(gameid.PrefixHand)

	t.deck.Reset()
	if t.cfg.deckSetup != nil {
		t.cfg.deckSetup(t.handNum, t.deck)
	}

	for _, s := range t.seats {
		if !s.InHand {
			continue
		}
		cards, err := t.deck.Draw(2)
		if err != nil {
			for _, o := range t.seats {
				o.InHand = false
				o.HoleCards = nil
			}
			t.phase = Waiting
			t.logger.Error("Failed to deal hole cards", "hand", t.handID, "error", err)
			return fmt.Errorf("deal hand %s: %w", t.handID, err)
		}
		s.HoleCards = cards
	}

	t.phase = Preflop
	t.turn = t.nextToAct(t.button)

	t.logger.Info("Hand started",
		"hand", t.handID,
		"number", t.handNum,
		"button", t.button,
		"players", t.countInHand())
	return nil
}

// Advance moves to the next phase, dealing board cards as needed. From the
// river it resolves the showdown and from Showdown it deals the next hand.
func (t *Table) Advance() error {
	switch {
	case t.phase == Waiting:
		return nil
	case t.phase == Showdown:
		return t.NextHand()
	case t.phase == River:
		return t.showdown()
	}

	next := t.phase + 1
	cards, err := t.deck.Draw(next.boardCards())
	if err != nil {
		return t.abortHand(err)
	}

	t.board = append(t.board, cards...)
	t.phase = next
	t.pot.ResetRound()
	for _, s := range t.seats {
		s.ActedThisRound = false
	}
	t.turn = t.nextToAct(t.button)

	t.logger.Debug("Street dealt", "hand", t.handID, "phase", t.phase, "board", t.board)
	return nil
}

// abortHand refunds every contribution and redeals. It is only reached when
// the deck cannot supply the cards a street needs.
func (t *Table) abortHand(cause error) error {
	id := t.handID
	t.logger.Error("Aborting hand", "hand", id, "phase", t.phase, "error", cause)

	for i, s := range t.seats {
		s.Stack += t.pot.Contribution(i)
	}
	t.pot.ResetHand()

	if err := t.startHand(); err != nil {
		t.logger.Warn("Could not deal after abort", "error", err)
	}
	return fmt.Errorf("hand %s aborted: %w", id, cause)
}

// AllActed reports whether every seat that can still act has done so this round
func (t *Table) AllActed() bool {
	for _, s := range t.seats {
		if s.canAct() && !s.ActedThisRound {
			return false
		}
	}
	return true
}

// NonFoldedMatchBet reports whether every seat that can still act has put in
// the current bet. All-in seats are excluded as they cannot add more.
func (t *Table) NonFoldedMatchBet() bool {
	for _, s := range t.seats {
		if s.canAct() && t.pot.RoundBet(s.ID) != t.pot.CurrentBet {
			return false
		}
	}
	return true
}

// MarkActed records that seat has acted in the current betting round
func (t *Table) MarkActed(seat int) {
	if t.validSeat(seat) {
		t.seats[seat].ActedThisRound = true
	}
}

// progress runs after every accepted action: it ends the hand when one seat
// is left, closes the round when the gate passes, or passes the turn on.
func (t *Table) progress() {
	if live := t.liveSeats(); len(live) == 1 {
		t.finishUncontested(live[0])
		return
	}

	if !t.AllActed() || !t.NonFoldedMatchBet() {
		t.turn = t.nextToAct(t.turn)
		return
	}

	if err := t.Advance(); err != nil {
		return
	}
	// with fewer than two seats able to bet the board runs out to showdown
	for t.phase.Betting() && t.countCanAct() < 2 {
		if err := t.Advance(); err != nil {
			return
		}
	}
}

func (t *Table) validSeat(seat int) bool {
	return seat >= 0 && seat < len(t.seats)
}

// nextToAct returns the first seat left of from that can still act, or -1
func (t *Table) nextToAct(from int) int {
	n := len(t.seats)
	for i := 1; i <= n; i++ {
		idx := ((from+i)%n + n) % n
		if t.seats[idx].canAct() {
			return idx
		}
	}
	return -1
}

func (t *Table) nextInHand(from int) int {
	n := len(t.seats)
	for i := 1; i <= n; i++ {
		idx := ((from+i)%n + n) % n
		if t.seats[idx].InHand {
			return idx
		}
	}
	return -1
}

func (t *Table) previousInHand(from int) int {
	n := len(t.seats)
	for i := 1; i <= n; i++ {
		idx := ((from-i)%n + n) % n
		if t.seats[idx].InHand {
			return idx
		}
	}
	return -1
}

func (t *Table) liveSeats() []int {
	var live []int
	for _, s := range t.seats {
		if s.live() {
			live = append(live, s.ID)
		}
	}
	return live
}

func (t *Table) countCanAct() int {
	n := 0
	for _, s := range t.seats {
		if s.canAct() {
			n++
		}
	}
	return n
}

func (t *Table) countInHand() int {
	n := 0
	for _, s := range t.seats {
		if s.InHand {
			n++
		}
	}
	return n
}

func (t *Table) growLabels() {
	for len(t.labels) < len(t.seats) {
		t.labels = append(t.labels, "")
	}
}

func (t *Table) clearLabels() {
	for i := range t.labels {
		t.labels[i] = ""
	}
}

// Phase returns the current phase
func (t *Table) Phase() Phase { return t.phase }

// Turn returns the seat whose turn it is, or -1 when no one is to act
func (t *Table) Turn() int { return t.turn }

// Button returns the dealer button seat, or -1 before the first hand
func (t *Table) Button() int { return t.button }

// HandID returns the identifier of the current or most recent hand
func (t *Table) HandID() string { return t.handID }

// HandNumber counts hands dealt since the table was created
func (t *Table) HandNumber() int { return t.handNum }

// SeatCount returns how many seats have been created
func (t *Table) SeatCount() int { return len(t.seats) }

// Seat returns a copy of a seat
func (t *Table) Seat(seat int) (Seat, bool) {
	if !t.validSeat(seat) {
		return Seat{}, false
	}
	return t.seats[seat].clone(), true
}

// Board returns a copy of the community cards
func (t *Table) Board() []deck.Card {
	return append([]deck.Card(nil), t.board...)
}

// Pot returns a copy of the pot ledger
func (t *Table) Pot() Pot {
	return t.pot.Clone()
}

// Winners returns the payouts of the last completed hand
func (t *Table) Winners() []Winner {
	return append([]Winner(nil), t.winners...)
}

// TotalChips sums every stack plus the pot. It is constant for the life of
// a table apart from new seats bringing their starting stacks.
func (t *Table) TotalChips() uint {
	total := t.pot.Total
	for _, s := range t.seats {
		total += s.Stack
	}
	return total
}
