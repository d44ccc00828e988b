package game

import "fmt"

// actor validates that seat may act right now. The checks run in a fixed
// order so every caller reports the same error for the same situation.
func (t *Table) actor(seat int) (*Seat, error) {
	if !t.validSeat(seat) {
		return nil, fmt.Errorf("seat %d: %w", seat, ErrInvalidSeat)
	}
	if !t.phase.Betting() {
		return nil, fmt.Errorf("seat %d in %s: %w", seat, t.phase, ErrNoHandInProgress)
	}
	s := t.seats[seat]
	if !s.canAct() {
		return nil, fmt.Errorf("seat %d: %w", seat, ErrSeatNotInHand)
	}
	if t.turn != seat {
		return nil, fmt.Errorf("seat %d acted on seat %d's turn: %w", seat, t.turn, ErrOutOfTurn)
	}
	return s, nil
}

// commit moves chips from a seat's stack into the pot
func (t *Table) commit(s *Seat, amount uint) {
	s.Stack -= amount
	t.pot.AddContribution(s.ID, amount)
	if s.Stack == 0 && s.InHand {
		s.AllIn = true
	}
}

// Bet adds amount chips to the pot from seat. The amount on its own must be
// at least the current bet, whatever the seat already put in this round.
// Any bet reopens the action, so every other seat has to act again before
// the round can close.
func (t *Table) Bet(seat int, amount uint) error {
	s, err := t.actor(seat)
	if err != nil {
		return err
	}
	if amount > s.Stack {
		return fmt.Errorf("seat %d bet %d with %d chips: %w", seat, amount, s.Stack, ErrInsufficientChips)
	}
	if amount == 0 || amount < t.pot.CurrentBet {
		return fmt.Errorf("seat %d bet %d below current bet %d: %w", seat, amount, t.pot.CurrentBet, ErrBetTooLow)
	}

	t.commit(s, amount)
	for _, o := range t.seats {
		o.ActedThisRound = false
	}
	s.ActedThisRound = true

	t.logger.Debug("Bet", "hand", t.handID, "seat", seat, "amount", amount, "current", t.pot.CurrentBet, "allIn", s.AllIn)
	t.progress()
	return nil
}

// Call matches the current bet. A seat without enough chips to match cannot
// call; it has to bet its stack or fold.
func (t *Table) Call(seat int) error {
	s, err := t.actor(seat)
	if err != nil {
		return err
	}
	owed := t.pot.ToCall(seat)
	if owed > s.Stack {
		return fmt.Errorf("seat %d call %d with %d chips: %w", seat, owed, s.Stack, ErrInsufficientChips)
	}

	t.commit(s, owed)
	s.ActedThisRound = true

	t.logger.Debug("Call", "hand", t.handID, "seat", seat, "amount", owed, "allIn", s.AllIn)
	t.progress()
	return nil
}

// Check passes the action when the seat has already matched the current bet
func (t *Table) Check(seat int) error {
	s, err := t.actor(seat)
	if err != nil {
		return err
	}
	if t.pot.RoundBet(seat) != t.pot.CurrentBet {
		return fmt.Errorf("seat %d check facing %d: %w", seat, t.pot.ToCall(seat), ErrMustActOnBet)
	}

	s.ActedThisRound = true

	t.logger.Debug("Check", "hand", t.handID, "seat", seat)
	t.progress()
	return nil
}

// Fold gives up the hand. Chips already contributed stay in the pot.
func (t *Table) Fold(seat int) error {
	s, err := t.actor(seat)
	if err != nil {
		return err
	}

	s.Folded = true
	s.ActedThisRound = true

	t.logger.Debug("Fold", "hand", t.handID, "seat", seat)
	t.progress()
	return nil
}

// ForceFold folds seat regardless of whose turn it is. The server uses it
// for seats whose client has gone away. All-in seats are left in the hand.
func (t *Table) ForceFold(seat int) error {
	if !t.validSeat(seat) {
		return fmt.Errorf("force fold seat %d: %w", seat, ErrInvalidSeat)
	}
	if !t.phase.Betting() {
		return fmt.Errorf("force fold seat %d in %s: %w", seat, t.phase, ErrNoHandInProgress)
	}
	s := t.seats[seat]
	if !s.canAct() {
		return fmt.Errorf("force fold seat %d: %w", seat, ErrSeatNotInHand)
	}

	s.Folded = true
	s.ActedThisRound = true
	t.logger.Info("Seat folded automatically", "hand", t.handID, "seat", seat)

	if t.turn == seat {
		t.progress()
		return nil
	}
	// the seat to act has not acted yet, so only a lone survivor ends things
	if live := t.liveSeats(); len(live) == 1 {
		t.finishUncontested(live[0])
	}
	return nil
}
