package game

import "errors"

// Validation errors. The table is left unchanged when any of these is returned.
var (
	ErrInsufficientChips = errors.New("insufficient chips")
	ErrBetTooLow         = errors.New("bet too low")
	ErrMustActOnBet      = errors.New("cannot check facing a bet")
	ErrOutOfTurn         = errors.New("not this seat's turn")
	ErrInvalidSeat       = errors.New("invalid seat")
	ErrSeatNotInHand     = errors.New("seat cannot act in this hand")
	ErrNoHandInProgress  = errors.New("no betting round in progress")
	ErrHandInProgress    = errors.New("hand already in progress")
	ErrNotEnoughPlayers  = errors.New("not enough players to start a hand")
	ErrTableFull         = errors.New("table is full")
)
