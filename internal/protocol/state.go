package protocol

import (
	"errors"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/game"
)

// Error codes carried in ErrorData.Code
const (
	CodeInsufficientChips = "insufficient_chips"
	CodeBetTooLow         = "bet_too_low"
	CodeMustActOnBet      = "must_act_on_bet"
	CodeOutOfTurn         = "out_of_turn"
	CodeInvalidSeat       = "invalid_seat"
	CodeSeatNotInHand     = "seat_not_in_hand"
	CodeNoHandInProgress  = "no_hand_in_progress"
	CodeTableFull         = "table_full"
	CodeInternal          = "internal_error"
)

var errorCodes = []struct {
	err  error
	code string
}{
	{game.ErrInsufficientChips, CodeInsufficientChips},
	{game.ErrBetTooLow, CodeBetTooLow},
	{game.ErrMustActOnBet, CodeMustActOnBet},
	{game.ErrOutOfTurn, CodeOutOfTurn},
	{game.ErrInvalidSeat, CodeInvalidSeat},
	{game.ErrSeatNotInHand, CodeSeatNotInHand},
	{game.ErrNoHandInProgress, CodeNoHandInProgress},
	{game.ErrTableFull, CodeTableFull},
}

// NewErrorData maps an engine error onto its wire code
func NewErrorData(err error) ErrorData {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ErrorData{Code: ec.code, Message: err.Error()}
		}
	}
	return ErrorData{Code: CodeInternal, Message: err.Error()}
}

// NewGameStateData converts a per-viewer table snapshot for the wire
func NewGameStateData(v game.View) GameStateData {
	gs := GameStateData{
		HandID:      v.HandID,
		HandNumber:  v.HandNumber,
		Pot:         v.Pot,
		CurrentBet:  v.CurrentBet,
		Players:     make([]PlayerPublicInfo, 0, len(v.Players)),
		Board:       v.Board,
		CurrentTurn: v.CurrentTurn,
		Button:      v.Button,
		Phase:       v.Phase,
	}
	if gs.Board == nil {
		gs.Board = []deck.Card{}
	}

	for _, p := range v.Players {
		gs.Players = append(gs.Players, PlayerPublicInfo{
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			IsFolded:   p.Folded,
			IsAllIn:    p.AllIn,
			SittingOut: p.SittingOut,
			RoundBet:   p.RoundBet,
			Connected:  p.Connected,
			HoleCards:  p.HoleCards,
			HandLabel:  p.HandLabel,
		})
	}

	for _, w := range v.Winners {
		gs.Winners = append(gs.Winners, WinnerInfo{
			Seat:   w.Seat,
			Name:   w.Name,
			Amount: w.Amount,
			Label:  w.Label,
		})
	}
	if v.Phase == game.Showdown && len(v.Winners) > 0 {
		seat := v.Winners[0].Seat
		gs.Winner = &seat
	}
	return gs
}
