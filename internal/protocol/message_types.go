package protocol

import (
	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/game"
)

// MessageType represents a WebSocket message type with type safety
type MessageType string

const (
	// Client to server messages
	MessageTypeJoin  MessageType = "join"
	MessageTypeBet   MessageType = "bet"
	MessageTypeCheck MessageType = "check"
	MessageTypeCall  MessageType = "call"
	MessageTypeFold  MessageType = "fold"

	// Server to client messages
	MessageTypeWelcome   MessageType = "welcome"
	MessageTypeGameState MessageType = "game_state"
	MessageTypeError     MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Known reports whether mt is part of the protocol
func (mt MessageType) Known() bool {
	switch mt {
	case MessageTypeJoin, MessageTypeBet, MessageTypeCheck, MessageTypeCall, MessageTypeFold,
		MessageTypeWelcome, MessageTypeGameState, MessageTypeError:
		return true
	}
	return false
}

// FromClient reports whether mt is sent by players
func (mt MessageType) FromClient() bool {
	switch mt {
	case MessageTypeJoin, MessageTypeBet, MessageTypeCheck, MessageTypeCall, MessageTypeFold:
		return true
	}
	return false
}

// Client → Server Messages

type JoinData struct {
	Name string `json:"name"`
}

type BetData struct {
	Amount uint `json:"amount"`
}

// Server → Client Messages

type WelcomeData struct {
	Name   string `json:"name"`
	SeatID int    `json:"seatId"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PlayerPublicInfo is one seat as seen by the receiving player
type PlayerPublicInfo struct {
	ID         int         `json:"id"`
	Name       string      `json:"name"`
	Chips      uint        `json:"chips"`
	IsFolded   bool        `json:"isFolded"`
	IsAllIn    bool        `json:"isAllIn"`
	SittingOut bool        `json:"sittingOut"`
	RoundBet   uint        `json:"roundBet"`
	Connected  bool        `json:"connected"`
	HoleCards  []deck.Card `json:"holeCards,omitempty"`
	HandLabel  string      `json:"handLabel,omitempty"`
}

type WinnerInfo struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Amount uint   `json:"amount"`
	Label  string `json:"label,omitempty"`
}

// GameStateData is the full table snapshot sent after every change.
// CurrentTurn is -1 when no seat is to act.
type GameStateData struct {
	HandID      string             `json:"handId,omitempty"`
	HandNumber  int                `json:"handNumber"`
	Pot         uint               `json:"pot"`
	CurrentBet  uint               `json:"currentBet"`
	Players     []PlayerPublicInfo `json:"players"`
	Board       []deck.Card        `json:"board"`
	CurrentTurn int                `json:"currentTurn"`
	Button      int                `json:"button"`
	Phase       game.Phase         `json:"phase"`
	Winner      *int               `json:"winner,omitempty"`
	Winners     []WinnerInfo       `json:"winners,omitempty"`
}
