package client

import (
	"fmt"
	"strconv"
	"strings"
)

// Action is something a player can type
type Action int

const (
	ActionBet Action = iota
	ActionCall
	ActionCheck
	ActionFold
	ActionQuit
)

// Command is one parsed input line
type Command struct {
	Action Action
	Amount uint
}

// ParseCommand reads "bet N", "call", "check", "fold" or "quit"
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	switch fields[0] {
	case "bet", "b":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("usage: bet <amount>")
		}
		n, err := strconv.ParseUint(fields[1], 10, 0)
		if err != nil {
			return Command{}, fmt.Errorf("invalid amount %q", fields[1])
		}
		return Command{Action: ActionBet, Amount: uint(n)}, nil
	case "call", "c":
		return Command{Action: ActionCall}, nil
	case "check", "k":
		return Command{Action: ActionCheck}, nil
	case "fold", "f":
		return Command{Action: ActionFold}, nil
	case "quit", "q", "exit":
		return Command{Action: ActionQuit}, nil
	}
	return Command{}, fmt.Errorf("unknown command %q", fields[0])
}

// Do sends cmd to the server. Quit is not sent anywhere.
func (c *Client) Do(cmd Command) error {
	switch cmd.Action {
	case ActionBet:
		return c.Bet(cmd.Amount)
	case ActionCall:
		return c.Call()
	case ActionCheck:
		return c.Check()
	case ActionFold:
		return c.Fold()
	}
	return nil
}
