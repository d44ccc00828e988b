package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want Command
	}{
		{"bet 100", Command{Action: ActionBet, Amount: 100}},
		{"  BET   25 ", Command{Action: ActionBet, Amount: 25}},
		{"b 5", Command{Action: ActionBet, Amount: 5}},
		{"call", Command{Action: ActionCall}},
		{"check", Command{Action: ActionCheck}},
		{"k", Command{Action: ActionCheck}},
		{"fold", Command{Action: ActionFold}},
		{"quit", Command{Action: ActionQuit}},
	}
	for _, tt := range tests {
		got, err := ParseCommand(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestParseCommandErrors(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"", "bet", "bet -5", "bet ten", "bet 1 2", "raise 10"} {
		_, err := ParseCommand(line)
		assert.Error(t, err, "line %q", line)
	}
}
