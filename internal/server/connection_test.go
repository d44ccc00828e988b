package server

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-table/internal/protocol"
)

func TestConnectionFullBufferCloses(t *testing.T) {
	t.Parallel()

	c := NewConnection("conn_full", nil, 1, nil, testLogger())
	msg, err := protocol.NewMessage(protocol.MessageTypeCheck, struct{}{})
	require.NoError(t, err)

	require.NoError(t, c.SendMessage(msg))
	assert.ErrorIs(t, c.SendMessage(msg), ErrConnectionClosed)

	select {
	case <-c.Done():
	default:
		t.Fatal("connection should close once its buffer is full")
	}
	assert.ErrorIs(t, c.SendMessage(msg), ErrConnectionClosed)
}

// SetSeat swaps the logger while sends may be logging; run with -race
func TestConnectionSendWhileSeating(t *testing.T) {
	t.Parallel()

	for i := 0; i < 20; i++ {
		c := NewConnection("conn_seat", nil, 2, nil, testLogger())
		msg, err := protocol.NewMessage(protocol.MessageTypeCheck, struct{}{})
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for seat := 0; seat < 10; seat++ {
				c.SetSeat(seat)
			}
		}()
		go func() {
			defer wg.Done()
			for n := 0; n < 10; n++ {
				_ = c.SendMessage(msg)
			}
		}()
		wg.Wait()

		assert.Equal(t, 9, c.Seat())
		<-c.Done()
	}
}
