package server

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/protocol"
	"github.com/lox/holdem-table/internal/randutil"
)

const (
	testRestartDelay = 3 * time.Second
	testFoldDelay    = 5 * time.Second
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestSession(t *testing.T, opts ...game.TableOption) (*Session, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	opts = append([]game.TableOption{game.WithLogger(testLogger())}, opts...)
	tbl := game.NewTable(randutil.New(42), opts...)
	sess := NewSession(tbl, testLogger(),
		WithClock(clock),
		WithRestartDelay(testRestartDelay),
		WithDisconnectFoldDelay(testFoldDelay))
	t.Cleanup(sess.Close)
	return sess, clock
}

// offlineConn is a connection with no socket behind it; tests read what the
// session queued straight from its send buffer.
func offlineConn(t *testing.T, sess *Session) *Connection {
	t.Helper()
	c := NewConnection("conn_test", nil, 64, nil, testLogger())
	_, err := sess.Connect(c)
	require.NoError(t, err)
	return c
}

func drain(c *Connection) []*protocol.Message {
	var out []*protocol.Message
	for {
		select {
		case m, ok := <-c.send:
			if !ok {
				return out
			}
			out = append(out, m)
		default:
			return out
		}
	}
}

func lastState(t *testing.T, msgs []*protocol.Message) protocol.GameStateData {
	t.Helper()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Type == protocol.MessageTypeGameState {
			var gs protocol.GameStateData
			require.NoError(t, msgs[i].Decode(&gs))
			return gs
		}
	}
	require.FailNow(t, "no game_state message queued")
	return protocol.GameStateData{}
}

func message(t *testing.T, mt protocol.MessageType, data any) *protocol.Message {
	t.Helper()
	msg, err := protocol.NewMessage(mt, data)
	require.NoError(t, err)
	return msg
}

func advance(t *testing.T, clock *quartz.Mock, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(d).MustWait(ctx)
}
