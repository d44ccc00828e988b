package server

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/protocol"
)

// Session binds connections to seats of a single shared table. Every change
// to the table happens under mu, and the snapshots that result are queued on
// each connection before mu is released so clients see changes in order.
type Session struct {
	mu    sync.Mutex
	table *game.Table
	conns map[int]*Connection

	clock        quartz.Clock
	restartDelay time.Duration
	foldDelay    time.Duration
	restartFor   string // hand id with a restart already scheduled
	timers       map[int]*quartz.Timer
	nextTimer    int
	closed       bool

	logger *log.Logger
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithClock replaces the clock used for deferred restarts and folds
func WithClock(clock quartz.Clock) SessionOption {
	return func(s *Session) { s.clock = clock }
}

// WithRestartDelay sets the pause between a showdown and the next deal
func WithRestartDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.restartDelay = d }
}

// WithDisconnectFoldDelay sets how long a disconnected seat keeps its cards
func WithDisconnectFoldDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.foldDelay = d }
}

// NewSession creates a session around table
func NewSession(table *game.Table, logger *log.Logger, opts ...SessionOption) *Session {
	s := &Session{
		table:        table,
		conns:        make(map[int]*Connection),
		clock:        quartz.NewReal(),
		restartDelay: 3 * time.Second,
		foldDelay:    5 * time.Second,
		timers:       make(map[int]*quartz.Timer),
		logger:       logger.WithPrefix("session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect seats a new connection, welcomes it and broadcasts the table
func (s *Session) Connect(c *Connection) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat, err := s.table.AddSeat("")
	if err != nil {
		return -1, err
	}
	c.SetSeat(seat)
	s.conns[seat] = c

	info, _ := s.table.Seat(seat)
	s.send(c, protocol.MessageTypeWelcome, protocol.WelcomeData{Name: info.Name, SeatID: seat})

	s.logger.Info("Player connected", "seat", seat, "conn", c.ID(), "seats", s.table.SeatCount())
	s.broadcastLocked()
	return seat, nil
}

// Handle applies one client message on behalf of the connection's seat.
// Rejected actions are answered with an error to that connection only.
func (s *Session) Handle(c *Connection, msg *protocol.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat := c.Seat()
	logger := s.logger.With("seat", seat, "type", msg.Type)

	var err error
	switch msg.Type {
	case protocol.MessageTypeJoin:
		var data protocol.JoinData
		if derr := msg.Decode(&data); derr != nil {
			logger.Debug("Dropping malformed message", "error", derr)
			return
		}
		err = s.join(seat, data.Name)

	case protocol.MessageTypeBet:
		var data protocol.BetData
		if derr := msg.Decode(&data); derr != nil {
			logger.Debug("Dropping malformed message", "error", derr)
			return
		}
		err = s.table.Bet(seat, data.Amount)

	case protocol.MessageTypeCall:
		err = s.table.Call(seat)

	case protocol.MessageTypeCheck:
		err = s.table.Check(seat)

	case protocol.MessageTypeFold:
		err = s.table.Fold(seat)

	default:
		logger.Debug("Ignoring message")
		return
	}

	if err != nil {
		logger.Debug("Action rejected", "error", err)
		s.send(c, protocol.MessageTypeError, protocol.NewErrorData(err))
		return
	}

	s.afterChangeLocked()
}

func (s *Session) join(seat int, name string) error {
	if err := s.table.Rename(seat, name); err != nil {
		return err
	}
	s.logger.Info("Player joined", "seat", seat, "name", name)

	if s.table.Phase() == game.Waiting && s.table.CanStart() {
		if err := s.table.StartGame(); err != nil {
			s.logger.Warn("Could not start game", "error", err)
		}
	}
	return nil
}

// Disconnect releases a seat's connection. If the seat is still in the hand
// when the fold delay runs out it is folded.
func (s *Session) Disconnect(c *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat := c.Seat()
	if s.conns[seat] != c {
		return
	}
	delete(s.conns, seat)
	_ = s.table.Disconnect(seat)

	if s.table.Phase().Betting() {
		if st, _ := s.table.Seat(seat); st.InHand && !st.Folded && !st.AllIn {
			hand := s.table.HandID()
			s.afterLocked(s.foldDelay, func() { s.autoFold(seat, hand) })
		}
	}
	s.broadcastLocked()
}

func (s *Session) autoFold(seat int, hand string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table.HandID() != hand || !s.table.Phase().Betting() {
		return
	}
	if err := s.table.ForceFold(seat); err != nil {
		s.logger.Debug("Skipping automatic fold", "seat", seat, "error", err)
		return
	}
	s.afterChangeLocked()
}

// afterChangeLocked schedules the next deal once a hand is decided and
// pushes the new state to every seat
func (s *Session) afterChangeLocked() {
	if s.table.Phase() == game.Showdown && s.restartFor != s.table.HandID() {
		hand := s.table.HandID()
		s.restartFor = hand
		s.afterLocked(s.restartDelay, func() { s.restart(hand) })
	}
	s.broadcastLocked()
}

// restart deals the next hand unless something else already moved the table on
func (s *Session) restart(hand string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table.Phase() != game.Showdown || s.table.HandID() != hand {
		s.logger.Debug("Skipping stale restart", "hand", hand, "current", s.table.HandID(), "phase", s.table.Phase())
		return
	}

	if err := s.table.NextHand(); err != nil {
		if !errors.Is(err, game.ErrNotEnoughPlayers) {
			s.logger.Error("Failed to deal next hand", "error", err)
		} else {
			s.logger.Info("Waiting for players")
		}
	}
	s.afterChangeLocked()
}

// afterLocked runs fn on the session clock, dropping it if the session closes first
func (s *Session) afterLocked(d time.Duration, fn func()) {
	if s.closed {
		return
	}
	s.nextTimer++
	id := s.nextTimer
	s.timers[id] = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.timers[id]
		delete(s.timers, id)
		s.mu.Unlock()
		if live {
			fn()
		}
	})
}

func (s *Session) broadcastLocked() {
	for seat, c := range s.conns {
		s.send(c, protocol.MessageTypeGameState, protocol.NewGameStateData(s.table.View(seat)))
	}
}

func (s *Session) send(c *Connection, mt protocol.MessageType, data any) {
	msg, err := protocol.NewMessage(mt, data)
	if err != nil {
		s.logger.Error("Failed to create message", "type", mt, "error", err)
		return
	}
	if err := c.SendMessage(msg); err != nil {
		s.logger.Debug("Failed to queue message", "type", mt, "conn", c.ID(), "error", err)
	}
}

// View returns the snapshot seat would currently receive
func (s *Session) View(seat int) game.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.View(seat)
}

// Close stops pending timers and closes every connection
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	for _, t := range s.timers {
		t.Stop()
	}
	clear(s.timers)
	conns := make([]*Connection, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
}
