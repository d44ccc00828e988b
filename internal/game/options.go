package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
)

// Defaults applied when no option overrides them
const (
	DefaultStartingChips uint = 1000
	DefaultMaxSeats           = 9
)

// HandEvaluator ranks a seat's hole cards plus the board
type HandEvaluator interface {
	Evaluate(cards []deck.Card) (evaluator.Result, error)
}

// TableOption configures a Table during creation
type TableOption func(*tableConfig)

type tableConfig struct {
	startingChips uint
	maxSeats      int
	evaluator     HandEvaluator
	logger        *log.Logger
	deckSetup     func(hand int, d *deck.Deck)
}

// WithStartingChips sets the stack given to every newly seated player
func WithStartingChips(chips uint) TableOption {
	return func(c *tableConfig) { c.startingChips = chips }
}

// WithMaxSeats caps how many seats the table will create
func WithMaxSeats(n int) TableOption {
	return func(c *tableConfig) { c.maxSeats = n }
}

// WithEvaluator replaces the hand evaluator used at showdown
func WithEvaluator(e HandEvaluator) TableOption {
	return func(c *tableConfig) { c.evaluator = e }
}

// WithLogger sets the logger for hand lifecycle events
func WithLogger(l *log.Logger) TableOption {
	return func(c *tableConfig) { c.logger = l }
}

// WithDeckSetup runs fn on the freshly shuffled deck before each hand is
// dealt. Tests use it to stack the deck.
func WithDeckSetup(fn func(hand int, d *deck.Deck)) TableOption {
	return func(c *tableConfig) { c.deckSetup = fn }
}

func defaultTableConfig() *tableConfig {
	return &tableConfig{
		startingChips: DefaultStartingChips,
		maxSeats:      DefaultMaxSeats,
		evaluator:     evaluator.New(),
		logger:        log.NewWithOptions(io.Discard, log.Options{}),
	}
}
