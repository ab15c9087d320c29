package abacus

import (
	"log/slog"

	"github.com/Anmol09876/abacus/internal/engine"
	"github.com/Anmol09876/abacus/internal/logging"
	"github.com/Anmol09876/abacus/pkg/domain"
	"github.com/Anmol09876/abacus/pkg/expr"
)

// Version is the module version reported by the CLI and the servers.
var Version = "0.3.0"

// Calculator is the high-level entry point for the abacus library.
// It wraps the internal engine and applies configured defaults to every
// session it creates. The Calculator itself holds no session state; callers
// (or a session.Manager) own the *domain.State.
type Calculator struct {
	engine       *engine.Engine
	logger       *slog.Logger
	mode         domain.TrigMode
	precision    int
	historyLimit int
	strictRecall bool
}

// Option defines a functional option for configuring the Calculator.
type Option func(*Calculator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTrigMode sets the trig mode new sessions start in (default DEG).
func WithTrigMode(mode domain.TrigMode) Option {
	return func(c *Calculator) {
		c.mode = mode
	}
}

// WithPrecision sets the display precision in significant digits
// (default 10).
func WithPrecision(digits int) Option {
	return func(c *Calculator) {
		if digits > 0 {
			c.precision = digits
		}
	}
}

// WithHistoryLimit overrides the per-session history cap (default 100).
func WithHistoryLimit(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.historyLimit = n
		}
	}
}

// WithStrictRecall makes recalling an empty memory slot an error instead
// of a silent no-op.
func WithStrictRecall(strict bool) Option {
	return func(c *Calculator) {
		c.strictRecall = strict
	}
}

// New initializes a Calculator.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		logger:       logging.NewNop(),
		mode:         domain.ModeDeg,
		precision:    domain.DefaultPrecision,
		historyLimit: domain.DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.engine = engine.New(
		engine.WithLogger(c.logger),
		engine.WithHistoryLimit(c.historyLimit),
		engine.WithStrictRecall(c.strictRecall),
	)
	return c
}

// NewSession creates a fresh session state with this Calculator's defaults.
func (c *Calculator) NewSession(sessionID string) *domain.State {
	s := domain.NewState(sessionID)
	s.Mode = c.mode
	s.Precision = c.precision
	return s
}

// Press appends one keypad token to the session input.
func (c *Calculator) Press(s *domain.State, token string) {
	c.engine.Press(s, token)
}

// Backspace removes the last input character.
func (c *Calculator) Backspace(s *domain.State) {
	c.engine.Backspace(s)
}

// Clear resets input and display, keeping history and memory.
func (c *Calculator) Clear(s *domain.State) {
	c.engine.Clear(s)
}

// ClearAll also resets the result and modifier flags.
func (c *Calculator) ClearAll(s *domain.State) {
	c.engine.ClearAll(s)
}

// SetMode switches the session's trig mode.
func (c *Calculator) SetMode(s *domain.State, mode domain.TrigMode) {
	c.engine.SetMode(s, mode)
}

// Calculate evaluates the accumulated input. See engine.Engine.Calculate
// for the success and failure contract.
func (c *Calculator) Calculate(s *domain.State) error {
	return c.engine.Calculate(s)
}

// MemoryStore stores the current value into slot (M+ accumulate semantics).
func (c *Calculator) MemoryStore(s *domain.State, slot string) error {
	return c.engine.MemoryStore(s, slot)
}

// MemoryStoreValue overwrites slot with an explicit decimal value.
func (c *Calculator) MemoryStoreValue(s *domain.State, slot, value string) error {
	return c.engine.MemoryStoreValue(s, slot, value)
}

// MemoryRecall inserts the slot value into the input.
func (c *Calculator) MemoryRecall(s *domain.State, slot string) error {
	return c.engine.MemoryRecall(s, slot)
}

// MemoryClear removes one slot, or all slots when slot is empty.
func (c *Calculator) MemoryClear(s *domain.State, slot string) error {
	return c.engine.MemoryClear(s, slot)
}

// Evaluate is the one-shot path: evaluate input in a throwaway session and
// return the display string. The throwaway session records nothing.
func (c *Calculator) Evaluate(input string, mode domain.TrigMode) (string, error) {
	if mode == "" {
		mode = c.mode
	}
	s := c.NewSession("")
	s.Mode = mode
	c.engine.Press(s, input)
	if err := c.engine.Calculate(s); err != nil {
		return "", err
	}
	return s.Result, nil
}

// Parse exposes the expression compiler for callers that want to validate
// input without evaluating it.
func (c *Calculator) Parse(input string) (*expr.Expr, error) {
	return expr.Parse(input)
}
