// Package engine implements the calculation runtime: input accumulation,
// the calculate path, and the memory bank operations. It owns no state of
// its own; every operation mutates the *domain.State it is handed, keeping
// the display invariant intact at each boundary.
package engine

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/Anmol09876/abacus/internal/format"
	"github.com/Anmol09876/abacus/internal/logging"
	"github.com/Anmol09876/abacus/pkg/domain"
	"github.com/Anmol09876/abacus/pkg/expr"
	"github.com/shopspring/decimal"
)

// Engine applies calculator operations to session states.
type Engine struct {
	logger       *slog.Logger
	historyLimit int
	strictRecall bool
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for calculation events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHistoryLimit overrides the history cap (default 100).
func WithHistoryLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.historyLimit = n
		}
	}
}

// WithStrictRecall makes recalling an empty memory slot an error instead of
// a silent no-op.
func WithStrictRecall(strict bool) Option {
	return func(e *Engine) {
		e.strictRecall = strict
	}
}

// New creates an Engine with defaults: no-op logger, 100-entry history,
// lenient memory recall.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:       logging.NewNop(),
		historyLimit: domain.DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// continuers are tokens that extend a finished calculation rather than
// start a new one.
func isOperator(token string) bool {
	if token == "" {
		return false
	}
	return strings.ContainsRune("+-*/^%!)", rune(token[0])) ||
		strings.HasPrefix(token, "−") || strings.HasPrefix(token, "×") || strings.HasPrefix(token, "÷")
}

// Press appends one keypad token to the input.
//
// After a calculation, a numeric token starts a new expression while an
// operator token continues from the previous result. Any active error is
// cleared.
func (e *Engine) Press(s *domain.State, token string) {
	s.Err = ""
	if token == "" {
		s.Display = displayFor(s)
		return
	}

	if s.Result != "" {
		if isOperator(token) {
			s.Input = s.Result + token
		} else {
			s.Input = token
		}
		s.Result = ""
	} else {
		s.Input += token
	}
	s.Display = s.Input
}

// Backspace removes the last rune of the input. The result and any error
// are cleared; an emptied input falls back to the "0" glyph.
func (e *Engine) Backspace(s *domain.State) {
	s.Result = ""
	s.Err = ""
	if s.Input != "" {
		runes := []rune(s.Input)
		s.Input = string(runes[:len(runes)-1])
	}
	s.Display = displayFor(s)
}

// Clear resets the input and display, preserving history and memory.
func (e *Engine) Clear(s *domain.State) {
	s.Input = ""
	s.Err = ""
	s.Display = domain.EmptyDisplay
}

// ClearAll additionally resets the result and the modifier flags.
// History and memory are preserved.
func (e *Engine) ClearAll(s *domain.State) {
	s.Input = ""
	s.Result = ""
	s.Err = ""
	s.Shift = false
	s.Inverse = false
	s.Hyperbolic = false
	s.Display = domain.EmptyDisplay
}

// SetMode switches the trig mode. It does not disturb input or result.
func (e *Engine) SetMode(s *domain.State, mode domain.TrigMode) {
	s.Mode = mode
}

// Calculate evaluates the accumulated input.
//
// On success it sets Result and Display, prepends a history entry with the
// annotation "<input> = <result>", and clears any error. On failure it sets
// a user-visible error message and leaves input, display and history
// untouched; the session stays fully usable.
//
// An empty input is a no-op.
func (e *Engine) Calculate(s *domain.State) error {
	if s.Input == "" {
		return nil
	}

	fail := func(err error) error {
		s.Err = "Invalid expression"
		e.logger.Warn("calculation failed", "input", s.Input, "err", err)
		return fmt.Errorf("%w: %v", domain.ErrEvaluation, err)
	}

	parsed, err := expr.Parse(s.Input)
	if err != nil {
		return fail(err)
	}
	v, err := parsed.Eval(s.Mode)
	if err != nil {
		return fail(err)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fail(fmt.Errorf("result is not a finite number"))
	}

	out := format.Format(v, s.Precision)
	annotation := s.Input + " = " + out

	s.History.Push(domain.Entry{
		Input:      s.Input,
		Result:     out,
		Annotation: annotation,
	}, e.historyLimit)

	s.Result = out
	s.Display = out
	s.Err = ""
	e.logger.Info("calculated", "input", s.Input, "result", out, "mode", s.Mode)
	return nil
}

// MemoryStore stores the current value into slot with M+ semantics: an
// occupied slot accumulates, an empty one is set. The current value is the
// result if present, else the display, else the input.
func (e *Engine) MemoryStore(s *domain.State, slot string) error {
	slot, err := normalizeSlot(slot)
	if err != nil {
		return err
	}

	value := s.Result
	if value == "" {
		value = s.Display
	}
	if value == "" {
		value = s.Input
	}

	stored, err := s.Memory.Add(slot, value)
	if err != nil {
		return fmt.Errorf("memory store: %w", err)
	}
	e.logger.Debug("memory stored", "slot", slot, "value", stored)
	return nil
}

// MemoryStoreValue overwrites slot with an explicit decimal value. The M−
// key uses this after precomputing old − current.
func (e *Engine) MemoryStoreValue(s *domain.State, slot, value string) error {
	slot, err := normalizeSlot(slot)
	if err != nil {
		return err
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("memory store: value %q is not a number: %w", value, err)
	}
	s.Memory.Set(slot, d.String())
	return nil
}

// MemoryRecall inserts the slot value into the input, following the same
// replace-or-append rule as Press. A miss is a silent no-op unless the
// engine was built with WithStrictRecall.
func (e *Engine) MemoryRecall(s *domain.State, slot string) error {
	slot, err := normalizeSlot(slot)
	if err != nil {
		return err
	}
	value, ok := s.Memory.Recall(slot)
	if !ok {
		if e.strictRecall {
			return fmt.Errorf("recall %s: %w", slot, domain.ErrEmptySlot)
		}
		return nil
	}

	s.Err = ""
	if s.Result != "" {
		s.Input = value
		s.Result = ""
	} else {
		s.Input += value
	}
	s.Display = s.Input
	return nil
}

// MemoryClear removes a single slot, or the whole bank when slot is empty.
func (e *Engine) MemoryClear(s *domain.State, slot string) error {
	if slot == "" {
		s.Memory.ClearAll()
		return nil
	}
	slot, err := normalizeSlot(slot)
	if err != nil {
		return err
	}
	s.Memory.Clear(slot)
	return nil
}

func normalizeSlot(slot string) (string, error) {
	if !domain.ValidSlot(slot) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidSlot, slot)
	}
	return strings.ToUpper(slot), nil
}

func displayFor(s *domain.State) string {
	switch {
	case s.Input != "":
		return s.Input
	case s.Result != "":
		return s.Result
	}
	return domain.EmptyDisplay
}
