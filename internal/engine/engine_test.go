package engine_test

import (
	"fmt"
	"testing"

	"github.com/Anmol09876/abacus/internal/engine"
	"github.com/Anmol09876/abacus/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession() *domain.State {
	return domain.NewState("test")
}

func press(e *engine.Engine, s *domain.State, tokens ...string) {
	for _, tok := range tokens {
		e.Press(s, tok)
	}
}

func TestPress_AccumulatesAndMirrorsDisplay(t *testing.T) {
	e := engine.New()
	s := newSession()

	assert.Equal(t, "0", s.Display)

	press(e, s, "2", "+", "3")
	assert.Equal(t, "2+3", s.Input)
	assert.Equal(t, "2+3", s.Display)
}

func TestPress_AfterResult(t *testing.T) {
	e := engine.New()
	s := newSession()

	press(e, s, "2+3")
	require.NoError(t, e.Calculate(s))
	require.Equal(t, "5", s.Result)

	t.Run("operator continues from result", func(t *testing.T) {
		e.Press(s, "+")
		assert.Equal(t, "5+", s.Input)
		assert.Empty(t, s.Result)
	})

	t.Run("digit starts fresh", func(t *testing.T) {
		e.Press(s, "7")
		require.NoError(t, e.Calculate(s))
		e.Press(s, "9")
		assert.Equal(t, "9", s.Input)
	})
}

func TestBackspace(t *testing.T) {
	e := engine.New()
	s := newSession()

	press(e, s, "12+3")
	e.Backspace(s)
	assert.Equal(t, "12+", s.Input)

	// Backspace undoes a single press of a single character.
	press(e, s, "4")
	e.Backspace(s)
	assert.Equal(t, "12+", s.Input)

	// Multi-byte input trims one rune, not one byte.
	press(e, s, "π")
	e.Backspace(s)
	assert.Equal(t, "12+", s.Input)

	for range 3 {
		e.Backspace(s)
	}
	assert.Empty(t, s.Input)
	assert.Equal(t, "0", s.Display)

	// Backspace on empty input is a no-op.
	e.Backspace(s)
	assert.Equal(t, "0", s.Display)
}

func TestClear_PreservesHistoryAndMemory(t *testing.T) {
	e := engine.New()
	s := newSession()

	press(e, s, "1+1")
	require.NoError(t, e.Calculate(s))
	require.NoError(t, e.MemoryStore(s, "M"))

	press(e, s, "9")
	e.Clear(s)
	assert.Empty(t, s.Input)
	assert.Equal(t, "0", s.Display)
	assert.Len(t, s.History, 1)
	assert.Equal(t, "2", s.Memory["M"])
}

func TestClearAll_ResetsModifiers(t *testing.T) {
	e := engine.New()
	s := newSession()
	s.Shift = true
	s.Inverse = true
	s.Hyperbolic = true

	press(e, s, "5")
	require.NoError(t, e.Calculate(s))

	e.ClearAll(s)
	assert.Empty(t, s.Input)
	assert.Empty(t, s.Result)
	assert.Equal(t, "0", s.Display)
	assert.False(t, s.Shift)
	assert.False(t, s.Inverse)
	assert.False(t, s.Hyperbolic)
	assert.Len(t, s.History, 1)
}

func TestCalculate_Success(t *testing.T) {
	e := engine.New()
	s := newSession()

	press(e, s, "2+3*4")
	require.NoError(t, e.Calculate(s))

	assert.Equal(t, "14", s.Result)
	assert.Equal(t, "14", s.Display)
	require.Len(t, s.History, 1)
	assert.Equal(t, "2+3*4", s.History[0].Input)
	assert.Equal(t, "14", s.History[0].Result)
	assert.Equal(t, "2+3*4 = 14", s.History[0].Annotation)
}

func TestCalculate_EmptyInputIsNoOp(t *testing.T) {
	e := engine.New()
	s := newSession()

	require.NoError(t, e.Calculate(s))
	assert.Empty(t, s.Result)
	assert.Empty(t, s.History)
}

func TestCalculate_ErrorLeavesSessionUsable(t *testing.T) {
	e := engine.New()
	s := newSession()

	press(e, s, "2+")
	err := e.Calculate(s)
	require.ErrorIs(t, err, domain.ErrEvaluation)

	assert.Equal(t, "Invalid expression", s.Err)
	assert.Equal(t, "2+", s.Input)
	assert.Equal(t, "2+", s.Display)
	assert.Empty(t, s.Result)
	assert.Empty(t, s.History)

	// Finishing the expression recovers.
	press(e, s, "3")
	assert.Empty(t, s.Err)
	require.NoError(t, e.Calculate(s))
	assert.Equal(t, "5", s.Result)
}

func TestCalculate_RejectsNonFiniteResults(t *testing.T) {
	e := engine.New()
	s := newSession()

	for _, input := range []string{"1/0", "sqrt(-1)", "171!"} {
		e.ClearAll(s)
		press(e, s, input)
		err := e.Calculate(s)
		require.ErrorIs(t, err, domain.ErrEvaluation, "input: %s", input)
		assert.Equal(t, "Invalid expression", s.Err)
	}
	assert.Empty(t, s.History)
}

func TestCalculate_TrigModeScaling(t *testing.T) {
	e := engine.New()
	s := newSession()

	press(e, s, "sin(30)")
	require.NoError(t, e.Calculate(s))
	assert.Equal(t, "0.5", s.Result)

	e.SetMode(s, domain.ModeGrad)
	e.Press(s, "sin(100)")
	require.NoError(t, e.Calculate(s))
	assert.Equal(t, "1", s.Result)
}

func TestCalculate_HistoryLimit(t *testing.T) {
	e := engine.New(engine.WithHistoryLimit(3))
	s := newSession()

	for i := 1; i <= 5; i++ {
		e.ClearAll(s)
		press(e, s, fmt.Sprintf("%d+0", i))
		require.NoError(t, e.Calculate(s))
	}

	require.Len(t, s.History, 3)
	// Most recent first; the two oldest were evicted.
	assert.Equal(t, "5+0", s.History[0].Input)
	assert.Equal(t, "4+0", s.History[1].Input)
	assert.Equal(t, "3+0", s.History[2].Input)
}

func TestMemoryStore_Accumulates(t *testing.T) {
	e := engine.New()
	s := newSession()

	press(e, s, "5")
	require.NoError(t, e.Calculate(s))

	require.NoError(t, e.MemoryStore(s, "m"))
	assert.Equal(t, "5", s.Memory["M"], "slot names are uppercased")

	require.NoError(t, e.MemoryStore(s, "M"))
	assert.Equal(t, "10", s.Memory["M"])

	// Decimal accumulation stays exact.
	e.ClearAll(s)
	press(e, s, "0.1")
	require.NoError(t, e.Calculate(s))
	require.NoError(t, e.MemoryStoreValue(s, "D", "0.1"))
	require.NoError(t, e.MemoryStore(s, "D"))
	require.NoError(t, e.MemoryStore(s, "D"))
	assert.Equal(t, "0.3", s.Memory["D"])
}

func TestMemoryStore_InvalidSlot(t *testing.T) {
	e := engine.New()
	s := newSession()

	for _, slot := range []string{"", "MM", "1", "!"} {
		err := e.MemoryStore(s, slot)
		require.ErrorIs(t, err, domain.ErrInvalidSlot, "slot: %q", slot)
	}
}

func TestMemoryRecall(t *testing.T) {
	e := engine.New()
	s := newSession()

	require.NoError(t, e.MemoryStoreValue(s, "A", "42"))

	t.Run("appends while typing", func(t *testing.T) {
		press(e, s, "1+")
		require.NoError(t, e.MemoryRecall(s, "A"))
		assert.Equal(t, "1+42", s.Input)
	})

	t.Run("replaces a finished result", func(t *testing.T) {
		require.NoError(t, e.Calculate(s))
		require.NoError(t, e.MemoryRecall(s, "A"))
		assert.Equal(t, "42", s.Input)
		assert.Empty(t, s.Result)
	})

	t.Run("miss is silent by default", func(t *testing.T) {
		before := s.Input
		require.NoError(t, e.MemoryRecall(s, "Z"))
		assert.Equal(t, before, s.Input)
	})
}

func TestMemoryRecall_Strict(t *testing.T) {
	e := engine.New(engine.WithStrictRecall(true))
	s := newSession()

	err := e.MemoryRecall(s, "Z")
	require.ErrorIs(t, err, domain.ErrEmptySlot)
}

func TestMemoryClear(t *testing.T) {
	e := engine.New()
	s := newSession()

	require.NoError(t, e.MemoryStoreValue(s, "A", "1"))
	require.NoError(t, e.MemoryStoreValue(s, "B", "2"))

	require.NoError(t, e.MemoryClear(s, "A"))
	assert.NotContains(t, s.Memory, "A")
	assert.Contains(t, s.Memory, "B")

	require.NoError(t, e.MemoryClear(s, ""))
	assert.Empty(t, s.Memory)
}
