package domain_test

import (
	"fmt"
	"testing"

	"github.com/Anmol09876/abacus/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState_Defaults(t *testing.T) {
	s := domain.NewState("desk")
	assert.Equal(t, "desk", s.SessionID)
	assert.Equal(t, domain.EmptyDisplay, s.Display)
	assert.Equal(t, domain.ModeDeg, s.Mode)
	assert.Equal(t, domain.DefaultPrecision, s.Precision)
	assert.NotNil(t, s.Memory)
	assert.Empty(t, s.History)
}

func TestParseTrigMode(t *testing.T) {
	for _, raw := range []string{"DEG", "deg", "Deg"} {
		mode, err := domain.ParseTrigMode(raw)
		require.NoError(t, err)
		assert.Equal(t, domain.ModeDeg, mode)
	}

	mode, err := domain.ParseTrigMode("grad")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeGrad, mode)

	_, err = domain.ParseTrigMode("degrees")
	require.Error(t, err)
	_, err = domain.ParseTrigMode("")
	require.Error(t, err)
}

func TestLedger_PushOrderAndEviction(t *testing.T) {
	var l domain.Ledger
	for i := 1; i <= 4; i++ {
		l.Push(domain.Entry{Input: fmt.Sprintf("%d", i)}, 3)
	}

	require.Len(t, l, 3)
	assert.Equal(t, "4", l[0].Input)
	assert.Equal(t, "3", l[1].Input)
	assert.Equal(t, "2", l[2].Input)

	l.Clear()
	assert.Empty(t, l)
}

func TestBank_AddAccumulates(t *testing.T) {
	b := make(domain.Bank)

	stored, err := b.Add("M", "5")
	require.NoError(t, err)
	assert.Equal(t, "5", stored)

	stored, err = b.Add("M", "2.5")
	require.NoError(t, err)
	assert.Equal(t, "7.5", stored)

	// Exactness where float64 would drift.
	b.Set("D", "0.1")
	stored, err = b.Add("D", "0.2")
	require.NoError(t, err)
	assert.Equal(t, "0.3", stored)

	_, err = b.Add("M", "not-a-number")
	require.Error(t, err)
}

func TestValidSlot(t *testing.T) {
	assert.True(t, domain.ValidSlot("M"))
	assert.True(t, domain.ValidSlot("z"))
	assert.False(t, domain.ValidSlot(""))
	assert.False(t, domain.ValidSlot("MM"))
	assert.False(t, domain.ValidSlot("1"))
	assert.False(t, domain.ValidSlot("π"))
}
