package abacus_test

import (
	"testing"

	"github.com/Anmol09876/abacus"
	"github.com/Anmol09876/abacus/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator_SessionDefaults(t *testing.T) {
	calc := abacus.New(
		abacus.WithTrigMode(domain.ModeRad),
		abacus.WithPrecision(6),
	)

	s := calc.NewSession("desk")
	assert.Equal(t, domain.ModeRad, s.Mode)
	assert.Equal(t, 6, s.Precision)
	assert.Equal(t, "0", s.Display)
}

func TestCalculator_EndToEnd(t *testing.T) {
	calc := abacus.New()
	s := calc.NewSession("desk")

	calc.Press(s, "sin(30)")
	require.NoError(t, calc.Calculate(s))
	assert.Equal(t, "0.5", s.Result)

	calc.Press(s, "+")
	calc.Press(s, "0.5")
	require.NoError(t, calc.Calculate(s))
	assert.Equal(t, "1", s.Result)

	require.NoError(t, calc.MemoryStore(s, "M"))
	assert.Equal(t, "1", s.Memory["M"])

	require.Len(t, s.History, 2)
	assert.Equal(t, "0.5+0.5 = 1", s.History[0].Annotation)
}

func TestCalculator_Evaluate(t *testing.T) {
	calc := abacus.New()

	result, err := calc.Evaluate("2+3*4", "")
	require.NoError(t, err)
	assert.Equal(t, "14", result)

	result, err = calc.Evaluate("sin(pi/2)", domain.ModeRad)
	require.NoError(t, err)
	assert.Equal(t, "1", result)

	_, err = calc.Evaluate("2+", "")
	require.ErrorIs(t, err, domain.ErrEvaluation)
}

func TestCalculator_Parse(t *testing.T) {
	calc := abacus.New()

	parsed, err := calc.Parse("1+2")
	require.NoError(t, err)
	assert.Equal(t, "1+2", parsed.Source())

	_, err = calc.Parse("1+")
	require.Error(t, err)
}
