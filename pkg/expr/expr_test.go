package expr_test

import (
	"math"
	"testing"

	"github.com/Anmol09876/abacus/pkg/domain"
	"github.com/Anmol09876/abacus/pkg/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eval(t *testing.T, input string, mode domain.TrigMode) float64 {
	t.Helper()
	v, err := expr.Evaluate(input, mode)
	require.NoError(t, err, "input: %s", input)
	return v
}

func TestEvaluate_Arithmetic(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10-4-3", 3},     // left-associative
		{"2^3^2", 512},    // right-associative
		{"-2^2", -4},      // unary minus binds looser than ^
		{"(-2)^2", 4},
		{"10%3", 1},
		{"7/2", 3.5},
		{"5!", 120},
		{"3!!", 720},      // (3!)! = 6!
		{"2*-3", -6},
		{"1.5e2+1", 151},
		{"2e-1", 0.2},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, eval(t, tc.input, domain.ModeRad), 1e-12, tc.input)
	}
}

func TestEvaluate_Constants(t *testing.T) {
	assert.InDelta(t, math.Pi, eval(t, "pi", domain.ModeRad), 1e-15)
	assert.InDelta(t, math.E, eval(t, "e", domain.ModeRad), 1e-15)
	assert.InDelta(t, 2*math.Pi, eval(t, "tau", domain.ModeRad), 1e-15)

	// Keypad glyphs fold onto their ASCII spellings.
	assert.InDelta(t, 2*math.Pi, eval(t, "2×π", domain.ModeRad), 1e-15)
	assert.InDelta(t, math.Pi, eval(t, "τ÷2", domain.ModeRad), 1e-15)
	assert.InDelta(t, 4, eval(t, "√(16)", domain.ModeRad), 1e-15)
	assert.InDelta(t, -1, eval(t, "1−2", domain.ModeRad), 1e-15)
}

func TestEvaluate_TrigModes(t *testing.T) {
	// The same source evaluates differently per mode; scaling happens at
	// call evaluation, not by rewriting the input.
	assert.InDelta(t, 0.5, eval(t, "sin(30)", domain.ModeDeg), 1e-12)
	assert.InDelta(t, 1, eval(t, "sin(pi/2)", domain.ModeRad), 1e-12)
	assert.InDelta(t, 1, eval(t, "sin(100)", domain.ModeGrad), 1e-12)

	parsed, err := expr.Parse("cos(180)")
	require.NoError(t, err)
	deg, err := parsed.Eval(domain.ModeDeg)
	require.NoError(t, err)
	rad, err := parsed.Eval(domain.ModeRad)
	require.NoError(t, err)
	assert.InDelta(t, -1, deg, 1e-12)
	assert.InDelta(t, math.Cos(180), rad, 1e-12)
}

func TestEvaluate_InverseTrigScalesResult(t *testing.T) {
	assert.InDelta(t, 30, eval(t, "asin(0.5)", domain.ModeDeg), 1e-12)
	assert.InDelta(t, math.Pi/6, eval(t, "asin(0.5)", domain.ModeRad), 1e-12)
	assert.InDelta(t, 45, eval(t, "atan2(1,1)", domain.ModeDeg), 1e-12)
	assert.InDelta(t, 50, eval(t, "atan(1)", domain.ModeGrad), 1e-12)
}

func TestEvaluate_HyperbolicNeverScaled(t *testing.T) {
	// sinh takes a pure number; DEG must not shrink the argument.
	assert.Equal(t, eval(t, "sinh(1)", domain.ModeDeg), eval(t, "sinh(1)", domain.ModeRad))
	assert.InDelta(t, math.Sinh(1), eval(t, "sinh(1)", domain.ModeDeg), 1e-12)
}

func TestEvaluate_Functions(t *testing.T) {
	assert.InDelta(t, 2, eval(t, "log(100)", domain.ModeRad), 1e-12)
	assert.InDelta(t, 1, eval(t, "ln(e)", domain.ModeRad), 1e-12)
	assert.InDelta(t, 5, eval(t, "log2(32)", domain.ModeRad), 1e-12)
	assert.InDelta(t, 3, eval(t, "cbrt(27)", domain.ModeRad), 1e-12)
	assert.InDelta(t, 8, eval(t, "pow(2,3)", domain.ModeRad), 1e-12)
	assert.InDelta(t, 120, eval(t, "factorial(5)", domain.ModeRad), 1e-12)
	assert.InDelta(t, 4, eval(t, "floor(4.7)", domain.ModeRad), 1e-12)
}

func TestEvaluate_EulerVsExponent(t *testing.T) {
	// "2e3" is a number; "2*e" uses the constant; a dangling "2e" is an error.
	assert.InDelta(t, 2000, eval(t, "2e3", domain.ModeRad), 1e-12)
	assert.InDelta(t, 2*math.E, eval(t, "2*e", domain.ModeRad), 1e-12)
	_, err := expr.Evaluate("2e", domain.ModeRad)
	require.ErrorIs(t, err, expr.ErrSyntax)
}

func TestEvaluate_NonFinite(t *testing.T) {
	// Non-finite results are returned, not rejected; that call is the
	// engine's to make.
	v, err := expr.Evaluate("1/0", domain.ModeRad)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))

	v, err = expr.Evaluate("sqrt(-1)", domain.ModeRad)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))
}

func TestEvaluate_FactorialDomain(t *testing.T) {
	_, err := expr.Evaluate("(-1)!", domain.ModeRad)
	require.Error(t, err)
	_, err = expr.Evaluate("2.5!", domain.ModeRad)
	require.Error(t, err)

	// 171! overflows float64 into +Inf without erroring here.
	v, err := expr.Evaluate("171!", domain.ModeRad)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))
}

func TestParse_SyntaxErrors(t *testing.T) {
	for _, input := range []string{
		"2+",
		"(2",
		"2)",
		"sin()",
		"sin(1,2)",
		"atan2(1)",
		"nope(1)",
		"bogus",
		"2 3",
		"..",
		"*2",
		"1,2",
		"",
	} {
		_, err := expr.Parse(input)
		require.ErrorIs(t, err, expr.ErrSyntax, "input: %q", input)
	}
}

func TestParse_SourceRoundTrip(t *testing.T) {
	parsed, err := expr.Parse("2+3*4")
	require.NoError(t, err)
	assert.Equal(t, "2+3*4", parsed.Source())
}
