package format_test

import (
	"math"
	"testing"

	"github.com/Anmol09876/abacus/internal/format"
	"github.com/stretchr/testify/assert"
)

func TestFormat_SpecialValues(t *testing.T) {
	assert.Equal(t, "Error", format.Format(math.NaN(), 10))
	assert.Equal(t, "∞", format.Format(math.Inf(1), 10))
	assert.Equal(t, "-∞", format.Format(math.Inf(-1), 10))
}

func TestFormat_ShortPassThrough(t *testing.T) {
	assert.Equal(t, "0", format.Format(0, 10))
	assert.Equal(t, "14", format.Format(14, 10))
	assert.Equal(t, "3.5", format.Format(3.5, 10))
	assert.Equal(t, "-42", format.Format(-42, 10))
	// Under 15 characters, even tiny values stay in plain notation.
	assert.Equal(t, "0.00000001", format.Format(1e-8, 10))
}

func TestFormat_ScrubsFloatNoise(t *testing.T) {
	// sin(30°) computed through radians.
	assert.Equal(t, "0.5", format.Format(math.Sin(math.Pi/6), 10))
	// 0.1+0.2 in binary floats.
	assert.Equal(t, "0.3", format.Format(0.1+0.2, 10))
}

func TestFormat_FixedSignificantDigits(t *testing.T) {
	assert.Equal(t, "0.3333333333", format.Format(1.0/3.0, 10))
	// Rounds half away from zero at the trim point.
	assert.Equal(t, "0.6666666667", format.Format(2.0/3.0, 10))
	assert.Equal(t, "-0.6666666667", format.Format(-2.0/3.0, 10))
	assert.Equal(t, "3.141592654", format.Format(math.Pi, 10))
}

func TestFormat_Scientific(t *testing.T) {
	assert.Equal(t, "1.23456789e+15", format.Format(1.23456789e15, 10))
	assert.Equal(t, "1.23456789e-08", format.Format(1.23456789e-8, 10))
	assert.Equal(t, "-1.23456789e+15", format.Format(-1.23456789e15, 10))
	// Mantissa is trimmed of trailing zeros.
	assert.Equal(t, "1e+20", format.Format(1e20, 10))
}

func TestFormat_PrecisionFallback(t *testing.T) {
	// Non-positive precision falls back to 10 significant digits.
	assert.Equal(t, "0.3333333333", format.Format(1.0/3.0, 0))
	assert.Equal(t, "0.333333", format.Format(1.0/3.0, 6))
}
