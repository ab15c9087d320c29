// Package format turns raw float64 results into calculator display strings.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders a numeric value for the display.
//
// Rules, in order:
//   - NaN shows "Error", infinities show "∞" / "-∞".
//   - Short representations (under 15 characters after decimal
//     normalization) pass through unchanged.
//   - |v| > 1e10, or nonzero |v| < 1e-7, switches to scientific notation
//     at prec significant digits.
//   - Everything else is fixed notation at prec significant digits with
//     trailing zeros stripped.
//
// prec <= 0 falls back to 10 significant digits. The decimal normalization
// step (shortest round-trip decimal of the float, re-rounded half away from
// zero when trimming to prec digits) is what scrubs float noise like
// 0.49999999999999994 into 0.5.
func Format(v float64, prec int) string {
	if math.IsNaN(v) {
		return "Error"
	}
	if math.IsInf(v, 1) {
		return "∞"
	}
	if math.IsInf(v, -1) {
		return "-∞"
	}
	if prec <= 0 {
		prec = 10
	}

	d := decimal.NewFromFloat(v)
	plain := d.String()
	if len(plain) < 15 {
		return plain
	}

	abs := math.Abs(v)
	if abs > 1e10 || (v != 0 && abs < 1e-7) {
		return scientific(v, prec)
	}

	// Fixed notation, prec significant digits. Round to
	// prec-1-floor(log10) decimal places; negative place counts round
	// into the integer part.
	places := int32(prec-1) - int32(math.Floor(math.Log10(abs)))
	return d.Round(places).String()
}

func scientific(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'e', prec-1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	mantissa = strings.TrimRight(mantissa, "0")
	mantissa = strings.TrimSuffix(mantissa, ".")
	return mantissa + "e" + exp
}
