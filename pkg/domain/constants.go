package domain

import (
	"fmt"
	"strings"
)

// TrigMode governs how trigonometric function arguments are interpreted.
type TrigMode string

const (
	ModeDeg  TrigMode = "DEG"  // degrees, the startup default
	ModeRad  TrigMode = "RAD"  // radians
	ModeGrad TrigMode = "GRAD" // gradians (400 per full turn)
)

// ParseTrigMode maps a case-insensitive mode name to a TrigMode.
func ParseTrigMode(s string) (TrigMode, error) {
	switch strings.ToUpper(s) {
	case "DEG":
		return ModeDeg, nil
	case "RAD":
		return ModeRad, nil
	case "GRAD":
		return ModeGrad, nil
	}
	return "", fmt.Errorf("unknown angle mode %q (want DEG, RAD or GRAD)", s)
}

const (
	// DefaultPrecision is the number of significant digits shown on the display.
	DefaultPrecision = 10

	// DefaultHistoryLimit caps the calculation ledger. The oldest entry is
	// evicted when a new one would exceed it.
	DefaultHistoryLimit = 100

	// EmptyDisplay is what the display shows when there is nothing to show.
	EmptyDisplay = "0"
)
