package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bank maps single-letter memory slot names to stored decimal strings.
// Values are kept as strings so persistence stays exact; arithmetic on them
// goes through decimal, never float64.
type Bank map[string]string

// Set stores value into slot, overwriting any previous content.
func (b Bank) Set(slot, value string) {
	b[slot] = value
}

// Add stores value into slot with M+ semantics: if the slot already holds a
// value, the new content is the exact decimal sum of old and new. Returns
// the stored string.
func (b Bank) Add(slot, value string) (string, error) {
	v, err := decimal.NewFromString(value)
	if err != nil {
		return "", fmt.Errorf("value %q is not a number: %w", value, err)
	}

	if old, ok := b[slot]; ok {
		prev, err := decimal.NewFromString(old)
		if err != nil {
			return "", fmt.Errorf("slot %s holds a corrupt value %q: %w", slot, old, err)
		}
		v = prev.Add(v)
	}

	s := v.String()
	b[slot] = s
	return s, nil
}

// Recall returns the slot content, reporting whether the slot was set.
func (b Bank) Recall(slot string) (string, bool) {
	v, ok := b[slot]
	return v, ok
}

// Clear removes a single slot. Clearing a missing slot is a no-op.
func (b Bank) Clear(slot string) {
	delete(b, slot)
}

// ClearAll empties the whole bank.
func (b Bank) ClearAll() {
	for k := range b {
		delete(b, k)
	}
}

// ValidSlot reports whether name is a usable slot name: one ASCII letter.
func ValidSlot(name string) bool {
	if len(name) != 1 {
		return false
	}
	c := name[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
