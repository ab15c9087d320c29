package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrEvaluation is the sentinel wrapped by every failed calculation.
var ErrEvaluation = errors.New("expression evaluation failed")

// ErrEmptySlot is returned by strict-recall engines when the requested
// memory slot holds no value. Non-strict engines treat the miss as a no-op.
var ErrEmptySlot = errors.New("memory slot is empty")

// ErrInvalidSlot is returned when a memory slot name is not a single letter.
var ErrInvalidSlot = errors.New("invalid memory slot name")
