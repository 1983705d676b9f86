package utils

import (
	"time"

	"github.com/bep/debounce"
)

// Debouncer runs only the last function handed to Trigger once no new call
// has arrived for the wait duration. It is safe for concurrent use.
type Debouncer struct {
	debounced func(f func())
}

// NewDebouncer creates a trailing-edge Debouncer.
func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{debounced: debounce.New(wait)}
}

// Trigger (re)starts the wait timer with fn as the pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.debounced(fn)
}

// Debounce wraps fn so that bursts of calls collapse into a single call,
// made wait after the last one.
func Debounce(fn func(), wait time.Duration) func() {
	d := NewDebouncer(wait)
	return func() {
		d.Trigger(fn)
	}
}
