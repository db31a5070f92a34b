package assetinput

import (
	"strconv"
	"sync"
)

// Signature identifies an input for re-entrancy purposes.
func Signature(raw string, inputValid bool) string {
	return strconv.FormatBool(inputValid) + "|" + raw
}

// Guard remembers the last input signature a caller ran the engine for. The zero value is
// ready to use and matches nothing.
type Guard struct {
	mu   sync.Mutex
	last string
	set  bool
}

// Swap stores sig and reports whether it differs from the previous one.
func (g *Guard) Swap(sig string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.set && g.last == sig {
		return false
	}
	g.last, g.set = sig, true
	return true
}

// IsCurrent reports whether sig is the most recently stored signature.
func (g *Guard) IsCurrent(sig string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.set && g.last == sig
}

// Reset forgets the stored signature so the next input always runs.
func (g *Guard) Reset() {
	g.mu.Lock()
	g.last, g.set = "", false
	g.mu.Unlock()
}

// Release forgets sig if it is still the stored signature, so a run dropped on
// cancellation can be retried with the same input.
func (g *Guard) Release(sig string) {
	g.mu.Lock()
	if g.set && g.last == sig {
		g.last, g.set = "", false
	}
	g.mu.Unlock()
}
