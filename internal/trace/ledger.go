// Package trace records validation runs: an in-memory ledger for inspection, a JSONL file for
// later analysis and OpenTelemetry spans for live tracing.
package trace

import (
	"sync"
	"time"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/assetinput"
)

// Session is one recorded validation run.
type Session struct {
	Start       assetinput.TraceStart   `json:"start"`
	Transitions []assetinput.Transition `json:"transitions"`
	Final       assetinput.State        `json:"final"`
	Finished    bool                    `json:"finished"`
	StartedAt   time.Time               `json:"startedAt"`
	FinishedAt  time.Time               `json:"finishedAt,omitempty"`
}

// Ledger stores sessions in memory, dropping the oldest once capacity is reached.
type Ledger struct {
	mu       sync.Mutex
	capacity int
	order    []string
	sessions map[string]*Session
	now      func() time.Time
}

// NewLedger creates an empty ledger. capacity <= 0 keeps every session.
func NewLedger(capacity int) *Ledger {
	if capacity < 0 {
		capacity = 0
	}
	return &Ledger{capacity: capacity, sessions: make(map[string]*Session), now: time.Now}
}

// OnStart opens a session.
func (l *Ledger) OnStart(start assetinput.TraceStart) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.sessions[start.ID]; ok {
		return
	}
	l.sessions[start.ID] = &Session{Start: start, StartedAt: l.now()}
	l.order = append(l.order, start.ID)
	if l.capacity > 0 && len(l.order) > l.capacity {
		delete(l.sessions, l.order[0])
		l.order = l.order[1:]
	}
}

// OnTransition appends t to the session. Transitions for unknown sessions are dropped.
func (l *Ledger) OnTransition(id string, t assetinput.Transition) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.sessions[id]; ok {
		s.Transitions = append(s.Transitions, t)
	}
}

// OnFinish closes the session.
func (l *Ledger) OnFinish(id string, final assetinput.State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.sessions[id]; ok {
		s.Final, s.Finished, s.FinishedAt = final, true, l.now()
	}
}

// Get returns a copy of one session.
func (l *Ledger) Get(id string) (Session, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.sessions[id]
	if !ok {
		return Session{}, false
	}
	return copySession(s), true
}

// Snapshot returns copies of the stored sessions, oldest first.
func (l *Ledger) Snapshot() []Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Session, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, copySession(l.sessions[id]))
	}
	return out
}

// Reset clears all stored sessions.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.order = l.order[:0]
	l.sessions = make(map[string]*Session)
	l.mu.Unlock()
}

func copySession(s *Session) Session {
	out := *s
	out.Transitions = append([]assetinput.Transition(nil), s.Transitions...)
	return out
}
