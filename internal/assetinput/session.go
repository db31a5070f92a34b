package assetinput

import (
	"context"
	"sync"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/metrics"
)

// Session serves one input element. A new signature cancels the in-flight run and any
// result from a superseded run is dropped.
type Session struct {
	engine *Engine
	guard  Guard

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewSession binds a session to engine.
func NewSession(engine *Engine) *Session {
	return &Session{engine: engine}
}

// Submit runs args unless its signature matches the previous submission. It returns nil for
// unchanged input, for missing preconditions, and for runs superseded or cancelled while in
// flight. A cancelled run does not count as seen, so resubmitting the same input runs again.
func (s *Session) Submit(ctx context.Context, args Args) *Outcome {
	if !ready(args) {
		return nil
	}
	sig := Signature(args.RawInput, args.InputValid)

	s.mu.Lock()
	if !s.guard.Swap(sig) {
		s.mu.Unlock()
		metrics.GuardSkipsTotal.Inc()
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.seq++
	mine := s.seq
	s.cancel = cancel
	s.mu.Unlock()

	out := s.engine.run(runCtx, args, sig)

	s.mu.Lock()
	stale := s.seq != mine
	if !stale {
		s.cancel = nil
		if out == nil {
			// only the caller's ctx can cancel a current run
			s.guard.Release(sig)
		}
	}
	s.mu.Unlock()
	cancel()

	if stale {
		return nil
	}
	return out
}

// IsCurrent reports whether out belongs to the latest submitted input.
func (s *Session) IsCurrent(out *Outcome) bool {
	return out != nil && s.guard.IsCurrent(out.Signature)
}

// Stop cancels the in-flight run and forgets the stored signature, as when the owning
// element is torn down.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	s.guard.Reset()
	s.mu.Unlock()
}
