package session

import (
	"context"
	"log"
	"time"

	"github.com/zhouzirui/love-arena/internal/model/session"
)

// Sweeper periodically evicts sessions that outlived their TTL, so a
// story nobody touches still disappears within one sweep interval of
// crossing it. It shares the per-scope locking of the service, so a
// sweep never races a concurrent dispatch on the same session.
type Sweeper struct {
	svc      *Service
	interval time.Duration
}

// NewSweeper returns a sweeper over svc running at the engine's sweep
// interval.
func NewSweeper(svc *Service) *Sweeper {
	return &Sweeper{svc: svc, interval: session.SweepInterval}
}

// Run blocks, sweeping every interval until ctx is cancelled.
func (w *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("[sweeper] running every %s", w.interval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[sweeper] stopped")
			return
		case <-ticker.C:
			w.svc.SweepExpired()
		}
	}
}

// SweepExpired evicts every expired session across all scopes and
// returns how many were removed. Scope keys are snapshotted up front so
// the pass never iterates a map another goroutine may grow; a failure
// in one scope is logged and does not stop the rest of the pass.
func (s *Service) SweepExpired() int {
	s.mu.Lock()
	scopes := make([]*scopeState, 0, len(s.scopes))
	for _, st := range s.scopes {
		scopes = append(scopes, st)
	}
	s.mu.Unlock()

	removed := 0
	for _, st := range scopes {
		removed += s.sweepScope(st)
	}
	return removed
}

func (s *Service) sweepScope(st *scopeState) (removed int) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[sweeper] scope sweep failed, retrying next tick: %v", r)
		}
	}()

	st.mu.Lock()
	defer st.mu.Unlock()

	now := s.now()
	ids := make([]string, 0, len(st.sessions))
	for id := range st.sessions {
		ids = append(ids, id)
	}
	for _, id := range ids {
		sess := st.sessions[id]
		if sess.Expired(now) {
			st.end(sess)
			removed++
		}
	}
	return removed
}
