package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	model "github.com/zhouzirui/love-arena/internal/model/session"
	sessionservice "github.com/zhouzirui/love-arena/internal/service/session"
)

// fakeClock drives cooldown and expiry math deterministically.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 2, 14, 20, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newService() (*sessionservice.Service, *fakeClock) {
	clk := newFakeClock()
	return sessionservice.NewServiceWithClock(clk.Now), clk
}

func TestAdmitCreatesInitSession(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	sess, err := svc.Admit(ctx, "g1", model.ModeProposal, "alice", "bob")
	if err != nil {
		t.Fatalf("Admit err: %v", err)
	}
	if sess.Stage != model.StageInit {
		t.Fatalf("unexpected stage: %s", sess.Stage)
	}
	if sess.Status != model.StatusActive {
		t.Fatalf("unexpected status: %s", sess.Status)
	}
	if sess.Rejections != 0 {
		t.Fatalf("unexpected rejections: %d", sess.Rejections)
	}

	got, ok := svc.Get(ctx, "g1", sess.ID)
	if !ok {
		t.Fatal("session not found after Admit")
	}
	if got.ID != sess.ID {
		t.Fatalf("unexpected session ID: got %s want %s", got.ID, sess.ID)
	}
}

func TestAdmitCooldown(t *testing.T) {
	svc, clk := newService()
	ctx := context.Background()

	if _, err := svc.Admit(ctx, "g1", model.ModeProposal, "alice", "bob"); err != nil {
		t.Fatalf("first Admit err: %v", err)
	}

	_, err := svc.Admit(ctx, "g1", model.ModeProposal, "alice", "carol")
	var rl *sessionservice.RateLimitedError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitedError, got %v", err)
	}
	if rl.RetryAfter <= 0 || rl.RetryAfter > model.CooldownWindow {
		t.Fatalf("unexpected RetryAfter: %s", rl.RetryAfter)
	}

	// A different mode is a separate cooldown key.
	if _, err := svc.Admit(ctx, "g1", model.ModePrank, "alice", "carol"); err != nil {
		t.Fatalf("other-mode Admit err: %v", err)
	}

	clk.Advance(model.CooldownWindow)
	if _, err := svc.Admit(ctx, "g1", model.ModeProposal, "alice", "carol"); err != nil {
		t.Fatalf("post-window Admit err: %v", err)
	}
}

func TestAdmitScopeCapacity(t *testing.T) {
	svc, clk := newService()
	ctx := context.Background()

	for i := 0; i < model.MaxScopeSessions; i++ {
		initiator := fmt.Sprintf("user-%d", i)
		if _, err := svc.Admit(ctx, "g1", model.ModeProposal, initiator, "bob"); err != nil {
			t.Fatalf("Admit %d err: %v", i, err)
		}
	}

	if _, err := svc.Admit(ctx, "g1", model.ModeProposal, "late", "bob"); !errors.Is(err, sessionservice.ErrScopeCapacity) {
		t.Fatalf("expected ErrScopeCapacity, got %v", err)
	}

	// Other scopes are unaffected.
	if _, err := svc.Admit(ctx, "g2", model.ModeProposal, "late", "bob"); err != nil {
		t.Fatalf("other-scope Admit err: %v", err)
	}

	// Ending one session frees a slot.
	if _, err := svc.Admit(ctx, "g1", model.ModeBreakup, "pair-a", "pair-b"); !errors.Is(err, sessionservice.ErrScopeCapacity) {
		t.Fatalf("expected ErrScopeCapacity before drain, got %v", err)
	}

	victim, ok := anyLiveSession(svc, "g1")
	if !ok {
		t.Fatal("no live session to end")
	}
	out := svc.Dispatch(ctx, "g1", victim.ID, victim.Initiator, model.ActionConfess)
	if out.Kind != model.OutcomeOK {
		t.Fatalf("confess outcome: %s", out.Kind)
	}
	out = svc.Dispatch(ctx, "g1", victim.ID, "bob", model.ActionAccept)
	if out.Kind != model.OutcomeOK || !out.Terminal {
		t.Fatalf("accept outcome: %+v", out)
	}

	clk.Advance(model.CooldownWindow)
	if _, err := svc.Admit(ctx, "g1", model.ModeProposal, "late", "dave"); err != nil {
		t.Fatalf("Admit after drain err: %v", err)
	}
}

func TestAdmitInitiatorCapacity(t *testing.T) {
	svc, clk := newService()
	ctx := context.Background()

	modes := []model.Mode{model.ModeProposal, model.ModeCrush, model.ModePrank}
	for i, mode := range modes {
		if _, err := svc.Admit(ctx, "g1", mode, "alice", fmt.Sprintf("target-%d", i)); err != nil {
			t.Fatalf("Admit %d err: %v", i, err)
		}
	}

	clk.Advance(model.CooldownWindow)
	if _, err := svc.Admit(ctx, "g1", model.ModeBreakup, "alice", "bob"); !errors.Is(err, sessionservice.ErrInitiatorCapacity) {
		t.Fatalf("expected ErrInitiatorCapacity, got %v", err)
	}

	// The scope itself still has spare capacity for others.
	if _, err := svc.Admit(ctx, "g1", model.ModeProposal, "carol", "dave"); err != nil {
		t.Fatalf("other-initiator Admit err: %v", err)
	}
}

func TestAdmitValidation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.Admit(ctx, "g1", "polka", "alice", "bob"); !errors.Is(err, sessionservice.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	if _, err := svc.Admit(ctx, "g1", model.ModeProposal, "alice", "alice"); !errors.Is(err, sessionservice.ErrSelfTarget) {
		t.Fatalf("expected ErrSelfTarget, got %v", err)
	}
	if _, err := svc.Admit(ctx, "g1", model.ModeProposal, "alice", ""); !errors.Is(err, sessionservice.ErrCounterpartRequired) {
		t.Fatalf("expected ErrCounterpartRequired, got %v", err)
	}

	// Crush is the one mode that may start without a counterpart.
	if _, err := svc.Admit(ctx, "g1", model.ModeCrush, "alice", ""); err != nil {
		t.Fatalf("crush Admit err: %v", err)
	}
}

func TestFailedAdmissionLeavesNoCooldown(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	for i := 0; i < model.MaxScopeSessions; i++ {
		if _, err := svc.Admit(ctx, "g1", model.ModeProposal, fmt.Sprintf("user-%d", i), "bob"); err != nil {
			t.Fatalf("Admit %d err: %v", i, err)
		}
	}

	// A capacity rejection must not stamp the cooldown record: once a
	// slot frees up the same initiator admits with no wait.
	if _, err := svc.Admit(ctx, "g1", model.ModeProposal, "late", "bob"); !errors.Is(err, sessionservice.ErrScopeCapacity) {
		t.Fatalf("expected ErrScopeCapacity, got %v", err)
	}

	victim, ok := anyLiveSession(svc, "g1")
	if !ok {
		t.Fatal("no live session to end")
	}
	svc.Dispatch(ctx, "g1", victim.ID, victim.Initiator, model.ActionConfess)
	if out := svc.Dispatch(ctx, "g1", victim.ID, "bob", model.ActionAccept); !out.Terminal {
		t.Fatalf("accept outcome: %+v", out)
	}

	if _, err := svc.Admit(ctx, "g1", model.ModeProposal, "late", "bob"); err != nil {
		t.Fatalf("Admit after drain err: %v", err)
	}
}

func anyLiveSession(svc *sessionservice.Service, scope string) (model.Session, bool) {
	for _, sess := range svc.Snapshot(scope) {
		return sess, true
	}
	return model.Session{}, false
}
