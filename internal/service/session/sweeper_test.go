package session_test

import (
	"context"
	"testing"
	"time"

	model "github.com/zhouzirui/love-arena/internal/model/session"
)

func TestSweepEvictsExpiredOnly(t *testing.T) {
	svc, clk := newService()
	ctx := context.Background()

	old, err := svc.Admit(ctx, "g1", model.ModeProposal, "alice", "bob")
	if err != nil {
		t.Fatalf("Admit err: %v", err)
	}

	clk.Advance(model.SessionTTL - time.Second)
	fresh, err := svc.Admit(ctx, "g1", model.ModeProposal, "carol", "dave")
	if err != nil {
		t.Fatalf("Admit err: %v", err)
	}

	clk.Advance(2 * time.Second)
	if removed := svc.SweepExpired(); removed != 1 {
		t.Fatalf("removed: %d", removed)
	}

	if _, ok := svc.Get(ctx, "g1", old.ID); ok {
		t.Fatal("stale session survived sweep")
	}
	if _, ok := svc.Get(ctx, "g1", fresh.ID); !ok {
		t.Fatal("fresh session evicted")
	}
}

func TestSweepCrossesScopes(t *testing.T) {
	svc, clk := newService()
	ctx := context.Background()

	for _, scope := range []string{"g1", "g2", "g3"} {
		if _, err := svc.Admit(ctx, scope, model.ModeProposal, "alice", "bob"); err != nil {
			t.Fatalf("Admit %s err: %v", scope, err)
		}
	}

	clk.Advance(model.SessionTTL + time.Second)
	if removed := svc.SweepExpired(); removed != 3 {
		t.Fatalf("removed: %d", removed)
	}
	for _, scope := range []string{"g1", "g2", "g3"} {
		if n := svc.LiveCount(scope); n != 0 {
			t.Fatalf("scope %s live count: %d", scope, n)
		}
	}
}

func TestSweepEmptyStore(t *testing.T) {
	svc, _ := newService()
	if removed := svc.SweepExpired(); removed != 0 {
		t.Fatalf("removed: %d", removed)
	}
}
