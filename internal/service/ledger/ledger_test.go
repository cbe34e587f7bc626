package ledger_test

import (
	"path/filepath"
	"testing"

	"github.com/zhouzirui/love-arena/internal/service/ledger"
	"github.com/zhouzirui/love-arena/internal/storage"
)

func newLedger(t *testing.T) *ledger.Service {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "couples.json"))
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	return ledger.New(store)
}

func TestPairAndPartnerOf(t *testing.T) {
	svc := newLedger(t)

	if err := svc.Pair("g1", "alice", "bob"); err != nil {
		t.Fatalf("Pair err: %v", err)
	}

	// Both directions resolve even though only one is stored.
	partner, ok, err := svc.PartnerOf("g1", "alice")
	if err != nil || !ok || partner != "bob" {
		t.Fatalf("PartnerOf(alice): %q %v %v", partner, ok, err)
	}
	partner, ok, err = svc.PartnerOf("g1", "bob")
	if err != nil || !ok || partner != "alice" {
		t.Fatalf("PartnerOf(bob): %q %v %v", partner, ok, err)
	}

	// Scopes never leak into each other.
	if _, ok, _ := svc.PartnerOf("g2", "alice"); ok {
		t.Fatal("pairing leaked across scopes")
	}
}

func TestDissolveRemovesBothDirections(t *testing.T) {
	svc := newLedger(t)

	if err := svc.Pair("g1", "alice", "bob"); err != nil {
		t.Fatalf("Pair err: %v", err)
	}
	if err := svc.Dissolve("g1", "alice", "bob"); err != nil {
		t.Fatalf("Dissolve err: %v", err)
	}

	if _, ok, _ := svc.PartnerOf("g1", "alice"); ok {
		t.Fatal("alice still paired")
	}
	if _, ok, _ := svc.PartnerOf("g1", "bob"); ok {
		t.Fatal("bob still paired")
	}
}

func TestPartnerOfUnpaired(t *testing.T) {
	svc := newLedger(t)
	if _, ok, err := svc.PartnerOf("g1", "loner"); err != nil || ok {
		t.Fatalf("PartnerOf: ok=%v err=%v", ok, err)
	}
}
