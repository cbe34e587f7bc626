package game

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/love-arena/internal/config"
	gamemodel "github.com/zhouzirui/love-arena/internal/model/game"
	"github.com/zhouzirui/love-arena/internal/service/flavor"
	gameservice "github.com/zhouzirui/love-arena/internal/service/game"
	"github.com/zhouzirui/love-arena/internal/service/leaderboard"
	"github.com/zhouzirui/love-arena/internal/service/ledger"
	sessionservice "github.com/zhouzirui/love-arena/internal/service/session"
	"github.com/zhouzirui/love-arena/internal/storage"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	dir := t.TempDir()

	couplesStore, err := storage.Open(filepath.Join(dir, "couples.json"))
	if err != nil {
		t.Fatalf("open couples store: %v", err)
	}
	boardStore, err := storage.Open(filepath.Join(dir, "leaderboard.json"))
	if err != nil {
		t.Fatalf("open board store: %v", err)
	}
	fl, err := flavor.NewService(context.Background(), config.AIConfig{})
	if err != nil {
		t.Fatalf("flavor service: %v", err)
	}

	engine := gameservice.NewEngine(
		sessionservice.NewService(),
		ledger.New(couplesStore),
		leaderboard.New(boardStore),
		fl,
		nil,
	)

	r := chi.NewRouter()
	New(engine).RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func startBody(scope string) map[string]any {
	return map[string]any{
		"scope":     scope,
		"initiator": map[string]string{"id": "u1", "name": "Alice"},
		"target":    map[string]string{"id": "u2", "name": "Bob"},
	}
}

func TestProposeCreatesSession(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/love/propose", startBody("g1"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var reply gamemodel.Reply
	if err := json.Unmarshal(resp.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.SessionID == "" || len(reply.Keyboard) == 0 {
		t.Fatalf("incomplete reply: %+v", reply)
	}
}

func TestProposeCooldownReturns429(t *testing.T) {
	r := setupRouter(t)

	if resp := postJSON(t, r, "/love/propose", startBody("g1")); resp.Code != http.StatusCreated {
		t.Fatalf("first propose: %d", resp.Code)
	}

	resp := postJSON(t, r, "/love/propose", startBody("g1"))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}

	var body struct {
		RetryAfter float64 `json:"retryAfter"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.RetryAfter <= 0 {
		t.Fatalf("retryAfter missing: %s", resp.Body.String())
	}
}

func TestScopeCapacityReturns409(t *testing.T) {
	r := setupRouter(t)

	for i := 0; i < 10; i++ {
		body := map[string]any{
			"scope":     "g1",
			"initiator": map[string]string{"id": fmt.Sprintf("u%d", i), "name": "User"},
			"target":    map[string]string{"id": "t1", "name": "Bob"},
		}
		if resp := postJSON(t, r, "/love/propose", body); resp.Code != http.StatusCreated {
			t.Fatalf("propose %d: %d %s", i, resp.Code, resp.Body.String())
		}
	}

	body := map[string]any{
		"scope":     "g1",
		"initiator": map[string]string{"id": "u99", "name": "Late"},
		"target":    map[string]string{"id": "t1", "name": "Bob"},
	}
	if resp := postJSON(t, r, "/love/propose", body); resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestBreakupWithoutPairingReturns409(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/love/breakup", startBody("g1"))
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCallbackRoundTrip(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/love/propose", startBody("g1"))
	var start gamemodel.Reply
	if err := json.Unmarshal(resp.Body.Bytes(), &start); err != nil {
		t.Fatalf("decode start: %v", err)
	}

	resp = postJSON(t, r, "/love/callback", map[string]any{
		"scope": "g1",
		"user":  map[string]string{"id": "u1", "name": "Alice"},
		"data":  start.Keyboard[0][0].Data,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("callback: %d %s", resp.Code, resp.Body.String())
	}

	var reply gamemodel.Reply
	if err := json.Unmarshal(resp.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.Text == "" || len(reply.Keyboard) == 0 {
		t.Fatalf("confession prompt incomplete: %+v", reply)
	}
}

func TestCallbackMissingFields(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(t, r, "/love/callback", map[string]any{"scope": "g1"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/love/leaderboard/g1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestMenuAndHelp(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{"/love/menu", "/love/help", "/love/vibe"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
	}
}
