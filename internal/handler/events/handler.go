// Package events exposes a per-scope websocket feed of rendered story
// beats so chat frontends can mirror the drama live.
package events

import (
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	gamemodel "github.com/zhouzirui/love-arena/internal/model/game"
)

// Hub fans rendered events out to the websocket watchers of a scope.
// It implements the game engine's Publisher.
type Hub struct {
	mu       sync.RWMutex
	watchers map[string]map[*watcher]struct{}
	upgrader websocket.Upgrader
}

// watcher is one connected feed consumer. Writes are serialized per
// connection; gorilla allows only one concurrent writer.
type watcher struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		watchers: make(map[string]map[*watcher]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册事件流路由
func (h *Hub) RegisterRoutes(r chi.Router) {
	r.Get("/love/events/{scope}", h.handleEvents)
}

func (h *Hub) handleEvents(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "scope")
	if scope == "" {
		http.Error(w, "scope is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	wt := &watcher{conn: conn}
	h.add(scope, wt)
	log.Printf("[ws] watcher joined scope=%s", scope)

	// Drain inbound frames until the peer goes away; the feed is
	// one-directional.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(scope, wt)
	conn.Close()
	log.Printf("[ws] watcher left scope=%s", scope)
}

// Publish sends one event to every watcher of the scope. A failed
// write drops that watcher; the rest still receive the event.
func (h *Hub) Publish(scope string, event gamemodel.Event) {
	h.mu.RLock()
	targets := make([]*watcher, 0, len(h.watchers[scope]))
	for wt := range h.watchers[scope] {
		targets = append(targets, wt)
	}
	h.mu.RUnlock()

	for _, wt := range targets {
		wt.mu.Lock()
		err := wt.conn.WriteJSON(event)
		wt.mu.Unlock()
		if err != nil {
			log.Printf("[ws] write failed, dropping watcher: %v", err)
			h.remove(scope, wt)
			wt.conn.Close()
		}
	}
}

func (h *Hub) add(scope string, wt *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.watchers[scope] == nil {
		h.watchers[scope] = make(map[*watcher]struct{})
	}
	h.watchers[scope][wt] = struct{}{}
}

func (h *Hub) remove(scope string, wt *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.watchers[scope], wt)
	if len(h.watchers[scope]) == 0 {
		delete(h.watchers, scope)
	}
}
