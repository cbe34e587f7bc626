package game

import (
	"sync"

	"github.com/zhouzirui/love-arena/internal/model/game"
)

// Directory remembers display names seen on inbound requests so later
// story beats can mention users the transport no longer names. It is a
// cache, not a source of truth; an unknown id renders as "Someone".
type Directory struct {
	mu    sync.RWMutex
	names map[string]string
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{names: make(map[string]string)}
}

// Remember stores the user's display name if one was provided.
func (d *Directory) Remember(user game.User) {
	if user.ID == "" || user.Name == "" {
		return
	}
	d.mu.Lock()
	d.names[user.ID] = user.Name
	d.mu.Unlock()
}

// Name resolves an id to its last seen display name.
func (d *Directory) Name(id string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if name, ok := d.names[id]; ok {
		return name
	}
	return "Someone"
}
