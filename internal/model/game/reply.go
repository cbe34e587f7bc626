package game

import (
	"time"

	"github.com/zhouzirui/love-arena/internal/model/session"
)

// User is a chat participant as the presentation layer knows them: an
// opaque id plus the display name used in rendered lines.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Button is one inline keyboard button carrying a callback token.
type Button struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// Reply tells the chat frontend what to show after a command or button
// press. Text replaces or creates the story message, Alert is a short
// toast for the pressing user, Delete asks for the story message to be
// removed.
type Reply struct {
	SessionID string     `json:"sessionId,omitempty"`
	Text      string     `json:"text,omitempty"`
	Alert     string     `json:"alert,omitempty"`
	Keyboard  [][]Button `json:"keyboard,omitempty"`
	Delete    bool       `json:"delete,omitempty"`
}

// Event is one rendered story beat broadcast to scope watchers.
type Event struct {
	Scope     string             `json:"scope"`
	SessionID string             `json:"sessionId"`
	Mode      session.Mode       `json:"mode"`
	Effect    session.EffectKind `json:"effect,omitempty"`
	Text      string             `json:"text,omitempty"`
	Terminal  bool               `json:"terminal,omitempty"`
	At        time.Time          `json:"at"`
}
