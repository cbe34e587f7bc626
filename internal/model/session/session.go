package session

import "time"

// Tunable limits governing admission and expiry. These are part of the
// engine contract, not deployment configuration.
const (
	CooldownWindow       = 20 * time.Second
	SessionTTL           = 5 * time.Minute
	MaxScopeSessions     = 10
	MaxInitiatorSessions = 3
	RejectionCeiling     = 5
	SweepInterval        = 30 * time.Second
)

// Mode identifies one of the four interaction flows. Fixed at creation.
type Mode string

const (
	ModeProposal Mode = "proposal"
	ModeCrush    Mode = "crush"
	ModePrank    Mode = "prank"
	ModeBreakup  Mode = "breakup"
)

// Valid reports whether m names a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeProposal, ModeCrush, ModePrank, ModeBreakup:
		return true
	}
	return false
}

// Stage is a session's position within its mode's flow.
type Stage string

const (
	StageInit            Stage = "init"
	StageConfessed       Stage = "confessed"
	StageDecisionPending Stage = "decision_pending"

	// Terminal stages. No transition leaves any of these.
	StageAccepted      Stage = "accepted"
	StageRejectedFinal Stage = "rejected_final"
	StageIgnored       Stage = "ignored"
	StageRevealed      Stage = "revealed"
	StageKeptSecret    Stage = "kept_secret"
	StagePranked       Stage = "pranked"
	StageCounterCalled Stage = "counter_called"
	StageDissolved     Stage = "dissolved"
	StageCancelled     Stage = "cancelled"
)

// Status tracks the one-way active → ended lifecycle.
type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// Action is a button press routed to a session.
type Action string

const (
	ActionConfess     Action = "confess"
	ActionAccept      Action = "accept"
	ActionReject      Action = "reject"
	ActionThinking    Action = "thinking"
	ActionHint        Action = "hint"
	ActionReveal      Action = "reveal"
	ActionIgnore      Action = "ignore"
	ActionYesReveal   Action = "yes_reveal"
	ActionNoReveal    Action = "no_reveal"
	ActionPrankReveal Action = "prank_reveal"
	ActionConfirm     Action = "confirm"
	ActionCancel      Action = "cancel"
)

// Role is the side of the session an actor occupies.
type Role string

const (
	RoleInitiator   Role = "initiator"
	RoleCounterpart Role = "counterpart"
)

// Session is one in-flight two-party interaction inside a chat group.
// Counterpart may be empty for crush sessions until the first
// counterpart-role action claims it.
type Session struct {
	ID          string    `json:"id"`
	Scope       string    `json:"scope"`
	Mode        Mode      `json:"mode"`
	Initiator   string    `json:"initiator"`
	Counterpart string    `json:"counterpart,omitempty"`
	Stage       Stage     `json:"stage"`
	Rejections  int       `json:"rejections"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      Status    `json:"status"`
}

// Expired reports whether the session has outlived its TTL at the given
// instant.
func (s Session) Expired(now time.Time) bool {
	return now.Sub(s.CreatedAt) > SessionTTL
}
