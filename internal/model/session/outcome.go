package session

// EffectKind names a side effect the caller must render or execute. The
// engine only decides and orders effects, it never renders them.
type EffectKind string

const (
	// Proposal flow.
	EffectConfessionPrompt EffectKind = "confession_prompt"
	EffectAccepted         EffectKind = "accepted"
	EffectRejected         EffectKind = "rejected"
	EffectFinalRejection   EffectKind = "final_rejection"
	EffectThinking         EffectKind = "thinking"
	EffectHint             EffectKind = "hint"

	// Crush flow.
	EffectRevealPending EffectKind = "reveal_pending"
	EffectIgnored       EffectKind = "ignored"
	EffectRevealed      EffectKind = "revealed"
	EffectSecretKept    EffectKind = "secret_kept"

	// Prank flow.
	EffectPranked       EffectKind = "pranked"
	EffectCounterCalled EffectKind = "counter_called"

	// Breakup flow.
	EffectDissolved EffectKind = "dissolved"
	EffectCancelled EffectKind = "cancelled"
)

// Effect is an opaque instruction emitted by a transition.
type Effect struct {
	Kind EffectKind `json:"kind"`
}

// OutcomeKind classifies the result of dispatching an action. The
// negative kinds are normal results, not errors: a stale button and a
// stranger's button press both happen constantly in a busy group.
type OutcomeKind string

const (
	OutcomeOK             OutcomeKind = "ok"
	OutcomeExpired        OutcomeKind = "expired"
	OutcomeNotYourSession OutcomeKind = "not_your_session"
	OutcomeInvalidAction  OutcomeKind = "invalid_action"
)

// Outcome is the dispatcher's reply. Session is a post-commit snapshot
// and is only meaningful when Kind is OutcomeOK; Terminal reports that
// the session ended on this action.
type Outcome struct {
	Kind     OutcomeKind `json:"kind"`
	Session  Session     `json:"session,omitempty"`
	Effects  []Effect    `json:"effects,omitempty"`
	Terminal bool        `json:"terminal,omitempty"`
}
