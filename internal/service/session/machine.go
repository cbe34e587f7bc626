package session

import "github.com/zhouzirui/love-arena/internal/model/session"

// rule is one legal (stage, action) transition within a mode. A rule
// with role == "" accepts either participant. countsRejection marks the
// proposal reject self-loop; the ceiling check lives in the dispatcher
// because it depends on the session's counter, not the table.
type rule struct {
	role            session.Role
	next            session.Stage
	terminal        bool
	effect          session.EffectKind
	countsRejection bool
}

type stageAction struct {
	stage  session.Stage
	action session.Action
}

// transitions holds one table per mode. The dispatcher is mode-agnostic;
// each flow contributes only its rows here plus its effect kinds.
var transitions = map[session.Mode]map[stageAction]rule{
	session.ModeProposal: {
		{session.StageInit, session.ActionConfess}: {
			role: session.RoleInitiator, next: session.StageConfessed, effect: session.EffectConfessionPrompt,
		},
		{session.StageConfessed, session.ActionAccept}: {
			role: session.RoleCounterpart, next: session.StageAccepted, terminal: true, effect: session.EffectAccepted,
		},
		{session.StageConfessed, session.ActionReject}: {
			role: session.RoleCounterpart, next: session.StageConfessed, effect: session.EffectRejected, countsRejection: true,
		},
		{session.StageConfessed, session.ActionThinking}: {
			role: session.RoleCounterpart, next: session.StageConfessed, effect: session.EffectThinking,
		},
		{session.StageConfessed, session.ActionHint}: {
			role: session.RoleCounterpart, next: session.StageConfessed, effect: session.EffectHint,
		},
	},
	session.ModeCrush: {
		{session.StageInit, session.ActionReveal}: {
			role: session.RoleCounterpart, next: session.StageDecisionPending, effect: session.EffectRevealPending,
		},
		{session.StageInit, session.ActionIgnore}: {
			role: session.RoleCounterpart, next: session.StageIgnored, terminal: true, effect: session.EffectIgnored,
		},
		{session.StageDecisionPending, session.ActionYesReveal}: {
			role: session.RoleInitiator, next: session.StageRevealed, terminal: true, effect: session.EffectRevealed,
		},
		{session.StageDecisionPending, session.ActionNoReveal}: {
			role: session.RoleInitiator, next: session.StageKeptSecret, terminal: true, effect: session.EffectSecretKept,
		},
	},
	session.ModePrank: {
		{session.StageInit, session.ActionAccept}: {
			role: session.RoleCounterpart, next: session.StagePranked, terminal: true, effect: session.EffectPranked,
		},
		{session.StageInit, session.ActionPrankReveal}: {
			role: session.RoleCounterpart, next: session.StageCounterCalled, terminal: true, effect: session.EffectCounterCalled,
		},
	},
	session.ModeBreakup: {
		{session.StageInit, session.ActionConfirm}: {
			next: session.StageDissolved, terminal: true, effect: session.EffectDissolved,
		},
		{session.StageInit, session.ActionCancel}: {
			next: session.StageCancelled, terminal: true, effect: session.EffectCancelled,
		},
	},
}

// lookup finds the rule for (mode, stage, action) and checks the actor's
// role against it. The second return is false when the combination is
// not legal, which the dispatcher reports as an invalid action.
func lookup(mode session.Mode, stage session.Stage, action session.Action, role session.Role) (rule, bool) {
	table, ok := transitions[mode]
	if !ok {
		return rule{}, false
	}
	r, ok := table[stageAction{stage, action}]
	if !ok {
		return rule{}, false
	}
	if r.role != "" && r.role != role {
		return rule{}, false
	}
	return r, true
}
