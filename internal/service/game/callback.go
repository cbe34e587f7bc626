package game

import (
	"context"
	"fmt"
	"log"
	"strings"

	gamemodel "github.com/zhouzirui/love-arena/internal/model/game"
	"github.com/zhouzirui/love-arena/internal/model/session"
)

// callbackPrefix routes button tokens to this engine. Token format:
// love|<mode>|<session-id>|<action>.
const callbackPrefix = "love"

// ParseCallback splits a button token into its fields. ok is false for
// anything that is not a four-field love token.
func ParseCallback(data string) (mode session.Mode, sessionID string, action session.Action, ok bool) {
	parts := strings.Split(data, "|")
	if len(parts) != 4 || parts[0] != callbackPrefix {
		return "", "", "", false
	}
	return session.Mode(parts[1]), parts[2], session.Action(parts[3]), true
}

// HandleCallback processes one button press. Every negative outcome
// maps to an alert; only transport-level problems surface as errors.
func (e *Engine) HandleCallback(ctx context.Context, scope string, actor gamemodel.User, data string) (gamemodel.Reply, error) {
	_, sessionID, action, ok := ParseCallback(data)
	if !ok {
		return gamemodel.Reply{Alert: "Unknown action."}, nil
	}
	e.names.Remember(actor)

	out := e.sessions.Dispatch(ctx, scope, sessionID, actor.ID, action)
	switch out.Kind {
	case session.OutcomeExpired:
		return gamemodel.Reply{Alert: "⌛ This love story has faded away..."}, nil
	case session.OutcomeNotYourSession:
		return gamemodel.Reply{Alert: "🚫 This love story isn't yours."}, nil
	case session.OutcomeInvalidAction:
		return gamemodel.Reply{Alert: "Yeh button ab valid nahi hai."}, nil
	}

	reply := gamemodel.Reply{SessionID: out.Session.ID}
	for _, effect := range out.Effects {
		e.applySideEffects(out.Session, effect.Kind)
		e.render(ctx, out.Session, effect.Kind, &reply)
		e.publish(out.Session, effect.Kind, reply.Text, out.Terminal)
	}
	return reply, nil
}

// applySideEffects writes the ledger and leaderboard consequences of a
// story beat. Failures are logged, never shown; the story itself has
// already advanced.
func (e *Engine) applySideEffects(sess session.Session, effect session.EffectKind) {
	switch effect {
	case session.EffectAccepted:
		if err := e.couples.Pair(sess.Scope, sess.Initiator, sess.Counterpart); err != nil {
			log.Printf("[game] pair write failed: %v", err)
		}
		if err := e.board.AddProposal(sess.Scope, sess.Initiator); err != nil {
			log.Printf("[game] proposal stat failed: %v", err)
		}
	case session.EffectRejected, session.EffectFinalRejection:
		if err := e.board.AddRejection(sess.Scope, sess.Initiator); err != nil {
			log.Printf("[game] rejection stat failed: %v", err)
		}
	case session.EffectDissolved:
		if err := e.couples.Dissolve(sess.Scope, sess.Initiator, sess.Counterpart); err != nil {
			log.Printf("[game] dissolve write failed: %v", err)
		}
	}
}

// render turns one effect into the user-facing reply.
func (e *Engine) render(ctx context.Context, sess session.Session, effect session.EffectKind, reply *gamemodel.Reply) {
	initiator := e.names.Name(sess.Initiator)
	counterpart := e.names.Name(sess.Counterpart)

	switch effect {
	case session.EffectConfessionPrompt:
		reply.Text = fmt.Sprintf("%s...\n\nSomeone has feelings for you. ❤️", counterpart)
		reply.Keyboard = proposalResponse(sess.ID)
	case session.EffectAccepted:
		reply.Text = e.flavor.ProposalSuccess(ctx, initiator, counterpart)
		reply.Alert = "Love accepted 💞"
	case session.EffectRejected:
		reply.Text = e.flavor.ProposalRejection(ctx)
		reply.Keyboard = proposalResponse(sess.ID)
		reply.Alert = "Ouch 💔"
	case session.EffectFinalRejection:
		reply.Text = "💔 Final rejection.\n\nThe love story ends here."
		reply.Alert = "Love story ended."
	case session.EffectThinking:
		reply.Alert = "Still thinking... 🤔"
	case session.EffectHint:
		reply.Alert = fmt.Sprintf("Hint: Their name starts with '%s' 😉", firstLetter(initiator))
	case session.EffectRevealPending:
		reply.Text = "The admirer must decide...\n\nShould the identity be revealed?"
		reply.Keyboard = crushRevealDecision(sess.ID)
	case session.EffectIgnored:
		reply.Alert = "Secret ignored 🙈"
		reply.Delete = true
	case session.EffectRevealed:
		reply.Text = fmt.Sprintf("💌 Mystery solved.\n\nIt was %s who had a crush on %s ❤️", initiator, counterpart)
		reply.Alert = "Identity revealed 💫"
	case session.EffectSecretKept:
		reply.Text = e.flavor.CrushSecretKept(ctx)
		reply.Alert = "Secret kept 🔒"
	case session.EffectPranked:
		reply.Text = e.flavor.PrankReveal(ctx, initiator)
		reply.Alert = "Gotcha. Oscar-level acting 😏"
	case session.EffectCounterCalled:
		reply.Text = "😂 You can't prank the prank master.\n\nRespect earned. Aura +100."
		reply.Alert = "Savage move. Crowd cheering 😎"
	case session.EffectDissolved:
		reply.Text = e.flavor.BreakupArchived(ctx)
		reply.Alert = "Processing heartbreak... 💔"
	case session.EffectCancelled:
		reply.Text = "💞 Love story continues. Audience emotional ho gayi."
		reply.Alert = "Breakup cancelled. Pyaar wins 🥺"
	}
}

// firstLetter leaks exactly one character of a name, the hint's whole
// point.
func firstLetter(name string) string {
	for _, r := range name {
		return string(r)
	}
	return "?"
}
