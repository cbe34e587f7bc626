package session

import (
	"context"

	"github.com/zhouzirui/love-arena/internal/model/session"
)

// Dispatch routes one inbound action through the gate sequence: lookup,
// expiry, participant, transition, commit. Negative results come back
// as outcomes, never as errors; a stale button press is normal traffic.
func (s *Service) Dispatch(_ context.Context, scope, id, actor string, action session.Action) session.Outcome {
	st := s.scope(scope)
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		// A missing session reads the same as an expired one: either
		// way there is nothing left to act on.
		return session.Outcome{Kind: session.OutcomeExpired}
	}

	if sess.Expired(s.now()) {
		st.end(sess)
		return session.Outcome{Kind: session.OutcomeExpired}
	}

	role, ok := participantRole(sess, actor)
	if !ok {
		return session.Outcome{Kind: session.OutcomeNotYourSession}
	}

	r, ok := lookup(sess.Mode, sess.Stage, action, role)
	if !ok {
		return session.Outcome{Kind: session.OutcomeInvalidAction}
	}

	// Commit. An unclaimed crush counterpart self-assigns only once the
	// transition is known to be legal.
	if sess.Counterpart == "" && role == session.RoleCounterpart {
		sess.Counterpart = actor
	}

	terminal := r.terminal
	effect := r.effect
	sess.Stage = r.next

	if r.countsRejection {
		sess.Rejections++
		// Ceiling is checked strictly after incrementing: the 5th
		// rejection itself ends the story.
		if sess.Rejections >= session.RejectionCeiling {
			sess.Stage = session.StageRejectedFinal
			effect = session.EffectFinalRejection
			terminal = true
		}
	}

	if terminal {
		st.end(sess)
	}

	return session.Outcome{
		Kind:     session.OutcomeOK,
		Session:  *sess,
		Effects:  []session.Effect{{Kind: effect}},
		Terminal: terminal,
	}
}

// participantRole resolves the actor's side of the session. An actor
// who is neither side is rejected, except that a crush session with an
// unclaimed counterpart treats any non-initiator as the counterpart
// candidate.
func participantRole(sess *session.Session, actor string) (session.Role, bool) {
	switch {
	case actor == sess.Initiator:
		return session.RoleInitiator, true
	case sess.Counterpart != "" && actor == sess.Counterpart:
		return session.RoleCounterpart, true
	case sess.Counterpart == "" && sess.Mode == session.ModeCrush:
		return session.RoleCounterpart, true
	}
	return "", false
}
