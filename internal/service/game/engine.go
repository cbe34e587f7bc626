// Package game drives the four love-story flows end to end: it admits
// sessions, renders the engine's effects into chat replies, and applies
// ledger and leaderboard side effects. It is the only caller of the
// session dispatcher.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	gamemodel "github.com/zhouzirui/love-arena/internal/model/game"
	"github.com/zhouzirui/love-arena/internal/model/session"
	"github.com/zhouzirui/love-arena/internal/service/flavor"
	"github.com/zhouzirui/love-arena/internal/service/leaderboard"
	"github.com/zhouzirui/love-arena/internal/service/ledger"
	sessionservice "github.com/zhouzirui/love-arena/internal/service/session"
)

// ErrNotPaired rejects a breakup started by someone without a
// registered love story.
var ErrNotPaired = errors.New("not currently in a registered love story")

// Publisher receives every rendered story beat for a scope. The
// websocket feed implements it; a no-op publisher is fine for tests.
type Publisher interface {
	Publish(scope string, event gamemodel.Event)
}

// Engine wires the session core to its collaborators.
type Engine struct {
	sessions *sessionservice.Service
	couples  *ledger.Service
	board    *leaderboard.Service
	flavor   *flavor.Service
	names    *Directory
	events   Publisher
}

// NewEngine assembles the game engine.
func NewEngine(sessions *sessionservice.Service, couples *ledger.Service, board *leaderboard.Service, fl *flavor.Service, events Publisher) *Engine {
	return &Engine{
		sessions: sessions,
		couples:  couples,
		board:    board,
		flavor:   fl,
		names:    NewDirectory(),
		events:   events,
	}
}

// StartProposal opens a cinematic proposal from initiator to target.
func (e *Engine) StartProposal(ctx context.Context, scope string, initiator, target gamemodel.User) (gamemodel.Reply, error) {
	sess, err := e.sessions.Admit(ctx, scope, session.ModeProposal, initiator.ID, target.ID)
	if err != nil {
		return gamemodel.Reply{}, err
	}
	e.names.Remember(initiator)
	e.names.Remember(target)

	text := fmt.Sprintf("%s\n\n%s is about to confess something…",
		e.flavor.ProposalBuildUp(ctx, target.Name), initiator.Name)
	e.publish(sess, session.EffectKind(""), text, false)

	return gamemodel.Reply{
		SessionID: sess.ID,
		Text:      text,
		Keyboard:  proposalStart(sess.ID),
	}, nil
}

// StartCrush drops an anonymous crush on target. The target stays
// unbound when the caller does not know who will pick the message up.
func (e *Engine) StartCrush(ctx context.Context, scope string, initiator, target gamemodel.User) (gamemodel.Reply, error) {
	sess, err := e.sessions.Admit(ctx, scope, session.ModeCrush, initiator.ID, target.ID)
	if err != nil {
		return gamemodel.Reply{}, err
	}
	e.names.Remember(initiator)
	e.names.Remember(target)

	if err := e.board.AddCrush(scope, initiator.ID); err != nil {
		log.Printf("[game] crush stat failed: %v", err)
	}

	text := e.flavor.CrushTeaser(ctx)
	e.publish(sess, session.EffectKind(""), text, false)

	return gamemodel.Reply{
		SessionID: sess.ID,
		Text:      text,
		Keyboard:  crushTarget(sess.ID),
	}, nil
}

// StartPrank stages a fake proposal aimed at target.
func (e *Engine) StartPrank(ctx context.Context, scope string, initiator, target gamemodel.User) (gamemodel.Reply, error) {
	sess, err := e.sessions.Admit(ctx, scope, session.ModePrank, initiator.ID, target.ID)
	if err != nil {
		return gamemodel.Reply{}, err
	}
	e.names.Remember(initiator)
	e.names.Remember(target)

	if err := e.board.AddPrank(scope, initiator.ID); err != nil {
		log.Printf("[game] prank stat failed: %v", err)
	}

	text := e.flavor.PrankDramatic(ctx, target.Name)
	e.publish(sess, session.EffectKind(""), text, false)

	return gamemodel.Reply{
		SessionID: sess.ID,
		Text:      text,
		Keyboard:  prankFinal(sess.ID),
	}, nil
}

// StartBreakup opens a breakup confirmation for user's registered
// pairing. Fails with ErrNotPaired when the ledger has no entry.
func (e *Engine) StartBreakup(ctx context.Context, scope string, user gamemodel.User) (gamemodel.Reply, error) {
	partner, ok, err := e.couples.PartnerOf(scope, user.ID)
	if err != nil {
		return gamemodel.Reply{}, err
	}
	if !ok {
		return gamemodel.Reply{}, ErrNotPaired
	}

	sess, err := e.sessions.Admit(ctx, scope, session.ModeBreakup, user.ID, partner)
	if err != nil {
		return gamemodel.Reply{}, err
	}
	e.names.Remember(user)

	text := fmt.Sprintf("%s wants to end the love story with %s…\n\nKya yahi the end hai, ya last chance bacha hai?",
		user.Name, e.names.Name(partner))
	e.publish(sess, session.EffectKind(""), text, false)

	return gamemodel.Reply{
		SessionID: sess.ID,
		Text:      text,
		Keyboard:  breakupConfirm(sess.ID),
	}, nil
}

// Menu is the /love entry point.
func (e *Engine) Menu() gamemodel.Reply {
	return gamemodel.Reply{
		Text:     e.flavor.Welcome(),
		Keyboard: MainMenu(),
	}
}

// Vibe drops a random Valentine vibe line.
func (e *Engine) Vibe(ctx context.Context) gamemodel.Reply {
	return gamemodel.Reply{Text: e.flavor.Vibe(ctx)}
}

// Help lists the commands and house rules.
func (e *Engine) Help() gamemodel.Reply {
	return gamemodel.Reply{Text: "📖 **Love Game Help (Premium)**\n\n" +
		"/love – Open cinematic menu\n" +
		"/propose – Real proposal (reply required)\n" +
		"/crush – Anonymous crush (reply required)\n" +
		"/prank – Fake proposal prank (reply required)\n" +
		"/breakup – End your love story\n" +
		"/loveboard – View rankings\n" +
		"/vibe – Drop a fresh Valentine vibe\n\n" +
		"Each love story runs separately.\n" +
		"Sessions expire after 5 minutes.\n" +
		"Cooldown: 20 seconds per mode."}
}

// Leaderboard renders the scope's loveboard.
func (e *Engine) Leaderboard(scope string) (gamemodel.Reply, error) {
	text, err := e.board.Format(scope)
	if err != nil {
		return gamemodel.Reply{}, err
	}
	return gamemodel.Reply{Text: text}, nil
}

func (e *Engine) publish(sess session.Session, effect session.EffectKind, text string, terminal bool) {
	if e.events == nil {
		return
	}
	e.events.Publish(sess.Scope, gamemodel.Event{
		Scope:     sess.Scope,
		SessionID: sess.ID,
		Mode:      sess.Mode,
		Effect:    effect,
		Text:      text,
		Terminal:  terminal,
		At:        time.Now().UTC(),
	})
}
