package game

import (
	"fmt"

	"github.com/zhouzirui/love-arena/internal/model/game"
	"github.com/zhouzirui/love-arena/internal/model/session"
)

func callbackData(mode session.Mode, sessionID string, action session.Action) string {
	return fmt.Sprintf("%s|%s|%s|%s", callbackPrefix, mode, sessionID, action)
}

// MainMenu is the mode picker shown by the /love command.
func MainMenu() [][]game.Button {
	return [][]game.Button{
		{{Label: "💘 Propose (Cinematic)", Data: "menu|proposal"}},
		{{Label: "💌 Anonymous Crush Drop", Data: "menu|crush"}},
		{{Label: "🎭 Prank Proposal", Data: "menu|prank"}},
		{{Label: "💔 Breakup Mode", Data: "menu|breakup"}},
		{{Label: "🏆 Loveboard Rankings", Data: "menu|leaderboard"}},
		{{Label: "📖 Help + Commands", Data: "menu|help"}},
	}
}

func proposalStart(sessionID string) [][]game.Button {
	return [][]game.Button{
		{{Label: "💌 Confess in Style", Data: callbackData(session.ModeProposal, sessionID, session.ActionConfess)}},
	}
}

func proposalResponse(sessionID string) [][]game.Button {
	return [][]game.Button{
		{{Label: "💖 Accept", Data: callbackData(session.ModeProposal, sessionID, session.ActionAccept)}},
		{{Label: "🤔 Thinking (Drama)", Data: callbackData(session.ModeProposal, sessionID, session.ActionThinking)}},
		{{Label: "💔 No", Data: callbackData(session.ModeProposal, sessionID, session.ActionReject)}},
		{{Label: "🕵 Ask a Hint", Data: callbackData(session.ModeProposal, sessionID, session.ActionHint)}},
	}
}

func crushTarget(sessionID string) [][]game.Button {
	return [][]game.Button{
		{{Label: "😏 Reveal Identity", Data: callbackData(session.ModeCrush, sessionID, session.ActionReveal)}},
		{{Label: "🙈 Ignore for Now", Data: callbackData(session.ModeCrush, sessionID, session.ActionIgnore)}},
	}
}

func crushRevealDecision(sessionID string) [][]game.Button {
	return [][]game.Button{
		{{Label: "💫 Yes, Reveal Me", Data: callbackData(session.ModeCrush, sessionID, session.ActionYesReveal)}},
		{{Label: "🔒 Keep It Secret", Data: callbackData(session.ModeCrush, sessionID, session.ActionNoReveal)}},
	}
}

func prankFinal(sessionID string) [][]game.Button {
	return [][]game.Button{
		{{Label: "😱 Accept Scene", Data: callbackData(session.ModePrank, sessionID, session.ActionAccept)}},
		{{Label: "😂 Call Out Prank", Data: callbackData(session.ModePrank, sessionID, session.ActionPrankReveal)}},
	}
}

func breakupConfirm(sessionID string) [][]game.Button {
	return [][]game.Button{
		{{Label: "💔 Confirm Breakup", Data: callbackData(session.ModeBreakup, sessionID, session.ActionConfirm)}},
		{{Label: "🥺 Save Relationship", Data: callbackData(session.ModeBreakup, sessionID, session.ActionCancel)}},
	}
}
