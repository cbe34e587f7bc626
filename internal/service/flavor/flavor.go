// Package flavor produces the dramatic one-liners the game engine
// attaches to every beat of a love story. Lines come from curated
// pools; when an Ark chat model is configured the service asks it for a
// fresh line instead and falls back to the pools on any failure.
package flavor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/love-arena/internal/config"
)

const generateTimeout = 5 * time.Second

// Service generates flavor text. A nil chain means pool-only mode.
type Service struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the flavor service. When the model configuration is
// incomplete the service silently runs on the static pools alone.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	if !cfg.Enabled() {
		return &Service{}, nil
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("You write flavor text for a group-chat love game. "+
			"Reply with exactly one short dramatic line, playful Hinglish allowed, no quotes, at most 140 characters."),
		schema.UserMessage("{scenario}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile flavor chain: %w", err)
	}

	return &Service{chain: runnable}, nil
}

// Generated reports whether lines come from the model rather than the
// pools.
func (s *Service) Generated() bool {
	return s.chain != nil
}

// generate asks the model for one line, falling back to fallback on any
// error or when no model is configured.
func (s *Service) generate(ctx context.Context, scenario, fallback string) string {
	if s.chain == nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	response, err := s.chain.Invoke(ctx, map[string]any{"scenario": scenario})
	if err != nil {
		log.Printf("[flavor] generation failed, using pool line: %v", err)
		return fallback
	}

	line := strings.TrimSpace(response.Content)
	if line == "" {
		return fallback
	}
	return line
}

// ProposalBuildUp sets the scene before a confession lands.
func (s *Service) ProposalBuildUp(ctx context.Context, targetName string) string {
	line := pick(buildUpLines)
	if strings.Contains(line, "%s") {
		line = fmt.Sprintf(line, targetName)
	}
	return s.generate(ctx, "Build suspense: someone is about to confess their feelings to "+targetName+" in the group chat.", line)
}

// ProposalSuccess celebrates an accepted confession.
func (s *Service) ProposalSuccess(ctx context.Context, proposer, target string) string {
	fallback := fmt.Sprintf(
		"💍 And just like that… a new love story begins.\n\n%s ❤️ %s\n\nThe group witnesses history tonight.",
		proposer, target,
	)
	return s.generate(ctx, fmt.Sprintf("Celebrate: %s confessed to %s and was accepted.", proposer, target), fallback)
}

// ProposalRejection comments on one more rejection.
func (s *Service) ProposalRejection(ctx context.Context) string {
	return s.generate(ctx, "React to a confession being rejected, dramatic but lighthearted.", pick(rejectionLines))
}

// CrushTeaser is the anonymous message shown to the crush target.
func (s *Service) CrushTeaser(ctx context.Context) string {
	return s.generate(ctx, "Tease: someone anonymous in the group has a crush on the reader. Do not name anyone.", pick(crushTeaserLines))
}

// CrushSecretKept closes a crush whose admirer stayed hidden.
func (s *Service) CrushSecretKept(ctx context.Context) string {
	return s.generate(ctx, "Close an anonymous crush gracefully: the admirer chose to stay secret.", pick(secretKeptLines))
}

// PrankDramatic opens the fake-proposal scene aimed at targetName.
func (s *Service) PrankDramatic(ctx context.Context, targetName string) string {
	return s.generate(ctx,
		"Open a fake proposal scene aimed at "+targetName+", overly dramatic.",
		fmt.Sprintf(pick(prankDramaticLines), targetName),
	)
}

// PrankReveal unmasks the prankster.
func (s *Service) PrankReveal(ctx context.Context, prankster string) string {
	return s.generate(ctx,
		"Reveal that the proposal was a prank staged by "+prankster+".",
		fmt.Sprintf(pick(prankRevealLines), prankster),
	)
}

// BreakupArchived closes a dissolved love story.
func (s *Service) BreakupArchived(ctx context.Context) string {
	return s.generate(ctx, "Announce that a couple's love story has ended, solemn but cinematic.", pick(breakupArchivedLines))
}

// Vibe drops a random Valentine vibe line.
func (s *Service) Vibe(ctx context.Context) string {
	return s.generate(ctx, "Drop a fresh Valentine vibe line for the group.", pick(vibeLines))
}

// Welcome greets a group opening the game menu.
func (s *Service) Welcome() string {
	return pick(welcomeLines)
}
