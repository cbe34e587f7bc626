// Package leaderboard tracks per-group love statistics and renders the
// ranked "loveboard", persisted as leaderboard.json.
package leaderboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zhouzirui/love-arena/internal/storage"
)

// Stats counts one user's activity inside a group.
type Stats struct {
	Proposals  int `json:"proposals"`
	Rejections int `json:"rejections"`
	Pranks     int `json:"pranks"`
	Crushes    int `json:"crushes"`
}

// Entry is one leaderboard row.
type Entry struct {
	User  string `json:"user"`
	Stats Stats  `json:"stats"`
}

// Service maintains the per-scope stats tables.
type Service struct {
	store *storage.Store
}

// New wraps the given store.
func New(store *storage.Store) *Service {
	return &Service{store: store}
}

// AddProposal credits a successful proposal to user.
func (s *Service) AddProposal(scope, user string) error {
	return s.bump(scope, user, func(st *Stats) { st.Proposals++ })
}

// AddRejection records one rejection suffered by user.
func (s *Service) AddRejection(scope, user string) error {
	return s.bump(scope, user, func(st *Stats) { st.Rejections++ })
}

// AddPrank records one staged prank by user.
func (s *Service) AddPrank(scope, user string) error {
	return s.bump(scope, user, func(st *Stats) { st.Pranks++ })
}

// AddCrush records one anonymous crush dropped by user.
func (s *Service) AddCrush(scope, user string) error {
	return s.bump(scope, user, func(st *Stats) { st.Crushes++ })
}

func (s *Service) bump(scope, user string, apply func(*Stats)) error {
	table, err := s.table(scope)
	if err != nil {
		return err
	}
	st := table[user]
	apply(&st)
	table[user] = st
	return s.store.Set(scope, table)
}

// Ranking returns the scope's users ordered by proposals, best first.
// Ties break on user id so the order is stable.
func (s *Service) Ranking(scope string) ([]Entry, error) {
	table, err := s.table(scope)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(table))
	for user, st := range table {
		entries = append(entries, Entry{User: user, Stats: st})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Stats.Proposals != entries[j].Stats.Proposals {
			return entries[i].Stats.Proposals > entries[j].Stats.Proposals
		}
		return entries[i].User < entries[j].User
	})
	return entries, nil
}

// Format renders the board text for a scope, top ten rows.
func (s *Service) Format(scope string) (string, error) {
	ranking, err := s.Ranking(scope)
	if err != nil {
		return "", err
	}
	if len(ranking) == 0 {
		return "🏆 No love stories yet in this group...", nil
	}

	medals := []string{"🥇", "🥈", "🥉"}

	var b strings.Builder
	b.WriteString("🏆 **Loveboard Rankings**\n\n")
	for i, entry := range ranking {
		if i == 10 {
			break
		}
		medal := "💎"
		if i < len(medals) {
			medal = medals[i]
		}
		fmt.Fprintf(&b, "%s %s\n", medal, title(i))
		fmt.Fprintf(&b, "👤 User: `%s`\n", entry.User)
		fmt.Fprintf(&b, "💘 Proposals: %d\n", entry.Stats.Proposals)
		fmt.Fprintf(&b, "💔 Rejections: %d\n", entry.Stats.Rejections)
		fmt.Fprintf(&b, "🎭 Pranks: %d\n", entry.Stats.Pranks)
		fmt.Fprintf(&b, "💌 Crushes: %d\n\n", entry.Stats.Crushes)
	}
	return b.String(), nil
}

func title(position int) string {
	switch position {
	case 0:
		return "Group Romeo"
	case 1:
		return "Heart Collector"
	case 2:
		return "Drama King/Queen"
	default:
		return "Love Challenger"
	}
}

func (s *Service) table(scope string) (map[string]Stats, error) {
	table := make(map[string]Stats)
	if _, err := s.store.Get(scope, &table); err != nil {
		return nil, fmt.Errorf("load leaderboard for %s: %w", scope, err)
	}
	return table, nil
}
