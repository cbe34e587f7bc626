// Package ledger tracks which participants are paired with whom, one
// flat mapping per chat group, persisted as couples.json.
package ledger

import (
	"fmt"

	"github.com/zhouzirui/love-arena/internal/storage"
)

// Service reads and writes the couples ledger. An accepted confession
// records one direction (initiator → counterpart); a dissolution
// removes both directions.
type Service struct {
	store *storage.Store
}

// New wraps the given store.
func New(store *storage.Store) *Service {
	return &Service{store: store}
}

// Pair records that a is now paired with b in the scope.
func (s *Service) Pair(scope, a, b string) error {
	couples, err := s.couples(scope)
	if err != nil {
		return err
	}
	couples[a] = b
	return s.store.Set(scope, couples)
}

// PartnerOf returns who user is paired with, following either
// direction of the mapping.
func (s *Service) PartnerOf(scope, user string) (string, bool, error) {
	couples, err := s.couples(scope)
	if err != nil {
		return "", false, err
	}
	if partner, ok := couples[user]; ok {
		return partner, true, nil
	}
	for a, b := range couples {
		if b == user {
			return a, true, nil
		}
	}
	return "", false, nil
}

// Dissolve removes the pairing between a and b in both directions.
func (s *Service) Dissolve(scope, a, b string) error {
	couples, err := s.couples(scope)
	if err != nil {
		return err
	}
	delete(couples, a)
	delete(couples, b)
	return s.store.Set(scope, couples)
}

func (s *Service) couples(scope string) (map[string]string, error) {
	couples := make(map[string]string)
	if _, err := s.store.Get(scope, &couples); err != nil {
		return nil, fmt.Errorf("load couples for %s: %w", scope, err)
	}
	return couples, nil
}
