// Package profile owns the singleton progression record. All engine
// mutations funnel through Store.Update, which makes every
// read-modify-write atomic and persists the result.
package profile

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/questforge/questforge/internal/domain"
)

// Repo abstracts the persisted profile. Implemented by infra/sqlite.
type Repo interface {
	LoadProfile() (domain.UserProfile, bool, error)
	SaveProfile(domain.UserProfile) error
}

// Store holds the in-memory profile and writes it through to the repo.
// On a save failure the in-memory mutation is kept and the error is
// surfaced: rolling back a half-applied multi-field mutation is worse
// than running ahead of a flaky disk on a single-user machine.
type Store struct {
	mu   sync.Mutex
	repo Repo
	p    domain.UserProfile
}

// NewStore loads the persisted profile, or starts a zero profile on
// first run.
func NewStore(repo Repo) (*Store, error) {
	p, found, err := repo.LoadProfile()
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		p = domain.UserProfile{}
	}
	return &Store{repo: repo, p: p}, nil
}

// Snapshot returns a deep copy of the current profile.
func (s *Store) Snapshot() domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Clone()
}

// Update applies fn to the profile under the store lock and persists
// the result. The mutation always sticks in memory; a non-nil error
// means persistence failed and the caller may want to warn the user.
func (s *Store) Update(fn func(*domain.UserProfile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.p)

	if err := s.repo.SaveProfile(s.p); err != nil {
		logrus.WithError(err).Warn("profile save failed; in-memory state kept")
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Replace swaps the whole profile, for snapshot import.
func (s *Store) Replace(p domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.p = p.Clone()
	if err := s.repo.SaveProfile(s.p); err != nil {
		logrus.WithError(err).Warn("profile save failed; in-memory state kept")
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
