// Package session persists the user's profile across launches. It is
// the only durable client-side state; course, quiz, and interview data
// are all session-transient.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lurnix/internal/profile"
	"lurnix/internal/store"
)

// profileKey is the single storage key holding the serialized profile.
const profileKey = "userProfile"

// ErrNoProfile is returned by Load when no profile is stored.
var ErrNoProfile = errors.New("no stored profile")

// Store reads and writes the persisted profile. Callers treat load
// failures (including parse errors from malformed stored data) as
// absence after logging them.
type Store interface {
	Load(ctx context.Context) (*profile.Profile, error)
	Save(ctx context.Context, p profile.Profile) error
	Clear(ctx context.Context) error
}

// New returns a Store backed by the local SQLite session area.
func New(repo store.SessionRepo) Store {
	return &sqlStore{repo: repo}
}

type sqlStore struct {
	repo store.SessionRepo
}

func (s *sqlStore) Load(ctx context.Context) (*profile.Profile, error) {
	raw, err := s.repo.Get(ctx, profileKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	var p profile.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("parse stored profile: %w", err)
	}
	return &p, nil
}

func (s *sqlStore) Save(ctx context.Context, p profile.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("serialize profile: %w", err)
	}
	if err := s.repo.Set(ctx, profileKey, string(raw)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *sqlStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, profileKey); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}
