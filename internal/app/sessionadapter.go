package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"lurnix/internal/profile"
	"lurnix/internal/session"
)

// sessionAdapter narrows session.Store to the context-free methods the
// screens take, and caches the last known profile so the header can
// show the signed-in user without hitting the database every frame.
type sessionAdapter struct {
	store session.Store
	log   *zap.Logger

	mu sync.Mutex
	p  *profile.Profile
}

func (s *sessionAdapter) load() (*profile.Profile, error) {
	p, err := s.store.Load(context.Background())
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
	return p, nil
}

func (s *sessionAdapter) Save(p profile.Profile) error {
	if err := s.store.Save(context.Background(), p); err != nil {
		return err
	}
	s.mu.Lock()
	s.p = &p
	s.mu.Unlock()
	return nil
}

func (s *sessionAdapter) Clear() error {
	if err := s.store.Clear(context.Background()); err != nil {
		return err
	}
	s.mu.Lock()
	s.p = nil
	s.mu.Unlock()
	return nil
}

// current returns the cached user's name and domain for the header, or
// empty strings when nobody is signed in.
func (s *sessionAdapter) current() (name, domain string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.p == nil {
		return "", ""
	}
	return s.p.Name, s.p.Domain
}
