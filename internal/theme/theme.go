// Package theme persists the dark/light preference of the dashboard.
package theme

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// PreferenceKey is the only key the dashboard ever persists.
const PreferenceKey = "theme"

func Parse(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, true
	case Light:
		return Light, true
	}
	return "", false
}

func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) IsDark() bool { return t == Dark }

// Service owns the in-process theme and writes every change through to the
// preference store.
type Service struct {
	mu       sync.RWMutex
	store    Store
	fallback Theme
	current  Theme
	log      *zap.Logger
}

func NewService(store Store, fallback Theme, log *zap.Logger) *Service {
	if fallback == "" {
		fallback = Light
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, fallback: fallback, current: fallback, log: log}
}

// Load reads the persisted preference. A missing or unreadable value leaves
// the fallback theme in place.
func (s *Service) Load(ctx context.Context) error {
	raw, ok, err := s.store.Get(ctx, PreferenceKey)
	if err != nil {
		return fmt.Errorf("load theme preference: %w", err)
	}

	t := s.fallback
	if ok {
		if parsed, valid := Parse(raw); valid {
			t = parsed
		} else {
			s.log.Warn("ignoring stored theme", zap.String("value", raw))
		}
	}

	s.mu.Lock()
	s.current = t
	s.mu.Unlock()
	return nil
}

func (s *Service) Current() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Toggle flips the theme and persists it. The in-process theme only changes
// once the write succeeds.
func (s *Service) Toggle(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Opposite()
	if err := s.store.Set(ctx, PreferenceKey, string(next)); err != nil {
		return s.current, fmt.Errorf("save theme preference: %w", err)
	}
	s.current = next
	return next, nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
