// Package settings holds the account profile edited on the settings page.
package settings

import (
	"context"
	"strings"
	"sync"

	"DashboardPro/internal/apperr"
)

type Profile struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Company       string `json:"company"`
	Notifications bool   `json:"notifications"`
}

func Default() Profile {
	return Profile{
		Name:          "John Doe",
		Email:         "john@example.com",
		Phone:         "+1234567890",
		Company:       "Acme Inc",
		Notifications: true,
	}
}

func (p Profile) normalized() Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Company = strings.TrimSpace(p.Company)
	return p
}

// Validate requires a name and an email; phone and company may be blank.
func (p Profile) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return apperr.Required("name")
	case strings.TrimSpace(p.Email) == "":
		return apperr.Required("email")
	}
	return nil
}

type Store struct {
	mu      sync.RWMutex
	profile Profile
}

func NewStore(p Profile) *Store {
	return &Store{profile: p}
}

func (s *Store) Get(ctx context.Context) Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *Store) Save(ctx context.Context, p Profile) (Profile, error) {
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	p = p.normalized()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	return p, nil
}

func (s *Store) ToggleNotifications(ctx context.Context) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Notifications = !s.profile.Notifications
	return s.profile
}
