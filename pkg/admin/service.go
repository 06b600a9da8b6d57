// Package admin guards the configuration panel behind a bcrypt password.
package admin

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPanelDisabled = errors.New("configuration panel is disabled")
	ErrWrongPassword = errors.New("wrong password")
)

// VisitCounter reports how many times the dashboard was served.
type VisitCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Refresher forces the next dashboard read to go to the spreadsheet.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Panel struct {
	VisitCount int64 `json:"visitCount"`
}

type Service struct {
	passwordHash []byte
	visits       VisitCounter
	refresher    Refresher
}

// NewService returns a gate for passwordHash. An empty hash disables the panel.
func NewService(passwordHash string, visits VisitCounter, refresher Refresher) *Service {
	return &Service{
		passwordHash: []byte(passwordHash),
		visits:       visits,
		refresher:    refresher,
	}
}

func (s *Service) Enabled() bool {
	return len(s.passwordHash) > 0
}

func (s *Service) Unlock(ctx context.Context, password string) (Panel, error) {
	if err := s.check(password); err != nil {
		return Panel{}, err
	}
	count, err := s.visits.Count(ctx)
	if err != nil {
		return Panel{}, fmt.Errorf("failed to read visit count: %w", err)
	}
	return Panel{VisitCount: count}, nil
}

func (s *Service) Refresh(ctx context.Context, password string) error {
	if err := s.check(password); err != nil {
		return err
	}
	if err := s.refresher.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to refresh grids: %w", err)
	}
	log.Info("Spreadsheet grids refreshed from the configuration panel")
	return nil
}

func (s *Service) check(password string) error {
	if !s.Enabled() {
		return ErrPanelDisabled
	}
	err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if err == nil {
		return nil
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		log.Errorf("Configured admin password hash is unusable: %v", err)
	}
	return ErrWrongPassword
}

// HashPassword returns the bcrypt hash to store as admin.passwordhash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
