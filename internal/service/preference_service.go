package service

import (
	"context"
	"fmt"

	"github.com/andy/fomoduct/internal/domain"
	"github.com/andy/fomoduct/internal/repository"
)

// PreferenceService manages cosmetic preferences
type PreferenceService interface {
	// Theme returns the stored mode, falling back to the terminal background
	Theme(ctx context.Context) (domain.ThemeMode, error)

	// SetTheme stores the mode
	SetTheme(ctx context.Context, mode domain.ThemeMode) error

	// ToggleTheme flips light/dark and stores the result
	ToggleTheme(ctx context.Context) (domain.ThemeMode, error)

	// Backdrop returns the stored backdrop, tomato if unset
	Backdrop(ctx context.Context) (domain.Backdrop, error)

	// SetBackdrop validates and stores a backdrop by name
	SetBackdrop(ctx context.Context, name string) (domain.Backdrop, error)

	// CycleBackdrop advances to the next backdrop and stores it
	CycleBackdrop(ctx context.Context) (domain.Backdrop, error)

	// Reset removes every stored preference
	Reset(ctx context.Context) error
}

type preferenceService struct {
	repo        repository.PreferenceRepository
	prefersDark func() bool
}

// NewPreferenceService creates a preference service. prefersDark reports
// the environment's colour scheme and is consulted only when no theme has
// been stored.
func NewPreferenceService(repo repository.PreferenceRepository, prefersDark func() bool) PreferenceService {
	if prefersDark == nil {
		prefersDark = func() bool { return false }
	}
	return &preferenceService{
		repo:        repo,
		prefersDark: prefersDark,
	}
}

func (s *preferenceService) Theme(ctx context.Context) (domain.ThemeMode, error) {
	pref, err := s.repo.Get(ctx, domain.PrefTheme)
	if err != nil {
		return "", err
	}
	if pref != nil {
		if mode, ok := domain.ParseThemeMode(pref.Value); ok {
			return mode, nil
		}
	}

	if s.prefersDark() {
		return domain.ThemeDark, nil
	}
	return domain.ThemeLight, nil
}

func (s *preferenceService) SetTheme(ctx context.Context, mode domain.ThemeMode) error {
	if _, ok := domain.ParseThemeMode(string(mode)); !ok {
		return fmt.Errorf("invalid theme %q (want light or dark)", mode)
	}
	return s.repo.Set(ctx, domain.NewPreference(domain.PrefTheme, string(mode)))
}

func (s *preferenceService) ToggleTheme(ctx context.Context) (domain.ThemeMode, error) {
	current, err := s.Theme(ctx)
	if err != nil {
		return "", err
	}

	next := current.Toggle()
	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

func (s *preferenceService) Backdrop(ctx context.Context) (domain.Backdrop, error) {
	pref, err := s.repo.Get(ctx, domain.PrefBackdrop)
	if err != nil {
		return "", err
	}
	if pref == nil {
		return domain.BackdropTomato, nil
	}

	b, err := domain.ParseBackdrop(pref.Value)
	if err != nil {
		// Stored by an older version; ignore rather than fail the UI
		return domain.BackdropTomato, nil
	}
	return b, nil
}

func (s *preferenceService) SetBackdrop(ctx context.Context, name string) (domain.Backdrop, error) {
	b, err := domain.ParseBackdrop(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, name)
	}
	if err := s.repo.Set(ctx, domain.NewPreference(domain.PrefBackdrop, string(b))); err != nil {
		return "", err
	}
	return b, nil
}

func (s *preferenceService) CycleBackdrop(ctx context.Context) (domain.Backdrop, error) {
	current, err := s.Backdrop(ctx)
	if err != nil {
		return "", err
	}
	return s.SetBackdrop(ctx, string(current.Next()))
}

func (s *preferenceService) Reset(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
