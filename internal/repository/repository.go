package repository

import (
	"context"

	"github.com/andy/fomoduct/internal/domain"
)

// PreferenceRepository manages stored UI preferences
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (*domain.Preference, error) // Returns nil if not set
	Set(ctx context.Context, pref *domain.Preference) error
	List(ctx context.Context) ([]*domain.Preference, error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
