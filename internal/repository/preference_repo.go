package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andy/fomoduct/internal/db"
	"github.com/andy/fomoduct/internal/domain"
)

// PreferenceRepo is a SQLite implementation of PreferenceRepository
type PreferenceRepo struct {
	db *db.DB
}

// NewPreferenceRepo creates a new PreferenceRepo
func NewPreferenceRepo(database *db.DB) *PreferenceRepo {
	return &PreferenceRepo{db: database}
}

// Get retrieves a preference, or returns nil if it was never set
func (r *PreferenceRepo) Get(ctx context.Context, key string) (*domain.Preference, error) {
	query := `
		SELECT key, value, updated_at
		FROM preferences
		WHERE key = ?
	`

	pref := &domain.Preference{}
	var updatedAt string

	err := r.db.QueryRowContext(ctx, query, key).Scan(&pref.Key, &pref.Value, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preference %q: %w", key, err)
	}

	if pref.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return pref, nil
}

// Set inserts or replaces a preference
func (r *PreferenceRepo) Set(ctx context.Context, pref *domain.Preference) error {
	query := `
		INSERT OR REPLACE INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		pref.Key,
		pref.Value,
		pref.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save preference %q: %w", pref.Key, err)
	}

	return nil
}

// List returns every stored preference ordered by key
func (r *PreferenceRepo) List(ctx context.Context) ([]*domain.Preference, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT key, value, updated_at FROM preferences ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	defer rows.Close()

	var prefs []*domain.Preference
	for rows.Next() {
		pref := &domain.Preference{}
		var updatedAt string
		if err := rows.Scan(&pref.Key, &pref.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		if pref.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}
		prefs = append(prefs, pref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate preferences: %w", err)
	}

	return prefs, nil
}

// Delete removes a single preference
func (r *PreferenceRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM preferences WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete preference %q: %w", key, err)
	}
	return nil
}

// Clear removes every preference
func (r *PreferenceRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM preferences"); err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	return nil
}
