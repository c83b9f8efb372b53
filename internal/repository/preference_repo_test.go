package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/fomoduct/internal/db"
	"github.com/andy/fomoduct/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test_fomoduct.db"), "test-key")
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, database.RunMigrations())
	t.Cleanup(func() {
		assert.NoError(t, database.Close())
	})
	return database
}

func TestPreferenceRepo_GetMissing(t *testing.T) {
	repo := NewPreferenceRepo(setupTestDB(t))

	pref, err := repo.Get(context.Background(), domain.PrefTheme)
	require.NoError(t, err)
	assert.Nil(t, pref)
}

func TestPreferenceRepo_SetGetReplace(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferenceRepo(setupTestDB(t))

	require.NoError(t, repo.Set(ctx, domain.NewPreference(domain.PrefTheme, "dark")))
	pref, err := repo.Get(ctx, domain.PrefTheme)
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, "dark", pref.Value)
	assert.WithinDuration(t, time.Now(), pref.UpdatedAt, time.Minute)

	require.NoError(t, repo.Set(ctx, domain.NewPreference(domain.PrefTheme, "light")))
	pref, err = repo.Get(ctx, domain.PrefTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", pref.Value)
}

func TestPreferenceRepo_ListDeleteClear(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferenceRepo(setupTestDB(t))

	require.NoError(t, repo.Set(ctx, domain.NewPreference(domain.PrefTheme, "dark")))
	require.NoError(t, repo.Set(ctx, domain.NewPreference(domain.PrefBackdrop, "ocean")))

	prefs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, domain.PrefBackdrop, prefs[0].Key)
	assert.Equal(t, domain.PrefTheme, prefs[1].Key)

	require.NoError(t, repo.Delete(ctx, domain.PrefBackdrop))
	prefs, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, prefs, 1)

	require.NoError(t, repo.Clear(ctx))
	prefs, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, prefs)
}
