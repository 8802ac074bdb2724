package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Database {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	db, err := New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestNew(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	db, err := New(dbPath)
	assert.NoError(t, err)
	assert.NotNil(t, db)
	defer db.Close()

	assert.FileExists(t, dbPath)
	assert.NoError(t, db.Ping())
}

func TestNewInvalidPath(t *testing.T) {
	db, err := New("/invalid/path/test.db")
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestMigrate(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"applications", "api_config", "seed_state"} {
		var count int
		err := db.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, table)
	}

	// Running migrations twice is harmless
	assert.NoError(t, db.migrate())
}

func TestCreateAndGetApplication(t *testing.T) {
	db := setupTestDB(t)

	app, err := db.CreateApplication("ms-emprestimo-pessoal", "ac763fd5-d025-40cf-8b05-14bfc3cc299a")
	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.WithinDuration(t, time.Now(), app.CreatedAt, 5*time.Second)

	got, err := db.GetApplication(app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.ID, got.ID)
	assert.Equal(t, "ms-emprestimo-pessoal", got.Name)
	assert.Equal(t, "ac763fd5-d025-40cf-8b05-14bfc3cc299a", got.AppID)
	assert.WithinDuration(t, app.CreatedAt, got.CreatedAt, time.Second)

	byName, err := db.GetApplicationByName("ms-emprestimo-pessoal")
	require.NoError(t, err)
	assert.Equal(t, app.ID, byName.ID)
}

func TestGetApplicationNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetApplication("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.GetApplicationByName("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListApplicationsInsertionOrder(t *testing.T) {
	db := setupTestDB(t)

	apps, err := db.ListApplications()
	require.NoError(t, err)
	assert.Empty(t, apps)
	assert.NotNil(t, apps)

	names := []string{"zeta", "alpha", "mid"}
	for i, name := range names {
		_, err := db.CreateApplication(name, "app-"+string(rune('a'+i)))
		require.NoError(t, err)
	}

	apps, err = db.ListApplications()
	require.NoError(t, err)
	require.Len(t, apps, 3)
	for i, name := range names {
		assert.Equal(t, name, apps[i].Name)
	}

	count, err := db.CountApplications()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestDeleteApplication(t *testing.T) {
	db := setupTestDB(t)

	first, err := db.CreateApplication("first", "app-1")
	require.NoError(t, err)
	second, err := db.CreateApplication("second", "app-2")
	require.NoError(t, err)

	require.NoError(t, db.DeleteApplication(first.ID))

	apps, err := db.ListApplications()
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, second.ID, apps[0].ID)

	err = db.DeleteApplication(first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAPIConfig(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetAPIConfig()
	assert.ErrorIs(t, err, ErrNotFound)

	saved, err := db.SaveAPIConfig("https://privatecloud.mendixcloud.com", "token-1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", saved.Token)

	got, err := db.GetAPIConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://privatecloud.mendixcloud.com", got.BaseURL)
	assert.Equal(t, "token-1", got.Token)

	_, err = db.SaveAPIConfig("https://other.example.com", "token-2")
	require.NoError(t, err)

	got, err = db.GetAPIConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com", got.BaseURL)
	assert.Equal(t, "token-2", got.Token)

	var rows int
	require.NoError(t, db.db.QueryRow("SELECT COUNT(*) FROM api_config").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSeed(t *testing.T) {
	db := setupTestDB(t)

	seedApps := []SeedApplication{
		{Name: "ms-emprestimo-pessoal", AppID: "ac763fd5-d025-40cf-8b05-14bfc3cc299a"},
		{Name: "portal-cliente", AppID: "cc983fd5-d025-40cf-8b05-14bfc3cc299c"},
	}

	result, err := db.Seed(seedApps, "https://privatecloud.mendixcloud.com", "seed-token")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Applications)
	assert.True(t, result.APIConfig)

	// Operator changes survive a second seed
	_, err = db.SaveAPIConfig("https://edited.example.com", "edited")
	require.NoError(t, err)

	result, err = db.Seed(seedApps, "https://privatecloud.mendixcloud.com", "seed-token")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Applications)
	assert.False(t, result.APIConfig)

	cfg, err := db.GetAPIConfig()
	require.NoError(t, err)
	assert.Equal(t, "edited", cfg.Token)

	apps, err := db.ListApplications()
	require.NoError(t, err)
	assert.Len(t, apps, 2)
}

func TestSeedSkipsAfterOperatorDeletesAll(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	seedApps := []SeedApplication{
		{Name: "ms-emprestimo-pessoal", AppID: "ac763fd5-d025-40cf-8b05-14bfc3cc299a"},
	}

	db, err := New(dbPath)
	require.NoError(t, err)

	result, err := db.Seed(seedApps, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applications)

	apps, err := db.ListApplications()
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.NoError(t, db.DeleteApplication(apps[0].ID))
	require.NoError(t, db.Close())

	// Restart on the same database file
	db, err = New(dbPath)
	require.NoError(t, err)
	defer db.Close()

	result, err = db.Seed(seedApps, "", "")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Applications)

	apps, err = db.ListApplications()
	require.NoError(t, err)
	assert.Len(t, apps, 0)
}

func TestSeedKeepsStoreWithoutSeedState(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.CreateApplication("portal-cliente", "cc983fd5-d025-40cf-8b05-14bfc3cc299c")
	require.NoError(t, err)

	result, err := db.Seed([]SeedApplication{{Name: "other", AppID: "other-id"}}, "", "")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Applications)

	seeded, err := db.isSeeded(seedApplications)
	require.NoError(t, err)
	assert.True(t, seeded)

	count, err := db.CountApplications()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSeedWithoutAPIConfig(t *testing.T) {
	db := setupTestDB(t)

	result, err := db.Seed(nil, "", "")
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, result)

	_, err = db.GetAPIConfig()
	assert.ErrorIs(t, err, ErrNotFound)
}
