package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sorenmh/infrastructure-shared/package-browser/models"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

type Database struct {
	db *sql.DB
}

func New(path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &Database{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return d, nil
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS applications (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		app_id TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_applications_name ON applications(name);

	CREATE TABLE IF NOT EXISTS api_config (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		base_url TEXT NOT NULL,
		token TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS seed_state (
		name TEXT PRIMARY KEY,
		seeded_at TIMESTAMP NOT NULL
	);
	`

	_, err := d.db.Exec(schema)
	return err
}

// CreateApplication registers an application. The local ID is generated here.
func (d *Database) CreateApplication(name, appID string) (*models.Application, error) {
	app := &models.Application{
		ID:        uuid.New().String(),
		Name:      name,
		AppID:     appID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := d.db.Exec(`
		INSERT INTO applications (id, name, app_id, created_at)
		VALUES (?, ?, ?, ?)
	`, app.ID, app.Name, app.AppID, app.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return app, nil
}

// ListApplications returns all applications in insertion order
func (d *Database) ListApplications() ([]models.Application, error) {
	rows, err := d.db.Query(`
		SELECT id, name, app_id, created_at
		FROM applications
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		var app models.Application
		if err := rows.Scan(&app.ID, &app.Name, &app.AppID, &app.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

func (d *Database) GetApplication(id string) (*models.Application, error) {
	var app models.Application
	err := d.db.QueryRow(`
		SELECT id, name, app_id, created_at
		FROM applications WHERE id = ?
	`, id).Scan(&app.ID, &app.Name, &app.AppID, &app.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

// GetApplicationByName returns the earliest registered application with the given name
func (d *Database) GetApplicationByName(name string) (*models.Application, error) {
	var app models.Application
	err := d.db.QueryRow(`
		SELECT id, name, app_id, created_at
		FROM applications WHERE name = ?
		ORDER BY seq ASC
		LIMIT 1
	`, name).Scan(&app.ID, &app.Name, &app.AppID, &app.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("application %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

func (d *Database) DeleteApplication(id string) error {
	res, err := d.db.Exec(`DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	return nil
}

func (d *Database) CountApplications() (int, error) {
	var count int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM applications`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

// GetAPIConfig returns the stored API configuration, or ErrNotFound if none was saved yet
func (d *Database) GetAPIConfig() (*models.APIConfig, error) {
	var cfg models.APIConfig
	err := d.db.QueryRow(`
		SELECT base_url, token, updated_at FROM api_config WHERE id = 1
	`).Scan(&cfg.BaseURL, &cfg.Token, &cfg.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("api config: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get api config: %w", err)
	}
	return &cfg, nil
}

// SaveAPIConfig replaces the singleton API configuration
func (d *Database) SaveAPIConfig(baseURL, token string) (*models.APIConfig, error) {
	cfg := &models.APIConfig{
		BaseURL:   baseURL,
		Token:     token,
		UpdatedAt: time.Now().UTC(),
	}

	_, err := d.db.Exec(`
		INSERT INTO api_config (id, base_url, token, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			base_url = excluded.base_url,
			token = excluded.token,
			updated_at = excluded.updated_at
	`, cfg.BaseURL, cfg.Token, cfg.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save api config: %w", err)
	}

	return cfg, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) Ping() error {
	return d.db.Ping()
}
