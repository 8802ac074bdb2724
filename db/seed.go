package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SeedApplication is an application listed in the config file
type SeedApplication struct {
	Name  string
	AppID string
}

// SeedResult reports what Seed wrote
type SeedResult struct {
	Applications int
	APIConfig    bool
}

// seedApplications names the seed_state row written once the application list was applied
const seedApplications = "applications"

// Seed fills a new store from static configuration. The application list is applied
// once per database and the API config only when none has been saved, so operator
// edits, including deleting every application, survive restarts.
func (d *Database) Seed(apps []SeedApplication, baseURL, token string) (SeedResult, error) {
	var result SeedResult

	seeded, err := d.isSeeded(seedApplications)
	if err != nil {
		return result, err
	}
	if !seeded {
		// Stores created before seeding was recorded keep their rows
		count, err := d.CountApplications()
		if err != nil {
			return result, err
		}
		if count == 0 {
			for _, app := range apps {
				if _, err := d.CreateApplication(app.Name, app.AppID); err != nil {
					return result, fmt.Errorf("failed to seed application %q: %w", app.Name, err)
				}
				result.Applications++
			}
		}
		if err := d.markSeeded(seedApplications); err != nil {
			return result, err
		}
	}

	if baseURL == "" || token == "" {
		return result, nil
	}

	_, err = d.GetAPIConfig()
	switch {
	case errors.Is(err, ErrNotFound):
		if _, err := d.SaveAPIConfig(baseURL, token); err != nil {
			return result, err
		}
		result.APIConfig = true
	case err != nil:
		return result, err
	}

	return result, nil
}

func (d *Database) isSeeded(name string) (bool, error) {
	var seededAt time.Time
	err := d.db.QueryRow(`SELECT seeded_at FROM seed_state WHERE name = ?`, name).Scan(&seededAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read seed state: %w", err)
	}
	return true, nil
}

func (d *Database) markSeeded(name string) error {
	_, err := d.db.Exec(`
		INSERT INTO seed_state (name, seeded_at) VALUES (?, ?)
		ON CONFLICT(name) DO NOTHING
	`, name, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record seed state: %w", err)
	}
	return nil
}
