package database

import (
	"context"
	"database/sql"
	"fmt"

	settingsdb "ah-mealplanner/internal/database/db"
)

// SettingsRepository reads and writes key/value defaults such as the macro
// split. Defaults are seeded by the migrations.
type SettingsRepository struct {
	queries *settingsdb.Queries
	db      *sql.DB
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(d *sql.DB) *SettingsRepository {
	return &SettingsRepository{
		queries: settingsdb.New(d),
		db:      d,
	}
}

// Get returns the value for key, or fallback when the key is absent.
func (r *SettingsRepository) Get(ctx context.Context, key, fallback string) (string, error) {
	value, err := r.queries.GetSetting(ctx, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return fallback, nil
		}
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// Save stores a setting, replacing any previous value.
func (r *SettingsRepository) Save(ctx context.Context, key, value string) error {
	err := r.queries.UpsertSetting(ctx, settingsdb.UpsertSettingParams{Key: key, Value: value})
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}
