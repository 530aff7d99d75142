package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Omersenem/dovizkuru/internal/model"
)

// SettingRepository provides data access methods for the setting table.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves a setting by key. The second return value is false when the
// key has never been set.
func (r *SettingRepository) Get(key string) (model.Setting, bool, error) {
	var setting model.Setting
	err := r.db.QueryRow(`
		SELECT key, value, encrypted
		FROM setting
		WHERE key = ?`, key).Scan(&setting.Key, &setting.Value, &setting.Encrypted)
	if err == sql.ErrNoRows {
		return model.Setting{}, false, nil
	}
	if err != nil {
		return model.Setting{}, false, fmt.Errorf("failed to query setting table: %w", err)
	}
	return setting, true, nil
}

// Set upserts a setting.
func (r *SettingRepository) Set(ctx context.Context, setting model.Setting) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO setting (key, value, encrypted)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			encrypted = excluded.encrypted`,
		setting.Key, setting.Value, setting.Encrypted)
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}
