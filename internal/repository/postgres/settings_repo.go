package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool and pgx.Tx the repository needs
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const (
	loadSettingsQuery = `SELECT value FROM kv_store WHERE key = $1`

	saveSettingsQuery = `
INSERT INTO kv_store (key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
)

// SettingsRepository implements domain.SettingsRepository on a JSONB key/value table
type SettingsRepository struct {
	db DBTX
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Load reads the settings record
func (r *SettingsRepository) Load(ctx context.Context) (*domain.MortgageSettings, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, loadSettingsQuery, domain.SettingsKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	var settings domain.MortgageSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &settings, nil
}

// Save overwrites the settings record
func (r *SettingsRepository) Save(ctx context.Context, settings *domain.MortgageSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if _, err := r.db.Exec(ctx, saveSettingsQuery, domain.SettingsKey, raw); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
