package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

// Client is the subset of *redis.Client the repository needs
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
}

// SettingsRepository implements domain.SettingsRepository on a single Redis string key
type SettingsRepository struct {
	client Client
	key    string
}

// NewClient opens a Redis client and checks it responds
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}
	return client, nil
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(client Client) *SettingsRepository {
	return &SettingsRepository{
		client: client,
		key:    domain.SettingsKey,
	}
}

// Load reads the settings record
func (r *SettingsRepository) Load(ctx context.Context) (*domain.MortgageSettings, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
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

// Save overwrites the settings record; the key never expires
func (r *SettingsRepository) Save(ctx context.Context, settings *domain.MortgageSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := r.client.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
