package memory

import (
	"context"
	"sync"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
)

// SettingsRepository keeps the settings record in process memory. Nothing survives a restart.
type SettingsRepository struct {
	mu       sync.RWMutex
	settings *domain.MortgageSettings
}

// NewSettingsRepository creates an empty SettingsRepository
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

// Load returns a copy of the stored record
func (r *SettingsRepository) Load(_ context.Context) (*domain.MortgageSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.settings == nil {
		return nil, domain.ErrSettingsNotFound
	}
	copied := *r.settings
	return &copied, nil
}

// Save stores a copy of settings
func (r *SettingsRepository) Save(_ context.Context, settings *domain.MortgageSettings) error {
	copied := *settings

	r.mu.Lock()
	r.settings = &copied
	r.mu.Unlock()
	return nil
}
