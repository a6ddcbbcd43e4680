package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
)

// SettingsRepository implements domain.SettingsRepository as a JSON document on local disk.
// The document is a key/value object so the record lives under domain.SettingsKey.
type SettingsRepository struct {
	path string
	mu   sync.Mutex
}

// NewSettingsRepository creates a new SettingsRepository writing to path
func NewSettingsRepository(path string) *SettingsRepository {
	return &SettingsRepository{path: path}
}

// Load reads the settings record
func (r *SettingsRepository) Load(_ context.Context) (*domain.MortgageSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readDocument()
	if err != nil {
		return nil, err
	}

	raw, ok := doc[domain.SettingsKey]
	if !ok {
		return nil, domain.ErrSettingsNotFound
	}

	var settings domain.MortgageSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &settings, nil
}

// Save overwrites the settings record. The file is replaced atomically via rename.
func (r *SettingsRepository) Save(_ context.Context, settings *domain.MortgageSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readDocument()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	doc[domain.SettingsKey] = raw

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings file: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}

func (r *SettingsRepository) readDocument() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	doc := make(map[string]json.RawMessage)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", r.path, err)
	}
	return doc, nil
}
