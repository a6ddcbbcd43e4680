package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// SaveRecorder receives the result of every settings save
type SaveRecorder interface {
	ObserveSettingsSave(err error)
}

// SettingsService owns the single settings record.
// The record is read from the repository once by Load and cached; Save writes through.
type SettingsService struct {
	repo           domain.SettingsRepository
	eventPublisher websocket.EventPublisher
	recorder       SaveRecorder

	// writeMu orders saves so events go out in the order records are stored
	writeMu sync.Mutex
	mu      sync.RWMutex
	current *domain.MortgageSettings
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo domain.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo, eventPublisher: websocket.Discard{}}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *SettingsService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// SetRecorder sets the metrics recorder
func (s *SettingsService) SetRecorder(recorder SaveRecorder) {
	s.recorder = recorder
}

func (s *SettingsService) publishEvent(event websocket.Event) {
	s.eventPublisher.Publish(event)
}

// Load reads the record from the repository into the cache.
// An empty store is not an error; Get reports ErrSettingsNotFound until the first Save.
func (s *SettingsService) Load(ctx context.Context) error {
	settings, err := s.repo.Load(ctx)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		log.Info().Msg("No saved mortgage settings yet")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()

	log.Info().
		Int("term_months", settings.TermMonths()).
		Bool("is_tracker", settings.IsTracker).
		Msg("Loaded mortgage settings")
	return nil
}

// Get returns a copy of the cached record
func (s *SettingsService) Get() (*domain.MortgageSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, domain.ErrSettingsNotFound
	}
	copied := *s.current
	return &copied, nil
}

// Save validates and overwrites the record, then notifies connected clients
func (s *SettingsService) Save(ctx context.Context, settings *domain.MortgageSettings) (*domain.MortgageSettings, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	saved, created, err := s.save(ctx, settings)
	if s.recorder != nil {
		s.recorder.ObserveSettingsSave(err)
	}
	if err != nil {
		return nil, err
	}

	if created {
		s.publishEvent(websocket.SettingsCreated(saved))
	} else {
		s.publishEvent(websocket.SettingsUpdated(saved))
	}
	return saved, nil
}

func (s *SettingsService) save(ctx context.Context, settings *domain.MortgageSettings) (*domain.MortgageSettings, bool, error) {
	if settings == nil {
		return nil, false, domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return nil, false, err
	}

	copied := *settings

	// Held across the write so the cache never disagrees with the store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, &copied); err != nil {
		log.Error().Err(err).Msg("Failed to save mortgage settings")
		return nil, false, fmt.Errorf("failed to save settings: %w", err)
	}

	created := s.current == nil
	s.current = &copied

	log.Info().
		Bool("created", created).
		Int("term_months", copied.TermMonths()).
		Msg("Saved mortgage settings")

	result := copied
	return &result, created, nil
}
