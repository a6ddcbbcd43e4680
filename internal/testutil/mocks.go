package testutil

import (
	"context"
	"sync"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// MockSettingsRepository is a mock implementation of domain.SettingsRepository
type MockSettingsRepository struct {
	Settings  *domain.MortgageSettings
	SaveCount int
	LoadFn    func(ctx context.Context) (*domain.MortgageSettings, error)
	SaveFn    func(ctx context.Context, settings *domain.MortgageSettings) error
}

// NewMockSettingsRepository creates an empty MockSettingsRepository
func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

// Load returns the stored record
func (m *MockSettingsRepository) Load(ctx context.Context) (*domain.MortgageSettings, error) {
	if m.LoadFn != nil {
		return m.LoadFn(ctx)
	}
	if m.Settings == nil {
		return nil, domain.ErrSettingsNotFound
	}
	copied := *m.Settings
	return &copied, nil
}

// Save stores the record
func (m *MockSettingsRepository) Save(ctx context.Context, settings *domain.MortgageSettings) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, settings)
	}
	copied := *settings
	m.Settings = &copied
	m.SaveCount++
	return nil
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []websocket.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// EventTypes returns the type of every recorded event in order
func (m *MockEventPublisher) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}

// MockRecorder counts simulation and save observations
type MockRecorder struct {
	mu          sync.Mutex
	Simulations map[string]int
	Saves       []error
}

// NewMockRecorder creates a new MockRecorder
func NewMockRecorder() *MockRecorder {
	return &MockRecorder{Simulations: make(map[string]int)}
}

// ObserveSimulation counts a run per operation
func (m *MockRecorder) ObserveSimulation(operation string, _ *domain.AmortizationResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Simulations[operation]++
}

// ObserveSettingsSave records the save result
func (m *MockRecorder) ObserveSettingsSave(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves = append(m.Saves, err)
}

// StaticSettings is a SettingsProvider backed by a fixed record
type StaticSettings struct {
	Settings *domain.MortgageSettings
	Err      error
}

// Get returns the fixed record
func (s *StaticSettings) Get() (*domain.MortgageSettings, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Settings == nil {
		return nil, domain.ErrSettingsNotFound
	}
	copied := *s.Settings
	return &copied, nil
}

// SampleSettings returns a typical record: 200k at 4% over 25 years with 100 a month extra
func SampleSettings() *domain.MortgageSettings {
	return &domain.MortgageSettings{
		Balance:          decimal.NewFromInt(200000),
		Rate:             decimal.NewFromInt(4),
		Years:            25,
		Months:           0,
		Overpay:          decimal.NewFromInt(100),
		HouseValue:       decimal.NewFromInt(400000),
		OriginalMortgage: decimal.NewFromInt(250000),
	}
}
