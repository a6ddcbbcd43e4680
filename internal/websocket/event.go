package websocket

import (
	"time"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
)

// Event types pushed to planner screens
const (
	TypeSettingsCreated = "settings.created"
	TypeSettingsUpdated = "settings.updated"
)

// Event is one message pushed to every connected planner screen.
// Seq is assigned by the hub and grows by one per published event, so a screen
// that sees a gap knows to refetch the dashboard.
type Event struct {
	Type      string                   `json:"type"`
	Seq       uint64                   `json:"seq"`
	Settings  *domain.MortgageSettings `json:"settings,omitempty"`
	Timestamp time.Time                `json:"timestamp"`
}

// SettingsCreated is sent when the first settings record is saved
func SettingsCreated(settings *domain.MortgageSettings) Event {
	return Event{Type: TypeSettingsCreated, Settings: settings, Timestamp: time.Now().UTC()}
}

// SettingsUpdated is sent when the settings record is overwritten
func SettingsUpdated(settings *domain.MortgageSettings) Event {
	return Event{Type: TypeSettingsUpdated, Settings: settings, Timestamp: time.Now().UTC()}
}
