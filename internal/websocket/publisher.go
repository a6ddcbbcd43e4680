package websocket

// EventPublisher delivers events to connected planner screens
type EventPublisher interface {
	Publish(event Event)
}

var (
	_ EventPublisher = (*Hub)(nil)
	_ EventPublisher = Discard{}
)

// Discard drops every event; used when live updates are not wired
type Discard struct{}

// Publish does nothing
func (Discard) Publish(Event) {}
