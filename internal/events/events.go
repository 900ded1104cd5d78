package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	EventRentalCreated       = "rental_created"
	EventRentalStatusChanged = "rental_status_changed"
	EventCarStatusChanged    = "car_status_changed"
	EventUserRegistered      = "user_registered"
)

// Event is a fire-and-forget notification about a domain change.
// Payload is already-marshaled JSON so subscribers never mutate shared
// state.
type Event struct {
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type RentalEventPayload struct {
	RentalID  int64  `json:"rental_id"`
	CarID     int64  `json:"car_id"`
	UserID    int64  `json:"user_id"`
	Status    string `json:"status"`
	OldStatus string `json:"old_status,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type Handler func(ctx context.Context, event Event)

// Bus is an in-process pub/sub dispatcher. Handlers run synchronously
// in subscription order; a slow handler delays the publisher, so
// handlers must stay cheap.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zerolog.Logger
}

func NewBus(logger *zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// PublishJSON marshals the payload and delivers the event. Marshal
// failures are logged, never returned, so business flow does not stall
// on notification problems.
func (b *Bus) PublishJSON(ctx context.Context, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		if b.logger != nil {
			b.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal event payload")
		}
		return err
	}

	event := Event{
		Type:       eventType,
		Payload:    data,
		OccurredAt: time.Now(),
	}

	b.mu.RLock()
	handlers := b.handlers[eventType]
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, event)
	}
	return nil
}

// LoggingSubscriber wires every known event type to a structured log
// line. Useful as the default subscriber in production.
func LoggingSubscriber(bus *Bus, logger *zerolog.Logger) {
	handler := func(ctx context.Context, event Event) {
		logger.Info().
			Str("event_type", event.Type).
			RawJSON("payload", event.Payload).
			Time("occurred_at", event.OccurredAt).
			Msg("domain event")
	}
	for _, eventType := range []string{
		EventRentalCreated,
		EventRentalStatusChanged,
		EventCarStatusChanged,
		EventUserRegistered,
	} {
		bus.Subscribe(eventType, handler)
	}
}
