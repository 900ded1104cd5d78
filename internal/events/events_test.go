package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	logger := zerolog.Nop()
	bus := NewBus(&logger)

	var received []Event
	bus.Subscribe(EventRentalCreated, func(ctx context.Context, event Event) {
		received = append(received, event)
	})

	payload := RentalEventPayload{RentalID: 7, CarID: 3, UserID: 5, Status: "pending"}
	require.NoError(t, bus.PublishJSON(context.Background(), EventRentalCreated, payload))

	require.Len(t, received, 1)
	assert.Equal(t, EventRentalCreated, received[0].Type)

	var got RentalEventPayload
	require.NoError(t, json.Unmarshal(received[0].Payload, &got))
	assert.Equal(t, int64(7), got.RentalID)
	assert.Equal(t, "pending", got.Status)
}

func TestBusIgnoresUnsubscribedTypes(t *testing.T) {
	logger := zerolog.Nop()
	bus := NewBus(&logger)

	called := false
	bus.Subscribe(EventRentalCreated, func(ctx context.Context, event Event) {
		called = true
	})

	require.NoError(t, bus.PublishJSON(context.Background(), EventRentalStatusChanged, RentalEventPayload{RentalID: 1}))
	assert.False(t, called)
}

func TestBusMarshalFailure(t *testing.T) {
	logger := zerolog.Nop()
	bus := NewBus(&logger)

	err := bus.PublishJSON(context.Background(), EventRentalCreated, func() {})
	assert.Error(t, err)
}
