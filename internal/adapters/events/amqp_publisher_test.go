package events

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() domain.Event {
	return domain.Event{
		Type:       domain.EventBookingCreated,
		EntityID:   "booking-1",
		ActorID:    "user-1",
		OccurredAt: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		Payload:    map[string]string{"propertyId": "flat-1"},
	}
}

func TestMessage(t *testing.T) {
	msg, err := Message(sampleEvent())
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "booking.created", msg.Type)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "booking.created", decoded["type"])
	assert.Equal(t, "booking-1", decoded["entityId"])
	assert.Equal(t, map[string]any{"propertyId": "flat-1"}, decoded["payload"])
}

func TestMessage_UnencodablePayload(t *testing.T) {
	ev := sampleEvent()
	ev.Payload = make(chan int)
	_, err := Message(ev)
	assert.Error(t, err)
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	assert.Contains(t, buf.String(), `"event_type":"booking.created"`)
	assert.Contains(t, buf.String(), `"entity_id":"booking-1"`)
	assert.NoError(t, p.Close())
}
