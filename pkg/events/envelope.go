package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActorRef identifies who produced the event.
type ActorRef struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role,omitempty"`
}

// PayloadEnvelope is the stable payload structure published on the wire.
type PayloadEnvelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"eventId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Actor      *ActorRef       `json:"actor,omitempty"`
	Data       json.RawMessage `json:"data"`
}

// NewEnvelope wraps the marshaled payload in a versioned envelope.
func NewEnvelope(actor *ActorRef, payload any) (PayloadEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return PayloadEnvelope{}, err
	}
	return PayloadEnvelope{
		Version:    1,
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		Actor:      actor,
		Data:       data,
	}, nil
}
