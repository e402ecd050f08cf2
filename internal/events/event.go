package events

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeRoundStarted          Type = "round.started"
	TypeRoundStartDateChanged Type = "round.start_date_changed"
	TypeRoundCompleted        Type = "round.completed"
	TypeRoundEnded            Type = "round.ended"
	TypeRoundRestarted        Type = "round.restarted"
	TypeHealthSynced          Type = "health.synced"
)

// Event is a round lifecycle notification. Consumers key on UserKey, so all events
// of one user land on the same partition in order.
type Event struct {
	ID         string         `json:"id"`
	Type       Type           `json:"type"`
	UserKey    string         `json:"userKey"`
	Round      int            `json:"round"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload,omitempty"`
}

func New(eventType Type, userKey string, round int, payload map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		UserKey:    userKey,
		Round:      round,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
