package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTokenIssued      EventType = "token_issued"
	EventIssuanceRejected EventType = "issuance_rejected"
	EventSigningFailed    EventType = "signing_failed"
)

// Event describes the outcome of one issuance attempt. It never carries the
// secret or the token.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	AppID     string    `json:"app_id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Code      string    `json:"code,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, appID, userID string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AppID:     appID,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
}
