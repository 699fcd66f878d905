package events

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRegistrationSucceeded EventType = "registration.succeeded"
	EventRegistrationFailed    EventType = "registration.failed"
	EventLoginSucceeded        EventType = "login.succeeded"
	EventLoginFailed           EventType = "login.failed"
	EventVerificationSucceeded EventType = "verification.succeeded"
	EventVerificationFailed    EventType = "verification.failed"
)

// AllEventTypes lists every flow outcome event.
var AllEventTypes = []EventType{
	EventRegistrationSucceeded,
	EventRegistrationFailed,
	EventLoginSucceeded,
	EventLoginFailed,
	EventVerificationSucceeded,
	EventVerificationFailed,
}

// Event is a flow outcome published after a backend call settles.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with an id and the current time.
func NewEvent(eventType EventType, sessionID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// Flow returns the flow name prefix of the event type, e.g. "login".
func (t EventType) Flow() string {
	flow, _, _ := strings.Cut(string(t), ".")
	return flow
}

// Outcome returns the suffix of the event type, e.g. "succeeded".
func (t EventType) Outcome() string {
	_, outcome, _ := strings.Cut(string(t), ".")
	return outcome
}

// RegistrationPayload describes a registration attempt.
type RegistrationPayload struct {
	Role       string `json:"role"`
	Email      string `json:"email"`
	HTTPStatus int    `json:"http_status,omitempty"`
}

// LoginPayload describes a login attempt.
type LoginPayload struct {
	Email      string `json:"email"`
	UserID     string `json:"user_id,omitempty"`
	Role       string `json:"role,omitempty"`
	HTTPStatus int    `json:"http_status,omitempty"`
}

// VerificationPayload describes a verification attempt.
type VerificationPayload struct {
	TokenPresent bool `json:"token_present"`
	HTTPStatus   int  `json:"http_status,omitempty"`
}
