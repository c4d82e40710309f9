package events

import (
	"time"

	"github.com/E72-BI/cartao-santa-casa/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMemberRegistered EventType = "member_registered"
	EventMemberValidated  EventType = "member_validated"
	EventPasswordCreated  EventType = "password_created"
	EventMemberUpdated    EventType = "member_updated"
	EventMemberRemoved    EventType = "member_removed"
	EventMembersImported  EventType = "members_imported"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	MemberID  string      `json:"member_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MemberRegisteredPayload payload.
type MemberRegisteredPayload struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	CardType domain.CardType `json:"card_type"`
}

// MemberValidatedPayload payload.
type MemberValidatedPayload struct {
	Email string `json:"email"`
}

// PasswordCreatedPayload payload.
type PasswordCreatedPayload struct {
	Email string `json:"email"`
}

// MemberUpdatedPayload payload.
type MemberUpdatedPayload struct {
	Email  string              `json:"email"`
	Status domain.MemberStatus `json:"status"`
}

// MembersImportedPayload payload.
type MembersImportedPayload struct {
	Count int `json:"count"`
}
