package payloads

import (
	"time"

	"github.com/google/uuid"
)

// EventType — тип доменного события, уходящего в RabbitMQ.
type EventType string

const (
	EventUserCreated     EventType = "user.created"
	EventUserUpdated     EventType = "user.updated"
	EventUserDeleted     EventType = "user.deleted"
	EventActivityCreated EventType = "activity.created"
)

// DomainEvent представляет сообщение о зафиксированном изменении сущности.
// Payload — снимок сущности после изменения (nil для удаления).
type DomainEvent struct {
	EventType  EventType `json:"eventType"`
	EntityID   uuid.UUID `json:"entityId"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}

func NewDomainEvent(eventType EventType, entityID uuid.UUID, occurredAt time.Time, payload any) DomainEvent {
	return DomainEvent{
		EventType:  eventType,
		EntityID:   entityID,
		OccurredAt: occurredAt,
		Payload:    payload,
	}
}
