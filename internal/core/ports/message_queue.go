package ports

import (
	"context"

	"github.com/mareknov/lab-strava/internal/messaging/payloads"
)

// EventPublisher публикует доменные события после успешного коммита.
// Используется usecase-слоем; ошибка публикации не откатывает запись.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event payloads.DomainEvent) error
}
