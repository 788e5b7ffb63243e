package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mareknov/lab-strava/internal/core/ports"
	"github.com/mareknov/lab-strava/internal/domain"
	"github.com/mareknov/lab-strava/internal/messaging/payloads"
)

// UserRemovalMode фиксирует семантику удаления для UserUseCase:
// запись удаляется физически, деактивации через флаг в интерфейсе нет.
const UserRemovalMode = "hard-delete"

// ErrAvatarStorageDisabled — файловое хранилище для аватаров не настроено.
var ErrAvatarStorageDisabled = errors.New("avatar storage is not configured")

// UserUseCase определяет интерфейс бизнес-логики работы с пользователями
type UserUseCase interface {
	// CreateUser создает активного пользователя; email и Strava ID должны быть уникальны.
	CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.User, error)

	// GetUserByID возвращает пользователя или *domain.NotFoundError.
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	GetAllUsers(ctx context.Context) ([]domain.User, error)

	// UpdateUser перезаписывает только переданные поля и всегда обновляет UpdatedAt.
	// Уникальность перепроверяется только для реально изменившихся email/Strava ID.
	UpdateUser(ctx context.Context, id uuid.UUID, in domain.UpdateUserInput) (*domain.User, error)

	// DeleteUser удаляет пользователя безвозвратно.
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// UploadAvatar сохраняет изображение в файловом хранилище и проставляет AvatarURL.
	UploadAvatar(ctx context.Context, id uuid.UUID, contentType string, body io.Reader) (*domain.User, error)
}

// ActivityUseCase определяет интерфейс бизнес-логики для активностей.
// Активность неизменяема после создания: обновления и удаления нет.
type ActivityUseCase interface {
	CreateActivity(ctx context.Context, in domain.CreateActivityInput) (*domain.Activity, error)
	GetActivityByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	GetAllActivities(ctx context.Context) ([]domain.Activity, error)
}

// Option настраивает интеракторы (часы, генератор ID), в основном для тестов.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() uuid.UUID
}

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator подменяет генератор идентификаторов.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(o *options) { o.newID = newID }
}

func buildOptions(opts []Option) options {
	o := options{
		now:   defaultNow,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// PostgreSQL хранит микросекунды, поэтому время обрезается заранее
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// publish отправляет событие после коммита; ошибка только логируется,
// так как запись уже зафиксирована.
func publish(ctx context.Context, events ports.EventPublisher, logger *slog.Logger, event payloads.DomainEvent) {
	if events == nil {
		return
	}
	if err := events.PublishEvent(ctx, event); err != nil {
		logger.Error("failed to publish domain event",
			"event_type", event.EventType,
			"entity_id", event.EntityID,
			"error", err,
		)
	}
}
