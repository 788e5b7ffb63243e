package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mareknov/lab-strava/internal/core/ports"
	"github.com/mareknov/lab-strava/internal/domain"
	"github.com/mareknov/lab-strava/internal/messaging/payloads"
	"github.com/mareknov/lab-strava/internal/observability"
)

const activityEntity = "Activity"

type activityUseCase struct {
	activityStorage ports.ActivityStorage
	transactor      ports.Transactor
	events          ports.EventPublisher
	logger          *slog.Logger
	opts            options
}

// NewActivityUseCase создает новый экземпляр ActivityUseCase
func NewActivityUseCase(
	activityStorage ports.ActivityStorage,
	transactor ports.Transactor,
	events ports.EventPublisher,
	logger *slog.Logger,
	opts ...Option,
) ActivityUseCase {
	return &activityUseCase{
		activityStorage: activityStorage,
		transactor:      transactor,
		events:          events,
		logger:          logger,
		opts:            buildOptions(opts),
	}
}

// CreateActivity валидирует ввод и сохраняет активность с новым ID;
// CreatedAt и UpdatedAt совпадают.
func (uc *activityUseCase) CreateActivity(ctx context.Context, in domain.CreateActivityInput) (*domain.Activity, error) {
	if err := domain.ValidateCreateActivity(in); err != nil {
		return nil, err
	}

	activity := domain.NewActivity(uc.opts.newID(), in, uc.opts.now())
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.activityStorage.Save(ctx, &activity); err != nil {
			return fmt.Errorf("usecase: save activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("activity created", "activity_id", activity.ID, "type", activity.Type)
	observability.RecordActivityCreated(activity.Type)
	publish(ctx, uc.events, uc.logger, payloads.NewDomainEvent(payloads.EventActivityCreated, activity.ID, activity.CreatedAt, activity))
	return &activity, nil
}

// GetActivityByID получает активность по ID
func (uc *activityUseCase) GetActivityByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	activity, err := uc.activityStorage.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: get activity %s: %w", id, err)
	}
	if activity == nil {
		return nil, domain.NewNotFoundError(activityEntity, id)
	}
	return activity, nil
}

func (uc *activityUseCase) GetAllActivities(ctx context.Context) ([]domain.Activity, error) {
	activities, err := uc.activityStorage.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: list activities: %w", err)
	}
	return activities, nil
}
