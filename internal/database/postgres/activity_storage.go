package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mareknov/lab-strava/internal/domain"
	"gorm.io/gorm"
)

// GormActivityStorage реализует ports.ActivityStorage
type GormActivityStorage struct {
	db *gorm.DB
}

func NewGormActivityStorage(db *gorm.DB) *GormActivityStorage {
	return &GormActivityStorage{db: db}
}

func (s *GormActivityStorage) FindByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	var activity domain.Activity
	result := conn(ctx, s.db).First(&activity, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении активности по ID: %w", result.Error)
	}
	return &activity, nil
}

func (s *GormActivityStorage) FindAll(ctx context.Context) ([]domain.Activity, error) {
	activities := make([]domain.Activity, 0)
	result := conn(ctx, s.db).Order("created_at ASC, id ASC").Find(&activities)
	if result.Error != nil {
		return nil, fmt.Errorf("ошибка при получении списка активностей: %w", result.Error)
	}
	return activities, nil
}

func (s *GormActivityStorage) Save(ctx context.Context, activity *domain.Activity) error {
	if result := conn(ctx, s.db).Save(activity); result.Error != nil {
		return fmt.Errorf("ошибка при сохранении активности: %w", result.Error)
	}
	return nil
}

func (s *GormActivityStorage) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	result := conn(ctx, s.db).Model(&domain.Activity{}).Where("id = ?", id).Limit(1).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("ошибка при проверке существования активности: %w", result.Error)
	}
	return count > 0, nil
}
