package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mareknov/lab-strava/internal/domain"
	"gorm.io/gorm"
)

// GormUserStorage реализует интерфейс ports.UserStorage с использованием GORM
type GormUserStorage struct {
	db *gorm.DB
}

// NewGormUserStorage создает новый экземпляр GormUserStorage
func NewGormUserStorage(db *gorm.DB) *GormUserStorage {
	return &GormUserStorage{db: db}
}

// FindByID получает пользователя по ID; (nil, nil), если записи нет
func (s *GormUserStorage) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	result := conn(ctx, s.db).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по ID: %w", result.Error)
	}
	return &user, nil
}

// FindAll возвращает всех пользователей в порядке создания
func (s *GormUserStorage) FindAll(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	result := conn(ctx, s.db).Order("created_at ASC, id ASC").Find(&users)
	if result.Error != nil {
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", result.Error)
	}
	return users, nil
}

// Save вставляет нового пользователя или перезаписывает существующего целиком
func (s *GormUserStorage) Save(ctx context.Context, user *domain.User) error {
	result := conn(ctx, s.db).Save(user)
	if result.Error != nil {
		err := translateUserError(result.Error, user)
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("ошибка при сохранении пользователя: %w", err)
	}
	return nil
}

func (s *GormUserStorage) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists(ctx, "id = ?", id)
}

func (s *GormUserStorage) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "email = ?", email)
}

func (s *GormUserStorage) ExistsByStravaID(ctx context.Context, stravaID int64) (bool, error) {
	return s.exists(ctx, "strava_id = ?", stravaID)
}

// DeleteByID удаляет пользователя физически
func (s *GormUserStorage) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, s.db).Delete(&domain.User{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("ошибка при удалении пользователя %s: %w", id, result.Error)
	}
	return nil
}

func (s *GormUserStorage) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	result := conn(ctx, s.db).Model(&domain.User{}).Where(query, arg).Limit(1).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("ошибка при проверке существования пользователя: %w", result.Error)
	}
	return count > 0, nil
}
