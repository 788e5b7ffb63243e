package ports

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/mareknov/lab-strava/internal/domain"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей.
// FindByID возвращает (nil, nil), если записи нет.
// Save выполняет вставку или полное обновление; нарушение уникальности
// email/strava_id возвращается как *domain.ConflictError.
type UserStorage interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByStravaID(ctx context.Context, stravaID int64) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// ActivityStorage определяет методы для взаимодействия с хранилищем активностей
type ActivityStorage interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	FindAll(ctx context.Context) ([]domain.Activity, error)
	Save(ctx context.Context, activity *domain.Activity) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// Transactor выполняет fn в одной транзакции: либо все изменения, либо ни одного.
// Хранилища берут транзакцию из ctx, переданного в fn.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// FileStorage — порт для бинарных данных (аватары) в S3-совместимом хранилище.
type FileStorage interface {
	// UploadFile загружает файл и возвращает его публичный URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}
