package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mareknov/lab-strava/internal/core/ports"
	"github.com/mareknov/lab-strava/internal/domain"
	"github.com/mareknov/lab-strava/internal/messaging/payloads"
	"github.com/mareknov/lab-strava/internal/observability"
)

const userEntity = "User"

// userUseCase implements UserUseCase
type userUseCase struct {
	userStorage ports.UserStorage
	transactor  ports.Transactor
	fileStorage ports.FileStorage
	events      ports.EventPublisher
	logger      *slog.Logger
	opts        options
}

// NewUserUseCase создает новый экземпляр UserUseCase.
// fileStorage и events могут быть nil: аватары и события тогда отключены.
func NewUserUseCase(
	userStorage ports.UserStorage,
	transactor ports.Transactor,
	fileStorage ports.FileStorage,
	events ports.EventPublisher,
	logger *slog.Logger,
	opts ...Option,
) UserUseCase {
	return &userUseCase{
		userStorage: userStorage,
		transactor:  transactor,
		fileStorage: fileStorage,
		events:      events,
		logger:      logger,
		opts:        buildOptions(opts),
	}
}

// CreateUser проверяет бизнес-правила и уникальность, затем сохраняет пользователя
// в одной транзакции
func (uc *userUseCase) CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	if err := domain.ValidateCreateUser(in); err != nil {
		return nil, err
	}

	var created *domain.User
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.ensureEmailFree(ctx, in.Email); err != nil {
			return err
		}
		if in.StravaID != nil {
			if err := uc.ensureStravaIDFree(ctx, *in.StravaID); err != nil {
				return err
			}
		}

		now := uc.opts.now()
		user := &domain.User{
			ID:        uc.opts.newID(),
			Name:      in.Name,
			Email:     in.Email,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			StravaID:  in.StravaID,
			AvatarURL: in.AvatarURL,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.userStorage.Save(ctx, user); err != nil {
			return fmt.Errorf("usecase: save user: %w", err)
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user created", "user_id", created.ID)
	observability.RecordUserCreated()
	publish(ctx, uc.events, uc.logger, payloads.NewDomainEvent(payloads.EventUserCreated, created.ID, created.UpdatedAt, created))
	return created, nil
}

// GetUserByID получает пользователя по внутреннему ID
func (uc *userUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := uc.userStorage.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: get user %s: %w", id, err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(userEntity, id)
	}
	return user, nil
}

// GetAllUsers возвращает всех пользователей в порядке хранилища
func (uc *userUseCase) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.userStorage.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: list users: %w", err)
	}
	return users, nil
}

// UpdateUser применяет частичное обновление
func (uc *userUseCase) UpdateUser(ctx context.Context, id uuid.UUID, in domain.UpdateUserInput) (*domain.User, error) {
	if err := domain.ValidateUpdateUser(in); err != nil {
		return nil, err
	}

	var updated *domain.User
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := uc.userStorage.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("usecase: get user %s: %w", id, err)
		}
		if user == nil {
			return domain.NewNotFoundError(userEntity, id)
		}

		// совпадающее с текущим значение не проверяется повторно
		if in.Email != nil && *in.Email != user.Email {
			if err := uc.ensureEmailFree(ctx, *in.Email); err != nil {
				return err
			}
		}
		if in.StravaID != nil && (user.StravaID == nil || *in.StravaID != *user.StravaID) {
			if err := uc.ensureStravaIDFree(ctx, *in.StravaID); err != nil {
				return err
			}
		}

		in.Apply(user, uc.opts.now())
		if err := uc.userStorage.Save(ctx, user); err != nil {
			return fmt.Errorf("usecase: save user %s: %w", id, err)
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user updated", "user_id", updated.ID)
	publish(ctx, uc.events, uc.logger, payloads.NewDomainEvent(payloads.EventUserUpdated, updated.ID, updated.UpdatedAt, updated))
	return updated, nil
}

// DeleteUser удаляет пользователя; отсутствующий ID дает NotFound
func (uc *userUseCase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := uc.userStorage.ExistsByID(ctx, id)
		if err != nil {
			return fmt.Errorf("usecase: check user %s: %w", id, err)
		}
		if !exists {
			return domain.NewNotFoundError(userEntity, id)
		}
		if err := uc.userStorage.DeleteByID(ctx, id); err != nil {
			return fmt.Errorf("usecase: delete user %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Info("user deleted", "user_id", id)
	uc.removeAvatar(ctx, id)
	publish(ctx, uc.events, uc.logger, payloads.NewDomainEvent(payloads.EventUserDeleted, id, uc.opts.now(), nil))
	return nil
}

// UploadAvatar загружает аватар в файловое хранилище и сохраняет его URL.
// Сначала проверяется существование пользователя, чтобы не плодить осиротевшие файлы.
func (uc *userUseCase) UploadAvatar(ctx context.Context, id uuid.UUID, contentType string, body io.Reader) (*domain.User, error) {
	if uc.fileStorage == nil {
		return nil, ErrAvatarStorageDisabled
	}
	if _, err := uc.GetUserByID(ctx, id); err != nil {
		return nil, err
	}

	url, err := uc.fileStorage.UploadFile(ctx, avatarKey(id), body, contentType)
	if err != nil {
		return nil, fmt.Errorf("usecase: upload avatar for user %s: %w", id, err)
	}

	user, err := uc.UpdateUser(ctx, id, domain.UpdateUserInput{AvatarURL: &url})
	if err != nil {
		uc.removeAvatar(ctx, id)
		return nil, err
	}
	return user, nil
}

// removeAvatar удаляет объект аватара, на который больше не ссылается пользователь.
// Ошибка только логируется.
func (uc *userUseCase) removeAvatar(ctx context.Context, id uuid.UUID) {
	if uc.fileStorage == nil {
		return
	}
	if err := uc.fileStorage.DeleteFile(ctx, avatarKey(id)); err != nil {
		uc.logger.Warn("failed to delete avatar", "user_id", id, "error", err)
	}
}

func avatarKey(id uuid.UUID) string {
	return fmt.Sprintf("avatars/%s", id)
}

func (uc *userUseCase) ensureEmailFree(ctx context.Context, email string) error {
	exists, err := uc.userStorage.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("usecase: check email uniqueness: %w", err)
	}
	if exists {
		return domain.EmailConflict(email)
	}
	return nil
}

func (uc *userUseCase) ensureStravaIDFree(ctx context.Context, stravaID int64) error {
	exists, err := uc.userStorage.ExistsByStravaID(ctx, stravaID)
	if err != nil {
		return fmt.Errorf("usecase: check strava id uniqueness: %w", err)
	}
	if exists {
		return domain.StravaIDConflict(stravaID)
	}
	return nil
}
