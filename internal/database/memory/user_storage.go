package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/mareknov/lab-strava/internal/domain"
)

// UserStorage реализует ports.UserStorage поверх Store
type UserStorage struct {
	store *Store
}

func NewUserStorage(store *Store) *UserStorage {
	return &UserStorage{store: store}
}

func (s *UserStorage) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	u, ok := s.store.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *UserStorage) FindAll(_ context.Context) ([]domain.User, error) {
	s.store.mu.RLock()
	users := make([]domain.User, 0, len(s.store.users))
	for _, u := range s.store.users {
		users = append(users, u)
	}
	s.store.mu.RUnlock()

	sortByCreation(users, func(u domain.User) (int64, string) {
		return u.CreatedAt.UnixNano(), u.ID.String()
	})
	return users, nil
}

// Save вставляет или заменяет пользователя, соблюдая те же ограничения
// уникальности, что и таблица users.
func (s *UserStorage) Save(_ context.Context, user *domain.User) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for id, other := range s.store.users {
		if id == user.ID {
			continue
		}
		if other.Email == user.Email {
			return domain.EmailConflict(user.Email)
		}
		if user.StravaID != nil && other.StravaID != nil && *other.StravaID == *user.StravaID {
			return domain.StravaIDConflict(*user.StravaID)
		}
	}
	s.store.users[user.ID] = *user
	return nil
}

func (s *UserStorage) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	_, ok := s.store.users[id]
	return ok, nil
}

func (s *UserStorage) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	for _, u := range s.store.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *UserStorage) ExistsByStravaID(_ context.Context, stravaID int64) (bool, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	for _, u := range s.store.users {
		if u.StravaID != nil && *u.StravaID == stravaID {
			return true, nil
		}
	}
	return false, nil
}

// DeleteByID удаляет запись; отсутствие записи не считается ошибкой
func (s *UserStorage) DeleteByID(_ context.Context, id uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	delete(s.store.users, id)
	return nil
}
