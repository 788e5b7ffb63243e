package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/mareknov/lab-strava/internal/domain"
)

// ActivityStorage реализует ports.ActivityStorage поверх Store
type ActivityStorage struct {
	store *Store
}

func NewActivityStorage(store *Store) *ActivityStorage {
	return &ActivityStorage{store: store}
}

func (s *ActivityStorage) FindByID(_ context.Context, id uuid.UUID) (*domain.Activity, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	a, ok := s.store.activities[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *ActivityStorage) FindAll(_ context.Context) ([]domain.Activity, error) {
	s.store.mu.RLock()
	activities := make([]domain.Activity, 0, len(s.store.activities))
	for _, a := range s.store.activities {
		activities = append(activities, a)
	}
	s.store.mu.RUnlock()

	sortByCreation(activities, func(a domain.Activity) (int64, string) {
		return a.CreatedAt.UnixNano(), a.ID.String()
	})
	return activities, nil
}

func (s *ActivityStorage) Save(_ context.Context, activity *domain.Activity) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.activities[activity.ID] = *activity
	return nil
}

func (s *ActivityStorage) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	_, ok := s.store.activities[id]
	return ok, nil
}
