// Package memory хранит пользователей и активности в памяти процесса.
// Используется в тестах usecase/handler и для локального запуска без PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mareknov/lab-strava/internal/domain"
)

// Store — общее состояние обоих хранилищ. Транзакции сериализуются через txMu
// и откатываются восстановлением снимка.
type Store struct {
	mu         sync.RWMutex
	txMu       sync.Mutex
	users      map[uuid.UUID]domain.User
	activities map[uuid.UUID]domain.Activity
}

func NewStore() *Store {
	return &Store{
		users:      make(map[uuid.UUID]domain.User),
		activities: make(map[uuid.UUID]domain.Activity),
	}
}

type snapshot struct {
	users      map[uuid.UUID]domain.User
	activities map[uuid.UUID]domain.Activity
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		users:      make(map[uuid.UUID]domain.User, len(s.users)),
		activities: make(map[uuid.UUID]domain.Activity, len(s.activities)),
	}
	for id, u := range s.users {
		snap.users[id] = u
	}
	for id, a := range s.activities {
		snap.activities[id] = a
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.activities = snap.activities
}

type txKey struct{}

// WithinTransaction implements ports.Transactor.
// Вложенный вызов выполняется в уже открытой транзакции.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// sortByCreation упорядочивает как PostgreSQL-хранилище: created_at, затем id
func sortByCreation[T any](items []T, key func(T) (int64, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti != tj {
			return ti < tj
		}
		return idi < idj
	})
}
