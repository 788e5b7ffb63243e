package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mareknov/lab-strava/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(email string, createdAt time.Time) *domain.User {
	return &domain.User{
		ID:        uuid.New(),
		Name:      "runner",
		Email:     email,
		IsActive:  true,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestUserStorage_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	users := NewUserStorage(NewStore())

	u := newUser("a@example.com", time.Now().UTC())
	require.NoError(t, users.Save(ctx, u))

	got, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *u, *got)

	missing, err := users.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	exists, err := users.ExistsByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserStorage_SaveRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	users := NewUserStorage(NewStore())
	stravaID := int64(42)

	first := newUser("a@example.com", time.Now().UTC())
	first.StravaID = &stravaID
	require.NoError(t, users.Save(ctx, first))

	err := users.Save(ctx, newUser("a@example.com", time.Now().UTC()))
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "User with email 'a@example.com' already exists", conflict.Message)

	second := newUser("b@example.com", time.Now().UTC())
	second.StravaID = &stravaID
	err = users.Save(ctx, second)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// resaving the same record is an update, not a conflict
	assert.NoError(t, users.Save(ctx, first))
}

func TestUserStorage_FindAllOrderedByCreation(t *testing.T) {
	ctx := context.Background()
	users := NewUserStorage(NewStore())
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	late := newUser("late@example.com", base.Add(time.Hour))
	early := newUser("early@example.com", base)
	require.NoError(t, users.Save(ctx, late))
	require.NoError(t, users.Save(ctx, early))

	all, err := users.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, early.ID, all[0].ID)
	assert.Equal(t, late.ID, all[1].ID)
}

func TestStore_WithinTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users := NewUserStorage(store)
	boom := errors.New("boom")

	u := newUser("a@example.com", time.Now().UTC())
	err := store.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, users.Save(ctx, u))
		return boom
	})
	require.ErrorIs(t, err, boom)

	exists, err := users.ExistsByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_WithinTransactionCommits(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	activities := NewActivityStorage(store)

	a := &domain.Activity{ID: uuid.New(), Name: "Morning Run", Type: domain.ActivityTypeRun, CreatedAt: time.Now().UTC()}
	err := store.WithinTransaction(ctx, func(ctx context.Context) error {
		return store.WithinTransaction(ctx, func(ctx context.Context) error {
			return activities.Save(ctx, a)
		})
	})
	require.NoError(t, err)

	got, err := activities.FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Morning Run", got.Name)
}
