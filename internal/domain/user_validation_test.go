package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func TestValidateCreateUser(t *testing.T) {
	tests := []struct {
		name    string
		in      CreateUserInput
		wantErr string
	}{
		{"valid minimal", CreateUserInput{Name: "Jane", Email: "jane@example.com"}, ""},
		{"valid with avatar", CreateUserInput{Name: "Jane", Email: "jane@example.com", AvatarURL: strPtr("https://example.com/a.jpg")}, ""},
		{"blank avatar is allowed", CreateUserInput{Name: "Jane", Email: "jane@example.com", AvatarURL: strPtr("  ")}, ""},
		{"uppercase email", CreateUserInput{Name: "Jane", Email: "Jane@example.com"}, "Email should be lowercase and trimmed"},
		{"padded email", CreateUserInput{Name: "Jane", Email: " jane@example.com"}, "Email should be lowercase and trimmed"},
		{"ftp avatar", CreateUserInput{Name: "Jane", Email: "jane@example.com", AvatarURL: strPtr("ftp://example.com/a.jpg")}, "avatarUrl must be a valid HTTP or HTTPS URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreateUser(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidateUpdateUser_OnlyPresentFields(t *testing.T) {
	assert.NoError(t, ValidateUpdateUser(UpdateUserInput{}))
	assert.NoError(t, ValidateUpdateUser(UpdateUserInput{Name: strPtr("Only Name")}))

	err := ValidateUpdateUser(UpdateUserInput{Email: strPtr("MIXED@example.com")})
	require.Error(t, err)
	assert.Equal(t, "Email should be lowercase and trimmed", err.Error())

	err = ValidateUpdateUser(UpdateUserInput{AvatarURL: strPtr("example.com/a.png")})
	require.Error(t, err)
	assert.Equal(t, "avatarUrl must be a valid HTTP or HTTPS URL", err.Error())
}

func TestUpdateUserInput_Apply(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	stravaID := int64(42)
	u := User{
		Name:      "Old",
		Email:     "old@example.com",
		StravaID:  &stravaID,
		AvatarURL: strPtr("https://example.com/old.png"),
		IsActive:  true,
		CreatedAt: created,
		UpdatedAt: created,
	}
	later := created.Add(time.Hour)
	inactive := false

	UpdateUserInput{Name: strPtr("New"), IsActive: &inactive}.Apply(&u, later)

	assert.Equal(t, "New", u.Name)
	assert.Equal(t, "old@example.com", u.Email)
	assert.Equal(t, int64(42), *u.StravaID)
	assert.Equal(t, "https://example.com/old.png", *u.AvatarURL)
	assert.False(t, u.IsActive)
	assert.Equal(t, created, u.CreatedAt)
	assert.Equal(t, later, u.UpdatedAt)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("User", "abc")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "User with id 'abc' not found", err.Error())
}
