package domain

import (
	"time"

	"github.com/google/uuid"
)

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	StravaID  *int64    `json:"stravaId" gorm:"column:strava_id"`
	AvatarURL *string   `json:"avatarUrl" gorm:"column:avatar_url"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

func (User) TableName() string {
	return "users"
}

// CreateUserInput — данные для создания пользователя.
type CreateUserInput struct {
	Name      string
	Email     string
	FirstName *string
	LastName  *string
	StravaID  *int64
	AvatarURL *string
}

// UpdateUserInput — частичное обновление: nil означает "поле не передано".
type UpdateUserInput struct {
	Name      *string
	Email     *string
	FirstName *string
	LastName  *string
	StravaID  *int64
	AvatarURL *string
	IsActive  *bool
}

// Apply переносит переданные поля в пользователя и обновляет UpdatedAt.
func (in UpdateUserInput) Apply(u *User, now time.Time) {
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.FirstName != nil {
		u.FirstName = in.FirstName
	}
	if in.LastName != nil {
		u.LastName = in.LastName
	}
	if in.StravaID != nil {
		u.StravaID = in.StravaID
	}
	if in.AvatarURL != nil {
		u.AvatarURL = in.AvatarURL
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	u.UpdatedAt = now
}
