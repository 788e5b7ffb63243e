package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mareknov/lab-strava/internal/domain"
)

// CreateUserRequest: тело POST /users
type CreateUserRequest struct {
	Name      string  `json:"name" validate:"notblank,max=255"`
	Email     string  `json:"email" validate:"required,email"`
	FirstName *string `json:"firstName" validate:"omitempty,max=255"`
	LastName  *string `json:"lastName" validate:"omitempty,max=255"`
	StravaID  *int64  `json:"stravaId"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,max=2048"`
}

func (r CreateUserRequest) toInput() domain.CreateUserInput {
	return domain.CreateUserInput{
		Name:      r.Name,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		StravaID:  r.StravaID,
		AvatarURL: r.AvatarURL,
	}
}

// UpdateUserRequest: тело PUT /users/{id}; отсутствующие поля не меняются
type UpdateUserRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"firstName" validate:"omitempty,max=255"`
	LastName  *string `json:"lastName" validate:"omitempty,max=255"`
	StravaID  *int64  `json:"stravaId"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,max=2048"`
	IsActive  *bool   `json:"isActive"`
}

func (r UpdateUserRequest) toInput() domain.UpdateUserInput {
	return domain.UpdateUserInput{
		Name:      r.Name,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		StravaID:  r.StravaID,
		AvatarURL: r.AvatarURL,
		IsActive:  r.IsActive,
	}
}

// CreateActivityRequest: тело POST /activities
type CreateActivityRequest struct {
	Name               string               `json:"name" validate:"notblank"`
	Type               *domain.ActivityType `json:"type" validate:"required,activity_type"`
	StartDate          *time.Time           `json:"startDate" validate:"required"`
	StartDateLocal     *time.Time           `json:"startDateLocal" validate:"required"`
	Timezone           string               `json:"timezone" validate:"notblank"`
	Distance           *decimal.Decimal     `json:"distance" validate:"required,gte=0"`
	ElapsedTime        *int                 `json:"elapsedTime" validate:"required,min=1"`
	MovingTime         *int                 `json:"movingTime" validate:"required,min=1"`
	Description        *string              `json:"description"`
	TotalElevationGain *decimal.Decimal     `json:"totalElevationGain" validate:"omitempty,gte=0"`
	ElevHigh           *decimal.Decimal     `json:"elevHigh" validate:"omitempty,gte=0"`
	ElevLow            *decimal.Decimal     `json:"elevLow" validate:"omitempty,gte=0"`
	AverageSpeed       *decimal.Decimal     `json:"averageSpeed" validate:"omitempty,gte=0"`
	MaxSpeed           *decimal.Decimal     `json:"maxSpeed" validate:"omitempty,gte=0"`
	AverageHeartrate   *int                 `json:"averageHeartrate" validate:"omitempty,min=0"`
	MaxHeartrate       *int                 `json:"maxHeartrate" validate:"omitempty,min=0"`
	HasHeartrate       bool                 `json:"hasHeartrate"`
	AverageCadence     *int                 `json:"averageCadence" validate:"omitempty,min=0"`
	AverageWatts       *int                 `json:"averageWatts" validate:"omitempty,min=0"`
	MaxWatts           *int                 `json:"maxWatts" validate:"omitempty,min=0"`
	Kilojoules         *decimal.Decimal     `json:"kilojoules" validate:"omitempty,gte=0"`
	Calories           *int                 `json:"calories" validate:"omitempty,min=0"`
}

// toInput вызывается только после успешной валидации: обязательные указатели не nil
func (r CreateActivityRequest) toInput() domain.CreateActivityInput {
	return domain.CreateActivityInput{
		Name:               r.Name,
		Type:               *r.Type,
		StartDate:          *r.StartDate,
		StartDateLocal:     *r.StartDateLocal,
		Timezone:           r.Timezone,
		Distance:           r.Distance,
		ElapsedTime:        r.ElapsedTime,
		MovingTime:         r.MovingTime,
		Description:        r.Description,
		TotalElevationGain: r.TotalElevationGain,
		ElevHigh:           r.ElevHigh,
		ElevLow:            r.ElevLow,
		AverageSpeed:       r.AverageSpeed,
		MaxSpeed:           r.MaxSpeed,
		AverageHeartrate:   r.AverageHeartrate,
		MaxHeartrate:       r.MaxHeartrate,
		HasHeartrate:       r.HasHeartrate,
		AverageCadence:     r.AverageCadence,
		AverageWatts:       r.AverageWatts,
		MaxWatts:           r.MaxWatts,
		Kilojoules:         r.Kilojoules,
		Calories:           r.Calories,
	}
}
