package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// десятичные метрики сериализуются числами как в HTTP-ответах, так и в событиях
	decimal.MarshalJSONWithoutQuotes = true
}

// ActivityType — вид спортивной активности.
type ActivityType string

const (
	ActivityTypeRun              ActivityType = "RUN"
	ActivityTypeTrailRun         ActivityType = "TRAIL_RUN"
	ActivityTypeVirtualRun       ActivityType = "VIRTUAL_RUN"
	ActivityTypeWalk             ActivityType = "WALK"
	ActivityTypeHike             ActivityType = "HIKE"
	ActivityTypeRide             ActivityType = "RIDE"
	ActivityTypeMountainBikeRide ActivityType = "MOUNTAIN_BIKE_RIDE"
	ActivityTypeGravelRide       ActivityType = "GRAVEL_RIDE"
	ActivityTypeVirtualRide      ActivityType = "VIRTUAL_RIDE"
	ActivityTypeEBikeRide        ActivityType = "E_BIKE_RIDE"
	ActivityTypeSwim             ActivityType = "SWIM"
	ActivityTypeRowing           ActivityType = "ROWING"
	ActivityTypeKayaking         ActivityType = "KAYAKING"
	ActivityTypeAlpineSki        ActivityType = "ALPINE_SKI"
	ActivityTypeNordicSki        ActivityType = "NORDIC_SKI"
	ActivityTypeSnowboard        ActivityType = "SNOWBOARD"
	ActivityTypeWorkout          ActivityType = "WORKOUT"
	ActivityTypeWeightTraining   ActivityType = "WEIGHT_TRAINING"
	ActivityTypeYoga             ActivityType = "YOGA"
)

var activityTypes = map[ActivityType]struct{}{
	ActivityTypeRun:              {},
	ActivityTypeTrailRun:         {},
	ActivityTypeVirtualRun:       {},
	ActivityTypeWalk:             {},
	ActivityTypeHike:             {},
	ActivityTypeRide:             {},
	ActivityTypeMountainBikeRide: {},
	ActivityTypeGravelRide:       {},
	ActivityTypeVirtualRide:      {},
	ActivityTypeEBikeRide:        {},
	ActivityTypeSwim:             {},
	ActivityTypeRowing:           {},
	ActivityTypeKayaking:         {},
	ActivityTypeAlpineSki:        {},
	ActivityTypeNordicSki:        {},
	ActivityTypeSnowboard:        {},
	ActivityTypeWorkout:          {},
	ActivityTypeWeightTraining:   {},
	ActivityTypeYoga:             {},
}

// Valid сообщает, входит ли тип в известный список.
func (t ActivityType) Valid() bool {
	_, ok := activityTypes[t]
	return ok
}

// Activity представляет запись о тренировке,
// соответствует таблице activities в бд
type Activity struct {
	ID                 uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	Name               string           `json:"name"`
	Type               ActivityType     `json:"type"`
	StartDate          time.Time        `json:"startDate"`
	StartDateLocal     time.Time        `json:"startDateLocal"`
	Timezone           string           `json:"timezone"`
	Distance           decimal.Decimal  `json:"distance" gorm:"type:numeric(12,2)"`
	ElapsedTime        int              `json:"elapsedTime"`
	MovingTime         int              `json:"movingTime"`
	Description        *string          `json:"description"`
	TotalElevationGain *decimal.Decimal `json:"totalElevationGain" gorm:"type:numeric(10,2)"`
	ElevHigh           *decimal.Decimal `json:"elevHigh" gorm:"type:numeric(10,2)"`
	ElevLow            *decimal.Decimal `json:"elevLow" gorm:"type:numeric(10,2)"`
	AverageSpeed       *decimal.Decimal `json:"averageSpeed" gorm:"type:numeric(8,4)"`
	MaxSpeed           *decimal.Decimal `json:"maxSpeed" gorm:"type:numeric(8,4)"`
	AverageHeartrate   *int             `json:"averageHeartrate"`
	MaxHeartrate       *int             `json:"maxHeartrate"`
	HasHeartrate       bool             `json:"hasHeartrate"`
	AverageCadence     *int             `json:"averageCadence"`
	AverageWatts       *int             `json:"averageWatts"`
	MaxWatts           *int             `json:"maxWatts"`
	Kilojoules         *decimal.Decimal `json:"kilojoules" gorm:"type:numeric(10,2)"`
	Calories           *int             `json:"calories"`
	CreatedAt          time.Time        `json:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time        `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

func (Activity) TableName() string {
	return "activities"
}

// CreateActivityInput — данные для создания активности.
// Обязательные числовые поля сделаны указателями, чтобы валидация различала "не передано" и ноль.
type CreateActivityInput struct {
	Name               string
	Type               ActivityType
	StartDate          time.Time
	StartDateLocal     time.Time
	Timezone           string
	Distance           *decimal.Decimal
	ElapsedTime        *int
	MovingTime         *int
	Description        *string
	TotalElevationGain *decimal.Decimal
	ElevHigh           *decimal.Decimal
	ElevLow            *decimal.Decimal
	AverageSpeed       *decimal.Decimal
	MaxSpeed           *decimal.Decimal
	AverageHeartrate   *int
	MaxHeartrate       *int
	HasHeartrate       bool
	AverageCadence     *int
	AverageWatts       *int
	MaxWatts           *int
	Kilojoules         *decimal.Decimal
	Calories           *int
}

// NewActivity собирает запись из уже провалидированного ввода.
// Обе даты старта приводятся к UTC с точностью до микросекунды, как хранит PostgreSQL.
func NewActivity(id uuid.UUID, in CreateActivityInput, now time.Time) Activity {
	a := Activity{
		ID:                 id,
		Name:               in.Name,
		Type:               in.Type,
		StartDate:          normalizeInstant(in.StartDate),
		StartDateLocal:     normalizeInstant(in.StartDateLocal),
		Timezone:           in.Timezone,
		Description:        in.Description,
		TotalElevationGain: in.TotalElevationGain,
		ElevHigh:           in.ElevHigh,
		ElevLow:            in.ElevLow,
		AverageSpeed:       in.AverageSpeed,
		MaxSpeed:           in.MaxSpeed,
		AverageHeartrate:   in.AverageHeartrate,
		MaxHeartrate:       in.MaxHeartrate,
		HasHeartrate:       in.HasHeartrate,
		AverageCadence:     in.AverageCadence,
		AverageWatts:       in.AverageWatts,
		MaxWatts:           in.MaxWatts,
		Kilojoules:         in.Kilojoules,
		Calories:           in.Calories,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if in.Distance != nil {
		a.Distance = *in.Distance
	}
	if in.ElapsedTime != nil {
		a.ElapsedTime = *in.ElapsedTime
	}
	if in.MovingTime != nil {
		a.MovingTime = *in.MovingTime
	}
	return a
}

func normalizeInstant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
