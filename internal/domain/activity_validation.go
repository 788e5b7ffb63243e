package domain

import (
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
)

const maxHeartrate = 300

// ValidateCreateActivity проверяет бизнес-правила активности.
// Порядок проверок фиксирован, возвращается первое нарушение.
func ValidateCreateActivity(in CreateActivityInput) error {
	checks := []func() error{
		func() error { return validateDistance(in.Distance) },
		func() error { return validateElapsedTime(in.ElapsedTime) },
		func() error { return validateMovingTime(in.MovingTime, in.ElapsedTime) },
		func() error { return validateElevation(in.ElevHigh, in.ElevLow) },
		func() error { return validateSpeed(in.MaxSpeed, in.AverageSpeed) },
		func() error { return validateHeartrate(in.AverageHeartrate, in.MaxHeartrate) },
		func() error { return validateTimezone(in.Timezone) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func validateDistance(distance *decimal.Decimal) error {
	if distance == nil {
		return NewValidationError("Distance is required")
	}
	if distance.IsNegative() {
		return NewValidationError("Distance must be >= 0")
	}
	return nil
}

func validateElapsedTime(elapsed *int) error {
	if elapsed == nil {
		return NewValidationError("Elapsed time is required")
	}
	if *elapsed <= 0 {
		return NewValidationError("Elapsed time must be > 0")
	}
	return nil
}

func validateMovingTime(moving, elapsed *int) error {
	if moving == nil {
		return NewValidationError("Moving time is required")
	}
	if *moving <= 0 {
		return NewValidationError("Moving time must be > 0")
	}
	if elapsed != nil && *moving > *elapsed {
		return NewValidationError("Moving time must be <= elapsed time")
	}
	return nil
}

func validateElevation(high, low *decimal.Decimal) error {
	if high != nil && low != nil && !high.GreaterThan(*low) {
		return NewValidationError("Elevation high must be > elevation low")
	}
	return nil
}

func validateSpeed(maxSpeed, avgSpeed *decimal.Decimal) error {
	if maxSpeed != nil && avgSpeed != nil && maxSpeed.LessThan(*avgSpeed) {
		return NewValidationError("Max speed must be >= average speed")
	}
	return nil
}

func validateHeartrate(avg, peak *int) error {
	if avg != nil && (*avg < 0 || *avg > maxHeartrate) {
		return NewValidationError("Average heartrate must be between 0 and 300 bpm")
	}
	if peak != nil && (*peak < 0 || *peak > maxHeartrate) {
		return NewValidationError("Max heartrate must be between 0 and 300 bpm")
	}
	return nil
}

// time.LoadLocation принимает "" и "Local", но это не IANA-идентификаторы
func validateTimezone(tz string) error {
	if tz == "" || tz == "Local" {
		return NewValidationError("Invalid timezone: %s", tz)
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return NewValidationError("Invalid timezone: %s", tz)
	}
	return nil
}
