package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"github.com/mareknov/lab-strava/internal/domain"
)

// тексты ошибок по ключу "<json-поле>.<тег>"
var fieldMessages = map[string]string{
	"name.notblank":           "Name is required",
	"name.min":                "Name must be between 1 and 255 characters",
	"name.max":                "Name must be between 1 and 255 characters",
	"email.required":          "Email is required",
	"email.email":             "Email must be valid",
	"firstName.max":           "First name must be at most 255 characters",
	"lastName.max":            "Last name must be at most 255 characters",
	"avatarUrl.max":           "Avatar URL must be at most 2048 characters",
	"type.required":           "Type is required",
	"type.activity_type":      "Type must be a known activity type",
	"startDate.required":      "Start date is required",
	"startDateLocal.required": "Start date local is required",
	"timezone.notblank":       "Timezone is required",
	"distance.required":       "Distance is required",
	"distance.gte":            "Distance must be >= 0",
	"elapsedTime.required":    "Elapsed time is required",
	"elapsedTime.min":         "Elapsed time must be > 0",
	"movingTime.required":     "Moving time is required",
	"movingTime.min":          "Moving time must be > 0",
	"totalElevationGain.gte":  "Total elevation gain must be >= 0",
	"elevHigh.gte":            "Elevation high must be >= 0",
	"elevLow.gte":             "Elevation low must be >= 0",
	"averageSpeed.gte":        "Average speed must be >= 0",
	"maxSpeed.gte":            "Max speed must be >= 0",
	"averageHeartrate.min":    "Average heartrate must be >= 0",
	"maxHeartrate.min":        "Max heartrate must be >= 0",
	"averageCadence.min":      "Average cadence must be >= 0",
	"averageWatts.min":        "Average watts must be >= 0",
	"maxWatts.min":            "Max watts must be >= 0",
	"kilojoules.gte":          "Kilojoules must be >= 0",
	"calories.min":            "Calories must be >= 0",
}

// requestValidator проверяет форму запроса до бизнес-валидации
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()

	// имена полей в ошибках берутся из json-тегов
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// ошибки регистрации возможны только при пустом теге, поэтому игнорируются
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("activity_type", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(domain.ActivityType)
		return ok && t.Valid()
	})

	return &requestValidator{validate: v}
}

// Struct возвращает *requestValidationError с одним сообщением на поле.
// Для каждого поля validator останавливается на первом упавшем правиле.
func (rv *requestValidator) Struct(req any) error {
	err := rv.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid validation error: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = messageFor(fe)
	}
	return &requestValidationError{fields: fields}
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	default:
		return "Invalid value"
	}
}
