package postgres

import (
	"errors"

	"github.com/lib/pq"
	"github.com/mareknov/lab-strava/internal/domain"
)

const (
	uniqueViolation = "23505"

	usersEmailConstraint    = "users_email_key"
	usersStravaIDConstraint = "users_strava_id_key"
)

// translateUserError превращает нарушение уникальности в *domain.ConflictError.
// Остальные ошибки возвращаются без изменений.
func translateUserError(err error, user *domain.User) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return err
	}
	switch pqErr.Constraint {
	case usersEmailConstraint:
		return domain.EmailConflict(user.Email)
	case usersStravaIDConstraint:
		if user.StravaID != nil {
			return domain.StravaIDConflict(*user.StravaID)
		}
	}
	return domain.NewConflictError("User violates unique constraint %s", pqErr.Constraint)
}
