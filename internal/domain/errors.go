package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: запрошенная сущность отсутствует.
	ErrNotFound = errors.New("entity not found")
	// ErrConflict: нарушена уникальность (email, Strava ID).
	ErrConflict = errors.New("conflict")
	// ErrInvalidArgument: нарушено бизнес-правило валидации.
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFoundError несет тип и идентификатор ненайденной сущности.
type NotFoundError struct {
	EntityType string
	EntityID   any
}

func NewNotFoundError(entityType string, entityID any) *NotFoundError {
	return &NotFoundError{EntityType: entityType, EntityID: entityID}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id '%v' not found", e.EntityType, e.EntityID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError — коллизия уникального поля.
type ConflictError struct {
	Message string
}

func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ValidationError — нарушение бизнес-правила; сообщение уходит клиенту как есть.
type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// EmailConflict и StravaIDConflict формируют одинаковые сообщения
// для проверки в сервисе и для нарушения ограничения в бд.
func EmailConflict(email string) *ConflictError {
	return NewConflictError("User with email '%s' already exists", email)
}

func StravaIDConflict(stravaID int64) *ConflictError {
	return NewConflictError("User with Strava ID '%d' already exists", stravaID)
}
