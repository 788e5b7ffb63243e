package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mareknov/lab-strava/internal/domain"
	"github.com/mareknov/lab-strava/internal/usecase"
)

const problemContentType = "application/problem+json"

// problemDetail — тело ошибки в формате RFC 9457
type problemDetail struct {
	Type       string            `json:"type"`
	Title      string            `json:"title"`
	Status     int               `json:"status"`
	Detail     string            `json:"detail"`
	Instance   string            `json:"instance"`
	EntityType string            `json:"entityType,omitempty"`
	EntityID   string            `json:"entityId,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// requestValidationError — тело запроса не прошло структурную валидацию
type requestValidationError struct {
	fields map[string]string
}

func (e *requestValidationError) Error() string {
	return fmt.Sprintf("request validation failed: %v", e.fields)
}

// badRequestError — некорректный JSON, UUID или тело запроса
type badRequestError struct {
	detail string
	cause  error
}

func (e *badRequestError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.detail, e.cause)
	}
	return e.detail
}

func (e *badRequestError) Unwrap() error { return e.cause }

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload any, logger *slog.Logger) {
	writeJSON(w, code, "application/json", payload, logger)
}

func writeJSON(w http.ResponseWriter, code int, contentType string, payload any, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to marshal JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithProblem — отправляет problem+json с заданным статусом
func respondWithProblem(w http.ResponseWriter, r *http.Request, p problemDetail, logger *slog.Logger) {
	p.Type = "about:blank"
	p.Instance = r.URL.Path
	writeJSON(w, p.Status, problemContentType, p, logger)
}

// respondWithDomainError — единственное место, где ошибки переводятся в HTTP-ответы
func respondWithDomainError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var (
		notFound   *domain.NotFoundError
		validation *requestValidationError
		badRequest *badRequestError
	)

	switch {
	case errors.As(err, &notFound):
		respondWithProblem(w, r, problemDetail{
			Title:      "Entity Not Found",
			Status:     http.StatusNotFound,
			Detail:     notFound.Error(),
			EntityType: notFound.EntityType,
			EntityID:   fmt.Sprint(notFound.EntityID),
		}, logger)

	case errors.As(err, &validation):
		respondWithProblem(w, r, problemDetail{
			Title:  "Validation Error",
			Status: http.StatusBadRequest,
			Detail: "Validation failed",
			Errors: validation.fields,
		}, logger)

	case errors.As(err, &badRequest):
		respondWithProblem(w, r, problemDetail{
			Title:  "Bad Request",
			Status: http.StatusBadRequest,
			Detail: badRequest.detail,
		}, logger)

	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidArgument):
		respondWithProblem(w, r, problemDetail{
			Title:  "Bad Request",
			Status: http.StatusBadRequest,
			Detail: domainMessage(err),
		}, logger)

	case errors.Is(err, usecase.ErrAvatarStorageDisabled):
		respondWithProblem(w, r, problemDetail{
			Title:  "Service Unavailable",
			Status: http.StatusServiceUnavailable,
			Detail: "Avatar storage is not configured",
		}, logger)

	default:
		logger.Error("unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		respondWithProblem(w, r, problemDetail{
			Title:  "Internal Server Error",
			Status: http.StatusInternalServerError,
			Detail: "An unexpected error occurred",
		}, logger)
	}
}

// domainMessage достает сообщение типизированной ошибки без оберток из usecase
func domainMessage(err error) string {
	var (
		conflict   *domain.ConflictError
		validation *domain.ValidationError
	)
	switch {
	case errors.As(err, &conflict):
		return conflict.Message
	case errors.As(err, &validation):
		return validation.Message
	default:
		return err.Error()
	}
}

// decodeJSON читает тело запроса в dst
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &badRequestError{detail: "Request body is required"}
		}
		return &badRequestError{detail: "Malformed JSON request body", cause: err}
	}
	return nil
}

// pathID разбирает UUID из параметра маршрута
func pathID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &badRequestError{detail: fmt.Sprintf("Invalid UUID: %s", raw), cause: err}
	}
	return id, nil
}
