package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mareknov/lab-strava/internal/usecase"
)

// UserHandler — обработчик HTTP-запросов для работы с пользователями.
type UserHandler struct {
	userUseCase    usecase.UserUseCase
	validator      *requestValidator
	avatarMaxBytes int64
	logger         *slog.Logger
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(uc usecase.UserUseCase, avatarMaxBytes int64, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase:    uc,
		validator:      newRequestValidator(),
		avatarMaxBytes: avatarMaxBytes,
		logger:         logger,
	}
}

// CreateUser обрабатывает POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	user, err := h.userUseCase.CreateUser(r.Context(), req.toInput())
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, user, h.logger)
}

// GetAllUsers обрабатывает GET /users
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUseCase.GetAllUsers(r.Context())
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, users, h.logger)
}

// GetUserByID обрабатывает GET /users/{id}
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	user, err := h.userUseCase.GetUserByID(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// UpdateUser обрабатывает PUT /users/{id}, частичное обновление
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	var req UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	user, err := h.userUseCase.UpdateUser(r.Context(), id, req.toInput())
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// DeleteUser обрабатывает DELETE /users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	if err := h.userUseCase.DeleteUser(r.Context(), id); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadAvatar обрабатывает PUT /users/{id}/avatar, тело запроса содержит само изображение
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.avatarMaxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = &badRequestError{detail: fmt.Sprintf("Avatar must be at most %d bytes", h.avatarMaxBytes)}
		}
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	if len(data) == 0 {
		respondWithDomainError(w, r, &badRequestError{detail: "Avatar image is required"}, h.logger)
		return
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		respondWithDomainError(w, r, &badRequestError{detail: "Avatar must be an image"}, h.logger)
		return
	}

	user, err := h.userUseCase.UploadAvatar(r.Context(), id, contentType, bytes.NewReader(data))
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	h.logger.Info("avatar uploaded", "user_id", id, "bytes", len(data), "content_type", contentType)
	respondWithJSON(w, http.StatusOK, user, h.logger)
}
