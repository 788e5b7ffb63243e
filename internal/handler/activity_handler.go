package handler

import (
	"log/slog"
	"net/http"

	"github.com/mareknov/lab-strava/internal/usecase"
)

// ActivityHandler — обработчик HTTP-запросов для активностей.
type ActivityHandler struct {
	activityUseCase usecase.ActivityUseCase
	validator       *requestValidator
	logger          *slog.Logger
}

func NewActivityHandler(uc usecase.ActivityUseCase, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityUseCase: uc,
		validator:       newRequestValidator(),
		logger:          logger,
	}
}

// CreateActivity обрабатывает POST /activities
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req CreateActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	activity, err := h.activityUseCase.CreateActivity(r.Context(), req.toInput())
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, activity, h.logger)
}

// GetAllActivities обрабатывает GET /activities
func (h *ActivityHandler) GetAllActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityUseCase.GetAllActivities(r.Context())
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, activities, h.logger)
}

// GetActivityByID обрабатывает GET /activities/{id}
func (h *ActivityHandler) GetActivityByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	activity, err := h.activityUseCase.GetActivityByID(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, activity, h.logger)
}
