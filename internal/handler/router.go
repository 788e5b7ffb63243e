package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthCheckTimeout = 2 * time.Second

// Pinger проверяет доступность базы для /health
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig собирает зависимости HTTP-слоя
type RouterConfig struct {
	APIPrefix      string
	RequestTimeout time.Duration
	Users          *UserHandler
	Activities     *ActivityHandler
	DB             Pinger
	Logger         *slog.Logger
}

// NewRouter регистрирует все маршруты приложения
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithProblem(w, r, problemDetail{
			Title:  "Not Found",
			Status: http.StatusNotFound,
			Detail: fmt.Sprintf("No handler for %s %s", r.Method, r.URL.Path),
		}, cfg.Logger)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondWithProblem(w, r, problemDetail{
			Title:  "Method Not Allowed",
			Status: http.StatusMethodNotAllowed,
			Detail: fmt.Sprintf("Method %s is not supported for %s", r.Method, r.URL.Path),
		}, cfg.Logger)
	})

	r.Get("/health", healthHandler(cfg.DB, cfg.Logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Route(cfg.APIPrefix, func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}

		r.Route("/users", func(r chi.Router) {
			r.Post("/", cfg.Users.CreateUser)
			r.Get("/", cfg.Users.GetAllUsers)
			r.Get("/{id}", cfg.Users.GetUserByID)
			r.Put("/{id}", cfg.Users.UpdateUser)
			r.Delete("/{id}", cfg.Users.DeleteUser)
			r.Put("/{id}/avatar", cfg.Users.UploadAvatar)
		})

		r.Route("/activities", func(r chi.Router) {
			r.Post("/", cfg.Activities.CreateActivity)
			r.Get("/", cfg.Activities.GetAllActivities)
			r.Get("/{id}", cfg.Activities.GetActivityByID)
		})
	})

	return r
}

func healthHandler(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				logger.Warn("health check failed", "error", err)
				respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}, logger)
				return
			}
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	}
}
