package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mareknov/lab-strava/internal/domain"
)

var testActivityID = uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")

const validActivityBody = `{
	"name": "Morning Run",
	"type": "RUN",
	"startDate": "2024-01-15T06:00:00Z",
	"startDateLocal": "2024-01-15T07:00:00Z",
	"timezone": "Europe/Prague",
	"distance": 10000.50,
	"elapsedTime": 3600,
	"movingTime": 3400,
	"averageSpeed": 2.94,
	"maxSpeed": 4.5,
	"averageHeartrate": 150,
	"maxHeartrate": 178,
	"hasHeartrate": true
}`

func testActivity() *domain.Activity {
	hr := 150
	speed := decimal.RequireFromString("2.94")
	start := time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC)
	return &domain.Activity{
		ID:               testActivityID,
		Name:             "Morning Run",
		Type:             domain.ActivityTypeRun,
		StartDate:        start,
		StartDateLocal:   start.Add(time.Hour),
		Timezone:         "Europe/Prague",
		Distance:         decimal.RequireFromString("10000.50"),
		ElapsedTime:      3600,
		MovingTime:       3400,
		AverageSpeed:     &speed,
		AverageHeartrate: &hr,
		HasHeartrate:     true,
		CreatedAt:        testTime,
		UpdatedAt:        testTime,
	}
}

func TestActivityHandler_CreateActivity(t *testing.T) {
	s := newTestServer(t)
	s.activities.On("CreateActivity", mock.Anything, mock.MatchedBy(func(in domain.CreateActivityInput) bool {
		return in.Type == domain.ActivityTypeRun &&
			in.Distance != nil && in.Distance.Equal(decimal.RequireFromString("10000.5")) &&
			*in.ElapsedTime == 3600 && *in.MovingTime == 3400 &&
			in.HasHeartrate && in.Timezone == "Europe/Prague"
	})).Return(testActivity(), nil)

	rec := s.do(http.MethodPost, "/v1/activities", validActivityBody)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, testActivityID.String(), body["id"])
	assert.Equal(t, "RUN", body["type"])
	assert.Equal(t, 10000.5, body["distance"])
	assert.Equal(t, 2.94, body["averageSpeed"])
	assert.Nil(t, body["maxSpeed"])
	assert.Equal(t, float64(150), body["averageHeartrate"])
	assert.Equal(t, "2024-01-15T06:00:00Z", body["startDate"])
	s.activities.AssertExpectations(t)
}

func TestActivityHandler_CreateActivity_StructuralValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(map[string]any)
		field    string
		expected string
	}{
		{"missing name", func(m map[string]any) { delete(m, "name") }, "name", "Name is required"},
		{"missing type", func(m map[string]any) { delete(m, "type") }, "type", "Type is required"},
		{"unknown type", func(m map[string]any) { m["type"] = "TELEPORT" }, "type", "Type must be a known activity type"},
		{"missing start date", func(m map[string]any) { delete(m, "startDate") }, "startDate", "Start date is required"},
		{"missing timezone", func(m map[string]any) { m["timezone"] = "" }, "timezone", "Timezone is required"},
		{"missing distance", func(m map[string]any) { delete(m, "distance") }, "distance", "Distance is required"},
		{"negative distance", func(m map[string]any) { m["distance"] = -1 }, "distance", "Distance must be >= 0"},
		{"zero elapsed time", func(m map[string]any) { m["elapsedTime"] = 0 }, "elapsedTime", "Elapsed time must be > 0"},
		{"missing moving time", func(m map[string]any) { delete(m, "movingTime") }, "movingTime", "Moving time is required"},
		{"negative max speed", func(m map[string]any) { m["maxSpeed"] = -0.5 }, "maxSpeed", "Max speed must be >= 0"},
		{"negative calories", func(m map[string]any) { m["calories"] = -10 }, "calories", "Calories must be >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			var payload map[string]any
			require.NoError(t, json.Unmarshal([]byte(validActivityBody), &payload))
			tt.mutate(payload)
			raw, err := json.Marshal(payload)
			require.NoError(t, err)

			rec := s.do(http.MethodPost, "/v1/activities", string(raw))

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			body := decodeBody(t, rec)
			assert.Equal(t, "Validation Error", body["title"])
			errs := body["errors"].(map[string]any)
			assert.Equal(t, tt.expected, errs[tt.field])
			s.activities.AssertNotCalled(t, "CreateActivity", mock.Anything, mock.Anything)
		})
	}
}

func TestActivityHandler_CreateActivity_ZeroDistanceAllowed(t *testing.T) {
	s := newTestServer(t)
	s.activities.On("CreateActivity", mock.Anything, mock.Anything).Return(testActivity(), nil)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(validActivityBody), &payload))
	payload["distance"] = 0
	raw, _ := json.Marshal(payload)

	rec := s.do(http.MethodPost, "/v1/activities", string(raw))

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestActivityHandler_CreateActivity_BusinessRule(t *testing.T) {
	s := newTestServer(t)
	s.activities.On("CreateActivity", mock.Anything, mock.Anything).
		Return(nil, domain.NewValidationError("Moving time must be <= elapsed time"))

	rec := s.do(http.MethodPost, "/v1/activities", validActivityBody)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Bad Request", body["title"])
	assert.Equal(t, "Moving time must be <= elapsed time", body["detail"])
}

func TestActivityHandler_GetAllActivities(t *testing.T) {
	s := newTestServer(t)
	s.activities.On("GetAllActivities", mock.Anything).Return([]domain.Activity{*testActivity()}, nil)

	rec := s.do(http.MethodGet, "/v1/activities", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var activities []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activities))
	require.Len(t, activities, 1)
	assert.Equal(t, "Morning Run", activities[0]["name"])
}

func TestActivityHandler_GetActivityByID(t *testing.T) {
	s := newTestServer(t)
	s.activities.On("GetActivityByID", mock.Anything, testActivityID).Return(testActivity(), nil)

	rec := s.do(http.MethodGet, "/v1/activities/"+testActivityID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Europe/Prague", decodeBody(t, rec)["timezone"])
}

func TestActivityHandler_GetActivityByID_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.activities.On("GetActivityByID", mock.Anything, testActivityID).
		Return(nil, domain.NewNotFoundError("Activity", testActivityID))

	rec := s.do(http.MethodGet, "/v1/activities/"+testActivityID.String(), "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Activity", body["entityType"])
	assert.Equal(t, "/v1/activities/"+testActivityID.String(), body["instance"])
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lab_strava_http_requests_total")
}

func TestHealth_DatabaseDown(t *testing.T) {
	logger := discardLogger()
	router := NewRouter(RouterConfig{
		APIPrefix:  "/v1",
		Users:      NewUserHandler(new(MockUserUseCase), 1024, logger),
		Activities: NewActivityHandler(new(MockActivityUseCase), logger),
		DB:         stubPinger{err: errors.New("connection refused")},
		Logger:     logger,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_UnknownRouteIsProblemJSON(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/v1/segments", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	body := decodeBody(t, rec)
	assert.Equal(t, "Not Found", body["title"])
	assert.Equal(t, "/v1/segments", body["instance"])
}

func TestRouter_WrongMethodIsProblemJSON(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodDelete, "/v1/activities/"+testActivityID.String(), "")

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	body := decodeBody(t, rec)
	assert.Equal(t, "Method Not Allowed", body["title"])
	assert.Equal(t, float64(http.StatusMethodNotAllowed), body["status"])
}
