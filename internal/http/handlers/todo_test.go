package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var errBroken = errors.New("connection refused")

// brokenStore fails every call the way an unreachable database would.
type brokenStore struct{}

func (brokenStore) Create(context.Context, *domain.Todo) error { return errBroken }
func (brokenStore) GetByID(context.Context, int64) (*domain.Todo, error) {
	return nil, errBroken
}
func (brokenStore) List(context.Context, domain.TodoFilter) ([]*domain.Todo, error) {
	return nil, errBroken
}
func (brokenStore) Update(context.Context, int64, domain.TodoPatch, time.Time) (*domain.Todo, error) {
	return nil, errBroken
}
func (brokenStore) Toggle(context.Context, int64, time.Time) (*domain.Todo, error) {
	return nil, errBroken
}
func (brokenStore) Delete(context.Context, int64) error { return errBroken }
func (brokenStore) Stats(context.Context) (domain.TodoStats, error) {
	return domain.TodoStats{}, errBroken
}
func (brokenStore) DeleteCompleted(context.Context) (int64, error) { return 0, errBroken }

func TestStoreFailuresAre500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(service.NewTodoService(brokenStore{}, nil))

	r := gin.New()
	r.GET("/todos", h.ListTodos)
	r.POST("/todos", h.CreateTodo)
	r.GET("/todos/:id", h.GetTodo)
	r.PATCH("/todos/:id/toggle", h.ToggleTodo)
	r.DELETE("/todos/:id", h.DeleteTodo)
	r.GET("/stats", h.TodoStats)

	cases := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/todos", ""},
		{http.MethodPost, "/todos", `{"title":"x"}`},
		{http.MethodGet, "/todos/1", ""},
		{http.MethodPatch, "/todos/1/toggle", ""},
		{http.MethodDelete, "/todos/1", ""},
		{http.MethodGet, "/stats", ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code, tc.path)
		assert.JSONEq(t, `{"error":"db error"}`, w.Body.String(), tc.path)
	}
}

func TestBlankTitleNeverReachesStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(service.NewTodoService(brokenStore{}, nil))

	r := gin.New()
	r.POST("/todos", h.CreateTodo)

	req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"title":"  "}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Title is required"}`, w.Body.String())
}

func TestHealthReportsDatabaseOutage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hh := NewHealthHandler(failingPinger{}, "test", func() int { return 2 })

	r := gin.New()
	r.GET("/health", hh.Health)
	r.GET("/readyz", hh.Readiness)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"ws_clients":"2"`)
	assert.Contains(t, w.Body.String(), `"storage":"postgres"`)
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errBroken }
