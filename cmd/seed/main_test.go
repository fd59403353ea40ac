package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskops/internal/config"
	"taskops/internal/handler"
	"taskops/internal/model"
	"taskops/internal/repository"
	"taskops/internal/router"
	"taskops/internal/service"
)

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()

	userRepo := repository.NewUserRepository()
	taskRepo := repository.NewTaskRepository()
	reportRepo := repository.NewReportRepository()

	e := echo.New()
	router.Register(e, &config.Config{Environment: "test"}, nil, router.Handlers{
		Health: handler.NewHealthHandler("test", false),
		User:   handler.NewUserHandler(service.NewUserService(userRepo, nil), nil),
		Task:   handler.NewTaskHandler(service.NewTaskService(taskRepo, nil), nil),
		Report: handler.NewReportHandler(service.NewReportService(reportRepo, userRepo, taskRepo, nil, 0, nil), nil),
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return &apiClient{baseURL: srv.URL + "/api", http: &http.Client{Timeout: 5 * time.Second}}
}

func TestSeedUsersAndTasks(t *testing.T) {
	ctx := context.Background()
	client := newTestAPI(t)

	users, created, err := seedUsers(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, len(demoUsers), created)
	require.Len(t, users, len(demoUsers))

	n, err := seedTasks(ctx, client, users)
	require.NoError(t, err)
	assert.Equal(t, len(demoTasks), n)

	var stats model.TaskStatistics
	require.NoError(t, client.get(ctx, "/tasks/statistics", &stats))
	assert.Equal(t, len(demoTasks), stats.Total)
	assert.Equal(t, 2, stats.ByStatus[model.TaskStatusDone])

	again, created, err := seedUsers(ctx, client)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, users[0].ID, again[0].ID)
}

func TestAPIClient_ReportsErrors(t *testing.T) {
	client := newTestAPI(t)

	err := client.post(context.Background(), "/users", map[string]string{"name": "x"}, nil)
	require.Error(t, err)

	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Missing required fields: name and email", apiErr.Message)
}
