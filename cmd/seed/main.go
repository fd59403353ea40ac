package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskops/internal/config"
	"taskops/internal/logger"
	"taskops/internal/model"
)

// envelope mirrors the API response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// apiError is a non-2xx answer from the API.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.Status, e.Message)
}

var demoUsers = []model.CreateUserInput{
	{Name: "Maria Silva", Email: "maria.silva@example.com", Role: model.RoleManager},
	{Name: "João Santos", Email: "joao.santos@example.com", Role: model.RoleUser},
	{Name: "Ana Costa", Email: "ana.costa@example.com", Role: model.RoleUser},
	{Name: "Admin", Email: "admin@example.com", Role: model.RoleAdmin},
}

type demoTask struct {
	title       string
	description string
	priority    model.TaskPriority
	assignee    int
	creator     int
	dueIn       time.Duration
	status      model.TaskStatus
}

var demoTasks = []demoTask{
	{"Set up CI pipeline", "Build and test on every push", model.TaskPriorityHigh, 1, 0, 72 * time.Hour, model.TaskStatusInProgress},
	{"Write API docs", "Document every endpoint", model.TaskPriorityMedium, 2, 0, 7 * 24 * time.Hour, model.TaskStatusTodo},
	{"Fix login redirect", "Users land on a blank page", model.TaskPriorityUrgent, 1, 3, -24 * time.Hour, model.TaskStatusTodo},
	{"Review monitoring alerts", "Tune noisy thresholds", model.TaskPriorityLow, 2, 0, 48 * time.Hour, model.TaskStatusDone},
	{"Plan sprint", "Prepare backlog for next sprint", model.TaskPriorityMedium, 0, 3, 24 * time.Hour, model.TaskStatusDone},
}

func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	defer func() { _ = log.Sync() }()

	log.Info("Starting seed script", zap.String("api_url", cfg.SeedAPIURL))

	client := &apiClient{
		baseURL: strings.TrimRight(cfg.SeedAPIURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	ctx := context.Background()

	users, created, err := seedUsers(ctx, client)
	if err != nil {
		log.Fatal("Failed to seed users", zap.Error(err))
	}
	log.Info("Users seeded", zap.Int("created", created), zap.Int("existing", len(users)-created))

	tasks, err := seedTasks(ctx, client, users)
	if err != nil {
		log.Fatal("Failed to seed tasks", zap.Error(err))
	}
	log.Info("Tasks seeded", zap.Int("created", tasks))

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	var report model.Report
	err = client.post(ctx, "/reports", map[string]string{
		"type":        string(model.ReportTypeMonthly),
		"generatedBy": users[0].ID,
		"startDate":   start.Format(time.RFC3339),
		"endDate":     start.AddDate(0, 1, 0).Add(-time.Second).Format(time.RFC3339),
	}, &report)
	if err != nil {
		log.Fatal("Failed to generate report", zap.Error(err))
	}

	log.Info("Seed completed successfully",
		zap.Int("users", len(users)),
		zap.Int("tasks", tasks),
		zap.String("report_id", report.ID),
		zap.String("report_title", report.Title),
	)
}

// seedUsers creates the demo users, reusing those already registered under the same email.
func seedUsers(ctx context.Context, client *apiClient) ([]model.User, int, error) {
	var existing []model.User
	if err := client.get(ctx, "/users", &existing); err != nil {
		return nil, 0, err
	}
	byEmail := make(map[string]model.User, len(existing))
	for _, u := range existing {
		byEmail[u.Email] = u
	}

	users := make([]model.User, 0, len(demoUsers))
	created := 0
	for _, input := range demoUsers {
		if u, ok := byEmail[input.Email]; ok {
			users = append(users, u)
			continue
		}
		var user model.User
		if err := client.post(ctx, "/users", input, &user); err != nil {
			return nil, created, fmt.Errorf("create user %s: %w", input.Email, err)
		}
		users = append(users, user)
		created++
	}
	return users, created, nil
}

func seedTasks(ctx context.Context, client *apiClient, users []model.User) (int, error) {
	created := 0
	for _, dt := range demoTasks {
		var task model.Task
		err := client.post(ctx, "/tasks", map[string]string{
			"title":       dt.title,
			"description": dt.description,
			"priority":    string(dt.priority),
			"assignedTo":  users[dt.assignee].ID,
			"createdBy":   users[dt.creator].ID,
			"dueDate":     time.Now().Add(dt.dueIn).UTC().Format(time.RFC3339),
		}, &task)
		if err != nil {
			return created, fmt.Errorf("create task %q: %w", dt.title, err)
		}
		created++

		if dt.status != model.TaskStatusTodo {
			err = client.put(ctx, "/tasks/"+task.ID, map[string]string{"status": string(dt.status)}, nil)
			if err != nil {
				return created, fmt.Errorf("update task %s: %w", task.ID, err)
			}
		}
	}
	return created, nil
}

type apiClient struct {
	baseURL string
	http    *http.Client
}

func (c *apiClient) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *apiClient) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *apiClient) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return &apiError{Status: resp.StatusCode, Message: env.Error}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to parse data: %w", err)
		}
	}
	return nil
}
