package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/smarttodo/smarttodo/internal/model"
)

// Sentinel errors for the classes the gateway reacts to. Everything else
// surfaces as *APIError.
var (
	ErrUnreachable  = errors.New("api: backend unreachable")
	ErrUnauthorized = errors.New("api: unauthorized")
	ErrNotFound     = errors.New("api: not found")
)

// Client is an HTTP client for the Smart Todo backend.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// --- Task endpoints ---

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	if err := c.do(ctx, "GET", "/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, in model.Task) (model.Task, error) {
	var out model.Task
	if err := c.do(ctx, "POST", "/tasks", in, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	var out model.Task
	if err := c.do(ctx, "PUT", "/tasks/"+id, patch, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/tasks/"+id, nil, nil)
}

// --- Category endpoints ---

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := c.do(ctx, "GET", "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SyncCategories(ctx context.Context, categories []model.Category) error {
	return c.do(ctx, "POST", "/categories/sync", categories, nil)
}

// --- Goal endpoints ---

func (c *Client) ListGoals(ctx context.Context) ([]model.Goal, error) {
	var out []model.Goal
	if err := c.do(ctx, "GET", "/goals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateGoal(ctx context.Context, in model.Goal) (model.Goal, error) {
	var out model.Goal
	if err := c.do(ctx, "POST", "/goals", in, &out); err != nil {
		return model.Goal{}, err
	}
	return out, nil
}

func (c *Client) UpdateGoal(ctx context.Context, id string, patch model.GoalPatch) (model.Goal, error) {
	var out model.Goal
	if err := c.do(ctx, "PUT", "/goals/"+id, patch, &out); err != nil {
		return model.Goal{}, err
	}
	return out, nil
}

func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/goals/"+id, nil, nil)
}

func (c *Client) AddGoalSession(ctx context.Context, id string, durationSec int) (model.Goal, error) {
	body := map[string]int{"duration": durationSec}
	var out model.Goal
	if err := c.do(ctx, "POST", "/goals/"+id+"/sessions", body, &out); err != nil {
		return model.Goal{}, err
	}
	return out, nil
}

// --- User endpoints (never short-circuited by offline mode) ---

func (c *Client) Login(ctx context.Context, email, password string) (model.Credential, error) {
	body := map[string]string{"email": email, "password": password}
	var out model.Credential
	if err := c.doNoAuth(ctx, "POST", "/users/login", body, &out); err != nil {
		return model.Credential{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (model.Credential, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out model.Credential
	if err := c.doNoAuth(ctx, "POST", "/users", body, &out); err != nil {
		return model.Credential{}, err
	}
	return out, nil
}

func (c *Client) Guest(ctx context.Context) (model.Credential, error) {
	var out model.Credential
	if err := c.doNoAuth(ctx, "POST", "/users/guest", nil, &out); err != nil {
		return model.Credential{}, err
	}
	return out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, patch model.ProfilePatch) (model.Credential, error) {
	var out model.Credential
	if err := c.do(ctx, "PUT", "/users/profile", patch, &out); err != nil {
		return model.Credential{}, err
	}
	return out, nil
}

// --- AI helper endpoints ---

type categorizeResponse struct {
	Category string `json:"category"`
}

func (c *Client) Categorize(ctx context.Context, title string, categories []string) (string, error) {
	body := map[string]any{"title": title, "categories": categories}
	var out categorizeResponse
	if err := c.do(ctx, "POST", "/ai/categorize", body, &out); err != nil {
		return "", err
	}
	return out.Category, nil
}

type breakdownResponse struct {
	Breakdown string `json:"breakdown"`
}

func (c *Client) Breakdown(ctx context.Context, title string) (string, error) {
	body := map[string]string{"title": title}
	var out breakdownResponse
	if err := c.do(ctx, "POST", "/ai/breakdown", body, &out); err != nil {
		return "", err
	}
	return out.Breakdown, nil
}

// --- HTTP helpers ---

// APIError is the standard error body from the server.
type APIError struct {
	Status  int
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	return c.doRequest(ctx, method, path, body, result, true)
}

func (c *Client) doNoAuth(ctx context.Context, method, path string, body, result any) error {
	return c.doRequest(ctx, method, path, body, result, false)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, result any, auth bool) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth && c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		// Transport failures are a binary unreachable signal; the gateway
		// recovers them from the local mirror.
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.Unmarshal(respBody, apiErr)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
		default:
			return apiErr
		}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
