package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskpad/internal/model"
)

const defaultHTTPTimeout = 10 * time.Second

// HTTPClient implements Client against the JSON API served by internal/web.
type HTTPClient struct {
	base *url.URL
	hc   *http.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("remote: missing base url")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("remote: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("remote: unsupported scheme %q", u.Scheme)
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &HTTPClient{base: u, hc: &http.Client{Timeout: timeout}}, nil
}

// envelope mirrors the server's {"data": ...} / {"error": ...} responses.
type envelope struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
	Kind  string          `json:"kind,omitempty"`
	ID    string          `json:"id,omitempty"`
}

func (c *HTTPClient) ListProjects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Project{}
	}
	return out, nil
}

func (c *HTTPClient) CreateProject(ctx context.Context, req model.CreateProjectRequest) (model.Project, error) {
	var out model.Project
	err := c.do(ctx, http.MethodPost, "/api/projects", req, &out)
	return out, err
}

func (c *HTTPClient) GetProject(ctx context.Context, id string) (model.ProjectView, error) {
	var out model.ProjectView
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), nil, &out); err != nil {
		return model.ProjectView{}, err
	}
	if out.Items == nil {
		out.Items = []model.Task{}
	}
	return out, nil
}

func (c *HTTPClient) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) CreateTask(ctx context.Context, req model.CreateTaskRequest) (model.Task, error) {
	var out model.Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", req, &out)
	return out, err
}

func (c *HTTPClient) UpdateTask(ctx context.Context, id string, req model.UpdateTaskRequest) error {
	return c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id), req, nil)
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("%s %s: decode response (status %d): %w", method, path, resp.StatusCode, err)
		}
	}

	if resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, env)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: decode data: %w", method, path, err)
	}
	return nil
}

func statusError(status int, env envelope) error {
	switch status {
	case http.StatusNotFound:
		if env.Kind != "" {
			return NotFoundError{Kind: env.Kind, ID: env.ID}
		}
	case http.StatusBadRequest:
		switch env.Error {
		case ErrTitleRequired.Error():
			return ErrTitleRequired
		case ErrNameRequired.Error():
			return ErrNameRequired
		}
	}
	msg := strings.TrimSpace(env.Error)
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("remote: %s (status %d)", msg, status)
}
