package model

import "time"

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Task struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Title     string    `json:"title"`
	IsDone    bool      `json:"isDone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProjectView is a project together with its ordered tasks, as returned by a single fetch.
// It is always replaced wholesale; callers never patch Items in place.
type ProjectView struct {
	Info  Project `json:"info"`
	Items []Task  `json:"items"`
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreateTaskRequest struct {
	Title     string `json:"title"`
	ProjectID string `json:"projectId"`
}

// UpdateTaskRequest carries the new task state explicitly; it is never derived
// from the task's current value.
type UpdateTaskRequest struct {
	IsDone bool `json:"isDone"`
}
