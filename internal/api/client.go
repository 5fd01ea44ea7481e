// Package api defines the data-access contract consumed by the views and the CLI,
// and an HTTP implementation of it that talks to `taskpad serve`.
package api

import (
	"context"

	"taskpad/internal/model"
)

// Client is the remote data access used by the views. Every call may fail.
type Client interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, req model.CreateProjectRequest) (model.Project, error)
	GetProject(ctx context.Context, id string) (model.ProjectView, error)
	DeleteProject(ctx context.Context, id string) error

	CreateTask(ctx context.Context, req model.CreateTaskRequest) (model.Task, error)
	UpdateTask(ctx context.Context, id string, req model.UpdateTaskRequest) error
	DeleteTask(ctx context.Context, id string) error
}
