package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"taskpad/internal/api"
	"taskpad/internal/model"
)

func readTasks(ctx context.Context, db *sql.DB, projectID string) ([]model.Task, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, project_id, title, is_done, created_at_unixms, updated_at_unixms
		FROM tasks WHERE project_id = ? ORDER BY seq`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		var t model.Task
		var done int
		var createdMs, updatedMs int64
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &done, &createdMs, &updatedMs); err != nil {
			return nil, err
		}
		t.IsDone = done != 0
		t.CreatedAt = time.UnixMilli(createdMs).UTC()
		t.UpdatedAt = time.UnixMilli(updatedMs).UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s Store) CreateTask(ctx context.Context, req model.CreateTaskRequest) (model.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.Task{}, api.ErrTitleRequired
	}
	projectID := strings.TrimSpace(req.ProjectID)

	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Task{}, err
	}
	defer db.Close()

	var exists int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM projects WHERE id = ?`, projectID).Scan(&exists); err != nil {
		return model.Task{}, err
	}
	if exists == 0 {
		return model.Task{}, api.NotFoundError{Kind: "project", ID: projectID}
	}

	id, err := newRandomID("task")
	if err != nil {
		return model.Task{}, err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	t := model.Task{
		ID:        id,
		ProjectID: projectID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO tasks(id, project_id, title, is_done, created_at_unixms, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Title, boolToInt(t.IsDone), now.UnixMilli(), now.UnixMilli()); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// UpdateTask sets the task's done state to the requested value. Setting the value it
// already has is a no-op apart from updated_at.
func (s Store) UpdateTask(ctx context.Context, id string, req model.UpdateTaskRequest) error {
	id = strings.TrimSpace(id)

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `UPDATE tasks SET is_done = ?, updated_at_unixms = ? WHERE id = ?`,
		boolToInt(req.IsDone), time.Now().UTC().UnixMilli(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return api.NotFoundError{Kind: "task", ID: id}
	}
	return nil
}

func (s Store) DeleteTask(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return api.NotFoundError{Kind: "task", ID: id}
	}
	return nil
}

// FindTask is used by the CLI to resolve a task id to its project.
func (s Store) FindTask(ctx context.Context, id string) (model.Task, error) {
	id = strings.TrimSpace(id)

	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Task{}, err
	}
	defer db.Close()

	var t model.Task
	var done int
	var createdMs, updatedMs int64
	err = db.QueryRowContext(ctx, `SELECT id, project_id, title, is_done, created_at_unixms, updated_at_unixms FROM tasks WHERE id = ?`, id).
		Scan(&t.ID, &t.ProjectID, &t.Title, &done, &createdMs, &updatedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, api.NotFoundError{Kind: "task", ID: id}
	}
	if err != nil {
		return model.Task{}, err
	}
	t.IsDone = done != 0
	t.CreatedAt = time.UnixMilli(createdMs).UTC()
	t.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return t, nil
}
