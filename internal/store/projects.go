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

func (s Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, name, description, created_at_unixms FROM projects ORDER BY created_at_unixms, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Project{}
	for rows.Next() {
		var p model.Project
		var createdMs int64
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &createdMs); err != nil {
			return nil, err
		}
		p.CreatedAt = time.UnixMilli(createdMs).UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s Store) CreateProject(ctx context.Context, req model.CreateProjectRequest) (model.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Project{}, api.ErrNameRequired
	}
	id, err := newRandomID("proj")
	if err != nil {
		return model.Project{}, err
	}
	p := model.Project{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Project{}, err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `INSERT INTO projects(id, name, description, created_at_unixms) VALUES(?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.CreatedAt.UnixMilli()); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// GetProject loads the project and all of its tasks in creation order.
func (s Store) GetProject(ctx context.Context, id string) (model.ProjectView, error) {
	id = strings.TrimSpace(id)

	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.ProjectView{}, err
	}
	defer db.Close()

	var out model.ProjectView
	var createdMs int64
	err = db.QueryRowContext(ctx, `SELECT id, name, description, created_at_unixms FROM projects WHERE id = ?`, id).
		Scan(&out.Info.ID, &out.Info.Name, &out.Info.Description, &createdMs)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ProjectView{}, api.NotFoundError{Kind: "project", ID: id}
	}
	if err != nil {
		return model.ProjectView{}, err
	}
	out.Info.CreatedAt = time.UnixMilli(createdMs).UTC()

	out.Items, err = readTasks(ctx, db, id)
	if err != nil {
		return model.ProjectView{}, err
	}
	return out, nil
}

func (s Store) DeleteProject(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return api.NotFoundError{Kind: "project", ID: id}
	}
	return tx.Commit()
}
