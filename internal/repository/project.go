package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"github.com/vitrine/vitrine/internal/model"
)

// ProjectFilter defines filters for listing projects.
type ProjectFilter struct {
	Featured *bool
	Limit    int
}

// CreateProject inserts a new project and returns the persisted row.
func (r *Repository) CreateProject(ctx context.Context, p *model.Project) (*model.Project, error) {
	query := `
		INSERT INTO projects (id, title, description, long_description, technologies, project_url, github_url, image_url, featured, status, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	saved := *p
	err := r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		p.Title,
		nullableString(p.Description),
		nullableString(p.LongDescription),
		pq.Array(p.Technologies),
		nullableString(p.ProjectURL),
		nullableString(p.GithubURL),
		nullableString(p.ImageURL),
		p.Featured,
		p.Status,
		p.StartDate,
		p.EndDate,
	).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &saved, nil
}

// GetProjectByID retrieves a project by its ID.
func (r *Repository) GetProjectByID(ctx context.Context, id string) (*model.Project, error) {
	query := `
		SELECT id, title, description, long_description, technologies, project_url, github_url, image_url, featured, status, start_date, end_date, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	p, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return p, nil
}

// ListProjects retrieves projects ordered featured-first, newest-first.
func (r *Repository) ListProjects(ctx context.Context, filter ProjectFilter) ([]*model.Project, error) {
	query := `
		SELECT id, title, description, long_description, technologies, project_url, github_url, image_url, featured, status, start_date, end_date, created_at, updated_at
		FROM projects
	`
	args := []any{}
	argIndex := 1

	if filter.Featured != nil {
		query += fmt.Sprintf(" WHERE featured = $%d", argIndex)
		args = append(args, *filter.Featured)
		argIndex++
	}

	query += " ORDER BY featured DESC, created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// UpdateProject updates a project's mutable fields and returns the new state.
func (r *Repository) UpdateProject(ctx context.Context, p *model.Project) (*model.Project, error) {
	query := `
		UPDATE projects
		SET title = $2, description = $3, long_description = $4, technologies = $5,
			project_url = $6, github_url = $7, image_url = $8, featured = $9,
			status = $10, start_date = $11, end_date = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, description, long_description, technologies, project_url, github_url, image_url, featured, status, start_date, end_date, created_at, updated_at
	`

	saved, err := scanProject(r.pool.QueryRow(ctx, query,
		p.ID,
		p.Title,
		nullableString(p.Description),
		nullableString(p.LongDescription),
		pq.Array(p.Technologies),
		nullableString(p.ProjectURL),
		nullableString(p.GithubURL),
		nullableString(p.ImageURL),
		p.Featured,
		p.Status,
		p.StartDate,
		p.EndDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return saved, nil
}

// DeleteProject removes a project.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// CountProjects counts all project rows.
func (r *Repository) CountProjects(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// scanProject scans a row into a Project model.
func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	var description, longDescription, projectURL, githubURL, imageURL *string

	err := row.Scan(
		&p.ID,
		&p.Title,
		&description,
		&longDescription,
		pq.Array(&p.Technologies),
		&projectURL,
		&githubURL,
		&imageURL,
		&p.Featured,
		&p.Status,
		&p.StartDate,
		&p.EndDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Description = deref(description)
	p.LongDescription = deref(longDescription)
	p.ProjectURL = deref(projectURL)
	p.GithubURL = deref(githubURL)
	p.ImageURL = deref(imageURL)
	return &p, nil
}
