package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vitrine/vitrine/internal/model"
)

// CreateEducation inserts a new education entry.
func (r *Repository) CreateEducation(ctx context.Context, e *model.Education) (*model.Education, error) {
	query := `
		INSERT INTO education (id, institution, degree, field_of_study, start_date, end_date, description, grade, is_current, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	saved := *e
	err := r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		e.Institution,
		e.Degree,
		nullableString(e.FieldOfStudy),
		e.StartDate,
		e.EndDate,
		nullableString(e.Description),
		nullableString(e.Grade),
		e.IsCurrent,
	).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create education: %w", err)
	}

	return &saved, nil
}

// GetEducationByID retrieves an education entry by its ID.
func (r *Repository) GetEducationByID(ctx context.Context, id string) (*model.Education, error) {
	query := `
		SELECT id, institution, degree, field_of_study, start_date, end_date, description, grade, is_current, created_at, updated_at
		FROM education
		WHERE id = $1
	`

	e, err := scanEducation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get education: %w", err)
	}

	return e, nil
}

// ListEducation retrieves education entries, most recent first.
func (r *Repository) ListEducation(ctx context.Context) ([]*model.Education, error) {
	query := `
		SELECT id, institution, degree, field_of_study, start_date, end_date, description, grade, is_current, created_at, updated_at
		FROM education
		ORDER BY start_date DESC NULLS LAST
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list education: %w", err)
	}
	defer rows.Close()

	entries := make([]*model.Education, 0)
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan education: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// UpdateEducation updates an education entry and returns the new state.
func (r *Repository) UpdateEducation(ctx context.Context, e *model.Education) (*model.Education, error) {
	query := `
		UPDATE education
		SET institution = $2, degree = $3, field_of_study = $4, start_date = $5,
			end_date = $6, description = $7, grade = $8, is_current = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING id, institution, degree, field_of_study, start_date, end_date, description, grade, is_current, created_at, updated_at
	`

	saved, err := scanEducation(r.pool.QueryRow(ctx, query,
		e.ID,
		e.Institution,
		e.Degree,
		nullableString(e.FieldOfStudy),
		e.StartDate,
		e.EndDate,
		nullableString(e.Description),
		nullableString(e.Grade),
		e.IsCurrent,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update education: %w", err)
	}

	return saved, nil
}

// DeleteEducation removes an education entry.
func (r *Repository) DeleteEducation(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM education WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete education: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// CountEducation counts all education rows.
func (r *Repository) CountEducation(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM education`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count education: %w", err)
	}
	return count, nil
}

// scanEducation scans a row into an Education model.
func scanEducation(row pgx.Row) (*model.Education, error) {
	var e model.Education
	var fieldOfStudy, description, grade *string

	err := row.Scan(
		&e.ID,
		&e.Institution,
		&e.Degree,
		&fieldOfStudy,
		&e.StartDate,
		&e.EndDate,
		&description,
		&grade,
		&e.IsCurrent,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.FieldOfStudy = deref(fieldOfStudy)
	e.Description = deref(description)
	e.Grade = deref(grade)
	return &e, nil
}
