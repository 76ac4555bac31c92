package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vitrine/vitrine/internal/model"
)

// SkillFilter defines filters for listing skills.
type SkillFilter struct {
	Category string
	Limit    int
}

// CreateSkill inserts a new skill entry.
func (r *Repository) CreateSkill(ctx context.Context, s *model.Skill) (*model.Skill, error) {
	query := `
		INSERT INTO skills (id, name, category, proficiency_level, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	saved := *s
	err := r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		s.Name,
		nullableString(s.Category),
		nullableInt(s.ProficiencyLevel),
	).Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}

	return &saved, nil
}

// GetSkillByID retrieves a skill by its ID.
func (r *Repository) GetSkillByID(ctx context.Context, id string) (*model.Skill, error) {
	query := `
		SELECT id, name, category, proficiency_level, created_at
		FROM skills
		WHERE id = $1
	`

	s, err := scanSkill(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}

	return s, nil
}

// ListSkills retrieves skills ordered by name.
func (r *Repository) ListSkills(ctx context.Context, filter SkillFilter) ([]*model.Skill, error) {
	query := `
		SELECT id, name, category, proficiency_level, created_at
		FROM skills
	`
	args := []any{}
	argIndex := 1

	if filter.Category != "" {
		query += fmt.Sprintf(" WHERE category = $%d", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}

	query += " ORDER BY name ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	skills := make([]*model.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}

	return skills, rows.Err()
}

// UpdateSkill updates a skill and returns the new state.
func (r *Repository) UpdateSkill(ctx context.Context, s *model.Skill) (*model.Skill, error) {
	query := `
		UPDATE skills
		SET name = $2, category = $3, proficiency_level = $4
		WHERE id = $1
		RETURNING id, name, category, proficiency_level, created_at
	`

	saved, err := scanSkill(r.pool.QueryRow(ctx, query,
		s.ID,
		s.Name,
		nullableString(s.Category),
		nullableInt(s.ProficiencyLevel),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update skill: %w", err)
	}

	return saved, nil
}

// DeleteSkill removes a skill.
func (r *Repository) DeleteSkill(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// scanSkill scans a row into a Skill model.
func scanSkill(row pgx.Row) (*model.Skill, error) {
	var s model.Skill
	var category *string
	var proficiency *int

	err := row.Scan(
		&s.ID,
		&s.Name,
		&category,
		&proficiency,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Category = deref(category)
	if proficiency != nil {
		s.ProficiencyLevel = *proficiency
	}
	return &s, nil
}
