package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vitrine/vitrine/internal/model"
)

// Singleton tables hold at most one row each, pinned by a fixed
// singleton_key with a unique constraint. Writes go through
// INSERT ... ON CONFLICT DO UPDATE so concurrent upserts converge
// on the same row instead of racing a check-then-insert.
const singletonKey = "default"

// GetPersonalInfo retrieves the profile row. A missing row is not an
// error: it returns (nil, nil) so callers can present empty state.
func (r *Repository) GetPersonalInfo(ctx context.Context) (*model.PersonalInfo, error) {
	query := `
		SELECT id, name, title, bio, profile_image_url, resume_url, created_at, updated_at
		FROM personal_info
		WHERE singleton_key = $1
	`

	var info model.PersonalInfo
	var title, bio, imageURL, resumeURL *string
	err := r.pool.QueryRow(ctx, query, singletonKey).Scan(
		&info.ID,
		&info.Name,
		&title,
		&bio,
		&imageURL,
		&resumeURL,
		&info.CreatedAt,
		&info.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get personal info: %w", err)
	}

	info.Title = deref(title)
	info.Bio = deref(bio)
	info.ProfileImageURL = deref(imageURL)
	info.ResumeURL = deref(resumeURL)
	return &info, nil
}

// UpsertPersonalInfo creates or replaces the profile row and returns
// the persisted state including id and timestamps.
func (r *Repository) UpsertPersonalInfo(ctx context.Context, info *model.PersonalInfo) (*model.PersonalInfo, error) {
	query := `
		INSERT INTO personal_info (id, singleton_key, name, title, bio, profile_image_url, resume_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (singleton_key) DO UPDATE SET
			name = EXCLUDED.name,
			title = EXCLUDED.title,
			bio = EXCLUDED.bio,
			profile_image_url = EXCLUDED.profile_image_url,
			resume_url = EXCLUDED.resume_url,
			updated_at = NOW()
		RETURNING id, name, title, bio, profile_image_url, resume_url, created_at, updated_at
	`

	var saved model.PersonalInfo
	var title, bio, imageURL, resumeURL *string
	err := r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		singletonKey,
		info.Name,
		nullableString(info.Title),
		nullableString(info.Bio),
		nullableString(info.ProfileImageURL),
		nullableString(info.ResumeURL),
	).Scan(
		&saved.ID,
		&saved.Name,
		&title,
		&bio,
		&imageURL,
		&resumeURL,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert personal info: %w", err)
	}

	saved.Title = deref(title)
	saved.Bio = deref(bio)
	saved.ProfileImageURL = deref(imageURL)
	saved.ResumeURL = deref(resumeURL)
	return &saved, nil
}

// GetContactDetails retrieves the contact row, (nil, nil) when absent.
func (r *Repository) GetContactDetails(ctx context.Context) (*model.ContactDetails, error) {
	query := `
		SELECT id, email, phone, location, website, linkedin_url, github_url, twitter_url, created_at, updated_at
		FROM contact_details
		WHERE singleton_key = $1
	`

	var details model.ContactDetails
	var email, phone, location, website, linkedin, github, twitter *string
	err := r.pool.QueryRow(ctx, query, singletonKey).Scan(
		&details.ID,
		&email,
		&phone,
		&location,
		&website,
		&linkedin,
		&github,
		&twitter,
		&details.CreatedAt,
		&details.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact details: %w", err)
	}

	details.Email = deref(email)
	details.Phone = deref(phone)
	details.Location = deref(location)
	details.Website = deref(website)
	details.LinkedinURL = deref(linkedin)
	details.GithubURL = deref(github)
	details.TwitterURL = deref(twitter)
	return &details, nil
}

// UpsertContactDetails creates or replaces the contact row.
func (r *Repository) UpsertContactDetails(ctx context.Context, details *model.ContactDetails) (*model.ContactDetails, error) {
	query := `
		INSERT INTO contact_details (id, singleton_key, email, phone, location, website, linkedin_url, github_url, twitter_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (singleton_key) DO UPDATE SET
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			location = EXCLUDED.location,
			website = EXCLUDED.website,
			linkedin_url = EXCLUDED.linkedin_url,
			github_url = EXCLUDED.github_url,
			twitter_url = EXCLUDED.twitter_url,
			updated_at = NOW()
		RETURNING id, email, phone, location, website, linkedin_url, github_url, twitter_url, created_at, updated_at
	`

	var saved model.ContactDetails
	var email, phone, location, website, linkedin, github, twitter *string
	err := r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		singletonKey,
		nullableString(details.Email),
		nullableString(details.Phone),
		nullableString(details.Location),
		nullableString(details.Website),
		nullableString(details.LinkedinURL),
		nullableString(details.GithubURL),
		nullableString(details.TwitterURL),
	).Scan(
		&saved.ID,
		&email,
		&phone,
		&location,
		&website,
		&linkedin,
		&github,
		&twitter,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert contact details: %w", err)
	}

	saved.Email = deref(email)
	saved.Phone = deref(phone)
	saved.Location = deref(location)
	saved.Website = deref(website)
	saved.LinkedinURL = deref(linkedin)
	saved.GithubURL = deref(github)
	saved.TwitterURL = deref(twitter)
	return &saved, nil
}

// deref unwraps a nullable text column into its zero-value-for-null form.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
