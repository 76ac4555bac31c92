package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vitrine/vitrine/internal/model"
)

// CreateCertificate inserts a new certificate entry.
func (r *Repository) CreateCertificate(ctx context.Context, c *model.Certificate) (*model.Certificate, error) {
	query := `
		INSERT INTO certificates (id, title, issuing_organization, issue_date, expiry_date, credential_id, credential_url, description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	saved := *c
	err := r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		c.Title,
		c.IssuingOrganization,
		c.IssueDate,
		c.ExpiryDate,
		nullableString(c.CredentialID),
		nullableString(c.CredentialURL),
		nullableString(c.Description),
		nullableString(c.ImageURL),
	).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}

	return &saved, nil
}

// GetCertificateByID retrieves a certificate by its ID.
func (r *Repository) GetCertificateByID(ctx context.Context, id string) (*model.Certificate, error) {
	query := `
		SELECT id, title, issuing_organization, issue_date, expiry_date, credential_id, credential_url, description, image_url, created_at, updated_at
		FROM certificates
		WHERE id = $1
	`

	c, err := scanCertificate(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}

	return c, nil
}

// ListCertificates retrieves certificates, most recently issued first.
func (r *Repository) ListCertificates(ctx context.Context) ([]*model.Certificate, error) {
	query := `
		SELECT id, title, issuing_organization, issue_date, expiry_date, credential_id, credential_url, description, image_url, created_at, updated_at
		FROM certificates
		ORDER BY issue_date DESC NULLS LAST
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	defer rows.Close()

	certs := make([]*model.Certificate, 0)
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan certificate: %w", err)
		}
		certs = append(certs, c)
	}

	return certs, rows.Err()
}

// UpdateCertificate updates a certificate and returns the new state.
func (r *Repository) UpdateCertificate(ctx context.Context, c *model.Certificate) (*model.Certificate, error) {
	query := `
		UPDATE certificates
		SET title = $2, issuing_organization = $3, issue_date = $4, expiry_date = $5,
			credential_id = $6, credential_url = $7, description = $8, image_url = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, issuing_organization, issue_date, expiry_date, credential_id, credential_url, description, image_url, created_at, updated_at
	`

	saved, err := scanCertificate(r.pool.QueryRow(ctx, query,
		c.ID,
		c.Title,
		c.IssuingOrganization,
		c.IssueDate,
		c.ExpiryDate,
		nullableString(c.CredentialID),
		nullableString(c.CredentialURL),
		nullableString(c.Description),
		nullableString(c.ImageURL),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update certificate: %w", err)
	}

	return saved, nil
}

// DeleteCertificate removes a certificate.
func (r *Repository) DeleteCertificate(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM certificates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete certificate: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// CountCertificates counts all certificate rows.
func (r *Repository) CountCertificates(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM certificates`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count certificates: %w", err)
	}
	return count, nil
}

// scanCertificate scans a row into a Certificate model.
func scanCertificate(row pgx.Row) (*model.Certificate, error) {
	var c model.Certificate
	var credentialID, credentialURL, description, imageURL *string

	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.IssuingOrganization,
		&c.IssueDate,
		&c.ExpiryDate,
		&credentialID,
		&credentialURL,
		&description,
		&imageURL,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CredentialID = deref(credentialID)
	c.CredentialURL = deref(credentialURL)
	c.Description = deref(description)
	c.ImageURL = deref(imageURL)
	return &c, nil
}
