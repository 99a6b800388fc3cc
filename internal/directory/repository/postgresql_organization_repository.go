// Package repository implements data persistence for the directory context.
// Repositories support both PostgreSQL and MySQL with soft deletion via the
// active flag.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// PostgreSQLOrganizationRepository implements Organization persistence for PostgreSQL databases.
type PostgreSQLOrganizationRepository struct {
	db *sql.DB
}

// NewPostgreSQLOrganizationRepository creates a new PostgreSQL Organization repository instance.
func NewPostgreSQLOrganizationRepository(db *sql.DB) *PostgreSQLOrganizationRepository {
	return &PostgreSQLOrganizationRepository{db: db}
}

// Create inserts a new organization into the PostgreSQL database.
func (p *PostgreSQLOrganizationRepository) Create(ctx context.Context, org *directoryDomain.Organization) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO organizations (id, name, email, password_hash, active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		org.ID,
		org.Name,
		org.Email,
		org.PasswordHash,
		org.Active,
		org.CreatedAt,
		org.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create organization")
	}
	return nil
}

// GetByID retrieves an active organization by its ID.
func (p *PostgreSQLOrganizationRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*directoryDomain.Organization, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, email, password_hash, active, created_at, updated_at
			  FROM organizations
			  WHERE id = $1 AND active = TRUE
			  LIMIT 1`

	var org directoryDomain.Organization
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&org.ID,
		&org.Name,
		&org.Email,
		&org.PasswordHash,
		&org.Active,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, directoryDomain.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization by id")
	}

	return &org, nil
}

// GetByEmail retrieves an active organization by its email.
func (p *PostgreSQLOrganizationRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*directoryDomain.Organization, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, email, password_hash, active, created_at, updated_at
			  FROM organizations
			  WHERE email = $1 AND active = TRUE
			  LIMIT 1`

	var org directoryDomain.Organization
	err := querier.QueryRowContext(ctx, query, email).Scan(
		&org.ID,
		&org.Name,
		&org.Email,
		&org.PasswordHash,
		&org.Active,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, directoryDomain.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization by email")
	}

	return &org, nil
}
