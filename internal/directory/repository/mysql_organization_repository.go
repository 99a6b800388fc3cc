package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// MySQLOrganizationRepository implements Organization persistence for MySQL databases.
type MySQLOrganizationRepository struct {
	db *sql.DB
}

// NewMySQLOrganizationRepository creates a new MySQL Organization repository instance.
func NewMySQLOrganizationRepository(db *sql.DB) *MySQLOrganizationRepository {
	return &MySQLOrganizationRepository{db: db}
}

// Create inserts a new organization into the MySQL database.
func (m *MySQLOrganizationRepository) Create(ctx context.Context, org *directoryDomain.Organization) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO organizations (id, name, email, password_hash, active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := org.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLOrganizationRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*directoryDomain.Organization, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, email, password_hash, active, created_at, updated_at
			  FROM organizations
			  WHERE id = ? AND active = TRUE
			  LIMIT 1`

	idValue, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	var org directoryDomain.Organization
	var rawID []byte

	err = querier.QueryRowContext(ctx, query, idValue).Scan(
		&rawID,
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

	if err := org.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}

	return &org, nil
}

// GetByEmail retrieves an active organization by its email.
func (m *MySQLOrganizationRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*directoryDomain.Organization, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, email, password_hash, active, created_at, updated_at
			  FROM organizations
			  WHERE email = ? AND active = TRUE
			  LIMIT 1`

	var org directoryDomain.Organization
	var rawID []byte

	err := querier.QueryRowContext(ctx, query, email).Scan(
		&rawID,
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

	if err := org.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}

	return &org, nil
}
