package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// PostgreSQLComponentRepository implements Component persistence for PostgreSQL databases.
type PostgreSQLComponentRepository struct {
	db *sql.DB
}

// NewPostgreSQLComponentRepository creates a new PostgreSQL Component repository instance.
func NewPostgreSQLComponentRepository(db *sql.DB) *PostgreSQLComponentRepository {
	return &PostgreSQLComponentRepository{db: db}
}

// Create inserts a new component into the PostgreSQL database.
func (p *PostgreSQLComponentRepository) Create(ctx context.Context, component *vaultDomain.Component) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO components (id, vault_id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		component.ID,
		component.VaultID,
		component.OrganizationID,
		component.Name,
		component.Description,
		component.Active,
		component.CreatedBy,
		component.UpdatedBy,
		component.CreatedAt,
		component.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create component")
	}
	return nil
}

// GetByID retrieves an active component by its ID.
func (p *PostgreSQLComponentRepository) GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Component, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, vault_id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at
			  FROM components
			  WHERE id = $1 AND active = TRUE
			  LIMIT 1`

	var component vaultDomain.Component
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&component.ID,
		&component.VaultID,
		&component.OrganizationID,
		&component.Name,
		&component.Description,
		&component.Active,
		&component.CreatedBy,
		&component.UpdatedBy,
		&component.CreatedAt,
		&component.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vaultDomain.ErrComponentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get component by id")
	}

	return &component, nil
}

// ListByVault retrieves active components of a vault with pagination.
func (p *PostgreSQLComponentRepository) ListByVault(
	ctx context.Context,
	vaultID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Component, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, vault_id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at
			  FROM components
			  WHERE vault_id = $1 AND active = TRUE
			  ORDER BY created_at
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, vaultID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list components")
	}
	defer func() { _ = rows.Close() }()

	var components []*vaultDomain.Component
	for rows.Next() {
		var component vaultDomain.Component
		err := rows.Scan(
			&component.ID,
			&component.VaultID,
			&component.OrganizationID,
			&component.Name,
			&component.Description,
			&component.Active,
			&component.CreatedBy,
			&component.UpdatedBy,
			&component.CreatedAt,
			&component.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan component")
		}
		components = append(components, &component)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate components")
	}

	return components, nil
}

// Deactivate performs a soft delete on a component by clearing the active flag.
func (p *PostgreSQLComponentRepository) Deactivate(ctx context.Context, componentID, updatedBy uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE components
			  SET active = FALSE, updated_by = $1, updated_at = $2
			  WHERE id = $3 AND active = TRUE`

	_, err := querier.ExecContext(ctx, query, updatedBy, time.Now().UTC(), componentID)
	if err != nil {
		return apperrors.Wrap(err, "failed to deactivate component")
	}
	return nil
}
