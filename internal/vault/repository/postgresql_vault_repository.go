// Package repository implements data persistence for the vault context.
// Repositories support both PostgreSQL and MySQL. Every entity is soft-deleted
// via the active flag and read queries only return active rows.
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

// PostgreSQLVaultRepository implements Vault persistence for PostgreSQL databases.
type PostgreSQLVaultRepository struct {
	db *sql.DB
}

// NewPostgreSQLVaultRepository creates a new PostgreSQL Vault repository instance.
func NewPostgreSQLVaultRepository(db *sql.DB) *PostgreSQLVaultRepository {
	return &PostgreSQLVaultRepository{db: db}
}

// Create inserts a new vault into the PostgreSQL database.
func (p *PostgreSQLVaultRepository) Create(ctx context.Context, vault *vaultDomain.Vault) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO vaults (id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		vault.ID,
		vault.OrganizationID,
		vault.Name,
		vault.Description,
		vault.Active,
		vault.CreatedBy,
		vault.UpdatedBy,
		vault.CreatedAt,
		vault.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create vault")
	}
	return nil
}

// GetByID retrieves an active vault by its ID.
func (p *PostgreSQLVaultRepository) GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Vault, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at
			  FROM vaults
			  WHERE id = $1 AND active = TRUE
			  LIMIT 1`

	var vault vaultDomain.Vault
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&vault.ID,
		&vault.OrganizationID,
		&vault.Name,
		&vault.Description,
		&vault.Active,
		&vault.CreatedBy,
		&vault.UpdatedBy,
		&vault.CreatedAt,
		&vault.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vaultDomain.ErrVaultNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get vault by id")
	}

	return &vault, nil
}

// GetByIDForUpdate retrieves an active vault and locks its row for the
// duration of the current transaction.
func (p *PostgreSQLVaultRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*vaultDomain.Vault, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at
			  FROM vaults
			  WHERE id = $1 AND active = TRUE
			  LIMIT 1
			  FOR UPDATE`

	var vault vaultDomain.Vault
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&vault.ID,
		&vault.OrganizationID,
		&vault.Name,
		&vault.Description,
		&vault.Active,
		&vault.CreatedBy,
		&vault.UpdatedBy,
		&vault.CreatedAt,
		&vault.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vaultDomain.ErrVaultNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get vault by id for update")
	}

	return &vault, nil
}

// ListByOrganization retrieves active vaults of an organization with pagination.
func (p *PostgreSQLVaultRepository) ListByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Vault, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at
			  FROM vaults
			  WHERE organization_id = $1 AND active = TRUE
			  ORDER BY created_at
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, organizationID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vaults")
	}
	defer func() { _ = rows.Close() }()

	var vaults []*vaultDomain.Vault
	for rows.Next() {
		var vault vaultDomain.Vault
		err := rows.Scan(
			&vault.ID,
			&vault.OrganizationID,
			&vault.Name,
			&vault.Description,
			&vault.Active,
			&vault.CreatedBy,
			&vault.UpdatedBy,
			&vault.CreatedAt,
			&vault.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault")
		}
		vaults = append(vaults, &vault)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vaults")
	}

	return vaults, nil
}

// ListByOwner retrieves the active vaults of an organization created by the
// given employee.
func (p *PostgreSQLVaultRepository) ListByOwner(
	ctx context.Context,
	organizationID, ownerID uuid.UUID,
) ([]*vaultDomain.Vault, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at
			  FROM vaults
			  WHERE organization_id = $1 AND created_by = $2 AND active = TRUE
			  ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, organizationID, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vaults by owner")
	}
	defer func() { _ = rows.Close() }()

	var vaults []*vaultDomain.Vault
	for rows.Next() {
		var vault vaultDomain.Vault
		err := rows.Scan(
			&vault.ID,
			&vault.OrganizationID,
			&vault.Name,
			&vault.Description,
			&vault.Active,
			&vault.CreatedBy,
			&vault.UpdatedBy,
			&vault.CreatedAt,
			&vault.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault")
		}
		vaults = append(vaults, &vault)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vaults")
	}

	return vaults, nil
}

// GetByIDs retrieves active vaults matching the given IDs.
func (p *PostgreSQLVaultRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*vaultDomain.Vault, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at
			  FROM vaults
			  WHERE id = ANY($1) AND active = TRUE
			  ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, uuidArray(ids))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get vaults by ids")
	}
	defer func() { _ = rows.Close() }()

	var vaults []*vaultDomain.Vault
	for rows.Next() {
		var vault vaultDomain.Vault
		err := rows.Scan(
			&vault.ID,
			&vault.OrganizationID,
			&vault.Name,
			&vault.Description,
			&vault.Active,
			&vault.CreatedBy,
			&vault.UpdatedBy,
			&vault.CreatedAt,
			&vault.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault")
		}
		vaults = append(vaults, &vault)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vaults")
	}

	return vaults, nil
}

// Deactivate performs a soft delete on a vault by clearing the active flag.
func (p *PostgreSQLVaultRepository) Deactivate(ctx context.Context, vaultID, updatedBy uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE vaults
			  SET active = FALSE, updated_by = $1, updated_at = $2
			  WHERE id = $3 AND active = TRUE`

	_, err := querier.ExecContext(ctx, query, updatedBy, time.Now().UTC(), vaultID)
	if err != nil {
		return apperrors.Wrap(err, "failed to deactivate vault")
	}
	return nil
}
