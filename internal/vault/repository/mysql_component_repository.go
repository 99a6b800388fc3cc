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

// MySQLComponentRepository implements Component persistence for MySQL databases.
type MySQLComponentRepository struct {
	db *sql.DB
}

// NewMySQLComponentRepository creates a new MySQL Component repository instance.
func NewMySQLComponentRepository(db *sql.DB) *MySQLComponentRepository {
	return &MySQLComponentRepository{db: db}
}

// scanComponentRow scans a single component row, decoding binary UUID columns.
func scanComponentRow(scan func(dest ...any) error) (*vaultDomain.Component, error) {
	var component vaultDomain.Component
	var rawID, rawVaultID, rawOrgID, rawCreatedBy, rawUpdatedBy []byte

	err := scan(
		&rawID,
		&rawVaultID,
		&rawOrgID,
		&component.Name,
		&component.Description,
		&component.Active,
		&rawCreatedBy,
		&rawUpdatedBy,
		&component.CreatedAt,
		&component.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := component.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal component id")
	}
	if err := component.VaultID.UnmarshalBinary(rawVaultID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal vault id")
	}
	if err := component.OrganizationID.UnmarshalBinary(rawOrgID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}
	if err := component.CreatedBy.UnmarshalBinary(rawCreatedBy); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal created_by id")
	}
	if err := component.UpdatedBy.UnmarshalBinary(rawUpdatedBy); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal updated_by id")
	}

	return &component, nil
}

// Create inserts a new component into the MySQL database.
func (m *MySQLComponentRepository) Create(ctx context.Context, component *vaultDomain.Component) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO components (id, vault_id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	ids, err := marshalUUIDs([]uuid.UUID{component.ID, component.VaultID, component.OrganizationID, component.CreatedBy, component.UpdatedBy})
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		ids[0],
		ids[1],
		ids[2],
		component.Name,
		component.Description,
		component.Active,
		ids[3],
		ids[4],
		component.CreatedAt,
		component.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create component")
	}
	return nil
}

// GetByID retrieves an active component by its ID.
func (m *MySQLComponentRepository) GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Component, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, vault_id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at
			  FROM components
			  WHERE id = ? AND active = TRUE
			  LIMIT 1`

	idValue, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal component id")
	}

	row := querier.QueryRowContext(ctx, query, idValue)
	component, err := scanComponentRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vaultDomain.ErrComponentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get component by id")
	}

	return component, nil
}

// ListByVault retrieves active components of a vault with pagination.
func (m *MySQLComponentRepository) ListByVault(
	ctx context.Context,
	vaultID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Component, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, vault_id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at
			  FROM components
			  WHERE vault_id = ? AND active = TRUE
			  ORDER BY created_at
			  LIMIT ? OFFSET ?`

	vaultValue, err := vaultID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal vault id")
	}

	rows, err := querier.QueryContext(ctx, query, vaultValue, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list components")
	}
	defer func() { _ = rows.Close() }()

	var components []*vaultDomain.Component
	for rows.Next() {
		component, err := scanComponentRow(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan component")
		}
		components = append(components, component)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate components")
	}

	return components, nil
}

// Deactivate performs a soft delete on a component by clearing the active flag.
func (m *MySQLComponentRepository) Deactivate(ctx context.Context, componentID, updatedBy uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE components
			  SET active = FALSE, updated_by = ?, updated_at = ?
			  WHERE id = ? AND active = TRUE`

	ids, err := marshalUUIDs([]uuid.UUID{updatedBy, componentID})
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(ctx, query, ids[0], time.Now().UTC(), ids[1])
	if err != nil {
		return apperrors.Wrap(err, "failed to deactivate component")
	}
	return nil
}
