package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// MySQLVaultRepository implements Vault persistence for MySQL databases.
type MySQLVaultRepository struct {
	db *sql.DB
}

// NewMySQLVaultRepository creates a new MySQL Vault repository instance.
func NewMySQLVaultRepository(db *sql.DB) *MySQLVaultRepository {
	return &MySQLVaultRepository{db: db}
}

// scanVaultRow scans a single vault row, decoding binary UUID columns.
func scanVaultRow(scan func(dest ...any) error) (*vaultDomain.Vault, error) {
	var vault vaultDomain.Vault
	var rawID, rawOrgID, rawCreatedBy, rawUpdatedBy []byte

	err := scan(
		&rawID,
		&rawOrgID,
		&vault.Name,
		&vault.Description,
		&vault.Active,
		&rawCreatedBy,
		&rawUpdatedBy,
		&vault.CreatedAt,
		&vault.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := vault.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal vault id")
	}
	if err := vault.OrganizationID.UnmarshalBinary(rawOrgID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}
	if err := vault.CreatedBy.UnmarshalBinary(rawCreatedBy); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal created_by id")
	}
	if err := vault.UpdatedBy.UnmarshalBinary(rawUpdatedBy); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal updated_by id")
	}

	return &vault, nil
}

// marshalUUIDs converts UUIDs to their binary representation for MySQL placeholders.
func marshalUUIDs(ids []uuid.UUID) ([]any, error) {
	values := make([]any, 0, len(ids))
	for _, id := range ids {
		value, err := id.MarshalBinary()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal uuid")
		}
		values = append(values, value)
	}
	return values, nil
}

// inPlaceholders builds a MySQL placeholder list of the given size: "?, ?, ?".
func inPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Create inserts a new vault into the MySQL database.
func (m *MySQLVaultRepository) Create(ctx context.Context, vault *vaultDomain.Vault) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO vaults (id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	ids, err := marshalUUIDs([]uuid.UUID{vault.ID, vault.OrganizationID, vault.CreatedBy, vault.UpdatedBy})
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		ids[0],
		ids[1],
		vault.Name,
		vault.Description,
		vault.Active,
		ids[2],
		ids[3],
		vault.CreatedAt,
		vault.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create vault")
	}
	return nil
}

// GetByID retrieves an active vault by its ID.
func (m *MySQLVaultRepository) GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Vault, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at
			  FROM vaults
			  WHERE id = ? AND active = TRUE
			  LIMIT 1`

	idValue, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal vault id")
	}

	row := querier.QueryRowContext(ctx, query, idValue)
	vault, err := scanVaultRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vaultDomain.ErrVaultNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get vault by id")
	}

	return vault, nil
}

// GetByIDForUpdate retrieves an active vault and locks its row for the
// duration of the current transaction.
func (m *MySQLVaultRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*vaultDomain.Vault, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at
			  FROM vaults
			  WHERE id = ? AND active = TRUE
			  LIMIT 1
			  FOR UPDATE`

	idValue, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal vault id")
	}

	row := querier.QueryRowContext(ctx, query, idValue)
	vault, err := scanVaultRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vaultDomain.ErrVaultNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get vault by id for update")
	}

	return vault, nil
}

// ListByOrganization retrieves active vaults of an organization with pagination.
func (m *MySQLVaultRepository) ListByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Vault, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at
			  FROM vaults
			  WHERE organization_id = ? AND active = TRUE
			  ORDER BY created_at
			  LIMIT ? OFFSET ?`

	orgValue, err := organizationID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	rows, err := querier.QueryContext(ctx, query, orgValue, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vaults")
	}
	defer func() { _ = rows.Close() }()

	var vaults []*vaultDomain.Vault
	for rows.Next() {
		vault, err := scanVaultRow(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault")
		}
		vaults = append(vaults, vault)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vaults")
	}

	return vaults, nil
}

// ListByOwner retrieves the active vaults of an organization created by the
// given employee.
func (m *MySQLVaultRepository) ListByOwner(
	ctx context.Context,
	organizationID, ownerID uuid.UUID,
) ([]*vaultDomain.Vault, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at
			  FROM vaults
			  WHERE organization_id = ? AND created_by = ? AND active = TRUE
			  ORDER BY created_at`

	ids, err := marshalUUIDs([]uuid.UUID{organizationID, ownerID})
	if err != nil {
		return nil, err
	}

	rows, err := querier.QueryContext(ctx, query, ids[0], ids[1])
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vaults by owner")
	}
	defer func() { _ = rows.Close() }()

	var vaults []*vaultDomain.Vault
	for rows.Next() {
		vault, err := scanVaultRow(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault")
		}
		vaults = append(vaults, vault)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vaults")
	}

	return vaults, nil
}

// GetByIDs retrieves active vaults matching the given IDs.
func (m *MySQLVaultRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*vaultDomain.Vault, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, organization_id, name, description, active, created_by, updated_by, created_at, updated_at
			  FROM vaults
			  WHERE id IN (` + inPlaceholders(len(ids)) + `) AND active = TRUE
			  ORDER BY created_at`

	values, err := marshalUUIDs(ids)
	if err != nil {
		return nil, err
	}

	rows, err := querier.QueryContext(ctx, query, values...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get vaults by ids")
	}
	defer func() { _ = rows.Close() }()

	var vaults []*vaultDomain.Vault
	for rows.Next() {
		vault, err := scanVaultRow(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault")
		}
		vaults = append(vaults, vault)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vaults")
	}

	return vaults, nil
}

// Deactivate performs a soft delete on a vault by clearing the active flag.
func (m *MySQLVaultRepository) Deactivate(ctx context.Context, vaultID, updatedBy uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE vaults
			  SET active = FALSE, updated_by = ?, updated_at = ?
			  WHERE id = ? AND active = TRUE`

	ids, err := marshalUUIDs([]uuid.UUID{updatedBy, vaultID})
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(ctx, query, ids[0], time.Now().UTC(), ids[1])
	if err != nil {
		return apperrors.Wrap(err, "failed to deactivate vault")
	}
	return nil
}
