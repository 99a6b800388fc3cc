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

// MySQLGrantRepository implements vault grant persistence for MySQL databases.
// Grants are never deleted: revocation clears the active flag so the table
// keeps a full history of who had access.
type MySQLGrantRepository struct {
	db *sql.DB
}

// NewMySQLGrantRepository creates a new MySQL grant repository instance.
func NewMySQLGrantRepository(db *sql.DB) *MySQLGrantRepository {
	return &MySQLGrantRepository{db: db}
}

const mysqlGrantColumns = `id, vault_id, organization_id, level, scope, project_id, employee_id, active, created_by, updated_by, created_at, updated_at`

// scanMySQLGrant scans a single grant row, decoding binary UUID columns.
// project_id and employee_id are nullable.
func scanMySQLGrant(scan func(dest ...any) error) (*vaultDomain.Grant, error) {
	var grant vaultDomain.Grant
	var rawID, rawVaultID, rawOrgID, rawProjectID, rawEmployeeID, rawCreatedBy, rawUpdatedBy []byte

	err := scan(
		&rawID,
		&rawVaultID,
		&rawOrgID,
		&grant.Level,
		&grant.Scope,
		&rawProjectID,
		&rawEmployeeID,
		&grant.Active,
		&rawCreatedBy,
		&rawUpdatedBy,
		&grant.CreatedAt,
		&grant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := grant.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal grant id")
	}
	if err := grant.VaultID.UnmarshalBinary(rawVaultID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal vault id")
	}
	if err := grant.OrganizationID.UnmarshalBinary(rawOrgID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}
	if err := grant.CreatedBy.UnmarshalBinary(rawCreatedBy); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal created_by id")
	}
	if err := grant.UpdatedBy.UnmarshalBinary(rawUpdatedBy); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal updated_by id")
	}

	if rawProjectID != nil {
		var projectID uuid.UUID
		if err := projectID.UnmarshalBinary(rawProjectID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal project id")
		}
		grant.ProjectID = &projectID
	}
	if rawEmployeeID != nil {
		var employeeID uuid.UUID
		if err := employeeID.UnmarshalBinary(rawEmployeeID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal employee id")
		}
		grant.EmployeeID = &employeeID
	}

	return &grant, nil
}

// marshalOptionalUUID converts a nullable UUID to a MySQL placeholder value.
func marshalOptionalUUID(id *uuid.UUID) (any, error) {
	if id == nil {
		return nil, nil
	}
	value, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal uuid")
	}
	return value, nil
}

// Create inserts a new grant into the MySQL database.
func (m *MySQLGrantRepository) Create(ctx context.Context, grant *vaultDomain.Grant) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO vault_grants (` + mysqlGrantColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	ids, err := marshalUUIDs([]uuid.UUID{grant.ID, grant.VaultID, grant.OrganizationID, grant.CreatedBy, grant.UpdatedBy})
	if err != nil {
		return err
	}

	projectValue, err := marshalOptionalUUID(grant.ProjectID)
	if err != nil {
		return err
	}

	employeeValue, err := marshalOptionalUUID(grant.EmployeeID)
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		ids[0],
		ids[1],
		ids[2],
		grant.Level,
		grant.Scope,
		projectValue,
		employeeValue,
		grant.Active,
		ids[3],
		ids[4],
		grant.CreatedAt,
		grant.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create grant")
	}
	return nil
}

// GetByID retrieves an active grant by its ID.
func (m *MySQLGrantRepository) GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Grant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlGrantColumns + `
			  FROM vault_grants
			  WHERE id = ? AND active = TRUE
			  LIMIT 1`

	idValue, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal grant id")
	}

	grant, err := scanMySQLGrant(querier.QueryRowContext(ctx, query, idValue).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vaultDomain.ErrGrantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get grant by id")
	}

	return grant, nil
}

// GetOrganizationGrant retrieves the active organization-level grant of a
// vault, if one exists.
func (m *MySQLGrantRepository) GetOrganizationGrant(
	ctx context.Context,
	vaultID uuid.UUID,
) (*vaultDomain.Grant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlGrantColumns + `
			  FROM vault_grants
			  WHERE vault_id = ? AND level = ? AND active = TRUE
			  LIMIT 1`

	vaultValue, err := vaultID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal vault id")
	}

	grant, err := scanMySQLGrant(
		querier.QueryRowContext(ctx, query, vaultValue, vaultDomain.GrantLevelOrganization).Scan,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vaultDomain.ErrGrantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization grant")
	}

	return grant, nil
}

// GetProjectGrant retrieves an active project-level grant of a vault that
// targets any of the given projects.
func (m *MySQLGrantRepository) GetProjectGrant(
	ctx context.Context,
	vaultID uuid.UUID,
	projectIDs []uuid.UUID,
) (*vaultDomain.Grant, error) {
	if len(projectIDs) == 0 {
		return nil, vaultDomain.ErrGrantNotFound
	}

	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlGrantColumns + `
			  FROM vault_grants
			  WHERE vault_id = ? AND level = ? AND project_id IN (` + inPlaceholders(len(projectIDs)) + `) AND active = TRUE
			  LIMIT 1`

	vaultValue, err := vaultID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal vault id")
	}

	projectValues, err := marshalUUIDs(projectIDs)
	if err != nil {
		return nil, err
	}

	args := append([]any{vaultValue, vaultDomain.GrantLevelProject}, projectValues...)
	grant, err := scanMySQLGrant(querier.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vaultDomain.ErrGrantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get project grant")
	}

	return grant, nil
}

// GetIndividualGrant retrieves the active individual-level grant of a vault
// for the given employee, if one exists.
func (m *MySQLGrantRepository) GetIndividualGrant(
	ctx context.Context,
	vaultID, employeeID uuid.UUID,
) (*vaultDomain.Grant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlGrantColumns + `
			  FROM vault_grants
			  WHERE vault_id = ? AND level = ? AND employee_id = ? AND active = TRUE
			  LIMIT 1`

	ids, err := marshalUUIDs([]uuid.UUID{vaultID, employeeID})
	if err != nil {
		return nil, err
	}

	grant, err := scanMySQLGrant(
		querier.QueryRowContext(ctx, query, ids[0], vaultDomain.GrantLevelIndividual, ids[1]).Scan,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vaultDomain.ErrGrantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get individual grant")
	}

	return grant, nil
}

// ListActiveByVault retrieves all active grants of a vault.
func (m *MySQLGrantRepository) ListActiveByVault(
	ctx context.Context,
	vaultID uuid.UUID,
) ([]*vaultDomain.Grant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlGrantColumns + `
			  FROM vault_grants
			  WHERE vault_id = ? AND active = TRUE
			  ORDER BY created_at`

	vaultValue, err := vaultID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal vault id")
	}

	rows, err := querier.QueryContext(ctx, query, vaultValue)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list grants")
	}
	defer func() { _ = rows.Close() }()

	return collectMySQLGrants(rows)
}

func collectMySQLGrants(rows *sql.Rows) ([]*vaultDomain.Grant, error) {
	var grants []*vaultDomain.Grant
	for rows.Next() {
		grant, err := scanMySQLGrant(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan grant")
		}
		grants = append(grants, grant)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate grants")
	}
	return grants, nil
}

// Revoke deactivates a single grant.
func (m *MySQLGrantRepository) Revoke(ctx context.Context, grantID, updatedBy uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE vault_grants
			  SET active = FALSE, updated_by = ?, updated_at = ?
			  WHERE id = ? AND active = TRUE`

	ids, err := marshalUUIDs([]uuid.UUID{updatedBy, grantID})
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(ctx, query, ids[0], time.Now().UTC(), ids[1])
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke grant")
	}
	return nil
}

// RevokeAllForVault deactivates every active grant of a vault and returns the
// grants that were revoked. MySQL has no UPDATE ... RETURNING, so the grants
// are read first inside the caller's transaction.
func (m *MySQLGrantRepository) RevokeAllForVault(
	ctx context.Context,
	vaultID, updatedBy uuid.UUID,
) ([]*vaultDomain.Grant, error) {
	grants, err := m.ListActiveByVault(ctx, vaultID)
	if err != nil {
		return nil, err
	}

	querier := database.GetTx(ctx, m.db)

	query := `UPDATE vault_grants
			  SET active = FALSE, updated_by = ?, updated_at = ?
			  WHERE vault_id = ? AND active = TRUE`

	ids, err := marshalUUIDs([]uuid.UUID{updatedBy, vaultID})
	if err != nil {
		return nil, err
	}

	_, err = querier.ExecContext(ctx, query, ids[0], time.Now().UTC(), ids[1])
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to revoke vault grants")
	}

	for _, grant := range grants {
		grant.Active = false
		grant.UpdatedBy = updatedBy
	}
	return grants, nil
}

// ListVaultIDsByOrganizationLevel retrieves the vault IDs of an organization
// covered by an active organization-level grant.
func (m *MySQLGrantRepository) ListVaultIDsByOrganizationLevel(
	ctx context.Context,
	organizationID uuid.UUID,
) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT DISTINCT vault_id
			  FROM vault_grants
			  WHERE organization_id = ? AND level = ? AND active = TRUE`

	orgValue, err := organizationID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	rows, err := querier.QueryContext(ctx, query, orgValue, vaultDomain.GrantLevelOrganization)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vault ids by organization level")
	}
	defer func() { _ = rows.Close() }()

	return collectBinaryVaultIDs(rows)
}

// ListVaultIDsByProjects retrieves the vault IDs covered by an active
// project-level grant targeting any of the given projects.
func (m *MySQLGrantRepository) ListVaultIDsByProjects(
	ctx context.Context,
	projectIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	querier := database.GetTx(ctx, m.db)

	query := `SELECT DISTINCT vault_id
			  FROM vault_grants
			  WHERE level = ? AND project_id IN (` + inPlaceholders(len(projectIDs)) + `) AND active = TRUE`

	projectValues, err := marshalUUIDs(projectIDs)
	if err != nil {
		return nil, err
	}

	args := append([]any{vaultDomain.GrantLevelProject}, projectValues...)
	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vault ids by projects")
	}
	defer func() { _ = rows.Close() }()

	return collectBinaryVaultIDs(rows)
}

// ListVaultIDsByEmployee retrieves the vault IDs covered by an active
// individual-level grant for the given employee.
func (m *MySQLGrantRepository) ListVaultIDsByEmployee(
	ctx context.Context,
	employeeID uuid.UUID,
) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT DISTINCT vault_id
			  FROM vault_grants
			  WHERE level = ? AND employee_id = ? AND active = TRUE`

	employeeValue, err := employeeID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal employee id")
	}

	rows, err := querier.QueryContext(ctx, query, vaultDomain.GrantLevelIndividual, employeeValue)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vault ids by employee")
	}
	defer func() { _ = rows.Close() }()

	return collectBinaryVaultIDs(rows)
}

func collectBinaryVaultIDs(rows *sql.Rows) ([]uuid.UUID, error) {
	var vaultIDs []uuid.UUID
	for rows.Next() {
		var rawID []byte
		if err := rows.Scan(&rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault id")
		}
		var vaultID uuid.UUID
		if err := vaultID.UnmarshalBinary(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal vault id")
		}
		vaultIDs = append(vaultIDs, vaultID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vault ids")
	}
	return vaultIDs, nil
}
