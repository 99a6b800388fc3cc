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

// PostgreSQLGrantRepository implements vault grant persistence for PostgreSQL
// databases. Grants are never deleted: revocation clears the active flag so
// the table keeps a full history of who had access.
type PostgreSQLGrantRepository struct {
	db *sql.DB
}

// NewPostgreSQLGrantRepository creates a new PostgreSQL grant repository instance.
func NewPostgreSQLGrantRepository(db *sql.DB) *PostgreSQLGrantRepository {
	return &PostgreSQLGrantRepository{db: db}
}

const postgresGrantColumns = `id, vault_id, organization_id, level, scope, project_id, employee_id, active, created_by, updated_by, created_at, updated_at`

func scanGrant(scan func(dest ...any) error) (*vaultDomain.Grant, error) {
	var grant vaultDomain.Grant
	var projectID, employeeID uuid.NullUUID

	err := scan(
		&grant.ID,
		&grant.VaultID,
		&grant.OrganizationID,
		&grant.Level,
		&grant.Scope,
		&projectID,
		&employeeID,
		&grant.Active,
		&grant.CreatedBy,
		&grant.UpdatedBy,
		&grant.CreatedAt,
		&grant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if projectID.Valid {
		id := projectID.UUID
		grant.ProjectID = &id
	}
	if employeeID.Valid {
		id := employeeID.UUID
		grant.EmployeeID = &id
	}

	return &grant, nil
}

// Create inserts a new grant into the PostgreSQL database.
func (p *PostgreSQLGrantRepository) Create(ctx context.Context, grant *vaultDomain.Grant) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO vault_grants (` + postgresGrantColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier.ExecContext(
		ctx,
		query,
		grant.ID,
		grant.VaultID,
		grant.OrganizationID,
		grant.Level,
		grant.Scope,
		uuid.NullUUID{UUID: derefUUID(grant.ProjectID), Valid: grant.ProjectID != nil},
		uuid.NullUUID{UUID: derefUUID(grant.EmployeeID), Valid: grant.EmployeeID != nil},
		grant.Active,
		grant.CreatedBy,
		grant.UpdatedBy,
		grant.CreatedAt,
		grant.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create grant")
	}
	return nil
}

// GetByID retrieves an active grant by its ID.
func (p *PostgreSQLGrantRepository) GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Grant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresGrantColumns + `
			  FROM vault_grants
			  WHERE id = $1 AND active = TRUE
			  LIMIT 1`

	grant, err := scanGrant(querier.QueryRowContext(ctx, query, id).Scan)
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
func (p *PostgreSQLGrantRepository) GetOrganizationGrant(
	ctx context.Context,
	vaultID uuid.UUID,
) (*vaultDomain.Grant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresGrantColumns + `
			  FROM vault_grants
			  WHERE vault_id = $1 AND level = $2 AND active = TRUE
			  LIMIT 1`

	grant, err := scanGrant(querier.QueryRowContext(ctx, query, vaultID, vaultDomain.GrantLevelOrganization).Scan)
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
func (p *PostgreSQLGrantRepository) GetProjectGrant(
	ctx context.Context,
	vaultID uuid.UUID,
	projectIDs []uuid.UUID,
) (*vaultDomain.Grant, error) {
	if len(projectIDs) == 0 {
		return nil, vaultDomain.ErrGrantNotFound
	}

	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresGrantColumns + `
			  FROM vault_grants
			  WHERE vault_id = $1 AND level = $2 AND project_id = ANY($3) AND active = TRUE
			  LIMIT 1`

	grant, err := scanGrant(
		querier.QueryRowContext(ctx, query, vaultID, vaultDomain.GrantLevelProject, uuidArray(projectIDs)).Scan,
	)
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
func (p *PostgreSQLGrantRepository) GetIndividualGrant(
	ctx context.Context,
	vaultID, employeeID uuid.UUID,
) (*vaultDomain.Grant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresGrantColumns + `
			  FROM vault_grants
			  WHERE vault_id = $1 AND level = $2 AND employee_id = $3 AND active = TRUE
			  LIMIT 1`

	grant, err := scanGrant(
		querier.QueryRowContext(ctx, query, vaultID, vaultDomain.GrantLevelIndividual, employeeID).Scan,
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
func (p *PostgreSQLGrantRepository) ListActiveByVault(
	ctx context.Context,
	vaultID uuid.UUID,
) ([]*vaultDomain.Grant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresGrantColumns + `
			  FROM vault_grants
			  WHERE vault_id = $1 AND active = TRUE
			  ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, vaultID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list grants")
	}
	defer func() { _ = rows.Close() }()

	return collectGrants(rows)
}

func collectGrants(rows *sql.Rows) ([]*vaultDomain.Grant, error) {
	var grants []*vaultDomain.Grant
	for rows.Next() {
		grant, err := scanGrant(rows.Scan)
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
func (p *PostgreSQLGrantRepository) Revoke(ctx context.Context, grantID, updatedBy uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE vault_grants
			  SET active = FALSE, updated_by = $1, updated_at = $2
			  WHERE id = $3 AND active = TRUE`

	_, err := querier.ExecContext(ctx, query, updatedBy, time.Now().UTC(), grantID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke grant")
	}
	return nil
}

// RevokeAllForVault deactivates every active grant of a vault and returns the
// grants that were revoked.
func (p *PostgreSQLGrantRepository) RevokeAllForVault(
	ctx context.Context,
	vaultID, updatedBy uuid.UUID,
) ([]*vaultDomain.Grant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE vault_grants
			  SET active = FALSE, updated_by = $1, updated_at = $2
			  WHERE vault_id = $3 AND active = TRUE
			  RETURNING ` + postgresGrantColumns

	rows, err := querier.QueryContext(ctx, query, updatedBy, time.Now().UTC(), vaultID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to revoke vault grants")
	}
	defer func() { _ = rows.Close() }()

	return collectGrants(rows)
}

// ListVaultIDsByOrganizationLevel retrieves the vault IDs of an organization
// covered by an active organization-level grant.
func (p *PostgreSQLGrantRepository) ListVaultIDsByOrganizationLevel(
	ctx context.Context,
	organizationID uuid.UUID,
) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT DISTINCT vault_id
			  FROM vault_grants
			  WHERE organization_id = $1 AND level = $2 AND active = TRUE`

	rows, err := querier.QueryContext(ctx, query, organizationID, vaultDomain.GrantLevelOrganization)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vault ids by organization level")
	}
	defer func() { _ = rows.Close() }()

	return collectVaultIDs(rows)
}

// ListVaultIDsByProjects retrieves the vault IDs covered by an active
// project-level grant targeting any of the given projects.
func (p *PostgreSQLGrantRepository) ListVaultIDsByProjects(
	ctx context.Context,
	projectIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	querier := database.GetTx(ctx, p.db)

	query := `SELECT DISTINCT vault_id
			  FROM vault_grants
			  WHERE level = $1 AND project_id = ANY($2) AND active = TRUE`

	rows, err := querier.QueryContext(ctx, query, vaultDomain.GrantLevelProject, uuidArray(projectIDs))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vault ids by projects")
	}
	defer func() { _ = rows.Close() }()

	return collectVaultIDs(rows)
}

// ListVaultIDsByEmployee retrieves the vault IDs covered by an active
// individual-level grant for the given employee.
func (p *PostgreSQLGrantRepository) ListVaultIDsByEmployee(
	ctx context.Context,
	employeeID uuid.UUID,
) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT DISTINCT vault_id
			  FROM vault_grants
			  WHERE level = $1 AND employee_id = $2 AND active = TRUE`

	rows, err := querier.QueryContext(ctx, query, vaultDomain.GrantLevelIndividual, employeeID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vault ids by employee")
	}
	defer func() { _ = rows.Close() }()

	return collectVaultIDs(rows)
}

func collectVaultIDs(rows *sql.Rows) ([]uuid.UUID, error) {
	var vaultIDs []uuid.UUID
	for rows.Next() {
		var vaultID uuid.UUID
		if err := rows.Scan(&vaultID); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault id")
		}
		vaultIDs = append(vaultIDs, vaultID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vault ids")
	}
	return vaultIDs, nil
}

func derefUUID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.UUID{}
	}
	return *id
}
