package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// PostgreSQLProjectRepository implements Project persistence for PostgreSQL databases.
// It also manages project membership rows.
type PostgreSQLProjectRepository struct {
	db *sql.DB
}

// NewPostgreSQLProjectRepository creates a new PostgreSQL Project repository instance.
func NewPostgreSQLProjectRepository(db *sql.DB) *PostgreSQLProjectRepository {
	return &PostgreSQLProjectRepository{db: db}
}

// Create inserts a new project into the PostgreSQL database.
func (p *PostgreSQLProjectRepository) Create(ctx context.Context, project *directoryDomain.Project) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO projects (id, organization_id, name, email, description, active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		project.ID,
		project.OrganizationID,
		project.Name,
		project.Email,
		project.Description,
		project.Active,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create project")
	}
	return nil
}

// GetByID retrieves an active project by its ID.
func (p *PostgreSQLProjectRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*directoryDomain.Project, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, organization_id, name, email, description, active, created_at, updated_at
			  FROM projects
			  WHERE id = $1 AND active = TRUE
			  LIMIT 1`

	var project directoryDomain.Project
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.OrganizationID,
		&project.Name,
		&project.Email,
		&project.Description,
		&project.Active,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, directoryDomain.ErrProjectNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get project by id")
	}

	return &project, nil
}

// GetByName retrieves an active project by organization and name.
func (p *PostgreSQLProjectRepository) GetByName(
	ctx context.Context,
	organizationID uuid.UUID,
	name string,
) (*directoryDomain.Project, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, organization_id, name, email, description, active, created_at, updated_at
			  FROM projects
			  WHERE organization_id = $1 AND name = $2 AND active = TRUE
			  LIMIT 1`

	var project directoryDomain.Project
	err := querier.QueryRowContext(ctx, query, organizationID, name).Scan(
		&project.ID,
		&project.OrganizationID,
		&project.Name,
		&project.Email,
		&project.Description,
		&project.Active,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, directoryDomain.ErrProjectNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get project by name")
	}

	return &project, nil
}

// ListByOrganization retrieves active projects of an organization with pagination.
func (p *PostgreSQLProjectRepository) ListByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*directoryDomain.Project, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, organization_id, name, email, description, active, created_at, updated_at
			  FROM projects
			  WHERE organization_id = $1 AND active = TRUE
			  ORDER BY created_at
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, organizationID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list projects")
	}
	defer func() { _ = rows.Close() }()

	var projects []*directoryDomain.Project
	for rows.Next() {
		var project directoryDomain.Project
		err := rows.Scan(
			&project.ID,
			&project.OrganizationID,
			&project.Name,
			&project.Email,
			&project.Description,
			&project.Active,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan project")
		}
		projects = append(projects, &project)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate projects")
	}

	return projects, nil
}

// AddMember adds an employee to a project.
func (p *PostgreSQLProjectRepository) AddMember(ctx context.Context, projectID, employeeID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO project_members (project_id, employee_id, created_at) VALUES ($1, $2, $3)`

	_, err := querier.ExecContext(ctx, query, projectID, employeeID, time.Now().UTC())
	if err != nil {
		return apperrors.Wrap(err, "failed to add project member")
	}
	return nil
}

// IsMember reports whether an employee belongs to a project.
func (p *PostgreSQLProjectRepository) IsMember(ctx context.Context, projectID, employeeID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (SELECT 1 FROM project_members WHERE project_id = $1 AND employee_id = $2)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, projectID, employeeID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check project membership")
	}
	return exists, nil
}

// ListProjectIDsByEmployee retrieves the IDs of active projects an employee belongs to.
func (p *PostgreSQLProjectRepository) ListProjectIDsByEmployee(
	ctx context.Context,
	employeeID uuid.UUID,
) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT pm.project_id
			  FROM project_members pm
			  JOIN projects p ON p.id = pm.project_id
			  WHERE pm.employee_id = $1 AND p.active = TRUE`

	rows, err := querier.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list employee projects")
	}
	defer func() { _ = rows.Close() }()

	var projectIDs []uuid.UUID
	for rows.Next() {
		var projectID uuid.UUID
		if err := rows.Scan(&projectID); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan project id")
		}
		projectIDs = append(projectIDs, projectID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate employee projects")
	}

	return projectIDs, nil
}
