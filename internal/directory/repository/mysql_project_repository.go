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

// MySQLProjectRepository implements Project persistence for MySQL databases.
// It also manages project membership rows.
type MySQLProjectRepository struct {
	db *sql.DB
}

// NewMySQLProjectRepository creates a new MySQL Project repository instance.
func NewMySQLProjectRepository(db *sql.DB) *MySQLProjectRepository {
	return &MySQLProjectRepository{db: db}
}

// scanProjectRow scans a single project row, decoding binary UUID columns.
func scanProjectRow(scan func(dest ...any) error) (*directoryDomain.Project, error) {
	var project directoryDomain.Project
	var rawID, rawOrgID []byte

	err := scan(
		&rawID,
		&rawOrgID,
		&project.Name,
		&project.Email,
		&project.Description,
		&project.Active,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := project.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal project id")
	}
	if err := project.OrganizationID.UnmarshalBinary(rawOrgID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}

	return &project, nil
}

// Create inserts a new project into the MySQL database.
func (m *MySQLProjectRepository) Create(ctx context.Context, project *directoryDomain.Project) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO projects (id, organization_id, name, email, description, active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := project.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal project id")
	}

	orgID, err := project.OrganizationID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		orgID,
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
func (m *MySQLProjectRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*directoryDomain.Project, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, organization_id, name, email, description, active, created_at, updated_at
			  FROM projects
			  WHERE id = ? AND active = TRUE
			  LIMIT 1`

	idValue, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal project id")
	}

	row := querier.QueryRowContext(ctx, query, idValue)
	project, err := scanProjectRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, directoryDomain.ErrProjectNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get project by id")
	}

	return project, nil
}

// GetByName retrieves an active project by organization and name.
func (m *MySQLProjectRepository) GetByName(
	ctx context.Context,
	organizationID uuid.UUID,
	name string,
) (*directoryDomain.Project, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, organization_id, name, email, description, active, created_at, updated_at
			  FROM projects
			  WHERE organization_id = ? AND name = ? AND active = TRUE
			  LIMIT 1`

	orgValue, err := organizationID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	row := querier.QueryRowContext(ctx, query, orgValue, name)
	project, err := scanProjectRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, directoryDomain.ErrProjectNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get project by name")
	}

	return project, nil
}

// ListByOrganization retrieves active projects of an organization with pagination.
func (m *MySQLProjectRepository) ListByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*directoryDomain.Project, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, organization_id, name, email, description, active, created_at, updated_at
			  FROM projects
			  WHERE organization_id = ? AND active = TRUE
			  ORDER BY created_at
			  LIMIT ? OFFSET ?`

	orgValue, err := organizationID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	rows, err := querier.QueryContext(ctx, query, orgValue, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list projects")
	}
	defer func() { _ = rows.Close() }()

	var projects []*directoryDomain.Project
	for rows.Next() {
		project, err := scanProjectRow(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan project")
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate projects")
	}

	return projects, nil
}

// AddMember adds an employee to a project.
func (m *MySQLProjectRepository) AddMember(ctx context.Context, projectID, employeeID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO project_members (project_id, employee_id, created_at) VALUES (?, ?, ?)`

	projectValue, err := projectID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal project id")
	}

	employeeValue, err := employeeID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal employee id")
	}

	_, err = querier.ExecContext(ctx, query, projectValue, employeeValue, time.Now().UTC())
	if err != nil {
		return apperrors.Wrap(err, "failed to add project member")
	}
	return nil
}

// IsMember reports whether an employee belongs to a project.
func (m *MySQLProjectRepository) IsMember(ctx context.Context, projectID, employeeID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS (SELECT 1 FROM project_members WHERE project_id = ? AND employee_id = ?)`

	projectValue, err := projectID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal project id")
	}

	employeeValue, err := employeeID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal employee id")
	}

	var exists bool
	if err := querier.QueryRowContext(ctx, query, projectValue, employeeValue).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check project membership")
	}
	return exists, nil
}

// ListProjectIDsByEmployee retrieves the IDs of active projects an employee belongs to.
func (m *MySQLProjectRepository) ListProjectIDsByEmployee(
	ctx context.Context,
	employeeID uuid.UUID,
) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT pm.project_id
			  FROM project_members pm
			  JOIN projects p ON p.id = pm.project_id
			  WHERE pm.employee_id = ? AND p.active = TRUE`

	employeeValue, err := employeeID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal employee id")
	}

	rows, err := querier.QueryContext(ctx, query, employeeValue)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list employee projects")
	}
	defer func() { _ = rows.Close() }()

	var projectIDs []uuid.UUID
	for rows.Next() {
		var rawID []byte
		if err := rows.Scan(&rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan project id")
		}
		var projectID uuid.UUID
		if err := projectID.UnmarshalBinary(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal project id")
		}
		projectIDs = append(projectIDs, projectID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate employee projects")
	}

	return projectIDs, nil
}
