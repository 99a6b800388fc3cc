package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// MySQLEmployeeRepository implements Employee persistence for MySQL databases.
type MySQLEmployeeRepository struct {
	db *sql.DB
}

// NewMySQLEmployeeRepository creates a new MySQL Employee repository instance.
func NewMySQLEmployeeRepository(db *sql.DB) *MySQLEmployeeRepository {
	return &MySQLEmployeeRepository{db: db}
}

// scanEmployeeRow scans a single employee row, decoding binary UUID columns.
func scanEmployeeRow(scan func(dest ...any) error) (*directoryDomain.Employee, error) {
	var employee directoryDomain.Employee
	var rawID, rawOrgID []byte

	err := scan(
		&rawID,
		&rawOrgID,
		&employee.Name,
		&employee.Email,
		&employee.PasswordHash,
		&employee.Active,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := employee.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal employee id")
	}
	if err := employee.OrganizationID.UnmarshalBinary(rawOrgID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}

	return &employee, nil
}

// Create inserts a new employee into the MySQL database.
func (m *MySQLEmployeeRepository) Create(ctx context.Context, employee *directoryDomain.Employee) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO employees (id, organization_id, name, email, password_hash, active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := employee.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal employee id")
	}

	orgID, err := employee.OrganizationID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		orgID,
		employee.Name,
		employee.Email,
		employee.PasswordHash,
		employee.Active,
		employee.CreatedAt,
		employee.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create employee")
	}
	return nil
}

// GetByID retrieves an active employee by its ID.
func (m *MySQLEmployeeRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*directoryDomain.Employee, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, organization_id, name, email, password_hash, active, created_at, updated_at
			  FROM employees
			  WHERE id = ? AND active = TRUE
			  LIMIT 1`

	idValue, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal employee id")
	}

	row := querier.QueryRowContext(ctx, query, idValue)
	employee, err := scanEmployeeRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, directoryDomain.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get employee by id")
	}

	return employee, nil
}

// GetByEmail retrieves an active employee by organization and email.
func (m *MySQLEmployeeRepository) GetByEmail(
	ctx context.Context,
	organizationID uuid.UUID,
	email string,
) (*directoryDomain.Employee, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, organization_id, name, email, password_hash, active, created_at, updated_at
			  FROM employees
			  WHERE organization_id = ? AND email = ? AND active = TRUE
			  LIMIT 1`

	orgValue, err := organizationID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	row := querier.QueryRowContext(ctx, query, orgValue, email)
	employee, err := scanEmployeeRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, directoryDomain.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get employee by email")
	}

	return employee, nil
}

// ListByOrganization retrieves active employees of an organization with pagination.
func (m *MySQLEmployeeRepository) ListByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*directoryDomain.Employee, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, organization_id, name, email, password_hash, active, created_at, updated_at
			  FROM employees
			  WHERE organization_id = ? AND active = TRUE
			  ORDER BY created_at
			  LIMIT ? OFFSET ?`

	orgValue, err := organizationID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	rows, err := querier.QueryContext(ctx, query, orgValue, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list employees")
	}
	defer func() { _ = rows.Close() }()

	var employees []*directoryDomain.Employee
	for rows.Next() {
		employee, err := scanEmployeeRow(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan employee")
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate employees")
	}

	return employees, nil
}
