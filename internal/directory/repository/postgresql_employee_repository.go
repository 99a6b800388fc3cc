package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// PostgreSQLEmployeeRepository implements Employee persistence for PostgreSQL databases.
type PostgreSQLEmployeeRepository struct {
	db *sql.DB
}

// NewPostgreSQLEmployeeRepository creates a new PostgreSQL Employee repository instance.
func NewPostgreSQLEmployeeRepository(db *sql.DB) *PostgreSQLEmployeeRepository {
	return &PostgreSQLEmployeeRepository{db: db}
}

// Create inserts a new employee into the PostgreSQL database.
func (p *PostgreSQLEmployeeRepository) Create(ctx context.Context, employee *directoryDomain.Employee) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO employees (id, organization_id, name, email, password_hash, active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		employee.ID,
		employee.OrganizationID,
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
func (p *PostgreSQLEmployeeRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*directoryDomain.Employee, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, organization_id, name, email, password_hash, active, created_at, updated_at
			  FROM employees
			  WHERE id = $1 AND active = TRUE
			  LIMIT 1`

	var employee directoryDomain.Employee
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&employee.ID,
		&employee.OrganizationID,
		&employee.Name,
		&employee.Email,
		&employee.PasswordHash,
		&employee.Active,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, directoryDomain.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get employee by id")
	}

	return &employee, nil
}

// GetByEmail retrieves an active employee by organization and email.
func (p *PostgreSQLEmployeeRepository) GetByEmail(
	ctx context.Context,
	organizationID uuid.UUID,
	email string,
) (*directoryDomain.Employee, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, organization_id, name, email, password_hash, active, created_at, updated_at
			  FROM employees
			  WHERE organization_id = $1 AND email = $2 AND active = TRUE
			  LIMIT 1`

	var employee directoryDomain.Employee
	err := querier.QueryRowContext(ctx, query, organizationID, email).Scan(
		&employee.ID,
		&employee.OrganizationID,
		&employee.Name,
		&employee.Email,
		&employee.PasswordHash,
		&employee.Active,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, directoryDomain.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get employee by email")
	}

	return &employee, nil
}

// ListByOrganization retrieves active employees of an organization with pagination.
func (p *PostgreSQLEmployeeRepository) ListByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*directoryDomain.Employee, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, organization_id, name, email, password_hash, active, created_at, updated_at
			  FROM employees
			  WHERE organization_id = $1 AND active = TRUE
			  ORDER BY created_at
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, organizationID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list employees")
	}
	defer func() { _ = rows.Close() }()

	var employees []*directoryDomain.Employee
	for rows.Next() {
		var employee directoryDomain.Employee
		err := rows.Scan(
			&employee.ID,
			&employee.OrganizationID,
			&employee.Name,
			&employee.Email,
			&employee.PasswordHash,
			&employee.Active,
			&employee.CreatedAt,
			&employee.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan employee")
		}
		employees = append(employees, &employee)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate employees")
	}

	return employees, nil
}
