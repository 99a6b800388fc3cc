// Package usecase implements the directory business logic: organization
// registration, employee and project management, and project membership.
package usecase

import (
	"context"

	"github.com/google/uuid"

	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
)

// OrganizationRepository defines persistence operations for organizations.
type OrganizationRepository interface {
	Create(ctx context.Context, org *directoryDomain.Organization) error

	// GetByID retrieves an active organization. Returns ErrOrganizationNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*directoryDomain.Organization, error)

	// GetByEmail retrieves an active organization by its email.
	GetByEmail(ctx context.Context, email string) (*directoryDomain.Organization, error)
}

// EmployeeRepository defines persistence operations for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *directoryDomain.Employee) error

	// GetByID retrieves an active employee. Returns ErrEmployeeNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*directoryDomain.Employee, error)

	// GetByEmail retrieves an active employee by organization and email.
	GetByEmail(ctx context.Context, organizationID uuid.UUID, email string) (*directoryDomain.Employee, error)

	ListByOrganization(ctx context.Context, organizationID uuid.UUID, offset, limit int) ([]*directoryDomain.Employee, error)
}

// ProjectRepository defines persistence operations for projects and their
// membership rows.
type ProjectRepository interface {
	Create(ctx context.Context, project *directoryDomain.Project) error

	// GetByID retrieves an active project. Returns ErrProjectNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*directoryDomain.Project, error)

	// GetByName retrieves an active project by organization and name.
	GetByName(ctx context.Context, organizationID uuid.UUID, name string) (*directoryDomain.Project, error)

	ListByOrganization(ctx context.Context, organizationID uuid.UUID, offset, limit int) ([]*directoryDomain.Project, error)

	AddMember(ctx context.Context, projectID, employeeID uuid.UUID) error

	IsMember(ctx context.Context, projectID, employeeID uuid.UUID) (bool, error)

	ListProjectIDsByEmployee(ctx context.Context, employeeID uuid.UUID) ([]uuid.UUID, error)
}

// RegisterOrganizationInput contains the input data for organization registration.
type RegisterOrganizationInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateEmployeeInput contains the input data for employee creation.
type CreateEmployeeInput struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"password"`
}

// CreateProjectInput contains the input data for project creation.
type CreateProjectInput struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Description    string    `json:"description"`
}

// DirectoryUseCase defines the business operations on organizations, employees
// and projects.
type DirectoryUseCase interface {
	// RegisterOrganization creates a new organization with a hashed credential.
	RegisterOrganization(ctx context.Context, input RegisterOrganizationInput) (*directoryDomain.Organization, error)

	GetOrganization(ctx context.Context, id uuid.UUID) (*directoryDomain.Organization, error)

	// CreateEmployee creates an employee inside an organization.
	CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*directoryDomain.Employee, error)

	// GetEmployee retrieves an employee scoped to an organization.
	GetEmployee(ctx context.Context, organizationID, employeeID uuid.UUID) (*directoryDomain.Employee, error)

	ListEmployees(ctx context.Context, organizationID uuid.UUID, offset, limit int) ([]*directoryDomain.Employee, error)

	// CreateProject creates a project inside an organization.
	CreateProject(ctx context.Context, input CreateProjectInput) (*directoryDomain.Project, error)

	ListProjects(ctx context.Context, organizationID uuid.UUID, offset, limit int) ([]*directoryDomain.Project, error)

	// AddProjectMember adds an employee of the same organization to a project.
	AddProjectMember(ctx context.Context, organizationID, projectID, employeeID uuid.UUID) error
}
