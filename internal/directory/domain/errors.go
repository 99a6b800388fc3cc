package domain

import (
	"github.com/allisson/credvault/internal/errors"
)

// Directory-specific error definitions.
var (
	// ErrOrganizationNotFound indicates the requested organization does not exist.
	ErrOrganizationNotFound = errors.Wrap(errors.ErrNotFound, "organization not found")

	// ErrOrganizationAlreadyExists indicates an organization with the same email already exists.
	ErrOrganizationAlreadyExists = errors.Wrap(errors.ErrConflict, "organization already exists")

	// ErrEmployeeNotFound indicates the requested employee does not exist.
	ErrEmployeeNotFound = errors.Wrap(errors.ErrNotFound, "employee not found")

	// ErrEmployeeAlreadyExists indicates an employee with the same email already exists in the organization.
	ErrEmployeeAlreadyExists = errors.Wrap(errors.ErrConflict, "employee already exists")

	// ErrProjectNotFound indicates the requested project does not exist.
	ErrProjectNotFound = errors.Wrap(errors.ErrNotFound, "project not found")

	// ErrProjectAlreadyExists indicates a project with the same name already exists in the organization.
	ErrProjectAlreadyExists = errors.Wrap(errors.ErrConflict, "project already exists")

	// ErrProjectMemberAlreadyExists indicates the employee is already a member of the project.
	ErrProjectMemberAlreadyExists = errors.Wrap(errors.ErrConflict, "employee is already a project member")
)
