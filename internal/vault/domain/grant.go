package domain

import (
	"time"

	"github.com/google/uuid"
)

// GrantLevel identifies who a grant targets.
type GrantLevel string

// Grant levels, from broadest to narrowest.
const (
	// GrantLevelOrganization grants access to every employee of the organization.
	GrantLevelOrganization GrantLevel = "organization"
	// GrantLevelProject grants access to every member of a project.
	GrantLevelProject GrantLevel = "project"
	// GrantLevelIndividual grants access to a single employee.
	GrantLevelIndividual GrantLevel = "individual"
)

// IsValid reports whether the level is one of the known grant levels.
func (l GrantLevel) IsValid() bool {
	switch l {
	case GrantLevelOrganization, GrantLevelProject, GrantLevelIndividual:
		return true
	}
	return false
}

// GrantScope identifies what a grant allows.
type GrantScope string

// Grant scopes.
const (
	// GrantScopeRead allows reading vault contents.
	GrantScopeRead GrantScope = "read"
	// GrantScopeReadWrite allows reading and modifying vault contents.
	GrantScopeReadWrite GrantScope = "read_write"
)

// IsValid reports whether the scope is one of the known grant scopes.
func (s GrantScope) IsValid() bool {
	return s == GrantScopeRead || s == GrantScopeReadWrite
}

// Grant is an access rule attached to a vault. Exactly one of ProjectID or
// EmployeeID is set depending on Level: project grants carry ProjectID,
// individual grants carry EmployeeID, organization grants carry neither.
// Revoked grants stay in the table with Active=false.
type Grant struct {
	ID             uuid.UUID
	VaultID        uuid.UUID
	OrganizationID uuid.UUID
	Level          GrantLevel
	Scope          GrantScope
	ProjectID      *uuid.UUID
	EmployeeID     *uuid.UUID
	Active         bool
	CreatedBy      uuid.UUID
	UpdatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AllowsWrite reports whether the grant's scope permits modifications.
func (g *Grant) AllowsWrite() bool {
	return g.Scope == GrantScopeReadWrite
}

// CreateGrantInput carries the parameters for installing a new grant on a
// vault. ProjectID is required for project-level grants, EmployeeID for
// individual-level grants; both must be nil otherwise.
type CreateGrantInput struct {
	OrganizationID uuid.UUID
	VaultID        uuid.UUID
	ActorID        uuid.UUID
	Level          GrantLevel
	Scope          GrantScope
	ProjectID      *uuid.UUID
	EmployeeID     *uuid.UUID
}

// SameTarget reports whether two grants point at the same target: the same
// level plus the same project or employee where the level carries one.
func (g *Grant) SameTarget(other *Grant) bool {
	if g.Level != other.Level {
		return false
	}
	switch g.Level {
	case GrantLevelProject:
		return g.ProjectID != nil && other.ProjectID != nil && *g.ProjectID == *other.ProjectID
	case GrantLevelIndividual:
		return g.EmployeeID != nil && other.EmployeeID != nil && *g.EmployeeID == *other.EmployeeID
	default:
		return true
	}
}
