// Package domain defines the core vault entities: vaults, their components,
// the encrypted items inside them, and the access grants that control who can
// reach them. Every entity is soft-deleted via the Active flag so revocations
// and deletions keep their history.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vault is a named container of secrets owned by a single employee.
// The owner (CreatedBy) always has full access regardless of grants.
type Vault struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Description    string
	Active         bool
	CreatedBy      uuid.UUID
	UpdatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOwnedBy reports whether the given employee owns this vault.
func (v *Vault) IsOwnedBy(employeeID uuid.UUID) bool {
	return v.CreatedBy == employeeID
}

// EmployeeVaults groups the vaults an employee can reach, bucketed by how the
// access was obtained.
type EmployeeVaults struct {
	Owned        []*Vault
	Organization []*Vault
	Project      []*Vault
	Individual   []*Vault
}
