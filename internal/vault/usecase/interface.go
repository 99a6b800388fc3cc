// Package usecase implements the business logic of the vault context: vault,
// component and item lifecycle, grant management, and the access decisions
// that gate every read and write inside a vault.
package usecase

import (
	"context"

	"github.com/google/uuid"

	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// VaultRepository defines persistence operations for vaults.
// Implementations must support transaction-aware operations via context propagation.
type VaultRepository interface {
	Create(ctx context.Context, vault *vaultDomain.Vault) error

	// GetByID retrieves an active vault. Returns ErrVaultNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Vault, error)

	// GetByIDForUpdate retrieves an active vault and locks its row until the
	// surrounding transaction ends, serializing concurrent mutations on the
	// vault. Returns ErrVaultNotFound if not found.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*vaultDomain.Vault, error)

	ListByOrganization(ctx context.Context, organizationID uuid.UUID, offset, limit int) ([]*vaultDomain.Vault, error)

	// ListByOwner retrieves the organization's active vaults created by the
	// given employee.
	ListByOwner(ctx context.Context, organizationID, ownerID uuid.UUID) ([]*vaultDomain.Vault, error)

	// GetByIDs retrieves the active vaults matching the given IDs; missing IDs
	// are silently skipped.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*vaultDomain.Vault, error)

	Deactivate(ctx context.Context, vaultID, updatedBy uuid.UUID) error
}

// ComponentRepository defines persistence operations for components.
type ComponentRepository interface {
	Create(ctx context.Context, component *vaultDomain.Component) error

	// GetByID retrieves an active component. Returns ErrComponentNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Component, error)

	ListByVault(ctx context.Context, vaultID uuid.UUID, offset, limit int) ([]*vaultDomain.Component, error)

	Deactivate(ctx context.Context, componentID, updatedBy uuid.UUID) error
}

// ItemRepository defines persistence operations for encrypted items.
type ItemRepository interface {
	Create(ctx context.Context, item *vaultDomain.Item) error

	// GetByID retrieves an active item. Returns ErrItemNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Item, error)

	// GetByComponentAndKey retrieves an active item by its key inside a
	// component. Returns ErrItemNotFound if not found.
	GetByComponentAndKey(ctx context.Context, componentID uuid.UUID, key string) (*vaultDomain.Item, error)

	ListByComponent(ctx context.Context, componentID uuid.UUID, offset, limit int) ([]*vaultDomain.Item, error)

	// UpdateValue replaces the item's ciphertext and encryption key together.
	UpdateValue(ctx context.Context, itemID uuid.UUID, value, encryptionKey string, updatedBy uuid.UUID) error

	Deactivate(ctx context.Context, itemID, updatedBy uuid.UUID) error
}

// GrantRepository defines persistence operations for vault access grants.
// The Find-style getters return ErrGrantNotFound when no active grant matches;
// they never mutate state and are safe to call concurrently.
type GrantRepository interface {
	Create(ctx context.Context, grant *vaultDomain.Grant) error

	GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Grant, error)

	// GetOrganizationGrant retrieves the single active organization-level
	// grant of a vault, if one exists.
	GetOrganizationGrant(ctx context.Context, vaultID uuid.UUID) (*vaultDomain.Grant, error)

	// GetProjectGrant retrieves an active project-level grant of a vault
	// targeting any of the given projects.
	GetProjectGrant(ctx context.Context, vaultID uuid.UUID, projectIDs []uuid.UUID) (*vaultDomain.Grant, error)

	// GetIndividualGrant retrieves the active individual-level grant of a
	// vault for the given employee.
	GetIndividualGrant(ctx context.Context, vaultID, employeeID uuid.UUID) (*vaultDomain.Grant, error)

	ListActiveByVault(ctx context.Context, vaultID uuid.UUID) ([]*vaultDomain.Grant, error)

	// Revoke deactivates a single grant, stamping updated_by.
	Revoke(ctx context.Context, grantID, updatedBy uuid.UUID) error

	// RevokeAllForVault deactivates every active grant of a vault and returns
	// the revoked grants.
	RevokeAllForVault(ctx context.Context, vaultID, updatedBy uuid.UUID) ([]*vaultDomain.Grant, error)

	ListVaultIDsByOrganizationLevel(ctx context.Context, organizationID uuid.UUID) ([]uuid.UUID, error)
	ListVaultIDsByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]uuid.UUID, error)
	ListVaultIDsByEmployee(ctx context.Context, employeeID uuid.UUID) ([]uuid.UUID, error)
}

// EmployeeReader resolves employees from the directory context.
type EmployeeReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*directoryDomain.Employee, error)
}

// ProjectReader resolves projects and memberships from the directory context.
type ProjectReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*directoryDomain.Project, error)
	ListProjectIDsByEmployee(ctx context.Context, employeeID uuid.UUID) ([]uuid.UUID, error)
}

// SecretCodec seals plaintext values into (ciphertext, key) pairs and opens
// them back. Implementations must be safe for concurrent use.
type SecretCodec interface {
	Seal(plaintext string) (ciphertext, key string, err error)
	Open(ciphertext, key string) (string, error)
}

// VaultUseCase defines the business operations on vaults, components and
// items. Every operation takes the acting employee's ID; reads inside a vault
// require HasAccess and writes require CanWrite. Operations that fail the
// access check surface ErrVaultAccessDenied without revealing whether the
// requested entity exists.
type VaultUseCase interface {
	CreateVault(ctx context.Context, organizationID, actorID uuid.UUID, name, description string) (*vaultDomain.Vault, error)

	// GetVault retrieves a vault the actor can access.
	GetVault(ctx context.Context, organizationID, actorID, vaultID uuid.UUID) (*vaultDomain.Vault, error)

	ListVaults(ctx context.Context, organizationID uuid.UUID, offset, limit int) ([]*vaultDomain.Vault, error)

	// DeleteVault soft-deletes a vault and revokes all its grants. Owner only.
	DeleteVault(ctx context.Context, organizationID, actorID, vaultID uuid.UUID) error

	CreateComponent(ctx context.Context, organizationID, actorID, vaultID uuid.UUID, name, description string) (*vaultDomain.Component, error)

	ListComponents(ctx context.Context, organizationID, actorID, vaultID uuid.UUID, offset, limit int) ([]*vaultDomain.Component, error)

	DeleteComponent(ctx context.Context, organizationID, actorID, componentID uuid.UUID) error

	// CreateItem seals the plaintext and persists the ciphertext together
	// with its fresh per-item key. The returned item carries no plaintext.
	CreateItem(ctx context.Context, organizationID, actorID, componentID uuid.UUID, key, plaintext string) (*vaultDomain.Item, error)

	// GetItem resolves access first and only then decrypts; the returned
	// item's Plaintext field holds the decrypted value.
	GetItem(ctx context.Context, organizationID, actorID, itemID uuid.UUID) (*vaultDomain.Item, error)

	// ListItems lists a component's items without decrypting them.
	ListItems(ctx context.Context, organizationID, actorID, componentID uuid.UUID, offset, limit int) ([]*vaultDomain.Item, error)

	// UpdateItemValue re-seals the item only when the new plaintext differs
	// from the current decrypted value; writing the identical value leaves
	// the ciphertext and key untouched.
	UpdateItemValue(ctx context.Context, organizationID, actorID, itemID uuid.UUID, newPlaintext string) (*vaultDomain.Item, error)

	DeleteItem(ctx context.Context, organizationID, actorID, itemID uuid.UUID) error

	// ListEmployeeVaults lists the vaults an employee can reach, bucketed by
	// how the access was obtained (ownership or grant level).
	ListEmployeeVaults(ctx context.Context, organizationID, employeeID uuid.UUID) (*vaultDomain.EmployeeVaults, error)
}

// GrantUseCase defines grant management operations. All of them are owner-only.
type GrantUseCase interface {
	// CreateGrant installs a new grant on a vault, revoking every active
	// grant that conflicts with it inside the same transaction.
	CreateGrant(ctx context.Context, input *vaultDomain.CreateGrantInput) (*vaultDomain.Grant, error)

	// RevokeAllGrants revokes every active grant of a vault and returns the
	// revoked set.
	RevokeAllGrants(ctx context.Context, organizationID, actorID, vaultID uuid.UUID) ([]*vaultDomain.Grant, error)

	// ListGrants lists the active grants of a vault.
	ListGrants(ctx context.Context, organizationID, actorID, vaultID uuid.UUID) ([]*vaultDomain.Grant, error)
}
