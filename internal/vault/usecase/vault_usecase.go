package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// vaultUseCase implements the VaultUseCase interface.
type vaultUseCase struct {
	txManager     database.TxManager
	vaultRepo     VaultRepository
	componentRepo ComponentRepository
	itemRepo      ItemRepository
	grantRepo     GrantRepository
	projectRepo   ProjectReader
	employeeRepo  EmployeeReader
	resolver      *AccessResolver
	codec         SecretCodec
}

// NewVaultUseCase creates a new vault use case instance.
func NewVaultUseCase(
	txManager database.TxManager,
	vaultRepo VaultRepository,
	componentRepo ComponentRepository,
	itemRepo ItemRepository,
	grantRepo GrantRepository,
	projectRepo ProjectReader,
	employeeRepo EmployeeReader,
	codec SecretCodec,
) VaultUseCase {
	return &vaultUseCase{
		txManager:     txManager,
		vaultRepo:     vaultRepo,
		componentRepo: componentRepo,
		itemRepo:      itemRepo,
		grantRepo:     grantRepo,
		projectRepo:   projectRepo,
		employeeRepo:  employeeRepo,
		resolver:      NewAccessResolver(grantRepo, projectRepo),
		codec:         codec,
	}
}

// getEmployee resolves an active employee and verifies organization membership.
func (v *vaultUseCase) getEmployee(
	ctx context.Context,
	organizationID, employeeID uuid.UUID,
) (*directoryDomain.Employee, error) {
	employee, err := v.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.OrganizationID != organizationID {
		return nil, directoryDomain.ErrEmployeeNotFound
	}
	return employee, nil
}

// getVault resolves an active vault and verifies it belongs to the organization.
func (v *vaultUseCase) getVault(
	ctx context.Context,
	organizationID, vaultID uuid.UUID,
) (*vaultDomain.Vault, error) {
	vault, err := v.vaultRepo.GetByID(ctx, vaultID)
	if err != nil {
		return nil, err
	}
	if vault.OrganizationID != organizationID {
		return nil, vaultDomain.ErrVaultNotFound
	}
	return vault, nil
}

// getComponentVault resolves a component and the vault that holds it.
func (v *vaultUseCase) getComponentVault(
	ctx context.Context,
	organizationID, componentID uuid.UUID,
) (*vaultDomain.Component, *vaultDomain.Vault, error) {
	component, err := v.componentRepo.GetByID(ctx, componentID)
	if err != nil {
		return nil, nil, err
	}
	if component.OrganizationID != organizationID {
		return nil, nil, vaultDomain.ErrComponentNotFound
	}

	vault, err := v.getVault(ctx, organizationID, component.VaultID)
	if err != nil {
		return nil, nil, err
	}
	return component, vault, nil
}

// getItemVault resolves an item and the vault that holds it.
func (v *vaultUseCase) getItemVault(
	ctx context.Context,
	organizationID, itemID uuid.UUID,
) (*vaultDomain.Item, *vaultDomain.Vault, error) {
	item, err := v.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	if item.OrganizationID != organizationID {
		return nil, nil, vaultDomain.ErrItemNotFound
	}

	component, err := v.componentRepo.GetByID(ctx, item.ComponentID)
	if err != nil {
		return nil, nil, err
	}

	vault, err := v.getVault(ctx, organizationID, component.VaultID)
	if err != nil {
		return nil, nil, err
	}
	return item, vault, nil
}

// resolveActor verifies the actor is an active employee of the vault's
// organization before any grant is consulted. An unresolvable actor surfaces
// as ErrVaultAccessDenied, learning nothing about the vault.
func (v *vaultUseCase) resolveActor(
	ctx context.Context,
	vault *vaultDomain.Vault,
	actorID uuid.UUID,
) error {
	if _, err := v.getEmployee(ctx, vault.OrganizationID, actorID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return vaultDomain.ErrVaultAccessDenied
		}
		return err
	}
	return nil
}

// requireAccess returns ErrVaultAccessDenied unless the actor resolves to an
// active employee of the vault's organization who can read the vault.
func (v *vaultUseCase) requireAccess(
	ctx context.Context,
	vault *vaultDomain.Vault,
	actorID uuid.UUID,
) error {
	if err := v.resolveActor(ctx, vault, actorID); err != nil {
		return err
	}
	ok, err := v.resolver.HasAccess(ctx, vault, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return vaultDomain.ErrVaultAccessDenied
	}
	return nil
}

// requireWrite returns ErrVaultAccessDenied unless the actor resolves to an
// active employee of the vault's organization who can modify the vault.
func (v *vaultUseCase) requireWrite(
	ctx context.Context,
	vault *vaultDomain.Vault,
	actorID uuid.UUID,
) error {
	if err := v.resolveActor(ctx, vault, actorID); err != nil {
		return err
	}
	ok, err := v.resolver.CanWrite(ctx, vault, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return vaultDomain.ErrVaultAccessDenied
	}
	return nil
}

// CreateVault creates a vault owned by the acting employee.
func (v *vaultUseCase) CreateVault(
	ctx context.Context,
	organizationID, actorID uuid.UUID,
	name, description string,
) (*vaultDomain.Vault, error) {
	if _, err := v.getEmployee(ctx, organizationID, actorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	vault := &vaultDomain.Vault{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: organizationID,
		Name:           name,
		Description:    description,
		Active:         true,
		CreatedBy:      actorID,
		UpdatedBy:      actorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := v.vaultRepo.Create(ctx, vault); err != nil {
		return nil, err
	}
	return vault, nil
}

// GetVault retrieves a vault the actor can access.
func (v *vaultUseCase) GetVault(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
) (*vaultDomain.Vault, error) {
	vault, err := v.getVault(ctx, organizationID, vaultID)
	if err != nil {
		return nil, err
	}
	if err := v.requireAccess(ctx, vault, actorID); err != nil {
		return nil, err
	}
	return vault, nil
}

// ListVaults lists the organization's active vaults with pagination.
func (v *vaultUseCase) ListVaults(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Vault, error) {
	return v.vaultRepo.ListByOrganization(ctx, organizationID, offset, limit)
}

// DeleteVault soft-deletes a vault and revokes all its grants in a single
// transaction. Owner only.
func (v *vaultUseCase) DeleteVault(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
) error {
	vault, err := v.getVault(ctx, organizationID, vaultID)
	if err != nil {
		return err
	}
	if !vault.IsOwnedBy(actorID) {
		return vaultDomain.ErrNotVaultOwner
	}

	return v.txManager.WithTx(ctx, func(txCtx context.Context) error {
		// The row lock serializes the delete against concurrent grant mutations.
		if _, err := v.vaultRepo.GetByIDForUpdate(txCtx, vaultID); err != nil {
			return err
		}
		if _, err := v.grantRepo.RevokeAllForVault(txCtx, vaultID, actorID); err != nil {
			return err
		}
		return v.vaultRepo.Deactivate(txCtx, vaultID, actorID)
	})
}

// CreateComponent creates a component inside a vault the actor can write to.
func (v *vaultUseCase) CreateComponent(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
	name, description string,
) (*vaultDomain.Component, error) {
	vault, err := v.getVault(ctx, organizationID, vaultID)
	if err != nil {
		return nil, err
	}
	if err := v.requireWrite(ctx, vault, actorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	component := &vaultDomain.Component{
		ID:             uuid.Must(uuid.NewV7()),
		VaultID:        vault.ID,
		OrganizationID: organizationID,
		Name:           name,
		Description:    description,
		Active:         true,
		CreatedBy:      actorID,
		UpdatedBy:      actorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := v.componentRepo.Create(ctx, component); err != nil {
		return nil, err
	}
	return component, nil
}

// ListComponents lists a vault's active components. Requires read access.
func (v *vaultUseCase) ListComponents(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Component, error) {
	vault, err := v.getVault(ctx, organizationID, vaultID)
	if err != nil {
		return nil, err
	}
	if err := v.requireAccess(ctx, vault, actorID); err != nil {
		return nil, err
	}
	return v.componentRepo.ListByVault(ctx, vaultID, offset, limit)
}

// DeleteComponent soft-deletes a component. Requires write access to the vault.
func (v *vaultUseCase) DeleteComponent(
	ctx context.Context,
	organizationID, actorID, componentID uuid.UUID,
) error {
	component, vault, err := v.getComponentVault(ctx, organizationID, componentID)
	if err != nil {
		return err
	}
	if err := v.requireWrite(ctx, vault, actorID); err != nil {
		return err
	}
	return v.componentRepo.Deactivate(ctx, component.ID, actorID)
}

// CreateItem seals the plaintext and persists the item. Requires write access.
// The duplicate-key check and insert run inside one transaction.
func (v *vaultUseCase) CreateItem(
	ctx context.Context,
	organizationID, actorID, componentID uuid.UUID,
	key, plaintext string,
) (*vaultDomain.Item, error) {
	component, vault, err := v.getComponentVault(ctx, organizationID, componentID)
	if err != nil {
		return nil, err
	}
	if err := v.requireWrite(ctx, vault, actorID); err != nil {
		return nil, err
	}

	ciphertext, encryptionKey, err := v.codec.Seal(plaintext)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &vaultDomain.Item{
		ID:             uuid.Must(uuid.NewV7()),
		ComponentID:    component.ID,
		OrganizationID: organizationID,
		Key:            key,
		Value:          ciphertext,
		EncryptionKey:  encryptionKey,
		Active:         true,
		CreatedBy:      actorID,
		UpdatedBy:      actorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = v.txManager.WithTx(ctx, func(txCtx context.Context) error {
		_, err := v.itemRepo.GetByComponentAndKey(txCtx, component.ID, key)
		if err == nil {
			return vaultDomain.ErrItemKeyAlreadyExists
		}
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return v.itemRepo.Create(txCtx, item)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// GetItem resolves access first and only then decrypts the value. A denied
// actor never triggers decryption.
func (v *vaultUseCase) GetItem(
	ctx context.Context,
	organizationID, actorID, itemID uuid.UUID,
) (*vaultDomain.Item, error) {
	item, vault, err := v.getItemVault(ctx, organizationID, itemID)
	if err != nil {
		return nil, err
	}
	if err := v.requireAccess(ctx, vault, actorID); err != nil {
		return nil, err
	}

	plaintext, err := v.codec.Open(item.Value, item.EncryptionKey)
	if err != nil {
		return nil, err
	}
	item.Plaintext = plaintext

	return item, nil
}

// ListItems lists a component's active items without decrypting them.
func (v *vaultUseCase) ListItems(
	ctx context.Context,
	organizationID, actorID, componentID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Item, error) {
	component, vault, err := v.getComponentVault(ctx, organizationID, componentID)
	if err != nil {
		return nil, err
	}
	if err := v.requireAccess(ctx, vault, actorID); err != nil {
		return nil, err
	}
	return v.itemRepo.ListByComponent(ctx, component.ID, offset, limit)
}

// UpdateItemValue re-seals the item's value. Writing the identical plaintext
// is a no-op for the ciphertext fields: the current value is decrypted and
// compared as plaintext, never as ciphertext, since the key differs per seal.
func (v *vaultUseCase) UpdateItemValue(
	ctx context.Context,
	organizationID, actorID, itemID uuid.UUID,
	newPlaintext string,
) (*vaultDomain.Item, error) {
	item, vault, err := v.getItemVault(ctx, organizationID, itemID)
	if err != nil {
		return nil, err
	}
	if err := v.requireWrite(ctx, vault, actorID); err != nil {
		return nil, err
	}

	currentPlaintext, err := v.codec.Open(item.Value, item.EncryptionKey)
	if err != nil {
		return nil, err
	}
	if currentPlaintext == newPlaintext {
		return item, nil
	}

	ciphertext, encryptionKey, err := v.codec.Seal(newPlaintext)
	if err != nil {
		return nil, err
	}
	if err := v.itemRepo.UpdateValue(ctx, item.ID, ciphertext, encryptionKey, actorID); err != nil {
		return nil, err
	}

	item.Value = ciphertext
	item.EncryptionKey = encryptionKey
	item.UpdatedBy = actorID
	item.UpdatedAt = time.Now().UTC()

	return item, nil
}

// DeleteItem soft-deletes an item. Requires write access to the vault.
func (v *vaultUseCase) DeleteItem(
	ctx context.Context,
	organizationID, actorID, itemID uuid.UUID,
) error {
	item, vault, err := v.getItemVault(ctx, organizationID, itemID)
	if err != nil {
		return err
	}
	if err := v.requireWrite(ctx, vault, actorID); err != nil {
		return err
	}
	return v.itemRepo.Deactivate(ctx, item.ID, actorID)
}

// ListEmployeeVaults lists the vaults an employee can reach, bucketed by how
// the access was obtained. Vaults the employee owns appear only in the Owned
// bucket even when a grant also covers them.
func (v *vaultUseCase) ListEmployeeVaults(
	ctx context.Context,
	organizationID, employeeID uuid.UUID,
) (*vaultDomain.EmployeeVaults, error) {
	employee, err := v.getEmployee(ctx, organizationID, employeeID)
	if err != nil {
		return nil, err
	}

	result := &vaultDomain.EmployeeVaults{}

	result.Owned, err = v.vaultRepo.ListByOwner(ctx, organizationID, employee.ID)
	if err != nil {
		return nil, err
	}

	orgVaultIDs, err := v.grantRepo.ListVaultIDsByOrganizationLevel(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	result.Organization, err = v.collectGrantedVaults(ctx, orgVaultIDs, employee.ID)
	if err != nil {
		return nil, err
	}

	projectIDs, err := v.projectRepo.ListProjectIDsByEmployee(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	projectVaultIDs, err := v.grantRepo.ListVaultIDsByProjects(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	result.Project, err = v.collectGrantedVaults(ctx, projectVaultIDs, employee.ID)
	if err != nil {
		return nil, err
	}

	individualVaultIDs, err := v.grantRepo.ListVaultIDsByEmployee(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	result.Individual, err = v.collectGrantedVaults(ctx, individualVaultIDs, employee.ID)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// collectGrantedVaults loads the vaults for a bucket, dropping vaults the
// employee owns since those live in the Owned bucket.
func (v *vaultUseCase) collectGrantedVaults(
	ctx context.Context,
	vaultIDs []uuid.UUID,
	employeeID uuid.UUID,
) ([]*vaultDomain.Vault, error) {
	vaults, err := v.vaultRepo.GetByIDs(ctx, vaultIDs)
	if err != nil {
		return nil, err
	}

	granted := make([]*vaultDomain.Vault, 0, len(vaults))
	for _, vault := range vaults {
		if vault.IsOwnedBy(employeeID) {
			continue
		}
		granted = append(granted, vault)
	}
	return granted, nil
}
