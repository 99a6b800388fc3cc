package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	databaseMocks "github.com/allisson/credvault/internal/database/mocks"
	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
	"github.com/allisson/credvault/internal/vault/usecase"
	usecaseMocks "github.com/allisson/credvault/internal/vault/usecase/mocks"
)

type vaultUseCaseMocks struct {
	txManager     *databaseMocks.MockTxManager
	vaultRepo     *usecaseMocks.MockVaultRepository
	componentRepo *usecaseMocks.MockComponentRepository
	itemRepo      *usecaseMocks.MockItemRepository
	grantRepo     *usecaseMocks.MockGrantRepository
	projectRepo   *usecaseMocks.MockProjectReader
	employeeRepo  *usecaseMocks.MockEmployeeReader
	codec         *usecaseMocks.MockSecretCodec
}

func newVaultUseCase() (usecase.VaultUseCase, *vaultUseCaseMocks) {
	m := &vaultUseCaseMocks{
		txManager:     &databaseMocks.MockTxManager{},
		vaultRepo:     &usecaseMocks.MockVaultRepository{},
		componentRepo: &usecaseMocks.MockComponentRepository{},
		itemRepo:      &usecaseMocks.MockItemRepository{},
		grantRepo:     &usecaseMocks.MockGrantRepository{},
		projectRepo:   &usecaseMocks.MockProjectReader{},
		employeeRepo:  &usecaseMocks.MockEmployeeReader{},
		codec:         &usecaseMocks.MockSecretCodec{},
	}
	uc := usecase.NewVaultUseCase(
		m.txManager,
		m.vaultRepo,
		m.componentRepo,
		m.itemRepo,
		m.grantRepo,
		m.projectRepo,
		m.employeeRepo,
		m.codec,
	)
	return uc, m
}

func (m *vaultUseCaseMocks) expectTx(ctx context.Context) {
	m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
}

// expectActor resolves the actor as an active employee of the organization.
func (m *vaultUseCaseMocks) expectActor(ctx context.Context, orgID, employeeID uuid.UUID) {
	m.employeeRepo.On("GetByID", ctx, employeeID).
		Return(&directoryDomain.Employee{ID: employeeID, OrganizationID: orgID, Active: true}, nil)
}

// expectNoGrants makes the access resolver see no active grants at any level.
func (m *vaultUseCaseMocks) expectNoGrants(ctx context.Context, vaultID, employeeID uuid.UUID) {
	m.grantRepo.On("GetOrganizationGrant", ctx, vaultID).Return(nil, vaultDomain.ErrGrantNotFound)
	m.projectRepo.On("ListProjectIDsByEmployee", ctx, employeeID).Return([]uuid.UUID(nil), nil)
	m.grantRepo.On("GetProjectGrant", ctx, vaultID, []uuid.UUID(nil)).Return(nil, vaultDomain.ErrGrantNotFound)
	m.grantRepo.On("GetIndividualGrant", ctx, vaultID, employeeID).Return(nil, vaultDomain.ErrGrantNotFound)
}

func testEmployee(orgID uuid.UUID, name string) *directoryDomain.Employee {
	return &directoryDomain.Employee{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: orgID,
		Name:           name,
		Email:          name + "@acme.com",
		Active:         true,
	}
}

func testVault(orgID, ownerID uuid.UUID, name string) *vaultDomain.Vault {
	return &vaultDomain.Vault{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: orgID,
		Name:           name,
		Active:         true,
		CreatedBy:      ownerID,
		UpdatedBy:      ownerID,
	}
}

func testComponent(orgID, vaultID uuid.UUID, name string) *vaultDomain.Component {
	return &vaultDomain.Component{
		ID:             uuid.Must(uuid.NewV7()),
		VaultID:        vaultID,
		OrganizationID: orgID,
		Name:           name,
		Active:         true,
	}
}

func testItem(orgID, componentID uuid.UUID, key, value, encryptionKey string) *vaultDomain.Item {
	return &vaultDomain.Item{
		ID:             uuid.Must(uuid.NewV7()),
		ComponentID:    componentID,
		OrganizationID: orgID,
		Key:            key,
		Value:          value,
		EncryptionKey:  encryptionKey,
		Active:         true,
	}
}

func TestVaultUseCaseCreateVault(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())

	t.Run("success", func(t *testing.T) {
		uc, m := newVaultUseCase()
		alice := testEmployee(orgID, "alice")

		m.employeeRepo.On("GetByID", ctx, alice.ID).Return(alice, nil)
		m.vaultRepo.On("Create", ctx, mock.AnythingOfType("*domain.Vault")).Return(nil)

		vault, err := uc.CreateVault(ctx, orgID, alice.ID, "production-credentials", "prod secrets")
		require.NoError(t, err)
		assert.Equal(t, orgID, vault.OrganizationID)
		assert.Equal(t, "production-credentials", vault.Name)
		assert.True(t, vault.Active)
		assert.True(t, vault.IsOwnedBy(alice.ID))
		m.vaultRepo.AssertExpectations(t)
	})

	t.Run("actor from another organization", func(t *testing.T) {
		uc, m := newVaultUseCase()
		outsider := testEmployee(uuid.Must(uuid.NewV7()), "mallory")

		m.employeeRepo.On("GetByID", ctx, outsider.ID).Return(outsider, nil)

		_, err := uc.CreateVault(ctx, orgID, outsider.ID, "production-credentials", "")
		require.ErrorIs(t, err, directoryDomain.ErrEmployeeNotFound)
		m.vaultRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestVaultUseCaseGetVault(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	ownerID := uuid.Must(uuid.NewV7())
	vault := testVault(orgID, ownerID, "deploy-keys")

	t.Run("owner reads own vault", func(t *testing.T) {
		uc, m := newVaultUseCase()
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.expectActor(ctx, orgID, ownerID)

		result, err := uc.GetVault(ctx, orgID, ownerID, vault.ID)
		require.NoError(t, err)
		assert.Equal(t, vault, result)
	})

	t.Run("employee without grants is denied", func(t *testing.T) {
		uc, m := newVaultUseCase()
		bobID := uuid.Must(uuid.NewV7())

		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.expectActor(ctx, orgID, bobID)
		m.expectNoGrants(ctx, vault.ID, bobID)

		_, err := uc.GetVault(ctx, orgID, bobID, vault.ID)
		require.ErrorIs(t, err, vaultDomain.ErrVaultAccessDenied)
	})

	t.Run("actor from another organization is denied", func(t *testing.T) {
		uc, m := newVaultUseCase()
		outsider := testEmployee(uuid.Must(uuid.NewV7()), "mallory")

		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.employeeRepo.On("GetByID", ctx, outsider.ID).Return(outsider, nil)
		m.grantRepo.On("GetOrganizationGrant", ctx, vault.ID).
			Return(activeGrant(vault.ID, orgID, vaultDomain.GrantLevelOrganization, vaultDomain.GrantScopeRead), nil)

		_, err := uc.GetVault(ctx, orgID, outsider.ID, vault.ID)
		require.ErrorIs(t, err, vaultDomain.ErrVaultAccessDenied)
		m.grantRepo.AssertNotCalled(t, "GetOrganizationGrant", mock.Anything, mock.Anything)
	})

	t.Run("vault from another organization is not found", func(t *testing.T) {
		uc, m := newVaultUseCase()
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)

		_, err := uc.GetVault(ctx, uuid.Must(uuid.NewV7()), ownerID, vault.ID)
		require.ErrorIs(t, err, vaultDomain.ErrVaultNotFound)
	})
}

func TestVaultUseCaseDeleteVault(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	ownerID := uuid.Must(uuid.NewV7())
	vault := testVault(orgID, ownerID, "deploy-keys")

	t.Run("owner deletes vault and grants go with it", func(t *testing.T) {
		uc, m := newVaultUseCase()
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.expectTx(ctx)
		m.vaultRepo.On("GetByIDForUpdate", ctx, vault.ID).Return(vault, nil)
		m.grantRepo.On("RevokeAllForVault", ctx, vault.ID, ownerID).Return([]*vaultDomain.Grant{}, nil)
		m.vaultRepo.On("Deactivate", ctx, vault.ID, ownerID).Return(nil)

		err := uc.DeleteVault(ctx, orgID, ownerID, vault.ID)
		require.NoError(t, err)
		m.grantRepo.AssertExpectations(t)
		m.vaultRepo.AssertExpectations(t)
	})

	t.Run("non-owner cannot delete even with a write grant", func(t *testing.T) {
		uc, m := newVaultUseCase()
		bobID := uuid.Must(uuid.NewV7())
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)

		err := uc.DeleteVault(ctx, orgID, bobID, vault.ID)
		require.ErrorIs(t, err, vaultDomain.ErrNotVaultOwner)
		m.vaultRepo.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestVaultUseCaseCreateComponent(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	ownerID := uuid.Must(uuid.NewV7())
	vault := testVault(orgID, ownerID, "deploy-keys")

	t.Run("owner creates component", func(t *testing.T) {
		uc, m := newVaultUseCase()
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.expectActor(ctx, orgID, ownerID)
		m.componentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Component")).Return(nil)

		component, err := uc.CreateComponent(ctx, orgID, ownerID, vault.ID, "postgres", "db credentials")
		require.NoError(t, err)
		assert.Equal(t, vault.ID, component.VaultID)
		assert.Equal(t, orgID, component.OrganizationID)
		assert.Equal(t, "postgres", component.Name)
	})

	t.Run("read-only grant cannot create components", func(t *testing.T) {
		uc, m := newVaultUseCase()
		bobID := uuid.Must(uuid.NewV7())
		readGrant := &vaultDomain.Grant{
			ID:      uuid.Must(uuid.NewV7()),
			VaultID: vault.ID,
			Level:   vaultDomain.GrantLevelOrganization,
			Scope:   vaultDomain.GrantScopeRead,
			Active:  true,
		}

		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.expectActor(ctx, orgID, bobID)
		m.grantRepo.On("GetOrganizationGrant", ctx, vault.ID).Return(readGrant, nil)
		m.projectRepo.On("ListProjectIDsByEmployee", ctx, bobID).Return([]uuid.UUID(nil), nil)
		m.grantRepo.On("GetProjectGrant", ctx, vault.ID, []uuid.UUID(nil)).Return(nil, vaultDomain.ErrGrantNotFound)
		m.grantRepo.On("GetIndividualGrant", ctx, vault.ID, bobID).Return(nil, vaultDomain.ErrGrantNotFound)

		_, err := uc.CreateComponent(ctx, orgID, bobID, vault.ID, "postgres", "")
		require.ErrorIs(t, err, vaultDomain.ErrVaultAccessDenied)
		m.componentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestVaultUseCaseCreateItem(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	ownerID := uuid.Must(uuid.NewV7())
	vault := testVault(orgID, ownerID, "deploy-keys")
	component := testComponent(orgID, vault.ID, "postgres")

	t.Run("seals the plaintext before persisting", func(t *testing.T) {
		uc, m := newVaultUseCase()
		m.componentRepo.On("GetByID", ctx, component.ID).Return(component, nil)
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.expectActor(ctx, orgID, ownerID)
		m.codec.On("Seal", "s3cr3t").Return("ciphertext-1", "key-1", nil)
		m.expectTx(ctx)
		m.itemRepo.On("GetByComponentAndKey", ctx, component.ID, "password").Return(nil, vaultDomain.ErrItemNotFound)
		m.itemRepo.On("Create", ctx, mock.AnythingOfType("*domain.Item")).Return(nil)

		item, err := uc.CreateItem(ctx, orgID, ownerID, component.ID, "password", "s3cr3t")
		require.NoError(t, err)
		assert.Equal(t, "password", item.Key)
		assert.Equal(t, "ciphertext-1", item.Value)
		assert.Equal(t, "key-1", item.EncryptionKey)
		assert.Empty(t, item.Plaintext)
		m.itemRepo.AssertExpectations(t)
	})

	t.Run("duplicate key inside the component", func(t *testing.T) {
		uc, m := newVaultUseCase()
		existing := testItem(orgID, component.ID, "password", "ciphertext-0", "key-0")

		m.componentRepo.On("GetByID", ctx, component.ID).Return(component, nil)
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.expectActor(ctx, orgID, ownerID)
		m.codec.On("Seal", "s3cr3t").Return("ciphertext-1", "key-1", nil)
		m.expectTx(ctx)
		m.itemRepo.On("GetByComponentAndKey", ctx, component.ID, "password").Return(existing, nil)

		_, err := uc.CreateItem(ctx, orgID, ownerID, component.ID, "password", "s3cr3t")
		require.ErrorIs(t, err, vaultDomain.ErrItemKeyAlreadyExists)
		m.itemRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("denied actor cannot create items", func(t *testing.T) {
		uc, m := newVaultUseCase()
		bobID := uuid.Must(uuid.NewV7())

		m.componentRepo.On("GetByID", ctx, component.ID).Return(component, nil)
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.expectActor(ctx, orgID, bobID)
		m.expectNoGrants(ctx, vault.ID, bobID)

		_, err := uc.CreateItem(ctx, orgID, bobID, component.ID, "password", "s3cr3t")
		require.ErrorIs(t, err, vaultDomain.ErrVaultAccessDenied)
		m.codec.AssertNotCalled(t, "Seal", mock.Anything)
	})
}

func TestVaultUseCaseGetItem(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	ownerID := uuid.Must(uuid.NewV7())
	vault := testVault(orgID, ownerID, "deploy-keys")
	component := testComponent(orgID, vault.ID, "postgres")

	t.Run("decrypts after access is resolved", func(t *testing.T) {
		uc, m := newVaultUseCase()
		item := testItem(orgID, component.ID, "password", "ciphertext-1", "key-1")

		m.itemRepo.On("GetByID", ctx, item.ID).Return(item, nil)
		m.componentRepo.On("GetByID", ctx, component.ID).Return(component, nil)
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.expectActor(ctx, orgID, ownerID)
		m.codec.On("Open", "ciphertext-1", "key-1").Return("s3cr3t", nil)

		result, err := uc.GetItem(ctx, orgID, ownerID, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "s3cr3t", result.Plaintext)
		assert.Equal(t, "ciphertext-1", result.Value)
	})

	t.Run("denied actor never triggers decryption", func(t *testing.T) {
		uc, m := newVaultUseCase()
		bobID := uuid.Must(uuid.NewV7())
		item := testItem(orgID, component.ID, "password", "ciphertext-1", "key-1")

		m.itemRepo.On("GetByID", ctx, item.ID).Return(item, nil)
		m.componentRepo.On("GetByID", ctx, component.ID).Return(component, nil)
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.expectActor(ctx, orgID, bobID)
		m.expectNoGrants(ctx, vault.ID, bobID)

		_, err := uc.GetItem(ctx, orgID, bobID, item.ID)
		require.ErrorIs(t, err, vaultDomain.ErrVaultAccessDenied)
		m.codec.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
	})

	t.Run("unknown or deactivated actor is denied despite an organization grant", func(t *testing.T) {
		uc, m := newVaultUseCase()
		ghostID := uuid.Must(uuid.NewV7())
		item := testItem(orgID, component.ID, "password", "ciphertext-1", "key-1")

		m.itemRepo.On("GetByID", ctx, item.ID).Return(item, nil)
		m.componentRepo.On("GetByID", ctx, component.ID).Return(component, nil)
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.employeeRepo.On("GetByID", ctx, ghostID).Return(nil, directoryDomain.ErrEmployeeNotFound)
		m.grantRepo.On("GetOrganizationGrant", ctx, vault.ID).
			Return(activeGrant(vault.ID, orgID, vaultDomain.GrantLevelOrganization, vaultDomain.GrantScopeRead), nil)

		_, err := uc.GetItem(ctx, orgID, ghostID, item.ID)
		require.ErrorIs(t, err, vaultDomain.ErrVaultAccessDenied)
		m.grantRepo.AssertNotCalled(t, "GetOrganizationGrant", mock.Anything, mock.Anything)
		m.codec.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
	})

	t.Run("item from another organization is not found", func(t *testing.T) {
		uc, m := newVaultUseCase()
		item := testItem(uuid.Must(uuid.NewV7()), component.ID, "password", "ciphertext-1", "key-1")

		m.itemRepo.On("GetByID", ctx, item.ID).Return(item, nil)

		_, err := uc.GetItem(ctx, orgID, ownerID, item.ID)
		require.ErrorIs(t, err, vaultDomain.ErrItemNotFound)
	})
}

func TestVaultUseCaseUpdateItemValue(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	ownerID := uuid.Must(uuid.NewV7())
	vault := testVault(orgID, ownerID, "deploy-keys")
	component := testComponent(orgID, vault.ID, "postgres")

	t.Run("identical plaintext is a no-op", func(t *testing.T) {
		uc, m := newVaultUseCase()
		item := testItem(orgID, component.ID, "password", "ciphertext-1", "key-1")

		m.itemRepo.On("GetByID", ctx, item.ID).Return(item, nil)
		m.componentRepo.On("GetByID", ctx, component.ID).Return(component, nil)
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.expectActor(ctx, orgID, ownerID)
		m.codec.On("Open", "ciphertext-1", "key-1").Return("s3cr3t", nil)

		result, err := uc.UpdateItemValue(ctx, orgID, ownerID, item.ID, "s3cr3t")
		require.NoError(t, err)
		assert.Equal(t, "ciphertext-1", result.Value)
		assert.Equal(t, "key-1", result.EncryptionKey)
		m.codec.AssertNotCalled(t, "Seal", mock.Anything)
		m.itemRepo.AssertNotCalled(t, "UpdateValue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("different plaintext is re-sealed with a fresh key", func(t *testing.T) {
		uc, m := newVaultUseCase()
		item := testItem(orgID, component.ID, "password", "ciphertext-1", "key-1")

		m.itemRepo.On("GetByID", ctx, item.ID).Return(item, nil)
		m.componentRepo.On("GetByID", ctx, component.ID).Return(component, nil)
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.expectActor(ctx, orgID, ownerID)
		m.codec.On("Open", "ciphertext-1", "key-1").Return("s3cr3t", nil)
		m.codec.On("Seal", "n3w-s3cr3t").Return("ciphertext-2", "key-2", nil)
		m.itemRepo.On("UpdateValue", ctx, item.ID, "ciphertext-2", "key-2", ownerID).Return(nil)

		result, err := uc.UpdateItemValue(ctx, orgID, ownerID, item.ID, "n3w-s3cr3t")
		require.NoError(t, err)
		assert.Equal(t, "ciphertext-2", result.Value)
		assert.Equal(t, "key-2", result.EncryptionKey)
		assert.Equal(t, ownerID, result.UpdatedBy)
		m.itemRepo.AssertExpectations(t)
	})

	t.Run("read-only actor cannot update", func(t *testing.T) {
		uc, m := newVaultUseCase()
		bobID := uuid.Must(uuid.NewV7())
		item := testItem(orgID, component.ID, "password", "ciphertext-1", "key-1")
		readGrant := &vaultDomain.Grant{
			ID:      uuid.Must(uuid.NewV7()),
			VaultID: vault.ID,
			Level:   vaultDomain.GrantLevelOrganization,
			Scope:   vaultDomain.GrantScopeRead,
			Active:  true,
		}

		m.itemRepo.On("GetByID", ctx, item.ID).Return(item, nil)
		m.componentRepo.On("GetByID", ctx, component.ID).Return(component, nil)
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.expectActor(ctx, orgID, bobID)
		m.grantRepo.On("GetOrganizationGrant", ctx, vault.ID).Return(readGrant, nil)
		m.projectRepo.On("ListProjectIDsByEmployee", ctx, bobID).Return([]uuid.UUID(nil), nil)
		m.grantRepo.On("GetProjectGrant", ctx, vault.ID, []uuid.UUID(nil)).Return(nil, vaultDomain.ErrGrantNotFound)
		m.grantRepo.On("GetIndividualGrant", ctx, vault.ID, bobID).Return(nil, vaultDomain.ErrGrantNotFound)

		_, err := uc.UpdateItemValue(ctx, orgID, bobID, item.ID, "n3w-s3cr3t")
		require.ErrorIs(t, err, vaultDomain.ErrVaultAccessDenied)
	})
}

func TestVaultUseCaseListEmployeeVaults(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())

	t.Run("vaults are bucketed by access origin", func(t *testing.T) {
		uc, m := newVaultUseCase()
		alice := testEmployee(orgID, "alice")
		bobID := uuid.Must(uuid.NewV7())
		projectID := uuid.Must(uuid.NewV7())

		ownedVault := testVault(orgID, alice.ID, "alice-own")
		orgVault := testVault(orgID, bobID, "org-wide")
		projectVault := testVault(orgID, bobID, "project-shared")
		individualVault := testVault(orgID, bobID, "handpicked")

		m.employeeRepo.On("GetByID", ctx, alice.ID).Return(alice, nil)
		m.vaultRepo.On("ListByOwner", ctx, orgID, alice.ID).Return([]*vaultDomain.Vault{ownedVault}, nil)

		m.grantRepo.On("ListVaultIDsByOrganizationLevel", ctx, orgID).Return([]uuid.UUID{orgVault.ID}, nil)
		m.vaultRepo.On("GetByIDs", ctx, []uuid.UUID{orgVault.ID}).Return([]*vaultDomain.Vault{orgVault}, nil)

		m.projectRepo.On("ListProjectIDsByEmployee", ctx, alice.ID).Return([]uuid.UUID{projectID}, nil)
		m.grantRepo.On("ListVaultIDsByProjects", ctx, []uuid.UUID{projectID}).Return([]uuid.UUID{projectVault.ID}, nil)
		m.vaultRepo.On("GetByIDs", ctx, []uuid.UUID{projectVault.ID}).Return([]*vaultDomain.Vault{projectVault}, nil)

		m.grantRepo.On("ListVaultIDsByEmployee", ctx, alice.ID).Return([]uuid.UUID{individualVault.ID}, nil)
		m.vaultRepo.On("GetByIDs", ctx, []uuid.UUID{individualVault.ID}).Return([]*vaultDomain.Vault{individualVault}, nil)

		result, err := uc.ListEmployeeVaults(ctx, orgID, alice.ID)
		require.NoError(t, err)
		require.Len(t, result.Owned, 1)
		assert.Equal(t, ownedVault.ID, result.Owned[0].ID)
		require.Len(t, result.Organization, 1)
		assert.Equal(t, orgVault.ID, result.Organization[0].ID)
		require.Len(t, result.Project, 1)
		assert.Equal(t, projectVault.ID, result.Project[0].ID)
		require.Len(t, result.Individual, 1)
		assert.Equal(t, individualVault.ID, result.Individual[0].ID)
	})

	t.Run("owned vaults never leak into granted buckets", func(t *testing.T) {
		uc, m := newVaultUseCase()
		alice := testEmployee(orgID, "alice")

		// Alice's own vault also carries an organization-level grant.
		ownedVault := testVault(orgID, alice.ID, "alice-own")

		m.employeeRepo.On("GetByID", ctx, alice.ID).Return(alice, nil)
		m.vaultRepo.On("ListByOwner", ctx, orgID, alice.ID).Return([]*vaultDomain.Vault{ownedVault}, nil)
		m.grantRepo.On("ListVaultIDsByOrganizationLevel", ctx, orgID).Return([]uuid.UUID{ownedVault.ID}, nil)
		m.vaultRepo.On("GetByIDs", ctx, []uuid.UUID{ownedVault.ID}).Return([]*vaultDomain.Vault{ownedVault}, nil)
		m.projectRepo.On("ListProjectIDsByEmployee", ctx, alice.ID).Return([]uuid.UUID(nil), nil)
		m.grantRepo.On("ListVaultIDsByProjects", ctx, []uuid.UUID(nil)).Return([]uuid.UUID(nil), nil)
		m.vaultRepo.On("GetByIDs", ctx, []uuid.UUID(nil)).Return([]*vaultDomain.Vault{}, nil)
		m.grantRepo.On("ListVaultIDsByEmployee", ctx, alice.ID).Return([]uuid.UUID(nil), nil)

		result, err := uc.ListEmployeeVaults(ctx, orgID, alice.ID)
		require.NoError(t, err)
		require.Len(t, result.Owned, 1)
		assert.Empty(t, result.Organization)
		assert.Empty(t, result.Project)
		assert.Empty(t, result.Individual)
	})

	t.Run("employee from another organization", func(t *testing.T) {
		uc, m := newVaultUseCase()
		outsider := testEmployee(uuid.Must(uuid.NewV7()), "mallory")

		m.employeeRepo.On("GetByID", ctx, outsider.ID).Return(outsider, nil)

		_, err := uc.ListEmployeeVaults(ctx, orgID, outsider.ID)
		require.ErrorIs(t, err, directoryDomain.ErrEmployeeNotFound)
	})
}

func TestVaultUseCaseDeleteItem(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	ownerID := uuid.Must(uuid.NewV7())
	vault := testVault(orgID, ownerID, "deploy-keys")
	component := testComponent(orgID, vault.ID, "postgres")

	t.Run("owner deletes item", func(t *testing.T) {
		uc, m := newVaultUseCase()
		item := testItem(orgID, component.ID, "password", "ciphertext-1", "key-1")

		m.itemRepo.On("GetByID", ctx, item.ID).Return(item, nil)
		m.componentRepo.On("GetByID", ctx, component.ID).Return(component, nil)
		m.vaultRepo.On("GetByID", ctx, vault.ID).Return(vault, nil)
		m.expectActor(ctx, orgID, ownerID)
		m.itemRepo.On("Deactivate", ctx, item.ID, ownerID).Return(nil)

		err := uc.DeleteItem(ctx, orgID, ownerID, item.ID)
		require.NoError(t, err)
		m.itemRepo.AssertExpectations(t)
	})
}
