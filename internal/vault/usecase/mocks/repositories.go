// Package mocks provides mock implementations for testing vault use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// MockVaultRepository is a mock implementation of VaultRepository for testing.
type MockVaultRepository struct {
	mock.Mock
}

func (m *MockVaultRepository) Create(ctx context.Context, vault *vaultDomain.Vault) error {
	args := m.Called(ctx, vault)
	return args.Error(0)
}

func (m *MockVaultRepository) GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Vault, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Vault), args.Error(1)
}

func (m *MockVaultRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*vaultDomain.Vault, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Vault), args.Error(1)
}

func (m *MockVaultRepository) ListByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Vault, error) {
	args := m.Called(ctx, organizationID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Vault), args.Error(1)
}

func (m *MockVaultRepository) ListByOwner(
	ctx context.Context,
	organizationID, ownerID uuid.UUID,
) ([]*vaultDomain.Vault, error) {
	args := m.Called(ctx, organizationID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Vault), args.Error(1)
}

func (m *MockVaultRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*vaultDomain.Vault, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Vault), args.Error(1)
}

func (m *MockVaultRepository) Deactivate(ctx context.Context, vaultID, updatedBy uuid.UUID) error {
	args := m.Called(ctx, vaultID, updatedBy)
	return args.Error(0)
}

// MockComponentRepository is a mock implementation of ComponentRepository for testing.
type MockComponentRepository struct {
	mock.Mock
}

func (m *MockComponentRepository) Create(ctx context.Context, component *vaultDomain.Component) error {
	args := m.Called(ctx, component)
	return args.Error(0)
}

func (m *MockComponentRepository) GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Component, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Component), args.Error(1)
}

func (m *MockComponentRepository) ListByVault(
	ctx context.Context,
	vaultID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Component, error) {
	args := m.Called(ctx, vaultID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Component), args.Error(1)
}

func (m *MockComponentRepository) Deactivate(ctx context.Context, componentID, updatedBy uuid.UUID) error {
	args := m.Called(ctx, componentID, updatedBy)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of ItemRepository for testing.
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *vaultDomain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Item), args.Error(1)
}

func (m *MockItemRepository) GetByComponentAndKey(
	ctx context.Context,
	componentID uuid.UUID,
	key string,
) (*vaultDomain.Item, error) {
	args := m.Called(ctx, componentID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Item), args.Error(1)
}

func (m *MockItemRepository) ListByComponent(
	ctx context.Context,
	componentID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Item, error) {
	args := m.Called(ctx, componentID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Item), args.Error(1)
}

func (m *MockItemRepository) UpdateValue(
	ctx context.Context,
	itemID uuid.UUID,
	value, encryptionKey string,
	updatedBy uuid.UUID,
) error {
	args := m.Called(ctx, itemID, value, encryptionKey, updatedBy)
	return args.Error(0)
}

func (m *MockItemRepository) Deactivate(ctx context.Context, itemID, updatedBy uuid.UUID) error {
	args := m.Called(ctx, itemID, updatedBy)
	return args.Error(0)
}

// MockGrantRepository is a mock implementation of GrantRepository for testing.
type MockGrantRepository struct {
	mock.Mock
}

func (m *MockGrantRepository) Create(ctx context.Context, grant *vaultDomain.Grant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *MockGrantRepository) GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Grant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Grant), args.Error(1)
}

func (m *MockGrantRepository) GetOrganizationGrant(
	ctx context.Context,
	vaultID uuid.UUID,
) (*vaultDomain.Grant, error) {
	args := m.Called(ctx, vaultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Grant), args.Error(1)
}

func (m *MockGrantRepository) GetProjectGrant(
	ctx context.Context,
	vaultID uuid.UUID,
	projectIDs []uuid.UUID,
) (*vaultDomain.Grant, error) {
	args := m.Called(ctx, vaultID, projectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Grant), args.Error(1)
}

func (m *MockGrantRepository) GetIndividualGrant(
	ctx context.Context,
	vaultID, employeeID uuid.UUID,
) (*vaultDomain.Grant, error) {
	args := m.Called(ctx, vaultID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Grant), args.Error(1)
}

func (m *MockGrantRepository) ListActiveByVault(
	ctx context.Context,
	vaultID uuid.UUID,
) ([]*vaultDomain.Grant, error) {
	args := m.Called(ctx, vaultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Grant), args.Error(1)
}

func (m *MockGrantRepository) Revoke(ctx context.Context, grantID, updatedBy uuid.UUID) error {
	args := m.Called(ctx, grantID, updatedBy)
	return args.Error(0)
}

func (m *MockGrantRepository) RevokeAllForVault(
	ctx context.Context,
	vaultID, updatedBy uuid.UUID,
) ([]*vaultDomain.Grant, error) {
	args := m.Called(ctx, vaultID, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Grant), args.Error(1)
}

func (m *MockGrantRepository) ListVaultIDsByOrganizationLevel(
	ctx context.Context,
	organizationID uuid.UUID,
) ([]uuid.UUID, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockGrantRepository) ListVaultIDsByProjects(
	ctx context.Context,
	projectIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	args := m.Called(ctx, projectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockGrantRepository) ListVaultIDsByEmployee(
	ctx context.Context,
	employeeID uuid.UUID,
) ([]uuid.UUID, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockEmployeeReader is a mock implementation of EmployeeReader for testing.
type MockEmployeeReader struct {
	mock.Mock
}

func (m *MockEmployeeReader) GetByID(ctx context.Context, id uuid.UUID) (*directoryDomain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Employee), args.Error(1)
}

// MockProjectReader is a mock implementation of ProjectReader for testing.
type MockProjectReader struct {
	mock.Mock
}

func (m *MockProjectReader) GetByID(ctx context.Context, id uuid.UUID) (*directoryDomain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Project), args.Error(1)
}

func (m *MockProjectReader) ListProjectIDsByEmployee(
	ctx context.Context,
	employeeID uuid.UUID,
) ([]uuid.UUID, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockSecretCodec is a mock implementation of SecretCodec for testing.
type MockSecretCodec struct {
	mock.Mock
}

func (m *MockSecretCodec) Seal(plaintext string) (string, string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockSecretCodec) Open(ciphertext, key string) (string, error) {
	args := m.Called(ciphertext, key)
	return args.String(0), args.Error(1)
}
