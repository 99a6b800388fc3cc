package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// MockVaultUseCase is a mock implementation of VaultUseCase for testing.
type MockVaultUseCase struct {
	mock.Mock
}

func (m *MockVaultUseCase) CreateVault(
	ctx context.Context,
	organizationID, actorID uuid.UUID,
	name, description string,
) (*vaultDomain.Vault, error) {
	args := m.Called(ctx, organizationID, actorID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Vault), args.Error(1)
}

func (m *MockVaultUseCase) GetVault(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
) (*vaultDomain.Vault, error) {
	args := m.Called(ctx, organizationID, actorID, vaultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Vault), args.Error(1)
}

func (m *MockVaultUseCase) ListVaults(
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

func (m *MockVaultUseCase) DeleteVault(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
) error {
	args := m.Called(ctx, organizationID, actorID, vaultID)
	return args.Error(0)
}

func (m *MockVaultUseCase) CreateComponent(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
	name, description string,
) (*vaultDomain.Component, error) {
	args := m.Called(ctx, organizationID, actorID, vaultID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Component), args.Error(1)
}

func (m *MockVaultUseCase) ListComponents(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Component, error) {
	args := m.Called(ctx, organizationID, actorID, vaultID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Component), args.Error(1)
}

func (m *MockVaultUseCase) DeleteComponent(
	ctx context.Context,
	organizationID, actorID, componentID uuid.UUID,
) error {
	args := m.Called(ctx, organizationID, actorID, componentID)
	return args.Error(0)
}

func (m *MockVaultUseCase) CreateItem(
	ctx context.Context,
	organizationID, actorID, componentID uuid.UUID,
	key, plaintext string,
) (*vaultDomain.Item, error) {
	args := m.Called(ctx, organizationID, actorID, componentID, key, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Item), args.Error(1)
}

func (m *MockVaultUseCase) GetItem(
	ctx context.Context,
	organizationID, actorID, itemID uuid.UUID,
) (*vaultDomain.Item, error) {
	args := m.Called(ctx, organizationID, actorID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Item), args.Error(1)
}

func (m *MockVaultUseCase) ListItems(
	ctx context.Context,
	organizationID, actorID, componentID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Item, error) {
	args := m.Called(ctx, organizationID, actorID, componentID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Item), args.Error(1)
}

func (m *MockVaultUseCase) UpdateItemValue(
	ctx context.Context,
	organizationID, actorID, itemID uuid.UUID,
	newPlaintext string,
) (*vaultDomain.Item, error) {
	args := m.Called(ctx, organizationID, actorID, itemID, newPlaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Item), args.Error(1)
}

func (m *MockVaultUseCase) DeleteItem(
	ctx context.Context,
	organizationID, actorID, itemID uuid.UUID,
) error {
	args := m.Called(ctx, organizationID, actorID, itemID)
	return args.Error(0)
}

func (m *MockVaultUseCase) ListEmployeeVaults(
	ctx context.Context,
	organizationID, employeeID uuid.UUID,
) (*vaultDomain.EmployeeVaults, error) {
	args := m.Called(ctx, organizationID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.EmployeeVaults), args.Error(1)
}

// MockGrantUseCase is a mock implementation of GrantUseCase for testing.
type MockGrantUseCase struct {
	mock.Mock
}

func (m *MockGrantUseCase) CreateGrant(
	ctx context.Context,
	input *vaultDomain.CreateGrantInput,
) (*vaultDomain.Grant, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Grant), args.Error(1)
}

func (m *MockGrantUseCase) RevokeAllGrants(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
) ([]*vaultDomain.Grant, error) {
	args := m.Called(ctx, organizationID, actorID, vaultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Grant), args.Error(1)
}

func (m *MockGrantUseCase) ListGrants(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
) ([]*vaultDomain.Grant, error) {
	args := m.Called(ctx, organizationID, actorID, vaultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.Grant), args.Error(1)
}
