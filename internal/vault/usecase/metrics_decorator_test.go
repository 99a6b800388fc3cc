package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
	"github.com/allisson/credvault/internal/vault/usecase"
	usecaseMocks "github.com/allisson/credvault/internal/vault/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics to avoid dependency issues.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestVaultUseCaseWithMetrics(t *testing.T) {
	mockNext := &usecaseMocks.MockVaultUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewVaultUseCaseWithMetrics(mockNext, mockMetrics)

	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	actorID := uuid.Must(uuid.NewV7())

	t.Run("CreateVault success", func(t *testing.T) {
		vault := &vaultDomain.Vault{ID: uuid.Must(uuid.NewV7())}

		mockNext.On("CreateVault", ctx, orgID, actorID, "deploy-keys", "").Return(vault, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "vault", "vault_create", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "vault", "vault_create", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.CreateVault(ctx, orgID, actorID, "deploy-keys", "")
		assert.NoError(t, err)
		assert.Equal(t, vault, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("GetItem error", func(t *testing.T) {
		itemID := uuid.Must(uuid.NewV7())
		expectedErr := errors.New("error")

		mockNext.On("GetItem", ctx, orgID, actorID, itemID).Return(nil, expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "vault", "item_read", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "vault", "item_read", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.GetItem(ctx, orgID, actorID, itemID)
		assert.Error(t, err)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("DeleteVault success", func(t *testing.T) {
		vaultID := uuid.Must(uuid.NewV7())

		mockNext.On("DeleteVault", ctx, orgID, actorID, vaultID).Return(nil).Once()
		mockMetrics.On("RecordOperation", ctx, "vault", "vault_delete", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "vault", "vault_delete", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		err := uc.DeleteVault(ctx, orgID, actorID, vaultID)
		assert.NoError(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("ListEmployeeVaults success", func(t *testing.T) {
		employeeID := uuid.Must(uuid.NewV7())
		output := &vaultDomain.EmployeeVaults{}

		mockNext.On("ListEmployeeVaults", ctx, orgID, employeeID).Return(output, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "vault", "employee_vaults_list", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "vault", "employee_vaults_list", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.ListEmployeeVaults(ctx, orgID, employeeID)
		assert.NoError(t, err)
		assert.Equal(t, output, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}

func TestGrantUseCaseWithMetrics(t *testing.T) {
	mockNext := &usecaseMocks.MockGrantUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewGrantUseCaseWithMetrics(mockNext, mockMetrics)

	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	actorID := uuid.Must(uuid.NewV7())
	vaultID := uuid.Must(uuid.NewV7())

	t.Run("CreateGrant success", func(t *testing.T) {
		input := &vaultDomain.CreateGrantInput{
			OrganizationID: orgID,
			VaultID:        vaultID,
			ActorID:        actorID,
			Level:          vaultDomain.GrantLevelOrganization,
			Scope:          vaultDomain.GrantScopeRead,
		}
		output := &vaultDomain.Grant{ID: uuid.Must(uuid.NewV7())}

		mockNext.On("CreateGrant", ctx, input).Return(output, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "vault", "grant_install", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "vault", "grant_install", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.CreateGrant(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, output, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("RevokeAllGrants error", func(t *testing.T) {
		expectedErr := errors.New("error")

		mockNext.On("RevokeAllGrants", ctx, orgID, actorID, vaultID).Return(nil, expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "vault", "grant_revoke_all", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "vault", "grant_revoke_all", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.RevokeAllGrants(ctx, orgID, actorID, vaultID)
		assert.Error(t, err)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("ListGrants success", func(t *testing.T) {
		output := []*vaultDomain.Grant{{ID: uuid.Must(uuid.NewV7())}}

		mockNext.On("ListGrants", ctx, orgID, actorID, vaultID).Return(output, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "vault", "grant_list", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "vault", "grant_list", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.ListGrants(ctx, orgID, actorID, vaultID)
		assert.NoError(t, err)
		assert.Equal(t, output, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}
