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
	"github.com/allisson/credvault/internal/directory/usecase"
	usecaseMocks "github.com/allisson/credvault/internal/directory/usecase/mocks"
	apperrors "github.com/allisson/credvault/internal/errors"
)

type directoryUseCaseMocks struct {
	txManager    *databaseMocks.MockTxManager
	orgRepo      *usecaseMocks.MockOrganizationRepository
	employeeRepo *usecaseMocks.MockEmployeeRepository
	projectRepo  *usecaseMocks.MockProjectRepository
}

func newDirectoryUseCase(t *testing.T) (usecase.DirectoryUseCase, *directoryUseCaseMocks) {
	t.Helper()

	m := &directoryUseCaseMocks{
		txManager:    &databaseMocks.MockTxManager{},
		orgRepo:      &usecaseMocks.MockOrganizationRepository{},
		employeeRepo: &usecaseMocks.MockEmployeeRepository{},
		projectRepo:  &usecaseMocks.MockProjectRepository{},
	}
	uc, err := usecase.NewDirectoryUseCase(m.txManager, m.orgRepo, m.employeeRepo, m.projectRepo)
	require.NoError(t, err)
	return uc, m
}

func (m *directoryUseCaseMocks) expectTx(ctx context.Context) {
	m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
}

func TestDirectoryUseCaseRegisterOrganization(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		uc, m := newDirectoryUseCase(t)
		m.expectTx(ctx)
		m.orgRepo.On("GetByEmail", ctx, "admin@acme.com").Return(nil, directoryDomain.ErrOrganizationNotFound)
		m.orgRepo.On("Create", ctx, mock.AnythingOfType("*domain.Organization")).Return(nil)

		org, err := uc.RegisterOrganization(ctx, usecase.RegisterOrganizationInput{
			Name:     "Acme Corp",
			Email:    "Admin@Acme.com",
			Password: "Str0ng!Password",
		})

		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", org.Name)
		assert.Equal(t, "admin@acme.com", org.Email)
		assert.NotEmpty(t, org.PasswordHash)
		assert.NotEqual(t, "Str0ng!Password", org.PasswordHash)
		assert.True(t, org.Active)
		m.orgRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		uc, m := newDirectoryUseCase(t)
		existing := &directoryDomain.Organization{ID: uuid.Must(uuid.NewV7()), Email: "admin@acme.com"}

		m.expectTx(ctx)
		m.orgRepo.On("GetByEmail", ctx, "admin@acme.com").Return(existing, nil)

		_, err := uc.RegisterOrganization(ctx, usecase.RegisterOrganizationInput{
			Name:     "Acme Corp",
			Email:    "admin@acme.com",
			Password: "Str0ng!Password",
		})

		require.ErrorIs(t, err, directoryDomain.ErrOrganizationAlreadyExists)
		m.orgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		uc, _ := newDirectoryUseCase(t)

		_, err := uc.RegisterOrganization(ctx, usecase.RegisterOrganizationInput{
			Name:     "Acme Corp",
			Email:    "admin@acme.com",
			Password: "password",
		})

		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		uc, _ := newDirectoryUseCase(t)

		_, err := uc.RegisterOrganization(ctx, usecase.RegisterOrganizationInput{
			Name:     "Acme Corp",
			Email:    "not-an-email",
			Password: "Str0ng!Password",
		})

		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestDirectoryUseCaseCreateEmployee(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	org := &directoryDomain.Organization{ID: orgID, Name: "Acme Corp", Active: true}

	t.Run("success", func(t *testing.T) {
		uc, m := newDirectoryUseCase(t)
		m.orgRepo.On("GetByID", ctx, orgID).Return(org, nil)
		m.expectTx(ctx)
		m.employeeRepo.On("GetByEmail", ctx, orgID, "alice@acme.com").
			Return(nil, directoryDomain.ErrEmployeeNotFound)
		m.employeeRepo.On("Create", ctx, mock.AnythingOfType("*domain.Employee")).Return(nil)

		employee, err := uc.CreateEmployee(ctx, usecase.CreateEmployeeInput{
			OrganizationID: orgID,
			Name:           "Alice",
			Email:          "alice@acme.com",
			Password:       "Str0ng!Password",
		})

		require.NoError(t, err)
		assert.Equal(t, orgID, employee.OrganizationID)
		assert.Equal(t, "alice@acme.com", employee.Email)
		assert.NotEmpty(t, employee.PasswordHash)
		m.employeeRepo.AssertExpectations(t)
	})

	t.Run("duplicate email inside the organization", func(t *testing.T) {
		uc, m := newDirectoryUseCase(t)
		existing := &directoryDomain.Employee{ID: uuid.Must(uuid.NewV7()), OrganizationID: orgID}

		m.orgRepo.On("GetByID", ctx, orgID).Return(org, nil)
		m.expectTx(ctx)
		m.employeeRepo.On("GetByEmail", ctx, orgID, "alice@acme.com").Return(existing, nil)

		_, err := uc.CreateEmployee(ctx, usecase.CreateEmployeeInput{
			OrganizationID: orgID,
			Name:           "Alice",
			Email:          "alice@acme.com",
			Password:       "Str0ng!Password",
		})

		require.ErrorIs(t, err, directoryDomain.ErrEmployeeAlreadyExists)
	})

	t.Run("unknown organization", func(t *testing.T) {
		uc, m := newDirectoryUseCase(t)
		m.orgRepo.On("GetByID", ctx, orgID).Return(nil, directoryDomain.ErrOrganizationNotFound)

		_, err := uc.CreateEmployee(ctx, usecase.CreateEmployeeInput{
			OrganizationID: orgID,
			Name:           "Alice",
			Email:          "alice@acme.com",
			Password:       "Str0ng!Password",
		})

		require.ErrorIs(t, err, directoryDomain.ErrOrganizationNotFound)
	})
}

func TestDirectoryUseCaseGetEmployee(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())

	t.Run("success", func(t *testing.T) {
		uc, m := newDirectoryUseCase(t)
		employee := &directoryDomain.Employee{ID: uuid.Must(uuid.NewV7()), OrganizationID: orgID}
		m.employeeRepo.On("GetByID", ctx, employee.ID).Return(employee, nil)

		result, err := uc.GetEmployee(ctx, orgID, employee.ID)
		require.NoError(t, err)
		assert.Equal(t, employee, result)
	})

	t.Run("employee from another organization is not found", func(t *testing.T) {
		uc, m := newDirectoryUseCase(t)
		employee := &directoryDomain.Employee{
			ID:             uuid.Must(uuid.NewV7()),
			OrganizationID: uuid.Must(uuid.NewV7()),
		}
		m.employeeRepo.On("GetByID", ctx, employee.ID).Return(employee, nil)

		_, err := uc.GetEmployee(ctx, orgID, employee.ID)
		require.ErrorIs(t, err, directoryDomain.ErrEmployeeNotFound)
	})
}

func TestDirectoryUseCaseCreateProject(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	org := &directoryDomain.Organization{ID: orgID, Name: "Acme Corp", Active: true}

	t.Run("success", func(t *testing.T) {
		uc, m := newDirectoryUseCase(t)
		m.orgRepo.On("GetByID", ctx, orgID).Return(org, nil)
		m.expectTx(ctx)
		m.projectRepo.On("GetByName", ctx, orgID, "backend").Return(nil, directoryDomain.ErrProjectNotFound)
		m.projectRepo.On("Create", ctx, mock.AnythingOfType("*domain.Project")).Return(nil)

		project, err := uc.CreateProject(ctx, usecase.CreateProjectInput{
			OrganizationID: orgID,
			Name:           "backend",
			Description:    "backend services",
		})

		require.NoError(t, err)
		assert.Equal(t, orgID, project.OrganizationID)
		assert.Equal(t, "backend", project.Name)
		assert.True(t, project.Active)
		m.projectRepo.AssertExpectations(t)
	})

	t.Run("duplicate name inside the organization", func(t *testing.T) {
		uc, m := newDirectoryUseCase(t)
		existing := &directoryDomain.Project{ID: uuid.Must(uuid.NewV7()), OrganizationID: orgID, Name: "backend"}

		m.orgRepo.On("GetByID", ctx, orgID).Return(org, nil)
		m.expectTx(ctx)
		m.projectRepo.On("GetByName", ctx, orgID, "backend").Return(existing, nil)

		_, err := uc.CreateProject(ctx, usecase.CreateProjectInput{
			OrganizationID: orgID,
			Name:           "backend",
		})

		require.ErrorIs(t, err, directoryDomain.ErrProjectAlreadyExists)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		uc, _ := newDirectoryUseCase(t)

		_, err := uc.CreateProject(ctx, usecase.CreateProjectInput{
			OrganizationID: orgID,
			Name:           "   ",
		})

		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestDirectoryUseCaseAddProjectMember(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	project := &directoryDomain.Project{ID: uuid.Must(uuid.NewV7()), OrganizationID: orgID, Name: "backend", Active: true}
	employee := &directoryDomain.Employee{ID: uuid.Must(uuid.NewV7()), OrganizationID: orgID, Active: true}

	t.Run("success", func(t *testing.T) {
		uc, m := newDirectoryUseCase(t)
		m.projectRepo.On("GetByID", ctx, project.ID).Return(project, nil)
		m.employeeRepo.On("GetByID", ctx, employee.ID).Return(employee, nil)
		m.expectTx(ctx)
		m.projectRepo.On("IsMember", ctx, project.ID, employee.ID).Return(false, nil)
		m.projectRepo.On("AddMember", ctx, project.ID, employee.ID).Return(nil)

		err := uc.AddProjectMember(ctx, orgID, project.ID, employee.ID)
		require.NoError(t, err)
		m.projectRepo.AssertExpectations(t)
	})

	t.Run("already a member", func(t *testing.T) {
		uc, m := newDirectoryUseCase(t)
		m.projectRepo.On("GetByID", ctx, project.ID).Return(project, nil)
		m.employeeRepo.On("GetByID", ctx, employee.ID).Return(employee, nil)
		m.expectTx(ctx)
		m.projectRepo.On("IsMember", ctx, project.ID, employee.ID).Return(true, nil)

		err := uc.AddProjectMember(ctx, orgID, project.ID, employee.ID)
		require.ErrorIs(t, err, directoryDomain.ErrProjectMemberAlreadyExists)
		m.projectRepo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("project from another organization is not found", func(t *testing.T) {
		uc, m := newDirectoryUseCase(t)
		m.projectRepo.On("GetByID", ctx, project.ID).Return(project, nil)

		err := uc.AddProjectMember(ctx, uuid.Must(uuid.NewV7()), project.ID, employee.ID)
		require.ErrorIs(t, err, directoryDomain.ErrProjectNotFound)
	})

	t.Run("employee from another organization is not found", func(t *testing.T) {
		uc, m := newDirectoryUseCase(t)
		outsider := &directoryDomain.Employee{
			ID:             uuid.Must(uuid.NewV7()),
			OrganizationID: uuid.Must(uuid.NewV7()),
			Active:         true,
		}
		m.projectRepo.On("GetByID", ctx, project.ID).Return(project, nil)
		m.employeeRepo.On("GetByID", ctx, outsider.ID).Return(outsider, nil)

		err := uc.AddProjectMember(ctx, orgID, project.ID, outsider.ID)
		require.ErrorIs(t, err, directoryDomain.ErrEmployeeNotFound)
	})
}
