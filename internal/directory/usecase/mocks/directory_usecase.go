package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
	"github.com/allisson/credvault/internal/directory/usecase"
)

// MockDirectoryUseCase is a mock implementation of DirectoryUseCase for testing.
type MockDirectoryUseCase struct {
	mock.Mock
}

func (m *MockDirectoryUseCase) RegisterOrganization(
	ctx context.Context,
	input usecase.RegisterOrganizationInput,
) (*directoryDomain.Organization, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Organization), args.Error(1)
}

func (m *MockDirectoryUseCase) GetOrganization(
	ctx context.Context,
	id uuid.UUID,
) (*directoryDomain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Organization), args.Error(1)
}

func (m *MockDirectoryUseCase) CreateEmployee(
	ctx context.Context,
	input usecase.CreateEmployeeInput,
) (*directoryDomain.Employee, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Employee), args.Error(1)
}

func (m *MockDirectoryUseCase) GetEmployee(
	ctx context.Context,
	organizationID, employeeID uuid.UUID,
) (*directoryDomain.Employee, error) {
	args := m.Called(ctx, organizationID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Employee), args.Error(1)
}

func (m *MockDirectoryUseCase) ListEmployees(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*directoryDomain.Employee, error) {
	args := m.Called(ctx, organizationID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*directoryDomain.Employee), args.Error(1)
}

func (m *MockDirectoryUseCase) CreateProject(
	ctx context.Context,
	input usecase.CreateProjectInput,
) (*directoryDomain.Project, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Project), args.Error(1)
}

func (m *MockDirectoryUseCase) ListProjects(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*directoryDomain.Project, error) {
	args := m.Called(ctx, organizationID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*directoryDomain.Project), args.Error(1)
}

func (m *MockDirectoryUseCase) AddProjectMember(
	ctx context.Context,
	organizationID, projectID, employeeID uuid.UUID,
) error {
	args := m.Called(ctx, organizationID, projectID, employeeID)
	return args.Error(0)
}
