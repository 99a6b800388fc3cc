// Package mocks provides mock implementations for testing directory use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
)

// MockOrganizationRepository is a mock implementation of OrganizationRepository for testing.
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *directoryDomain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*directoryDomain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*directoryDomain.Organization, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Organization), args.Error(1)
}

// MockEmployeeRepository is a mock implementation of EmployeeRepository for testing.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *directoryDomain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*directoryDomain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByEmail(
	ctx context.Context,
	organizationID uuid.UUID,
	email string,
) (*directoryDomain.Employee, error) {
	args := m.Called(ctx, organizationID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListByOrganization(
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

// MockProjectRepository is a mock implementation of ProjectRepository for testing.
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *directoryDomain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*directoryDomain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Project), args.Error(1)
}

func (m *MockProjectRepository) GetByName(
	ctx context.Context,
	organizationID uuid.UUID,
	name string,
) (*directoryDomain.Project, error) {
	args := m.Called(ctx, organizationID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByOrganization(
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

func (m *MockProjectRepository) AddMember(ctx context.Context, projectID, employeeID uuid.UUID) error {
	args := m.Called(ctx, projectID, employeeID)
	return args.Error(0)
}

func (m *MockProjectRepository) IsMember(
	ctx context.Context,
	projectID, employeeID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, projectID, employeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepository) ListProjectIDsByEmployee(
	ctx context.Context,
	employeeID uuid.UUID,
) ([]uuid.UUID, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}
