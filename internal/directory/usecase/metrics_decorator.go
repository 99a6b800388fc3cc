package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
	"github.com/allisson/credvault/internal/metrics"
)

const metricsDomain = "directory"

// directoryUseCaseWithMetrics decorates DirectoryUseCase with metrics instrumentation.
type directoryUseCaseWithMetrics struct {
	next    DirectoryUseCase
	metrics metrics.BusinessMetrics
}

// NewDirectoryUseCaseWithMetrics wraps a DirectoryUseCase with metrics recording.
func NewDirectoryUseCaseWithMetrics(useCase DirectoryUseCase, m metrics.BusinessMetrics) DirectoryUseCase {
	return &directoryUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration histogram for one call.
func (d *directoryUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	d.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	d.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (d *directoryUseCaseWithMetrics) RegisterOrganization(
	ctx context.Context,
	input RegisterOrganizationInput,
) (*directoryDomain.Organization, error) {
	start := time.Now()
	org, err := d.next.RegisterOrganization(ctx, input)
	d.record(ctx, "organization_register", start, err)
	return org, err
}

func (d *directoryUseCaseWithMetrics) GetOrganization(
	ctx context.Context,
	id uuid.UUID,
) (*directoryDomain.Organization, error) {
	start := time.Now()
	org, err := d.next.GetOrganization(ctx, id)
	d.record(ctx, "organization_get", start, err)
	return org, err
}

func (d *directoryUseCaseWithMetrics) CreateEmployee(
	ctx context.Context,
	input CreateEmployeeInput,
) (*directoryDomain.Employee, error) {
	start := time.Now()
	employee, err := d.next.CreateEmployee(ctx, input)
	d.record(ctx, "employee_create", start, err)
	return employee, err
}

func (d *directoryUseCaseWithMetrics) GetEmployee(
	ctx context.Context,
	organizationID, employeeID uuid.UUID,
) (*directoryDomain.Employee, error) {
	start := time.Now()
	employee, err := d.next.GetEmployee(ctx, organizationID, employeeID)
	d.record(ctx, "employee_get", start, err)
	return employee, err
}

func (d *directoryUseCaseWithMetrics) ListEmployees(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*directoryDomain.Employee, error) {
	start := time.Now()
	employees, err := d.next.ListEmployees(ctx, organizationID, offset, limit)
	d.record(ctx, "employee_list", start, err)
	return employees, err
}

func (d *directoryUseCaseWithMetrics) CreateProject(
	ctx context.Context,
	input CreateProjectInput,
) (*directoryDomain.Project, error) {
	start := time.Now()
	project, err := d.next.CreateProject(ctx, input)
	d.record(ctx, "project_create", start, err)
	return project, err
}

func (d *directoryUseCaseWithMetrics) ListProjects(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*directoryDomain.Project, error) {
	start := time.Now()
	projects, err := d.next.ListProjects(ctx, organizationID, offset, limit)
	d.record(ctx, "project_list", start, err)
	return projects, err
}

func (d *directoryUseCaseWithMetrics) AddProjectMember(
	ctx context.Context,
	organizationID, projectID, employeeID uuid.UUID,
) error {
	start := time.Now()
	err := d.next.AddProjectMember(ctx, organizationID, projectID, employeeID)
	d.record(ctx, "project_member_add", start, err)
	return err
}
