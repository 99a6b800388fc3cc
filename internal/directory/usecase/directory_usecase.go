package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/credvault/internal/database"
	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
	appValidation "github.com/allisson/credvault/internal/validation"
)

// directoryUseCase implements the DirectoryUseCase interface.
type directoryUseCase struct {
	txManager      database.TxManager
	orgRepo        OrganizationRepository
	employeeRepo   EmployeeRepository
	projectRepo    ProjectRepository
	passwordHasher *pwdhash.PasswordHasher
}

// NewDirectoryUseCase creates a new directory use case instance.
func NewDirectoryUseCase(
	txManager database.TxManager,
	orgRepo OrganizationRepository,
	employeeRepo EmployeeRepository,
	projectRepo ProjectRepository,
) (DirectoryUseCase, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &directoryUseCase{
		txManager:      txManager,
		orgRepo:        orgRepo,
		employeeRepo:   employeeRepo,
		projectRepo:    projectRepo,
		passwordHasher: hasher,
	}, nil
}

func validateRegisterOrganizationInput(input RegisterOrganizationInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// RegisterOrganization creates a new organization with a hashed credential.
func (d *directoryUseCase) RegisterOrganization(
	ctx context.Context,
	input RegisterOrganizationInput,
) (*directoryDomain.Organization, error) {
	if err := validateRegisterOrganizationInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := d.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	org := &directoryDomain.Organization{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(strings.ToLower(input.Email)),
		PasswordHash: hashedPassword,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		_, err := d.orgRepo.GetByEmail(txCtx, org.Email)
		if err == nil {
			return directoryDomain.ErrOrganizationAlreadyExists
		}
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return d.orgRepo.Create(txCtx, org)
	})
	if err != nil {
		return nil, err
	}

	return org, nil
}

// GetOrganization retrieves an active organization by its ID.
func (d *directoryUseCase) GetOrganization(
	ctx context.Context,
	id uuid.UUID,
) (*directoryDomain.Organization, error) {
	return d.orgRepo.GetByID(ctx, id)
}

func validateCreateEmployeeInput(input CreateEmployeeInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateEmployee creates an employee inside an organization. The email must be
// unique among the organization's active employees.
func (d *directoryUseCase) CreateEmployee(
	ctx context.Context,
	input CreateEmployeeInput,
) (*directoryDomain.Employee, error) {
	if err := validateCreateEmployeeInput(input); err != nil {
		return nil, err
	}

	if _, err := d.orgRepo.GetByID(ctx, input.OrganizationID); err != nil {
		return nil, err
	}

	hashedPassword, err := d.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	employee := &directoryDomain.Employee{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: input.OrganizationID,
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.TrimSpace(strings.ToLower(input.Email)),
		PasswordHash:   hashedPassword,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		_, err := d.employeeRepo.GetByEmail(txCtx, employee.OrganizationID, employee.Email)
		if err == nil {
			return directoryDomain.ErrEmployeeAlreadyExists
		}
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return d.employeeRepo.Create(txCtx, employee)
	})
	if err != nil {
		return nil, err
	}

	return employee, nil
}

// GetEmployee retrieves an employee scoped to an organization.
func (d *directoryUseCase) GetEmployee(
	ctx context.Context,
	organizationID, employeeID uuid.UUID,
) (*directoryDomain.Employee, error) {
	employee, err := d.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.OrganizationID != organizationID {
		return nil, directoryDomain.ErrEmployeeNotFound
	}
	return employee, nil
}

// ListEmployees lists an organization's active employees with pagination.
func (d *directoryUseCase) ListEmployees(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*directoryDomain.Employee, error) {
	return d.employeeRepo.ListByOrganization(ctx, organizationID, offset, limit)
}

func validateCreateProjectInput(input CreateProjectInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.When(input.Email != "", appValidation.Email),
			validation.Length(0, 255).Error("email must be at most 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateProject creates a project inside an organization. The name must be
// unique among the organization's active projects.
func (d *directoryUseCase) CreateProject(
	ctx context.Context,
	input CreateProjectInput,
) (*directoryDomain.Project, error) {
	if err := validateCreateProjectInput(input); err != nil {
		return nil, err
	}

	if _, err := d.orgRepo.GetByID(ctx, input.OrganizationID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &directoryDomain.Project{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: input.OrganizationID,
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.TrimSpace(strings.ToLower(input.Email)),
		Description:    input.Description,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		_, err := d.projectRepo.GetByName(txCtx, project.OrganizationID, project.Name)
		if err == nil {
			return directoryDomain.ErrProjectAlreadyExists
		}
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return d.projectRepo.Create(txCtx, project)
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// ListProjects lists an organization's active projects with pagination.
func (d *directoryUseCase) ListProjects(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*directoryDomain.Project, error) {
	return d.projectRepo.ListByOrganization(ctx, organizationID, offset, limit)
}

// AddProjectMember adds an employee of the same organization to a project.
func (d *directoryUseCase) AddProjectMember(
	ctx context.Context,
	organizationID, projectID, employeeID uuid.UUID,
) error {
	project, err := d.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OrganizationID != organizationID {
		return directoryDomain.ErrProjectNotFound
	}

	employee, err := d.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if employee.OrganizationID != organizationID {
		return directoryDomain.ErrEmployeeNotFound
	}

	return d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		isMember, err := d.projectRepo.IsMember(txCtx, project.ID, employee.ID)
		if err != nil {
			return err
		}
		if isMember {
			return directoryDomain.ErrProjectMemberAlreadyExists
		}
		return d.projectRepo.AddMember(txCtx, project.ID, employee.ID)
	})
}
