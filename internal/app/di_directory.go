package app

import (
	"fmt"
	"sync"

	directoryHTTP "github.com/allisson/credvault/internal/directory/http"
	directoryRepository "github.com/allisson/credvault/internal/directory/repository"
	directoryUseCase "github.com/allisson/credvault/internal/directory/usecase"
)

// directoryContainer holds the lazily initialized components of the directory context.
type directoryContainer struct {
	orgRepo      directoryUseCase.OrganizationRepository
	employeeRepo directoryUseCase.EmployeeRepository
	projectRepo  directoryUseCase.ProjectRepository
	useCase      directoryUseCase.DirectoryUseCase
	handler      *directoryHTTP.DirectoryHandler

	orgRepoInit      sync.Once
	employeeRepoInit sync.Once
	projectRepoInit  sync.Once
	useCaseInit      sync.Once
	handlerInit      sync.Once
}

// OrganizationRepository returns the organization repository instance.
func (c *Container) OrganizationRepository() (directoryUseCase.OrganizationRepository, error) {
	c.directory.orgRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["organizationRepo"] = fmt.Errorf("failed to get database for organization repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.directory.orgRepo = directoryRepository.NewMySQLOrganizationRepository(db)
		case "postgres":
			c.directory.orgRepo = directoryRepository.NewPostgreSQLOrganizationRepository(db)
		default:
			c.initErrors["organizationRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["organizationRepo"]; exists {
		return nil, storedErr
	}
	return c.directory.orgRepo, nil
}

// EmployeeRepository returns the employee repository instance.
func (c *Container) EmployeeRepository() (directoryUseCase.EmployeeRepository, error) {
	c.directory.employeeRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["employeeRepo"] = fmt.Errorf("failed to get database for employee repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.directory.employeeRepo = directoryRepository.NewMySQLEmployeeRepository(db)
		case "postgres":
			c.directory.employeeRepo = directoryRepository.NewPostgreSQLEmployeeRepository(db)
		default:
			c.initErrors["employeeRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["employeeRepo"]; exists {
		return nil, storedErr
	}
	return c.directory.employeeRepo, nil
}

// ProjectRepository returns the project repository instance.
func (c *Container) ProjectRepository() (directoryUseCase.ProjectRepository, error) {
	c.directory.projectRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["projectRepo"] = fmt.Errorf("failed to get database for project repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.directory.projectRepo = directoryRepository.NewMySQLProjectRepository(db)
		case "postgres":
			c.directory.projectRepo = directoryRepository.NewPostgreSQLProjectRepository(db)
		default:
			c.initErrors["projectRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["projectRepo"]; exists {
		return nil, storedErr
	}
	return c.directory.projectRepo, nil
}

// DirectoryUseCase returns the directory use case wrapped with business metrics.
func (c *Container) DirectoryUseCase() (directoryUseCase.DirectoryUseCase, error) {
	c.directory.useCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["directoryUseCase"] = fmt.Errorf("failed to get tx manager for directory use case: %w", err)
			return
		}

		orgRepo, err := c.OrganizationRepository()
		if err != nil {
			c.initErrors["directoryUseCase"] = fmt.Errorf("failed to get organization repository for directory use case: %w", err)
			return
		}

		employeeRepo, err := c.EmployeeRepository()
		if err != nil {
			c.initErrors["directoryUseCase"] = fmt.Errorf("failed to get employee repository for directory use case: %w", err)
			return
		}

		projectRepo, err := c.ProjectRepository()
		if err != nil {
			c.initErrors["directoryUseCase"] = fmt.Errorf("failed to get project repository for directory use case: %w", err)
			return
		}

		useCase, err := directoryUseCase.NewDirectoryUseCase(txManager, orgRepo, employeeRepo, projectRepo)
		if err != nil {
			c.initErrors["directoryUseCase"] = fmt.Errorf("failed to create directory use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["directoryUseCase"] = fmt.Errorf("failed to get business metrics for directory use case: %w", err)
			return
		}

		c.directory.useCase = directoryUseCase.NewDirectoryUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["directoryUseCase"]; exists {
		return nil, storedErr
	}
	return c.directory.useCase, nil
}

// DirectoryHandler returns the HTTP handler for the directory context.
func (c *Container) DirectoryHandler() (*directoryHTTP.DirectoryHandler, error) {
	c.directory.handlerInit.Do(func() {
		useCase, err := c.DirectoryUseCase()
		if err != nil {
			c.initErrors["directoryHandler"] = fmt.Errorf("failed to get directory use case for directory handler: %w", err)
			return
		}
		c.directory.handler = directoryHTTP.NewDirectoryHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["directoryHandler"]; exists {
		return nil, storedErr
	}
	return c.directory.handler, nil
}
