package app

import (
	"fmt"
	"sync"

	vaultHTTP "github.com/allisson/credvault/internal/vault/http"
	vaultRepository "github.com/allisson/credvault/internal/vault/repository"
	vaultService "github.com/allisson/credvault/internal/vault/service"
	vaultUseCase "github.com/allisson/credvault/internal/vault/usecase"
)

// vaultContainer holds the lazily initialized components of the vault context.
// The directory repositories double as the vault context's employee and
// project readers.
type vaultContainer struct {
	vaultRepo     vaultUseCase.VaultRepository
	componentRepo vaultUseCase.ComponentRepository
	itemRepo      vaultUseCase.ItemRepository
	grantRepo     vaultUseCase.GrantRepository
	codec         vaultUseCase.SecretCodec
	useCase       vaultUseCase.VaultUseCase
	grantUseCase  vaultUseCase.GrantUseCase
	handler       *vaultHTTP.VaultHandler

	vaultRepoInit     sync.Once
	componentRepoInit sync.Once
	itemRepoInit      sync.Once
	grantRepoInit     sync.Once
	codecInit         sync.Once
	useCaseInit       sync.Once
	grantUseCaseInit  sync.Once
	handlerInit       sync.Once
}

// VaultRepository returns the vault repository instance.
func (c *Container) VaultRepository() (vaultUseCase.VaultRepository, error) {
	c.vault.vaultRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["vaultRepo"] = fmt.Errorf("failed to get database for vault repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.vault.vaultRepo = vaultRepository.NewMySQLVaultRepository(db)
		case "postgres":
			c.vault.vaultRepo = vaultRepository.NewPostgreSQLVaultRepository(db)
		default:
			c.initErrors["vaultRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["vaultRepo"]; exists {
		return nil, storedErr
	}
	return c.vault.vaultRepo, nil
}

// ComponentRepository returns the component repository instance.
func (c *Container) ComponentRepository() (vaultUseCase.ComponentRepository, error) {
	c.vault.componentRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["componentRepo"] = fmt.Errorf("failed to get database for component repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.vault.componentRepo = vaultRepository.NewMySQLComponentRepository(db)
		case "postgres":
			c.vault.componentRepo = vaultRepository.NewPostgreSQLComponentRepository(db)
		default:
			c.initErrors["componentRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["componentRepo"]; exists {
		return nil, storedErr
	}
	return c.vault.componentRepo, nil
}

// ItemRepository returns the item repository instance.
func (c *Container) ItemRepository() (vaultUseCase.ItemRepository, error) {
	c.vault.itemRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["itemRepo"] = fmt.Errorf("failed to get database for item repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.vault.itemRepo = vaultRepository.NewMySQLItemRepository(db)
		case "postgres":
			c.vault.itemRepo = vaultRepository.NewPostgreSQLItemRepository(db)
		default:
			c.initErrors["itemRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["itemRepo"]; exists {
		return nil, storedErr
	}
	return c.vault.itemRepo, nil
}

// GrantRepository returns the grant repository instance.
func (c *Container) GrantRepository() (vaultUseCase.GrantRepository, error) {
	c.vault.grantRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["grantRepo"] = fmt.Errorf("failed to get database for grant repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.vault.grantRepo = vaultRepository.NewMySQLGrantRepository(db)
		case "postgres":
			c.vault.grantRepo = vaultRepository.NewPostgreSQLGrantRepository(db)
		default:
			c.initErrors["grantRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["grantRepo"]; exists {
		return nil, storedErr
	}
	return c.vault.grantRepo, nil
}

// SecretCodec returns the AES-256-CBC codec used to seal and open item values.
func (c *Container) SecretCodec() vaultUseCase.SecretCodec {
	c.vault.codecInit.Do(func() {
		c.vault.codec = vaultService.NewSecretCodec()
	})
	return c.vault.codec
}

// VaultUseCase returns the vault use case wrapped with business metrics.
func (c *Container) VaultUseCase() (vaultUseCase.VaultUseCase, error) {
	c.vault.useCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["vaultUseCase"] = fmt.Errorf("failed to get tx manager for vault use case: %w", err)
			return
		}

		vaultRepo, err := c.VaultRepository()
		if err != nil {
			c.initErrors["vaultUseCase"] = fmt.Errorf("failed to get vault repository for vault use case: %w", err)
			return
		}

		componentRepo, err := c.ComponentRepository()
		if err != nil {
			c.initErrors["vaultUseCase"] = fmt.Errorf("failed to get component repository for vault use case: %w", err)
			return
		}

		itemRepo, err := c.ItemRepository()
		if err != nil {
			c.initErrors["vaultUseCase"] = fmt.Errorf("failed to get item repository for vault use case: %w", err)
			return
		}

		grantRepo, err := c.GrantRepository()
		if err != nil {
			c.initErrors["vaultUseCase"] = fmt.Errorf("failed to get grant repository for vault use case: %w", err)
			return
		}

		projectRepo, err := c.ProjectRepository()
		if err != nil {
			c.initErrors["vaultUseCase"] = fmt.Errorf("failed to get project repository for vault use case: %w", err)
			return
		}

		employeeRepo, err := c.EmployeeRepository()
		if err != nil {
			c.initErrors["vaultUseCase"] = fmt.Errorf("failed to get employee repository for vault use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["vaultUseCase"] = fmt.Errorf("failed to get business metrics for vault use case: %w", err)
			return
		}

		useCase := vaultUseCase.NewVaultUseCase(
			txManager,
			vaultRepo,
			componentRepo,
			itemRepo,
			grantRepo,
			projectRepo,
			employeeRepo,
			c.SecretCodec(),
		)

		c.vault.useCase = vaultUseCase.NewVaultUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["vaultUseCase"]; exists {
		return nil, storedErr
	}
	return c.vault.useCase, nil
}

// GrantUseCase returns the grant use case wrapped with business metrics.
func (c *Container) GrantUseCase() (vaultUseCase.GrantUseCase, error) {
	c.vault.grantUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["grantUseCase"] = fmt.Errorf("failed to get tx manager for grant use case: %w", err)
			return
		}

		vaultRepo, err := c.VaultRepository()
		if err != nil {
			c.initErrors["grantUseCase"] = fmt.Errorf("failed to get vault repository for grant use case: %w", err)
			return
		}

		grantRepo, err := c.GrantRepository()
		if err != nil {
			c.initErrors["grantUseCase"] = fmt.Errorf("failed to get grant repository for grant use case: %w", err)
			return
		}

		projectRepo, err := c.ProjectRepository()
		if err != nil {
			c.initErrors["grantUseCase"] = fmt.Errorf("failed to get project repository for grant use case: %w", err)
			return
		}

		employeeRepo, err := c.EmployeeRepository()
		if err != nil {
			c.initErrors["grantUseCase"] = fmt.Errorf("failed to get employee repository for grant use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["grantUseCase"] = fmt.Errorf("failed to get business metrics for grant use case: %w", err)
			return
		}

		useCase := vaultUseCase.NewGrantUseCase(txManager, vaultRepo, grantRepo, projectRepo, employeeRepo)

		c.vault.grantUseCase = vaultUseCase.NewGrantUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["grantUseCase"]; exists {
		return nil, storedErr
	}
	return c.vault.grantUseCase, nil
}

// VaultHandler returns the HTTP handler for the vault context.
func (c *Container) VaultHandler() (*vaultHTTP.VaultHandler, error) {
	c.vault.handlerInit.Do(func() {
		useCase, err := c.VaultUseCase()
		if err != nil {
			c.initErrors["vaultHandler"] = fmt.Errorf("failed to get vault use case for vault handler: %w", err)
			return
		}
		grantUseCase, err := c.GrantUseCase()
		if err != nil {
			c.initErrors["vaultHandler"] = fmt.Errorf("failed to get grant use case for vault handler: %w", err)
			return
		}
		c.vault.handler = vaultHTTP.NewVaultHandler(useCase, grantUseCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["vaultHandler"]; exists {
		return nil, storedErr
	}
	return c.vault.handler, nil
}
