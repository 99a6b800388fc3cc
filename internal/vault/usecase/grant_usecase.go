package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// grantUseCase implements the GrantUseCase interface.
type grantUseCase struct {
	txManager    database.TxManager
	vaultRepo    VaultRepository
	grantRepo    GrantRepository
	projectRepo  ProjectReader
	employeeRepo EmployeeReader
}

// NewGrantUseCase creates a new grant use case instance.
func NewGrantUseCase(
	txManager database.TxManager,
	vaultRepo VaultRepository,
	grantRepo GrantRepository,
	projectRepo ProjectReader,
	employeeRepo EmployeeReader,
) GrantUseCase {
	return &grantUseCase{
		txManager:    txManager,
		vaultRepo:    vaultRepo,
		grantRepo:    grantRepo,
		projectRepo:  projectRepo,
		employeeRepo: employeeRepo,
	}
}

// getOwnedVault resolves an active vault within the organization and verifies
// the actor owns it.
func (g *grantUseCase) getOwnedVault(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
) (*vaultDomain.Vault, error) {
	vault, err := g.vaultRepo.GetByID(ctx, vaultID)
	if err != nil {
		return nil, err
	}
	if vault.OrganizationID != organizationID {
		return nil, vaultDomain.ErrVaultNotFound
	}
	if !vault.IsOwnedBy(actorID) {
		return nil, vaultDomain.ErrNotVaultOwner
	}
	return vault, nil
}

// validateGrantInput checks the level, scope and target shape before any
// database work.
func validateGrantInput(input *vaultDomain.CreateGrantInput) error {
	if !input.Level.IsValid() {
		return vaultDomain.ErrInvalidGrantLevel
	}
	if !input.Scope.IsValid() {
		return vaultDomain.ErrInvalidGrantScope
	}

	switch input.Level {
	case vaultDomain.GrantLevelOrganization:
		if input.ProjectID != nil || input.EmployeeID != nil {
			return vaultDomain.ErrInvalidGrantTarget
		}
	case vaultDomain.GrantLevelProject:
		if input.ProjectID == nil || input.EmployeeID != nil {
			return vaultDomain.ErrInvalidGrantTarget
		}
	case vaultDomain.GrantLevelIndividual:
		if input.EmployeeID == nil || input.ProjectID != nil {
			return vaultDomain.ErrInvalidGrantTarget
		}
	}
	return nil
}

// CreateGrant installs a new grant on a vault. Conflicting active grants are
// revoked and the new grant inserted inside a single transaction, so two
// collective grants are never simultaneously active, not even transiently.
func (g *grantUseCase) CreateGrant(
	ctx context.Context,
	input *vaultDomain.CreateGrantInput,
) (*vaultDomain.Grant, error) {
	vault, err := g.getOwnedVault(ctx, input.OrganizationID, input.ActorID, input.VaultID)
	if err != nil {
		return nil, err
	}

	if err := validateGrantInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newGrant := &vaultDomain.Grant{
		ID:             uuid.Must(uuid.NewV7()),
		VaultID:        vault.ID,
		OrganizationID: vault.OrganizationID,
		Level:          input.Level,
		Scope:          input.Scope,
		ProjectID:      input.ProjectID,
		EmployeeID:     input.EmployeeID,
		Active:         true,
		CreatedBy:      input.ActorID,
		UpdatedBy:      input.ActorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = g.txManager.WithTx(ctx, func(txCtx context.Context) error {
		// The row lock serializes concurrent grant mutations on the vault;
		// without it two transactions could both pass the conflict scan and
		// leave two active collective grants.
		if _, err := g.vaultRepo.GetByIDForUpdate(txCtx, vault.ID); err != nil {
			return err
		}

		if err := g.resolveTarget(txCtx, input); err != nil {
			return err
		}

		existing, err := g.grantRepo.ListActiveByVault(txCtx, vault.ID)
		if err != nil {
			return err
		}

		for _, grant := range existing {
			if grant.SameTarget(newGrant) && grant.Scope == newGrant.Scope {
				return vaultDomain.ErrGrantAlreadyExists
			}
		}

		for _, grant := range existing {
			if !conflicts(newGrant, grant) {
				continue
			}
			if err := g.grantRepo.Revoke(txCtx, grant.ID, input.ActorID); err != nil {
				return err
			}
		}

		return g.grantRepo.Create(txCtx, newGrant)
	})
	if err != nil {
		return nil, err
	}

	return newGrant, nil
}

// resolveTarget verifies the grant's target exists, is active, and belongs to
// the same organization as the vault.
func (g *grantUseCase) resolveTarget(ctx context.Context, input *vaultDomain.CreateGrantInput) error {
	switch input.Level {
	case vaultDomain.GrantLevelProject:
		project, err := g.projectRepo.GetByID(ctx, *input.ProjectID)
		if err != nil {
			return err
		}
		if project.OrganizationID != input.OrganizationID {
			return vaultDomain.ErrGrantTargetNotFound
		}
	case vaultDomain.GrantLevelIndividual:
		employee, err := g.employeeRepo.GetByID(ctx, *input.EmployeeID)
		if err != nil {
			return err
		}
		if employee.OrganizationID != input.OrganizationID {
			return vaultDomain.ErrGrantTargetNotFound
		}
	}
	return nil
}

// conflicts reports whether an existing active grant must be revoked before
// the new grant is installed. Collective grants (organization, project)
// supersede everything already on the vault. An individual grant supersedes
// the collective grants plus any individual grant for the same employee, but
// leaves individual grants for other employees alone.
func conflicts(newGrant, existing *vaultDomain.Grant) bool {
	if newGrant.Level == vaultDomain.GrantLevelOrganization ||
		newGrant.Level == vaultDomain.GrantLevelProject {
		return true
	}

	if existing.Level != vaultDomain.GrantLevelIndividual {
		return true
	}
	return existing.EmployeeID != nil && newGrant.EmployeeID != nil &&
		*existing.EmployeeID == *newGrant.EmployeeID
}

// RevokeAllGrants revokes every active grant of a vault. Owner only.
func (g *grantUseCase) RevokeAllGrants(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
) ([]*vaultDomain.Grant, error) {
	if _, err := g.getOwnedVault(ctx, organizationID, actorID, vaultID); err != nil {
		return nil, err
	}

	var revoked []*vaultDomain.Grant
	err := g.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := g.vaultRepo.GetByIDForUpdate(txCtx, vaultID); err != nil {
			return err
		}
		var txErr error
		revoked, txErr = g.grantRepo.RevokeAllForVault(txCtx, vaultID, actorID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return revoked, nil
}

// ListGrants lists the active grants of a vault. Owner only.
func (g *grantUseCase) ListGrants(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
) ([]*vaultDomain.Grant, error) {
	if _, err := g.getOwnedVault(ctx, organizationID, actorID, vaultID); err != nil {
		return nil, err
	}
	return g.grantRepo.ListActiveByVault(ctx, vaultID)
}
