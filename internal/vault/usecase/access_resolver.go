package usecase

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/allisson/credvault/internal/errors"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// AccessResolver decides whether an employee can read or write a vault.
// The vault owner always passes both checks regardless of grants. Read access
// is satisfied by any active grant at any level; write access requires the
// matching level's grant itself to carry the read_write scope, since scopes
// are never merged across levels.
type AccessResolver struct {
	grantRepo   GrantRepository
	projectRepo ProjectReader
}

// NewAccessResolver creates a new access resolver instance.
func NewAccessResolver(grantRepo GrantRepository, projectRepo ProjectReader) *AccessResolver {
	return &AccessResolver{grantRepo: grantRepo, projectRepo: projectRepo}
}

// HasAccess reports whether the employee can read the vault's contents.
func (r *AccessResolver) HasAccess(
	ctx context.Context,
	vault *vaultDomain.Vault,
	employeeID uuid.UUID,
) (bool, error) {
	if vault.IsOwnedBy(employeeID) {
		return true, nil
	}

	if _, err := r.grantRepo.GetOrganizationGrant(ctx, vault.ID); err == nil {
		return true, nil
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}

	projectIDs, err := r.projectRepo.ListProjectIDsByEmployee(ctx, employeeID)
	if err != nil {
		return false, err
	}
	if _, err := r.grantRepo.GetProjectGrant(ctx, vault.ID, projectIDs); err == nil {
		return true, nil
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}

	if _, err := r.grantRepo.GetIndividualGrant(ctx, vault.ID, employeeID); err == nil {
		return true, nil
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}

	return false, nil
}

// CanWrite reports whether the employee can modify the vault's contents.
// Each level's grant is checked on its own scope: a read grant at one level
// never borrows write permission from another level.
func (r *AccessResolver) CanWrite(
	ctx context.Context,
	vault *vaultDomain.Vault,
	employeeID uuid.UUID,
) (bool, error) {
	if vault.IsOwnedBy(employeeID) {
		return true, nil
	}

	if grant, err := r.grantRepo.GetOrganizationGrant(ctx, vault.ID); err == nil {
		if grant.AllowsWrite() {
			return true, nil
		}
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}

	projectIDs, err := r.projectRepo.ListProjectIDsByEmployee(ctx, employeeID)
	if err != nil {
		return false, err
	}
	if grant, err := r.grantRepo.GetProjectGrant(ctx, vault.ID, projectIDs); err == nil {
		if grant.AllowsWrite() {
			return true, nil
		}
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}

	if grant, err := r.grantRepo.GetIndividualGrant(ctx, vault.ID, employeeID); err == nil {
		if grant.AllowsWrite() {
			return true, nil
		}
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}

	return false, nil
}
