package domain

import (
	"github.com/allisson/credvault/internal/errors"
)

// Vault-specific error definitions.
var (
	// ErrVaultNotFound indicates the requested vault does not exist.
	ErrVaultNotFound = errors.Wrap(errors.ErrNotFound, "vault not found")

	// ErrComponentNotFound indicates the requested component does not exist.
	ErrComponentNotFound = errors.Wrap(errors.ErrNotFound, "component not found")

	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.Wrap(errors.ErrNotFound, "item not found")

	// ErrGrantNotFound indicates the requested grant does not exist.
	ErrGrantNotFound = errors.Wrap(errors.ErrNotFound, "grant not found")

	// ErrGrantTargetNotFound indicates the grant's target project or employee
	// does not exist in the vault's organization.
	ErrGrantTargetNotFound = errors.Wrap(errors.ErrNotFound, "grant target not found")

	// ErrGrantAlreadyExists indicates an identical active grant is already installed.
	ErrGrantAlreadyExists = errors.Wrap(errors.ErrConflict, "grant already exists")

	// ErrItemKeyAlreadyExists indicates the component already has an active item with that key.
	ErrItemKeyAlreadyExists = errors.Wrap(errors.ErrConflict, "item key already exists")

	// ErrNotVaultOwner indicates the acting employee does not own the vault.
	// Grant management and vault deletion are owner-only operations.
	ErrNotVaultOwner = errors.Wrap(errors.ErrForbidden, "employee is not the vault owner")

	// ErrVaultAccessDenied indicates the acting employee has no active grant
	// covering the vault, or the grant's scope doesn't allow the operation.
	ErrVaultAccessDenied = errors.Wrap(errors.ErrAccessDenied, "vault access denied")

	// ErrInvalidGrantLevel indicates an unknown grant level value.
	ErrInvalidGrantLevel = errors.Wrap(errors.ErrInvalidInput, "invalid grant level")

	// ErrInvalidGrantScope indicates an unknown grant scope value.
	ErrInvalidGrantScope = errors.Wrap(errors.ErrInvalidInput, "invalid grant scope")

	// ErrInvalidGrantTarget indicates the target does not match the level
	// (missing project for a project grant, missing employee for an individual grant).
	ErrInvalidGrantTarget = errors.Wrap(errors.ErrInvalidInput, "invalid grant target")
)
