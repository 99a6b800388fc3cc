package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/metrics"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

const metricsDomain = "vault"

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration histogram for one call.
func (v *vaultUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	v.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	v.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (v *vaultUseCaseWithMetrics) CreateVault(
	ctx context.Context,
	organizationID, actorID uuid.UUID,
	name, description string,
) (*vaultDomain.Vault, error) {
	start := time.Now()
	vault, err := v.next.CreateVault(ctx, organizationID, actorID, name, description)
	v.record(ctx, "vault_create", start, err)
	return vault, err
}

func (v *vaultUseCaseWithMetrics) GetVault(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
) (*vaultDomain.Vault, error) {
	start := time.Now()
	vault, err := v.next.GetVault(ctx, organizationID, actorID, vaultID)
	v.record(ctx, "vault_get", start, err)
	return vault, err
}

func (v *vaultUseCaseWithMetrics) ListVaults(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Vault, error) {
	start := time.Now()
	vaults, err := v.next.ListVaults(ctx, organizationID, offset, limit)
	v.record(ctx, "vault_list", start, err)
	return vaults, err
}

func (v *vaultUseCaseWithMetrics) DeleteVault(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
) error {
	start := time.Now()
	err := v.next.DeleteVault(ctx, organizationID, actorID, vaultID)
	v.record(ctx, "vault_delete", start, err)
	return err
}

func (v *vaultUseCaseWithMetrics) CreateComponent(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
	name, description string,
) (*vaultDomain.Component, error) {
	start := time.Now()
	component, err := v.next.CreateComponent(ctx, organizationID, actorID, vaultID, name, description)
	v.record(ctx, "component_create", start, err)
	return component, err
}

func (v *vaultUseCaseWithMetrics) ListComponents(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Component, error) {
	start := time.Now()
	components, err := v.next.ListComponents(ctx, organizationID, actorID, vaultID, offset, limit)
	v.record(ctx, "component_list", start, err)
	return components, err
}

func (v *vaultUseCaseWithMetrics) DeleteComponent(
	ctx context.Context,
	organizationID, actorID, componentID uuid.UUID,
) error {
	start := time.Now()
	err := v.next.DeleteComponent(ctx, organizationID, actorID, componentID)
	v.record(ctx, "component_delete", start, err)
	return err
}

func (v *vaultUseCaseWithMetrics) CreateItem(
	ctx context.Context,
	organizationID, actorID, componentID uuid.UUID,
	key, plaintext string,
) (*vaultDomain.Item, error) {
	start := time.Now()
	item, err := v.next.CreateItem(ctx, organizationID, actorID, componentID, key, plaintext)
	v.record(ctx, "item_create", start, err)
	return item, err
}

func (v *vaultUseCaseWithMetrics) GetItem(
	ctx context.Context,
	organizationID, actorID, itemID uuid.UUID,
) (*vaultDomain.Item, error) {
	start := time.Now()
	item, err := v.next.GetItem(ctx, organizationID, actorID, itemID)
	v.record(ctx, "item_read", start, err)
	return item, err
}

func (v *vaultUseCaseWithMetrics) ListItems(
	ctx context.Context,
	organizationID, actorID, componentID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Item, error) {
	start := time.Now()
	items, err := v.next.ListItems(ctx, organizationID, actorID, componentID, offset, limit)
	v.record(ctx, "item_list", start, err)
	return items, err
}

func (v *vaultUseCaseWithMetrics) UpdateItemValue(
	ctx context.Context,
	organizationID, actorID, itemID uuid.UUID,
	newPlaintext string,
) (*vaultDomain.Item, error) {
	start := time.Now()
	item, err := v.next.UpdateItemValue(ctx, organizationID, actorID, itemID, newPlaintext)
	v.record(ctx, "item_update", start, err)
	return item, err
}

func (v *vaultUseCaseWithMetrics) DeleteItem(
	ctx context.Context,
	organizationID, actorID, itemID uuid.UUID,
) error {
	start := time.Now()
	err := v.next.DeleteItem(ctx, organizationID, actorID, itemID)
	v.record(ctx, "item_delete", start, err)
	return err
}

func (v *vaultUseCaseWithMetrics) ListEmployeeVaults(
	ctx context.Context,
	organizationID, employeeID uuid.UUID,
) (*vaultDomain.EmployeeVaults, error) {
	start := time.Now()
	vaults, err := v.next.ListEmployeeVaults(ctx, organizationID, employeeID)
	v.record(ctx, "employee_vaults_list", start, err)
	return vaults, err
}

// grantUseCaseWithMetrics decorates GrantUseCase with metrics instrumentation.
type grantUseCaseWithMetrics struct {
	next    GrantUseCase
	metrics metrics.BusinessMetrics
}

// NewGrantUseCaseWithMetrics wraps a GrantUseCase with metrics recording.
func NewGrantUseCaseWithMetrics(useCase GrantUseCase, m metrics.BusinessMetrics) GrantUseCase {
	return &grantUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (g *grantUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	g.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	g.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (g *grantUseCaseWithMetrics) CreateGrant(
	ctx context.Context,
	input *vaultDomain.CreateGrantInput,
) (*vaultDomain.Grant, error) {
	start := time.Now()
	grant, err := g.next.CreateGrant(ctx, input)
	g.record(ctx, "grant_install", start, err)
	return grant, err
}

func (g *grantUseCaseWithMetrics) RevokeAllGrants(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
) ([]*vaultDomain.Grant, error) {
	start := time.Now()
	grants, err := g.next.RevokeAllGrants(ctx, organizationID, actorID, vaultID)
	g.record(ctx, "grant_revoke_all", start, err)
	return grants, err
}

func (g *grantUseCaseWithMetrics) ListGrants(
	ctx context.Context,
	organizationID, actorID, vaultID uuid.UUID,
) ([]*vaultDomain.Grant, error) {
	start := time.Now()
	grants, err := g.next.ListGrants(ctx, organizationID, actorID, vaultID)
	g.record(ctx, "grant_list", start, err)
	return grants, err
}
