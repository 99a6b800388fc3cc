package dto

import (
	"time"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// VaultResponse represents a vault in API responses.
type VaultResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MapVaultToResponse converts a domain vault to an API response.
func MapVaultToResponse(vault *vaultDomain.Vault) VaultResponse {
	return VaultResponse{
		ID:             vault.ID.String(),
		OrganizationID: vault.OrganizationID.String(),
		Name:           vault.Name,
		Description:    vault.Description,
		CreatedBy:      vault.CreatedBy.String(),
		CreatedAt:      vault.CreatedAt,
		UpdatedAt:      vault.UpdatedAt,
	}
}

// ListVaultsResponse represents a paginated vault list.
type ListVaultsResponse struct {
	Vaults []VaultResponse `json:"vaults"`
}

// MapVaultsToListResponse converts domain vaults to a list response.
func MapVaultsToListResponse(vaults []*vaultDomain.Vault) ListVaultsResponse {
	responses := make([]VaultResponse, 0, len(vaults))
	for _, vault := range vaults {
		responses = append(responses, MapVaultToResponse(vault))
	}
	return ListVaultsResponse{Vaults: responses}
}

// EmployeeVaultsResponse groups the vaults an employee can reach, bucketed by
// how the access was obtained.
type EmployeeVaultsResponse struct {
	Owned        []VaultResponse `json:"owned"`
	Organization []VaultResponse `json:"organization"`
	Project      []VaultResponse `json:"project"`
	Individual   []VaultResponse `json:"individual"`
}

// MapEmployeeVaultsToResponse converts a domain vault bucketing to an API response.
func MapEmployeeVaultsToResponse(vaults *vaultDomain.EmployeeVaults) EmployeeVaultsResponse {
	return EmployeeVaultsResponse{
		Owned:        mapVaults(vaults.Owned),
		Organization: mapVaults(vaults.Organization),
		Project:      mapVaults(vaults.Project),
		Individual:   mapVaults(vaults.Individual),
	}
}

func mapVaults(vaults []*vaultDomain.Vault) []VaultResponse {
	responses := make([]VaultResponse, 0, len(vaults))
	for _, vault := range vaults {
		responses = append(responses, MapVaultToResponse(vault))
	}
	return responses
}

// ComponentResponse represents a component in API responses.
type ComponentResponse struct {
	ID          string    `json:"id"`
	VaultID     string    `json:"vault_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapComponentToResponse converts a domain component to an API response.
func MapComponentToResponse(component *vaultDomain.Component) ComponentResponse {
	return ComponentResponse{
		ID:          component.ID.String(),
		VaultID:     component.VaultID.String(),
		Name:        component.Name,
		Description: component.Description,
		CreatedAt:   component.CreatedAt,
		UpdatedAt:   component.UpdatedAt,
	}
}

// ListComponentsResponse represents a paginated component list.
type ListComponentsResponse struct {
	Components []ComponentResponse `json:"components"`
}

// MapComponentsToListResponse converts domain components to a list response.
func MapComponentsToListResponse(components []*vaultDomain.Component) ListComponentsResponse {
	responses := make([]ComponentResponse, 0, len(components))
	for _, component := range components {
		responses = append(responses, MapComponentToResponse(component))
	}
	return ListComponentsResponse{Components: responses}
}

// ItemResponse represents an item in API responses. Value holds the decrypted
// plaintext and is only included in single-item GET responses.
type ItemResponse struct {
	ID          string    `json:"id"`
	ComponentID string    `json:"component_id"`
	Key         string    `json:"key"`
	Value       string    `json:"value,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapItemToResponse converts a domain item to an API response without the
// decrypted value.
func MapItemToResponse(item *vaultDomain.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID.String(),
		ComponentID: item.ComponentID.String(),
		Key:         item.Key,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// MapItemToGetResponse converts a domain item to an API response including the
// decrypted plaintext value.
func MapItemToGetResponse(item *vaultDomain.Item) ItemResponse {
	response := MapItemToResponse(item)
	response.Value = item.Plaintext
	return response
}

// ListItemsResponse represents a paginated item list. Values stay encrypted.
type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
}

// MapItemsToListResponse converts domain items to a list response.
func MapItemsToListResponse(items []*vaultDomain.Item) ListItemsResponse {
	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, MapItemToResponse(item))
	}
	return ListItemsResponse{Items: responses}
}

// GrantResponse represents a grant in API responses.
type GrantResponse struct {
	ID         string    `json:"id"`
	VaultID    string    `json:"vault_id"`
	Level      string    `json:"level"`
	Scope      string    `json:"scope"`
	ProjectID  string    `json:"project_id,omitempty"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MapGrantToResponse converts a domain grant to an API response.
func MapGrantToResponse(grant *vaultDomain.Grant) GrantResponse {
	response := GrantResponse{
		ID:        grant.ID.String(),
		VaultID:   grant.VaultID.String(),
		Level:     string(grant.Level),
		Scope:     string(grant.Scope),
		Active:    grant.Active,
		CreatedAt: grant.CreatedAt,
		UpdatedAt: grant.UpdatedAt,
	}
	if grant.ProjectID != nil {
		response.ProjectID = grant.ProjectID.String()
	}
	if grant.EmployeeID != nil {
		response.EmployeeID = grant.EmployeeID.String()
	}
	return response
}

// ListGrantsResponse represents the grants of a vault.
type ListGrantsResponse struct {
	Grants []GrantResponse `json:"grants"`
}

// MapGrantsToListResponse converts domain grants to a list response.
func MapGrantsToListResponse(grants []*vaultDomain.Grant) ListGrantsResponse {
	responses := make([]GrantResponse, 0, len(grants))
	for _, grant := range grants {
		responses = append(responses, MapGrantToResponse(grant))
	}
	return ListGrantsResponse{Grants: responses}
}
