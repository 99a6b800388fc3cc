// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/credvault/internal/validation"
)

// CreateVaultRequest contains the parameters for creating a vault.
type CreateVaultRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the create vault request is valid.
func (r *CreateVaultRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			appValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// CreateComponentRequest contains the parameters for creating a component.
type CreateComponentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the create component request is valid.
func (r *CreateComponentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			appValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// CreateItemRequest contains the parameters for creating an item. The value is
// the plaintext secret; it is sealed before it ever reaches storage.
type CreateItemRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Validate checks if the create item request is valid.
func (r *CreateItemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Key,
			validation.Required,
			appValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Value,
			validation.Required,
			appValidation.NoTrailingNull,
		),
	)
}

// UpdateItemRequest contains the parameters for updating an item's value.
type UpdateItemRequest struct {
	Value string `json:"value"`
}

// Validate checks if the update item request is valid.
func (r *UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Required,
			appValidation.NoTrailingNull,
		),
	)
}

// CreateGrantRequest contains the parameters for installing a grant on a vault.
// ProjectID is required for project-level grants, EmployeeID for
// individual-level grants.
type CreateGrantRequest struct {
	Level      string `json:"level"`
	Scope      string `json:"scope"`
	ProjectID  string `json:"project_id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
}

// Validate checks if the create grant request is valid.
func (r *CreateGrantRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Level,
			validation.Required,
			validation.In("organization", "project", "individual"),
		),
		validation.Field(&r.Scope,
			validation.Required,
			validation.In("read", "read_write"),
		),
	)
}
