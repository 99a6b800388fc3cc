// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/credvault/internal/validation"
)

// RegisterOrganizationRequest contains the parameters for registering an organization.
type RegisterOrganizationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the register organization request is valid.
func (r *RegisterOrganizationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, appValidation.NotBlank),
		validation.Field(&r.Email, validation.Required, appValidation.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// CreateEmployeeRequest contains the parameters for creating an employee.
// The organization is taken from the URL, not the request body.
type CreateEmployeeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the create employee request is valid.
func (r *CreateEmployeeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, appValidation.NotBlank),
		validation.Field(&r.Email, validation.Required, appValidation.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// CreateProjectRequest contains the parameters for creating a project.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

// Validate checks if the create project request is valid.
func (r *CreateProjectRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, appValidation.NotBlank),
		validation.Field(&r.Email, validation.When(r.Email != "", appValidation.Email)),
	)
}

// AddProjectMemberRequest contains the parameters for adding an employee to a project.
type AddProjectMemberRequest struct {
	EmployeeID string `json:"employee_id"`
}

// Validate checks if the add project member request is valid.
func (r *AddProjectMemberRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.EmployeeID, validation.Required, appValidation.NotBlank),
	)
}
