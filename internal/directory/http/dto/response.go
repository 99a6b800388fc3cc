package dto

import (
	"time"

	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
)

// OrganizationResponse represents an organization in API responses.
// The password hash is never exposed.
type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapOrganizationToResponse converts a domain organization to an API response.
func MapOrganizationToResponse(org *directoryDomain.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        org.ID.String(),
		Name:      org.Name,
		Email:     org.Email,
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
}

// EmployeeResponse represents an employee in API responses.
// The password hash is never exposed.
type EmployeeResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MapEmployeeToResponse converts a domain employee to an API response.
func MapEmployeeToResponse(employee *directoryDomain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             employee.ID.String(),
		OrganizationID: employee.OrganizationID.String(),
		Name:           employee.Name,
		Email:          employee.Email,
		CreatedAt:      employee.CreatedAt,
		UpdatedAt:      employee.UpdatedAt,
	}
}

// ListEmployeesResponse represents a paginated employee list.
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// MapEmployeesToListResponse converts domain employees to a list response.
func MapEmployeesToListResponse(employees []*directoryDomain.Employee) ListEmployeesResponse {
	responses := make([]EmployeeResponse, 0, len(employees))
	for _, employee := range employees {
		responses = append(responses, MapEmployeeToResponse(employee))
	}
	return ListEmployeesResponse{Employees: responses}
}

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MapProjectToResponse converts a domain project to an API response.
func MapProjectToResponse(project *directoryDomain.Project) ProjectResponse {
	return ProjectResponse{
		ID:             project.ID.String(),
		OrganizationID: project.OrganizationID.String(),
		Name:           project.Name,
		Email:          project.Email,
		Description:    project.Description,
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
}

// ListProjectsResponse represents a paginated project list.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// MapProjectsToListResponse converts domain projects to a list response.
func MapProjectsToListResponse(projects []*directoryDomain.Project) ListProjectsResponse {
	responses := make([]ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, MapProjectToResponse(project))
	}
	return ListProjectsResponse{Projects: responses}
}
