// Package http provides HTTP handlers for the directory context: organization
// registration, employee and project management, and project membership.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/directory/http/dto"
	directoryUseCase "github.com/allisson/credvault/internal/directory/usecase"
	"github.com/allisson/credvault/internal/httputil"
	appValidation "github.com/allisson/credvault/internal/validation"
)

// DirectoryHandler handles HTTP requests for directory operations.
type DirectoryHandler struct {
	useCase directoryUseCase.DirectoryUseCase
	logger  *slog.Logger
}

// NewDirectoryHandler creates a new directory handler with required dependencies.
func NewDirectoryHandler(useCase directoryUseCase.DirectoryUseCase, logger *slog.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// RegisterRoutes attaches the directory routes to the versioned API group.
func (h *DirectoryHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/organizations", h.RegisterOrganizationHandler)
	group.GET("/organizations/:organization_id", h.GetOrganizationHandler)
	group.POST("/organizations/:organization_id/employees", h.CreateEmployeeHandler)
	group.GET("/organizations/:organization_id/employees", h.ListEmployeesHandler)
	group.GET("/organizations/:organization_id/employees/:employee_id", h.GetEmployeeHandler)
	group.POST("/organizations/:organization_id/projects", h.CreateProjectHandler)
	group.GET("/organizations/:organization_id/projects", h.ListProjectsHandler)
	group.POST("/organizations/:organization_id/projects/:project_id/members", h.AddProjectMemberHandler)
}

// parseUUIDParam parses a UUID path parameter.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	value, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s parameter: must be a valid UUID", name)
	}
	return value, nil
}

// RegisterOrganizationHandler registers a new organization.
// POST /v1/organizations - Returns 201 Created.
func (h *DirectoryHandler) RegisterOrganizationHandler(c *gin.Context) {
	var req dto.RegisterOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	org, err := h.useCase.RegisterOrganization(c.Request.Context(), directoryUseCase.RegisterOrganizationInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapOrganizationToResponse(org))
}

// GetOrganizationHandler retrieves an organization by ID.
// GET /v1/organizations/:organization_id - Returns 200 OK.
func (h *DirectoryHandler) GetOrganizationHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	org, err := h.useCase.GetOrganization(c.Request.Context(), orgID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOrganizationToResponse(org))
}

// CreateEmployeeHandler creates an employee inside an organization.
// POST /v1/organizations/:organization_id/employees - Returns 201 Created.
func (h *DirectoryHandler) CreateEmployeeHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	employee, err := h.useCase.CreateEmployee(c.Request.Context(), directoryUseCase.CreateEmployeeInput{
		OrganizationID: orgID,
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapEmployeeToResponse(employee))
}

// GetEmployeeHandler retrieves an employee scoped to an organization.
// GET /v1/organizations/:organization_id/employees/:employee_id - Returns 200 OK.
func (h *DirectoryHandler) GetEmployeeHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	employeeID, err := parseUUIDParam(c, "employee_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	employee, err := h.useCase.GetEmployee(c.Request.Context(), orgID, employeeID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEmployeeToResponse(employee))
}

// ListEmployeesHandler lists an organization's employees with pagination.
// GET /v1/organizations/:organization_id/employees?offset=0&limit=50 - Returns 200 OK.
func (h *DirectoryHandler) ListEmployeesHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	employees, err := h.useCase.ListEmployees(c.Request.Context(), orgID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEmployeesToListResponse(employees))
}

// CreateProjectHandler creates a project inside an organization.
// POST /v1/organizations/:organization_id/projects - Returns 201 Created.
func (h *DirectoryHandler) CreateProjectHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	project, err := h.useCase.CreateProject(c.Request.Context(), directoryUseCase.CreateProjectInput{
		OrganizationID: orgID,
		Name:           req.Name,
		Email:          req.Email,
		Description:    req.Description,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapProjectToResponse(project))
}

// ListProjectsHandler lists an organization's projects with pagination.
// GET /v1/organizations/:organization_id/projects?offset=0&limit=50 - Returns 200 OK.
func (h *DirectoryHandler) ListProjectsHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	projects, err := h.useCase.ListProjects(c.Request.Context(), orgID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProjectsToListResponse(projects))
}

// AddProjectMemberHandler adds an employee to a project.
// POST /v1/organizations/:organization_id/projects/:project_id/members - Returns 204 No Content.
func (h *DirectoryHandler) AddProjectMemberHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.AddProjectMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid employee_id: must be a valid UUID"),
			h.logger,
		)
		return
	}

	if err := h.useCase.AddProjectMember(c.Request.Context(), orgID, projectID, employeeID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
