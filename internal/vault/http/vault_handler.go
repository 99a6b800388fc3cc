// Package http provides HTTP handlers for vault operations: vaults,
// components, encrypted items, and access grants. The acting employee is
// identified by the X-Employee-ID request header.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/credvault/internal/errors"
	"github.com/allisson/credvault/internal/httputil"
	appValidation "github.com/allisson/credvault/internal/validation"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
	"github.com/allisson/credvault/internal/vault/http/dto"
	vaultUseCase "github.com/allisson/credvault/internal/vault/usecase"
)

// actorHeader carries the acting employee's UUID. The transport trusts it;
// there is no session layer in front of it.
const actorHeader = "X-Employee-ID"

// VaultHandler handles HTTP requests for vault operations.
type VaultHandler struct {
	vaultUseCase vaultUseCase.VaultUseCase
	grantUseCase vaultUseCase.GrantUseCase
	logger       *slog.Logger
}

// NewVaultHandler creates a new vault handler with required dependencies.
func NewVaultHandler(
	vaultUC vaultUseCase.VaultUseCase,
	grantUC vaultUseCase.GrantUseCase,
	logger *slog.Logger,
) *VaultHandler {
	return &VaultHandler{
		vaultUseCase: vaultUC,
		grantUseCase: grantUC,
		logger:       logger,
	}
}

// RegisterRoutes attaches the vault routes to the versioned API group.
func (h *VaultHandler) RegisterRoutes(group *gin.RouterGroup) {
	org := group.Group("/organizations/:organization_id")

	org.POST("/vaults", h.CreateVaultHandler)
	org.GET("/vaults", h.ListVaultsHandler)
	org.GET("/vaults/:vault_id", h.GetVaultHandler)
	org.DELETE("/vaults/:vault_id", h.DeleteVaultHandler)

	org.POST("/vaults/:vault_id/components", h.CreateComponentHandler)
	org.GET("/vaults/:vault_id/components", h.ListComponentsHandler)
	org.DELETE("/components/:component_id", h.DeleteComponentHandler)

	org.POST("/components/:component_id/items", h.CreateItemHandler)
	org.GET("/components/:component_id/items", h.ListItemsHandler)
	org.GET("/items/:item_id", h.GetItemHandler)
	org.PUT("/items/:item_id", h.UpdateItemHandler)
	org.DELETE("/items/:item_id", h.DeleteItemHandler)

	org.GET("/employees/:employee_id/vaults", h.ListEmployeeVaultsHandler)

	org.POST("/vaults/:vault_id/grants", h.CreateGrantHandler)
	org.GET("/vaults/:vault_id/grants", h.ListGrantsHandler)
	org.DELETE("/vaults/:vault_id/grants", h.RevokeAllGrantsHandler)
}

// parseUUIDParam parses a UUID path parameter.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	value, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s parameter: must be a valid UUID", name)
	}
	return value, nil
}

// actorID extracts the acting employee's UUID from the request header.
func (h *VaultHandler) actorID(c *gin.Context) (uuid.UUID, error) {
	value := c.GetHeader(actorHeader)
	if value == "" {
		return uuid.Nil, apperrors.Wrap(apperrors.ErrUnauthorized, "missing X-Employee-ID header")
	}
	actorID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid X-Employee-ID header")
	}
	return actorID, nil
}

// CreateVaultHandler creates a vault owned by the acting employee.
// POST /v1/organizations/:organization_id/vaults - Returns 201 Created.
func (h *VaultHandler) CreateVaultHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	actorID, err := h.actorID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.CreateVaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	vault, err := h.vaultUseCase.CreateVault(c.Request.Context(), orgID, actorID, req.Name, req.Description)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapVaultToResponse(vault))
}

// GetVaultHandler retrieves a vault the actor can access.
// GET /v1/organizations/:organization_id/vaults/:vault_id - Returns 200 OK.
func (h *VaultHandler) GetVaultHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	vaultID, err := parseUUIDParam(c, "vault_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	actorID, err := h.actorID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	vault, err := h.vaultUseCase.GetVault(c.Request.Context(), orgID, actorID, vaultID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVaultToResponse(vault))
}

// ListVaultsHandler lists the organization's vaults with pagination.
// GET /v1/organizations/:organization_id/vaults?offset=0&limit=50 - Returns 200 OK.
func (h *VaultHandler) ListVaultsHandler(c *gin.Context) {
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

	vaults, err := h.vaultUseCase.ListVaults(c.Request.Context(), orgID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVaultsToListResponse(vaults))
}

// DeleteVaultHandler soft-deletes a vault and revokes its grants. Owner only.
// DELETE /v1/organizations/:organization_id/vaults/:vault_id - Returns 204 No Content.
func (h *VaultHandler) DeleteVaultHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	vaultID, err := parseUUIDParam(c, "vault_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	actorID, err := h.actorID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.vaultUseCase.DeleteVault(c.Request.Context(), orgID, actorID, vaultID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// CreateComponentHandler creates a component inside a vault. Requires write access.
// POST /v1/organizations/:organization_id/vaults/:vault_id/components - Returns 201 Created.
func (h *VaultHandler) CreateComponentHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	vaultID, err := parseUUIDParam(c, "vault_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	actorID, err := h.actorID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.CreateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	component, err := h.vaultUseCase.CreateComponent(
		c.Request.Context(),
		orgID,
		actorID,
		vaultID,
		req.Name,
		req.Description,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapComponentToResponse(component))
}

// ListComponentsHandler lists a vault's components. Requires read access.
// GET /v1/organizations/:organization_id/vaults/:vault_id/components - Returns 200 OK.
func (h *VaultHandler) ListComponentsHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	vaultID, err := parseUUIDParam(c, "vault_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	actorID, err := h.actorID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	components, err := h.vaultUseCase.ListComponents(c.Request.Context(), orgID, actorID, vaultID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapComponentsToListResponse(components))
}

// DeleteComponentHandler soft-deletes a component. Requires write access.
// DELETE /v1/organizations/:organization_id/components/:component_id - Returns 204 No Content.
func (h *VaultHandler) DeleteComponentHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	componentID, err := parseUUIDParam(c, "component_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	actorID, err := h.actorID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.vaultUseCase.DeleteComponent(c.Request.Context(), orgID, actorID, componentID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// CreateItemHandler creates an encrypted item inside a component. Requires write access.
// POST /v1/organizations/:organization_id/components/:component_id/items - Returns 201 Created.
// The response excludes the plaintext value.
func (h *VaultHandler) CreateItemHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	componentID, err := parseUUIDParam(c, "component_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	actorID, err := h.actorID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	item, err := h.vaultUseCase.CreateItem(c.Request.Context(), orgID, actorID, componentID, req.Key, req.Value)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapItemToResponse(item))
}

// GetItemHandler retrieves and decrypts an item. Requires read access.
// GET /v1/organizations/:organization_id/items/:item_id - Returns 200 OK with the plaintext value.
func (h *VaultHandler) GetItemHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	itemID, err := parseUUIDParam(c, "item_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	actorID, err := h.actorID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	item, err := h.vaultUseCase.GetItem(c.Request.Context(), orgID, actorID, itemID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapItemToGetResponse(item))
}

// ListItemsHandler lists a component's items without decrypting them. Requires read access.
// GET /v1/organizations/:organization_id/components/:component_id/items - Returns 200 OK.
func (h *VaultHandler) ListItemsHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	componentID, err := parseUUIDParam(c, "component_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	actorID, err := h.actorID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	items, err := h.vaultUseCase.ListItems(c.Request.Context(), orgID, actorID, componentID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapItemsToListResponse(items))
}

// UpdateItemHandler replaces an item's value. Requires write access.
// PUT /v1/organizations/:organization_id/items/:item_id - Returns 200 OK.
// The response excludes the plaintext value.
func (h *VaultHandler) UpdateItemHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	itemID, err := parseUUIDParam(c, "item_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	actorID, err := h.actorID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	item, err := h.vaultUseCase.UpdateItemValue(c.Request.Context(), orgID, actorID, itemID, req.Value)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapItemToResponse(item))
}

// DeleteItemHandler soft-deletes an item. Requires write access.
// DELETE /v1/organizations/:organization_id/items/:item_id - Returns 204 No Content.
func (h *VaultHandler) DeleteItemHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	itemID, err := parseUUIDParam(c, "item_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	actorID, err := h.actorID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.vaultUseCase.DeleteItem(c.Request.Context(), orgID, actorID, itemID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListEmployeeVaultsHandler lists the vaults an employee can reach, bucketed
// by how the access was obtained.
// GET /v1/organizations/:organization_id/employees/:employee_id/vaults - Returns 200 OK.
func (h *VaultHandler) ListEmployeeVaultsHandler(c *gin.Context) {
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

	vaults, err := h.vaultUseCase.ListEmployeeVaults(c.Request.Context(), orgID, employeeID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEmployeeVaultsToResponse(vaults))
}

// CreateGrantHandler installs a grant on a vault. Owner only.
// POST /v1/organizations/:organization_id/vaults/:vault_id/grants - Returns 201 Created.
func (h *VaultHandler) CreateGrantHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	vaultID, err := parseUUIDParam(c, "vault_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	actorID, err := h.actorID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.CreateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &vaultDomain.CreateGrantInput{
		OrganizationID: orgID,
		VaultID:        vaultID,
		ActorID:        actorID,
		Level:          vaultDomain.GrantLevel(req.Level),
		Scope:          vaultDomain.GrantScope(req.Scope),
	}

	if req.ProjectID != "" {
		projectID, err := uuid.Parse(req.ProjectID)
		if err != nil {
			httputil.HandleValidationErrorGin(
				c,
				fmt.Errorf("invalid project_id: must be a valid UUID"),
				h.logger,
			)
			return
		}
		input.ProjectID = &projectID
	}
	if req.EmployeeID != "" {
		employeeID, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			httputil.HandleValidationErrorGin(
				c,
				fmt.Errorf("invalid employee_id: must be a valid UUID"),
				h.logger,
			)
			return
		}
		input.EmployeeID = &employeeID
	}

	grant, err := h.grantUseCase.CreateGrant(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapGrantToResponse(grant))
}

// ListGrantsHandler lists the active grants of a vault. Owner only.
// GET /v1/organizations/:organization_id/vaults/:vault_id/grants - Returns 200 OK.
func (h *VaultHandler) ListGrantsHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	vaultID, err := parseUUIDParam(c, "vault_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	actorID, err := h.actorID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	grants, err := h.grantUseCase.ListGrants(c.Request.Context(), orgID, actorID, vaultID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGrantsToListResponse(grants))
}

// RevokeAllGrantsHandler revokes every active grant of a vault. Owner only.
// DELETE /v1/organizations/:organization_id/vaults/:vault_id/grants - Returns 200 OK
// with the revoked grants.
func (h *VaultHandler) RevokeAllGrantsHandler(c *gin.Context) {
	orgID, err := parseUUIDParam(c, "organization_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	vaultID, err := parseUUIDParam(c, "vault_id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	actorID, err := h.actorID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	grants, err := h.grantUseCase.RevokeAllGrants(c.Request.Context(), orgID, actorID, vaultID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGrantsToListResponse(grants))
}
