package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/service-task-manager/internal/dto"
	apierrors "github.com/yukikurage/service-task-manager/internal/errors"
	"github.com/yukikurage/service-task-manager/internal/models"
	"github.com/yukikurage/service-task-manager/internal/services"
)

// CatalogHandler serves the service catalog and task statuses.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	list, err := h.catalogService.ListServices(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]dto.ServiceDTO, len(list))
	for i, s := range list {
		items[i] = dto.ToServiceDTO(s)
	}
	c.JSON(http.StatusOK, gin.H{"services": items})
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	type CreateServiceRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	service, err := h.catalogService.CreateService(c.Request.Context(), services.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToServiceDTO(*service))
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	service, err := h.catalogService.GetService(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceDTO(*service))
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateServiceRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	service, err := h.catalogService.UpdateService(c.Request.Context(), id, services.UpdateServiceInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceDTO(*service))
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteService(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service deleted successfully",
	})
}

func (h *CatalogHandler) ListStatuses(c *gin.Context) {
	statuses, err := h.catalogService.ListStatuses(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statuses": toStatusDTOs(statuses)})
}

func (h *CatalogHandler) CreateStatus(c *gin.Context) {
	type CreateStatusRequest struct {
		Name         string `json:"name" binding:"required"`
		Color        string `json:"color"`
		NotifyClient bool   `json:"notify_client"`
	}

	var req CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	status, err := h.catalogService.CreateStatus(c.Request.Context(), services.StatusInput{
		Name:         req.Name,
		Color:        req.Color,
		NotifyClient: req.NotifyClient,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToStatusDTO(*status))
}

func (h *CatalogHandler) GetStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.catalogService.GetStatus(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusDTO(*status))
}

func (h *CatalogHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Name         *string `json:"name"`
		Color        *string `json:"color"`
		NotifyClient *bool   `json:"notify_client"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	status, err := h.catalogService.UpdateStatus(c.Request.Context(), id, services.UpdateStatusInput{
		Name:         req.Name,
		Color:        req.Color,
		NotifyClient: req.NotifyClient,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusDTO(*status))
}

func (h *CatalogHandler) DeleteStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteStatus(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status deleted successfully",
	})
}

func toStatusDTOs(statuses []models.TaskStatus) []dto.StatusDTO {
	items := make([]dto.StatusDTO, len(statuses))
	for i, s := range statuses {
		items[i] = dto.ToStatusDTO(s)
	}
	return items
}
