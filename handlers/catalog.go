// File: handlers/catalog.go
package handlers

import (
	"net/http"

	"pristine/models"
	"pristine/services/catalog"
	"pristine/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the public service listing and the admin catalog CRUD.
type CatalogHandler struct {
	Svc    catalog.CatalogService
	Logger *zap.Logger
}

func NewCatalogHandler(svc catalog.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

// ListServices returns every active service.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.Svc.ListActive(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list services", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load services", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// GetService returns one active service by ID.
func (h *CatalogHandler) GetService(c *gin.Context) {
	svc, err := h.Svc.GetActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "service not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc})
}

// ListAllServices returns the full catalog including removed entries. Admin only.
func (h *CatalogHandler) ListAllServices(c *gin.Context) {
	services, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load services", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// CreateService adds a catalog entry. Admin only.
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", gin.H{"details": err.Error()})
		return
	}
	if err := h.Svc.Create(c.Request.Context(), &svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"service": svc})
}

// UpdateService updates a catalog entry. Admin only.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", gin.H{"details": err.Error()})
		return
	}
	svc.ID = c.Param("id")
	if err := h.Svc.Update(c.Request.Context(), &svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc})
}

// DeleteService soft-deletes a catalog entry. Admin only.
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service removed"})
}
