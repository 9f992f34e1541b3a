// File: handlers/admin.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pristine/models"
	"pristine/services/admin"
	"pristine/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the dashboard: booking oversight and the cleaner roster.
type AdminHandler struct {
	Bookings admin.AdminBookingService
	Cleaners admin.CleanerService
	Logger   *zap.Logger
}

func NewAdminHandler(bookings admin.AdminBookingService, cleaners admin.CleanerService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Bookings: bookings, Cleaners: cleaners, Logger: logger}
}

// ListBookings returns a filtered, paginated booking list.
// Query params: status, from, to (YYYY-MM-DD), page, limit.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	filter := models.BookingFilter{
		Status: models.BookingStatus(c.Query("status")),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "from must be YYYY-MM-DD", nil)
			return
		}
		filter.DateFrom = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "to must be YYYY-MM-DD", nil)
			return
		}
		filter.DateTo = t
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	page, err := h.Bookings.ListBookings(c.Request.Context(), filter)
	if err != nil {
		h.Logger.Error("failed to list bookings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load bookings", nil)
		return
	}
	c.JSON(http.StatusOK, page)
}

// AssignCleaner assigns a cleaner to a booking.
func (h *AdminHandler) AssignCleaner(c *gin.Context) {
	var input struct {
		CleanerID string `json:"cleanerId" binding:"required"`
		Notes     string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", gin.H{"details": err.Error()})
		return
	}

	b, msg, err := h.Bookings.AssignCleaner(c.Request.Context(), c.Param("id"), input.CleanerID, input.Notes)
	if err != nil {
		if errors.Is(err, admin.ErrAssignmentNotAllowed) {
			utils.JSONError(c, http.StatusConflict, err.Error(), nil)
			return
		}
		utils.JSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "message": msg})
}

// CancelBooking cancels a booking from the dashboard.
func (h *AdminHandler) CancelBooking(c *gin.Context) {
	b, msg, err := h.Bookings.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, admin.ErrAssignmentNotAllowed) {
			utils.JSONError(c, http.StatusConflict, err.Error(), nil)
			return
		}
		utils.JSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "message": msg})
}

// ListCleaners returns the active roster.
func (h *AdminHandler) ListCleaners(c *gin.Context) {
	cleaners, err := h.Cleaners.ListCleaners(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load cleaners", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleaners": cleaners})
}

// CreateCleaner adds a cleaner to the roster.
func (h *AdminHandler) CreateCleaner(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", gin.H{"details": err.Error()})
		return
	}

	cleaner, err := h.Cleaners.CreateCleaner(c.Request.Context(), input.Name, input.Email, input.Phone)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"cleaner": cleaner})
}

// UpdateCleaner modifies a roster entry.
func (h *AdminHandler) UpdateCleaner(c *gin.Context) {
	var cleaner models.Cleaner
	if err := c.ShouldBindJSON(&cleaner); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", gin.H{"details": err.Error()})
		return
	}
	cleaner.ID = c.Param("id")

	updated, err := h.Cleaners.UpdateCleaner(c.Request.Context(), &cleaner)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleaner": updated})
}

// DeactivateCleaner removes a cleaner from the roster.
func (h *AdminHandler) DeactivateCleaner(c *gin.Context) {
	if err := h.Cleaners.DeactivateCleaner(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cleaner deactivated"})
}
