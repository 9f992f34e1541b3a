// File: handlers/booking.go
package handlers

import (
	"errors"
	"net/http"

	"pristine/middleware"
	"pristine/services/booking"
	"pristine/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the customer's own bookings.
type BookingHandler struct {
	Svc    booking.CrudService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.CrudService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

func (h *BookingHandler) crudError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrNotBookingOwner):
		utils.JSONError(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, booking.ErrBookingNotEditable), errors.Is(err, booking.ErrReviewNotAllowed):
		utils.JSONError(c, http.StatusConflict, err.Error(), nil)
	default:
		utils.JSONError(c, http.StatusNotFound, err.Error(), nil)
	}
}

// ListMine returns the customer's bookings, newest first.
func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.Svc.ListBookings(middleware.CurrentUserID(c))
	if err != nil {
		h.Logger.Error("failed to list bookings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load bookings", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// Get returns one of the customer's bookings.
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Svc.GetBooking(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.crudError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// Update amends instructions and phone on a pending booking.
func (h *BookingHandler) Update(c *gin.Context) {
	var input struct {
		SpecialInstructions string `json:"specialInstructions"`
		Phone               string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", gin.H{"details": err.Error()})
		return
	}

	b, err := h.Svc.UpdateDetails(middleware.CurrentUserID(c), c.Param("id"), input.SpecialInstructions, input.Phone)
	if err != nil {
		h.crudError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// Cancel cancels the customer's own booking.
func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.Svc.CancelBooking(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.crudError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "message": "Booking canceled successfully"})
}

// Review attaches a review to a completed booking.
func (h *BookingHandler) Review(c *gin.Context) {
	var input struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", gin.H{"details": err.Error()})
		return
	}

	b, err := h.Svc.SubmitReview(middleware.CurrentUserID(c), c.Param("id"), input.Rating, input.Comment)
	if err != nil {
		h.crudError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "message": "Thanks for your review"})
}
