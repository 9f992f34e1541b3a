// File: handlers/wizard.go
package handlers

import (
	"errors"
	"net/http"

	"pristine/middleware"
	"pristine/models"
	"pristine/services/booking"
	"pristine/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WizardHandler exposes the booking wizard endpoints.
type WizardHandler struct {
	Svc    booking.WizardService
	Logger *zap.Logger
}

func NewWizardHandler(svc booking.WizardService, logger *zap.Logger) *WizardHandler {
	return &WizardHandler{Svc: svc, Logger: logger}
}

// wizardError maps service errors onto the API error shape.
func (h *WizardHandler) wizardError(c *gin.Context, err error) {
	var stepErr *booking.StepError
	var valErr *booking.ValidationError
	var busyErr *booking.SessionInFlightError

	switch {
	case errors.As(err, &valErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Booking details are invalid", gin.H{
			"fields":   valErr.Fields,
			"warnings": valErr.Warnings,
		})
	case errors.As(err, &stepErr):
		utils.JSONError(c, http.StatusConflict, stepErr.Message, nil)
	case errors.As(err, &busyErr):
		utils.JSONError(c, http.StatusConflict, "A request for this session is already in flight", nil)
	case errors.Is(err, booking.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error(), nil)
	default:
		h.Logger.Error("wizard operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong. Please try again.", nil)
	}
}

// Start creates a new wizard session.
func (h *WizardHandler) Start(c *gin.Context) {
	session, err := h.Svc.Start(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to start booking session", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Get returns the current session state.
func (h *WizardHandler) Get(c *gin.Context) {
	session, err := h.Svc.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SelectService stores the chosen service and advances to the details step.
func (h *WizardHandler) SelectService(c *gin.Context) {
	var input struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", gin.H{"details": err.Error()})
		return
	}

	session, err := h.Svc.SelectService(c.Request.Context(), c.Param("sessionID"), input.ServiceID)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SubmitDetails validates the form and creates the booking. The possibly
// corrected input is echoed back so the form can reflect the time reset.
func (h *WizardHandler) SubmitDetails(c *gin.Context) {
	var input models.BookingDetailsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", gin.H{"details": err.Error()})
		return
	}

	session, err := h.Svc.SubmitDetails(c.Request.Context(), c.Param("sessionID"), &input)
	if err != nil {
		var valErr *booking.ValidationError
		if errors.As(err, &valErr) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "Booking details are invalid", gin.H{
				"fields":    valErr.Fields,
				"warnings":  valErr.Warnings,
				"corrected": input,
			})
			return
		}
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "booking": session.Booking})
}

// SubmitPayment runs the payment step.
func (h *WizardHandler) SubmitPayment(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", gin.H{"details": err.Error()})
		return
	}

	session, result, err := h.Svc.SubmitPayment(c.Request.Context(), c.Param("sessionID"), req)
	if err != nil {
		var valErr *booking.ValidationError
		if errors.As(err, &valErr) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "Payment details are invalid", gin.H{"fields": valErr.Fields})
			return
		}
		var stepErr *booking.StepError
		if errors.As(err, &stepErr) {
			h.wizardError(c, err)
			return
		}
		h.Logger.Warn("payment failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Payment failed. Please try again or pick another method.", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "payment": result})
}

// Back moves one step backwards.
func (h *WizardHandler) Back(c *gin.Context) {
	session, err := h.Svc.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Cancel discards the session.
func (h *WizardHandler) Cancel(c *gin.Context) {
	if err := h.Svc.Cancel(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking session canceled"})
}
