// File: handlers/payment.go
package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"pristine/config"
	"pristine/services/booking"
	"pristine/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves the gateway return routes and the admin payment actions.
type PaymentHandler struct {
	Wizard   booking.WizardService
	Payments booking.PaymentHandler
	Logger   *zap.Logger
}

func NewPaymentHandler(wizard booking.WizardService, payments booking.PaymentHandler, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Wizard: wizard, Payments: payments, Logger: logger}
}

func frontendRedirect(path string, query url.Values) string {
	base := config.AppConfig.FrontendBaseURL
	if len(query) == 0 {
		return base + path
	}
	return fmt.Sprintf("%s%s?%s", base, path, query.Encode())
}

// PayPalReturn handles the browser coming back from an approved PayPal order.
// The capture runs here, then the browser is sent to the confirmation page.
func (h *PaymentHandler) PayPalReturn(c *gin.Context) {
	bookingID := c.Query("bookingId")
	if bookingID == "" {
		c.Redirect(http.StatusFound, frontendRedirect("/payment-error", url.Values{"message": {"missing booking reference"}}))
		return
	}

	bk, err := h.Wizard.CompleteRedirect(c.Request.Context(), bookingID)
	if err != nil {
		h.Logger.Error("paypal capture failed", zap.String("bookingID", bookingID), zap.Error(err))
		c.Redirect(http.StatusFound, frontendRedirect("/payment-error", url.Values{
			"bookingId": {bookingID},
			"message":   {"We could not confirm your payment. No charge was made."},
		}))
		return
	}
	c.Redirect(http.StatusFound, frontendRedirect("/payment-success", url.Values{"bookingId": {bk.ID}}))
}

// PayPalCancel handles the browser backing out of PayPal approval.
func (h *PaymentHandler) PayPalCancel(c *gin.Context) {
	bookingID := c.Query("bookingId")
	if bookingID != "" {
		if err := h.Wizard.FailRedirect(c.Request.Context(), bookingID, "canceled at gateway"); err != nil {
			h.Logger.Warn("failed to mark canceled paypal payment", zap.String("bookingID", bookingID), zap.Error(err))
		}
	}
	c.Redirect(http.StatusFound, frontendRedirect("/payment-cancelled", url.Values{
		"bookingId": {bookingID},
		"message":   {"Payment was canceled before completion."},
	}))
}

// VerifyCash marks a cash transaction as collected. Admin only.
func (h *PaymentHandler) VerifyCash(c *gin.Context) {
	tx, err := h.Payments.VerifyCash(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx, "message": "cash payment verified"})
}

// Refund refunds a completed transaction. Admin only.
func (h *PaymentHandler) Refund(c *gin.Context) {
	tx, err := h.Payments.Refund(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx, "message": "payment refunded"})
}
