// File: services/booking/payment.go
package booking

import (
	"context"
	"errors"
	"fmt"

	"pristine/config"
	bookingRepo "pristine/database/repository/booking"
	paymentRepo "pristine/database/repository/payment"
	"pristine/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentHandler processes the payment step and the two-phase redirect
// protocol, and exposes the admin transaction actions.
type PaymentHandler interface {
	// ProcessPayment creates a transaction for the booking and branches on
	// the payment method.
	ProcessPayment(ctx context.Context, b *models.Booking, req models.PaymentRequest) (*models.PaymentResult, error)
	// CompleteRedirect captures a returned redirect payment (phase 2).
	CompleteRedirect(ctx context.Context, bookingID string) (*models.Transaction, error)
	// FailRedirect marks a canceled/failed redirect payment.
	FailRedirect(ctx context.Context, bookingID, reason string) (*models.Transaction, error)
	// VerifyCash marks a pending cash transaction completed (admin action).
	VerifyCash(ctx context.Context, transactionID string) (*models.Transaction, error)
	// Refund marks a completed transaction refunded (admin action).
	Refund(ctx context.Context, transactionID string) (*models.Transaction, error)
}

// UnifiedPaymentHandler is the production PaymentHandler.
type UnifiedPaymentHandler struct {
	Logger      *zap.Logger
	Repo        paymentRepo.PaymentRepository
	BookingRepo bookingRepo.BookingRepository
	Card        CardGateway
	Redirect    RedirectGateway
}

// NewPaymentHandler wires the handler with its gateways.
func NewPaymentHandler(logger *zap.Logger, repo paymentRepo.PaymentRepository, bRepo bookingRepo.BookingRepository, card CardGateway, redirect RedirectGateway) *UnifiedPaymentHandler {
	return &UnifiedPaymentHandler{
		Logger:      logger,
		Repo:        repo,
		BookingRepo: bRepo,
		Card:        card,
		Redirect:    redirect,
	}
}

// ProcessPayment creates a transaction for the booking and branches on the
// method: card charges immediately, the redirect method returns an approval
// URL and stays pending, cash and bank transfer are recorded pending but the
// step succeeds.
func (h *UnifiedPaymentHandler) ProcessPayment(ctx context.Context, b *models.Booking, req models.PaymentRequest) (*models.PaymentResult, error) {
	if b == nil {
		return nil, errors.New("payment requires a booking")
	}
	if b.Service.ID == "" || b.ScheduledAt.IsZero() {
		return nil, errors.New("booking is missing its service or date")
	}
	if !req.Method.Valid() {
		return nil, fmt.Errorf("unsupported payment method: %s", req.Method)
	}

	currency := b.Service.Currency
	if currency == "" {
		currency = config.AppConfig.DefaultCurrency
	}
	tx := &models.Transaction{
		ID:        uuid.New().String(),
		BookingID: b.ID,
		Amount:    b.Service.BasePrice,
		Currency:  currency,
		Method:    req.Method,
		Status:    models.PaymentStatusPending,
	}

	switch req.Method {
	case models.PaymentMethodCreditCard:
		return h.processCardPayment(ctx, b, req, tx)
	case models.PaymentMethodPayPal:
		return h.processRedirectPayment(ctx, b, tx)
	default: // cash, bank_transfer
		return h.processDeferredPayment(ctx, tx)
	}
}

func (h *UnifiedPaymentHandler) processCardPayment(ctx context.Context, b *models.Booking, req models.PaymentRequest, tx *models.Transaction) (*models.PaymentResult, error) {
	if verr := checkCardFields(req.Card); verr != nil {
		return nil, verr
	}
	if err := h.Repo.Create(tx); err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Cleaning booking %s (%s)", b.ID, b.Service.Name)
	gatewayRef, err := h.Card.Charge(ctx, tx.Amount, tx.Currency, *req.Card, desc)
	if err != nil {
		if statusErr := h.Repo.SetStatus(tx.ID, models.PaymentStatusFailed, ""); statusErr != nil {
			h.Logger.Error("failed to mark transaction failed", zap.Error(statusErr))
		}
		return nil, fmt.Errorf("card payment failed: %w", err)
	}

	if err := h.Repo.SetStatus(tx.ID, models.PaymentStatusCompleted, gatewayRef); err != nil {
		return nil, err
	}
	tx.Status = models.PaymentStatusCompleted
	tx.TransactionID = gatewayRef

	h.Logger.Info("card payment completed", zap.String("transaction", tx.ID), zap.String("booking", b.ID))
	return &models.PaymentResult{Transaction: tx, BookingID: b.ID}, nil
}

func (h *UnifiedPaymentHandler) processRedirectPayment(ctx context.Context, b *models.Booking, tx *models.Transaction) (*models.PaymentResult, error) {
	orderID, approvalURL, err := h.Redirect.CreateOrder(ctx, tx.Amount, tx.Currency, b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	tx.TransactionID = orderID
	if err := h.Repo.Create(tx); err != nil {
		return nil, err
	}

	h.Logger.Info("redirect payment initiated",
		zap.String("transaction", tx.ID),
		zap.String("booking", b.ID),
		zap.String("order", orderID))
	return &models.PaymentResult{
		Transaction:      tx,
		BookingID:        b.ID,
		RedirectRequired: true,
		ApprovalURL:      approvalURL,
	}, nil
}

func (h *UnifiedPaymentHandler) processDeferredPayment(ctx context.Context, tx *models.Transaction) (*models.PaymentResult, error) {
	if err := h.Repo.Create(tx); err != nil {
		return nil, err
	}
	// The transaction stays pending until the crew collects or the transfer
	// clears; the booking flow itself succeeds now.
	h.Logger.Info("deferred payment recorded", zap.String("transaction", tx.ID), zap.String("method", string(tx.Method)))
	return &models.PaymentResult{Transaction: tx, BookingID: tx.BookingID}, nil
}

// CompleteRedirect captures the gateway order after the customer approved it
// (phase 2 of the redirect protocol).
func (h *UnifiedPaymentHandler) CompleteRedirect(ctx context.Context, bookingID string) (*models.Transaction, error) {
	tx, err := h.Repo.GetByBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if tx.Method != models.PaymentMethodPayPal || tx.Status != models.PaymentStatusPending {
		return nil, fmt.Errorf("no pending redirect payment for booking %s", bookingID)
	}

	captureRef, err := h.Redirect.CaptureOrder(ctx, tx.TransactionID)
	if err != nil {
		if statusErr := h.Repo.SetStatus(tx.ID, models.PaymentStatusFailed, ""); statusErr != nil {
			h.Logger.Error("failed to mark transaction failed", zap.Error(statusErr))
		}
		return nil, fmt.Errorf("failed to capture gateway order: %w", err)
	}

	if err := h.Repo.SetStatus(tx.ID, models.PaymentStatusCompleted, captureRef); err != nil {
		return nil, err
	}
	tx.Status = models.PaymentStatusCompleted
	tx.TransactionID = captureRef

	h.Logger.Info("redirect payment captured", zap.String("transaction", tx.ID), zap.String("booking", bookingID))
	return tx, nil
}

// FailRedirect marks a canceled or failed redirect payment.
func (h *UnifiedPaymentHandler) FailRedirect(ctx context.Context, bookingID, reason string) (*models.Transaction, error) {
	tx, err := h.Repo.GetByBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if tx.Status != models.PaymentStatusPending {
		return tx, nil
	}
	if err := h.Repo.SetStatus(tx.ID, models.PaymentStatusFailed, ""); err != nil {
		return nil, err
	}
	tx.Status = models.PaymentStatusFailed

	h.Logger.Warn("redirect payment failed",
		zap.String("transaction", tx.ID),
		zap.String("booking", bookingID),
		zap.String("reason", reason))
	return tx, nil
}

// VerifyCash marks a pending cash transaction completed.
func (h *UnifiedPaymentHandler) VerifyCash(ctx context.Context, transactionID string) (*models.Transaction, error) {
	tx, err := h.Repo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if tx.Method != models.PaymentMethodCash {
		return nil, fmt.Errorf("transaction %s is not a cash payment", transactionID)
	}
	if tx.Status != models.PaymentStatusPending {
		return nil, fmt.Errorf("transaction %s is not pending", transactionID)
	}
	if err := h.Repo.SetStatus(tx.ID, models.PaymentStatusCompleted, ""); err != nil {
		return nil, err
	}
	tx.Status = models.PaymentStatusCompleted
	return tx, nil
}

// Refund marks a completed transaction refunded.
func (h *UnifiedPaymentHandler) Refund(ctx context.Context, transactionID string) (*models.Transaction, error) {
	tx, err := h.Repo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if tx.Status != models.PaymentStatusCompleted {
		return nil, fmt.Errorf("only completed transactions can be refunded")
	}
	if err := h.Repo.SetStatus(tx.ID, models.PaymentStatusRefunded, ""); err != nil {
		return nil, err
	}
	tx.Status = models.PaymentStatusRefunded

	h.Logger.Info("transaction refunded", zap.String("transaction", tx.ID))
	return tx, nil
}

func checkCardFields(card *models.CardDetails) *ValidationError {
	fields := map[string]string{}
	if card == nil {
		fields["cardDetails"] = "card details are required for card payment"
		return &ValidationError{Fields: fields}
	}
	if card.Number == "" {
		fields["cardNumber"] = "card number is required"
	}
	if card.Expiry == "" {
		fields["expiry"] = "expiry is required"
	}
	if card.CVC == "" {
		fields["cvc"] = "cvc is required"
	}
	if card.HolderName == "" {
		fields["holderName"] = "cardholder name is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
