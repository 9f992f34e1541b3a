// File: services/booking/payment_test.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"pristine/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPaymentRepo struct {
	txs map[string]*models.Transaction
}

func (r *stubPaymentRepo) GetByID(id string) (*models.Transaction, error) {
	if tx, ok := r.txs[id]; ok {
		copied := *tx
		return &copied, nil
	}
	return nil, fmt.Errorf("transaction %s not found", id)
}

func (r *stubPaymentRepo) GetByBooking(bookingID string) (*models.Transaction, error) {
	for _, tx := range r.txs {
		if tx.BookingID == bookingID {
			copied := *tx
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("no transaction for booking %s", bookingID)
}

func (r *stubPaymentRepo) Create(tx *models.Transaction) error {
	copied := *tx
	r.txs[tx.ID] = &copied
	return nil
}

func (r *stubPaymentRepo) SetStatus(id string, status models.PaymentStatus, gatewayRef string) error {
	tx, ok := r.txs[id]
	if !ok {
		return fmt.Errorf("transaction %s not found", id)
	}
	tx.Status = status
	if gatewayRef != "" {
		tx.TransactionID = gatewayRef
	}
	return nil
}

type stubCardGateway struct {
	charges int
	err     error
}

func (g *stubCardGateway) Charge(ctx context.Context, amount float64, currency string, card models.CardDetails, description string) (string, error) {
	g.charges++
	if g.err != nil {
		return "", g.err
	}
	return "pi_test_123", nil
}

type stubRedirectGateway struct {
	orders   int
	captures int
	err      error
}

func (g *stubRedirectGateway) CreateOrder(ctx context.Context, amount float64, currency, bookingID string) (string, string, error) {
	g.orders++
	if g.err != nil {
		return "", "", g.err
	}
	return "order-1", "https://paypal.test/approve/order-1", nil
}

func (g *stubRedirectGateway) CaptureOrder(ctx context.Context, orderID string) (string, error) {
	g.captures++
	if g.err != nil {
		return "", g.err
	}
	return "capture-1", nil
}

func testBooking() *models.Booking {
	return &models.Booking{
		ID:          "b1",
		Service:     models.Service{ID: "s1", Name: "Deep Cleaning", BasePrice: 120, Currency: "usd"},
		CustomerID:  "u1",
		ScheduledAt: time.Now().AddDate(0, 0, 7),
		Status:      models.BookingStatusPending,
	}
}

func testCard() *models.CardDetails {
	return &models.CardDetails{Number: "4242424242424242", Expiry: "12/27", CVC: "123", HolderName: "Dana Smith"}
}

func newPaymentFixture() (*UnifiedPaymentHandler, *stubPaymentRepo, *stubCardGateway, *stubRedirectGateway) {
	repo := &stubPaymentRepo{txs: map[string]*models.Transaction{}}
	card := &stubCardGateway{}
	redirect := &stubRedirectGateway{}
	bookings := &stubBookingRepo{bookings: map[string]*models.Booking{}}
	return NewPaymentHandler(zap.NewNop(), repo, bookings, card, redirect), repo, card, redirect
}

func TestProcessCardPaymentCompletes(t *testing.T) {
	h, repo, card, _ := newPaymentFixture()

	result, err := h.ProcessPayment(context.Background(), testBooking(), models.PaymentRequest{
		Method: models.PaymentMethodCreditCard,
		Card:   testCard(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, card.charges)
	assert.False(t, result.RedirectRequired)
	assert.Equal(t, models.PaymentStatusCompleted, result.Transaction.Status)
	assert.Equal(t, "pi_test_123", result.Transaction.TransactionID)
	assert.Equal(t, 120.0, result.Transaction.Amount)

	stored, err := repo.GetByID(result.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, stored.Status)
}

func TestProcessCardPaymentRequiresCardFields(t *testing.T) {
	h, repo, card, _ := newPaymentFixture()

	_, err := h.ProcessPayment(context.Background(), testBooking(), models.PaymentRequest{
		Method: models.PaymentMethodCreditCard,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "cardDetails")
	assert.Zero(t, card.charges)
	assert.Empty(t, repo.txs)

	incomplete := testCard()
	incomplete.CVC = ""
	_, err = h.ProcessPayment(context.Background(), testBooking(), models.PaymentRequest{
		Method: models.PaymentMethodCreditCard,
		Card:   incomplete,
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "cvc")
}

func TestProcessCardPaymentDeclineMarksFailed(t *testing.T) {
	h, repo, card, _ := newPaymentFixture()
	card.err = errors.New("card declined")

	_, err := h.ProcessPayment(context.Background(), testBooking(), models.PaymentRequest{
		Method: models.PaymentMethodCreditCard,
		Card:   testCard(),
	})
	require.Error(t, err)

	tx, err := repo.GetByBooking("b1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, tx.Status)
}

func TestProcessRedirectPaymentReturnsApprovalURL(t *testing.T) {
	h, repo, _, redirect := newPaymentFixture()

	result, err := h.ProcessPayment(context.Background(), testBooking(), models.PaymentRequest{
		Method: models.PaymentMethodPayPal,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, redirect.orders)
	assert.True(t, result.RedirectRequired)
	assert.Equal(t, "https://paypal.test/approve/order-1", result.ApprovalURL)
	assert.Equal(t, models.PaymentStatusPending, result.Transaction.Status)

	tx, err := repo.GetByBooking("b1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", tx.TransactionID)
}

func TestProcessDeferredPaymentStaysPending(t *testing.T) {
	for _, method := range []models.PaymentMethod{models.PaymentMethodCash, models.PaymentMethodBankTransfer} {
		h, repo, card, redirect := newPaymentFixture()

		result, err := h.ProcessPayment(context.Background(), testBooking(), models.PaymentRequest{Method: method})
		require.NoError(t, err, "method %s", method)
		assert.False(t, result.RedirectRequired)
		assert.Equal(t, models.PaymentStatusPending, result.Transaction.Status)
		assert.Zero(t, card.charges)
		assert.Zero(t, redirect.orders)

		tx, err := repo.GetByBooking("b1")
		require.NoError(t, err)
		assert.Equal(t, method, tx.Method)
	}
}

func TestProcessPaymentRejectsUnknownMethod(t *testing.T) {
	h, _, _, _ := newPaymentFixture()

	_, err := h.ProcessPayment(context.Background(), testBooking(), models.PaymentRequest{Method: "crypto"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported payment method")
}

func TestCompleteRedirectCapturesOrder(t *testing.T) {
	h, repo, _, redirect := newPaymentFixture()
	repo.txs["tx-1"] = &models.Transaction{
		ID: "tx-1", BookingID: "b1", Method: models.PaymentMethodPayPal,
		Status: models.PaymentStatusPending, TransactionID: "order-1",
	}

	tx, err := h.CompleteRedirect(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 1, redirect.captures)
	assert.Equal(t, models.PaymentStatusCompleted, tx.Status)
	assert.Equal(t, "capture-1", tx.TransactionID)
}

func TestCompleteRedirectRejectsNonPendingOrNonRedirect(t *testing.T) {
	h, repo, _, redirect := newPaymentFixture()
	repo.txs["tx-1"] = &models.Transaction{
		ID: "tx-1", BookingID: "b1", Method: models.PaymentMethodCash,
		Status: models.PaymentStatusPending,
	}

	_, err := h.CompleteRedirect(context.Background(), "b1")
	require.Error(t, err)
	assert.Zero(t, redirect.captures)

	repo.txs["tx-1"].Method = models.PaymentMethodPayPal
	repo.txs["tx-1"].Status = models.PaymentStatusCompleted
	_, err = h.CompleteRedirect(context.Background(), "b1")
	require.Error(t, err)
	assert.Zero(t, redirect.captures)
}

func TestVerifyCashGuards(t *testing.T) {
	h, repo, _, _ := newPaymentFixture()
	repo.txs["tx-1"] = &models.Transaction{
		ID: "tx-1", BookingID: "b1", Method: models.PaymentMethodCash,
		Status: models.PaymentStatusPending,
	}

	tx, err := h.VerifyCash(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, tx.Status)

	// Already completed.
	_, err = h.VerifyCash(context.Background(), "tx-1")
	require.Error(t, err)

	repo.txs["tx-2"] = &models.Transaction{
		ID: "tx-2", BookingID: "b2", Method: models.PaymentMethodCreditCard,
		Status: models.PaymentStatusPending,
	}
	_, err = h.VerifyCash(context.Background(), "tx-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a cash payment")
}

func TestRefundOnlyCompletedTransactions(t *testing.T) {
	h, repo, _, _ := newPaymentFixture()
	repo.txs["tx-1"] = &models.Transaction{
		ID: "tx-1", BookingID: "b1", Method: models.PaymentMethodCreditCard,
		Status: models.PaymentStatusPending,
	}

	_, err := h.Refund(context.Background(), "tx-1")
	require.Error(t, err)

	repo.txs["tx-1"].Status = models.PaymentStatusCompleted
	tx, err := h.Refund(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, tx.Status)
}
