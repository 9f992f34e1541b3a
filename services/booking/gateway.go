// File: services/booking/gateway.go
package booking

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"pristine/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/paymentmethod"
)

// CardGateway charges a card immediately and returns the gateway reference.
type CardGateway interface {
	Charge(ctx context.Context, amount float64, currency string, card models.CardDetails, description string) (string, error)
}

// RedirectGateway implements the two-phase redirect protocol: phase 1 creates
// an order and yields its approval URL, phase 2 captures it after the
// customer returns.
type RedirectGateway interface {
	CreateOrder(ctx context.Context, amount float64, currency, bookingID string) (orderID, approvalURL string, err error)
	CaptureOrder(ctx context.Context, orderID string) (captureRef string, err error)
}

// StripeCardGateway charges cards through Stripe payment intents. The global
// stripe.Key is set at startup.
type StripeCardGateway struct{}

// Charge creates a payment method from the raw card fields, then creates and
// confirms a payment intent for the amount.
func (g *StripeCardGateway) Charge(ctx context.Context, amount float64, currency string, card models.CardDetails, description string) (string, error) {
	expMonth, expYear, err := parseExpiry(card.Expiry)
	if err != nil {
		return "", err
	}

	pm, err := paymentmethod.New(&stripe.PaymentMethodParams{
		Type: stripe.String("card"),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(strings.ReplaceAll(card.Number, " ", "")),
			ExpMonth: stripe.Int64(expMonth),
			ExpYear:  stripe.Int64(expYear),
			CVC:      stripe.String(card.CVC),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create payment method: %w", err)
	}

	pi, err := paymentintent.New(&stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(math.Round(amount * 100))),
		Currency:      stripe.String(strings.ToLower(currency)),
		PaymentMethod: stripe.String(pm.ID),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to confirm payment intent: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return "", fmt.Errorf("payment intent not successful: %s", pi.Status)
	}
	return pi.ID, nil
}

// parseExpiry accepts MM/YY or MM/YYYY.
func parseExpiry(expiry string) (int64, int64, error) {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid expiry format: %s", expiry)
	}
	month, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid expiry month: %s", parts[0])
	}
	year, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid expiry year: %s", parts[1])
	}
	if year < 100 {
		year += 2000
	}
	return month, year, nil
}
