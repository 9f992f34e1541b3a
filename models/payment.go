package models

import "time"

// PaymentMethod identifies how the customer pays.
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// Valid reports whether the method is one of the supported values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodPayPal, PaymentMethodCash, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// RequiresRedirect reports whether paying with this method navigates the
// customer away to an external approval page.
func (m PaymentMethod) RequiresRedirect() bool {
	return m == PaymentMethodPayPal
}

// PaymentStatus is the lifecycle state of a transaction.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// CardDetails carries the card fields collected on the payment step. Only
// required-field checks are applied here; the gateway performs the real
// card validation.
type CardDetails struct {
	Number     string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
	HolderName string `json:"holderName"`
}

// PaymentRequest is the payment-step submission.
type PaymentRequest struct {
	BookingID string        `json:"bookingId"`
	Method    PaymentMethod `json:"paymentMethod"`
	Card      *CardDetails  `json:"cardDetails,omitempty"`
}

// Transaction is the persisted payment record. A transaction never exists
// without a referencing booking.
type Transaction struct {
	ID            string        `bson:"id" json:"id"`
	BookingID     string        `bson:"booking_id" json:"bookingId"`
	Amount        float64       `bson:"amount" json:"amount"`
	Currency      string        `bson:"currency" json:"currency"`
	Method        PaymentMethod `bson:"method" json:"paymentMethod"`
	Status        PaymentStatus `bson:"status" json:"status"`
	TransactionID string        `bson:"transaction_id,omitempty" json:"transactionId,omitempty"` // gateway reference
	CreatedAt     time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updatedAt"`
}

// PaymentResult is what the payment step returns. For redirect methods the
// transaction stays pending and ApprovalURL carries the continuation; for the
// others the result is final.
type PaymentResult struct {
	Transaction      *Transaction `json:"transaction"`
	BookingID        string       `json:"bookingId"`
	RedirectRequired bool         `json:"redirectRequired,omitempty"`
	ApprovalURL      string       `json:"approvalUrl,omitempty"`
}
