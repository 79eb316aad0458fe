package models

import "time"

// Payment statuses. Only completed payments count towards revenue.
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
	PaymentStatusFailed    = "failed"
)

// Payment is an externally-reported transaction linked to a subscriber by
// identifier only. There is no cascade: deleting the subscriber leaves the
// ledger entry in place.
type Payment struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriber_id"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	Method       string    `json:"method"`
	Notes        *string   `json:"notes,omitempty"`
	PaidAt       time.Time `json:"paid_at"`
}

// PaymentCreateRequest is the JSON payload for recording a payment.
// Status defaults to completed and method to pix when omitted.
type PaymentCreateRequest struct {
	SubscriberID string   `json:"subscriber_id" validate:"required"`
	Amount       float64  `json:"amount" validate:"gte=0"`
	Status       *string  `json:"status,omitempty" validate:"omitempty,oneof=completed pending failed"`
	Method       *string  `json:"method,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	PaidAt       *string  `json:"paid_at,omitempty"`
}
