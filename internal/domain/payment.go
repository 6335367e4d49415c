package domain

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentVerified PaymentStatus = "VERIFIED"
	PaymentRejected PaymentStatus = "REJECTED"
)

// Payment is one submitted proof for a booking. A booking accumulates
// several of these over its lifetime; each is verified on its own.
type Payment struct {
	ID           int64         `json:"id"`
	BookingID    int64         `json:"booking_id" validate:"required"`
	PaymentProof string        `json:"payment_proof"`
	Status       PaymentStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
