package payment

import "time"

type CreatePaymentRequest struct {
	UserID       int64  `json:"-"`
	BookingID    int64  `json:"booking_id" binding:"required,gt=0"`
	PaymentProof string `json:"payment_proof" binding:"required"`
}

type VerifyPaymentRequest struct {
	Status string `json:"status" binding:"required,oneof=VERIFIED REJECTED"`
}

// PaymentDetails is the verification view: the payment together with
// the tenant, room and recomputed amount due for its booking.
type PaymentDetails struct {
	ID           int64     `json:"id"`
	BookingID    int64     `json:"booking_id"`
	PaymentProof string    `json:"payment_proof"`
	Status       string    `json:"status"`
	UserName     string    `json:"user_name,omitempty"`
	UserEmail    string    `json:"user_email,omitempty"`
	RoomCode     string    `json:"room_code"`
	TypeName     string    `json:"room_type"`
	AmountDue    float64   `json:"amount_due"`
	CreatedAt    time.Time `json:"created_at"`
}
