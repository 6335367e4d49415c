package booking

import "time"

type CreateBookingRequest struct {
	UserID         int64     `json:"-"`
	RoomID         int64     `json:"room_id" binding:"required"`
	MoveInDate     time.Time `json:"move_in_date" binding:"required"`
	DurationMonths int       `json:"duration_months" binding:"required,gt=0"`
	IdentityDoc    string    `json:"identity_doc" binding:"required"`
	Photo          string    `json:"photo"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

type UploadProofRequest struct {
	ProofRef string `json:"proof_ref" binding:"required"`
}

type RoomSummary struct {
	ID         int64    `json:"id"`
	Code       string   `json:"code"`
	Floor      int      `json:"floor"`
	TypeName   string   `json:"type_name"`
	Facilities []string `json:"facilities"`
	Price      float64  `json:"price"`
}

type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PaymentSummary struct {
	ID           int64     `json:"id"`
	PaymentProof string    `json:"payment_proof"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// BookingDetails is the read model served to both the tenant and the
// admin listing. AmountDue is recomputed on every read from the room
// price snapshot and the booking dates.
type BookingDetails struct {
	ID             int64            `json:"id"`
	Status         string           `json:"status"`
	MoveInDate     time.Time        `json:"move_in_date"`
	MoveOutDate    time.Time        `json:"move_out_date"`
	IdentityDoc    string           `json:"identity_doc,omitempty"`
	Photo          string           `json:"photo,omitempty"`
	PaymentProof   string           `json:"payment_proof,omitempty"`
	AgreementProof string           `json:"agreement_proof,omitempty"`
	AmountDue      float64          `json:"amount_due"`
	Room           RoomSummary      `json:"room"`
	User           *UserSummary     `json:"user,omitempty"`
	Payments       []PaymentSummary `json:"payments"`
	CreatedAt      time.Time        `json:"created_at"`
}
