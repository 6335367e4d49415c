package domain

import "time"

type RentalStatus string

const (
	RentalActive RentalStatus = "ACTIVE"
)

// Rental is the committed tenancy record. It is created in exactly one
// place: the approval of a booking.
type Rental struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	RoomID      int64        `json:"room_id"`
	StartDate   time.Time    `json:"start_date"`
	DueDate     time.Time    `json:"due_date"`
	Status      RentalStatus `json:"status"`
	TotalAmount float64      `json:"total_amount"`
	CreatedAt   time.Time    `json:"created_at"`
}
