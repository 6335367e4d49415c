package domain

import (
	"math"
	"time"
)

type BookingStatus string

const (
	BookingPending  BookingStatus = "PENDING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

type Booking struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"user_id" validate:"required"`
	RoomID         int64         `json:"room_id" validate:"required"`
	MoveInDate     time.Time     `json:"move_in_date" validate:"required"`
	MoveOutDate    time.Time     `json:"move_out_date"`
	Status         BookingStatus `json:"status"`
	IdentityDoc    string        `json:"identity_doc,omitempty"`
	Photo          string        `json:"photo,omitempty"`
	PaymentProof   string        `json:"payment_proof,omitempty"`
	AgreementProof string        `json:"agreement_proof,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	User *User `json:"user,omitempty"`
	Room *Room `json:"room,omitempty"`
}

// MoveOutFor computes the move-out date for a booking created at
// moveIn for durationMonths. Calendar-month arithmetic: Go normalizes
// overflow, so Jan 31 + 1 month lands on Mar 2/3 rather than Feb 28.
func MoveOutFor(moveIn time.Time, durationMonths int) time.Time {
	return moveIn.AddDate(0, durationMonths, 0)
}

// BillableMonths is the duration used for billing: the day count
// between the two dates divided into 30-day blocks, rounded up. Every
// place that bills or displays an amount due must use this, not the
// originally requested duration.
func BillableMonths(moveIn, moveOut time.Time) int {
	days := moveOut.Sub(moveIn).Hours() / 24
	if days <= 0 {
		return 0
	}
	return int(math.Ceil(days / 30))
}

// AmountDue is the total for a stay at the room's snapshot price.
func AmountDue(price float64, moveIn, moveOut time.Time) float64 {
	return price * float64(BillableMonths(moveIn, moveOut))
}

// Overlaps reports whether two date intervals conflict. Bounds are
// inclusive on both ends: a booking ending Feb 1 blocks one starting
// Feb 1.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
