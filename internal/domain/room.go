package domain

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

// RoomType is the catalog template a room points at. Facilities is an
// ordered list; the repository decides how it is persisted.
type RoomType struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name" validate:"required"`
	Price      float64   `json:"price" validate:"gte=0"`
	Facilities []string  `json:"facilities"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Room is a physical unit. Price is a snapshot copied from its type so
// that later type price changes do not rewrite history for existing
// bookings and rentals.
type Room struct {
	ID         int64      `json:"id"`
	Code       string     `json:"code" validate:"required"`
	RoomTypeID int64      `json:"room_type_id" validate:"required"`
	Price      float64    `json:"price"`
	Floor      int        `json:"floor"`
	Status     RoomStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Type *RoomType `json:"type,omitempty"`
}
