package catalog

import "time"

type CreateRoomRequest struct {
	Code       string `json:"code" binding:"required"`
	RoomTypeID int64  `json:"room_type_id" binding:"required,gt=0"`
	Floor      int    `json:"floor" binding:"omitempty,gt=0"`
}

type UpdateRoomRequest struct {
	Code       *string `json:"code" binding:"omitempty,min=1"`
	RoomTypeID *int64  `json:"room_type_id" binding:"omitempty,gt=0"`
	Floor      *int    `json:"floor" binding:"omitempty,gt=0"`
	Status     *string `json:"status" binding:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE"`
}

type CreateRoomTypeRequest struct {
	Name       string   `json:"name" binding:"required"`
	Price      float64  `json:"price" binding:"required,gte=0"`
	Facilities []string `json:"facilities"`
}

type UpdateRoomTypeRequest struct {
	Name       *string  `json:"name" binding:"omitempty,min=1"`
	Price      *float64 `json:"price" binding:"omitempty,gte=0"`
	Facilities []string `json:"facilities"`
	IsActive   *bool    `json:"is_active"`
}

// RoomDetails is the public room listing view: the room with its type
// name and facilities inlined.
type RoomDetails struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	RoomTypeID int64     `json:"room_type_id"`
	Price      float64   `json:"price"`
	Floor      int       `json:"floor"`
	Status     string    `json:"status"`
	TypeName   string    `json:"room_type"`
	Facilities []string  `json:"facilities"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoomTypeDetails adds the room inventory counts to a type.
type RoomTypeDetails struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	Facilities     []string `json:"facilities"`
	IsActive       bool     `json:"is_active"`
	TotalRooms     int64    `json:"total_rooms"`
	AvailableRooms int64    `json:"available_rooms"`
}
