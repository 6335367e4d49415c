package booking

import (
	"context"
	"time"

	"kosrental/internal/domain"
	"kosrental/internal/repository"
)

// BookingRepository defines the storage operations the lifecycle
// manager needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	HasConflict(ctx context.Context, roomID int64, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
	ApproveWithRental(ctx context.Context, bookingID int64, rental *domain.Rental) error
	IsOwnedByUser(ctx context.Context, bookingID, userID int64) (bool, error)
	SetPaymentProof(ctx context.Context, bookingID int64, proofRef string) error
	SetAgreementProof(ctx context.Context, bookingID int64, proofRef string) error
	ListByUser(ctx context.Context, userID int64) ([]repository.BookingRow, error)
	ListAll(ctx context.Context) ([]repository.BookingRow, error)
}

// RoomRepository — only the lookup the lifecycle manager uses.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// PaymentRepository — payment rows maintained alongside the booking's
// inline proof field.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByBookingUser(ctx context.Context, userID int64) ([]domain.Payment, error)
	ListAll(ctx context.Context) ([]domain.Payment, error)
}

// RentalRepository — the tenancy records written on approval.
type RentalRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Rental, error)
}
