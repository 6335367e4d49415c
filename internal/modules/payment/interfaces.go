package payment

import (
	"context"

	"kosrental/internal/domain"
	"kosrental/internal/repository"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	UpdateStatus(ctx context.Context, paymentID int64, status domain.PaymentStatus) (*domain.Payment, error)
	ListRowsByUser(ctx context.Context, userID int64) ([]repository.PaymentRow, error)
	ListRowsAll(ctx context.Context) ([]repository.PaymentRow, error)
}

type BookingRepository interface {
	IsOwnedByUser(ctx context.Context, bookingID, userID int64) (bool, error)
	SetPaymentProof(ctx context.Context, bookingID int64, proofRef string) error
}
