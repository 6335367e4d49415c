package payment

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kosrental/internal/domain"
	"kosrental/internal/repository"
)

type Service struct {
	payments PaymentRepository
	bookings BookingRepository
}

func NewService(payments PaymentRepository, bookings BookingRepository) *Service {
	return &Service{payments: payments, bookings: bookings}
}

// CreatePayment records a proof submission against one of the caller's
// bookings. The payment starts PENDING and the proof reference is also
// mirrored onto the booking itself.
func (s *Service) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error) {
	owned, err := s.bookings.IsOwnedByUser(ctx, req.BookingID, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("check booking ownership: %w", err)
	}
	if !owned {
		return nil, ErrBookingNotFound
	}

	if err := s.bookings.SetPaymentProof(ctx, req.BookingID, req.PaymentProof); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("attach payment proof: %w", err)
	}

	p := &domain.Payment{
		BookingID:    req.BookingID,
		PaymentProof: req.PaymentProof,
		Status:       domain.PaymentPending,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return p, nil
}

// VerifyPayment sets the payment status to VERIFIED or REJECTED. The
// write is unconditional: verifying twice, or flipping a decision, just
// overwrites the previous status.
func (s *Service) VerifyPayment(ctx context.Context, paymentID int64, req VerifyPaymentRequest) (*domain.Payment, error) {
	status := domain.PaymentStatus(req.Status)
	if status != domain.PaymentVerified && status != domain.PaymentRejected {
		return nil, ErrValidation
	}

	p, err := s.payments.UpdateStatus(ctx, paymentID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update payment status: %w", err)
	}
	return p, nil
}

func (s *Service) ListMyPayments(ctx context.Context, userID int64) ([]PaymentDetails, error) {
	rows, err := s.payments.ListRowsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return buildDetails(rows, false), nil
}

func (s *Service) ListAllPayments(ctx context.Context) ([]PaymentDetails, error) {
	rows, err := s.payments.ListRowsAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return buildDetails(rows, true), nil
}

func buildDetails(rows []repository.PaymentRow, withUser bool) []PaymentDetails {
	out := make([]PaymentDetails, 0, len(rows))
	for _, row := range rows {
		d := PaymentDetails{
			ID:           row.ID,
			BookingID:    row.BookingID,
			PaymentProof: row.PaymentProof,
			Status:       row.Status,
			RoomCode:     row.RoomCode,
			TypeName:     row.TypeName,
			AmountDue:    domain.AmountDue(row.Price, row.MoveInDate, row.MoveOutDate),
			CreatedAt:    row.CreatedAt,
		}
		if withUser {
			d.UserName = row.UserName
			d.UserEmail = row.UserEmail
		}
		out = append(out, d)
	}
	return out
}
