package booking

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"kosrental/internal/domain"
	pkgvalidator "kosrental/internal/pkg/validator"
	"kosrental/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	payments PaymentRepository
	rentals  RentalRepository

	locks roomLocks
}

func NewService(bookings BookingRepository, rooms RoomRepository, payments PaymentRepository, rentals RentalRepository) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		payments: payments,
		rentals:  rentals,
	}
}

// roomLocks serializes the conflict-check-then-insert window per room,
// so two concurrent creations for overlapping dates cannot both pass
// the check. The DB unique index below is the backstop for
// multi-process deployments.
type roomLocks struct {
	mu sync.Mutex
	m  map[int64]*sync.Mutex
}

func (l *roomLocks) forRoom(roomID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.m == nil {
		l.m = make(map[int64]*sync.Mutex)
	}
	lk, ok := l.m[roomID]
	if !ok {
		lk = &sync.Mutex{}
		l.m[roomID] = lk
	}
	return lk
}

func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if req.DurationMonths <= 0 {
		return nil, ErrValidation
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	// A room mid-repair rejects every booking, whatever the dates.
	if room.Status == domain.RoomMaintenance {
		return nil, ErrRoomUnavailable
	}

	moveOut := domain.MoveOutFor(req.MoveInDate, req.DurationMonths)

	lk := s.locks.forRoom(req.RoomID)
	lk.Lock()
	defer lk.Unlock()

	conflict, err := s.bookings.HasConflict(ctx, req.RoomID, req.MoveInDate, moveOut)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrScheduleConflict
	}

	b := &domain.Booking{
		UserID:      req.UserID,
		RoomID:      req.RoomID,
		MoveInDate:  req.MoveInDate,
		MoveOutDate: moveOut,
		Status:      domain.BookingPending,
		IdentityDoc: req.IdentityDoc,
		Photo:       req.Photo,
	}
	if errs := pkgvalidator.Validate(b); errs != nil {
		return nil, ErrValidation
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_no_double_booking" {
				return nil, ErrScheduleConflict
			}
		}
		return nil, err
	}

	return b, nil
}

// UpdateBookingStatus resolves a pending booking. Approval flips the
// booking, occupies the room and writes the rental in one committed
// unit; rejection touches the booking only. A booking that is not
// PENDING cannot transition again.
func (s *Service) UpdateBookingStatus(ctx context.Context, bookingID int64, newStatus domain.BookingStatus) (*domain.Booking, error) {
	if newStatus != domain.BookingApproved && newStatus != domain.BookingRejected {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Status != domain.BookingPending {
		return nil, ErrInvalidTransition
	}

	if newStatus == domain.BookingRejected {
		if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingRejected); err != nil {
			return nil, err
		}
		b.Status = domain.BookingRejected
		return b, nil
	}

	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, err
	}

	// Billing duration is recomputed from the stored dates, not taken
	// from the originally requested month count.
	months := domain.BillableMonths(b.MoveInDate, b.MoveOutDate)
	rental := &domain.Rental{
		UserID:      b.UserID,
		RoomID:      b.RoomID,
		StartDate:   b.MoveInDate,
		DueDate:     b.MoveOutDate,
		Status:      domain.RentalActive,
		TotalAmount: room.Price * float64(months),
	}

	if err := s.bookings.ApproveWithRental(ctx, bookingID, rental); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b.Status = domain.BookingApproved
	return b, nil
}

// UploadPaymentProof records the proof on the booking and appends a
// PENDING payment row. The inline field and the payment history are
// maintained in parallel, both on every upload.
func (s *Service) UploadPaymentProof(ctx context.Context, bookingID, callerID int64, proofRef string) (*domain.Booking, error) {
	if err := s.checkOwnership(ctx, bookingID, callerID); err != nil {
		return nil, err
	}

	if err := s.bookings.SetPaymentProof(ctx, bookingID, proofRef); err != nil {
		return nil, err
	}

	p := &domain.Payment{
		BookingID:    bookingID,
		PaymentProof: proofRef,
		Status:       domain.PaymentPending,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) UploadAgreementProof(ctx context.Context, bookingID, callerID int64, proofRef string) (*domain.Booking, error) {
	if err := s.checkOwnership(ctx, bookingID, callerID); err != nil {
		return nil, err
	}

	if err := s.bookings.SetAgreementProof(ctx, bookingID, proofRef); err != nil {
		return nil, err
	}

	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) checkOwnership(ctx context.Context, bookingID, callerID int64) error {
	owned, err := s.bookings.IsOwnedByUser(ctx, bookingID, callerID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListMyBookings(ctx context.Context, userID int64) ([]BookingDetails, error) {
	rows, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	pays, err := s.payments.ListByBookingUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return buildDetails(rows, pays, false), nil
}

// ListMyRentals returns the caller's tenancy records, newest first.
func (s *Service) ListMyRentals(ctx context.Context, userID int64) ([]domain.Rental, error) {
	return s.rentals.ListByUser(ctx, userID)
}

func (s *Service) ListAllBookings(ctx context.Context) ([]BookingDetails, error) {
	rows, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	pays, err := s.payments.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return buildDetails(rows, pays, true), nil
}

func buildDetails(rows []repository.BookingRow, pays []domain.Payment, withUser bool) []BookingDetails {
	byBooking := make(map[int64][]PaymentSummary, len(pays))
	for _, p := range pays {
		byBooking[p.BookingID] = append(byBooking[p.BookingID], PaymentSummary{
			ID:           p.ID,
			PaymentProof: p.PaymentProof,
			Status:       string(p.Status),
			CreatedAt:    p.CreatedAt,
		})
	}

	out := make([]BookingDetails, 0, len(rows))
	for _, r := range rows {
		facilities := []string{}
		if r.TypeFacilities != "" {
			_ = json.Unmarshal([]byte(r.TypeFacilities), &facilities)
		}

		d := BookingDetails{
			ID:             r.ID,
			Status:         r.Status,
			MoveInDate:     r.MoveInDate,
			MoveOutDate:    r.MoveOutDate,
			IdentityDoc:    deref(r.IdentityDoc),
			Photo:          deref(r.Photo),
			PaymentProof:   deref(r.PaymentProof),
			AgreementProof: deref(r.AgreementProof),
			AmountDue:      domain.AmountDue(r.Price, r.MoveInDate, r.MoveOutDate),
			Room: RoomSummary{
				ID:         r.RoomID,
				Code:       r.RoomCode,
				Floor:      r.Floor,
				TypeName:   r.TypeName,
				Facilities: facilities,
				Price:      r.Price,
			},
			Payments:  byBooking[r.ID],
			CreatedAt: r.CreatedAt,
		}
		if d.Payments == nil {
			d.Payments = []PaymentSummary{}
		}
		if withUser {
			d.User = &UserSummary{ID: r.UserID, Name: r.UserName, Email: r.UserEmail}
		}
		out = append(out, d)
	}
	return out
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
