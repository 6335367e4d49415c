package repository

import (
	"context"
	"time"

	"kosrental/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	UserID         int64     `gorm:"column:user_id;index"`
	RoomID         int64     `gorm:"column:room_id;index"`
	MoveInDate     time.Time `gorm:"column:move_in_date"`
	MoveOutDate    time.Time `gorm:"column:move_out_date"`
	Status         string    `gorm:"column:status"`
	IdentityDoc    *string   `gorm:"column:identity_doc"`
	Photo          *string   `gorm:"column:photo"`
	PaymentProof   *string   `gorm:"column:payment_proof"`
	AgreementProof *string   `gorm:"column:agreement_proof"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:             m.ID,
		UserID:         m.UserID,
		RoomID:         m.RoomID,
		MoveInDate:     m.MoveInDate,
		MoveOutDate:    m.MoveOutDate,
		Status:         domain.BookingStatus(m.Status),
		IdentityDoc:    strDeref(m.IdentityDoc),
		Photo:          strDeref(m.Photo),
		PaymentProof:   strDeref(m.PaymentProof),
		AgreementProof: strDeref(m.AgreementProof),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:             b.ID,
		UserID:         b.UserID,
		RoomID:         b.RoomID,
		MoveInDate:     b.MoveInDate,
		MoveOutDate:    b.MoveOutDate,
		Status:         string(b.Status),
		IdentityDoc:    strPtr(b.IdentityDoc),
		Photo:          strPtr(b.Photo),
		PaymentProof:   strPtr(b.PaymentProof),
		AgreementProof: strPtr(b.AgreementProof),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func strDeref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func strPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// HasConflict reports whether any PENDING or APPROVED booking on the
// room overlaps [start, end]. Bounds are inclusive on both ends, so a
// stay ending on a date blocks another starting that same date.
// Rejected bookings never conflict.
func (r *BookingRepository) HasConflict(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	var cnt int64
	q := `
SELECT COUNT(1)
FROM bookings
WHERE room_id = ?
  AND status IN (?, ?)
  AND move_in_date <= ?
  AND move_out_date >= ?
`
	tx := r.db.WithContext(ctx).
		Raw(q, roomID, string(domain.BookingPending), string(domain.BookingApproved), end, start).
		Scan(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ApproveWithRental commits the three-part approval effect as one
// unit: the booking flips to APPROVED, its room to OCCUPIED, and the
// rental record is inserted. A reader must never observe a partial
// state, so all three run in a single transaction.
func (r *BookingRepository) ApproveWithRental(ctx context.Context, bookingID int64, rental *domain.Rental) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&bookingModel{}).
			Where("id = ?", bookingID).
			Update("status", string(domain.BookingApproved))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Model(&roomModel{}).
			Where("id = ?", rental.RoomID).
			Update("status", string(domain.RoomOccupied)).Error; err != nil {
			return err
		}

		m := toRentalModel(rental)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*rental = *toDomainRental(m)
		return nil
	})
}

func (r *BookingRepository) IsOwnedByUser(ctx context.Context, bookingID, userID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND user_id = ?", bookingID, userID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *BookingRepository) SetPaymentProof(ctx context.Context, bookingID int64, proofRef string) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Update("payment_proof", proofRef)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) SetAgreementProof(ctx context.Context, bookingID int64, proofRef string) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Update("agreement_proof", proofRef)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// BookingRow is the denormalized listing projection: a booking joined
// with its tenant, room and room type.
type BookingRow struct {
	ID             int64     `gorm:"column:id"`
	UserID         int64     `gorm:"column:user_id"`
	UserName       string    `gorm:"column:user_name"`
	UserEmail      string    `gorm:"column:user_email"`
	RoomID         int64     `gorm:"column:room_id"`
	RoomCode       string    `gorm:"column:room_code"`
	Floor          int       `gorm:"column:floor"`
	TypeName       string    `gorm:"column:type_name"`
	TypeFacilities string    `gorm:"column:type_facilities"`
	Price          float64   `gorm:"column:price"`
	MoveInDate     time.Time `gorm:"column:move_in_date"`
	MoveOutDate    time.Time `gorm:"column:move_out_date"`
	Status         string    `gorm:"column:status"`
	IdentityDoc    *string   `gorm:"column:identity_doc"`
	Photo          *string   `gorm:"column:photo"`
	PaymentProof   *string   `gorm:"column:payment_proof"`
	AgreementProof *string   `gorm:"column:agreement_proof"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

const bookingRowSelect = `bookings.id, bookings.user_id, bookings.room_id, bookings.move_in_date, bookings.move_out_date,
bookings.status, bookings.identity_doc, bookings.photo, bookings.payment_proof, bookings.agreement_proof, bookings.created_at,
users.name AS user_name, users.email AS user_email,
rooms.code AS room_code, rooms.floor, rooms.price,
room_types.name AS type_name, room_types.facilities AS type_facilities`

func (r *BookingRepository) bookingRowQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings").
		Select(bookingRowSelect).
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id")
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]BookingRow, error) {
	var rows []BookingRow
	tx := r.bookingRowQuery(ctx).
		Where("bookings.user_id = ?", userID).
		Order("bookings.created_at DESC").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]BookingRow, error) {
	var rows []BookingRow
	tx := r.bookingRowQuery(ctx).
		Order("bookings.created_at DESC").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// ListActiveForRoom returns the PENDING/APPROVED bookings of a room,
// the set the no-overlap invariant is stated over.
func (r *BookingRepository) ListActiveForRoom(ctx context.Context, roomID int64) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ? AND status IN (?, ?)", roomID, string(domain.BookingPending), string(domain.BookingApproved)).
		Order("move_in_date ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
