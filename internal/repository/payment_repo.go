package repository

import (
	"context"
	"time"

	"kosrental/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	BookingID    int64     `gorm:"column:booking_id;index"`
	PaymentProof string    `gorm:"column:payment_proof"`
	Status       string    `gorm:"column:status"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainPayment(m paymentModel) *domain.Payment {
	return &domain.Payment{
		ID:           m.ID,
		BookingID:    m.BookingID,
		PaymentProof: m.PaymentProof,
		Status:       domain.PaymentStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toPaymentModel(p *domain.Payment) paymentModel {
	return paymentModel{
		ID:           p.ID,
		BookingID:    p.BookingID,
		PaymentProof: p.PaymentProof,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	m := toPaymentModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPayment(m)
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPayment(m), nil
}

// UpdateStatus overwrites the verification status unconditionally.
// Repeated verification calls re-set it; the last write wins.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, paymentID int64, status domain.PaymentStatus) (*domain.Payment, error) {
	tx := r.db.WithContext(ctx).
		Model(&paymentModel{}).
		Where("id = ?", paymentID).
		Update("status", string(status))
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, paymentID)
}

func (r *PaymentRepository) ListAll(ctx context.Context) ([]domain.Payment, error) {
	var models []paymentModel
	tx := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Payment, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}

func (r *PaymentRepository) ListByBookingUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	var models []paymentModel
	tx := r.db.WithContext(ctx).
		Table("payments").
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Where("bookings.user_id = ?", userID).
		Order("payments.created_at DESC").
		Select("payments.*").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Payment, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}

// PaymentRow is the verification listing projection: a payment joined
// with its booking, tenant, room and type. Price and the booking dates
// are carried so the amount due can be recomputed on read.
type PaymentRow struct {
	ID           int64     `gorm:"column:id"`
	BookingID    int64     `gorm:"column:booking_id"`
	PaymentProof string    `gorm:"column:payment_proof"`
	Status       string    `gorm:"column:status"`
	UserID       int64     `gorm:"column:user_id"`
	UserName     string    `gorm:"column:user_name"`
	UserEmail    string    `gorm:"column:user_email"`
	RoomCode     string    `gorm:"column:room_code"`
	TypeName     string    `gorm:"column:type_name"`
	Price        float64   `gorm:"column:price"`
	MoveInDate   time.Time `gorm:"column:move_in_date"`
	MoveOutDate  time.Time `gorm:"column:move_out_date"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

const paymentRowSelect = `payments.id, payments.booking_id, payments.payment_proof, payments.status, payments.created_at,
bookings.user_id, bookings.move_in_date, bookings.move_out_date,
users.name AS user_name, users.email AS user_email,
rooms.code AS room_code, rooms.price,
room_types.name AS type_name`

func (r *PaymentRepository) paymentRowQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("payments").
		Select(paymentRowSelect).
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id")
}

func (r *PaymentRepository) ListRowsByUser(ctx context.Context, userID int64) ([]PaymentRow, error) {
	var rows []PaymentRow
	tx := r.paymentRowQuery(ctx).
		Where("bookings.user_id = ?", userID).
		Order("payments.created_at DESC").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *PaymentRepository) ListRowsAll(ctx context.Context) ([]PaymentRow, error) {
	var rows []PaymentRow
	tx := r.paymentRowQuery(ctx).
		Order("payments.created_at DESC").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
