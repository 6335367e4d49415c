package repository

import (
	"context"
	"time"

	"kosrental/internal/domain"

	"gorm.io/gorm"
)

type RentalRepository struct {
	db *gorm.DB
}

func NewRentalRepository(db *gorm.DB) *RentalRepository {
	return &RentalRepository{db: db}
}

type rentalModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	UserID      int64     `gorm:"column:user_id;index"`
	RoomID      int64     `gorm:"column:room_id;index"`
	StartDate   time.Time `gorm:"column:start_date"`
	DueDate     time.Time `gorm:"column:due_date"`
	Status      string    `gorm:"column:status"`
	TotalAmount float64   `gorm:"column:total_amount"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (rentalModel) TableName() string { return "rentals" }

func toDomainRental(m rentalModel) *domain.Rental {
	return &domain.Rental{
		ID:          m.ID,
		UserID:      m.UserID,
		RoomID:      m.RoomID,
		StartDate:   m.StartDate,
		DueDate:     m.DueDate,
		Status:      domain.RentalStatus(m.Status),
		TotalAmount: m.TotalAmount,
		CreatedAt:   m.CreatedAt,
	}
}

func toRentalModel(rental *domain.Rental) rentalModel {
	return rentalModel{
		ID:          rental.ID,
		UserID:      rental.UserID,
		RoomID:      rental.RoomID,
		StartDate:   rental.StartDate,
		DueDate:     rental.DueDate,
		Status:      string(rental.Status),
		TotalAmount: rental.TotalAmount,
		CreatedAt:   rental.CreatedAt,
	}
}

func (r *RentalRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Rental, error) {
	var models []rentalModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Rental, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainRental(m))
	}
	return out, nil
}

func (r *RentalRepository) ListByRoom(ctx context.Context, roomID int64) ([]domain.Rental, error) {
	var models []rentalModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Rental, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainRental(m))
	}
	return out, nil
}
