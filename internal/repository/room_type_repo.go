package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"kosrental/internal/domain"

	"gorm.io/gorm"
)

type RoomTypeRepository struct {
	db *gorm.DB
}

func NewRoomTypeRepository(db *gorm.DB) *RoomTypeRepository {
	return &RoomTypeRepository{db: db}
}

type roomTypeModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Name       string    `gorm:"column:name;uniqueIndex"`
	Price      float64   `gorm:"column:price"`
	Facilities string    `gorm:"column:facilities;type:text"`
	IsActive   bool      `gorm:"column:is_active"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (roomTypeModel) TableName() string { return "room_types" }

func toDomainRoomType(m roomTypeModel) *domain.RoomType {
	facilities := []string{}
	if m.Facilities != "" {
		_ = json.Unmarshal([]byte(m.Facilities), &facilities)
	}
	return &domain.RoomType{
		ID:         m.ID,
		Name:       m.Name,
		Price:      m.Price,
		Facilities: facilities,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toRoomTypeModel(t *domain.RoomType) roomTypeModel {
	raw, _ := json.Marshal(t.Facilities)
	return roomTypeModel{
		ID:         t.ID,
		Name:       t.Name,
		Price:      t.Price,
		Facilities: string(raw),
		IsActive:   t.IsActive,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func (r *RoomTypeRepository) Create(ctx context.Context, t *domain.RoomType) error {
	m := toRoomTypeModel(t)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainRoomType(m)
	return nil
}

func (r *RoomTypeRepository) GetByID(ctx context.Context, id int64) (*domain.RoomType, error) {
	var m roomTypeModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoomType(m), nil
}

func (r *RoomTypeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var m roomTypeModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, tx.Error
	}
	return true, nil
}

func (r *RoomTypeRepository) List(ctx context.Context) ([]domain.RoomType, error) {
	var models []roomTypeModel
	tx := r.db.WithContext(ctx).Order("name ASC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.RoomType, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainRoomType(m))
	}
	return out, nil
}

// Update saves the type and re-copies its price onto the price
// snapshot of every room of that type, in one transaction. Bookings
// and rentals keep the price captured at their creation.
func (r *RoomTypeRepository) Update(ctx context.Context, t *domain.RoomType) error {
	m := toRoomTypeModel(t)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		if err := tx.Table("rooms").
			Where("room_type_id = ?", m.ID).
			Update("price", m.Price).Error; err != nil {
			return err
		}
		*t = *toDomainRoomType(m)
		return nil
	})
}

func (r *RoomTypeRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&roomTypeModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TypeRoomCounts is the per-type room inventory summary shown on the
// admin dashboard.
type TypeRoomCounts struct {
	TotalRooms     int64 `gorm:"column:total_rooms"`
	AvailableRooms int64 `gorm:"column:available_rooms"`
}

func (r *RoomTypeRepository) RoomCounts(ctx context.Context, typeID int64) (*TypeRoomCounts, error) {
	var counts TypeRoomCounts
	tx := r.db.WithContext(ctx).
		Table("rooms").
		Select("COUNT(1) AS total_rooms, COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS available_rooms", string(domain.RoomAvailable)).
		Where("room_type_id = ?", typeID).
		Scan(&counts)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &counts, nil
}
