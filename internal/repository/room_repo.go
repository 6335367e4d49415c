package repository

import (
	"context"
	"time"

	"kosrental/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Code       string    `gorm:"column:code;uniqueIndex"`
	RoomTypeID int64     `gorm:"column:room_type_id;index"`
	Price      float64   `gorm:"column:price"`
	Floor      int       `gorm:"column:floor"`
	Status     string    `gorm:"column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:         m.ID,
		Code:       m.Code,
		RoomTypeID: m.RoomTypeID,
		Price:      m.Price,
		Floor:      m.Floor,
		Status:     domain.RoomStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toRoomModel(room *domain.Room) roomModel {
	return roomModel{
		ID:         room.ID,
		Code:       room.Code,
		RoomTypeID: room.RoomTypeID,
		Price:      room.Price,
		Floor:      room.Floor,
		Status:     string(room.Status),
		CreatedAt:  room.CreatedAt,
		UpdatedAt:  room.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&roomModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoomRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Table("rooms").
		Where("code = ?", code).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *RoomRepository) CountByType(ctx context.Context, typeID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Table("rooms").
		Where("room_type_id = ?", typeID).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

// RoomRow is the flat listing projection: a room joined with its type.
type RoomRow struct {
	ID             int64     `gorm:"column:id"`
	Code           string    `gorm:"column:code"`
	RoomTypeID     int64     `gorm:"column:room_type_id"`
	Price          float64   `gorm:"column:price"`
	Floor          int       `gorm:"column:floor"`
	Status         string    `gorm:"column:status"`
	TypeName       string    `gorm:"column:type_name"`
	TypeFacilities string    `gorm:"column:type_facilities"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

const roomRowSelect = `rooms.id, rooms.code, rooms.room_type_id, rooms.price, rooms.floor, rooms.status, rooms.created_at,
room_types.name AS type_name, room_types.facilities AS type_facilities`

func (r *RoomRepository) ListAll(ctx context.Context) ([]RoomRow, error) {
	var rows []RoomRow
	tx := r.db.WithContext(ctx).
		Table("rooms").
		Select(roomRowSelect).
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Order("rooms.code ASC").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *RoomRepository) ListAvailable(ctx context.Context) ([]RoomRow, error) {
	var rows []RoomRow
	tx := r.db.WithContext(ctx).
		Table("rooms").
		Select(roomRowSelect).
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Where("rooms.status = ?", string(domain.RoomAvailable)).
		Order("rooms.code ASC").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
