package catalog

import (
	"context"

	"kosrental/internal/domain"
	"kosrental/internal/repository"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int64) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	CountByType(ctx context.Context, typeID int64) (int64, error)
	ListAll(ctx context.Context) ([]repository.RoomRow, error)
	ListAvailable(ctx context.Context) ([]repository.RoomRow, error)
}

type RoomTypeRepository interface {
	Create(ctx context.Context, t *domain.RoomType) error
	GetByID(ctx context.Context, id int64) (*domain.RoomType, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]domain.RoomType, error)
	Update(ctx context.Context, t *domain.RoomType) error
	Delete(ctx context.Context, id int64) error
	RoomCounts(ctx context.Context, typeID int64) (*repository.TypeRoomCounts, error)
}
