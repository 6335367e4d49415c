package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"kosrental/internal/domain"
	"kosrental/internal/repository"
)

type Service struct {
	rooms RoomRepository
	types RoomTypeRepository
}

func NewService(rooms RoomRepository, types RoomTypeRepository) *Service {
	return &Service{rooms: rooms, types: types}
}

func (s *Service) ListRooms(ctx context.Context) ([]RoomDetails, error) {
	rows, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return buildRoomDetails(rows), nil
}

func (s *Service) ListAvailableRooms(ctx context.Context) ([]RoomDetails, error) {
	rows, err := s.rooms.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available rooms: %w", err)
	}
	return buildRoomDetails(rows), nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*RoomDetails, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	t, err := s.types.GetByID(ctx, room.RoomTypeID)
	if err != nil {
		return nil, fmt.Errorf("get room type: %w", err)
	}

	return &RoomDetails{
		ID:         room.ID,
		Code:       room.Code,
		RoomTypeID: room.RoomTypeID,
		Price:      room.Price,
		Floor:      room.Floor,
		Status:     string(room.Status),
		TypeName:   t.Name,
		Facilities: t.Facilities,
		CreatedAt:  room.CreatedAt,
	}, nil
}

// CreateRoom registers a room under an existing type. The room gets a
// snapshot of the type's current price; later type price changes are
// pushed down by the type update, not re-read on booking.
func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, ErrValidation
	}

	t, err := s.types.GetByID(ctx, req.RoomTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, fmt.Errorf("get room type: %w", err)
	}

	taken, err := s.rooms.ExistsByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("check room code: %w", err)
	}
	if taken {
		return nil, ErrCodeTaken
	}

	floor := req.Floor
	if floor <= 0 {
		floor = 1
	}

	room := &domain.Room{
		Code:       code,
		RoomTypeID: t.ID,
		Price:      t.Price,
		Floor:      floor,
		Status:     domain.RoomAvailable,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return nil, ErrValidation
		}
		if code != room.Code {
			taken, err := s.rooms.ExistsByCode(ctx, code)
			if err != nil {
				return nil, fmt.Errorf("check room code: %w", err)
			}
			if taken {
				return nil, ErrCodeTaken
			}
			room.Code = code
		}
	}

	if req.RoomTypeID != nil && *req.RoomTypeID != room.RoomTypeID {
		t, err := s.types.GetByID(ctx, *req.RoomTypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTypeNotFound
			}
			return nil, fmt.Errorf("get room type: %w", err)
		}
		room.RoomTypeID = t.ID
		room.Price = t.Price
	}

	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Status != nil {
		room.Status = domain.RoomStatus(*req.Status)
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	return room, nil
}

func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}

func (s *Service) ListRoomTypes(ctx context.Context) ([]RoomTypeDetails, error) {
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list room types: %w", err)
	}

	out := make([]RoomTypeDetails, 0, len(types))
	for _, t := range types {
		counts, err := s.types.RoomCounts(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("count rooms for type %d: %w", t.ID, err)
		}
		out = append(out, RoomTypeDetails{
			ID:             t.ID,
			Name:           t.Name,
			Price:          t.Price,
			Facilities:     t.Facilities,
			IsActive:       t.IsActive,
			TotalRooms:     counts.TotalRooms,
			AvailableRooms: counts.AvailableRooms,
		})
	}
	return out, nil
}

func (s *Service) GetRoomType(ctx context.Context, id int64) (*RoomTypeDetails, error) {
	t, err := s.types.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, fmt.Errorf("get room type: %w", err)
	}

	counts, err := s.types.RoomCounts(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("count rooms for type %d: %w", t.ID, err)
	}

	return &RoomTypeDetails{
		ID:             t.ID,
		Name:           t.Name,
		Price:          t.Price,
		Facilities:     t.Facilities,
		IsActive:       t.IsActive,
		TotalRooms:     counts.TotalRooms,
		AvailableRooms: counts.AvailableRooms,
	}, nil
}

func (s *Service) CreateRoomType(ctx context.Context, req CreateRoomTypeRequest) (*domain.RoomType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Price < 0 {
		return nil, ErrValidation
	}

	taken, err := s.types.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check type name: %w", err)
	}
	if taken {
		return nil, ErrTypeNameTaken
	}

	t := &domain.RoomType{
		Name:       name,
		Price:      req.Price,
		Facilities: req.Facilities,
		IsActive:   true,
	}
	if err := s.types.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create room type: %w", err)
	}
	return t, nil
}

// UpdateRoomType edits a type. A price change is propagated to every
// room of the type; existing bookings and rentals keep the price they
// were created with.
func (s *Service) UpdateRoomType(ctx context.Context, id int64, req UpdateRoomTypeRequest) (*domain.RoomType, error) {
	t, err := s.types.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, fmt.Errorf("get room type: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrValidation
		}
		if name != t.Name {
			taken, err := s.types.ExistsByName(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("check type name: %w", err)
			}
			if taken {
				return nil, ErrTypeNameTaken
			}
			t.Name = name
		}
	}

	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrValidation
		}
		t.Price = *req.Price
	}
	if req.Facilities != nil {
		t.Facilities = req.Facilities
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.types.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update room type: %w", err)
	}
	return t, nil
}

func (s *Service) DeleteRoomType(ctx context.Context, id int64) error {
	cnt, err := s.rooms.CountByType(ctx, id)
	if err != nil {
		return fmt.Errorf("count rooms for type: %w", err)
	}
	if cnt > 0 {
		return ErrTypeInUse
	}

	if err := s.types.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTypeNotFound
		}
		return fmt.Errorf("delete room type: %w", err)
	}
	return nil
}

func buildRoomDetails(rows []repository.RoomRow) []RoomDetails {
	out := make([]RoomDetails, 0, len(rows))
	for _, row := range rows {
		facilities := []string{}
		if row.TypeFacilities != "" {
			_ = json.Unmarshal([]byte(row.TypeFacilities), &facilities)
		}
		out = append(out, RoomDetails{
			ID:         row.ID,
			Code:       row.Code,
			RoomTypeID: row.RoomTypeID,
			Price:      row.Price,
			Floor:      row.Floor,
			Status:     row.Status,
			TypeName:   row.TypeName,
			Facilities: facilities,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out
}
