package service

import (
	"context"
	"database/sql"
	"errors"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/repository"
)

type roomService struct {
	roomRepo repository.RoomRepository
	pgRepo   repository.PGRepository
}

func NewRoomService(roomRepo repository.RoomRepository, pgRepo repository.PGRepository) RoomService {
	return &roomService{roomRepo: roomRepo, pgRepo: pgRepo}
}

func (s *roomService) AddRoom(ctx context.Context, pgType domain.PGType, room *domain.Room) error {
	pg, err := s.pgRepo.GetByID(ctx, room.PGID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if pg.Type != pgType {
		return ErrForbidden
	}
	return s.roomRepo.Create(ctx, room)
}

func (s *roomService) ListRooms(ctx context.Context, pgType domain.PGType) ([]domain.Room, error) {
	return s.roomRepo.ListByPGType(ctx, pgType)
}
