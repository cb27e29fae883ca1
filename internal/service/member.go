package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/logger"
	"pgnest-backend/internal/repository"
)

type memberService struct {
	memberRepo repository.MemberRepository
	roomRepo   repository.RoomRepository
	pgRepo     repository.PGRepository
}

func NewMemberService(memberRepo repository.MemberRepository, roomRepo repository.RoomRepository, pgRepo repository.PGRepository) MemberService {
	return &memberService{
		memberRepo: memberRepo,
		roomRepo:   roomRepo,
		pgRepo:     pgRepo,
	}
}

// getScoped fetches a member and verifies it belongs to the admin's pg
// scope.
func (s *memberService) getScoped(ctx context.Context, pgType domain.PGType, id int32) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	pg, err := s.pgRepo.GetByID(ctx, member.PGID)
	if err != nil {
		return nil, err
	}
	if pg.Type != pgType {
		return nil, ErrForbidden
	}
	return member, nil
}

func (s *memberService) GetMember(ctx context.Context, pgType domain.PGType, id int32) (*domain.Member, error) {
	return s.getScoped(ctx, pgType, id)
}

func (s *memberService) GetProfile(ctx context.Context, memberID int32) (*domain.Member, *domain.Room, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var room *domain.Room
	if member.RoomID != nil {
		room, err = s.roomRepo.GetByID(ctx, *member.RoomID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, nil, err
		}
	}
	return member, room, nil
}

func (s *memberService) ListMembers(ctx context.Context, pgType domain.PGType, activeOnly bool) ([]domain.Member, error) {
	return s.memberRepo.ListByPGType(ctx, pgType, activeOnly)
}

func (s *memberService) ListMembersByRentType(ctx context.Context, pgType domain.PGType, rentType domain.RentType) ([]domain.Member, error) {
	return s.memberRepo.ListByRentType(ctx, pgType, rentType)
}

func (s *memberService) UpdateMember(ctx context.Context, pgType domain.PGType, id int32, update MemberUpdate) (*domain.Member, error) {
	member, err := s.getScoped(ctx, pgType, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		member.Name = *update.Name
	}
	if update.Phone != nil {
		member.Phone = *update.Phone
	}
	if update.Email != nil {
		member.Email = *update.Email
	}
	if update.RoomID != nil && (member.RoomID == nil || *member.RoomID != *update.RoomID) {
		newRoom, err := s.roomRepo.GetByID(ctx, *update.RoomID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if !newRoom.HasVacancy() {
			return nil, ErrRoomFull
		}
		if member.RoomID != nil {
			if err := s.roomRepo.AdjustOccupancy(ctx, *member.RoomID, -1); err != nil {
				return nil, err
			}
		}
		if err := s.roomRepo.AdjustOccupancy(ctx, newRoom.ID, 1); err != nil {
			return nil, err
		}
		member.RoomID = update.RoomID
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) DeactivateMember(ctx context.Context, pgType domain.PGType, id int32) error {
	member, err := s.getScoped(ctx, pgType, id)
	if err != nil {
		return err
	}
	if !member.IsActive {
		return ErrAlreadyProcessed
	}

	if err := s.memberRepo.Deactivate(ctx, member.ID, time.Now()); err != nil {
		return err
	}
	if member.RoomID != nil {
		if err := s.roomRepo.AdjustOccupancy(ctx, *member.RoomID, -1); err != nil {
			logger.Error("Failed to release room slot", "member_id", member.ID, "room_id", *member.RoomID, "error", err)
		}
	}

	logger.Info("Member deactivated", "member_id", member.ID)
	return nil
}
