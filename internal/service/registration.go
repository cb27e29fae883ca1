package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/logger"
	"pgnest-backend/internal/repository"
	"pgnest-backend/internal/utils"
)

type registrationService struct {
	regRepo    repository.RegisteredMemberRepository
	memberRepo repository.MemberRepository
	roomRepo   repository.RoomRepository
	pgRepo     repository.PGRepository
	emailSvc   EmailService
	graceDays  int
}

func NewRegistrationService(
	regRepo repository.RegisteredMemberRepository,
	memberRepo repository.MemberRepository,
	roomRepo repository.RoomRepository,
	pgRepo repository.PGRepository,
	emailSvc EmailService,
	graceDays int,
) RegistrationService {
	return &registrationService{
		regRepo:    regRepo,
		memberRepo: memberRepo,
		roomRepo:   roomRepo,
		pgRepo:     pgRepo,
		emailSvc:   emailSvc,
		graceDays:  graceDays,
	}
}

func (s *registrationService) Register(ctx context.Context, reg *domain.RegisteredMember, password string) error {
	if _, err := s.regRepo.GetPendingByPhone(ctx, reg.Phone); err == nil {
		return ErrDuplicateRegistration
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	// An existing active member cannot re-register under the same phone.
	if existing, err := s.memberRepo.GetByPhone(ctx, reg.Phone); err == nil && existing.IsActive {
		return ErrDuplicateRegistration
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if reg.RentType == domain.RentTypeShortTerm && reg.DateOfRelieving == nil {
		return fmt.Errorf("short-term registration requires a relieving date")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	reg.PasswordHash = hash
	reg.Status = domain.RegistrationStatusPending

	if err := s.regRepo.Create(ctx, reg); err != nil {
		return err
	}

	logger.Info("Registration submitted", "registration_id", reg.ID, "pg_id", reg.PGID, "rent_type", reg.RentType)
	return nil
}

func (s *registrationService) ListPending(ctx context.Context, pgType domain.PGType) ([]domain.RegisteredMember, error) {
	return s.regRepo.ListByPGType(ctx, pgType, domain.RegistrationStatusPending)
}

// Approve promotes the staging row to a Member, assigns a room, and seeds
// the member's first payment: PENDING for long-term stays, an upfront
// PAID/APPROVED record for short-term stays.
func (s *registrationService) Approve(ctx context.Context, adminID int32, pgType domain.PGType, registrationID int32, roomID *int32) (*domain.Member, error) {
	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if reg.Status != domain.RegistrationStatusPending {
		return nil, ErrAlreadyProcessed
	}

	pg, err := s.pgRepo.GetByID(ctx, reg.PGID)
	if err != nil {
		return nil, err
	}
	if pg.Type != pgType {
		return nil, ErrForbidden
	}

	if roomID == nil {
		roomID = reg.RoomID
	}
	var room *domain.Room
	if roomID != nil {
		room, err = s.roomRepo.GetByID(ctx, *roomID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if !room.HasVacancy() {
			return nil, ErrRoomFull
		}
	}

	member := &domain.Member{
		PGID:            reg.PGID,
		RoomID:          roomID,
		Name:            reg.Name,
		Phone:           reg.Phone,
		Email:           reg.Email,
		PasswordHash:    reg.PasswordHash,
		PhotoKey:        reg.PhotoKey,
		DocumentKey:     reg.DocumentKey,
		DateOfJoining:   reg.DateOfJoining,
		RentType:        reg.RentType,
		DateOfRelieving: reg.DateOfRelieving,
		AdvanceAmount:   reg.AdvanceAmount,
		IsActive:        true,
		ApprovedBy:      &adminID,
	}
	if room != nil {
		member.PricePerDay = room.PricePerDay
	}

	payment, err := s.buildFirstPayment(member, room, adminID)
	if err != nil {
		return nil, err
	}

	reg.Status = domain.RegistrationStatusApproved
	reg.RoomID = roomID
	reg.ProcessedBy = &adminID
	if err := s.regRepo.Promote(ctx, reg, member, payment); err != nil {
		return nil, err
	}

	if member.Email != "" {
		_ = s.emailSvc.SendRegistrationApproved(ctx, member.Email, member.Name, pg.Name)
	}

	logger.Info("Registration approved", "registration_id", reg.ID, "member_id", member.ID, "admin_id", adminID)
	return member, nil
}

func (s *registrationService) buildFirstPayment(member *domain.Member, room *domain.Room, adminID int32) (*domain.Payment, error) {
	month, year := utils.FirstServiceMonth(member.DateOfJoining)
	dueDate := utils.DueDate(member.DateOfJoining, month, year)

	payment := &domain.Payment{
		PGID:          member.PGID,
		Month:         month,
		Year:          year,
		AttemptNumber: 1,
		DueDate:       dueDate,
		OverdueDate:   utils.OverdueDate(dueDate, s.graceDays),
	}

	switch member.RentType {
	case domain.RentTypeShortTerm:
		// Short-term members pay for the whole stay upfront; the record
		// is settled at approval time.
		amount, err := utils.ShortTermAmount(member.DateOfJoining, *member.DateOfRelieving, member.PricePerDay)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		payment.Amount = amount
		payment.PaymentStatus = domain.PaymentStatusPaid
		payment.ApprovalStatus = domain.ApprovalStatusApproved
		payment.PaidDate = &now
		payment.ApprovedAt = &now
		payment.ApprovedBy = &adminID
	default:
		if room != nil {
			payment.Amount = room.Rent
		}
		payment.PaymentStatus = domain.PaymentStatusPending
		payment.ApprovalStatus = domain.ApprovalStatusPending
	}

	return payment, nil
}

func (s *registrationService) Reject(ctx context.Context, adminID int32, pgType domain.PGType, registrationID int32, reason string) error {
	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if reg.Status != domain.RegistrationStatusPending {
		return ErrAlreadyProcessed
	}

	pg, err := s.pgRepo.GetByID(ctx, reg.PGID)
	if err != nil {
		return err
	}
	if pg.Type != pgType {
		return ErrForbidden
	}

	reg.Status = domain.RegistrationStatusRejected
	reg.RejectionReason = reason
	reg.ProcessedBy = &adminID
	if err := s.regRepo.Update(ctx, reg); err != nil {
		return err
	}

	if reg.Email != "" {
		_ = s.emailSvc.SendRegistrationRejected(ctx, reg.Email, reg.Name, reason)
	}

	logger.Info("Registration rejected", "registration_id", reg.ID, "admin_id", adminID)
	return nil
}
