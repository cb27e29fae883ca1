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

	"github.com/shopspring/decimal"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	memberRepo  repository.MemberRepository
	roomRepo    repository.RoomRepository
	pgRepo      repository.PGRepository
	emailSvc    EmailService
	graceDays   int
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	memberRepo repository.MemberRepository,
	roomRepo repository.RoomRepository,
	pgRepo repository.PGRepository,
	emailSvc EmailService,
	graceDays int,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		roomRepo:    roomRepo,
		pgRepo:      pgRepo,
		emailSvc:    emailSvc,
		graceDays:   graceDays,
	}
}

func (s *paymentService) UploadPayment(ctx context.Context, memberID int32, month, year int, amount decimal.Decimal, screenshotKey string) (*domain.Payment, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !member.IsActive {
		return nil, ErrInactiveMember
	}

	// One active attempt per billing period: a non-rejected payment for
	// this (month, year) blocks the upload.
	if existing, err := s.paymentRepo.GetActiveForPeriod(ctx, memberID, month, year); err == nil {
		if existing.IsActiveAttempt() {
			return nil, ErrDuplicatePayment
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	maxAttempt, err := s.paymentRepo.MaxAttemptNumber(ctx, memberID, month, year)
	if err != nil {
		return nil, err
	}

	dueDate := utils.DueDate(member.DateOfJoining, month, year)
	now := time.Now()
	payment := &domain.Payment{
		MemberID:       memberID,
		PGID:           member.PGID,
		Amount:         amount,
		Month:          month,
		Year:           year,
		AttemptNumber:  maxAttempt + 1,
		ScreenshotKey:  screenshotKey,
		PaymentStatus:  domain.PaymentStatusPending,
		ApprovalStatus: domain.ApprovalStatusPending,
		DueDate:        dueDate,
		OverdueDate:    utils.OverdueDate(dueDate, s.graceDays),
		PaidDate:       &now, // claimed payment date; verified on approval
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	logger.Info("Payment uploaded", "payment_id", payment.ID, "member_id", memberID, "month", month, "year", year, "attempt", payment.AttemptNumber)
	return payment, nil
}

func (s *paymentService) ListMemberPayments(ctx context.Context, memberID int32) ([]domain.Payment, error) {
	if _, err := s.SweepOverdue(ctx); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByMember(ctx, memberID)
}

func (s *paymentService) ListPayments(ctx context.Context, pgType domain.PGType, paymentStatus, approvalStatus string, page, pageSize int32) ([]domain.Payment, int32, error) {
	if _, err := s.SweepOverdue(ctx); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.paymentRepo.ListByPGType(ctx, pgType, paymentStatus, approvalStatus, page, pageSize)
}

// ApprovePayment marks the payment PAID/APPROVED and, for long-term
// members, creates the next service month's payment in the same
// transaction.
func (s *paymentService) ApprovePayment(ctx context.Context, adminID int32, pgType domain.PGType, paymentID int32) (*domain.Payment, error) {
	payment, member, err := s.getScoped(ctx, pgType, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.ApprovalStatus != domain.ApprovalStatusPending {
		return nil, ErrAlreadyProcessed
	}

	now := time.Now()
	payment.PaymentStatus = domain.PaymentStatusPaid
	payment.ApprovalStatus = domain.ApprovalStatusApproved
	payment.ApprovedAt = &now
	payment.ApprovedBy = &adminID
	if payment.PaidDate == nil {
		payment.PaidDate = &now
	}

	var next *domain.Payment
	if member.RentType == domain.RentTypeLongTerm && member.IsActive {
		next, err = s.buildSuccessor(ctx, payment, member)
		if err != nil {
			return nil, err
		}
	}

	if err := s.paymentRepo.ApproveWithSuccessor(ctx, payment, next); err != nil {
		return nil, err
	}

	if member.Email != "" {
		_ = s.emailSvc.SendPaymentReceipt(ctx, member.Email, member.Name, payment.Amount, payment.Month, payment.Year)
	}

	logger.Info("Payment approved", "payment_id", payment.ID, "member_id", member.ID, "admin_id", adminID, "successor_created", next != nil)
	return payment, nil
}

// buildSuccessor prepares the next month's PENDING payment, due on the
// member's joining day (clamped to the month length).
func (s *paymentService) buildSuccessor(ctx context.Context, payment *domain.Payment, member *domain.Member) (*domain.Payment, error) {
	nextMonth, nextYear := utils.NextServiceMonth(payment.Month, payment.Year)

	// The sweep can race an approval here; an already-seeded successor
	// means there is nothing to do.
	if _, err := s.paymentRepo.GetActiveForPeriod(ctx, member.ID, nextMonth, nextYear); err == nil {
		return nil, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	amount := payment.Amount
	if member.RoomID != nil {
		room, err := s.roomRepo.GetByID(ctx, *member.RoomID)
		if err == nil {
			amount = room.Rent
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	dueDate := utils.DueDate(member.DateOfJoining, nextMonth, nextYear)
	return &domain.Payment{
		MemberID:       member.ID,
		PGID:           member.PGID,
		Amount:         amount,
		Month:          nextMonth,
		Year:           nextYear,
		AttemptNumber:  1,
		PaymentStatus:  domain.PaymentStatusPending,
		ApprovalStatus: domain.ApprovalStatusPending,
		DueDate:        dueDate,
		OverdueDate:    utils.OverdueDate(dueDate, s.graceDays),
	}, nil
}

func (s *paymentService) RejectPayment(ctx context.Context, adminID int32, pgType domain.PGType, paymentID int32, reason string) (*domain.Payment, error) {
	payment, member, err := s.getScoped(ctx, pgType, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.ApprovalStatus != domain.ApprovalStatusPending {
		return nil, ErrAlreadyProcessed
	}

	payment.PaymentStatus = domain.PaymentStatusRejected
	payment.ApprovalStatus = domain.ApprovalStatusRejected
	payment.RejectionReason = reason
	payment.ApprovedBy = &adminID

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	if member.Email != "" {
		_ = s.emailSvc.SendPaymentRejected(ctx, member.Email, member.Name, payment.Month, payment.Year, reason)
	}

	logger.Info("Payment rejected", "payment_id", payment.ID, "member_id", member.ID, "admin_id", adminID)
	return payment, nil
}

func (s *paymentService) SweepOverdue(ctx context.Context) (int64, error) {
	flipped, err := s.paymentRepo.MarkOverdue(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if flipped > 0 {
		logger.Info("Marked payments as overdue", "count", flipped)
	}
	return flipped, nil
}

func (s *paymentService) getScoped(ctx context.Context, pgType domain.PGType, paymentID int32) (*domain.Payment, *domain.Member, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	pg, err := s.pgRepo.GetByID(ctx, payment.PGID)
	if err != nil {
		return nil, nil, err
	}
	if pg.Type != pgType {
		return nil, nil, ErrForbidden
	}

	member, err := s.memberRepo.GetByID(ctx, payment.MemberID)
	if err != nil {
		return nil, nil, err
	}
	return payment, member, nil
}
