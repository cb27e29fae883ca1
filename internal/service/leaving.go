package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/logger"
	"pgnest-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type leavingRequestService struct {
	leavingRepo repository.LeavingRequestRepository
	memberRepo  repository.MemberRepository
	paymentRepo repository.PaymentRepository
	pgRepo      repository.PGRepository
	emailSvc    EmailService
}

func NewLeavingRequestService(
	leavingRepo repository.LeavingRequestRepository,
	memberRepo repository.MemberRepository,
	paymentRepo repository.PaymentRepository,
	pgRepo repository.PGRepository,
	emailSvc EmailService,
) LeavingRequestService {
	return &leavingRequestService{
		leavingRepo: leavingRepo,
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		pgRepo:      pgRepo,
		emailSvc:    emailSvc,
	}
}

func (s *leavingRequestService) CreateRequest(ctx context.Context, memberID int32, leaveDate time.Time, reason string) (*domain.LeavingRequest, error) {
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

	if _, err := s.leavingRepo.GetPendingByMember(ctx, memberID); err == nil {
		return nil, ErrPendingLeavingRequest
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	dues, err := s.paymentRepo.SumPendingDues(ctx, memberID)
	if err != nil {
		return nil, err
	}

	req := &domain.LeavingRequest{
		MemberID:           memberID,
		PGID:               member.PGID,
		RequestedLeaveDate: leaveDate,
		Reason:             reason,
		Status:             domain.LeavingRequestStatusPending,
		PendingDues:        dues,
		SettlementAmount:   decimal.Zero,
	}
	if err := s.leavingRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	logger.Info("Leaving request created", "request_id", req.ID, "member_id", memberID, "pending_dues", dues)
	return req, nil
}

func (s *leavingRequestService) ListMemberRequests(ctx context.Context, memberID int32) ([]domain.LeavingRequest, error) {
	return s.leavingRepo.ListByMember(ctx, memberID)
}

func (s *leavingRequestService) ListRequests(ctx context.Context, pgType domain.PGType, status domain.LeavingRequestStatus) ([]domain.LeavingRequest, error) {
	return s.leavingRepo.ListByPGType(ctx, pgType, status)
}

// Approve settles the departure: dues are refreshed, the settlement is
// recorded, and the member is deactivated with their room slot released.
func (s *leavingRequestService) Approve(ctx context.Context, adminID int32, pgType domain.PGType, requestID int32, settlementAmount decimal.Decimal, proofKey string) (*domain.LeavingRequest, error) {
	req, member, err := s.getScoped(ctx, pgType, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.LeavingRequestStatusPending {
		return nil, ErrAlreadyProcessed
	}

	dues, err := s.paymentRepo.SumPendingDues(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	req.Status = domain.LeavingRequestStatusApproved
	req.PendingDues = dues
	req.SettlementAmount = settlementAmount
	req.SettlementProofKey = proofKey
	req.SettledAt = &now
	req.ProcessedBy = &adminID
	if err := s.leavingRepo.ApproveAndRelease(ctx, req, member.RoomID); err != nil {
		return nil, err
	}

	if member.Email != "" {
		_ = s.emailSvc.SendLeavingSettlement(ctx, member.Email, member.Name, settlementAmount)
	}

	logger.Info("Leaving request approved", "request_id", req.ID, "member_id", member.ID, "admin_id", adminID, "settlement", settlementAmount)
	return req, nil
}

func (s *leavingRequestService) Reject(ctx context.Context, adminID int32, pgType domain.PGType, requestID int32, reason string) (*domain.LeavingRequest, error) {
	req, _, err := s.getScoped(ctx, pgType, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.LeavingRequestStatusPending {
		return nil, ErrAlreadyProcessed
	}

	req.Status = domain.LeavingRequestStatusRejected
	req.Reason = reason
	req.ProcessedBy = &adminID
	if err := s.leavingRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	logger.Info("Leaving request rejected", "request_id", req.ID, "admin_id", adminID)
	return req, nil
}

func (s *leavingRequestService) getScoped(ctx context.Context, pgType domain.PGType, requestID int32) (*domain.LeavingRequest, *domain.Member, error) {
	req, err := s.leavingRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	pg, err := s.pgRepo.GetByID(ctx, req.PGID)
	if err != nil {
		return nil, nil, err
	}
	if pg.Type != pgType {
		return nil, nil, ErrForbidden
	}

	member, err := s.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		return nil, nil, err
	}
	return req, member, nil
}
