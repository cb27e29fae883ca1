package unit

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newLeavingService(leavingRepo *MockLeavingRequestRepo, memberRepo *MockMemberRepo, paymentRepo *MockPaymentRepo, pgRepo *MockPGRepo, emailSvc *MockEmailService) service.LeavingRequestService {
	return service.NewLeavingRequestService(leavingRepo, memberRepo, paymentRepo, pgRepo, emailSvc)
}

func TestLeavingRequestService_CreateRequest(t *testing.T) {
	ctx := context.Background()
	memberID := int32(5)
	leaveDate := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	member := &domain.Member{ID: memberID, PGID: 1, IsActive: true}

	t.Run("Success snapshots pending dues", func(t *testing.T) {
		leavingRepo := new(MockLeavingRequestRepo)
		memberRepo := new(MockMemberRepo)
		paymentRepo := new(MockPaymentRepo)
		svc := newLeavingService(leavingRepo, memberRepo, paymentRepo, new(MockPGRepo), new(MockEmailService))

		memberRepo.On("GetByID", ctx, memberID).Return(member, nil)
		leavingRepo.On("GetPendingByMember", ctx, memberID).Return(nil, sql.ErrNoRows)
		paymentRepo.On("SumPendingDues", ctx, memberID).Return(decimal.NewFromInt(8500), nil)
		leavingRepo.On("Create", ctx, mock.AnythingOfType("*domain.LeavingRequest")).Return(nil)

		req, err := svc.CreateRequest(ctx, memberID, leaveDate, "relocating")
		assert.NoError(t, err)
		assert.Equal(t, domain.LeavingRequestStatusPending, req.Status)
		assert.True(t, req.PendingDues.Equal(decimal.NewFromInt(8500)))
		assert.Equal(t, leaveDate, req.RequestedLeaveDate)
	})

	t.Run("Duplicate pending request", func(t *testing.T) {
		leavingRepo := new(MockLeavingRequestRepo)
		memberRepo := new(MockMemberRepo)
		svc := newLeavingService(leavingRepo, memberRepo, new(MockPaymentRepo), new(MockPGRepo), new(MockEmailService))

		memberRepo.On("GetByID", ctx, memberID).Return(member, nil)
		leavingRepo.On("GetPendingByMember", ctx, memberID).Return(&domain.LeavingRequest{ID: 2}, nil)

		_, err := svc.CreateRequest(ctx, memberID, leaveDate, "relocating")
		assert.ErrorIs(t, err, service.ErrPendingLeavingRequest)
	})

	t.Run("Inactive member", func(t *testing.T) {
		memberRepo := new(MockMemberRepo)
		svc := newLeavingService(new(MockLeavingRequestRepo), memberRepo, new(MockPaymentRepo), new(MockPGRepo), new(MockEmailService))

		memberRepo.On("GetByID", ctx, memberID).Return(&domain.Member{ID: memberID, IsActive: false}, nil)

		_, err := svc.CreateRequest(ctx, memberID, leaveDate, "relocating")
		assert.ErrorIs(t, err, service.ErrInactiveMember)
	})
}

func TestLeavingRequestService_Approve(t *testing.T) {
	ctx := context.Background()
	adminID := int32(2)
	roomID := int32(3)
	leaveDate := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	pg := &domain.PG{ID: 1, Type: domain.PGTypeMens}
	member := &domain.Member{ID: 5, PGID: 1, RoomID: &roomID, Name: "Ravi", Email: "ravi@test.com", IsActive: true}

	t.Run("Success settles and frees the room slot", func(t *testing.T) {
		leavingRepo := new(MockLeavingRequestRepo)
		memberRepo := new(MockMemberRepo)
		paymentRepo := new(MockPaymentRepo)
		pgRepo := new(MockPGRepo)
		emailSvc := new(MockEmailService)
		svc := newLeavingService(leavingRepo, memberRepo, paymentRepo, pgRepo, emailSvc)

		req := &domain.LeavingRequest{
			ID:                 4,
			MemberID:           5,
			PGID:               1,
			RequestedLeaveDate: leaveDate,
			Status:             domain.LeavingRequestStatusPending,
		}
		settlement := decimal.NewFromInt(2500)

		leavingRepo.On("GetByID", ctx, int32(4)).Return(req, nil)
		pgRepo.On("GetByID", ctx, int32(1)).Return(pg, nil)
		memberRepo.On("GetByID", ctx, int32(5)).Return(member, nil)
		paymentRepo.On("SumPendingDues", ctx, int32(5)).Return(decimal.NewFromInt(2500), nil)
		leavingRepo.On("ApproveAndRelease", ctx, req, &roomID).Return(nil)
		emailSvc.On("SendLeavingSettlement", ctx, "ravi@test.com", "Ravi", settlement).Return(nil)

		approved, err := svc.Approve(ctx, adminID, domain.PGTypeMens, 4, settlement, "proofs/xyz.png")
		assert.NoError(t, err)
		assert.Equal(t, domain.LeavingRequestStatusApproved, approved.Status)
		assert.True(t, approved.SettlementAmount.Equal(settlement))
		assert.Equal(t, "proofs/xyz.png", approved.SettlementProofKey)
		assert.NotNil(t, approved.SettledAt)
		leavingRepo.AssertCalled(t, "ApproveAndRelease", ctx, req, &roomID)
	})

	t.Run("Settlement failure surfaces and skips notification", func(t *testing.T) {
		leavingRepo := new(MockLeavingRequestRepo)
		memberRepo := new(MockMemberRepo)
		paymentRepo := new(MockPaymentRepo)
		pgRepo := new(MockPGRepo)
		emailSvc := new(MockEmailService)
		svc := newLeavingService(leavingRepo, memberRepo, paymentRepo, pgRepo, emailSvc)

		req := &domain.LeavingRequest{
			ID:                 4,
			MemberID:           5,
			PGID:               1,
			RequestedLeaveDate: leaveDate,
			Status:             domain.LeavingRequestStatusPending,
		}

		leavingRepo.On("GetByID", ctx, int32(4)).Return(req, nil)
		pgRepo.On("GetByID", ctx, int32(1)).Return(pg, nil)
		memberRepo.On("GetByID", ctx, int32(5)).Return(member, nil)
		paymentRepo.On("SumPendingDues", ctx, int32(5)).Return(decimal.NewFromInt(2500), nil)
		leavingRepo.On("ApproveAndRelease", ctx, req, &roomID).Return(errors.New("connection reset"))

		_, err := svc.Approve(ctx, adminID, domain.PGTypeMens, 4, decimal.NewFromInt(2500), "")
		assert.Error(t, err)

		// The settlement rides on the single transactional call, so there
		// must be no per-repo writes around it.
		leavingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		memberRepo.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything, mock.Anything)
		emailSvc.AssertNotCalled(t, "SendLeavingSettlement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already processed", func(t *testing.T) {
		leavingRepo := new(MockLeavingRequestRepo)
		memberRepo := new(MockMemberRepo)
		pgRepo := new(MockPGRepo)
		svc := newLeavingService(leavingRepo, memberRepo, new(MockPaymentRepo), pgRepo, new(MockEmailService))

		req := &domain.LeavingRequest{ID: 4, MemberID: 5, PGID: 1, Status: domain.LeavingRequestStatusApproved}
		leavingRepo.On("GetByID", ctx, int32(4)).Return(req, nil)
		pgRepo.On("GetByID", ctx, int32(1)).Return(pg, nil)
		memberRepo.On("GetByID", ctx, int32(5)).Return(member, nil)

		_, err := svc.Approve(ctx, adminID, domain.PGTypeMens, 4, decimal.Zero, "")
		assert.ErrorIs(t, err, service.ErrAlreadyProcessed)
	})

	t.Run("Wrong hostel type", func(t *testing.T) {
		leavingRepo := new(MockLeavingRequestRepo)
		pgRepo := new(MockPGRepo)
		svc := newLeavingService(leavingRepo, new(MockMemberRepo), new(MockPaymentRepo), pgRepo, new(MockEmailService))

		leavingRepo.On("GetByID", ctx, int32(4)).Return(&domain.LeavingRequest{ID: 4, MemberID: 5, PGID: 1, Status: domain.LeavingRequestStatusPending}, nil)
		pgRepo.On("GetByID", ctx, int32(1)).Return(pg, nil)

		_, err := svc.Approve(ctx, adminID, domain.PGTypeColiving, 4, decimal.Zero, "")
		assert.ErrorIs(t, err, service.ErrForbidden)
	})
}

func TestLeavingRequestService_Reject(t *testing.T) {
	ctx := context.Background()
	leavingRepo := new(MockLeavingRequestRepo)
	memberRepo := new(MockMemberRepo)
	pgRepo := new(MockPGRepo)
	svc := newLeavingService(leavingRepo, memberRepo, new(MockPaymentRepo), pgRepo, new(MockEmailService))

	req := &domain.LeavingRequest{ID: 4, MemberID: 5, PGID: 1, Status: domain.LeavingRequestStatusPending}
	leavingRepo.On("GetByID", ctx, int32(4)).Return(req, nil)
	pgRepo.On("GetByID", ctx, int32(1)).Return(&domain.PG{ID: 1, Type: domain.PGTypeMens}, nil)
	memberRepo.On("GetByID", ctx, int32(5)).Return(&domain.Member{ID: 5, PGID: 1, IsActive: true}, nil)
	leavingRepo.On("Update", ctx, req).Return(nil)

	rejected, err := svc.Reject(ctx, 2, domain.PGTypeMens, 4, "dues unsettled")
	assert.NoError(t, err)
	assert.Equal(t, domain.LeavingRequestStatusRejected, rejected.Status)
	assert.Equal(t, "dues unsettled", rejected.Reason)
}
