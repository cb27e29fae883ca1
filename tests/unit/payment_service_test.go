package unit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPaymentService(paymentRepo *MockPaymentRepo, memberRepo *MockMemberRepo, roomRepo *MockRoomRepo, pgRepo *MockPGRepo, emailSvc *MockEmailService) service.PaymentService {
	return service.NewPaymentService(paymentRepo, memberRepo, roomRepo, pgRepo, emailSvc, 7)
}

func TestPaymentService_UploadPayment(t *testing.T) {
	ctx := context.Background()
	memberID := int32(5)
	joining := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	member := &domain.Member{
		ID:            memberID,
		PGID:          1,
		Name:          "Ravi",
		DateOfJoining: joining,
		RentType:      domain.RentTypeLongTerm,
		IsActive:      true,
	}

	t.Run("Success", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		memberRepo := new(MockMemberRepo)
		svc := newPaymentService(paymentRepo, memberRepo, new(MockRoomRepo), new(MockPGRepo), new(MockEmailService))

		memberRepo.On("GetByID", ctx, memberID).Return(member, nil)
		paymentRepo.On("GetActiveForPeriod", ctx, memberID, 2, 2026).Return(nil, sql.ErrNoRows)
		paymentRepo.On("MaxAttemptNumber", ctx, memberID, 2, 2026).Return(int32(0), nil)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

		payment, err := svc.UploadPayment(ctx, memberID, 2, 2026, decimal.NewFromInt(8000), "payments/abc.png")
		assert.NoError(t, err)
		assert.Equal(t, int32(1), payment.AttemptNumber)
		assert.Equal(t, domain.PaymentStatusPending, payment.PaymentStatus)
		assert.Equal(t, domain.ApprovalStatusPending, payment.ApprovalStatus)
		assert.NotNil(t, payment.PaidDate)
		// Joined on the 31st; February 2026 has 28 days, so the due date
		// clamps to the 28th and overdue lands 7 days later.
		assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), payment.DueDate)
		assert.Equal(t, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), payment.OverdueDate)
	})

	t.Run("Duplicate payment blocked", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		memberRepo := new(MockMemberRepo)
		svc := newPaymentService(paymentRepo, memberRepo, new(MockRoomRepo), new(MockPGRepo), new(MockEmailService))

		memberRepo.On("GetByID", ctx, memberID).Return(member, nil)
		paymentRepo.On("GetActiveForPeriod", ctx, memberID, 2, 2026).Return(&domain.Payment{ID: 9, ApprovalStatus: domain.ApprovalStatusPending}, nil)

		_, err := svc.UploadPayment(ctx, memberID, 2, 2026, decimal.NewFromInt(8000), "payments/abc.png")
		assert.ErrorIs(t, err, service.ErrDuplicatePayment)
		paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Rejected attempt does not block re-upload", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		memberRepo := new(MockMemberRepo)
		svc := newPaymentService(paymentRepo, memberRepo, new(MockRoomRepo), new(MockPGRepo), new(MockEmailService))

		memberRepo.On("GetByID", ctx, memberID).Return(member, nil)
		paymentRepo.On("GetActiveForPeriod", ctx, memberID, 2, 2026).Return(&domain.Payment{ID: 9, ApprovalStatus: domain.ApprovalStatusRejected}, nil)
		paymentRepo.On("MaxAttemptNumber", ctx, memberID, 2, 2026).Return(int32(1), nil)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

		payment, err := svc.UploadPayment(ctx, memberID, 2, 2026, decimal.NewFromInt(8000), "payments/retry.png")
		assert.NoError(t, err)
		assert.Equal(t, int32(2), payment.AttemptNumber)
	})

	t.Run("Re-attempt after rejection increments attempt number", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		memberRepo := new(MockMemberRepo)
		svc := newPaymentService(paymentRepo, memberRepo, new(MockRoomRepo), new(MockPGRepo), new(MockEmailService))

		memberRepo.On("GetByID", ctx, memberID).Return(member, nil)
		paymentRepo.On("GetActiveForPeriod", ctx, memberID, 2, 2026).Return(nil, sql.ErrNoRows)
		paymentRepo.On("MaxAttemptNumber", ctx, memberID, 2, 2026).Return(int32(2), nil)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

		payment, err := svc.UploadPayment(ctx, memberID, 2, 2026, decimal.NewFromInt(8000), "payments/retry.png")
		assert.NoError(t, err)
		assert.Equal(t, int32(3), payment.AttemptNumber)
	})

	t.Run("Inactive member", func(t *testing.T) {
		memberRepo := new(MockMemberRepo)
		svc := newPaymentService(new(MockPaymentRepo), memberRepo, new(MockRoomRepo), new(MockPGRepo), new(MockEmailService))

		inactive := *member
		inactive.IsActive = false
		memberRepo.On("GetByID", ctx, memberID).Return(&inactive, nil)

		_, err := svc.UploadPayment(ctx, memberID, 2, 2026, decimal.NewFromInt(8000), "payments/abc.png")
		assert.ErrorIs(t, err, service.ErrInactiveMember)
	})

	t.Run("Invalid month", func(t *testing.T) {
		svc := newPaymentService(new(MockPaymentRepo), new(MockMemberRepo), new(MockRoomRepo), new(MockPGRepo), new(MockEmailService))

		_, err := svc.UploadPayment(ctx, memberID, 13, 2026, decimal.NewFromInt(8000), "payments/abc.png")
		assert.Error(t, err)
	})
}

func TestPaymentService_ApprovePayment(t *testing.T) {
	ctx := context.Background()
	adminID := int32(2)
	roomID := int32(3)
	joining := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	pg := &domain.PG{ID: 1, Name: "Sunrise PG", Type: domain.PGTypeMens}
	member := &domain.Member{
		ID:            5,
		PGID:          1,
		RoomID:        &roomID,
		Name:          "Ravi",
		Email:         "ravi@test.com",
		DateOfJoining: joining,
		RentType:      domain.RentTypeLongTerm,
		IsActive:      true,
	}
	room := &domain.Room{ID: roomID, PGID: 1, Rent: decimal.NewFromInt(8500)}

	pendingPayment := func() *domain.Payment {
		return &domain.Payment{
			ID:             7,
			MemberID:       5,
			PGID:           1,
			Amount:         decimal.NewFromInt(8500),
			Month:          12,
			Year:           2025,
			AttemptNumber:  1,
			PaymentStatus:  domain.PaymentStatusPending,
			ApprovalStatus: domain.ApprovalStatusPending,
		}
	}

	t.Run("Long-term approval creates successor", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		memberRepo := new(MockMemberRepo)
		roomRepo := new(MockRoomRepo)
		pgRepo := new(MockPGRepo)
		emailSvc := new(MockEmailService)
		svc := newPaymentService(paymentRepo, memberRepo, roomRepo, pgRepo, emailSvc)

		payment := pendingPayment()
		paymentRepo.On("GetByID", ctx, int32(7)).Return(payment, nil)
		pgRepo.On("GetByID", ctx, int32(1)).Return(pg, nil)
		memberRepo.On("GetByID", ctx, int32(5)).Return(member, nil)
		paymentRepo.On("GetActiveForPeriod", ctx, int32(5), 1, 2026).Return(nil, sql.ErrNoRows)
		roomRepo.On("GetByID", ctx, roomID).Return(room, nil)
		paymentRepo.On("ApproveWithSuccessor", ctx, payment, mock.AnythingOfType("*domain.Payment")).Return(nil)
		emailSvc.On("SendPaymentReceipt", ctx, "ravi@test.com", "Ravi", mock.Anything, 12, 2025).Return(nil)

		approved, err := svc.ApprovePayment(ctx, adminID, domain.PGTypeMens, 7)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, approved.PaymentStatus)
		assert.Equal(t, domain.ApprovalStatusApproved, approved.ApprovalStatus)
		assert.Equal(t, &adminID, approved.ApprovedBy)

		// Successor rolls into January 2026, due on the joining day.
		successor := paymentRepo.Calls[len(paymentRepo.Calls)-1].Arguments.Get(2).(*domain.Payment)
		assert.Equal(t, 1, successor.Month)
		assert.Equal(t, 2026, successor.Year)
		assert.Equal(t, int32(1), successor.AttemptNumber)
		assert.Equal(t, domain.PaymentStatusPending, successor.PaymentStatus)
		assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), successor.DueDate)
		assert.True(t, successor.Amount.Equal(room.Rent))
	})

	t.Run("Successor skipped when one already exists", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		memberRepo := new(MockMemberRepo)
		pgRepo := new(MockPGRepo)
		emailSvc := new(MockEmailService)
		svc := newPaymentService(paymentRepo, memberRepo, new(MockRoomRepo), pgRepo, emailSvc)

		payment := pendingPayment()
		paymentRepo.On("GetByID", ctx, int32(7)).Return(payment, nil)
		pgRepo.On("GetByID", ctx, int32(1)).Return(pg, nil)
		memberRepo.On("GetByID", ctx, int32(5)).Return(member, nil)
		paymentRepo.On("GetActiveForPeriod", ctx, int32(5), 1, 2026).Return(&domain.Payment{ID: 11}, nil)
		paymentRepo.On("ApproveWithSuccessor", ctx, payment, (*domain.Payment)(nil)).Return(nil)
		emailSvc.On("SendPaymentReceipt", ctx, "ravi@test.com", "Ravi", mock.Anything, 12, 2025).Return(nil)

		_, err := svc.ApprovePayment(ctx, adminID, domain.PGTypeMens, 7)
		assert.NoError(t, err)
		paymentRepo.AssertCalled(t, "ApproveWithSuccessor", ctx, payment, (*domain.Payment)(nil))
	})

	t.Run("No successor for short-term member", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		memberRepo := new(MockMemberRepo)
		pgRepo := new(MockPGRepo)
		emailSvc := new(MockEmailService)
		svc := newPaymentService(paymentRepo, memberRepo, new(MockRoomRepo), pgRepo, emailSvc)

		shortTerm := *member
		shortTerm.RentType = domain.RentTypeShortTerm
		payment := pendingPayment()
		paymentRepo.On("GetByID", ctx, int32(7)).Return(payment, nil)
		pgRepo.On("GetByID", ctx, int32(1)).Return(pg, nil)
		memberRepo.On("GetByID", ctx, int32(5)).Return(&shortTerm, nil)
		paymentRepo.On("ApproveWithSuccessor", ctx, payment, (*domain.Payment)(nil)).Return(nil)
		emailSvc.On("SendPaymentReceipt", ctx, "ravi@test.com", "Ravi", mock.Anything, 12, 2025).Return(nil)

		_, err := svc.ApprovePayment(ctx, adminID, domain.PGTypeMens, 7)
		assert.NoError(t, err)
		paymentRepo.AssertNotCalled(t, "GetActiveForPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already processed", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		memberRepo := new(MockMemberRepo)
		pgRepo := new(MockPGRepo)
		svc := newPaymentService(paymentRepo, memberRepo, new(MockRoomRepo), pgRepo, new(MockEmailService))

		payment := pendingPayment()
		payment.ApprovalStatus = domain.ApprovalStatusApproved
		payment.PaymentStatus = domain.PaymentStatusPaid
		paymentRepo.On("GetByID", ctx, int32(7)).Return(payment, nil)
		pgRepo.On("GetByID", ctx, int32(1)).Return(pg, nil)
		memberRepo.On("GetByID", ctx, int32(5)).Return(member, nil)

		_, err := svc.ApprovePayment(ctx, adminID, domain.PGTypeMens, 7)
		assert.ErrorIs(t, err, service.ErrAlreadyProcessed)
	})

	t.Run("Wrong hostel type", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		pgRepo := new(MockPGRepo)
		svc := newPaymentService(paymentRepo, new(MockMemberRepo), new(MockRoomRepo), pgRepo, new(MockEmailService))

		paymentRepo.On("GetByID", ctx, int32(7)).Return(pendingPayment(), nil)
		pgRepo.On("GetByID", ctx, int32(1)).Return(pg, nil)

		_, err := svc.ApprovePayment(ctx, adminID, domain.PGTypeWomens, 7)
		assert.ErrorIs(t, err, service.ErrForbidden)
	})
}

func TestPaymentService_RejectPayment(t *testing.T) {
	ctx := context.Background()
	pg := &domain.PG{ID: 1, Type: domain.PGTypeMens}
	member := &domain.Member{ID: 5, PGID: 1, Name: "Ravi", Email: "ravi@test.com", IsActive: true}

	paymentRepo := new(MockPaymentRepo)
	memberRepo := new(MockMemberRepo)
	pgRepo := new(MockPGRepo)
	emailSvc := new(MockEmailService)
	svc := newPaymentService(paymentRepo, memberRepo, new(MockRoomRepo), pgRepo, emailSvc)

	payment := &domain.Payment{
		ID:             7,
		MemberID:       5,
		PGID:           1,
		Month:          3,
		Year:           2026,
		PaymentStatus:  domain.PaymentStatusPending,
		ApprovalStatus: domain.ApprovalStatusPending,
	}
	paymentRepo.On("GetByID", ctx, int32(7)).Return(payment, nil)
	pgRepo.On("GetByID", ctx, int32(1)).Return(pg, nil)
	memberRepo.On("GetByID", ctx, int32(5)).Return(member, nil)
	paymentRepo.On("Update", ctx, payment).Return(nil)
	emailSvc.On("SendPaymentRejected", ctx, "ravi@test.com", "Ravi", 3, 2026, "blurry screenshot").Return(nil)

	rejected, err := svc.RejectPayment(ctx, 2, domain.PGTypeMens, 7, "blurry screenshot")
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRejected, rejected.PaymentStatus)
	assert.Equal(t, domain.ApprovalStatusRejected, rejected.ApprovalStatus)
	assert.Equal(t, "blurry screenshot", rejected.RejectionReason)
}

func TestPaymentService_SweepOverdue(t *testing.T) {
	ctx := context.Background()
	paymentRepo := new(MockPaymentRepo)
	svc := newPaymentService(paymentRepo, new(MockMemberRepo), new(MockRoomRepo), new(MockPGRepo), new(MockEmailService))

	paymentRepo.On("MarkOverdue", ctx, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	flipped, err := svc.SweepOverdue(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), flipped)
}
