package unit

import (
	"context"
	"time"

	"pgnest-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAdminRepo
type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}
func (m *MockAdminRepo) GetByID(ctx context.Context, id int32) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
func (m *MockAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
func (m *MockAdminRepo) Update(ctx context.Context, admin *domain.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

// MockPGRepo
type MockPGRepo struct {
	mock.Mock
}

func (m *MockPGRepo) Create(ctx context.Context, pg *domain.PG) error {
	args := m.Called(ctx, pg)
	return args.Error(0)
}
func (m *MockPGRepo) GetByID(ctx context.Context, id int32) (*domain.PG, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PG), args.Error(1)
}
func (m *MockPGRepo) Update(ctx context.Context, pg *domain.PG) error {
	args := m.Called(ctx, pg)
	return args.Error(0)
}

// MockRoomRepo
type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}
func (m *MockRoomRepo) GetByID(ctx context.Context, id int32) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}
func (m *MockRoomRepo) ListByPGType(ctx context.Context, pgType domain.PGType) ([]domain.Room, error) {
	args := m.Called(ctx, pgType)
	return args.Get(0).([]domain.Room), args.Error(1)
}
func (m *MockRoomRepo) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}
func (m *MockRoomRepo) AdjustOccupancy(ctx context.Context, roomID int32, delta int32) error {
	args := m.Called(ctx, roomID, delta)
	return args.Error(0)
}

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) GetByPhone(ctx context.Context, phone string) (*domain.Member, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) Deactivate(ctx context.Context, id int32, relievingDate time.Time) error {
	args := m.Called(ctx, id, relievingDate)
	return args.Error(0)
}
func (m *MockMemberRepo) ListByPGType(ctx context.Context, pgType domain.PGType, activeOnly bool) ([]domain.Member, error) {
	args := m.Called(ctx, pgType, activeOnly)
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) ListByRentType(ctx context.Context, pgType domain.PGType, rentType domain.RentType) ([]domain.Member, error) {
	args := m.Called(ctx, pgType, rentType)
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) CountByPGType(ctx context.Context, pgType domain.PGType) (int32, int32, error) {
	args := m.Called(ctx, pgType)
	return args.Get(0).(int32), args.Get(1).(int32), args.Error(2)
}
func (m *MockMemberRepo) CountJoinsInMonth(ctx context.Context, pgType domain.PGType, month, year int) (int32, error) {
	args := m.Called(ctx, pgType, month, year)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockMemberRepo) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockRegisteredMemberRepo
type MockRegisteredMemberRepo struct {
	mock.Mock
}

func (m *MockRegisteredMemberRepo) Create(ctx context.Context, reg *domain.RegisteredMember) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}
func (m *MockRegisteredMemberRepo) GetByID(ctx context.Context, id int32) (*domain.RegisteredMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegisteredMember), args.Error(1)
}
func (m *MockRegisteredMemberRepo) GetPendingByPhone(ctx context.Context, phone string) (*domain.RegisteredMember, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegisteredMember), args.Error(1)
}
func (m *MockRegisteredMemberRepo) Update(ctx context.Context, reg *domain.RegisteredMember) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}
func (m *MockRegisteredMemberRepo) ListByPGType(ctx context.Context, pgType domain.PGType, status domain.RegistrationStatus) ([]domain.RegisteredMember, error) {
	args := m.Called(ctx, pgType, status)
	return args.Get(0).([]domain.RegisteredMember), args.Error(1)
}
func (m *MockRegisteredMemberRepo) DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRegisteredMemberRepo) Promote(ctx context.Context, reg *domain.RegisteredMember, member *domain.Member, firstPayment *domain.Payment) error {
	args := m.Called(ctx, reg, member, firstPayment)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Update(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetActiveForPeriod(ctx context.Context, memberID int32, month, year int) (*domain.Payment, error) {
	args := m.Called(ctx, memberID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) MaxAttemptNumber(ctx context.Context, memberID int32, month, year int) (int32, error) {
	args := m.Called(ctx, memberID, month, year)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockPaymentRepo) ListByMember(ctx context.Context, memberID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByPGType(ctx context.Context, pgType domain.PGType, paymentStatus, approvalStatus string, page, pageSize int32) ([]domain.Payment, int32, error) {
	args := m.Called(ctx, pgType, paymentStatus, approvalStatus, page, pageSize)
	return args.Get(0).([]domain.Payment), args.Get(1).(int32), args.Error(2)
}
func (m *MockPaymentRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPaymentRepo) ApproveWithSuccessor(ctx context.Context, payment *domain.Payment, next *domain.Payment) error {
	args := m.Called(ctx, payment, next)
	return args.Error(0)
}
func (m *MockPaymentRepo) SumCollectedInMonth(ctx context.Context, pgType domain.PGType, month, year int) (decimal.Decimal, error) {
	args := m.Called(ctx, pgType, month, year)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockPaymentRepo) CountByPaymentStatusInMonth(ctx context.Context, pgType domain.PGType, status domain.PaymentStatus, month, year int) (int32, error) {
	args := m.Called(ctx, pgType, status, month, year)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockPaymentRepo) SumPendingDues(ctx context.Context, memberID int32) (decimal.Decimal, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockLeavingRequestRepo
type MockLeavingRequestRepo struct {
	mock.Mock
}

func (m *MockLeavingRequestRepo) Create(ctx context.Context, req *domain.LeavingRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockLeavingRequestRepo) GetByID(ctx context.Context, id int32) (*domain.LeavingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeavingRequest), args.Error(1)
}
func (m *MockLeavingRequestRepo) GetPendingByMember(ctx context.Context, memberID int32) (*domain.LeavingRequest, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeavingRequest), args.Error(1)
}
func (m *MockLeavingRequestRepo) Update(ctx context.Context, req *domain.LeavingRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockLeavingRequestRepo) ListByMember(ctx context.Context, memberID int32) ([]domain.LeavingRequest, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]domain.LeavingRequest), args.Error(1)
}
func (m *MockLeavingRequestRepo) ListByPGType(ctx context.Context, pgType domain.PGType, status domain.LeavingRequestStatus) ([]domain.LeavingRequest, error) {
	args := m.Called(ctx, pgType, status)
	return args.Get(0).([]domain.LeavingRequest), args.Error(1)
}
func (m *MockLeavingRequestRepo) ApproveAndRelease(ctx context.Context, req *domain.LeavingRequest, roomID *int32) error {
	args := m.Called(ctx, req, roomID)
	return args.Error(0)
}

// MockExpenseRepo
type MockExpenseRepo struct {
	mock.Mock
}

func (m *MockExpenseRepo) Create(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}
func (m *MockExpenseRepo) GetByID(ctx context.Context, id int32) (*domain.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockExpenseRepo) ListByMonth(ctx context.Context, pgType domain.PGType, month, year int) ([]domain.Expense, error) {
	args := m.Called(ctx, pgType, month, year)
	return args.Get(0).([]domain.Expense), args.Error(1)
}
func (m *MockExpenseRepo) SumByMonth(ctx context.Context, pgType domain.PGType, month, year int) (decimal.Decimal, error) {
	args := m.Called(ctx, pgType, month, year)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockExpenseRepo) CategoryTotals(ctx context.Context, pgType domain.PGType, month, year int) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, pgType, month, year)
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// MockStatsRepo
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) UpsertDashboardStats(ctx context.Context, stats *domain.DashboardStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}
func (m *MockStatsRepo) GetDashboardStats(ctx context.Context, pgType domain.PGType, month, year int) (*domain.DashboardStats, error) {
	args := m.Called(ctx, pgType, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
func (m *MockStatsRepo) UpsertExpenseStats(ctx context.Context, stats *domain.ExpenseStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}
func (m *MockStatsRepo) GetExpenseStats(ctx context.Context, pgType domain.PGType, month, year int) (*domain.ExpenseStats, error) {
	args := m.Called(ctx, pgType, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseStats), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRegistrationApproved(ctx context.Context, email, name, pgName string) error {
	args := m.Called(ctx, email, name, pgName)
	return args.Error(0)
}
func (m *MockEmailService) SendRegistrationRejected(ctx context.Context, email, name, reason string) error {
	args := m.Called(ctx, email, name, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, email, name string, amount decimal.Decimal, month, year int) error {
	args := m.Called(ctx, email, name, amount, month, year)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentRejected(ctx context.Context, email, name string, month, year int, reason string) error {
	args := m.Called(ctx, email, name, month, year, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendLeavingSettlement(ctx context.Context, email, name string, settlement decimal.Decimal) error {
	args := m.Called(ctx, email, name, settlement)
	return args.Error(0)
}
