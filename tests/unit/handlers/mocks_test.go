package handlers

import (
	"context"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) UploadPayment(ctx context.Context, memberID int32, month, year int, amount decimal.Decimal, screenshotKey string) (*domain.Payment, error) {
	args := m.Called(ctx, memberID, month, year, amount, screenshotKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) ListMemberPayments(ctx context.Context, memberID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentService) ListPayments(ctx context.Context, pgType domain.PGType, paymentStatus, approvalStatus string, page, pageSize int32) ([]domain.Payment, int32, error) {
	args := m.Called(ctx, pgType, paymentStatus, approvalStatus, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Payment), args.Get(1).(int32), args.Error(2)
}
func (m *MockPaymentService) ApprovePayment(ctx context.Context, adminID int32, pgType domain.PGType, paymentID int32) (*domain.Payment, error) {
	args := m.Called(ctx, adminID, pgType, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) RejectPayment(ctx context.Context, adminID int32, pgType domain.PGType, paymentID int32, reason string) (*domain.Payment, error) {
	args := m.Called(ctx, adminID, pgType, paymentID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) SweepOverdue(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockExpenseService
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) AddExpense(ctx context.Context, adminID int32, pgType domain.PGType, expense *domain.Expense) error {
	args := m.Called(ctx, adminID, pgType, expense)
	return args.Error(0)
}
func (m *MockExpenseService) ListExpenses(ctx context.Context, pgType domain.PGType, month, year int) ([]domain.Expense, error) {
	args := m.Called(ctx, pgType, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}
func (m *MockExpenseService) DeleteExpense(ctx context.Context, pgType domain.PGType, id int32) error {
	args := m.Called(ctx, pgType, id)
	return args.Error(0)
}
func (m *MockExpenseService) GetExpenseStats(ctx context.Context, pgType domain.PGType, month, year int) (*domain.ExpenseStats, error) {
	args := m.Called(ctx, pgType, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseStats), args.Error(1)
}
func (m *MockExpenseService) RecomputeExpenseStats(ctx context.Context, pgType domain.PGType, month, year int) (*domain.ExpenseStats, error) {
	args := m.Called(ctx, pgType, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseStats), args.Error(1)
}

var _ service.PaymentService = (*MockPaymentService)(nil)
var _ service.ExpenseService = (*MockExpenseService)(nil)
