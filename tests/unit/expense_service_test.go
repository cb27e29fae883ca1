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

func TestExpenseService_AddExpense(t *testing.T) {
	ctx := context.Background()
	adminID := int32(2)
	pgType := domain.PGTypeColiving
	pg := &domain.PG{ID: 1, Type: pgType}

	expense := &domain.Expense{
		PGID:        1,
		Category:    domain.ExpenseCategoryGroceries,
		Description: "weekly vegetables",
		Amount:      decimal.NewFromInt(3200),
		PaidOn:      time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
	}

	t.Run("Success refreshes the month's rollup", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepo)
		statsRepo := new(MockStatsRepo)
		pgRepo := new(MockPGRepo)
		svc := service.NewExpenseService(expenseRepo, statsRepo, pgRepo)

		pgRepo.On("GetByID", ctx, int32(1)).Return(pg, nil)
		expenseRepo.On("Create", ctx, expense).Return(nil)
		expenseRepo.On("SumByMonth", ctx, pgType, 8, 2026).Return(decimal.NewFromInt(3200), nil)
		expenseRepo.On("CategoryTotals", ctx, pgType, 8, 2026).Return(map[string]decimal.Decimal{
			"GROCERIES": decimal.NewFromInt(3200),
		}, nil)
		statsRepo.On("UpsertExpenseStats", ctx, mock.AnythingOfType("*domain.ExpenseStats")).Return(nil)

		err := svc.AddExpense(ctx, adminID, pgType, expense)
		assert.NoError(t, err)
		assert.Equal(t, &adminID, expense.RecordedBy)
		statsRepo.AssertCalled(t, "UpsertExpenseStats", ctx, mock.AnythingOfType("*domain.ExpenseStats"))
	})

	t.Run("Wrong hostel type", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepo)
		pgRepo := new(MockPGRepo)
		svc := service.NewExpenseService(expenseRepo, new(MockStatsRepo), pgRepo)

		pgRepo.On("GetByID", ctx, int32(1)).Return(pg, nil)

		err := svc.AddExpense(ctx, adminID, domain.PGTypeMens, expense)
		assert.ErrorIs(t, err, service.ErrForbidden)
		expenseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestExpenseService_GetExpenseStats(t *testing.T) {
	ctx := context.Background()
	pgType := domain.PGTypeColiving

	t.Run("Served from cache", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepo)
		statsRepo := new(MockStatsRepo)
		svc := service.NewExpenseService(expenseRepo, statsRepo, new(MockPGRepo))

		cached := &domain.ExpenseStats{PGType: pgType, Month: 8, Year: 2026, Total: decimal.NewFromInt(12000)}
		statsRepo.On("GetExpenseStats", ctx, pgType, 8, 2026).Return(cached, nil)

		stats, err := svc.GetExpenseStats(ctx, pgType, 8, 2026)
		assert.NoError(t, err)
		assert.Equal(t, cached, stats)
		expenseRepo.AssertNotCalled(t, "SumByMonth", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Computed and cached when absent", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepo)
		statsRepo := new(MockStatsRepo)
		svc := service.NewExpenseService(expenseRepo, statsRepo, new(MockPGRepo))

		statsRepo.On("GetExpenseStats", ctx, pgType, 8, 2026).Return(nil, sql.ErrNoRows)
		expenseRepo.On("SumByMonth", ctx, pgType, 8, 2026).Return(decimal.NewFromInt(15500), nil)
		expenseRepo.On("CategoryTotals", ctx, pgType, 8, 2026).Return(map[string]decimal.Decimal{
			"UTILITIES": decimal.NewFromInt(5500),
			"SALARIES":  decimal.NewFromInt(10000),
		}, nil)
		statsRepo.On("UpsertExpenseStats", ctx, mock.AnythingOfType("*domain.ExpenseStats")).Return(nil)

		stats, err := svc.GetExpenseStats(ctx, pgType, 8, 2026)
		assert.NoError(t, err)
		assert.True(t, stats.Total.Equal(decimal.NewFromInt(15500)))
		assert.Len(t, stats.CategoryTotals, 2)
	})
}

func TestExpenseService_DeleteExpense(t *testing.T) {
	ctx := context.Background()
	pgType := domain.PGTypeColiving

	expenseRepo := new(MockExpenseRepo)
	statsRepo := new(MockStatsRepo)
	pgRepo := new(MockPGRepo)
	svc := service.NewExpenseService(expenseRepo, statsRepo, pgRepo)

	expense := &domain.Expense{
		ID:     7,
		PGID:   1,
		PaidOn: time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
	}
	expenseRepo.On("GetByID", ctx, int32(7)).Return(expense, nil)
	pgRepo.On("GetByID", ctx, int32(1)).Return(&domain.PG{ID: 1, Type: pgType}, nil)
	expenseRepo.On("Delete", ctx, int32(7)).Return(nil)
	expenseRepo.On("SumByMonth", ctx, pgType, 8, 2026).Return(decimal.Zero, nil)
	expenseRepo.On("CategoryTotals", ctx, pgType, 8, 2026).Return(map[string]decimal.Decimal{}, nil)
	statsRepo.On("UpsertExpenseStats", ctx, mock.AnythingOfType("*domain.ExpenseStats")).Return(nil)

	err := svc.DeleteExpense(ctx, pgType, 7)
	assert.NoError(t, err)
	expenseRepo.AssertCalled(t, "Delete", ctx, int32(7))
}
