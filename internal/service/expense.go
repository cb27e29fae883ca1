package service

import (
	"context"
	"database/sql"
	"errors"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/logger"
	"pgnest-backend/internal/repository"
)

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	statsRepo   repository.StatsRepository
	pgRepo      repository.PGRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, statsRepo repository.StatsRepository, pgRepo repository.PGRepository) ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		statsRepo:   statsRepo,
		pgRepo:      pgRepo,
	}
}

func (s *expenseService) AddExpense(ctx context.Context, adminID int32, pgType domain.PGType, expense *domain.Expense) error {
	pg, err := s.pgRepo.GetByID(ctx, expense.PGID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if pg.Type != pgType {
		return ErrForbidden
	}

	expense.RecordedBy = &adminID
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return err
	}

	// The cached rollup for the expense's month is stale now; refresh it
	// eagerly rather than waiting for the cron.
	if _, err := s.RecomputeExpenseStats(ctx, pgType, int(expense.PaidOn.Month()), expense.PaidOn.Year()); err != nil {
		logger.Error("Failed to refresh expense stats", "pg_type", pgType, "error", err)
	}

	logger.Info("Expense recorded", "expense_id", expense.ID, "pg_id", expense.PGID, "category", expense.Category, "amount", expense.Amount)
	return nil
}

func (s *expenseService) ListExpenses(ctx context.Context, pgType domain.PGType, month, year int) ([]domain.Expense, error) {
	return s.expenseRepo.ListByMonth(ctx, pgType, month, year)
}

func (s *expenseService) DeleteExpense(ctx context.Context, pgType domain.PGType, id int32) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	pg, err := s.pgRepo.GetByID(ctx, expense.PGID)
	if err != nil {
		return err
	}
	if pg.Type != pgType {
		return ErrForbidden
	}

	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}

	if _, err := s.RecomputeExpenseStats(ctx, pgType, int(expense.PaidOn.Month()), expense.PaidOn.Year()); err != nil {
		logger.Error("Failed to refresh expense stats", "pg_type", pgType, "error", err)
	}
	return nil
}

func (s *expenseService) GetExpenseStats(ctx context.Context, pgType domain.PGType, month, year int) (*domain.ExpenseStats, error) {
	stats, err := s.statsRepo.GetExpenseStats(ctx, pgType, month, year)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return s.RecomputeExpenseStats(ctx, pgType, month, year)
}

func (s *expenseService) RecomputeExpenseStats(ctx context.Context, pgType domain.PGType, month, year int) (*domain.ExpenseStats, error) {
	total, err := s.expenseRepo.SumByMonth(ctx, pgType, month, year)
	if err != nil {
		return nil, err
	}
	categories, err := s.expenseRepo.CategoryTotals(ctx, pgType, month, year)
	if err != nil {
		return nil, err
	}

	stats := &domain.ExpenseStats{
		PGType:         pgType,
		Month:          month,
		Year:           year,
		Total:          total,
		CategoryTotals: categories,
	}
	if err := s.statsRepo.UpsertExpenseStats(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}
