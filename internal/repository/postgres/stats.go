package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) UpsertDashboardStats(ctx context.Context, s *domain.DashboardStats) error {
	query := `INSERT INTO dashboard_stats (pg_type, month, year, total_members, active_members, new_joins, amount_collected, pending_payments, overdue_payments, total_expenses, computed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          ON CONFLICT (pg_type, month, year) DO UPDATE SET
	            total_members = EXCLUDED.total_members,
	            active_members = EXCLUDED.active_members,
	            new_joins = EXCLUDED.new_joins,
	            amount_collected = EXCLUDED.amount_collected,
	            pending_payments = EXCLUDED.pending_payments,
	            overdue_payments = EXCLUDED.overdue_payments,
	            total_expenses = EXCLUDED.total_expenses,
	            computed_at = EXCLUDED.computed_at
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query, s.PGType, s.Month, s.Year, s.TotalMembers,
		s.ActiveMembers, s.NewJoins, s.AmountCollected, s.PendingPayments, s.OverduePayments,
		s.TotalExpenses, time.Now()).Scan(&s.ID)
}

func (r *statsRepository) GetDashboardStats(ctx context.Context, pgType domain.PGType, month, year int) (*domain.DashboardStats, error) {
	s := &domain.DashboardStats{}
	query := `SELECT id, pg_type, month, year, total_members, active_members, new_joins, amount_collected, pending_payments, overdue_payments, total_expenses, computed_at
	          FROM dashboard_stats WHERE pg_type = $1 AND month = $2 AND year = $3`
	err := r.db.QueryRowContext(ctx, query, pgType, month, year).Scan(&s.ID, &s.PGType, &s.Month,
		&s.Year, &s.TotalMembers, &s.ActiveMembers, &s.NewJoins, &s.AmountCollected,
		&s.PendingPayments, &s.OverduePayments, &s.TotalExpenses, &s.ComputedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *statsRepository) UpsertExpenseStats(ctx context.Context, s *domain.ExpenseStats) error {
	categories, err := json.Marshal(s.CategoryTotals)
	if err != nil {
		return err
	}
	query := `INSERT INTO expense_stats (pg_type, month, year, total, category_totals, computed_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (pg_type, month, year) DO UPDATE SET
	            total = EXCLUDED.total,
	            category_totals = EXCLUDED.category_totals,
	            computed_at = EXCLUDED.computed_at
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query, s.PGType, s.Month, s.Year, s.Total, categories, time.Now()).Scan(&s.ID)
}

func (r *statsRepository) GetExpenseStats(ctx context.Context, pgType domain.PGType, month, year int) (*domain.ExpenseStats, error) {
	s := &domain.ExpenseStats{}
	var categories []byte
	query := `SELECT id, pg_type, month, year, total, category_totals, computed_at
	          FROM expense_stats WHERE pg_type = $1 AND month = $2 AND year = $3`
	err := r.db.QueryRowContext(ctx, query, pgType, month, year).Scan(&s.ID, &s.PGType, &s.Month,
		&s.Year, &s.Total, &categories, &s.ComputedAt)
	if err != nil {
		return nil, err
	}
	s.CategoryTotals = make(map[string]decimal.Decimal)
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &s.CategoryTotals); err != nil {
			return nil, err
		}
	}
	return s, nil
}
