package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/repository"
	"pgnest-backend/internal/utils"

	"github.com/shopspring/decimal"
)

type dashboardService struct {
	memberRepo  repository.MemberRepository
	paymentRepo repository.PaymentRepository
	expenseRepo repository.ExpenseRepository
	statsRepo   repository.StatsRepository
	paymentSvc  PaymentService
}

func NewDashboardService(
	memberRepo repository.MemberRepository,
	paymentRepo repository.PaymentRepository,
	expenseRepo repository.ExpenseRepository,
	statsRepo repository.StatsRepository,
	paymentSvc PaymentService,
) DashboardService {
	return &dashboardService{
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		expenseRepo: expenseRepo,
		statsRepo:   statsRepo,
		paymentSvc:  paymentSvc,
	}
}

// GetDashboard computes the current month's stats, refreshes the
// materialized snapshot, and reports deltas against the previous month's
// snapshot. The overdue sweep runs first so the counts are current.
func (s *dashboardService) GetDashboard(ctx context.Context, pgType domain.PGType) (*DashboardSummary, error) {
	if _, err := s.paymentSvc.SweepOverdue(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	month, year := int(now.Month()), now.Year()

	current, err := s.computeStats(ctx, pgType, month, year)
	if err != nil {
		return nil, err
	}
	if err := s.statsRepo.UpsertDashboardStats(ctx, current); err != nil {
		return nil, err
	}

	prevMonth, prevYear := utils.PreviousMonth(month, year)
	previous, err := s.statsRepo.GetDashboardStats(ctx, pgType, prevMonth, prevYear)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		// First read for this scope: materialize the previous month too
		// so later reads get a stable baseline.
		previous, err = s.computeStats(ctx, pgType, prevMonth, prevYear)
		if err != nil {
			return nil, err
		}
		if err := s.statsRepo.UpsertDashboardStats(ctx, previous); err != nil {
			return nil, err
		}
	}

	return &DashboardSummary{
		PGType:          pgType,
		Month:           month,
		Year:            year,
		TotalMembers:    current.TotalMembers,
		ActiveMembers:   current.ActiveMembers,
		NewJoins:        current.NewJoins,
		PendingPayments: current.PendingPayments,
		OverduePayments: current.OverduePayments,
		Collection:      delta(current.AmountCollected, previous.AmountCollected),
		Expenses:        delta(current.TotalExpenses, previous.TotalExpenses),
	}, nil
}

func (s *dashboardService) computeStats(ctx context.Context, pgType domain.PGType, month, year int) (*domain.DashboardStats, error) {
	total, active, err := s.memberRepo.CountByPGType(ctx, pgType)
	if err != nil {
		return nil, err
	}
	newJoins, err := s.memberRepo.CountJoinsInMonth(ctx, pgType, month, year)
	if err != nil {
		return nil, err
	}
	collected, err := s.paymentRepo.SumCollectedInMonth(ctx, pgType, month, year)
	if err != nil {
		return nil, err
	}
	pending, err := s.paymentRepo.CountByPaymentStatusInMonth(ctx, pgType, domain.PaymentStatusPending, month, year)
	if err != nil {
		return nil, err
	}
	overdue, err := s.paymentRepo.CountByPaymentStatusInMonth(ctx, pgType, domain.PaymentStatusOverdue, month, year)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.SumByMonth(ctx, pgType, month, year)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		PGType:          pgType,
		Month:           month,
		Year:            year,
		TotalMembers:    total,
		ActiveMembers:   active,
		NewJoins:        newJoins,
		AmountCollected: collected,
		PendingPayments: pending,
		OverduePayments: overdue,
		TotalExpenses:   expenses,
	}, nil
}

func delta(current, previous decimal.Decimal) TrendDelta {
	return TrendDelta{
		Current:  current,
		Previous: previous,
		Delta:    current.Sub(previous),
	}
}
