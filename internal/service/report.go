package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/logger"
	"pgnest-backend/internal/report"
	"pgnest-backend/internal/repository"
)

type reportService struct {
	memberRepo  repository.MemberRepository
	paymentRepo repository.PaymentRepository
	expenseRepo repository.ExpenseRepository
	paymentSvc  PaymentService
}

func NewReportService(
	memberRepo repository.MemberRepository,
	paymentRepo repository.PaymentRepository,
	expenseRepo repository.ExpenseRepository,
	paymentSvc PaymentService,
) ReportService {
	return &reportService{
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		expenseRepo: expenseRepo,
		paymentSvc:  paymentSvc,
	}
}

// reportPageSize bounds the payment sheet; a PG of this size would be a
// campus, not a hostel.
const reportPageSize = 1000

func (s *reportService) MemberReport(ctx context.Context, pgType domain.PGType, month, year int) ([]byte, string, error) {
	if _, err := s.paymentSvc.SweepOverdue(ctx); err != nil {
		return nil, "", err
	}

	members, err := s.memberRepo.ListByPGType(ctx, pgType, false)
	if err != nil {
		return nil, "", err
	}
	payments, _, err := s.paymentRepo.ListByPGType(ctx, pgType, "", "", 1, reportPageSize)
	if err != nil {
		return nil, "", err
	}
	// Report card covers one billing month.
	var monthly []domain.Payment
	for _, p := range payments {
		if p.Month == month && p.Year == year {
			monthly = append(monthly, p)
		}
	}
	expenses, err := s.expenseRepo.ListByMonth(ctx, pgType, month, year)
	if err != nil {
		return nil, "", err
	}

	membersCSV, err := report.MembersCSV(members)
	if err != nil {
		return nil, "", err
	}
	paymentsCSV, err := report.PaymentsCSV(monthly)
	if err != nil {
		return nil, "", err
	}
	expensesCSV, err := report.ExpensesCSV(expenses)
	if err != nil {
		return nil, "", err
	}

	entries := []report.Entry{
		{Name: "members.csv", Data: membersCSV},
		{Name: "payments.csv", Data: paymentsCSV},
		{Name: "expenses.csv", Data: expensesCSV},
	}

	categoryTotals, err := s.expenseRepo.CategoryTotals(ctx, pgType, month, year)
	if err != nil {
		return nil, "", err
	}
	if len(categoryTotals) > 0 {
		period := fmt.Sprintf("%s %d", time.Month(month), year)
		chart, err := report.ExpenseBreakdownChart(period, categoryTotals)
		if err != nil {
			logger.Error("Failed to render expense chart", "pg_type", pgType, "error", err)
		} else {
			entries = append(entries, report.Entry{Name: "expense_breakdown.png", Data: chart})
		}
	}

	archive, err := report.BuildZip(entries)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("report_%s_%04d-%02d.zip", strings.ToLower(string(pgType)), year, month)
	logger.Info("Member report generated", "pg_type", pgType, "month", month, "year", year, "size_bytes", len(archive))
	return archive, filename, nil
}
