package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats is a materialized snapshot per (pg_type, month, year).
// It exists so dashboard reads can show month-over-month deltas without
// re-aggregating the previous month on every request.
type DashboardStats struct {
	ID                int32           `json:"id"`
	PGType            PGType          `json:"pg_type"`
	Month             int             `json:"month"`
	Year              int             `json:"year"`
	TotalMembers      int32           `json:"total_members"`
	ActiveMembers     int32           `json:"active_members"`
	NewJoins          int32           `json:"new_joins"`
	AmountCollected   decimal.Decimal `json:"amount_collected"`
	PendingPayments   int32           `json:"pending_payments"`
	OverduePayments   int32           `json:"overdue_payments"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	ComputedAt        time.Time       `json:"computed_at"`
}

// ExpenseStats is a materialized per-category expense rollup per
// (pg_type, month, year), recomputed on demand and by the monthly cron.
type ExpenseStats struct {
	ID             int32                      `json:"id"`
	PGType         PGType                     `json:"pg_type"`
	Month          int                        `json:"month"`
	Year           int                        `json:"year"`
	Total          decimal.Decimal            `json:"total"`
	CategoryTotals map[string]decimal.Decimal `json:"category_totals"`
	ComputedAt     time.Time                  `json:"computed_at"`
}
