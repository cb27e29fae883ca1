package jobs

import (
	"context"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/logger"
	"pgnest-backend/internal/utils"
)

// RecomputeExpenseStats rebuilds the previous month's expense rollup for
// every hostel type. Runs on the 1st so the closed month ends up with a
// final, settled rollup regardless of when the last expense was entered.
func (jr *JobRunner) RecomputeExpenseStats() {
	jr.runWithRecovery("RecomputeExpenseStats", func() {
		ctx := context.Background()

		now := time.Now().UTC()
		month, year := utils.PreviousMonth(int(now.Month()), now.Year())

		for _, pgType := range []domain.PGType{domain.PGTypeMens, domain.PGTypeWomens, domain.PGTypeColiving} {
			stats, err := jr.services.Expense.RecomputeExpenseStats(ctx, pgType, month, year)
			if err != nil {
				logger.Error("Failed to recompute expense stats",
					"pg_type", pgType, "month", month, "year", year, "error", err)
				continue
			}
			logger.Info("Recomputed expense stats",
				"pg_type", pgType, "month", month, "year", year,
				"total", stats.Total.String())
		}

		// Sweep payment statuses too, so the new month starts from a
		// consistent ledger even if no admin has opened the dashboard yet.
		swept, err := jr.services.Payment.SweepOverdue(ctx)
		if err != nil {
			logger.Error("Failed to sweep overdue payments", "error", err)
			return
		}
		logger.Info("Swept overdue payments", "count", swept)
	})
}
