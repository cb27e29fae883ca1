package jobs

import (
	"context"
	"time"

	"pgnest-backend/internal/logger"
)

// CleanupInactiveMembers purges members who left long enough ago that
// their records fall outside the retention window, along with processed
// registration applications from the same window.
func (jr *JobRunner) CleanupInactiveMembers() {
	jr.runWithRecovery("CleanupInactiveMembers", func() {
		ctx := context.Background()

		retention := jr.config.Scheduler.MemberRetentionMonths
		cutoff := time.Now().UTC().AddDate(0, -retention, 0)

		membersDeleted, err := jr.store.MemberRepository.DeleteInactiveBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to delete inactive members", "cutoff", cutoff, "error", err)
		} else {
			logger.Info("Deleted inactive members", "count", membersDeleted, "cutoff", cutoff)
		}

		regsDeleted, err := jr.store.RegisteredMemberRepository.DeleteProcessedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to delete processed registrations", "cutoff", cutoff, "error", err)
			return
		}
		logger.Info("Deleted processed registrations", "count", regsDeleted, "cutoff", cutoff)
	})
}
