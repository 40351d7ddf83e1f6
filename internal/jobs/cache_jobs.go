package jobs

import (
	"context"

	"studiofin-backend/internal/logger"
)

// SweepViewCache drops stale and expired view cache entries.
func (jr *JobRunner) SweepViewCache() {
	jr.runWithRecovery("SweepViewCache", func(ctx context.Context) {
		removed := jr.cache.Sweep()
		logger.Info("View cache sweep finished", "removed", removed)
	})
}
