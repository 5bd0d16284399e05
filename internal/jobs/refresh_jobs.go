package jobs

import (
	"context"
	"time"

	"biblioteca-gateway/internal/logger"
)

// RefreshReferenceData re-fetches the book/user/category snapshot from the
// upstream server. This is the polling fallback behind the event-driven
// invalidation; it runs on a long interval and a failure keeps the previous
// snapshot, so it is always safe.
func (jr *JobRunner) RefreshReferenceData() {
	jr.runWithRecovery("RefreshReferenceData", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := jr.refCache.Refresh(ctx); err != nil {
			logger.Error("Failed to refresh reference data", "error", err)
			return
		}
		logger.Debug("Reference data refreshed")
	})
}

// ExpireStaleSessions drops loan edit sessions idle past the configured TTL.
func (jr *JobRunner) ExpireStaleSessions() {
	jr.runWithRecovery("ExpireStaleSessions", func() {
		expired := jr.sessions.ExpireStale(time.Now())
		if expired > 0 {
			logger.Info("Expired stale loan edit sessions", "count", expired)
		}
	})
}
