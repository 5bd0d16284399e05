package jobs

import (
	"biblioteca-gateway/internal/cache"
	"biblioteca-gateway/internal/config"
	"biblioteca-gateway/internal/logger"
	"biblioteca-gateway/internal/session"
)

// JobRunner coordinates the scheduled maintenance jobs
type JobRunner struct {
	refCache *cache.ReferenceCache
	sessions *session.Store
	config   *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(refCache *cache.ReferenceCache, sessions *session.Store, cfg *config.Config) *JobRunner {
	return &JobRunner{
		refCache: refCache,
		sessions: sessions,
		config:   cfg,
	}
}

// Config exposes the configuration for the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
