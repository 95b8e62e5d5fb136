package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// TokenCleanupJobName is the name of the expired access-token purge job
const TokenCleanupJobName = "token_cleanup"

// defaultCleanupTimeout bounds a single purge run
const defaultCleanupTimeout = 30 * time.Second

// TokenPurger removes access tokens that expired or were revoked. The
// interface keeps the job decoupled from the service package.
type TokenPurger interface {
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

// TokenCleanupJob deletes expired and revoked access tokens so the
// tokens table does not grow without bound.
type TokenCleanupJob struct {
	purger TokenPurger
	logger *zap.Logger
}

// NewTokenCleanupJob creates a new token cleanup job.
func NewTokenCleanupJob(purger TokenPurger, logger *zap.Logger) *TokenCleanupJob {
	return &TokenCleanupJob{
		purger: purger,
		logger: logger,
	}
}

// Run executes one purge pass.
func (j *TokenCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultCleanupTimeout)
	defer cancel()

	removed, err := j.purger.PurgeExpiredTokens(ctx)
	if err != nil {
		j.logger.Error("token cleanup failed", zap.Error(err))
		return
	}

	j.logger.Info("token cleanup finished",
		zap.Int64("tokens_removed", removed))
}
