package worker

// retry_cron.go
// Background goroutine that periodically moves dead-lettered jobs back onto
// their queue. Email jobs wait while the mail circuit breaker is open, and a
// job that has failed MaxAttempts times stays in the DLQ for manual handling.

import (
	"context"
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 5 * time.Minute
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	RDB         *redis.Client
	MailCB      *infra.CircuitBreaker
	MaxAttempts int
}

// StartRetryCron launches a background goroutine that ticks every 5 minutes
// and requeues DLQ entries. It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				requeueDeadLetters(ctx, cfg)
			}
		}
	}()
}

// requeueDeadLetters moves up to retryBatchSize entries per queue back onto the
// source queue. Returns how many were requeued.
func requeueDeadLetters(ctx context.Context, cfg RetryCronConfig) int {
	requeued := 0
	for _, queue := range []string{QueueDocuments, QueueEmail} {
		if queue == QueueEmail && cfg.MailCB != nil && cfg.MailCB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: mail circuit breaker is open, skipping email DLQ")
			continue
		}

		n, err := DLQLength(ctx, cfg.RDB, queue)
		if err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("retry_cron: failed to read DLQ length")
			continue
		}
		for i := int64(0); i < min(n, retryBatchSize); i++ {
			entry, err := PopDLQ(ctx, cfg.RDB, queue)
			if err != nil {
				log.Error().Err(err).Str("queue", queue).Msg("retry_cron: failed to pop DLQ entry")
				break
			}
			if entry == nil {
				break
			}
			if entry.Job.Attempts >= cfg.MaxAttempts {
				// Park it at the head so the next tick does not pick it up again first.
				SendToDLQ(ctx, cfg.RDB, queue, entry.Job, entry.Reason)
				continue
			}
			if err := pushJob(ctx, cfg.RDB, entry.OriginalQueue, entry.Job); err != nil {
				log.Error().Err(err).Str("queue", queue).Msg("retry_cron: failed to requeue job")
				SendToDLQ(ctx, cfg.RDB, queue, entry.Job, entry.Reason)
				continue
			}
			requeued++
		}
	}
	if requeued > 0 {
		log.Info().Int("count", requeued).Msg("retry_cron: requeued dead-lettered jobs")
	}
	return requeued
}
