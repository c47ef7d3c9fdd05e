// Package requeue returns review tasks whose visibility timeout expired to
// the pending queue, so a reviewer who walked away never strands a task.
package requeue

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const defaultInterval = time.Minute

type expiredRequeuer interface {
	RequeueExpired(ctx context.Context) (int, error)
}

type Job struct {
	queue    expiredRequeuer
	interval time.Duration
	logger   *zap.Logger
}

func New(queue expiredRequeuer, interval time.Duration, logger *zap.Logger) *Job {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Job{
		queue:    queue,
		interval: interval,
		logger:   logger,
	}
}

// Sweep runs a single pass. Exposed separately from Run so callers can force
// a pass outside the ticker schedule.
func (j *Job) Sweep(ctx context.Context) (int, error) {
	if j.queue == nil {
		return 0, fmt.Errorf("requeue job queue is not configured")
	}

	moved, err := j.queue.RequeueExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("requeue expired review tasks: %w", err)
	}
	if moved > 0 {
		j.logger.Info("expired review tasks returned to queue", zap.Int("count", moved))
	}
	return moved, nil
}

// Run sweeps on a fixed interval until the context is cancelled. Sweep errors
// are logged and the loop keeps going.
func (j *Job) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := j.Sweep(ctx); err != nil {
				j.logger.Error("requeue sweep failed", zap.Error(err))
			}
		}
	}
}
