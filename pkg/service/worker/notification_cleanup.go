package worker

import (
	"context"
	"time"

	"github.com/worklane/worklane/pkg/utils/logging"
)

// NotificationPurger purges notifications older than the retention window
type NotificationPurger interface {
	CleanupOldNotifications(ctx context.Context, daysToKeep int) (int64, error)
}

// NotificationCleanupWorker periodically purges old notifications.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type NotificationCleanupWorker struct {
	purger     NotificationPurger
	interval   time.Duration
	daysToKeep int
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// NewNotificationCleanupWorker creates a worker that purges notifications
// older than daysToKeep days on every interval tick
func NewNotificationCleanupWorker(purger NotificationPurger, interval time.Duration, daysToKeep int) *NotificationCleanupWorker {
	return &NotificationCleanupWorker{
		purger:     purger,
		interval:   interval,
		daysToKeep: daysToKeep,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background cleanup loop. Does not block server startup.
func (w *NotificationCleanupWorker) Start(ctx context.Context) error {
	logging.Default().Info("notification cleanup worker starting",
		"interval", w.interval.String(),
		"daysToKeep", w.daysToKeep)

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *NotificationCleanupWorker) Stop() {
	logging.Default().Info("notification cleanup worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("notification cleanup worker stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *NotificationCleanupWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	// Initial sweep so a long interval does not delay the first purge
	if err := w.cleanup(ctx); err != nil {
		logging.Default().Error("notification cleanup failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.cleanup(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("notification cleanup failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("notification cleanup worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("notification cleanup worker context cancelled")
			return
		}
	}
}

// cleanup performs a single purge cycle
func (w *NotificationCleanupWorker) cleanup(ctx context.Context) error {
	startTime := time.Now()

	deleted, err := w.purger.CleanupOldNotifications(ctx, w.daysToKeep)
	if err != nil {
		return err
	}

	logging.Default().Info("notification cleanup completed",
		"deleted", deleted,
		"duration", time.Since(startTime).String())

	return nil
}
