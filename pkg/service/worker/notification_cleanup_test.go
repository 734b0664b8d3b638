package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/worklane/worklane/pkg/service/worker"
)

type countingPurger struct {
	calls      atomic.Int64
	daysToKeep atomic.Int64
}

func (p *countingPurger) CleanupOldNotifications(ctx context.Context, daysToKeep int) (int64, error) {
	p.calls.Add(1)
	p.daysToKeep.Store(int64(daysToKeep))
	return 2, nil
}

func TestNotificationCleanupWorker(t *testing.T) {
	t.Run("runs an initial sweep before the first tick", func(t *testing.T) {
		purger := &countingPurger{}
		w := worker.NewNotificationCleanupWorker(purger, time.Hour, 30)

		gt.NoError(t, w.Start(context.Background()))
		defer w.Stop()

		deadline := time.Now().Add(3 * time.Second)
		for purger.calls.Load() == 0 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}
		gt.Number(t, purger.calls.Load()).Equal(1)
		gt.Number(t, purger.daysToKeep.Load()).Equal(30)
	})

	t.Run("purges on every tick", func(t *testing.T) {
		purger := &countingPurger{}
		w := worker.NewNotificationCleanupWorker(purger, 20*time.Millisecond, 30)

		gt.NoError(t, w.Start(context.Background()))

		deadline := time.Now().Add(3 * time.Second)
		for purger.calls.Load() < 3 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}
		w.Stop()

		gt.Number(t, purger.calls.Load()).GreaterOrEqual(3)
	})

	t.Run("stop waits for the loop to finish", func(t *testing.T) {
		purger := &countingPurger{}
		w := worker.NewNotificationCleanupWorker(purger, time.Hour, 30)

		gt.NoError(t, w.Start(context.Background()))
		w.Stop()

		after := purger.calls.Load()
		time.Sleep(30 * time.Millisecond)
		gt.Number(t, purger.calls.Load()).Equal(after)
	})
}
