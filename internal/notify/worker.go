// worker.go
//
// SecurePulse wearable health monitoring service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of securepulse.
// securepulse is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// securepulse is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with securepulse.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/localnerve/securepulse/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler processes one job. Errors are logged by the worker and never retried.
type Handler interface {
	Dispatch(ctx context.Context, job Job) error
}

// Worker drains a Queue with a fixed number of goroutines.
type Worker struct {
	Queue       Queue
	Handler     Handler
	Concurrency int
	Logger      *zap.Logger

	// RetryDelay is the pause after a failed Dequeue, such as a Redis outage.
	RetryDelay time.Duration
}

// Run blocks until ctx is cancelled or the queue is closed.
func (w *Worker) Run(ctx context.Context) error {
	n := w.Concurrency
	if n < 1 {
		n = 1
	}

	w.Logger.Info("Notification worker started", zap.Int("concurrency", n))

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		id := i
		g.Go(func() error {
			return w.loop(gctx, id)
		})
	}

	err := g.Wait()
	w.Logger.Info("Notification worker stopped")
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrQueueClosed) {
		return nil
	}
	return err
}

func (w *Worker) loop(ctx context.Context, id int) error {
	log := w.Logger.With(zap.Int("worker", id))

	for {
		job, err := w.Queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, ErrQueueClosed) {
				return err
			}
			if errors.Is(err, ErrMalformedJob) {
				log.Warn("Discarding malformed notification job", zap.Error(err))
				metrics.JobsProcessed.WithLabelValues("unknown", "malformed").Inc()
				continue
			}

			log.Warn("Failed to dequeue notification job", zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.retryDelay()):
			}
			continue
		}

		w.process(ctx, log, job)
	}
}

func (w *Worker) process(ctx context.Context, log *zap.Logger, job Job) {
	fields := []zap.Field{
		zap.String("job_id", job.ID),
		zap.String("kind", string(job.Kind)),
		zap.String("user_id", job.UserID),
	}
	if job.AlertID != "" {
		fields = append(fields, zap.String("alert_id", job.AlertID))
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("Notification job panicked", append(fields, zap.Error(fmt.Errorf("%v", r)))...)
			metrics.JobsProcessed.WithLabelValues(string(job.Kind), "panic").Inc()
		}
	}()

	if err := w.Handler.Dispatch(ctx, job); err != nil {
		log.Error("Notification job failed", append(fields, zap.Error(err))...)
		metrics.JobsProcessed.WithLabelValues(string(job.Kind), "failed").Inc()
		return
	}

	log.Debug("Notification job done", append(fields, zap.Duration("latency", time.Since(job.EnqueuedAt)))...)
	metrics.JobsProcessed.WithLabelValues(string(job.Kind), "done").Inc()
}

func (w *Worker) retryDelay() time.Duration {
	if w.RetryDelay > 0 {
		return w.RetryDelay
	}
	return time.Second
}
