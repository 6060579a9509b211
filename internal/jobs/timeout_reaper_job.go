package jobs

import (
	"context"
	"log/slog"
	"time"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultReaperBatch = 100
	reaperParallelism  = 8
)

// TimeoutCanceller is satisfied by commands.TimeoutCancelCommandHandler.
type TimeoutCanceller interface {
	Handle(ctx context.Context, cmd commands.TimeoutCancelCommand) (bool, error)
}

// TimeoutReaperJob drains due payment timeouts every second. A task is
// acknowledged once the cancel attempt has settled, whether or not it changed
// the order; a failed attempt stays leased and is delivered again.
type TimeoutReaperJob struct {
	queue     ports.TimeoutQueue
	canceller TimeoutCanceller
	batch     int
	cron      *cron.Cron
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewTimeoutReaperJob(
	queue ports.TimeoutQueue,
	canceller TimeoutCanceller,
	batch int,
	logger *slog.Logger,
	m *metrics.Metrics,
) *TimeoutReaperJob {
	if batch <= 0 {
		batch = DefaultReaperBatch
	}
	return &TimeoutReaperJob{
		queue:     queue,
		canceller: canceller,
		batch:     batch,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "timeout_reaper_job"),
		metrics:   m,
		now:       time.Now,
	}
}

func (j *TimeoutReaperJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		if err := j.RunOnce(context.Background()); err != nil {
			j.logger.Error("Timeout reaper run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Timeout reaper job started (running every second)")
	return nil
}

// Stop waits for a running pass to finish.
func (j *TimeoutReaperJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Timeout reaper job stopped")
}

// RunOnce claims one batch of due tasks and processes them, different orders in parallel.
// Only a failing claim is returned; per task failures are logged and retried later.
func (j *TimeoutReaperJob) RunOnce(ctx context.Context) error {
	tasks, err := j.queue.Claim(ctx, j.now(), j.batch)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(reaperParallelism)
	for _, task := range tasks {
		g.Go(func() error {
			j.process(ctx, task)
			return nil
		})
	}
	return g.Wait()
}

func (j *TimeoutReaperJob) process(ctx context.Context, task ports.TimeoutTask) {
	j.metrics.TimeoutsFired.Inc()
	log := j.logger.With("order_id", task.OrderID)

	cmd, err := commands.NewTimeoutCancelCommand(task.OrderID)
	if err != nil {
		log.Error("Dropping malformed timeout task", "error", err)
		j.ack(ctx, log, task.OrderID)
		return
	}

	cancelled, err := j.canceller.Handle(ctx, cmd)
	if err != nil {
		j.metrics.TimeoutsRetried.Inc()
		log.Warn("Timeout cancel failed, will retry", "error", err)
		return
	}
	if cancelled {
		j.metrics.TimeoutsCancelled.Inc()
		log.Info("Order cancelled after payment timeout", "fire_at", task.FireAt)
	}
	j.ack(ctx, log, task.OrderID)
}

func (j *TimeoutReaperJob) ack(ctx context.Context, log *slog.Logger, orderID int64) {
	if err := j.queue.Ack(ctx, orderID); err != nil {
		log.Warn("Ack failed, task will be redelivered", "error", err)
	}
}
