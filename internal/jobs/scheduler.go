package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwrk-planet/bizos/internal/metrics"

	"github.com/robfig/cron/v3"
)

// Task возвращает число затронутых строк.
type Task func(ctx context.Context) (int64, error)

// Scheduler запускает периодические чистки: устаревшие индикаторы набора,
// просроченные приглашения.
type Scheduler struct {
	cron    *cron.Cron
	log     *slog.Logger
	timeout time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewScheduler(log *slog.Logger, timeout time.Duration) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cl := cronLogger{log: log}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		log:     log,
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Add регистрирует задачу; spec в синтаксисе cron или "@every 30s".
func (s *Scheduler) Add(name, spec string, task Task) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, task) }); err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	return nil
}

func (s *Scheduler) run(name string, task Task) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	n, err := task(ctx)
	if err != nil {
		s.log.Warn("job failed", "job", name, "err", err, "duration", time.Since(start))
		return
	}
	metrics.SweptRows.WithLabelValues(name).Add(float64(n))
	if n > 0 {
		s.log.Debug("job done", "job", name, "rows", n, "duration", time.Since(start))
	}
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop ждёт завершения текущих задач, но не дольше ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.cancel()
		<-done.Done()
	}
	s.cancel()
}

type cronLogger struct{ log *slog.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}
