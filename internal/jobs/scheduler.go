package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"plantdefender/internal/queue"
)

// CleanupSpec fires daily at midnight (seconds-resolution cron).
const CleanupSpec = "0 0 0 * * *"

// Enqueuer puts a task on the worker stream.
type Enqueuer interface {
	Publish(ctx context.Context, task queue.Task) (string, error)
}

type Scheduler struct {
	cron  *cron.Cron
	queue Enqueuer
	log   zerolog.Logger
}

func NewScheduler(q Enqueuer, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithSeconds()),
		queue: q,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if s.queue == nil {
		s.log.Info().Msg("scheduler disabled: no queue")
		return nil
	}

	if _, err := s.cron.AddFunc(CleanupSpec, s.enqueueCleanup); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits up to five seconds for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) enqueueCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := s.queue.Publish(ctx, queue.Task{Type: queue.TaskCleanup})
	if err != nil {
		s.log.Error().Err(err).Msg("enqueue cleanup failed")
		return
	}
	s.log.Debug().Str("message_id", id).Msg("cleanup enqueued")
}
