package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Job is one best-effort send. Run errors are logged, never surfaced.
type Job struct {
	Description string
	Run         func(ctx context.Context) error
}

// Outbox decouples notification sends from the booking critical path: a
// booking must never wait on, or fail because of, the messaging provider.
type Outbox struct {
	queue  chan Job
	logger *zap.Logger
}

func NewOutbox(logger *zap.Logger) *Outbox {
	o := &Outbox{
		queue:  make(chan Job, 100),
		logger: logger,
	}

	go o.worker()
	return o
}

func (o *Outbox) worker() {
	for job := range o.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := job.Run(ctx); err != nil {
			o.logger.Warn("best-effort notification failed",
				zap.String("job", job.Description),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Dispatch never blocks; when the queue is full the job is dropped with a
// log line rather than stalling the API.
func (o *Outbox) Dispatch(job Job) {
	select {
	case o.queue <- job:
	default:
		o.logger.Warn("notification queue full, dropping job",
			zap.String("job", job.Description),
		)
	}
}
