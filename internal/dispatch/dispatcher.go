package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hyzhou/larkrelay/internal/event"
	"github.com/hyzhou/larkrelay/internal/log"
	"github.com/hyzhou/larkrelay/internal/message"
)

const (
	// DefaultWorkers is the size of the delivery worker pool.
	DefaultWorkers = 4

	// DefaultQueueSize bounds the number of jobs awaiting a worker.
	// Submissions beyond it are dropped, consistent with best-effort
	// delivery.
	DefaultQueueSize = 64
)

// Notifier delivers a rendered message downstream.
type Notifier interface {
	Send(ctx context.Context, msg message.Message) error
}

type job struct {
	id  string
	src *event.Job
}

// Dispatcher executes notification jobs on a worker pool, detached from
// the HTTP request path.
type Dispatcher struct {
	notifier Notifier
	workers  int
	jobs     chan job
	logger   *slog.Logger
	wg       sync.WaitGroup
	started  sync.Once
	stopped  sync.Once
}

// New creates a Dispatcher. workers and queueSize fall back to defaults
// when non-positive.
func New(n Notifier, workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		notifier: n,
		workers:  workers,
		jobs:     make(chan job, queueSize),
		logger:   log.WithComponent("dispatch"),
	}
}

// Start launches the worker pool. It returns immediately; workers run
// until Stop is called.
func (d *Dispatcher) Start() {
	d.started.Do(func() {
		for i := 0; i < d.workers; i++ {
			d.wg.Add(1)
			go d.worker()
		}
		d.logger.Info("dispatcher started", "workers", d.workers)
	})
}

// Submit hands a job to the pool without blocking. It returns the
// dispatch id and whether the job was queued. When the queue is full
// the job is dropped, matching the at-most-one-attempt delivery
// contract; the id then identifies only the drop log entry.
func (d *Dispatcher) Submit(src *event.Job) (string, bool) {
	id := uuid.NewString()
	select {
	case d.jobs <- job{id: id, src: src}:
		d.logger.Info("notification queued",
			"dispatch_id", id,
			"event", src.Event,
			"action", src.Action,
			"delivery_id", src.DeliveryID,
		)
		return id, true
	default:
		d.logger.Error("notification dropped, queue full",
			"dispatch_id", id,
			"delivery_id", src.DeliveryID,
		)
		return id, false
	}
}

// Stop closes the queue and waits up to timeout for in-flight jobs to
// drain.
func (d *Dispatcher) Stop(timeout time.Duration) {
	d.stopped.Do(func() {
		close(d.jobs)

		done := make(chan struct{})
		go func() {
			d.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			d.logger.Info("dispatcher drained")
		case <-time.After(timeout):
			d.logger.Warn("dispatcher stop timed out", "timeout", timeout)
		}
	})
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		d.execute(j)
	}
}

// execute renders and delivers one job. Failures are logged and
// swallowed; the inbound caller received its 202 long ago. The send
// context is deliberately independent of any request context: a slow
// downstream call is never cancelled by the already-returned response.
func (d *Dispatcher) execute(j job) {
	jobLogger := log.WithDispatch(j.id).With(
		"event", j.src.Event,
		"action", j.src.Action,
		"delivery_id", j.src.DeliveryID,
		"repo", j.src.Repo,
	)

	msg, err := j.src.Render()
	if err != nil {
		jobLogger.Error("render failed", "error", err)
		return
	}

	if err := d.notifier.Send(context.Background(), msg); err != nil {
		jobLogger.Error("delivery failed", "error", err)
		return
	}

	jobLogger.Info("notification delivered")
}
