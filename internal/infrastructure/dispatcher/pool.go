package dispatcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/translate-mock/pkg/observability/worker"
)

var (
	// ErrQueueFull is returned when no queue slot is free.
	ErrQueueFull = errors.New("job queue is full")
	// ErrStopped is returned after Stop has been called.
	ErrStopped = errors.New("job pool is stopped")
)

type job struct {
	jobType string
	id      string
	run     func(context.Context) error
}

// Config contains job pool configuration.
type Config struct {
	WorkerCount     int
	QueueSize       int
	ShutdownTimeout time.Duration
}

// Pool runs one-shot background jobs on a fixed set of workers.
type Pool struct {
	jobs         chan job
	workerCount  int
	timeout      time.Duration
	instrumenter *worker.WorkerInstrumenter
	log          zerolog.Logger

	mu      sync.RWMutex
	stopped bool

	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewPool creates a job pool. instrumenter may be nil.
func NewPool(cfg Config, instrumenter *worker.WorkerInstrumenter, log zerolog.Logger) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	return &Pool{
		jobs:         make(chan job, cfg.QueueSize),
		workerCount:  cfg.WorkerCount,
		timeout:      cfg.ShutdownTimeout,
		instrumenter: instrumenter,
		log:          log.With().Str("component", "job-pool").Logger(),
	}
}

// Start launches the workers. Jobs run detached from ctx cancellation so a
// started job always completes.
func (p *Pool) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		base := context.WithoutCancel(ctx)
		for i := 0; i < p.workerCount; i++ {
			p.wg.Add(1)
			go p.work(base, i+1)
		}
		p.log.Info().Int("worker_count", p.workerCount).Int("queue_size", cap(p.jobs)).Msg("job pool started")
	})
}

// Submit enqueues a job without blocking.
func (p *Pool) Submit(jobType, id string, run func(context.Context) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	select {
	case p.jobs <- job{jobType: jobType, id: id, run: run}:
		return nil
	default:
		return ErrQueueFull
	}
}

// QueueDepth returns the number of jobs waiting for a worker.
func (p *Pool) QueueDepth() int {
	return len(p.jobs)
}

// Stop refuses new jobs, lets workers drain the queue and waits for them.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.stopped = true
		close(p.jobs)
		p.mu.Unlock()

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			p.log.Info().Msg("job pool stopped")
		case <-time.After(p.timeout):
			p.log.Warn().Msg("job pool shutdown timed out")
		}
	})
}

func (p *Pool) work(ctx context.Context, workerID int) {
	defer p.wg.Done()
	log := p.log.With().Int("worker_id", workerID).Logger()

	if p.instrumenter != nil {
		p.instrumenter.WorkerStarted(ctx)
		defer p.instrumenter.WorkerStopped(ctx)
	}

	for j := range p.jobs {
		p.execute(ctx, log, j)
	}
}

func (p *Pool) execute(ctx context.Context, log zerolog.Logger, j job) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("job_type", j.jobType).Str("job_id", j.id).Msg("job panicked")
		}
	}()

	var err error
	if p.instrumenter != nil {
		err = p.instrumenter.InstrumentJob(ctx, j.jobType, j.id, j.run)
	} else {
		err = j.run(ctx)
	}
	if err != nil {
		log.Warn().Err(err).Str("job_type", j.jobType).Str("job_id", j.id).Msg("job failed")
		return
	}
	log.Debug().Str("job_type", j.jobType).Str("job_id", j.id).Msg("job completed")
}
