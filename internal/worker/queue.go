package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"img2base/internal/encoder"
	"img2base/internal/logging"
	"img2base/internal/payload"
	"img2base/internal/services"
)

// ErrQueueClosed is returned by Submit once the queue stopped accepting work.
var ErrQueueClosed = errors.New("worker queue closed")

// Ingester produces the byte stream for a payload. *ingest.Dispatcher satisfies it.
type Ingester interface {
	Ingest(ctx context.Context, p payload.Payload) ([]byte, error)
}

// Job describes one accepted drop.
type Job struct {
	ID        string
	Kind      payload.Kind
	Source    string
	Submitted time.Time
}

// Result is the outcome of a job: Markdown on success, Err on failure.
type Result struct {
	Job      Job
	Markdown string
	Bytes    int
	Elapsed  time.Duration
	Err      error
}

// Options configures a Queue.
type Options struct {
	Logger *slog.Logger
	// OnTransition observes every state change of every drop event. Validating,
	// and Rejected/Idle for a refused drop, are reported on the goroutine calling
	// Submit; the rest on the worker goroutine. The callback must be safe for
	// concurrent use.
	OnTransition func(Job, State)
	// Now defaults to time.Now.
	Now func() time.Time
}

// resultBuffer lets the worker run ahead of a busy foreground loop.
const resultBuffer = 16

type pendingJob struct {
	job     Job
	payload payload.Payload
}

// Queue runs ingestion and encoding on a single background goroutine. Jobs
// execute one at a time in submission order and the intake is unbounded.
type Queue struct {
	ingester     Ingester
	logger       *slog.Logger
	onTransition func(Job, State)
	now          func() time.Time

	results chan Result
	wake    chan struct{}
	done    chan struct{}

	mu      sync.Mutex
	pending []pendingJob
	state   State
	started bool
	closed  bool
}

// New constructs a queue. Call Start to launch the worker goroutine.
func New(ingester Ingester, opts Options) *Queue {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Queue{
		ingester:     ingester,
		logger:       logging.NewComponentLogger(opts.Logger, "worker"),
		onTransition: opts.OnTransition,
		now:          now,
		results:      make(chan Result, resultBuffer),
		wake:         make(chan struct{}, 1),
		done:         make(chan struct{}),
		state:        StateIdle,
	}
}

// Start launches the worker goroutine. Cancelling ctx closes the intake; jobs
// already queued still run to completion.
func (q *Queue) Start(ctx context.Context) error {
	q.mu.Lock()
	if q.started {
		q.mu.Unlock()
		return errors.New("worker already started")
	}
	q.started = true
	q.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			q.Close()
		case <-q.done:
		}
	}()
	go q.run(ctx)
	return nil
}

// Results delivers job outcomes in submission order. It is closed after Close
// once every queued job has finished.
func (q *Queue) Results() <-chan Result {
	return q.results
}

// Done is closed when the worker goroutine has exited.
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// State returns the state of the job currently on the worker, or StateIdle.
func (q *Queue) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Pending returns the number of jobs waiting behind the one in flight.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Submit validates a transfer on the caller's goroutine and enqueues the
// resulting payload. Validation failures (services.ErrEmptyInput,
// services.ErrUnsupportedFlavor) are returned directly and never reach the worker.
func (q *Queue) Submit(t payload.Transfer) (Job, error) {
	job := Job{ID: uuid.NewString(), Submitted: q.now()}
	q.notify(job, StateValidating)

	p, err := payload.FromTransfer(t)
	if err != nil {
		q.notify(job, StateRejected)
		q.notify(job, StateIdle)
		q.logger.Info("drop rejected",
			logging.String(logging.FieldJobID, job.ID),
			logging.String(logging.FieldErrorKind, services.Kind(err)),
			logging.Error(err),
		)
		return job, err
	}
	job.Kind = p.Kind()
	job.Source = p.Describe()

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.notify(job, StateRejected)
		q.notify(job, StateIdle)
		return job, ErrQueueClosed
	}
	q.pending = append(q.pending, pendingJob{job: job, payload: p})
	depth := len(q.pending)
	q.mu.Unlock()

	q.signal()
	q.logger.Debug("job queued",
		logging.String(logging.FieldJobID, job.ID),
		logging.String(logging.FieldSourceKind, string(job.Kind)),
		logging.Int("queue_depth", depth),
	)
	return job, nil
}

// Close stops intake. Queued jobs still run; Results is closed afterwards.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()
	q.signal()
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)
	defer close(q.results)

	for {
		next, ok, closed := q.next()
		if !ok {
			if closed {
				return
			}
			<-q.wake
			continue
		}
		q.results <- q.process(context.WithoutCancel(ctx), next)
	}
}

func (q *Queue) next() (pendingJob, bool, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return pendingJob{}, false, q.closed
	}
	next := q.pending[0]
	q.pending[0] = pendingJob{}
	q.pending = q.pending[1:]
	return next, true, false
}

func (q *Queue) process(ctx context.Context, pj pendingJob) Result {
	job := pj.job
	ctx = services.WithJobID(ctx, job.ID)
	ctx = services.WithSourceKind(ctx, string(job.Kind))
	logger := logging.WithContext(ctx, q.logger)
	start := q.now()

	q.setState(job, StateDispatching)
	data, err := q.ingester.Ingest(services.WithStage(ctx, "ingest"), pj.payload)
	if err != nil {
		return q.fail(logger, job, start, err)
	}

	q.setState(job, StateEncoding)
	markdown := encoder.Markdown(data)
	result := Result{
		Job:      job,
		Markdown: markdown,
		Bytes:    len(data),
		Elapsed:  q.now().Sub(start),
	}

	q.setState(job, StateDelivered)
	logger.Info("encoding succeeded",
		logging.String("source", job.Source),
		logging.Int("bytes", result.Bytes),
		logging.Int("encoded_length", len(markdown)),
		logging.Duration("elapsed", result.Elapsed),
	)
	q.setState(job, StateIdle)
	return result
}

func (q *Queue) fail(logger *slog.Logger, job Job, start time.Time, err error) Result {
	q.setState(job, StateFailed)
	logger.Warn("job failed",
		logging.String("source", job.Source),
		logging.String(logging.FieldErrorKind, services.Kind(err)),
		logging.Error(err),
	)
	q.setState(job, StateIdle)
	return Result{Job: job, Elapsed: q.now().Sub(start), Err: err}
}

func (q *Queue) setState(job Job, state State) {
	q.mu.Lock()
	q.state = state
	q.mu.Unlock()
	q.notify(job, state)
}

func (q *Queue) notify(job Job, state State) {
	q.logger.Debug("state changed",
		logging.String(logging.FieldJobID, job.ID),
		logging.String(logging.FieldState, string(state)),
	)
	if q.onTransition != nil {
		q.onTransition(job, state)
	}
}
