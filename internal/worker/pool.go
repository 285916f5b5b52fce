package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueDocuments = "jobs:documents"
	QueueEmail     = "jobs:email"

	JobOrderDocument = "order_document"
	JobEmail         = "email"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts,omitempty"`
}

// Handler processes one job payload. A returned error sends the job to the
// dead letter queue.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueOrderDocument queues PDF generation and vendor mail for an approved order.
func (d *Dispatcher) EnqueueOrderDocument(ctx context.Context, orderID string) error {
	return d.enqueue(ctx, QueueDocuments, JobOrderDocument, OrderDocumentPayload{OrderID: orderID})
}

// EnqueueEmail pushes an email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, JobEmail, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return pushJob(ctx, d.rdb, queue, Job{Type: jobType, Payload: data})
}

func pushJob(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// Pool consumes the job queues and routes each job to the handler registered
// for its type.
type Pool struct {
	rdb      *redis.Client
	handlers map[string]Handler
	queues   []string

	// deadLetter is replaced in tests.
	deadLetter func(ctx context.Context, queue string, job Job, reason string)
}

func NewPool(rdb *redis.Client, handlers map[string]Handler) *Pool {
	p := &Pool{rdb: rdb, handlers: handlers, queues: []string{QueueDocuments, QueueEmail}}
	p.deadLetter = func(ctx context.Context, queue string, job Job, reason string) {
		SendToDLQ(ctx, rdb, queue, job, reason)
	}
	return p
}

// Start launches numWorkers goroutines consuming all queues.
// Each goroutine blocks on BRPOP, idle without CPU.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, p.queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			p.processJob(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) processJob(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	job.Attempts++

	h, ok := p.handlers[job.Type]
	if !ok {
		metrics.JobsProcessed.WithLabelValues(job.Type, "unknown").Inc()
		p.deadLetter(ctx, queue, job, fmt.Sprintf("no handler for job type %q", job.Type))
		return
	}

	log.Info().Str("type", job.Type).Str("queue", queue).Int("attempt", job.Attempts).Msg("processing job")
	if err := h.Process(ctx, job.Payload); err != nil {
		metrics.JobsProcessed.WithLabelValues(job.Type, "failed").Inc()
		p.deadLetter(ctx, queue, job, err.Error())
		return
	}
	metrics.JobsProcessed.WithLabelValues(job.Type, "ok").Inc()
}

// withRetry calls fn up to maxAttempts times with exponential backoff
// (immediate, base, 2×base, …). Returns nil if any attempt succeeds; last error
// otherwise.
func withRetry(ctx context.Context, maxAttempts int, base time.Duration, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * base
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
