package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"attr-mapper/internal/extract"
	"attr-mapper/internal/record"
)

const defaultBatchSize = 256

// Source yields records until it returns io.EOF.
type Source interface {
	Next() (*record.Record, error)
}

// Quarantiner stores records that could not be extracted.
type Quarantiner interface {
	Put(ctx context.Context, rec *record.Record, reason string) (uint64, error)
}

// Stats summarizes a Run.
type Stats struct {
	Read         int // records decoded from the source
	Emitted      int // records handed to the sink
	Skipped      int // records and undecodable lines dropped
	Quarantined  int // records stored in quarantine
	DecodeErrors int // undecodable lines
}

// Pipeline extracts attributes from records concurrently and emits them in order.
type Pipeline struct {
	extractor  *extract.Extractor
	sink       Sink
	pool       *ants.Pool
	batchSize  int
	policy     Policy
	quarantine Quarantiner
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		if p.pool != nil {
			p.pool.Release()
		}

		p.pool = pool

		return nil
	}
}

// WithBatchSize sets how many records are extracted concurrently before
// results are emitted.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return ErrInvalidBatchSize
		}

		p.batchSize = size

		return nil
	}
}

// WithPolicy sets the policy for records that cannot be extracted.
// Default is PolicySkip.
func WithPolicy(policy Policy) Option {
	return func(p *Pipeline) error {
		switch policy {
		case PolicySkip, PolicyQuarantine, PolicyFail:
			p.policy = policy
			return nil
		default:
			return fmt.Errorf("%w: %s", ErrUnknownPolicy, policy)
		}
	}
}

// WithQuarantine sets the store used by PolicyQuarantine.
func WithQuarantine(q Quarantiner) Option {
	return func(p *Pipeline) error {
		p.quarantine = q
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}

		p.logger = logger

		return nil
	}
}

// New creates a pipeline that runs ex and emits to sink.
// Call Release when done to free the worker pool.
func New(ex *extract.Extractor, sink Sink, opts ...Option) (*Pipeline, error) {
	if ex == nil {
		return nil, ErrExtractorRequired
	}

	if sink == nil {
		return nil, ErrSinkRequired
	}

	p := &Pipeline{
		extractor: ex,
		sink:      sink,
		batchSize: defaultBatchSize,
		policy:    PolicySkip,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	if p.policy == PolicyQuarantine && p.quarantine == nil {
		p.Release()
		return nil, ErrQuarantineRequired
	}

	if p.pool == nil {
		pool, err := ants.NewPool(max(runtime.NumCPU(), 1))
		if err != nil {
			return nil, err
		}

		p.pool = pool
	}

	return p, nil
}

// Release frees the worker pool.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
		p.pool = nil
	}
}

// Run reads src to the end, extracting and emitting every record.
// It stops at the first sink error, at the first rejected record under
// PolicyFail, or when ctx is canceled between batches.
func (p *Pipeline) Run(ctx context.Context, src Source) (Stats, error) {
	var stats Stats

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		batch, done, readErr := p.readBatch(src, &stats)

		// Records read before a failing line still precede it in the output.
		if len(batch) > 0 {
			if err := p.processBatch(ctx, batch, &stats); err != nil {
				return stats, err
			}
		}

		if readErr != nil {
			return stats, readErr
		}

		if done {
			p.logger.Debug("pipeline finished",
				"read", stats.Read,
				"emitted", stats.Emitted,
				"skipped", stats.Skipped,
				"quarantined", stats.Quarantined)

			return stats, nil
		}
	}
}

// readBatch collects up to batchSize records. The bool reports that src is
// exhausted. On error the records read so far are returned along with it.
func (p *Pipeline) readBatch(src Source, stats *Stats) ([]*record.Record, bool, error) {
	batch := make([]*record.Record, 0, p.batchSize)

	for len(batch) < p.batchSize {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return batch, true, nil
		}

		var decErr *record.DecodeError
		if errors.As(err, &decErr) {
			stats.DecodeErrors++

			if p.policy == PolicyFail {
				return batch, false, err
			}

			p.logger.Warn("skipping undecodable record", "line", decErr.Line, "offset", decErr.Offset, "error", decErr.Err)
			stats.Skipped++

			continue
		}

		if err != nil {
			return batch, false, err
		}

		stats.Read++
		batch = append(batch, rec)
	}

	return batch, false, nil
}

type result struct {
	attrs map[string]any
	err   error
}

// processBatch extracts the batch on the pool and emits results in input order.
func (p *Pipeline) processBatch(ctx context.Context, batch []*record.Record, stats *Stats) error {
	results := make([]result, len(batch))

	var wg sync.WaitGroup

	for i, rec := range batch {
		wg.Add(1)

		err := p.pool.Submit(func() {
			defer wg.Done()
			results[i].attrs, results[i].err = p.extractor.Extract(rec)
		})
		if err != nil {
			wg.Done()
			wg.Wait()

			return fmt.Errorf("failed to submit extraction: %w", err)
		}
	}

	wg.Wait()

	for i, rec := range batch {
		res := results[i]

		if res.err != nil {
			if err := p.reject(ctx, rec, res.err, stats); err != nil {
				return err
			}

			continue
		}

		if err := p.sink.Emit(ctx, rec, res.attrs); err != nil {
			return err
		}

		stats.Emitted++
	}

	return nil
}

func (p *Pipeline) reject(ctx context.Context, rec *record.Record, cause error, stats *Stats) error {
	switch p.policy {
	case PolicyFail:
		return fmt.Errorf("record %s: %w", rec.Origin(), cause)

	case PolicyQuarantine:
		id, err := p.quarantine.Put(ctx, rec, cause.Error())
		if err != nil {
			return fmt.Errorf("failed to quarantine record %s: %w", rec.Origin(), err)
		}

		p.logger.Info("record quarantined", "origin", rec.Origin(), "id", id, "error", cause)
		stats.Quarantined++

	default:
		p.logger.Warn("skipping record", "origin", rec.Origin(), "error", cause)
		stats.Skipped++
	}

	return nil
}
