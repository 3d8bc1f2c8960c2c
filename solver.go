package hexword

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"crosswarped.com/hexword/pkg/hex"
)

const tracerName = "crosswarped.com/hexword"

// Solver runs the ring sweep over a Crossword.
//
// Thread Safety: a Solver holds no per-solve state and may be shared. The
// Crossword passed to Solve must not be used concurrently.
type Solver struct {
	workers int
	logger  *slog.Logger
	tracer  trace.Tracer
}

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithWorkers bounds how many cell tasks of one ring run at once.
// Zero or negative means runtime.GOMAXPROCS(0).
func WithWorkers(n int) SolverOption {
	return func(s *Solver) {
		s.workers = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) SolverOption {
	return func(s *Solver) {
		s.logger = logger
	}
}

// WithTracer sets the tracer used for solve and ring spans.
func WithTracer(tracer trace.Tracer) SolverOption {
	return func(s *Solver) {
		s.tracer = tracer
	}
}

// NewSolver creates a Solver.
func NewSolver(opts ...SolverOption) *Solver {
	s := &Solver{
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	return s
}

// Solve validates cw, sweeps the rings from the outer boundary to the
// center and returns the final acceptance result. Lines running through the
// center are finished by sweeping the rings back out, one position per
// ring, until every line is full length.
//
// Any candidates already in cw are discarded first, so solving the same
// crossword twice gives the same result. The only errors are configuration
// errors (matching ErrConfig) and context cancellation; a puzzle without a
// solution yields a Result with empty candidate sets.
func (s *Solver) Solve(ctx context.Context, cw *Crossword) (*Result, error) {
	runID := uuid.NewString()
	logger := s.logger.With(slog.String("run_id", runID))

	ctx, span := s.tracer.Start(ctx, "hexword.Solve", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.Int("radius", cw.Radius()),
		attribute.Int("lines", len(cw.lines)),
	))
	defer span.End()

	if err := cw.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid configuration")
		solveTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("validate crossword: %w", err)
	}

	start := time.Now()
	cw.Reset()
	for position := range cw.span() {
		if _, err := s.Step(ctx, cw, position); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "ring failed")
			solveTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("ring %d: %w", ringAt(cw.Radius(), position), err)
		}
	}

	result := Finalize(cw)
	outcome := result.Outcome()
	solveTotal.WithLabelValues(outcome).Inc()
	span.SetAttributes(attribute.String("outcome", outcome))

	logger.Info("crossword solved",
		slog.Int("radius", cw.Radius()),
		slog.Int("lines", len(cw.lines)),
		slog.String("outcome", outcome),
		slog.Int("rejected", result.RejectedCount()),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

// Step fills one position of every line and commits the updates to cw.
// Positions 0 to radius visit rings radius down to 0; later positions
// visit the rings back out.
//
// The tasks of the ring run concurrently. Each task reads the prefixes the
// lines had before the ring started; nothing is written to cw until every
// task of the ring has finished. A cell visited a second time narrows the
// lines that filled it the first time.
func (s *Solver) Step(ctx context.Context, cw *Crossword, position int) ([]Propagation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ring := ringAt(cw.Radius(), position)
	ctx, span := s.tracer.Start(ctx, "hexword.Ring", trace.WithAttributes(
		attribute.Int("ring", ring),
		attribute.Int("position", position),
	))
	defer span.End()
	start := time.Now()

	var tasks []Task
	for _, cell := range hex.Ring(hex.Origin, ring) {
		task, err := cw.TaskAt(position, cell)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "build task")
			return nil, err
		}
		if len(task.Lines) == 0 {
			continue
		}
		tasks = append(tasks, task)
	}

	results := make([]Propagation, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Propagate(task)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "propagate")
		return nil, err
	}

	empty := 0
	for _, r := range results {
		tasksTotal.Inc()
		if r.Letters.IsEmpty() {
			empty++
			emptyIntersections.Inc()
		}
		for line, set := range r.Candidates {
			candidatesKept.Observe(float64(len(set)))
			cw.UpdateCandidates(line, set)
		}
	}
	for _, r := range results {
		cw.settle(r.Cell, r.Position, r.Letters)
	}

	elapsed := time.Since(start)
	ringDuration.Observe(elapsed.Seconds())
	span.SetAttributes(attribute.Int("tasks", len(tasks)), attribute.Int("empty_cells", empty))

	s.logger.Debug("ring propagated",
		slog.Int("ring", ring),
		slog.Int("position", position),
		slog.Int("tasks", len(tasks)),
		slog.Int("empty_cells", empty),
		slog.Duration("elapsed", elapsed))

	return results, nil
}
