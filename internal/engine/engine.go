package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/PolyPack/internal/model"
)

// Reasons attached to query results.
const (
	ReasonAreaExceedsGrid = "required area exceeds grid"
	ReasonAreaMismatch    = "required area differs from grid area"
	ReasonExhausted       = "search exhausted"
	ReasonPlaced          = "all pieces placed"
)

// Engine decides packing queries.
type Engine struct {
	Settings model.SolverSettings

	logger zerolog.Logger
	tracer trace.Tracer
}

func New(settings model.SolverSettings) *Engine {
	return &Engine{
		Settings: settings,
		logger:   log.With().Str("module", "engine").Logger(),
		tracer:   otel.Tracer("github.com/piwi3910/PolyPack/internal/engine"),
	}
}

// Solve decides one query against a prepared shape table. It never returns
// an error: infeasibility and an exhausted budget are verdicts.
func (e *Engine) Solve(ctx context.Context, table *ShapeTable, q model.Query) model.QueryResult {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "engine.Solve", trace.WithAttributes(
		attribute.String("query.id", q.ID),
		attribute.Int("query.width", q.Width),
		attribute.Int("query.height", q.Height),
	))
	defer span.End()

	if e.Settings.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Settings.QueryTimeout)
		defer cancel()
	}

	res := e.decide(ctx, table, q)
	res.Duration = time.Since(start)

	span.SetAttributes(
		attribute.String("query.verdict", res.Verdict.String()),
		attribute.Int64("query.steps", res.Steps),
	)
	if res.Verdict == model.VerdictUnknown {
		span.SetStatus(codes.Error, res.Reason)
	}
	e.logger.Debug().
		Str("query", q.ID).
		Str("label", q.Label).
		Int("width", q.Width).
		Int("height", q.Height).
		Str("verdict", res.Verdict.String()).
		Int64("steps", res.Steps).
		Dur("duration", res.Duration).
		Msg("query solved")
	return res
}

func (e *Engine) decide(ctx context.Context, table *ShapeTable, q model.Query) model.QueryResult {
	res := model.QueryResult{Query: q, Verdict: model.VerdictInfeasible}
	if err := ctx.Err(); err != nil {
		res.Verdict = model.VerdictUnknown
		res.Reason = err.Error()
		return res
	}

	task := BuildTask(table.Shapes, q)
	grid := q.GridArea()
	if task.Area > grid {
		res.Reason = ReasonAreaExceedsGrid
		return res
	}
	if e.Settings.Mode == model.ModeExact && task.Area != grid {
		res.Reason = ReasonAreaMismatch
		return res
	}

	used := task.distinct()
	placements := table.Compile(q.Width, q.Height, used)
	for _, i := range used {
		if !fits(placements[i]) {
			res.Reason = fmt.Sprintf("%s does not fit a %dx%d grid", table.Shapes[i].Label, q.Width, q.Height)
			return res
		}
	}

	s := newSolver(ctx, q.Width, q.Height, task, placements)
	s.symmetry = e.Settings.SymmetryBreaking
	s.maxSteps = e.Settings.MaxSteps
	if e.Settings.RegionPruning && table.Connected() {
		s.regions = newRegionScanner(q.Width, q.Height)
	}

	ok := s.solve(task.Area)
	res.Steps = s.steps
	switch {
	case ok:
		res.Verdict = model.VerdictFeasible
		res.Reason = ReasonPlaced
	case s.aborted != nil:
		res.Verdict = model.VerdictUnknown
		res.Reason = s.aborted.Error()
	default:
		res.Reason = ReasonExhausted
	}
	return res
}

// Run solves every query of the puzzle and returns the results in query
// order. Queries are spread over Settings.Workers goroutines. When ctx is
// cancelled the unfinished queries are reported as unknown and the context
// error is returned alongside the partial result.
func (e *Engine) Run(ctx context.Context, p model.Puzzle) (model.BatchResult, error) {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "engine.Run", trace.WithAttributes(
		attribute.String("puzzle.name", p.Name),
		attribute.Int("puzzle.shapes", len(p.Shapes)),
		attribute.Int("puzzle.queries", len(p.Queries)),
	))
	defer span.End()

	table := NewShapeTable(p.Shapes)
	if e.Settings.RegionPruning && !table.Connected() {
		e.logger.Warn().Msg("region pruning disabled: puzzle has disconnected shapes")
	}

	workers := e.Settings.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]model.QueryResult, len(p.Queries))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, q := range p.Queries {
		g.Go(func() error {
			results[i] = e.Solve(ctx, table, q)
			return nil
		})
	}
	_ = g.Wait()

	br := model.BatchResult{
		Results:  results,
		Settings: e.Settings,
		Duration: time.Since(start),
	}
	span.SetAttributes(
		attribute.Int("batch.feasible", br.Feasible()),
		attribute.Int("batch.unknown", br.Unknown()),
		attribute.Int64("batch.steps", br.TotalSteps()),
	)
	e.logger.Info().
		Int("queries", len(results)).
		Int("feasible", br.Feasible()).
		Int("infeasible", br.Infeasible()).
		Int("unknown", br.Unknown()).
		Int64("steps", br.TotalSteps()).
		Int("workers", workers).
		Dur("duration", br.Duration).
		Msg("batch complete")

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return br, fmt.Errorf("run interrupted: %w", err)
	}
	return br, nil
}

// CountFeasible runs the puzzle and returns how many queries are feasible.
func CountFeasible(ctx context.Context, p model.Puzzle, settings model.SolverSettings) (int, error) {
	br, err := New(settings).Run(ctx, p)
	if err != nil {
		return 0, err
	}
	return br.Feasible(), nil
}
