package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/helper/telemetry"
	"github.com/iankressin/eql-sub000/provider"
	"github.com/iankressin/eql-sub000/semantic"
)

const (
	// DefaultConcurrency bounds the in flight provider calls of one resolver
	DefaultConcurrency = 16
)

// ErrNoSerializer is returned for a dump target when the engine has no serializer
var ErrNoSerializer = errors.New("no serializer configured")

// Serializer persists one expression result to its dump target
type Serializer interface {
	Serialize(result ExpressionResult, dump *ast.Dump) error
}

// Engine resolves parsed expressions against the providers handed out by a factory
type Engine struct {
	logger     hclog.Logger
	factory    provider.Factory
	tracer     telemetry.Tracer
	serializer Serializer

	concurrency     int
	blockRangeLimit uint64
}

type Option func(*Engine)

// WithConcurrencyLimit bounds concurrent provider calls per resolver, zero lifts the bound
func WithConcurrencyLimit(limit int) Option {
	return func(e *Engine) {
		e.concurrency = limit
	}
}

// WithBlockRangeLimit caps how many blocks one range may expand to, zero lifts the cap
func WithBlockRangeLimit(limit uint64) Option {
	return func(e *Engine) {
		e.blockRangeLimit = limit
	}
}

func WithTracer(tracer telemetry.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

func WithSerializer(serializer Serializer) Option {
	return func(e *Engine) {
		e.serializer = serializer
	}
}

func New(logger hclog.Logger, factory provider.Factory, opts ...Option) *Engine {
	e := &Engine{
		logger:      logger.Named("engine"),
		factory:     factory,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.tracer == nil {
		e.tracer = telemetry.NewNilTracerProvider(context.Background()).NewTracer("engine")
	}

	return e
}

// Run resolves exprs in order. The first failing expression aborts the run and
// no results are returned.
func (e *Engine) Run(ctx context.Context, exprs []ast.Expression) ([]QueryResult, error) {
	if err := semantic.Analyze(exprs); err != nil {
		return nil, err
	}

	logger := e.logger.With("run", uuid.New().String())
	results := make([]QueryResult, 0, len(exprs))

	for _, expr := range exprs {
		begin := time.Now()

		result, err := e.runExpression(ctx, expr)
		if err != nil {
			logger.Debug("query failed", "query", expr.Source(), "err", err)

			return nil, fmt.Errorf("%s: %w", expr.Source(), err)
		}

		logger.Debug("query resolved",
			"query", expr.Source(),
			"rows", result.Len(),
			"elapsed", time.Since(begin),
		)

		results = append(results, QueryResult{Query: expr.Source(), Result: result})
	}

	return results, nil
}

func (e *Engine) runExpression(ctx context.Context, expr ast.Expression) (ExpressionResult, error) {
	get, ok := expr.(*ast.Get)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedExpression, expr)
	}

	span := e.tracer.StartWithContext(ctx, "engine.get")
	defer span.End()

	span.SetAttribute("chain", get.Chain.String())

	if get.Entity != nil {
		span.SetAttribute("entity", get.Entity.Kind().String())
	}

	result, err := e.resolve(span.Context(), get)
	if err != nil {
		span.RecordError(err)

		return nil, err
	}

	span.SetAttribute("rows", result.Len())

	if get.Dump != nil {
		if e.serializer == nil {
			return nil, fmt.Errorf("dump %s: %w", get.Dump.Path(), ErrNoSerializer)
		}

		if err := e.serializer.Serialize(result, get.Dump); err != nil {
			span.RecordError(err)

			return nil, err
		}
	}

	span.SetStatus(telemetry.Ok, "")

	return result, nil
}

func (e *Engine) resolve(ctx context.Context, get *ast.Get) (ExpressionResult, error) {
	p, err := e.factory.Provider(get.Chain)
	if err != nil {
		return nil, err
	}

	chain := get.Chain.String()

	switch entity := get.Entity.(type) {
	case *ast.Account:
		return e.resolveAccounts(ctx, p, chain, entity)
	case *ast.Block:
		return e.resolveBlocks(ctx, p, chain, entity)
	case *ast.Transaction:
		return e.resolveTransactions(ctx, p, chain, entity)
	case *ast.Logs:
		return e.resolveLogs(ctx, p, chain, entity)
	}

	return nil, fmt.Errorf("%w: entity %T", ErrUnsupportedExpression, get.Entity)
}
