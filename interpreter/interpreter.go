package interpreter

import (
	"context"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/iankressin/eql-sub000/config"
	"github.com/iankressin/eql-sub000/dump"
	"github.com/iankressin/eql-sub000/engine"
	"github.com/iankressin/eql-sub000/helper/telemetry"
	"github.com/iankressin/eql-sub000/parser"
	"github.com/iankressin/eql-sub000/provider"
)

// Interpreter runs query text end to end: parse, analyze, resolve, dump
type Interpreter struct {
	logger  hclog.Logger
	factory *provider.RPCFactory
	engine  *engine.Engine
}

type options struct {
	metrics    *provider.Metrics
	tracer     telemetry.Tracer
	dumpDir    string
	engineOpts []engine.Option
}

type Option func(*options)

func WithMetrics(metrics *provider.Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

func WithTracer(tracer telemetry.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// WithDumpDir places dump files under dir
func WithDumpDir(dir string) Option {
	return func(o *options) {
		o.dumpDir = dir
	}
}

// WithEngineOptions forwards opts to the engine
func WithEngineOptions(opts ...engine.Option) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

func New(logger hclog.Logger, cfg *config.Config, opts ...Option) *Interpreter {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	factory := provider.NewRPCFactory(logger, cfg, o.metrics)

	engineOpts := []engine.Option{
		engine.WithSerializer(dump.New(logger, dump.WithDir(o.dumpDir))),
	}

	if o.tracer != nil {
		engineOpts = append(engineOpts, engine.WithTracer(o.tracer))
	}

	engineOpts = append(engineOpts, o.engineOpts...)

	return &Interpreter{
		logger:  logger.Named("interpreter"),
		factory: factory,
		engine:  engine.New(logger, factory, engineOpts...),
	}
}

// Eval parses text into statements and resolves them in order
func (i *Interpreter) Eval(ctx context.Context, text string) ([]engine.QueryResult, error) {
	exprs, err := parser.Parse(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}

	i.logger.Debug("parsed", "statements", len(exprs))

	return i.engine.Run(ctx, exprs)
}

// Requests returns how many provider calls were sent so far
func (i *Interpreter) Requests() uint64 {
	return i.factory.Requests()
}

// Close releases every provider connection
func (i *Interpreter) Close() error {
	return i.factory.Close()
}
