package helper

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/iankressin/eql-sub000/command"
	"github.com/iankressin/eql-sub000/config"
	"github.com/iankressin/eql-sub000/engine"
	"github.com/iankressin/eql-sub000/helper/metrics"
	"github.com/iankressin/eql-sub000/helper/telemetry"
	"github.com/iankressin/eql-sub000/interpreter"
	"github.com/iankressin/eql-sub000/provider"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// RegisterQueryFlags registers the settings shared by every command that runs queries
func RegisterQueryFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(
		command.ConfigFlag,
		"",
		fmt.Sprintf("the config file path, overrides $%s and the default lookup", config.PathEnv),
	)

	cmd.PersistentFlags().Int(
		command.ConcurrencyFlag,
		engine.DefaultConcurrency,
		"the maximum number of in flight rpc calls per query, 0 for unbounded",
	)

	cmd.PersistentFlags().Uint64(
		command.BlockRangeLimitFlag,
		0,
		"the maximum number of blocks a range may span, 0 for unbounded",
	)

	cmd.PersistentFlags().String(
		command.MetricsFileFlag,
		"",
		"write rpc metrics in the prometheus text format to this file on exit",
	)

	cmd.PersistentFlags().String(
		command.DumpDirFlag,
		"",
		"the directory dump files are written to",
	)

	cmd.PersistentFlags().Bool(
		command.JaegerFlag,
		false,
		"export query traces to jaeger",
	)

	cmd.PersistentFlags().String(
		command.JaegerAddressFlag,
		command.DefaultJaegerAddress,
		"the jaeger collector endpoint",
	)
}

// Session owns everything a query command needs for its lifetime
type Session struct {
	Logger      hclog.Logger
	Interpreter *interpreter.Interpreter

	registry       *prometheus.Registry
	tracerProvider telemetry.TracerProvider
	metricsFile    string
}

// NewSession loads the config and wires the interpreter from the command flags
func NewSession(cmd *cobra.Command) (*Session, error) {
	logger := NewLogger(cmd)
	flags := cmd.Flags()

	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return nil, err
	}

	concurrency, err := flags.GetInt(command.ConcurrencyFlag)
	if err != nil {
		return nil, err
	}

	rangeLimit, err := flags.GetUint64(command.BlockRangeLimitFlag)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	s.metricsFile, _ = flags.GetString(command.MetricsFileFlag)
	dumpDir, _ := flags.GetString(command.DumpDirFlag)

	rpcMetrics, err := provider.GetPrometheusMetrics(command.DefaultServiceName, s.registry)
	if err != nil {
		return nil, err
	}

	s.tracerProvider, err = newTracerProvider(cmd)
	if err != nil {
		return nil, err
	}

	s.Interpreter = interpreter.New(logger, cfg,
		interpreter.WithMetrics(rpcMetrics),
		interpreter.WithTracer(s.tracerProvider.NewTracer("eql")),
		interpreter.WithDumpDir(dumpDir),
		interpreter.WithEngineOptions(
			engine.WithConcurrencyLimit(concurrency),
			engine.WithBlockRangeLimit(rangeLimit),
		),
	)

	return s, nil
}

// Close releases the providers, flushes traces and writes the metrics file
func (s *Session) Close() error {
	var result *multierror.Error

	s.Logger.Debug("closing session", "rpc_requests", s.Interpreter.Requests())

	if err := s.Interpreter.Close(); err != nil {
		result = multierror.Append(result, err)
	}

	if err := s.tracerProvider.Shutdown(context.Background()); err != nil {
		result = multierror.Append(result, err)
	}

	if err := metrics.WriteTextfile(s.metricsFile, s.registry); err != nil {
		result = multierror.Append(result, fmt.Errorf("write metrics: %w", err))
	}

	return result.ErrorOrNil()
}

func loadConfig(cmd *cobra.Command, logger hclog.Logger) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString(command.ConfigFlag); path != "" {
		return config.ReadFile(path)
	}

	return config.Load(logger)
}

func newTracerProvider(cmd *cobra.Command) (telemetry.TracerProvider, error) {
	ctx := context.Background()

	if enabled, _ := cmd.Flags().GetBool(command.JaegerFlag); !enabled {
		return telemetry.NewNilTracerProvider(ctx), nil
	}

	address, _ := cmd.Flags().GetString(command.JaegerAddressFlag)

	return telemetry.NewTracerProvider(ctx, address, command.DefaultServiceName)
}
