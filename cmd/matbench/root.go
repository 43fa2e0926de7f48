// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/threadmul/config"
	"github.com/katalvlaran/threadmul/matrix"
)

const metricsNamespace = "threadmul"

// app is the state shared by all subcommands of one invocation.
type app struct {
	out, errOut io.Writer

	configPath string
	linger     time.Duration

	cfg     config.Config
	log     *slog.Logger
	reg     *prometheus.Registry
	metrics *matrix.Metrics
	srv     *http.Server
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "matbench",
		Short:         "Benchmark and verify the parallel dense matrix multiply",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.Int("threads", 0, "worker count for parallel runs (0 = available parallelism)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.Bool("no-color", false, "disable colored log output")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9100")
	pf.DurationVar(&a.linger, "linger", 0, "keep serving metrics this long after the command finishes")

	root.AddCommand(newSweepCmd(a), newVerifyCmd(a))

	return root
}

// setup resolves the configuration and builds the logger, metrics and the
// optional metrics listener.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("threads") {
		cfg.Threads, _ = flags.GetInt("threads")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("no-color") {
		noColor, _ := flags.GetBool("no-color")
		cfg.Log.Color = !noColor
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr, _ = flags.GetString("metrics-addr")
	}
	if err = applyBenchFlags(cmd, &cfg); err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, _ := cfg.Log.SlogLevel()
	a.log = slog.New(tint.NewHandler(a.errOut, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !cfg.Log.Color,
	}))

	a.reg = prometheus.NewRegistry()
	a.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.metrics = matrix.NewMetrics(a.reg, metricsNamespace)

	if cfg.MetricsAddr != "" {
		return a.serveMetrics(cfg.MetricsAddr)
	}

	return nil
}

func (a *app) serveMetrics(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.reg, promhttp.HandlerOpts{Registry: a.reg}))
	a.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := a.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server stopped", slog.Any("error", err))
		}
	}()
	a.log.Info("serving metrics", slog.String("addr", ln.Addr().String()))

	return nil
}

func (a *app) teardown() error {
	if a.srv == nil {
		return nil
	}
	if a.linger > 0 {
		a.log.Info("lingering for metrics scrape", slog.Duration("for", a.linger))
		time.Sleep(a.linger)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return a.srv.Shutdown(ctx)
}

// threads is the worker count for parallel runs.
func (a *app) threads() int {
	if a.cfg.Threads > 0 {
		return a.cfg.Threads
	}

	return matrix.DefaultThreads()
}

// engineOptions are the options every Multiply call of the tool carries.
func (a *app) engineOptions(threads int) []matrix.Option {
	return []matrix.Option{
		matrix.WithThreads(threads),
		matrix.WithLogger(a.log),
		matrix.WithMetrics(a.metrics),
	}
}

// applyBenchFlags copies the sizes/seed/repeat flags of a subcommand, when
// it defines and the user set them, over cfg.
func applyBenchFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if f := flags.Lookup("sizes"); f != nil && f.Changed {
		sizes, err := config.ParseSizes(f.Value.String())
		if err != nil {
			return fmt.Errorf("--sizes: %w", err)
		}
		cfg.Bench.Sizes = sizes
	}
	if f := flags.Lookup("seed"); f != nil && f.Changed {
		cfg.Bench.Seed, _ = flags.GetInt64("seed")
	}
	if f := flags.Lookup("repeat"); f != nil && f.Changed {
		cfg.Bench.Repeat, _ = flags.GetInt("repeat")
	}

	return nil
}
