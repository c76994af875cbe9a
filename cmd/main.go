package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	solver "roster-solver/internal/app"
	"roster-solver/internal/config"
	"roster-solver/internal/format"
	"roster-solver/internal/instance"
	"roster-solver/pkg/logger"
	"roster-solver/pkg/metrics"
)

// Metrics server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		instancePath = flag.String("instance", "", "Path to the YAML instance file")
		outFormat    = flag.String("format", format.FormatText, "Output format: text or json")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if *instancePath == "" {
		os.Stderr.WriteString("missing -instance flag\n")
		flag.Usage()
		return 1
	}

	// Expose Prometheus metrics while the solve runs, when configured.
	var srv *http.Server
	if cfg.MetricsAddr != "" {
		srv = metricsServer(cfg.MetricsAddr)
		go func() {
			log.Info(ctx, "serving metrics", logger.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error(ctx, "metrics server failed", logger.Error(err))
			}
		}()
	}

	in, err := instance.Load(*instancePath)
	if err != nil {
		log.Error(ctx, "loading instance failed", logger.Error(err))
		return 1
	}

	s := solver.New(append(solver.FromConfig(cfg), solver.WithLogger(log))...)
	res, err := s.Solve(ctx, in)
	if err != nil {
		log.Error(ctx, "solve failed", logger.Error(err))
		return 1
	}

	out, err := format.Render(res, *outFormat)
	if err != nil {
		log.Error(ctx, "rendering result failed", logger.Error(err))
		return 1
	}
	fmt.Print(out)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(ctx, "metrics server shutdown failed", logger.Error(err))
		}
	}

	if !res.Feasible {
		return 2
	}
	return 0
}

func metricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
