package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dqx0.com/go/httpfs/httpx"
	"dqx0.com/go/httpfs/internal/obs"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "httpfs:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("httpfs", flag.ContinueOnError)
	dir := fs.String("directory", "", "directory served by /files (disabled when empty)")
	addr := fs.String("addr", "127.0.0.1:4221", "listen address")
	level := fs.String("log-level", "info", "minimum log level: debug, info, warn, error")
	format := fs.String("log-format", "json", "log output: json or console")
	legacyCRLF := fs.Bool("legacy-crlf", false, "append CRLF after every response body")
	readTimeout := fs.Duration("read-timeout", 0, "per-connection read deadline (0 disables)")
	writeTimeout := fs.Duration("write-timeout", 0, "per-connection write deadline (0 disables)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	minLevel, ok := obs.ParseLevel(*level)
	if !ok {
		return fmt.Errorf("unknown log level %q", *level)
	}
	if *format != "json" && *format != "console" {
		return fmt.Errorf("unknown log format %q", *format)
	}
	logger := obs.NewZerolog(os.Stderr, minLevel, *format == "console")

	cfg := &httpx.Config{Directory: *dir, LegacyTrailingCRLF: *legacyCRLF}
	if err := cfg.Validate(); err != nil {
		return err
	}
	meter := &obs.Tally{}
	srv := &httpx.Server{
		Addr:         *addr,
		Config:       cfg,
		Logger:       logger,
		Meter:        meter,
		ReadTimeout:  *readTimeout,
		WriteTimeout: *writeTimeout,
	}

	logger.L.Info().
		Str("addr", *addr).
		Str("directory", *dir).
		Bool("legacy_crlf", *legacyCRLF).
		Msg("starting server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.L.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.L.Warn().Err(err).Msg("shutdown")
	}
	if err := <-errc; err != nil && !errors.Is(err, httpx.ErrServerClosed) {
		return err
	}
	ev := logger.L.Info()
	for series, v := range meter.Counters() {
		ev = ev.Float64(series, v)
	}
	ev.Msg("served")
	return nil
}
