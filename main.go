package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/itbasis/go-clock"
	"github.com/knix24/sleeper-pixel-performance/cache"
	"github.com/knix24/sleeper-pixel-performance/config"
	"github.com/knix24/sleeper-pixel-performance/controller"
	"github.com/knix24/sleeper-pixel-performance/sleeper"
	"github.com/knix24/sleeper-pixel-performance/web"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log := newLogger(cfg.Verbose)
	clock := clock.New()

	store, err := newStore(cfg, clock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	sleeperClient, err := sleeper.New(sleeper.Options{
		URL:       cfg.SleeperURL,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		Logger:    log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctrl, err := controller.New(clock, sleeperClient, store, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.Serve {
		return serve(cfg.Port, ctrl, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runCLI(ctx, cfg, ctrl, os.Stdin, os.Stdout); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "\nCancelled.")
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func newStore(cfg *config.Config, clock clock.Clock) (cache.Store, error) {
	switch {
	case cfg.NoCache:
		return cache.NopStore{}, nil
	case cfg.RedisURL != "":
		return cache.NewRedisStore(cfg.RedisURL)
	default:
		return cache.NewFileStore(cfg.CacheDir, clock), nil
	}
}

func serve(port int, ctrl controller.C, log *logrus.Logger) int {
	server, err := web.NewServer(port, ctrl, log)
	if err != nil {
		log.Errorf("error creating new web server: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Error(err)
		return 1
	}
	log.Info("server shutdown")
	return 0
}
