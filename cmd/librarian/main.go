// Command librarian is the terminal front desk of a small lending library.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/peterh/liner"

	"github.com/AntonStoeckl/booklending/core"
	"github.com/AntonStoeckl/booklending/internal/config"
	"github.com/AntonStoeckl/booklending/internal/logging"
	"github.com/AntonStoeckl/booklending/journal/oteladapters"
	"github.com/AntonStoeckl/booklending/library"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("librarian", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to the YAML config (default $"+config.EnvConfigPath+" or "+config.DefaultPath+")")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logHandler := logging.NewHandler(stderr, level, false)

	tel, err := setupTelemetry(cfg.Metrics)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	ctx := context.Background()
	defer func() {
		if shutdownErr := tel.shutdown(ctx); shutdownErr != nil {
			slog.New(logHandler).Error("telemetry shutdown failed", "error", shutdownErr)
		}
	}()

	lib, err := library.New(ctx, libraryOptions(cfg, tel, logHandler)...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	a := &app{
		lib:      lib,
		out:      stdout,
		currency: cfg.Currency,
		stats:    tel.stats,
		now:      time.Now,
	}

	if err := repl(ctx, a); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	return 0
}

func libraryOptions(cfg config.Config, tel telemetry, logHandler slog.Handler) []library.Option {
	seed := make([]library.SeedBook, 0, len(cfg.SeedBooks))
	for _, b := range cfg.SeedBooks {
		seed = append(seed, library.SeedBook{Title: b.Title, Author: b.Author, Shelf: b.Shelf})
	}

	opts := []library.Option{
		library.WithRatePerDay(cfg.RatePerDay),
		library.WithSeedBooks(time.Now(), seed...),
		library.WithContextualLogger(oteladapters.NewSlogBridgeLoggerWithHandler(logHandler)),
	}
	if tel.metrics != nil {
		opts = append(opts, library.WithMetrics(tel.metrics))
	}
	if tel.tracing != nil {
		opts = append(opts, library.WithTracing(tel.tracing))
	}

	return opts
}

func repl(ctx context.Context, a *app) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	prompt := func(p string) (string, error) {
		input, err := line.Prompt(p)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return input, err
	}

	fmt.Fprintf(a.out, "Library ready, %d book(s), rent %s%d per day. Type help for commands.\n",
		len(a.lib.ListAll()), a.currency, a.lib.RatePerDay())

	for {
		input, err := prompt("librarian> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line.AppendHistory(input)

		err = a.dispatch(ctx, input, prompt)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, core.ErrValidation), errors.Is(err, core.ErrNotFound):
			fmt.Fprintln(a.out, err)
		case err != nil:
			return err
		}
	}
}
