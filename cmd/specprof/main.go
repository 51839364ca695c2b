// Program specprof measures the throughput of the specjson parsers on files
// of sample records.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/creachadair/specjson/internal/profile"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	cfg, err := profile.Parse(args)
	if err != nil {
		if errors.Is(err, profile.ErrHelp) {
			fmt.Fprintln(os.Stdout, profile.Usage())
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n\n%s\n", err, profile.Usage())
		return 1
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if cfg.Generate > 0 {
		if err := profile.Generate(os.Stdout, cfg.Generate, cfg.Seed); err != nil {
			log.Error("generate failed", "err", err)
			return 1
		}
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Debug("starting", "files", len(cfg.Files), "workers", cfg.Workers,
		"block", cfg.BlockSize, "prefetch", cfg.Prefetch, "rate", cfg.Rate)
	summary, err := profile.Run(ctx, *cfg, log)
	if err != nil {
		log.Error("run failed", "err", err)
		return 1
	}
	if err := summary.Write(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write report: %v\n", err)
		return 1
	}
	if summary.HasErrors() {
		return 1
	}
	return 0
}
