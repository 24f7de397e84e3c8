package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/battleskill/internal/config"
	"github.com/udisondev/battleskill/internal/data"
	"github.com/udisondev/battleskill/internal/game/rng"
	"github.com/udisondev/battleskill/internal/game/skill"
)

const DefaultConfigPath = "config/skillcalc.yaml"

const usage = `usage: skillcalc [-config PATH] <command> [flags]

commands:
  list       print the skill table
  resolve    resolve one skill between two combatants
  simulate   resolve a skill many times and print statistics
`

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// app carries what every command needs.
type app struct {
	cfg      config.Calculator
	registry *skill.Registry
	out      io.Writer
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfgPath := DefaultConfigPath
	if p := os.Getenv("BATTLESKILL_CONFIG"); p != "" {
		cfgPath = p
	}
	if len(args) >= 2 && args[0] == "-config" {
		cfgPath = args[1]
		args = args[2:]
	}

	cfg, err := config.LoadCalculator(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	if cfg.Seed == 0 {
		seed, err := rng.NewSeed()
		if err != nil {
			return err
		}
		cfg.Seed = seed
	}

	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	slog.Debug("skill registry ready", "skills", len(registry.IDs()), "seed", cfg.Seed)

	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return fmt.Errorf("no command given")
	}

	a := &app{cfg: cfg, registry: registry, out: out}
	switch args[0] {
	case "list":
		return a.list()
	case "resolve":
		return a.resolve(ctx, args[1:])
	case "simulate":
		return a.simulate(ctx, args[1:])
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func loadRegistry(cfg config.Calculator) (*skill.Registry, error) {
	if cfg.SkillsFile == "" {
		return skill.DefaultRegistry()
	}
	defs, err := data.LoadSkillsFile(cfg.SkillsFile)
	if err != nil {
		return nil, err
	}
	return skill.NewRegistry(defs)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
