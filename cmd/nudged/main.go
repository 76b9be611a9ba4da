package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joebot/nudged/internal/cli"
	"github.com/joebot/nudged/internal/config"
	"github.com/joebot/nudged/internal/generate"
	"github.com/joebot/nudged/internal/insight"
	"github.com/joebot/nudged/internal/logging"
	"github.com/joebot/nudged/internal/notify"
	"github.com/joebot/nudged/internal/schedule"
	"github.com/joebot/nudged/internal/source"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		cmdRun()
	case "status":
		cmdStatus()
	case "watch":
		cmdWatch()
	case "trigger":
		cmdTrigger()
	case "version", "--version", "-v":
		fmt.Println(cli.TitleStyle.Render(
			fmt.Sprintf("  %s nudged v%s", cli.Logo, cli.Version),
		))
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	dim := cli.DimStyle.Render
	fmt.Println()
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("  %s nudged", cli.Logo)) + dim(" — Proactive Notification Scheduler"))
	fmt.Println()
	fmt.Println("  " + cli.BoldStyle.Render("Usage"))
	fmt.Println()
	fmt.Printf("    nudged %-14s %s\n", "run", dim("Start the scheduler daemon"))
	fmt.Printf("    nudged %-14s %s\n", "status", dim("Show today's schedule and outcomes"))
	fmt.Printf("    nudged %-14s %s\n", "watch", dim("Live status view"))
	fmt.Printf("    nudged %-14s %s\n", "trigger <job>", dim("Force one job's pipeline now"))
	fmt.Printf("    nudged %-14s %s\n", "version", dim("Show version"))
	fmt.Println()
}

// --- run command ---

func cmdRun() {
	cfg := mustLoadConfig()
	setupLogging()

	engine, notifier := mustBuildEngine(cfg)

	fmt.Println()
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("  %s nudged", cli.Logo)))
	fmt.Printf("  %s  delivery via %s\n", cli.StatusBadge(true), notifier.Name())
	fmt.Println(cli.DimStyle.Render("  Press Ctrl+C to stop"))
	fmt.Println()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	engine.Run(ctx)
	fmt.Println("\n  Shutting down...")
}

// --- status command ---

func cmdStatus() {
	cfg := mustLoadConfig()
	cli.RunStatus(cfg)
}

// --- watch command ---

func cmdWatch() {
	cfg := mustLoadConfig()
	if err := cli.RunWatch(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// --- trigger command ---

func cmdTrigger() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: nudged trigger <job-id>")
		os.Exit(1)
	}
	jobID := os.Args[2]

	cfg := mustLoadConfig()
	setupLogging()
	engine, _ := mustBuildEngine(cfg)

	out, err := engine.TriggerNow(context.Background(), jobID)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrStyle.Render("  Error: "+err.Error()))
		os.Exit(1)
	}

	switch out.Status {
	case schedule.StatusSent:
		fmt.Println(cli.OkStyle.Render("  ✓ sent"))
	case schedule.StatusSkipped:
		fmt.Printf("  %s %s\n", cli.DimStyle.Render("- skipped:"), out.Reason)
	case schedule.StatusFailed:
		fmt.Println(cli.ErrStyle.Render("  ✗ failed: " + out.Err.Error()))
		os.Exit(1)
	}
}

// --- helpers ---

func setupLogging() {
	slog.SetDefault(slog.New(logging.NewHandler(os.Stdout, &logging.Options{
		Level: slog.LevelInfo,
		Color: true,
	})))
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
	}
	return cfg
}

// mustBuildEngine wires sources, handlers, generator and notifier into
// a scheduler engine. Exits with a styled error when credentials are
// missing.
func mustBuildEngine(cfg *config.Config) (*schedule.Engine, schedule.Notifier) {
	portfolio := source.NewPortfolio(cfg.PortfolioPath())
	goals := source.NewGoals(cfg.GoalsPath())
	projects := source.NewProjects(cfg.ProjectsDir())

	evaluators := insight.Table(portfolio, goals, projects, insight.Thresholds{
		MoveThresholdPct: cfg.Data.MoveThresholdPct,
		GoalStaleDays:    cfg.Data.GoalStaleDays,
		GoalNearComplete: cfg.Data.GoalNearComplete,
		ProjectIdleDays:  cfg.Data.ProjectIdleDays,
	})

	generator := mustMakeGenerator(cfg)
	notifier := mustMakeNotifier(cfg)

	quietStart, _ := schedule.ParseClock(cfg.Scheduler.QuietHours.Start)
	quietEnd, _ := schedule.ParseClock(cfg.Scheduler.QuietHours.End)

	engine := schedule.NewEngine(schedule.Config{
		Jobs:       schedule.Catalog(),
		Evaluators: evaluators,
		Generator:  generator,
		Notifier:   notifier,
		StorePath:  config.StatePath(),
		QuietStart: quietStart,
		QuietEnd:   quietEnd,
		DailyCap:   cfg.Scheduler.DailyCap,
		Cooldown:   time.Duration(cfg.Scheduler.CooldownMinutes) * time.Minute,
		MaxChars:   cfg.Generator.MaxChars,
	})
	return engine, notifier
}

func mustMakeGenerator(cfg *config.Config) schedule.Generator {
	g := cfg.Generator
	timeout := time.Duration(g.TimeoutSeconds) * time.Second

	switch g.Provider {
	case "openai":
		if g.APIKey == "" {
			fatalConfig("No generator API key configured",
				"Set one in ~/.nudged/config.json under the generator section")
		}
		return generate.NewOpenAI(g.APIKey, g.APIBase, g.Model, timeout)
	default:
		if g.Command == "" {
			fatalConfig("No generator command configured",
				"Set generator.command in ~/.nudged/config.json")
		}
		return generate.NewSubprocess(g.Command, g.Args, timeout)
	}
}

func mustMakeNotifier(cfg *config.Config) schedule.Notifier {
	d := cfg.Channels.Discord
	if !d.Enabled {
		slog.Warn("Discord not enabled, delivering to console")
		return notify.NewConsole(os.Stdout)
	}
	notifier, err := notify.NewDiscord(d.Token, d.ChannelID)
	if err != nil {
		fatalConfig("Discord: "+err.Error(),
			"Fix channels.discord in ~/.nudged/config.json")
	}
	return notifier
}

func fatalConfig(msg, hint string) {
	fmt.Println()
	fmt.Println(cli.ErrStyle.Render("  Error: " + msg))
	fmt.Println(cli.DimStyle.Render("  " + hint))
	fmt.Println()
	os.Exit(1)
}
