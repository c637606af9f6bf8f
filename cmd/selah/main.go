// Package main is the entry point for selah's notification engine.
// It loads configuration, wires the platform variant and orchestrator,
// and starts either the settings TUI or one of the subcommands.
package main

import (
	"flag"
	"fmt"
	"os"

	"selah/internal/config"
	"selah/internal/kvstore"
	"selah/internal/logger"
	"selah/internal/notifications"
	"selah/internal/platform"
	"selah/internal/profile"
	"selah/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `selah - notification engine for the selah devotional app

USAGE:
    selah [OPTIONS]
    selah <command>

COMMANDS:
    run              Run the reminder daemon (keeps recurring notifications firing)
    status           Show permission state and the scheduled queue
    test             Send a test notification
    cancel           Cancel all scheduled notifications

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    Without a command, selah opens the notification settings screen:
    per-category reminder toggles, the daily devotion time, and the
    permission prompt flow.

    Configuration lives in ~/.config/selah/config.yaml and can be
    overridden with SELAH_* environment variables. Data (settings,
    permission state, the scheduled queue) lives in ~/.selah/.
`

// engine bundles everything a command needs.
type engine struct {
	cfg   *config.Config
	log   *zap.Logger
	orch  *notifications.Orchestrator
	local *platform.LocalPlatform // nil on the web variant
}

// buildEngine wires config, storage, the platform variant, and the
// orchestrator. quiet replaces the configured logger with a nop one; the
// TUI owns the terminal.
func buildEngine(quiet bool) (*engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := zap.NewNop()
	if !quiet || cfg.LogFile != "" {
		log, err = logger.New(cfg.LogLevel, cfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
	}

	kv, err := kvstore.Open(cfg.GetDataDir())
	if err != nil {
		return nil, fmt.Errorf("open data store: %w", err)
	}

	var api platform.API
	var local *platform.LocalPlatform
	if cfg.Platform == "web" {
		api = platform.NewWeb(kv, log, true)
	} else {
		local = platform.NewLocal(kv, log)
		api = local
	}

	day, hour, minute := cfg.WeeklyCue()
	weekly := notifications.WeeklyCue{Weekday: day, Hour: hour, Minute: minute}

	orch := notifications.New(api, kv, profile.NewClient(cfg.ProfileEndpoint), cfg.UserID, weekly, log)
	return &engine{cfg: cfg, log: log, orch: orch, local: local}, nil
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "run":
			runDaemon()
			return
		case "status":
			runStatus()
			return
		case "test":
			runTest()
			return
		case "cancel":
			runCancel()
			return
		}
	}

	showHelp := flag.Bool("h", false, "show help")
	showHelpLong := flag.Bool("help", false, "show help")
	showVersion := flag.Bool("v", false, "show version")
	showVersionLong := flag.Bool("version", false, "show version")
	flag.Usage = func() { fmt.Print(helpText) }
	flag.Parse()

	if *showHelp || *showHelpLong {
		fmt.Print(helpText)
		return
	}
	if *showVersion || *showVersionLong {
		fmt.Printf("selah %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	eng, err := buildEngine(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = eng.log.Sync() }()

	app := ui.NewApp(eng.orch, ui.DefaultStyles())
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
