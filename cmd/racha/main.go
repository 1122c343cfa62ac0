package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mresendiz/racha/internal/cli"
	"github.com/mresendiz/racha/internal/config"
	"github.com/mresendiz/racha/internal/constants"
	"github.com/mresendiz/racha/internal/errors"
	"github.com/mresendiz/racha/internal/habits"
	"github.com/mresendiz/racha/internal/logger"
	"github.com/mresendiz/racha/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path. A .db extension selects SQLite, anything else JSON." type:"string" default:"~/.config/racha/racha.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize racha storage."`
	Add    cli.AddCmd    `cmd:"" help:"Add a new habit."`
	Edit   cli.EditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete cli.DeleteCmd `cmd:"" help:"Delete a habit and its history."`
	Done   cli.DoneCmd   `cmd:"" help:"Mark a habit as done for a day."`
	Undo   cli.UndoCmd   `cmd:"" help:"Unmark a habit for a day."`
	List   cli.ListCmd   `cmd:"" help:"List habits with their streaks."`
	Today  cli.TodayCmd  `cmd:"" help:"Show today's habit status."`
	Log    cli.LogCmd    `cmd:"" help:"Show habit log (ASCII history)."`
	Streak cli.StreakCmd `cmd:"" help:"Show the global streak and reward progress."`
	Claim  cli.ClaimCmd  `cmd:"" help:"Claim unlocked extra habit slots."`
	Watch  cli.WatchCmd  `cmd:"" help:"Run the reminder watcher."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, recurrence and rewards"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load()
	if err != nil {
		errors.Fatal(err)
	}

	storagePath := expandHome(CLI.Config)
	if CLI.Config == constants.DefaultConfigPath && cfg.Storage.Path != "" {
		storagePath = expandHome(cfg.Storage.Path)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug || cfg.Debug,
		ConfigDir: filepath.Dir(storagePath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	var store storage.Provider
	if strings.HasSuffix(storagePath, ".db") {
		store = storage.NewSQLiteStore(storagePath)
	} else {
		store = storage.NewJSONStore(storagePath)
	}
	defer store.Close()

	// Load the store before running the command (init handles its own)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	appCtx := &cli.Context{
		Store:  store,
		Habits: habits.New(store, cfg.Limits()),
		Config: cfg,
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
