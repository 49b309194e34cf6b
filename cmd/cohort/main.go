package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/cohortapp/cohort-cli/internal/ai"
	"github.com/cohortapp/cohort-cli/internal/cli"
	"github.com/cohortapp/cohort-cli/internal/constants"
	apperrors "github.com/cohortapp/cohort-cli/internal/errors"
	"github.com/cohortapp/cohort-cli/internal/keyring"
	"github.com/cohortapp/cohort-cli/internal/logger"
	"github.com/cohortapp/cohort-cli/internal/objectstore"
	"github.com/cohortapp/cohort-cli/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path, or a postgres:// connection string." type:"path" default:"~/.config/cohort/cohort.db"`
	Debug   bool   `help:"Verbose logging to stderr."`
	AIURL   string `name:"ai-url" help:"Base URL of the text generation service." env:"COHORT_AI_URL"`

	Init    cli.InitCmd    `cmd:"" help:"Initialize cohort storage."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run environment diagnostics."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Open    cli.OpenCmd    `cmd:"" help:"Launch the TUI at a screen, e.g. 'open habit/<id>'."`
	Account cli.AccountCmd `cmd:"" help:"Register, log in, and manage your session."`
	Habit   cli.HabitCmd   `cmd:"" help:"Create, join, and log habits."`
	Streak  cli.StreakCmd  `cmd:"" help:"Show streak stats and calendars."`
	Event   cli.EventCmd   `cmd:"" help:"Browse and create events."`
	Boost   cli.BoostCmd   `cmd:"" help:"Request and review habit boosts."`
	Tip     cli.TipCmd     `cmd:"" help:"Print a health tip in your language."`
	Prefs   cli.PrefsCmd   `cmd:"" help:"Show or change theme and language."`
	Import  cli.ImportCmd  `cmd:"" help:"Import a JSON export from another client."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Social habit tracking from the terminal"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	var store storage.Provider
	if strings.HasPrefix(CLI.Config, "postgres://") || strings.HasPrefix(CLI.Config, "postgresql://") {
		store = storage.NewPostgresStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	configDir := configDirFor(CLI.Config)
	apperrors.Fatal(logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}))

	var gen ai.Generator = ai.Static{}
	if CLI.AIURL != "" {
		if key, err := keyring.GetAIKey(); err == nil && key != "" {
			gen = ai.NewClient(CLI.AIURL, key)
		} else {
			logger.Warn("no AI key in keyring, using canned mottos")
		}
	}

	appCtx := &cli.Context{
		Store: store,
		Media: objectstore.NewDirStore(filepath.Join(configDir, "media")),
		Gen:   gen,
	}

	// Everything except init expects an initialized database. The TUI and
	// doctor commands call Load themselves so they can report the failure
	// in their own UI.
	loaded := false
	switch cmd := ctx.Command(); {
	case cmd == "init", cmd == "doctor", strings.HasPrefix(cmd, "tui"), strings.HasPrefix(cmd, "open"):
	default:
		apperrors.Fatal(store.Load())
		loaded = true
	}

	err := ctx.Run(appCtx)
	if loaded {
		store.Close()
	}
	apperrors.Fatal(err)
}

// configDirFor picks the directory for logs and media. Postgres connection
// strings have no directory, so those fall back to the default config dir.
func configDirFor(config string) string {
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		return filepath.Join(home, ".config", constants.AppName)
	}
	return filepath.Dir(config)
}
