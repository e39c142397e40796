package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tabula/internal/commands"
	"github.com/colonyops/tabula/internal/core/config"
	"github.com/colonyops/tabula/internal/core/styles"
	"github.com/colonyops/tabula/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set so
	// version remains "dev". Fall back to runtime/debug.BuildInfo.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}
	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()
	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "tabula",
		Usage:     "In-memory dataset grids with tracked selections",
		UsageText: "tabula [global options] command [command options]",
		Description: `Tabula keeps ordered tables of rows in memory, tracks table and row
selections across structural edits, and gates asynchronous loads through a
small mode state machine.

Run 'tabula seed' for a sample dataset and 'tabula tui' to browse it.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TABULA_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (stderr if unset)",
				Sources:     cli.EnvVars("TABULA_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TABULA_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			level := flags.LogLevel
			if level == "" {
				level = cfg.LogLevel
			}
			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.LogFile
			}
			logger, closer, err := logutils.New(level, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			if palette, ok := styles.GetPalette(cfg.Theme); ok {
				styles.SetTheme(palette)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			commands.NewTuiCmd(flags).Cmd(),
			commands.NewEditCmd(flags).Cmd(),
			commands.NewSeedCmd(flags).Cmd(),
		},
	}

	err := app.Run(ctx, os.Args)
	if logCloser != nil {
		logCloser()
	}
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
