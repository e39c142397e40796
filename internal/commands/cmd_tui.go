package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/tabula/grid"
	"github.com/colonyops/tabula/internal/core/dataset"
	"github.com/colonyops/tabula/internal/tui"
	"github.com/colonyops/tabula/pkg/iojson"
)

type TuiCmd struct {
	flags *Flags
	path  string
}

// NewTuiCmd creates the tui command.
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Cmd returns the cli command definition.
func (cmd *TuiCmd) Cmd() *cli.Command {
	return &cli.Command{
		Name:      "tui",
		Usage:     "browse and edit a dataset interactively",
		UsageText: "tabula tui [dataset.json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "data",
				Usage:       "dataset file (defaults to data_file from config)",
				Destination: &cmd.path,
			},
		},
		Action: cmd.run,
	}
}

func (cmd *TuiCmd) run(ctx context.Context, c *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("tui requires an interactive terminal")
	}

	path := cmd.path
	if path == "" {
		path = c.Args().First()
	}
	if path == "" {
		path = cmd.flags.Config.DataFile
	}
	if path == "" {
		return errors.New("no dataset file; pass one or set data_file in config")
	}

	file, err := readDataset(path)
	if err != nil {
		return err
	}

	var opts []grid.Option[dataset.Record]
	if cmd.flags.Config.CloneRows != nil {
		opts = append(opts, grid.WithCloneDefault[dataset.Record](*cmd.flags.Config.CloneRows))
	}
	store := file.IntoStore(opts...)
	log.Info().Str("path", path).Int("tables", store.Len()).Msg("dataset loaded")

	model := tui.New(store, path)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// readDataset loads a dataset file, treating a missing file as an empty
// dataset so a new file can be started from the TUI.
func readDataset(path string) (dataset.File, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return dataset.File{}, nil
	}
	return iojson.ReadFile[dataset.File](path)
}
