package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tabula/internal/core/dataset"
	"github.com/colonyops/tabula/pkg/iojson"
)

type SeedCmd struct {
	flags *Flags
	out   string
	yes   bool
}

// NewSeedCmd creates the seed command, which writes a sample dataset to
// start playing with.
func NewSeedCmd(flags *Flags) *SeedCmd {
	return &SeedCmd{flags: flags}
}

// Cmd returns the cli command definition.
func (cmd *SeedCmd) Cmd() *cli.Command {
	return &cli.Command{
		Name:      "seed",
		Usage:     "write a sample dataset file",
		UsageText: "tabula seed [-o data.json]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "tabula.json", Usage: "output path", Destination: &cmd.out},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "overwrite without asking", Destination: &cmd.yes},
		},
		Action: cmd.run,
	}
}

func (cmd *SeedCmd) run(ctx context.Context, c *cli.Command) error {
	if _, err := os.Stat(cmd.out); err == nil && !cmd.yes {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Dataset file already exists").
			Description(cmd.out + "\nOverwrite it?").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("seed cancelled")
			return nil
		}
	}

	if err := iojson.Write(cmd.out, dataset.Sample()); err != nil {
		return err
	}
	fmt.Printf("wrote sample dataset to %s\n", cmd.out)
	return nil
}
