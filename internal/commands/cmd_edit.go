package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tabula/grid"
	"github.com/colonyops/tabula/internal/core/dataset"
	"github.com/colonyops/tabula/pkg/iojson"
)

type EditCmd struct {
	flags *Flags

	reader    iojson.FileReader[dataset.File]
	place     string
	which     string
	tables    string
	locs      string
	src       string
	del       bool
	changeSel bool
	out       string
}

// NewEditCmd creates the edit command: one engine operation applied to a
// JSON dataset, mostly useful for scripting and for poking at placement
// semantics.
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{flags: flags}
}

// Cmd returns the cli command definition.
func (cmd *EditCmd) Cmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "apply one rows operation to a JSON dataset",
		UsageText: `tabula edit -f data.json --tables 0,2 --place replace --src '[{"sku":"X","name":"Item","qty":1}]'`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.StringFlag{Name: "place", Value: "below", Usage: "below|above|replace|newTableAbove|newTableBelow", Destination: &cmd.place},
			&cli.StringFlag{Name: "which", Value: "all", Usage: "all|top|bottom", Destination: &cmd.which},
			&cli.StringFlag{Name: "tables", Usage: "target table indices, e.g. 0,2", Destination: &cmd.tables},
			&cli.StringFlag{Name: "locs", Usage: "target row locations, e.g. 0:1,2:0", Destination: &cmd.locs},
			&cli.StringFlag{Name: "src", Usage: "JSON array of rows to insert", Destination: &cmd.src},
			&cli.BoolFlag{Name: "delete", Usage: "delete targets instead of inserting", Destination: &cmd.del},
			&cli.BoolFlag{Name: "change-sel", Usage: "select the affected items afterwards", Destination: &cmd.changeSel},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output path (stdout if omitted)", Destination: &cmd.out},
		},
		Action: cmd.run,
	}
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	file, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	place, err := grid.ParsePlace(cmd.place)
	if err != nil {
		return err
	}
	which, err := grid.ParseWhich(cmd.which)
	if err != nil {
		return err
	}
	target, err := cmd.parseTarget()
	if err != nil {
		return err
	}

	var src []dataset.Record
	if !cmd.del {
		src = []dataset.Record{}
		if cmd.src != "" {
			if err := json.Unmarshal([]byte(cmd.src), &src); err != nil {
				return fmt.Errorf("parse --src: %w", err)
			}
		}
	}

	store := file.IntoStore()
	ok, err := store.Rows(src, grid.RowsOptions{
		Target:    target,
		Which:     which,
		Place:     place,
		ChangeSel: cmd.changeSel,
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("operation did not apply (empty or invalid target)")
	}

	return iojson.Write(cmd.out, dataset.FromStore(store))
}

// parseTarget builds the explicit target from --tables or --locs. Both set
// is an error; neither set falls back to the implicit placement target.
func (cmd *EditCmd) parseTarget() (grid.Target, error) {
	if cmd.tables != "" && cmd.locs != "" {
		return grid.Target{}, fmt.Errorf("--tables and --locs are mutually exclusive")
	}
	switch {
	case cmd.tables != "":
		var tids []int
		for _, part := range strings.Split(cmd.tables, ",") {
			t, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return grid.Target{}, fmt.Errorf("parse --tables %q: %w", part, err)
			}
			tids = append(tids, t)
		}
		return grid.TargetTables(tids...), nil
	case cmd.locs != "":
		var locs []grid.Loc
		for _, part := range strings.Split(cmd.locs, ",") {
			tr := strings.SplitN(strings.TrimSpace(part), ":", 2)
			if len(tr) != 2 {
				return grid.Target{}, fmt.Errorf("parse --locs %q: want t:r", part)
			}
			t, err := strconv.Atoi(tr[0])
			if err != nil {
				return grid.Target{}, fmt.Errorf("parse --locs %q: %w", part, err)
			}
			r, err := strconv.Atoi(tr[1])
			if err != nil {
				return grid.Target{}, fmt.Errorf("parse --locs %q: %w", part, err)
			}
			locs = append(locs, grid.Loc{T: t, R: r})
		}
		return grid.TargetRows(locs...), nil
	default:
		return grid.Target{}, nil
	}
}
