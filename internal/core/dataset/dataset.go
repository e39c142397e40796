// Package dataset defines the demo row payload and the JSON file shape the
// CLI commands exchange.
package dataset

import (
	"fmt"

	"github.com/colonyops/tabula/grid"
)

// Record is the row payload used by the demo commands. The grid itself
// never looks inside it.
type Record struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// String renders a record for list display.
func (r Record) String() string {
	return fmt.Sprintf("%-10s %-24s %4d", r.SKU, r.Name, r.Qty)
}

// File is the on-disk dataset shape.
type File struct {
	Tables [][]Record `json:"tables"`
}

// IntoStore loads the file into a fresh store, one grid table per entry.
func (f File) IntoStore(opts ...grid.Option[Record]) *grid.Store[Record] {
	s := grid.New(opts...)
	for _, rows := range f.Tables {
		s.PushTable(rows...)
	}
	return s
}

// FromStore snapshots a store back into the file shape.
func FromStore(s *grid.Store[Record]) File {
	f := File{Tables: make([][]Record, 0, s.Len())}
	for t := 0; t < s.Len(); t++ {
		f.Tables = append(f.Tables, s.TableRows(t))
	}
	return f
}

// Sample returns a small dataset for seeding demos.
func Sample() File {
	return File{Tables: [][]Record{
		{
			{SKU: "CAM-100", Name: "Trail camera", Qty: 4},
			{SKU: "CAM-210", Name: "Dome camera", Qty: 9},
			{SKU: "CAM-305", Name: "Thermal camera", Qty: 1},
		},
		{
			{SKU: "BAT-AA", Name: "AA battery pack", Qty: 120},
			{SKU: "BAT-LI", Name: "Lithium cell", Qty: 36},
		},
		{
			{SKU: "MNT-POLE", Name: "Pole mount", Qty: 17},
			{SKU: "MNT-WALL", Name: "Wall mount", Qty: 22},
			{SKU: "MNT-TRI", Name: "Tripod", Qty: 6},
		},
	}}
}
