package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tabula/grid"
)

func TestSelectTable_Single(t *testing.T) {
	s := seed(t, []string{"a"}, []string{"b"}, []string{"c"})

	s.SelectTable(1, grid.MultiSingle)
	assert.Equal(t, []int{1}, s.TablesSel())

	// Picking another table replaces the selection.
	s.SelectTable(2, grid.MultiSingle)
	assert.Equal(t, []int{2}, s.TablesSel())

	// Picking the sole selected table clears it.
	s.SelectTable(2, grid.MultiSingle)
	assert.Empty(t, s.TablesSel())
}

func TestSelectTable_AdditiveToggle(t *testing.T) {
	s := seed(t, []string{"a"}, []string{"b"}, []string{"c"})

	s.SelectTable(0, grid.MultiAdd)
	s.SelectTable(2, grid.MultiAdd)
	assert.Equal(t, []int{0, 2}, s.TablesSel())

	// Toggling both off again leaves nothing.
	s.SelectTable(0, grid.MultiAdd)
	s.SelectTable(2, grid.MultiAdd)
	assert.Empty(t, s.TablesSel())
}

func TestSelectTable_Range(t *testing.T) {
	s := seed(t, []string{"a"}, []string{"b"}, []string{"c"}, []string{"d"})

	s.SelectTable(1, grid.MultiSingle)
	s.SelectTable(3, grid.MultiRange)
	assert.Equal(t, []int{1, 2, 3}, s.TablesSel())

	// With more than one item selected a range pick collapses to the pick.
	s.SelectTable(0, grid.MultiRange)
	assert.Equal(t, []int{0}, s.TablesSel())
}

func TestSelectRow_RangeSymmetry(t *testing.T) {
	s := seed(t, []string{"a", "b", "c", "d", "e", "f"})

	// Anchor high, pick low.
	s.SelectRow(grid.Loc{T: 0, R: 5}, grid.MultiSingle)
	s.SelectRow(grid.Loc{T: 0, R: 1}, grid.MultiRange)
	down := s.RowsSel()

	// Anchor low, pick high.
	s.ClearSel()
	s.SelectRow(grid.Loc{T: 0, R: 1}, grid.MultiSingle)
	s.SelectRow(grid.Loc{T: 0, R: 5}, grid.MultiRange)
	up := s.RowsSel()

	want := []grid.Loc{{T: 0, R: 1}, {T: 0, R: 2}, {T: 0, R: 3}, {T: 0, R: 4}, {T: 0, R: 5}}
	assert.Equal(t, want, down)
	assert.Equal(t, want, up)
}

func TestSelectRow_RangeAcrossTablesCollapses(t *testing.T) {
	s := seed(t, []string{"a", "b"}, []string{"c", "d"})

	s.SelectRow(grid.Loc{T: 0, R: 0}, grid.MultiSingle)
	s.SelectRow(grid.Loc{T: 1, R: 1}, grid.MultiRange)

	// Rows in different tables cannot span; the pick stands alone.
	assert.Equal(t, []grid.Loc{{T: 1, R: 1}}, s.RowsSel())
}

func TestSelectRow_RangeWithoutAnchor(t *testing.T) {
	s := seed(t, []string{"a", "b", "c"})

	s.SelectRow(grid.Loc{T: 0, R: 2}, grid.MultiRange)
	assert.Equal(t, []grid.Loc{{T: 0, R: 2}}, s.RowsSel())
}

func TestSelect_OutOfRangeIgnored(t *testing.T) {
	s := seed(t, []string{"a"})
	s.SelectTable(0, grid.MultiSingle)
	s.SelectRow(grid.Loc{T: 0, R: 0}, grid.MultiSingle)

	s.SelectTable(5, grid.MultiSingle)
	s.SelectRow(grid.Loc{T: 0, R: 9}, grid.MultiAdd)
	s.SelectRow(grid.Loc{T: -1, R: 0}, grid.MultiSingle)

	assert.Equal(t, []int{0}, s.TablesSel())
	assert.Equal(t, []grid.Loc{{T: 0, R: 0}}, s.RowsSel())
}

func TestModifiers_MultiMode(t *testing.T) {
	assert.Equal(t, grid.MultiSingle, grid.Modifiers{}.MultiMode())
	assert.Equal(t, grid.MultiAdd, grid.Modifiers{Ctrl: true}.MultiMode())
	assert.Equal(t, grid.MultiRange, grid.Modifiers{Shift: true}.MultiMode())
	// Ctrl wins over shift.
	assert.Equal(t, grid.MultiAdd, grid.Modifiers{Ctrl: true, Shift: true}.MultiMode())
}

func TestClick(t *testing.T) {
	s := seed(t, []string{"a", "b", "c"})

	s.ClickRow(grid.Loc{T: 0, R: 0}, grid.Modifiers{})
	s.ClickRow(grid.Loc{T: 0, R: 2}, grid.Modifiers{Shift: true})
	require.Len(t, s.RowsSel(), 3)

	s.ClickTable(0, grid.Modifiers{Ctrl: true})
	assert.Equal(t, []int{0}, s.TablesSel())
	s.ClickTable(0, grid.Modifiers{Ctrl: true})
	assert.Empty(t, s.TablesSel())
}
