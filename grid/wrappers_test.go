package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tabula/grid"
)

func TestTableWrappers(t *testing.T) {
	s := grid.New[string]()

	require.True(t, s.NewTable("a"))
	assert.Equal(t, []int{0}, s.TablesSel(), "NewTable selects the new table")

	require.True(t, s.PushTable("b"))
	assert.Equal(t, []int{0}, s.TablesSel(), "PushTable leaves the selection alone")

	require.True(t, s.AddTableAbove(0, "top"))
	require.True(t, s.AddTableBelow(2, "bottom"))
	assert.Equal(t, [][]string{{"top"}, {"a"}, {"b"}, {"bottom"}}, snapshot(s))

	require.True(t, s.SetTable(1, "a1", "a2"))
	assert.Equal(t, []string{"a1", "a2"}, s.TableRows(1))

	require.True(t, s.ShiftTable())
	assert.Equal(t, [][]string{{"a1", "a2"}, {"b"}, {"bottom"}}, snapshot(s))

	require.True(t, s.DelTable(2))
	assert.Equal(t, 2, s.Len())
}

func TestTableWrappers_Selection(t *testing.T) {
	s := seed(t, []string{"a"}, []string{"b"}, []string{"c"})
	s.SelectTable(0, grid.MultiAdd)
	s.SelectTable(2, grid.MultiAdd)

	require.True(t, s.SetTables("x"))
	assert.Equal(t, [][]string{{"x"}, {"b"}, {"x"}}, snapshot(s))

	require.True(t, s.DelTables())
	assert.Equal(t, [][]string{{"b"}}, snapshot(s))
	assert.Empty(t, s.TablesSel())

	// With nothing selected there is nothing to delete.
	assert.False(t, s.DelTables())

	// Explicit indices bypass the selection.
	assert.True(t, s.DelTables(0))
	assert.Equal(t, 0, s.Len())
}

func TestRowWrappers(t *testing.T) {
	s := seed(t, []string{"b"})

	require.True(t, s.UnshiftRow(0, "a"))
	require.True(t, s.PushRow(0, "c", "d"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, s.TableRows(0))

	require.True(t, s.AddRowAbove(grid.Loc{T: 0, R: 1}, "a2"))
	assert.Equal(t, []string{"a", "a2", "b", "c", "d"}, s.TableRows(0))

	require.True(t, s.AddRowBelow(grid.Loc{T: 0, R: 0}, "a1"))
	assert.Equal(t, []string{"a", "a1", "a2", "b", "c", "d"}, s.TableRows(0))

	require.True(t, s.SetRow(grid.Loc{T: 0, R: 0}, "A"))
	assert.Equal(t, "A", s.TableRows(0)[0])
	assert.False(t, s.SetRow(grid.Loc{T: 0, R: 0}), "SetRow needs at least one row")

	require.True(t, s.DelRow(grid.Loc{T: 0, R: 1}))
	assert.Equal(t, []string{"A", "a2", "b", "c", "d"}, s.TableRows(0))

	require.True(t, s.PopRow(0))
	require.True(t, s.ShiftRow(0))
	assert.Equal(t, []string{"a2", "b", "c"}, s.TableRows(0))
}

func TestNewRow_SelectsInsertion(t *testing.T) {
	s := seed(t, []string{"a", "b"})

	require.True(t, s.NewRow(grid.Loc{T: 0, R: 0}, "x"))
	assert.Equal(t, []string{"a", "x", "b"}, s.TableRows(0))
	assert.Equal(t, []grid.Loc{{T: 0, R: 1}}, s.RowsSel())
}

func TestDelRows(t *testing.T) {
	s := seed(t, []string{"a", "b", "c"})

	require.True(t, s.DelRows(grid.Loc{T: 0, R: 0}, grid.Loc{T: 0, R: 2}))
	assert.Equal(t, []string{"b"}, s.TableRows(0))

	s.SelectRow(grid.Loc{T: 0, R: 0}, grid.MultiSingle)
	require.True(t, s.DelRows())
	assert.Equal(t, 0, s.TableLen(0))
	assert.Empty(t, s.RowsSel())
}

func TestRowDeleteWrappers_EmptyTable(t *testing.T) {
	s := grid.New[string]()
	require.True(t, s.PushTable())
	require.Equal(t, 1, s.Len())

	assert.False(t, s.PopRow(0))
	assert.False(t, s.ShiftRow(0))
	assert.True(t, s.ShiftTable(), "table delete still works on an empty table")
}
