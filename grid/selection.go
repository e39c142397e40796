package grid

import (
	"slices"
)

// SortDir controls the in-place sort order of a selection set.
type SortDir int

const (
	Forward SortDir = iota // ascending
	Reverse                // descending
)

// TablesSel returns a copy of the selected table indices.
func (s *Store[T]) TablesSel() []int {
	return slices.Clone(s.tablesSel)
}

// RowsSel returns a copy of the selected row locations.
func (s *Store[T]) RowsSel() []Loc {
	return slices.Clone(s.rowsSel)
}

// TablesSelRefs materializes the table selection as stable handles.
// Stale indices that no longer address a table are skipped.
func (s *Store[T]) TablesSelRefs() []TableRef {
	refs := make([]TableRef, 0, len(s.tablesSel))
	for _, t := range s.tablesSel {
		if ref, ok := s.HasTable(t); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// RowsSelRefs materializes the row selection as stable handles.
func (s *Store[T]) RowsSelRefs() []RowRef {
	refs := make([]RowRef, 0, len(s.rowsSel))
	for _, loc := range s.rowsSel {
		if ref, ok := s.HasRow(loc); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// IsSelectedTable reports whether table index t is selected.
func (s *Store[T]) IsSelectedTable(t int) bool {
	return slices.Contains(s.tablesSel, t)
}

// IsSelectedRow reports whether loc is selected.
func (s *Store[T]) IsSelectedRow(loc Loc) bool {
	return slices.Contains(s.rowsSel, loc)
}

// IsSelectedTableRef reports whether the table behind ref is selected.
func (s *Store[T]) IsSelectedTableRef(ref TableRef) bool {
	t, ok := s.IndexOfTable(ref)
	return ok && s.IsSelectedTable(t)
}

// IsSelectedRowRef reports whether the row behind ref is selected.
func (s *Store[T]) IsSelectedRowRef(ref RowRef) bool {
	loc, ok := s.LocOfRow(ref)
	return ok && s.IsSelectedRow(loc)
}

// SortTablesSel sorts the table selection in place.
func (s *Store[T]) SortTablesSel(dir SortDir) {
	slices.Sort(s.tablesSel)
	if dir == Reverse {
		slices.Reverse(s.tablesSel)
	}
}

// SortRowsSel sorts the row selection in place, lexicographic on (T, R).
func (s *Store[T]) SortRowsSel(dir SortDir) {
	slices.SortFunc(s.rowsSel, cmpLoc)
	if dir == Reverse {
		slices.Reverse(s.rowsSel)
	}
}

// ClearSel empties both selection sets.
func (s *Store[T]) ClearSel() {
	s.tablesSel = s.tablesSel[:0]
	s.rowsSel = s.rowsSel[:0]
}

// FirstTable returns the handle of the first table.
func (s *Store[T]) FirstTable() (TableRef, bool) {
	return s.HasTable(0)
}

// SoleTableSel returns the selected table index when exactly one table is
// selected. Many callers operate single-table, single-selection and should
// not have to handle the general case.
func (s *Store[T]) SoleTableSel() (int, bool) {
	if len(s.tablesSel) != 1 {
		return 0, false
	}
	return s.tablesSel[0], true
}

// SoleTableSelRef is [Store.SoleTableSel] as a stable handle.
func (s *Store[T]) SoleTableSelRef() (TableRef, bool) {
	t, ok := s.SoleTableSel()
	if !ok {
		return TableRef{}, false
	}
	return s.HasTable(t)
}

// SoleRowSel returns the selected location when exactly one row is
// selected.
func (s *Store[T]) SoleRowSel() (Loc, bool) {
	if len(s.rowsSel) != 1 {
		return Loc{}, false
	}
	return s.rowsSel[0], true
}

// SoleRowSelRef is [Store.SoleRowSel] as a stable handle.
func (s *Store[T]) SoleRowSelRef() (RowRef, bool) {
	loc, ok := s.SoleRowSel()
	if !ok {
		return RowRef{}, false
	}
	return s.HasRow(loc)
}

func cmpLoc(a, b Loc) int {
	if a.T != b.T {
		return a.T - b.T
	}
	return a.R - b.R
}
