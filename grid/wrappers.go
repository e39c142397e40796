package grid

// Convenience wrappers over [Store.Rows]. Each one only pre-fills options;
// none carries logic of its own. The enum arguments are valid by
// construction, so the error return of Rows is discarded.

// notNil keeps a variadic zero-argument call from turning into the nil
// deletion signal.
func notNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

// NewTable appends a new table holding rows at the end of the collection.
func (s *Store[T]) NewTable(rows ...T) bool {
	ok, _ := s.Rows(notNil(rows), RowsOptions{Place: PlaceNewTableBelow, ChangeSel: true})
	return ok
}

// PushTable is [Store.NewTable] without moving the selection.
func (s *Store[T]) PushTable(rows ...T) bool {
	ok, _ := s.Rows(notNil(rows), RowsOptions{Place: PlaceNewTableBelow})
	return ok
}

// AddTableAbove inserts a new table immediately before table t.
func (s *Store[T]) AddTableAbove(t int, rows ...T) bool {
	ok, _ := s.Rows(notNil(rows), RowsOptions{Target: TargetTables(t), Place: PlaceNewTableAbove})
	return ok
}

// AddTableBelow inserts a new table immediately after table t.
func (s *Store[T]) AddTableBelow(t int, rows ...T) bool {
	ok, _ := s.Rows(notNil(rows), RowsOptions{Target: TargetTables(t), Place: PlaceNewTableBelow})
	return ok
}

// ShiftTable deletes the first table.
func (s *Store[T]) ShiftTable() bool {
	if len(s.tables) == 0 {
		return false
	}
	ok, _ := s.Rows(nil, RowsOptions{Target: TargetTables(0), Place: PlaceReplace})
	return ok
}

// SetTable replaces the full contents of table t.
func (s *Store[T]) SetTable(t int, rows ...T) bool {
	ok, _ := s.Rows(notNil(rows), RowsOptions{Target: TargetTables(t), Place: PlaceReplace})
	return ok
}

// SetTables replaces the full contents of every selected table.
func (s *Store[T]) SetTables(rows ...T) bool {
	ok, _ := s.Rows(notNil(rows), RowsOptions{Target: TargetTablesSel(), Place: PlaceReplace})
	return ok
}

// DelTable deletes table t.
func (s *Store[T]) DelTable(t int) bool {
	ok, _ := s.Rows(nil, RowsOptions{Target: TargetTables(t), Place: PlaceReplace})
	return ok
}

// DelTables deletes the given tables, or the selected ones when none are
// given.
func (s *Store[T]) DelTables(tids ...int) bool {
	tgt := TargetTablesSel()
	if len(tids) > 0 {
		tgt = TargetTables(tids...)
	}
	ok, _ := s.Rows(nil, RowsOptions{Target: tgt, Place: PlaceReplace})
	return ok
}

// NewRow inserts row below loc and selects it.
func (s *Store[T]) NewRow(loc Loc, row T) bool {
	ok, _ := s.Rows([]T{row}, RowsOptions{Target: TargetRows(loc), ChangeSel: true})
	return ok
}

// AddRowAbove inserts rows before loc.
func (s *Store[T]) AddRowAbove(loc Loc, rows ...T) bool {
	ok, _ := s.Rows(notNil(rows), RowsOptions{Target: TargetRows(loc), Place: PlaceAbove})
	return ok
}

// AddRowBelow inserts rows after loc.
func (s *Store[T]) AddRowBelow(loc Loc, rows ...T) bool {
	ok, _ := s.Rows(notNil(rows), RowsOptions{Target: TargetRows(loc)})
	return ok
}

// PushRow appends rows at the bottom of table t.
func (s *Store[T]) PushRow(t int, rows ...T) bool {
	ok, _ := s.Rows(notNil(rows), RowsOptions{Target: TargetTables(t), Place: PlaceBelow})
	return ok
}

// UnshiftRow prepends rows at the top of table t.
func (s *Store[T]) UnshiftRow(t int, rows ...T) bool {
	ok, _ := s.Rows(notNil(rows), RowsOptions{Target: TargetTables(t), Place: PlaceAbove})
	return ok
}

// SetRow replaces the single row at loc with rows.
func (s *Store[T]) SetRow(loc Loc, rows ...T) bool {
	if len(rows) == 0 {
		return false
	}
	ok, _ := s.Rows(rows, RowsOptions{Target: TargetRows(loc), Place: PlaceReplace})
	return ok
}

// DelRow deletes the row at loc.
func (s *Store[T]) DelRow(loc Loc) bool {
	ok, _ := s.Rows(nil, RowsOptions{Target: TargetRows(loc), Place: PlaceReplace})
	return ok
}

// DelRows deletes the given rows, or the selected ones when none are given.
func (s *Store[T]) DelRows(locs ...Loc) bool {
	tgt := TargetRowsSel()
	if len(locs) > 0 {
		tgt = TargetRows(locs...)
	}
	ok, _ := s.Rows(nil, RowsOptions{Target: tgt, Place: PlaceReplace})
	return ok
}

// PopRow deletes the last row of table t.
func (s *Store[T]) PopRow(t int) bool {
	ok, _ := s.Rows(nil, RowsOptions{Target: TargetTables(t), Place: PlaceBelow})
	return ok
}

// ShiftRow deletes the first row of table t.
func (s *Store[T]) ShiftRow(t int) bool {
	ok, _ := s.Rows(nil, RowsOptions{Target: TargetTables(t), Place: PlaceAbove})
	return ok
}
