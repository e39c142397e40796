package grid

import (
	"errors"
	"fmt"
	"slices"
)

// Programmer errors returned by [Store.Rows]. Expected negative outcomes
// (empty targets, invalid selections, deleting from an empty table) are
// reported as a false result with a log line instead.
var (
	ErrBadWhich = errors.New("grid: invalid which")
	ErrBadPlace = errors.New("grid: invalid place")
)

// RowsOptions configures a [Store.Rows] call. The zero value appends below
// the last table.
type RowsOptions struct {
	// Target names the tables or rows to operate on. Zero value: implicit
	// single-table target derived from Place.
	Target Target
	// Which narrows a multi-element target to its top or bottom entry.
	Which Which
	// Place positions the operation relative to each target.
	Place Place
	// ChangeSel makes the post-operation selection the newly affected
	// items. When false the pre-operation selection is reconciled back by
	// identity instead.
	ChangeSel bool
	// UseClone overrides the store's clone default for this call.
	UseClone *bool
}

// Rows is the single entry point for all structural change: insert, replace,
// and delete of rows or whole tables.
//
// src carries the rows to insert. A nil src is the deletion signal. An empty
// non-nil src is not: against a table target it inserts an empty row set (or
// an empty table), while against a row location it deletes the row, same as
// nil. Validation completes before any mutation, so a failed call never
// leaves the store partially changed.
func (s *Store[T]) Rows(src []T, opts RowsOptions) (bool, error) {
	if opts.Which < WhichAll || opts.Which > WhichBottom {
		return false, fmt.Errorf("%w: %d", ErrBadWhich, int(opts.Which))
	}
	if opts.Place < PlaceBelow || opts.Place > PlaceNewTableBelow {
		return false, fmt.Errorf("%w: %d", ErrBadPlace, int(opts.Place))
	}

	tids, locs, ok := s.resolveTarget(opts.Target, opts.Place)
	if !ok {
		return false, nil
	}
	tids, locs = narrow(tids, locs, opts.Which)
	if len(tids) == 0 && len(locs) == 0 {
		s.log.Debug().Str("place", opts.Place.String()).Msg("rows: empty target, nothing to do")
		return false, nil
	}
	if !s.precheck(src, tids, locs, opts.Place) {
		return false, nil
	}

	// Snapshot the current selection by identity before indices shift.
	oldTables := s.TablesSelRefs()
	oldRows := s.RowsSelRefs()

	useClone := s.cloneDefault
	if opts.UseClone != nil {
		useClone = *opts.UseClone
	}

	if len(tids) > 0 {
		touched, added := s.applyTables(src, tids, opts.Place, useClone)
		if opts.ChangeSel {
			s.tablesSel = s.indicesOfTables(touched)
			s.rowsSel = s.locsOfRows(added)
		} else {
			s.reconcileSel(oldTables, oldRows)
		}
	} else {
		added := s.applyLocs(src, locs, opts.Place, useClone)
		// Row edits never change which tables are selected.
		if opts.ChangeSel {
			s.tablesSel = s.indicesOfTableRefs(oldTables)
			s.rowsSel = s.locsOfRows(added)
		} else {
			s.reconcileSel(oldTables, oldRows)
		}
	}
	return true, nil
}

// resolveTarget turns the tagged target into a concrete index list. Exactly
// one of tids/locs is populated.
func (s *Store[T]) resolveTarget(tgt Target, place Place) (tids []int, locs []Loc, ok bool) {
	switch tgt.kind {
	case targetTablesSel:
		return slices.Clone(s.tablesSel), nil, true
	case targetRowsSel:
		return nil, slices.Clone(s.rowsSel), true
	case targetTids:
		for _, t := range tgt.tids {
			if t < 0 || t >= len(s.tables) {
				s.log.Warn().Int("table", t).Msg("rows: explicit table target out of range")
				return nil, nil, false
			}
		}
		return dedupe(tgt.tids), nil, true
	case targetLocs:
		for _, loc := range tgt.locs {
			if !s.validLoc(loc) {
				s.log.Warn().Int("table", loc.T).Int("row", loc.R).Msg("rows: explicit row target out of range")
				return nil, nil, false
			}
		}
		return nil, dedupe(tgt.locs), true
	default:
		if len(s.tables) == 0 {
			// The boundary index lets the first table be created.
			if place.tableLevel() {
				return []int{0}, nil, true
			}
			return nil, nil, true
		}
		if place == PlaceAbove || place == PlaceNewTableAbove {
			return []int{0}, nil, true
		}
		return []int{len(s.tables) - 1}, nil, true
	}
}

// dedupe copies list without repeated entries, keeping first occurrence.
// An explicit target may name the same table or row more than once; the
// operation applies to each target once.
func dedupe[E comparable](list []E) []E {
	out := make([]E, 0, len(list))
	for _, v := range list {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// narrow applies the Which narrowing to whichever target list is populated.
func narrow(tids []int, locs []Loc, w Which) ([]int, []Loc) {
	if w == WhichAll {
		return tids, locs
	}
	if len(tids) > 1 {
		slices.Sort(tids)
		if w == WhichTop {
			tids = tids[:1]
		} else {
			tids = tids[len(tids)-1:]
		}
	}
	if len(locs) > 1 {
		slices.SortFunc(locs, cmpLoc)
		if w == WhichTop {
			locs = locs[:1]
		} else {
			locs = locs[len(locs)-1:]
		}
	}
	return tids, locs
}

// precheck rejects calls that could not complete without leaving the store
// partially mutated.
func (s *Store[T]) precheck(src []T, tids []int, locs []Loc, place Place) bool {
	if len(locs) > 0 && place.tableLevel() {
		s.log.Warn().Str("place", place.String()).Msg("rows: table-level place with a row target")
		return false
	}
	if src != nil || len(tids) == 0 {
		return true
	}
	// Table-level deletion request.
	switch place {
	case PlaceNewTableAbove, PlaceNewTableBelow:
		s.log.Warn().Str("place", place.String()).Msg("rows: nil source with a new-table place")
		return false
	case PlaceAbove, PlaceBelow:
		for _, t := range tids {
			if t >= len(s.tables) || len(s.tables[t].rows) == 0 {
				s.log.Warn().Int("table", t).Msg("rows: cannot delete a row from an empty table")
				return false
			}
		}
	}
	return true
}

// applyTables runs the table-indexed branch. Targets are processed in
// descending index order so earlier edits cannot invalidate later targets.
// It returns the ids of the tables touched (or created) and of the rows
// inserted, both for selection reconciliation.
func (s *Store[T]) applyTables(src []T, tids []int, place Place, useClone bool) (touched, added []uint64) {
	tids = slices.Clone(tids)
	slices.Sort(tids)
	slices.Reverse(tids)

	for _, t := range tids {
		switch {
		case src == nil:
			switch place {
			case PlaceReplace:
				s.tables = slices.Delete(s.tables, t, t+1)
			case PlaceAbove:
				tbl := s.tables[t]
				tbl.rows = slices.Delete(tbl.rows, 0, 1)
				touched = append(touched, tbl.id)
			case PlaceBelow:
				tbl := s.tables[t]
				tbl.rows = tbl.rows[:len(tbl.rows)-1]
				touched = append(touched, tbl.id)
			}
		case place.tableLevel():
			nodes := s.buildNodes(src, useClone)
			nt := &tableNode[T]{id: s.newID(), rows: nodes}
			at := t
			if place == PlaceNewTableBelow {
				at = t + 1
			}
			at = min(at, len(s.tables))
			s.tables = slices.Insert(s.tables, at, nt)
			touched = append(touched, nt.id)
			added = append(added, nodeIDs(nodes)...)
		default:
			nodes := s.buildNodes(src, useClone)
			tbl := s.tables[t]
			switch place {
			case PlaceAbove:
				tbl.rows = append(nodes, tbl.rows...)
			case PlaceReplace:
				tbl.rows = nodes
			case PlaceBelow:
				tbl.rows = append(tbl.rows, nodes...)
			}
			touched = append(touched, tbl.id)
			added = append(added, nodeIDs(nodes)...)
		}
	}
	return touched, added
}

// applyLocs runs the location-indexed branch, descending on (t, r). A nil
// or empty src deletes the row at each target.
func (s *Store[T]) applyLocs(src []T, locs []Loc, place Place, useClone bool) (added []uint64) {
	locs = slices.Clone(locs)
	slices.SortFunc(locs, cmpLoc)
	slices.Reverse(locs)

	for _, loc := range locs {
		tbl := s.tables[loc.T]
		if len(src) == 0 {
			tbl.rows = slices.Delete(tbl.rows, loc.R, loc.R+1)
			continue
		}
		nodes := s.buildNodes(src, useClone)
		switch place {
		case PlaceAbove:
			tbl.rows = slices.Insert(tbl.rows, loc.R, nodes...)
		case PlaceReplace:
			tbl.rows = slices.Delete(tbl.rows, loc.R, loc.R+1)
			tbl.rows = slices.Insert(tbl.rows, loc.R, nodes...)
		case PlaceBelow:
			tbl.rows = slices.Insert(tbl.rows, loc.R+1, nodes...)
		}
		added = append(added, nodeIDs(nodes)...)
	}
	return added
}

// buildNodes wraps source rows in identity-carrying nodes, cloning each
// payload when asked. Each call produces fresh nodes, so repeated targets
// never share storage.
func (s *Store[T]) buildNodes(src []T, useClone bool) []*rowNode[T] {
	nodes := make([]*rowNode[T], len(src))
	for i, v := range src {
		if useClone {
			v = s.clone(v)
		}
		nodes[i] = &rowNode[T]{id: s.newID(), val: v}
	}
	return nodes
}

func nodeIDs[T any](nodes []*rowNode[T]) []uint64 {
	ids := make([]uint64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.id
	}
	return ids
}

// reconcileSel recomputes both selection sets from pre-mutation handles,
// dropping anything that no longer resolves.
func (s *Store[T]) reconcileSel(oldTables []TableRef, oldRows []RowRef) {
	s.tablesSel = s.indicesOfTableRefs(oldTables)
	rows := make([]Loc, 0, len(oldRows))
	for _, ref := range oldRows {
		if loc, ok := s.LocOfRow(ref); ok {
			rows = append(rows, loc)
		}
	}
	s.rowsSel = rows
}

func (s *Store[T]) indicesOfTableRefs(refs []TableRef) []int {
	out := make([]int, 0, len(refs))
	for _, ref := range refs {
		if t, ok := s.IndexOfTable(ref); ok {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store[T]) indicesOfTables(ids []uint64) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if t, ok := s.IndexOfTable(TableRef{id: id}); ok && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store[T]) locsOfRows(ids []uint64) []Loc {
	out := make([]Loc, 0, len(ids))
	for _, id := range ids {
		if loc, ok := s.LocOfRow(RowRef{id: id}); ok {
			out = append(out, loc)
		}
	}
	return out
}
