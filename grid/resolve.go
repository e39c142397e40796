package grid

import "slices"

// MultiMode selects how a new pick combines with the existing selection.
// The mapping from input device events to modes lives with the caller; see
// [Modifiers] for the conventional pointer mapping.
type MultiMode int

const (
	// MultiSingle replaces the selection with the pick, or clears it when
	// the pick was already the sole selected item.
	MultiSingle MultiMode = iota
	// MultiAdd toggles the pick's membership.
	MultiAdd
	// MultiRange extends from a single anchor to the pick over the
	// contiguous index range between them.
	MultiRange
)

// SelectTable combines table index t into the current table selection under
// mode. Out-of-range indices are ignored.
func (s *Store[T]) SelectTable(t int, mode MultiMode) {
	if t < 0 || t >= len(s.tables) {
		s.log.Warn().Int("table", t).Msg("select: table out of range")
		return
	}
	s.tablesSel = resolveSel(t, s.tablesSel, spanTids, mode)
}

// SelectRow combines loc into the current row selection under mode.
// Locations that do not address an existing row are ignored.
func (s *Store[T]) SelectRow(loc Loc, mode MultiMode) {
	if !s.validLoc(loc) {
		s.log.Warn().Int("table", loc.T).Int("row", loc.R).Msg("select: row out of range")
		return
	}
	s.rowsSel = resolveSel(loc, s.rowsSel, spanLocs, mode)
}

// resolveSel computes the next selection for one pick. span materializes the
// contiguous range between an anchor and the pick, reporting false when the
// two cannot form a range (rows in different tables).
//
// Range picks only extend from a single anchor: with zero items selected the
// pick is taken alone, and with two or more the selection collapses to the
// pick, matching the single-pick rules.
func resolveSel[E comparable](pick E, sel []E, span func(a, b E) ([]E, bool), mode MultiMode) []E {
	switch mode {
	case MultiAdd:
		if i := slices.Index(sel, pick); i >= 0 {
			return slices.Delete(sel, i, i+1)
		}
		return append(sel, pick)
	case MultiRange:
		if len(sel) == 1 && sel[0] != pick {
			if r, ok := span(sel[0], pick); ok {
				return r
			}
			return []E{pick}
		}
		fallthrough
	default:
		if len(sel) == 1 && sel[0] == pick {
			return sel[:0]
		}
		return []E{pick}
	}
}

func spanTids(a, b int) ([]int, bool) {
	lo, hi := min(a, b), max(a, b)
	out := make([]int, 0, hi-lo+1)
	for t := lo; t <= hi; t++ {
		out = append(out, t)
	}
	return out, true
}

func spanLocs(a, b Loc) ([]Loc, bool) {
	if a.T != b.T {
		return nil, false
	}
	lo, hi := min(a.R, b.R), max(a.R, b.R)
	out := make([]Loc, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, Loc{T: a.T, R: r})
	}
	return out, true
}
