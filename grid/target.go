package grid

import "fmt"

// Which narrows a multi-element target set before the operation runs.
type Which int

const (
	WhichAll    Which = iota // no narrowing
	WhichTop                 // lowest index after sorting
	WhichBottom              // highest index after sorting
)

// String returns the token name used in logs and CLI flags.
func (w Which) String() string {
	switch w {
	case WhichAll:
		return "all"
	case WhichTop:
		return "top"
	case WhichBottom:
		return "bottom"
	default:
		return "invalid"
	}
}

// ParseWhich maps a token ("all", "top", "bottom") to its Which value.
func ParseWhich(s string) (Which, error) {
	for w := WhichAll; w <= WhichBottom; w++ {
		if w.String() == s {
			return w, nil
		}
	}
	return WhichAll, fmt.Errorf("%w: %q", ErrBadWhich, s)
}

// Place positions an operation relative to its target. The zero value is
// PlaceBelow.
type Place int

const (
	PlaceBelow         Place = iota // after the target row / bottom of the target table
	PlaceAbove                      // before the target row / top of the target table
	PlaceReplace                    // replace the target row / the table's full contents
	PlaceNewTableAbove              // insert a whole new table before the target table
	PlaceNewTableBelow              // insert a whole new table after the target table
)

// String returns the token name used in logs and CLI flags.
func (p Place) String() string {
	switch p {
	case PlaceBelow:
		return "below"
	case PlaceAbove:
		return "above"
	case PlaceReplace:
		return "replace"
	case PlaceNewTableAbove:
		return "newTableAbove"
	case PlaceNewTableBelow:
		return "newTableBelow"
	default:
		return "invalid"
	}
}

// ParsePlace maps a token ("below", "above", "replace", "newTableAbove",
// "newTableBelow") to its Place value.
func ParsePlace(s string) (Place, error) {
	for p := PlaceBelow; p <= PlaceNewTableBelow; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return PlaceBelow, fmt.Errorf("%w: %q", ErrBadPlace, s)
}

// tableLevel reports whether p inserts whole tables rather than rows.
func (p Place) tableLevel() bool {
	return p == PlaceNewTableAbove || p == PlaceNewTableBelow
}

type targetKind int

const (
	targetImplicit targetKind = iota
	targetTablesSel
	targetRowsSel
	targetTids
	targetLocs
)

// Target names the tables or rows an operation applies to. A call targets
// either tables or rows, never both; the variant is decided when the Target
// is built. The zero value synthesizes a single-table target from the
// operation's place: index 0 for the above places, the last table otherwise.
type Target struct {
	kind targetKind
	tids []int
	locs []Loc
}

// TargetTablesSel targets the current table selection.
func TargetTablesSel() Target { return Target{kind: targetTablesSel} }

// TargetRowsSel targets the current row selection.
func TargetRowsSel() Target { return Target{kind: targetRowsSel} }

// TargetTables targets explicit table indices. Every index must address an
// existing table or the whole call is rejected.
func TargetTables(tids ...int) Target { return Target{kind: targetTids, tids: tids} }

// TargetRows targets explicit row locations. Every location must address an
// existing row or the whole call is rejected.
func TargetRows(locs ...Loc) Target { return Target{kind: targetLocs, locs: locs} }
