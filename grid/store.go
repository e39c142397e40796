// Package grid provides an in-memory, generic two-dimensional dataset
// container: an ordered collection of tables, each an ordered sequence of
// opaque rows, with tracked selections over both tables and rows.
//
// Tables and rows carry stable identities that survive structural mutation,
// so selections can be reconciled after inserts and deletes shift indices.
// All structural change flows through a single operation, [Store.Rows];
// everything else layered on top is parameter defaulting.
package grid

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/tabula/internal/core/logging"
)

// Loc identifies a row by table index and row index.
type Loc struct {
	T int `json:"t"`
	R int `json:"r"`
}

// Less reports whether l orders before other, lexicographic on (T, R).
func (l Loc) Less(other Loc) bool {
	if l.T != other.T {
		return l.T < other.T
	}
	return l.R < other.R
}

// TableRef is a stable handle to a table. It keeps resolving to the same
// table as indices shift, and stops resolving once the table is deleted.
// The zero value resolves to nothing.
type TableRef struct{ id uint64 }

// Valid reports whether the ref was issued by a store.
func (r TableRef) Valid() bool { return r.id != 0 }

// RowRef is a stable handle to a row. Same resolution rules as [TableRef].
type RowRef struct{ id uint64 }

// Valid reports whether the ref was issued by a store.
func (r RowRef) Valid() bool { return r.id != 0 }

type rowNode[T any] struct {
	id  uint64
	val T
}

type tableNode[T any] struct {
	id   uint64
	rows []*rowNode[T]
}

// Store owns the table collection and both selection sets.
// It is not safe for concurrent use.
type Store[T any] struct {
	log    zerolog.Logger
	nextID uint64

	tables    []*tableNode[T]
	tablesSel []int
	rowsSel   []Loc

	clone        CloneFunc[T]
	cloneDefault bool
}

// Option configures a Store at construction.
type Option[T any] func(*Store[T])

// WithClone overrides the deep-clone primitive applied to inserted rows.
func WithClone[T any](fn CloneFunc[T]) Option[T] {
	return func(s *Store[T]) { s.clone = fn }
}

// WithCloneDefault sets whether Rows clones source rows when the call does
// not say either way. Defaults to true.
func WithCloneDefault[T any](enabled bool) Option[T] {
	return func(s *Store[T]) { s.cloneDefault = enabled }
}

// New creates an empty store.
func New[T any](opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		log:          logging.Component("grid"),
		clone:        DeepClone[T],
		cloneDefault: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store[T]) newID() uint64 {
	s.nextID++
	return s.nextID
}

// Len returns the number of tables.
func (s *Store[T]) Len() int { return len(s.tables) }

// TableLen returns the number of rows in table t, or 0 when t is out of
// range.
func (s *Store[T]) TableLen(t int) int {
	if t < 0 || t >= len(s.tables) {
		return 0
	}
	return len(s.tables[t].rows)
}

// TableRows returns a copy of the row values of table t. The copy is
// shallow; use the store's clone primitive if deeper isolation is needed.
func (s *Store[T]) TableRows(t int) []T {
	if t < 0 || t >= len(s.tables) {
		return nil
	}
	out := make([]T, len(s.tables[t].rows))
	for i, n := range s.tables[t].rows {
		out[i] = n.val
	}
	return out
}

// RowAt returns the row value at loc.
func (s *Store[T]) RowAt(loc Loc) (T, bool) {
	if !s.validLoc(loc) {
		var zero T
		return zero, false
	}
	return s.tables[loc.T].rows[loc.R].val, true
}

// HasTable reports whether t is a valid table index, returning its handle.
func (s *Store[T]) HasTable(t int) (TableRef, bool) {
	if t < 0 || t >= len(s.tables) {
		return TableRef{}, false
	}
	return TableRef{id: s.tables[t].id}, true
}

// HasRow reports whether loc addresses an existing row, returning its
// handle.
func (s *Store[T]) HasRow(loc Loc) (RowRef, bool) {
	if !s.validLoc(loc) {
		return RowRef{}, false
	}
	return RowRef{id: s.tables[loc.T].rows[loc.R].id}, true
}

// IndexOfTable resolves a table handle to its current index.
func (s *Store[T]) IndexOfTable(ref TableRef) (int, bool) {
	if ref.id == 0 {
		return 0, false
	}
	for i, tbl := range s.tables {
		if tbl.id == ref.id {
			return i, true
		}
	}
	return 0, false
}

// LocOfRow resolves a row handle to its current location. Tables are
// scanned in order and the first match wins.
func (s *Store[T]) LocOfRow(ref RowRef) (Loc, bool) {
	if ref.id == 0 {
		return Loc{}, false
	}
	for t, tbl := range s.tables {
		for r, n := range tbl.rows {
			if n.id == ref.id {
				return Loc{T: t, R: r}, true
			}
		}
	}
	return Loc{}, false
}

func (s *Store[T]) validLoc(loc Loc) bool {
	return loc.T >= 0 && loc.T < len(s.tables) &&
		loc.R >= 0 && loc.R < len(s.tables[loc.T].rows)
}
