package grid

// Modifiers carries the pointer-device modifier state for a click. The
// package stays input-device-agnostic: callers translate their event type
// (terminal mouse event, DOM event, test fixture) into this pair.
type Modifiers struct {
	Ctrl  bool // ctrl, or cmd on macOS
	Shift bool
}

// MultiMode maps modifier state to a selection mode following list/grid
// conventions: ctrl-click toggles, shift-click range-extends, a plain click
// single-selects. Ctrl wins when both are held.
func (m Modifiers) MultiMode() MultiMode {
	switch {
	case m.Ctrl:
		return MultiAdd
	case m.Shift:
		return MultiRange
	default:
		return MultiSingle
	}
}

// ClickTable applies a click on table index t to the table selection.
func (s *Store[T]) ClickTable(t int, mods Modifiers) {
	s.SelectTable(t, mods.MultiMode())
}

// ClickRow applies a click on loc to the row selection.
func (s *Store[T]) ClickRow(loc Loc, mods Modifiers) {
	s.SelectRow(loc, mods.MultiMode())
}
