package tui

import (
	"fmt"
	"strings"

	"github.com/colonyops/tabula/internal/core/styles"
)

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]string, 0, len(m.layout))
	for i, tgt := range m.layout {
		lines = append(lines, m.renderLine(i, tgt))
	}
	if len(lines) == 0 {
		lines = append(lines, styles.TextMuted.Render("empty dataset - T adds a table"))
	}

	visible := m.visibleLines()
	if visible > 0 && len(lines) > visible {
		end := min(m.scroll+visible, len(lines))
		lines = lines[m.scroll:end]
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(styles.TextMuted.Render(helpLine()))
	return b.String()
}

func (m *Model) renderLine(i int, tgt lineTarget) string {
	cursor := " "
	if i == m.cursor {
		cursor = ">"
	}

	if tgt.isTable {
		mark := " "
		if m.store.IsSelectedTable(tgt.table) {
			mark = "*"
		}
		head := fmt.Sprintf("%s%s table %d (%d rows)", cursor, mark, tgt.table, m.store.TableLen(tgt.table))
		return styles.TableHeader.Render(head)
	}

	mark := " "
	if m.store.IsSelectedRow(tgt.loc) {
		mark = "*"
	}
	val, _ := m.store.RowAt(tgt.loc)
	line := fmt.Sprintf("%s%s   %s", cursor, mark, val)
	switch {
	case i == m.cursor:
		return styles.RowCursor.Render(line)
	case mark == "*":
		return styles.RowSelected.Render(line)
	default:
		return line
	}
}

func (m *Model) renderStatus() string {
	machine := m.machine.Status()
	style := styles.StatusBar
	if !m.machine.IsNormal() {
		style = styles.StatusActive
	}
	sel := fmt.Sprintf("sel: %d tables, %d rows", len(m.store.TablesSel()), len(m.store.RowsSel()))
	return style.Render(fmt.Sprintf("[%s] %s | %s", machine, m.status, sel))
}
