// Package tui implements the interactive grid browser. It is a thin demo
// shell: every edit goes through the grid engine and the fetch cycle runs
// through the flow machine.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/tabula/flow"
	"github.com/colonyops/tabula/grid"
	"github.com/colonyops/tabula/internal/core/dataset"
	"github.com/colonyops/tabula/internal/core/logging"
	"github.com/colonyops/tabula/pkg/iojson"
)

// fetchMode simulates loading rows from a remote source through the flow
// machine: start, submit, apply, then the handler delivers rows.
const fetchMode = "fetch"

type (
	// flowMsg refreshes the status line after a machine transition.
	flowMsg struct{}
	// fetchedMsg carries rows delivered by a successful fetch cycle.
	fetchedMsg struct{ rows []dataset.Record }
	// fetchFailedMsg reports a failed fetch cycle.
	fetchFailedMsg struct{ reason string }
)

// lineTarget maps one rendered line back to what it shows.
type lineTarget struct {
	isTable bool
	table   int
	loc     grid.Loc
}

// Model is the bubbletea model for the grid browser.
type Model struct {
	log     zerolog.Logger
	store   *grid.Store[dataset.Record]
	machine *flow.Machine
	path    string

	layout  []lineTarget
	cursor  int
	scroll  int
	width   int
	height  int
	status  string
	fetches int

	// events bridges machine hooks (fired on the worker goroutine) back
	// into the bubbletea loop. Buffered so a hook never blocks.
	events chan tea.Msg
}

// New builds the browser around an already-loaded store. path is where the
// save key writes the dataset back to.
func New(store *grid.Store[dataset.Record], path string) *Model {
	m := &Model{
		log:    logging.Component("tui"),
		store:  store,
		path:   path,
		status: "ready",
		events: make(chan tea.Msg, 8),
	}

	m.machine = flow.New()
	m.machine.OnStateChanged(func(_, _ flow.State) { m.push(flowMsg{}) })
	m.machine.MustRegister(fetchMode, flow.ModeConfig{
		Applied: m.fetchRows,
		ApplySuccess: func(data any) {
			rows, _ := data.([]dataset.Record)
			m.push(fetchedMsg{rows: rows})
		},
		ApplyFail: func(data any) {
			m.push(fetchFailedMsg{reason: fmt.Sprint(data)})
		},
	})

	m.rebuildLayout()
	return m
}

// fetchRows is the fetch mode's applied handler. It fabricates a batch of
// rows after a short delay; the mutation itself happens back on the UI
// goroutine when fetchedMsg arrives.
func (m *Model) fetchRows(_ context.Context) (flow.Result, error) {
	time.Sleep(400 * time.Millisecond)
	batch := m.fetches + 1
	rows := []dataset.Record{
		{SKU: fmt.Sprintf("NET-%03d", batch), Name: fmt.Sprintf("Fetched batch %d", batch), Qty: batch * 10},
		{SKU: fmt.Sprintf("NET-%03d-B", batch), Name: "Fetched spare", Qty: batch},
	}
	return flow.Result{Success: true, Data: rows}, nil
}

func (m *Model) push(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
	}
}

func (m *Model) waitEvent() tea.Cmd {
	return func() tea.Msg { return <-m.events }
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitEvent()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureVisible()
		return m, nil

	case flowMsg:
		m.status = m.machine.Status()
		return m, m.waitEvent()

	case fetchedMsg:
		m.fetches++
		m.store.NewTable(msg.rows...)
		m.rebuildLayout()
		m.status = fmt.Sprintf("fetched %d rows into a new table", len(msg.rows))
		return m, m.waitEvent()

	case fetchFailedMsg:
		m.status = "fetch failed: " + msg.reason
		return m, m.waitEvent()

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleMouse routes a left-button press through the click adapter with
// the event's modifier state.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	line := msg.Y + m.scroll
	if line < 0 || line >= len(m.layout) {
		return
	}
	m.cursor = line
	mods := grid.Modifiers{Ctrl: msg.Ctrl, Shift: msg.Shift}
	if tgt := m.layout[line]; tgt.isTable {
		m.store.ClickTable(tgt.table, mods)
	} else {
		m.store.ClickRow(tgt.loc, mods)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.layout)-1 {
			m.cursor++
			m.ensureVisible()
		}

	case key.Matches(msg, keys.Select):
		m.selectUnderCursor(grid.MultiSingle)
	case key.Matches(msg, keys.Toggle):
		m.selectUnderCursor(grid.MultiAdd)
	case key.Matches(msg, keys.Range):
		m.selectUnderCursor(grid.MultiRange)

	case key.Matches(msg, keys.PickTable):
		if tgt, ok := m.current(); ok {
			m.store.SelectTable(tgt.table, grid.MultiSingle)
		}

	case key.Matches(msg, keys.AddRow):
		m.addRow()

	case key.Matches(msg, keys.NewTable):
		m.store.NewTable(dataset.Record{SKU: "NEW", Name: "New table row", Qty: 1})
		m.rebuildLayout()
		m.status = "table added"

	case key.Matches(msg, keys.Delete):
		if m.store.DelRows() {
			m.rebuildLayout()
			m.status = "selected rows deleted"
		} else {
			m.status = "no rows selected"
		}

	case key.Matches(msg, keys.DelTables):
		if m.store.DelTables() {
			m.rebuildLayout()
			m.status = "selected tables deleted"
		} else {
			m.status = "no tables selected"
		}

	case key.Matches(msg, keys.Fetch):
		if ok, err := m.machine.Start(fetchMode, flow.OptNone); err != nil {
			m.status = err.Error()
		} else if !ok {
			m.status = "machine busy: " + m.machine.Status()
		}

	case key.Matches(msg, keys.Submit):
		if ok, _ := m.machine.Submit(flow.OptNone); !ok {
			m.status = "nothing to submit"
		}

	case key.Matches(msg, keys.Apply):
		if ok, _ := m.machine.Apply(flow.OptNone); !ok {
			m.status = "nothing to apply"
		}

	case key.Matches(msg, keys.Cancel):
		m.cancelFlow()

	case key.Matches(msg, keys.Save):
		if err := iojson.Write(m.path, dataset.FromStore(m.store)); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.status = "saved " + m.path
		}
	}
	return m, nil
}

func (m *Model) cancelFlow() {
	switch m.machine.State() {
	case flow.StateStarting:
		_, _ = m.machine.Submit(flow.OptCancel)
	case flow.StateSubmitting:
		_, _ = m.machine.Apply(flow.OptCancel)
	default:
		m.status = "nothing to cancel"
	}
}

func (m *Model) selectUnderCursor(mode grid.MultiMode) {
	tgt, ok := m.current()
	if !ok {
		return
	}
	if tgt.isTable {
		m.store.SelectTable(tgt.table, mode)
	} else {
		m.store.SelectRow(tgt.loc, mode)
	}
}

func (m *Model) addRow() {
	tgt, ok := m.current()
	if !ok {
		return
	}
	rec := dataset.Record{SKU: "ADD", Name: "Inserted row", Qty: 1}
	if tgt.isTable {
		m.store.PushRow(tgt.table, rec)
	} else {
		m.store.AddRowBelow(tgt.loc, rec)
	}
	m.rebuildLayout()
	m.status = "row added"
}

func (m *Model) current() (lineTarget, bool) {
	if m.cursor < 0 || m.cursor >= len(m.layout) {
		return lineTarget{}, false
	}
	return m.layout[m.cursor], true
}

// rebuildLayout recomputes the line-to-target mapping after any structural
// change and clamps the cursor back into range.
func (m *Model) rebuildLayout() {
	m.layout = m.layout[:0]
	for t := 0; t < m.store.Len(); t++ {
		m.layout = append(m.layout, lineTarget{isTable: true, table: t})
		for r := 0; r < m.store.TableLen(t); r++ {
			m.layout = append(m.layout, lineTarget{loc: grid.Loc{T: t, R: r}})
		}
	}
	if m.cursor >= len(m.layout) {
		m.cursor = len(m.layout) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	visible := m.visibleLines()
	if visible <= 0 {
		return
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
}

func (m *Model) visibleLines() int {
	// Two lines reserved for status and help.
	return m.height - 2
}
