package flow

// observers holds the machine-wide hook lists. On every change the
// machine-wide observers fire first, then the active mode's own hook.
type observers struct {
	modeChanged  []func(old, next string)
	stateChanged []func(old, next State)
}

// OnModeChanged registers a machine-wide observer fired on every mode
// change. Observers cannot be removed.
func (m *Machine) OnModeChanged(fn func(old, next string)) {
	m.mu.Lock()
	m.observers.modeChanged = append(m.observers.modeChanged, fn)
	m.mu.Unlock()
}

// OnStateChanged registers a machine-wide observer fired on every state
// change.
func (m *Machine) OnStateChanged(fn func(old, next State)) {
	m.mu.Lock()
	m.observers.stateChanged = append(m.observers.stateChanged, fn)
	m.mu.Unlock()
}

// setState transitions to next, recording one level of history and firing
// state hooks. Called with the lock held.
func (m *Machine) setState(next State) {
	old := m.state
	m.prev = old
	m.state = next
	m.log.Debug().Str("from", old.String()).Str("to", next.String()).Msg("state change")

	cfg := m.modes[m.mode]
	for _, fn := range m.observers.stateChanged {
		m.fire(func() { fn(old, next) })
	}
	if cfg.StateChanged != nil {
		m.fire(func() { cfg.StateChanged(old, next) })
	}
}

// setMode switches the active mode and fires mode hooks. The incoming
// mode's own hook is the per-mode layer. Called with the lock held.
func (m *Machine) setMode(next string) {
	old := m.mode
	if old == next {
		return
	}
	m.mode = next
	m.log.Debug().Str("from", old).Str("to", next).Msg("mode change")

	cfg := m.modes[next]
	for _, fn := range m.observers.modeChanged {
		m.fire(func() { fn(old, next) })
	}
	if cfg.ModeChanged != nil {
		m.fire(func() { cfg.ModeChanged(old, next) })
	}
}

// fire runs one hook, logging and swallowing a panic so a misbehaving
// observer cannot abort a transition partway.
func (m *Machine) fire(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Interface("panic", r).Msg("hook panicked")
		}
	}()
	fn()
}
