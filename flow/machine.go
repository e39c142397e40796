package flow

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/tabula/internal/core/logging"
)

// IdleMode is the reserved mode a machine rests in between apply cycles.
// It is registered automatically with an empty configuration.
const IdleMode = "idle"

// Programmer errors. Guard rejections (calling a transition from the wrong
// state) are reported as a false result with a log line instead.
var (
	ErrModeName    = errors.New("flow: invalid mode name")
	ErrModeDup     = errors.New("flow: mode already registered")
	ErrModeUnknown = errors.New("flow: unregistered mode")
	ErrBadOption   = errors.New("flow: invalid option")
)

var modeNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Result is what an applied handler reports back.
type Result struct {
	Success bool
	Data    any
}

// AppliedFunc is a mode's asynchronous unit of work. It runs on its own
// goroutine; the machine resumes when it returns.
type AppliedFunc func(ctx context.Context) (Result, error)

// ModeConfig bundles the optional callbacks of a registered mode. All
// fields may be nil.
type ModeConfig struct {
	// Applied is the unit of work run when the machine enters
	// StateApplying. When nil the cycle completes immediately as a no-op.
	Applied AppliedFunc
	// ApplySuccess receives the handler's payload after a successful run.
	ApplySuccess func(data any)
	// ApplyFail receives the payload of a failed run, or the error when
	// the handler returned one.
	ApplyFail func(data any)
	// ModeChanged and StateChanged are this mode's own hooks, fired after
	// the machine-wide observers.
	ModeChanged  func(old, next string)
	StateChanged func(old, next State)
}

// Option is a transition option token.
type Option string

const (
	OptNone      Option = ""          // take the default next state
	OptSubmitted Option = "submitted" // start shortcut: skip Starting
	OptApplied   Option = "applied"   // shortcut: go straight to Applying
	OptCancel    Option = "cancel"    // roll back instead of advancing
)

// Machine gates one asynchronous apply operation through named modes.
//
// A cancel rolls back only the machine's position. An in-flight handler is
// not stopped, and its completion still advances the machine when it lands.
// Hooks run synchronously during a transition and must not call back into
// the machine.
type Machine struct {
	mu  sync.Mutex
	log zerolog.Logger

	modes map[string]ModeConfig
	mode  string
	state State
	prev  State // one level of history for cancel and failure rollback

	observers observers
}

// New creates a machine resting in StateNormal with the idle mode active.
func New() *Machine {
	return &Machine{
		log:   logging.Component("flow"),
		modes: map[string]ModeConfig{IdleMode: {}},
		mode:  IdleMode,
		state: StateNormal,
	}
}

// Register adds a mode. Names are restricted to letters, digits, and
// underscore; registering a name twice is an error. Modes live for the
// machine's lifetime.
func (m *Machine) Register(name string, cfg ModeConfig) error {
	if !modeNameRe.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrModeName, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.modes[name]; ok {
		return fmt.Errorf("%w: %q", ErrModeDup, name)
	}
	m.modes[name] = cfg
	return nil
}

// MustRegister is Register, panicking on error. Intended for setup code.
func (m *Machine) MustRegister(name string, cfg ModeConfig) {
	if err := m.Register(name, cfg); err != nil {
		panic(err)
	}
}

// Mode returns the active mode name.
func (m *Machine) Mode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// State returns the current lifecycle state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Status returns "mode/state" for diagnostics.
func (m *Machine) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode + "/" + m.state.String()
}

// IsNormal reports whether the machine is idle and ready to start.
func (m *Machine) IsNormal() bool {
	return m.State() == StateNormal
}

// Start begins an apply cycle in the named mode. It requires StateNormal;
// a busy machine rejects the call with a false result. OptSubmitted and
// OptApplied skip ahead in the cycle; OptApplied begins processing at once.
func (m *Machine) Start(mode string, opt Option) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch opt {
	case OptNone, OptSubmitted, OptApplied:
	default:
		return false, fmt.Errorf("%w: start %q", ErrBadOption, opt)
	}
	if _, ok := m.modes[mode]; !ok {
		return false, fmt.Errorf("%w: %q", ErrModeUnknown, mode)
	}
	if m.state != StateNormal {
		m.log.Warn().Str("state", m.state.String()).Str("mode", mode).Msg("start rejected: machine busy")
		return false, nil
	}

	m.setMode(mode)
	switch opt {
	case OptSubmitted:
		m.setState(StateSubmitting)
	case OptApplied:
		m.setState(StateApplying)
		m.beginProcessing()
	default:
		m.setState(StateStarting)
	}
	return true, nil
}

// Submit advances a started cycle. It requires StateStarting. OptCancel
// returns the machine to normal, OptApplied skips ahead and begins
// processing.
func (m *Machine) Submit(opt Option) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch opt {
	case OptNone, OptCancel, OptApplied:
	default:
		return false, fmt.Errorf("%w: submit %q", ErrBadOption, opt)
	}
	if m.state != StateStarting {
		m.log.Warn().Str("state", m.state.String()).Msg("submit rejected: not starting")
		return false, nil
	}

	switch opt {
	case OptCancel:
		m.toNormal()
	case OptApplied:
		m.setState(StateApplying)
		m.beginProcessing()
	default:
		m.setState(StateSubmitting)
	}
	return true, nil
}

// Apply runs the active mode's handler. It requires StateSubmitting.
// OptCancel steps back to the immediately preceding state; the history is
// one level deep, not a stack.
func (m *Machine) Apply(opt Option) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch opt {
	case OptNone, OptCancel:
	default:
		return false, fmt.Errorf("%w: apply %q", ErrBadOption, opt)
	}
	if m.state != StateSubmitting {
		m.log.Warn().Str("state", m.state.String()).Msg("apply rejected: not submitting")
		return false, nil
	}

	if opt == OptCancel {
		m.stepBack()
		return true, nil
	}
	m.setState(StateApplying)
	m.beginProcessing()
	return true, nil
}

// beginProcessing kicks off the active mode's handler. Called with the lock
// held, immediately after entering StateApplying.
func (m *Machine) beginProcessing() {
	cfg := m.modes[m.mode]
	if cfg.Applied == nil {
		m.log.Info().Str("mode", m.mode).Msg("no applied handler configured, completing cycle")
		m.toNormal()
		return
	}
	go m.runApplied(m.mode, cfg)
}

// runApplied executes one unit of work and drives the closing transition.
// Success ends the cycle in StateNormal; a reported failure or a returned
// error invokes ApplyFail and steps back to the state that preceded
// StateApplying.
func (m *Machine) runApplied(mode string, cfg ModeConfig) {
	res, err := cfg.Applied(context.Background())

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.log.Error().Err(err).Str("mode", mode).Msg("applied handler errored")
		if cfg.ApplyFail != nil {
			cfg.ApplyFail(err)
		}
		m.stepBack()
		return
	}
	if !res.Success {
		m.log.Debug().Str("mode", mode).Msg("applied handler reported failure")
		if cfg.ApplyFail != nil {
			cfg.ApplyFail(res.Data)
		}
		m.stepBack()
		return
	}
	if cfg.ApplySuccess != nil {
		cfg.ApplySuccess(res.Data)
	}
	m.toNormal()
}

// stepBack returns to the state that preceded the current one. A rollback
// that lands on StateNormal ends the cycle like any other path to it.
func (m *Machine) stepBack() {
	if m.prev == StateNormal {
		m.toNormal()
		return
	}
	m.setState(m.prev)
}

// toNormal ends a cycle. Reaching StateNormal always resets the active mode
// to idle, whatever the cause.
func (m *Machine) toNormal() {
	m.setState(StateNormal)
	m.setMode(IdleMode)
}
