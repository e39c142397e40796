// Package flow sequences a registered asynchronous apply operation through
// a small mode-gated state machine: Normal → Starting → Submitting →
// Applying → Normal, with shortcut and cancel transitions.
//
// A machine carries named modes, each a bundle of optional callbacks around
// one asynchronous unit of work. Only one unit of work is in flight per
// machine: the entry guard rejects a new start while the machine is busy.
package flow

// State is the machine's position within its apply cycle.
type State int

const (
	// StateUnknown is the zero value, before a machine is constructed.
	StateUnknown State = iota
	// StateNormal is idle and ready to start.
	StateNormal
	// StateStarting is an apply cycle that has begun but not been
	// submitted.
	StateStarting
	// StateSubmitting is a submitted cycle awaiting apply.
	StateSubmitting
	// StateApplying runs the active mode's handler; it always resolves
	// back to StateNormal on success.
	StateApplying
)

var stateNames = map[State]string{
	StateUnknown:    "unknown",
	StateNormal:     "normal",
	StateStarting:   "starting",
	StateSubmitting: "submitting",
	StateApplying:   "applying",
}

// String returns the display name used in status output and logs.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "invalid"
}
