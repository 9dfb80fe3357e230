// Package statemachine implements the communication-object lifecycle
// shared by every long-lived channel in this library (secure channel,
// session channel): Created -> Opening -> Opened -> Closing -> Closed
// or Faulted.
//
// Rather than a deep base class the original inheritance hierarchy
// would use, a Machine wraps caller-supplied Hooks: any type can
// embed one and get the same transition/idempotency/event guarantees
// without inheriting from it.
package statemachine

import (
	"errors"
	"sync"
)

// State is one of the six communication-object lifecycle states.
type State int

const (
	StateCreated State = iota
	StateOpening
	StateOpened
	StateClosing
	StateClosed
	StateFaulted
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateOpening:
		return "Opening"
	case StateOpened:
		return "Opened"
	case StateClosing:
		return "Closing"
	case StateClosed:
		return "Closed"
	case StateFaulted:
		return "Faulted"
	default:
		return "Unknown"
	}
}

// ErrInvalidTransition is returned when Open is called outside Created.
var ErrInvalidTransition = errors.New("statemachine: invalid state transition")

// ErrMustAbort is returned by Close when the machine is Faulted: the
// only cleanup path out of Faulted is Abort.
var ErrMustAbort = errors.New("statemachine: channel is faulted, call Abort instead of Close")

// ErrAborted is returned by Open when a concurrent Close/Abort won the
// race while the open hook was running.
var ErrAborted = errors.New("statemachine: aborted while opening")

// Hooks supplies the work a Machine performs at each transition. Close
// and Abort must tolerate being called when the underlying resource
// was never fully opened (e.g. Close from Created).
type Hooks struct {
	// Open performs the actual handshake/open work. A non-nil error
	// faults the machine.
	Open func() error
	// Close performs graceful teardown. Called at most once.
	Close func()
	// Abort performs best-effort teardown and must not be allowed to
	// fail the caller's Abort() — any error it produces is discarded.
	Abort func()
}

// EventHandler is notified of every state the machine enters.
// Opening/Closing fire before the corresponding hook runs; Opened/
// Closed/Faulted fire after.
type EventHandler func(State)

// Machine is a Created communication object ready to Open.
type Machine struct {
	mu      sync.Mutex
	state   State
	hooks   Hooks
	onEvent EventHandler
}

// New returns a Machine in state Created.
func New(hooks Hooks, onEvent EventHandler) *Machine {
	return &Machine{hooks: hooks, onEvent: onEvent}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// emit calls the event handler for s. A panicking handler faults the
// machine and the panic propagates to the caller of Open/Close/Abort.
func (m *Machine) emit(s State) {
	if m.onEvent == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.setState(StateFaulted)
			panic(r)
		}
	}()
	m.onEvent(s)
}

// Open runs Hooks.Open, permitted only from Created. On success the
// machine ends in Opened; on error, or if a concurrent Close/Abort won
// the race while Open was running, it ends in Faulted/Closed rather
// than Opened.
func (m *Machine) Open() error {
	m.mu.Lock()
	if m.state != StateCreated {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	m.state = StateOpening
	m.mu.Unlock()
	m.emit(StateOpening)

	var err error
	if m.hooks.Open != nil {
		err = m.hooks.Open()
	}
	if err != nil {
		m.setState(StateFaulted)
		m.emit(StateFaulted)
		return err
	}

	m.mu.Lock()
	if m.state != StateOpening {
		// A concurrent Close/Abort already moved the machine on;
		// Open never completes into Opened in that case.
		m.mu.Unlock()
		return ErrAborted
	}
	m.state = StateOpened
	m.mu.Unlock()
	m.emit(StateOpened)
	return nil
}

// Close runs Hooks.Close, permitted from any state except Faulted (use
// Abort there) and idempotent once Closed.
func (m *Machine) Close() error {
	m.mu.Lock()
	switch m.state {
	case StateClosed:
		m.mu.Unlock()
		return nil
	case StateFaulted:
		m.mu.Unlock()
		return ErrMustAbort
	}
	m.state = StateClosing
	m.mu.Unlock()
	m.emit(StateClosing)

	if m.hooks.Close != nil {
		m.hooks.Close()
	}

	m.setState(StateClosed)
	m.emit(StateClosed)
	return nil
}

// Abort runs Hooks.Abort and always ends in Closed, even from Faulted
// or mid-Opening; it is the only cleanup path guaranteed to succeed
// when network I/O is impossible. Idempotent once Closed.
func (m *Machine) Abort() {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	m.state = StateClosing
	m.mu.Unlock()
	m.emit(StateClosing)

	if m.hooks.Abort != nil {
		m.hooks.Abort()
	}

	m.setState(StateClosed)
	m.emit(StateClosed)
}
