package overlay

import (
	"errors"
	"fmt"
)

// ErrSessionActive reports an attempt to start a picking or visualizing
// session on a camera that already has one running.
var ErrSessionActive = errors.New("overlay: session already running")

// Mode is the interactive overlay state for one camera.
type Mode int

const (
	// Idle: no overlay activity.
	Idle Mode = iota
	// Picking: a focus pick is in progress; pointer release commits it.
	Picking
	// Visualizing: the DoF overlay is redrawn every frame.
	Visualizing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Picking:
		return "picking"
	case Visualizing:
		return "visualizing"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Session is the overlay activity of a single camera. At most one of
// Picking or Visualizing is active at a time.
type Session struct {
	mode Mode
}

// Mode returns the current state.
func (s *Session) Mode() Mode { return s.mode }

// Start moves an idle session into Picking or Visualizing.
func (s *Session) Start(m Mode) error {
	if m != Picking && m != Visualizing {
		return fmt.Errorf("overlay: cannot start mode %v", m)
	}
	if s.mode != Idle {
		return fmt.Errorf("%w: %v", ErrSessionActive, s.mode)
	}
	s.mode = m
	return nil
}

// PointerRelease commits a pick in progress. Visualizing sessions pass
// the event through unchanged; the pick is complete once committed.
func (s *Session) PointerRelease() (committed bool) {
	if s.mode == Picking {
		s.mode = Idle
		return true
	}
	return false
}

// Cancel returns the session to Idle from any state (escape or right
// mouse in the original tool).
func (s *Session) Cancel() { s.mode = Idle }

// ExternalDisable is the host clearing the session out from under the
// event loop, e.g. a kill switch in a panel. Same effect as Cancel but
// kept as a distinct transition for call-site clarity.
func (s *Session) ExternalDisable() { s.mode = Idle }

// Registry tracks overlay sessions per camera identity, so multiple
// cameras and viewports can run without shared package state.
type Registry struct {
	sessions map[string]*Session
}

// NewRegistry returns an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Session returns the session for a camera, creating it idle on first use.
func (r *Registry) Session(camera string) *Session {
	s, ok := r.sessions[camera]
	if !ok {
		s = &Session{}
		r.sessions[camera] = s
	}
	return s
}

// Active reports whether any camera has a non-idle session.
func (r *Registry) Active() bool {
	for _, s := range r.sessions {
		if s.mode != Idle {
			return true
		}
	}
	return false
}

// CancelAll returns every session to Idle.
func (r *Registry) CancelAll() {
	for _, s := range r.sessions {
		s.Cancel()
	}
}
