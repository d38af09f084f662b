// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package selection contains the single-item selection used by the app and
// version lists, and the confirmation gate in front of destructive actions.
package selection

import "errors"

// State is the selected item id; the zero value means nothing is selected.
type State struct {
	ID string
}

// Selected reports whether an item is selected.
func (s State) Selected() bool { return s.ID != "" }

// Is reports whether id is the selected item.
func (s State) Is(id string) bool { return id != "" && s.ID == id }

// Toggle selects id, or deselects it when it is already selected. Selecting
// a different item replaces the previous selection. An empty id leaves the
// state unchanged.
func Toggle(s State, id string) State {
	if id == "" {
		return s
	}
	if s.ID == id {
		return State{}
	}
	return State{ID: id}
}

// Clear returns the empty state.
func Clear() State { return State{} }

var (
	// ErrNothingSelected is returned when a confirmation is requested without a selection.
	ErrNothingSelected = errors.New("nothing selected")
	// ErrNotPending is returned by Begin when no confirmation is open.
	ErrNotPending = errors.New("no confirmation pending")
	// ErrInFlight is returned while a confirmed action has not finished.
	ErrInFlight = errors.New("action already in progress")
)

// Confirmation gates one destructive action on one target.
//
//	closed --Open--> pending --Begin--> in flight --Finish--> closed
//	                 pending --Cancel--> closed
type Confirmation struct {
	target   string
	pending  bool
	inFlight bool
}

// Open asks for confirmation of an action on target.
func (c *Confirmation) Open(target string) error {
	if c.inFlight {
		return ErrInFlight
	}
	if target == "" {
		return ErrNothingSelected
	}
	c.target = target
	c.pending = true
	return nil
}

// Cancel closes a pending confirmation without side effects.
func (c *Confirmation) Cancel() {
	if c.inFlight {
		return
	}
	c.pending = false
	c.target = ""
}

// Begin marks the pending action as confirmed and returns its target.
// Further calls fail until Finish.
func (c *Confirmation) Begin() (string, error) {
	if c.inFlight {
		return "", ErrInFlight
	}
	if !c.pending {
		return "", ErrNotPending
	}
	c.pending = false
	c.inFlight = true
	return c.target, nil
}

// Finish ends an in-flight action.
func (c *Confirmation) Finish() {
	c.inFlight = false
	c.target = ""
}

// Pending reports whether the user is being asked to confirm.
func (c *Confirmation) Pending() bool { return c.pending }

// InFlight reports whether a confirmed action is running.
func (c *Confirmation) InFlight() bool { return c.inFlight }

// Target is the id the confirmation is about.
func (c *Confirmation) Target() string { return c.target }
