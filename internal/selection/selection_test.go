// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package selection

import (
	"errors"
	"testing"
)

func TestToggle(t *testing.T) {
	cases := []struct {
		name string
		from State
		id   string
		want State
	}{
		{"select from empty", State{}, "a", State{ID: "a"}},
		{"deselect same", State{ID: "a"}, "a", State{}},
		{"switch", State{ID: "a"}, "b", State{ID: "b"}},
		{"empty id is a no-op", State{ID: "a"}, "", State{ID: "a"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Toggle(c.from, c.id); got != c.want {
				t.Fatalf("Toggle(%+v, %q) = %+v, want %+v", c.from, c.id, got, c.want)
			}
		})
	}
}

func TestToggle_TwiceRestores(t *testing.T) {
	for _, start := range []State{{}, {ID: "a"}} {
		if got := Toggle(Toggle(start, "a"), "a"); got != start {
			t.Fatalf("double toggle from %+v gave %+v", start, got)
		}
	}
	// from another selection the first toggle replaces it, so two toggles end empty
	if got := Toggle(Toggle(State{ID: "b"}, "a"), "a"); got != (State{}) {
		t.Fatalf("expected empty state, got %+v", got)
	}
}

func TestConfirmation_CancelPath(t *testing.T) {
	var c Confirmation
	if err := c.Open("1"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !c.Pending() || c.Target() != "1" {
		t.Fatalf("expected pending on 1, got pending=%v target=%q", c.Pending(), c.Target())
	}
	c.Cancel()
	if c.Pending() || c.InFlight() {
		t.Fatalf("cancel must close the confirmation")
	}
	if _, err := c.Begin(); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending after cancel, got %v", err)
	}
}

func TestConfirmation_ConfirmPathBlocksDoubleSubmit(t *testing.T) {
	var c Confirmation
	_ = c.Open("1")
	target, err := c.Begin()
	if err != nil || target != "1" {
		t.Fatalf("Begin = %q, %v", target, err)
	}
	if _, err := c.Begin(); !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight on second Begin, got %v", err)
	}
	if err := c.Open("2"); !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight on Open during flight, got %v", err)
	}
	c.Cancel()
	if !c.InFlight() {
		t.Fatalf("cancel must not abort an in-flight action")
	}
	c.Finish()
	if c.InFlight() || c.Pending() {
		t.Fatalf("finish must close the confirmation")
	}
}

func TestConfirmation_OpenRequiresTarget(t *testing.T) {
	var c Confirmation
	if err := c.Open(""); !errors.Is(err, ErrNothingSelected) {
		t.Fatalf("expected ErrNothingSelected, got %v", err)
	}
}
