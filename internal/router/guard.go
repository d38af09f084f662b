// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package router decides whether a navigation may render its target. Public
// routes always render; protected routes render only for a session the hub
// has confirmed, otherwise the user is sent to the login route.
package router

import (
	"context"
	"sync"

	"github.com/apphub/hubclient/internal/logging"
	"github.com/apphub/hubclient/internal/session"
)

// State is the guard's view of authentication.
type State int

const (
	Unknown State = iota
	Checking
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// LivenessChecker asks the hub whether the current cookie is valid and
// returns the user it belongs to.
type LivenessChecker interface {
	AuthCheck(ctx context.Context) (string, error)
}

// Decision is the outcome of a navigation.
type Decision struct {
	// Requested is the route the caller asked for.
	Requested Route
	// Route is what should render.
	Route Route
	// Checked is true when a liveness check ran for this navigation.
	Checked bool
}

// Redirected reports whether Route differs from Requested.
func (d Decision) Redirected() bool { return d.Route != d.Requested }

// Guard gates navigation. It is safe for concurrent use; concurrent
// navigations each run their own liveness check.
type Guard struct {
	session *session.Store
	checker LivenessChecker

	mu    sync.Mutex
	state State
}

// New returns a guard over s that uses checker for liveness checks.
func New(s *session.Store, checker LivenessChecker) *Guard {
	return &Guard{session: s, checker: checker}
}

// State returns the current guard state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Guard) setState(s State) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
}

// Navigate resolves path and decides what renders. It blocks while a
// liveness check is running.
func (g *Guard) Navigate(ctx context.Context, path string) Decision {
	target := Resolve(path)
	d := Decision{Requested: target, Route: target}

	switch {
	case target.Public():
		if g.session.IsAuthenticated() {
			g.setState(Authenticated)
		}
	case g.session.IsAuthenticated():
		g.setState(Authenticated)
	default:
		d.Checked = true
		if !g.check(ctx) {
			d.Route = Login
			logging.Debugf("navigation to %s redirected to %s", target, Login)
			return d
		}
	}

	// the selection only lives while app management is open
	if target == Versions {
		if !g.session.Snapshot().HasSelection() {
			d.Route = Apps
		}
		return d
	}
	g.session.ClearSelection()
	return d
}

func (g *Guard) check(ctx context.Context) bool {
	g.setState(Checking)
	user, err := g.checker.AuthCheck(ctx)
	if err != nil {
		logging.Debugf("auth check failed: %v", err)
		g.setState(Unauthenticated)
		return false
	}
	if err := g.session.Login(user); err != nil {
		g.setState(Unauthenticated)
		return false
	}
	g.setState(Authenticated)
	return true
}
