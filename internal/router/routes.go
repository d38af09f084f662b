// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package router

import "strings"

// Route is a client-side location.
type Route string

const (
	Apps           Route = "/"
	Login          Route = "/login"
	Registration   Route = "/registration"
	ChangePassword Route = "/change-password"
	Versions       Route = "/versions"
	Validate       Route = "/validate"
	Terms          Route = "/terms"
	// NotFound is where every unknown path resolves to.
	NotFound Route = "/not-found"
)

var known = map[Route]bool{
	Apps: true, Login: true, Registration: true, ChangePassword: true,
	Versions: true, Validate: true, Terms: true,
}

var public = map[Route]bool{
	Login: true, Registration: true, Validate: true, Terms: true,
}

// Resolve maps a path to its route. Query strings, fragments and trailing
// slashes are ignored; unknown paths resolve to NotFound.
func Resolve(path string) Route {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return Apps
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	r := Route(path)
	if known[r] {
		return r
	}
	return NotFound
}

// Public reports whether the route renders without an authenticated session.
func (r Route) Public() bool { return public[r] }

// String implements fmt.Stringer.
func (r Route) String() string { return string(r) }
