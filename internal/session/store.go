// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package session holds the client-side view of who is logged in and which
// app is selected. It is an explicit object handed to the router, the account
// operations and the app manager; nothing in it is package-level.
package session

import (
	"errors"
	"sync"

	"github.com/apphub/hubclient/internal/model"
)

// ErrEmptyUser is returned by Login when no user name is given.
var ErrEmptyUser = errors.New("session: user must not be empty")

// Session is a point-in-time copy of the store.
type Session struct {
	User            string
	IsAuthenticated bool
	SelectedApp     string
	SelectedAppID   string
}

// HasSelection reports whether an app is selected.
func (s Session) HasSelection() bool {
	return s.SelectedAppID != ""
}

// Store is safe for concurrent use; UI commands read and write it from
// their own goroutines.
type Store struct {
	mu    sync.RWMutex
	state Session
}

// New returns an unauthenticated store with no selection.
func New() *Store {
	return &Store{}
}

// Login marks the session authenticated for user and drops any selection.
func (s *Store) Login(user string) error {
	if user == "" {
		return ErrEmptyUser
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Session{User: user, IsAuthenticated: true}
	return nil
}

// Logout resets the store to its initial state. It is idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Session{}
}

// Invalidate resets the store after the hub rejected the session or the
// account was deleted.
func (s *Store) Invalidate() {
	s.Logout()
}

// SelectApp records app as the current selection. Ignored while
// unauthenticated.
func (s *Store) SelectApp(app model.App) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsAuthenticated {
		return
	}
	s.state.SelectedApp = app.Name
	s.state.SelectedAppID = app.ID
}

// ClearSelection drops the app selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedApp = ""
	s.state.SelectedAppID = ""
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated is shorthand for Snapshot().IsAuthenticated.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// User returns the logged in user, or "".
func (s *Store) User() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User
}
