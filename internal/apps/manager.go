// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package apps manages the list of apps owned by the logged in user: creating,
// selecting and deleting them. At most one app is selected; deleting requires
// an explicit confirmation.
package apps

import (
	"context"
	"errors"

	"github.com/apphub/hubclient/internal/logging"
	"github.com/apphub/hubclient/internal/model"
	"github.com/apphub/hubclient/internal/selection"
	"github.com/apphub/hubclient/internal/session"
	"github.com/apphub/hubclient/internal/validation"
)

// ErrNoSelection is returned by RequestDelete when no app is selected.
var ErrNoSelection = errors.New("no app selected")

// API is the part of the hub client the manager needs.
type API interface {
	CreateApp(ctx context.Context, name string) (string, error)
	ListApps(ctx context.Context) ([]model.App, error)
	DeleteApp(ctx context.Context, appID string) error
}

// Controls lists which selection-dependent actions are offered.
type Controls struct {
	DeleteApp    bool
	EditVersions bool
}

// Manager is owned by a single UI loop and is not safe for concurrent use.
type Manager struct {
	api     API
	session *session.Store

	apps    []model.App
	sel     selection.State
	confirm selection.Confirmation
	invalid string
}

// New returns a manager. The session mirrors the current selection.
func New(api API, s *session.Store) *Manager {
	return &Manager{api: api, session: s}
}

// Apps returns the loaded apps.
func (m *Manager) Apps() []model.App {
	return append([]model.App(nil), m.apps...)
}

// Refresh reloads the app list. A selected app that disappeared, or whose
// selection the session dropped, is deselected.
func (m *Manager) Refresh(ctx context.Context) error {
	apps, err := m.api.ListApps(ctx)
	if err != nil {
		return err
	}
	m.apps = apps
	if !m.session.Snapshot().HasSelection() {
		m.sel = selection.Clear()
	}
	if m.sel.Selected() && m.find(m.sel.ID) == nil {
		m.setSelection(selection.Clear())
	}
	return nil
}

// Create validates name locally and creates the app. An invalid name sets
// InvalidMessage and returns a *validation.InvalidInputError without
// contacting the hub. The new app is not selected.
func (m *Manager) Create(ctx context.Context, name string) error {
	if err := validation.Check(validation.AppName, name); err != nil {
		m.invalid = err.Error()
		return err
	}
	m.invalid = ""
	if _, err := m.api.CreateApp(ctx, name); err != nil {
		return err
	}
	logging.Infof("created app %s", name)
	return m.Refresh(ctx)
}

// InvalidMessage is the inline message of the last rejected create, or "".
func (m *Manager) InvalidMessage() string { return m.invalid }

// Toggle selects the app with id, or deselects it if already selected.
func (m *Manager) Toggle(id string) {
	if m.find(id) == nil {
		return
	}
	m.setSelection(selection.Toggle(m.sel, id))
}

// Selected returns the selected app.
func (m *Manager) Selected() (model.App, bool) {
	if a := m.find(m.sel.ID); a != nil {
		return *a, true
	}
	return model.App{}, false
}

// Controls reports the actions available for the current selection.
func (m *Manager) Controls() Controls {
	on := m.sel.Selected()
	return Controls{DeleteApp: on, EditVersions: on}
}

// RequestDelete asks for confirmation to delete the selected app.
func (m *Manager) RequestDelete() error {
	if !m.sel.Selected() {
		return ErrNoSelection
	}
	return m.confirm.Open(m.sel.ID)
}

// ConfirmPending reports whether a delete awaits confirmation.
func (m *Manager) ConfirmPending() bool { return m.confirm.Pending() }

// Deleting reports whether a confirmed delete is running.
func (m *Manager) Deleting() bool { return m.confirm.InFlight() }

// Cancel closes the confirmation; nothing changes.
func (m *Manager) Cancel() { m.confirm.Cancel() }

// Confirm deletes the app the confirmation was opened for. On success the
// app leaves the list and the selection is cleared. On failure the list and
// selection stay as they were.
func (m *Manager) Confirm(ctx context.Context) error {
	id, err := m.confirm.Begin()
	if err != nil {
		return err
	}
	defer m.confirm.Finish()

	if err := m.api.DeleteApp(ctx, id); err != nil {
		return err
	}
	m.remove(id)
	if m.sel.Is(id) {
		m.setSelection(selection.Clear())
	}
	logging.Infof("deleted app %s", id)
	return nil
}

func (m *Manager) setSelection(s selection.State) {
	m.sel = s
	if a := m.find(s.ID); a != nil {
		m.session.SelectApp(*a)
		return
	}
	m.session.ClearSelection()
}

func (m *Manager) find(id string) *model.App {
	if id == "" {
		return nil
	}
	for i := range m.apps {
		if m.apps[i].ID == id {
			return &m.apps[i]
		}
	}
	return nil
}

func (m *Manager) remove(id string) {
	out := m.apps[:0]
	for _, a := range m.apps {
		if a.ID != id {
			out = append(out, a)
		}
	}
	m.apps = out
}
