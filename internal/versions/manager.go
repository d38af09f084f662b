// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package versions manages the versions of one app: listing, uploading zip
// archives, downloading and deleting them.
package versions

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/apphub/hubclient/internal/hubapi"
	"github.com/apphub/hubclient/internal/logging"
	"github.com/apphub/hubclient/internal/model"
	"github.com/apphub/hubclient/internal/selection"
	"github.com/apphub/hubclient/internal/validation"
)

// InvalidVersionMessage is shown inline when the hub rejects an upload.
const InvalidVersionMessage = "Invalid version"

// NotZipMessage is shown inline for files without a .zip extension.
const NotZipMessage = "Only .zip files can be uploaded."

var (
	// ErrNoApp is returned by New without an app id.
	ErrNoApp = errors.New("no app selected")
	// ErrNoSelection is returned when an action needs a selected version.
	ErrNoSelection = errors.New("no version selected")
	// ErrNotZip is returned for uploads that are not zip files.
	ErrNotZip = errors.New(NotZipMessage)
)

// API is the part of the hub client the manager needs.
type API interface {
	ListVersions(ctx context.Context, appID string) ([]model.Version, error)
	UploadVersion(ctx context.Context, appID, versionName string, content []byte) error
	DownloadVersion(ctx context.Context, versionID string) (*model.FullVersionInfo, error)
	DeleteVersion(ctx context.Context, versionID string) error
}

// Controls lists which selection-dependent actions are offered.
type Controls struct {
	DownloadVersion bool
	DeleteVersion   bool
}

// Manager is scoped to one app and owned by a single UI loop.
type Manager struct {
	api   API
	appID string

	versions []model.Version
	sel      selection.State
	confirm  selection.Confirmation
	invalid  string
}

// New returns a manager for the app with appID.
func New(api API, appID string) (*Manager, error) {
	if appID == "" {
		return nil, ErrNoApp
	}
	return &Manager{api: api, appID: appID}, nil
}

// AppID returns the app the manager is scoped to.
func (m *Manager) AppID() string { return m.appID }

// Versions returns the loaded versions.
func (m *Manager) Versions() []model.Version {
	return append([]model.Version(nil), m.versions...)
}

// List reloads the versions. An empty list is valid.
func (m *Manager) List(ctx context.Context) error {
	versions, err := m.api.ListVersions(ctx, m.appID)
	if err != nil {
		return err
	}
	m.versions = versions
	if m.sel.Selected() && m.find(m.sel.ID) == nil {
		m.sel = selection.Clear()
	}
	return nil
}

// VersionName derives the version name from an upload file name: the base
// name without its .zip extension.
func VersionName(fileName string) (string, error) {
	base := filepath.Base(fileName)
	ext := filepath.Ext(base)
	if !strings.EqualFold(ext, ".zip") {
		return "", ErrNotZip
	}
	return strings.TrimSuffix(base, ext), nil
}

// Upload sends content as a new version named after fileName. Local
// rejections and hub rejections set InvalidMessage; the list only changes
// after a successful upload.
func (m *Manager) Upload(ctx context.Context, fileName string, content []byte) error {
	name, err := VersionName(fileName)
	if err != nil {
		m.invalid = NotZipMessage
		return err
	}
	if err := validation.Check(validation.VersionName, name); err != nil {
		m.invalid = err.Error()
		return err
	}
	if err := m.api.UploadVersion(ctx, m.appID, name, content); err != nil {
		// the hub rejects a bad bundle with 400; other failures are alerted only
		if hubapi.StatusOf(err) == http.StatusBadRequest {
			m.invalid = InvalidVersionMessage
		}
		return err
	}
	m.invalid = ""
	logging.Infof("uploaded version %s of app %s", name, m.appID)
	return m.List(ctx)
}

// InvalidMessage is the inline message of the last rejected upload, or "".
func (m *Manager) InvalidMessage() string { return m.invalid }

// Toggle selects the version with id, or deselects it if already selected.
func (m *Manager) Toggle(id string) {
	if m.find(id) == nil {
		return
	}
	m.sel = selection.Toggle(m.sel, id)
}

// Selected returns the selected version.
func (m *Manager) Selected() (model.Version, bool) {
	if v := m.find(m.sel.ID); v != nil {
		return *v, true
	}
	return model.Version{}, false
}

// Controls reports the actions available for the current selection.
func (m *Manager) Controls() Controls {
	on := m.sel.Selected()
	return Controls{DownloadVersion: on, DeleteVersion: on}
}

// Download fetches the selected version. State is not changed.
func (m *Manager) Download(ctx context.Context) (*model.FullVersionInfo, error) {
	if !m.sel.Selected() {
		return nil, ErrNoSelection
	}
	return m.api.DownloadVersion(ctx, m.sel.ID)
}

// RequestDelete asks for confirmation to delete the selected version.
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

// Confirm deletes the version the confirmation was opened for.
func (m *Manager) Confirm(ctx context.Context) error {
	id, err := m.confirm.Begin()
	if err != nil {
		return err
	}
	defer m.confirm.Finish()

	if err := m.api.DeleteVersion(ctx, id); err != nil {
		return err
	}
	out := m.versions[:0]
	for _, v := range m.versions {
		if v.ID != id {
			out = append(out, v)
		}
	}
	m.versions = out
	if m.sel.Is(id) {
		m.sel = selection.Clear()
	}
	logging.Infof("deleted version %s of app %s", id, m.appID)
	return nil
}

func (m *Manager) find(id string) *model.Version {
	if id == "" {
		return nil
	}
	for i := range m.versions {
		if m.versions[i].ID == id {
			return &m.versions[i]
		}
	}
	return nil
}
