// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package hubapi

import (
	"context"

	"github.com/apphub/hubclient/internal/model"
)

// MockHub forwards to Base unless the matching Overwrites func is set.
type MockHub struct {
	Base       Hub
	Overwrites MockHubOverwrites
}

type MockHubOverwrites struct {
	Register        func(ctx context.Context, form model.RegistrationForm) error
	ValidateEmail   func(ctx context.Context, code string) error
	Login           func(ctx context.Context, user, password string) error
	Logout          func(ctx context.Context) error
	DeleteAccount   func(ctx context.Context) error
	ChangePassword  func(ctx context.Context, oldPassword, newPassword string) error
	AuthCheck       func(ctx context.Context) (string, error)
	CreateApp       func(ctx context.Context, name string) (string, error)
	ListApps        func(ctx context.Context) ([]model.App, error)
	DeleteApp       func(ctx context.Context, appID string) error
	SearchApps      func(ctx context.Context, term string, showUnofficial bool) ([]model.AppWithLatestVersion, error)
	ListVersions    func(ctx context.Context, appID string) ([]model.Version, error)
	UploadVersion   func(ctx context.Context, appID, versionName string, content []byte) error
	DownloadVersion func(ctx context.Context, versionID string) (*model.FullVersionInfo, error)
	DeleteVersion   func(ctx context.Context, versionID string) error
}

var _ Hub = (*MockHub)(nil)

// hub := NewMockHub(nil, MockHubOverwrites{ /* overwrite Hub methods here... */ })
func NewMockHub(base Hub, overwrites MockHubOverwrites) *MockHub {
	return &MockHub{Base: base, Overwrites: overwrites}
}

func (m *MockHub) Register(ctx context.Context, form model.RegistrationForm) error {
	if m.Overwrites.Register != nil {
		return m.Overwrites.Register(ctx, form)
	} else if m.Base != nil {
		return m.Base.Register(ctx, form)
	}
	panic("MockHub.Register not implemented")
}

func (m *MockHub) ValidateEmail(ctx context.Context, code string) error {
	if m.Overwrites.ValidateEmail != nil {
		return m.Overwrites.ValidateEmail(ctx, code)
	} else if m.Base != nil {
		return m.Base.ValidateEmail(ctx, code)
	}
	panic("MockHub.ValidateEmail not implemented")
}

func (m *MockHub) Login(ctx context.Context, user, password string) error {
	if m.Overwrites.Login != nil {
		return m.Overwrites.Login(ctx, user, password)
	} else if m.Base != nil {
		return m.Base.Login(ctx, user, password)
	}
	panic("MockHub.Login not implemented")
}

func (m *MockHub) Logout(ctx context.Context) error {
	if m.Overwrites.Logout != nil {
		return m.Overwrites.Logout(ctx)
	} else if m.Base != nil {
		return m.Base.Logout(ctx)
	}
	panic("MockHub.Logout not implemented")
}

func (m *MockHub) DeleteAccount(ctx context.Context) error {
	if m.Overwrites.DeleteAccount != nil {
		return m.Overwrites.DeleteAccount(ctx)
	} else if m.Base != nil {
		return m.Base.DeleteAccount(ctx)
	}
	panic("MockHub.DeleteAccount not implemented")
}

func (m *MockHub) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if m.Overwrites.ChangePassword != nil {
		return m.Overwrites.ChangePassword(ctx, oldPassword, newPassword)
	} else if m.Base != nil {
		return m.Base.ChangePassword(ctx, oldPassword, newPassword)
	}
	panic("MockHub.ChangePassword not implemented")
}

func (m *MockHub) AuthCheck(ctx context.Context) (string, error) {
	if m.Overwrites.AuthCheck != nil {
		return m.Overwrites.AuthCheck(ctx)
	} else if m.Base != nil {
		return m.Base.AuthCheck(ctx)
	}
	panic("MockHub.AuthCheck not implemented")
}

func (m *MockHub) CreateApp(ctx context.Context, name string) (string, error) {
	if m.Overwrites.CreateApp != nil {
		return m.Overwrites.CreateApp(ctx, name)
	} else if m.Base != nil {
		return m.Base.CreateApp(ctx, name)
	}
	panic("MockHub.CreateApp not implemented")
}

func (m *MockHub) ListApps(ctx context.Context) ([]model.App, error) {
	if m.Overwrites.ListApps != nil {
		return m.Overwrites.ListApps(ctx)
	} else if m.Base != nil {
		return m.Base.ListApps(ctx)
	}
	panic("MockHub.ListApps not implemented")
}

func (m *MockHub) DeleteApp(ctx context.Context, appID string) error {
	if m.Overwrites.DeleteApp != nil {
		return m.Overwrites.DeleteApp(ctx, appID)
	} else if m.Base != nil {
		return m.Base.DeleteApp(ctx, appID)
	}
	panic("MockHub.DeleteApp not implemented")
}

func (m *MockHub) SearchApps(ctx context.Context, term string, showUnofficial bool) ([]model.AppWithLatestVersion, error) {
	if m.Overwrites.SearchApps != nil {
		return m.Overwrites.SearchApps(ctx, term, showUnofficial)
	} else if m.Base != nil {
		return m.Base.SearchApps(ctx, term, showUnofficial)
	}
	panic("MockHub.SearchApps not implemented")
}

func (m *MockHub) ListVersions(ctx context.Context, appID string) ([]model.Version, error) {
	if m.Overwrites.ListVersions != nil {
		return m.Overwrites.ListVersions(ctx, appID)
	} else if m.Base != nil {
		return m.Base.ListVersions(ctx, appID)
	}
	panic("MockHub.ListVersions not implemented")
}

func (m *MockHub) UploadVersion(ctx context.Context, appID, versionName string, content []byte) error {
	if m.Overwrites.UploadVersion != nil {
		return m.Overwrites.UploadVersion(ctx, appID, versionName, content)
	} else if m.Base != nil {
		return m.Base.UploadVersion(ctx, appID, versionName, content)
	}
	panic("MockHub.UploadVersion not implemented")
}

func (m *MockHub) DownloadVersion(ctx context.Context, versionID string) (*model.FullVersionInfo, error) {
	if m.Overwrites.DownloadVersion != nil {
		return m.Overwrites.DownloadVersion(ctx, versionID)
	} else if m.Base != nil {
		return m.Base.DownloadVersion(ctx, versionID)
	}
	panic("MockHub.DownloadVersion not implemented")
}

func (m *MockHub) DeleteVersion(ctx context.Context, versionID string) error {
	if m.Overwrites.DeleteVersion != nil {
		return m.Overwrites.DeleteVersion(ctx, versionID)
	} else if m.Base != nil {
		return m.Base.DeleteVersion(ctx, versionID)
	}
	panic("MockHub.DeleteVersion not implemented")
}
