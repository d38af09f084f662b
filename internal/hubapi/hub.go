// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package hubapi

import (
	"context"

	"github.com/apphub/hubclient/internal/model"
)

// Hub is the full set of typed hub operations. *Client implements it;
// MockHub lets tests replace single operations.
type Hub interface {
	// --- Account ---

	Register(ctx context.Context, form model.RegistrationForm) error

	ValidateEmail(ctx context.Context, code string) error

	Login(ctx context.Context, user, password string) error

	Logout(ctx context.Context) error

	DeleteAccount(ctx context.Context) error

	ChangePassword(ctx context.Context, oldPassword, newPassword string) error

	AuthCheck(ctx context.Context) (string, error)

	// --- Apps ---

	CreateApp(ctx context.Context, name string) (string, error)

	ListApps(ctx context.Context) ([]model.App, error)

	DeleteApp(ctx context.Context, appID string) error

	SearchApps(ctx context.Context, term string, showUnofficial bool) ([]model.AppWithLatestVersion, error)

	// --- Versions ---

	ListVersions(ctx context.Context, appID string) ([]model.Version, error)

	UploadVersion(ctx context.Context, appID, versionName string, content []byte) error

	DownloadVersion(ctx context.Context, versionID string) (*model.FullVersionInfo, error)

	DeleteVersion(ctx context.Context, versionID string) error
}

var _ Hub = (*Client)(nil)
