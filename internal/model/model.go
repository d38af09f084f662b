// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model contains the hub entities and request/response payloads
// exchanged with the hub API. Field names follow the hub's JSON wire format.
package model

import (
	"fmt"
	"time"

	"github.com/apphub/hubclient/internal/security"
)

// DateLayout is how creation timestamps are shown to users.
const DateLayout = "January 2, 2006"

// App is a named container for versions, owned by one maintainer.
type App struct {
	Maintainer string `json:"user"`
	Name       string `json:"name"`
	ID         string `json:"id"`
}

// String returns maintainer/name.
func (a App) String() string {
	return fmt.Sprintf("%s/%s", a.Maintainer, a.Name)
}

// Version is a named release artifact belonging to an App.
type Version struct {
	Name              string    `json:"name"`
	ID                string    `json:"id"`
	CreationTimestamp time.Time `json:"creation_timestamp"`
}

// Created returns the creation date formatted for display.
func (v Version) Created() string {
	if v.CreationTimestamp.IsZero() {
		return "-"
	}
	return v.CreationTimestamp.Format(DateLayout)
}

// FullVersionInfo is the payload of a version download.
type FullVersionInfo struct {
	ID                       int       `json:"id"`
	VersionName              string    `json:"version_name"`
	Maintainer               string    `json:"maintainer"`
	AppName                  string    `json:"app_name"`
	Content                  []byte    `json:"content"`
	VersionCreationTimestamp time.Time `json:"version_creation_timestamp"`
}

// FileName is the suggested local file name for the downloaded archive.
func (f FullVersionInfo) FileName() string {
	return fmt.Sprintf("%s_%s_%s.zip", f.Maintainer, f.AppName, f.VersionName)
}

// AppWithLatestVersion is one row of an app search.
type AppWithLatestVersion struct {
	Maintainer        string `json:"maintainer"`
	AppID             string `json:"app_id"`
	AppName           string `json:"app_name"`
	LatestVersionID   string `json:"latest_version_id"`
	LatestVersionName string `json:"latest_version_name"`
}

// StringValue wraps single-value request and response bodies: {"value": "..."}.
type StringValue struct {
	Value string `json:"value"`
}

// LoginCredentials is the login request body.
type LoginCredentials struct {
	User     string `json:"user" validate:"username"`
	Password string `json:"password" validate:"password"`
}

// RegistrationForm is the registration request body.
type RegistrationForm struct {
	User     string `json:"user" validate:"username"`
	Password string `json:"password" validate:"password"`
	Email    string `json:"email" validate:"email"`
}

// ChangePasswordForm is the change-password request body.
type ChangePasswordForm struct {
	OldPassword string `json:"old_password" validate:"password"`
	NewPassword string `json:"new_password" validate:"password"`
}

// VersionUpload is the upload request body. Content is base64 on the wire.
type VersionUpload struct {
	AppID   string `json:"appId"`
	Version string `json:"version" validate:"version_name"`
	Content []byte `json:"content"`
}

// AppSearchRequest is the search request body.
type AppSearchRequest struct {
	SearchTerm         string `json:"search_term"`
	ShowUnofficialApps bool   `json:"show_unofficial_apps"`
}

// Activity is one locally recorded client action.
type Activity struct {
	ID        int
	Timestamp time.Time
	Server    string
	Username  string
	Action    string
	Details   string
}

// Credential is a persisted session cookie for one hub server. The cookie
// is redacted whenever the credential is printed.
type Credential struct {
	Server    string
	User      string
	Cookie    security.Secret
	ExpiresAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the cookie has a known expiry in the past.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
