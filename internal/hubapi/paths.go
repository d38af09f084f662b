// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package hubapi

// APIPrefix is prepended to every endpoint path.
const APIPrefix = "/api"

// Endpoint paths, relative to APIPrefix.
const (
	PathRegistration    = "/account/registration"
	PathEmailValidation = "/account/validate"
	PathLogin           = "/account/login"
	PathLogout          = "/account/logout"
	PathAuthCheck       = "/account/auth-check"
	PathDeleteAccount   = "/account/delete"
	PathChangePassword  = "/account/change-password"

	PathVersionUpload   = "/versions/upload"
	PathVersionDelete   = "/versions/delete"
	PathVersionList     = "/versions/list"
	PathVersionDownload = "/versions/download"

	PathAppCreate = "/apps/create"
	PathAppList   = "/apps/get-list"
	PathAppDelete = "/apps/delete"
	PathAppSearch = "/apps/search"
)

// CookieName is the name of the hub's session cookie.
const CookieName = "auth"

// DefaultValidationCode is the code a hub in test mode accepts for email
// validation.
const DefaultValidationCode = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"
