// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package hubapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/apphub/hubclient/internal/model"
)

// CreateApp creates an app owned by the logged in user and returns its id.
func (c *Client) CreateApp(ctx context.Context, name string) (string, error) {
	if _, err := c.Send(ctx, http.MethodPost, PathAppCreate, model.StringValue{Value: name}); err != nil {
		return "", err
	}
	// the create endpoint does not return the id
	apps, err := c.ListApps(ctx)
	if err != nil {
		return "", err
	}
	for _, a := range apps {
		if a.Name == name {
			return a.ID, nil
		}
	}
	return "", c.fail(newError(http.StatusOK, "", fmt.Errorf("app %q not found after creation", name)), true)
}

// ListApps returns the apps owned by the logged in user.
func (c *Client) ListApps(ctx context.Context) ([]model.App, error) {
	resp, err := c.Send(ctx, http.MethodPost, PathAppList, nil)
	if err != nil {
		return nil, err
	}
	var apps []model.App
	if err := c.decode(resp, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// DeleteApp deletes an app and all of its versions.
func (c *Client) DeleteApp(ctx context.Context, appID string) error {
	_, err := c.Send(ctx, http.MethodPost, PathAppDelete, model.StringValue{Value: appID})
	return err
}

// SearchApps finds apps by name or maintainer.
func (c *Client) SearchApps(ctx context.Context, term string, showUnofficial bool) ([]model.AppWithLatestVersion, error) {
	resp, err := c.Send(ctx, http.MethodPost, PathAppSearch, model.AppSearchRequest{
		SearchTerm:         term,
		ShowUnofficialApps: showUnofficial,
	})
	if err != nil {
		return nil, err
	}
	var out []model.AppWithLatestVersion
	if err := c.decode(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListVersions returns the versions of an app.
func (c *Client) ListVersions(ctx context.Context, appID string) ([]model.Version, error) {
	resp, err := c.Send(ctx, http.MethodPost, PathVersionList, model.StringValue{Value: appID})
	if err != nil {
		return nil, err
	}
	var versions []model.Version
	if err := c.decode(resp, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

// UploadVersion uploads a zip archive as a new version of an app.
func (c *Client) UploadVersion(ctx context.Context, appID, versionName string, content []byte) error {
	_, err := c.Send(ctx, http.MethodPost, PathVersionUpload, model.VersionUpload{
		AppID:   appID,
		Version: versionName,
		Content: content,
	})
	return err
}

// DownloadVersion fetches a version including its archive.
func (c *Client) DownloadVersion(ctx context.Context, versionID string) (*model.FullVersionInfo, error) {
	resp, err := c.Send(ctx, http.MethodPost, PathVersionDownload, model.StringValue{Value: versionID})
	if err != nil {
		return nil, err
	}
	var info model.FullVersionInfo
	if err := c.decode(resp, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteVersion deletes a single version.
func (c *Client) DeleteVersion(ctx context.Context, versionID string) error {
	_, err := c.Send(ctx, http.MethodPost, PathVersionDelete, model.StringValue{Value: versionID})
	return err
}
