// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"testing"

	"github.com/apphub/hubclient/internal/archive"
	"github.com/apphub/hubclient/internal/hubapi"
	"github.com/apphub/hubclient/internal/hubtest"
	"github.com/apphub/hubclient/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppsCreateListDelete(t *testing.T) {
	e := newCLIEnv(t)
	e.login(t)

	_, _, err := e.run(t, "", "apps", "create", "myapp")
	require.NoError(t, err)

	out, _, err := e.run(t, "", "apps", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "myapp")
	assert.Contains(t, out, "alice")

	_, _, err = e.run(t, "n\n", "apps", "delete", "myapp")
	require.ErrorIs(t, err, errAborted)
	assert.Equal(t, 0, e.hub.Calls(hubapi.PathAppDelete))

	_, _, err = e.run(t, "y\n", "apps", "delete", "myapp")
	require.NoError(t, err)

	out, _, err = e.run(t, "", "apps", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "myapp")
}

func TestAppsCreateInvalidName(t *testing.T) {
	e := newCLIEnv(t)
	e.login(t)

	_, stderr, err := e.run(t, "", "apps", "create", "My App")
	var invalid *validation.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, stderr, validation.Message(validation.AppName))
	assert.Equal(t, 0, e.hub.Calls(hubapi.PathAppCreate))
}

func TestAppsCreateDuplicateIsAlerted(t *testing.T) {
	e := newCLIEnv(t)
	e.login(t)
	e.hub.SeedApp("alice", "myapp")

	_, stderr, err := e.run(t, "", "apps", "create", "myapp")
	require.Error(t, err)
	assert.True(t, Reported(err))
	assert.NotEmpty(t, stderr)
}

func TestAppsDeleteUnknown(t *testing.T) {
	e := newCLIEnv(t)
	e.login(t)
	_, _, err := e.run(t, "", "--yes", "apps", "delete", "nosuchapp")
	require.Error(t, err)
	assert.Equal(t, 0, e.hub.Calls(hubapi.PathAppDelete))
}

func TestAppsOfOtherUsersAreHidden(t *testing.T) {
	e := newCLIEnv(t)
	e.login(t)
	e.hub.SeedApp("carol", "carolsapp")

	out, _, err := e.run(t, "", "apps", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "carolsapp")
}

func TestAppsSearchIsPublic(t *testing.T) {
	e := newCLIEnv(t)
	bundle, err := archive.Build(map[string][]byte{archive.ComposeFile: []byte("services: {}\n")})
	require.NoError(t, err)
	official := e.hub.SeedApp(hubtest.ReservedMaintainer, "nginx")
	e.hub.SeedVersion(official, "1.25", bundle)
	community := e.hub.SeedApp("carol", "ngrok")
	e.hub.SeedVersion(community, "3.0.0", bundle)

	out, _, err := e.run(t, "", "apps", "search", "ng")
	require.NoError(t, err)
	assert.Contains(t, out, "nginx")
	assert.NotContains(t, out, "ngrok")
	assert.Equal(t, 0, e.hub.Calls(hubapi.PathAuthCheck))

	out, _, err = e.run(t, "", "apps", "search", "ng", "--unofficial")
	require.NoError(t, err)
	assert.Contains(t, out, "ngrok")
	assert.Contains(t, out, "3.0.0")
}
