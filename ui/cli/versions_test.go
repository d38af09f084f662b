// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apphub/hubclient/internal/archive"
	"github.com/apphub/hubclient/internal/hubapi"
	"github.com/apphub/hubclient/internal/versions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionsUploadListDownloadDelete(t *testing.T) {
	e := newCLIEnv(t)
	e.login(t)
	e.hub.SeedApp("alice", "myapp")
	bundle := writeBundle(t, t.TempDir(), "1.0.zip")

	_, _, err := e.run(t, "", "versions", "upload", "myapp", bundle)
	require.NoError(t, err)

	out, _, err := e.run(t, "", "versions", "list", "myapp")
	require.NoError(t, err)
	assert.Contains(t, out, "myapp")
	assert.Contains(t, out, "1.0")

	_, _, err = e.run(t, "", "versions", "download", "myapp", "1.0")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(e.downloads, "alice_myapp_1.0.zip"))
	require.NoError(t, err)
	entries, err := archive.Entries(data)
	require.NoError(t, err)
	assert.Contains(t, entries, archive.ComposeFile)

	_, _, err = e.run(t, "", "--yes", "versions", "delete", "myapp", "1.0")
	require.NoError(t, err)
	assert.Equal(t, 1, e.hub.Calls(hubapi.PathVersionDelete))

	out, _, err = e.run(t, "", "versions", "list", "myapp")
	require.NoError(t, err)
	assert.NotContains(t, out, "1.0")
}

func TestVersionsUploadDirectory(t *testing.T) {
	e := newCLIEnv(t)
	e.login(t)
	e.hub.SeedApp("alice", "myapp")

	dir := filepath.Join(t.TempDir(), "2.0.1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, archive.ComposeFile), []byte("services: {}\n"), 0o644))

	_, _, err := e.run(t, "", "versions", "upload", "myapp", dir)
	require.NoError(t, err)

	out, _, err := e.run(t, "", "versions", "list", "myapp")
	require.NoError(t, err)
	assert.Contains(t, out, "2.0.1")
}

func TestVersionsUploadRejectsNonZip(t *testing.T) {
	e := newCLIEnv(t)
	e.login(t)
	e.hub.SeedApp("alice", "myapp")
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	_, stderr, err := e.run(t, "", "versions", "upload", "myapp", path)
	require.ErrorIs(t, err, versions.ErrNotZip)
	assert.Contains(t, stderr, versions.NotZipMessage)
	assert.Equal(t, 0, e.hub.Calls(hubapi.PathVersionUpload))
}

func TestVersionsUploadInvalidBundle(t *testing.T) {
	e := newCLIEnv(t)
	e.login(t)
	e.hub.SeedApp("alice", "myapp")
	data, err := archive.Build(map[string][]byte{"README.md": []byte("no compose here")})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "1.0.zip")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, stderr, err := e.run(t, "", "versions", "upload", "myapp", path)
	require.Error(t, err)
	assert.True(t, Reported(err))
	assert.Contains(t, stderr, versions.InvalidVersionMessage)
}

func TestVersionsUnknownApp(t *testing.T) {
	e := newCLIEnv(t)
	e.login(t)
	_, _, err := e.run(t, "", "versions", "list", "nosuchapp")
	require.Error(t, err)
	assert.Equal(t, 0, e.hub.Calls(hubapi.PathVersionList))
}

func TestVersionsDownloadByID(t *testing.T) {
	e := newCLIEnv(t)
	e.login(t)
	data, err := archive.Build(map[string][]byte{archive.ComposeFile: []byte("services: {}\n")})
	require.NoError(t, err)
	appID := e.hub.SeedApp("carol", "ngrok")
	versionID := e.hub.SeedVersion(appID, "3.0.0", data)

	to := t.TempDir()
	_, _, err = e.run(t, "", "versions", "download", "--id", versionID, "--to", to)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(to, "carol_ngrok_3.0.0.zip"))
	require.NoError(t, err)
}

func TestVersionsDownloadArgs(t *testing.T) {
	e := newCLIEnv(t)
	_, _, err := e.run(t, "", "versions", "download", "myapp")
	require.Error(t, err)
	_, _, err = e.run(t, "", "versions", "download", "--id", "4", "myapp")
	require.Error(t, err)
}
