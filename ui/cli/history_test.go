// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"testing"

	"github.com/apphub/hubclient/internal/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRecordsActions(t *testing.T) {
	e := newCLIEnv(t)
	e.login(t)
	_, _, err := e.run(t, "", "apps", "create", "myapp")
	require.NoError(t, err)
	_, _, err = e.run(t, "", "--yes", "apps", "delete", "myapp")
	require.NoError(t, err)

	out, _, err := e.run(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, account.ActionLogin)
	assert.Contains(t, out, account.ActionCreateApp)
	assert.Contains(t, out, account.ActionDeleteApp)
	assert.Contains(t, out, "alice")

	out, _, err = e.run(t, "", "history", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, e.url)
}

func TestHistoryLimit(t *testing.T) {
	e := newCLIEnv(t)
	e.login(t)
	_, _, err := e.run(t, "", "apps", "create", "myapp")
	require.NoError(t, err)

	out, _, err := e.run(t, "", "history", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, account.ActionCreateApp)
	assert.NotContains(t, out, account.ActionLogin)
}

func TestHistoryPrune(t *testing.T) {
	e := newCLIEnv(t)
	e.login(t)

	_, _, err := e.run(t, "", "history", "prune", "--older-than", "0s")
	require.NoError(t, err)

	out, _, err := e.run(t, "", "history")
	require.NoError(t, err)
	assert.NotContains(t, out, account.ActionLogin)
}
