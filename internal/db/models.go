// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"time"

	"github.com/apphub/hubclient/internal/model"
	"github.com/apphub/hubclient/internal/security"
	"github.com/uptrace/bun"
)

const (
	credentialsTable = "credentials"
	activityTable    = "activity"
)

// credentialModel holds one session cookie per hub server.
type credentialModel struct {
	bun.BaseModel `bun:"table:credentials"`

	Server    string    `bun:"server,pk"`
	Username  string    `bun:"username,notnull"`
	Cookie    string    `bun:"cookie,notnull"`
	ExpiresAt time.Time `bun:"expires_at,nullzero"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

type activityModel struct {
	bun.BaseModel `bun:"table:activity"`

	ID        int64     `bun:"id,pk,autoincrement"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	Server    string    `bun:"server,notnull"`
	Username  string    `bun:"username"`
	Action    string    `bun:"action,notnull"`
	Details   string    `bun:"details"`
}

func credentialToModel(m credentialModel) model.Credential {
	return model.Credential{
		Server:    m.Server,
		User:      m.Username,
		Cookie:    security.FromString(m.Cookie),
		ExpiresAt: m.ExpiresAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func activityToModel(m activityModel) model.Activity {
	return model.Activity{
		ID:        int(m.ID),
		Timestamp: m.CreatedAt,
		Server:    m.Server,
		Username:  m.Username,
		Action:    m.Action,
		Details:   m.Details,
	}
}
