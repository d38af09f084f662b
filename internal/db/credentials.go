// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/apphub/hubclient/internal/model"
	"github.com/uptrace/bun"
)

// LoadCredential returns the stored session for server, or nil if none.
func (s *Store) LoadCredential(ctx context.Context, server string) (*model.Credential, error) {
	var m credentialModel
	err := s.bun.NewSelect().Model(&m).Where("server = ?", server).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, MapDBError(err)
	}
	c := credentialToModel(m)
	return &c, nil
}

// SaveCredential stores cred, replacing any previous session for its server.
func (s *Store) SaveCredential(ctx context.Context, cred model.Credential) error {
	if cred.UpdatedAt.IsZero() {
		cred.UpdatedAt = time.Now().UTC()
	}
	m := &credentialModel{
		Server:    cred.Server,
		Username:  cred.User,
		Cookie:    cred.Cookie.Reveal(),
		ExpiresAt: cred.ExpiresAt,
		UpdatedAt: cred.UpdatedAt,
	}
	// delete+insert keeps the upsert portable across dialects
	err := s.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*credentialModel)(nil)).Where("server = ?", cred.Server).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(m).Exec(ctx)
		return err
	})
	if err != nil {
		return MapDBError(err)
	}
	dbLogf("db: stored session for %s", cred.Server)
	return nil
}

// DeleteCredential forgets the session for server. Deleting a missing
// session is not an error.
func (s *Store) DeleteCredential(ctx context.Context, server string) error {
	_, err := s.bun.NewDelete().Model((*credentialModel)(nil)).Where("server = ?", server).Exec(ctx)
	return MapDBError(err)
}
