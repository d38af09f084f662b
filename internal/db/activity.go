// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"time"

	"github.com/apphub/hubclient/internal/model"
)

// DefaultActivityLimit is used by RecentActivity when limit is not positive.
const DefaultActivityLimit = 50

// LogAction appends an entry to the activity trail.
func (s *Store) LogAction(ctx context.Context, entry model.Activity) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	m := &activityModel{
		CreatedAt: entry.Timestamp,
		Server:    entry.Server,
		Username:  entry.Username,
		Action:    entry.Action,
		Details:   entry.Details,
	}
	_, err := s.bun.NewInsert().Model(m).Exec(ctx)
	return MapDBError(err)
}

// RecentActivity returns the newest entries first. An empty server returns
// entries for every server.
func (s *Store) RecentActivity(ctx context.Context, server string, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	var rows []activityModel
	q := s.bun.NewSelect().Model(&rows).OrderExpr("created_at DESC, id DESC").Limit(limit)
	if server != "" {
		q = q.Where("server = ?", server)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, MapDBError(err)
	}
	out := make([]model.Activity, 0, len(rows))
	for _, r := range rows {
		out = append(out, activityToModel(r))
	}
	return out, nil
}

// PruneActivity removes entries older than before and reports how many.
func (s *Store) PruneActivity(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.bun.NewDelete().Model((*activityModel)(nil)).Where("created_at < ?", before).Exec(ctx)
	if err != nil {
		return 0, MapDBError(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
