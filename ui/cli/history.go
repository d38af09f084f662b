// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"time"

	"github.com/apphub/hubclient/internal/db"
	"github.com/apphub/hubclient/internal/i18n"
	"github.com/spf13/cobra"
)

func newHistoryCmd(st *state) *cobra.Command {
	var limit int
	var all bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the actions recorded on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := st.client.Server()
			if all {
				server = ""
			}
			entries, err := st.store.RecentActivity(cmd.Context(), server, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				st.printf("%s\n", i18n.T("cli.history_empty"))
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				row := []string{e.Timestamp.Local().Format(time.DateTime), e.Username, e.Action, e.Details}
				if all {
					row = append(row, e.Server)
				}
				rows = append(rows, row)
			}
			headers := []string{i18n.T("cli.col_time"), i18n.T("cli.col_user"), i18n.T("cli.col_action"), i18n.T("cli.col_details")}
			if all {
				headers = append(headers, i18n.T("cli.col_server"))
			}
			st.table(headers, rows)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", db.DefaultActivityLimit, "Number of entries to show")
	cmd.Flags().BoolVar(&all, "all", false, "Include every hub server, not only the configured one")

	var olderThan time.Duration
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete recorded actions older than --older-than",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := st.store.PruneActivity(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			st.success(i18n.T("cli.history_pruned", n))
			return nil
		},
	}
	prune.Flags().DurationVar(&olderThan, "older-than", 90*24*time.Hour, "Age of the entries to delete")
	cmd.AddCommand(prune)
	return cmd
}
