// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"

	"github.com/apphub/hubclient/internal/account"
	"github.com/apphub/hubclient/internal/apps"
	"github.com/apphub/hubclient/internal/i18n"
	"github.com/apphub/hubclient/internal/model"
	"github.com/apphub/hubclient/internal/router"
	"github.com/spf13/cobra"
)

func newAppsCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Manage your apps",
	}
	cmd.AddCommand(
		newAppsListCmd(st),
		newAppsCreateCmd(st),
		newAppsDeleteCmd(st),
		newAppsSearchCmd(st),
	)
	return cmd
}

// openApps enters app management and loads the app list.
func (s *state) openApps(ctx context.Context) (*apps.Manager, error) {
	if err := s.enter(ctx, router.Apps.String()); err != nil {
		return nil, err
	}
	mgr := apps.New(s.client, s.session)
	if err := mgr.Refresh(ctx); err != nil {
		return nil, err
	}
	return mgr, nil
}

// selectApp selects the app named or identified by ref.
func selectApp(mgr *apps.Manager, ref string) (model.App, error) {
	for _, a := range mgr.Apps() {
		if a.ID == ref || a.Name == ref {
			mgr.Toggle(a.ID)
			return a, nil
		}
	}
	return model.App{}, fmt.Errorf("no app %q among your apps", ref)
}

func newAppsListCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your apps",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := st.openApps(cmd.Context())
			if err != nil {
				return err
			}
			list := mgr.Apps()
			if len(list) == 0 {
				st.printf("%s\n", i18n.T("apps.empty"))
				return nil
			}
			rows := make([][]string, 0, len(list))
			for _, a := range list {
				rows = append(rows, []string{a.Name, a.ID, a.Maintainer})
			}
			st.table([]string{i18n.T("cli.col_name"), i18n.T("cli.col_id"), i18n.T("cli.col_maintainer")}, rows)
			return nil
		},
	}
}

func newAppsCreateCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := st.openApps(cmd.Context())
			if err != nil {
				return err
			}
			name := args[0]
			if err := mgr.Create(cmd.Context(), name); err != nil {
				if msg := mgr.InvalidMessage(); msg != "" {
					_, _ = fmt.Fprintln(st.errOut, alertStyle.Render(msg))
				}
				return err
			}
			st.account.Record(cmd.Context(), account.ActionCreateApp, name)
			st.success(i18n.T("apps.created", name))
			return nil
		},
	}
}

func newAppsDeleteCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <app>",
		Short: "Delete an app and all of its versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := st.openApps(cmd.Context())
			if err != nil {
				return err
			}
			app, err := selectApp(mgr, args[0])
			if err != nil {
				return err
			}
			if err := mgr.RequestDelete(); err != nil {
				return err
			}
			if !st.confirm(i18n.T("apps.delete_question", app.Name)) {
				mgr.Cancel()
				return errAborted
			}
			if err := mgr.Confirm(cmd.Context()); err != nil {
				return err
			}
			st.account.Record(cmd.Context(), account.ActionDeleteApp, app.Name)
			st.success(i18n.T("apps.deleted", app.Name))
			return nil
		},
	}
}

func newAppsSearchCmd(st *state) *cobra.Command {
	var unofficial bool
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search the hub by app name or maintainer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			found, err := st.client.SearchApps(cmd.Context(), term, unofficial)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				st.printf("%s\n", i18n.T("cli.search_empty"))
				return nil
			}
			rows := make([][]string, 0, len(found))
			for _, a := range found {
				rows = append(rows, []string{a.AppName, a.Maintainer, a.LatestVersionName, a.LatestVersionID})
			}
			st.table([]string{
				i18n.T("cli.col_name"), i18n.T("cli.col_maintainer"),
				i18n.T("cli.col_latest"), i18n.T("cli.col_version_id"),
			}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&unofficial, "unofficial", false, "Include apps not maintained by the hub operators")
	return cmd
}
