// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"

	"github.com/apphub/hubclient/internal/account"
	"github.com/apphub/hubclient/internal/i18n"
	"github.com/apphub/hubclient/internal/model"
	"github.com/apphub/hubclient/internal/router"
	"github.com/apphub/hubclient/internal/versions"
	"github.com/spf13/cobra"
)

func newVersionsCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Manage the versions of one of your apps",
	}
	cmd.AddCommand(
		newVersionsListCmd(st),
		newVersionsUploadCmd(st),
		newVersionsDownloadCmd(st),
		newVersionsDeleteCmd(st),
	)
	return cmd
}

// openVersions selects appRef among the user's apps, enters version
// management and loads its versions.
func (s *state) openVersions(ctx context.Context, appRef string) (*versions.Manager, model.App, error) {
	mgr, err := s.openApps(ctx)
	if err != nil {
		return nil, model.App{}, err
	}
	app, err := selectApp(mgr, appRef)
	if err != nil {
		return nil, model.App{}, err
	}
	if err := s.enter(ctx, router.Versions.String()); err != nil {
		return nil, app, err
	}
	vm, err := versions.New(s.client, s.session.Snapshot().SelectedAppID)
	if err != nil {
		return nil, app, err
	}
	if err := vm.List(ctx); err != nil {
		return nil, app, err
	}
	return vm, app, nil
}

// selectVersion selects the version named or identified by ref.
func selectVersion(vm *versions.Manager, ref string) (model.Version, error) {
	for _, v := range vm.Versions() {
		if v.ID == ref || v.Name == ref {
			vm.Toggle(v.ID)
			return v, nil
		}
	}
	return model.Version{}, fmt.Errorf("no version %q in this app", ref)
}

func newVersionsListCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:     "list <app>",
		Aliases: []string{"ls"},
		Short:   "List the versions of an app",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, app, err := st.openVersions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			list := vm.Versions()
			if len(list) == 0 {
				st.printf("%s\n", i18n.T("versions.empty"))
				return nil
			}
			rows := make([][]string, 0, len(list))
			for _, v := range list {
				rows = append(rows, []string{v.Name, v.ID, v.Created()})
			}
			st.printf("%s\n", i18n.T("versions.title", app.Name))
			st.table([]string{i18n.T("cli.col_name"), i18n.T("cli.col_id"), i18n.T("cli.col_created")}, rows)
			return nil
		},
	}
}

func newVersionsUploadCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <app> <file.zip|dir>",
		Short: "Upload a zipped bundle as a new version",
		Long: `Uploads a zip archive as a new version; the version is named after the
file without its .zip extension. A directory is zipped in memory and named
after itself.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileName, content, err := versions.ReadUpload(args[1])
			if err != nil {
				return err
			}
			vm, app, err := st.openVersions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := vm.Upload(cmd.Context(), fileName, content); err != nil {
				if msg := vm.InvalidMessage(); msg != "" {
					_, _ = fmt.Fprintln(st.errOut, alertStyle.Render(msg))
				}
				return err
			}
			st.account.Record(cmd.Context(), account.ActionUploadVersion, app.Name+"/"+fileName)
			st.success(i18n.T("versions.uploaded", fileName))
			return nil
		},
	}
}

func newVersionsDownloadCmd(st *state) *cobra.Command {
	var dir, versionID string
	cmd := &cobra.Command{
		Use:   "download [<app> <version>]",
		Short: "Download a version into the downloads directory",
		Long: `Downloads one of your versions by app and version name or id. With --id
any version on the hub can be fetched, e.g. one found with 'apps search'.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if versionID != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = st.cfg.Downloads
			}
			var info *model.FullVersionInfo
			if versionID != "" {
				if err := st.enter(cmd.Context(), router.Apps.String()); err != nil {
					return err
				}
				var err error
				if info, err = st.client.DownloadVersion(cmd.Context(), versionID); err != nil {
					return err
				}
			} else {
				vm, _, err := st.openVersions(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if _, err := selectVersion(vm, args[1]); err != nil {
					return err
				}
				if info, err = vm.Download(cmd.Context()); err != nil {
					return err
				}
			}
			path, err := versions.SaveDownload(dir, info)
			if err != nil {
				return err
			}
			st.account.Record(cmd.Context(), account.ActionDownload, info.AppName+"/"+info.VersionName)
			st.success(i18n.T("versions.downloaded", path))
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "to", "o", "", "Target directory (default from config)")
	cmd.Flags().StringVar(&versionID, "id", "", "Download the version with this id")
	return cmd
}

func newVersionsDeleteCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <app> <version>",
		Short: "Delete a version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, app, err := st.openVersions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ver, err := selectVersion(vm, args[1])
			if err != nil {
				return err
			}
			if err := vm.RequestDelete(); err != nil {
				return err
			}
			if !st.confirm(i18n.T("versions.delete_question", ver.Name)) {
				vm.Cancel()
				return errAborted
			}
			if err := vm.Confirm(cmd.Context()); err != nil {
				return err
			}
			st.account.Record(cmd.Context(), account.ActionDeleteVersion, app.Name+"/"+ver.Name)
			st.success(i18n.T("versions.deleted", ver.Name))
			return nil
		},
	}
}
