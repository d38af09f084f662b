// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"sort"
	"strings"

	"github.com/apphub/hubclient/config"
	"github.com/apphub/hubclient/internal/db"
	"github.com/apphub/hubclient/internal/i18n"
	"github.com/spf13/cobra"
)

// newDebugCmd prints what the client resolved from its configuration. It
// never contacts the hub.
func newDebugCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Show the resolved configuration and local state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, c, _ := resolveBuildVersion(nil)
			userPath, _ := config.GetConfigPath(false)
			systemPath, _ := config.GetConfigPath(true)

			locales := i18n.GetAvailableLocales()
			names := make([]string, 0, len(locales))
			for code, name := range locales {
				names = append(names, code+" ("+name+")")
			}
			sort.Strings(names)

			loggedInAs := "-"
			if cred, err := st.store.LoadCredential(cmd.Context(), st.client.Server()); err == nil && cred != nil {
				loggedInAs = cred.User
			}

			st.printf("version:        %s (%s)\n", v, c)
			st.printf("config in use:  %s\n", orDash(st.configPath))
			st.printf("user config:    %s\n", userPath)
			st.printf("system config:  %s\n", systemPath)
			st.printf("server:         %s (timeout %s)\n", st.client.Server(), st.cfg.Server.Timeout)
			st.printf("database:       %s %s\n", st.store.Type(), st.cfg.Database.Dsn)
			st.printf("stored session: %s\n", loggedInAs)
			st.printf("downloads:      %s\n", st.cfg.Downloads)
			st.printf("language:       %s [%s]\n", i18n.GetLang(), strings.Join(names, ", "))
			return nil
		},
	}
}

func newDBMaintainCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "db-maintain",
		Short: "Run engine-specific maintenance on the local database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// maintenance opens its own connection
			if err := st.close(); err != nil {
				return err
			}
			if err := db.RunDBMaintenance(st.cfg.Database.Type, st.cfg.Database.Dsn); err != nil {
				return err
			}
			st.success(i18n.T("cli.maintenance_done"))
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
