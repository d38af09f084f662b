// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, its persistent flags and the entry point
// used by the hubclient binary.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"

	"github.com/apphub/hubclient/buildvars"
	"github.com/apphub/hubclient/config"
	"github.com/apphub/hubclient/internal/hubapi"
	"github.com/apphub/hubclient/internal/logging"
	"github.com/apphub/hubclient/internal/tui"
	"github.com/spf13/cobra"
)

const modulePath = "github.com/apphub/hubclient"

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)
var cfgFile string
var verbose bool
var assumeYes bool

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cmd, st := newRootCmd()
	defer func() { _ = st.close() }()
	return cmd.ExecuteContext(ctx)
}

// Reported tells whether err was already shown to the user as a hub alert.
func Reported(err error) bool {
	var hubErr *hubapi.Error
	return errors.As(err, &hubErr)
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	// Make sure the user-provided file exists to avoid unwanted behavior.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// NewRootCmd creates and configures a new root cobra command. Every call
// builds fresh subcommands, so tests can run isolated instances.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *state) {
	st := &state{}

	cmd := &cobra.Command{
		Use:   "hubclient",
		Short: "hubclient manages apps and versions on a software distribution hub.",
		Long: `hubclient is the client of a software distribution hub. Maintainers
register an account, create apps and upload zipped docker-compose bundles as
versions; anyone can search the hub and download them.

Running without a subcommand will launch the interactive TUI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logging.SetDebug(true)
			}
			return st.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.runTUI(cmd)
		},
	}

	v, c, d := resolveBuildVersion(nil)
	compositeVersion := v
	if c != "" && c != "dev" {
		compositeVersion = compositeVersion + " (" + c + ")"
	}
	if d != "" {
		compositeVersion = compositeVersion + " built: " + d
	}
	cmd.Version = compositeVersion

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to every confirmation")
	flags.StringVar(&cfgFile, "config", "", "config file")
	flags.String("server", "", "Hub base URL, e.g. https://hub.example.com")
	flags.Duration("timeout", 0, "Per-request timeout, 0 disables it (default 30s)")
	flags.String("db-type", "", `Local database type ("sqlite", "postgres", "mysql")`)
	flags.String("db-dsn", "", "Local database connection string (DSN)")
	flags.String("language", "", `UI language ("en", "de")`)
	flags.String("downloads", "", "Directory downloaded versions are written to")
	flags.String("log-level", "", `Log level ("debug", "info", "warn", "error")`)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		// no services needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "version: %s\n", v)
			_, _ = fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				_, _ = fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}

	cmd.AddCommand(
		newRegisterCmd(st),
		newValidateCmd(st),
		newLoginCmd(st),
		newLogoutCmd(st),
		newWhoamiCmd(st),
		newChangePasswordCmd(st),
		newDeleteAccountCmd(st),
		newAppsCmd(st),
		newVersionsCmd(st),
		newHistoryCmd(st),
		newDebugCmd(st),
		newDBMaintainCmd(st),
		versionCmd,
	)

	return cmd, st
}

// runTUI starts the terminal UI. Logs go to a file while the alternate
// screen is up and hub failures reach the UI as alerts.
func (s *state) runTUI(cmd *cobra.Command) error {
	logOut := openLogFile()
	logging.SetOutput(logOut)
	defer func() {
		logging.SetOutput(os.Stderr)
		if c, ok := logOut.(io.Closer); ok {
			_ = c.Close()
		}
	}()

	s.alerts = make(chan string, 16)
	return tui.Run(cmd.Context(), tui.Deps{
		Hub:       s.client,
		Session:   s.session,
		Guard:     s.guard,
		Account:   s.account,
		Alerts:    s.alerts,
		Downloads: s.cfg.Downloads,
	})
}

func openLogFile() io.Writer {
	path, err := config.GetConfigPath(false)
	if err != nil {
		return io.Discard
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(filepath.Join(dir, "hubclient.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return io.Discard
	}
	return f
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Some build paths only record our module as a dependency.
		if (resolvedVersion == "dev" || resolvedVersion == "(devel)") && info.Deps != nil {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}

		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// As a last resort show the commit passed via ldflags.
	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
