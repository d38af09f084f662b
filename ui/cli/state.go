// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/apphub/hubclient/config"
	"github.com/apphub/hubclient/internal/account"
	"github.com/apphub/hubclient/internal/db"
	"github.com/apphub/hubclient/internal/hubapi"
	"github.com/apphub/hubclient/internal/i18n"
	"github.com/apphub/hubclient/internal/logging"
	"github.com/apphub/hubclient/internal/router"
	"github.com/apphub/hubclient/internal/session"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrLoginRequired is returned by protected commands when no valid session
// exists.
var ErrLoginRequired = errors.New("not logged in, run 'hubclient login' first")

var (
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// state holds the services of one command run.
type state struct {
	cfg        config.Config
	configPath string
	store      *db.Store
	client     *hubapi.Client
	session    *session.Store
	guard      *router.Guard
	account    *account.Service
	prompt     *prompter

	out    io.Writer
	errOut io.Writer
	// alerts is set while the TUI runs; the CLI prints alerts instead.
	alerts chan string
}

func (s *state) setup(cmd *cobra.Command) error {
	configPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig[config.Config](cmd, config.Defaults(), configPath)
	// A "file not found" error is expected on first run.
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		if path, writeErr := config.WriteConfigFile(&cfg, false); writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		} else {
			logging.Debugf("wrote default config to %s", path)
			s.configPath = path
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if configPath != nil {
		s.configPath = *configPath
	}
	s.cfg = cfg

	if cfg.Log.Level != "" && !verbose {
		if err := logging.SetLevel(cfg.Log.Level); err != nil {
			logging.Warnf("%v", err)
		}
	}
	db.SetDebug(verbose)
	i18n.Init(cfg.Language)

	s.out = cmd.OutOrStdout()
	s.errOut = cmd.ErrOrStderr()
	s.prompt = newPrompter(cmd)

	store, err := db.NewStoreFromDSN(cfg.Database.Type, cfg.Database.Dsn)
	if err != nil {
		return fmt.Errorf("could not open local database: %w", err)
	}
	s.store = store

	s.session = session.New()
	client, err := hubapi.New(cfg.Server.URL,
		hubapi.WithTimeout(cfg.Server.Timeout),
		hubapi.WithCredentialStore(store),
		hubapi.WithAlerter(hubapi.AlerterFunc(s.alert)),
		hubapi.WithUnauthorizedHandler(s.session.Invalidate),
	)
	if err != nil {
		return err
	}
	s.client = client
	if _, err := client.Restore(cmd.Context()); err != nil {
		logging.Warnf("%v", err)
	}

	s.guard = router.New(s.session, client)
	s.account = account.New(client, s.session, account.WithRecorder(store, client.Server()))
	return nil
}

func (s *state) close() error {
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}

func (s *state) alert(message string) {
	if s.alerts != nil {
		select {
		case s.alerts <- message:
		default:
			logging.Warnf("dropped alert: %s", message)
		}
		return
	}
	_, _ = fmt.Fprintln(s.errOut, alertStyle.Render(i18n.T("cli.alert", message)))
}

// enter navigates the guard to path and fails when the route needs a
// session that the hub does not confirm.
func (s *state) enter(ctx context.Context, path string) error {
	d := s.guard.Navigate(ctx, path)
	if d.Route == router.Login && d.Requested != router.Login {
		return ErrLoginRequired
	}
	if d.Redirected() {
		return fmt.Errorf("%s is not available, ended up at %s", d.Requested, d.Route)
	}
	return nil
}

func (s *state) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *state) success(message string) {
	_, _ = fmt.Fprintln(s.out, successStyle.Render(message))
}

// confirm asks question unless --yes was given.
func (s *state) confirm(question string) bool {
	return assumeYes || s.prompt.confirm(question)
}

func (s *state) table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	_, _ = fmt.Fprintln(s.out, t.Render())
}
