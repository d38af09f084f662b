// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui is the interactive terminal client. The top-level model routes
// between views through the route guard, so a protected view never renders
// before the session is known to be valid.
package tui // import "github.com/apphub/hubclient/internal/tui"

import (
	"context"
	"errors"
	"strings"

	"github.com/apphub/hubclient/internal/account"
	"github.com/apphub/hubclient/internal/apps"
	"github.com/apphub/hubclient/internal/hubapi"
	"github.com/apphub/hubclient/internal/i18n"
	"github.com/apphub/hubclient/internal/router"
	"github.com/apphub/hubclient/internal/session"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Deps wires the TUI to the client services.
type Deps struct {
	Hub     hubapi.Hub
	Session *session.Store
	Guard   *router.Guard
	Account *account.Service
	// Alerts carries the messages of failed hub requests.
	Alerts <-chan string
	// Downloads is the directory downloaded versions are written to.
	Downloads string
	// Start is the first path to navigate to, "/" when empty.
	Start string
}

// navigatedMsg carries the guard's decision for a navigation.
type navigatedMsg struct {
	decision router.Decision
}

type alertMsg string

// resultMsg ends a background operation. after runs on success, inside the
// update loop.
type resultMsg struct {
	err      error
	status   string
	navigate string
	// quiet suppresses the status line for errors already shown inline.
	quiet bool
	after func(m *mainModel)
}

type mainModel struct {
	ctx  context.Context
	deps Deps
	keys keyMap

	route      router.Route
	navigating bool
	busy       bool

	spinner spinner.Model
	help    help.Model

	alert     string
	status    string
	statusErr bool

	login         *formModel
	registration  *formModel
	termsAccepted bool
	validate      *formModel
	password      *formModel

	apps     *appsModel
	versions *versionsModel

	width, height int
}

func newModel(ctx context.Context, deps Deps) mainModel {
	if deps.Start == "" {
		deps.Start = string(router.Apps)
	}
	if deps.Downloads == "" {
		deps.Downloads = "."
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedItemStyle
	return mainModel{
		ctx:        ctx,
		deps:       deps,
		keys:       newKeyMap(),
		navigating: true,
		spinner:    sp,
		help:       help.New(),
		apps:       newAppsModel(apps.New(deps.Hub, deps.Session)),
	}
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(newModel(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m mainModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.navigateCmd(m.deps.Start), waitForAlert(m.deps.Alerts))
}

func waitForAlert(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return alertMsg(msg)
	}
}

func (m mainModel) navigateCmd(path string) tea.Cmd {
	guard, ctx := m.deps.Guard, m.ctx
	return func() tea.Msg {
		return navigatedMsg{decision: guard.Navigate(ctx, path)}
	}
}

// goTo starts a navigation. Input is ignored until the guard decided.
func (m *mainModel) goTo(path string) tea.Cmd {
	m.navigating = true
	return m.navigateCmd(path)
}

// run executes fn in the background and marks the model busy until it ends.
func (m *mainModel) run(fn func(ctx context.Context) resultMsg) tea.Cmd {
	m.busy = true
	ctx := m.ctx
	return func() tea.Msg { return fn(ctx) }
}

func (m *mainModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case alertMsg:
		m.alert = string(msg)
		return m, waitForAlert(m.deps.Alerts)

	case navigatedMsg:
		m.navigating = false
		return m, m.enter(msg.decision)

	case resultMsg:
		return m, m.finish(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.navigating || m.busy {
			return m, nil
		}
		m.alert = ""
		return m, m.updateRoute(msg)
	}
	return m, nil
}

// enter prepares the view the guard decided on.
func (m *mainModel) enter(d router.Decision) tea.Cmd {
	m.route = d.Route
	if d.Redirected() && d.Route == router.Login {
		m.setStatus(i18n.T("status.login_required"), false)
	}
	switch d.Route {
	case router.Login:
		m.login = newForm(i18n.T("login.title"),
			field{prompt: i18n.T("form.username"), placeholder: "sample"},
			field{prompt: i18n.T("form.password"), secret: true})
	case router.Registration:
		if m.registration == nil {
			m.registration = newForm(i18n.T("registration.title"),
				field{prompt: i18n.T("form.username"), placeholder: "sample"},
				field{prompt: i18n.T("form.password"), secret: true},
				field{prompt: i18n.T("form.email"), placeholder: "sample@example.com"})
		}
	case router.Validate:
		m.validate = newForm(i18n.T("validate.title"),
			field{prompt: i18n.T("form.code")})
	case router.ChangePassword:
		m.password = newForm(i18n.T("password.title"),
			field{prompt: i18n.T("form.old_password"), secret: true},
			field{prompt: i18n.T("form.new_password"), secret: true})
	case router.Apps:
		return m.refreshApps()
	case router.Versions:
		return m.openVersions()
	}
	return nil
}

// finish applies the outcome of a background operation.
func (m *mainModel) finish(r resultMsg) tea.Cmd {
	m.busy = false
	if r.err != nil {
		if hubapi.IsUnauthorized(r.err) && m.route != router.Login {
			// the session is gone; the guard sends us to the login
			return m.goTo(string(m.route))
		}
		var he *hubapi.Error
		if !r.quiet && !errors.As(r.err, &he) {
			m.setStatus(r.err.Error(), true)
		}
		return nil
	}
	if r.after != nil {
		r.after(m)
	}
	if r.status != "" {
		m.setStatus(r.status, false)
	}
	if r.navigate != "" {
		return m.goTo(r.navigate)
	}
	return nil
}

func (m *mainModel) updateRoute(msg tea.KeyMsg) tea.Cmd {
	switch m.route {
	case router.Login:
		return m.updateLogin(msg)
	case router.Registration:
		return m.updateRegistration(msg)
	case router.Validate:
		return m.updateValidate(msg)
	case router.Terms:
		switch msg.String() {
		case "esc", "enter", "q":
			return m.goTo(string(router.Registration))
		}
	case router.ChangePassword:
		return m.updatePassword(msg)
	case router.Apps:
		return m.updateApps(msg)
	case router.Versions:
		return m.updateVersions(msg)
	case router.NotFound:
		switch msg.String() {
		case "q":
			return tea.Quit
		case "esc", "enter":
			return m.goTo(string(router.Apps))
		}
	}
	return nil
}

func (m mainModel) View() string {
	var b strings.Builder

	user := ""
	if snap := m.deps.Session.Snapshot(); snap.IsAuthenticated {
		user = helpStyle.Render(i18n.T("header.user", snap.User))
	}
	b.WriteString(AlignFooter(titleStyle.Render("hubclient"), user, m.width-4))
	b.WriteString("\n")

	if m.alert != "" {
		b.WriteString(alertStyle.Render(m.alert))
		b.WriteString("\n\n")
	}

	switch {
	case m.navigating:
		b.WriteString(m.spinner.View() + " " + i18n.T("status.checking_session"))
		b.WriteString("\n")
		return docStyle.Render(b.String())
	case m.busy:
		b.WriteString(m.spinner.View() + " " + i18n.T("status.working"))
		b.WriteString("\n")
		return docStyle.Render(b.String())
	}

	b.WriteString(m.viewRoute())
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(statusMessageStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView(m.keys.helpFor(m.route)))
	return docStyle.Render(b.String())
}

func (m mainModel) viewRoute() string {
	switch m.route {
	case router.Login:
		return m.login.View()
	case router.Registration:
		return m.viewRegistration()
	case router.Validate:
		return m.validate.View() + "\n" + helpStyle.Render(i18n.T("validate.hint"))
	case router.Terms:
		return titleStyle.Render(i18n.T("terms.title")) + "\n" + lipgloss.NewStyle().Width(72).Render(i18n.T("terms.body"))
	case router.ChangePassword:
		return m.password.View()
	case router.Apps:
		return m.viewApps()
	case router.Versions:
		return m.viewVersions()
	default:
		return titleStyle.Render(i18n.T("notfound.title")) + "\n" + i18n.T("notfound.body")
	}
}
