// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/apphub/hubclient/internal/i18n"
	"github.com/apphub/hubclient/internal/router"
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds every binding of the TUI. Form views only use ctrl
// combinations since plain keys are typed into the inputs.
type keyMap struct {
	Up, Down, Toggle, Open, New, Delete, Copy, Refresh, Back, Quit key.Binding
	Password, Logout, DeleteAccount, Upload, Download            key.Binding
	Next, Prev, Submit, Register, Validate, ToLogin              key.Binding
	AcceptTerms, ShowTerms                                       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", i18n.T("help.up"))),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", i18n.T("help.down"))),
		Toggle:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", i18n.T("help.select"))),
		Open:          key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", i18n.T("help.versions"))),
		New:           key.NewBinding(key.WithKeys("n"), key.WithHelp("n", i18n.T("help.new_app"))),
		Delete:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", i18n.T("help.delete"))),
		Copy:          key.NewBinding(key.WithKeys("c"), key.WithHelp("c", i18n.T("help.copy"))),
		Refresh:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", i18n.T("help.refresh"))),
		Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", i18n.T("help.back"))),
		Quit:          key.NewBinding(key.WithKeys("q"), key.WithHelp("q", i18n.T("help.quit"))),
		Password:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", i18n.T("help.password"))),
		Logout:        key.NewBinding(key.WithKeys("L"), key.WithHelp("L", i18n.T("help.logout"))),
		DeleteAccount: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", i18n.T("help.delete_account"))),
		Upload:        key.NewBinding(key.WithKeys("u"), key.WithHelp("u", i18n.T("help.upload"))),
		Download:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", i18n.T("help.download"))),
		Next:          key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", i18n.T("help.next"))),
		Prev:          key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", i18n.T("help.prev"))),
		Submit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", i18n.T("help.submit"))),
		Register:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", i18n.T("help.register"))),
		Validate:      key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", i18n.T("help.validate"))),
		ToLogin:       key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", i18n.T("help.login"))),
		AcceptTerms:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", i18n.T("help.accept_terms"))),
		ShowTerms:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", i18n.T("help.show_terms"))),
	}
}

// helpFor returns the bindings shown in the footer of route.
func (k keyMap) helpFor(r router.Route) []key.Binding {
	switch r {
	case router.Login:
		return []key.Binding{k.Next, k.Submit, k.Register, k.Validate}
	case router.Registration:
		return []key.Binding{k.Next, k.Submit, k.AcceptTerms, k.ShowTerms, k.ToLogin}
	case router.Validate:
		return []key.Binding{k.Submit, k.ToLogin}
	case router.ChangePassword:
		return []key.Binding{k.Next, k.Submit, k.Back}
	case router.Apps:
		return []key.Binding{k.Up, k.Down, k.Toggle, k.Open, k.New, k.Delete, k.Copy, k.Refresh, k.Password, k.Logout, k.DeleteAccount, k.Quit}
	case router.Versions:
		return []key.Binding{k.Up, k.Down, k.Toggle, k.Upload, k.Download, k.Delete, k.Copy, k.Refresh, k.Back, k.Quit}
	default:
		return []key.Binding{k.Back, k.Quit}
	}
}
