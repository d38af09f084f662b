// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type field struct {
	prompt      string
	placeholder string
	secret      bool
}

// formModel is a vertical list of text inputs with one focused at a time.
type formModel struct {
	title  string
	inputs []textinput.Model
	focus  int
}

func newTextInput(f field) textinput.Model {
	t := textinput.New()
	t.Prompt = f.prompt
	t.Placeholder = f.placeholder
	t.CharLimit = 128
	t.Width = 40
	t.Cursor.Style = focusedStyle
	_ = t.Cursor.SetMode(cursor.CursorStatic)
	if f.secret {
		t.EchoMode = textinput.EchoPassword
		t.EchoCharacter = '•'
	}
	return t
}

func newForm(title string, fields ...field) *formModel {
	f := &formModel{title: title}
	width := 0
	for _, fd := range fields {
		if len(fd.prompt) > width {
			width = len(fd.prompt)
		}
	}
	for _, fd := range fields {
		fd.prompt += strings.Repeat(" ", width-len(fd.prompt)+1)
		f.inputs = append(f.inputs, newTextInput(fd))
	}
	f.setFocus(0)
	return f
}

func (f *formModel) setFocus(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
			f.inputs[j].PromptStyle = focusedStyle
			f.inputs[j].TextStyle = focusedStyle
		} else {
			f.inputs[j].Blur()
			f.inputs[j].PromptStyle = itemStyle
			f.inputs[j].TextStyle = itemStyle
		}
	}
}

// Value returns the trimmed content of input i.
func (f *formModel) Value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// Raw returns the content of input i unchanged, for passwords.
func (f *formModel) Raw(i int) string {
	return f.inputs[i].Value()
}

func (f *formModel) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.setFocus(0)
}

// Update moves the focus or forwards the key to the focused input.
func (f *formModel) Update(msg tea.KeyMsg, k keyMap) tea.Cmd {
	switch {
	case key.Matches(msg, k.Next):
		f.setFocus((f.focus + 1) % len(f.inputs))
		return nil
	case key.Matches(msg, k.Prev):
		f.setFocus((f.focus + len(f.inputs) - 1) % len(f.inputs))
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *formModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n")
	for _, in := range f.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	return b.String()
}
