// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apphub/hubclient/internal/i18n"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// prompter reads answers from the command's input. All prompts of one run
// share the reader so piped input is consumed line by line.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	// tty is set when input is a terminal; secrets are then read unechoed.
	tty *os.File
}

func newPrompter(cmd *cobra.Command) *prompter {
	p := &prompter{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.tty = f
	}
	return p
}

func (p *prompter) line(label string) (string, error) {
	_, _ = fmt.Fprint(p.out, label+": ")
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("no input for %q", label)
		}
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func (p *prompter) secret(label string) (string, error) {
	if p.tty == nil {
		return p.line(label)
	}
	_, _ = fmt.Fprint(p.out, label+": ")
	b, err := term.ReadPassword(int(p.tty.Fd()))
	_, _ = fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("could not read %s: %w", strings.ToLower(label), err)
	}
	return string(b), nil
}

// confirm reads a y/N answer. Anything but yes, including no input, is no.
func (p *prompter) confirm(question string) bool {
	ans, err := p.line(question + " [" + i18n.T("cli.yes_no") + "]")
	if err != nil {
		return false
	}
	switch strings.ToLower(ans) {
	case "y", "yes", "j", "ja":
		return true
	}
	return false
}

// valueOrPrompt returns value, or asks for it when empty.
func (p *prompter) valueOrPrompt(value, label string, secret bool) (string, error) {
	if value != "" {
		return value, nil
	}
	if secret {
		return p.secret(label)
	}
	return p.line(label)
}
