package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// isInteractive reports whether both stdin and stdout are terminals.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// cliPrompter asks questions on the terminal. It satisfies the admin
// console's Confirmer and Prompter.
type cliPrompter struct{}

// Confirm asks a y/N question. A declined confirm is not an error.
func (cliPrompter) Confirm(message string) (bool, error) {
	p := promptui.Prompt{Label: message, IsConfirm: true}
	_, err := p.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	case errors.Is(err, promptui.ErrInterrupt):
		return false, nil
	default:
		return false, err
	}
}

// Prompt asks for free text, prefilled with initial. Ctrl+C cancels.
func (cliPrompter) Prompt(message, initial string) (string, bool, error) {
	p := promptui.Prompt{Label: message, Default: initial, AllowEdit: true}
	text, err := p.Run()
	switch {
	case err == nil:
		return text, true, nil
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return "", false, nil
	default:
		return "", false, err
	}
}

// readLine prompts for one line, using promptui on a terminal and plain
// stdin otherwise.
func readLine(label string) (string, error) {
	if isInteractive() {
		p := promptui.Prompt{Label: label}
		return p.Run()
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads a secret without echo. Piped input is read as a
// plain line so scripts can supply it.
func readPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(label)
	}
	fmt.Fprintf(os.Stderr, "%s: ", label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
