// Package tui renders the command-line client: masked prompts built on
// Bubble Tea and lipgloss-styled output.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/budget-keeper/internal/logger"
)

type TUI struct {
	in  io.Reader
	out io.Writer

	copyToClipboard func(string) error

	logger *logger.Logger
}

// New returns a TUI reading keys from in and writing to out. Nil streams
// default to the process's stdin and stdout.
func New(in io.Reader, out io.Writer, logger *logger.Logger) *TUI {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	return &TUI{
		in:              in,
		out:             out,
		copyToClipboard: clipboard.WriteAll,
		logger:          logger,
	}
}

// Prompt asks for a visible value such as an email.
func (t *TUI) Prompt(ctx context.Context, label string) (string, error) {
	return t.run(ctx, newPromptModel(label, false))
}

// PromptPassword asks for a secret. The typed characters are echoed as '*'.
func (t *TUI) PromptPassword(ctx context.Context, label string) (string, error) {
	return t.run(ctx, newPromptModel(label, true))
}

func (t *TUI) run(ctx context.Context, model promptModel) (string, error) {
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	finalModel, err := program.Run()
	if err != nil {
		return "", err
	}

	result, ok := finalModel.(promptModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if result.cancelled {
		return "", ErrUserQuit
	}
	return strings.TrimSpace(result.value()), nil
}

// Success prints a confirmation line.
func (t *TUI) Success(message string) {
	fmt.Fprintln(t.out, successStyle.Render("✓ "+message))
}

// Failure prints err in a form fit for the user.
func (t *TUI) Failure(err error) {
	fmt.Fprintln(t.out, errorStyle.Render("✗ "+humanizeServerUnavailableError(err)))
}

// RecoveryKey shows the key in a box and tries to copy it to the clipboard.
// The key is never logged.
func (t *TUI) RecoveryKey(recoveryKey string) {
	fmt.Fprintln(t.out, labelStyle.Render("Recovery Key (shown once, store it offline):"))
	fmt.Fprintln(t.out, keyBoxStyle.Render(recoveryKey))

	if err := t.copyToClipboard(recoveryKey); err != nil {
		t.logger.Debug().Err(err).Msg("clipboard unavailable")
		fmt.Fprintln(t.out, helpStyle.Render("Clipboard unavailable; copy the key by hand."))
		return
	}
	fmt.Fprintln(t.out, helpStyle.Render("Copied to clipboard."))
}

// Keys prints document keys one per line.
func (t *TUI) Keys(keys []string) {
	if len(keys) == 0 {
		fmt.Fprintln(t.out, helpStyle.Render("no documents"))
		return
	}
	for _, k := range keys {
		fmt.Fprintln(t.out, listStyle.Render(k))
	}
}

// Document prints a raw document body unstyled so it can be piped.
func (t *TUI) Document(payload []byte) {
	t.out.Write(payload)
	if len(payload) > 0 && payload[len(payload)-1] != '\n' {
		fmt.Fprintln(t.out)
	}
}

// Line prints plain text.
func (t *TUI) Line(text string) {
	fmt.Fprintln(t.out, text)
}
