package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// promptModel is a single-line Bubble Tea input. Secret prompts echo '*'.
type promptModel struct {
	label string
	input textinput.Model

	submitted bool
	cancelled bool
}

func newPromptModel(label string, secret bool) promptModel {
	input := textinput.New()
	input.CharLimit = 256
	input.Width = 40
	if secret {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '*'
	}
	input.Focus()

	return promptModel{label: label, input: input}
}

// Init implements [tea.Model].
func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Enter submits, esc and ctrl+c cancel; any
// other key goes to the input.
func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.submit):
			m.submitted = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.cancel):
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements [tea.Model]. Nothing is left on screen once the prompt is
// done, so a secret never lingers in the scrollback.
func (m promptModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(m.label))
	b.WriteString(" ")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: confirm • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m promptModel) value() string {
	return m.input.Value()
}
