package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// passwordModel is a single masked text input. It quits on enter (submit)
// or on esc/ctrl+c (cancel).
type passwordModel struct {
	label string
	input textinput.Model

	submitted bool
	cancelled bool
}

func newPasswordModel(label string) passwordModel {
	input := textinput.New()
	input.Placeholder = "password"
	input.CharLimit = 256
	input.Width = 40
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '*'
	input.Focus()

	return passwordModel{label: label, input: input}
}

func (m passwordModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m passwordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m passwordModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	return fmt.Sprintf("%s %s\n%s\n",
		titleStyle.Render(m.label),
		m.input.View(),
		helpStyle.Render("enter: submit • esc: cancel"),
	)
}

// PromptPassword reads a password through a masked input. The typed
// characters are echoed as '*'.
func PromptPassword(label string, in io.Reader, out io.Writer) (string, error) {
	program := tea.NewProgram(newPasswordModel(label), tea.WithInput(in), tea.WithOutput(out))

	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("password prompt: %w", err)
	}

	m, ok := final.(passwordModel)
	if !ok || m.cancelled || !m.submitted {
		return "", ErrPromptCancelled
	}
	if m.input.Value() == "" {
		return "", ErrEmptyPassword
	}

	return m.input.Value(), nil
}
