package display

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrPromptAborted is returned when the user abandons a prompt (Ctrl+C/Esc).
// The table loop treats this as the human leaving the game.
var ErrPromptAborted = errors.New("prompt aborted")

// TUIPrompter implements game.Prompter with an inline text input per
// question. Validation and retry live with the player; this only gathers raw
// lines.
type TUIPrompter struct {
	out io.Writer
}

// NewTUIPrompter creates a prompter writing feedback to out
func NewTUIPrompter(out io.Writer) *TUIPrompter {
	return &TUIPrompter{out: out}
}

// PromptBet asks for a bet amount
func (p *TUIPrompter) PromptBet(minBet, maxBet int, playerName string) (string, error) {
	return p.prompt(fmt.Sprintf("%s, place your bet (min $%d, max $%d): ", playerName, minBet, maxBet))
}

// PromptAction asks for the next in-hand action
func (p *TUIPrompter) PromptAction(playerName string) (string, error) {
	return p.prompt(fmt.Sprintf("%s, your action ([h]it, [s]tand, [d]ouble): ", playerName))
}

// Invalid reports a rejected input back to the user
func (p *TUIPrompter) Invalid(message string) {
	fmt.Fprintln(p.out, ErrorStyle.Render(message))
}

func (p *TUIPrompter) prompt(label string) (string, error) {
	final, err := tea.NewProgram(newPromptModel(label)).Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}
	m := final.(promptModel)
	if m.aborted {
		return "", ErrPromptAborted
	}
	return m.input.Value(), nil
}

type promptModel struct {
	label   string
	input   textinput.Model
	done    bool
	aborted bool
}

func newPromptModel(label string) promptModel {
	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 20
	ti.Focus()
	return promptModel{label: label, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return m.label + m.input.View()
}
