package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grimoire/internal/ui/theme"
)

// OptionLabels are the letters shown before each option.
var OptionLabels = []string{"A", "B", "C", "D"}

// ChoiceMsg is emitted when the player commits to an option.
type ChoiceMsg struct {
	Index int
}

// MultiChoice is a multiple-choice selector. It can be answered
// repeatedly; scoring happens elsewhere.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int

	// Alert renders the options in the error style.
	Alert bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
	}
}

// OptionIndexForKey maps a-d, A-D and 1-4 to an option index.
func OptionIndexForKey(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= 'a' && c <= 'd':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'D':
		return int(c - 'A'), true
	case c >= '1' && c <= '4':
		return int(c - '1'), true
	}
	return 0, false
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter":
		return m, choose(m.Selected)
	}

	if i, ok := OptionIndexForKey(key); ok && i < len(m.Options) {
		m.Selected = i
		return m, choose(i)
	}
	return m, nil
}

func choose(i int) tea.Cmd {
	return func() tea.Msg { return ChoiceMsg{Index: i} }
}

// View renders the question and its options at the given width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width).
		Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := "?"
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == m.Selected {
			prefix = "▸ "
			style = theme.Selected
		}
		if m.Alert {
			style = lipgloss.NewStyle().Foreground(theme.Error)
			if i == m.Selected {
				style = theme.Incorrect
			}
		}

		b.WriteString(style.Width(width).Render(prefix + label + ")  " + opt))
		b.WriteString("\n")
	}

	return b.String()
}
