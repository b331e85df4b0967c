package landing

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grimoire/internal/screen"
	"github.com/abhisek/grimoire/internal/session"
	"github.com/abhisek/grimoire/internal/ui/components"
	"github.com/abhisek/grimoire/internal/ui/layout"
	"github.com/abhisek/grimoire/internal/ui/theme"
)

const (
	tagline   = "Unlock the secrets of the universe... if you dare."
	charLimit = 120
)

// LandingScreen asks for the topic to summon a curriculum for.
type LandingScreen struct {
	input  components.TextInput
	view   session.View
	seeded bool
}

var _ screen.Screen = (*LandingScreen)(nil)

// New creates the landing screen.
func New() *LandingScreen {
	return &LandingScreen{
		input: components.NewTextInput("What do you wish to learn? (e.g. Quantum Physics)", charLimit),
	}
}

func (l *LandingScreen) Title() string { return "" }

func (l *LandingScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LandingScreen) Sync(v session.View) {
	l.view = v
	// Restore the last topic once, e.g. after a failed summoning.
	if !l.seeded {
		l.input.SetValue(v.TopicInput)
		l.seeded = true
	}
}

func (l *LandingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		topic := strings.TrimSpace(l.input.Value())
		if topic == "" {
			return l, nil
		}
		return l, screen.Send(screen.SubmitTopicMsg{Topic: topic})
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *LandingScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	l.input.SetWidth(cw - 8)

	sections := []string{
		RenderBanner(width),
		"",
		theme.Subtitle.Width(cw).Render(tagline),
		"",
		components.Card(l.input.View(), cw, theme.Primary),
		"",
		components.Button("SUMMON KNOWLEDGE", strings.TrimSpace(l.input.Value()) != "", 30),
	}

	if l.view.Error != "" {
		sections = append(sections, "", theme.ErrorBox.Render(l.view.Error))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (l *LandingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Summon"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
