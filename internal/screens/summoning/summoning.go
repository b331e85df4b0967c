package summoning

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grimoire/internal/screen"
	"github.com/abhisek/grimoire/internal/session"
	"github.com/abhisek/grimoire/internal/ui/layout"
	"github.com/abhisek/grimoire/internal/ui/theme"
)

// SummoningScreen is shown while a curriculum is being generated.
type SummoningScreen struct {
	spinner spinner.Model
	view    session.View
}

var _ screen.Screen = (*SummoningScreen)(nil)

// New creates the summoning screen.
func New() *SummoningScreen {
	return &SummoningScreen{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Moon),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

func (s *SummoningScreen) Title() string { return "Summoning" }

func (s *SummoningScreen) Init() tea.Cmd {
	return s.spinner.Tick
}

func (s *SummoningScreen) Sync(v session.View) { s.view = v }

func (s *SummoningScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !s.view.Loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			return s, screen.Send(screen.ResetMsg{})
		}
	}
	return s, nil
}

func (s *SummoningScreen) View(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.spinner.View(),
		"",
		theme.Title.Render("Summoning Curriculum..."),
		"",
		theme.Hint.Render("The spirits are consulting the ancient texts for "+quote(s.view.TopicInput)),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *SummoningScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Abandon"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func quote(s string) string {
	return "“" + s + "”"
}
