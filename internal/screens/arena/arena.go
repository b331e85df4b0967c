package arena

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grimoire/internal/content"
	"github.com/abhisek/grimoire/internal/screen"
	"github.com/abhisek/grimoire/internal/session"
	"github.com/abhisek/grimoire/internal/ui/components"
	"github.com/abhisek/grimoire/internal/ui/layout"
	"github.com/abhisek/grimoire/internal/ui/theme"
)

// ArenaScreen runs the encounters of one sub-topic: a lesson, its
// question, and the banishment that follows.
type ArenaScreen struct {
	view    session.View
	spinner spinner.Model
	lesson  viewport.Model
	choice  components.MultiChoice

	// The encounter the lesson and choice were built for.
	data  *content.TopicGameData
	index int

	// Width the lesson markdown was last rendered at.
	lessonWidth int
}

var _ screen.Screen = (*ArenaScreen)(nil)

// New creates the arena screen.
func New() *ArenaScreen {
	return &ArenaScreen{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Moon),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
		lesson: viewport.New(),
		index:  -1,
	}
}

func (a *ArenaScreen) Title() string {
	if a.view.ActiveTopic != nil {
		return a.view.ActiveTopic.Title
	}
	return "The Crypt"
}

func (a *ArenaScreen) Init() tea.Cmd {
	return a.spinner.Tick
}

func (a *ArenaScreen) Sync(v session.View) {
	a.view = v

	if v.GameData != a.data || v.EncounterIndex != a.index {
		a.data = v.GameData
		a.index = v.EncounterIndex
		a.lessonWidth = 0
		a.lesson.SetYOffset(0)
		if v.Encounter != nil {
			a.choice = components.NewMultiChoice(v.Encounter.Question, v.Encounter.Options)
		}
	}
	a.choice.Alert = v.WrongFlash
}

func (a *ArenaScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !a.view.Loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case components.ChoiceMsg:
		if a.view.Phase == session.PhaseQuiz {
			return a, screen.Send(screen.AnswerMsg{Index: msg.Index})
		}
		return a, nil

	case tea.KeyPressMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *ArenaScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "esc" {
		return a, screen.Send(screen.RetreatMsg{})
	}
	if a.view.Loading || a.view.Encounter == nil {
		return a, nil
	}

	switch a.view.Phase {
	case session.PhaseReading:
		if msg.String() == "enter" {
			return a, screen.Send(screen.StartQuizMsg{})
		}
		var cmd tea.Cmd
		a.lesson, cmd = a.lesson.Update(msg)
		return a, cmd

	case session.PhaseQuiz:
		var cmd tea.Cmd
		a.choice, cmd = a.choice.Update(msg)
		return a, cmd

	case session.PhaseVictory:
		if msg.String() == "enter" {
			return a, screen.Send(screen.NextEncounterMsg{})
		}

	case session.PhaseLevelComplete:
		if msg.String() == "enter" {
			return a, screen.Send(screen.BackToCurriculumMsg{})
		}
	}
	return a, nil
}

func (a *ArenaScreen) View(width, height int) string {
	if a.view.Loading || a.view.Encounter == nil {
		content := lipgloss.JoinVertical(lipgloss.Center,
			a.spinner.View(),
			"",
			theme.Title.Render("Entering the Crypt..."),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}

	cw := components.ContentWidth(width)
	compact := layout.IsCompactHeight(height)

	var body string
	switch a.view.Phase {
	case session.PhaseReading:
		body = a.viewReading(cw, height, compact)
	case session.PhaseQuiz:
		body = a.viewQuiz(cw, compact)
	case session.PhaseVictory:
		body = a.viewVictory(cw, compact)
	case session.PhaseLevelComplete:
		body = a.viewCleared(cw, compact)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, a.viewProgress(cw), "", body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func (a *ArenaScreen) viewProgress(cw int) string {
	total := 0
	if a.view.GameData != nil {
		total = len(a.view.GameData.Encounters)
	}
	return components.NewProgressBar("Monster", a.view.EncounterIndex+1, total, cw).View()
}

func (a *ArenaScreen) viewMonster(variant MonsterVariant, compact bool) string {
	enc := a.view.Encounter
	name := theme.ErrorText.Render(enc.MonsterName)
	level := theme.Hint.Render(fmt.Sprintf("Lvl %d Spirit", a.view.EncounterIndex+1))
	if compact {
		return name + "  " + level
	}
	return lipgloss.JoinVertical(lipgloss.Center, RenderMonster(variant), name, level)
}

func (a *ArenaScreen) viewReading(cw, height int, compact bool) string {
	monster := a.viewMonster(MonsterLurking, compact)
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render("Grimoire: " + a.view.Encounter.MonsterName)
	hint := theme.Hint.Render("Read the spell carefully...")

	inner := cw - 6
	if a.lessonWidth != inner {
		a.lesson.SetWidth(inner)
		a.lesson.SetContent(components.RenderMarkdown(a.view.Encounter.EducationalContent, inner))
		a.lessonWidth = inner
	}
	// Progress, monster, card chrome and button take the rest.
	used := 2 + lipgloss.Height(monster) + 1 + 6 + 3
	a.lesson.SetHeight(max(height-used, 3))

	card := components.Card(lipgloss.JoinVertical(lipgloss.Left,
		heading,
		hint,
		"",
		a.lesson.View(),
	), cw, theme.Primary)

	return lipgloss.JoinVertical(lipgloss.Center,
		monster,
		"",
		card,
		components.Button("⚔ Cast Banishing Ritual", true, min(cw, 34)),
	)
}

func (a *ArenaScreen) viewQuiz(cw int, compact bool) string {
	variant := MonsterLurking
	border := theme.Primary
	var resist string
	if a.view.WrongFlash {
		variant = MonsterAlert
		border = theme.Error
		resist = theme.ErrorText.Render(fmt.Sprintf("The spirit resists! -%d souls", session.SoulsPenalty))
	}

	parts := []string{
		a.viewMonster(variant, compact),
		"",
		components.Card(strings.TrimRight(a.choice.View(cw-6), "\n"), cw, border),
	}
	if resist != "" {
		parts = append(parts, resist)
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (a *ArenaScreen) viewVictory(cw int, compact bool) string {
	parts := []string{}
	if !compact {
		parts = append(parts, RenderMonster(MonsterBanished), "")
	}

	next := "Hunt Next Spirit →"
	if a.view.IsLastEncounter {
		next = "Seal the Crypt →"
	}
	parts = append(parts,
		theme.Title.Render("BANISHED!"),
		theme.Souls.Render(fmt.Sprintf("+%d souls", session.SoulsPerBanish)),
		"",
		theme.Hint.Render("The spirit screams as it fades into the void..."),
		"",
		components.Button(next, true, min(cw, 30)),
	)
	return components.Card(lipgloss.JoinVertical(lipgloss.Center, parts...), cw, theme.Success)
}

func (a *ArenaScreen) viewCleared(cw int, compact bool) string {
	parts := []string{}
	if !compact {
		parts = append(parts, RenderMonster(MonsterCleared), "")
	}
	parts = append(parts,
		theme.Title.Render("CRYPT CLEARED!"),
		theme.Body.Render("You have banished the ignorance lurking here."),
		"",
		theme.Souls.Render(fmt.Sprintf("👻 %d souls harvested", a.view.Souls)),
		"",
		components.Button("Return to Map", true, min(cw, 30)),
	)
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Center, parts...))
}

func (a *ArenaScreen) KeyHints() []layout.KeyHint {
	var hints []layout.KeyHint
	switch {
	case a.view.Loading:
	case a.view.Phase == session.PhaseReading:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Scroll"},
			layout.KeyHint{Key: "Enter", Description: "Cast Ritual"},
		)
	case a.view.Phase == session.PhaseQuiz:
		hints = append(hints,
			layout.KeyHint{Key: "a-d", Description: "Answer"},
			layout.KeyHint{Key: "↑↓", Description: "Select"},
			layout.KeyHint{Key: "Enter", Description: "Confirm"},
		)
	case a.view.Phase == session.PhaseVictory:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Continue"})
	case a.view.Phase == session.PhaseLevelComplete:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Return to Map"})
	}
	return append(hints,
		layout.KeyHint{Key: "Esc", Description: "Retreat"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}
