package curriculum

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grimoire/internal/screen"
	"github.com/abhisek/grimoire/internal/session"
	"github.com/abhisek/grimoire/internal/ui/components"
	"github.com/abhisek/grimoire/internal/ui/layout"
	"github.com/abhisek/grimoire/internal/ui/theme"
)

// slot addresses one selectable sub-topic.
type slot struct {
	module int
	topic  int
}

// CurriculumScreen shows the module map and lets the player pick a hunt.
type CurriculumScreen struct {
	view   session.View
	slots  []slot
	cursor int
	placed bool
}

var _ screen.Screen = (*CurriculumScreen)(nil)

// New creates the curriculum screen.
func New() *CurriculumScreen {
	return &CurriculumScreen{}
}

func (c *CurriculumScreen) Title() string { return "The Grimoire" }

func (c *CurriculumScreen) Init() tea.Cmd { return nil }

func (c *CurriculumScreen) Sync(v session.View) {
	c.view = v
	c.slots = c.slots[:0]
	if v.Curriculum != nil {
		for mi, m := range v.Curriculum.Modules {
			for ti := range m.Topics {
				c.slots = append(c.slots, slot{mi, ti})
			}
		}
	}

	// Start on the topic the player last visited.
	if !c.placed {
		for i, s := range c.slots {
			if s.module == v.ModuleIndex && s.topic == v.TopicIndex {
				c.cursor = i
			}
		}
		c.placed = true
	}
	c.cursor = min(c.cursor, max(len(c.slots)-1, 0))
}

func (c *CurriculumScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.slots)-1 {
			c.cursor++
		}
	case "enter":
		if c.cursor < len(c.slots) {
			s := c.slots[c.cursor]
			return c, screen.Send(screen.SelectTopicMsg{Module: s.module, Topic: s.topic})
		}
	case "r":
		return c, screen.Send(screen.ResetMsg{})
	case "x":
		if c.view.Error != "" {
			return c, screen.Send(screen.DismissErrorMsg{})
		}
	}
	return c, nil
}

func (c *CurriculumScreen) View(width, height int) string {
	cur := c.view.Curriculum
	if cur == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var lines []string
	cursorLine := 0

	lines = append(lines,
		theme.Title.Width(cw).Render(strings.ToUpper(cur.Subject)),
		theme.Subtitle.Width(cw).Render(fmt.Sprintf("%d of %d crypts cleared", c.view.Completed, c.view.TotalTopics)),
		"",
	)
	if c.view.Error != "" {
		lines = append(lines, theme.ErrorBox.Render(c.view.Error), "")
	}

	for mi, m := range cur.Modules {
		done := 0
		for _, t := range m.Topics {
			if t.IsCompleted {
				done++
			}
		}

		label := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("MODULE %d", mi+1))
		count := theme.Hint.Render(fmt.Sprintf("%d/%d", done, len(m.Topics)))
		gap := max(cw-lipgloss.Width(label)-lipgloss.Width(count), 1)
		lines = append(lines,
			label+strings.Repeat(" ", gap)+count,
			theme.Body.Bold(true).Width(cw).Render(m.Title),
		)
		if m.Description != "" {
			lines = append(lines, theme.Hint.Width(cw).Render(m.Description))
		}

		for ti, t := range m.Topics {
			selected := c.isCursor(mi, ti)
			if selected {
				cursorLine = len(lines)
			}
			lines = append(lines, renderTopic(mi, ti, t.Title, t.IsCompleted, selected, cw))
		}
		lines = append(lines, "")
	}

	content := strings.Join(window(lines, cursorLine, height), "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (c *CurriculumScreen) isCursor(mi, ti int) bool {
	if c.cursor >= len(c.slots) {
		return false
	}
	s := c.slots[c.cursor]
	return s.module == mi && s.topic == ti
}

func renderTopic(mi, ti int, title string, completed, selected bool, width int) string {
	mark := "○"
	if completed {
		mark = "✓"
	}
	prefix := "   "
	if selected {
		prefix = " ▸ "
	}
	line := fmt.Sprintf("%s%s %d.%d  %s", prefix, mark, mi+1, ti+1, title)

	style := theme.Unselected
	switch {
	case selected:
		style = theme.Selected
	case completed:
		style = theme.Completed
	}
	return style.Width(width).Render(line)
}

// window returns at most height lines, keeping line focus visible.
func window(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := max(focus-height/2, 0)
	start = min(start, len(lines)-height)
	return lines[start : start+height]
}

func (c *CurriculumScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Hunt"},
		{Key: "r", Description: "Abandon Quest"},
	}
	if c.view.Error != "" {
		hints = append(hints, layout.KeyHint{Key: "x", Description: "Dismiss"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}
