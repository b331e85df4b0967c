package curriculum

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/grimoire/internal/content"
	"github.com/abhisek/grimoire/internal/screen"
	"github.com/abhisek/grimoire/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testView(modules, topics int) session.View {
	c := &content.Curriculum{Subject: "Quantum Physics"}
	total := 0
	for i := 0; i < modules; i++ {
		m := content.Module{Title: fmt.Sprintf("Haunted Module %d", i+1), Description: "spooky"}
		for j := 0; j < topics; j++ {
			m.Topics = append(m.Topics, content.SubTopic{Title: fmt.Sprintf("Topic %d.%d", i+1, j+1)})
			total++
		}
		c.Modules = append(c.Modules, m)
	}
	return session.View{Screen: session.ScreenCurriculum, Curriculum: c, TotalTopics: total}
}

func selectFrom(t *testing.T, cmd tea.Cmd) screen.SelectTopicMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(screen.SelectTopicMsg)
	if !ok {
		t.Fatalf("expected SelectTopicMsg, got %T", cmd())
	}
	return msg
}

func TestNavigationCrossesModules(t *testing.T) {
	c := New()
	c.Sync(testView(2, 3))

	for i := 0; i < 4; i++ {
		c.Update(keyPress('j'))
	}
	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if msg := selectFrom(t, cmd); msg.Module != 1 || msg.Topic != 1 {
		t.Errorf("selected (%d,%d), want (1,1)", msg.Module, msg.Topic)
	}

	for i := 0; i < 10; i++ {
		c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd = c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if msg := selectFrom(t, cmd); msg.Module != 1 || msg.Topic != 2 {
		t.Errorf("cursor should stop at the last topic, got (%d,%d)", msg.Module, msg.Topic)
	}

	for i := 0; i < 10; i++ {
		c.Update(keyPress('k'))
	}
	_, cmd = c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if msg := selectFrom(t, cmd); msg.Module != 0 || msg.Topic != 0 {
		t.Errorf("cursor should stop at the first topic, got (%d,%d)", msg.Module, msg.Topic)
	}
}

func TestCursorStartsOnLastVisitedTopic(t *testing.T) {
	v := testView(2, 3)
	v.ModuleIndex, v.TopicIndex = 1, 2

	c := New()
	c.Sync(v)
	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if msg := selectFrom(t, cmd); msg.Module != 1 || msg.Topic != 2 {
		t.Errorf("selected (%d,%d), want (1,2)", msg.Module, msg.Topic)
	}
}

func TestResetKey(t *testing.T) {
	c := New()
	c.Sync(testView(1, 1))
	_, cmd := c.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(screen.ResetMsg); !ok {
		t.Errorf("expected ResetMsg, got %T", cmd())
	}
}

func TestDismissOnlyWithError(t *testing.T) {
	c := New()
	c.Sync(testView(1, 1))
	if _, cmd := c.Update(keyPress('x')); cmd != nil {
		t.Error("x without an error should do nothing")
	}

	v := testView(1, 1)
	v.Error = session.MsgEncountersFailed
	c.Sync(v)
	_, cmd := c.Update(keyPress('x'))
	if cmd == nil {
		t.Fatal("expected a dismiss command")
	}
	if _, ok := cmd().(screen.DismissErrorMsg); !ok {
		t.Errorf("expected DismissErrorMsg, got %T", cmd())
	}
}

func TestViewShowsModulesTopicsAndMarks(t *testing.T) {
	v := testView(2, 3)
	v.Curriculum.Modules[0].Topics[1].IsCompleted = true
	v.Completed = 1

	c := New()
	c.Sync(v)
	view := ansi.Strip(c.View(100, 60))

	for _, want := range []string{
		"QUANTUM PHYSICS",
		"1 of 6 crypts cleared",
		"MODULE 1", "MODULE 2",
		"Haunted Module 1", "Haunted Module 2",
		"✓ 1.2  Topic 1.2",
		"○ 2.3  Topic 2.3",
		"1/3", "0/3",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if got := strings.Count(view, "Topic "); got != 6 {
		t.Errorf("rendered %d topic rows, want 6", got)
	}
}

func TestWindowKeepsFocusVisible(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprint(i)
	}

	got := window(lines, 40, 10)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	found := false
	for _, l := range got {
		if l == "40" {
			found = true
		}
	}
	if !found {
		t.Errorf("focus line not in window: %v", got)
	}

	if got := window(lines, 49, 10); got[len(got)-1] != "49" {
		t.Errorf("window at end should include the last line, got %v", got)
	}
	if got := window(lines[:5], 2, 10); len(got) != 5 {
		t.Errorf("short input should be returned whole")
	}
}
