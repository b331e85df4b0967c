package summoning

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/grimoire/internal/screen"
	"github.com/abhisek/grimoire/internal/session"
)

func TestSpinnerTicksOnlyWhileLoading(t *testing.T) {
	s := New()
	s.Sync(session.View{Screen: session.ScreenGeneratingCurriculum, Loading: true})

	tick := s.Init()
	if tick == nil {
		t.Fatal("expected an initial spinner tick")
	}
	msg, ok := tick().(spinner.TickMsg)
	if !ok {
		t.Fatalf("expected spinner.TickMsg, got %T", tick())
	}
	if _, cmd := s.Update(msg); cmd == nil {
		t.Error("expected the spinner to keep ticking while loading")
	}

	s.Sync(session.View{Screen: session.ScreenGeneratingCurriculum, Loading: false})
	if _, cmd := s.Update(msg); cmd != nil {
		t.Error("spinner must stop once nothing is loading")
	}
}

func TestEscAbandons(t *testing.T) {
	s := New()
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(screen.ResetMsg); !ok {
		t.Errorf("expected ResetMsg, got %T", cmd())
	}
}

func TestViewNamesTopic(t *testing.T) {
	s := New()
	s.Sync(session.View{TopicInput: "Astrology", Loading: true})
	view := ansi.Strip(s.View(100, 30))
	if !strings.Contains(view, "Summoning Curriculum") || !strings.Contains(view, "Astrology") {
		t.Errorf("unexpected view:\n%s", view)
	}
}
