package session

import "github.com/abhisek/grimoire/internal/content"

// View is a read-only snapshot of the machine for rendering.
type View struct {
	Screen  Screen
	Phase   Phase
	Loading bool

	TopicInput string
	Error      string

	// Curriculum is a copy with IsCompleted filled in. Nil before the
	// first successful generation.
	Curriculum  *content.Curriculum
	ModuleIndex int
	TopicIndex  int

	ActiveModule *content.Module
	ActiveTopic  *content.SubTopic

	GameData       *content.TopicGameData
	EncounterIndex int
	Encounter      *content.Encounter

	Souls           int
	WrongFlash      bool
	IsLastEncounter bool

	Completed   int
	TotalTopics int
}

// View returns the current snapshot.
func (m *Machine) View() View {
	v := View{
		Screen:         m.screen,
		Phase:          m.phase,
		TopicInput:     m.topicInput,
		Error:          m.errMsg,
		ModuleIndex:    m.moduleIndex,
		TopicIndex:     m.topicIndex,
		EncounterIndex: m.encounterIndex,
		Souls:          m.souls,
		WrongFlash:     m.wrongFlash,
	}

	switch m.screen {
	case ScreenGeneratingCurriculum:
		v.Loading = true
	case ScreenBattleArena:
		v.Loading = m.gameData == nil
	}

	if m.curriculum != nil {
		c := m.curriculum.Clone()
		for mi := range c.Modules {
			for ti := range c.Modules[mi].Topics {
				done := m.completed[topicKey{mi, ti}]
				c.Modules[mi].Topics[ti].IsCompleted = done
				if done {
					v.Completed++
				}
				v.TotalTopics++
			}
		}
		v.Curriculum = c

		if m.screen == ScreenBattleArena && m.validTopic(m.moduleIndex, m.topicIndex) {
			v.ActiveModule = &c.Modules[m.moduleIndex]
			v.ActiveTopic = &c.Modules[m.moduleIndex].Topics[m.topicIndex]
		}
	}

	if m.gameData != nil {
		v.GameData = m.gameData
		if m.encounterIndex < len(m.gameData.Encounters) {
			enc := m.gameData.Encounters[m.encounterIndex]
			v.Encounter = &enc
		}
		v.IsLastEncounter = m.encounterIndex == len(m.gameData.Encounters)-1
	}

	return v
}

// IsCompleted reports whether a sub-topic has been cleared since the
// current curriculum was generated.
func (m *Machine) IsCompleted(moduleIdx, topicIdx int) bool {
	return m.completed[topicKey{moduleIdx, topicIdx}]
}

// InFlight reports whether a request of the given kind is outstanding.
func (m *Machine) InFlight(kind RequestKind) bool {
	if kind == RequestCurriculum {
		return m.curriculumTok.busy()
	}
	return m.encounterTok.busy()
}
