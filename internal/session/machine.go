package session

import (
	"strings"

	"github.com/abhisek/grimoire/internal/content"
)

// SetTopicInput stores the landing screen's topic text.
func (m *Machine) SetTopicInput(s string) bool {
	if m.screen != ScreenLanding {
		return false
	}
	m.topicInput = s
	return true
}

// SubmitTopic opens a curriculum request for the current input.
func (m *Machine) SubmitTopic() (Request, bool) {
	if m.screen != ScreenLanding || m.curriculumTok.busy() {
		return Request{}, false
	}
	topic := strings.TrimSpace(m.topicInput)
	if topic == "" {
		return Request{}, false
	}

	m.screen = ScreenGeneratingCurriculum
	m.errMsg = ""
	return Request{
		Kind:  RequestCurriculum,
		Token: m.curriculumTok.issue(),
		Topic: topic,
	}, true
}

// ResolveCurriculum applies a curriculum result. Results for any token
// other than the outstanding one are discarded.
func (m *Machine) ResolveCurriculum(tok Token, c *content.Curriculum, err error) bool {
	if !m.curriculumTok.take(tok) {
		return false
	}

	if err == nil {
		err = content.ValidateCurriculum(c)
	}
	if err != nil {
		m.screen = ScreenLanding
		m.errMsg = MsgCurriculumFailed
		return true
	}

	m.curriculum = c.Clone()
	m.completed = make(map[topicKey]bool)
	m.moduleIndex, m.topicIndex = 0, 0
	m.screen = ScreenCurriculum
	return true
}

// SelectTopic enters the battle arena for a sub-topic and opens an
// encounter request. The arena shows a loading state until it resolves.
func (m *Machine) SelectTopic(moduleIdx, topicIdx int) (Request, bool) {
	if m.screen != ScreenCurriculum || m.encounterTok.busy() || !m.validTopic(moduleIdx, topicIdx) {
		return Request{}, false
	}

	mod := m.curriculum.Modules[moduleIdx]
	m.moduleIndex, m.topicIndex = moduleIdx, topicIdx
	m.screen = ScreenBattleArena
	m.gameData = nil
	m.encounterIndex = 0
	m.phase = PhaseReading
	m.wrongFlash = false
	m.errMsg = ""

	return Request{
		Kind:     RequestEncounters,
		Token:    m.encounterTok.issue(),
		Subject:  m.curriculum.Subject,
		Module:   mod.Title,
		SubTopic: mod.Topics[topicIdx].Title,
	}, true
}

// ResolveEncounters applies an encounter result for the outstanding token.
func (m *Machine) ResolveEncounters(tok Token, d *content.TopicGameData, err error) bool {
	if !m.encounterTok.take(tok) {
		return false
	}

	if err == nil {
		err = validateGameData(d)
	}
	if err != nil {
		m.gameData = nil
		m.screen = ScreenCurriculum
		m.errMsg = MsgEncountersFailed
		return true
	}

	m.gameData = d
	m.encounterIndex = 0
	m.phase = PhaseReading
	return true
}

// Retreat leaves the arena. Any in-flight encounter result will be discarded.
func (m *Machine) Retreat() bool {
	if m.screen != ScreenBattleArena {
		return false
	}
	m.encounterTok.cancel()
	m.leaveArena()
	return true
}

// Reset returns to the landing screen and forgets everything.
func (m *Machine) Reset() bool {
	m.screen = ScreenLanding
	m.topicInput = ""
	m.errMsg = ""
	m.curriculum = nil
	m.completed = make(map[topicKey]bool)
	m.moduleIndex, m.topicIndex = 0, 0
	m.gameData = nil
	m.encounterIndex = 0
	m.phase = PhaseReading
	m.souls = 0
	m.wrongFlash = false
	m.flashSeq++
	m.curriculumTok.cancel()
	m.encounterTok.cancel()
	return true
}

// StartQuiz moves from the lesson to its question.
func (m *Machine) StartQuiz() bool {
	if !m.battleReady() || m.phase != PhaseReading {
		return false
	}
	m.phase = PhaseQuiz
	return true
}

// Answer scores option i of the current encounter.
func (m *Machine) Answer(i int) (AnswerOutcome, bool) {
	if !m.battleReady() || m.phase != PhaseQuiz {
		return AnswerOutcome{}, false
	}
	enc := m.gameData.Encounters[m.encounterIndex]
	if i < 0 || i >= content.OptionCount || i >= len(enc.Options) {
		return AnswerOutcome{}, false
	}

	if enc.IsCorrect(i) {
		m.souls += SoulsPerBanish
		m.wrongFlash = false
		m.phase = PhaseVictory
		return AnswerOutcome{Correct: true, SoulsDelta: SoulsPerBanish, Souls: m.souls}, true
	}

	before := m.souls
	m.souls = max(0, m.souls-SoulsPenalty)
	m.wrongFlash = true
	m.flashSeq++
	return AnswerOutcome{
		SoulsDelta: m.souls - before,
		Souls:      m.souls,
		FlashSeq:   m.flashSeq,
	}, true
}

// ClearWrongFlash ends the wrong-answer flash if seq is the latest one.
func (m *Machine) ClearWrongFlash(seq uint64) bool {
	if !m.wrongFlash || seq != m.flashSeq {
		return false
	}
	m.wrongFlash = false
	return true
}

// NextEncounter advances after a victory, completing the topic after the
// last encounter.
func (m *Machine) NextEncounter() bool {
	if !m.battleReady() || m.phase != PhaseVictory {
		return false
	}
	if m.encounterIndex < len(m.gameData.Encounters)-1 {
		m.encounterIndex++
		m.phase = PhaseReading
		return true
	}
	m.phase = PhaseLevelComplete
	m.completed[topicKey{m.moduleIndex, m.topicIndex}] = true
	return true
}

// BackToCurriculum leaves a cleared level for the map.
func (m *Machine) BackToCurriculum() bool {
	if !m.battleReady() || m.phase != PhaseLevelComplete {
		return false
	}
	m.leaveArena()
	return true
}

// DismissError clears any error message.
func (m *Machine) DismissError() bool {
	if m.errMsg == "" {
		return false
	}
	m.errMsg = ""
	return true
}

func (m *Machine) leaveArena() {
	m.gameData = nil
	m.encounterIndex = 0
	m.phase = PhaseReading
	m.wrongFlash = false
	m.screen = ScreenCurriculum
}

func (m *Machine) battleReady() bool {
	return m.screen == ScreenBattleArena && m.gameData != nil && m.encounterIndex < len(m.gameData.Encounters)
}

func (m *Machine) validTopic(moduleIdx, topicIdx int) bool {
	if m.curriculum == nil || moduleIdx < 0 || moduleIdx >= len(m.curriculum.Modules) {
		return false
	}
	return topicIdx >= 0 && topicIdx < len(m.curriculum.Modules[moduleIdx].Topics)
}

// validateGameData runs the default encounter checks. Data that reaches
// the arena always has 3-5 encounters of four options each.
func validateGameData(d *content.TopicGameData) error {
	if d == nil {
		return &content.ValidationError{Validator: "encounters", Message: "no game data"}
	}
	for _, v := range content.DefaultValidators() {
		if err := v.Validate(d); err != nil {
			return err
		}
	}
	return nil
}
