package screen

import tea "charm.land/bubbletea/v2"

// Gesture messages carry user intent from screens to the app shell,
// which applies them to the session machine.

// SubmitTopicMsg asks for a curriculum on Topic.
type SubmitTopicMsg struct {
	Topic string
}

// SelectTopicMsg enters the arena for a sub-topic.
type SelectTopicMsg struct {
	Module int
	Topic  int
}

// RetreatMsg leaves the arena for the curriculum map.
type RetreatMsg struct{}

// ResetMsg abandons the quest and returns to the landing screen.
type ResetMsg struct{}

// StartQuizMsg moves from a lesson to its question.
type StartQuizMsg struct{}

// AnswerMsg answers the current question with option Index.
type AnswerMsg struct {
	Index int
}

// NextEncounterMsg continues after a banished monster.
type NextEncounterMsg struct{}

// BackToCurriculumMsg leaves a cleared crypt.
type BackToCurriculumMsg struct{}

// DismissErrorMsg clears the current error message.
type DismissErrorMsg struct{}

// Send wraps a gesture in a command.
func Send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
