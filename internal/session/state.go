package session

import "github.com/abhisek/grimoire/internal/content"

// Screen is the top-level application state.
type Screen int

const (
	ScreenLanding              Screen = iota // Topic entry
	ScreenGeneratingCurriculum               // Waiting for the curriculum
	ScreenCurriculum                         // Module and topic map
	ScreenBattleArena                        // Encounters for one topic
)

func (s Screen) String() string {
	switch s {
	case ScreenLanding:
		return "landing"
	case ScreenGeneratingCurriculum:
		return "generating_curriculum"
	case ScreenCurriculum:
		return "curriculum"
	case ScreenBattleArena:
		return "battle_arena"
	default:
		return "unknown"
	}
}

// Phase is the battle sub-state. Only meaningful in ScreenBattleArena.
type Phase int

const (
	PhaseReading       Phase = iota // Showing the lesson
	PhaseQuiz                       // Waiting for an answer
	PhaseVictory                    // Encounter banished
	PhaseLevelComplete              // All encounters banished
)

func (p Phase) String() string {
	switch p {
	case PhaseReading:
		return "reading"
	case PhaseQuiz:
		return "quiz"
	case PhaseVictory:
		return "victory"
	case PhaseLevelComplete:
		return "level_complete"
	default:
		return "unknown"
	}
}

// Scoring.
const (
	SoulsPerBanish = 10
	SoulsPenalty   = 2
)

// Error messages shown after a failed generation.
const (
	MsgCurriculumFailed = "The spirits failed to summon the curriculum. Try again..."
	MsgEncountersFailed = "The crypt is sealed... could not load game."
)

// Token identifies one in-flight generation request. Zero means none.
type Token uint64

// RequestKind distinguishes the two generation requests.
type RequestKind int

const (
	RequestCurriculum RequestKind = iota
	RequestEncounters
)

func (k RequestKind) String() string {
	if k == RequestCurriculum {
		return "curriculum"
	}
	return "encounters"
}

// Request is a generation the caller must run after a transition opens it.
// The result goes back through ResolveCurriculum or ResolveEncounters with
// the same Token.
type Request struct {
	Kind  RequestKind
	Token Token

	// Topic is set for curriculum requests.
	Topic string

	// Subject, Module and SubTopic are set for encounter requests.
	Subject  string
	Module   string
	SubTopic string
}

// AnswerOutcome reports the effect of an applied answer.
type AnswerOutcome struct {
	Correct    bool
	SoulsDelta int
	Souls      int

	// FlashSeq is set on a wrong answer. Pass it to ClearWrongFlash when
	// the flash period ends.
	FlashSeq uint64
}

type topicKey struct {
	module int
	topic  int
}

// tokenSlot tracks one request kind: a monotonic counter and the
// outstanding token, zero when idle.
type tokenSlot struct {
	next        Token
	outstanding Token
}

func (s *tokenSlot) issue() Token {
	s.next++
	s.outstanding = s.next
	return s.outstanding
}

func (s *tokenSlot) busy() bool { return s.outstanding != 0 }

// take reports whether tok is the outstanding token and clears it if so.
func (s *tokenSlot) take(tok Token) bool {
	if tok == 0 || tok != s.outstanding {
		return false
	}
	s.outstanding = 0
	return true
}

func (s *tokenSlot) cancel() { s.outstanding = 0 }

// Machine is the application state. It does no I/O. All mutation goes
// through its transition methods, which report whether they applied.
// Machine is not safe for concurrent use.
type Machine struct {
	screen     Screen
	topicInput string
	errMsg     string

	curriculum *content.Curriculum
	completed  map[topicKey]bool

	moduleIndex int
	topicIndex  int

	gameData       *content.TopicGameData
	encounterIndex int
	phase          Phase

	souls      int
	wrongFlash bool
	flashSeq   uint64

	curriculumTok tokenSlot
	encounterTok  tokenSlot
}

// New returns a machine on the landing screen.
func New() *Machine {
	return &Machine{completed: make(map[topicKey]bool)}
}
