package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grimoire/internal/content"
	"github.com/abhisek/grimoire/internal/llm"
	"github.com/abhisek/grimoire/internal/logging"
	"github.com/abhisek/grimoire/internal/router"
	"github.com/abhisek/grimoire/internal/screen"
	"github.com/abhisek/grimoire/internal/screens/arena"
	"github.com/abhisek/grimoire/internal/screens/curriculum"
	"github.com/abhisek/grimoire/internal/screens/landing"
	"github.com/abhisek/grimoire/internal/screens/summoning"
	"github.com/abhisek/grimoire/internal/session"
	"github.com/abhisek/grimoire/internal/ui/layout"
)

// WrongFlashDuration is how long a wrong answer stays highlighted.
const WrongFlashDuration = 500 * time.Millisecond

// Options configures the application.
type Options struct {
	// Content generates curricula and encounter sets. Required.
	Content content.Provider

	// Logger receives transition and request logs. Nil discards.
	Logger *slog.Logger

	// SessionID tags every LLM call made during this run.
	SessionID string

	// Input and Output override the terminal, mainly for tests.
	Input  io.Reader
	Output io.Writer
}

// curriculumReadyMsg carries a finished curriculum request.
type curriculumReadyMsg struct {
	Token      session.Token
	Curriculum *content.Curriculum
	Err        error
}

// encountersReadyMsg carries a finished encounter set request.
type encountersReadyMsg struct {
	Token session.Token
	Data  *content.TopicGameData
	Err   error
}

// flashDoneMsg ends the wrong-answer flash with sequence Seq.
type flashDoneMsg struct {
	Seq uint64
}

// pending holds the cancel func of the outstanding request per kind.
type pending struct {
	tokens  map[session.RequestKind]session.Token
	cancels map[session.RequestKind]context.CancelFunc
}

func newPending() *pending {
	return &pending{
		tokens:  make(map[session.RequestKind]session.Token),
		cancels: make(map[session.RequestKind]context.CancelFunc),
	}
}

func (p *pending) start(kind session.RequestKind, tok session.Token, cancel context.CancelFunc) {
	p.cancel(kind)
	p.tokens[kind] = tok
	p.cancels[kind] = cancel
}

// done releases the request for kind if tok is still the one tracked.
func (p *pending) done(kind session.RequestKind, tok session.Token) {
	if p.tokens[kind] != tok {
		return
	}
	if cancel := p.cancels[kind]; cancel != nil {
		cancel()
	}
	delete(p.tokens, kind)
	delete(p.cancels, kind)
}

func (p *pending) cancel(kind session.RequestKind) {
	if cancel := p.cancels[kind]; cancel != nil {
		cancel()
	}
	delete(p.tokens, kind)
	delete(p.cancels, kind)
}

func (p *pending) cancelAll() {
	p.cancel(session.RequestCurriculum)
	p.cancel(session.RequestEncounters)
}

// AppModel is the root Bubble Tea model. It owns the session machine,
// applies screen gestures to it and runs the generation requests the
// machine opens.
type AppModel struct {
	machine  *session.Machine
	content  content.Provider
	router   *router.Router
	logger   *slog.Logger
	ctx      context.Context
	inflight *pending

	flashDelay time.Duration
	width      int
	height     int
}

// newAppModel creates an AppModel on the landing screen.
func newAppModel(ctx context.Context, opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.SessionID != "" {
		ctx = llm.WithSessionID(ctx, opts.SessionID)
		logger = logger.With("session_id", opts.SessionID)
	}

	return AppModel{
		machine:    session.New(),
		content:    opts.Content,
		router:     router.New(newScreen),
		logger:     logger,
		ctx:        ctx,
		inflight:   newPending(),
		flashDelay: WrongFlashDuration,
	}
}

// newScreen maps a session state to its screen.
func newScreen(kind session.Screen) screen.Screen {
	switch kind {
	case session.ScreenLanding:
		return landing.New()
	case session.ScreenGeneratingCurriculum:
		return summoning.New()
	case session.ScreenCurriculum:
		return curriculum.New()
	case session.ScreenBattleArena:
		return arena.New()
	}
	return nil
}

func (m AppModel) Init() tea.Cmd {
	return m.sync()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.inflight.cancelAll()
			return m, tea.Quit
		}

	case curriculumReadyMsg:
		m.inflight.done(session.RequestCurriculum, msg.Token)
		if !m.machine.ResolveCurriculum(msg.Token, msg.Curriculum, msg.Err) {
			m.logger.Debug("discarding stale result", "kind", session.RequestCurriculum, "token", msg.Token)
			return m, nil
		}
		m.logResult(session.RequestCurriculum, msg.Token, msg.Err)
		return m, m.sync()

	case encountersReadyMsg:
		m.inflight.done(session.RequestEncounters, msg.Token)
		if !m.machine.ResolveEncounters(msg.Token, msg.Data, msg.Err) {
			m.logger.Debug("discarding stale result", "kind", session.RequestEncounters, "token", msg.Token)
			return m, nil
		}
		m.logResult(session.RequestEncounters, msg.Token, msg.Err)
		return m, m.sync()

	case flashDoneMsg:
		if m.machine.ClearWrongFlash(msg.Seq) {
			return m, m.sync()
		}
		return m, nil
	}

	if cmd, ok := m.apply(msg); ok {
		return m, cmd
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// apply runs a screen gesture against the machine. It reports false for
// messages that are not gestures.
func (m AppModel) apply(msg tea.Msg) (tea.Cmd, bool) {
	var cmds []tea.Cmd
	applied := false

	switch msg := msg.(type) {
	case screen.SubmitTopicMsg:
		m.machine.SetTopicInput(msg.Topic)
		if req, ok := m.machine.SubmitTopic(); ok {
			applied = true
			cmds = append(cmds, m.generate(req))
		}

	case screen.SelectTopicMsg:
		if req, ok := m.machine.SelectTopic(msg.Module, msg.Topic); ok {
			applied = true
			cmds = append(cmds, m.generate(req))
		}

	case screen.RetreatMsg:
		if applied = m.machine.Retreat(); applied {
			m.inflight.cancel(session.RequestEncounters)
		}

	case screen.ResetMsg:
		if applied = m.machine.Reset(); applied {
			m.inflight.cancelAll()
		}

	case screen.StartQuizMsg:
		applied = m.machine.StartQuiz()

	case screen.AnswerMsg:
		outcome, ok := m.machine.Answer(msg.Index)
		applied = ok
		if ok {
			m.logger.Debug("answer", "correct", outcome.Correct, "delta", outcome.SoulsDelta, "souls", outcome.Souls)
			if !outcome.Correct {
				cmds = append(cmds, m.flashTimer(outcome.FlashSeq))
			}
		}

	case screen.NextEncounterMsg:
		applied = m.machine.NextEncounter()

	case screen.BackToCurriculumMsg:
		applied = m.machine.BackToCurriculum()

	case screen.DismissErrorMsg:
		applied = m.machine.DismissError()

	default:
		return nil, false
	}

	if !applied {
		m.logger.Debug("gesture ignored", "gesture", fmt.Sprintf("%T", msg), "screen", m.machine.View().Screen)
		return nil, true
	}
	return tea.Batch(append([]tea.Cmd{m.sync()}, cmds...)...), true
}

// sync shows the screen for the machine's current state.
func (m AppModel) sync() tea.Cmd {
	v := m.machine.View()
	prev := m.router.Kind()
	cmd := m.router.Show(v.Screen, v)
	if prev != v.Screen {
		m.logger.Info("transition", "from", prev, "to", v.Screen, "souls", v.Souls)
	}
	return cmd
}

// generate starts the request a transition opened. The result returns as
// a ready message carrying the request token.
func (m AppModel) generate(req session.Request) tea.Cmd {
	ctx, cancel := context.WithCancel(m.ctx)
	m.inflight.start(req.Kind, req.Token, cancel)
	provider := m.content

	switch req.Kind {
	case session.RequestCurriculum:
		m.logger.Info("requesting curriculum", "token", req.Token, "topic", req.Topic)
		return func() tea.Msg {
			c, err := provider.RequestCurriculum(ctx, req.Topic)
			return curriculumReadyMsg{Token: req.Token, Curriculum: c, Err: err}
		}

	default:
		m.logger.Info("requesting encounters", "token", req.Token,
			"subject", req.Subject, "module", req.Module, "topic", req.SubTopic)
		return func() tea.Msg {
			d, err := provider.RequestEncounterSet(ctx, req.Subject, req.Module, req.SubTopic)
			return encountersReadyMsg{Token: req.Token, Data: d, Err: err}
		}
	}
}

func (m AppModel) flashTimer(seq uint64) tea.Cmd {
	return tea.Tick(m.flashDelay, func(time.Time) tea.Msg {
		return flashDoneMsg{Seq: seq}
	})
}

func (m AppModel) logResult(kind session.RequestKind, tok session.Token, err error) {
	if err != nil {
		m.logger.Warn("generation failed",
			"kind", kind, "token", tok,
			"error_kind", content.Classify(err), "error", err)
		return
	}
	m.logger.Info("generation resolved", "kind", kind, "token", tok)
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.WindowTitle = "Grimoire"
	return v
}

// render composes the full frame: header, active screen and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	title := ""
	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if active := m.router.Active(); active != nil {
		title = active.Title()
		if hp, ok := active.(screen.KeyHintProvider); ok {
			hints = hp.KeyHints()
		}
	}

	header := layout.RenderHeader(title, m.machine.View().Souls, m.width)
	footer := layout.RenderFooter(hints, m.width)
	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	if opts.Content == nil {
		return fmt.Errorf("app: content provider is required")
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	model := newAppModel(ctx, opts)
	p := tea.NewProgram(model, progOpts...)
	_, err := p.Run()
	model.inflight.cancelAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
