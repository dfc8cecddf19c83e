// Package trainer runs the typing-session state machine behind a presenter.
package trainer

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/prompt"
	"github.com/verte-zerg/typeracer/internal/scoring"
	"github.com/verte-zerg/typeracer/internal/session"
)

// ErrNotWired is returned when a required collaborator is missing. Adapters
// must not forward events when New fails.
var ErrNotWired = errors.New("trainer: presenter or prompt bank missing")

// Trainer holds the reference prompt and the current session for one widget.
// It is not safe for concurrent use; adapters deliver events one at a time.
type Trainer struct {
	presenter   Presenter
	bank        *prompt.Bank
	timer       session.Timer
	log         logrus.FieldLogger
	freshPrompt bool

	level   model.Level
	prompt  string
	session session.Session
	last    *model.ScoreResult
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithClock sets the clock used for session timing.
func WithClock(clock session.Clock) Option {
	return func(t *Trainer) {
		t.timer = session.NewTimer(clock)
	}
}

// WithLogger sets the logger for session events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Trainer) {
		if log != nil {
			t.log = log
		}
	}
}

// WithFreshPrompt draws a new prompt every time a session starts.
func WithFreshPrompt(enabled bool) Option {
	return func(t *Trainer) {
		t.freshPrompt = enabled
	}
}

// New wires a trainer to a presenter and a prompt bank.
func New(p Presenter, bank *prompt.Bank, opts ...Option) (*Trainer, error) {
	if p == nil || bank == nil {
		return nil, ErrNotWired
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	t := &Trainer{
		presenter: p,
		bank:      bank,
		timer:     session.NewTimer(nil),
		log:       discard,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Init shows the label and a prompt for the selected level and puts the
// controls into their idle state.
func (t *Trainer) Init() {
	t.showLevel()
	t.presenter.SetStartEnabled(true)
	t.presenter.SetStopEnabled(false)
	t.presenter.SetInputEnabled(false)
}

// Dispatch routes an adapter event to its handler.
func (t *Trainer) Dispatch(ev Event) {
	switch ev {
	case EventLevelChanged:
		t.LevelChanged()
	case EventStart:
		t.Start()
	case EventStop:
		t.Stop()
	case EventInput:
		t.TypedTextChanged()
	default:
		t.log.WithField("event", int(ev)).Warn("ignoring unknown event")
	}
}

// LevelChanged swaps in a prompt for the newly selected level. A running
// session keeps its clock and is re-highlighted against the new prompt.
func (t *Trainer) LevelChanged() {
	t.showLevel()
	if t.session.Active() {
		t.renderHighlight()
	}
}

// Start begins a session: the clock starts and the input surface is cleared
// and enabled. Starting while active restarts the clock.
func (t *Trainer) Start() {
	if t.freshPrompt {
		t.showLevel()
	}
	t.session = t.timer.Start()
	t.presenter.SetStartEnabled(false)
	t.presenter.SetStopEnabled(true)
	t.presenter.ClearTypedText()
	t.presenter.SetInputEnabled(true)
	t.presenter.RenderPlainText(t.prompt)
	t.log.WithField("level", t.level).Debug("session started")
}

// TypedTextChanged re-renders the live highlight. It is ignored while idle.
func (t *Trainer) TypedTextChanged() {
	if !t.session.Active() {
		return
	}
	t.renderHighlight()
}

// Stop ends the active session and displays elapsed time and WPM. ok is false
// when no session is active; nothing is displayed in that case.
func (t *Trainer) Stop() (model.ScoreResult, bool) {
	elapsed, ok := t.timer.Stop(t.session)
	if !ok {
		return model.ScoreResult{}, false
	}
	t.session = session.Session{}

	result := scoring.Score(t.prompt, t.presenter.TypedText(), elapsed)
	t.last = &result

	t.presenter.DisplayElapsed(session.FormatSeconds(result.ElapsedSeconds))
	t.presenter.DisplayWPM(result.WPM)
	t.presenter.SetStopEnabled(false)
	t.presenter.SetStartEnabled(true)
	t.presenter.SetInputEnabled(false)
	t.presenter.RenderPlainText(t.prompt)

	t.log.WithFields(logrus.Fields{
		"level":   t.level,
		"elapsed": result.ElapsedSeconds,
		"correct": result.CorrectWords,
		"wpm":     result.WPM,
	}).Info("session stopped")
	return result, true
}

// Active reports whether a session is running.
func (t *Trainer) Active() bool {
	return t.session.Active()
}

// Elapsed returns the running time of the active session in seconds.
func (t *Trainer) Elapsed() float64 {
	return t.timer.Elapsed(t.session)
}

// Prompt returns the current reference text.
func (t *Trainer) Prompt() string {
	return t.prompt
}

// Level returns the level the current prompt was drawn from.
func (t *Trainer) Level() model.Level {
	return t.level
}

// Last returns the result of the most recent stopped session.
func (t *Trainer) Last() (model.ScoreResult, bool) {
	if t.last == nil {
		return model.ScoreResult{}, false
	}
	return *t.last, true
}

func (t *Trainer) showLevel() {
	t.level = t.bank.Resolve(model.ParseLevel(t.presenter.SelectedLevel()))
	t.prompt = t.bank.Select(t.level)
	t.presenter.DisplayLevelLabel(t.level.Label())
	t.presenter.SetReferenceText(t.prompt)
	t.presenter.RenderPlainText(t.prompt)
}

func (t *Trainer) renderHighlight() {
	t.presenter.RenderHighlighted(scoring.Highlight(t.prompt, t.presenter.TypedText()))
}
