// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/prompt"
	"github.com/verte-zerg/typeracer/internal/session"
	"github.com/verte-zerg/typeracer/internal/trainer"
)

const tickInterval = 100 * time.Millisecond

type tickMsg time.Time

var _ trainer.Presenter = (*Model)(nil)

// Model implements the Bubble Tea typing UI. It is the trainer's presenter:
// trainer calls land in the fields below and View renders them.
type Model struct {
	trainer *trainer.Trainer
	levels  []model.Level
	level   int

	input textinput.Model
	keys  keyMap
	help  help.Model

	width  int
	height int

	reference   string
	plain       string
	highlighted []model.Token
	label       string
	elapsed     string
	wpm         int
	hasResult   bool

	pending []tea.Cmd
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Underline(true)
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	plainStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	activeLevelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	levelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a typing TUI model over bank.
func NewModel(cfg model.Config, bank *prompt.Bank, log logrus.FieldLogger, opts ...trainer.Option) (*Model, error) {
	input := textinput.New()
	input.Placeholder = "press enter to start"
	input.Prompt = "> "

	m := &Model{
		levels: bank.Levels(),
		input:  input,
		keys:   newKeyMap(),
		help:   help.New(),
	}
	for i, l := range m.levels {
		if l == cfg.Level {
			m.level = i
		}
	}

	opts = append([]trainer.Option{
		trainer.WithFreshPrompt(cfg.FreshPrompt),
		trainer.WithLogger(log),
	}, opts...)
	tr, err := trainer.New(m, bank, opts...)
	if err != nil {
		return nil, err
	}
	m.trainer = tr
	m.trainer.Init()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.drain()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(m.contentWidth()-lipgloss.Width(m.input.Prompt)-1, 1)
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		if m.trainer.Active() {
			return m, tick()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextLevel):
		m.moveLevel(1)
		return m, m.drain()
	case key.Matches(msg, m.keys.PrevLevel):
		m.moveLevel(-1)
		return m, m.drain()
	case key.Matches(msg, m.keys.Start):
		m.trainer.Dispatch(trainer.EventStart)
		return m, tea.Batch(m.drain(), tick())
	case key.Matches(msg, m.keys.Stop):
		m.trainer.Dispatch(trainer.EventStop)
		return m, m.drain()
	}
	if !m.input.Focused() {
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.trainer.Dispatch(trainer.EventInput)
	}
	return m, tea.Batch(cmd, m.drain())
}

func (m *Model) moveLevel(delta int) {
	if len(m.levels) == 0 {
		return
	}
	m.level = (m.level + delta + len(m.levels)) % len(m.levels)
	m.trainer.Dispatch(trainer.EventLevelChanged)
}

func (m *Model) drain() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmd := tea.Batch(m.pending...)
	m.pending = nil
	return cmd
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.contentWidth()
	var words []styledWord
	if m.highlighted != nil {
		words = buildStyledWords(m.highlighted)
	} else if m.plain != "" {
		words = plainWords(m.plain)
	} else {
		words = plainWords(m.reference)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.renderLevels(),
		"",
		lipgloss.NewStyle().Width(width).Render(wrapStyledWords(words, width)),
		"",
		m.input.View(),
		"",
		m.renderFooter(),
	)
	if m.width == 0 || m.height == 0 {
		return body + "\n" + m.help.View(m.keys)
	}
	helpLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.help.View(m.keys))
	content := lipgloss.Place(m.width, max(m.height-1, 1), lipgloss.Center, lipgloss.Center, body)
	return content + "\n" + helpLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(int(float64(m.width)*0.70), 1)
}

func (m *Model) renderLevels() string {
	parts := make([]string, 0, len(m.levels))
	for i, l := range m.levels {
		if i == m.level {
			parts = append(parts, activeLevelStyle.Render("["+l.Label()+"]"))
			continue
		}
		parts = append(parts, levelStyle.Render(" "+l.Label()+" "))
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("Level %s", m.label)}
	switch {
	case m.trainer != nil && m.trainer.Active():
		segments = append(segments, fmt.Sprintf("Time %ss", session.FormatSeconds(m.trainer.Elapsed())))
	case m.hasResult:
		segments = append(segments, fmt.Sprintf("Time %ss", m.elapsed), fmt.Sprintf("%d WPM", m.wpm))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

// SelectedLevel implements trainer.Presenter.
func (m *Model) SelectedLevel() string {
	if len(m.levels) == 0 {
		return ""
	}
	return m.levels[m.level].String()
}

// TypedText implements trainer.Presenter.
func (m *Model) TypedText() string {
	return m.input.Value()
}

// SetReferenceText implements trainer.Presenter.
func (m *Model) SetReferenceText(text string) {
	m.reference = text
}

// ClearTypedText implements trainer.Presenter.
func (m *Model) ClearTypedText() {
	m.input.Reset()
}

// SetInputEnabled implements trainer.Presenter.
func (m *Model) SetInputEnabled(enabled bool) {
	if enabled {
		m.input.Placeholder = ""
		m.pending = append(m.pending, m.input.Focus())
		return
	}
	m.input.Placeholder = "press enter to start"
	m.input.Blur()
}

// RenderHighlighted implements trainer.Presenter.
func (m *Model) RenderHighlighted(tokens []model.Token) {
	m.highlighted = tokens
	m.plain = ""
}

// RenderPlainText implements trainer.Presenter.
func (m *Model) RenderPlainText(text string) {
	m.plain = text
	m.highlighted = nil
}

// DisplayElapsed implements trainer.Presenter.
func (m *Model) DisplayElapsed(formatted string) {
	m.elapsed = formatted
	m.hasResult = true
}

// DisplayWPM implements trainer.Presenter.
func (m *Model) DisplayWPM(wpm int) {
	m.wpm = wpm
}

// DisplayLevelLabel implements trainer.Presenter.
func (m *Model) DisplayLevelLabel(label string) {
	m.label = label
}

// SetStartEnabled implements trainer.Presenter.
func (m *Model) SetStartEnabled(enabled bool) {
	m.keys.Start.SetEnabled(enabled)
}

// SetStopEnabled implements trainer.Presenter.
func (m *Model) SetStopEnabled(enabled bool) {
	m.keys.Stop.SetEnabled(enabled)
}
