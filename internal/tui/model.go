// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/speedtype/internal/engine"
	"github.com/verte-zerg/speedtype/internal/model"
)

// Recorder persists finished results.
type Recorder interface {
	InsertResult(ctx context.Context, r model.Result) error
}

// sessionUpdatedMsg signals that the session changed outside Update, usually
// from a countdown tick.
type sessionUpdatedMsg struct{}

// Model implements the Bubble Tea typing UI on top of an engine.Session.
type Model struct {
	config   model.Config
	session  *engine.Session
	recorder Recorder
	keys     keyMap

	updates     chan struct{}
	unsubscribe func()

	snap     engine.Snapshot
	recorded string

	width  int
	height int
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	warnStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
)

// NewModel constructs a typing TUI model. recorder may be nil to skip history.
func NewModel(cfg model.Config, session *engine.Session, recorder Recorder) *Model {
	m := &Model{
		config:   cfg,
		session:  session,
		recorder: recorder,
		keys:     defaultKeyMap(),
		updates:  make(chan struct{}, 1),
	}
	m.unsubscribe = session.Subscribe(func(engine.Snapshot) {
		select {
		case m.updates <- struct{}{}:
		default:
		}
	})
	m.snap = session.Snapshot()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m *Model) waitForUpdate() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		<-updates
		return sessionUpdatedMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case sessionUpdatedMsg:
		m.refresh()
		return m, m.waitForUpdate()
	case tea.KeyMsg:
		// A countdown expiry may still be queued; record it before the key
		// can reset the session.
		m.refresh()
		if key.Matches(msg, m.keys.Quit) {
			m.Close()
			return m, tea.Quit
		}
		m.handleKey(msg)
		m.refresh()
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Start):
		m.session.Start()
	case key.Matches(msg, m.keys.Restart):
		m.session.Reset()
		m.session.Start()
	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
	case msg.Type == tea.KeySpace:
		m.session.SubmitKey(" ")
	case msg.Type == tea.KeyRunes && msg.Paste:
		for _, r := range msg.Runes {
			m.session.SubmitVirtualChar(string(r))
		}
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			m.session.SubmitKey(string(r))
		}
	}
}

// Close cancels any running countdown and detaches from the session.
func (m *Model) Close() {
	m.session.Reset()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Model) refresh() {
	m.snap = m.session.Snapshot()
	m.recordIfFinished()
}

func (m *Model) recordIfFinished() {
	snap := m.snap
	if snap.State != engine.StateFinished || snap.ID == "" || snap.ID == m.recorded {
		return
	}
	m.recorded = snap.ID
	if m.recorder == nil || !m.config.History {
		return
	}
	result := model.Result{
		ID:          snap.ID,
		StartedAt:   snap.StartedAt,
		EndedAt:     snap.EndedAt,
		Duration:    snap.Duration,
		TargetChars: len([]rune(snap.TargetText)),
		Progress:    snap.ProgressIndex,
		Errors:      snap.ErrorCount,
		Accuracy:    snap.Accuracy,
		WPM:         snap.WPM,
		Reason:      snap.Reason.String(),
		WordList:    m.config.WordList,
	}
	if err := m.recorder.InsertResult(context.Background(), result); err != nil {
		logErrf("failed to save result: %v\n", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.snap.State {
	case engine.StateFinished:
		content = renderResults(m.snap)
	default:
		content = m.renderText()
	}
	status := m.renderStatus()
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{status, content, footer}, "\n\n")
	}
	if m.height < 5 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 2
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, status, "", content))
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n\n" + footerLine
}

func (m *Model) renderText() string {
	target := []rune(m.snap.TargetText)
	if m.snap.State == engine.StateIdle {
		return pendingStyle.Render(m.snap.TargetText)
	}
	styled := buildStyledRunes(target, m.snap.ProgressIndex, m.snap.LastKeystrokeWasError)
	if m.width == 0 {
		return renderStyledRunes(styled)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	return lipgloss.NewStyle().Width(contentWidth).Render(wrapStyledRunes(styled, contentWidth))
}

func (m *Model) renderStatus() string {
	snap := m.snap
	timeText := fmt.Sprintf("%ds", snap.RemainingSeconds)
	if snap.State == engine.StateRunning && snap.RemainingSeconds <= 10 {
		timeText = warnStyle.Render(timeText)
	}
	errorsText := fmt.Sprintf("Errors %d/%d", snap.ErrorCount, snap.ErrorCeiling)
	if snap.LastKeystrokeWasError {
		errorsText = warnStyle.Render(errorsText)
	}
	segments := []string{
		"Time " + timeText,
		fmt.Sprintf("WPM %d", snap.WPM),
		fmt.Sprintf("Accuracy %d%%", snap.Accuracy),
		errorsText,
	}
	return footerStyle.Render(strings.Join(segments, "  ·  "))
}

func (m *Model) renderFooter() string {
	var hints []string
	switch m.snap.State {
	case engine.StateRunning:
		hints = m.keys.hints(m.keys.Restart, m.keys.Reset, m.keys.Quit)
	default:
		hints = m.keys.hints(m.keys.Start, m.keys.Restart, m.keys.Quit)
	}
	return footerStyle.Render(strings.Join(hints, " • "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
