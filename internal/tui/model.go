// Package tui provides the Bubble Tea replay recorder.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/typeproof/typeproof/internal/replay"
	"github.com/typeproof/typeproof/internal/score"
)

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// Result is what a finished recording session produced.
type Result struct {
	Events  []replay.Event
	Stats   score.Stats
	Done    bool
	Aborted bool
}

// Model implements the Bubble Tea recorder. It captures one timed key event
// per accepted keystroke; the event stream, not the rendered text, is the
// session's authoritative record.
type Model struct {
	promptText  string
	targetRunes []rune
	inputRunes  []rune

	events      []replay.Event
	lastEventAt time.Time

	stats    score.Stats
	haveStat bool

	width  int
	height int

	done    bool
	aborted bool
}

// NewModel constructs a recorder for an already-normalized prompt.
func NewModel(promptText string) *Model {
	return &Model{
		promptText:  promptText,
		targetRunes: []rune(promptText),
		lastEventAt: time.Now(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.lastEventAt = time.Now()
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.done {
			return m, tea.Quit
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyBackspace, tea.KeyDelete:
			m.handleBackspace()
			return m, nil
		case tea.KeySpace:
			m.handleRune(' ')
			return m, nil
		case tea.KeyEnter:
			m.recordEvent(replay.KeyEnter)
			m.finish()
			return m, tea.Quit
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				m.handleRune(r)
				if m.done {
					return m, tea.Quit
				}
			}
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.targetRunes) == 0 {
		return ""
	}
	cursorIndex := -1
	if len(m.inputRunes) < len(m.targetRunes) {
		cursorIndex = len(m.inputRunes)
	}
	styled := buildStyledRunes(m.targetRunes, m.inputRunes, cursorIndex)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styled)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styled, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

// Result returns the recorded session after the program exits.
func (m *Model) Result() Result {
	return Result{
		Events:  m.events,
		Stats:   m.stats,
		Done:    m.done,
		Aborted: m.aborted,
	}
}

func (m *Model) handleRune(r rune) {
	if r >= 'A' && r <= 'Z' {
		r += 32
	}
	var key uint8
	switch {
	case r >= 'a' && r <= 'z':
		key = uint8(r - 'a')
	case r == ' ':
		key = replay.KeySpace
	default:
		// Outside the closed alphabet; nothing to record.
		return
	}
	if len(m.inputRunes) >= len(m.targetRunes) {
		return
	}
	m.inputRunes = append(m.inputRunes, r)
	m.recordEvent(key)
	if len(m.inputRunes) == len(m.targetRunes) {
		m.finish()
	}
}

func (m *Model) handleBackspace() {
	if len(m.inputRunes) == 0 {
		// Recording it anyway would only pad the replay; the interpreter
		// treats backspace on empty output as a no-op either way.
		return
	}
	m.inputRunes = m.inputRunes[:len(m.inputRunes)-1]
	m.recordEvent(replay.KeyBackspace)
}

func (m *Model) recordEvent(key uint8) {
	if len(m.events) >= replay.MaxEvents {
		return
	}
	now := time.Now()
	dt := now.Sub(m.lastEventAt).Milliseconds()
	m.lastEventAt = now
	if dt < score.MinEventGapMs {
		dt = score.MinEventGapMs
	}
	if dt > 0xFFFF {
		dt = 0xFFFF
	}
	m.events = append(m.events, replay.Event{DtMs: uint16(dt), Key: key})
	m.refreshStats()
}

func (m *Model) refreshStats() {
	stats, err := score.Compute(m.promptText, m.events)
	if err != nil {
		// Recorded keys are always inside the closed alphabet.
		return
	}
	m.stats = stats
	m.haveStat = true
}

func (m *Model) finish() {
	m.done = true
	m.refreshStats()
}

func (m *Model) renderFooter() string {
	progress := 0
	if len(m.targetRunes) > 0 {
		progress = len(m.inputRunes) * 100 / len(m.targetRunes)
	}
	segments := []string{fmt.Sprintf("Progress %d%%", progress)}
	if m.haveStat {
		segments = append(segments,
			fmt.Sprintf("%d.%02d WPM", m.stats.WpmX100/100, m.stats.WpmX100%100),
			fmt.Sprintf("%d.%02d%%", m.stats.AccuracyBps/100, m.stats.AccuracyBps%100),
		)
		if m.stats.BelowMinDuration() {
			// Advisory only on the client; the relay rejects outright.
			segments = append(segments, warnStyle.Render("too fast to prove"))
		}
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
