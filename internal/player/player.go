// Package player renders a parsed MIDI file as a live terminal piano roll.
package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/artemneskorodov/piano/internal/midi"
	"github.com/artemneskorodov/piano/internal/ui"
)

type playState int

const (
	stateCountdown playState = iota
	statePlaying
	stateDone
)

const (
	countdownSeconds = 3
	redrawInterval   = 100 * time.Millisecond
	initialTempo     = 500000 // microseconds per quarter note
)

type KeyMap struct {
	Quit key.Binding
}

var DefaultKeys = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type countdownTickMsg time.Time

type redrawTickMsg time.Time

type stepMsg struct{}

// Model steps through the event stream on schedule and keeps the pressed-key
// state the view draws.
type Model struct {
	events []midi.Event
	next   int
	keys   [keyCount]bool

	state     playState
	countdown int
	tempo     uint32
	started   time.Time
	applied   int

	width  int
	keymap KeyMap
}

// New builds a player over an ordered event stream.
func New(events []midi.Event) Model {
	return Model{
		events:    events,
		countdown: countdownSeconds,
		tempo:     initialTempo,
		keymap:    DefaultKeys,
	}
}

// Run plays the stream in the alternate screen, blocking until the song ends
// and the operator leaves, or quits early.
func Run(events []midi.Event) error {
	if _, err := tea.NewProgram(New(events), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run player: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return countdownCmd()
}

func countdownCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return countdownTickMsg(t) })
}

func redrawCmd() tea.Cmd {
	return tea.Tick(redrawInterval, func(t time.Time) tea.Msg { return redrawTickMsg(t) })
}

// scheduleNext arms the timer for the upcoming event's delay.
func (m Model) scheduleNext() tea.Cmd {
	return tea.Tick(m.events[m.next].Delay, func(time.Time) tea.Msg { return stepMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			return m, tea.Quit
		}
		return m, nil

	case countdownTickMsg:
		if m.state != stateCountdown {
			return m, nil
		}
		m.countdown--
		if m.countdown > 0 {
			return m, countdownCmd()
		}
		m.state = statePlaying
		m.started = time.Now()
		if len(m.events) == 0 {
			m.state = stateDone
			return m, nil
		}
		return m, tea.Batch(m.scheduleNext(), redrawCmd())

	case stepMsg:
		if m.state != statePlaying {
			return m, nil
		}
		m.apply(m.events[m.next])
		m.next++
		m.applied++
		if m.next >= len(m.events) {
			m.state = stateDone
			return m, nil
		}
		return m, m.scheduleNext()

	case redrawTickMsg:
		// The roll only changes on events, but the elapsed clock should
		// move between them.
		if m.state != statePlaying {
			return m, nil
		}
		return m, redrawCmd()
	}

	return m, nil
}

func (m *Model) apply(e midi.Event) {
	switch e.Kind {
	case midi.NoteOn:
		m.keys[e.Note] = true
	case midi.NoteOff:
		m.keys[e.Note] = false
	case midi.TempoChange:
		m.tempo = e.Tempo
	}
}

func (m Model) View() string {
	boxWidth := keyCount + 4
	if m.width > 0 && m.width-2 < boxWidth {
		boxWidth = m.width - 2
	}

	var b strings.Builder

	switch m.state {
	case stateCountdown:
		b.WriteString(ui.DimStyle.Render("starting in"))
		b.WriteString("\n\n")
		b.WriteString(ui.BoldStyle.Render(fmt.Sprintf("  %d", m.countdown)))

	case statePlaying:
		b.WriteString(renderKeyboard(m.keys))
		b.WriteString("\n\n")
		b.WriteString(ui.DimStyle.Render(m.statusLine()))

	case stateDone:
		b.WriteString(renderKeyboard(m.keys))
		b.WriteString("\n\n")
		b.WriteString(ui.SuccessBadge("DONE"))
		b.WriteString(ui.DimStyle.Render("  song finished"))
	}

	b.WriteString("\n\n")
	b.WriteString(ui.StatusKey("q", "quit"))

	return ui.Panel("piano", b.String(), boxWidth)
}

func (m Model) statusLine() string {
	elapsed := time.Since(m.started).Truncate(redrawInterval)
	bpm := float64(0)
	if m.tempo > 0 {
		bpm = 60e6 / float64(m.tempo)
	}
	return fmt.Sprintf("%s  %d/%d events  %.0f bpm", elapsed, m.applied, len(m.events), bpm)
}
