// Package picker implements the interactive single-choice prompt used to pick
// a serial device.
package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/artemneskorodov/piano/internal/ui"
)

// ErrNoChoices is returned when a prompt is requested over an empty list.
var ErrNoChoices = errors.New("no choices to present")

// Selection is the outcome of one prompt round: either the index of the
// chosen label or a cancellation. Index refers to the caller's slice, not to
// any filtered view.
type Selection struct {
	Index     int
	Cancelled bool
}

// Prompter asks the operator to pick one label out of a list.
type Prompter interface {
	Choose(title string, labels []string) (Selection, error)
}

// TTY is the interactive Prompter: a filtered list the operator navigates
// with the keyboard. Enter selects, Esc or Ctrl+C cancels.
type TTY struct{}

// Choose blocks until the operator has decided. Exactly one of a selection
// or a cancellation comes back; anything else is a terminal failure.
func (TTY) Choose(title string, labels []string) (Selection, error) {
	if len(labels) == 0 {
		return Selection{}, ErrNoChoices
	}

	final, err := tea.NewProgram(newModel(title, labels)).Run()
	if err != nil {
		return Selection{}, fmt.Errorf("failed to run picker: %w", err)
	}

	m := final.(model)
	if m.cancelled || m.choice < 0 {
		return Selection{Cancelled: true}, nil
	}
	return Selection{Index: m.choice}, nil
}

// item pairs a label with its position in the caller's slice so filtering
// never breaks the index contract.
type item struct {
	label string
	index int
}

type model struct {
	title    string
	items    []item
	filtered []item
	input    textinput.Model
	cursor   int
	width    int

	choice    int
	cancelled bool
}

const maxVisibleItems = 12

func newModel(title string, labels []string) model {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 128

	items := make([]item, len(labels))
	for i, label := range labels {
		items[i] = item{label: label, index: i}
	}

	return model{
		title:    title,
		items:    items,
		filtered: items,
		input:    ti,
		choice:   -1,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				m.choice = m.filtered[m.cursor].index
				return m, tea.Quit
			}
			return m, nil
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	// Forward other keys to the filter input
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter()
	return m, cmd
}

func (m model) View() string {
	boxWidth := m.width - 4
	if boxWidth > 72 {
		boxWidth = 72
	}
	if boxWidth < 40 {
		boxWidth = 40
	}

	innerWidth := boxWidth - 4 // border + padding

	var b strings.Builder

	// Filter input
	m.input.Width = innerWidth - 3 // account for prompt "> "
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	// Scroll window around cursor
	visible := maxVisibleItems
	if visible > len(m.filtered) {
		visible = len(m.filtered)
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.filtered) {
		end = len(m.filtered)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	for i := start; i < end; i++ {
		label := m.filtered[i].label
		if len(label) > innerWidth-4 {
			label = label[:innerWidth-4]
		}

		if i == m.cursor {
			b.WriteString(ui.SelectedStyle.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(ui.DimStyle.Render("  No matches"))
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	footer := fmt.Sprintf("(%d/%d ports)  enter:select  esc:cancel", len(m.filtered), len(m.items))
	b.WriteString(ui.DimStyle.Render(footer))

	return ui.Panel(m.title, b.String(), boxWidth)
}

func (m *model) filter() {
	query := strings.ToLower(m.input.Value())
	if query == "" {
		m.filtered = m.items
	} else {
		m.filtered = nil
		for _, it := range m.items {
			if fuzzyMatch(strings.ToLower(it.label), query) {
				m.filtered = append(m.filtered, it)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// fuzzyMatch checks if all characters in query appear in s in order.
func fuzzyMatch(s, query string) bool {
	qi := 0
	for i := 0; i < len(s) && qi < len(query); i++ {
		if s[i] == query[qi] {
			qi++
		}
	}
	return qi == len(query)
}
