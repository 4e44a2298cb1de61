// Package tui provides the Bubble Tea category picker used by the open
// command when no category is given on the command line.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/soundcloud-digger/internal/browser"
	"github.com/handiism/soundcloud-digger/internal/model"
)

// ErrCancelled is returned by Pick when the user leaves without choosing.
var ErrCancelled = errors.New("category selection cancelled")

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// Choice is one line of the picker.
type Choice struct {
	Name  string
	Count int
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model is the Bubble Tea model of the category picker.
type Model struct {
	choices  []Choice
	cursor   int
	chosen   string
	quitting bool

	keys keyMap
	help help.Model
}

// NewModel builds a picker over the categories of s plus "all". The cursor
// starts on "all".
func NewModel(s *model.Summary) Model {
	var choices []Choice
	for _, c := range model.Categories() {
		choices = append(choices, Choice{Name: c.String(), Count: s.Count(c)})
	}
	choices = append(choices, Choice{Name: browser.AllCategories, Count: s.Total()})

	return Model{
		choices: choices,
		cursor:  len(choices) - 1,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			} else {
				m.cursor = len(m.choices) - 1
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			} else {
				m.cursor = 0
			}

		case key.Matches(msg, m.keys.Choose):
			m.chosen = m.choices[m.cursor].Name
			return m, tea.Quit

		default:
			// digits jump straight to a choice
			if r := msg.String(); len(r) == 1 && r[0] >= '1' && int(r[0]-'1') < len(m.choices) {
				m.cursor = int(r[0] - '1')
				m.chosen = m.choices[m.cursor].Name
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.chosen != "" || m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("SoundCloud Digger"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Open which category?"))
	b.WriteString("\n\n")

	for i, choice := range m.choices {
		line := fmt.Sprintf("%d. %-13s", i+1, choice.Name)
		count := countStyle.Render(fmt.Sprintf("%4d link(s)", choice.Count))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString(" " + count + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen category name, and false if the picker was
// cancelled or has not finished.
func (m Model) Selected() (string, bool) {
	return m.chosen, m.chosen != ""
}

// Pick runs the picker and returns the chosen category name, or
// ErrCancelled.
func Pick(s *model.Summary, opts ...tea.ProgramOption) (string, error) {
	final, err := tea.NewProgram(NewModel(s), opts...).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(Model)
	if !ok {
		return "", ErrCancelled
	}
	chosen, ok := m.Selected()
	if !ok {
		return "", ErrCancelled
	}
	return chosen, nil
}
