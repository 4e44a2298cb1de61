package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/soundcloud-digger/internal/model"
)

func pickerSummary() *model.Summary {
	return model.NewSummary([model.NumCategories][]model.Entry{
		model.CategoryBandcamp: {
			{Title: "B", TrackURL: "https://soundcloud.com/a/b", ShopLink: "https://b.bandcamp.com/b"},
		},
		model.CategoryOthers: {
			{Title: "O", TrackURL: "https://soundcloud.com/a/o", ShopLink: "https://soundcloud.com/a/o"},
			{Title: "P", TrackURL: "https://soundcloud.com/a/p", ShopLink: "https://soundcloud.com/a/p"},
		},
	})
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel_Choices(t *testing.T) {
	m := NewModel(pickerSummary())

	assert.Equal(t, []Choice{
		{Name: "hypeddit", Count: 0},
		{Name: "bandcamp", Count: 1},
		{Name: "beatport", Count: 0},
		{Name: "junodownload", Count: 0},
		{Name: "others", Count: 2},
		{Name: "all", Count: 3},
	}, m.choices)
	assert.Equal(t, 5, m.cursor)
}

func TestModel_DefaultIsAll(t *testing.T) {
	m, cmd := send(t, NewModel(pickerSummary()), keyMsg("enter"))

	chosen, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, "all", chosen)
	assert.NotNil(t, cmd)
}

func TestModel_Navigate(t *testing.T) {
	m, _ := send(t, NewModel(pickerSummary()),
		keyMsg("down"), // wraps to hypeddit
		keyMsg("j"),    // bandcamp
		keyMsg("enter"),
	)

	chosen, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, "bandcamp", chosen)
}

func TestModel_UpWraps(t *testing.T) {
	m, _ := send(t, NewModel(pickerSummary()),
		keyMsg("up"), // others
		keyMsg("k"),  // junodownload
	)

	assert.Equal(t, 3, m.cursor)
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestModel_DigitShortcut(t *testing.T) {
	m, _ := send(t, NewModel(pickerSummary()), keyMsg("3"))

	chosen, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, "beatport", chosen)
}

func TestModel_Cancel(t *testing.T) {
	m, cmd := send(t, NewModel(pickerSummary()), keyMsg("esc"))

	_, ok := m.Selected()
	assert.False(t, ok)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestModel_View(t *testing.T) {
	view := NewModel(pickerSummary()).View()

	assert.Contains(t, view, "Open which category?")
	assert.Contains(t, view, "junodownload")
	assert.Contains(t, view, "3 link(s)")
}
