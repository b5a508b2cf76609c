package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/th06rip/internal/config"
	"github.com/handiism/th06rip/internal/rip"
)

func newTestModel() Model {
	return NewModel(Options{
		GameDir:  "/games/th06",
		DatPath:  "/games/th06/th06md.dat",
		Settings: config.DefaultSettings(),
	})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestModel_Toggles(t *testing.T) {
	m := newTestModel()
	assert.False(t, m.extended)
	assert.False(t, m.verbose)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})

	assert.True(t, m.extended)
	assert.True(t, m.verbose)
	assert.Contains(t, m.View(), "[×] Extended M3U")
}

func TestModel_EnterNeedsDestination(t *testing.T) {
	m := update(t, newTestModel(), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateInput, m.state)

	m.textInput.SetValue("/music")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateInitializing, m.state)
}

func TestModel_ProgressLogs(t *testing.T) {
	m := newTestModel()

	m = update(t, m, ProgressMsg{Event: rip.ProgressEvent{Message: "hidden", Level: rip.LevelVerbose}})
	assert.Empty(t, m.logs, "verbose events are filtered")

	for range maxLogs + 5 {
		m = update(t, m, ProgressMsg{Event: rip.ProgressEvent{Message: "Extracted", Level: rip.LevelInfo}})
	}
	assert.Len(t, m.logs, maxLogs)
}

func TestModel_InitError(t *testing.T) {
	m := newTestModel()
	m.state = StateInitializing

	m = update(t, m, InitDoneMsg{Err: errors.New("thdat not found")})

	assert.Equal(t, StateError, m.state)
	assert.Contains(t, m.View(), "thdat not found")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, StateInput, m.state)
	assert.NoError(t, m.err)
}

func TestModel_CancelDuringRip(t *testing.T) {
	m := newTestModel()
	m.state = StateRipping

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, StateError, m.state)
	assert.ErrorIs(t, m.err, errCancelled)
	assert.Error(t, m.ctx.Err())
}

func TestModel_RipDone(t *testing.T) {
	m := newTestModel()
	m.state = StateRipping
	m.setPath = "/music/th06"
	m.playlistPath = "/music/th06/!tags.m3u"

	m = update(t, m, RipDoneMsg{Files: 17, TotalF: 17})

	assert.Equal(t, StateComplete, m.state)
	view := m.View()
	assert.Contains(t, view, "/music/th06")
	assert.Contains(t, view, "!tags.m3u")
}

func TestModel_WindowSize(t *testing.T) {
	m := update(t, newTestModel(), tea.WindowSizeMsg{Width: 200, Height: 50})
	assert.Equal(t, 80, m.progress.Width)

	m = update(t, m, tea.WindowSizeMsg{Width: 10, Height: 50})
	assert.Equal(t, 20, m.progress.Width)
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/reimu")
	assert.Equal(t, "/home/reimu/Music", expandHome("~/Music"))
	assert.Equal(t, "/srv/music", expandHome("/srv/music"))
	assert.Equal(t, "~user/x", expandHome("~user/x"))
}
