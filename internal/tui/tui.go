// Package tui provides a Bubble Tea terminal user interface for th06rip.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/handiism/th06rip/internal/config"
	"github.com/handiism/th06rip/internal/rip"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is the number of log lines kept on screen.
const maxLogs = 10

var errCancelled = errors.New("cancelled by user")

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateRipping
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   rip.ProgressLevel
}

// Options configure a Model.
type Options struct {
	GameDir  string
	DatPath  string
	Settings *config.Settings
	Logger   zerolog.Logger

	// Opener replaces the thdat catalog, nil uses thdat.
	Opener rip.CatalogOpener
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	opts      Options
	logs      []LogEntry
	tracks    []string
	err       error

	// Rip context
	ctx    context.Context
	cancel context.CancelFunc
	events chan rip.ProgressEvent

	// Rip manager reference
	manager *rip.Manager

	// Rip progress
	totalFiles     int32
	extractedFiles int32
	totalBytes     int64
	setPath        string
	playlistPath   string

	// Toggles
	extended bool
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(opts Options) Model {
	if opts.Settings == nil {
		opts.Settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = filepath.Join("~", "Music", "Touhou")
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		opts:      opts,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan rip.ProgressEvent, 64),
		extended:  opts.Settings.M3UExtended,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForEvent())
}

// Message types
type (
	// ProgressMsg carries a progress event from the manager.
	ProgressMsg struct {
		Event rip.ProgressEvent
	}

	// InitDoneMsg is sent when initialization completes.
	InitDoneMsg struct {
		Tracks  []string
		Bytes   int64
		Manager *rip.Manager
		Err     error
	}

	// RipDoneMsg is sent when the set has been written.
	RipDoneMsg struct {
		Files  int32
		TotalF int32
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateRipping || m.state == StateInitializing {
				m.cancel()
				m.state = StateError
				m.err = errCancelled
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateInitializing
				return m, tea.Batch(m.initializeRip(), m.spinner.Tick)
			}

		case "ctrl+x":
			if m.state == StateInput {
				m.extended = !m.extended
			}

		case "ctrl+o":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m = m.reset()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.waitForEvent())
		if msg.Event.Level == rip.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case InitDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			break
		}
		m.tracks = msg.Tracks
		m.totalBytes = msg.Bytes
		m.manager = msg.Manager
		if set := msg.Manager.Set(); set != nil {
			m.setPath = set.Path
			m.playlistPath = set.PlaylistPath
		}
		m.state = StateRipping
		cmds = append(cmds, m.startRip(), m.tickProgress())

	case RipDoneMsg:
		m.extractedFiles = msg.Files
		m.totalFiles = msg.TotalF
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateRipping {
			files, totalFiles := m.manager.GetProgress()
			m.extractedFiles = files
			m.totalFiles = totalFiles
			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// reset prepares the model for another rip with the same archive.
func (m Model) reset() Model {
	m.state = StateInput
	m.logs = nil
	m.tracks = nil
	m.err = nil
	m.extractedFiles = 0
	m.totalFiles = 0
	m.totalBytes = 0
	m.setPath = ""
	m.playlistPath = ""
	m.manager = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
	return m
}

func (m Model) percent() float64 {
	if m.totalFiles == 0 {
		return 0
	}
	return float64(m.extractedFiles) / float64(m.totalFiles)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent delivers the next progress event as a ProgressMsg.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return ProgressMsg{Event: <-events}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ th06rip"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Ripping %s", filepath.Base(m.opts.DatPath))))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateRipping:
		b.WriteString(m.viewRipping())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Destination directory:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Extended M3U (ctrl+x)\n", checkbox(m.extended)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+o)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Game directory: %s", m.opts.GameDir)))
	b.WriteString("\n")

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Reading archive and music room comments..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewRipping() string {
	var b strings.Builder

	if len(m.tracks) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Found %d track(s):", len(m.tracks))))
		b.WriteString("\n")
		for _, track := range m.tracks {
			b.WriteString(trackStyle.Render("  ♪ " + track))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Files: %d/%d | Size: %s",
		m.extractedFiles,
		m.totalFiles,
		humanize.IBytes(uint64(m.totalBytes)),
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	box := boxStyle.Render(fmt.Sprintf(
		"✨ Rip Complete!\n\n"+
			"Set: %s\n"+
			"Playlist: %s\n"+
			"Tracks: %d\n"+
			"Size: %s",
		m.setPath,
		filepath.Base(m.playlistPath),
		m.extractedFiles,
		humanize.IBytes(uint64(m.totalBytes)),
	))
	return box
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case rip.LevelError:
			style = errorStyle
			prefix = "✗"
		case rip.LevelWarning:
			style = warningStyle
			prefix = "!"
		case rip.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case rip.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+x: extended • ctrl+o: verbose • esc: quit"
	case StateInitializing, StateRipping:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: rip again • q: quit"
	}
	return ""
}

// initializeRip reads the archive and creates the manager.
func (m Model) initializeRip() tea.Cmd {
	ctx, events, opts := m.ctx, m.events, m.opts
	dest := expandHome(strings.TrimSpace(m.textInput.Value()))

	settings := *opts.Settings
	settings.M3UExtended = m.extended

	return func() tea.Msg {
		managerOpts := []rip.Option{rip.WithLogger(opts.Logger)}
		if opts.Opener != nil {
			managerOpts = append(managerOpts, rip.WithCatalogOpener(opts.Opener))
		}

		manager := rip.NewManager(&settings, func(event rip.ProgressEvent) {
			// Drop events rather than stall the rip when the UI lags
			select {
			case events <- event:
			default:
			}
		}, managerOpts...)

		if err := manager.Initialize(ctx, opts.GameDir, opts.DatPath, dest); err != nil {
			return InitDoneMsg{Err: err}
		}

		var (
			names []string
			bytes int64
		)
		for _, track := range manager.Set().Tracks {
			names = append(names, track.DisplayTitle())
			bytes += track.Size
		}

		return InitDoneMsg{Tracks: names, Bytes: bytes, Manager: manager}
	}
}

// startRip runs the rip in background.
func (m Model) startRip() tea.Cmd {
	ctx, manager := m.ctx, m.manager
	return func() tea.Msg {
		if manager == nil {
			return RipDoneMsg{Err: errors.New("no manager")}
		}

		err := manager.Run(ctx)
		files, totalFiles := manager.GetProgress()

		return RipDoneMsg{Files: files, TotalF: totalFiles, Err: err}
	}
}

// Run starts the TUI application.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
