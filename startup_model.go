package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/hscope/internal/ui"
)

type startupPhase uint8

const (
	phaseGate startupPhase = iota
	phaseAcquiring
	phaseFailed
)

// acquiredMsg is the single continuation of an acquisition attempt.
type acquiredMsg struct {
	err error
}

// acquirer is a session that has not yet started its source.
type acquirer interface {
	ui.Session
	Acquire(ctx context.Context) error
}

type startupModel struct {
	ctx     context.Context
	session acquirer
	opts    ui.Options
	phase   startupPhase
	err     error
	width   int
	height  int
	spinner spinner.Model
}

// newStartupModel starts at the gate when the source needs an explicit
// gesture, and acquires immediately otherwise.
func newStartupModel(ctx context.Context, s acquirer, gesture bool, opts ui.Options) startupModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	phase := phaseGate
	if !gesture {
		phase = phaseAcquiring
	}
	return startupModel{
		ctx:     ctx,
		session: s,
		opts:    opts,
		phase:   phase,
		spinner: sp,
	}
}

func (m startupModel) Init() tea.Cmd {
	if m.phase == phaseAcquiring {
		return tea.Batch(m.spinner.Tick, m.acquireCmd())
	}
	return nil
}

func (m startupModel) acquireCmd() tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		return acquiredMsg{err: s.Acquire(ctx)}
	}
}

func (m startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseAcquiring {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case acquiredMsg:
		if msg.err != nil {
			m.phase = phaseFailed
			m.err = msg.err
			slog.Error("startup failed", "err", msg.err)
			return m, nil
		}

		model := ui.New(m.session, m.opts)
		cmds := []tea.Cmd{model.Init()}
		if m.width > 0 || m.height > 0 {
			w, h := m.width, m.height
			cmds = append(cmds, func() tea.Msg {
				return tea.WindowSizeMsg{Width: w, Height: h}
			})
		}
		return model, tea.Batch(cmds...)

	case tea.KeyMsg:
		if startupIsQuit(msg) {
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		if m.phase == phaseGate {
			switch msg.String() {
			case "enter", " ":
				m.phase = phaseAcquiring
				return m, tea.Batch(m.spinner.Tick, m.acquireCmd())
			}
		}
	}

	return m, nil
}

func (m startupModel) View() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(startupHeaderStyle.Render("hscope"))
	b.WriteString("\n\n  ")

	switch m.phase {
	case phaseGate:
		b.WriteString(startupButtonStyle.Render("Enable Audio Input"))
		b.WriteString("\n\n  ")
		b.WriteString(startupHelpStyle.Render("enter enable  q quit"))
	case phaseAcquiring:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(startupStatusStyle.Render("Starting audio input..."))
		b.WriteString("\n\n  ")
		b.WriteString(startupHelpStyle.Render("q quit"))
	case phaseFailed:
		b.WriteString(startupErrorStyle.Render(m.err.Error()))
		b.WriteString("\n\n  ")
		b.WriteString(startupHelpStyle.Render("q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func startupIsQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

var (
	startupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})
	startupButtonStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 2).
				Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1A1A1A"}).
				Background(lipgloss.AdaptiveColor{Light: "#B35900", Dark: "#FF8C00"})
	startupStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})
	startupHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
	startupErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#A00000", Dark: "#FF8080"})
)
