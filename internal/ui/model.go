package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/olivier-w/hscope/internal/util"
	"github.com/olivier-w/hscope/internal/visualizer"
)

// chromeLines is the number of rows around the canvas: blank, header, blank,
// status, help.
const chromeLines = 5

// Session is the live pipeline the model draws from.
type Session interface {
	Render(s visualizer.Surface) (visualizer.Frame, bool)
	Level() float64
	Close() error
}

// Options configures a Model.
type Options struct {
	Title      string
	SampleRate float64
	FPS        int

	// Width and Height fix the canvas in cells. Zero follows the terminal.
	Width  int
	Height int
}

// Model is the Bubbletea model for the running visualizer.
type Model struct {
	session  Session
	title    string
	rate     float64
	interval time.Duration
	fixed    bool

	canvas *visualizer.BrailleCanvas
	meter  levelMeter
	frame  visualizer.Frame
	level  float64
	fill   float64
	width  int
	height int

	quitting bool
}

// New creates a Model around a session that has already been acquired.
func New(s Session, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	m := Model{
		session:  s,
		title:    opts.Title,
		rate:     opts.SampleRate,
		interval: time.Duration(harmonica.FPS(opts.FPS) * float64(time.Second)),
		meter:    newLevelMeter(opts.FPS),
		canvas:   visualizer.NewBrailleCanvas(60, 16),
		level:    meterFloor,
	}
	if opts.Width > 0 && opts.Height > 0 {
		m.fixed = true
		m.canvas.Resize(opts.Width, opts.Height)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.interval), tea.SetWindowTitle(windowTitle(m.title)))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			m.session.Close()
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		return m, nil

	case frameMsg:
		if m.quitting {
			return m, nil
		}
		if f, ok := m.session.Render(m.canvas); ok {
			m.frame = f
		}
		m.level = levelDecibels(m.session.Level())
		m.fill = m.meter.step(m.level)
		return m, frameCmd(m.interval)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.fixed {
			cols := max(msg.Width-4, 8)
			rows := max(msg.Height-chromeLines, 2)
			m.canvas.Resize(cols, rows)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(headerStyle.Render("hscope"))
	if m.title != "" {
		b.WriteString("  ")
		b.WriteString(titleStyle.Render(m.title))
	}
	b.WriteString("\n\n")

	for _, line := range strings.Split(m.canvas.View(), "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("  ")
	b.WriteString(m.statusLine())
	b.WriteString("\n  ")
	b.WriteString(helpStyle.Render(helpText()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) statusLine() string {
	left := fmt.Sprintf("%s  trigger %d  scale %.2f  ",
		util.FormatSampleRate(m.rate), m.frame.Sync.Trigger, m.frame.Sync.Scale)
	right := "  " + util.FormatDecibels(m.level)

	cols, _ := m.canvas.Cells()
	meterWidth := max(cols-len(left)-len(right), 10)
	return statusStyle.Render(left) + meterStyle.Render(renderMeter(m.fill, meterWidth)) + statusStyle.Render(right)
}

func windowTitle(title string) string {
	if title == "" {
		return "hscope"
	}
	return title + " · hscope"
}
