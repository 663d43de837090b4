// Package term runs the celebration in a terminal.
package term

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simukka/candle-celebration/audio"
	"github.com/simukka/candle-celebration/celebration"
	"github.com/simukka/candle-celebration/common"
	"github.com/simukka/candle-celebration/confetti"
)

// FrameInterval is the terminal refresh period.
const FrameInterval = time.Second / 30

// Options configures a terminal celebration.
type Options struct {
	Audio   audio.GraphFactory // nil plays silently
	Seed    uint32
	Candles int
}

type frameMsg time.Time

// Model is the bubbletea model. It owns the frame clock, so the controller,
// field and trigger all run on the bubbletea update goroutine.
type Model struct {
	ctrl    *celebration.Controller
	field   *confetti.Field
	surface *CellSurface
	frames  *common.ManualFrames
	candles *Candles

	start    time.Time
	width    int
	height   int
	status   string
	quitting bool
}

// NewModel wires a controller to a cell surface and a text cake.
func NewModel(opts Options) *Model {
	if opts.Candles <= 0 {
		opts.Candles = 3
	}
	m := &Model{
		surface: NewCellSurface(80, 16),
		frames:  common.NewManualFrames(),
		candles: NewCandles(opts.Candles),
		start:   time.Now(),
		status:  "Blow out the candles!",
	}
	m.field = confetti.NewField(m.surface, m.frames, common.NewSeededRNG(opts.Seed))

	var opener celebration.SessionOpener
	if opts.Audio != nil {
		opener = celebration.AudioOpener(opts.Audio)
	}
	m.ctrl = celebration.NewController(celebration.Options{
		Flames:    m.candles,
		Particles: m.field,
		OpenAudio: opener,
	})
	m.ctrl.OnChange(func(s celebration.State) {
		if s == celebration.Extinguished {
			m.status = "Happy Birthday!"
			return
		}
		m.status = "Blow out the candles!"
	})
	return m
}

// Controller exposes the state machine, mainly for teardown.
func (m *Model) Controller() *celebration.Controller {
	return m.ctrl
}

// Field exposes the particle field.
func (m *Model) Field() *confetti.Field {
	return m.field
}

func (m *Model) Init() tea.Cmd {
	return nextFrame()
}

func nextFrame() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case frameMsg:
		m.frames.Advance(float64(time.Time(msg).Sub(m.start)) / float64(time.Millisecond))
		if m.quitting {
			return m, nil
		}
		return m, nextFrame()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		m.ctrl.Close()
		return m, tea.Quit
	case "b", " ", "space", "enter":
		m.report(m.ctrl.Extinguish())
	case "r":
		m.report(m.ctrl.Reset())
	case "c":
		// Once the candles are out the controller owns the field.
		if m.ctrl.State() == celebration.Lit {
			m.field.Start(confetti.ModeBurst)
		}
	}
	return m, nil
}

func (m *Model) report(t celebration.Transition) {
	if !t.OK() {
		common.DebugWarn("[term]", t.String())
	}
}

// resize fits the particle grid above the cake, status and help lines.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	rows := height - CakeRows - 3
	if rows < 1 {
		rows = 1
	}
	m.surface.Resize(width, rows)
	w, h := m.surface.Size()
	m.field.Resize(w, h)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd1e6"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

func (m *Model) View() string {
	if m.quitting {
		return "Goodnight!\n"
	}
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🎂 Candle Celebration"))
	b.WriteString("\n")
	b.WriteString(m.surface.Render())
	b.WriteString("\n")
	b.WriteString(m.candles.Render(m.width))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%s  (%s, %d particles)",
		m.status, m.ctrl.State(), m.field.Population())))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("b/space:Blow  r:Relight  c:Confetti  q:Quit"))
	return b.String()
}

// Run starts the terminal celebration and blocks until the user quits.
func Run(opts Options) error {
	m := NewModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	m.ctrl.Close()
	return err
}
