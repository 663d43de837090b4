package term

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simukka/candle-celebration/audio"
	"github.com/simukka/candle-celebration/celebration"
	"github.com/simukka/candle-celebration/confetti"
)

func TestCellSurface_Mapping(t *testing.T) {
	s := NewCellSurface(10, 5)

	w, h := s.Size()
	if w != 10*CellWidth || h != 5*CellHeight {
		t.Errorf("Expected %dx%d pixels, got %fx%f", 10*CellWidth, 5*CellHeight, w, h)
	}

	s.FillRect(confetti.Transform{X: 20, Y: 40}, 10, 6, "#fff")
	if s.At(2, 2) != "▬" {
		t.Errorf("Expected flat confetti at (2,2), got %q", s.At(2, 2))
	}
	s.FillRect(confetti.Transform{X: 0, Y: 0, Angle: math.Pi / 2}, 10, 6, "#fff")
	if s.At(0, 0) != "▮" {
		t.Errorf("Expected upright confetti at (0,0), got %q", s.At(0, 0))
	}

	s.FillPath(confetti.Transform{X: 79, Y: 79}, confetti.HeartPath(12), "#ff7aa2")
	if s.At(9, 4) != "♥" {
		t.Errorf("Expected heart at (9,4), got %q", s.At(9, 4))
	}

	s.FillRect(confetti.Transform{X: -5, Y: 10}, 4, 4, "#fff")
	s.FillRect(confetti.Transform{X: 500, Y: 10}, 4, 4, "#fff")
	if s.Count() != 3 {
		t.Errorf("Expected off-grid shapes dropped, got %d cells", s.Count())
	}

	s.Clear()
	if s.Count() != 0 {
		t.Error("Expected clear grid")
	}
}

func TestCellSurface_Render(t *testing.T) {
	s := NewCellSurface(4, 2)
	s.FillPath(confetti.Transform{X: 1, Y: 20}, confetti.HeartPath(12), "#ff9bb3")

	out := s.Render()
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "♥") {
		t.Errorf("Expected heart on the second line, got %q", out)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newSizedModel(opts Options) *Model {
	m := NewModel(opts)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 24})
	return m
}

func TestModel_BlowAndRelight(t *testing.T) {
	for _, k := range []string{"b", " ", "enter"} {
		t.Run(k, func(t *testing.T) {
			m := newSizedModel(Options{Seed: 1})

			m.Update(key(k))
			if m.Controller().State() != celebration.Extinguished {
				t.Fatalf("Expected extinguished, got %s", m.Controller().State())
			}
			if m.candles.Lit() {
				t.Error("Expected flames off")
			}
			if !m.Field().Running() || m.Field().Population() != confetti.FieldConfig.ContinuousCount {
				t.Error("Expected hearts falling")
			}

			m.Update(key("r"))
			if m.Controller().State() != celebration.Lit || !m.candles.Lit() {
				t.Error("Expected relit candles")
			}
			if m.Field().Running() {
				t.Error("Expected particles stopped")
			}
		})
	}
}

func TestModel_FramesDriveTheField(t *testing.T) {
	m := newSizedModel(Options{Seed: 2})
	m.Update(key("b"))

	start := m.start
	for i := 1; i <= 30; i++ {
		_, cmd := m.Update(frameMsg(start.Add(time.Duration(i) * FrameInterval)))
		if cmd == nil {
			t.Fatal("Expected another frame to be scheduled")
		}
	}

	if m.Field().Frame() != 30 {
		t.Errorf("Expected 30 simulated frames, got %d", m.Field().Frame())
	}
	if m.Field().Population() != confetti.FieldConfig.ContinuousCount {
		t.Errorf("Expected constant population, got %d", m.Field().Population())
	}
}

func TestModel_WithSoftwareAudio(t *testing.T) {
	var graphs []*audio.Renderer
	m := newSizedModel(Options{Audio: func() (audio.Graph, error) {
		r := audio.NewRenderer(8000)
		graphs = append(graphs, r)
		return r, nil
	}})

	m.Update(key("b"))
	m.Update(key("r"))
	m.Update(key("b"))

	if len(graphs) != 2 {
		t.Fatalf("Expected a fresh graph per celebration, got %d", len(graphs))
	}
	if graphs[0].State() != audio.StateClosed {
		t.Error("Expected first graph closed on relight")
	}
	if graphs[1].Created() != 25 {
		t.Errorf("Expected 25 notes on the second graph, got %d", graphs[1].Created())
	}
}

func TestModel_BurstKey(t *testing.T) {
	m := newSizedModel(Options{Seed: 3})

	m.Update(key("c"))

	if m.Field().Mode() != confetti.ModeBurst || m.Field().Population() != confetti.FieldConfig.BurstCount {
		t.Errorf("Expected a confetti burst, got %s with %d", m.Field().Mode(), m.Field().Population())
	}
	if m.Controller().State() != celebration.Lit {
		t.Error("Expected burst to leave the candles alone")
	}
}

func TestModel_BurstKeyIgnoredWhileExtinguished(t *testing.T) {
	m := newSizedModel(Options{Seed: 4})
	m.Update(key("b"))

	m.Update(key("c"))

	if m.Field().Mode() != confetti.ModeContinuous {
		t.Errorf("Expected hearts to keep falling, got %s", m.Field().Mode())
	}
	if m.Field().Population() != confetti.FieldConfig.ContinuousCount {
		t.Errorf("Expected %d hearts, got %d", confetti.FieldConfig.ContinuousCount, m.Field().Population())
	}
}

func TestModel_Quit(t *testing.T) {
	m := newSizedModel(Options{})
	m.Update(key("b"))

	_, cmd := m.Update(key("q"))

	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if !m.Controller().Closed() || m.Field().Running() {
		t.Error("Expected teardown on quit")
	}
	if m.View() != "Goodnight!\n" {
		t.Errorf("Unexpected final view %q", m.View())
	}
}

func TestModel_View(t *testing.T) {
	m := NewModel(Options{})
	if m.View() != "Loading..." {
		t.Errorf("Expected loading view before size, got %q", m.View())
	}

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 24})
	m.Update(key("b"))
	m.Update(frameMsg(m.start.Add(FrameInterval)))

	v := m.View()
	for _, want := range []string{"Candle Celebration", "Happy Birthday!", "extinguished", "r:Relight"} {
		if !strings.Contains(v, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}

func TestModel_Resize(t *testing.T) {
	m := newSizedModel(Options{})
	cols, rows := m.surface.Grid()

	if cols != 60 || rows != 24-CakeRows-3 {
		t.Errorf("Expected 60x%d grid, got %dx%d", 24-CakeRows-3, cols, rows)
	}

	m.Update(tea.WindowSizeMsg{Width: 10, Height: 2})
	if _, rows := m.surface.Grid(); rows != 1 {
		t.Errorf("Expected minimum of one row, got %d", rows)
	}
}

func TestCandles_Render(t *testing.T) {
	c := NewCandles(3)
	lit := c.Render(20)
	c.SetLit(false)
	out := c.Render(20)

	if !strings.Contains(lit, "ʌ") || strings.Contains(out, "ʌ") {
		t.Error("Expected flames only while lit")
	}
	if !strings.Contains(out, "~") {
		t.Error("Expected smoke once blown out")
	}
	if len(strings.Split(out, "\n")) != CakeRows {
		t.Errorf("Expected %d rows", CakeRows)
	}
}
