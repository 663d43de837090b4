package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/simukka/candle-celebration/confetti"
)

// Each terminal cell stands for CellWidth×CellHeight surface pixels, so the
// particle physics runs in the same units as on a canvas.
const (
	CellWidth  = 8
	CellHeight = 16
)

type cell struct {
	glyph string
	color string
}

// CellSurface is a confetti.Surface backed by a grid of terminal cells.
type CellSurface struct {
	cols, rows int
	cells      []cell
	styles     map[string]lipgloss.Style
}

// NewCellSurface creates a cols×rows surface.
func NewCellSurface(cols, rows int) *CellSurface {
	s := &CellSurface{styles: make(map[string]lipgloss.Style)}
	s.Resize(cols, rows)
	return s
}

// Resize changes the grid and clears it.
func (s *CellSurface) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]cell, cols*rows)
}

// Grid returns the size in cells.
func (s *CellSurface) Grid() (cols, rows int) {
	return s.cols, s.rows
}

func (s *CellSurface) Size() (float64, float64) {
	return float64(s.cols * CellWidth), float64(s.rows * CellHeight)
}

func (s *CellSurface) Clear() {
	for i := range s.cells {
		s.cells[i] = cell{}
	}
}

// FillRect draws a confetti glyph whose stroke follows the rotation.
func (s *CellSurface) FillRect(t confetti.Transform, w, h float64, color string) {
	glyphs := [...]string{"▬", "╱", "▮", "╲"}
	quarter := math.Mod(t.Angle, math.Pi)
	if quarter < 0 {
		quarter += math.Pi
	}
	i := int(quarter/(math.Pi/4)+0.5) % len(glyphs)
	s.set(t.X, t.Y, glyphs[i], color)
}

// FillPath draws a heart at the path's center.
func (s *CellSurface) FillPath(t confetti.Transform, p confetti.Path, color string) {
	minX, minY, maxX, maxY := p.Bounds()
	glyph := "♥"
	if maxX-minX < CellWidth {
		glyph = "•"
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	sin, cos := math.Sincos(t.Angle)
	s.set(t.X+cx*cos-cy*sin, t.Y+cx*sin+cy*cos, glyph, color)
}

func (s *CellSurface) set(x, y float64, glyph, color string) {
	if x < 0 || y < 0 {
		return
	}
	col, row := int(x/CellWidth), int(y/CellHeight)
	if col >= s.cols || row >= s.rows {
		return
	}
	s.cells[row*s.cols+col] = cell{glyph: glyph, color: color}
}

// At returns the glyph drawn at a cell, or "".
func (s *CellSurface) At(col, row int) string {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return ""
	}
	return s.cells[row*s.cols+col].glyph
}

// Count returns the number of drawn cells.
func (s *CellSurface) Count() int {
	n := 0
	for _, c := range s.cells {
		if c.glyph != "" {
			n++
		}
	}
	return n
}

func (s *CellSurface) style(color string) lipgloss.Style {
	st, ok := s.styles[color]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		s.styles[color] = st
	}
	return st
}

// Render returns the grid as styled text, one line per row.
func (s *CellSurface) Render() string {
	var b strings.Builder
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			c := s.cells[row*s.cols+col]
			if c.glyph == "" {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(s.style(c.color).Render(c.glyph))
		}
		if row < s.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
