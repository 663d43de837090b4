package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CakeRows is the height of the rendered cake.
const CakeRows = 4

var (
	flameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb347")).Bold(true)
	smokeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cakeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9bb3"))
	icingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffefef"))
)

// Candles is a celebration.FlameDisplay drawn as a text cake.
type Candles struct {
	Count int
	lit   bool
}

// NewCandles creates n lit candles.
func NewCandles(n int) *Candles {
	return &Candles{Count: n, lit: true}
}

// SetLit shows or hides the flames.
func (c *Candles) SetLit(lit bool) {
	c.lit = lit
}

// Lit reports whether the flames are showing.
func (c *Candles) Lit() bool {
	return c.lit
}

// Render draws the cake centered in width columns.
func (c *Candles) Render(width int) string {
	n := c.Count
	if n < 1 {
		n = 1
	}
	top := strings.Repeat(" ", n*2+1)
	flame := smokeStyle.Render("~")
	if c.lit {
		flame = flameStyle.Render("ʌ")
	}
	flames := " " + strings.TrimSuffix(strings.Repeat(flame+" ", n), " ") + " "
	wicks := " " + strings.TrimSuffix(strings.Repeat("| ", n), " ") + " "
	icing := icingStyle.Render("{" + strings.Repeat("~", len(top)) + "}")
	base := cakeStyle.Render("[" + strings.Repeat("_", len(top)) + "]")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	lines := []string{flames, wicks, icing, base}
	for i, l := range lines {
		lines[i] = center.Render(l)
	}
	return strings.Join(lines, "\n")
}
