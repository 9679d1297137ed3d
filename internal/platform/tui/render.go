package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/intro-arcade/internal/core"
)

// palette maps core colors to terminal colors.
// ColorDefault has no entry and keeps the terminal's own color.
var palette = map[core.Color]lipgloss.Color{
	core.ColorBackground: lipgloss.Color("#16181C"),
	core.ColorPanel:      lipgloss.Color("#22262E"),
	core.ColorText:       lipgloss.Color("#ECEFF4"),
	core.ColorPlayer:     lipgloss.Color("#88C0D0"),
	core.ColorBouncer:    lipgloss.Color("#BF616A"),
	core.ColorSeeker:     lipgloss.Color("#B48EAD"),
	core.ColorCoin:       lipgloss.Color("#EBCB8B"),
	core.ColorGray:       lipgloss.Color("#8A8F98"),
}

// colorPair is the key of a styled run of cells.
type colorPair struct {
	fg, bg core.Color
}

// Styles holds one lipgloss style per foreground/background pair.
// Each SSH session gets its own set, bound to the session's renderer.
type Styles struct {
	byPair map[colorPair]lipgloss.Style
}

// NewStyles builds the styles for every palette pair using renderer r.
// A nil renderer uses the lipgloss default.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	colors := make([]core.Color, 0, len(palette)+1)
	colors = append(colors, core.ColorDefault)
	for c := range palette {
		colors = append(colors, c)
	}

	s := Styles{byPair: make(map[colorPair]lipgloss.Style, len(colors)*len(colors))}
	for _, fg := range colors {
		for _, bg := range colors {
			style := r.NewStyle()
			if c, ok := palette[fg]; ok {
				style = style.Foreground(c)
			}
			if c, ok := palette[bg]; ok {
				style = style.Background(c)
			}
			s.byPair[colorPair{fg, bg}] = style
		}
	}
	return s
}

func (s Styles) style(p colorPair) lipgloss.Style {
	if style, ok := s.byPair[p]; ok {
		return style
	}
	return s.byPair[colorPair{}]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, styles Styles) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := colorPair{cell.Fg, cell.Bg}

			// Collect consecutive cells with the same colors
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.Fg, cell.Bg}) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styles.style(start).Render(run.String()))
		}
	}
	return sb.String()
}
