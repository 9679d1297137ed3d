package dodge

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/intro-arcade/internal/config"
	"github.com/vovakirdan/intro-arcade/internal/core"
)

// Smallest screen the game is drawn on.
const (
	minCols = 52
	minRows = 12
)

// World-space layout of the HUD and menu text.
var (
	hudPanel = core.NewRect(12, 12, 520, 40)

	titleY = 190
	line1Y = 250
	line2Y = 280
)

const (
	hudPadCells   = 1 // Gap between the panel edge and its contents
	lifeGlyph     = '■'
	lifeSpacing   = 2 // Cells from one life marker to the next
	titleText     = "Intro Arcade"
	titleHint     = "Move with arrows/WASD.  Avoid red.  Collect gold."
	titleStart    = "Press Enter to start.  Esc to quit."
	gameOverText  = "Game Over"
	gameOverRetry = "Press Enter to play again.  Esc to quit."
)

// viewport maps world pixels onto screen cells.
type viewport struct {
	cols, rows     int
	worldW, worldH int
}

func newViewport(dst *core.Screen, world config.WorldConfig) viewport {
	return viewport{
		cols:   dst.Width(),
		rows:   dst.Height(),
		worldW: world.Width,
		worldH: world.Height,
	}
}

// row returns the screen row containing world y.
func (v viewport) row(y int) int {
	return floorDiv(y*v.rows, v.worldH)
}

// rect returns the cells covered by a world rect. Every rect covers at least
// one cell so small objects never vanish.
func (v viewport) rect(r core.Rect) core.Rect {
	x0 := floorDiv(r.Left()*v.cols, v.worldW)
	y0 := floorDiv(r.Top()*v.rows, v.worldH)
	x1 := ceilDiv(r.Right()*v.cols, v.worldW)
	y1 := ceilDiv(r.Bottom()*v.rows, v.worldH)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

// Render draws the current screen: title, the running field with its HUD,
// or the game over summary.
func (g *Game) Render(dst *core.Screen) {
	dst.Fill(core.ColorBackground)
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	if dst.Width() < minCols || dst.Height() < minRows {
		renderTooSmall(dst)
		return
	}

	vp := newViewport(dst, g.cfg.World)

	switch g.mode {
	case core.ModeTitle:
		g.renderTitle(dst, vp)
	case core.ModePlaying:
		g.renderHUD(dst, vp)
		g.renderField(dst, vp)
	case core.ModeGameOver:
		g.renderGameOver(dst, vp)
	}
}

// renderTooSmall shows a "window too small" message.
func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorText)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}

func (g *Game) renderTitle(dst *core.Screen, vp viewport) {
	dst.DrawTextCentered(vp.row(titleY), banner(titleText), core.ColorText)
	dst.DrawTextCentered(vp.row(line1Y), titleHint, core.ColorText)
	dst.DrawTextCentered(vp.row(line2Y), titleStart, core.ColorText)
}

func (g *Game) renderGameOver(dst *core.Screen, vp viewport) {
	dst.DrawTextCentered(vp.row(titleY), banner(gameOverText), core.ColorText)
	dst.DrawTextCentered(vp.row(line1Y), fmt.Sprintf("Score: %d   High: %d", g.run.Score, g.highScore), core.ColorText)
	dst.DrawTextCentered(vp.row(line2Y), gameOverRetry, core.ColorText)
}

// renderHUD draws the panel with the remaining lives on the left and the
// score on the right.
func (g *Game) renderHUD(dst *core.Screen, vp viewport) {
	panel := vp.rect(hudPanel)
	dst.FillRect(panel, core.ColorPanel, true)

	_, cy := hudPanel.Center()
	y := vp.row(cy)

	x := panel.Left() + hudPadCells
	for i := 0; i < g.run.Lives; i++ {
		dst.SetCell(x, y, core.Cell{Rune: lifeGlyph, Fg: core.ColorPlayer, Bg: core.ColorPanel})
		x += lifeSpacing
	}

	text := fmt.Sprintf("Score: %d  High: %d", g.run.Score, g.highScore)
	tx := panel.Right() - hudPadCells - len(text)
	if tx < x {
		tx = x
	}
	dst.DrawText(tx, y, text, core.ColorText)
}

// renderField draws the coin, the enemies and the player, in that order.
func (g *Game) renderField(dst *core.Screen, vp viewport) {
	dst.FillRect(vp.rect(g.run.Coin.Rect), core.ColorCoin, true)
	for _, e := range g.run.Enemies {
		dst.FillRect(vp.rect(e.Rect()), e.Color(), true)
	}
	dst.FillRect(vp.rect(g.run.Player.Rect), core.ColorPlayer, true)
}

// banner renders text in the large font: upper case with a space between letters.
func banner(s string) string {
	runes := []rune(strings.ToUpper(s))
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}
