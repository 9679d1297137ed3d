package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to a concrete terminal color.
type Color uint8

// Palette used by the arcade. ColorDefault leaves the terminal color alone.
const (
	ColorDefault Color = iota
	ColorBackground
	ColorPanel
	ColorText
	ColorPlayer
	ColorBouncer
	ColorSeeker
	ColorCoin
	ColorGray
)

// String returns the palette name of the color.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorBackground:
		return "background"
	case ColorPanel:
		return "panel"
	case ColorText:
		return "text"
	case ColorPlayer:
		return "player"
	case ColorBouncer:
		return "bouncer"
	case ColorSeeker:
		return "seeker"
	case ColorCoin:
		return "coin"
	case ColorGray:
		return "gray"
	default:
		return "unknown"
	}
}
