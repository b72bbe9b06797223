package core

// Color is a semantic foreground color for a screen cell.
// The platform maps each value to a concrete terminal style from the theme.
type Color uint8

const (
	ColorDefault Color = iota
	ColorHead
	ColorBody
	ColorFood
	ColorBorder
	ColorHUD
	ColorDialog
)

// String returns the theme key for the color.
func (c Color) String() string {
	switch c {
	case ColorHead:
		return "head"
	case ColorBody:
		return "body"
	case ColorFood:
		return "food"
	case ColorBorder:
		return "border"
	case ColorHUD:
		return "hud"
	case ColorDialog:
		return "dialog"
	default:
		return "default"
	}
}
