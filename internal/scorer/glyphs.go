package scorer

import "github.com/robalobadob/geodle/internal/geo"

// Theme selects the empty-square glyph.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const squareCount = 5

const (
	squareGreen  = "🟩"
	squareYellow = "🟨"
	squareWhite  = "⬜"
	squareBlack  = "⬛"
)

var arrows = map[geo.Direction]string{
	geo.N: "⬆️", geo.NNE: "↗️", geo.NE: "↗️", geo.ENE: "↗️",
	geo.E: "➡️", geo.ESE: "↘️", geo.SE: "↘️", geo.SSE: "↘️",
	geo.S: "⬇️", geo.SSW: "↙️", geo.SW: "↙️", geo.WSW: "↙️",
	geo.W: "⬅️", geo.WNW: "↖️", geo.NW: "↖️", geo.NNW: "↖️",
}

// Squares renders a percent as five tiles: one green per full 20%, a yellow
// when the remainder is at least 10%, and blanks for the rest.
func Squares(percent int, theme Theme) []string {
	percent = max(0, min(100, percent))
	green := percent / 20
	yellow := 0
	if percent-green*20 >= 10 {
		yellow = 1
	}
	blank := squareBlack
	if theme == ThemeLight {
		blank = squareWhite
	}

	out := make([]string, squareCount)
	for i := range out {
		switch {
		case i < green:
			out[i] = squareGreen
		case i < green+yellow:
			out[i] = squareYellow
		default:
			out[i] = blank
		}
	}
	return out
}

// DirectionGlyph is the arrow for d, or "" when there is no direction.
func DirectionGlyph(d geo.Direction) string {
	return arrows[d]
}
