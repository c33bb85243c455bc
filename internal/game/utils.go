package game

import (
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// debug font cell size
const (
	charW = 6
	charH = 16
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// withAlpha converts c to a premultiplied colour with the given opacity.
func withAlpha(c colorful.Color, a float64) color.RGBA {
	c = c.Clamped()
	a = clamp01(a)
	return color.RGBA{
		R: uint8(c.R * a * 255),
		G: uint8(c.G * a * 255),
		B: uint8(c.B * a * 255),
		A: uint8(a * 255),
	}
}

// wrapText breaks s into lines of at most width pixels of debug font.
func wrapText(s string, width float64) []string {
	limit := int(width / charW)
	if limit < 1 {
		limit = 1
	}
	var lines []string
	var cur strings.Builder
	for _, w := range strings.Fields(s) {
		if cur.Len() > 0 && cur.Len()+1+len(w) > limit {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
