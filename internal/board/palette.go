package board

import "math/rand"

// Palette mirrors the swatch colors of the original board toolbar.
// Assignment is a uniform pick; two participants may share a color.
var Palette = []string{
	"#000000", // black
	"#ff0000", // red
	"#00aa00", // green
	"#0000ff", // blue
	"#ffcc00", // yellow
	"#aa00aa", // purple
	"#00aaaa", // teal
}

// RandomColor picks a participant color from the palette.
func RandomColor() string {
	return Palette[rand.Intn(len(Palette))]
}
