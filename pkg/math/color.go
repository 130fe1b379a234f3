package math

import (
	"fmt"
	"sort"
)

// Color is an RGBA color. Channels are nominally in [0, 1] but arithmetic
// never clamps.
type Color struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
	A float32 `yaml:"a"`
}

// Palette colors.
var (
	Black     = Color{0, 0, 0, 1}
	White     = Color{1, 1, 1, 1}
	Red       = Color{1, 0, 0, 1}
	Green     = Color{0, 1, 0, 1}
	Blue      = Color{0, 0, 1, 1}
	Yellow    = Color{1, 1, 0, 1}
	Cyan      = Color{0, 1, 1, 1}
	Magenta   = Color{1, 0, 1, 1}
	Gray      = Color{0.5, 0.5, 0.5, 1}
	Orange    = Color{1, 0.5, 0, 1}
	Purple    = Color{0.5, 0, 0.5, 1}
	Brown     = Color{0.5, 0.25, 0, 1}
	Pink      = Color{1, 0.75, 0.8, 1}
	Lime      = Color{0.75, 1, 0, 1}
	Turquoise = Color{0.25, 0.88, 0.82, 1}
	Silver    = Color{0.75, 0.75, 0.75, 1}
	Gold      = Color{1, 0.84, 0, 1}
	Teal      = Color{0, 0.5, 0.5, 1}
	Navy      = Color{0, 0, 0.5, 1}
	Maroon    = Color{0.5, 0, 0, 1}
	Olive     = Color{0.5, 0.5, 0, 1}
)

var palette = map[string]Color{
	"black":     Black,
	"white":     White,
	"red":       Red,
	"green":     Green,
	"blue":      Blue,
	"yellow":    Yellow,
	"cyan":      Cyan,
	"magenta":   Magenta,
	"gray":      Gray,
	"orange":    Orange,
	"purple":    Purple,
	"brown":     Brown,
	"pink":      Pink,
	"lime":      Lime,
	"turquoise": Turquoise,
	"silver":    Silver,
	"gold":      Gold,
	"teal":      Teal,
	"navy":      Navy,
	"maroon":    Maroon,
	"olive":     Olive,
}

// ColorByName looks up a palette color by lowercase name.
func ColorByName(name string) (Color, bool) {
	c, ok := palette[name]
	return c, ok
}

// ColorNames returns the palette names in sorted order.
func ColorNames() []string {
	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add returns c + other.
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A + other.A}
}

// Sub returns c - other.
func (c Color) Sub(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B, c.A - other.A}
}

// Mul returns the channel-wise product.
func (c Color) Mul(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B, c.A * other.A}
}

// Div returns the channel-wise quotient.
func (c Color) Div(other Color) Color {
	return Color{c.R / other.R, c.G / other.G, c.B / other.B, c.A / other.A}
}

// Scale returns c * s.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// DivScalar returns c / s.
func (c Color) DivScalar(s float32) Color {
	return Color{c.R / s, c.G / s, c.B / s, c.A / s}
}

// Lerp returns c*(1-t) + b*t.
func (c Color) Lerp(b Color, t float32) Color {
	return c.Scale(1 - t).Add(b.Scale(t))
}

// Array returns the channels as [r, g, b, a].
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}
