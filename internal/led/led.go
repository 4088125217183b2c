// Package led drives the single RGB status indicator.
package led

import "fmt"

// Color is an 8-bit per channel RGB value.
type Color struct {
	R, G, B uint8
}

func (c Color) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette used by mode and fault displays.
var (
	Off    = Color{0, 0, 0}
	Blue   = Color{0, 0, 255}
	Yellow = Color{225, 234, 0}
	Orange = Color{255, 69, 0}
	Red    = Color{255, 0, 0}
	Green  = Color{0, 255, 0}
	White  = Color{255, 255, 255}
)

var names = map[Color]string{
	Off:    "off",
	Blue:   "blue",
	Yellow: "yellow",
	Orange: "orange",
	Red:    "red",
	Green:  "green",
	White:  "white",
}

// Indicator shows one color at a time.
type Indicator interface {
	SetColor(c Color) error
}
