package terrain

import (
	"fmt"
	"strings"
)

// Coloring maps a spatial frequency to the maximum noise amplitude at that
// frequency.
type Coloring func(frequency float64) float64

// Standard noise colorings.
var (
	Red    Coloring = func(f float64) float64 { return 1 / (f * f) }
	Pink   Coloring = func(f float64) float64 { return 1 / f }
	White  Coloring = func(float64) float64 { return 1 }
	Blue   Coloring = func(f float64) float64 { return f }
	Violet Coloring = func(f float64) float64 { return f * f }
)

var colorings = map[string]Coloring{
	"red":    Red,
	"pink":   Pink,
	"white":  White,
	"blue":   Blue,
	"violet": Violet,
}

// ColoringNames lists the names accepted by ParseColoring.
var ColoringNames = []string{"red", "pink", "white", "blue", "violet"}

// ParseColoring returns the standard coloring with the given name.
func ParseColoring(name string) (Coloring, error) {
	c, ok := colorings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColoring, name)
	}
	return c, nil
}
