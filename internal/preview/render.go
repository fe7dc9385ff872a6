// Package preview turns heightmaps into images for inspection.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/Faultbox/randterrain/pkg/heightmap"
	"github.com/Faultbox/randterrain/pkg/voronoi"
)

// Palette maps a height in [0, 1] to a colour.
type Palette func(h float64) color.RGBA

// Overlay colours.
var (
	EdgeColor  = color.RGBA{R: 220, G: 60, B: 40, A: 255}
	PointColor = color.RGBA{R: 255, G: 220, B: 0, A: 255}
)

// Greyscale maps 0 to black and 1 to white.
func Greyscale(h float64) color.RGBA {
	v := uint8(h*255 + 0.5)
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

type stop struct {
	at float64
	c  color.RGBA
}

var reliefStops = []stop{
	{0.00, color.RGBA{R: 20, G: 40, B: 120, A: 255}},   // deep water
	{0.35, color.RGBA{R: 60, G: 110, B: 190, A: 255}},  // shallows
	{0.40, color.RGBA{R: 210, G: 200, B: 140, A: 255}}, // sand
	{0.55, color.RGBA{R: 80, G: 150, B: 60, A: 255}},   // grass
	{0.75, color.RGBA{R: 120, G: 110, B: 100, A: 255}}, // rock
	{1.00, color.RGBA{R: 245, G: 245, B: 245, A: 255}}, // snow
}

// Relief is a hypsometric ramp from deep water up to snow.
func Relief(h float64) color.RGBA {
	if h <= reliefStops[0].at {
		return reliefStops[0].c
	}
	for i := 1; i < len(reliefStops); i++ {
		hi := reliefStops[i]
		if h > hi.at {
			continue
		}
		lo := reliefStops[i-1]
		return lerp(lo.c, hi.c, (h-lo.at)/(hi.at-lo.at))
	}
	return reliefStops[len(reliefStops)-1].c
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// ParsePalette resolves "grey" or "relief".
func ParsePalette(name string) (Palette, error) {
	switch strings.ToLower(name) {
	case "grey", "gray", "greyscale", "":
		return Greyscale, nil
	case "relief":
		return Relief, nil
	}
	return nil, fmt.Errorf("unknown palette %q", name)
}

// Render draws g one pixel per cell. When part is non-nil its region edges
// and seed points are drawn on top.
func Render(g *heightmap.Grid, part *voronoi.Partition, pal Palette) *image.RGBA {
	if pal == nil {
		pal = Greyscale
	}
	img := image.NewRGBA(image.Rect(0, 0, g.Width(), g.Length()))
	for y := 0; y < g.Length(); y++ {
		for x := 0; x < g.Width(); x++ {
			img.SetRGBA(x, y, pal(g.At(x, y)))
		}
	}
	if part == nil {
		return img
	}

	for i := 0; i < part.Len(); i++ {
		for _, c := range part.EdgeCells(i) {
			img.SetRGBA(c.X, c.Y, EdgeColor)
		}
	}
	for _, p := range part.Points() {
		img.SetRGBA(p.X, p.Y, PointColor)
	}
	return img
}
