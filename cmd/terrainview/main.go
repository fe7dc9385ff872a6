//go:build sdl

// terrainview previews generated heightmaps in an SDL window.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/randterrain/internal/config"
	"github.com/Faultbox/randterrain/internal/logger"
	"github.com/Faultbox/randterrain/internal/pipeline"
	"github.com/Faultbox/randterrain/internal/preview"
	"github.com/Faultbox/randterrain/pkg/formats"
	"github.com/Faultbox/randterrain/pkg/heightmap"
	"github.com/Faultbox/randterrain/pkg/voronoi"
)

func init() {
	// SDL calls must be made from the main thread
	runtime.LockOSThread()
}

type viewer struct {
	cfg   *config.Config
	input string
	zoom  int
	pal   preview.Palette
	shots *preview.Snapshots

	grid    *heightmap.Grid
	part    *voronoi.Partition
	edges   bool
	frame   *image.RGBA
	window  *sdl.Window
	render  *sdl.Renderer
	running bool
}

func main() {
	var flags config.Flags
	flags.Bind(flag.CommandLine)
	input := flag.String("in", "", "View an existing heightmap file instead of generating")
	zoom := flag.Int("zoom", 4, "Screen pixels per cell")
	palette := flag.String("palette", "relief", "Colour palette (grey, relief)")
	shotDir := flag.String("shots", "screenshots", "Directory for S key snapshots")
	flag.Parse()

	pal, err := preview.ParsePalette(*palette)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(&flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	v := &viewer{
		cfg:   cfg,
		input: *input,
		zoom:  max(*zoom, 1),
		pal:   pal,
		shots: preview.NewSnapshots(*shotDir, "terrain"),
		edges: true,
	}
	if err := v.load(); err != nil {
		logger.Error("failed to load terrain", zap.Error(err))
		os.Exit(1)
	}
	if err := v.open(); err != nil {
		logger.Error("failed to open window", zap.Error(err))
		os.Exit(1)
	}
	defer v.close()

	if err := v.run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}
}

// load reads the input file or runs the pipeline with a fresh seed.
func (v *viewer) load() error {
	if v.input != "" {
		g, err := formats.ParseHeightmapFile(v.input)
		if err != nil {
			return err
		}
		v.grid, v.part = g, nil
	} else {
		res, err := pipeline.Run(v.cfg)
		if err != nil {
			return err
		}
		v.grid, v.part = res.Grid, res.Partition
		logger.Info("generated", zap.String("algorithm", res.Algorithm), zap.Int64("seed", res.Seed))
	}
	v.redraw()
	return nil
}

func (v *viewer) redraw() {
	part := v.part
	if !v.edges {
		part = nil
	}
	v.frame = preview.Render(v.grid, part, v.pal)
}

func (v *viewer) open() error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("SDL_Init failed: %w", err)
	}

	w := int32(v.grid.Width() * v.zoom)
	h := int32(v.grid.Length() * v.zoom)
	var err error
	v.window, err = sdl.CreateWindow("terrainview", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, w, h, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	v.render, err = sdl.CreateRenderer(v.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		v.window.Destroy()
		sdl.Quit()
		return fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}
	return nil
}

func (v *viewer) close() {
	if v.render != nil {
		v.render.Destroy()
	}
	if v.window != nil {
		v.window.Destroy()
	}
	sdl.Quit()
}

// run processes events until the window closes.
// Keys: Esc quits, R regenerates with a new seed, E toggles region edges,
// S saves a snapshot.
func (v *viewer) run() error {
	v.running = true
	dirty := true

	for v.running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				v.running = false
			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					continue
				}
				switch e.Keysym.Scancode {
				case sdl.SCANCODE_ESCAPE:
					v.running = false
				case sdl.SCANCODE_R:
					if v.input != "" {
						continue
					}
					v.cfg.Generator.Seed = 0
					if err := v.load(); err != nil {
						return err
					}
					dirty = true
				case sdl.SCANCODE_E:
					v.edges = !v.edges
					v.redraw()
					dirty = true
				case sdl.SCANCODE_S:
					name, err := v.shots.Save(preview.Scale(v.frame, v.zoom))
					if err != nil {
						logger.Warn("snapshot failed", zap.Error(err))
						continue
					}
					logger.Info("snapshot saved", zap.String("path", name))
				}
			}
		}

		if dirty {
			if err := v.draw(); err != nil {
				return err
			}
			dirty = false
		}
		sdl.Delay(16)
	}
	return nil
}

func (v *viewer) draw() error {
	if err := v.render.SetDrawColor(0, 0, 0, 255); err != nil {
		return err
	}
	if err := v.render.Clear(); err != nil {
		return err
	}

	z := int32(v.zoom)
	b := v.frame.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := v.frame.RGBAAt(x, y)
			if err := v.render.SetDrawColor(c.R, c.G, c.B, c.A); err != nil {
				return err
			}
			if err := v.render.FillRect(&sdl.Rect{X: int32(x) * z, Y: int32(y) * z, W: z, H: z}); err != nil {
				return err
			}
		}
	}
	v.render.Present()
	return nil
}
