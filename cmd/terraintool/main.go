// terraintool is a CLI utility for generating and combining heightmaps.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/randterrain/internal/config"
	"github.com/Faultbox/randterrain/internal/logger"
	"github.com/Faultbox/randterrain/internal/pipeline"
	"github.com/Faultbox/randterrain/internal/preview"
	"github.com/Faultbox/randterrain/pkg/formats"
	"github.com/Faultbox/randterrain/pkg/heightmap"
	"github.com/Faultbox/randterrain/pkg/rng"
	"github.com/Faultbox/randterrain/pkg/terrain"
	"github.com/Faultbox/randterrain/pkg/voronoi"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "info":
		cmdInfo(args)
	case "combine":
		cmdCombine(args)
	case "scale":
		cmdScale(args)
	case "regions":
		cmdRegions(args)
	case "image", "img":
		cmdImage(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terraintool - random terrain heightmap utility

Usage:
  terraintool <command> [options]

Commands:
  generate [flags]                       Generate a heightmap from config and flags
  info <map.hmt>                         Show size and height statistics
  combine add|sub <a.hmt> <b.hmt> <out>  Saturating cell-wise add or subtract
  scale <map.hmt> <k> <out>              Multiply every height by k
  regions [flags] <map.hmt>              Partition a heightmap into Voronoi regions
  image [flags] <map.hmt> <out.png|bmp>  Render a heightmap to an image
  help                                   Show this help

Examples:
  terraintool generate -algo diamond-square -n 8 -color pink -o island.hmt
  terraintool generate -algo perlin -width 256 -length 128 -voronoi -points 20
  terraintool combine add base.hmt hills.hmt out.hmt
  terraintool regions -points 8 -relax 3 island.hmt
  terraintool image -palette relief -zoom 4 island.hmt island.png`)
	fmt.Printf("\nAlgorithms: %v\n", terrain.Names())
}

func fail(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", a...)
	os.Exit(1)
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var flags config.Flags
	flags.Bind(fs)
	fs.Parse(args)

	cfg, err := config.Load(&flags)
	if err != nil {
		fail("%v", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fail("logger: %v", err)
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	res, err := pipeline.Run(cfg)
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		os.Exit(1)
	}

	if err := formats.WriteHeightmapFile(cfg.Output.Path, res.Grid); err != nil {
		logger.Error("writing heightmap", zap.String("path", cfg.Output.Path), zap.Error(err))
		os.Exit(1)
	}

	logger.Info("heightmap written",
		zap.String("path", cfg.Output.Path),
		zap.Int64("seed", res.Seed),
		zap.Duration("elapsed", res.Elapsed),
	)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terraintool info <map.hmt>")
		os.Exit(1)
	}

	g, err := formats.ParseHeightmapFile(args[0])
	if err != nil {
		fail("%v", err)
	}
	st := g.Stats()
	p := message.NewPrinter(language.English)

	p.Printf("Heightmap: %s\n", args[0])
	p.Printf("Size:      %d x %d (%d cells)\n", g.Width(), g.Length(), g.Width()*g.Length())
	p.Printf("Min:       %.3f\n", st.Min)
	p.Printf("Max:       %.3f\n", st.Max)
	p.Printf("Mean:      %.3f\n", st.Mean)
	p.Println()
	p.Println("Distribution:")

	const buckets = 10
	var counts [buckets]int
	for _, row := range g.Rows() {
		for _, h := range row {
			b := min(int(h*buckets), buckets-1)
			counts[b]++
		}
	}
	total := g.Width() * g.Length()
	for i, c := range counts {
		p.Printf("  [%.1f, %.1f%s %9d  %5.1f%%\n",
			float64(i)/buckets, float64(i+1)/buckets, closer(i, buckets), c, 100*float64(c)/float64(total))
	}
}

func closer(i, n int) string {
	if i == n-1 {
		return "]"
	}
	return ")"
}

func cmdCombine(args []string) {
	if len(args) < 4 {
		fmt.Fprintln(os.Stderr, "Usage: terraintool combine add|sub <a.hmt> <b.hmt> <out.hmt>")
		os.Exit(1)
	}

	a, err := formats.ParseHeightmapFile(args[1])
	if err != nil {
		fail("%v", err)
	}
	b, err := formats.ParseHeightmapFile(args[2])
	if err != nil {
		fail("%v", err)
	}

	var out *heightmap.Grid
	switch args[0] {
	case "add", "+":
		out, err = a.Add(b)
	case "sub", "-":
		out, err = a.Sub(b)
	default:
		fail("unknown combine operation %q (want add or sub)", args[0])
	}
	if err != nil {
		fail("%v", err)
	}

	if err := formats.WriteHeightmapFile(args[3], out); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote: %s (%d x %d)\n", args[3], out.Width(), out.Length())
}

func cmdScale(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: terraintool scale <map.hmt> <k> <out.hmt>")
		os.Exit(1)
	}

	g, err := formats.ParseHeightmapFile(args[0])
	if err != nil {
		fail("%v", err)
	}
	k, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fail("invalid factor %q: %v", args[1], err)
	}

	out, err := g.Scale(k)
	if err != nil {
		fail("%v", err)
	}
	if err := formats.WriteHeightmapFile(args[2], out); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote: %s (x%g)\n", args[2], k)
}

func cmdRegions(args []string) {
	fs := flag.NewFlagSet("regions", flag.ExitOnError)
	points := fs.Int("points", 8, "Number of seed points")
	relax := fs.Int("relax", 0, "Lloyd relaxation iterations")
	seed := fs.Int64("seed", 0, "Random seed (0 = clock)")
	features := fs.Int("features", 0, "Feature points per region (0 = report only)")
	strength := fs.Float64("strength", 0.5, "Fraction of each region's headroom to use")
	output := fs.String("o", "", "Write the shaped heightmap here")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terraintool regions [flags] <map.hmt>")
		os.Exit(1)
	}

	g, err := formats.ParseHeightmapFile(fs.Arg(0))
	if err != nil {
		fail("%v", err)
	}

	src := rng.New(*seed)
	if *seed == 0 {
		src = rng.NewTimeSeeded()
	}

	vc := config.VoronoiConfig{
		Enabled:           true,
		Points:            *points,
		RelaxIterations:   *relax,
		FeaturesPerRegion: *features,
		Strength:          *strength,
	}
	part, err := pipeline.Shape(g, vc, src)
	if err != nil {
		fail("%v", err)
	}

	printRegions(part)

	if *output != "" {
		if err := formats.WriteHeightmapFile(*output, g); err != nil {
			fail("%v", err)
		}
		fmt.Printf("\nWrote: %s\n", *output)
	}
}

func printRegions(part *voronoi.Partition) {
	type regionStat struct {
		index   int
		point   voronoi.Point
		members int
		bw, bl  int
		edges   int
		corners int
	}

	pts := part.Points()
	stats := make([]regionStat, 0, part.Len())
	for i := 0; i < part.Len(); i++ {
		stats = append(stats, regionStat{
			index:   i,
			point:   pts[i],
			members: len(part.Members(i)),
			bw:      part.BoundingWidth(i),
			bl:      part.BoundingLength(i),
			edges:   len(part.EdgeCells(i)),
			corners: len(part.CornerCells(i)),
		})
	}

	// Largest regions first
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].members > stats[j].members
	})

	fmt.Printf("Regions: %d  energy: %.1f\n\n", part.Len(), part.Energy())
	fmt.Printf("  %-4s %-10s %7s %9s %6s %7s\n", "#", "point", "cells", "bbox", "edges", "corners")
	for _, s := range stats {
		fmt.Printf("  %-4d %-10s %7d %4dx%-4d %6d %7d\n",
			s.index, s.point, s.members, s.bw, s.bl, s.edges, s.corners)
	}
}

func cmdImage(args []string) {
	fs := flag.NewFlagSet("image", flag.ExitOnError)
	palette := fs.String("palette", "grey", "Colour palette (grey, relief)")
	zoom := fs.Int("zoom", 1, "Pixels per cell")
	points := fs.Int("points", 0, "Overlay this many random Voronoi regions (0 = none)")
	seed := fs.Int64("seed", 0, "Random seed for -points (0 = clock)")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: terraintool image [flags] <map.hmt> <out.png|bmp>")
		os.Exit(1)
	}

	pal, err := preview.ParsePalette(*palette)
	if err != nil {
		fail("%v", err)
	}
	g, err := formats.ParseHeightmapFile(fs.Arg(0))
	if err != nil {
		fail("%v", err)
	}

	var part *voronoi.Partition
	if *points > 0 {
		src := rng.New(*seed)
		if *seed == 0 {
			src = rng.NewTimeSeeded()
		}
		part, err = voronoi.New(g, nil)
		if err != nil {
			fail("%v", err)
		}
		if err := part.SetUniformRandomPoints(*points, src); err != nil {
			fail("%v", err)
		}
	}

	img := preview.Scale(preview.Render(g, part, pal), *zoom)
	if err := preview.WriteFile(fs.Arg(1), img); err != nil {
		fail("%v", err)
	}
	b := img.Bounds()
	fmt.Printf("Wrote: %s (%d x %d px)\n", fs.Arg(1), b.Dx(), b.Dy())
}
