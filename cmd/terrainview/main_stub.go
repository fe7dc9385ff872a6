//go:build !sdl

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "terrainview needs SDL2 and the sdl build tag.")
	fmt.Fprintln(os.Stderr, "Build with `go build -tags sdl ./cmd/terrainview`, or use terraintool for headless generation.")
	os.Exit(2)
}
