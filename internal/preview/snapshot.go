package preview

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// ErrUnknownImageFormat is returned for extensions other than .png and .bmp.
var ErrUnknownImageFormat = errors.New("unknown image format")

// Scale enlarges img by an integer zoom with nearest-neighbour sampling so
// cells stay crisp.
func Scale(img image.Image, zoom int) image.Image {
	if zoom <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*zoom, b.Dy()*zoom))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img as "png" or "bmp".
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnknownImageFormat, format)
}

// WriteFile encodes img to path, choosing the format from its extension.
func WriteFile(path string, img image.Image) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format != "png" && format != "bmp" {
		return fmt.Errorf("%w: %q", ErrUnknownImageFormat, filepath.Ext(path))
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := Encode(file, img, format); err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return file.Close()
}

// Snapshots saves timestamped PNG captures into a directory.
type Snapshots struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewSnapshots creates a snapshot writer. An empty dir means the working
// directory.
func NewSnapshots(outputDir, prefix string) *Snapshots {
	return &Snapshots{outputDir: outputDir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next snapshot would be written to.
func (s *Snapshots) Filename() string {
	timestamp := s.now().Format("2006-01-02_15-04-05")
	name := fmt.Sprintf("%s_%s.png", s.prefix, timestamp)
	if s.outputDir != "" {
		name = filepath.Join(s.outputDir, name)
	}
	return name
}

// Save writes img and returns the file name used.
func (s *Snapshots) Save(img image.Image) (string, error) {
	name := s.Filename()
	if err := WriteFile(name, img); err != nil {
		return "", err
	}
	return name, nil
}
