package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/randterrain/pkg/heightmap"
)

// Heightmap text format errors.
var (
	ErrInvalidHeader   = errors.New("invalid heightmap header")
	ErrRowCount        = errors.New("heightmap row count mismatch")
	ErrColumnCount     = errors.New("heightmap column count mismatch")
	ErrInvalidHeight   = errors.New("invalid heightmap value")
	ErrHeightmapTooBig = errors.New("heightmap dimensions too large")
)

// HeightmapDecimals is the number of decimals written per height.
const HeightmapDecimals = 4

// maxHeightmapSide guards allocation when reading untrusted headers.
const maxHeightmapSide = 1 << 14

// WriteHeightmap writes g as text: a "<width> <length>" header followed by
// one line of space-separated heights per row, top row first.
func WriteHeightmap(w io.Writer, g *heightmap.Grid) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", g.Width(), g.Length()); err != nil {
		return err
	}

	buf := make([]byte, 0, g.Width()*(HeightmapDecimals+3))
	for _, row := range g.Rows() {
		buf = buf[:0]
		for x, v := range row {
			if x > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, v, 'f', HeightmapDecimals, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseHeightmap reads the text format produced by WriteHeightmap.
func ParseHeightmap(r io.Reader) (*heightmap.Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxHeightmapSide*16)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		return nil, fmt.Errorf("%w: empty input", ErrInvalidHeader)
	}
	width, length, err := parseHeader(sc.Text())
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, 0, length)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if len(rows) == length {
			return nil, fmt.Errorf("%w: more than %d rows", ErrRowCount, length)
		}
		fields := strings.Fields(line)
		if len(fields) != width {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrColumnCount, len(rows), len(fields), width)
		}
		row := make([]float64, width)
		for x, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %q", ErrInvalidHeight, len(rows), x, f)
			}
			row[x] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	if len(rows) != length {
		return nil, fmt.Errorf("%w: got %d rows, want %d", ErrRowCount, len(rows), length)
	}

	g, err := heightmap.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeight, err)
	}
	return g, nil
}

func parseHeader(line string) (width, length int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHeader, line)
	}
	width, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: width %q", ErrInvalidHeader, fields[0])
	}
	length, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: length %q", ErrInvalidHeader, fields[1])
	}
	if width <= 0 || length <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidHeader, width, length)
	}
	if width > maxHeightmapSide || length > maxHeightmapSide {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrHeightmapTooBig, width, length)
	}
	return width, length, nil
}

// ParseHeightmapFile parses a heightmap text file from disk.
func ParseHeightmapFile(path string) (*heightmap.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening heightmap file: %w", err)
	}
	defer f.Close()
	return ParseHeightmap(f)
}

// WriteHeightmapFile writes g to path, creating parent directories.
func WriteHeightmapFile(path string, g *heightmap.Grid) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating heightmap file: %w", err)
	}
	if err := WriteHeightmap(f, g); err != nil {
		f.Close()
		return fmt.Errorf("writing heightmap file: %w", err)
	}
	return f.Close()
}
