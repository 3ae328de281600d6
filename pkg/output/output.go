package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-raytracer/pkg/config"
	"github.com/df07/go-raytracer/pkg/log"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// StdoutPath selects standard output as the destination
const StdoutPath = "-"

// ErrUnknownFormat is returned for image formats other than ppm and png
var ErrUnknownFormat = errors.New("unknown image format")

var logger = log.New("output")

// WritePPM writes a plain-text P3 image, top row first with one pixel per line
func WritePPM(w io.Writer, img *renderer.Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return err
	}
	for _, p := range img.Pixels {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ToRGBA converts a rendered image to an opaque RGBA image
func ToRGBA(img *renderer.Image) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.At(x, y)
			rgba.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return rgba
}

// WritePNG encodes the image as PNG
func WritePNG(w io.Writer, img *renderer.Image) error {
	return png.Encode(w, ToRGBA(img))
}

// Write encodes the image in the named format
func Write(w io.Writer, img *renderer.Image, format string) error {
	switch format {
	case config.FormatPPM:
		return WritePPM(w, img)
	case config.FormatPNG:
		return WritePNG(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ResolveFormat picks the encoding for path. A recognized file extension
// wins over the configured format, which in turn defaults to ppm.
func ResolveFormat(path, format string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return config.FormatPPM
	case ".png":
		return config.FormatPNG
	}
	if format == "" {
		return config.FormatPPM
	}
	return format
}

// Save writes the image to path, or to stdout when path is "-" or empty
func Save(path, format string, img *renderer.Image, stdout io.Writer) error {
	format = ResolveFormat(path, format)

	if path == "" || path == StdoutPath {
		return Write(stdout, img, format)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}

	if err := Write(file, img, format); err != nil {
		file.Close()
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", path, err)
	}

	logger.Noticef("saved %s image to %s", format, path)
	return nil
}
