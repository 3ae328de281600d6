package renderer

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// Pixel is an 8-bit RGB triple
type Pixel struct {
	R, G, B uint8
}

// ToPixel converts an accumulated sample sum into displayable 8-bit values:
// average over samples, apply 1/gamma, clamp to [0, 0.999], then floor(256*c).
func ToPixel(sum core.Color, samples int, gamma float64) Pixel {
	c := sum.Multiply(1.0 / float64(samples)).GammaCorrect(gamma)
	return Pixel{
		R: toByte(c.X),
		G: toByte(c.Y),
		B: toByte(c.Z),
	}
}

func toByte(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	return uint8(math.Floor(256 * max(0, min(0.999, c))))
}

// Image holds rendered pixels in row-major order, top row first
type Image struct {
	Width  int
	Height int
	Pixels []Pixel
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]Pixel, width*height),
	}
}

// At returns the pixel in column x of row y, counted from the top
func (img *Image) At(x, y int) Pixel {
	return img.Pixels[y*img.Width+x]
}

// Set stores the pixel in column x of row y, counted from the top
func (img *Image) Set(x, y int, p Pixel) {
	img.Pixels[y*img.Width+x] = p
}
