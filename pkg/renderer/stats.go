package renderer

import (
	"sort"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken per pixel
	MaxDepth        int           // Ray bounce limit
	MeanLuminance   float64       // Mean of per-pixel luminance
	StdDevLuminance float64       // Standard deviation of per-pixel luminance
	MedianLuminance float64       // Median of per-pixel luminance
	MinLuminance    float64       // Darkest pixel
	MaxLuminance    float64       // Brightest pixel
	MeanNoise       float64       // Mean variance of the per-pixel luminance estimate
	Duration        time.Duration // Wall time spent rendering
}

// SamplesPerSecond returns the sampling throughput
func (rs *RenderStats) SamplesPerSecond() float64 {
	if rs.Duration <= 0 {
		return 0
	}
	return float64(rs.TotalSamples) / rs.Duration.Seconds()
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Color // RGB accumulator for final result
	LuminanceAccum   float64    // Luminance accumulator
	LuminanceSqAccum float64    // Luminance squared for variance
	SampleCount      int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Zero()
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Variance returns the sample variance of luminance, zero below two samples
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	variance := (ps.LuminanceSqAccum - n*mean*mean) / (n - 1)
	return max(0, variance)
}

// statsCollector gathers per-pixel results for the final summary
type statsCollector struct {
	luminance []float64
	noise     []float64
	samples   int
}

func newStatsCollector(pixels int) *statsCollector {
	return &statsCollector{
		luminance: make([]float64, 0, pixels),
		noise:     make([]float64, 0, pixels),
	}
}

func (sc *statsCollector) add(ps *PixelStats) {
	sc.luminance = append(sc.luminance, ps.GetColor().Luminance())
	if ps.SampleCount > 0 {
		sc.noise = append(sc.noise, ps.Variance()/float64(ps.SampleCount))
	}
	sc.samples += ps.SampleCount
}

// summarize fills the luminance statistics of rs
func (sc *statsCollector) summarize(rs *RenderStats) {
	rs.TotalPixels = len(sc.luminance)
	rs.TotalSamples = sc.samples
	if len(sc.luminance) == 0 {
		return
	}

	if len(sc.luminance) == 1 {
		rs.MeanLuminance = sc.luminance[0]
	} else {
		rs.MeanLuminance, rs.StdDevLuminance = stat.MeanStdDev(sc.luminance, nil)
	}
	rs.MinLuminance = floats.Min(sc.luminance)
	rs.MaxLuminance = floats.Max(sc.luminance)

	sorted := append([]float64(nil), sc.luminance...)
	sort.Float64s(sorted)
	rs.MedianLuminance = stat.Quantile(0.5, stat.Empirical, sorted, nil)

	if len(sc.noise) > 0 {
		rs.MeanNoise = stat.Mean(sc.noise, nil)
	}
}
