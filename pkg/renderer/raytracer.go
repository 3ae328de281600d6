package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-raytracer/pkg/config"
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/log"
)

var logger = log.New("renderer")

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int     // Image width in pixels
	Height          int     // Image height in pixels
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	Jitter          float64 // Sub-pixel jitter per sample, 0 or 1
	Gamma           float64 // Display gamma
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfigFromSettings(config.Default())
}

// SamplingConfigFromSettings extracts the pixel loop parameters
func SamplingConfigFromSettings(settings *config.Settings) SamplingConfig {
	return SamplingConfig{
		Width:           settings.Image.Width,
		Height:          settings.Image.Height,
		SamplesPerPixel: settings.Image.SamplesPerPixel,
		MaxDepth:        settings.Rays.MaxDepth,
		Jitter:          settings.JitterScale(),
		Gamma:           settings.Image.Gamma,
	}
}

// Raytracer runs the synchronous pixel loop
type Raytracer struct {
	camera     *Camera
	world      geometry.Traceable
	integrator integrator.Integrator
	sampler    core.Sampler
	config     SamplingConfig
}

// NewRaytracer creates a new raytracer
func NewRaytracer(camera *Camera, world geometry.Traceable, integ integrator.Integrator, sampler core.Sampler, config SamplingConfig) *Raytracer {
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integ,
		sampler:    sampler,
		config:     config,
	}
}

// NewRaytracerFromSettings wires camera, path tracer and a seeded sampler from settings
func NewRaytracerFromSettings(settings *config.Settings, world geometry.Traceable) (*Raytracer, error) {
	camera, err := NewCameraFromSettings(settings)
	if err != nil {
		return nil, err
	}

	horizon, err := config.Vec3(settings.Background.Horizon)
	if err != nil {
		return nil, fmt.Errorf("invalid background horizon: %w", err)
	}
	zenith, err := config.Vec3(settings.Background.Zenith)
	if err != nil {
		return nil, fmt.Errorf("invalid background zenith: %w", err)
	}

	pt := integrator.NewPathTracingIntegrator(integrator.Config{
		MinTrace:     settings.Rays.MinTrace,
		HorizonColor: horizon,
		ZenithColor:  zenith,
	})

	return NewRaytracer(camera, world, pt, core.NewSeededSampler(settings.Rays.Seed), SamplingConfigFromSettings(settings)), nil
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// SamplingConfig returns the current sampling configuration
func (rt *Raytracer) SamplingConfig() SamplingConfig {
	return rt.config
}

// SamplePixel traces every sample of the pixel in column i, row j (counted from the bottom)
func (rt *Raytracer) SamplePixel(i, j int) PixelStats {
	var ps PixelStats
	width := float64(rt.config.Width - 1)
	height := float64(rt.config.Height - 1)

	for s := 0; s < rt.config.SamplesPerPixel; s++ {
		u := (float64(i) + rt.config.Jitter*rt.sampler.Get1D()) / width
		v := (float64(j) + rt.config.Jitter*rt.sampler.Get1D()) / height
		ray := rt.camera.GetRay(u, v)
		ps.AddSample(rt.integrator.RayColor(ray, rt.world, rt.sampler, rt.config.MaxDepth))
	}
	return ps
}

// Render produces the full image, scanning from the top row down.
// The context is checked once per scanline.
func (rt *Raytracer) Render(ctx context.Context) (*Image, *RenderStats, error) {
	start := time.Now()
	width, height := rt.config.Width, rt.config.Height
	img := NewImage(width, height)
	collector := newStatsCollector(width * height)

	logger.Infof("rendering %dx%d at %d samples per pixel, depth %d", width, height, rt.config.SamplesPerPixel, rt.config.MaxDepth)

	for j := height - 1; j >= 0; j-- {
		if err := ctx.Err(); err != nil {
			logger.Warningf("render interrupted with %d scanlines remaining", j+1)
			return nil, nil, err
		}
		logger.Debugf("scanlines remaining: %d", j+1)

		row := height - 1 - j
		for i := 0; i < width; i++ {
			ps := rt.SamplePixel(i, j)
			img.Set(i, row, ToPixel(ps.ColorAccum, rt.config.SamplesPerPixel, rt.config.Gamma))
			collector.add(&ps)
		}
	}

	stats := &RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
		Duration:        time.Since(start),
	}
	collector.summarize(stats)

	logger.Infof("render finished in %v", stats.Duration)
	return img, stats, nil
}
