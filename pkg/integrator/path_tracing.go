package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// Config holds the tunables of the path tracer
type Config struct {
	MinTrace     float64    // Smallest accepted hit distance, suppresses self-intersection
	HorizonColor core.Color // Background color for rays pointing straight down
	ZenithColor  core.Color // Background color for rays pointing straight up
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MinTrace:     1e-5,
		HorizonColor: core.NewVec3(1.0, 1.0, 1.0),
		ZenithColor:  core.NewVec3(0.5, 0.7, 1.0),
	}
}

// PathTracingIntegrator implements recursive unidirectional path tracing
// with a hard depth bound and no russian roulette.
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the integrator configuration
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Traceable, sampler core.Sampler, depth int) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Zero()
	}

	hit, isHit := world.Hit(ray, pt.config.MinTrace, math.Inf(1))
	if !isHit {
		return pt.BackgroundGradient(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return core.Zero()
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColor(scatter.Scattered, world, sampler, depth-1))
}

// BackgroundGradient returns the sky color seen along an escaping ray.
// A ray with a zero direction has no defined color and panics.
func (pt *PathTracingIntegrator) BackgroundGradient(ray core.Ray) core.Color {
	unitDirection, err := ray.Direction.UnitVector()
	if err != nil {
		panic(fmt.Sprintf("background for ray heading in the null direction: %v", err))
	}

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*horizon + t*zenith
	return pt.config.HorizonColor.Multiply(1.0 - t).Add(pt.config.ZenithColor.Multiply(t))
}
