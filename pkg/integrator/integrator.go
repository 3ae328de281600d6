package integrator

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance carried back along ray, following at most depth bounces
	RayColor(ray core.Ray, world geometry.Traceable, sampler core.Sampler, depth int) core.Color
}
