package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo    core.Color // Metal color
	Roughness float64    // 0.0 = perfect mirror, 1.0 = very rough
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Color, roughness float64) *Metal {
	// Clamp roughness to valid range
	return &Metal{Albedo: albedo, Roughness: max(0.0, min(1.0, roughness))}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := rayIn.Direction.MustUnitVector().Reflect(hit.Normal)

	// Only scatter if the reflection leaves the surface
	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	direction := reflected
	if m.Roughness > 0 {
		direction = direction.Add(core.RandomInUnitSphere(sampler).Multiply(m.Roughness))
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: m.Albedo,
	}, true
}
