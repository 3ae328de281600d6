package material

import (
	"fmt"
	"strings"

	"github.com/df07/go-raytracer/pkg/core"
)

// DiffuseMode selects how a Lambertian surface perturbs the normal when scattering
type DiffuseMode int

const (
	// TrueLambert offsets the normal by a random unit vector (cosine-weighted)
	TrueLambert DiffuseMode = iota
	// ApproxLambert offsets the normal by a random point inside the unit sphere
	ApproxLambert
	// Hemispherical offsets the normal by a random point in the normal's hemisphere
	Hemispherical
)

var diffuseModeNames = map[DiffuseMode]string{
	TrueLambert:   "true-lambert",
	ApproxLambert: "approx-lambert",
	Hemispherical: "hemispherical",
}

// String returns the configuration name of the mode
func (m DiffuseMode) String() string {
	if name, ok := diffuseModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("DiffuseMode(%d)", int(m))
}

// ParseDiffuseMode maps a configuration string to a DiffuseMode.
// Matching ignores case and treats underscores as dashes.
func ParseDiffuseMode(name string) (DiffuseMode, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for mode, modeName := range diffuseModeNames {
		if modeName == normalized {
			return mode, nil
		}
	}
	return TrueLambert, fmt.Errorf("unknown diffuse scatter mode %q", name)
}

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Color  // Base color/reflectance
	Mode   DiffuseMode // Scatter direction sampling policy
}

// NewLambertian creates a new lambertian material using the default TrueLambert mode
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: albedo, Mode: TrueLambert}
}

// NewLambertianWithMode creates a new lambertian material with an explicit sampling policy
func NewLambertianWithMode(albedo core.Color, mode DiffuseMode) *Lambertian {
	return &Lambertian{Albedo: albedo, Mode: mode}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(l.perturbation(hit.Normal, sampler))

	// Catch degenerate scatter direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo,
	}, true
}

func (l *Lambertian) perturbation(normal core.Vec3, sampler core.Sampler) core.Vec3 {
	switch l.Mode {
	case ApproxLambert:
		return core.RandomInUnitSphere(sampler)
	case Hemispherical:
		return core.RandomInHemisphere(sampler, normal)
	default:
		return core.RandomUnitVector(sampler)
	}
}
