package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	// Get1D returns a uniform deviate in [0, 1)
	Get1D() float64
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler from a fixed seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// RandomRange returns a uniform deviate in [lo, hi)
func RandomRange(sampler Sampler, lo, hi float64) float64 {
	return lo + (hi-lo)*sampler.Get1D()
}

// RandomVec3Range returns a vector whose components are uniform in [lo, hi)
func RandomVec3Range(sampler Sampler, lo, hi float64) Vec3 {
	return Vec3{
		X: RandomRange(sampler, lo, hi),
		Y: RandomRange(sampler, lo, hi),
		Z: RandomRange(sampler, lo, hi),
	}
}

// RandomInUnitSphere generates a random point inside the unit sphere by rejection sampling
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1]³ cube
		p := RandomVec3Range(sampler, -1, 1)
		// Accept if strictly inside unit sphere
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector generates a random direction on the unit sphere by
// normalizing a point sampled inside it
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		if unit, err := RandomInUnitSphere(sampler).UnitVector(); err == nil {
			return unit
		}
	}
}

// RandomInHemisphere generates a random point in the unit ball on the same side as normal
func RandomInHemisphere(sampler Sampler, normal Vec3) Vec3 {
	p := RandomInUnitSphere(sampler)
	if p.Dot(normal) > 0 {
		return p
	}
	return p.Negate()
}
