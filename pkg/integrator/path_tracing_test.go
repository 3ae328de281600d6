package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

// MockMaterial implements material.Material for testing
type MockMaterial struct {
	scatterFn func(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool)
}

func (m *MockMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return m.scatterFn(rayIn, hit, sampler)
}

// MockShape implements geometry.Traceable for testing
type MockShape struct {
	hitFn func(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
	calls int
}

func (m *MockShape) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	m.calls++
	return m.hitFn(ray, tMin, tMax)
}

func mustSphere(t *testing.T, center core.Point3, radius float64, mat material.Material) *geometry.Sphere {
	t.Helper()
	s, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	return s
}

func testScene(t *testing.T) *geometry.Group {
	return geometry.NewGroup(
		mustSphere(t, core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0))),
		mustSphere(t, core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
		mustSphere(t, core.NewVec3(1.5, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)),
	)
}

func TestRayColor_ZeroDepthIsBlack(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultConfig())
	sampler := core.NewSeededSampler(42)

	worlds := map[string]geometry.Traceable{
		"empty":  geometry.NewGroup(),
		"scene":  testScene(t),
		"always": &MockShape{hitFn: func(core.Ray, float64, float64) (material.HitRecord, bool) {
			t.Error("world should not be queried at zero depth")
			return material.HitRecord{}, false
		}},
	}
	rays := []core.Ray{
		core.NewRay(core.Zero(), core.NewVec3(0, 0, -1)),
		core.NewRay(core.Zero(), core.NewVec3(0, 1, 0)),
		core.NewRay(core.NewVec3(3, 2, 1), core.NewVec3(-1, -1, -1)),
	}

	for name, world := range worlds {
		t.Run(name, func(t *testing.T) {
			for _, ray := range rays {
				for _, depth := range []int{0, -1} {
					if c := pt.RayColor(ray, world, sampler, depth); c != core.Zero() {
						t.Errorf("Expected black at depth %d, got %v", depth, c)
					}
				}
			}
		})
	}
}

func TestRayColor_MissReturnsBackgroundGradient(t *testing.T) {
	config := DefaultConfig()
	pt := NewPathTracingIntegrator(config)
	world := geometry.NewGroup()

	directions := []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, -1),
		core.NewVec3(1, 2, -3),
		core.NewVec3(0, -0.001, 5),
	}

	for _, direction := range directions {
		ray := core.NewRay(core.Zero(), direction)

		unit := direction.MustUnitVector()
		blend := 0.5 * (unit.Y + 1)
		expected := config.HorizonColor.Multiply(1 - blend).Add(config.ZenithColor.Multiply(blend))

		got := pt.RayColor(ray, world, core.NewSeededSampler(1), 50)
		if got.Subtract(expected).Length() > 1e-12 {
			t.Errorf("Direction %v: expected %v, got %v", direction, expected, got)
		}

		// The miss path draws no random numbers and is deterministic
		again := pt.RayColor(ray, world, core.NewSeededSampler(99), 1)
		if got != again {
			t.Errorf("Direction %v: miss path should not depend on sampler or depth", direction)
		}
	}
}

func TestBackgroundGradient_Endpoints(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultConfig())

	up := pt.BackgroundGradient(core.NewRay(core.Zero(), core.NewVec3(0, 2, 0)))
	if !up.Equals(core.NewVec3(0.5, 0.7, 1.0)) {
		t.Errorf("Straight up should be the zenith color, got %v", up)
	}
	down := pt.BackgroundGradient(core.NewRay(core.Zero(), core.NewVec3(0, -2, 0)))
	if !down.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("Straight down should be the horizon color, got %v", down)
	}
}

func TestBackgroundGradient_NullDirectionPanics(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultConfig())
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for a zero direction")
		}
	}()
	pt.BackgroundGradient(core.NewRay(core.Zero(), core.Zero()))
}

func TestRayColor_AbsorbedIsBlack(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultConfig())
	absorber := &MockMaterial{
		scatterFn: func(core.Ray, material.HitRecord, core.Sampler) (material.ScatterResult, bool) {
			return material.ScatterResult{}, false
		},
	}
	world := &MockShape{
		hitFn: func(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
			return material.HitRecord{T: 1, Point: ray.At(1), Normal: core.NewVec3(0, 0, 1), FrontFace: true, Material: absorber}, true
		},
	}

	if c := pt.RayColor(core.NewRay(core.Zero(), core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1), 10); c != core.Zero() {
		t.Errorf("Absorbed ray should be black, got %v", c)
	}
}

func TestRayColor_AttenuationMultipliesAlongPath(t *testing.T) {
	config := DefaultConfig()
	pt := NewPathTracingIntegrator(config)

	attenuation := core.NewVec3(0.5, 0.25, 1.0)
	bounceUp := &MockMaterial{
		scatterFn: func(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
			return material.ScatterResult{
				Scattered:   core.NewRay(hit.Point, core.NewVec3(0, 1, 0)),
				Attenuation: attenuation,
			}, true
		},
	}

	// Hit every downward ray, let upward rays escape
	var seenTMin []float64
	world := &MockShape{
		hitFn: func(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
			seenTMin = append(seenTMin, tMin)
			if ray.Direction.Y < 0 {
				return material.HitRecord{T: 1, Point: ray.At(1), Normal: core.NewVec3(0, 1, 0), FrontFace: true, Material: bounceUp}, true
			}
			return material.HitRecord{}, false
		},
	}

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	got := pt.RayColor(ray, world, core.NewSeededSampler(1), 2)
	expected := attenuation.MultiplyVec(config.ZenithColor)
	if got.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	// With only one bounce left the scattered ray is never traced
	if got := pt.RayColor(ray, world, core.NewSeededSampler(1), 1); got != core.Zero() {
		t.Errorf("Expected black when depth runs out, got %v", got)
	}

	for _, tMin := range seenTMin {
		if tMin != config.MinTrace {
			t.Errorf("World queried with tMin=%g, expected %g", tMin, config.MinTrace)
		}
	}
}

func TestRayColor_DepthBoundsRecursion(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultConfig())

	// A mirror box: every ray hits and scatters forever
	mirror := &MockMaterial{
		scatterFn: func(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
			return material.ScatterResult{Scattered: core.NewRay(hit.Point, rayIn.Direction.Negate()), Attenuation: core.Ones()}, true
		},
	}
	world := &MockShape{
		hitFn: func(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
			return material.HitRecord{T: 1, Point: ray.At(1), Normal: ray.Direction.Negate(), FrontFace: true, Material: mirror}, true
		},
	}

	for _, depth := range []int{1, 5, 50} {
		world.calls = 0
		if c := pt.RayColor(core.NewRay(core.Zero(), core.NewVec3(1, 0, 0)), world, core.NewSeededSampler(1), depth); c != core.Zero() {
			t.Errorf("Depth %d: expected black, got %v", depth, c)
		}
		if world.calls != depth {
			t.Errorf("Depth %d: expected %d intersection queries, got %d", depth, depth, world.calls)
		}
	}
}

func TestRayColor_SceneColorsAreBounded(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultConfig())
	world := testScene(t)
	sampler := core.NewSeededSampler(42)

	for i := 0; i < 200; i++ {
		direction := core.NewVec3(core.RandomRange(sampler, -1, 1), core.RandomRange(sampler, -1, 1), -1)
		c := pt.RayColor(core.NewRay(core.Zero(), direction), world, sampler, 50)
		for _, channel := range []float64{c.X, c.Y, c.Z} {
			if math.IsNaN(channel) || channel < 0 || channel > 1 {
				t.Fatalf("Channel out of range for direction %v: %v", direction, c)
			}
		}
	}
}
