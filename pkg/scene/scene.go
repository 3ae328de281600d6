package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-raytracer/pkg/config"
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/log"
	"github.com/df07/go-raytracer/pkg/material"
)

// Material type names accepted in scene settings
const (
	MaterialDiffuse    = "diffuse"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// ErrUnknownMaterial is returned for a material type outside diffuse, metal and dielectric
var ErrUnknownMaterial = errors.New("unknown material type")

// ErrUnknownScene is returned when no built-in scene has the requested name
var ErrUnknownScene = errors.New("unknown scene")

// gridSize is the number of spheres along each side of the sphere grid scene
const gridSize = 7

// builtins maps scene names to constructors
var builtins = map[string]func(mode material.DiffuseMode) *Scene{
	"default":    NewDefaultScene,
	"spheregrid": func(mode material.DiffuseMode) *Scene { return NewSphereGridScene(mode, gridSize) },
}

// BuiltinNames lists the built-in scenes in alphabetical order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltinScene creates the built-in scene with the given name. An empty
// name selects the default scene.
func NewBuiltinScene(name string, mode material.DiffuseMode) (*Scene, error) {
	if name == "" {
		name = "default"
	}
	build, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScene, name, strings.Join(BuiltinNames(), ", "))
	}
	return build(mode), nil
}

var logger = log.New("scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name  string
	World *geometry.Group // Objects in the scene
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// NewDefaultScene creates the four-sphere scene: a large ground sphere, a
// diffuse sphere in the middle and two metal spheres of different roughness
// on either side.
func NewDefaultScene(mode material.DiffuseMode) *Scene {
	groundMaterial := material.NewLambertianWithMode(core.NewVec3(0.8, 0.8, 0.0), mode)
	centerMaterial := material.NewLambertianWithMode(core.NewVec3(0.7, 0.3, 0.3), mode)
	leftMaterial := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.5)
	rightMaterial := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	world := geometry.NewGroup(
		mustSphere(core.NewVec3(0, -100.5, -1), 100, groundMaterial),
		mustSphere(core.NewVec3(0, 0, -1), 0.5, centerMaterial),
		mustSphere(core.NewVec3(-1.5, 0, -1), 0.5, leftMaterial),
		mustSphere(core.NewVec3(1.5, 0, -1), 0.5, rightMaterial),
	)

	return &Scene{Name: "default", World: world}
}

// mustSphere is for built-in scenes whose radii are known to be valid
func mustSphere(center core.Point3, radius float64, mat material.Material) *geometry.Sphere {
	s, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		panic(err)
	}
	return s
}

// NewSceneFromSettings builds the spheres listed in settings, or the named
// built-in scene when none are listed. Any invalid sphere rejects the whole scene.
func NewSceneFromSettings(settings *config.Settings) (*Scene, error) {
	mode, err := settings.DiffuseMode()
	if err != nil {
		return nil, err
	}

	if len(settings.Scene.Spheres) == 0 {
		logger.Infof("no spheres configured; using built-in scene %q", settings.Scene.Name)
		return NewBuiltinScene(settings.Scene.Name, mode)
	}

	world := geometry.NewGroup()
	for i, sphere := range settings.Scene.Spheres {
		s, err := newSphere(sphere, mode)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		world.Add(s)
	}

	logger.Infof("built scene with %d spheres", world.Len())
	return &Scene{Name: "settings", World: world}, nil
}

func newSphere(settings config.SphereSettings, mode material.DiffuseMode) (*geometry.Sphere, error) {
	center, err := config.Vec3(settings.Center)
	if err != nil {
		return nil, fmt.Errorf("invalid center: %w", err)
	}
	mat, err := newMaterial(settings.Material, mode)
	if err != nil {
		return nil, err
	}
	return geometry.NewSphere(center, settings.Radius, mat)
}

func newMaterial(settings config.MaterialSettings, mode material.DiffuseMode) (material.Material, error) {
	switch strings.ToLower(strings.TrimSpace(settings.Type)) {
	case MaterialDiffuse:
		albedo, err := config.Vec3(settings.Albedo)
		if err != nil {
			return nil, fmt.Errorf("invalid diffuse albedo: %w", err)
		}
		return material.NewLambertianWithMode(albedo, mode), nil
	case MaterialMetal:
		albedo, err := config.Vec3(settings.Albedo)
		if err != nil {
			return nil, fmt.Errorf("invalid metal albedo: %w", err)
		}
		return material.NewMetal(albedo, settings.Roughness), nil
	case MaterialDielectric:
		dielectric, err := material.NewDielectric(settings.IOR)
		if err != nil {
			return nil, err
		}
		return dielectric, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, settings.Type)
	}
}
