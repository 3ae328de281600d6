package scene

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0,1].
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	lp := l + 0.3963377774*a + 0.2158037573*b
	mp := l - 0.1055613458*a - 0.0638541728*b
	sp := l - 0.0894841775*a - 1.2914855480*b

	lp = lp * lp * lp
	mp = mp * mp * mp
	sp = sp * sp * sp

	// LMS to linear RGB
	r := +4.0767416621*lp - 3.3077115913*mp + 0.2309699292*sp
	g := -1.2684380046*lp + 2.6097574011*mp - 0.3413193965*sp
	blue := -0.0041960863*lp - 0.7034186147*mp + 1.7076147010*sp

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene lays a gridSize x gridSize carpet of small spheres on the
// ground sphere in front of the camera. Hue varies across X and chroma with
// depth. Materials cycle through diffuse, metal and glass.
func NewSphereGridScene(mode material.DiffuseMode, gridSize int) *Scene {
	groundCenter := core.NewVec3(0, -100.5, -1)
	const groundRadius = 100.0
	world := geometry.NewGroup(
		mustSphere(groundCenter, groundRadius, material.NewLambertianWithMode(core.NewVec3(0.5, 0.5, 0.5), mode)),
	)

	// The carpet spans x in [-2, 2] and z in [-1, -4]
	const width, depth = 4.0, 3.0
	spacing := width / float64(max(gridSize-1, 1))
	radius := max(0.02, min(0.2, spacing*0.35))

	const (
		baseLightness = 0.65
		minChroma     = 0.05
		maxChroma     = 0.25
	)

	glass, _ := material.NewDielectric(material.IORGlass)

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			fi := float64(i) / float64(max(gridSize-1, 1))
			fj := float64(j) / float64(max(gridSize-1, 1))

			x := -width/2 + fi*width
			z := -1 - fj*depth
			// Rest the sphere on the ground along the surface normal
			surface := core.NewVec3(x, groundHeight(groundCenter, groundRadius, x, z), z)
			normal := surface.Subtract(groundCenter).Multiply(1 / groundRadius)
			position := groundCenter.Add(normal.Multiply(groundRadius + radius))

			hue := fi * 360.0
			chroma := minChroma + fj*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			var mat material.Material
			switch (i + j) % 3 {
			case 0:
				mat = material.NewLambertianWithMode(color, mode)
			case 1:
				roughness := 0.05 + 0.1*float64((i*j)%3)/2.0
				mat = material.NewMetal(color, roughness)
			default:
				mat = glass
			}

			world.Add(mustSphere(position, radius, mat))
		}
	}

	return &Scene{Name: "spheregrid", World: world}
}

// groundHeight is the height of the upper surface of a sphere above (x, z)
func groundHeight(center core.Point3, radius, x, z float64) float64 {
	dx, dz := x-center.X, z-center.Z
	return center.Y + math.Sqrt(radius*radius-dx*dx-dz*dz)
}
