package renderer

import (
	"fmt"

	"github.com/df07/go-raytracer/pkg/config"
	"github.com/df07/go-raytracer/pkg/core"
)

// Camera is an axis-aligned pinhole camera looking down -Z
type Camera struct {
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera precomputes the viewport spans and its lower-left corner
func NewCamera(origin core.Point3, viewportWidth, viewportHeight, focalLength float64) *Camera {
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, viewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(core.NewVec3(0, 0, focalLength))

	return &Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// NewCameraFromSettings builds a camera whose viewport matches the image aspect ratio
func NewCameraFromSettings(settings *config.Settings) (*Camera, error) {
	origin, err := settings.CameraOrigin()
	if err != nil {
		return nil, fmt.Errorf("invalid camera origin: %w", err)
	}
	return NewCamera(origin, settings.ViewportWidth(), settings.Camera.ViewportHeight, settings.Camera.FocalLength), nil
}

// GetRay generates a ray for viewport coordinates (u, v), nominally in [0,1]
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Origin returns the camera position
func (c *Camera) Origin() core.Point3 {
	return c.origin
}

// LowerLeftCorner returns the viewport corner reached by GetRay(0, 0)
func (c *Camera) LowerLeftCorner() core.Point3 {
	return c.lowerLeftCorner
}
