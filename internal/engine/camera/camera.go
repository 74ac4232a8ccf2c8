// Package camera provides the orbit camera used by the terrain viewer.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// up is the world up axis. Terrain height maps to +Z.
var up = mgl32.Vec3{0, 0, 1}

// Orbit orbits around a center point using spherical coordinates.
type Orbit struct {
	Center mgl32.Vec3

	Distance float32 // distance from center
	Pitch    float32 // vertical angle, radians
	Yaw      float32 // horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbit creates an orbit camera with viewer defaults.
func NewOrbit() *Orbit {
	return &Orbit{
		Distance:        120.0,
		Pitch:           0.7,
		Yaw:             0.0,
		MinDistance:     5.0,
		MaxDistance:     4000.0,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *Orbit) Position() mgl32.Vec3 {
	cosP := float32(gomath.Cos(float64(c.Pitch)))
	offset := mgl32.Vec3{
		c.Distance * cosP * float32(gomath.Cos(float64(c.Yaw))),
		c.Distance * cosP * float32(gomath.Sin(float64(c.Yaw))),
		c.Distance * float32(gomath.Sin(float64(c.Pitch))),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *Orbit) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, up)
}

// HandleDrag updates the orbit angles from a mouse drag delta.
func (c *Orbit) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity

	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// HandleZoom updates the orbit distance from a scroll wheel delta.
func (c *Orbit) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandlePan moves the center point on the ground plane relative to the
// current yaw. Speed scales with distance for a consistent feel.
func (c *Orbit) HandlePan(forward, right float32) {
	speed := c.Distance * 0.01

	sinY := float32(gomath.Sin(float64(c.Yaw)))
	cosY := float32(gomath.Cos(float64(c.Yaw)))

	// Forward points from the camera toward the center on the XY plane.
	c.Center[0] += (-cosY*forward - sinY*right) * speed
	c.Center[1] += (-sinY*forward + cosY*right) * speed
}

// FitToBounds centers the camera on a bounding box and backs off far
// enough to see all of it.
func (c *Orbit) FitToBounds(min, max mgl32.Vec3) {
	c.Center = min.Add(max).Mul(0.5)

	size := max.Sub(min)
	extent := size.X()
	if size.Y() > extent {
		extent = size.Y()
	}

	c.Distance = extent * 1.2
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}

	c.Pitch = 0.7
	c.Yaw = 0.0
}
