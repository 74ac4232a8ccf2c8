package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestOrbit_PositionDistance(t *testing.T) {
	c := NewOrbit()
	c.Center = mgl32.Vec3{10, 20, 5}
	c.Distance = 50

	pos := c.Position()
	d := pos.Sub(c.Center).Len()
	if math.Abs(float64(d-50)) > 1e-4 {
		t.Errorf("camera distance %f, want 50", d)
	}
}

func TestOrbit_ZoomClamped(t *testing.T) {
	c := NewOrbit()

	// Zoom in hard; distance must not drop below the minimum.
	for i := 0; i < 200; i++ {
		c.HandleZoom(10)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("distance %f, want clamped to %f", c.Distance, c.MinDistance)
	}

	for i := 0; i < 500; i++ {
		c.HandleZoom(-10)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("distance %f, want clamped to %f", c.Distance, c.MaxDistance)
	}
}

func TestOrbit_DragClampsPitch(t *testing.T) {
	c := NewOrbit()

	c.HandleDrag(0, 10000)
	if c.Pitch != c.MaxPitch {
		t.Errorf("pitch %f, want clamped to %f", c.Pitch, c.MaxPitch)
	}

	c.HandleDrag(0, -10000)
	if c.Pitch != c.MinPitch {
		t.Errorf("pitch %f, want clamped to %f", c.Pitch, c.MinPitch)
	}
}

func TestOrbit_FitToBounds(t *testing.T) {
	c := NewOrbit()
	c.FitToBounds(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{100, 60, 20})

	want := mgl32.Vec3{50, 30, 10}
	if c.Center.Sub(want).Len() > 1e-5 {
		t.Errorf("center %v, want %v", c.Center, want)
	}
	if c.Distance < 100 {
		t.Errorf("distance %f too close to cover a 100-unit terrain", c.Distance)
	}
}
