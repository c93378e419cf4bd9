package engine

import (
	"math"

	"skyline/internal/util"
	"skyline/pkg/config"
	"skyline/pkg/heightfield"
)

// Camera is a yaw-only pinhole camera. Pitch is faked by shifting the
// horizon row, which keeps every screen column a vertical plane through the
// eye and lets one ground-plane ray serve a whole column.
type Camera struct {
	Position Vector3
	Yaw      float64 // radians, 0 looks down +Z
	FovY     float64 // radians
	Horizon  float64 // row offset of the horizon from the screen centre
	Width    int
	Height   int
}

// NewOrbitCamera places a camera on the configured orbit, looking at the
// world origin
func NewOrbitCamera(cam config.CameraConfig, screen config.ScreenConfig) *Camera {
	c := &Camera{
		FovY:    util.Radians(cam.FovYDegrees),
		Horizon: cam.Horizon,
		Width:   screen.Width,
		Height:  screen.Height,
	}
	c.Orbit(cam.OrbitRadius, cam.Height, cam.AngleDegrees)
	return c
}

// Orbit moves the camera onto a circle of the given radius around the
// origin at the given height and turns it towards the centre
func (c *Camera) Orbit(radius, height, angleDegrees float64) {
	a := util.Radians(angleDegrees)
	c.Position = Vector3{X: radius * math.Sin(a), Y: height, Z: radius * math.Cos(a)}
	c.Yaw = a + math.Pi
}

// Forward returns the horizontal viewing direction
func (c *Camera) Forward() Vector3 {
	return Vector3{X: math.Sin(c.Yaw), Z: math.Cos(c.Yaw)}
}

// Right returns the horizontal direction of increasing screen x
func (c *Camera) Right() Vector3 {
	return Vector3{X: math.Cos(c.Yaw), Z: -math.Sin(c.Yaw)}
}

// ScreenDistance is the distance in pixels from the eye to the image plane
func (c *Camera) ScreenDistance() float64 {
	return 0.5 * float64(c.Height) / math.Tan(0.5*c.FovY)
}

// HorizonRow is the screen row of points at eye height
func (c *Camera) HorizonRow() float64 {
	return 0.5*float64(c.Height) + c.Horizon
}

// columnVector returns the unnormalised ground-plane direction through the
// centre of column x, scaled so its forward component is ScreenDistance
func (c *Camera) columnVector(x int) Vector3 {
	offset := float64(x) + 0.5 - 0.5*float64(c.Width)
	return c.Forward().Mul(c.ScreenDistance()).Add(c.Right().Mul(offset))
}

// ColumnRay returns the normalised ground-plane ray for screen column x
func (c *Camera) ColumnRay(x int) heightfield.Ray2 {
	d := c.columnVector(x).Normalize()
	return heightfield.Ray2{
		Origin:    heightfield.Vec2{X: c.Position.X, Z: c.Position.Z},
		Direction: heightfield.Vec2{X: d.X, Z: d.Z},
	}
}

// ColumnFocal converts a distance along the column ray into a screen scale:
// a point at ray distance t and height h lands on row
// HorizonRow() - (h-eye)*ColumnFocal(x)/t.
func (c *Camera) ColumnFocal(x int) float64 {
	return c.columnVector(x).Length()
}

// ProjectY returns the screen row of a world point, false when the point is
// not in front of the camera
func (c *Camera) ProjectY(p Vector3) (float64, bool) {
	rel := p.Sub(c.Position)
	depth := rel.Dot(c.Forward())
	if depth <= 1e-6 {
		return 0, false
	}
	return c.HorizonRow() - rel.Y*c.ScreenDistance()/depth, true
}
