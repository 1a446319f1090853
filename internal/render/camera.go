package render

import "math"

// Camera is the viewer pose for one frame.
type Camera struct {
	X, Z   float64 // position on the floor plane, world units
	Height float64 // vertical offset from standing eye level
	Yaw    float64 // radians; zero faces +Z, increasing turns towards +X
	Pitch  float64 // screen rows added to the horizon
}

// Forward returns the unit view direction.
func (c Camera) Forward() (float64, float64) {
	return math.Sin(c.Yaw), math.Cos(c.Yaw)
}

// RayDirection returns the unnormalised ray through column of a screen
// width pixels wide: the forward vector plus a lateral term that runs from
// -fov at the left edge to nearly +fov at the right edge.
func (c Camera) RayDirection(column, width int, fov float64) (float64, float64) {
	cameraX := 2*float64(column)/float64(width) - 1
	sin, cos := math.Sincos(c.Yaw)
	return sin + cos*cameraX*fov, cos - sin*cameraX*fov
}
