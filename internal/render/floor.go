package render

import (
	"math"

	"mazecaster/internal/texture"
)

// minPlaneHeight keeps plane distances positive when the camera rises to or
// past a plane.
const minPlaneHeight = 1e-3

// floorColumn fills every row of column x with the floor or ceiling texel the
// line of sight crosses, and that plane's distance.
func (r *Renderer) floorColumn(v *view, x int) {
	cam := v.scene.Camera
	floor := r.textures.Get(texture.Floor)
	dirX, dirZ := cam.RayDirection(x, r.width, r.render.FieldOfView)

	cutoff := r.render.FloorCutoff
	if cutoff <= 0 {
		cutoff = r.render.RenderDistance
	}

	floorHeight := math.Max(r.render.PlaneHeight+cam.Height, minPlaneHeight)
	ceilingHeight := math.Max(r.render.PlaneHeight-cam.Height, minPlaneHeight)
	horizon := float64(r.height)/2 + cam.Pitch
	// rows closer than half a row to the horizon would project to infinity
	minRowFactor := 0.5 / float64(r.height)

	for y := 0; y < r.height; y++ {
		rowFactor := (float64(y) - horizon) / float64(r.height)
		if math.Abs(rowFactor) < minRowFactor {
			r.frame.set(x, y, 0, cutoff)
			continue
		}

		var dist float64
		if rowFactor < 0 {
			dist = ceilingHeight / -rowFactor
		} else {
			dist = floorHeight / rowFactor
		}

		if dist > cutoff {
			r.frame.set(x, y, 0, dist)
			continue
		}

		worldX := cam.X + dirX*dist
		worldZ := cam.Z + dirZ*dist
		r.frame.set(x, y, floor.At(int(worldX), int(worldZ)), dist)
	}
}
