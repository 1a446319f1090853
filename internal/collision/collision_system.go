// Package collision resolves movement of square footprints against the tile grid.
package collision

import (
	"math"

	"mazecaster/internal/world"
)

// CollisionSystem checks footprints against a tile grid measured in world units.
type CollisionSystem struct {
	grid world.TileGrid
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(grid world.TileGrid) *CollisionSystem {
	return &CollisionSystem{grid: grid}
}

// UpdateGrid swaps the grid when a new level starts.
func (cs *CollisionSystem) UpdateGrid(grid world.TileGrid) {
	cs.grid = grid
}

// CanMoveTo reports whether none of the box corners lies in a non-empty tile.
func (cs *CollisionSystem) CanMoveTo(box BoundingBox) bool {
	for _, c := range box.GetCorners() {
		if cs.grid.TileAt(int(math.Floor(c[0])), int(math.Floor(c[1]))) != world.TileEmpty {
			return false
		}
	}
	return true
}

// MoveResult is the outcome of an axis-separated move.
type MoveResult struct {
	X, Z     float64
	BlockedX bool
	BlockedZ bool
}

// Move applies dx then dz to box independently, so a blocked axis still lets
// the other one slide along the wall.
func (cs *CollisionSystem) Move(box BoundingBox, dx, dz float64) MoveResult {
	res := MoveResult{X: box.X, Z: box.Z}

	if cs.CanMoveTo(box.MoveTo(box.X+dx, box.Z)) {
		res.X += dx
	} else {
		res.BlockedX = true
	}
	if cs.CanMoveTo(box.MoveTo(res.X, box.Z+dz)) {
		res.Z += dz
	} else {
		res.BlockedZ = true
	}
	return res
}
