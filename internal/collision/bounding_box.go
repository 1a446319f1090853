package collision

import (
	"math"
)

// BoundingBox represents a square collision footprint on the floor plane
type BoundingBox struct {
	X      float64 // Center X coordinate
	Z      float64 // Center Z coordinate
	Radius float64 // Half the side length
}

// NewBoundingBox creates a new bounding box centered at the given position
func NewBoundingBox(x, z, radius float64) BoundingBox {
	return BoundingBox{X: x, Z: z, Radius: radius}
}

// GetBounds returns the min/max coordinates of the bounding box
func (bb BoundingBox) GetBounds() (minX, minZ, maxX, maxZ float64) {
	return bb.X - bb.Radius, bb.Z - bb.Radius, bb.X + bb.Radius, bb.Z + bb.Radius
}

// GetCorners returns all four corners of the bounding box
func (bb BoundingBox) GetCorners() [4][2]float64 {
	minX, minZ, maxX, maxZ := bb.GetBounds()
	return [4][2]float64{
		{minX, minZ},
		{minX, maxZ},
		{maxX, minZ},
		{maxX, maxZ},
	}
}

// MoveTo returns the box re-centred at (x, z).
func (bb BoundingBox) MoveTo(x, z float64) BoundingBox {
	bb.X, bb.Z = x, z
	return bb
}

// Distance returns the centre-to-centre distance between two boxes.
func (bb BoundingBox) Distance(other BoundingBox) float64 {
	return math.Hypot(bb.X-other.X, bb.Z-other.Z)
}
