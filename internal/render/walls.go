package render

import (
	"math"

	"mazecaster/internal/mathutil"
	"mazecaster/internal/texture"
	"mazecaster/internal/world"
)

// minWallDistance stops a camera standing exactly on a grid line from
// projecting a wall of infinite height.
const minWallDistance = 1e-4

// Side names the grid axis crossed on the final DDA step.
type Side int

const (
	SideX Side = iota // crossed a vertical grid line (x changed)
	SideZ             // crossed a horizontal grid line (z changed)
)

// WallHit describes the nearest wall along one column's ray.
type WallHit struct {
	CellX, CellZ int
	Tile         int
	Side         Side
	Distance     float64 // perpendicular to the camera plane, not ray length
	WallX        float64 // fractional position along the wall face, [0,1)
	Steps        int
	RayX, RayZ   float64
}

// ray is the per-column DDA state.
type ray struct {
	dirX, dirZ     float64
	mapX, mapZ     int
	stepX, stepZ   int
	sideX, sideZ   float64 // distance to the next x/z grid line
	deltaX, deltaZ float64 // distance between successive x/z grid lines
}

func newRay(cam Camera, dirX, dirZ float64) ray {
	rr := ray{
		dirX: dirX,
		dirZ: dirZ,
		mapX: int(math.Floor(cam.X)),
		mapZ: int(math.Floor(cam.Z)),
	}
	rr.stepX, rr.deltaX, rr.sideX = axisSetup(cam.X, rr.mapX, dirX)
	rr.stepZ, rr.deltaZ, rr.sideZ = axisSetup(cam.Z, rr.mapZ, dirZ)
	return rr
}

// axisSetup returns step sign, delta distance and initial side distance for
// one axis. A zero direction never reaches a grid line on that axis.
func axisSetup(pos float64, cell int, dir float64) (int, float64, float64) {
	if dir == 0 {
		return 1, math.Inf(1), math.Inf(1)
	}
	delta := math.Abs(1 / dir)
	if dir < 0 {
		return -1, delta, (pos - float64(cell)) * delta
	}
	return 1, delta, (float64(cell) + 1 - pos) * delta
}

// CastColumn runs the wall caster for one screen column. ok is false when no
// wall lies within the step budget.
func (r *Renderer) CastColumn(grid world.TileGrid, cam Camera, column int) (WallHit, bool) {
	dirX, dirZ := cam.RayDirection(column, r.width, r.render.FieldOfView)
	return castWall(grid, cam, dirX, dirZ, r.render.MaxSteps)
}

func castWall(grid world.TileGrid, cam Camera, dirX, dirZ float64, maxSteps int) (WallHit, bool) {
	rr := newRay(cam, dirX, dirZ)

	side := SideX
	tile := world.TileEmpty
	steps := 0
	for steps < maxSteps {
		if rr.sideX < rr.sideZ {
			rr.sideX += rr.deltaX
			rr.mapX += rr.stepX
			side = SideX
		} else {
			rr.sideZ += rr.deltaZ
			rr.mapZ += rr.stepZ
			side = SideZ
		}
		steps++
		tile = grid.TileAt(rr.mapX, rr.mapZ)
		if tile != world.TileEmpty {
			break
		}
	}
	if tile == world.TileEmpty {
		return WallHit{}, false
	}

	var dist float64
	if side == SideX {
		dist = (float64(rr.mapX) - cam.X + float64(1-rr.stepX)/2) / dirX
	} else {
		dist = (float64(rr.mapZ) - cam.Z + float64(1-rr.stepZ)/2) / dirZ
	}
	dist = math.Max(dist, minWallDistance)

	var wallX float64
	if side == SideX {
		wallX = cam.Z + dist*dirZ
	} else {
		wallX = cam.X + dist*dirX
	}
	wallX -= math.Floor(wallX)

	return WallHit{
		CellX:    rr.mapX,
		CellZ:    rr.mapZ,
		Tile:     tile,
		Side:     side,
		Distance: dist,
		WallX:    wallX,
		Steps:    steps,
		RayX:     dirX,
		RayZ:     dirZ,
	}, true
}

// RayLength is the Euclidean distance from the camera to the hit point.
func (h WallHit) RayLength() float64 {
	return h.Distance * math.Hypot(h.RayX, h.RayZ)
}

// TextureColumn maps the hit to a texel column of a texture w texels wide,
// mirrored on the faces seen from the far side so text never reads backwards.
func (h WallHit) TextureColumn(w int) int {
	texX := int(h.WallX * float64(w))
	if (h.Side == SideX && h.RayX > 0) || (h.Side == SideZ && h.RayZ < 0) {
		texX = w - texX - 1
	}
	return mathutil.Wrap(texX, w)
}

// projectedHeight is the screen height of a full wall at dist. Distances
// below minWallDistance project as minWallDistance.
func (r *Renderer) projectedHeight(dist float64) int {
	dist = math.Max(dist, minWallDistance)
	return int(float64(r.height) * r.render.WallScale / dist)
}

// texelRow converts a row offset in 8-bit fixed point (offset*256) within a
// span of the given height into a clamped texel row.
func texelRow(offset int64, span, texHeight int) int {
	if span <= 0 {
		return 0
	}
	row := int(offset*int64(texHeight)/int64(span)) / 256
	return mathutil.IntClamp(row, 0, texHeight-1)
}

// wallOffset is the fixed-point row offset of screen row y within a span of
// lineHeight rows centred on the horizon.
func (r *Renderer) wallOffset(v *view, y, lineHeight int) int64 {
	return int64(y-v.pitch-v.bob)*256 - int64(r.height)*128 + int64(lineHeight)*128
}

// wallColumn draws the wall slice of column x and composites sprites in front of it.
func (r *Renderer) wallColumn(v *view, x int) {
	cam := v.scene.Camera
	dirX, dirZ := cam.RayDirection(x, r.width, r.render.FieldOfView)
	hit, ok := castWall(v.scene.Grid, cam, dirX, dirZ, r.render.MaxSteps)
	if !ok || hit.Distance > r.render.MaxWallDistance {
		return
	}

	lineHeight := r.projectedHeight(hit.Distance)
	if lineHeight > 0 {
		tex := r.textures.Get(texture.Wall)
		if hit.Tile == world.TileExit {
			tex = r.textures.Get(texture.Grate)
		}
		texX := hit.TextureColumn(tex.Width)

		drawStart := mathutil.IntMax(v.horizon-lineHeight/2, 0)
		drawEnd := mathutil.IntMin(v.horizon+lineHeight/2, r.height)
		for y := drawStart; y < drawEnd; y++ {
			texY := texelRow(r.wallOffset(v, y, lineHeight), lineHeight, tex.Height)
			r.frame.set(x, y, tex.At(texX, texY), hit.Distance)
		}
	}

	r.spriteColumn(v, x, dirX, dirZ, hit.Distance)
}
