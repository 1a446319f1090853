package render

import (
	"math"

	"mazecaster/internal/mathutil"
	"mazecaster/internal/texture"
	"mazecaster/internal/world"
)

// Face is the edge of a billboard footprint a ray struck.
type Face int

const (
	FaceFront Face = iota // min-Z edge
	FaceBack              // max-Z edge
	FaceLeft              // min-X edge
	FaceRight             // max-X edge
)

// BillboardHit is the nearest intersection of a column ray with one entity class.
type BillboardHit struct {
	Index    int     // position in the entity list
	Distance float64 // ray parameter at entry, comparable with wall distance
	PointX   float64
	PointZ   float64
	Face     Face
	U        float64 // offset along the struck face normalised by the footprint diameter
}

// slab returns the parametric interval during which a ray stays between lo
// and hi on one axis.
func slab(pos, dir, lo, hi float64) (float64, float64, bool) {
	if dir == 0 {
		if pos < lo || pos > hi {
			return 0, 0, false
		}
		return math.Inf(-1), math.Inf(1), true
	}
	t1 := (lo - pos) / dir
	t2 := (hi - pos) / dir
	return math.Min(t1, t2), math.Max(t1, t2), true
}

// NearestBillboard intersects the ray with an axis-aligned square of the given
// half-width around every point and returns the nearest entry. Earlier
// entries win exact ties.
func NearestBillboard(points []world.Point, radius, epsilon, posX, posZ, dirX, dirZ float64) (BillboardHit, bool) {
	best := BillboardHit{Distance: math.MaxFloat64}
	found := false

	for i, p := range points {
		minX, maxX := p.X-radius, p.X+radius
		minZ, maxZ := p.Z-radius, p.Z+radius

		loX, hiX, okX := slab(posX, dirX, minX, maxX)
		loZ, hiZ, okZ := slab(posZ, dirZ, minZ, maxZ)
		if !okX || !okZ {
			continue
		}
		tmin := math.Max(loX, loZ)
		tmax := math.Min(hiX, hiZ)
		if tmax < tmin || tmin <= 0 || tmin >= best.Distance {
			continue
		}

		ix := posX + dirX*tmin
		iz := posZ + dirZ*tmin
		hit := BillboardHit{Index: i, Distance: tmin, PointX: ix, PointZ: iz}
		switch {
		case math.Abs(ix-minX) < epsilon:
			hit.Face, hit.U = FaceLeft, iz-minZ
		case math.Abs(ix-maxX) < epsilon:
			hit.Face, hit.U = FaceRight, iz-minZ
		case math.Abs(iz-minZ) < epsilon:
			hit.Face, hit.U = FaceFront, ix-minX
		default:
			hit.Face, hit.U = FaceBack, ix-minX
		}
		hit.U /= 2 * radius

		best = hit
		found = true
	}
	return best, found
}

// spriteColumn composites the nearest enemy, then the nearest item, into
// column x. Each is drawn only when it is strictly nearer than everything
// already drawn in the column.
func (r *Renderer) spriteColumn(v *view, x int, dirX, dirZ, wallDist float64) {
	cam := v.scene.Camera
	closest := wallDist

	enemy, ok := NearestBillboard(v.scene.Entities.Enemies, r.sprites.EnemyRadius, r.sprites.FaceEpsilon, cam.X, cam.Z, dirX, dirZ)
	if ok && enemy.Distance < closest {
		closest = enemy.Distance
		r.drawEnemy(v, x, enemy)
	}

	item, ok := NearestBillboard(v.scene.Entities.Items, r.sprites.ItemRadius, r.sprites.FaceEpsilon, cam.X, cam.Z, dirX, dirZ)
	if ok && item.Distance < closest {
		r.drawItem(v, x, item)
	}
}

func (r *Renderer) enemyTexture(face Face) *texture.Texture {
	switch face {
	case FaceBack:
		return r.textures.Get(texture.EnemyBack)
	case FaceLeft:
		return r.textures.Get(texture.EnemyLeft)
	case FaceRight:
		return r.textures.Get(texture.EnemyRight)
	default:
		return r.textures.Get(texture.EnemyFront)
	}
}

// drawEnemy draws an enemy slice a fraction of a full wall tall, centred on the horizon.
func (r *Renderer) drawEnemy(v *view, x int, hit BillboardHit) {
	full := r.projectedHeight(hit.Distance)
	height := mathutil.IntMax(1, int(float64(full)*r.sprites.EnemyHeightFraction))

	top := v.horizon - height/2
	bottom := v.horizon + height/2

	tex := r.enemyTexture(hit.Face)
	texX := tex.Column(hit.U)

	for y := mathutil.IntMax(top, 0); y < mathutil.IntMin(bottom, r.height); y++ {
		texY := texelRow(int64(y-top)*256, height, tex.Height)
		col := tex.At(texX, texY)
		if !texture.Opaque(col) {
			continue
		}
		r.frame.set(x, y, col, hit.Distance)
	}
}

// darken halves every channel.
func darken(col uint32) uint32 {
	return (col & 0xFEFEFE) >> 1
}

// drawItem draws a short item slice standing on the floor where a full wall
// at the same distance would meet it. The top rows get a flat cap color and
// the z-facing sides are darkened.
func (r *Renderer) drawItem(v *view, x int, hit BillboardHit) {
	full := r.projectedHeight(hit.Distance)
	if full <= 0 {
		return
	}
	bottom := v.horizon + full/2
	height := mathutil.IntMax(1, int(float64(full)*r.sprites.ItemHeightFraction))
	top := bottom - height

	start := mathutil.IntMax(top, 0)
	end := mathutil.IntMin(bottom, r.height)

	tex := r.textures.Get(texture.Item)
	texX := tex.Column(hit.U)
	shaded := hit.Face == FaceFront || hit.Face == FaceBack

	for y := start; y < end; y++ {
		if y < start+r.sprites.ItemCapRows {
			r.frame.set(x, y, r.sprites.ItemCapColor, hit.Distance)
			continue
		}
		texY := texelRow(r.wallOffset(v, y, full), full, tex.Height)
		col := tex.At(texX, texY)
		if !texture.Opaque(col) {
			continue
		}
		if shaded {
			col = darken(col)
		}
		r.frame.set(x, y, col, hit.Distance)
	}
}
