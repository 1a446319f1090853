package game

import (
	"math"

	"mazecaster/internal/collision"
	"mazecaster/internal/config"
	"mazecaster/internal/world"
)

// arriveDistance is how close an enemy gets to its target before it stops.
const arriveDistance = 0.5

// Enemy walks towards the last place it heard the player.
type Enemy struct {
	X, Z      float64
	targetX   float64
	targetZ   float64
	hasTarget bool
}

// NewEnemy creates an idle enemy at p.
func NewEnemy(p world.Point) *Enemy {
	return &Enemy{X: p.X, Z: p.Z, targetX: p.X, targetZ: p.Z}
}

// Position returns the enemy's floor position.
func (e *Enemy) Position() world.Point {
	return world.Point{X: e.X, Z: e.Z}
}

// Chasing reports whether the enemy has somewhere to go.
func (e *Enemy) Chasing() bool {
	return e.hasTarget
}

// Update moves the enemy one step. A player who moves without crouching
// inside the hearing radius becomes the new target.
func (e *Enemy) Update(target world.Point, heard bool, cs *collision.CollisionSystem, cfg config.GameConfig, radius float64) {
	if heard && math.Hypot(target.X-e.X, target.Z-e.Z) < cfg.HearingRadius {
		e.targetX, e.targetZ = target.X, target.Z
		e.hasTarget = true
	}
	if !e.hasTarget {
		return
	}

	dx := e.targetX - e.X
	dz := e.targetZ - e.Z
	dist := math.Hypot(dx, dz)
	if dist <= arriveDistance {
		e.hasTarget = false
		return
	}

	step := cfg.EnemySpeed / dist
	res := cs.Move(collision.NewBoundingBox(e.X, e.Z, radius), dx*step, dz*step)
	e.X, e.Z = res.X, res.Z
}
