package player

import (
	"math"
	"testing"

	"mazecaster/internal/collision"
	"mazecaster/internal/config"
	"mazecaster/internal/world"
)

type openGrid struct{}

func (openGrid) TileAt(int, int) int { return world.TileEmpty }

// wallRow blocks every tile with z == row.
type wallRow int

func (w wallRow) TileAt(_, z int) int {
	if z == int(w) {
		return world.TileWall
	}
	return world.TileEmpty
}

var open = collision.NewCollisionSystem(openGrid{})

func newTestController() *Controller {
	return NewController(config.Default().Controller, 150, world.Point{X: 5.5, Z: 5.5})
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWalkDirections(t *testing.T) {
	tests := []struct {
		name   string
		in     Input
		yaw    float64
		dx, dz float64
	}{
		{"forward", Input{Forward: true}, 0, 0, 0.5},
		{"back", Input{Back: true}, 0, 0, -0.5},
		{"strafe right", Input{Right: true}, 0, 0.5, 0},
		{"strafe left", Input{Left: true}, 0, -0.5, 0},
		{"forward facing +x", Input{Forward: true}, math.Pi / 2, 0.5, 0},
		{"run", Input{Forward: true, Run: true}, 0, 0, 0.8},
		{"crouch overrides run", Input{Forward: true, Run: true, Crouch: true}, 0, 0, 0.2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestController()
			c.Yaw = tc.yaw
			c.Tick(tc.in, open)
			if !near(c.X-5.5, tc.dx) || !near(c.Z-5.5, tc.dz) {
				t.Errorf("moved (%v, %v), want (%v, %v)", c.X-5.5, c.Z-5.5, tc.dx, tc.dz)
			}
		})
	}
}

func TestVelocityDamping(t *testing.T) {
	c := newTestController()
	c.Tick(Input{Forward: true}, open)
	c.Tick(Input{Forward: true}, open)
	// second tick carries 10% of the first
	if !near(c.Z, 5.5+0.5+0.55) {
		t.Errorf("z = %v, want %v", c.Z, 5.5+0.5+0.55)
	}
	c.Tick(Input{}, open)
	if !near(c.Z, 5.5+0.5+0.55+0.055) {
		t.Errorf("coasting z = %v", c.Z)
	}
}

func TestWallStopsMovement(t *testing.T) {
	c := newTestController()
	c.Tick(Input{Forward: true, Right: true}, collision.NewCollisionSystem(wallRow(6)))
	if c.Z != 5.5 {
		t.Errorf("walked into wall: z = %v", c.Z)
	}
	if !near(c.X, 6.0) {
		t.Errorf("x = %v, want slide to 6.0", c.X)
	}
	if c.vz != 0 {
		t.Errorf("blocked velocity not cleared: %v", c.vz)
	}
}

func TestTickUsesTheGivenCollisionSystem(t *testing.T) {
	cs := collision.NewCollisionSystem(openGrid{})
	c := newTestController()
	c.Tick(Input{Forward: true}, cs)
	if !near(c.Z, 6.0) {
		t.Fatalf("z = %v, want 6.0 on open floor", c.Z)
	}

	// the swapped grid must block the next step without a new system
	cs.UpdateGrid(wallRow(6))
	c.Reset(world.Point{X: 5.5, Z: 5.5})
	c.Tick(Input{Forward: true}, cs)
	if c.Z != 5.5 {
		t.Errorf("walked through the swapped-in wall: z = %v", c.Z)
	}
}

func TestJumpAndLand(t *testing.T) {
	c := newTestController()
	c.Tick(Input{Jump: true}, open)
	if !near(c.Y, 1.1) || !c.Jumping() {
		t.Fatalf("after jump y = %v jumping = %v", c.Y, c.Jumping())
	}

	c.Tick(Input{Jump: true}, open)
	if !near(c.Y, 2.1) {
		t.Fatalf("double jump changed arc: y = %v, want 2.1", c.Y)
	}

	for i := 0; i < 50 && c.Jumping(); i++ {
		c.Tick(Input{}, open)
	}
	if c.Jumping() || c.Y != 0 {
		t.Fatalf("did not land: y = %v", c.Y)
	}
}

func TestCrouch(t *testing.T) {
	c := newTestController()
	for i := 0; i < 5; i++ {
		c.Tick(Input{Crouch: true, Jump: true}, open)
	}
	if c.Y != -0.5 {
		t.Errorf("crouch height = %v, want -0.5", c.Y)
	}
	if c.Jumping() {
		t.Error("jumped while crouched")
	}
	if !c.Crouching() || c.Moving() {
		t.Errorf("crouching = %v moving = %v", c.Crouching(), c.Moving())
	}
}

func TestTurning(t *testing.T) {
	c := newTestController()
	c.Tick(Input{TurnRight: true}, open)
	if !near(c.Yaw, 0.0076) {
		t.Fatalf("yaw = %v, want 0.0076", c.Yaw)
	}
	c.Tick(Input{}, open)
	if !near(c.Yaw, 0.0076+0.0076*0.8) {
		t.Errorf("spin did not decay: yaw = %v", c.Yaw)
	}

	c.Reset(world.Point{X: 1, Z: 1})
	c.Tick(Input{MouseDX: 100}, open)
	if !near(c.Yaw, 0.5) {
		t.Errorf("mouse yaw = %v, want 0.5", c.Yaw)
	}
}

func TestPitchClamp(t *testing.T) {
	c := newTestController()
	c.Tick(Input{MouseDY: -40}, open)
	if c.Pitch != 40 {
		t.Errorf("pitch = %v, want 40", c.Pitch)
	}
	c.Tick(Input{MouseDY: -1000}, open)
	if c.Pitch != 150 {
		t.Errorf("pitch = %v, want clamp at 150", c.Pitch)
	}
	c.Tick(Input{MouseDY: 5000}, open)
	if c.Pitch != -150 {
		t.Errorf("pitch = %v, want clamp at -150", c.Pitch)
	}
}

func TestPoseAndReset(t *testing.T) {
	c := newTestController()
	c.Tick(Input{Forward: true, Jump: true, MouseDY: -3}, open)

	pose := c.Pose()
	if pose.X != c.X || pose.Z != c.Z || pose.Height != c.Y || pose.Yaw != c.Yaw || pose.Pitch != c.Pitch {
		t.Errorf("pose %+v does not match controller", pose)
	}

	c.Reset(world.Point{X: 2, Z: 3})
	if c.X != 2 || c.Z != 3 || c.Y != 0 || c.Pitch != 0 || c.Jumping() || c.vz != 0 {
		t.Errorf("reset left state behind: %+v", c)
	}
	if c.cfg.WalkSpeed != 0.5 || c.maxPitch != 150 {
		t.Error("reset dropped configuration")
	}
}
