// Package player moves the first-person camera through the maze.
package player

import (
	"math"

	"mazecaster/internal/collision"
	"mazecaster/internal/config"
	"mazecaster/internal/mathutil"
	"mazecaster/internal/render"
	"mazecaster/internal/world"
)

const (
	velocityDamping = 0.1
	spinDecay       = 0.8
)

// Input is the player's intent for one tick.
type Input struct {
	Forward, Back bool
	Left, Right   bool // strafe
	TurnLeft      bool
	TurnRight     bool
	Jump          bool
	Crouch        bool
	Run           bool
	Interact      bool
	MouseDX       float64 // pixels since the last tick
	MouseDY       float64
}

// Moving reports whether any walk or strafe key is held.
func (in Input) Moving() bool {
	return in.Forward || in.Back || in.Left || in.Right
}

// Controller integrates movement, turning, jumping and crouching.
type Controller struct {
	cfg      config.ControllerConfig
	maxPitch float64

	X, Z   float64
	Y      float64 // height above standing eye level
	Yaw    float64
	Pitch  float64
	vx, vz float64
	vy     float64
	spin   float64

	jumping   bool
	moving    bool
	crouching bool
}

// NewController places a controller at spawn. Pitch is clamped to ±maxPitch rows.
func NewController(cfg config.ControllerConfig, maxPitch float64, spawn world.Point) *Controller {
	c := &Controller{cfg: cfg, maxPitch: maxPitch}
	c.Reset(spawn)
	return c
}

// Reset puts the controller back at spawn facing +Z, at rest.
func (c *Controller) Reset(spawn world.Point) {
	*c = Controller{cfg: c.cfg, maxPitch: c.maxPitch, X: spawn.X, Z: spawn.Z}
}

// Tick advances the controller by one update.
func (c *Controller) Tick(in Input, cs *collision.CollisionSystem) {
	speed := c.cfg.WalkSpeed
	ground := 0.0
	run := in.Run

	c.crouching = in.Crouch
	c.moving = in.Moving()

	if in.Crouch {
		speed = c.cfg.CrouchSpeed
		run = false
		ground = c.cfg.CrouchLevel
	} else if run {
		speed = c.cfg.RunSpeed
	}

	var strafe, walk float64
	if in.Forward {
		walk++
	}
	if in.Back {
		walk--
	}
	if in.Left {
		strafe--
	}
	if in.Right {
		strafe++
	}
	if in.TurnLeft {
		c.spin -= c.cfg.RotationSpeed
	}
	if in.TurnRight {
		c.spin += c.cfg.RotationSpeed
	}

	if in.Jump && !c.jumping && !in.Crouch {
		c.vy = c.cfg.JumpImpulse
		c.jumping = true
	}
	c.vy -= c.cfg.Gravity
	c.Y += c.vy
	if c.Y <= ground {
		c.Y = ground
		c.vy = 0
		c.jumping = false
	}

	sin, cos := math.Sincos(c.Yaw)
	c.vx += (strafe*cos + walk*sin) * speed
	c.vz += (walk*cos - strafe*sin) * speed

	box := collision.NewBoundingBox(c.X, c.Z, c.cfg.BodyRadius)
	res := cs.Move(box, c.vx, c.vz)
	c.X, c.Z = res.X, res.Z
	if res.BlockedX {
		c.vx = 0
	}
	if res.BlockedZ {
		c.vz = 0
	}

	c.vx *= velocityDamping
	c.vz *= velocityDamping

	c.Yaw += c.spin + in.MouseDX*c.cfg.MouseSensitivity
	c.spin *= spinDecay

	c.Pitch = mathutil.Clamp(c.Pitch-in.MouseDY*c.cfg.PitchSensitivity, -c.maxPitch, c.maxPitch)
}

// Pose returns the camera the renderer draws from.
func (c *Controller) Pose() render.Camera {
	return render.Camera{X: c.X, Z: c.Z, Height: c.Y, Yaw: c.Yaw, Pitch: c.Pitch}
}

// Position returns the controller's floor position.
func (c *Controller) Position() world.Point {
	return world.Point{X: c.X, Z: c.Z}
}

// Moving reports whether the last tick had movement input.
func (c *Controller) Moving() bool { return c.moving }

// Crouching reports whether the last tick was crouched.
func (c *Controller) Crouching() bool { return c.crouching }

// Jumping reports whether the controller is airborne.
func (c *Controller) Jumping() bool { return c.jumping }
