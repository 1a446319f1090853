// Package game runs a maze session and presents it in an ebiten window.
package game

import (
	"fmt"
	"log"
	"math"

	"mazecaster/internal/collision"
	"mazecaster/internal/config"
	"mazecaster/internal/mathutil"
	"mazecaster/internal/player"
	"mazecaster/internal/render"
	"mazecaster/internal/world"
)

// LevelSource produces a fresh level each time a level starts.
type LevelSource func() (*world.Level, error)

// FileLevel loads the level from a map file on every start.
func FileLevel(path string, scale int) LevelSource {
	return func() (*world.Level, error) {
		return world.LoadLevel(path, scale)
	}
}

// Session is one run through the maze: the player, the enemies and the
// items still on the floor.
type Session struct {
	cfg    *config.Config
	source LevelSource

	level     *world.Level
	collision *collision.CollisionSystem
	player    *player.Controller
	enemies   []*Enemy
	floor     world.Snapshot

	collected int
	score     int
	exitOpen  bool
	lost      bool
	ticks     int
	levels    int
}

// NewSession loads the first level.
func NewSession(cfg *config.Config, source LevelSource) (*Session, error) {
	s := &Session{cfg: cfg, source: source}
	if err := s.startLevel(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) startLevel() error {
	level, err := s.source()
	if err != nil {
		return fmt.Errorf("start level: %w", err)
	}

	s.level = level
	if s.collision == nil {
		s.collision = collision.NewCollisionSystem(level.Grid)
	} else {
		s.collision.UpdateGrid(level.Grid)
	}
	maxPitch := float64(s.cfg.GetScreenHeight()) / 2
	if s.player == nil {
		s.player = player.NewController(s.cfg.Controller, maxPitch, level.Spawn)
	} else {
		s.player.Reset(level.Spawn)
	}

	s.enemies = s.enemies[:0]
	for _, p := range level.Entities.Enemies {
		s.enemies = append(s.enemies, NewEnemy(p))
	}
	s.floor = world.Snapshot{Items: level.Entities.Items}.Clone()
	s.collected = 0
	s.exitOpen = false
	s.levels++

	if n := len(s.floor.Items); n < s.cfg.Game.ItemsRequired {
		log.Printf("[Level] only %d items on the map, exit needs %d", n, s.cfg.Game.ItemsRequired)
	}
	return nil
}

// Restart begins a new run after a loss. The score resets.
func (s *Session) Restart() error {
	s.lost = false
	s.score = 0
	s.levels = 0
	return s.startLevel()
}

// Tick advances the session by one update.
func (s *Session) Tick(in player.Input) error {
	if s.lost {
		return nil
	}
	s.ticks++

	s.player.Tick(in, s.collision)
	pos := s.player.Position()
	body := collision.NewBoundingBox(pos.X, pos.Z, s.cfg.Controller.BodyRadius)

	heard := s.player.Moving() && !s.player.Crouching()
	for _, e := range s.enemies {
		e.Update(pos, heard, s.collision, s.cfg.Game, s.cfg.Controller.BodyRadius)
		if body.Distance(collision.NewBoundingBox(e.X, e.Z, s.cfg.Controller.BodyRadius)) < s.cfg.Game.CatchDistance {
			s.lost = true
			log.Printf("[Game] caught after %d ticks with %d items", s.ticks, s.score)
		}
	}

	if s.exitOpen && s.level.HasExit {
		if mathutil.Distance(pos.X, pos.Z, s.level.Exit.X, s.level.Exit.Z) < s.cfg.Game.ExitReach {
			log.Printf("[Game] level %d cleared", s.levels)
			if err := s.startLevel(); err != nil {
				return err
			}
		}
	}

	if in.Interact {
		s.interact()
	}
	return nil
}

// interact picks up the first item within reach whose centre lies close to
// the crosshair line.
func (s *Session) interact() {
	pos := s.player.Position()
	dirX, dirZ := math.Sincos(s.player.Yaw)

	for i, item := range s.floor.Items {
		vx := item.X - pos.X
		vz := item.Z - pos.Z
		if mathutil.Distance(pos.X, pos.Z, item.X, item.Z) >= s.cfg.Game.PickupReach {
			continue
		}
		if vx*dirX+vz*dirZ < 0 {
			continue
		}
		if math.Abs(vx*dirZ-vz*dirX) >= s.cfg.Game.PickupWidth {
			continue
		}

		s.floor.RemoveItem(i)
		s.score++
		s.collected++
		if s.collected >= s.cfg.Game.ItemsRequired && !s.exitOpen {
			s.level.Grid.OpenExit()
			s.exitOpen = true
			log.Printf("[Game] exit open")
		}
		return
	}
}

// Scene returns the renderer input for the current state. The entity lists
// are copies, so the session may keep updating while a frame is drawn.
func (s *Session) Scene() render.Scene {
	snap := s.floor.Clone()
	snap.Enemies = make([]world.Point, len(s.enemies))
	for i, e := range s.enemies {
		snap.Enemies[i] = e.Position()
	}
	return render.Scene{
		Grid:     s.level.Grid,
		Entities: snap,
		Camera:   s.player.Pose(),
	}
}

// Lost reports whether an enemy caught the player.
func (s *Session) Lost() bool { return s.lost }

// ExitOpen reports whether enough items were collected to leave.
func (s *Session) ExitOpen() bool { return s.exitOpen }

// Score is the number of items collected this run.
func (s *Session) Score() int { return s.score }

// Collected is the number of items collected on the current level.
func (s *Session) Collected() int { return s.collected }

// ItemsLeft is the number of items still on the floor.
func (s *Session) ItemsLeft() int { return len(s.floor.Items) }

// Level returns the number of levels started this run, counting from 1.
func (s *Session) Level() int { return s.levels }

// Player exposes the controller.
func (s *Session) Player() *player.Controller { return s.player }

// Enemies exposes the enemies.
func (s *Session) Enemies() []*Enemy { return s.enemies }
