// Package render turns a tile grid, an entity snapshot and a camera pose into
// a color and depth buffer by screen-space ray casting.
package render

import (
	"mazecaster/internal/config"
	"mazecaster/internal/texture"
	"mazecaster/internal/threading/core"
	"mazecaster/internal/threading/monitoring"
	"mazecaster/internal/world"
)

// Scene is the read-only input of one frame. Callers must not mutate the
// grid or entity slices while Render runs.
type Scene struct {
	Grid     world.TileGrid
	Entities world.Snapshot
	Camera   Camera
}

// view caches the per-frame values every column needs.
type view struct {
	scene   *Scene
	pitch   int // camera pitch in whole rows
	bob     int // vertical offset from camera height
	horizon int // screen row of the horizon for walls and sprites
}

// Renderer owns the frame buffers and produces one frame per Render call.
type Renderer struct {
	width, height int
	render        config.RenderConfig
	sprites       config.SpriteConfig
	textures      *texture.Store
	frame         *Frame
	pool          *core.WorkerPool
	monitor       *monitoring.PerformanceMonitor
}

// NewRenderer creates a renderer sized to the configured screen.
func NewRenderer(cfg *config.Config, textures *texture.Store) *Renderer {
	r := &Renderer{
		width:    cfg.GetScreenWidth(),
		height:   cfg.GetScreenHeight(),
		render:   cfg.Render,
		sprites:  cfg.Sprites,
		textures: textures,
		frame:    NewFrame(cfg.GetScreenWidth(), cfg.GetScreenHeight()),
	}
	if cfg.Render.Workers > 1 {
		r.pool = core.NewWorkerPool(cfg.Render.Workers)
		r.pool.Start()
	}
	return r
}

// SetMonitor attaches a monitor that receives per-pass timings.
func (r *Renderer) SetMonitor(m *monitoring.PerformanceMonitor) {
	r.monitor = m
}

// Close stops the column worker pool, if any.
func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.Stop()
		r.pool = nil
	}
}

// Size returns the frame dimensions.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Frame returns the most recently rendered frame.
func (r *Renderer) Frame() *Frame {
	return r.frame
}

// Render draws one frame: clear, floor and ceiling, walls with sprites, then
// fog. The returned frame is owned by the renderer and is overwritten by the
// next call.
func (r *Renderer) Render(scene Scene) *Frame {
	var frameTimer *monitoring.FrameTimer
	if r.monitor != nil {
		frameTimer = r.monitor.StartFrame()
	}

	v := r.newView(&scene)
	r.frame.clear()

	r.pass(monitoring.PassFloor, func() {
		r.forEach(r.width, func(x int) { r.floorColumn(v, x) })
	})
	r.pass(monitoring.PassWalls, func() {
		r.forEach(r.width, func(x int) { r.wallColumn(v, x) })
	})
	r.pass(monitoring.PassFog, func() {
		r.forEach(r.height, r.fogRow)
	})

	if frameTimer != nil {
		frameTimer.EndFrame()
	}
	return r.frame
}

func (r *Renderer) newView(scene *Scene) *view {
	pitch := int(scene.Camera.Pitch)
	bob := int(scene.Camera.Height * r.render.BobScale)
	return &view{
		scene:   scene,
		pitch:   pitch,
		bob:     bob,
		horizon: r.height/2 + pitch + bob,
	}
}

func (r *Renderer) pass(p monitoring.Pass, fn func()) {
	if r.monitor == nil {
		fn()
		return
	}
	timer := r.monitor.StartPass(p)
	fn()
	timer.End()
}

// forEach runs fn for 0..n-1. Every job writes a disjoint set of pixels, so
// the pooled and sequential paths produce identical frames.
func (r *Renderer) forEach(n int, fn func(int)) {
	if r.pool != nil {
		r.pool.ParallelFor(0, n, fn)
		return
	}
	for i := 0; i < n; i++ {
		fn(i)
	}
}
