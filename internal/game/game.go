package game

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"mazecaster/internal/config"
	"mazecaster/internal/render"
	"mazecaster/internal/snapshot"
	"mazecaster/internal/texture"
	"mazecaster/internal/threading/monitoring"
)

// Game adapts a Session to ebiten's Update/Draw/Layout loop.
type Game struct {
	config   *config.Config
	session  *Session
	renderer *render.Renderer
	monitor  *monitoring.PerformanceMonitor
	input    *InputHandler
	pixels   []byte
	title    string

	perfDebugEnabled bool
	perfLowFpsSince  time.Time
	perfLastPerfLog  time.Time
}

// NewGame creates the ebiten game for session, drawing with textures.
func NewGame(cfg *config.Config, session *Session, textures *texture.Store, mouseLook bool) *Game {
	monitor := monitoring.NewPerformanceMonitor()
	renderer := render.NewRenderer(cfg, textures)
	renderer.SetMonitor(monitor)

	return &Game{
		config:           cfg,
		session:          session,
		renderer:         renderer,
		monitor:          monitor,
		input:            NewInputHandler(mouseLook),
		perfDebugEnabled: true,
	}
}

// Close releases the renderer's workers.
func (g *Game) Close() {
	g.renderer.Close()
}

// Update handles one tick of game logic
func (g *Game) Update() error {
	if g.input.RestartRequested() && g.session.Lost() {
		if err := g.session.Restart(); err != nil {
			return err
		}
		g.monitor.Reset()
	}

	if err := g.session.Tick(g.input.Poll()); err != nil {
		return err
	}

	g.updateTitle()
	g.maybeLogPerfDrop()
	return nil
}

// Draw renders the first-person view and uploads it to the screen
func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.renderer.Render(g.session.Scene())
	g.pixels = frame.RGBA(g.pixels)
	screen.WritePixels(g.pixels)

	if g.input.SnapshotRequested() {
		path := snapshot.Name(g.config.Game.SnapshotFolder, time.Now())
		if err := snapshot.SaveWebP(path, frame); err != nil {
			log.Printf("[Snapshot] %v", err)
		} else {
			log.Printf("[Snapshot] saved %s", path)
		}
	}
}

// Layout returns the render resolution; ebiten scales it to the window
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}

func (g *Game) updateTitle() {
	title := g.statusLine()
	if title != g.title {
		g.title = title
		ebiten.SetWindowTitle(title)
	}
}

func (g *Game) statusLine() string {
	s := g.session
	switch {
	case s.Lost():
		return fmt.Sprintf("%s - caught! score %d - press R", g.config.Display.WindowTitle, s.Score())
	case s.ExitOpen():
		return fmt.Sprintf("%s - level %d - exit open - score %d", g.config.Display.WindowTitle, s.Level(), s.Score())
	default:
		return fmt.Sprintf("%s - level %d - %d/%d items - score %d",
			g.config.Display.WindowTitle, s.Level(), s.Collected(), g.config.Game.ItemsRequired, s.Score())
	}
}
