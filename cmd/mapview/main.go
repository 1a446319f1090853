// Command mapview shows a level from above: the expanded wall lines, spawn,
// exit, enemies and items, and the fan of wall-caster rays from the spawn.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"

	"mazecaster/internal/config"
	"mazecaster/internal/render"
	"mazecaster/internal/texture"
	"mazecaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 260
	rayCount     = 64
	turnStep     = math.Pi / 32
)

type viewer struct {
	level    *world.Level
	mapPath  string
	renderer *render.Renderer
	camera   render.Camera
	showRays bool
}

func main() {
	ensureRuntimeCWD()

	configPath := flag.String("config", "config.yaml", "path to the YAML configuration")
	mapPath := flag.String("map", "", "map file (overrides level.map_file)")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)
	if *mapPath != "" {
		cfg.Level.MapFile = *mapPath
	}

	level, err := world.LoadLevel(cfg.Level.MapFile, cfg.Level.Scale)
	if err != nil {
		log.Fatal(err)
	}

	// Only the wall caster is used, so the frame is a single row.
	rayCfg := *cfg
	rayCfg.Display.ScreenWidth = rayCount
	rayCfg.Display.ScreenHeight = 1

	v := &viewer{
		level:    level,
		mapPath:  cfg.Level.MapFile,
		renderer: render.NewRenderer(&rayCfg, texture.NewStore()),
		camera:   render.Camera{X: level.Spawn.X, Z: level.Spawn.Z},
		showRays: true,
	}
	defer v.renderer.Close()

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Maze Caster Map Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.showRays = !v.showRays
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		v.camera.Yaw -= turnStep / 4
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		v.camera.Yaw += turnStep / 4
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if p, ok := v.worldAt(ebiten.CursorPosition()); ok {
			v.camera.X, v.camera.Z = p.X, p.Z
		}
	}
	return nil
}

// layout returns the map panel origin and pixels per world unit.
func (v *viewer) layout() (int, int, float64) {
	w, h := v.level.Grid.Size()
	return fitPanel(windowWidth-sidebarWidth-48, windowHeight-32, w, h)
}

// fitPanel scales a w×h world into an areaW×areaH panel, centred, offset by padding.
func fitPanel(areaW, areaH, w, h int) (int, int, float64) {
	if w <= 0 || h <= 0 {
		return 16, 16, 1
	}
	scale := math.Min(float64(areaW)/float64(w), float64(areaH)/float64(h))
	scale = math.Max(scale, 0.5)
	originX := 16 + (areaW-int(float64(w)*scale))/2
	originY := 16 + (areaH-int(float64(h)*scale))/2
	return originX, originY, scale
}

func (v *viewer) worldAt(sx, sy int) (world.Point, bool) {
	originX, originY, scale := v.layout()
	p := world.Point{X: float64(sx-originX) / scale, Z: float64(sy-originY) / scale}
	w, h := v.level.Grid.Size()
	if p.X < 0 || p.Z < 0 || p.X >= float64(w) || p.Z >= float64(h) {
		return p, false
	}
	return p, true
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	originX, originY, scale := v.layout()
	w, h := v.level.Grid.Size()
	drawFilledRect(screen, float64(originX), float64(originY), float64(w)*scale, float64(h)*scale, color.RGBA{20, 20, 35, 255})

	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			tile := v.level.Grid.TileAt(x, z)
			if tile == world.TileEmpty {
				continue
			}
			drawFilledRect(screen, float64(originX)+float64(x)*scale, float64(originY)+float64(z)*scale,
				math.Max(scale, 1), math.Max(scale, 1), tileColor(tile))
		}
	}

	toScreen := func(p world.Point) (float32, float32) {
		return float32(float64(originX) + p.X*scale), float32(float64(originY) + p.Z*scale)
	}

	if v.showRays {
		cx, cz := toScreen(world.Point{X: v.camera.X, Z: v.camera.Z})
		for col := 0; col < rayCount; col++ {
			hit, ok := v.renderer.CastColumn(v.level.Grid, v.camera, col)
			if !ok {
				continue
			}
			end := world.Point{X: v.camera.X + hit.RayX*hit.Distance, Z: v.camera.Z + hit.RayZ*hit.Distance}
			ex, ez := toScreen(end)
			vector.StrokeLine(screen, cx, cz, ex, ez, 1, color.RGBA{255, 230, 120, 120}, true)
		}
	}

	markerRadius := float32(math.Max(scale*0.5, 3))
	for _, p := range v.level.Entities.Items {
		x, z := toScreen(p)
		vector.DrawFilledCircle(screen, x, z, markerRadius*0.6, color.RGBA{230, 184, 0, 255}, true)
	}
	for _, p := range v.level.Entities.Enemies {
		x, z := toScreen(p)
		vector.DrawFilledCircle(screen, x, z, markerRadius, color.RGBA{230, 80, 80, 255}, true)
	}
	if v.level.HasExit {
		x, z := toScreen(v.level.Exit)
		vector.StrokeCircle(screen, x, z, markerRadius*1.5, 2, color.RGBA{80, 220, 120, 255}, true)
	}
	sx, sz := toScreen(v.level.Spawn)
	vector.DrawFilledCircle(screen, sx, sz, markerRadius, color.RGBA{50, 200, 255, 255}, true)
	vector.StrokeCircle(screen, sx, sz, markerRadius, 1, color.RGBA{255, 255, 255, 255}, true)

	v.drawSidebar(screen, windowWidth-sidebarWidth-16, 16)
}

func (v *viewer) drawSidebar(screen *ebiten.Image, x, y int) {
	drawFilledRect(screen, float64(x), float64(y), sidebarWidth, windowHeight-32, color.RGBA{18, 18, 26, 255})

	cw, ch := v.level.Grid.CellSize()
	w, h := v.level.Grid.Size()
	lines := []string{
		filepath.Base(v.mapPath),
		"",
		fmt.Sprintf("Cells: %dx%d", cw, ch),
		fmt.Sprintf("World: %dx%d (scale %d)", w, h, v.level.Grid.Scale()),
		fmt.Sprintf("Enemies: %d", len(v.level.Entities.Enemies)),
		fmt.Sprintf("Items: %d", len(v.level.Entities.Items)),
		fmt.Sprintf("Exit: %v", v.level.HasExit),
		"",
		fmt.Sprintf("Camera: %.1f, %.1f", v.camera.X, v.camera.Z),
		fmt.Sprintf("Yaw: %.2f", v.camera.Yaw),
		v.cursorCell(),
		"",
		"Left/Right (or A/D) turn",
		"Click to move the camera",
		"Tab toggles rays, Esc quits",
		"",
		"Cyan: spawn  Red: enemies",
		"Gold: items  Green: exit",
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x+12, y+12+i*16)
	}
}

// cursorCell describes the coarse map cell under the mouse.
func (v *viewer) cursorCell() string {
	p, ok := v.worldAt(ebiten.CursorPosition())
	if !ok {
		return "Cell: -"
	}
	scale := v.level.Grid.Scale()
	cx, cz := int(p.X)/scale, int(p.Z)/scale
	return fmt.Sprintf("Cell: %d, %d %s", cx, cz, cellName(v.level.Grid.CellAt(cx, cz)))
}

func cellName(cell int) string {
	switch cell {
	case world.TileWall:
		return "wall"
	case world.TileExit:
		return "exit"
	default:
		return "floor"
	}
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func tileColor(tile int) color.RGBA {
	switch tile {
	case world.TileWall:
		return color.RGBA{150, 150, 165, 255}
	case world.TileExit:
		return color.RGBA{80, 220, 120, 255}
	default:
		return color.RGBA{20, 20, 35, 255}
	}
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h float64, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(exe)
	_ = os.Chdir(execDir)
}
