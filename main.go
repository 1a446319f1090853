package main

import (
	"flag"
	"log"

	"mazecaster/internal/config"
	"mazecaster/internal/game"
	"mazecaster/internal/render"
	"mazecaster/internal/snapshot"
	"mazecaster/internal/texture"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration")
	mapPath := flag.String("map", "", "map file (overrides level.map_file)")
	snapshotPath := flag.String("snapshot", "", "render one frame from the spawn point to this WebP file and exit")
	mouseLook := flag.Bool("mouselook", true, "capture the cursor and turn with the mouse")
	flag.Parse()

	// Load configuration
	cfg := config.MustLoadConfig(*configPath)
	if *mapPath != "" {
		cfg.Level.MapFile = *mapPath
	}

	// Load textures; missing files fall back to the placeholder
	textures := texture.NewStore()
	textures.LoadAll(cfg.Textures)

	session, err := game.NewSession(cfg, game.FileLevel(cfg.Level.MapFile, cfg.Level.Scale))
	if err != nil {
		log.Fatal(err)
	}

	if *snapshotPath != "" {
		renderer := render.NewRenderer(cfg, textures)
		defer renderer.Close()
		frame := renderer.Render(session.Scene())
		if err := snapshot.SaveWebP(*snapshotPath, frame); err != nil {
			log.Fatal(err)
		}
		log.Printf("[Snapshot] saved %s", *snapshotPath)
		return
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetWindowSize())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if *mouseLook {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}

	g := game.NewGame(cfg, session, textures, *mouseLook)
	defer g.Close()
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
