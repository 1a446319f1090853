// Command mazeterm plays the maze in a terminal. Each text cell shows two
// frame rows as an upper half block: foreground is the upper pixel and
// background the lower one.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"mazecaster/internal/config"
	"mazecaster/internal/game"
	"mazecaster/internal/player"
	"mazecaster/internal/render"
	"mazecaster/internal/snapshot"
	"mazecaster/internal/texture"
)

const tickRate = time.Second / 30

// action is a one-shot command from the keyboard.
type action int

const (
	actionNone action = iota
	actionQuit
	actionRestart
	actionSnapshot
)

// keyInput maps one key event to movement and a one-shot action. Terminals
// report presses only, so every press counts as held for a single tick.
func keyInput(ev *tcell.EventKey) (player.Input, action) {
	var in player.Input
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return in, actionQuit
	case tcell.KeyF12:
		return in, actionSnapshot
	case tcell.KeyUp:
		in.Forward = true
	case tcell.KeyDown:
		in.Back = true
	case tcell.KeyLeft:
		in.TurnLeft = true
	case tcell.KeyRight:
		in.TurnRight = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w':
			in.Forward = true
		case 'W':
			in.Forward, in.Run = true, true
		case 's':
			in.Back = true
		case 'a':
			in.Left = true
		case 'd':
			in.Right = true
		case 'q':
			in.TurnLeft = true
		case 'e':
			in.Interact = true
		case 'c':
			in.Crouch = true
		case ' ':
			in.Jump = true
		case 'r':
			return in, actionRestart
		case 'p':
			return in, actionSnapshot
		}
	}
	return in, actionNone
}

// merge ORs two inputs so presses between ticks are not lost.
func merge(a, b player.Input) player.Input {
	return player.Input{
		Forward:   a.Forward || b.Forward,
		Back:      a.Back || b.Back,
		Left:      a.Left || b.Left,
		Right:     a.Right || b.Right,
		TurnLeft:  a.TurnLeft || b.TurnLeft,
		TurnRight: a.TurnRight || b.TurnRight,
		Jump:      a.Jump || b.Jump,
		Crouch:    a.Crouch || b.Crouch,
		Run:       a.Run || b.Run,
		Interact:  a.Interact || b.Interact,
		MouseDX:   a.MouseDX + b.MouseDX,
		MouseDY:   a.MouseDY + b.MouseDY,
	}
}

func rgb(c uint32) tcell.Color {
	return tcell.NewRGBColor(int32(c>>16&0xFF), int32(c>>8&0xFF), int32(c&0xFF))
}

// cellStyle returns the style for text row of the frame.
func cellStyle(frame *render.Frame, x, row int) tcell.Style {
	top := frame.Pixel(x, row*2)
	bottom := top
	if row*2+1 < frame.Height {
		bottom = frame.Pixel(x, row*2+1)
	}
	return tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
}

func draw(screen tcell.Screen, frame *render.Frame) {
	rows := (frame.Height + 1) / 2
	for row := 0; row < rows; row++ {
		for x := 0; x < frame.Width; x++ {
			screen.SetContent(x, row, '▀', nil, cellStyle(frame, x, row))
		}
	}
	screen.Show()
}

// newRenderer sizes a renderer to the terminal.
func newRenderer(cfg *config.Config, textures *texture.Store, cols, rows int) *render.Renderer {
	sized := *cfg
	sized.Display.ScreenWidth = max(cols, 1)
	sized.Display.ScreenHeight = max(rows*2, 2)
	return render.NewRenderer(&sized, textures)
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration")
	mapPath := flag.String("map", "", "map file (overrides level.map_file)")
	logPath := flag.String("log", "mazeterm.log", "log file; the terminal is busy drawing")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	cfg := config.MustLoadConfig(*configPath)
	if *mapPath != "" {
		cfg.Level.MapFile = *mapPath
	}

	textures := texture.NewStore()
	textures.LoadAll(cfg.Textures)

	session, err := game.NewSession(cfg, game.FileLevel(cfg.Level.MapFile, cfg.Level.Scale))
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to start tcell: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init tcell.Screen: %v", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.Clear()

	cols, rows := screen.Size()
	renderer := newRenderer(cfg, textures, cols, rows)
	defer func() { renderer.Close() }()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	var pending player.Input
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				cols, rows = screen.Size()
				renderer.Close()
				renderer = newRenderer(cfg, textures, cols, rows)
			case *tcell.EventKey:
				in, act := keyInput(ev)
				pending = merge(pending, in)
				switch act {
				case actionQuit:
					return
				case actionRestart:
					if session.Lost() {
						if err := session.Restart(); err != nil {
							log.Printf("[Game] restart: %v", err)
							return
						}
					}
				case actionSnapshot:
					path := snapshot.Name(cfg.Game.SnapshotFolder, time.Now())
					if err := snapshot.SaveWebP(path, renderer.Frame()); err != nil {
						log.Printf("[Snapshot] %v", err)
					} else {
						log.Printf("[Snapshot] saved %s", path)
					}
				}
			}
		case <-ticker.C:
			if err := session.Tick(pending); err != nil {
				log.Printf("[Game] %v", err)
				return
			}
			pending = player.Input{}
			draw(screen, renderer.Render(session.Scene()))
		}
	}
}
