package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"mazecaster/internal/game/keytracker"
	"mazecaster/internal/player"
)

// Movement bindings. Each pair of opposite actions has matching keys.
var (
	forwardKeys     = []ebiten.Key{ebiten.KeyW, ebiten.KeyUp}
	backKeys        = []ebiten.Key{ebiten.KeyS, ebiten.KeyDown}
	strafeLeftKeys  = []ebiten.Key{ebiten.KeyA}
	strafeRightKeys = []ebiten.Key{ebiten.KeyD}
	turnLeftKeys    = []ebiten.Key{ebiten.KeyLeft}
	turnRightKeys   = []ebiten.Key{ebiten.KeyRight}
)

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// InputHandler turns ebiten key and mouse state into player input.
type InputHandler struct {
	interactKey    keytracker.KeyStateTracker
	interactButton keytracker.ButtonStateTracker
	snapshotKey    keytracker.KeyStateTracker
	restartKey     keytracker.KeyStateTracker

	lastCursorX, lastCursorY int
	cursorSeen               bool
	mouseLook                bool
}

// NewInputHandler creates a handler. With mouseLook the cursor movement
// since the last update turns the camera.
func NewInputHandler(mouseLook bool) *InputHandler {
	return &InputHandler{mouseLook: mouseLook}
}

// Poll reads the current input state.
func (ih *InputHandler) Poll() player.Input {
	in := player.Input{
		Forward:   anyPressed(forwardKeys),
		Back:      anyPressed(backKeys),
		Left:      anyPressed(strafeLeftKeys),
		Right:     anyPressed(strafeRightKeys),
		TurnLeft:  anyPressed(turnLeftKeys),
		TurnRight: anyPressed(turnRightKeys),
		Jump:      ebiten.IsKeyPressed(ebiten.KeySpace),
		Crouch:    ebiten.IsKeyPressed(ebiten.KeyControl),
		Run:       ebiten.IsKeyPressed(ebiten.KeyShift),
	}

	interactKey := ih.interactKey.IsKeyJustPressed(ebiten.KeyE)
	interactButton := ih.interactButton.IsButtonJustPressed(ebiten.MouseButtonRight)
	in.Interact = interactKey || interactButton

	if ih.mouseLook {
		x, y := ebiten.CursorPosition()
		if ih.cursorSeen {
			in.MouseDX = float64(x - ih.lastCursorX)
			in.MouseDY = float64(y - ih.lastCursorY)
		}
		ih.lastCursorX, ih.lastCursorY = x, y
		ih.cursorSeen = true
	}
	return in
}

// SnapshotRequested reports a fresh F12 press.
func (ih *InputHandler) SnapshotRequested() bool {
	return ih.snapshotKey.IsKeyJustPressed(ebiten.KeyF12)
}

// RestartRequested reports a fresh R press.
func (ih *InputHandler) RestartRequested() bool {
	return ih.restartKey.IsKeyJustPressed(ebiten.KeyR)
}
