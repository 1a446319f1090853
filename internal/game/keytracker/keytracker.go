// keytracker.go - edge-triggered key and mouse button state for Ebiten v2.8.8
// Provides IsKeyJustPressed / IsButtonJustPressed for one-shot actions
// such as snapshots, restarts and item pickup.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker tracks the previous state of a key.
type KeyStateTracker struct {
	prevPressed bool
}

// IsKeyJustPressed returns true if the key was not pressed last frame but is pressed this frame.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	return k.Edge(ebiten.IsKeyPressed(key))
}

// Edge records pressed and reports whether it went from released to pressed.
func (k *KeyStateTracker) Edge(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}

// ButtonStateTracker tracks the previous state of a mouse button.
type ButtonStateTracker struct {
	KeyStateTracker
}

// IsButtonJustPressed returns true if the button was not pressed last frame but is pressed this frame.
func (b *ButtonStateTracker) IsButtonJustPressed(button ebiten.MouseButton) bool {
	return b.Edge(ebiten.IsMouseButtonPressed(button))
}
