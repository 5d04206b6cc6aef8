package game

import (
	"chosenoffset.com/weatherrun/internal/render"
	"chosenoffset.com/weatherrun/internal/world"
)

// ApplyInput maps this tick's key edges onto the character's velocity.
// Releases are handled before presses, so a release and a press of the
// arrow keys in the same tick leave the character moving.
// It reports whether Escape was pressed.
func ApplyInput(in render.InputManager, c *world.Character) (quit bool) {
	if in.IsKeyJustPressed(render.KeyEscape) {
		return true
	}

	if in.IsKeyJustReleased(render.KeyLeft) || in.IsKeyJustReleased(render.KeyRight) {
		c.Stop()
	}

	if in.IsKeyJustPressed(render.KeyRight) {
		c.MoveRight()
	}
	if in.IsKeyJustPressed(render.KeyLeft) {
		c.MoveLeft()
	}
	return false
}
