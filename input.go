package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/outbreak/ecs/component"
)

// readInput samples keyboard and the first gamepad into the player's input.
// Jump and Throw are held states; the control system detects the press edge.
func readInput() component.Input {
	in := component.Input{
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight),
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		Jump:  ebiten.IsKeyPressed(ebiten.KeySpace),
		Throw: ebiten.IsKeyPressed(ebiten.KeyJ) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}

	ids := ebiten.GamepadIDs()
	if len(ids) == 0 {
		return in
	}
	gid := ids[0]

	leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
	leftY := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
	in.Left = in.Left || leftX < -0.3
	in.Right = in.Right || leftX > 0.3
	in.Up = in.Up || leftY < -0.5
	in.Down = in.Down || leftY > 0.5
	in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
	in.Throw = in.Throw || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
	return in
}
