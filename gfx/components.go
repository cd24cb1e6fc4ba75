package gfx

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ooftn/ecs"
	"github.com/plus3/ooftn/ecs/debugui"
	debugui_ebiten "github.com/plus3/ooftn/ecs/debugui/ebiten"
)

// Screen is the image the render scheduler draws into this frame.
type Screen struct {
	*ebiten.Image
}

var (
	backgroundColor = color.RGBA{200, 200, 200, 255}
	enemyFill       = color.RGBA{255, 255, 255, 255}
	enemyStroke     = color.RGBA{0, 0, 0, 255}
	pointerColor    = color.RGBA{40, 40, 40, 255}
	deathColor      = color.RGBA{200, 30, 30, 255}
	dialogFill      = color.RGBA{50, 50, 50, 235}

	powerUpColors = [...]color.RGBA{
		{250, 210, 40, 255},
		{150, 60, 200, 255},
	}
)

func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * alpha)}
}

// RegisterComponents registers the component types the frontend spawns into
// the session storage.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Screen](registry)
	ecs.RegisterComponent[debugui_ebiten.ImguiBackend](registry)
	ecs.RegisterComponent[debugui.ImguiItem](registry)
	ecs.RegisterComponent[debugui.ImguiInputState](registry)
	debugui.RegisterDebugUIComponents(registry)
}
