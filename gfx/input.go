package gfx

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/avoidance/game"
	"github.com/plus3/ooftn/ecs"
	"github.com/plus3/ooftn/ecs/debugui"
)

// InputSystem forwards the mouse to the session. A release of the left
// button is also delivered as a click.
type InputSystem struct {
	ImguiInputState ecs.Singleton[debugui.ImguiInputState]

	session *game.Session
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	mx, my := ebiten.CursorPosition()
	at := game.Point{X: float64(mx), Y: float64(my)}
	s.session.SetPointer(at)

	if s.ImguiInputState.Get().WantCaptureMouse {
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.session.OnPress(at)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.session.OnRelease(at)
		s.session.OnClick(at)
	}
}
