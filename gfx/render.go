package gfx

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/avoidance/game"
	"github.com/plus3/avoidance/hud"
	"github.com/plus3/ooftn/ecs"
)

const (
	glyphWidth  = 6
	glyphHeight = 16
	hudMargin   = 10
)

// RenderSystem draws the session into the Screen singleton. It only reads
// game state.
type RenderSystem struct {
	Screen ecs.Singleton[Screen]
	State  ecs.Singleton[game.GameState]
	Player ecs.Singleton[game.Player]
	Input  ecs.Singleton[game.Input]
	Config ecs.Singleton[game.Config]

	Enemies ecs.Query[struct {
		*game.Position
		*game.Enemy
		*game.EchoTrail
	}]
	PowerUps ecs.Query[struct {
		*game.Position
		*game.PowerUp
	}]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get().Image
	if screen == nil {
		return
	}
	screen.Fill(backgroundColor)

	state := s.State.Get()
	player := s.Player.Get()
	cfg := s.Config.Get()
	mode := game.ModeOf(state, player)

	if mode != game.ModeIntro {
		s.drawEnemies(screen, hud.EnemyAlpha(*state, cfg.FadeFrames))
		s.drawPowerUps(screen, cfg)
		s.drawPointer(screen, player)
		drawStatus(screen, cfg.Width, hud.Status(*state))
	}

	if text, ok := hud.Dialog(mode); ok {
		drawDialog(screen, hud.DialogBox(cfg.Width, cfg.Height), text)
	}
}

func (s *RenderSystem) drawEnemies(screen *ebiten.Image, alpha float64) {
	for e := range s.Enemies.Iter() {
		n := len(e.EchoTrail.Points)
		for i, p := range e.EchoTrail.Points {
			a := hud.TrailAlpha(i, n) * alpha
			vector.StrokeCircle(screen, float32(p.X), float32(p.Y), float32(e.Enemy.Size/2), 1, withAlpha(enemyStroke, a), true)
		}

		x, y, r := float32(e.Position.X), float32(e.Position.Y), float32(e.Enemy.Size/2)
		vector.DrawFilledCircle(screen, x, y, r, withAlpha(enemyFill, alpha), true)
		vector.StrokeCircle(screen, x, y, r, 2, withAlpha(enemyStroke, alpha), true)
	}
}

func (s *RenderSystem) drawPowerUps(screen *ebiten.Image, cfg *game.Config) {
	for p := range s.PowerUps.Iter() {
		c := powerUpColors[p.Kind]
		x, y := float32(p.Position.X), float32(p.Position.Y)

		switch p.Phase {
		case game.PhaseIdle, game.PhaseHeld:
			vector.DrawFilledCircle(screen, x, y, float32(p.Size/2), c, true)
			vector.StrokeCircle(screen, x, y, float32(p.Size/2), 2, enemyStroke, true)

		case game.PhaseArmed:
			progress := hud.FuseProgress(*p.PowerUp, cfg.PurpleFuse)
			r := float32(cfg.PowerUpSize/2 + progress*cfg.PowerUpSize)
			vector.StrokeCircle(screen, x, y, r, 2, c, true)
			vector.StrokeLine(screen, x-r, y, x+r, y, 1, c, true)
			vector.StrokeLine(screen, x, y-r, x, y+r, 1, c, true)

		case game.PhaseExploding:
			vector.DrawFilledCircle(screen, x, y, float32(p.Size/2), withAlpha(c, 0.45), true)
			vector.StrokeCircle(screen, x, y, float32(p.Size/2), 2, c, true)
		}
	}
}

func (s *RenderSystem) drawPointer(screen *ebiten.Image, player *game.Player) {
	if player.DeathLocation != nil {
		at := player.DeathLocation
		r := float32(math.Max(player.Size, 4))
		vector.DrawFilledCircle(screen, float32(at.X), float32(at.Y), r, deathColor, true)
		return
	}
	if !player.Visible {
		return
	}
	at := s.Input.Get().Pointer
	vector.StrokeCircle(screen, float32(at.X), float32(at.Y), float32(player.Size/2), 2, pointerColor, true)
}

func drawStatus(screen *ebiten.Image, width float64, lines []string) {
	for i, line := range lines {
		x := int(width) - hudMargin - len(line)*glyphWidth
		ebitenutil.DebugPrintAt(screen, line, x, hudMargin+i*glyphHeight)
	}
}

func drawDialog(screen *ebiten.Image, box hud.Rect, text string) {
	x, y, w, h := float32(box.X), float32(box.Y), float32(box.W), float32(box.H)
	vector.DrawFilledRect(screen, x, y, w, h, dialogFill, false)
	vector.StrokeRect(screen, x, y, w, h, 2, enemyStroke, false)

	cx, cy := box.Center()
	ebitenutil.DebugPrintAt(screen, text, int(cx)-len(text)*glyphWidth/2, int(cy)-glyphHeight/2)
}
