package tty

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/avoidance/game"
	"github.com/plus3/avoidance/hud"
)

var (
	styleBase    = tcell.StyleDefault
	styleTrail   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleEnemy   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	stylePointer = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleDeath   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleDialog  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)

	powerUpStyles = [...]tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true),
	}
)

// Renderer draws session snapshots onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

func (r *Renderer) Viewport(cfg *game.Config) Viewport {
	cols, rows := r.screen.Size()
	return Viewport{Cols: cols, Rows: rows, Width: cfg.Width, Height: cfg.Height}
}

// Draw renders snap and shows the result.
func (r *Renderer) Draw(snap game.Snapshot, cfg *game.Config) {
	r.screen.Clear()
	vp := r.Viewport(cfg)

	if snap.Mode != game.ModeIntro {
		enemy := styleEnemy
		if hud.EnemyAlpha(snap.State, cfg.FadeFrames) < 0.5 {
			enemy = styleDim
		}

		for _, e := range snap.Enemies {
			for _, p := range e.Trail {
				r.put(vp, p, '·', styleTrail)
			}
		}
		for _, e := range snap.Enemies {
			for col, row := range vp.Cells(game.Circle{X: e.Position.X, Y: e.Position.Y, Size: e.Enemy.Size}) {
				r.screen.SetContent(col, row, 'o', nil, enemy)
			}
		}

		if p := snap.PowerUp; p != nil {
			r.drawPowerUp(vp, p, cfg)
		}

		switch {
		case snap.Player.DeathLocation != nil:
			r.put(vp, *snap.Player.DeathLocation, 'X', styleDeath)
		case snap.Player.Visible:
			r.put(vp, snap.Pointer, '+', stylePointer)
		}

		for i, line := range hud.Status(snap.State) {
			r.text(vp.Cols-1-len(line), i, line, styleBase)
		}
	}

	if text, ok := hud.Dialog(snap.Mode); ok {
		r.drawDialog(vp, text)
	}

	r.screen.Show()
}

func (r *Renderer) drawPowerUp(vp Viewport, p *game.PowerUpSnapshot, cfg *game.Config) {
	style := powerUpStyles[p.PowerUp.Kind]
	switch p.PowerUp.Phase {
	case game.PhaseIdle, game.PhaseHeld:
		r.put(vp, p.Position, '◆', style)
	case game.PhaseArmed:
		glyph := '+'
		if hud.FuseProgress(p.PowerUp, cfg.PurpleFuse) > 0.5 {
			glyph = '✚'
		}
		r.put(vp, p.Position, glyph, style)
	case game.PhaseExploding:
		for col, row := range vp.Cells(game.Circle{X: p.Position.X, Y: p.Position.Y, Size: p.PowerUp.Size}) {
			r.screen.SetContent(col, row, '*', nil, style)
		}
	}
}

func (r *Renderer) drawDialog(vp Viewport, text string) {
	box := hud.DialogBox(float64(vp.Cols), float64(vp.Rows))
	x0, y0 := int(box.X), int(box.Y)
	x1, y1 := int(box.X+box.W)-1, int(box.Y+box.H)-1
	if y1-y0 < 2 {
		y0, y1 = vp.Rows/2-1, vp.Rows/2+1
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			ch := ' '
			switch {
			case (y == y0 || y == y1) && (x == x0 || x == x1):
				ch = '+'
			case y == y0 || y == y1:
				ch = '-'
			case x == x0 || x == x1:
				ch = '|'
			}
			r.screen.SetContent(x, y, ch, nil, styleDialog)
		}
	}

	r.text((x0+x1+1-len(text))/2, (y0+y1)/2, text, styleDialog)
}

func (r *Renderer) put(vp Viewport, p game.Point, ch rune, style tcell.Style) {
	col, row := vp.ToCell(p)
	if vp.Contains(col, row) {
		r.screen.SetContent(col, row, ch, nil, style)
	}
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
