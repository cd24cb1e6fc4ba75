package main

import (
	"math"

	"github.com/plus3/avoidance/game"
)

// Bot plays a session by steering the pointer away from nearby enemies
// and walls. It heads for idle power-ups and lets go of a held one when an
// enemy gets close.
type Bot struct {
	// Speed is the furthest the pointer moves in one frame.
	Speed float64
	// Danger is the distance at which enemies and walls start to push.
	Danger float64
	// Trigger is the enemy distance that detonates a held power-up.
	Trigger float64

	pointer game.Point
	pressed bool
}

func NewBot(cfg *game.Config) *Bot {
	return &Bot{
		Speed:   12,
		Danger:  220,
		Trigger: 90,
		pointer: game.Point{X: cfg.Width / 2, Y: cfg.Height / 2},
	}
}

// Next picks the input for the frame after snap.
func (b *Bot) Next(snap game.Snapshot, cfg *game.Config, dt float64) game.Frame {
	f := game.Frame{DeltaTime: dt}

	if snap.Mode == game.ModeIntro || snap.Mode == game.ModeDead {
		b.pointer = game.Point{X: cfg.Width / 2, Y: cfg.Height / 2}
		f.Pointer = b.pointer
		f.Release = b.pressed
		f.Click = true
		b.pressed = false
		return f
	}

	b.pointer = b.steer(snap, cfg)
	f.Pointer = b.pointer

	switch {
	case b.pressed && snap.Player.HasPowerUp && b.nearest(snap) < b.Trigger:
		f.Release = true
	case b.pressed && !snap.Player.HasPowerUp:
		f.Release = true
	case !b.pressed && b.over(snap):
		f.Press = true
	}

	if f.Press {
		b.pressed = true
	}
	if f.Release {
		b.pressed = false
	}
	return f
}

func (b *Bot) steer(snap game.Snapshot, cfg *game.Config) game.Point {
	var dx, dy float64
	push := func(fromX, fromY, dist float64) {
		if dist >= b.Danger {
			return
		}
		norm := math.Hypot(fromX, fromY)
		if norm == 0 {
			fromX, fromY, norm = 1, 0, 1
		}
		w := (b.Danger - max(dist, 0)) / b.Danger
		dx += fromX / norm * w
		dy += fromY / norm * w
	}

	p := b.pointer
	for _, e := range snap.Enemies {
		ex, ey := p.X-e.Position.X, p.Y-e.Position.Y
		push(ex, ey, math.Hypot(ex, ey)-e.Enemy.Size/2)
	}
	push(1, 0, p.X)
	push(-1, 0, cfg.Width-p.X)
	push(0, 1, p.Y)
	push(0, -1, cfg.Height-p.Y)

	if pu := snap.PowerUp; pu != nil && pu.PowerUp.Phase == game.PhaseIdle && !snap.Player.HasPowerUp {
		tx, ty := pu.Position.X-p.X, pu.Position.Y-p.Y
		if norm := math.Hypot(tx, ty); norm > 0 {
			dx += tx / norm * 0.5
			dy += ty / norm * 0.5
		}
	}

	norm := math.Hypot(dx, dy)
	if norm == 0 {
		return p
	}
	step := min(norm, 1) * b.Speed
	margin := cfg.PlayerSize
	return game.Point{
		X: math.Min(math.Max(p.X+dx/norm*step, margin), cfg.Width-margin),
		Y: math.Min(math.Max(p.Y+dy/norm*step, margin), cfg.Height-margin),
	}
}

// nearest is the distance from the pointer to the closest enemy edge.
func (b *Bot) nearest(snap game.Snapshot) float64 {
	best := math.Inf(1)
	for _, e := range snap.Enemies {
		d := math.Hypot(b.pointer.X-e.Position.X, b.pointer.Y-e.Position.Y) - e.Enemy.Size/2
		best = min(best, d)
	}
	return best
}

// over reports whether the pointer sits on an idle power-up.
func (b *Bot) over(snap game.Snapshot) bool {
	pu := snap.PowerUp
	if pu == nil || pu.PowerUp.Phase != game.PhaseIdle || snap.Player.HasPowerUp {
		return false
	}
	return game.Collide(
		game.Circle{X: pu.Position.X, Y: pu.Position.Y, Size: pu.PowerUp.Size},
		game.Circle{X: b.pointer.X, Y: b.pointer.Y, Size: snap.Player.Size},
	)
}
