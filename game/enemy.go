package game

import "math"

// stepToward moves from toward to by at most speed.
func stepToward(from, to, speed float64) float64 {
	diff := math.Abs(to - from)
	step := math.Min(speed, diff)
	if to > from {
		return from + step
	}
	return from - step
}

// Pursue moves pos toward target on each axis independently, so diagonal
// approaches close faster than straight ones.
func (e *Enemy) Pursue(pos *Position, target Point, scale float64) {
	speed := e.Speed * scale
	pos.X = stepToward(pos.X, target.X, speed)
	pos.Y = stepToward(pos.Y, target.Y, speed)
}

// Shrink applies one frame of decay and reports whether the enemy is
// still alive. A degenerate decay step collapses the enemy to zero.
func (e *Enemy) Shrink(cfg *Config, scale float64) bool {
	denom := math.Abs(e.ShrinkRate - e.InitialSize*e.Size/cfg.ShrinkScale)
	loss := cfg.ShrinkNumerator / denom * scale

	if denom == 0 || math.IsInf(loss, 0) || math.IsNaN(loss) {
		e.Size = 0
		return false
	}

	e.Size -= loss
	if e.Size <= 0 {
		e.Size = 0
		return false
	}
	return true
}
