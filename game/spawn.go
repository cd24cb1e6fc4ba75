package game

import (
	"math"
	"math/rand/v2"
)

// SpawnCount is the number of enemies released when level begins.
func SpawnCount(level int, curve float64) int {
	if level < 4 {
		return max(level, 0)
	}
	return int(math.Floor((0.8 + curve/10) * float64(level)))
}

// PowerUpFor reports which power-up a level grants. Yellow wins when both
// multiples match.
func PowerUpFor(level int, cfg *Config) (PowerUpKind, bool) {
	if level <= 0 {
		return 0, false
	}
	switch {
	case level%cfg.YellowEvery == 0:
		return PowerUpYellow, true
	case level%cfg.PurpleEvery == 0:
		return PowerUpPurple, true
	}
	return 0, false
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// rollEnemy draws a new enemy for level. The candidate is pushed away by
// its own size while it overlaps the pointer.
func rollEnemy(rng *rand.Rand, cfg *Config, level int, pointer Circle) (Position, Enemy) {
	lvl := float64(level)

	pos := Position{
		X: uniform(rng, 0, cfg.Width),
		Y: uniform(rng, 0, cfg.Height),
	}
	size := uniform(rng, lvl+10, 2*lvl+100)
	enemy := Enemy{
		Speed:       cfg.BaseEnemySpeed + uniform(rng, 0, lvl*cfg.DifficultyCurve/2),
		InitialSize: size,
		Size:        size,
		ShrinkRate:  uniform(rng, 100, lvl+100) / 100,
	}

	for range cfg.SpawnAttempts {
		if !cfg.Collision.Collide(circleAt(Point(pos), size), pointer) {
			break
		}
		pos.X += size
		pos.Y += size
	}

	return pos, enemy
}

func rollPowerUp(rng *rand.Rand, cfg *Config, kind PowerUpKind) (Position, PowerUp) {
	margin := cfg.PowerUpSize
	pos := Position{
		X: uniform(rng, margin, cfg.Width-margin),
		Y: uniform(rng, margin, cfg.Height-margin),
	}

	p := PowerUp{
		Kind: kind,
		Size: cfg.PowerUpSize,
	}
	switch kind {
	case PowerUpYellow:
		p.StepsUntilDeath = cfg.YellowSteps
	case PowerUpPurple:
		p.StepsUntilActive = cfg.PurpleFuse
		p.StepsUntilDeath = cfg.PurpleSteps
	}
	return pos, p
}
