package game

import "math"

// PowerUpEvent is what a single power-up update produced.
type PowerUpEvent int

const (
	PowerUpNoEvent PowerUpEvent = iota
	PowerUpPickedUp
	PowerUpDetonated
	PowerUpSpent
)

// powerUpFrame carries what a power-up update reads and writes besides
// the power-up itself.
type powerUpFrame struct {
	cfg    *Config
	input  *Input
	player *Player
	scale  float64
}

// powerUpUpdates holds the per-kind behaviour once a power-up leaves idle.
var powerUpUpdates = [...]func(*PowerUp, *Position, *powerUpFrame) PowerUpEvent{
	PowerUpYellow: updateYellow,
	PowerUpPurple: updatePurple,
}

// Update advances p by one frame.
func (p *PowerUp) Update(pos *Position, f *powerUpFrame) PowerUpEvent {
	if p.Phase == PhaseIdle {
		return p.idle(pos, f)
	}
	return powerUpUpdates[p.Kind](p, pos, f)
}

func (p *PowerUp) circle(pos *Position) Circle {
	return circleAt(Point(*pos), p.Size)
}

// idle pulses the pickup and hands it to the player when the pointer is
// pressed over it.
func (p *PowerUp) idle(pos *Position, f *powerUpFrame) PowerUpEvent {
	p.Age++
	p.Size = f.cfg.PowerUpSize + f.cfg.PulseAmplitude*math.Sin(float64(p.Age)*f.cfg.PulseRate)

	if f.player.HasPowerUp || !f.input.Pressed {
		return PowerUpNoEvent
	}
	pointer := circleAt(f.input.Pointer, f.player.Size)
	if !f.cfg.Collision.Collide(p.circle(pos), pointer) {
		return PowerUpNoEvent
	}

	p.Phase = PhaseHeld
	p.Size = f.cfg.PowerUpSize
	f.player.HasPowerUp = true
	*pos = Position(f.input.Pointer)
	return PowerUpPickedUp
}

// updateYellow detonates on release and grows until its steps run out.
func updateYellow(p *PowerUp, pos *Position, f *powerUpFrame) PowerUpEvent {
	switch p.Phase {
	case PhaseHeld:
		*pos = Position(f.input.Pointer)
		if !f.input.Released {
			return PowerUpNoEvent
		}
		p.Phase = PhaseExploding
		p.IsActive = true
		f.player.HasPowerUp = false
		return PowerUpDetonated

	case PhaseExploding:
		p.Size += f.cfg.YellowGrowth * f.scale
		p.StepsUntilDeath--
		if p.StepsUntilDeath <= 0 {
			return PowerUpSpent
		}
	}
	return PowerUpNoEvent
}

// updatePurple arms at the release point, waits out its fuse and then
// swells and collapses along a half sine.
func updatePurple(p *PowerUp, pos *Position, f *powerUpFrame) PowerUpEvent {
	switch p.Phase {
	case PhaseHeld:
		*pos = Position(f.input.Pointer)
		if !f.input.Released {
			return PowerUpNoEvent
		}
		p.Phase = PhaseArmed
		p.IsTriggered = true
		f.player.HasPowerUp = false
		if p.StepsUntilActive > 0 {
			return PowerUpNoEvent
		}
		return p.arm()

	case PhaseArmed:
		p.StepsUntilActive--
		if p.StepsUntilActive > 0 {
			return PowerUpNoEvent
		}
		return p.arm()

	case PhaseExploding:
		p.StepsUntilDeath--
		elapsed := f.cfg.PurpleSteps - p.StepsUntilDeath
		p.Size = max(f.cfg.PurpleMaxSize*math.Sin(math.Pi*float64(elapsed)/float64(f.cfg.PurpleSteps)), 0)
		if p.StepsUntilDeath <= 0 {
			p.Size = 0
			return PowerUpSpent
		}
	}
	return PowerUpNoEvent
}

func (p *PowerUp) arm() PowerUpEvent {
	p.StepsUntilActive = 0
	p.Phase = PhaseExploding
	p.IsActive = true
	p.Size = 0
	return PowerUpDetonated
}
