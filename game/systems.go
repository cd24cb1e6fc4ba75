package game

import (
	"math/rand/v2"

	"github.com/plus3/ooftn/ecs"
	"go.uber.org/zap"
)

type enemyRow struct {
	ecs.EntityId
	*Position
	*Enemy
	*EchoTrail
}

type powerUpRow struct {
	ecs.EntityId
	*Position
	*PowerUp
}

func (r enemyRow) circle() Circle {
	return circleAt(Point(*r.Position), r.Enemy.Size)
}

// cull queues id for deletion once per frame.
func cull(frame *ecs.UpdateFrame, culling *Culling, id ecs.EntityId) bool {
	if !culling.Mark(id) {
		return false
	}
	frame.Commands.Delete(id)
	return true
}

// FrameSystem opens a frame: it clears the previous frame's culls, samples
// pointer visibility and runs down the level fade.
type FrameSystem struct {
	State   ecs.Singleton[GameState]
	Player  ecs.Singleton[Player]
	Input   ecs.Singleton[Input]
	Config  ecs.Singleton[Config]
	Tally   ecs.Singleton[Tally]
	Culling ecs.Singleton[Culling]
}

func (s *FrameSystem) Execute(frame *ecs.UpdateFrame) {
	s.Tally.Get().Frames++
	s.Culling.Get().Reset()

	cfg := s.Config.Get()
	pointer := s.Input.Get().Pointer
	s.Player.Get().Visible = pointer.X >= 0 && pointer.Y >= 0 &&
		pointer.X <= cfg.Width && pointer.Y <= cfg.Height

	state := s.State.Get()
	if state.FadeOut {
		if state.PauseTimer > 0 {
			state.PauseTimer--
		}
		if state.PauseTimer == 0 {
			state.FadeOut = false
		}
	}
}

// EnemySystem moves every enemy toward the pointer and shrinks it, culling
// the ones that collapse. Nothing moves before the game starts or after
// the player dies.
type EnemySystem struct {
	Enemies ecs.Query[enemyRow]
	State   ecs.Singleton[GameState]
	Player  ecs.Singleton[Player]
	Input   ecs.Singleton[Input]
	Config  ecs.Singleton[Config]
	Tally   ecs.Singleton[Tally]
	Culling ecs.Singleton[Culling]
}

func (s *EnemySystem) Execute(frame *ecs.UpdateFrame) {
	if !s.State.Get().Started || s.Player.Get().IsDead {
		return
	}

	cfg := s.Config.Get()
	scale := cfg.timeScale(frame.DeltaTime)
	target := s.Input.Get().Pointer
	culling := s.Culling.Get()
	tally := s.Tally.Get()

	for e := range s.Enemies.Iter() {
		e.EchoTrail.Push(Point(*e.Position), cfg.EchoLength)
		e.Enemy.Pursue(e.Position, target, scale)

		if !e.Enemy.Shrink(cfg, scale) && cull(frame, culling, e.EntityId) {
			tally.EnemiesExpired++
		}
	}
}

// PowerUpSystem runs the live power-up and lets an exploding one destroy
// the enemies it reaches.
type PowerUpSystem struct {
	PowerUps ecs.Query[powerUpRow]
	Enemies  ecs.Query[enemyRow]
	State    ecs.Singleton[GameState]
	Player   ecs.Singleton[Player]
	Input    ecs.Singleton[Input]
	Config   ecs.Singleton[Config]
	Tally    ecs.Singleton[Tally]
	Culling  ecs.Singleton[Culling]

	log *zap.Logger
}

func (s *PowerUpSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.State.Get().Started || s.Player.Get().IsDead {
		return
	}

	cfg := s.Config.Get()
	culling := s.Culling.Get()
	tally := s.Tally.Get()
	step := &powerUpFrame{
		cfg:    cfg,
		input:  s.Input.Get(),
		player: s.Player.Get(),
		scale:  cfg.timeScale(frame.DeltaTime),
	}

	for p := range s.PowerUps.Iter() {
		if culling.Doomed(p.EntityId) {
			continue
		}

		event := p.PowerUp.Update(p.Position, step)
		switch event {
		case PowerUpPickedUp:
			tally.PowerUpsCollected++
			s.log.Debug("power-up picked up", zap.Stringer("kind", p.Kind))
		case PowerUpDetonated:
			tally.PowerUpsDetonated++
			s.log.Debug("power-up detonated",
				zap.Stringer("kind", p.Kind),
				zap.Float64("x", p.Position.X),
				zap.Float64("y", p.Position.Y),
			)
		}

		if p.IsActive {
			tally.EnemiesDestroyed += s.blast(frame, culling, p.PowerUp.circle(p.Position))
		}

		if event == PowerUpSpent {
			cull(frame, culling, p.EntityId)
		}
	}
}

func (s *PowerUpSystem) blast(frame *ecs.UpdateFrame, culling *Culling, nova Circle) int {
	rule := s.Config.Get().Collision
	killed := 0
	for e := range s.Enemies.Iter() {
		if culling.Doomed(e.EntityId) || !rule.Collide(nova, e.circle()) {
			continue
		}
		if cull(frame, culling, e.EntityId) {
			killed++
		}
	}
	return killed
}

// CollisionSystem kills the player when a surviving enemy reaches the
// pointer.
type CollisionSystem struct {
	Enemies ecs.Query[enemyRow]
	State   ecs.Singleton[GameState]
	Player  ecs.Singleton[Player]
	Input   ecs.Singleton[Input]
	Config  ecs.Singleton[Config]
	Culling ecs.Singleton[Culling]

	log *zap.Logger
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	player := s.Player.Get()
	if !state.Started || player.IsDead {
		return
	}

	rule := s.Config.Get().Collision
	culling := s.Culling.Get()
	at := s.Input.Get().Pointer
	pointer := circleAt(at, player.Size)

	for e := range s.Enemies.Iter() {
		if culling.Doomed(e.EntityId) || !rule.Collide(e.circle(), pointer) {
			continue
		}

		player.IsDead = true
		player.DeathLocation = &at
		s.log.Info("player died",
			zap.Int("level", state.Level),
			zap.Float64("x", at.X),
			zap.Float64("y", at.Y),
		)
		return
	}
}

// LevelSystem advances the level once the last enemy is gone and queues
// the next wave.
type LevelSystem struct {
	Enemies  ecs.Query[enemyRow]
	PowerUps ecs.Query[powerUpRow]
	State    ecs.Singleton[GameState]
	Player   ecs.Singleton[Player]
	Input    ecs.Singleton[Input]
	Config   ecs.Singleton[Config]
	Tally    ecs.Singleton[Tally]
	Culling  ecs.Singleton[Culling]

	rng *rand.Rand
	log *zap.Logger
}

func (s *LevelSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	player := s.Player.Get()
	if !state.Started || player.IsDead {
		return
	}

	culling := s.Culling.Get()
	for e := range s.Enemies.Iter() {
		if !culling.Doomed(e.EntityId) {
			return
		}
	}

	cfg := s.Config.Get()
	tally := s.Tally.Get()
	state.Level++
	tally.BestLevel = max(tally.BestLevel, state.Level)

	pointer := circleAt(s.Input.Get().Pointer, player.Size)
	count := SpawnCount(state.Level, cfg.DifficultyCurve)
	for range count {
		pos, enemy := rollEnemy(s.rng, cfg, state.Level, pointer)
		frame.Commands.Spawn(pos, enemy, EchoTrail{Points: make([]Point, 0, cfg.EchoLength)})
	}
	tally.EnemiesSpawned += count

	if kind, ok := PowerUpFor(state.Level, cfg); ok && !s.powerUpLive(culling) {
		pos, powerUp := rollPowerUp(s.rng, cfg, kind)
		frame.Commands.Spawn(pos, powerUp)
		tally.PowerUpsSpawned++
		s.log.Debug("power-up spawned",
			zap.Stringer("kind", kind),
			zap.Float64("x", pos.X),
			zap.Float64("y", pos.Y),
		)
	}

	state.PauseTimer = cfg.FadeFrames
	state.FadeOut = true

	s.log.Debug("level advanced", zap.Int("level", state.Level), zap.Int("enemies", count))
}

func (s *LevelSystem) powerUpLive(culling *Culling) bool {
	for p := range s.PowerUps.Iter() {
		if !culling.Doomed(p.EntityId) {
			return true
		}
	}
	return false
}
