package game

import "slices"

type EnemySnapshot struct {
	Position Point
	Enemy    Enemy
	Trail    []Point
}

type PowerUpSnapshot struct {
	Position Point
	PowerUp  PowerUp
}

// Snapshot is a copy of everything a renderer draws. It shares no memory
// with the session.
type Snapshot struct {
	Mode    Mode
	State   GameState
	Player  Player
	Pointer Point
	Enemies []EnemySnapshot
	PowerUp *PowerUpSnapshot
}

func (s *Session) Snapshot() Snapshot {
	player := *s.player.Get()
	if player.DeathLocation != nil {
		at := *player.DeathLocation
		player.DeathLocation = &at
	}

	snap := Snapshot{
		Mode:    s.Mode(),
		State:   *s.state.Get(),
		Player:  player,
		Pointer: s.input.Get().Pointer,
		Enemies: make([]EnemySnapshot, 0, 16),
	}

	for e := range s.enemies.Iter() {
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			Position: Point(*e.Position),
			Enemy:    *e.Enemy,
			Trail:    slices.Clone(e.EchoTrail.Points),
		})
	}

	for p := range s.powerUps.Iter() {
		snap.PowerUp = &PowerUpSnapshot{
			Position: Point(*p.Position),
			PowerUp:  *p.PowerUp,
		}
	}

	return snap
}

// EnemyCount is the number of live enemies.
func (s *Session) EnemyCount() int {
	n := 0
	for range s.enemies.Iter() {
		n++
	}
	return n
}

// PowerUpCount is the number of live power-ups; never more than one.
func (s *Session) PowerUpCount() int {
	n := 0
	for range s.powerUps.Iter() {
		n++
	}
	return n
}
