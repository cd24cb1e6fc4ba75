package game

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/ooftn/ecs"
)

// Point is a position on the play area, in pointer coordinates.
type Point struct {
	X, Y float64
}

// Position is the centre of an enemy or power-up.
type Position Point

type Enemy struct {
	Speed       float64
	InitialSize float64
	Size        float64
	ShrinkRate  float64
}

// EchoTrail holds the most recent positions of an enemy, oldest first.
type EchoTrail struct {
	Points []Point
}

// Push appends p and drops the oldest points beyond limit.
func (t *EchoTrail) Push(p Point, limit int) {
	if limit <= 0 {
		t.Points = t.Points[:0]
		return
	}
	t.Points = append(t.Points, p)
	if over := len(t.Points) - limit; over > 0 {
		t.Points = append(t.Points[:0], t.Points[over:]...)
	}
}

type PowerUpKind int

const (
	PowerUpYellow PowerUpKind = iota
	PowerUpPurple
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpYellow:
		return "yellow"
	case PowerUpPurple:
		return "purple"
	default:
		return "unknown"
	}
}

type PowerUpPhase int

const (
	PhaseIdle PowerUpPhase = iota
	PhaseHeld
	PhaseArmed
	PhaseExploding
)

func (p PowerUpPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseHeld:
		return "held"
	case PhaseArmed:
		return "armed"
	case PhaseExploding:
		return "exploding"
	default:
		return "unknown"
	}
}

type PowerUp struct {
	Kind             PowerUpKind
	Phase            PowerUpPhase
	Size             float64
	StepsUntilActive int
	StepsUntilDeath  int
	IsTriggered      bool
	IsActive         bool

	// Age drives the idle pulse oscillator.
	Age int
}

type GameState struct {
	Started    bool
	FadeOut    bool
	Level      int
	Deaths     int
	PauseTimer int
}

type Player struct {
	IsDead        bool
	HasPowerUp    bool
	Visible       bool
	Size          float64
	DeathLocation *Point
}

// NewPlayer returns a living player with the configured pointer size.
func NewPlayer(cfg *Config) Player {
	return Player{Size: cfg.PlayerSize}
}

// Input is the pointer state sampled for the current frame.
type Input struct {
	Pointer Point
	Pressed bool

	// Released latches a release event until the next update consumes it.
	Released bool
}

// Tally counts what happened over the lifetime of a session.
type Tally struct {
	Frames            int64
	EnemiesSpawned    int
	EnemiesExpired    int
	EnemiesDestroyed  int
	PowerUpsSpawned   int
	PowerUpsCollected int
	PowerUpsDetonated int
	BestLevel         int
}

// Culling collects the entities removed during the current frame so later
// systems can skip them before the command buffer is flushed.
type Culling struct {
	doomed *intmap.Set[ecs.EntityId]
}

func newCulling() Culling {
	return Culling{doomed: intmap.NewSet[ecs.EntityId](64)}
}

// Mark records id as removed this frame. It reports false if id was
// already marked.
func (c *Culling) Mark(id ecs.EntityId) bool {
	if c.doomed.Has(id) {
		return false
	}
	c.doomed.Add(id)
	return true
}

func (c *Culling) Doomed(id ecs.EntityId) bool {
	return c.doomed.Has(id)
}

func (c *Culling) Len() int {
	return c.doomed.Len()
}

func (c *Culling) Reset() {
	c.doomed.Clear()
}

// RegisterComponents registers every entity component the game spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Enemy](registry)
	ecs.RegisterComponent[EchoTrail](registry)
	ecs.RegisterComponent[PowerUp](registry)
}
