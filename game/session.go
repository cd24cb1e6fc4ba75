package game

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/plus3/ooftn/ecs"
	"go.uber.org/zap"
)

// Mode is the coarse state of a session, derived from GameState and
// Player.
type Mode int

const (
	ModeIntro Mode = iota
	ModePlaying
	ModeFadeIn
	ModeDead
)

func (m Mode) String() string {
	switch m {
	case ModeIntro:
		return "intro"
	case ModePlaying:
		return "playing"
	case ModeFadeIn:
		return "fade-in"
	case ModeDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Session owns one game: the entity storage, the scheduler that runs the
// game systems and the random source used for spawning.
type Session struct {
	ID   uuid.UUID
	Seed uint64

	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	rng       *rand.Rand
	log       *zap.Logger

	state   *ecs.Singleton[GameState]
	player  *ecs.Singleton[Player]
	input   *ecs.Singleton[Input]
	config  *ecs.Singleton[Config]
	tally   *ecs.Singleton[Tally]
	culling *ecs.Singleton[Culling]

	enemies  *ecs.Query[enemyRow]
	powerUps *ecs.Query[powerUpRow]
}

type options struct {
	logger   *zap.Logger
	seed     uint64
	seeded   bool
	register []func(*ecs.ComponentRegistry)
}

type Option func(*options)

// WithLogger sets the logger session events are written to.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSeed fixes the random source so a session can be replayed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithComponents registers additional component types, for frontends that
// keep their own entities in the session storage.
func WithComponents(register func(*ecs.ComponentRegistry)) Option {
	return func(o *options) {
		o.register = append(o.register, register)
	}
}

// NewSession validates cfg and builds a session in the intro state.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seeded {
		o.seed = rand.Uint64()
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	for _, register := range o.register {
		register(registry)
	}
	storage := ecs.NewStorage(registry)

	id := uuid.New()
	s := &Session{
		ID:      id,
		Seed:    o.seed,
		storage: storage,
		rng:     rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15)),
		log:     o.logger.With(zap.String("session", id.String())),

		state:   ecs.NewSingleton(storage, GameState{}),
		player:  ecs.NewSingleton(storage, NewPlayer(&cfg)),
		input:   ecs.NewSingleton(storage, Input{}),
		config:  ecs.NewSingleton(storage, cfg),
		tally:   ecs.NewSingleton(storage, Tally{}),
		culling: ecs.NewSingleton(storage, newCulling()),

		enemies:  ecs.NewQuery[enemyRow](storage),
		powerUps: ecs.NewQuery[powerUpRow](storage),
	}

	s.scheduler = ecs.NewScheduler(storage)
	s.scheduler.Register(&FrameSystem{})
	s.scheduler.Register(&EnemySystem{})
	s.scheduler.Register(&PowerUpSystem{log: s.log})
	s.scheduler.Register(&CollisionSystem{log: s.log})
	s.scheduler.Register(&LevelSystem{rng: s.rng, log: s.log})

	s.log.Debug("session created", zap.Uint64("seed", s.Seed))
	return s, nil
}

// Advance runs one frame. dt is the elapsed time in seconds and only
// matters when timing normalisation is enabled.
func (s *Session) Advance(dt float64) {
	s.scheduler.Once(dt)
	s.input.Get().Released = false
}

// SetPointer records where the pointer is for the next frame.
func (s *Session) SetPointer(p Point) {
	s.input.Get().Pointer = p
}

func (s *Session) OnPress(p Point) {
	input := s.input.Get()
	input.Pointer = p
	input.Pressed = true
}

// OnRelease latches a release that the next Advance acts on.
func (s *Session) OnRelease(p Point) {
	input := s.input.Get()
	input.Pointer = p
	input.Pressed = false
	input.Released = true
}

// OnClick starts the game from the intro and acknowledges a death.
func (s *Session) OnClick(p Point) {
	s.input.Get().Pointer = p

	state := s.state.Get()
	switch {
	case s.player.Get().IsDead:
		s.reset()
	case !state.Started:
		state.Started = true
		s.log.Info("game started", zap.Int("deaths", state.Deaths))
	}
}

// reset returns to the intro after a death. The level restarts at zero and
// the first frame after the next start click spawns level one.
func (s *Session) reset() {
	state := s.state.Get()
	cfg := s.config.Get()

	level := state.Level
	state.Deaths++
	state.Started = false
	state.Level = 0
	state.FadeOut = false
	state.PauseTimer = 0
	*s.player.Get() = NewPlayer(cfg)

	doomed := make([]ecs.EntityId, 0, 16)
	for e := range s.enemies.Iter() {
		doomed = append(doomed, e.EntityId)
	}
	for p := range s.powerUps.Iter() {
		doomed = append(doomed, p.EntityId)
	}
	for _, id := range doomed {
		s.storage.Delete(id)
	}

	s.log.Info("player reset", zap.Int("deaths", state.Deaths), zap.Int("level", level))
}

func (s *Session) Mode() Mode {
	return ModeOf(s.state.Get(), s.player.Get())
}

// ModeOf derives the mode from the game state and player singletons.
func ModeOf(state *GameState, player *Player) Mode {
	switch {
	case player.IsDead:
		return ModeDead
	case !state.Started:
		return ModeIntro
	case state.FadeOut:
		return ModeFadeIn
	default:
		return ModePlaying
	}
}

// Storage exposes the entity storage for renderers that query it directly.
func (s *Session) Storage() *ecs.Storage {
	return s.storage
}

func (s *Session) Stats() *ecs.SchedulerStats {
	return s.scheduler.GetStats()
}

func (s *Session) Config() Config {
	return *s.config.Get()
}

func (s *Session) Tally() Tally {
	return *s.tally.Get()
}

func (s *Session) Logger() *zap.Logger {
	return s.log
}
