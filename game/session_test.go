package game_test

import (
	"math"
	"testing"

	"github.com/plus3/avoidance/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, tune func(*game.Config)) *game.Session {
	t.Helper()
	cfg := game.DefaultConfig()
	if tune != nil {
		tune(&cfg)
	}
	s, err := game.NewSession(cfg, game.WithSeed(7))
	require.NoError(t, err)
	return s
}

// spawnSentinel places a motionless, long-lived enemy in the far corner so
// the level never advances underneath a test.
func spawnSentinel(s *game.Session) {
	s.Storage().Spawn(
		game.Position{X: 1200, Y: 700},
		game.Enemy{InitialSize: 1, Size: 20, ShrinkRate: 100},
		game.EchoTrail{},
	)
}

func TestSessionIntro(t *testing.T) {
	s := newSession(t, nil)

	for range 10 {
		s.Advance(1.0 / 60)
	}

	snap := s.Snapshot()
	assert.Equal(t, game.ModeIntro, snap.Mode)
	assert.Equal(t, 0, snap.State.Level)
	assert.Empty(t, snap.Enemies)
	assert.Nil(t, snap.PowerUp)
}

func TestSessionFirstLevel(t *testing.T) {
	s := newSession(t, nil)

	s.OnClick(game.Point{X: 640, Y: 360})
	assert.Equal(t, 0, s.Snapshot().State.Level)

	s.Advance(1.0 / 60)

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.State.Level)
	assert.Len(t, snap.Enemies, 1)
	assert.Nil(t, snap.PowerUp)
	assert.True(t, snap.State.FadeOut)
	assert.Equal(t, game.DefaultConfig().FadeFrames, snap.State.PauseTimer)
	assert.Equal(t, game.ModeFadeIn, snap.Mode)

	enemy := snap.Enemies[0].Enemy
	assert.GreaterOrEqual(t, enemy.InitialSize, 11.0)
	assert.Less(t, enemy.InitialSize, 102.0)
	assert.Equal(t, enemy.InitialSize, enemy.Size)
	assert.GreaterOrEqual(t, enemy.Speed, game.BaseEnemySpeed)
	assert.Less(t, enemy.Speed, game.BaseEnemySpeed+game.DifficultyCurve/2)
	assert.GreaterOrEqual(t, enemy.ShrinkRate, 1.0)
	assert.Less(t, enemy.ShrinkRate, 1.01)
}

func TestSessionFadeRunsDown(t *testing.T) {
	s := newSession(t, func(cfg *game.Config) {
		cfg.FadeFrames = 3
		cfg.ShrinkNumerator = 1e-6
	})
	s.OnClick(game.Point{X: 10, Y: 10})
	s.Advance(1.0 / 60)

	state := s.Snapshot().State
	require.Equal(t, 1, state.Level)
	assert.True(t, state.FadeOut)
	assert.Equal(t, 3, state.PauseTimer)

	for _, want := range []int{2, 1, 0} {
		s.Advance(1.0 / 60)
		state = s.Snapshot().State
		assert.Equal(t, want, state.PauseTimer)
		assert.Equal(t, want > 0, state.FadeOut)
	}
	assert.Equal(t, 1, state.Level)
}

func TestSessionLevelAdvancesWhenCleared(t *testing.T) {
	// Every enemy collapses on its first update, so each frame clears the
	// field and advances exactly one level.
	s := newSession(t, func(cfg *game.Config) {
		cfg.ShrinkNumerator = 1e12
		cfg.FadeFrames = 2
	})
	s.OnClick(game.Point{X: 640, Y: 360})

	spawned := 0
	for frame := 1; frame <= 30; frame++ {
		s.Advance(1.0 / 60)
		snap := s.Snapshot()

		require.Equal(t, frame, snap.State.Level)
		assert.Equal(t, 0, snap.State.Deaths)
		assert.False(t, snap.Player.IsDead)
		assert.LessOrEqual(t, s.PowerUpCount(), 1)

		spawned += game.SpawnCount(frame, game.DifficultyCurve)
		assert.Len(t, snap.Enemies, game.SpawnCount(frame, game.DifficultyCurve))
		for _, e := range snap.Enemies {
			assert.Greater(t, e.Enemy.Size, 0.0)
		}
	}

	tally := s.Tally()
	assert.Equal(t, spawned, tally.EnemiesSpawned)
	assert.Equal(t, spawned-game.SpawnCount(30, game.DifficultyCurve), tally.EnemiesExpired)
	assert.Equal(t, 30, tally.BestLevel)
	assert.Equal(t, int64(30), tally.Frames)

	// The yellow from level 3 is never picked up, so it blocks every later
	// power-up.
	assert.Equal(t, 1, tally.PowerUpsSpawned)
	snap := s.Snapshot()
	require.NotNil(t, snap.PowerUp)
	assert.Equal(t, game.PowerUpYellow, snap.PowerUp.PowerUp.Kind)
	assert.Equal(t, game.PhaseIdle, snap.PowerUp.PowerUp.Phase)
}

func TestSessionDeathFreezesAndResets(t *testing.T) {
	s := newSession(t, nil)
	s.Storage().Spawn(
		game.Position{X: 100, Y: 100},
		game.Enemy{InitialSize: 20, Size: 20, ShrinkRate: 1},
		game.EchoTrail{},
	)

	s.OnClick(game.Point{X: 100, Y: 100})
	s.Advance(1.0 / 60)

	snap := s.Snapshot()
	require.True(t, snap.Player.IsDead)
	require.NotNil(t, snap.Player.DeathLocation)
	assert.Equal(t, game.Point{X: 100, Y: 100}, *snap.Player.DeathLocation)
	assert.Equal(t, game.ModeDead, snap.Mode)
	require.Len(t, snap.Enemies, 1)
	frozen := snap.Enemies[0]

	for i := range 5 {
		s.SetPointer(game.Point{X: 500 + float64(i), Y: 500})
		s.OnPress(game.Point{X: 500, Y: 500})
		s.OnRelease(game.Point{X: 500, Y: 500})
		s.Advance(1.0 / 60)
	}

	snap = s.Snapshot()
	require.Len(t, snap.Enemies, 1)
	assert.Equal(t, frozen.Position, snap.Enemies[0].Position)
	assert.Equal(t, frozen.Enemy.Size, snap.Enemies[0].Enemy.Size)
	assert.Equal(t, 0, snap.State.Deaths)

	s.OnClick(game.Point{X: 500, Y: 500})

	snap = s.Snapshot()
	assert.Equal(t, 1, snap.State.Deaths)
	assert.Equal(t, 0, snap.State.Level)
	assert.False(t, snap.State.Started)
	assert.False(t, snap.State.FadeOut)
	assert.False(t, snap.Player.IsDead)
	assert.Nil(t, snap.Player.DeathLocation)
	assert.Empty(t, snap.Enemies)
	assert.Nil(t, snap.PowerUp)
	assert.Equal(t, game.ModeIntro, snap.Mode)

	// The next click starts a fresh run from level one.
	s.OnClick(game.Point{X: 500, Y: 500})
	s.Advance(1.0 / 60)
	assert.Equal(t, 1, s.Snapshot().State.Level)
	assert.Equal(t, 1, s.Snapshot().State.Deaths)
}

func TestSessionYellowNova(t *testing.T) {
	s := newSession(t, nil)
	spawnSentinel(s)
	s.Storage().Spawn(
		game.Position{X: 260, Y: 200},
		game.Enemy{InitialSize: 1, Size: 20, ShrinkRate: 100},
		game.EchoTrail{},
	)
	s.Storage().Spawn(
		game.Position{X: 200, Y: 200},
		game.PowerUp{Kind: game.PowerUpYellow, Size: game.PowerUpSize, StepsUntilDeath: game.YellowSteps},
	)

	s.OnClick(game.Point{X: 200, Y: 200})
	s.Advance(1.0 / 60)
	require.NotNil(t, s.Snapshot().PowerUp)
	assert.Equal(t, game.PhaseIdle, s.Snapshot().PowerUp.PowerUp.Phase)

	s.OnPress(game.Point{X: 200, Y: 200})
	s.Advance(1.0 / 60)
	snap := s.Snapshot()
	assert.True(t, snap.Player.HasPowerUp)
	assert.Equal(t, game.PhaseHeld, snap.PowerUp.PowerUp.Phase)

	s.SetPointer(game.Point{X: 205, Y: 215})
	s.Advance(1.0 / 60)
	assert.Equal(t, game.Point{X: 205, Y: 215}, s.Snapshot().PowerUp.Position)

	s.OnRelease(game.Point{X: 210, Y: 210})
	s.Advance(1.0 / 60)
	snap = s.Snapshot()
	require.NotNil(t, snap.PowerUp)
	assert.True(t, snap.PowerUp.PowerUp.IsActive)
	assert.False(t, snap.Player.HasPowerUp)
	assert.Equal(t, game.PhaseExploding, snap.PowerUp.PowerUp.Phase)
	assert.Len(t, snap.Enemies, 2)

	for range game.YellowSteps {
		s.Advance(1.0 / 60)
	}

	snap = s.Snapshot()
	assert.Nil(t, snap.PowerUp)
	assert.False(t, snap.Player.IsDead)
	assert.Len(t, snap.Enemies, 1, "the nearby enemy is destroyed and the sentinel survives")

	tally := s.Tally()
	assert.Equal(t, 1, tally.PowerUpsCollected)
	assert.Equal(t, 1, tally.PowerUpsDetonated)
	assert.Equal(t, 1, tally.EnemiesDestroyed)
}

func TestSessionPurpleNova(t *testing.T) {
	s := newSession(t, nil)
	spawnSentinel(s)
	s.Storage().Spawn(
		game.Position{X: 300, Y: 300},
		game.PowerUp{
			Kind:             game.PowerUpPurple,
			Size:             game.PowerUpSize,
			StepsUntilActive: game.PurpleFuse,
			StepsUntilDeath:  game.PurpleSteps,
		},
	)

	s.OnClick(game.Point{X: 300, Y: 300})
	s.OnPress(game.Point{X: 300, Y: 300})
	s.Advance(1.0 / 60)
	require.True(t, s.Snapshot().Player.HasPowerUp)

	s.OnRelease(game.Point{X: 320, Y: 330})
	s.Advance(1.0 / 60)
	snap := s.Snapshot()
	assert.True(t, snap.PowerUp.PowerUp.IsTriggered)
	assert.False(t, snap.PowerUp.PowerUp.IsActive)
	assert.Equal(t, game.PhaseArmed, snap.PowerUp.PowerUp.Phase)
	assert.False(t, snap.Player.HasPowerUp)

	// The detonation point stays where the power-up was released.
	s.SetPointer(game.Point{X: 600, Y: 100})
	for range game.PurpleFuse - 1 {
		s.Advance(1.0 / 60)
	}
	snap = s.Snapshot()
	assert.False(t, snap.PowerUp.PowerUp.IsActive)
	assert.Equal(t, game.Point{X: 320, Y: 330}, snap.PowerUp.Position)

	s.Advance(1.0 / 60)
	assert.True(t, s.Snapshot().PowerUp.PowerUp.IsActive)

	peak := 0.0
	for range game.PurpleSteps - 1 {
		s.Advance(1.0 / 60)
		peak = math.Max(peak, s.Snapshot().PowerUp.PowerUp.Size)
	}
	assert.InDelta(t, game.PurpleMaxSize, peak, 1)

	s.Advance(1.0 / 60)
	assert.Nil(t, s.Snapshot().PowerUp)
	assert.Equal(t, 0, s.PowerUpCount())
}

func TestSessionInvalidConfig(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Collision = "diagonal"

	_, err := game.NewSession(cfg)
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}

func TestSessionTimingNormalisation(t *testing.T) {
	s := newSession(t, func(cfg *game.Config) { cfg.NormalizeTiming = true })
	s.Storage().Spawn(
		game.Position{X: 0, Y: 0},
		game.Enemy{Speed: 4, InitialSize: 1, Size: 20, ShrinkRate: 100},
		game.EchoTrail{},
	)

	s.OnClick(game.Point{X: 600, Y: 600})
	s.Advance(1.0 / 30)

	snap := s.Snapshot()
	require.Len(t, snap.Enemies, 1)
	assert.InDelta(t, 8, snap.Enemies[0].Position.X, 1e-9)
	assert.InDelta(t, 8, snap.Enemies[0].Position.Y, 1e-9)
	assert.Equal(t, []game.Point{{X: 0, Y: 0}}, snap.Enemies[0].Trail)
}
