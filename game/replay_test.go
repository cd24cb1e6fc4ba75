package game_test

import (
	"math"
	"testing"

	"github.com/plus3/avoidance/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orbitScript starts a game and circles the pointer around the centre,
// pressing and releasing now and then and clicking through every death.
func orbitScript(frames int) []game.Frame {
	script := make([]game.Frame, 0, frames)
	for i := range frames {
		angle := float64(i) * 0.05
		f := game.Frame{
			DeltaTime: 1.0 / 60,
			Pointer: game.Point{
				X: 640 + 300*math.Cos(angle),
				Y: 360 + 200*math.Sin(angle),
			},
			Press:   i%90 == 30,
			Release: i%90 == 60,
			Click:   i%120 == 0,
		}
		script = append(script, f)
	}
	return script
}

func TestReplayIsDeterministic(t *testing.T) {
	script := orbitScript(600)

	first, err := game.NewSession(game.DefaultConfig(), game.WithSeed(42))
	require.NoError(t, err)
	second, err := game.NewSession(game.DefaultConfig(), game.WithSeed(42))
	require.NoError(t, err)

	a := game.Replay(first, script)
	b := game.Replay(second, script)

	require.Len(t, a, len(script))
	assert.Equal(t, a, b)
	assert.Equal(t, first.Tally(), second.Tally())
	assert.NotEqual(t, first.ID, second.ID)
}

func TestReplaySeedChangesSpawns(t *testing.T) {
	script := orbitScript(2)

	first, err := game.NewSession(game.DefaultConfig(), game.WithSeed(1))
	require.NoError(t, err)
	second, err := game.NewSession(game.DefaultConfig(), game.WithSeed(2))
	require.NoError(t, err)

	a := game.Replay(first, script)
	b := game.Replay(second, script)

	require.Len(t, a[0].Enemies, 1)
	require.Len(t, b[0].Enemies, 1)
	assert.NotEqual(t, a[0].Enemies[0], b[0].Enemies[0])
}

func TestReplayInvariants(t *testing.T) {
	s, err := game.NewSession(game.DefaultConfig(), game.WithSeed(99))
	require.NoError(t, err)

	prev := s.Snapshot()
	for _, f := range orbitScript(900) {
		f.Apply(s)
		snap := s.Snapshot()

		assert.LessOrEqual(t, s.PowerUpCount(), 1)
		for _, e := range snap.Enemies {
			assert.Greater(t, e.Enemy.Size, 0.0)
			assert.LessOrEqual(t, len(e.Trail), game.EchoLength)
		}

		assert.GreaterOrEqual(t, snap.State.Deaths, prev.State.Deaths)
		assert.LessOrEqual(t, snap.State.Deaths-prev.State.Deaths, 1)
		if snap.State.Deaths == prev.State.Deaths && snap.State.Started && prev.State.Started {
			assert.GreaterOrEqual(t, snap.State.Level, prev.State.Level)
			assert.LessOrEqual(t, snap.State.Level-prev.State.Level, 1)
		}
		prev = snap
	}
}
