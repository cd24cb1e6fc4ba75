package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/plus3/avoidance/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / game.ReferenceHz

func playing(cfg *game.Config) game.Snapshot {
	return game.Snapshot{
		Mode:   game.ModePlaying,
		State:  game.GameState{Started: true, Level: 1},
		Player: game.NewPlayer(cfg),
	}
}

func TestBotClicksThroughDialogs(t *testing.T) {
	cfg := game.DefaultConfig()
	bot := NewBot(&cfg)

	for _, mode := range []game.Mode{game.ModeIntro, game.ModeDead} {
		f := bot.Next(game.Snapshot{Mode: mode}, &cfg, dt)
		assert.True(t, f.Click, mode.String())
		assert.Equal(t, game.Point{X: 640, Y: 360}, f.Pointer)
	}
}

func TestBotStepsAwayFromEnemies(t *testing.T) {
	cfg := game.DefaultConfig()
	bot := NewBot(&cfg)

	snap := playing(&cfg)
	snap.Enemies = []game.EnemySnapshot{{
		Position: game.Point{X: 700, Y: 360},
		Enemy:    game.Enemy{InitialSize: 20, Size: 20},
	}}

	f := bot.Next(snap, &cfg, dt)
	assert.Less(t, f.Pointer.X, 640.0)
	assert.InDelta(t, 360, f.Pointer.Y, 1e-9)
}

func TestBotStaysStillWhenSafe(t *testing.T) {
	cfg := game.DefaultConfig()
	bot := NewBot(&cfg)

	f := bot.Next(playing(&cfg), &cfg, dt)
	assert.Equal(t, game.Point{X: 640, Y: 360}, f.Pointer)
	assert.False(t, f.Press || f.Release || f.Click)
}

func TestBotGrabsAndDetonatesPowerUps(t *testing.T) {
	cfg := game.DefaultConfig()
	bot := NewBot(&cfg)

	snap := playing(&cfg)
	snap.PowerUp = &game.PowerUpSnapshot{
		Position: game.Point{X: 640, Y: 360},
		PowerUp:  game.PowerUp{Kind: game.PowerUpYellow, Phase: game.PhaseIdle, Size: cfg.PowerUpSize},
	}
	f := bot.Next(snap, &cfg, dt)
	require.True(t, f.Press)

	snap.Player.HasPowerUp = true
	snap.PowerUp.PowerUp.Phase = game.PhaseHeld
	f = bot.Next(snap, &cfg, dt)
	assert.False(t, f.Press || f.Release, "holds while nothing is close")

	snap.Enemies = []game.EnemySnapshot{{
		Position: game.Point{X: 680, Y: 360},
		Enemy:    game.Enemy{InitialSize: 20, Size: 20},
	}}
	f = bot.Next(snap, &cfg, dt)
	assert.True(t, f.Release)
}

func TestPlay(t *testing.T) {
	cfg := game.DefaultConfig()

	run := func() *Report {
		s, err := game.NewSession(cfg, game.WithSeed(5))
		require.NoError(t, err)
		return Play(context.Background(), s, NewBot(&cfg), 600, dt)
	}

	report := run()
	assert.EqualValues(t, 600, report.Frames)
	assert.EqualValues(t, 600, report.Tally.Frames)
	assert.GreaterOrEqual(t, report.Tally.BestLevel, 1)
	assert.Len(t, report.Systems, 5)
	assert.Len(t, report.UpdateTime.Samples, 600)
	assert.LessOrEqual(t, report.UpdateTime.Min, report.UpdateTime.Avg)
	assert.LessOrEqual(t, report.UpdateTime.Avg, report.UpdateTime.Max)

	again := run()
	assert.Equal(t, report.Tally, again.Tally)
	assert.Equal(t, report.Deaths, again.Deaths)

	var out bytes.Buffer
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "# Avoidance Soak Report")
	assert.Contains(t, out.String(), "**Frames:** 600")
	assert.Contains(t, out.String(), "**Frame Limit:** 600")
	assert.Contains(t, out.String(), "FrameSystem")
}

func TestPlayStopsOnCancel(t *testing.T) {
	cfg := game.DefaultConfig()
	s, err := game.NewSession(cfg, game.WithSeed(5))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := Play(ctx, s, NewBot(&cfg), 0, dt)
	assert.Zero(t, report.Frames)
	assert.Empty(t, report.UpdateTime.Samples)
}
