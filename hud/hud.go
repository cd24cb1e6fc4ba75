// Package hud lays out the text and effect ramps shared by the windowed
// and terminal frontends. It has no drawing dependencies.
package hud

import (
	"fmt"
	"math"

	"github.com/plus3/avoidance/game"
)

const (
	IntroText = "click here to begin"
	DeathText = "you suck"
)

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// DialogBox is the centred box the intro and death messages are drawn in:
// half the width and a quarter of the height of the play area.
func DialogBox(width, height float64) Rect {
	w, h := width/2, height/4
	return Rect{X: (width - w) / 2, Y: (height - h) / 2, W: w, H: h}
}

// Dialog returns the message shown over the play area, if any.
func Dialog(mode game.Mode) (string, bool) {
	switch mode {
	case game.ModeIntro:
		return IntroText, true
	case game.ModeDead:
		return DeathText, true
	}
	return "", false
}

// Status returns the HUD lines drawn in the top-right corner.
func Status(state game.GameState) []string {
	lines := []string{fmt.Sprintf("level: %d", state.Level)}
	if state.Deaths > 0 {
		lines = append(lines, fmt.Sprintf("deaths: %d", state.Deaths))
	}
	return lines
}

// EnemyAlpha is the opacity of enemies while a level fades in. It ramps
// from 0 to 1 as the pause timer runs down.
func EnemyAlpha(state game.GameState, fadeFrames int) float64 {
	if !state.FadeOut || fadeFrames <= 0 {
		return 1
	}
	elapsed := fadeFrames - state.PauseTimer
	return clamp01(float64(elapsed) / float64(fadeFrames))
}

// TrailAlpha is the opacity of the i-th of n echo trail points, oldest
// first.
func TrailAlpha(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return clamp01(float64(i+1) / float64(n+1) * 0.5)
}

// FuseProgress is how far an armed power-up is toward detonation, in [0, 1].
func FuseProgress(p game.PowerUp, fuse int) float64 {
	if p.Phase != game.PhaseArmed || fuse <= 0 {
		return 0
	}
	return clamp01(float64(fuse-p.StepsUntilActive) / float64(fuse))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
