package gfx

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/avoidance/game"
	"github.com/plus3/ooftn/ecs/debugui"
)

// spawnSessionWindow adds an overlay window with the session's state,
// tallies and per-system timings.
func spawnSessionWindow(session *game.Session) {
	storage := session.Storage()
	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			var state *game.GameState
			var player *game.Player
			var tally *game.Tally
			if !storage.ReadSingleton(&state) || !storage.ReadSingleton(&player) || !storage.ReadSingleton(&tally) {
				return
			}

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(300, 360), imgui.CondOnce)

			if imgui.BeginV("Session", nil, 0) {
				imgui.Text(fmt.Sprintf("Session: %s", session.ID))
				imgui.Text(fmt.Sprintf("Seed: %d", session.Seed))
				imgui.Text(fmt.Sprintf("Mode: %s", game.ModeOf(state, player)))
				imgui.Separator()
				imgui.Text(fmt.Sprintf("Level: %d (best %d)", state.Level, tally.BestLevel))
				imgui.Text(fmt.Sprintf("Deaths: %d", state.Deaths))
				imgui.Text(fmt.Sprintf("Fade: %v (%d)", state.FadeOut, state.PauseTimer))
				imgui.Text(fmt.Sprintf("Holding power-up: %v", player.HasPowerUp))
				imgui.Separator()
				imgui.Text(fmt.Sprintf("Frames: %d", tally.Frames))
				imgui.Text(fmt.Sprintf("Enemies: %d live, %d spawned", session.EnemyCount(), tally.EnemiesSpawned))
				imgui.Text(fmt.Sprintf("Expired / destroyed: %d / %d", tally.EnemiesExpired, tally.EnemiesDestroyed))
				imgui.Text(fmt.Sprintf("Power-ups: %d spawned, %d collected, %d detonated",
					tally.PowerUpsSpawned, tally.PowerUpsCollected, tally.PowerUpsDetonated))
				imgui.Separator()
				for _, sys := range session.Stats().Systems {
					imgui.Text(fmt.Sprintf("%-16s %8s", sys.Name, sys.AvgDuration))
				}

				imgui.End()
			}
		},
	})
}
