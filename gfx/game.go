// Package gfx is the windowed frontend: it feeds the mouse into a session
// and draws it with ebiten, optionally under the ECS debug overlay.
package gfx

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/avoidance/game"
	"github.com/plus3/ooftn/ecs"
	"github.com/plus3/ooftn/ecs/debugui"
	debugui_ebiten "github.com/plus3/ooftn/ecs/debugui/ebiten"
	"go.uber.org/zap"
)

const Title = "avoidance"

type Options struct {
	// Debug shows the ECS inspectors and the session window.
	Debug bool
}

// Game implements ebiten.Game around a session. Input runs before the
// session advances; rendering runs from Draw on its own scheduler.
type Game struct {
	Session         *game.Session
	InputScheduler  *ecs.Scheduler
	RenderScheduler *ecs.Scheduler
	Screen          *ecs.Singleton[Screen]
	ImguiBackend    *ecs.Singleton[debugui_ebiten.ImguiBackend]

	log *zap.Logger
}

// New wires the frontend schedulers into session. The session must have
// been created with game.WithComponents(RegisterComponents).
func New(session *game.Session, opts Options) *Game {
	storage := session.Storage()
	cfg := session.Config()

	g := &Game{
		Session: session,
		Screen:  ecs.NewSingleton(storage, Screen{}),
		log:     session.Logger(),
	}

	g.InputScheduler = ecs.NewScheduler(storage)
	g.InputScheduler.Register(&InputSystem{session: session})

	if opts.Debug {
		backend := ebitenbackend.NewEbitenBackend()
		backend.CreateWindow(Title, int(cfg.Width), int(cfg.Height))
		imgui.CurrentIO().SetIniFilename("")

		g.ImguiBackend = ecs.NewSingleton(storage, debugui_ebiten.ImguiBackend{EbitenBackend: backend})
		ecs.NewSingleton(storage, *debugui.NewFrameTimer())

		debugui.SpawnDebugUI(storage)
		spawnSessionWindow(session)
		g.InputScheduler.Register(&debugui.ImguiSystem{})
	} else {
		ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
		ebiten.SetWindowTitle(Title)
	}

	g.RenderScheduler = ecs.NewScheduler(storage)
	g.RenderScheduler.Register(&RenderSystem{})

	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	dt := 1.0 / float64(ebiten.TPS())

	if g.ImguiBackend != nil {
		g.ImguiBackend.Get().BeginFrame()
	}
	g.InputScheduler.Once(dt)
	g.Session.Advance(dt)
	if g.ImguiBackend != nil {
		g.ImguiBackend.Get().EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Screen.Get().Image = screen
	g.RenderScheduler.Once(0)

	if g.ImguiBackend != nil {
		g.ImguiBackend.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.ImguiBackend != nil {
		g.ImguiBackend.Get().Layout(outsideWidth, outsideHeight)
	}
	cfg := g.Session.Config()
	return int(cfg.Width), int(cfg.Height)
}

// Run blocks until the window is closed or Escape is pressed.
func (g *Game) Run() error {
	g.log.Info("window opened", zap.Bool("debug", g.ImguiBackend != nil))
	err := ebiten.RunGame(g)
	g.log.Info("window closed", zap.Int64("frames", g.Session.Tally().Frames))
	return err
}
