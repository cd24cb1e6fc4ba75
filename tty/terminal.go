// Package tty is a terminal frontend that plays a session with the mouse.
package tty

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/avoidance/game"
	"go.uber.org/zap"
)

type Terminal struct {
	screen   tcell.Screen
	session  *game.Session
	renderer *Renderer
	cfg      game.Config
	log      *zap.Logger

	pressed bool
}

// New takes an initialised screen and enables mouse reporting on it.
func New(screen tcell.Screen, session *game.Session) *Terminal {
	screen.EnableMouse()
	screen.HideCursor()

	return &Terminal{
		screen:   screen,
		session:  session,
		renderer: NewRenderer(screen),
		cfg:      session.Config(),
		log:      session.Logger(),
	}
}

// HandleEvent applies one terminal event. It reports false when the user
// asked to quit.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		at := t.renderer.Viewport(&t.cfg).ToPoint(col, row)
		pressed := ev.Buttons()&tcell.Button1 != 0

		t.session.SetPointer(at)
		switch {
		case pressed && !t.pressed:
			t.session.OnPress(at)
		case !pressed && t.pressed:
			t.session.OnRelease(at)
			t.session.OnClick(at)
		}
		t.pressed = pressed

	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// Frame advances the session by dt and redraws.
func (t *Terminal) Frame(dt float64) {
	t.session.Advance(dt)
	t.renderer.Draw(t.session.Snapshot(), &t.cfg)
}

// Run plays until ctx is cancelled or the user quits.
func (t *Terminal) Run(ctx context.Context, interval time.Duration) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go t.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	t.log.Info("terminal opened", zap.Duration("interval", interval))
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !t.HandleEvent(ev) {
				t.log.Info("terminal closed", zap.Int64("frames", t.session.Tally().Frames))
				return nil
			}

		case now := <-ticker.C:
			t.Frame(now.Sub(last).Seconds())
			last = now
		}
	}
}
