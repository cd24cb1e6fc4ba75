package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/avoidance/internal/cli"
	"github.com/plus3/avoidance/tty"
	"go.uber.org/zap"
)

func main() {
	// The terminal owns stdout and stderr while the game runs.
	flags := cli.Register(flag.CommandLine, "avoidance-tty.log")
	fps := flag.Int("fps", 30, "Frames per second.")
	flag.Parse()

	if err := run(flags, *fps); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(flags *cli.Flags, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}

	logger, err := flags.Logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	session, err := flags.NewSession(logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tty.New(screen, session).Run(ctx, time.Second/time.Duration(fps))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		logger.Error("terminal exited", zap.Error(err))
	}
	return err
}
