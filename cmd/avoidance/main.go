package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/plus3/avoidance/game"
	"github.com/plus3/avoidance/gfx"
	"github.com/plus3/avoidance/internal/cli"
	"go.uber.org/zap"
)

func main() {
	flags := cli.Register(flag.CommandLine, "stderr")
	debug := flag.Bool("debug", false, "Show the ECS inspectors and the session window.")
	flag.Parse()

	logger, err := flags.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	session, err := flags.NewSession(logger, game.WithComponents(gfx.RegisterComponents))
	if err != nil {
		logger.Fatal("could not create session", zap.Error(err))
	}

	if err := gfx.New(session, gfx.Options{Debug: *debug}).Run(); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}
