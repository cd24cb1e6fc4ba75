package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/plus3/avoidance/game"
	"github.com/plus3/avoidance/internal/cli"
	"go.uber.org/zap"
)

func main() {
	flags := cli.Register(flag.CommandLine, "stderr")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the bot should play for.")
	maxFrames := flag.Int64("frames", 0, "Stop after this many frames. Zero plays for the whole duration.")
	hz := flag.Float64("hz", game.ReferenceHz, "Simulated frames per second.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	logger, err := flags.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if *hz <= 0 {
		logger.Fatal("hz must be positive", zap.Float64("hz", *hz))
	}

	session, err := flags.NewSession(logger)
	if err != nil {
		logger.Fatal("could not create session", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	cfg := session.Config()
	logger.Info("soak started", zap.Duration("duration", *duration), zap.Int64("frames", *maxFrames))
	report := Play(ctx, session, NewBot(&cfg), *maxFrames, 1 / *hz)
	report.Duration = *duration
	report.GCPauseMetrics = *gcPauseMetrics
	logger.Info("soak finished",
		zap.Int64("frames", report.Frames),
		zap.Int("deaths", report.Deaths),
		zap.Int("best_level", report.Tally.BestLevel),
	)

	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("could not write report", zap.Error(err))
	}
}

// Play lets bot drive session until ctx is done or maxFrames frames have
// run. A zero maxFrames means no frame limit.
func Play(ctx context.Context, session *game.Session, bot *Bot, maxFrames int64, dt float64) *Report {
	cfg := session.Config()
	report := &Report{
		SessionID: session.ID.String(),
		Seed:      session.Seed,
		MaxFrames: maxFrames,
		DeltaTime: dt,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, 1024),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

Loop:
	for maxFrames == 0 || report.Frames < maxFrames {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		frame := bot.Next(session.Snapshot(), &cfg, dt)

		updateStart := time.Now()
		frame.Apply(session)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.Frames++
	}

	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)

	snap := session.Snapshot()
	report.Deaths = snap.State.Deaths
	if snap.Mode == game.ModeDead {
		report.Deaths++
	}
	report.Level = snap.State.Level
	report.Tally = session.Tally()
	report.Systems = session.Stats().Systems
	report.UpdateTime.Finalize()
	return report
}
