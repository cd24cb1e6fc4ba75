// Package cli holds the flags shared by the avoidance binaries.
package cli

import (
	"flag"

	"github.com/plus3/avoidance/game"
	"github.com/plus3/avoidance/logging"
	"go.uber.org/zap"
)

type Flags struct {
	ConfigPath string
	Seed       uint64
	LogLevel   string
	LogFormat  string
	LogFile    string
	Dev        bool
}

// Register adds the shared flags to fs. logFile is the default log
// destination.
func Register(fs *flag.FlagSet, logFile string) *Flags {
	defaults := logging.DefaultConfig()
	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to a YAML tuning file. Defaults are used when empty.")
	fs.Uint64Var(&f.Seed, "seed", 0, "Random seed for spawning. Zero picks one at random.")
	fs.StringVar(&f.LogLevel, "log-level", defaults.Level, "Log level: debug, info, warn or error.")
	fs.StringVar(&f.LogFormat, "log-format", defaults.Format, "Log format: console or json.")
	fs.StringVar(&f.LogFile, "log-file", logFile, "Log destination: a path, stdout or stderr.")
	fs.BoolVar(&f.Dev, "dev", false, "Use development logging.")
	return f
}

func (f *Flags) Logger() (*zap.Logger, error) {
	return logging.New(logging.Config{
		Level:       f.LogLevel,
		Format:      f.LogFormat,
		Development: f.Dev,
		Output:      f.LogFile,
	})
}

// Config loads the tuning file, or the defaults when no path was given.
func (f *Flags) Config() (game.Config, error) {
	if f.ConfigPath == "" {
		return game.DefaultConfig(), nil
	}
	return game.LoadConfig(f.ConfigPath)
}

// SessionOptions returns the logger and seed options for game.NewSession.
func (f *Flags) SessionOptions(logger *zap.Logger) []game.Option {
	opts := []game.Option{game.WithLogger(logger)}
	if f.Seed != 0 {
		opts = append(opts, game.WithSeed(f.Seed))
	}
	return opts
}

// NewSession builds a session from the parsed flags.
func (f *Flags) NewSession(logger *zap.Logger, extra ...game.Option) (*game.Session, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}
	return game.NewSession(cfg, append(f.SessionOptions(logger), extra...)...)
}
