package game

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth    = 1280.0
	DefaultHeight   = 720.0
	DifficultyCurve = 2.0
	EchoLength      = 8
	// FadeFrames is the length of the night-vision fade-in after a level advance.
	FadeFrames = 60
	// PlayerSize is the pointer diameter used for collisions.
	PlayerSize      = 12.0
	BaseEnemySpeed  = 4.0
	ShrinkNumerator = 10.0
	ShrinkScale     = 50.0
	// SpawnAttempts bounds the offsets applied to a spawn that lands on the pointer.
	SpawnAttempts  = 4
	YellowEvery    = 3
	PurpleEvery    = 4
	PowerUpSize    = 24.0
	PulseAmplitude = 5.0
	// PulseRate is in radians per frame.
	PulseRate     = 0.15
	YellowSteps   = 40
	YellowGrowth  = 9.0
	PurpleFuse    = 45
	PurpleSteps   = 50
	PurpleMaxSize = 280.0
	ReferenceHz   = 60.0
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// CollisionRule selects the overlap test used for every collision check.
type CollisionRule string

const (
	CollisionEuclidean   CollisionRule = "euclidean"
	CollisionAxisAligned CollisionRule = "axis"
)

// Config holds the tuning of a session.
type Config struct {
	Width     float64       `yaml:"width"`
	Height    float64       `yaml:"height"`
	Collision CollisionRule `yaml:"collision"`

	DifficultyCurve float64 `yaml:"difficulty_curve"`
	EchoLength      int     `yaml:"echo_length"`
	FadeFrames      int     `yaml:"fade_frames"`
	PlayerSize      float64 `yaml:"player_size"`

	BaseEnemySpeed  float64 `yaml:"base_enemy_speed"`
	ShrinkNumerator float64 `yaml:"shrink_numerator"`
	ShrinkScale     float64 `yaml:"shrink_scale"`
	SpawnAttempts   int     `yaml:"spawn_attempts"`

	YellowEvery    int     `yaml:"yellow_every"`
	PurpleEvery    int     `yaml:"purple_every"`
	PowerUpSize    float64 `yaml:"power_up_size"`
	PulseAmplitude float64 `yaml:"pulse_amplitude"`
	PulseRate      float64 `yaml:"pulse_rate"`
	YellowSteps    int     `yaml:"yellow_steps"`
	YellowGrowth   float64 `yaml:"yellow_growth"`
	PurpleFuse     int     `yaml:"purple_fuse"`
	PurpleSteps    int     `yaml:"purple_steps"`
	PurpleMaxSize  float64 `yaml:"purple_max_size"`

	// NormalizeTiming scales movement, shrink and growth by dt*ReferenceHz
	// so rates hold when the frame rate differs from ReferenceHz.
	NormalizeTiming bool    `yaml:"normalize_timing"`
	ReferenceHz     float64 `yaml:"reference_hz"`
}

func DefaultConfig() Config {
	return Config{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		Collision:       CollisionEuclidean,
		DifficultyCurve: DifficultyCurve,
		EchoLength:      EchoLength,
		FadeFrames:      FadeFrames,
		PlayerSize:      PlayerSize,
		BaseEnemySpeed:  BaseEnemySpeed,
		ShrinkNumerator: ShrinkNumerator,
		ShrinkScale:     ShrinkScale,
		SpawnAttempts:   SpawnAttempts,
		YellowEvery:     YellowEvery,
		PurpleEvery:     PurpleEvery,
		PowerUpSize:     PowerUpSize,
		PulseAmplitude:  PulseAmplitude,
		PulseRate:       PulseRate,
		YellowSteps:     YellowSteps,
		YellowGrowth:    YellowGrowth,
		PurpleFuse:      PurpleFuse,
		PurpleSteps:     PurpleSteps,
		PurpleMaxSize:   PurpleMaxSize,
		ReferenceHz:     ReferenceHz,
	}
}

// LoadConfig reads a YAML tuning file on top of DefaultConfig. Keys that
// are not part of Config are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer func() { _ = file.Close() }()

	if err := DecodeConfig(file, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes YAML from r into cfg and validates the result.
// An empty document leaves cfg untouched.
func DecodeConfig(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, typeErr.Errors[0])
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg.Validate()
}

// Validate reports the first setting that cannot drive a session.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: play area %gx%g", ErrInvalidConfig, c.Width, c.Height)
	case c.Collision != CollisionEuclidean && c.Collision != CollisionAxisAligned:
		return fmt.Errorf("%w: unknown collision rule %q", ErrInvalidConfig, c.Collision)
	case c.DifficultyCurve < 0:
		return fmt.Errorf("%w: difficulty_curve must not be negative", ErrInvalidConfig)
	case c.EchoLength < 0:
		return fmt.Errorf("%w: echo_length must not be negative", ErrInvalidConfig)
	case c.FadeFrames < 0:
		return fmt.Errorf("%w: fade_frames must not be negative", ErrInvalidConfig)
	case c.PlayerSize < 0:
		return fmt.Errorf("%w: player_size must not be negative", ErrInvalidConfig)
	case c.BaseEnemySpeed < 0:
		return fmt.Errorf("%w: base_enemy_speed must not be negative", ErrInvalidConfig)
	case c.ShrinkNumerator <= 0 || c.ShrinkScale <= 0:
		return fmt.Errorf("%w: shrink_numerator and shrink_scale must be positive", ErrInvalidConfig)
	case c.YellowEvery <= 0 || c.PurpleEvery <= 0:
		return fmt.Errorf("%w: power-up level multiples must be positive", ErrInvalidConfig)
	case c.YellowSteps <= 0 || c.PurpleSteps <= 0 || c.PurpleFuse < 0:
		return fmt.Errorf("%w: power-up step counts must be positive", ErrInvalidConfig)
	case c.NormalizeTiming && c.ReferenceHz <= 0:
		return fmt.Errorf("%w: reference_hz must be positive when normalize_timing is set", ErrInvalidConfig)
	}
	return nil
}

// timeScale converts a frame's delta time into a multiplier for per-frame
// rates.
func (c *Config) timeScale(dt float64) float64 {
	if !c.NormalizeTiming || dt <= 0 {
		return 1
	}
	return dt * c.ReferenceHz
}
