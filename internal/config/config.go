// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ik5/audqueue/queue"
)

const (
	appName   = "audqueue"
	envPrefix = "AUDQUEUE_"

	BackendBeep = "beep"
	BackendOto  = "oto"
)

var (
	ErrUnknownBackend = errors.New("unknown output backend")
	ErrInvalidOutput  = errors.New("output channels and sample rate must be positive")
)

type Config struct {
	KeepAlive         bool          `koanf:"keep_alive"          env:"KEEP_ALIVE"`
	FrameLenThreshold int           `koanf:"frame_len_threshold" env:"FRAME_LEN_THRESHOLD"`
	KeepAliveSilence  time.Duration `koanf:"keep_alive_silence"  env:"KEEP_ALIVE_SILENCE"`
	LogLevel          string        `koanf:"log_level"           env:"LOG_LEVEL"`

	Output Output `koanf:"output" envPrefix:"OUTPUT_"`
}

// Output describes the device every source is normalised to.
type Output struct {
	Backend    string        `koanf:"backend"     env:"BACKEND"`     // "beep" or "oto"
	SampleRate int           `koanf:"sample_rate" env:"SAMPLE_RATE"`
	Channels   int           `koanf:"channels"    env:"CHANNELS"`
	Buffer     time.Duration `koanf:"buffer"      env:"BUFFER"`      // device buffer length
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		KeepAlive:         false,
		FrameLenThreshold: queue.DefaultFrameLenThreshold,
		KeepAliveSilence:  queue.DefaultKeepAliveSilence,
		LogLevel:          "info",
		Output: Output{
			Backend:    BackendBeep,
			SampleRate: 44100,
			Channels:   2,
			Buffer:     100 * time.Millisecond,
		},
	}
}

// Paths lists the config files Load reads, lowest priority first.
func Paths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		appName + ".toml",
	}
}

// Load merges the existing files among paths over the defaults, then
// applies AUDQUEUE_* variables from environ. A nil environ reads the
// process environment.
func Load(paths []string, environ map[string]string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	opts := env.Options{Prefix: envPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Output.Backend {
	case BackendBeep, BackendOto:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Output.Backend)
	}

	if c.Output.Channels <= 0 || c.Output.SampleRate <= 0 {
		return ErrInvalidOutput
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level is the parsed log level, info when unset or invalid.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Queue builds the queue tunables. The fallback format matches the output
// device so keep-alive silence never changes the stream layout.
func (c *Config) Queue(logger *log.Logger) queue.Config {
	return queue.Config{
		KeepAliveIfEmpty:   c.KeepAlive,
		FrameLenThreshold:  c.FrameLenThreshold,
		KeepAliveSilence:   c.KeepAliveSilence,
		FallbackChannels:   c.Output.Channels,
		FallbackSampleRate: c.Output.SampleRate,
		Logger:             logger,
	}
}
