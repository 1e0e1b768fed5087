// Package config loads radarmaze settings from a YAML file, a .env file
// and RADARMAZE_* environment variables, in increasing order of priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/radarmaze/explorer"
	"github.com/katalvlaran/radarmaze/mazefile"
)

// ErrInvalidConfig wraps every validation failure with the offending field.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment variables read by Load.
const (
	EnvAddr       = "RADARMAZE_ADDR"
	EnvMaze       = "RADARMAZE_MAZE"
	EnvRadarRange = "RADARMAZE_RADAR_RANGE"
	EnvAngleStep  = "RADARMAZE_ANGLE_STEP"
	EnvLogLevel   = "RADARMAZE_LOG_LEVEL"
)

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Maze     MazeConfig     `yaml:"maze"`
	Radar    RadarConfig    `yaml:"radar"`
	Explorer ExplorerConfig `yaml:"explorer"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxSessions    int      `yaml:"max_sessions"`
}

// MazeConfig names the default maze document.
type MazeConfig struct {
	Path       string  `yaml:"path"`
	Resolution float64 `yaml:"resolution"`
}

// RadarConfig configures the range sensor.
type RadarConfig struct {
	Range     int `yaml:"range"`
	AngleStep int `yaml:"angle_step"`
}

// ExplorerConfig configures the exploration policy.
type ExplorerConfig struct {
	ExitThreshold int `yaml:"exit_threshold"`
	HistorySize   int `yaml:"history_size"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			MaxSessions:    64,
		},
		Maze:     MazeConfig{Resolution: mazefile.DefaultResolution},
		Radar:    RadarConfig{Range: explorer.DefaultRadarRange, AngleStep: explorer.DefaultAngleStep},
		Explorer: ExplorerConfig{ExitThreshold: explorer.DefaultExitThreshold, HistorySize: explorer.DefaultHistorySize},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds a Config from the defaults, the YAML file at path (skipped
// when path is empty), the given .env files (missing ones are ignored) and
// the process environment, then validates it. Process variables win over
// .env values.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	dotenv, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err = cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readEnvFiles(files []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", f, err)
		}
		for k, v := range vals {
			if _, seen := out[k]; !seen {
				out[k] = v
			}
		}
	}

	return out, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddr); ok {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvMaze); ok {
		c.Maze.Path = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{EnvRadarRange, &c.Radar.Range},
		{EnvAngleStep, &c.Radar.AngleStep},
	}
	for _, it := range ints {
		v, ok := lookup(it.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, it.key, err)
		}
		*it.dst = n
	}

	return nil
}

// Validate checks every field and reports the first invalid one.
func (c *Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidConfig)
	case c.Server.MaxSessions < 1:
		return fmt.Errorf("%w: server.max_sessions must be ≥ 1, got %d", ErrInvalidConfig, c.Server.MaxSessions)
	case c.Maze.Resolution <= 0:
		return fmt.Errorf("%w: maze.resolution must be > 0, got %v", ErrInvalidConfig, c.Maze.Resolution)
	case c.Radar.Range <= 0:
		return fmt.Errorf("%w: radar.range must be > 0, got %d", ErrInvalidConfig, c.Radar.Range)
	case c.Radar.AngleStep < 1 || c.Radar.AngleStep > 360:
		return fmt.Errorf("%w: radar.angle_step must be within [1, 360], got %d", ErrInvalidConfig, c.Radar.AngleStep)
	case c.Explorer.ExitThreshold < 0:
		return fmt.Errorf("%w: explorer.exit_threshold must be ≥ 0, got %d", ErrInvalidConfig, c.Explorer.ExitThreshold)
	case c.Explorer.HistorySize < 1:
		return fmt.Errorf("%w: explorer.history_size must be ≥ 1, got %d", ErrInvalidConfig, c.Explorer.HistorySize)
	case c.Log.Format != "text" && c.Log.Format != "json":
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalidConfig, c.Log.Format)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}

	return nil
}

// ExplorerOptions translates the radar and explorer sections into options.
func (c *Config) ExplorerOptions(logger *slog.Logger) []explorer.Option {
	return []explorer.Option{
		explorer.WithRadarRange(c.Radar.Range),
		explorer.WithAngleStep(c.Radar.AngleStep),
		explorer.WithExitThreshold(c.Explorer.ExitThreshold),
		explorer.WithHistorySize(c.Explorer.HistorySize),
		explorer.WithLogger(logger),
	}
}

// Logger builds the application logger writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	var lvl slog.Level
	_ = lvl.UnmarshalText([]byte(c.Log.Level)) // validated; falls back to info
	opts := &slog.HandlerOptions{Level: lvl}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
