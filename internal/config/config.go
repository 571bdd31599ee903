// Package config loads the mudra daemon configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mudralabs/mudra/internal/gesture"
)

// Config holds the daemon configuration.
type Config struct {
	Camera  CameraConfig  `yaml:"camera"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Sinks   SinkConfig    `yaml:"sinks"`
	Tuning  TuningConfig  `yaml:"tuning"`
}

// CameraConfig selects the capture device and motion gating.
type CameraConfig struct {
	DeviceID        int     `yaml:"device_id"`
	MotionThreshold float64 `yaml:"motion_threshold"`
}

// ServerConfig configures the HTTP API listener.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// StorageConfig locates the profile database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SinkConfig locates event sink executables.
type SinkConfig struct {
	Dir string `yaml:"dir"`
}

// TuningConfig overrides engine parameters from the config file. It
// mirrors gesture.Params with durations expressed as YAML durations
// (e.g. "1200ms").
type TuningConfig struct {
	SmoothWindow    int           `yaml:"smooth_window"`
	ExtendTolerance float64       `yaml:"extend_tolerance"`
	GhostDistance   float64       `yaml:"ghost_distance"`
	SwipeCooldown   time.Duration `yaml:"swipe_cooldown"`
	SwipeMinDX      float64       `yaml:"swipe_min_dx"`
	SwipeAxisRatio  float64       `yaml:"swipe_axis_ratio"`
	PalmHold        time.Duration `yaml:"palm_hold"`
	RotateSettle    time.Duration `yaml:"rotate_settle"`
	RotateGain      float64       `yaml:"rotate_gain"`
	StillThreshold  float64       `yaml:"still_threshold"`
	StillTimeout    time.Duration `yaml:"still_timeout"`
	ZoomClampLo     float64       `yaml:"zoom_clamp_lo"`
	ZoomClampHi     float64       `yaml:"zoom_clamp_hi"`
	ZoomGain        float64       `yaml:"zoom_gain"`
	ZoomDeadband    float64       `yaml:"zoom_deadband"`
}

// Default returns the built-in configuration. The database and sinks
// live under ~/.mudra.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".mudra")

	return &Config{
		Camera: CameraConfig{
			DeviceID:        0,
			MotionThreshold: 1.0,
		},
		Server: ServerConfig{
			ListenAddr: "127.0.0.1:8930",
		},
		Storage: StorageConfig{
			DBPath: filepath.Join(base, "mudra.db"),
		},
		Sinks: SinkConfig{
			Dir: filepath.Join(base, "sinks"),
		},
		Tuning: fromParams(gesture.DefaultParams()),
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Params converts the tuning section into engine parameters.
func (c *Config) Params() gesture.Params {
	return gesture.Params{
		SmoothWindow:    c.Tuning.SmoothWindow,
		ExtendTolerance: c.Tuning.ExtendTolerance,
		GhostDistance:   c.Tuning.GhostDistance,
		SwipeCooldown:   c.Tuning.SwipeCooldown,
		SwipeMinDX:      c.Tuning.SwipeMinDX,
		SwipeAxisRatio:  c.Tuning.SwipeAxisRatio,
		PalmHold:        c.Tuning.PalmHold,
		RotateSettle:    c.Tuning.RotateSettle,
		RotateGain:      c.Tuning.RotateGain,
		StillThreshold:  c.Tuning.StillThreshold,
		StillTimeout:    c.Tuning.StillTimeout,
		ZoomClampLo:     c.Tuning.ZoomClampLo,
		ZoomClampHi:     c.Tuning.ZoomClampHi,
		ZoomGain:        c.Tuning.ZoomGain,
		ZoomDeadband:    c.Tuning.ZoomDeadband,
	}
}

func fromParams(p gesture.Params) TuningConfig {
	return TuningConfig{
		SmoothWindow:    p.SmoothWindow,
		ExtendTolerance: p.ExtendTolerance,
		GhostDistance:   p.GhostDistance,
		SwipeCooldown:   p.SwipeCooldown,
		SwipeMinDX:      p.SwipeMinDX,
		SwipeAxisRatio:  p.SwipeAxisRatio,
		PalmHold:        p.PalmHold,
		RotateSettle:    p.RotateSettle,
		RotateGain:      p.RotateGain,
		StillThreshold:  p.StillThreshold,
		StillTimeout:    p.StillTimeout,
		ZoomClampLo:     p.ZoomClampLo,
		ZoomClampHi:     p.ZoomClampHi,
		ZoomGain:        p.ZoomGain,
		ZoomDeadband:    p.ZoomDeadband,
	}
}
