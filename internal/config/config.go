// Package config holds the typed runtime configuration for a library
// session. A Config is built once and passed to every component that needs
// layout or timing values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SourceKind selects where course records come from.
type SourceKind string

const (
	SourceDemo SourceKind = "demo"
	SourceFile SourceKind = "file"
	SourceDB   SourceKind = "db"
)

// Point is a position in scene coordinates.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Fade holds the transition timings.
type Fade struct {
	Out   time.Duration `yaml:"out"`
	In    time.Duration `yaml:"in"`
	Frame time.Duration `yaml:"frame"`
}

// Source describes the record data source.
type Source struct {
	Kind     SourceKind `yaml:"kind"`
	Path     string     `yaml:"path"`
	CourseID string     `yaml:"course"`
}

// Config is the full runtime configuration.
type Config struct {
	// Portal is the elevator location; learners arrive here after a ride.
	Portal      Point         `yaml:"portal"`
	Fade        Fade          `yaml:"fade"`
	Source      Source        `yaml:"source"`
	DemoLatency time.Duration `yaml:"demo_latency"`
	LogPath     string        `yaml:"log_path"`
	Verbose     bool          `yaml:"verbose"`
}

// Default returns the stock configuration: the demo course, 200ms fades and
// the elevator at (650, 300).
func Default() Config {
	return Config{
		Portal: Point{X: 650, Y: 300},
		Fade: Fade{
			Out:   200 * time.Millisecond,
			In:    200 * time.Millisecond,
			Frame: 40 * time.Millisecond,
		},
		Source: Source{
			Kind:     SourceDemo,
			CourseID: "demo-course",
		},
		DemoLatency: 300 * time.Millisecond,
	}
}

// Load returns Default overlaid with the YAML file at path (if non-empty)
// and then with environment overrides:
//   - STACKS_COURSE sets the course id
//   - STACKS_DB selects the db source at that path
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("STACKS_COURSE"); v != "" {
		cfg.Source.CourseID = v
	}
	if v := os.Getenv("STACKS_DB"); v != "" {
		cfg.Source.Kind = SourceDB
		cfg.Source.Path = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks for values no session can run with.
func (c Config) Validate() error {
	var errs []error
	if c.Fade.Out < 0 || c.Fade.In < 0 {
		errs = append(errs, errors.New("fade durations must not be negative"))
	}
	if c.Fade.Frame <= 0 {
		errs = append(errs, errors.New("fade.frame must be positive"))
	}
	if c.DemoLatency < 0 {
		errs = append(errs, errors.New("demo_latency must not be negative"))
	}
	switch c.Source.Kind {
	case SourceDemo, SourceDB:
	case SourceFile:
		if c.Source.Path == "" {
			errs = append(errs, errors.New("source.path is required for file sources"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source kind %q", c.Source.Kind))
	}
	if c.Source.CourseID == "" {
		errs = append(errs, errors.New("source.course is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// DefaultLogPath resolves the log file location:
// 1. $XDG_STATE_HOME/stacks/stacks.log
// 2. ~/.local/state/stacks/stacks.log
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "stacks", "stacks.log"), nil
}
