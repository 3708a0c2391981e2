package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/brawler/input"
	"github.com/milk9111/brawler/logger"
)

//go:embed default.yaml
var defaultYAML []byte

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Input      InputConfig      `yaml:"input"`
	Debug      DebugConfig      `yaml:"debug"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type SimulationConfig struct {
	TickRate   int     `yaml:"tick_rate"`
	Gravity    float64 `yaml:"gravity"`
	Iterations uint    `yaml:"iterations"`
}

// Dt is the fixed physics step in seconds.
func (s SimulationConfig) Dt() float64 {
	return 1 / float64(s.TickRate)
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type InputConfig struct {
	DeadZone float64             `yaml:"dead_zone"`
	Bindings []input.BindingSpec `yaml:"bindings"`
}

type DebugConfig struct {
	Gizmos    bool `yaml:"gizmos"`
	HotReload bool `yaml:"hot_reload"`
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	return parse(defaultYAML, "default.yaml", nil)
}

// Load reads path on top of the embedded defaults. Fields missing from the
// file keep their default value; a bindings list in the file replaces the
// default list as a whole.
func Load(path string) (*Config, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return parse(data, path, base)
}

func parse(data []byte, name string, base *Config) (*Config, error) {
	cfg := &Config{}
	if base != nil {
		*cfg = *base
		cfg.Input.Bindings = nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", name, err)
	}
	if base != nil && cfg.Input.Bindings == nil {
		cfg.Input.Bindings = base.Input.Bindings
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate %s: %w", name, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if c.Simulation.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: tick_rate %d", ErrInvalid, c.Simulation.TickRate))
	}
	if math.IsNaN(c.Simulation.Gravity) || math.IsInf(c.Simulation.Gravity, 0) {
		errs = append(errs, fmt.Errorf("%w: gravity %v", ErrInvalid, c.Simulation.Gravity))
	}
	if c.Input.DeadZone < 0 || c.Input.DeadZone >= 1 {
		errs = append(errs, fmt.Errorf("%w: dead_zone %v outside [0, 1)", ErrInvalid, c.Input.DeadZone))
	}
	if !logger.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("%w: logging level %q", ErrInvalid, c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: logging format %q", ErrInvalid, c.Logging.Format))
	}
	if _, err := input.Compile(c.Input.Bindings); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Bindings compiles the input bindings.
func (c *Config) Bindings() (*input.Map, error) {
	return input.Compile(c.Input.Bindings)
}

// LoggerConfig adapts the logging section for logger.Init.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{Level: c.Logging.Level, Format: c.Logging.Format}
}
