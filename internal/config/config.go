package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputDir   = "plots"
	DefaultFormat      = "png"
	DefaultWidth       = 8.0
	DefaultHeight      = 6.0
	DefaultGridColumns = 3
	DefaultViewMode    = "tui"
	DefaultTheme       = "cyberpunk"
	DefaultPolicy      = "zero_bound"
	DefaultTermWidth   = 72
	DefaultTermHeight  = 14
)

var (
	formats  = []string{"png", "svg"}
	modes    = []string{"tui", "command", "print", "none"}
	policies = []string{"zero_bound", "range"}
)

type Config struct {
	Output    OutputConfig    `yaml:"output"`
	View      ViewConfig      `yaml:"view"`
	Layout    LayoutConfig    `yaml:"layout"`
	Normalise NormaliseConfig `yaml:"normalise"`
	Log       LogConfig       `yaml:"log"`
}

type OutputConfig struct {
	Dir    string  `yaml:"dir"`
	Format string  `yaml:"format"`
	Width  float64 `yaml:"width"`  // inches
	Height float64 `yaml:"height"` // inches
}

type ViewConfig struct {
	Mode    string `yaml:"mode"`
	Command string `yaml:"command"`
	Theme   string `yaml:"theme"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
}

type LayoutConfig struct {
	GridColumns int `yaml:"grid_columns"`
	PairBins    int `yaml:"pair_bins"`
}

type NormaliseConfig struct {
	Policy string `yaml:"policy"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:    DefaultOutputDir,
			Format: DefaultFormat,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		View: ViewConfig{
			Mode:    DefaultViewMode,
			Command: "xdg-open {path}",
			Theme:   DefaultTheme,
			Width:   DefaultTermWidth,
			Height:  DefaultTermHeight,
		},
		Layout: LayoutConfig{
			GridColumns: DefaultGridColumns,
			PairBins:    10,
		},
		Normalise: NormaliseConfig{
			Policy: DefaultPolicy,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the renderer and display cannot act on.
func (c *Config) Validate() error {
	if !oneOf(c.Output.Format, formats) {
		return fmt.Errorf("unknown output format %q (want one of %v)", c.Output.Format, formats)
	}
	if !oneOf(c.View.Mode, modes) {
		return fmt.Errorf("unknown view mode %q (want one of %v)", c.View.Mode, modes)
	}
	if !oneOf(c.Normalise.Policy, policies) {
		return fmt.Errorf("unknown normalise policy %q (want one of %v)", c.Normalise.Policy, policies)
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("figure size must be positive, got %gx%g", c.Output.Width, c.Output.Height)
	}
	if c.Layout.GridColumns < 1 {
		return fmt.Errorf("grid_columns must be at least 1, got %d", c.Layout.GridColumns)
	}
	if c.Layout.PairBins < 1 {
		return fmt.Errorf("pair_bins must be at least 1, got %d", c.Layout.PairBins)
	}
	return nil
}

// ApplyPreset copies the figure size of a named preset into c.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	c.Output.Width = p.Width
	c.Output.Height = p.Height
	if p.GridColumns > 0 {
		c.Layout.GridColumns = p.GridColumns
	}
	return nil
}

func oneOf(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}
