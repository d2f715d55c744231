package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/atom/internal/anim"
	"github.com/san-kum/atom/internal/controls"
	"github.com/san-kum/atom/internal/scene"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultFPS    = 60
	DefaultTitle  = "atom"

	MinResolution = 3
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Scene     scene.Spec     `yaml:"scene"`
	Animation anim.Params    `yaml:"animation"`
	Controls  ControlsConfig `yaml:"controls"`
	Window    WindowConfig   `yaml:"window"`
}

type ControlsConfig struct {
	Damping       bool    `yaml:"damping"`
	DampingFactor float64 `yaml:"damping_factor"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Title  string `yaml:"title"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:     scene.DefaultSpec(),
		Animation: anim.DefaultParams(),
		Controls: ControlsConfig{
			Damping:       true,
			DampingFactor: controls.DefaultDampingFactor,
		},
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
			Title:  DefaultTitle,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over base, which is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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

func (c *Config) Validate() error {
	bodies := []struct {
		name string
		spec scene.BodySpec
	}{
		{scene.ProtonName, c.Scene.Proton},
		{scene.ElectronName, c.Scene.Electron},
	}
	for _, body := range bodies {
		name, b := body.name, body.spec
		if b.Radius <= 0 {
			return fmt.Errorf("%w: %s radius must be positive, got %g", ErrInvalid, name, b.Radius)
		}
		if b.Resolution < MinResolution {
			return fmt.Errorf("%w: %s resolution must be at least %d, got %d", ErrInvalid, name, MinResolution, b.Resolution)
		}
	}

	cam := c.Scene.Camera
	if cam.Fov <= 0 || cam.Fov >= 180 {
		return fmt.Errorf("%w: camera fov must be in (0, 180), got %g", ErrInvalid, cam.Fov)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return fmt.Errorf("%w: camera planes need 0 < near < far, got %g/%g", ErrInvalid, cam.Near, cam.Far)
	}
	if c.Animation.OrbitSteps <= 0 {
		return fmt.Errorf("%w: orbit_steps must be positive, got %d", ErrInvalid, c.Animation.OrbitSteps)
	}
	if c.Controls.DampingFactor < 0 || c.Controls.DampingFactor > 1 {
		return fmt.Errorf("%w: damping_factor must be in [0, 1], got %g", ErrInvalid, c.Controls.DampingFactor)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.Window.FPS)
	}
	return nil
}
