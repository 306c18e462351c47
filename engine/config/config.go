// Package config loads the startup configuration from a TOML or YAML file and applies
// command-line overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

const (
	defaultTitle       = "oxy-lit"
	defaultPresentMode = "vsync"
	defaultClearColor  = "#000000"
)

// Config is the complete startup configuration.
type Config struct {
	Window   WindowConfig `toml:"window" yaml:"window"`
	Camera   CameraConfig `toml:"camera" yaml:"camera"`
	Scene    SceneConfig  `toml:"scene" yaml:"scene"`
	LogLevel string       `toml:"log_level" yaml:"log_level"`
}

// WindowConfig configures the window and presentation.
type WindowConfig struct {
	Title       string  `toml:"title" yaml:"title"`
	Width       int     `toml:"width" yaml:"width"`
	Height      int     `toml:"height" yaml:"height"`
	PresentMode string  `toml:"present_mode" yaml:"present_mode"`
	MSAA        bool    `toml:"msaa" yaml:"msaa"`
	FrameLimit  float64 `toml:"frame_limit" yaml:"frame_limit"`
}

// CameraConfig configures the starting camera and the free-fly controller.
type CameraConfig struct {
	Position    [3]float32 `toml:"position" yaml:"position"`
	Speed       float32    `toml:"speed" yaml:"speed"`
	Sensitivity float32    `toml:"sensitivity" yaml:"sensitivity"`
	Fov         float32    `toml:"fov" yaml:"fov"`
}

// SceneConfig configures the demo scene's material and background.
type SceneConfig struct {
	// DiffuseTexture and SpecularTexture are image paths. An empty path selects a solid
	// fallback texture. "~" is expanded and relative paths resolve against the config file.
	DiffuseTexture  string  `toml:"diffuse_texture" yaml:"diffuse_texture"`
	SpecularTexture string  `toml:"specular_texture" yaml:"specular_texture"`
	Shininess       float32 `toml:"shininess" yaml:"shininess"`
	ClearColor      string  `toml:"clear_color" yaml:"clear_color"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:       defaultTitle,
			Width:       1280,
			Height:      720,
			PresentMode: defaultPresentMode,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 3},
			Speed:       2.5,
			Sensitivity: 0.1,
			Fov:         45,
		},
		Scene: SceneConfig{
			Shininess:  32,
			ClearColor: defaultClearColor,
		},
		LogLevel: "warn",
	}
}

// decoderFunc decodes a document into v, rejecting unknown keys.
type decoderFunc func(r io.Reader, v any) error

func decodeTOML(r io.Reader, v any) error {
	d := toml.NewDecoder(r)
	d.DisallowUnknownFields()
	return d.Decode(v)
}

func decodeYAML(r io.Reader, v any) error {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decoderFor(path string) (decoderFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return decodeTOML, nil
	case ".yaml", ".yml":
		return decodeYAML, nil
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", ErrInvalid, filepath.Ext(path))
	}
}

// Load reads a TOML or YAML file, chosen by extension, over the defaults and validates it.
//
// Parameters:
//   - path: the config file; "~" is expanded
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file cannot be read, has unknown keys, or fails validation
func Load(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to expand config path %q: %w", path, err)
	}
	decode, err := decoderFor(expanded)
	if err != nil {
		return Config{}, err
	}
	f, err := os.Open(expanded)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	if err := decode(f, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, expanded, err)
	}
	cfg.normalize()
	if err := cfg.resolvePaths(filepath.Dir(expanded)); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalize restores defaults for string fields a file cleared.
func (c *Config) normalize() {
	c.Window.Title = common.Coalesce(strings.TrimSpace(c.Window.Title), defaultTitle)
	c.Window.PresentMode = common.Coalesce(strings.ToLower(c.Window.PresentMode), defaultPresentMode)
	c.Scene.ClearColor = common.Coalesce(c.Scene.ClearColor, defaultClearColor)
	c.LogLevel = common.Coalesce(c.LogLevel, "warn")
}

// resolvePaths expands "~" in texture paths and anchors relative ones at dir.
func (c *Config) resolvePaths(dir string) error {
	for _, p := range []*string{&c.Scene.DiffuseTexture, &c.Scene.SpecularTexture} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("%w: texture path %q: %v", ErrInvalid, *p, err)
		}
		if !filepath.IsAbs(expanded) && dir != "" {
			expanded = filepath.Join(dir, expanded)
		}
		*p = expanded
	}
	return nil
}

// Validate checks every field and reports all problems at once.
//
// Returns:
//   - error: wraps ErrInvalid, nil if the config is usable
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.FrameLimit < 0 || math.IsNaN(c.Window.FrameLimit) {
		bad("frame_limit %v must be >= 0", c.Window.FrameLimit)
	}
	for i, v := range c.Camera.Position {
		if !common.IsFinite(v) {
			bad("camera position[%d] is not finite", i)
		}
	}
	if !(c.Camera.Speed > 0) || !common.IsFinite(c.Camera.Speed) {
		bad("camera speed %v must be positive", c.Camera.Speed)
	}
	if !(c.Camera.Sensitivity > 0) || !common.IsFinite(c.Camera.Sensitivity) {
		bad("camera sensitivity %v must be positive", c.Camera.Sensitivity)
	}
	if c.Camera.Fov < 1 || c.Camera.Fov > 45 {
		bad("camera fov %v must be within [1, 45]", c.Camera.Fov)
	}
	if !(c.Scene.Shininess > 0) || !common.IsFinite(c.Scene.Shininess) {
		bad("shininess %v must be positive", c.Scene.Shininess)
	}
	if _, err := c.Scene.ClearRGBA(); err != nil {
		errs = append(errs, err)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// ClearRGBA parses ClearColor as a "#rrggbb" or "#rgb" hex color.
//
// Returns:
//   - [4]float64: linear-space RGBA with A = 1
//   - error: error if the color is malformed
func (s SceneConfig) ClearRGBA() ([4]float64, error) {
	c, err := colorful.Hex(s.ClearColor)
	if err != nil {
		return [4]float64{}, fmt.Errorf("clear_color %q: %w", s.ClearColor, err)
	}
	r, g, b := c.LinearRgb()
	return [4]float64{r, g, b, 1}, nil
}
