package config

import (
	"github.com/spf13/pflag"
)

// Flags holds the command-line overrides registered on a FlagSet.
type Flags struct {
	fs *pflag.FlagSet

	Path    string
	Verbose bool
	Debug   bool
	Quiet   bool

	title       string
	width       int
	height      int
	presentMode string
	msaa        bool
	frameLimit  float64
	fov         float32
	speed       float32
	sensitivity float32
	diffuse     string
	specular    string
	shininess   float32
	clearColor  string
	logLevel    string
}

// RegisterFlags defines the config flags on fs. Defaults mirror Default so the help text is
// accurate; only flags set on the command line override the file.
//
// Parameters:
//   - fs: the flag set to register on
//
// Returns:
//   - *Flags: the bound values, read after fs.Parse
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}

	fs.StringVarP(&f.Path, "config", "c", "", "TOML or YAML config file")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "log at info level")
	fs.BoolVar(&f.Debug, "vv", false, "log at debug level")
	fs.BoolVarP(&f.Quiet, "quiet", "q", false, "log errors only")

	fs.StringVar(&f.title, "title", d.Window.Title, "window title")
	fs.IntVar(&f.width, "width", d.Window.Width, "window width in pixels")
	fs.IntVar(&f.height, "height", d.Window.Height, "window height in pixels")
	fs.StringVar(&f.presentMode, "present-mode", d.Window.PresentMode, "vsync or uncapped")
	fs.BoolVar(&f.msaa, "msaa", d.Window.MSAA, "enable 4x multisampling")
	fs.Float64Var(&f.frameLimit, "frame-limit", d.Window.FrameLimit, "maximum frames per second, 0 for none")
	fs.Float32Var(&f.fov, "fov", d.Camera.Fov, "initial field of view in degrees")
	fs.Float32Var(&f.speed, "speed", d.Camera.Speed, "camera speed in units per second")
	fs.Float32Var(&f.sensitivity, "sensitivity", d.Camera.Sensitivity, "mouse look degrees per pixel")
	fs.StringVar(&f.diffuse, "diffuse", d.Scene.DiffuseTexture, "diffuse texture path")
	fs.StringVar(&f.specular, "specular", d.Scene.SpecularTexture, "specular texture path")
	fs.Float32Var(&f.shininess, "shininess", d.Scene.Shininess, "material shininess")
	fs.StringVar(&f.clearColor, "clear-color", d.Scene.ClearColor, "background color as hex")
	fs.StringVar(&f.logLevel, "log-level", d.LogLevel, "debug, info, warn or error")
	return f
}

// Apply copies every flag that was set on the command line into cfg.
func (f *Flags) Apply(cfg *Config) {
	set := func(name string) bool { return f.fs.Changed(name) }

	if set("title") {
		cfg.Window.Title = f.title
	}
	if set("width") {
		cfg.Window.Width = f.width
	}
	if set("height") {
		cfg.Window.Height = f.height
	}
	if set("present-mode") {
		cfg.Window.PresentMode = f.presentMode
	}
	if set("msaa") {
		cfg.Window.MSAA = f.msaa
	}
	if set("frame-limit") {
		cfg.Window.FrameLimit = f.frameLimit
	}
	if set("fov") {
		cfg.Camera.Fov = f.fov
	}
	if set("speed") {
		cfg.Camera.Speed = f.speed
	}
	if set("sensitivity") {
		cfg.Camera.Sensitivity = f.sensitivity
	}
	if set("diffuse") {
		cfg.Scene.DiffuseTexture = f.diffuse
	}
	if set("specular") {
		cfg.Scene.SpecularTexture = f.specular
	}
	if set("shininess") {
		cfg.Scene.Shininess = f.shininess
	}
	if set("clear-color") {
		cfg.Scene.ClearColor = f.clearColor
	}
	if set("log-level") {
		cfg.LogLevel = f.logLevel
	}
}

// Resolve loads the file named by --config, or the defaults when none was given, then
// applies the command-line overrides and validates the result.
//
// Returns:
//   - Config: the effective configuration
//   - error: wraps ErrInvalid on a bad file or bad overrides
func (f *Flags) Resolve() (Config, error) {
	cfg := Default()
	if f.Path != "" {
		loaded, err := Load(f.Path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	f.Apply(&cfg)
	cfg.normalize()
	if err := cfg.resolvePaths(""); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
