package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/log"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var logger = log.New("config")

// Antialiasing modes
const (
	AntialiasingMSAA = "msaa" // one random jitter per sample
	AntialiasingNone = "none" // samples go through the pixel corner
)

// Output formats
const (
	FormatPPM = "ppm"
	FormatPNG = "png"
)

// Settings is the complete render configuration
type Settings struct {
	Image      ImageSettings      `yaml:"image" mapstructure:"image"`
	Camera     CameraSettings     `yaml:"camera" mapstructure:"camera"`
	Rays       RaySettings        `yaml:"rays" mapstructure:"rays"`
	Background BackgroundSettings `yaml:"background" mapstructure:"background"`
	Scene      SceneSettings      `yaml:"scene" mapstructure:"scene"`
	Output     OutputSettings     `yaml:"output" mapstructure:"output"`
}

// ImageSettings describes the produced image
type ImageSettings struct {
	Width            int     `yaml:"width" mapstructure:"width"`
	Height           int     `yaml:"height" mapstructure:"height"`
	SamplesPerPixel  int     `yaml:"samples_per_pixel" mapstructure:"samples_per_pixel"`
	AntialiasingMode string  `yaml:"aa_mode" mapstructure:"aa_mode"`
	Gamma            float64 `yaml:"gamma" mapstructure:"gamma"`
}

// CameraSettings describes the pinhole camera
type CameraSettings struct {
	Origin         []float64 `yaml:"origin" mapstructure:"origin"`
	ViewportHeight float64   `yaml:"viewport_height" mapstructure:"viewport_height"`
	FocalLength    float64   `yaml:"focal_length" mapstructure:"focal_length"`
}

// RaySettings controls the integrator
type RaySettings struct {
	MaxDepth           int     `yaml:"max_depth" mapstructure:"max_depth"`
	MinTrace           float64 `yaml:"min_trace" mapstructure:"min_trace"`
	DiffuseScatterMode string  `yaml:"diffuse_scatter_mode" mapstructure:"diffuse_scatter_mode"`
	Seed               int64   `yaml:"seed" mapstructure:"seed"`
}

// BackgroundSettings holds the sky gradient endpoints
type BackgroundSettings struct {
	Horizon []float64 `yaml:"horizon" mapstructure:"horizon"`
	Zenith  []float64 `yaml:"zenith" mapstructure:"zenith"`
}

// SceneSettings lists scene objects. An empty list selects the built-in scene named by Name.
type SceneSettings struct {
	Name    string           `yaml:"name" mapstructure:"name"`
	Spheres []SphereSettings `yaml:"spheres,omitempty" mapstructure:"spheres"`
}

// SphereSettings describes one sphere
type SphereSettings struct {
	Center   []float64        `yaml:"center" mapstructure:"center"`
	Radius   float64          `yaml:"radius" mapstructure:"radius"`
	Material MaterialSettings `yaml:"material" mapstructure:"material"`
}

// MaterialSettings describes a material. Type is one of diffuse, metal or dielectric.
type MaterialSettings struct {
	Type      string    `yaml:"type" mapstructure:"type"`
	Albedo    []float64 `yaml:"albedo,omitempty" mapstructure:"albedo"`
	Roughness float64   `yaml:"roughness,omitempty" mapstructure:"roughness"`
	IOR       float64   `yaml:"ior,omitempty" mapstructure:"ior"`
}

// OutputSettings selects where and how the image is written
type OutputSettings struct {
	Path   string `yaml:"path" mapstructure:"path"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Default returns the documented default settings
func Default() *Settings {
	return &Settings{
		Image: ImageSettings{
			Width:            400,
			Height:           225,
			SamplesPerPixel:  100,
			AntialiasingMode: AntialiasingMSAA,
			Gamma:            2.0,
		},
		Camera: CameraSettings{
			Origin:         []float64{0, 0, 0},
			ViewportHeight: 2.0,
			FocalLength:    1.0,
		},
		Rays: RaySettings{
			MaxDepth:           50,
			MinTrace:           1e-5,
			DiffuseScatterMode: material.TrueLambert.String(),
			Seed:               42,
		},
		Background: BackgroundSettings{
			Horizon: []float64{1.0, 1.0, 1.0},
			Zenith:  []float64{0.5, 0.7, 1.0},
		},
		Scene: SceneSettings{
			Name: "default",
		},
		Output: OutputSettings{
			Path:   "-",
			Format: FormatPPM,
		},
	}
}

// setDefaults registers every leaf key so that absent keys fall back individually
func setDefaults(v *viper.Viper, d *Settings) {
	v.SetDefault("image.width", d.Image.Width)
	v.SetDefault("image.height", d.Image.Height)
	v.SetDefault("image.samples_per_pixel", d.Image.SamplesPerPixel)
	v.SetDefault("image.aa_mode", d.Image.AntialiasingMode)
	v.SetDefault("image.gamma", d.Image.Gamma)

	v.SetDefault("camera.origin", d.Camera.Origin)
	v.SetDefault("camera.viewport_height", d.Camera.ViewportHeight)
	v.SetDefault("camera.focal_length", d.Camera.FocalLength)

	v.SetDefault("rays.max_depth", d.Rays.MaxDepth)
	v.SetDefault("rays.min_trace", d.Rays.MinTrace)
	v.SetDefault("rays.diffuse_scatter_mode", d.Rays.DiffuseScatterMode)
	v.SetDefault("rays.seed", d.Rays.Seed)

	v.SetDefault("background.horizon", d.Background.Horizon)
	v.SetDefault("background.zenith", d.Background.Zenith)

	v.SetDefault("scene.name", d.Scene.Name)

	v.SetDefault("output.path", d.Output.Path)
	v.SetDefault("output.format", d.Output.Format)
}

// Loader reads settings through a private viper instance
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader with every default registered and
// RAYTRACER_* environment overrides enabled (e.g. RAYTRACER_IMAGE_WIDTH)
func NewLoader() *Loader {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix("RAYTRACER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// Viper exposes the underlying instance for flag binding
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load reads settings from path, or from settings.{toml,yaml} in the working
// directory when path is empty. A missing or unreadable file is not an error:
// the defaults are used instead.
func (l *Loader) Load(path string) (*Settings, error) {
	if path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName("settings")
		l.v.AddConfigPath(".")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			logger.Info("no settings file found; using defaults")
		} else {
			logger.Warningf("error loading settings from %q: %v; using defaults", path, err)
		}
	} else {
		logger.Infof("using settings file %s", l.v.ConfigFileUsed())
	}

	var settings Settings
	if err := l.v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling settings: %w", err)
	}
	return &settings, nil
}

// Load is a shorthand for NewLoader().Load(path)
func Load(path string) (*Settings, error) {
	return NewLoader().Load(path)
}

// Validate checks that the settings describe a renderable image
func (s *Settings) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(s.Image.Width >= 2, "image width must be at least 2, got %d", s.Image.Width)
	check(s.Image.Height >= 2, "image height must be at least 2, got %d", s.Image.Height)
	check(s.Image.SamplesPerPixel > 0, "samples per pixel must be positive, got %d", s.Image.SamplesPerPixel)
	check(s.Image.Gamma > 0, "gamma must be positive, got %g", s.Image.Gamma)
	check(s.Image.AntialiasingMode == AntialiasingMSAA || s.Image.AntialiasingMode == AntialiasingNone,
		"unknown antialiasing mode %q", s.Image.AntialiasingMode)

	check(len(s.Camera.Origin) == 3, "camera origin must have 3 components, got %d", len(s.Camera.Origin))
	check(s.Camera.ViewportHeight > 0, "viewport height must be positive, got %g", s.Camera.ViewportHeight)
	check(s.Camera.FocalLength > 0, "focal length must be positive, got %g", s.Camera.FocalLength)

	check(s.Rays.MaxDepth >= 0, "max depth must not be negative, got %d", s.Rays.MaxDepth)
	check(s.Rays.MinTrace > 0, "min trace must be positive, got %g", s.Rays.MinTrace)
	if _, err := s.DiffuseMode(); err != nil {
		errs = append(errs, err)
	}

	check(len(s.Background.Horizon) == 3, "background horizon must have 3 components, got %d", len(s.Background.Horizon))
	check(len(s.Background.Zenith) == 3, "background zenith must have 3 components, got %d", len(s.Background.Zenith))

	switch s.Output.Format {
	case "", FormatPPM, FormatPNG:
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q", s.Output.Format))
	}

	return errors.Join(errs...)
}

// AspectRatio returns the image width over height
func (s *Settings) AspectRatio() float64 {
	return float64(s.Image.Width) / float64(s.Image.Height)
}

// ViewportWidth derives the viewport width from its height and the image aspect ratio
func (s *Settings) ViewportWidth() float64 {
	return s.Camera.ViewportHeight * s.AspectRatio()
}

// JitterScale returns the per-sample jitter multiplier for the antialiasing mode
func (s *Settings) JitterScale() float64 {
	if s.Image.AntialiasingMode == AntialiasingNone {
		return 0
	}
	return 1
}

// DiffuseMode parses the configured diffuse scatter mode
func (s *Settings) DiffuseMode() (material.DiffuseMode, error) {
	return material.ParseDiffuseMode(s.Rays.DiffuseScatterMode)
}

// CameraOrigin returns the configured camera origin
func (s *Settings) CameraOrigin() (core.Point3, error) {
	return Vec3(s.Camera.Origin)
}

// YAML renders the settings as a YAML document
func (s *Settings) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// Vec3 converts a 3-element slice to a vector
func Vec3(values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}
