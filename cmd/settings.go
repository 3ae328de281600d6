package cmd

import (
	"fmt"
	"strings"

	"github.com/df07/go-raytracer/pkg/config"
	"github.com/df07/go-raytracer/pkg/scene"
	"github.com/spf13/pflag"
)

// settingsFlags maps command line flags to settings keys
var settingsFlags = map[string]string{
	"width":   "image.width",
	"height":  "image.height",
	"spp":     "image.samples_per_pixel",
	"aa":      "image.aa_mode",
	"depth":   "rays.max_depth",
	"seed":    "rays.seed",
	"scatter": "rays.diffuse_scatter_mode",
	"scene":   "scene.name",
	"out":     "output.path",
	"format":  "output.format",
}

func addSettingsFlags(flags *pflag.FlagSet) {
	d := config.Default()
	flags.Int("width", d.Image.Width, "image width in pixels")
	flags.Int("height", d.Image.Height, "image height in pixels")
	flags.Int("spp", d.Image.SamplesPerPixel, "samples per pixel")
	flags.String("aa", d.Image.AntialiasingMode, "antialiasing mode (msaa|none)")
	flags.Int("depth", d.Rays.MaxDepth, "maximum number of ray bounces")
	flags.Int64("seed", d.Rays.Seed, "random seed")
	flags.String("scatter", d.Rays.DiffuseScatterMode, "diffuse scatter mode (true-lambert|approx-lambert|hemispherical)")
	flags.String("scene", d.Scene.Name, "built-in scene used when the settings list no spheres ("+strings.Join(scene.BuiltinNames(), "|")+")")
	flags.StringP("out", "o", d.Output.Path, `output file, "-" for stdout`)
	flags.String("format", d.Output.Format, "output format when the file extension does not decide (ppm|png)")
}

// loadSettings reads the settings file, applies environment and flag
// overrides and validates the result
func loadSettings(opts *globalOptions, flags *pflag.FlagSet) (*config.Settings, error) {
	loader := config.NewLoader()
	for name, key := range settingsFlags {
		if flag := flags.Lookup(name); flag != nil {
			if err := loader.Viper().BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("error binding flag %q: %w", name, err)
			}
		}
	}

	settings, err := loader.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}
