package cmd

import (
	"github.com/df07/go-raytracer/pkg/log"
	"github.com/spf13/cobra"
)

const appName = "raytracer"

// Version is reported by the version command
var Version = "0.1.0"

var logger = log.New(appName)

// NewRootCommand builds the command tree. Each call returns an independent tree.
func NewRootCommand() *cobra.Command {
	var opts globalOptions

	root := &cobra.Command{
		Use:   appName,
		Short: "render spheres using recursive path tracing",
		Long: `Render a scene of spheres with diffuse, metal and glass materials by
recursively tracing rays from a pinhole camera.

Settings are read from settings.toml (or settings.yaml) in the working
directory unless --config names another file. Every setting can also be
overridden with a RAYTRACER_ environment variable, for example
RAYTRACER_IMAGE_WIDTH=800.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "settings file (default is ./settings.toml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	flags.BoolVar(&opts.veryVerbose, "vv", false, "enable even more verbose logging")

	root.AddCommand(
		newRenderCommand(&opts),
		newConfigCommand(&opts),
		newVersionCommand(),
	)

	return root
}

// globalOptions holds the persistent flags shared by every subcommand
type globalOptions struct {
	configFile  string
	verbose     bool
	veryVerbose bool
}

func setupLogging(opts globalOptions) {
	if opts.verbose {
		log.SetLevel(log.Info)
	}

	if opts.veryVerbose {
		log.SetLevel(log.Debug)
	}
}
