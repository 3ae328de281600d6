package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newRenderCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render the configured scene",
		Long: `Render the scene described by the settings file, or the built-in
four-sphere scene when no spheres are configured. The image is written as
plain-text PPM to stdout unless --out names a file; a .png extension selects
PNG output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderFrame(cmd, opts)
		},
	}
	addSettingsFlags(cmd.Flags())
	return cmd
}

// Render a still frame.
func renderFrame(cmd *cobra.Command, opts *globalOptions) error {
	settings, err := loadSettings(opts, cmd.Flags())
	if err != nil {
		return err
	}

	sc, err := scene.NewSceneFromSettings(settings)
	if err != nil {
		return fmt.Errorf("error building scene: %w", err)
	}
	logger.Infof("scene %q with %d objects", sc.Name, sc.GetPrimitiveCount())

	rt, err := renderer.NewRaytracerFromSettings(settings, sc.World)
	if err != nil {
		return err
	}

	img, stats, err := rt.Render(cmd.Context())
	if err != nil {
		return err
	}

	if err := output.Save(settings.Output.Path, settings.Output.Format, img, cmd.OutOrStdout()); err != nil {
		return err
	}

	displayRenderStats(stats)
	return nil
}

func displayRenderStats(stats *renderer.RenderStats) {
	var buf bytes.Buffer
	writeRenderStats(&buf, stats)
	logger.Noticef("render statistics\n%s", buf.String())
}

func writeRenderStats(w io.Writer, stats *renderer.RenderStats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Statistic", "Value"})
	table.AppendBulk([][]string{
		{"Resolution", fmt.Sprintf("%dx%d", stats.Width, stats.Height)},
		{"Samples per pixel", fmt.Sprintf("%d", stats.SamplesPerPixel)},
		{"Max depth", fmt.Sprintf("%d", stats.MaxDepth)},
		{"Total samples", fmt.Sprintf("%d", stats.TotalSamples)},
		{"Samples/sec", fmt.Sprintf("%.0f", stats.SamplesPerSecond())},
		{"Mean luminance", fmt.Sprintf("%.4f", stats.MeanLuminance)},
		{"Std dev luminance", fmt.Sprintf("%.4f", stats.StdDevLuminance)},
		{"Median luminance", fmt.Sprintf("%.4f", stats.MedianLuminance)},
		{"Luminance range", fmt.Sprintf("%.4f - %.4f", stats.MinLuminance, stats.MaxLuminance)},
		{"Mean pixel variance", fmt.Sprintf("%.6f", stats.MeanNoise)},
	})
	table.SetFooter([]string{"Render time", stats.Duration.String()})
	table.Render()
}
