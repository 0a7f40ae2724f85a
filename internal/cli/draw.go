package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snaker/pkg/pipeline"
)

// drawFlags holds the draw command's flag values. Only flags the user set
// override the config file.
type drawFlags struct {
	width     int
	height    int
	cellSize  float64
	seed      uint64
	paths     int
	style     string
	formats   string
	spectrum  string
	gridLines bool
	scale     float64
	detailed  bool
	refresh   bool
	noCache   bool
	output    string
}

// drawCommand creates the draw command.
func (c *CLI) drawCommand() *cobra.Command {
	var f drawFlags

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Fill a grid with snakes and write the drawing",
		Long: `Fill a grid with snakes and write the drawing.

The grid is covered by random walks that never cross, each drawn as a chain
of blocks whose colours step along a spectrum. The same seed always gives
the same drawing; without --seed a fresh one is picked and printed.

Output formats: svg (default), png, pdf, json, dot, graph. With a single
format, -o names the file; with several it is the base path.

Results are cached locally for faster subsequent runs.`,
		Example: `  snaker draw
  snaker draw --width 40 --height 30 --seed 7 --spectrum dusk
  snaker draw --style handdrawn -f svg,png -o out/snakes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.drawOptions(cmd, f)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runDraw(cmd.Context(), opts, f.output, f.noCache)
		},
	}

	// Grid flags
	cmd.Flags().IntVar(&f.width, "width", 0, "grid width in cells (default: fit 800px)")
	cmd.Flags().IntVar(&f.height, "height", 0, "grid height in cells (default: fit 600px)")
	cmd.Flags().Float64Var(&f.cellSize, "cell-size", pipeline.DefaultCellSize, "cell edge in pixels")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (default: random)")
	cmd.Flags().IntVar(&f.paths, "paths", 0, "stop after this many snakes (0 fills the grid)")

	// Render flags
	cmd.Flags().StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: simple, handdrawn")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, graph (comma-separated)")
	cmd.Flags().StringVar(&f.spectrum, "spectrum", "", "colour spectrum: random (default), dusk, violet, random3, random6")
	cmd.Flags().BoolVar(&f.gridLines, "grid-lines", false, "draw the cell grid behind the snakes")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "label nodes in dot and graph output")

	// Common flags
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	registerValueCompletions(cmd)

	return cmd
}

// drawOptions layers the flags the user set over the config file settings.
func (c *CLI) drawOptions(cmd *cobra.Command, f drawFlags) pipeline.Options {
	opts := c.Config.PipelineOptions()
	flags := cmd.Flags()

	if flags.Changed("width") {
		opts.Width = f.width
	}
	if flags.Changed("height") {
		opts.Height = f.height
	}
	if flags.Changed("cell-size") {
		opts.CellSize = f.cellSize
	}
	if flags.Changed("seed") {
		opts.Seed = f.seed
	}
	if flags.Changed("style") {
		opts.Style = f.style
	}
	if flags.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if flags.Changed("spectrum") {
		opts.Spectrum = f.spectrum
	}
	if flags.Changed("grid-lines") {
		opts.GridLines = f.gridLines
	}
	if flags.Changed("scale") {
		opts.Scale = f.scale
	}
	opts.MaxPaths = f.paths
	opts.Detailed = f.detailed
	opts.Refresh = f.refresh

	if opts.Seed == 0 {
		opts.Seed = rand.Uint64()
	}
	opts.Logger = c.Logger
	return opts
}

// runDraw runs the pipeline and writes every artifact.
func (c *CLI) runDraw(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newFillSpinner(ctx, os.Stderr, "Filling grid")
	opts.Progress = spinner.Progress
	spinner.Start()
	defer spinner.Stop()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Drawing failed")
		return fmt.Errorf("draw: %w", err)
	}
	spinner.Stop()

	files, err := writeArtifacts(result.Artifacts, opts.Formats, output, fmt.Sprintf("%s-%d", appName, opts.Seed))
	if err != nil {
		return err
	}

	printSuccess("Drew %dx%d grid", result.Scene.Width, result.Scene.Height)
	cells := result.Scene.Width * result.Scene.Height
	printStats(result.Stats.PathCount, result.Stats.StepCount, cells, result.CacheInfo.GenerateHit && result.CacheInfo.RenderHit)
	for _, f := range files {
		printFile(f)
	}
	printDetail("seed %d · spectrum %s", opts.Seed, result.Spectrum)
	if opts.MaxPaths > 0 && result.Stats.StepCount < cells {
		printWarning("Stopped after %d snakes, %d cells left empty",
			result.Stats.PathCount, cells-result.Stats.StepCount)
	}
	printNextStep("Watch it fill", fmt.Sprintf("%s watch --seed %d", appName, opts.Seed))
	return nil
}

// writeArtifacts writes each format's bytes and returns the paths written.
// A single format is written to output as given; otherwise output (or
// fallback) is a base path that gets one extension per format.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, fallback string) ([]string, error) {
	var files []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := output
		if len(formats) > 1 || output == "" {
			path = basePath(output, fallback) + "." + pipeline.Extension(format)
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return files, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return files, fmt.Errorf("write %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}

// basePath derives the base output path. An empty output falls back to
// fallback; a known format extension on output is stripped.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if slices.Contains(pipeline.ValidFormats, ext) {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}
