package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stipple/internal/demo"
	"github.com/matzehuels/stipple/pkg/pipeline"
	"github.com/matzehuels/stipple/pkg/theme"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path (or base path for multiple outputs)
	all     bool   // include hidden layers and groups
	rsvg    bool   // rasterize PNG through rsvg-convert
	title   string // SVG title
	noCache bool   // bypass the artifact cache
	refresh bool   // re-render even when cached
}

// renderCommand creates the render command for exporting a diagram.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <diagram>",
		Short: "Render a diagram to SVG, PNG, PDF or JSON",
		Long: `Render a built-in diagram under a theme and variation.

Formats, scale, theme, variation and background default to the config
file (~/.config/stipple/config.toml) and can be overridden by flags.`,
		Example: `  stipple render automaton
  stipple render arc --theme blueprint --format svg,png -o out/arc
  stipple render gallery --variation dark.contrast --all`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagrams,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.bindFlags(cmd, cfgTheme, cfgVariation, cfgFormats, cfgScale, cfgBackground); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringP(cfgFormats, "f", "", "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringP(cfgTheme, "t", "", "built-in theme name or path to a theme file")
	_ = cmd.RegisterFlagCompletionFunc(cfgTheme, completeThemes)
	cmd.Flags().String(cfgVariation, "", "dotted variation path, e.g. dark.contrast")
	cmd.Flags().Float64(cfgScale, 0, "PNG pixels per unit")
	cmd.Flags().String(cfgBackground, "", "background color as hex")
	cmd.Flags().StringVar(&opts.title, "title", "", "SVG title (default: diagram description)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "include hidden layers and groups")
	cmd.Flags().BoolVar(&opts.rsvg, "rsvg", false, "rasterize PNG with rsvg-convert instead of natively")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// runRender builds the diagram and writes one file per requested format.
func (c *CLI) runRender(ctx context.Context, name string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	d, err := demo.Get(name)
	if err != nil {
		return err
	}
	variation := c.Config.GetString(cfgVariation)
	th, err := loadTheme(c.Config.GetString(cfgTheme), variation)
	if err != nil {
		return err
	}
	s, err := d.Build(th, logger)
	if err != nil {
		return fmt.Errorf("build %s: %w", name, err)
	}
	logger.Debug("built diagram", "name", name, "groups", s.GroupCount(), "crumbs", s.CrumbCount())

	title := opts.title
	if title == "" {
		title = d.Description
	}
	popts := pipeline.Options{
		Formats:    pipeline.ParseFormats(c.Config.GetString(cfgFormats)),
		Scale:      c.Config.GetFloat64(cfgScale),
		Title:      title,
		Background: c.Config.GetString(cfgBackground),
		RSVG:       opts.rsvg,
		All:        opts.all,
		ThemeName:  th.Name,
		Variation:  theme.ParseVariationPath(variation),
		Refresh:    opts.refresh,
		Logger:     logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sp := newSpinner(ctx, "Building "+name)
	restore := sp.Follow()
	sp.Start()
	result, err := runner.Execute(ctx, s, th, popts)
	restore()
	if err != nil {
		sp.StopWithError("Render failed")
		return err
	}
	sp.Stop()

	base := basePath(opts.output, name)
	for _, format := range popts.Formats {
		path := base + "." + format
		if opts.output != "" && len(popts.Formats) == 1 && filepath.Ext(opts.output) != "" {
			path = opts.output
		}
		if err := writeOutput(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(result.Stats.Items, len(popts.Formats), result.CacheInfo.RenderHit)
	prog.done(fmt.Sprintf("Rendered %s", name))
	return nil
}

// basePath derives the base output path from the output flag and diagram name.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, name string) string {
	if output == "" {
		return name
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] || ext == "."+pipeline.FormatDOT {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// completeDiagrams completes diagram names for the first argument.
func completeDiagrams(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return demo.Names(), cobra.ShellCompDirectiveNoFileComp
}
