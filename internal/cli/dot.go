package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stipple/internal/demo"
	"github.com/matzehuels/stipple/pkg/pipeline"
)

// dotOpts holds the command-line flags for the dot command.
type dotOpts struct {
	output  string
	format  string
	crumbs  bool
	noCache bool
}

// dotCommand creates the dot command, which renders a diagram's group graph.
func (c *CLI) dotCommand() *cobra.Command {
	opts := dotOpts{format: pipeline.FormatDOT}

	cmd := &cobra.Command{
		Use:   "dot <diagram>",
		Short: "Render the group graph of a diagram with Graphviz",
		Long: `Render the group graph of a diagram: one node per group, one edge per
group reference labeled with its style and transform. Layer roots are
drawn bold and hidden groups dashed.

With --format dot the Graphviz source is printed to stdout unless -o is set.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagrams,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateGraphFormat(opts.format); err != nil {
				return err
			}
			if err := c.bindFlags(cmd, cfgTheme, cfgVariation, cfgScale); err != nil {
				return err
			}
			return c.runDot(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg, png, pdf")
	cmd.Flags().BoolVar(&opts.crumbs, "crumbs", false, "include crumb nodes")
	cmd.Flags().StringP(cfgTheme, "t", "", "theme used to name styles")
	_ = cmd.RegisterFlagCompletionFunc(cfgTheme, completeThemes)
	cmd.Flags().String(cfgVariation, "", "dotted variation path")
	cmd.Flags().Float64(cfgScale, 0, "PNG scale")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runDot(ctx context.Context, name string, opts dotOpts) error {
	logger := loggerFromContext(ctx)

	d, err := demo.Get(name)
	if err != nil {
		return err
	}
	th, err := loadTheme(c.Config.GetString(cfgTheme), c.Config.GetString(cfgVariation))
	if err != nil {
		return err
	}
	s, err := d.Build(th, logger)
	if err != nil {
		return fmt.Errorf("build %s: %w", name, err)
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sp := newSpinner(ctx, "Running Graphviz")
	if opts.format != pipeline.FormatDOT {
		sp.Start()
	}
	data, hit, err := runner.RenderGraphWithCacheInfo(ctx, s, th, opts.format, c.Config.GetFloat64(cfgScale), opts.crumbs)
	sp.Stop()
	if err != nil {
		return err
	}
	logger.Debug("rendered group graph", "format", opts.format, "bytes", len(data), "cached", hit)

	if opts.output == "" {
		if opts.format != pipeline.FormatDOT {
			opts.output = name + "-graph." + opts.format
		} else {
			_, err := os.Stdout.Write(data)
			return err
		}
	}
	if err := writeOutput(opts.output, data); err != nil {
		return err
	}
	printFile(opts.output)
	printDetail("%d groups · %s", s.GroupCount(), cacheStatus(hit))
	return nil
}
