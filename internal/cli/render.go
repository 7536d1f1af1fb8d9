package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphwalk/pkg/pipeline"
	"github.com/matzehuels/graphwalk/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file (single format) or base path
	formats  string // comma-separated output formats
	layout   string // graphviz layout engine
	title    string
	detailed bool
	scale    float64
	noSearch bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		gf graphFlags
		sf searchFlags
		ro renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a graph with its search path highlighted",
		Long: `Search a graph and draw it with Graphviz, highlighting the path found.
PNG and PDF output need rsvg-convert on the PATH.`,
		Example: `  graphwalk render -n 30 --fanout 2 --goal 17 -o walk.svg
  graphwalk render -i graph.json -s dls -l 4 -f svg,png -o walk
  graphwalk render --kind complete -n 8 --no-search -f dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ro.formats == "" {
				ro.formats = c.Config.Defaults.Format
			}
			if ro.layout == "" {
				ro.layout = c.Config.Defaults.Layout
			}
			if !cmd.Flags().Changed("scale") {
				ro.scale = c.Config.Defaults.Scale
			}
			opts, err := c.options(gf, &sf)
			if err != nil {
				return err
			}
			opts.Formats = parseList(ro.formats)
			opts.Layout = ro.layout
			opts.Title = ro.title
			opts.Detailed = ro.detailed
			opts.Scale = ro.scale
			opts.SkipSearch = ro.noSearch
			return c.runRender(cmd.Context(), opts, ro.output, gf.input)
		},
	}

	gf.register(cmd)
	sf.register(cmd)
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg, png, pdf, dot (comma-separated, default from config)")
	cmd.Flags().StringVar(&ro.layout, "layout", "", "graphviz layout engine: dot, neato, circo, fdp, sfdp, twopi")
	cmd.Flags().StringVar(&ro.title, "title", "", "diagram title (default: graph and strategy)")
	cmd.Flags().BoolVar(&ro.detailed, "detailed", false, "show node degrees in labels")
	cmd.Flags().Float64Var(&ro.scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&ro.noSearch, "no-search", false, "draw the graph without searching it")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output, input string) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Rendering...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	if result.Search != nil {
		printResult(*result.Search)
	}

	base := basePath(output, input, opts)
	var written []string
	for _, format := range opts.Formats {
		path := base + "." + format
		if len(opts.Formats) == 1 && output != "" {
			path = output
		}
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		logger.Debug("wrote artifact", "path", path, "bytes", len(result.Artifacts[format]))
		written = append(written, path)
	}

	printSuccess("Rendered %s", result.Graph.Params())
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	for _, p := range written {
		printFile(p)
	}
	return nil
}

// basePath derives the output path without extension. An explicit output
// loses a known format extension; otherwise the name comes from the input
// file or the graph parameters.
func basePath(output, input string, opts pipeline.Options) string {
	if output != "" {
		ext := filepath.Ext(output)
		if render.Formats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if input != "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	p := opts.Params()
	name := fmt.Sprintf("%s-%d", p.Kind, p.Nodes)
	if p.Fanout > 0 {
		name += fmt.Sprintf("-%d", p.Fanout)
	}
	if !opts.SkipSearch {
		name += "-" + strings.NewReplacer("(", "", ")", "").Replace(opts.Strategy)
	}
	return name
}

func writeFile(path string, data []byte) error {
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
