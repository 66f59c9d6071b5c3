package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/framescope/pkg/cache"
	"github.com/matzehuels/framescope/pkg/config"
	"github.com/matzehuels/framescope/pkg/errors"
	"github.com/matzehuels/framescope/pkg/inspector"
	"github.com/matzehuels/framescope/pkg/render/nodelink"
	"github.com/matzehuels/framescope/pkg/render/svg"
	"github.com/matzehuels/framescope/pkg/render/term"
)

// Render formats.
const (
	formatOverlay   = "overlay"   // inspector overlay as SVG
	formatHierarchy = "hierarchy" // parent hierarchy rendered by graphviz
	formatDOT       = "dot"       // parent hierarchy as DOT source
	formatTerm      = "term"      // inspector overlay as terminal text
)

// formatSuffix is appended to the input name when no --output is given.
var formatSuffix = map[string]string{
	formatOverlay:   "overlay.svg",
	formatHierarchy: "hierarchy.svg",
	formatDOT:       "dot",
	formatTerm:      "txt",
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string  // output file path; term writes to stdout when empty
	format     string  // one of the format constants
	selectID   string  // selected element
	focusID    string  // focused element
	nodeIDs    bool    // write ids inside overlay boxes
	background string  // overlay background colour
	padding    float64 // overlay margin in frame units
	detailed   bool    // frame, size and z-index in hierarchy labels
	cols       int     // term canvas width, 0 derives it from the viewport
	rows       int     // term canvas height
	plain      bool    // term output without colour
	noCache    bool    // always run graphviz (hierarchy)
}

func validateFormat(f string) error {
	if _, ok := formatSuffix[f]; !ok {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid format: %s (must be 'overlay', 'hierarchy', 'dot' or 'term')", f)
	}
	return nil
}

// renderCommand creates the render command for writing overlays and
// hierarchy diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatOverlay}

	cmd := &cobra.Command{
		Use:   "render [frames.json]",
		Short: "Render the inspector overlay or node hierarchy of a frames file",
		Long: `Render the inspector overlay or node hierarchy of a frames file.

Formats:
  overlay    boxes, size label and spacing lines as SVG (default)
  hierarchy  parent/child diagram rendered with graphviz as SVG
  dot        the same diagram as DOT source
  term       the overlay drawn with box characters`,
		Example: `  framescope render card.json --select title
  framescope render card.json --select title --focus body -f term
  framescope render card.json -f hierarchy --detailed -o card.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input; term prints to stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: overlay, hierarchy, dot, term")
	cmd.Flags().StringVar(&opts.selectID, "select", "", "id of the selected element")
	cmd.Flags().StringVar(&opts.focusID, "focus", "", "id of the focused element")
	cmd.Flags().BoolVar(&opts.nodeIDs, "ids", false, "write element ids inside boxes (overlay)")
	cmd.Flags().StringVar(&opts.background, "background", "", "background colour (overlay)")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "margin around the viewport (overlay)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show frame, size and z-index (hierarchy, dot)")
	cmd.Flags().IntVar(&opts.cols, "cols", 0, "canvas columns (term)")
	cmd.Flags().IntVar(&opts.rows, "rows", 0, "canvas rows (term)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "no colour (term)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the hierarchy cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	s, err := c.openInspection(ctx, cfg, input)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.selectNodes(ctx, opts.selectID, opts.focusID); err != nil {
		return err
	}
	if opts.format == formatOverlay && s.ctrl.Selection().State == inspector.Idle {
		logger.Warn("nothing selected; the overlay shows borders only")
	}

	rc := c.newCache(opts.noCache || opts.format != formatHierarchy)
	defer rc.Close()

	data, err := renderInspection(ctx, s, cfg, rc, opts)
	if err != nil {
		return err
	}

	if opts.format == formatTerm && opts.output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	path := outputPath(opts.output, input, formatSuffix[opts.format])
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	prog.done(fmt.Sprintf("Rendered %s", opts.format))
	printFile(path)
	return nil
}

// renderInspection produces the bytes for opts.format.
func renderInspection(ctx context.Context, s *inspection, cfg config.Config, rc cache.Cache, opts renderOpts) ([]byte, error) {
	switch opts.format {
	case formatOverlay:
		var svgOpts []svg.SVGOption
		if opts.background != "" {
			svgOpts = append(svgOpts, svg.WithBackground(opts.background))
		}
		if opts.padding > 0 {
			svgOpts = append(svgOpts, svg.WithPadding(opts.padding))
		}
		if opts.nodeIDs {
			svgOpts = append(svgOpts, svg.WithNodeIDs())
		}
		return svg.RenderSVG(s.ctrl.Overlay(), s.frames.Viewport(), svgOpts...), nil

	case formatDOT, formatHierarchy:
		dot := hierarchyDOT(s, opts.detailed)
		if opts.format == formatDOT {
			return []byte(dot), nil
		}
		spinner := newSpinnerWithContext(ctx, "Rendering hierarchy...")
		spinner.Start()
		out, hit, err := cache.Fetch(ctx, rc, cache.HierarchyKey(dot, "svg"), hierarchyTTL, func() ([]byte, error) {
			return nodelink.RenderSVG(ctx, dot)
		})
		spinner.Stop()
		if err != nil {
			return nil, fmt.Errorf("render hierarchy: %w", err)
		}
		loggerFromContext(ctx).Debug("hierarchy rendered", "cached", hit)
		return out, nil

	case formatTerm:
		viewport := s.frames.Viewport()
		grid := term.Grid{CellWidth: cfg.Terminal.CellWidth, CellHeight: cfg.Terminal.CellHeight, Origin: viewport.Origin()}
		cols, rows := grid.Size(viewport)
		if opts.cols > 0 && opts.rows > 0 {
			grid = grid.Fit(viewport, opts.cols, opts.rows)
			cols, rows = opts.cols, opts.rows
		}
		canvas := term.NewCanvas(grid, cols, rows)
		canvas.DrawOverlay(s.ctrl.Overlay())
		if opts.plain {
			return []byte(canvas.String() + "\n"), nil
		}
		return []byte(canvas.Render() + "\n"), nil
	}
	return nil, validateFormat(opts.format)
}

func hierarchyDOT(s *inspection, detailed bool) string {
	selected, focused := s.ctrl.Selection().IDs()
	return nodelink.ToDOT(s.ctrl.Set(), nodelink.Options{
		Detailed:  detailed,
		Selected:  selected,
		Focused:   focused,
		Highlight: s.ctrl.Style().Highlight,
	})
}
