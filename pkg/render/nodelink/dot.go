package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/framescope/pkg/node"
)

const defaultHighlight = "#ff0000"

// Options configures hierarchy diagram rendering.
type Options struct {
	// Detailed adds frame, size and z-index to node labels.
	// When false, only the node ID is shown.
	Detailed bool

	// Selected and Focused are highlighted when non-empty.
	Selected string
	Focused  string

	// Highlight is the colour for selected and focused nodes.
	Highlight string
}

// ToDOT converts a node set to Graphviz DOT format. Nodes appear in render
// order; duplicate ids are drawn once.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(set node.Set, opts Options) string {
	if opts.Highlight == "" {
		opts.Highlight = defaultHighlight
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=monospace, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	seen := make(map[string]bool, set.Len())
	var drawn []node.Node
	for _, n := range set.Nodes() {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		drawn = append(drawn, n)

		label := fmtLabel(set, n, opts.Detailed)
		attrs := fmtAttrs(set, n, label, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range drawn {
		p, ok := set.Parent(n)
		if !ok {
			continue
		}
		if closesCycle(set, n, p) {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=grey];\n", p.ID, n.ID)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", p.ID, n.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// closesCycle reports whether the link p -> n is part of a parent cycle.
func closesCycle(set node.Set, n, p node.Node) bool {
	for _, a := range set.Ancestors(p) {
		if a.ID == n.ID {
			return true
		}
	}
	return p.ID == n.ID
}

func fmtLabel(set node.Set, n node.Node, detailed bool) string {
	if !detailed {
		return n.ID
	}
	f := n.Frame
	return fmt.Sprintf("%s\n%s\n(%g, %g)\nz: %d", n.ID, n.SizeLabel(), f.X, f.Y, set.ZIndex(n))
}

func fmtAttrs(set node.Set, n node.Node, label string, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.ID == opts.Selected || (opts.Focused != "" && n.ID == opts.Focused) {
		attrs = append(attrs, fmt.Sprintf("color=%q", opts.Highlight), "penwidth=2")
	}
	if _, ok := set.Parent(n); n.HasParent() && !ok {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
