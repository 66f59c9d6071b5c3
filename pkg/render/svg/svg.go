package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/framescope/pkg/geometry"
	"github.com/matzehuels/framescope/pkg/inspector"
)

const (
	labelFontSize  = 10.0
	labelCharWidth = 0.6
	labelPadX      = 2.0
	labelPadY      = 1.0
	idFontSize     = 8.0
)

const boxInteractionCSS = `
    .box { transition: stroke-opacity 0.2s ease; }
    .box:hover { stroke-opacity: 0.6; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background  string
	padding     float64
	nodeIDs     bool
	interactive bool
}

// WithBackground fills the viewport with a colour.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithPadding adds a margin around the viewport.
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = p } }

// WithNodeIDs writes each node's id inside its box.
func WithNodeIDs() SVGOption { return func(r *svgRenderer) { r.nodeIDs = true } }

// WithInteraction adds hover styling for browsers.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// RenderSVG renders o over viewport.
func RenderSVG(o inspector.Overlay, viewport geometry.Rect, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	vx, vy := viewport.X-r.padding, viewport.Y-r.padding
	vw, vh := viewport.Width+2*r.padding, viewport.Height+2*r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		vx, vy, vw, vh, vw, vh)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			vx, vy, vw, vh, escapeXML(r.background))
	}
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", boxInteractionCSS)
	}

	for _, b := range o.Stacked() {
		renderBox(&buf, b, r.nodeIDs)
	}
	for _, l := range o.Lines {
		renderLine(&buf, l)
	}
	for _, l := range o.Lines {
		renderLabel(&buf, l.Label)
	}
	for _, l := range o.Labels {
		renderLabel(&buf, l)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderBox(buf *bytes.Buffer, b inspector.Box, withID bool) {
	f := b.Node.Frame
	// strokes are drawn inside the frame, as a view border is
	inset := b.Width / 2
	w, h := max(f.Width-b.Width, 0), max(f.Height-b.Width, 0)
	fmt.Fprintf(buf, `  <rect id="box-%s" class="box %s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="%.1f" data-z="%g"/>`+"\n",
		escapeXML(b.Node.ID), b.Role, f.X+inset, f.Y+inset, w, h, escapeXML(b.Color), b.Width, b.Z)
	if withID {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="%.0f" fill="%s">%s</text>`+"\n",
			f.X+b.Width+1, f.Y+b.Width+idFontSize, idFontSize, escapeXML(b.Color), escapeXML(b.Node.ID))
	}
}

func renderLine(buf *bytes.Buffer, l inspector.Line) {
	fmt.Fprintf(buf, `  <line class="spacing" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		l.Start.X, l.Start.Y, l.End.X, l.End.Y, escapeXML(l.Color), l.Width)
}

func renderLabel(buf *bytes.Buffer, l inspector.Label) {
	w, h := labelSize(l.Text)
	x, y := l.At.X, l.At.Y
	if l.Anchor == inspector.AnchorCenter {
		x -= w / 2
		y -= h / 2
	}
	fmt.Fprintf(buf, `  <rect class="label" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		x, y, w, h, escapeXML(l.Background))
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="%.0f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		x+w/2, y+h/2, labelFontSize, escapeXML(l.Foreground), escapeXML(l.Text))
}

func labelSize(text string) (w, h float64) {
	n := len([]rune(text))
	return float64(n)*labelFontSize*labelCharWidth + 2*labelPadX, labelFontSize + 2*labelPadY
}

func escapeXML(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
