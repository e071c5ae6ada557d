package sink

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/matzehuels/rxtimeline/pkg/core/axis"
	"github.com/matzehuels/rxtimeline/pkg/core/content"
	"github.com/matzehuels/rxtimeline/pkg/core/geom"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/core/timeline"
)

const chartCSS = `
    .resource { fill: #f7f7f7; }
    .resource:nth-of-type(even) { fill: #efefef; }
    .resource.hovered { fill: #e3ecf7; }
    .resource.selected { fill: #cfe0f3; }
    .grid-line { stroke: #ddd; stroke-width: 1; }
    .axis-line, .tick line { stroke: #333; stroke-width: 1; }
    .tick text { fill: #333; }
    .activity rect { fill-opacity: 0.85; stroke: #fff; }
    .activity.dragged rect { fill-opacity: 0.5; }
    .activity text { fill: #fff; pointer-events: none; }`

const chartJS = `
    document.querySelectorAll('.resource').forEach(el => {
      el.addEventListener('mouseenter', () => el.classList.add('hovered'));
      el.addEventListener('mouseleave', () => el.classList.remove('hovered'));
      el.addEventListener('click', () => el.classList.toggle('selected'));
    });`

// DefaultPalette is d3's category10 scheme.
var DefaultPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette     []string
	colors      map[string]string
	background  string
	interactive bool
	title       string
}

// WithPalette colors activity types by hashing the type name into palette.
func WithPalette(palette []string) SVGOption {
	return func(r *svgRenderer) {
		if len(palette) > 0 {
			r.palette = palette
		}
	}
}

// WithTypeColor pins the color of one activity type.
func WithTypeColor(typ, color string) SVGOption {
	return func(r *svgRenderer) { r.colors[typ] = color }
}

func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }
func WithInteraction() SVGOption            { return func(r *svgRenderer) { r.interactive = true } }
func WithTitle(title string) SVGOption      { return func(r *svgRenderer) { r.title = title } }

// RenderSVG draws a view model. Lanes are drawn first, then grid lines and
// axes, then activities so they stay on top.
func RenderSVG(vm timeline.ViewModel, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	w, h := vm.View.Width, vm.View.Height
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(w), num(h), num(w), num(h))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", EscapeXML(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", chartCSS)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(r.background))
	}

	for _, d := range vm.Diagnostics {
		fmt.Fprintf(&buf, "  <!-- %s: %s -->\n", d.Code, strings.ReplaceAll(d.Message, "--", "- -"))
	}

	renderResources(&buf, vm.Resources)
	renderGridLines(&buf, vm.TimeAxis, vm.ResourceAxis)
	renderAxis(&buf, "time", vm.TimeAxis, vm.StrokeWidth)
	renderAxis(&buf, "resource", vm.ResourceAxis, vm.StrokeWidth)
	r.renderEvents(&buf, vm.Events, vm.StrokeWidth)

	if r.interactive {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", chartJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: DefaultPalette, colors: map[string]string{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// color returns the fill for an activity type. Untyped activities share
// the first palette entry.
func (r *svgRenderer) color(typ string) string {
	if c, ok := r.colors[typ]; ok {
		return c
	}
	if typ == "" {
		return r.palette[0]
	}
	h := fnv.New32a()
	h.Write([]byte(typ))
	return r.palette[h.Sum32()%uint32(len(r.palette))]
}

func renderResources(buf *bytes.Buffer, lanes []content.ResourceRectangle) {
	if len(lanes) == 0 {
		return
	}
	buf.WriteString(`  <g class="resources">` + "\n")
	for _, l := range lanes {
		class := "resource"
		if l.Hovered {
			class += " hovered"
		}
		if l.Selected {
			class += " selected"
		}
		fmt.Fprintf(buf, `    <rect class="%s" data-resource="%s" transform="%s" width="%s" height="%s"/>`+"\n",
			class, EscapeXML(l.ID), l.Transform, num(l.Width), num(l.Height))
	}
	buf.WriteString("  </g>\n")
}

func renderGridLines(buf *bytes.Buffer, axes ...axis.Axis) {
	for _, a := range axes {
		if !a.ShowGridLines {
			continue
		}
		for _, l := range a.GridLines {
			writeLine(buf, "    ", "grid-line", l, 1)
		}
	}
}

func renderAxis(buf *bytes.Buffer, name string, a axis.Axis, strokeWidth float64) {
	if a.Line == nil && len(a.TickMarks) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <g class="axis %s-axis">`+"\n", name)
	if a.Line != nil {
		writeLine(buf, "    ", "axis-line", *a.Line, strokeWidth/2)
	}
	anchor, baseline := labelAlignment(a.Orientation)
	for _, tm := range a.TickMarks {
		fmt.Fprintf(buf, `    <g class="tick" transform="%s">`+"\n", tm.Transform)
		if tm.Line.Length() > 0 {
			writeLine(buf, "      ", "", tm.Line, 1)
		}
		fmt.Fprintf(buf, `      <text x="%s" y="%s" text-anchor="%s" dominant-baseline="%s" font-family="%s" font-size="%s">%s</text>`+"\n",
			num(tm.LabelOffset.X), num(tm.LabelOffset.Y), anchor, baseline,
			EscapeXML(tm.FontFace), num(tm.FontSize), EscapeXML(tm.Label))
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

// labelAlignment anchors labels of a vertical axis to their right edge and
// labels of a horizontal axis to their bottom center.
func labelAlignment(o orient.Orientation) (anchor, baseline string) {
	return orient.Match(o, "end", "middle"), orient.Match(o, "middle", "auto")
}

func (r *svgRenderer) renderEvents(buf *bytes.Buffer, events []content.EventRectangle, strokeWidth float64) {
	if len(events) == 0 {
		return
	}
	buf.WriteString(`  <g class="activities">` + "\n")
	for _, e := range events {
		class := "activity"
		if e.Dragged {
			class += " dragged"
		}
		fmt.Fprintf(buf, `    <g class="%s" id="activity-%s" data-series="%s" transform="%s">`+"\n",
			class, EscapeXML(e.ID), EscapeXML(e.Series), e.Transform)
		fmt.Fprintf(buf, `      <rect width="%s" height="%s" fill="%s" stroke-width="%s"/>`+"\n",
			num(e.Width), num(e.Height), EscapeXML(r.color(e.Type)), num(strokeWidth))
		if label := FitLabel(e); label != "" {
			fmt.Fprintf(buf, `      <text x="%s" y="%s" font-family="%s" font-size="%s">%s</text>`+"\n",
				num(e.Padding), num(e.Padding+e.FontSize), EscapeXML(e.FontFace), num(e.FontSize), EscapeXML(label))
		}
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

func writeLine(buf *bytes.Buffer, indent, class string, l geom.Line, width float64) {
	buf.WriteString(indent + "<line")
	if class != "" {
		fmt.Fprintf(buf, ` class="%s"`, class)
	}
	fmt.Fprintf(buf, ` x1="%s" y1="%s" x2="%s" y2="%s" stroke-width="%s"/>`+"\n",
		num(l.Start.X), num(l.Start.Y), num(l.End.X), num(l.End.Y), num(width))
}

func num(v float64) string { return geom.FormatNumber(v) }
