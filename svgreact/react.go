// Package svgreact renders a conversion result as JSX markup,
// usable in a React component.
package svgreact

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/benoitkugler/svgjsx"
	"github.com/benoitkugler/svgjsx/svgdefs"
	"github.com/benoitkugler/svgjsx/svgstyle"
	"github.com/benoitkugler/svgjsx/svgtree"
	"github.com/tdewolff/parse/v2/strconv"
)

var _ svgjsx.Renderer = Renderer{}

// Renderer writes JSX markup.
type Renderer struct {
	// Component, when not empty, wraps the markup in an exported
	// function component with this name.
	Component string
	// Indent is the indentation unit, two spaces by default.
	Indent string
}

// SVG attributes spelled differently in JSX
var jsxNames = map[string]string{
	"stroke-linejoin": "strokeLinejoin",
	"stroke-width":    "strokeWidth",
	"clip-path":       "clipPath",
	"stop-color":      "stopColor",
	"stop-opacity":    "stopOpacity",
	"fill-opacity":    "fillOpacity",
}

func jsxName(name string) string {
	if n, ok := jsxNames[name]; ok {
		return n
	}
	return name
}

var (
	attrEscaper     = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")
	templateEscaper = strings.NewReplacer("\\", "\\\\", "`", "\\`", "${", "\\${")
)

type writer struct {
	*bufio.Writer
	indent string
	level  int
}

func (w *writer) line(format string, args ...interface{}) {
	w.WriteString(strings.Repeat(w.indent, w.level))
	fmt.Fprintf(w, format, args...)
	w.WriteByte('\n')
}

func attrs(list []svgdefs.Attr) string {
	var b strings.Builder
	for _, a := range list {
		fmt.Fprintf(&b, ` %s="%s"`, jsxName(a.Name), attrEscaper.Replace(a.Value))
	}
	return b.String()
}

// Render implements svgjsx.Renderer.
func (r Renderer) Render(dst io.Writer, res *svgjsx.Result) error {
	w := &writer{Writer: bufio.NewWriter(dst), indent: r.Indent}
	if w.indent == "" {
		w.indent = "  "
	}
	props := ""
	if r.Component != "" {
		w.line("export const %s = (props) => (", r.Component)
		w.level++
		props = " {...props}"
	}
	w.line(`<svg viewBox="%s"%s>`, attrEscaper.Replace(res.ViewBox), props)
	w.level++
	writeDefs(w, res.Definitions)
	for _, g := range res.Tree {
		writeNode(w, g)
	}
	w.level--
	w.line("</svg>")
	if r.Component != "" {
		w.level--
		w.line(")")
	}
	return w.Flush()
}

// writeDefs always writes the definitions section, even when empty.
func writeDefs(w *writer, defs []svgdefs.Definition) {
	w.line("<defs>")
	w.level++
	for _, def := range defs {
		switch def := def.(type) {
		case *svgdefs.LinearGradient:
			w.line("<linearGradient%s>%s</linearGradient>", attrs(def.Attrs()), stops(def.Stops))
		case *svgdefs.RadialGradient:
			w.line("<radialGradient%s>%s</radialGradient>", attrs(def.Attrs()), stops(def.Stops))
		case *svgdefs.ClipPath:
			w.line("<clipPath%s><%s%s /></clipPath>", attrs(def.Attrs()), def.Shape.Element(), attrs(def.Shape.Attrs()))
		}
	}
	w.level--
	w.line("</defs>")
}

func stops(list []svgdefs.Stop) string {
	var b strings.Builder
	for _, s := range list {
		a := []svgdefs.Attr{{Name: "offset", Value: s.Offset}, {Name: "stop-color", Value: s.Color}}
		if s.Opacity != "" {
			a = append(a, svgdefs.Attr{Name: "stop-opacity", Value: s.Opacity})
		}
		fmt.Fprintf(&b, "<stop%s />", attrs(a))
	}
	return b.String()
}

// presentation returns the inlined style as JSX props.
func presentation(p svgstyle.Presentation) string {
	var b strings.Builder
	for _, d := range p {
		switch d.Attr {
		case svgstyle.OpacityIsolation:
			fmt.Fprintf(&b, " style={{opacity:%s, isolation:`%s`}}", number(d.Value), templateEscaper.Replace(d.Isolation))
		case svgstyle.FillOpacity, svgstyle.Opacity:
			fmt.Fprintf(&b, " style={{opacity:%s}}", number(d.Value))
		default:
			fmt.Fprintf(&b, " %s={`%s`}", jsxName(d.Attr.String()), templateEscaper.Replace(d.Value))
		}
	}
	return b.String()
}

// number returns v as a JavaScript number literal,
// or a template string when it is not a number.
func number(v string) string {
	if _, n := strconv.ParseFloat([]byte(v)); n != 0 && n == len(v) {
		return v
	}
	return "`" + templateEscaper.Replace(v) + "`"
}

func writeNode(w *writer, n svgtree.Node) {
	style := presentation(n.Style().Inline)
	g, ok := n.(*svgtree.Group)
	if !ok {
		w.line("<%s%s%s />", n.Kind().Element(), style, attrs(n.Geometry()))
		return
	}
	w.line("<g%s%s>", attrs(g.Geometry()), style)
	w.level++
	for _, c := range g.Children {
		writeNode(w, c)
	}
	w.level--
	w.line("</g>")
}
