// Package svgmarkup renders a conversion result back to a standalone
// SVG document, where classes are replaced by presentation attributes.
package svgmarkup

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/benoitkugler/svgjsx"
	"github.com/benoitkugler/svgjsx/svgdefs"
	"github.com/benoitkugler/svgjsx/svgstyle"
	"github.com/benoitkugler/svgjsx/svgtree"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"
)

var _ svgjsx.Renderer = Renderer{}

const mimeSVG = "image/svg+xml"

// Renderer writes SVG markup.
type Renderer struct {
	// Minify compacts the output: numbers, paths and white space.
	Minify bool
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(mimeSVG, svg.Minify)
	m.AddFunc("text/css", css.Minify)
	return m
}

// Render implements svgjsx.Renderer.
func (r Renderer) Render(dst io.Writer, res *svgjsx.Result) error {
	var buf bytes.Buffer
	writeDocument(&buf, res)
	if !r.Minify {
		_, err := buf.WriteTo(dst)
		return err
	}
	return newMinifier().Minify(mimeSVG, dst, &buf)
}

func writeAttrs(w *bytes.Buffer, list []svgdefs.Attr) {
	for _, a := range list {
		fmt.Fprintf(w, ` %s="`, a.Name)
		xml.EscapeText(w, []byte(a.Value))
		w.WriteByte('"')
	}
}

// presentation converts the inlined directives to SVG attributes.
func presentation(p svgstyle.Presentation) []svgdefs.Attr {
	var out []svgdefs.Attr
	for _, d := range p {
		if d.Attr == svgstyle.OpacityIsolation {
			out = append(out, svgdefs.Attr{Name: "style", Value: fmt.Sprintf("opacity:%s;isolation:%s", d.Value, d.Isolation)})
			continue
		}
		out = append(out, svgdefs.Attr{Name: d.Attr.String(), Value: d.Value})
	}
	return out
}

func writeDocument(w *bytes.Buffer, res *svgjsx.Result) {
	w.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	writeAttrs(w, []svgdefs.Attr{{Name: "viewBox", Value: res.ViewBox}})
	if res.Width != "" && res.Height != "" {
		writeAttrs(w, []svgdefs.Attr{{Name: "width", Value: res.Width}, {Name: "height", Value: res.Height}})
	}
	w.WriteString(">\n")

	if len(res.Definitions) != 0 {
		w.WriteString("<defs>\n")
		for _, def := range res.Definitions {
			writeDefinition(w, def)
		}
		w.WriteString("</defs>\n")
	}
	for _, g := range res.Tree {
		writeNode(w, g, 0)
	}
	w.WriteString("</svg>\n")
}

func writeDefinition(w *bytes.Buffer, def svgdefs.Definition) {
	var (
		element string
		stops   []svgdefs.Stop
	)
	switch def := def.(type) {
	case *svgdefs.LinearGradient:
		element, stops = svgdefs.LinearGradientKind.Element(), def.Stops
	case *svgdefs.RadialGradient:
		element, stops = svgdefs.RadialGradientKind.Element(), def.Stops
	case *svgdefs.ClipPath:
		element = svgdefs.ClipPathKind.Element()
	}
	w.WriteString("<" + element)
	writeAttrs(w, def.Attrs())
	w.WriteString(">")
	for _, stop := range stops {
		w.WriteString("<stop")
		writeAttrs(w, []svgdefs.Attr{{Name: "offset", Value: stop.Offset}, {Name: "stop-color", Value: stop.Color}})
		if stop.Opacity != "" {
			writeAttrs(w, []svgdefs.Attr{{Name: "stop-opacity", Value: stop.Opacity}})
		}
		w.WriteString("/>")
	}
	if clip, ok := def.(*svgdefs.ClipPath); ok {
		w.WriteString("<" + clip.Shape.Element())
		writeAttrs(w, clip.Shape.Attrs())
		w.WriteString("/>")
	}
	w.WriteString("</" + element + ">\n")
}

func writeNode(w *bytes.Buffer, n svgtree.Node, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteByte('\t')
	}
	w.WriteString("<" + n.Kind().Element())
	writeAttrs(w, n.Geometry())
	writeAttrs(w, presentation(n.Style().Inline))
	g, ok := n.(*svgtree.Group)
	if !ok {
		w.WriteString("/>\n")
		return
	}
	w.WriteString(">\n")
	for _, c := range g.Children {
		writeNode(w, c, depth+1)
	}
	for i := 0; i < depth; i++ {
		w.WriteByte('\t')
	}
	w.WriteString("</g>\n")
}
