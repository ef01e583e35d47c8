// Package svgraster renders a conversion result to a PNG preview,
// by wrapping rasterx.
//
// Styles are inherited along groups, where opacities multiply.
// Clip paths are not applied.
package svgraster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/svgjsx"
	"github.com/benoitkugler/svgjsx/internal/logutil"
	"github.com/benoitkugler/svgjsx/svgstyle"
	"github.com/benoitkugler/svgjsx/svgtree"
	"github.com/srwiley/rasterx"
	"golang.org/x/exp/slog"
	"golang.org/x/image/math/fixed"
)

var _ svgjsx.Renderer = Renderer{} // assert interface conformance

// Renderer rasterizes the shape tree.
// A zero Width or Height is deduced from the view box,
// keeping its aspect ratio.
type Renderer struct {
	Width, Height int
	Logger        *slog.Logger
}

// Render implements svgjsx.Renderer, writing a PNG image.
func (r Renderer) Render(w io.Writer, res *svgjsx.Result) error {
	img, err := r.Rasterize(res)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// viewBox returns the user space area of the result.
func viewBox(res *svgjsx.Result) (bounds, error) {
	if res.ViewBox != "" {
		vb, err := parseNumbers(res.ViewBox)
		if err != nil {
			return bounds{}, err
		}
		if len(vb) != 4 || vb[2] <= 0 || vb[3] <= 0 {
			return bounds{}, fmt.Errorf("invalid view box %q", res.ViewBox)
		}
		return bounds{X: vb[0], Y: vb[1], W: vb[2], H: vb[3]}, nil
	}
	if res.Width == "" || res.Height == "" {
		return bounds{}, errors.New("missing view box and dimensions")
	}
	w, err := parseFloat(res.Width)
	if err != nil {
		return bounds{}, err
	}
	h, err := parseFloat(res.Height)
	if err != nil {
		return bounds{}, err
	}
	return bounds{W: w, H: h}, nil
}

func (r Renderer) size(vb bounds) (int, int) {
	w, h := r.Width, r.Height
	switch {
	case w > 0 && h > 0:
	case w > 0:
		h = int(math.Ceil(float64(w) * vb.H / vb.W))
	case h > 0:
		w = int(math.Ceil(float64(h) * vb.W / vb.H))
	default:
		w, h = int(math.Ceil(vb.W)), int(math.Ceil(vb.H))
	}
	return w, h
}

// Rasterize draws the result into a new transparent image.
func (r Renderer) Rasterize(res *svgjsx.Result) (*image.RGBA, error) {
	vb, err := viewBox(res)
	if err != nil {
		return nil, fmt.Errorf("rasterizing: %w", err)
	}
	w, h := r.size(vb)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rasterizing: invalid image size %dx%d", w, h)
	}
	sx, sy := float64(w)/vb.W, float64(h)/vb.H

	grads, err := newGradients(res.Definitions, vb)
	if err != nil {
		return nil, fmt.Errorf("rasterizing: %w", err)
	}
	view := rasterx.Identity.Scale(sx, sy).Translate(-vb.X, -vb.Y)
	for id, g := range grads {
		g.Matrix = view.Mult(g.Matrix)
		grads[id] = g
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	rs := rasterizer{
		view:      view,
		lineScale: math.Sqrt(sx * sy),
		grads:     grads,
		filler:    rasterx.NewFiller(w, h, scanner),
		dasher:    rasterx.NewDasher(w, h, scanner),
		logger:    logutil.Or(r.Logger),
	}
	rs.filler.SetWinding(true)
	for _, g := range res.Tree {
		rs.node(g, defaultState)
	}
	return img, nil
}

// state is the inherited style.
type state struct {
	fill, stroke paint
	width        float64
	join         rasterx.JoinMode
	opacity      float64
	fillOpacity  float64
}

var defaultState = state{
	fill:        plainColor{color.NRGBA{A: 0xff}},
	width:       1,
	join:        rasterx.Miter,
	opacity:     1,
	fillOpacity: 1,
}

type rasterizer struct {
	view      rasterx.Matrix2D
	lineScale float64
	grads     gradients
	filler    *rasterx.Filler
	dasher    *rasterx.Dasher
	logger    *slog.Logger
}

// apply returns the state updated with the inlined directives.
// Invalid values are logged and skipped.
func (rs *rasterizer) apply(st state, n svgtree.Node) state {
	for _, d := range n.Style().Inline {
		var err error
		switch d.Attr {
		case svgstyle.Fill:
			var p paint
			if p, err = rs.grads.resolve(d.Value); err == nil {
				st.fill = p
			}
		case svgstyle.Stroke:
			var p paint
			if p, err = rs.grads.resolve(d.Value); err == nil {
				st.stroke = p
			}
		case svgstyle.StrokeWidth:
			var f float64
			if f, err = parseFloat(d.Value); err == nil {
				st.width = f
			}
		case svgstyle.StrokeLinejoin:
			if j, ok := joinModes[d.Value]; ok {
				st.join = j
			} else {
				err = fmt.Errorf("unsupported line join %q", d.Value)
			}
		case svgstyle.FillOpacity:
			var f float64
			if f, err = readFraction(d.Value); err == nil {
				st.fillOpacity *= f
			}
		case svgstyle.Opacity:
			// OpacityIsolation always comes with a plain Opacity
			var f float64
			if f, err = readFraction(d.Value); err == nil {
				st.opacity *= f
			}
		case svgstyle.ClipPath:
			rs.logger.Debug("clip path not applied", "value", d.Value)
		}
		if err != nil {
			rs.logger.Warn("skipping style directive", "attribute", d.Attr.String(), "error", err)
		}
	}
	return st
}

func (rs *rasterizer) node(n svgtree.Node, st state) {
	st = rs.apply(st, n)
	if g, ok := n.(*svgtree.Group); ok {
		for _, c := range g.Children {
			rs.node(c, st)
		}
		return
	}
	p, err := outline(n)
	if err != nil {
		rs.logger.Warn("skipping shape", "kind", n.Kind().String(), "error", err)
		return
	}
	rs.draw(p, st)
}

func (rs *rasterizer) setColor(s rasterx.Scanner, p paint, opacity float64) {
	switch p := p.(type) {
	case plainColor:
		s.SetColor(rasterx.ApplyOpacity(p.NRGBA, opacity))
	case gradientPaint:
		s.SetColor(p.GetColorFunction(opacity))
	}
}

func (rs *rasterizer) draw(p path, st state) {
	if len(p) == 0 {
		return
	}
	if st.fill != nil {
		rs.filler.Clear()
		p.addTo(&rasterx.MatrixAdder{Adder: rs.filler, M: rs.view})
		rs.setColor(rs.filler.Scanner, st.fill, st.opacity*st.fillOpacity)
		rs.filler.Draw()
	}
	if st.stroke != nil && st.width > 0 {
		rs.dasher.Clear()
		rs.dasher.SetStroke(fixed.Int26_6(st.width*rs.lineScale*64), 4*64,
			rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, st.join, nil, 0)
		p.addTo(&rasterx.MatrixAdder{Adder: rs.dasher, M: rs.view})
		rs.setColor(rs.dasher.Scanner, st.stroke, st.opacity)
		rs.dasher.Draw()
	}
}

// outline converts the geometry of a shape to a path.
// Absent coordinates default to zero.
func outline(n svgtree.Node) (path, error) {
	var (
		p   path
		err error
	)
	num := func(v string) float64 {
		if v == "" || err != nil {
			return 0
		}
		var f float64
		f, err = parseFloat(v)
		return f
	}
	opt := func(v *string) float64 {
		if v == nil {
			return 0
		}
		return num(*v)
	}
	switch n := n.(type) {
	case *svgtree.Line:
		x1, y1, x2, y2 := num(n.X1), num(n.Y1), num(n.X2), num(n.Y2)
		p.moveTo(x1, y1)
		p.lineTo(x2, y2)
	case *svgtree.Rect:
		x, y, w, h := opt(n.X), opt(n.Y), opt(n.Width), opt(n.Height)
		if w > 0 && h > 0 {
			rasterx.AddRect(x, y, x+w, y+h, 0, &p)
		}
	case *svgtree.Circle:
		cx, cy, r := num(n.CX), num(n.CY), num(n.R)
		if r > 0 {
			rasterx.AddCircle(cx, cy, r, &p)
		}
	case *svgtree.Ellipse:
		cx, cy, rx, ry := num(n.CX), num(n.CY), num(n.RX), num(n.RY)
		if rx > 0 && ry > 0 {
			rasterx.AddEllipse(cx, cy, rx, ry, 0, &p)
		}
	case *svgtree.Polygon, *svgtree.Polyline:
		points, closed := "", false
		if pg, ok := n.(*svgtree.Polygon); ok {
			points, closed = pg.Points, true
		} else {
			points = n.(*svgtree.Polyline).Points
		}
		var coords []float64
		if coords, err = parseNumbers(points); err == nil {
			if len(coords)%2 != 0 {
				return nil, fmt.Errorf("odd number of coordinates in %q", points)
			}
			p.addPoints(coords, closed)
		}
	case *svgtree.Path:
		p, err = compilePath(n.D)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
