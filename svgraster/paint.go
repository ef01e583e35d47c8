package svgraster

import (
	"fmt"
	"image/color"
	"math"
	stdstrconv "strconv"
	"strings"

	"github.com/benoitkugler/svgjsx/svgdefs"
	"github.com/benoitkugler/svgjsx/svgstyle"
	"github.com/srwiley/rasterx"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/image/colornames"
)

// paint is either a plain color or a gradient.
// A nil paint disables filling or stroking.
type paint interface {
	isPaint()
}

type plainColor struct{ color.NRGBA }

type gradientPaint struct{ rasterx.Gradient }

func (plainColor) isPaint()    {}
func (gradientPaint) isPaint() {}

// parseFloat reads a number, ignoring a trailing unit.
func parseFloat(v string) (float64, error) {
	v = strings.TrimSpace(v)
	num, _ := parse.Dimension([]byte(v))
	if num == 0 {
		return 0, fmt.Errorf("invalid number %q", v)
	}
	f, _ := strconv.ParseFloat([]byte(v[:num]))
	return f, nil
}

// readFraction reads a number or a percentage.
func readFraction(v string) (float64, error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err := parseFloat(v)
	return f / d, err
}

// parseColorHex reads a color written as #rgb or #rrggbb.
func parseColorHex(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		// duplicate characters for the short form
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	var out [3]uint8
	for i := range out {
		t, err := stdstrconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, err
		}
		out[i] = uint8(t)
	}
	return color.NRGBA{out[0], out[1], out[2], 0xff}, nil
}

func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		f, err := parseFloat(v[:len(v)-1])
		if err != nil {
			return 0, err
		}
		return uint8(math.Min(math.Max(f, 0), 100) * 0xff / 100), nil
	}
	f, err := parseFloat(v)
	if err != nil {
		return 0, err
	}
	return uint8(math.Min(math.Max(f, 0), 255)), nil
}

// parseColor reads a color in hex, rgb() or named form.
// "none" returns ok == false.
func parseColor(s string) (c color.NRGBA, ok bool, err error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "none" || v == "transparent":
		return c, false, nil
	case strings.HasPrefix(v, "#"):
		c, err = parseColorHex(v)
		return c, err == nil, err
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		vals := strings.Split(v[4:len(v)-1], ",")
		if len(vals) != 3 {
			return c, false, fmt.Errorf("invalid color %q", s)
		}
		var rgb [3]uint8
		for i := range rgb {
			if rgb[i], err = parseColorValue(vals[i]); err != nil {
				return c, false, err
			}
		}
		return color.NRGBA{rgb[0], rgb[1], rgb[2], 0xff}, true, nil
	}
	if named, known := colornames.Map[v]; known {
		return color.NRGBA{named.R, named.G, named.B, named.A}, true, nil
	}
	return c, false, fmt.Errorf("invalid color %q", s)
}

// parseTransform reads a transform list, such as
// "translate(5 5) rotate(45)".
func parseTransform(v string) (rasterx.Matrix2D, error) {
	m := rasterx.Identity
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m, fmt.Errorf("invalid transform %q", v)
		}
		args, err := parseNumbers(d[1])
		if err != nil {
			return m, err
		}
		if m, err = applyTransform(m, strings.ToLower(strings.Trim(d[0], " ,")), args); err != nil {
			return m, err
		}
	}
	return m, nil
}

func applyTransform(m rasterx.Matrix2D, kind string, args []float64) (rasterx.Matrix2D, error) {
	ln := len(args)
	switch {
	case kind == "rotate" && ln == 1:
		return m.Rotate(args[0] * math.Pi / 180), nil
	case kind == "rotate" && ln == 3:
		return m.Translate(args[1], args[2]).Rotate(args[0]*math.Pi/180).Translate(-args[1], -args[2]), nil
	case kind == "translate" && ln == 1:
		return m.Translate(args[0], 0), nil
	case kind == "translate" && ln == 2:
		return m.Translate(args[0], args[1]), nil
	case kind == "skewx" && ln == 1:
		return m.SkewX(args[0] * math.Pi / 180), nil
	case kind == "skewy" && ln == 1:
		return m.SkewY(args[0] * math.Pi / 180), nil
	case kind == "scale" && ln == 1:
		return m.Scale(args[0], args[0]), nil
	case kind == "scale" && ln == 2:
		return m.Scale(args[0], args[1]), nil
	case kind == "matrix" && ln == 6:
		return m.Mult(rasterx.Matrix2D{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}), nil
	}
	return m, fmt.Errorf("invalid transform %s with %d arguments", kind, ln)
}

var joinModes = map[string]rasterx.JoinMode{
	"round":      rasterx.Round,
	"bevel":      rasterx.Bevel,
	"miter":      rasterx.Miter,
	"miter-clip": rasterx.MiterClip,
	"arcs":       rasterx.Arc,
}

// bounds is the user space area gradients are spread over.
type bounds = struct{ X, Y, W, H float64 }

// gradients indexes the resolved definitions by canonical id,
// already converted to user space gradients.
type gradients map[string]rasterx.Gradient

func newGradients(defs []svgdefs.Definition, area bounds) (gradients, error) {
	out := make(gradients)
	for _, def := range defs {
		var (
			g         = rasterx.Gradient{Bounds: area, Units: rasterx.UserSpaceOnUse}
			stops     []svgdefs.Stop
			transform string
			coords    []string
		)
		switch def := def.(type) {
		case *svgdefs.LinearGradient:
			stops, transform = def.Stops, def.Transform
			coords = []string{def.X1, def.Y1, def.X2, def.Y2}
		case *svgdefs.RadialGradient:
			stops, transform = def.Stops, def.Transform
			// the focus is the center
			coords = []string{def.CX, def.CY, def.CX, def.CY, def.R}
			g.IsRadial = true
		default:
			continue
		}
		id := def.Canonical().String()
		for i, c := range coords {
			if c == "" {
				continue
			}
			f, err := parseFloat(c)
			if err != nil {
				return nil, fmt.Errorf("gradient %s: %s", id, err)
			}
			g.Points[i] = f
		}
		g.Matrix = rasterx.Identity
		if transform != "" {
			m, err := parseTransform(transform)
			if err != nil {
				return nil, fmt.Errorf("gradient %s: %s", id, err)
			}
			g.Matrix = m
		}
		for _, s := range stops {
			stop, err := gradientStop(s)
			if err != nil {
				return nil, fmt.Errorf("gradient %s: %s", id, err)
			}
			g.Stops = append(g.Stops, stop)
		}
		out[id] = g
	}
	return out, nil
}

func gradientStop(s svgdefs.Stop) (rasterx.GradStop, error) {
	out := rasterx.GradStop{Opacity: 1, StopColor: color.NRGBA{A: 0xff}}
	var err error
	if s.Offset != "" {
		if out.Offset, err = readFraction(s.Offset); err != nil {
			return out, err
		}
	}
	if s.Color != "" {
		c, ok, err := parseColor(s.Color)
		if err != nil {
			return out, err
		}
		if ok {
			out.StopColor = c
		}
	}
	if s.Opacity != "" {
		if out.Opacity, err = readFraction(s.Opacity); err != nil {
			return out, err
		}
	}
	return out, nil
}

// resolve converts a fill or stroke value to a paint.
func (gs gradients) resolve(value string) (paint, error) {
	if id, ok := svgstyle.URLTarget(value); ok {
		g, ok := gs[id]
		if !ok {
			return nil, fmt.Errorf("unknown paint reference %q", value)
		}
		return gradientPaint{g}, nil
	}
	c, ok, err := parseColor(value)
	if err != nil || !ok {
		return nil, err
	}
	return plainColor{c}, nil
}
