package svgtree

import (
	"fmt"

	"github.com/benoitkugler/svgjsx/internal/logutil"
	"github.com/benoitkugler/svgjsx/svgdoc"
	"github.com/benoitkugler/svgjsx/svgerr"
	"github.com/benoitkugler/svgjsx/svgstyle"
	"golang.org/x/exp/slog"
)

// ErrorMode decides what happens to an element
// which is not a supported shape.
type ErrorMode uint8

const (
	// StrictErrorMode fails the conversion.
	StrictErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning and drops the element.
	WarnErrorMode
	// IgnoreErrorMode silently drops the element.
	IgnoreErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case StrictErrorMode:
		return "strict"
	case WarnErrorMode:
		return "warn"
	case IgnoreErrorMode:
		return "ignore"
	}
	return fmt.Sprintf("<ErrorMode %d>", uint8(m))
}

// ParseErrorMode is the inverse of ErrorMode.String.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch s {
	case "strict", "":
		return StrictErrorMode, nil
	case "warn":
		return WarnErrorMode, nil
	case "ignore":
		return IgnoreErrorMode, nil
	}
	return 0, fmt.Errorf("unknown error mode %q", s)
}

// DefaultMaxDepth bounds the nesting of groups.
const DefaultMaxDepth = 256

// Options configures Build.
type Options struct {
	ErrorMode ErrorMode
	MaxDepth  int // DefaultMaxDepth if zero
	Logger    *slog.Logger
}

type builder struct {
	classes svgstyle.Classes
	opts    Options
	logger  *slog.Logger
}

type leafFunc func(el *svgdoc.Element, style Styled) Node

var leafFuncs = map[string]leafFunc{
	"line":     lineF,
	"polygon":  polygonF,
	"rect":     rectF,
	"path":     pathF,
	"circle":   circleF,
	"ellipse":  ellipseF,
	"polyline": polylineF,
}

// Build converts the top-level groups of a document. The style of
// each node is looked up in classes from its own class attribute,
// with no inheritance from the enclosing groups.
func Build(classes svgstyle.Classes, groups []*svgdoc.Element, opts Options) ([]*Group, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	b := builder{classes: classes, opts: opts, logger: logutil.Or(opts.Logger)}
	out := make([]*Group, 0, len(groups))
	for _, el := range groups {
		g, err := b.group(el, 1)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// style resolves the class attribute of el.
func (b *builder) style(el *svgdoc.Element) Styled {
	attr, ok := el.Attr("class")
	if !ok {
		return Styled{}
	}
	number, ok := svgstyle.ClassNumber(attr)
	if !ok {
		b.logger.Debug("class without number", "element", el.Name, "class", attr)
		return Styled{}
	}
	class, ok := b.classes[number]
	if !ok {
		b.logger.Debug("class not in the style sheet", "element", el.Name, "class", attr)
		return Styled{}
	}
	return Styled{Class: class, Inline: svgstyle.Inline(class)}
}

func (b *builder) group(el *svgdoc.Element, depth int) (*Group, error) {
	if depth > b.opts.MaxDepth {
		return nil, svgerr.New(svgerr.MaxDepthExceeded, el.Get("id"), "groups nested deeper than %d", b.opts.MaxDepth)
	}
	g := &Group{Styled: b.style(el), ID: el.Get("id")}
	for _, child := range el.Children {
		if child.Name == "g" {
			sub, err := b.group(child, depth+1)
			if err != nil {
				return nil, err
			}
			g.Children = append(g.Children, sub)
			continue
		}
		leaf, ok := leafFuncs[child.Name]
		if !ok {
			if err := b.unsupported(child, g.ID); err != nil {
				return nil, err
			}
			continue
		}
		g.Children = append(g.Children, leaf(child, b.style(child)))
	}
	return g, nil
}

// unsupported applies the error mode to an element which is not converted.
func (b *builder) unsupported(el *svgdoc.Element, group string) error {
	switch b.opts.ErrorMode {
	case StrictErrorMode:
		if group == "" {
			return svgerr.New(svgerr.UnsupportedShapeKind, el.Name, "cannot convert element outside of a group")
		}
		return svgerr.New(svgerr.UnsupportedShapeKind, el.Name, "cannot convert element in group %q", group)
	case WarnErrorMode:
		b.logger.Warn("dropping unsupported element", "element", el.Name, "group", group)
	}
	return nil
}

// CheckTopLevel applies the error mode to the top-level elements
// which are neither groups nor definitions. Shapes are only
// converted inside groups, so even supported kinds are dropped.
func CheckTopLevel(others []*svgdoc.Element, opts Options) error {
	b := builder{opts: opts, logger: logutil.Or(opts.Logger)}
	for _, el := range others {
		if err := b.unsupported(el, ""); err != nil {
			return err
		}
	}
	return nil
}

func lineF(el *svgdoc.Element, style Styled) Node {
	return &Line{Styled: style, X1: el.Get("x1"), Y1: el.Get("y1"), X2: el.Get("x2"), Y2: el.Get("y2")}
}

func polygonF(el *svgdoc.Element, style Styled) Node {
	return &Polygon{Styled: style, Points: el.Get("points")}
}

func polylineF(el *svgdoc.Element, style Styled) Node {
	return &Polyline{Styled: style, Points: el.Get("points")}
}

func rectF(el *svgdoc.Element, style Styled) Node {
	optional := func(name string) *string {
		if v, ok := el.Attr(name); ok {
			return &v
		}
		return nil
	}
	return &Rect{Styled: style, X: optional("x"), Y: optional("y"), Width: optional("width"), Height: optional("height")}
}

func pathF(el *svgdoc.Element, style Styled) Node {
	return &Path{Styled: style, D: el.Get("d")}
}

func circleF(el *svgdoc.Element, style Styled) Node {
	return &Circle{Styled: style, CX: el.Get("cx"), CY: el.Get("cy"), R: el.Get("r")}
}

func ellipseF(el *svgdoc.Element, style Styled) Node {
	return &Ellipse{Styled: style, CX: el.Get("cx"), CY: el.Get("cy"), RX: el.Get("rx"), RY: el.Get("ry")}
}

// Walk calls fn on every node of the forest, parents before
// children, with depth 0 for the top-level groups.
func Walk(forest []*Group, fn func(n Node, depth int)) {
	var walk func(n Node, depth int)
	walk = func(n Node, depth int) {
		fn(n, depth)
		if g, ok := n.(*Group); ok {
			for _, c := range g.Children {
				walk(c, depth+1)
			}
		}
	}
	for _, g := range forest {
		walk(g, 0)
	}
}
