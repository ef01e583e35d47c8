// Package svgtree rebuilds the shape tree of a document, with the
// style of every node resolved through the class table and inlined.
package svgtree

import (
	"github.com/benoitkugler/svgjsx/svgdefs"
	"github.com/benoitkugler/svgjsx/svgstyle"
)

// Kind is the kind of a node.
type Kind uint8

const (
	LineKind Kind = iota
	PolygonKind
	RectKind
	PathKind
	CircleKind
	EllipseKind
	PolylineKind
	GroupKind
)

// Element returns the SVG element name of the kind.
func (k Kind) Element() string {
	switch k {
	case LineKind:
		return "line"
	case PolygonKind:
		return "polygon"
	case RectKind:
		return "rect"
	case PathKind:
		return "path"
	case CircleKind:
		return "circle"
	case EllipseKind:
		return "ellipse"
	case PolylineKind:
		return "polyline"
	case GroupKind:
		return "g"
	}
	return ""
}

func (k Kind) String() string { return k.Element() }

// Node is one of *Line, *Polygon, *Rect, *Path, *Circle,
// *Ellipse, *Polyline or *Group.
type Node interface {
	Kind() Kind
	// Style returns the resolved style of the node.
	Style() Styled
	// Geometry returns the geometric attributes, verbatim
	// and in serialization order.
	Geometry() []svgdefs.Attr
}

var (
	_ Node = (*Line)(nil)
	_ Node = (*Polygon)(nil)
	_ Node = (*Rect)(nil)
	_ Node = (*Path)(nil)
	_ Node = (*Circle)(nil)
	_ Node = (*Ellipse)(nil)
	_ Node = (*Polyline)(nil)
	_ Node = (*Group)(nil)
)

// Styled is the style of a node. Class is nil when the node
// has no class attribute, or references a class not in the table.
// Such a node has no style, which is different from an empty one.
type Styled struct {
	Class  svgstyle.Class
	Inline svgstyle.Presentation
}

func (s Styled) Style() Styled { return s }

type Line struct {
	Styled
	X1, Y1, X2, Y2 string
}

func (*Line) Kind() Kind { return LineKind }
func (l *Line) Geometry() []svgdefs.Attr {
	return []svgdefs.Attr{{Name: "x1", Value: l.X1}, {Name: "y1", Value: l.Y1}, {Name: "x2", Value: l.X2}, {Name: "y2", Value: l.Y2}}
}

type Polygon struct {
	Styled
	Points string
}

func (*Polygon) Kind() Kind { return PolygonKind }
func (p *Polygon) Geometry() []svgdefs.Attr {
	return []svgdefs.Attr{{Name: "points", Value: p.Points}}
}

type Polyline struct {
	Styled
	Points string
}

func (*Polyline) Kind() Kind { return PolylineKind }
func (p *Polyline) Geometry() []svgdefs.Attr {
	return []svgdefs.Attr{{Name: "points", Value: p.Points}}
}

// Rect has independently optional attributes,
// nil when absent from the source.
type Rect struct {
	Styled
	X, Y, Width, Height *string
}

func (*Rect) Kind() Kind { return RectKind }
func (r *Rect) Geometry() []svgdefs.Attr {
	var out []svgdefs.Attr
	for _, a := range [...]struct {
		name  string
		value *string
	}{{"x", r.X}, {"y", r.Y}, {"width", r.Width}, {"height", r.Height}} {
		if a.value != nil {
			out = append(out, svgdefs.Attr{Name: a.name, Value: *a.value})
		}
	}
	return out
}

type Path struct {
	Styled
	D string
}

func (*Path) Kind() Kind { return PathKind }
func (p *Path) Geometry() []svgdefs.Attr {
	return []svgdefs.Attr{{Name: "d", Value: p.D}}
}

type Circle struct {
	Styled
	CX, CY, R string
}

func (*Circle) Kind() Kind { return CircleKind }
func (c *Circle) Geometry() []svgdefs.Attr {
	return []svgdefs.Attr{{Name: "cx", Value: c.CX}, {Name: "cy", Value: c.CY}, {Name: "r", Value: c.R}}
}

type Ellipse struct {
	Styled
	CX, CY, RX, RY string
}

func (*Ellipse) Kind() Kind { return EllipseKind }
func (e *Ellipse) Geometry() []svgdefs.Attr {
	return []svgdefs.Attr{{Name: "cx", Value: e.CX}, {Name: "cy", Value: e.CY}, {Name: "rx", Value: e.RX}, {Name: "ry", Value: e.RY}}
}

// Group owns its children, kept in document order.
type Group struct {
	Styled
	ID       string // optional
	Children []Node
}

func (*Group) Kind() Kind { return GroupKind }

// Geometry returns the id of the group, if any.
func (g *Group) Geometry() []svgdefs.Attr {
	if g.ID == "" {
		return nil
	}
	return []svgdefs.Attr{{Name: "id", Value: g.ID}}
}
