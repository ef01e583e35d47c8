// Package svgdefs resolves the definitions section of a document:
// gradients and clip paths are renumbered under canonical ids, gradient
// indirections are resolved, and the style sheet references are
// rewritten accordingly.
package svgdefs

import (
	"fmt"
)

// Kind is the kind of a definition.
type Kind uint8

const (
	LinearGradientKind Kind = iota
	RadialGradientKind
	ClipPathKind
)

// String returns the kind as used in canonical ids.
func (k Kind) String() string {
	switch k {
	case LinearGradientKind:
		return "linear-gradient"
	case RadialGradientKind:
		return "radial-gradient"
	case ClipPathKind:
		return "clip-path"
	}
	return "<unknown kind>"
}

// Element returns the SVG element name of the kind.
func (k Kind) Element() string {
	switch k {
	case LinearGradientKind:
		return "linearGradient"
	case RadialGradientKind:
		return "radialGradient"
	case ClipPathKind:
		return "clipPath"
	}
	return ""
}

// CanonicalID is the rewritten identifier of a definition.
type CanonicalID struct {
	Project string
	Kind    Kind
	Ordinal int
}

func (c CanonicalID) String() string {
	return fmt.Sprintf("%s-%s-%d", c.Project, c.Kind, c.Ordinal)
}

// Stop is a gradient stop. Values are kept verbatim;
// Opacity is empty when not specified.
type Stop struct {
	Offset  string
	Color   string
	Opacity string
}

// Attr is a name, value pair of serialized attributes.
type Attr struct {
	Name, Value string
}

// Definition is one of *LinearGradient, *RadialGradient, *ClipPath.
type Definition interface {
	// Canonical returns the rewritten id.
	Canonical() CanonicalID
	// SourceID returns the id found in the document.
	SourceID() string
	// Attrs returns the attributes of the definition element,
	// id first, in serialization order.
	Attrs() []Attr
}

var (
	_ Definition = (*LinearGradient)(nil)
	_ Definition = (*RadialGradient)(nil)
	_ Definition = (*ClipPath)(nil)
)

// LinearGradient is a resolved linear gradient, in user space.
type LinearGradient struct {
	ID             CanonicalID
	Source         string
	X1, Y1, X2, Y2 string
	Transform      string // optional
	Stops          []Stop
}

func (g *LinearGradient) Canonical() CanonicalID { return g.ID }
func (g *LinearGradient) SourceID() string       { return g.Source }

func (g *LinearGradient) Attrs() []Attr {
	return gradientAttrs(g.ID, []Attr{
		{"x1", g.X1}, {"y1", g.Y1}, {"x2", g.X2}, {"y2", g.Y2},
	}, g.Transform)
}

// RadialGradient is a resolved radial gradient, in user space.
type RadialGradient struct {
	ID        CanonicalID
	Source    string
	CX, CY, R string
	Transform string // optional
	Stops     []Stop
}

func (g *RadialGradient) Canonical() CanonicalID { return g.ID }
func (g *RadialGradient) SourceID() string       { return g.Source }

func (g *RadialGradient) Attrs() []Attr {
	return gradientAttrs(g.ID, []Attr{
		{"cx", g.CX}, {"cy", g.CY}, {"r", g.R},
	}, g.Transform)
}

func gradientAttrs(id CanonicalID, geometry []Attr, transform string) []Attr {
	out := append([]Attr{{"id", id.String()}}, geometry...)
	if transform != "" {
		out = append(out, Attr{"gradientTransform", transform})
	}
	return append(out, Attr{"gradientUnits", "userSpaceOnUse"})
}

// ClipShape is either ClipPolygon or ClipCircle.
type ClipShape interface {
	// Element returns the SVG element name of the shape.
	Element() string
	// Attrs returns the geometry of the shape.
	Attrs() []Attr
}

// ClipPolygon is a polygonal clip region.
type ClipPolygon struct {
	Points string
}

func (ClipPolygon) Element() string  { return "polygon" }
func (c ClipPolygon) Attrs() []Attr { return []Attr{{"points", c.Points}} }

// ClipCircle is a circular clip region.
type ClipCircle struct {
	CX, CY, R string
}

func (ClipCircle) Element() string { return "circle" }
func (c ClipCircle) Attrs() []Attr {
	return []Attr{{"cx", c.CX}, {"cy", c.CY}, {"r", c.R}}
}

// ClipPath is a resolved clip path.
type ClipPath struct {
	ID     CanonicalID
	Source string
	Shape  ClipShape
}

func (c *ClipPath) Canonical() CanonicalID { return c.ID }
func (c *ClipPath) SourceID() string       { return c.Source }
func (c *ClipPath) Attrs() []Attr          { return []Attr{{"id", c.ID.String()}} }
