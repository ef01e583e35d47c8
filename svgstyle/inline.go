package svgstyle

// Attribute is a presentation attribute emitted by Inline.
type Attribute uint8

// The constants are sorted by emission order.
const (
	Fill Attribute = iota
	Stroke
	StrokeLinejoin
	StrokeWidth
	// OpacityIsolation combines an opacity with a compositing hint.
	OpacityIsolation
	FillOpacity
	ClipPath
	Opacity
)

func (a Attribute) String() string {
	switch a {
	case Fill:
		return "fill"
	case Stroke:
		return "stroke"
	case StrokeLinejoin:
		return "stroke-linejoin"
	case StrokeWidth:
		return "stroke-width"
	case OpacityIsolation:
		return "opacity+isolation"
	case FillOpacity:
		return "fill-opacity"
	case ClipPath:
		return "clip-path"
	case Opacity:
		return "opacity"
	}
	return "<unknown attribute>"
}

// Directive is one inlined attribute. Isolation is only
// set for OpacityIsolation, whose opacity is in Value.
type Directive struct {
	Attr      Attribute
	Value     string
	Isolation string
}

// Presentation is the inlined projection of a class,
// ordered by attribute.
type Presentation []Directive

// Get returns the directive for attr, if any.
func (p Presentation) Get(attr Attribute) (Directive, bool) {
	for _, d := range p {
		if d.Attr == attr {
			return d, true
		}
	}
	return Directive{}, false
}

// Inline projects a class onto the presentation vocabulary.
// A nil class, as well as a class without any recognized property,
// gives an empty projection.
//
// An opacity paired with an isolation hint is emitted as one combined
// directive, and a fill-opacity only when there is no such pair.
// The plain opacity always comes last, even next to the combined one.
func Inline(class Class) Presentation {
	var out Presentation
	get := func(property string) (string, bool) {
		v := class[property]
		return v, v != ""
	}
	for _, simple := range [...]struct {
		attr     Attribute
		property string
	}{
		{Fill, "fill"},
		{Stroke, "stroke"},
		{StrokeLinejoin, "stroke-linejoin"},
		{StrokeWidth, "stroke-width"},
	} {
		if v, ok := get(simple.property); ok {
			out = append(out, Directive{Attr: simple.attr, Value: v})
		}
	}

	opacity, hasOpacity := get("opacity")
	isolation, hasIsolation := get("isolation")
	if hasOpacity && hasIsolation {
		out = append(out, Directive{Attr: OpacityIsolation, Value: opacity, Isolation: isolation})
	} else if v, ok := get("fill-opacity"); ok {
		out = append(out, Directive{Attr: FillOpacity, Value: v})
	}
	if v, ok := get("clip-path"); ok {
		out = append(out, Directive{Attr: ClipPath, Value: v})
	}
	if hasOpacity {
		out = append(out, Directive{Attr: Opacity, Value: opacity})
	}
	return out
}
