package svgdefs

import (
	"regexp"
	"strings"

	"github.com/benoitkugler/svgjsx/internal/logutil"
	"github.com/benoitkugler/svgjsx/svgdoc"
	"github.com/benoitkugler/svgjsx/svgerr"
	"github.com/benoitkugler/svgjsx/svgstyle"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

// ids already numbered by the export tool
var numbered = [...]*regexp.Regexp{
	LinearGradientKind: regexp.MustCompile(`linear-gradient-\d+`),
	RadialGradientKind: regexp.MustCompile(`radial-gradient-\d+`),
	ClipPathKind:       regexp.MustCompile(`clip-path-\d+`),
}

// Result is the outcome of Resolve.
type Result struct {
	// Definitions are the canonical definitions, in encounter order.
	Definitions []Definition
	// Sheet is the style sheet, with references rewritten to canonical ids.
	Sheet svgstyle.Sheet
	// Style is the serialized Sheet.
	Style string
}

// resolver holds the state of one pass over a definitions section.
type resolver struct {
	project string
	logger  *slog.Logger

	counters [3]int
	// stop sequences by source id, one table per gradient kind
	stops   [2]map[string][]Stop
	emitted map[CanonicalID]bool

	sheet svgstyle.Sheet
	out   []Definition
}

// Resolve walks defs in document order. Gradients and clip paths are
// numbered under canonical ids prefixed by project, and every reference
// to them in style is rewritten. Style blocks are skipped; any other
// element is an error.
//
// Ordinals are counted per kind. An id already numbered by the export
// tool (for instance "radial-gradient-7") takes the next ordinal, starting
// at 2. Any other id is mapped to ordinal 1, and only the first such
// definition of a kind is returned.
func Resolve(project string, defs []*svgdoc.Element, style string, logger *slog.Logger) (*Result, error) {
	r := resolver{
		project:  project,
		logger:   logutil.Or(logger),
		counters: [3]int{1, 1, 1},
		stops:    [2]map[string][]Stop{{}, {}},
		emitted:  make(map[CanonicalID]bool),
		sheet:    svgstyle.ParseSheet(style, logger),
	}
	for _, def := range defs {
		var err error
		switch def.Name {
		case "linearGradient":
			err = r.linearGradient(def)
		case "radialGradient":
			err = r.radialGradient(def)
		case "clipPath":
			err = r.clipPath(def)
		case "style":
		default:
			err = svgerr.New(svgerr.UnsupportedDefinitionKind, def.Name, "cannot process definition %q", def.Get("id"))
		}
		if err != nil {
			return nil, err
		}
	}
	return &Result{Definitions: r.out, Sheet: r.sheet, Style: r.sheet.String()}, nil
}

// canonical allocates the id of a definition and rewrites
// the references to it.
func (r *resolver) canonical(kind Kind, source string) CanonicalID {
	id := CanonicalID{Project: r.project, Kind: kind, Ordinal: 1}
	if numbered[kind].MatchString(source) {
		r.counters[kind]++
		id.Ordinal = r.counters[kind]
	}
	property := "" // gradients may be referenced by any property
	if kind == ClipPathKind {
		property = "clip-path"
	}
	if source != "" {
		n := r.sheet.ReplaceURL(property, source, id.String())
		r.logger.Debug("renumbered definition", "source", source, "canonical", id.String(), "references", n)
	}
	return id
}

func (r *resolver) emit(def Definition) {
	id := def.Canonical()
	if r.emitted[id] {
		r.logger.Debug("collapsed definition", "source", def.SourceID(), "canonical", id.String())
		return
	}
	r.emitted[id] = true
	r.out = append(r.out, def)
}

// gradientStops returns an owned copy of the stops of a gradient,
// declared inline or borrowed through its href.
func (r *resolver) gradientStops(kind Kind, def *svgdoc.Element) ([]Stop, error) {
	cache := r.stops[kind]
	source := def.Get("id")
	if children := def.ChildrenNamed("stop"); len(children) != 0 {
		stops := make([]Stop, len(children))
		for i, child := range children {
			stops[i] = readStop(child)
		}
		cache[source] = stops
		return slices.Clone(stops), nil
	}

	href, _ := def.Attr("href")
	ref := strings.TrimPrefix(strings.TrimSpace(href), "#")
	stops, ok := cache[ref]
	if ref == "" || !ok {
		return nil, svgerr.New(svgerr.DanglingGradientReference, source, "gradient references unknown stops %q", href)
	}
	cache[source] = stops
	return slices.Clone(stops), nil
}

// readStop reads the stop attributes, falling back on
// the style attribute.
func readStop(el *svgdoc.Element) Stop {
	var fromStyle map[string]string
	if style := el.Get("style"); style != "" {
		fromStyle = make(map[string]string)
		for _, decl := range svgstyle.ParseDeclarations(style) {
			fromStyle[decl.Property] = decl.Value
		}
	}
	get := func(name string) string {
		if v, ok := el.Attr(name); ok {
			return v
		}
		return fromStyle[name]
	}
	return Stop{Offset: get("offset"), Color: get("stop-color"), Opacity: get("stop-opacity")}
}

func (r *resolver) linearGradient(def *svgdoc.Element) error {
	stops, err := r.gradientStops(LinearGradientKind, def)
	if err != nil {
		return err
	}
	source := def.Get("id")
	r.emit(&LinearGradient{
		ID:        r.canonical(LinearGradientKind, source),
		Source:    source,
		X1:        def.Get("x1"),
		Y1:        def.Get("y1"),
		X2:        def.Get("x2"),
		Y2:        def.Get("y2"),
		Transform: def.Get("gradientTransform"),
		Stops:     stops,
	})
	return nil
}

func (r *resolver) radialGradient(def *svgdoc.Element) error {
	stops, err := r.gradientStops(RadialGradientKind, def)
	if err != nil {
		return err
	}
	source := def.Get("id")
	r.emit(&RadialGradient{
		ID:        r.canonical(RadialGradientKind, source),
		Source:    source,
		CX:        def.Get("cx"),
		CY:        def.Get("cy"),
		R:         def.Get("r"),
		Transform: def.Get("gradientTransform"),
		Stops:     stops,
	})
	return nil
}

func (r *resolver) clipPath(def *svgdoc.Element) error {
	source := def.Get("id")
	if len(def.Children) != 1 {
		return svgerr.New(svgerr.UnsupportedClipShape, source, "clip path has %d shapes, expected one polygon or circle", len(def.Children))
	}
	var shape ClipShape
	switch payload := def.Children[0]; payload.Name {
	case "polygon":
		shape = ClipPolygon{Points: payload.Get("points")}
	case "circle":
		shape = ClipCircle{CX: payload.Get("cx"), CY: payload.Get("cy"), R: payload.Get("r")}
	default:
		return svgerr.New(svgerr.UnsupportedClipShape, source, "clip path shape %s is not a polygon or circle", payload.Name)
	}
	r.emit(&ClipPath{ID: r.canonical(ClipPathKind, source), Source: source, Shape: shape})
	return nil
}
