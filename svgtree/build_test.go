package svgtree

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/benoitkugler/svgjsx/svgdoc"
	"github.com/benoitkugler/svgjsx/svgerr"
	"github.com/benoitkugler/svgjsx/svgstyle"
	"github.com/google/go-cmp/cmp"
	"github.com/tdewolff/test"
)

func parseGroups(t *testing.T, body string) []*svgdoc.Element {
	t.Helper()
	doc, err := svgdoc.Parse(strings.NewReader(`<svg viewBox="0 0 10 10">`+body+`</svg>`), nil)
	test.Error(t, err)
	return doc.Groups
}

func str(s string) *string { return &s }

func TestBuildScenario(t *testing.T) {
	classes := svgstyle.ParseClasses(".cls-1,.cls-2{fill:#fff;opacity:0.5}", nil)
	forest, err := Build(classes, parseGroups(t, `<g><rect class="cls-1" width="4" height="2"/></g>`), Options{})
	test.Error(t, err)

	class := svgstyle.Class{"fill": "#fff", "opacity": "0.5"}
	want := []*Group{{Children: []Node{
		&Rect{
			Styled: Styled{Class: class, Inline: svgstyle.Presentation{
				{Attr: svgstyle.Fill, Value: "#fff"},
				{Attr: svgstyle.Opacity, Value: "0.5"},
			}},
			Width: str("4"), Height: str("2"),
		},
	}}}
	if diff := cmp.Diff(want, forest); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildShapes(t *testing.T) {
	classes := svgstyle.Classes{
		1: {"stroke": "#000"},
		2: {"fill": "red"},
	}
	groups := parseGroups(t, `
	<g id="Layer_1" class="cls-2">
		<line class="cls-1" x1="0" y1="1" x2="2" y2="3"/>
		<polygon points="0 0 1 1 1 0"/>
		<g id="inner">
			<path class="cls-1" d="M0 0L1 1"/>
			<circle cx="1" cy="2" r="3"/>
		</g>
		<ellipse class="cls-9" cx="1" cy="2" rx="3" ry="4"/>
		<polyline points="0 0 1 1"/>
		<rect x="1" height="2"/>
	</g>`)
	forest, err := Build(classes, groups, Options{})
	test.Error(t, err)

	stroke := Styled{Class: classes[1], Inline: svgstyle.Inline(classes[1])}
	want := []*Group{{
		Styled: Styled{Class: classes[2], Inline: svgstyle.Inline(classes[2])},
		ID:     "Layer_1",
		Children: []Node{
			&Line{Styled: stroke, X1: "0", Y1: "1", X2: "2", Y2: "3"},
			&Polygon{Points: "0 0 1 1 1 0"},
			&Group{ID: "inner", Children: []Node{
				&Path{Styled: stroke, D: "M0 0L1 1"},
				&Circle{CX: "1", CY: "2", R: "3"},
			}},
			// unknown class: no style
			&Ellipse{CX: "1", CY: "2", RX: "3", RY: "4"},
			&Polyline{Points: "0 0 1 1"},
			&Rect{X: str("1"), Height: str("2")},
		},
	}}
	if diff := cmp.Diff(want, forest); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}

	// children do not inherit the group class
	test.That(t, forest[0].Children[1].Style().Class == nil)
	test.T(t, len(forest[0].Children[1].Style().Inline), 0)

	var kinds []string
	Walk(forest, func(n Node, depth int) {
		kinds = append(kinds, fmt.Sprintf("%s:%d", n.Kind(), depth))
	})
	test.T(t, strings.Join(kinds, " "), "g:0 line:1 polygon:1 g:1 path:2 circle:2 ellipse:1 polyline:1 rect:1")
}

func TestRectGeometry(t *testing.T) {
	r := &Rect{Y: str("0"), Width: str("5")}
	test.T(t, fmt.Sprint(r.Geometry()), "[{y 0} {width 5}]")
	test.T(t, len((&Rect{}).Geometry()), 0)
}

func TestUnsupportedShape(t *testing.T) {
	groups := parseGroups(t, `<g><rect/><text>hello</text><circle/></g>`)

	_, err := Build(nil, groups, Options{})
	test.That(t, errors.Is(err, svgerr.ErrUnsupportedShapeKind), err)
	var e *svgerr.Error
	test.That(t, errors.As(err, &e))
	test.T(t, e.Subject, "text")

	for _, mode := range []ErrorMode{WarnErrorMode, IgnoreErrorMode} {
		forest, err := Build(nil, groups, Options{ErrorMode: mode})
		test.Error(t, err)
		test.T(t, len(forest[0].Children), 2, mode)
	}
}

func TestCheckTopLevel(t *testing.T) {
	doc, err := svgdoc.Parse(strings.NewReader(`<svg viewBox="0 0 10 10"><title/><path d="M0 0"/><g/></svg>`), nil)
	test.Error(t, err)

	err = CheckTopLevel(doc.Others, Options{})
	test.That(t, errors.Is(err, svgerr.ErrUnsupportedShapeKind), err)
	var e *svgerr.Error
	test.That(t, errors.As(err, &e))
	test.T(t, e.Subject, "path")

	for _, mode := range []ErrorMode{WarnErrorMode, IgnoreErrorMode} {
		test.Error(t, CheckTopLevel(doc.Others, Options{ErrorMode: mode}))
	}
	test.Error(t, CheckTopLevel(nil, Options{}))
}

func TestMaxDepth(t *testing.T) {
	nested := func(depth int) []*svgdoc.Element {
		return parseGroups(t, strings.Repeat("<g>", depth)+"<rect/>"+strings.Repeat("</g>", depth))
	}

	forest, err := Build(nil, nested(4), Options{MaxDepth: 4})
	test.Error(t, err)
	depth := 0
	Walk(forest, func(n Node, d int) {
		if d > depth {
			depth = d
		}
	})
	test.T(t, depth, 4) // the rect is below the fourth group

	_, err = Build(nil, nested(5), Options{MaxDepth: 4})
	test.That(t, errors.Is(err, svgerr.ErrMaxDepthExceeded), err)

	_, err = Build(nil, nested(DefaultMaxDepth+1), Options{})
	test.That(t, errors.Is(err, svgerr.ErrMaxDepthExceeded), err)
}

func TestParseErrorMode(t *testing.T) {
	for _, mode := range []ErrorMode{StrictErrorMode, WarnErrorMode, IgnoreErrorMode} {
		got, err := ParseErrorMode(mode.String())
		test.Error(t, err)
		test.T(t, got, mode)
	}
	_, err := ParseErrorMode("lenient")
	test.That(t, err != nil)
}
