package svgjsx

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/benoitkugler/svgjsx/svgdefs"
	"github.com/benoitkugler/svgjsx/svgerr"
	"github.com/benoitkugler/svgjsx/svgstyle"
	"github.com/benoitkugler/svgjsx/svgtree"
	"github.com/google/go-cmp/cmp"
	"github.com/tdewolff/test"
)

func TestConvertFile(t *testing.T) {
	res, err := ConvertFile("testdata/gateway.svg", Options{Project: "API"})
	test.Error(t, err)

	test.T(t, res.ViewBox, "0 0 100 80")
	test.T(t, res.Style, ".cls-1{fill:url(#API-linear-gradient-1);}.cls-2{fill:#ff9900;}"+
		".cls-3,.cls-4{fill:none;stroke:#232f3e;stroke-linejoin:round;stroke-width:2px;}"+
		".cls-4{opacity:0.5;isolation:isolate;}"+
		".cls-5{fill:url(#API-radial-gradient-2);clip-path:url(#API-clip-path-1);}"+
		".cls-6{fill:#fff;fill-opacity:0.6;}")

	var ids []string
	for _, def := range res.Definitions {
		ids = append(ids, def.Canonical().String())
	}
	test.T(t, strings.Join(ids, " "), "API-linear-gradient-1 API-radial-gradient-1 API-radial-gradient-2 API-clip-path-1")

	borrowed := res.Definitions[2].(*svgdefs.RadialGradient)
	test.T(t, borrowed.Transform, "translate(5 5)")
	test.T(t, len(borrowed.Stops), 2)

	test.T(t, len(res.Classes), 6)
	if diff := cmp.Diff(svgstyle.Class{
		"fill": "none", "stroke": "#232f3e", "stroke-linejoin": "round",
		"stroke-width": "2px", "opacity": "0.5", "isolation": "isolate",
	}, res.Classes[4]); diff != "" {
		t.Errorf("class 4 mismatch (-want +got):\n%s", diff)
	}

	var kinds []string
	svgtree.Walk(res.Tree, func(n svgtree.Node, depth int) {
		kinds = append(kinds, n.Kind().String())
	})
	test.T(t, strings.Join(kinds, " "), "g rect g circle g line polyline path ellipse polygon")

	icon := res.Tree[1]
	test.T(t, icon.ID, "icon")
	clip, ok := icon.Children[0].Style().Inline.Get(svgstyle.ClipPath)
	test.That(t, ok)
	test.T(t, clip.Value, "url(#API-clip-path-1)")
}

func TestConvertDefaultProject(t *testing.T) {
	res, err := ConvertFile("testdata/gateway.svg", Options{})
	test.Error(t, err)
	test.T(t, res.Definitions[0].Canonical().String(), DefaultProject+"-linear-gradient-1")
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	test.T(t, opts.ErrorMode, svgtree.StrictErrorMode)
	test.T(t, opts.MaxDepth, svgtree.DefaultMaxDepth)

	withDefaults, err := ConvertFile("testdata/gateway.svg", opts)
	test.Error(t, err)
	zero, err := ConvertFile("testdata/gateway.svg", Options{})
	test.Error(t, err)
	test.T(t, withDefaults.Style, zero.Style)
}

func TestConvertFailure(t *testing.T) {
	input := `<svg viewBox="0 0 1 1"><defs><clipPath id="clip-path"><path d="M0 0"/></clipPath></defs><g/></svg>`
	res, err := Convert(strings.NewReader(input), Options{})
	test.That(t, res == nil)
	test.That(t, errors.Is(err, svgerr.ErrUnsupportedClipShape), err)

	_, err = Convert(strings.NewReader(`<svg><g><text/></g></svg>`), Options{})
	test.That(t, errors.Is(err, svgerr.ErrUnsupportedShapeKind), err)

	// shapes outside of a group are not converted
	input = `<svg viewBox="0 0 1 1"><path d="M0 0"/><g/></svg>`
	_, err = Convert(strings.NewReader(input), Options{})
	test.That(t, errors.Is(err, svgerr.ErrUnsupportedShapeKind), err)
	res, err = Convert(strings.NewReader(input), Options{ErrorMode: svgtree.IgnoreErrorMode})
	test.Error(t, err)
	test.T(t, len(res.Tree), 1)

	_, err = Convert(strings.NewReader(`<svg`), Options{})
	test.That(t, errors.Is(err, svgerr.ErrInvalidDocument), err)
}

func TestConvertConcurrent(t *testing.T) {
	ref, err := ConvertFile("testdata/gateway.svg", Options{Project: "API"})
	test.Error(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = ConvertFile("testdata/gateway.svg", Options{Project: "API"})
		}(i)
	}
	wg.Wait()
	for _, res := range results {
		if diff := cmp.Diff(ref, res); diff != "" {
			t.Fatalf("concurrent conversion mismatch (-want +got):\n%s", diff)
		}
	}
}
