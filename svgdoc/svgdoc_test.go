package svgdoc

import (
	"errors"
	"strings"
	"testing"

	"github.com/benoitkugler/svgjsx/svgerr"
	"github.com/tdewolff/test"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 64 64" width="64" height="64">
  <title>sample</title>
  <defs>
    <style>.cls-1{fill:#fff;}</style>
    <linearGradient id="linear-gradient" x1="0" y1="0" x2="1" y2="1">
      <stop offset="0" stop-color="#000"/>
    </linearGradient>
    <linearGradient id="linear-gradient-2" xlink:href="#linear-gradient"/>
  </defs>
  <g id="Layer_1">
    <rect class="cls-1" width="10" height="10"/>

    <circle cx="5" cy="5" r="2"/>
  </g>
  <g id="Layer_2"/>
</svg>`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sample), nil)
	test.Error(t, err)

	test.T(t, doc.ViewBox, "0 0 64 64")
	test.T(t, doc.Width, "64")
	test.T(t, doc.Style, ".cls-1{fill:#fff;}")

	test.T(t, len(doc.Defs), 3)
	test.T(t, doc.Defs[0].Name, "style")
	test.T(t, doc.Defs[1].Name, "linearGradient")
	test.T(t, len(doc.Defs[1].Children), 1)
	test.T(t, doc.Defs[2].Get("href"), "#linear-gradient")

	test.T(t, len(doc.Groups), 2)
	test.T(t, doc.Groups[0].Get("id"), "Layer_1")
	// white space between the shapes is not a child
	test.T(t, len(doc.Groups[0].Children), 2)
	test.T(t, doc.Groups[0].Children[0].Name, "rect")
	test.T(t, doc.Groups[0].Children[1].Name, "circle")
}

func TestParseCharset(t *testing.T) {
	input := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<svg viewBox=\"0 0 1 1\"><g id=\"caf\xe9\"/></svg>"
	doc, err := Parse(strings.NewReader(input), nil)
	test.Error(t, err)
	test.T(t, doc.Groups[0].Get("id"), "café")
}

func TestParseOthers(t *testing.T) {
	input := `<svg viewBox="0 0 1 1"><title>t</title><path d="M0 0"/><g/><metadata/><rect/></svg>`
	doc, err := Parse(strings.NewReader(input), nil)
	test.Error(t, err)
	test.T(t, len(doc.Groups), 1)
	test.T(t, len(doc.Others), 2)
	test.T(t, doc.Others[0].Name, "path")
	test.T(t, doc.Others[1].Name, "rect")
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{
		"",
		"<html></html>",
		"<svg><g></svg>",
	} {
		t.Run(input, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(input), nil)
			test.That(t, doc == nil)
			test.That(t, errors.Is(err, svgerr.ErrInvalidDocument), err)
		})
	}
}
