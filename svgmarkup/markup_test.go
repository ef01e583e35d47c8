package svgmarkup

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/svgjsx"
	"github.com/benoitkugler/svgjsx/svgdoc"
	"github.com/tdewolff/test"
)

func TestRender(t *testing.T) {
	input := `<svg viewBox="0 0 8 8"><defs>
		<style>.cls-1{fill:url(#grad);opacity:0.5;isolation:isolate}.cls-2{clip-path:url(#clip-path-3);fill-opacity:.2}</style>
		<radialGradient id="grad" cx="4" cy="4" r="4"><stop offset="0" stop-color="red"/><stop offset="1" stop-color="blue" stop-opacity="0"/></radialGradient>
		<clipPath id="clip-path-3"><polygon points="0 0 8 0 8 8"/></clipPath>
	</defs>
	<g id="a &amp; b" class="cls-2"><circle class="cls-1" cx="4" cy="4" r="3"/><g><rect y="1"/></g></g></svg>`
	res, err := svgjsx.Convert(strings.NewReader(input), svgjsx.Options{Project: "P"})
	test.Error(t, err)

	var buf bytes.Buffer
	test.Error(t, Renderer{}.Render(&buf, res))
	test.T(t, buf.String(), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 8 8">
<defs>
<radialGradient id="P-radial-gradient-1" cx="4" cy="4" r="4" gradientUnits="userSpaceOnUse"><stop offset="0" stop-color="red"/><stop offset="1" stop-color="blue" stop-opacity="0"/></radialGradient>
<clipPath id="P-clip-path-2"><polygon points="0 0 8 0 8 8"/></clipPath>
</defs>
<g id="a &amp; b" fill-opacity=".2" clip-path="url(#P-clip-path-2)">
	<circle cx="4" cy="4" r="3" fill="url(#P-radial-gradient-1)" style="opacity:0.5;isolation:isolate" opacity="0.5"/>
	<g>
		<rect y="1"/>
	</g>
</g>
</svg>
`)
}

func TestRenderMinify(t *testing.T) {
	res, err := svgjsx.ConvertFile(filepath.Join("..", "testdata", "gateway.svg"), svgjsx.Options{Project: "API"})
	test.Error(t, err)

	var plain, minified bytes.Buffer
	test.Error(t, Renderer{}.Render(&plain, res))
	test.Error(t, Renderer{Minify: true}.Render(&minified, res))
	test.That(t, minified.Len() < plain.Len())
	test.That(t, strings.Contains(minified.String(), "API-linear-gradient-1"))

	// the plain output is a valid document with the same structure
	doc, err := svgdoc.Parse(&plain, nil)
	test.Error(t, err)
	test.T(t, len(doc.Groups), 2)
	test.T(t, len(doc.Defs), 4)
	test.T(t, doc.Style, "")
}
