package svgreact

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/svgjsx"
	"github.com/benoitkugler/svgjsx/svgstyle"
	"github.com/tdewolff/test"
)

func render(t *testing.T, r Renderer, res *svgjsx.Result) string {
	t.Helper()
	var buf bytes.Buffer
	test.Error(t, r.Render(&buf, res))
	return buf.String()
}

func TestRender(t *testing.T) {
	input := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
	<defs>
		<style>.cls-1,.cls-2{fill:#fff;opacity:0.5}.cls-3{stroke:url(#linear-gradient);stroke-width:2px;clip-path:url(#clip-path);}</style>
		<linearGradient id="linear-gradient" x1="0" y1="0" x2="10" y2="0">
			<stop offset="0" stop-color="#000"/><stop offset="1" stop-color="#fff" stop-opacity="0.5"/>
		</linearGradient>
		<clipPath id="clip-path"><circle cx="5" cy="5" r="4"/></clipPath>
	</defs>
	<g id="Layer_1">
		<rect class="cls-1" width="10" height="10"/>
		<g class="cls-3"><line x1="0" y1="0" x2="10" y2="10"/></g>
	</g>
</svg>`
	res, err := svgjsx.Convert(strings.NewReader(input), svgjsx.Options{Project: "API"})
	test.Error(t, err)

	test.T(t, render(t, Renderer{}, res), `<svg viewBox="0 0 10 10">
  <defs>
    <linearGradient id="API-linear-gradient-1" x1="0" y1="0" x2="10" y2="0" gradientUnits="userSpaceOnUse"><stop offset="0" stopColor="#000" /><stop offset="1" stopColor="#fff" stopOpacity="0.5" /></linearGradient>
    <clipPath id="API-clip-path-1"><circle cx="5" cy="5" r="4" /></clipPath>
  </defs>
  <g id="Layer_1">
    <rect fill={`+"`#fff`"+`} style={{opacity:0.5}} width="10" height="10" />
    <g stroke={`+"`url(#API-linear-gradient-1)`"+`} strokeWidth={`+"`2px`"+`} clipPath={`+"`url(#API-clip-path-1)`"+`}>
      <line x1="0" y1="0" x2="10" y2="10" />
    </g>
  </g>
</svg>
`)
}

func TestRenderComponent(t *testing.T) {
	res := &svgjsx.Result{ViewBox: "0 0 1 1"}
	test.T(t, render(t, Renderer{Component: "Gateway", Indent: "\t"}, res),
		"export const Gateway = (props) => (\n\t<svg viewBox=\"0 0 1 1\" {...props}>\n\t\t<defs>\n\t\t</defs>\n\t</svg>\n)\n")
}

func TestPresentation(t *testing.T) {
	got := presentation(svgstyle.Inline(svgstyle.Class{
		"opacity": "0.4", "isolation": "isolate", "stroke-linejoin": "round", "fill": "a`b",
	}))
	test.T(t, got, " fill={`a\\`b`} strokeLinejoin={`round`} style={{opacity:0.4, isolation:`isolate`}} style={{opacity:0.4}}")

	test.T(t, presentation(svgstyle.Inline(svgstyle.Class{"fill-opacity": "var(--x)"})), " style={{opacity:`var(--x)`}}")
	test.T(t, presentation(nil), "")
}

func TestRenderFile(t *testing.T) {
	res, err := svgjsx.ConvertFile(filepath.Join("..", "testdata", "gateway.svg"), svgjsx.Options{Project: "API"})
	test.Error(t, err)
	out := render(t, Renderer{Component: "Gateway"}, res)

	test.That(t, strings.HasPrefix(out, "export const Gateway = (props) => (\n  <svg viewBox=\"0 0 100 80\" {...props}>\n"))
	test.That(t, strings.Contains(out, `<radialGradient id="API-radial-gradient-2" cx="20" cy="20" r="10" gradientTransform="translate(5 5)" gradientUnits="userSpaceOnUse">`))
	test.That(t, strings.Contains(out, "<polyline fill={`none`} stroke={`#232f3e`} strokeLinejoin={`round`} strokeWidth={`2px`} style={{opacity:0.5, isolation:`isolate`}} style={{opacity:0.5}} points=\"70 30 80 40 70 50\" />"))
	test.That(t, strings.Contains(out, "<g id=\"icon\" fill={`#fff`} style={{opacity:0.6}}>"))
	test.That(t, strings.Contains(out, "\n      <ellipse cx=\"50\" cy=\"40\" rx=\"5\" ry=\"3\" />"))
}
