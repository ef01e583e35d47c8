package svgraster

import (
	"fmt"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

type pathCommand uint8

const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathQuadTo
	pathCubicTo
	pathClose
)

// operation is one path command with its points,
// in user space coordinates.
type operation struct {
	command pathCommand
	points  [3]fixed.Point26_6
}

// path is the outline of a shape, before the view transform.
// It records the calls of the rasterx shape helpers.
type path []operation

var _ rasterx.Adder = (*path)(nil)

func (p *path) Start(a fixed.Point26_6) {
	*p = append(*p, operation{command: pathMoveTo, points: [3]fixed.Point26_6{a}})
}

func (p *path) Line(b fixed.Point26_6) {
	*p = append(*p, operation{command: pathLineTo, points: [3]fixed.Point26_6{b}})
}

func (p *path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, operation{command: pathQuadTo, points: [3]fixed.Point26_6{b, c}})
}

func (p *path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, operation{command: pathCubicTo, points: [3]fixed.Point26_6{b, c, d}})
}

// Stop records a close command when closeLoop is set. An open
// sub path ends with the next Start.
func (p *path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, operation{command: pathClose})
	}
}

func (p *path) moveTo(x, y float64) { p.Start(rasterx.ToFixedP(x, y)) }

func (p *path) lineTo(x, y float64) { p.Line(rasterx.ToFixedP(x, y)) }

func (p *path) quadTo(x1, y1, x, y float64) {
	p.QuadBezier(rasterx.ToFixedP(x1, y1), rasterx.ToFixedP(x, y))
}

func (p *path) cubicTo(x1, y1, x2, y2, x, y float64) {
	p.CubeBezier(rasterx.ToFixedP(x1, y1), rasterx.ToFixedP(x2, y2), rasterx.ToFixedP(x, y))
}

// addPoints adds a poly line through the flat coordinates list,
// closing it for polygons.
func (p *path) addPoints(coords []float64, closed bool) {
	if len(coords) < 4 {
		return
	}
	p.moveTo(coords[0], coords[1])
	for i := 2; i+1 < len(coords); i += 2 {
		p.lineTo(coords[i], coords[i+1])
	}
	p.Stop(closed)
}

func formatPoint(pt fixed.Point26_6) string {
	return fmt.Sprintf("%g,%g", float64(pt.X)/64, float64(pt.Y)/64)
}

// String returns the path as SVG path data.
func (p path) String() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		pts := op.points
		switch op.command {
		case pathMoveTo:
			chunks[i] = "M" + formatPoint(pts[0])
		case pathLineTo:
			chunks[i] = "L" + formatPoint(pts[0])
		case pathQuadTo:
			chunks[i] = "Q" + formatPoint(pts[0]) + "," + formatPoint(pts[1])
		case pathCubicTo:
			chunks[i] = "C" + formatPoint(pts[0]) + "," + formatPoint(pts[1]) + "," + formatPoint(pts[2])
		case pathClose:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// addTo replays the path into q, which is usually a
// rasterx.MatrixAdder applying the view transform.
func (p path) addTo(q rasterx.Adder) {
	var (
		started bool
		start   fixed.Point26_6 // of the current sub path
	)
	for _, op := range p {
		if op.command != pathMoveTo && op.command != pathClose && !started {
			// drawing after a close resumes from the sub path start
			q.Start(start)
			started = true
		}
		switch op.command {
		case pathMoveTo:
			if started {
				q.Stop(false)
			}
			start = op.points[0]
			q.Start(start)
			started = true
		case pathLineTo:
			q.Line(op.points[0])
		case pathQuadTo:
			q.QuadBezier(op.points[0], op.points[1])
		case pathCubicTo:
			q.CubeBezier(op.points[0], op.points[1], op.points[2])
		case pathClose:
			if started {
				q.Stop(true)
			}
			started = false
		}
	}
	if started {
		q.Stop(false)
	}
}
