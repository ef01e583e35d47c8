package svgraster

import (
	"fmt"
	"math"

	"github.com/srwiley/rasterx"
	"github.com/tdewolff/parse/v2/strconv"
)

func skipCommaWhitespace(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t') {
		i++
	}
	return i
}

// parseNumbers reads a list of numbers separated by commas or
// white space, as found in points, viewBox or transform arguments.
func parseNumbers(s string) ([]float64, error) {
	b := []byte(s)
	var out []float64
	for i := skipCommaWhitespace(b); i < len(b); i += skipCommaWhitespace(b[i:]) {
		f, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return nil, fmt.Errorf("invalid number list %q", s)
		}
		out = append(out, f)
		i += n
	}
	return out, nil
}

// pathCursor tracks the state of the path data compiler.
type pathCursor struct {
	path           path
	x, y           float64 // current point
	startX, startY float64 // of the current sub path
	cntlX, cntlY   float64 // last control point, for smooth curves
	lastKind       byte    // 'C', 'Q' or 0
	data           []byte
	pos            int
	command        byte
}

func (c *pathCursor) number() (float64, error) {
	c.pos += skipCommaWhitespace(c.data[c.pos:])
	f, n := strconv.ParseFloat(c.data[c.pos:])
	if n == 0 {
		return 0, fmt.Errorf("path data: expected a number at offset %d for command %c", c.pos, c.command)
	}
	c.pos += n
	return f, nil
}

func (c *pathCursor) numbers(dst []float64) error {
	for i := range dst {
		var err error
		if dst[i], err = c.number(); err != nil {
			return err
		}
	}
	return nil
}

// flag reads an arc flag, which may be written without separator.
func (c *pathCursor) flag() (bool, error) {
	c.pos += skipCommaWhitespace(c.data[c.pos:])
	if c.pos < len(c.data) {
		switch c.data[c.pos] {
		case '0':
			c.pos++
			return false, nil
		case '1':
			c.pos++
			return true, nil
		}
	}
	return false, fmt.Errorf("path data: expected an arc flag at offset %d", c.pos)
}

// compilePath converts SVG path data to a path.
func compilePath(d string) (path, error) {
	c := pathCursor{data: []byte(d)}
	for {
		c.pos += skipCommaWhitespace(c.data[c.pos:])
		if c.pos >= len(c.data) {
			return c.path, nil
		}
		if ch := c.data[c.pos]; (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') {
			c.command = ch
			c.pos++
		} else if c.command == 0 {
			return nil, fmt.Errorf("path data: must start with a command: %q", d)
		} else if c.command == 'Z' || c.command == 'z' {
			return nil, fmt.Errorf("path data: unexpected number after close at offset %d", c.pos)
		}
		if err := c.step(); err != nil {
			return nil, err
		}
	}
}

// step applies the current command once.
func (c *pathCursor) step() error {
	relative := c.command >= 'a'
	var dx, dy float64
	if relative {
		dx, dy = c.x, c.y
	}
	kind := byte(0)
	var args [7]float64
	switch c.command {
	case 'M', 'm':
		if err := c.numbers(args[:2]); err != nil {
			return err
		}
		c.x, c.y = args[0]+dx, args[1]+dy
		c.startX, c.startY = c.x, c.y
		c.path.moveTo(c.x, c.y)
		// following pairs are implicit line commands
		if relative {
			c.command = 'l'
		} else {
			c.command = 'L'
		}
	case 'Z', 'z':
		c.path.Stop(true)
		c.x, c.y = c.startX, c.startY
	case 'L', 'l':
		if err := c.numbers(args[:2]); err != nil {
			return err
		}
		c.x, c.y = args[0]+dx, args[1]+dy
		c.path.lineTo(c.x, c.y)
	case 'H', 'h':
		if err := c.numbers(args[:1]); err != nil {
			return err
		}
		c.x = args[0] + dx
		c.path.lineTo(c.x, c.y)
	case 'V', 'v':
		if err := c.numbers(args[:1]); err != nil {
			return err
		}
		c.y = args[0] + dy
		c.path.lineTo(c.x, c.y)
	case 'C', 'c':
		if err := c.numbers(args[:6]); err != nil {
			return err
		}
		c.cubic(args[0]+dx, args[1]+dy, args[2]+dx, args[3]+dy, args[4]+dx, args[5]+dy)
		kind = 'C'
	case 'S', 's':
		if err := c.numbers(args[:4]); err != nil {
			return err
		}
		x1, y1 := c.reflected('C')
		c.cubic(x1, y1, args[0]+dx, args[1]+dy, args[2]+dx, args[3]+dy)
		kind = 'C'
	case 'Q', 'q':
		if err := c.numbers(args[:4]); err != nil {
			return err
		}
		c.quad(args[0]+dx, args[1]+dy, args[2]+dx, args[3]+dy)
		kind = 'Q'
	case 'T', 't':
		if err := c.numbers(args[:2]); err != nil {
			return err
		}
		x1, y1 := c.reflected('Q')
		c.quad(x1, y1, args[0]+dx, args[1]+dy)
		kind = 'Q'
	case 'A', 'a':
		if err := c.numbers(args[:3]); err != nil {
			return err
		}
		large, err := c.flag()
		if err != nil {
			return err
		}
		sweep, err := c.flag()
		if err != nil {
			return err
		}
		if err := c.numbers(args[5:7]); err != nil {
			return err
		}
		args[3], args[4] = boolToFloat(large), boolToFloat(sweep)
		args[5] += dx
		args[6] += dy
		c.arc(args)
	default:
		return fmt.Errorf("path data: unknown command %c", c.command)
	}
	c.lastKind = kind
	return nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// reflected returns the reflection of the last control point if the
// previous command was of the given kind, or the current point.
func (c *pathCursor) reflected(kind byte) (float64, float64) {
	if c.lastKind != kind {
		return c.x, c.y
	}
	return 2*c.x - c.cntlX, 2*c.y - c.cntlY
}

func (c *pathCursor) cubic(x1, y1, x2, y2, x, y float64) {
	c.path.cubicTo(x1, y1, x2, y2, x, y)
	c.cntlX, c.cntlY = x2, y2
	c.x, c.y = x, y
}

func (c *pathCursor) quad(x1, y1, x, y float64) {
	c.path.quadTo(x1, y1, x, y)
	c.cntlX, c.cntlY = x1, y1
	c.x, c.y = x, y
}

// arc handles the A command, with points holding
// rx, ry, x-axis-rotation, large-arc, sweep, x, y.
func (c *pathCursor) arc(points [7]float64) {
	rx, ry := math.Abs(points[0]), math.Abs(points[1])
	if rx == 0 || ry == 0 || (points[5] == c.x && points[6] == c.y) {
		c.x, c.y = points[5], points[6]
		c.path.lineTo(c.x, c.y)
		return
	}
	points[0], points[1] = rx, ry
	cx, cy := rasterx.FindEllipseCenter(&points[0], &points[1], points[2]*math.Pi/180, c.x, c.y,
		points[5], points[6], points[4] == 0, points[3] == 0)
	c.x, c.y = rasterx.AddArc(points[:], cx, cy, c.x, c.y, &c.path)
}
