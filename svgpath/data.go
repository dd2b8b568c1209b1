package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errPathData = errors.New("invalid path data")

// number of arguments of each command
var argCounts = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2,
	'A': 7, 'Z': 0,
}

// dataCursor compiles a path data string.
type dataCursor struct {
	data string
	pos  int

	path Path
	args []float64

	// current point, start of the current sub-path,
	// and last control point
	x, y           float64
	startX, startY float64
	ctrlX, ctrlY   float64
	lastCommand    byte // upper case
	needStart      bool
}

// ParseData compiles the path data `d` (the content of a path
// `d` attribute).
// On error, the segments compiled before the error are returned.
func ParseData(d string) (Path, error) {
	c := dataCursor{data: d}
	err := c.compile()
	return c.path, err
}

// ParsePoints compiles the `points` attribute of polylines and
// polygons.
func ParsePoints(points string, closeLoop bool) (Path, error) {
	fields := strings.FieldsFunc(points, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of coordinates in %q", errPathData, points)
	}
	coords := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errPathData, err)
		}
		coords[i] = v
	}
	var p Path
	p.AddPolyline(coords, closeLoop)
	return p, nil
}

func (c *dataCursor) skipSeparators() {
	for c.pos < len(c.data) {
		switch c.data[c.pos] {
		case ' ', '\t', '\n', '\r', ',':
			c.pos++
		default:
			return
		}
	}
}

func isNumberStart(b byte) bool {
	return b == '-' || b == '+' || b == '.' || ('0' <= b && b <= '9')
}

func (c *dataCursor) readDigits() int {
	start := c.pos
	for c.pos < len(c.data) && '0' <= c.data[c.pos] && c.data[c.pos] <= '9' {
		c.pos++
	}
	return c.pos - start
}

func (c *dataCursor) readNumber() (float64, error) {
	c.skipSeparators()
	start := c.pos
	if c.pos < len(c.data) && (c.data[c.pos] == '-' || c.data[c.pos] == '+') {
		c.pos++
	}
	digits := c.readDigits()
	if c.pos < len(c.data) && c.data[c.pos] == '.' {
		c.pos++
		digits += c.readDigits()
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: expected a number at offset %d", errPathData, start)
	}
	if c.pos < len(c.data) && (c.data[c.pos] == 'e' || c.data[c.pos] == 'E') {
		mark := c.pos
		c.pos++
		if c.pos < len(c.data) && (c.data[c.pos] == '-' || c.data[c.pos] == '+') {
			c.pos++
		}
		if c.readDigits() == 0 { // not an exponent
			c.pos = mark
		}
	}
	return strconv.ParseFloat(c.data[start:c.pos], 64)
}

// readFlag reads an arc flag, which may not be followed by a separator.
func (c *dataCursor) readFlag() (float64, error) {
	c.skipSeparators()
	if c.pos < len(c.data) {
		switch c.data[c.pos] {
		case '0':
			c.pos++
			return 0, nil
		case '1':
			c.pos++
			return 1, nil
		}
	}
	return 0, fmt.Errorf("%w: expected a flag at offset %d", errPathData, c.pos)
}

func (c *dataCursor) readArgs(command byte) error {
	c.args = c.args[:0]
	for i := range argCounts[command] {
		var (
			v   float64
			err error
		)
		if command == 'A' && (i == 3 || i == 4) {
			v, err = c.readFlag()
		} else {
			v, err = c.readNumber()
		}
		if err != nil {
			return err
		}
		c.args = append(c.args, v)
	}
	return nil
}

func (c *dataCursor) compile() error {
	first := true
	for {
		c.skipSeparators()
		if c.pos == len(c.data) {
			return nil
		}
		letter := c.data[c.pos]
		command := letter &^ 0x20 // upper case
		if _, ok := argCounts[command]; !ok || letter < 'A' {
			return fmt.Errorf("%w: unexpected %q at offset %d", errPathData, letter, c.pos)
		}
		if first && command != 'M' {
			return fmt.Errorf("%w: should start with a move to", errPathData)
		}
		first = false
		c.pos++
		relative := letter != command

		if command == 'Z' {
			c.closePath()
			continue
		}
		for {
			if err := c.readArgs(command); err != nil {
				return err
			}
			c.addSegment(command, relative)
			if command == 'M' { // implicit line to
				command = 'L'
			}
			c.skipSeparators()
			if c.pos == len(c.data) || !isNumberStart(c.data[c.pos]) {
				break
			}
		}
	}
}

func (c *dataCursor) closePath() {
	c.path.Stop(true)
	c.x, c.y = c.startX, c.startY
	c.lastCommand = 'Z'
	c.needStart = true
}

// point returns the absolute position of the argument pair at i.
func (c *dataCursor) point(i int, relative bool) (float64, float64) {
	x, y := c.args[i], c.args[i+1]
	if relative {
		x, y = x+c.x, y+c.y
	}
	return x, y
}

// reflectedControl returns the first control point of a smooth curve.
func (c *dataCursor) reflectedControl(previous ...byte) (float64, float64) {
	for _, cmd := range previous {
		if c.lastCommand == cmd {
			return 2*c.x - c.ctrlX, 2*c.y - c.ctrlY
		}
	}
	return c.x, c.y
}

func (c *dataCursor) addSegment(command byte, relative bool) {
	if command == 'M' {
		c.x, c.y = c.point(0, relative)
		c.startX, c.startY = c.x, c.y
		c.path.Start(toFixedP(c.x, c.y))
		c.lastCommand, c.needStart = 'M', false
		return
	}
	if c.needStart { // drawing after a close path
		c.path.Start(toFixedP(c.x, c.y))
		c.needStart = false
	}

	switch command {
	case 'L':
		c.x, c.y = c.point(0, relative)
		c.path.Line(toFixedP(c.x, c.y))
	case 'H':
		if relative {
			c.x += c.args[0]
		} else {
			c.x = c.args[0]
		}
		c.path.Line(toFixedP(c.x, c.y))
	case 'V':
		if relative {
			c.y += c.args[0]
		} else {
			c.y = c.args[0]
		}
		c.path.Line(toFixedP(c.x, c.y))
	case 'C':
		x1, y1 := c.point(0, relative)
		x2, y2 := c.point(2, relative)
		x, y := c.point(4, relative)
		c.path.CubeBezier(toFixedP(x1, y1), toFixedP(x2, y2), toFixedP(x, y))
		c.ctrlX, c.ctrlY, c.x, c.y = x2, y2, x, y
	case 'S':
		x1, y1 := c.reflectedControl('C', 'S')
		x2, y2 := c.point(0, relative)
		x, y := c.point(2, relative)
		c.path.CubeBezier(toFixedP(x1, y1), toFixedP(x2, y2), toFixedP(x, y))
		c.ctrlX, c.ctrlY, c.x, c.y = x2, y2, x, y
	case 'Q':
		x1, y1 := c.point(0, relative)
		x, y := c.point(2, relative)
		c.path.QuadBezier(toFixedP(x1, y1), toFixedP(x, y))
		c.ctrlX, c.ctrlY, c.x, c.y = x1, y1, x, y
	case 'T':
		x1, y1 := c.reflectedControl('Q', 'T')
		x, y := c.point(0, relative)
		c.path.QuadBezier(toFixedP(x1, y1), toFixedP(x, y))
		c.ctrlX, c.ctrlY, c.x, c.y = x1, y1, x, y
	case 'A':
		c.addArcTo(relative)
	}
	c.lastCommand = command
}

// addArcTo adds an elliptical arc from the current point, where
// args are rx, ry, rotation, large arc flag, sweep flag, x, y.
func (c *dataCursor) addArcTo(relative bool) {
	x, y := c.point(5, relative)
	rx, ry := math.Abs(c.args[0]), math.Abs(c.args[1])
	switch {
	case x == c.x && y == c.y: // omitted
		return
	case rx == 0 || ry == 0: // straight line
		c.path.Line(toFixedP(x, y))
	default:
		rot := c.args[2] * math.Pi / 180
		cx, cy := ellipseCenter(&rx, &ry, rot, c.args[3] != 0, c.args[4] != 0, c.x, c.y, x, y)
		points := []float64{rx, ry, c.args[2], c.args[3], c.args[4], x, y}
		c.path.addArc(points, cx, cy, c.x, c.y)
	}
	c.x, c.y = x, y
}

// ellipseCenter returns the center of the ellipse going through
// (x1, y1) and (x2, y2), scaling up the radii when they are too small.
func ellipseCenter(rx, ry *float64, rot float64, largeArc, sweep bool, x1, y1, x2, y2 float64) (cx, cy float64) {
	sinRot, cosRot := math.Sin(rot), math.Cos(rot)
	dx, dy := (x1-x2)/2, (y1-y2)/2
	x1p := cosRot*dx + sinRot*dy
	y1p := -sinRot*dx + cosRot*dy

	if lambda := (x1p*x1p)/(*rx**rx) + (y1p*y1p)/(*ry**ry); lambda > 1 {
		s := math.Sqrt(lambda)
		*rx, *ry = *rx*s, *ry*s
	}
	rx2, ry2 := *rx**rx, *ry**ry
	num := rx2*ry2 - rx2*y1p*y1p - ry2*x1p*x1p
	den := rx2*y1p*y1p + ry2*x1p*x1p
	coef := math.Sqrt(math.Max(0, num/den))
	if largeArc == sweep {
		coef = -coef
	}
	cxp, cyp := coef*(*rx)*y1p/(*ry), -coef*(*ry)*x1p/(*rx)
	cx = cosRot*cxp - sinRot*cyp + (x1+x2)/2
	cy = sinRot*cxp + cosRot*cyp + (y1+y2)/2
	return cx, cy
}
