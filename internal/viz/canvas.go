package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a character grid addressed in braille sub-pixels. Its pixel size
// is (Width*2) x (Height*4), with y growing downward.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

// cell locates the character and dot mask for pixel (x, y).
func (c *Canvas) cell(x, y int) (row, col int, mask rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, rune(pixelMap[y%4][x%2]), true
}

func (c *Canvas) Set(x, y int) {
	if row, col, mask, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= mask
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, mask, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= mask
		c.Grid[row][col] |= brailleBlank
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	row, col, mask, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&mask != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPolygon outlines a closed polygon given as alternating x, y pixels.
func (c *Canvas) DrawPolygon(xs, ys []int) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		c.DrawLine(xs[i], ys[i], xs[j], ys[j])
	}
}

// DrawCircle outlines a circle as a polygon fine enough that neighboring
// samples are about one pixel apart.
func (c *Canvas) DrawCircle(cx, cy int, r float64) {
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	segments := int(2 * math.Pi * r)
	if segments < 8 {
		segments = 8
	}

	px, py := cx+int(math.Round(r)), cy
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		x := cx + int(math.Round(r*math.Cos(a)))
		y := cy - int(math.Round(r*math.Sin(a)))
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

// DrawCross marks a point with a small plus sign.
func (c *Canvas) DrawCross(x, y int) {
	c.DrawLine(x-1, y, x+1, y)
	c.DrawLine(x, y-1, x, y+1)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
