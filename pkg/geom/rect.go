package geom

import "fmt"

// Point is an integer position in pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is an integer width/height pair in pixels.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Axis returns W for axis 0 and H for axis 1.
func (s Size) Axis(i int) int {
	if i == 0 {
		return s.W
	}
	return s.H
}

// Rect is an axis-aligned rectangle. All coordinates are integer pixels with
// the origin in the top-left corner and Y growing downwards.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// R is a short constructor for Rect.
func R(x, y, w, h int) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Left returns the x coordinate of the left edge.
func (r Rect) Left() int { return r.X }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() int { return r.Y }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// CenterX returns the horizontal center, rounded down.
func (r Rect) CenterX() int { return r.X + r.W/2 }

// CenterY returns the vertical center, rounded down.
func (r Rect) CenterY() int { return r.Y + r.H/2 }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the width and height.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// WithSize returns r with its size replaced, keeping the origin.
func (r Rect) WithSize(s Size) Rect {
	r.W, r.H = s.W, s.H
	return r
}

// Move returns r translated by (dx, dy).
func (r Rect) Move(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset shrinks r by p on every side.
func (r Rect) Inset(p Pad) Rect {
	return Rect{
		X: r.X + p.Left,
		Y: r.Y + p.Top,
		W: r.W - p.Left - p.Right,
		H: r.H - p.Top - p.Bottom,
	}
}

// Outset grows r by p on every side.
func (r Rect) Outset(p Pad) Rect {
	return Rect{
		X: r.X - p.Left,
		Y: r.Y - p.Top,
		W: r.W + p.Left + p.Right,
		H: r.H + p.Top + p.Bottom,
	}
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.Right() && y < r.Bottom()
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}
