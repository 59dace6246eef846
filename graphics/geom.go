package graphics

// Point is a 2D integer coordinate in pixel space.
type Point struct {
	X, Y int
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }
func (p Point) Mul(f int) Point { return Point{p.X * f, p.Y * f} }
func (p Point) Scale(f float64) Point { return Point{int(float64(p.X) * f), int(float64(p.Y) * f)} }
func (p Point) IsNull() bool { return p.X == 0 && p.Y == 0 }
func (p Point) Div(d int) Point { return Point{p.X / d, p.Y / d} }
func (p Point) AddXY(x, y int) Point { return Point{p.X + x, p.Y + y} }

// Size is a 2D integer extent.
type Size struct {
	Width, Height int
}

func (s Size) Area() int { return s.Width * s.Height }
func (s Size) Add(n int) Size { return Size{s.Width + n, s.Height + n} }
func (s Size) Mul(f int) Size { return Size{s.Width * f, s.Height * f} }
func (s Size) ToPoint() Point { return Point{s.Width, s.Height} }
func (s Size) Div(d int) Size { return Size{s.Width / d, s.Height / d} }
func (s Size) IsEmpty() bool { return s.Width <= 0 || s.Height <= 0 }
func (s Size) Equals(o Size) bool { return s.Width == o.Width && s.Height == o.Height }

// ScaleKeepAspect shrinks or grows s so it fits within bound while keeping
// the aspect ratio of s.
func (s Size) ScaleKeepAspect(bound Size) Size {
	if s.IsEmpty() || bound.IsEmpty() {
		return Size{}
	}
	rw := float64(bound.Width) / float64(s.Width)
	rh := float64(bound.Height) / float64(s.Height)
	r := rw
	if rh < r {
		r = rh
	}
	return Size{int(float64(s.Width) * r), int(float64(s.Height) * r)}
}

// Rect is an axis-aligned integer rectangle, origin at the top left.
type Rect struct {
	Pos  Point
	Size Size
}

func NewRect(x, y, w, h int) Rect { return Rect{Point{x, y}, Size{w, h}} }

func (r Rect) Width() int { return r.Size.Width }
func (r Rect) Height() int { return r.Size.Height }
func (r Rect) TopLeft() Point { return r.Pos }
func (r Rect) Center() Point {
	return Point{r.Pos.X + r.Size.Width/2, r.Pos.Y + r.Size.Height/2}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Pos.X && p.X < r.Pos.X+r.Size.Width &&
		p.Y >= r.Pos.Y && p.Y < r.Pos.Y+r.Size.Height
}
