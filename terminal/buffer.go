package terminal

import (
	"github.com/lixenwraith/mapview/graphics"
)

// Cell is a single compositor cell: an optional glyph over a background
// color. Alpha-zero backgrounds stay transparent when blitted.
type Cell struct {
	Rune rune
	Fg   graphics.Color
	Bg   graphics.Color
}

// CellBuffer is an off-screen cell compositor with touched-cell tracking.
// It doubles as the terminal backend's frame buffer: one "pixel" of the
// renderer maps to one terminal cell.
type CellBuffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int

	backend *Backend
}

// NewCellBuffer creates a buffer with the given cell dimensions.
func NewCellBuffer(width, height int) *CellBuffer {
	b := &CellBuffer{}
	b.alloc(width, height)
	return b
}

func (b *CellBuffer) alloc(width, height int) {
	size := width * height
	b.cells = make([]Cell, size)
	b.touched = make([]bool, size)
	b.width = width
	b.height = height
}

// Resize adjusts buffer dimensions, reallocating only when capacity is
// insufficient.
func (b *CellBuffer) Resize(size graphics.Size) {
	n := size.Width * size.Height
	if cap(b.cells) < n {
		b.cells = make([]Cell, n)
		b.touched = make([]bool, n)
	} else {
		b.cells = b.cells[:n]
		b.touched = b.touched[:n]
	}
	b.width = size.Width
	b.height = size.Height
	b.clear(Cell{})
}

// Size returns the buffer dimensions.
func (b *CellBuffer) Size() graphics.Size {
	return graphics.Size{Width: b.width, Height: b.height}
}

// clear resets every cell using exponential copy.
func (b *CellBuffer) clear(c Cell) {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = c
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *CellBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// blendAt composites a color into the cell at (x, y) with the given
// opacity. Fully transparent sources leave the cell untouched.
func (b *CellBuffer) blendAt(x, y int, c graphics.Color, opacity float64) {
	if !b.inBounds(x, y) {
		return
	}
	alpha := float64(c.A) / 255 * opacity
	if alpha <= 0 {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]
	dst.Bg = blend(dst.Bg, c, alpha)
	b.touched[idx] = true
}

// setAt writes a cell opaquely.
func (b *CellBuffer) setAt(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx] = c
	b.touched[idx] = true
}

// at returns the cell and whether it was touched since the last clear.
func (b *CellBuffer) at(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	idx := y*b.width + x
	return b.cells[idx], b.touched[idx]
}

// blend mixes src over dst at the given alpha.
func blend(dst, src graphics.Color, alpha float64) graphics.Color {
	inv := 1 - alpha
	a := int(float64(dst.A)*inv + 255*alpha)
	if a > 255 {
		a = 255
	}
	return graphics.Color{
		R: uint8(float64(dst.R)*inv + float64(src.R)*alpha),
		G: uint8(float64(dst.G)*inv + float64(src.G)*alpha),
		B: uint8(float64(dst.B)*inv + float64(src.B)*alpha),
		A: uint8(a),
	}
}

// modulate tints a color channel-wise; white is the identity.
func modulate(c, tint graphics.Color) graphics.Color {
	if tint == graphics.ColorWhite {
		return c
	}
	return graphics.Color{
		R: uint8(int(c.R) * int(tint.R) / 255),
		G: uint8(int(c.G) * int(tint.G) / 255),
		B: uint8(int(c.B) * int(tint.B) / 255),
		A: c.A,
	}
}

// ===== graphics.FrameBuffer =====

// Bind makes the buffer the painter's active render target.
func (b *CellBuffer) Bind() { b.backend.painter.push(b) }

// Release restores the previous render target.
func (b *CellBuffer) Release() { b.backend.painter.pop(b) }

// Draw blits the src region into dst on the active target, scaling with
// nearest-neighbor sampling and honoring painter opacity/shader state.
func (b *CellBuffer) Draw(dst, src graphics.Rect) {
	p := b.backend.painter
	target := p.target()

	if src.Size.IsEmpty() || dst.Size.IsEmpty() {
		return
	}

	for dy := 0; dy < dst.Size.Height; dy++ {
		for dx := 0; dx < dst.Size.Width; dx++ {
			sx := src.Pos.X + dx*src.Size.Width/dst.Size.Width
			sy := src.Pos.Y + dy*src.Size.Height/dst.Size.Height
			cell, touched := b.at(sx, sy)
			if !touched {
				continue
			}
			color := cell.Bg
			if p.shader != nil {
				color = p.shader.transform(color)
			}
			target.blendAt(dst.Pos.X+dx, dst.Pos.Y+dy, modulate(color, p.color), p.opacity)
		}
	}
}

// DrawFull blits the whole buffer at its own size onto the active target.
func (b *CellBuffer) DrawFull() {
	full := graphics.Rect{Size: b.Size()}
	b.Draw(full, full)
}

var _ graphics.FrameBuffer = (*CellBuffer)(nil)
