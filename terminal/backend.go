// Package terminal implements the graphics backend on top of a tcell
// screen. The renderer's pixel unit maps to one terminal cell, so the
// small tile scales (1-4) are the useful ones here.
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mapview/graphics"
)

// maxBufferEdge bounds off-screen buffer extents; generous for cell grids.
const maxBufferEdge = 4096

// Backend owns the tcell screen, the root compositor target, and the
// shared painter.
type Backend struct {
	screen  tcell.Screen
	root    *CellBuffer
	painter *Painter
}

// NewBackend wraps an initialized tcell screen.
func NewBackend(screen tcell.Screen) *Backend {
	w, h := screen.Size()
	b := &Backend{screen: screen}
	b.root = NewCellBuffer(w, h)
	b.root.backend = b
	b.painter = &Painter{
		backend: b,
		color:   graphics.ColorWhite,
		opacity: 1,
	}
	return b
}

// CreateFrameBuffer implements graphics.Backend.
func (b *Backend) CreateFrameBuffer(size graphics.Size) graphics.FrameBuffer {
	buf := NewCellBuffer(size.Width, size.Height)
	buf.backend = b
	return buf
}

// MaxBufferEdge implements graphics.Backend.
func (b *Backend) MaxBufferEdge() int { return maxBufferEdge }

// Painter implements graphics.Backend.
func (b *Backend) Painter() graphics.Painter { return b.painter }

// HandleResize grows the root target to the new terminal size.
func (b *Backend) HandleResize() {
	w, h := b.screen.Size()
	b.root.Resize(graphics.Size{Width: w, Height: h})
	b.screen.Sync()
}

// Present pushes the root target to the terminal and clears it for the
// next frame.
func (b *Backend) Present() {
	for y := 0; y < b.root.height; y++ {
		for x := 0; x < b.root.width; x++ {
			cell, touched := b.root.at(x, y)
			style := tcell.StyleDefault
			r := ' '
			if touched {
				style = style.Background(tcell.NewRGBColor(int32(cell.Bg.R), int32(cell.Bg.G), int32(cell.Bg.B)))
				if cell.Rune != 0 {
					r = cell.Rune
					style = style.Foreground(tcell.NewRGBColor(int32(cell.Fg.R), int32(cell.Fg.G), int32(cell.Fg.B)))
				}
			}
			b.screen.SetContent(x, y, r, nil, style)
		}
	}
	b.screen.Show()
	b.root.clear(Cell{})
}

var _ graphics.Backend = (*Backend)(nil)

// Painter carries the mutable draw state. Draw calls land on the target
// stack's top buffer, or the root target when nothing is bound.
type Painter struct {
	backend *Backend
	targets []*CellBuffer
	color   graphics.Color
	opacity float64
	shader  *Shader
}

func (p *Painter) push(b *CellBuffer) { p.targets = append(p.targets, b) }

func (p *Painter) pop(b *CellBuffer) {
	if n := len(p.targets); n > 0 && p.targets[n-1] == b {
		p.targets = p.targets[:n-1]
	}
}

func (p *Painter) target() *CellBuffer {
	if n := len(p.targets); n > 0 {
		return p.targets[n-1]
	}
	return p.backend.root
}

func (p *Painter) SetColor(c graphics.Color) { p.color = c }
func (p *Painter) ResetColor()               { p.color = graphics.ColorWhite }

func (p *Painter) SetOpacity(opacity float64) { p.opacity = opacity }
func (p *Painter) ResetOpacity()              { p.opacity = 1 }

// Clear fills the active target. ColorAlpha resets cells to untouched so
// lower layers shine through on composite.
func (p *Painter) Clear(c graphics.Color) {
	t := p.target()
	if c.A == 0 {
		t.clear(Cell{})
		return
	}
	t.clear(Cell{Bg: c})
	for i := range t.touched {
		t.touched[i] = true
	}
}

// DrawFilledRect fills r with the current color at the current opacity.
func (p *Painter) DrawFilledRect(r graphics.Rect) {
	t := p.target()
	for y := r.Pos.Y; y < r.Pos.Y+r.Size.Height; y++ {
		for x := r.Pos.X; x < r.Pos.X+r.Size.Width; x++ {
			t.blendAt(x, y, p.color, p.opacity)
		}
	}
}

// DrawTexturedRect scales tex into dst on the active target.
func (p *Painter) DrawTexturedRect(dst graphics.Rect, tex graphics.Texture) {
	t, ok := tex.(*Texture)
	if !ok || dst.Size.IsEmpty() {
		return
	}
	target := p.target()
	size := t.Size()
	for dy := 0; dy < dst.Size.Height; dy++ {
		for dx := 0; dx < dst.Size.Width; dx++ {
			sx := dx * size.Width / dst.Size.Width
			sy := dy * size.Height / dst.Size.Height
			target.blendAt(dst.Pos.X+dx, dst.Pos.Y+dy, modulate(t.pixel(sx, sy), p.color), p.opacity)
		}
	}
}

func (p *Painter) SetShader(s graphics.Shader) {
	if sh, ok := s.(*Shader); ok {
		p.shader = sh
	}
}

func (p *Painter) ResetShader() { p.shader = nil }

func (p *Painter) HasShaders() bool { return true }

var _ graphics.Painter = (*Painter)(nil)

// Texture is a small color-grid image.
type Texture struct {
	size   graphics.Size
	pixels []graphics.Color
}

// NewTexture builds a texture from row-major pixels.
func NewTexture(size graphics.Size, pixels []graphics.Color) *Texture {
	return &Texture{size: size, pixels: pixels}
}

// NewSolidTexture builds a single-color texture.
func NewSolidTexture(size graphics.Size, c graphics.Color) *Texture {
	pixels := make([]graphics.Color, size.Area())
	for i := range pixels {
		pixels[i] = c
	}
	return &Texture{size: size, pixels: pixels}
}

func (t *Texture) Size() graphics.Size { return t.size }

func (t *Texture) pixel(x, y int) graphics.Color {
	if x < 0 || x >= t.size.Width || y < 0 || y >= t.size.Height {
		return graphics.ColorAlpha
	}
	return t.pixels[y*t.size.Width+x]
}

var _ graphics.Texture = (*Texture)(nil)

// Shader is a per-cell color transform applied while a buffer composites.
// Uniform values are retained for inspection; cell transforms themselves
// have no use for them.
type Shader struct {
	name      string
	transform func(graphics.Color) graphics.Color
	uniforms  map[string][2]float64
}

// NewShader wraps a color transform as a shader handle.
func NewShader(name string, transform func(graphics.Color) graphics.Color) *Shader {
	return &Shader{name: name, transform: transform, uniforms: make(map[string][2]float64)}
}

func (s *Shader) Name() string { return s.name }

func (s *Shader) SetUniform(name string, x, y float64) {
	s.uniforms[name] = [2]float64{x, y}
}

// Uniform returns the last value fed for a uniform name.
func (s *Shader) Uniform(name string) (x, y float64) {
	v := s.uniforms[name]
	return v[0], v[1]
}

var _ graphics.Shader = (*Shader)(nil)

// GrayscaleShader desaturates the scene.
func GrayscaleShader() *Shader {
	return NewShader("grayscale", func(c graphics.Color) graphics.Color {
		v := uint8((299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000)
		return graphics.Color{R: v, G: v, B: v, A: c.A}
	})
}

// NightShader cools and darkens the scene.
func NightShader() *Shader {
	return NewShader("night", func(c graphics.Color) graphics.Color {
		return graphics.Color{R: c.R / 3, G: c.G / 3, B: c.B / 2, A: c.A}
	})
}
