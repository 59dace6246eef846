package mapview

import (
	"testing"
	"time"

	"github.com/lixenwraith/mapview/graphics"
	"github.com/lixenwraith/mapview/world"
)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// stubBuffer records resizes and draw calls without any pixel storage.
type stubBuffer struct {
	backend *stubBackend
	size    graphics.Size

	bindCount int
	drawCount int
	lastSrc   graphics.Rect
	lastDst   graphics.Rect
}

func (b *stubBuffer) Resize(size graphics.Size) { b.size = size }
func (b *stubBuffer) Size() graphics.Size { return b.size }
func (b *stubBuffer) Bind() { b.bindCount++ }
func (b *stubBuffer) Release()                  {}

func (b *stubBuffer) Draw(dst, src graphics.Rect) {
	b.drawCount++
	b.lastDst = dst
	b.lastSrc = src
}

func (b *stubBuffer) DrawFull() {
	b.drawCount++
}

// stubPainter records state changes and filled rects.
type stubPainter struct {
	color       graphics.Color
	opacity     float64
	shader      graphics.Shader
	filledRects []graphics.Rect
	opacities   []float64
}

func (p *stubPainter) SetColor(c graphics.Color) { p.color = c }
func (p *stubPainter) ResetColor() { p.color = graphics.ColorWhite }

func (p *stubPainter) SetOpacity(o float64) {
	p.opacity = o
	p.opacities = append(p.opacities, o)
}
func (p *stubPainter) ResetOpacity() { p.opacity = 1 }

func (p *stubPainter) Clear(c graphics.Color) {}

func (p *stubPainter) DrawFilledRect(r graphics.Rect) {
	p.filledRects = append(p.filledRects, r)
}

func (p *stubPainter) DrawTexturedRect(dst graphics.Rect, tex graphics.Texture) {}

func (p *stubPainter) SetShader(s graphics.Shader) { p.shader = s }
func (p *stubPainter) ResetShader() { p.shader = nil }
func (p *stubPainter) HasShaders() bool { return true }

// stubBackend hands out stub buffers and one shared painter.
type stubBackend struct {
	maxEdge int
	painter *stubPainter
	buffers []*stubBuffer
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		maxEdge: 4096,
		painter: &stubPainter{color: graphics.ColorWhite, opacity: 1},
	}
}

func (b *stubBackend) CreateFrameBuffer(size graphics.Size) graphics.FrameBuffer {
	buf := &stubBuffer{backend: b, size: size}
	b.buffers = append(b.buffers, buf)
	return buf
}

func (b *stubBackend) MaxBufferEdge() int { return b.maxEdge }
func (b *stubBackend) Painter() graphics.Painter { return b.painter }

// stubShader satisfies graphics.Shader for fade tests.
type stubShader struct {
	name     string
	uniforms map[string][2]float64
}

func newStubShader(name string) *stubShader {
	return &stubShader{name: name, uniforms: make(map[string][2]float64)}
}

func (s *stubShader) Name() string { return s.name }

func (s *stubShader) SetUniform(name string, x, y float64) {
	s.uniforms[name] = [2]float64{x, y}
}

// newTestView wires a MapView over an empty store, a stub backend and a
// fake clock.
func newTestView(t *testing.T) (*MapView, *world.TileMap, *stubBackend, *fakeClock) {
	t.Helper()

	store := world.NewTileMap(world.DefaultAwareRange)
	backend := newStubBackend()
	clock := newFakeClock()

	view, err := New(store, backend, nil, clock)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	store.AddObserver(view)
	return view, store, backend, clock
}

// groundTile places an opaque ground tile.
func groundTile(store *world.TileMap, x, y, z int) *world.BasicTile {
	tile := &world.BasicTile{
		Pos:    world.Position{X: x, Y: y, Z: z},
		Color:  graphics.Color{R: 40, G: 120, B: 40, A: 255},
		Ground: true,
		Opaque: true,
	}
	store.SetTile(tile)
	return tile
}

// fillFloor covers a square region centered on (cx, cy) with ground tiles.
func fillFloor(store *world.TileMap, cx, cy, z, radius int) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			groundTile(store, x, y, z)
		}
	}
}
