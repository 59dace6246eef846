package mapview

import (
	"github.com/lixenwraith/mapview/graphics"
	"github.com/lixenwraith/mapview/world"
)

// darkThreshold is the global intensity under which the scene counts as
// dark and per-tile lights start contributing.
const darkThreshold = 250

// lightSource is one queued light contribution for the current redraw.
type lightSource struct {
	center graphics.Point
	light  graphics.Light
	radius int
}

// lightView owns the light layer: a framebuffer plus the global ambient
// light and the sources collected during the tile pass. Pixel-level light
// falloff belongs to the backend; this layer only composites.
type lightView struct {
	buffer  graphics.FrameBuffer
	painter graphics.Painter
	global  graphics.Light
	sources []lightSource
}

func newLightView(backend graphics.Backend, size graphics.Size) *lightView {
	return &lightView{
		buffer:  backend.CreateFrameBuffer(size),
		painter: backend.Painter(),
	}
}

// SetGlobalLight replaces the ambient light used on the next redraw.
func (lv *lightView) SetGlobalLight(l graphics.Light) { lv.global = l }

func (lv *lightView) GlobalLight() graphics.Light { return lv.global }

// Dark reports whether ambient light is low enough for per-tile lights to
// matter.
func (lv *lightView) Dark() bool { return lv.global.Intensity < darkThreshold }

// Reset drops the sources collected for the previous redraw.
func (lv *lightView) Reset() { lv.sources = lv.sources[:0] }

func (lv *lightView) Resize(size graphics.Size) {
	if !lv.buffer.Size().Equals(size) {
		lv.buffer.Resize(size)
	}
}

// AddLight implements world.LightSink.
func (lv *lightView) AddLight(center graphics.Point, light graphics.Light, scale float64) {
	lv.sources = append(lv.sources, lightSource{
		center: center,
		light:  light,
		radius: int(float64(light.Intensity) * scale),
	})
}

// Draw renders the collected sources over the ambient base and composites
// the layer into dst.
func (lv *lightView) Draw(dst, src graphics.Rect) {
	lv.buffer.Bind()

	// ambient base: the darker the global light, the heavier the veil
	shade := 255 - lv.global.Intensity
	lv.painter.Clear(graphics.Color{A: shade})

	for _, s := range lv.sources {
		lv.painter.SetColor(graphics.Color{R: s.light.Color, G: s.light.Color, B: s.light.Color, A: 255})
		lv.painter.DrawFilledRect(graphics.Rect{
			Pos:  s.center.AddXY(-s.radius, -s.radius),
			Size: graphics.Size{Width: 2 * s.radius, Height: 2 * s.radius},
		})
	}
	lv.painter.ResetColor()

	lv.buffer.Release()
	lv.buffer.Draw(dst, src)
}

var _ world.LightSink = (*lightView)(nil)
