package graphics

// Texture is an opaque image handle owned by the backend.
type Texture interface {
	// Size returns the texture dimensions in pixels.
	Size() Size
}

// Shader is an opaque post-processing program handle. The renderer only
// switches the active shader and feeds frame uniforms; compilation and
// execution belong to the backend.
type Shader interface {
	// Name identifies the shader for diagnostics.
	Name() string

	// SetUniform feeds a named float pair, called once per composite.
	SetUniform(name string, x, y float64)
}

// Standard uniform names fed by the map compositor.
const (
	UniformMapCenterCoord = "map_center_coord"
	UniformMapGlobalCoord = "map_global_coord"
	UniformMapZoom        = "map_zoom"
)

// FrameBuffer is a reusable off-screen render target. Content persists
// across frames until the next Bind/Release cycle overwrites it.
type FrameBuffer interface {
	// Resize adjusts the buffer dimensions, preserving the handle.
	Resize(size Size)

	// Size returns current buffer dimensions.
	Size() Size

	// Bind makes the buffer the active render target.
	Bind()

	// Release restores the previous render target.
	Release()

	// Draw blits the src region of the buffer into dst on the current
	// render target, honoring painter opacity and shader state.
	Draw(dst, src Rect)

	// DrawFull blits the whole buffer at its own size.
	DrawFull()
}

// Painter carries the mutable draw state shared by all draw calls.
type Painter interface {
	// SetColor tints subsequent draws.
	SetColor(c Color)

	// ResetColor restores the neutral (white) tint.
	ResetColor()

	// SetOpacity sets the global compositing opacity in [0, 1].
	SetOpacity(opacity float64)

	// ResetOpacity restores full opacity.
	ResetOpacity()

	// Clear fills the active render target with the given color;
	// alpha writing applies, so ColorAlpha erases.
	Clear(c Color)

	// DrawFilledRect fills r with the current color.
	DrawFilledRect(r Rect)

	// DrawTexturedRect draws tex scaled into dst.
	DrawTexturedRect(dst Rect, tex Texture)

	// SetShader activates a post-processing shader for subsequent blits.
	SetShader(s Shader)

	// ResetShader deactivates any active shader.
	ResetShader()

	// HasShaders reports whether the backend supports shaders at all.
	HasShaders() bool
}

// Backend creates render resources and exposes device limits. Injected into
// the map view at construction; never a process-wide singleton.
type Backend interface {
	// CreateFrameBuffer allocates an off-screen buffer of the given size.
	CreateFrameBuffer(size Size) FrameBuffer

	// MaxBufferEdge returns the largest allowed buffer width or height.
	MaxBufferEdge() int

	// Painter returns the backend's shared draw-state handle.
	Painter() Painter
}
