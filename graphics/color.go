package graphics

// Color is an RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

var (
	ColorBlack = Color{0, 0, 0, 255}
	ColorWhite = Color{255, 255, 255, 255}
	// ColorAlpha is fully transparent, used to clear overlay buffers.
	ColorAlpha = Color{0, 0, 0, 0}
)

// Light is a point or ambient light source: an 8-bit palette color index
// and an intensity where 0 is unlit and 255 is full brightness.
type Light struct {
	Color     uint8
	Intensity uint8
}
