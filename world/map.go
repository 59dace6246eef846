package world

import (
	"github.com/lixenwraith/mapview/graphics"
)

// AwareRange is the asymmetric tile extent the client is aware of around
// the camera. The extra tile on the right/bottom edges matches the protocol
// convention of the original game world.
type AwareRange struct {
	Left, Right, Top, Bottom int
}

// DefaultAwareRange mirrors the classic 18x14 aware area.
var DefaultAwareRange = AwareRange{Left: 8, Right: 9, Top: 6, Bottom: 7}

func (a AwareRange) Horizontal() int { return a.Left + a.Right + 1 }
func (a AwareRange) Vertical() int   { return a.Top + a.Bottom + 1 }

// Observer receives synchronous world-mutation notifications. All calls
// happen on the frame thread, earlier in the same tick than the draw.
type Observer interface {
	OnTileUpdate(pos Position, thing Thing, op Operation)
	OnMapCenterChange(pos Position)
}

// Map is the world store the renderer reads from. The renderer never owns
// or mutates world state; everything returned is borrowed.
type Map interface {
	// Tile returns the tile at pos, or nil when none exists.
	Tile(pos Position) Tile

	// IsCompletelyCovered reports whether pos is fully hidden by tiles
	// above it, scanning no higher than firstFloor.
	IsCompletelyCovered(pos Position, firstFloor int) bool

	// IsLookPossible reports whether sight passes through pos.
	IsLookPossible(pos Position) bool

	// Spectators returns the creatures around center, optionally across
	// floors, within the aware range.
	Spectators(center Position, multiFloor bool) []Creature

	// AmbientLight is the world's current global light.
	AmbientLight() graphics.Light

	// FloorMissiles returns in-flight projectiles on a floor.
	FloorMissiles(floor int) []Missile

	StaticTexts() []StaticText
	AnimatedTexts() []AnimatedText

	AwareRange() AwareRange
}
