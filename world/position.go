package world

// Floor layout constants. Floor indices grow downward: 0 is the highest
// floor, SeaFloor is ground level, anything below it is underground.
const (
	MaxFloor         = 15
	SeaFloor         = 7
	UndergroundFloor = SeaFloor + 1

	// UndergroundRange bounds how many floors are kept visible around the
	// camera while it is below sea level.
	UndergroundRange = 2

	// TilePixels is the native sprite edge in pixels at 1:1 zoom.
	TilePixels = 32
)

// Direction is a facing or walking direction.
type Direction int

const (
	North Direction = iota
	East
	South
	West
	NorthEast
	SouthEast
	SouthWest
	NorthWest
	// InvalidDirection doubles as the "not moving" default viewport key.
	InvalidDirection
)

// Position is a world tile coordinate: horizontal plane plus floor.
type Position struct {
	X, Y, Z int
}

// InvalidPosition is the sentinel used when no position is known. All
// visibility and draw logic short-circuits on it.
var InvalidPosition = Position{X: -1, Y: -1, Z: -1}

// IsValid reports whether the position lies inside the world grid.
func (p Position) IsValid() bool {
	return p.X >= 0 && p.Y >= 0 && p.Z >= 0 && p.Z <= MaxFloor
}

// Translated returns the position shifted on the horizontal plane.
func (p Position) Translated(dx, dy int) Position {
	return Position{p.X + dx, p.Y + dy, p.Z}
}

// Up moves n floors up (toward floor 0). Reports false when the move would
// leave the valid floor range; the receiver copy is then unchanged.
func (p Position) Up(n int) (Position, bool) {
	nz := p.Z - n
	if nz < 0 || nz > MaxFloor {
		return p, false
	}
	return Position{p.X, p.Y, nz}, true
}

// CoveredUp moves to the position that geometrically covers p from n floors
// above: one diagonal step on the plane per floor of elevation.
func (p Position) CoveredUp(n int) (Position, bool) {
	nz := p.Z - n
	if nz < 0 || nz > MaxFloor {
		return p, false
	}
	return Position{p.X + n, p.Y + n, nz}, true
}

// IsInRange reports whether other lies within the given per-edge extents of
// p on the same floor plane.
func (p Position) IsInRange(other Position, left, right, top, bottom int) bool {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return dx >= -left && dx <= right && dy >= -top && dy <= bottom
}
