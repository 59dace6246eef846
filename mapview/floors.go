package mapview

import (
	"github.com/lixenwraith/mapview/world"
)

// calcFirstVisibleFloor resolves the highest floor the camera can see. A
// locked floor bypasses the occlusion scan entirely; with multi-floor
// rendering off (far zooms) the camera floor is all there is. Otherwise a
// 3x3 column scan around the camera finds the lowest roof above it.
func (m *MapView) calcFirstVisibleFloor() int {
	z := world.SeaFloor

	if m.lockedFirstVisibleFloor != -1 {
		z = m.lockedFirstVisibleFloor
	} else {
		camera := m.CameraPosition()

		// camera may be unknown while the player position is not set yet
		if camera.IsValid() {
			if !m.multifloor {
				z = camera.Z
			} else {
				// nothing limiting the view means floor 0 is visible
				firstFloor := 0

				// below sea level only nearby underground floors show
				if camera.Z > world.SeaFloor {
					if limit := camera.Z - world.UndergroundRange; limit > world.UndergroundFloor {
						firstFloor = limit
					} else {
						firstFloor = world.UndergroundFloor
					}
				}

				for ix := -1; ix <= 1 && firstFloor < camera.Z; ix++ {
					for iy := -1; iy <= 1 && firstFloor < camera.Z; iy++ {
						pos := camera.Translated(ix, iy)

						// the camera's own column always counts; diagonal
						// neighbors need a clear line of sight
						isLookPossible := m.world.IsLookPossible(pos)
						if !(ix == 0 && iy == 0) && (abs(ix) == abs(iy) || !isLookPossible) {
							continue
						}

						upperPos := pos
						coveredPos := pos
						for {
							covered, okCovered := coveredPos.CoveredUp(1)
							upper, okUpper := upperPos.Up(1)
							if !okCovered || !okUpper || upper.Z < firstFloor {
								break
							}
							coveredPos, upperPos = covered, upper

							// a roof physically above the column
							if tile := m.world.Tile(upperPos); tile != nil && tile.LimitsFloorView(!isLookPossible) {
								firstFloor = upperPos.Z + 1
								break
							}

							// a roof on the parallax-shifted projection
							if tile := m.world.Tile(coveredPos); tile != nil && tile.LimitsFloorView(isLookPossible) {
								firstFloor = coveredPos.Z + 1
								break
							}
						}
					}
				}

				z = firstFloor
			}
		}
	}

	return clamp(z, 0, world.MaxFloor)
}

// calcLastVisibleFloor resolves the lowest visible floor: the sea floor
// above ground, a bounded band below it, widened to an active floor lock.
func (m *MapView) calcLastVisibleFloor() int {
	if !m.multifloor {
		return m.calcFirstVisibleFloor()
	}

	z := world.SeaFloor

	camera := m.CameraPosition()
	if camera.IsValid() && camera.Z > world.SeaFloor {
		z = camera.Z + world.UndergroundRange
	}

	if m.lockedFirstVisibleFloor != -1 && m.lockedFirstVisibleFloor > z {
		z = m.lockedFirstVisibleFloor
	}

	return clamp(z, 0, world.MaxFloor)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
