package mapview

import (
	"fmt"

	"github.com/lixenwraith/mapview/world"
)

// updateVisibleTiles rebuilds the per-floor visible tile lists. List order
// is draw order: floors populate from the last (lowest) visible floor up,
// and within a floor tiles fill along / diagonals from the top left, which
// is the painter's-algorithm order the draw pass depends on.
func (m *MapView) updateVisibleTiles() {
	m.mustUpdateVisibleTiles = false

	// clear the span that was actually populated last time; floors outside
	// the new window must not keep stale references
	for z := m.floorMin; ; z++ {
		m.cachedVisibleTiles[z] = m.cachedVisibleTiles[z][:0]
		if z >= m.floorMax {
			break
		}
	}

	camera := m.CameraPosition()
	if !camera.IsValid() {
		m.floorMin, m.floorMax = 0, 0
		return
	}

	firstFloor := m.calcFirstVisibleFloor()
	lastFloor := m.calcLastVisibleFloor()

	if firstFloor < 0 || firstFloor > world.MaxFloor || lastFloor < 0 || lastFloor > world.MaxFloor {
		// logic defect, not a recoverable condition
		panic(fmt.Sprintf("mapview: visible floor window [%d, %d] out of range", firstFloor, lastFloor))
	}

	if lastFloor < firstFloor {
		lastFloor = firstFloor
	}

	if m.lastCameraPosition.Z != camera.Z {
		m.onFloorChange(camera.Z, m.lastCameraPosition.Z)
	}

	m.lastCameraPosition = camera
	m.cachedFirstVisibleFloor = firstFloor
	m.cachedLastVisibleFloor = lastFloor

	m.floorMin = camera.Z
	m.floorMax = camera.Z

	processedTiles := 0
	stop := false

	numDiagonals := m.drawDimension.Width + m.drawDimension.Height - 1
	for iz := lastFloor; iz >= firstFloor && !stop; iz-- {
		floor := &m.cachedVisibleTiles[iz]

		for diagonal := 0; diagonal < numDiagonals && !stop; diagonal++ {
			advance := diagonal - m.drawDimension.Height
			if advance < 0 {
				advance = 0
			}

			for iy, ix := diagonal-advance, advance; iy >= 0 && ix < m.drawDimension.Width; iy, ix = iy-1, ix+1 {
				// accept a truncated set rather than unbounded work on
				// huge zoom-outs
				if processedTiles > maxTileDraws && m.viewMode >= HugeView {
					stop = true
					break
				}

				tilePos := camera.Translated(ix-m.virtualCenterOffset.X, iy-m.virtualCenterOffset.Y)
				tilePos, ok := tilePos.CoveredUp(camera.Z - iz)
				if !ok {
					continue
				}

				tile := m.world.Tile(tilePos)
				if tile == nil || !tile.IsDrawable() {
					continue
				}

				if m.world.IsCompletelyCovered(tilePos, firstFloor) {
					continue
				}

				*floor = append(*floor, tile)
				tile.EnterVisibleSet()

				if iz < m.floorMin {
					m.floorMin = iz
				} else if iz > m.floorMax {
					m.floorMax = iz
				}

				processedTiles++
			}
		}
	}
}

// requestVisibleTilesUpdate flags the cache for a rebuild on the next draw.
// Rebuilds never run synchronously from a notification.
func (m *MapView) requestVisibleTilesUpdate() {
	m.mustUpdateVisibleTiles = true
}
