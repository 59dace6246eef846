package mapview

import (
	"github.com/lixenwraith/mapview/world"
)

// ViewPort is the per-direction renderable extent around the camera, in
// tiles. The facing direction gets one extra tile so sprites walking into
// view don't pop in.
type ViewPort struct {
	Top, Right, Bottom, Left int
}

// initViewPortDirections builds one viewport per facing direction from the
// world's aware range, plus the slightly narrower default for a standing
// camera under InvalidDirection.
func (m *MapView) initViewPortDirections() {
	aware := m.world.AwareRange()
	for dir := world.North; dir <= world.InvalidDirection; dir++ {
		vp := ViewPort{
			Top:    aware.Top,
			Right:  aware.Right,
			Bottom: aware.Top,
			Left:   aware.Right,
		}

		switch dir {
		case world.North, world.South:
			vp.Top++
			vp.Bottom++

		case world.West, world.East:
			vp.Right++
			vp.Left++

		case world.NorthEast, world.SouthEast, world.NorthWest, world.SouthWest:
			vp.Left++
			vp.Bottom++
			vp.Top++
			vp.Right++

		case world.InvalidDirection:
			vp.Left--
			vp.Right--
		}

		m.viewPortDirection[dir] = vp
	}
}

// canRenderTile is the viewport-edge cull. Light-emitting tiles always pass
// while the scene is dark, as does everything when the debugging edge view
// is on. The boundary rules give wide/tall/displaced sprites one tile of
// slack on the far edges where their pixels bleed over.
func (m *MapView) canRenderTile(tile world.Tile, viewPort ViewPort, dark bool) bool {
	if m.drawViewportEdge || (dark && tile.HasLight()) {
		return true
	}

	camera := m.CameraPosition()
	tilePos := tile.Position()

	// project onto the camera floor
	dz := tilePos.Z - camera.Z
	checkPos := tilePos.Translated(dz, dz)

	if camera.X-checkPos.X >= viewPort.Left ||
		(checkPos.X-camera.X == viewPort.Right && !tile.HasWideThings() && !tile.HasDisplacement()) {
		return false
	}

	if camera.Y-checkPos.Y >= viewPort.Top ||
		(checkPos.Y-camera.Y == viewPort.Bottom && !tile.HasTallThings() && !tile.HasDisplacement()) {
		return false
	}

	if (checkPos.X-camera.X > viewPort.Right && (!tile.HasWideThings() || !tile.HasDisplacement())) ||
		checkPos.Y-camera.Y > viewPort.Bottom {
		return false
	}

	return true
}

// isInRange tests whether pos lies inside the camera's aware range on the
// current floor.
func (m *MapView) isInRange(pos world.Position) bool {
	camera := m.CameraPosition()
	if camera.Z != m.lastCameraPosition.Z {
		return false
	}

	aware := m.world.AwareRange()
	return camera.IsInRange(pos, aware.Left, aware.Right, aware.Top, aware.Bottom)
}
