package mapview

import (
	"errors"

	"github.com/lixenwraith/mapview/graphics"
	"github.com/lixenwraith/mapview/world"
)

// ViewMode classifies the zoom level. Multi-floor rendering and the
// per-frame tile draw cap are gated on it.
type ViewMode int

const (
	NearView ViewMode = iota
	MidView
	FarView
	HugeView
)

func (v ViewMode) String() string {
	switch v {
	case NearView:
		return "near"
	case MidView:
		return "mid"
	case FarView:
		return "far"
	case HugeView:
		return "huge"
	default:
		return "unknown"
	}
}

const (
	nearViewArea = 32 * 32
	midViewArea  = 64 * 64
	farViewArea  = 128 * 128

	// maxTileDraws caps the visible-tile cache in huge views: seven full
	// near-view floors worth of tiles.
	maxTileDraws = nearViewArea * 7
)

var (
	// ErrInvalidDimension reports an even or too-small visible dimension.
	// The previous geometry is kept.
	ErrInvalidDimension = errors.New("mapview: visible dimension must be odd and at least 3x3")

	// ErrZoomLimit reports that no tile size satisfies the buffer limits.
	// The previous geometry is kept.
	ErrZoomLimit = errors.New("mapview: reached max zoom out")
)

// tileSizeCandidates are the discrete pixel-per-tile scales, smallest
// first so the loop settles on the largest size that still fits.
var tileSizeCandidates = [...]int{1, 2, 4, 8, 16, 32}

// updateGeometry recomputes tile size, draw dimension, center offsets and
// view mode from the wanted visible dimension and the optimization hint.
// On failure the previous geometry stays in effect.
func (m *MapView) updateGeometry(visibleDimension, optimizedSize graphics.Size) error {
	maxEdge := m.backend.MaxBufferEdge()

	tileSize := 0
	var bufferSize graphics.Size
	for _, candidate := range tileSizeCandidates {
		// one margin tile on each edge for smooth scrolling
		candidateBuffer := visibleDimension.Add(2).Mul(candidate)
		if candidateBuffer.Width > maxEdge || candidateBuffer.Height > maxEdge {
			break
		}

		tileSize = candidate
		bufferSize = candidateBuffer
		if optimizedSize.Width < candidateBuffer.Width-2*candidate &&
			optimizedSize.Height < candidateBuffer.Height-2*candidate {
			break
		}
	}

	if tileSize == 0 {
		m.log.Errorf("mapview: %v", ErrZoomLimit)
		return ErrZoomLimit
	}

	drawDimension := visibleDimension.Add(2)
	virtualCenterOffset := drawDimension.Div(2).ToPoint()
	visibleCenterOffset := virtualCenterOffset

	viewMode := m.viewMode
	if m.autoViewMode {
		switch {
		case tileSize >= 32 && visibleDimension.Area() <= nearViewArea:
			viewMode = NearView
		case tileSize >= 16 && visibleDimension.Area() <= midViewArea:
			viewMode = MidView
		case tileSize >= 8 && visibleDimension.Area() <= farViewArea:
			viewMode = FarView
		default:
			viewMode = HugeView
		}
		m.multifloor = viewMode < FarView
	}

	m.viewMode = viewMode
	m.visibleDimension = visibleDimension
	m.drawDimension = drawDimension
	m.tileSize = tileSize
	m.virtualCenterOffset = virtualCenterOffset
	m.visibleCenterOffset = visibleCenterOffset
	m.optimizedSize = optimizedSize

	m.rectDimension = graphics.Rect{Size: drawDimension.Mul(tileSize)}
	m.scaleFactor = float64(tileSize) / float64(world.TilePixels)

	m.frameCache.tile.Resize(bufferSize)
	m.frameCache.crosshair.Resize(bufferSize)

	// overlays draw outside tile cells (name plates above heads), so their
	// buffers get extra room
	aboveMapSize := bufferSize.Mul(4)
	m.frameCache.staticText.Resize(aboveMapSize)
	m.frameCache.creatureInformation.Resize(aboveMapSize)

	m.ResetLastCamera()
	m.requestVisibleTilesUpdate()
	return nil
}

// transformPositionTo2D maps a world position to buffer pixel coordinates
// relative to the given camera. Each floor of difference shifts the point
// one tile diagonally to fake depth.
func (m *MapView) transformPositionTo2D(pos, relative world.Position) graphics.Point {
	return graphics.Point{
		X: (m.virtualCenterOffset.X + (pos.X - relative.X) - (relative.Z - pos.Z)) * m.tileSize,
		Y: (m.virtualCenterOffset.Y + (pos.Y - relative.Y) - (relative.Z - pos.Z)) * m.tileSize,
	}
}

// calcFramebufferSource picks the region of the tile buffer that maps onto
// a destination of destSize, folding in walk/scroll sub-tile offsets.
func (m *MapView) calcFramebufferSource(destSize graphics.Size) graphics.Rect {
	drawOffset := graphics.Point{
		X: (m.drawDimension.Width - m.visibleDimension.Width) / 2 * m.tileSize,
		Y: (m.drawDimension.Height - m.visibleDimension.Height) / 2 * m.tileSize,
	}
	if m.IsFollowingCreature() {
		drawOffset = drawOffset.Add(m.followingCreature.WalkOffset().Scale(m.scaleFactor))
	} else if !m.moveOffset.IsNull() {
		drawOffset = drawOffset.Add(m.moveOffset.Scale(m.scaleFactor))
	}

	srcVisible := graphics.Size{
		Width:  m.visibleDimension.Width * m.tileSize,
		Height: m.visibleDimension.Height * m.tileSize,
	}
	srcSize := destSize.ScaleKeepAspect(srcVisible)
	drawOffset.X += (srcVisible.Width - srcSize.Width) / 2
	drawOffset.Y += (srcVisible.Height - srcSize.Height) / 2

	return graphics.Rect{Pos: drawOffset, Size: srcSize}
}
