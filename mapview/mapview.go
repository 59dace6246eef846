// Package mapview renders the visible slice of a tiled multi-floor world
// into layered off-screen buffers and composites them to a destination
// surface once per frame. Visibility (floor window and tile set) is cached
// and rebuilt only when the camera or the world changes; each overlay layer
// is dirty-tracked and redrawn independently.
package mapview

import (
	"time"

	"github.com/lixenwraith/mapview/graphics"
	"github.com/lixenwraith/mapview/logging"
	"github.com/lixenwraith/mapview/world"
)

// frameCache groups the persistent off-screen buffers, one per layer.
type frameCache struct {
	tile                graphics.FrameBuffer
	staticText          graphics.FrameBuffer
	creatureInformation graphics.FrameBuffer
	crosshair           graphics.FrameBuffer
}

// crosshair marks a world position with a texture overlay; its tiny buffer
// is only repainted when the position moves.
type crosshair struct {
	positionChanged bool
	position        world.Position
	texture         graphics.Texture
}

// MapView owns the visible-tile cache, the floor-visibility resolution and
// the render layer scheduling for one camera into the world.
type MapView struct {
	world   world.Map
	backend graphics.Backend
	painter graphics.Painter
	log     *logging.Logger
	clock   Clock

	lockedFirstVisibleFloor int
	cachedFirstVisibleFloor int
	cachedLastVisibleFloor  int
	tileSize                int

	rectDimension graphics.Rect

	drawDimension    graphics.Size
	visibleDimension graphics.Size
	optimizedSize    graphics.Size

	virtualCenterOffset graphics.Point
	visibleCenterOffset graphics.Point
	moveOffset          graphics.Point

	customCameraPosition world.Position
	lastCameraPosition   world.Position

	viewPortDirection [world.InvalidDirection + 1]ViewPort

	mustUpdateVisibleTiles bool
	shaderSwitchDone       bool
	drawFloorShadowing     bool
	drawHealthBars         bool
	autoViewMode           bool
	drawManaBar            bool
	multifloor             bool
	drawTexts              bool
	drawNames              bool
	follow                 bool
	drawLights             bool
	drawViewportEdge       bool

	visibleCreatures []world.Creature

	cachedVisibleTiles [world.MaxFloor + 1][]world.Tile
	floorMin, floorMax int

	shader      graphics.Shader
	nextShader  graphics.Shader
	fadeInTime  float64
	fadeOutTime float64
	fadeStart   time.Time

	followingCreature world.Creature

	frameCache frameCache
	crosshair  crosshair

	viewMode  ViewMode
	lightView *lightView

	minimumAmbientLight float64
	scaleFactor         float64

	lastFloorShadowingColor graphics.Color

	scheduler renderScheduler
}

// New builds a map view over the given world store and graphics backend.
// Pass logging.Discard() and SystemClock() when no logger or custom clock
// is wanted. Callers drive it with Draw once per frame and route world
// mutations through OnTileUpdate/OnMapCenterChange.
func New(store world.Map, backend graphics.Backend, log *logging.Logger, clock Clock) (*MapView, error) {
	if log == nil {
		log = logging.Discard()
	}
	if clock == nil {
		clock = SystemClock()
	}

	aware := store.AwareRange()
	m := &MapView{
		world:   store,
		backend: backend,
		painter: backend.Painter(),
		log:     log,
		clock:   clock,

		viewMode:                NearView,
		lockedFirstVisibleFloor: -1,
		cachedFirstVisibleFloor: world.SeaFloor,
		cachedLastVisibleFloor:  world.SeaFloor,

		customCameraPosition: world.InvalidPosition,
		lastCameraPosition:   world.InvalidPosition,

		shaderSwitchDone:   true,
		drawFloorShadowing: true,
		drawHealthBars:     true,
		autoViewMode:       true,
		drawManaBar:        true,
		multifloor:         true,
		drawTexts:          true,
		drawNames:          true,

		lastFloorShadowingColor: graphics.ColorWhite,

		optimizedSize: graphics.Size{
			Width:  aware.Horizontal() * world.TilePixels,
			Height: aware.Vertical() * world.TilePixels,
		},
	}

	initial := graphics.Size{Width: 1, Height: 1}
	m.frameCache.tile = backend.CreateFrameBuffer(initial)
	m.frameCache.crosshair = backend.CreateFrameBuffer(initial)
	m.frameCache.staticText = backend.CreateFrameBuffer(initial)
	m.frameCache.creatureInformation = backend.CreateFrameBuffer(initial)

	m.scheduler.MarkDirty(RedrawAll, 0, clock.Now())

	if err := m.SetVisibleDimension(graphics.Size{Width: 15, Height: 11}); err != nil {
		return nil, err
	}
	m.initViewPortDirections()

	return m, nil
}

// Draw runs one frame: rebuild the visible-tile cache if flagged, repaint
// whichever layers are due, then composite everything into dest. Failures
// degrade to reusing cached buffers; nothing here panics the frame loop
// short of a broken internal invariant.
func (m *MapView) Draw(dest graphics.Rect) {
	now := m.clock.Now()

	if m.mustUpdateVisibleTiles {
		m.updateVisibleTiles()
	}

	camera := m.CameraPosition()

	redrawThing := m.scheduler.Due(RedrawThing, now)
	redrawLight := m.drawLights && m.scheduler.Due(RedrawLight, now)

	if redrawThing || redrawLight {
		if redrawLight {
			var ambient graphics.Light
			if camera.Z > world.SeaFloor {
				// underground: fixed attenuated ambient
				ambient = graphics.Light{Color: 215, Intensity: 0}
			} else {
				ambient = m.world.AmbientLight()
			}
			if floor := uint8(m.minimumAmbientLight * 255); ambient.Intensity < floor {
				ambient.Intensity = floor
			}
			m.lightView.SetGlobalLight(ambient)
			m.lightView.Reset()
			m.lightView.Resize(m.frameCache.tile.Size())
		}

		m.frameCache.tile.Bind()

		if redrawThing {
			m.painter.SetColor(graphics.ColorBlack)
			m.painter.DrawFilledRect(m.rectDimension)
		}

		var lightSink world.LightSink
		dark := false
		if redrawLight {
			lightSink = m.lightView
			dark = m.lightView.Dark()
		}

		viewPort := m.viewPortDirection[world.InvalidDirection]
		if m.IsFollowingCreature() && m.followingCreature.IsWalking() {
			viewPort = m.viewPortDirection[m.followingCreature.Direction()]
		}

		m.painter.ResetColor()
		for z := m.floorMax; z >= m.floorMin; z-- {
			m.onFloorDrawingStart(z)

			for _, tile := range m.cachedVisibleTiles[z] {
				hasLight := redrawLight && tile.HasLight()
				if (!redrawThing && !hasLight) || !m.canRenderTile(tile, viewPort, dark) {
					continue
				}

				tile.Draw(world.DrawContext{
					Dst:     m.transformPositionTo2D(tile.Position(), camera),
					Scale:   m.scaleFactor,
					Painter: m.painter,
					Light:   lightSink,
				})
			}

			for _, missile := range m.world.FloorMissiles(z) {
				missile.Draw(world.DrawContext{
					Dst:     m.transformPositionTo2D(missile.Position(), camera),
					Scale:   m.scaleFactor,
					Painter: m.painter,
					Light:   lightSink,
				})
			}

			m.onFloorDrawingEnd(z)
		}

		m.frameCache.tile.Release()

		if redrawThing {
			m.scheduler.Rendered(RedrawThing)
			// tile layer repaints continuously, debounced to one frame
			m.scheduler.MarkDirty(RedrawThing, MinTimeRender, now)
		}
	}

	fadeOpacity := m.updateFade(now)

	srcRect := m.calcFramebufferSource(dest.Size)
	drawOffset := srcRect.TopLeft()

	if m.shader != nil && m.painter.HasShaders() && m.viewMode == NearView {
		center := srcRect.Center()
		globalCoord := graphics.Point{
			X: (camera.X - m.drawDimension.Width/2) * m.tileSize,
			Y: -(camera.Y - m.drawDimension.Height/2) * m.tileSize,
		}
		h := float64(m.rectDimension.Height())
		m.shader.SetUniform(graphics.UniformMapCenterCoord,
			float64(center.X)/float64(m.rectDimension.Width()),
			1.0-float64(center.Y)/h)
		m.shader.SetUniform(graphics.UniformMapGlobalCoord,
			float64(globalCoord.X)/h, float64(globalCoord.Y)/h)
		m.shader.SetUniform(graphics.UniformMapZoom, m.scaleFactor, 0)
		m.painter.SetShader(m.shader)
	}

	m.painter.ResetColor()
	m.painter.SetOpacity(fadeOpacity)
	m.frameCache.tile.Draw(dest, srcRect)
	m.painter.ResetShader()
	m.painter.ResetOpacity()

	// the camera may be unknown while the player position is not set yet
	if !camera.IsValid() {
		return
	}

	if m.crosshair.texture != nil && m.crosshair.position.IsValid() {
		if m.crosshair.positionChanged {
			m.frameCache.crosshair.Bind()
			m.painter.Clear(graphics.ColorAlpha)

			point := m.transformPositionTo2D(m.crosshair.position, camera).Scale(m.scaleFactor)
			texSize := m.crosshair.texture.Size()
			m.painter.DrawTexturedRect(graphics.Rect{Pos: point, Size: texSize}, m.crosshair.texture)
			m.frameCache.crosshair.Release()

			m.crosshair.positionChanged = false
		}

		m.frameCache.crosshair.Draw(dest, srcRect)
	}

	hStretch := float64(dest.Width()) / float64(srcRect.Width())
	vStretch := float64(dest.Height()) / float64(srcRect.Height())

	m.drawCreatureInformation(dest, drawOffset, hStretch, vStretch, now)

	// lights composite after names and before texts
	if m.drawLights {
		m.lightView.Draw(dest, srcRect)
		m.scheduler.Rendered(RedrawLight)
	}

	m.drawText(dest, drawOffset, hStretch, vStretch, now)
}

// updateFade advances the shader cross-fade and returns the compositing
// opacity for this frame. The pending shader swaps in exactly once, when
// the fade-out would cross below zero.
func (m *MapView) updateFade(now time.Time) float64 {
	fadeOpacity := 1.0

	if !m.shaderSwitchDone && m.fadeOutTime > 0 {
		fadeOpacity = 1.0 - now.Sub(m.fadeStart).Seconds()/m.fadeOutTime
		if fadeOpacity < 0 {
			m.shader = m.nextShader
			m.nextShader = nil
			m.shaderSwitchDone = true
			m.fadeStart = now
			fadeOpacity = 0
		}
	}

	if m.shaderSwitchDone && m.shader != nil && m.fadeInTime > 0 {
		fadeOpacity = now.Sub(m.fadeStart).Seconds() / m.fadeInTime
		if fadeOpacity > 1 {
			fadeOpacity = 1
		}
	}

	return fadeOpacity
}

func (m *MapView) drawCreatureInformation(dest graphics.Rect, drawOffset graphics.Point, hStretch, vStretch float64, now time.Time) {
	drawStatic := m.scheduler.Due(RedrawStaticCreatureInformation, now)
	drawDynamic := m.scheduler.Due(RedrawDynamicCreatureInformation, now)

	if drawStatic || drawDynamic {
		var flags world.InfoFlags
		if m.drawNames {
			flags |= world.DrawNames
		}
		if m.drawHealthBars {
			flags |= world.DrawBars
		}
		if m.drawManaBar {
			flags |= world.DrawManaBar
		}

		if flags != 0 {
			camera := m.CameraPosition()

			m.frameCache.creatureInformation.Bind()

			if drawStatic {
				m.painter.Clear(graphics.ColorAlpha)
			}

			for _, creature := range m.visibleCreatures {
				if !creature.CanBeSeen() {
					continue
				}

				// dynamic-only passes repaint just the creatures that
				// asked for it
				if !drawStatic && !creature.NeedsInformationUpdate() {
					continue
				}

				tile := m.world.Tile(creature.Position())
				if tile == nil {
					continue
				}

				creature.InformationDrawn()

				displacement := creature.Displacement()
				creatureOffset := graphics.Point{X: 16 - displacement.X, Y: -displacement.Y - 2}

				p := m.transformPositionTo2D(creature.Position(), camera).Sub(drawOffset)
				p = p.Add(creature.DrawOffset().Add(creatureOffset).Scale(m.scaleFactor))
				p.X = int(float64(p.X) * hStretch)
				p.Y = int(float64(p.Y) * vStretch)
				p = p.Add(dest.TopLeft())

				creature.DrawInformation(world.InfoContext{
					Dst:     p,
					Covered: tile.IsCovered(),
					Bounds:  dest,
					Flags:   flags,
					Painter: m.painter,
				})
			}

			m.frameCache.creatureInformation.Release()
		}

		m.scheduler.Rendered(RedrawCreatureInformation)
	}

	m.frameCache.creatureInformation.DrawFull()
}

func (m *MapView) drawText(dest graphics.Rect, drawOffset graphics.Point, hStretch, vStretch float64, now time.Time) {
	if !m.drawTexts {
		return
	}

	camera := m.CameraPosition()

	if statics := m.world.StaticTexts(); len(statics) > 0 {
		if m.scheduler.Due(RedrawStaticText, now) {
			m.frameCache.staticText.Bind()
			m.painter.Clear(graphics.ColorAlpha)

			for _, text := range statics {
				pos := text.Position()
				if pos.Z != camera.Z && !text.CrossFloor() {
					continue
				}

				p := m.transformPositionTo2D(pos, camera).Sub(drawOffset)
				p.X = int(float64(p.X) * hStretch)
				p.Y = int(float64(p.Y) * vStretch)
				p = p.Add(dest.TopLeft())
				text.DrawText(p, dest, m.painter)
			}

			m.frameCache.staticText.Release()
			m.scheduler.Rendered(RedrawStaticText)
		}

		m.frameCache.staticText.DrawFull()
	}

	// animated texts move every frame, drawn straight to the destination
	for _, text := range m.world.AnimatedTexts() {
		pos := text.Position()
		if pos.Z != camera.Z {
			continue
		}

		p := m.transformPositionTo2D(pos, camera).Sub(drawOffset)
		p.X = int(float64(p.X) * hStretch)
		p.Y = int(float64(p.Y) * vStretch)
		p = p.Add(dest.TopLeft())
		text.DrawText(p, dest, m.painter)
	}
}

// onFloorDrawingStart applies the per-floor shadow tint before a floor's
// tiles are painted.
func (m *MapView) onFloorDrawingStart(floor int) {
	if !m.drawFloorShadowing {
		return
	}

	camera := m.CameraPosition()

	shadow := graphics.ColorWhite
	switch {
	case floor > world.SeaFloor && floor != camera.Z:
		start := 0.6
		level := float64(camera.Z - floor)
		if floor > camera.Z {
			level = -level
		} else {
			start -= 0.1
		}
		shadow = brightnessColor(start - level*0.12)

	case floor < camera.Z:
		shadow = brightnessColor(0.8)

	case floor > camera.Z:
		shadow = brightnessColor(0.6)
	}

	m.painter.SetColor(shadow)
	m.lastFloorShadowingColor = shadow
}

func (m *MapView) onFloorDrawingEnd(floor int) {
	if m.drawFloorShadowing {
		m.painter.ResetColor()
	}
}

// onFloorChange refreshes floor-dependent state when the camera moves
// vertically: the light layer and the visible-creature snapshot.
func (m *MapView) onFloorChange(floor, previousFloor int) {
	camera := m.CameraPosition()

	if m.drawLights {
		m.scheduler.MarkDirty(RedrawLight, 0, m.clock.Now())
	}

	m.visibleCreatures = m.world.Spectators(camera, false)
}

func brightnessColor(v float64) graphics.Color {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	c := uint8(v * 255)
	return graphics.Color{R: c, G: c, B: c, A: 255}
}

// ===== world.Observer =====

// OnTileUpdate receives a synchronous mutation notification. Structural
// changes (wholesale cleans, occluding things, the local player arriving)
// invalidate the visible-tile cache; creature churn keeps the visible
// creature list and its overlay schedule current.
func (m *MapView) OnTileUpdate(pos world.Position, thing world.Thing, op world.Operation) {
	structural := op == world.OperationClean ||
		(thing != nil && thing.Occludes() && (op == world.OperationAdd || op == world.OperationRemove)) ||
		(thing != nil && thing.IsLocalPlayer() && op == world.OperationAdd)
	if structural {
		m.requestVisibleTilesUpdate()
	}

	if thing == nil || !thing.IsCreature() || thing.IsLocalPlayer() {
		return
	}
	if m.lastCameraPosition.Z != m.CameraPosition().Z {
		return
	}

	creature, ok := thing.(world.Creature)
	if !ok {
		return
	}

	switch op {
	case world.OperationAdd:
		if m.isInRange(thing.Position()) {
			m.visibleCreatures = append(m.visibleCreatures, creature)
			m.SchedulePainting(RedrawStaticCreatureInformation, MinTimeRender)
		}

	case world.OperationRemove:
		for i, existing := range m.visibleCreatures {
			if existing == creature {
				m.visibleCreatures = append(m.visibleCreatures[:i], m.visibleCreatures[i+1:]...)
				// the overlay must erase the entry, but any pending
				// dynamic repaint for it is moot
				m.CancelScheduledPainting(RedrawDynamicCreatureInformation, MinTimeRender)
				m.SchedulePainting(RedrawStaticCreatureInformation, MinTimeRender)
				break
			}
		}
	}
}

// OnMapCenterChange invalidates the visible set when the world recenters.
func (m *MapView) OnMapCenterChange(pos world.Position) {
	m.requestVisibleTilesUpdate()
}

var _ world.Observer = (*MapView)(nil)

// ===== scheduling =====

// SchedulePainting requests a repaint of the flagged layers after at least
// delay. Static text and light repaints are never debounced.
func (m *MapView) SchedulePainting(flags RedrawFlags, delay time.Duration) {
	now := m.clock.Now()
	if flags&(RedrawStaticText|RedrawLight) != 0 {
		m.scheduler.MarkDirty(flags&(RedrawStaticText|RedrawLight), 0, now)
	}
	if rest := flags &^ (RedrawStaticText | RedrawLight); rest != 0 {
		m.scheduler.MarkDirty(rest, delay, now)
	}
}

// CancelScheduledPainting withdraws schedule debt whose cause disappeared.
func (m *MapView) CancelScheduledPainting(flags RedrawFlags, delay time.Duration) {
	m.scheduler.Cancel(flags, delay)
}

// ===== camera =====

// CameraPosition resolves the live camera: the followed creature's position
// while following, the fixed position otherwise.
func (m *MapView) CameraPosition() world.Position {
	if m.IsFollowingCreature() {
		return m.followingCreature.Position()
	}
	return m.customCameraPosition
}

// FollowCreature switches the camera to track a creature.
func (m *MapView) FollowCreature(creature world.Creature) {
	m.follow = true
	m.followingCreature = creature
	m.requestVisibleTilesUpdate()
}

// FollowingCreature returns the tracked creature, set or not.
func (m *MapView) FollowingCreature() world.Creature { return m.followingCreature }

// IsFollowingCreature reports whether the camera tracks a creature.
func (m *MapView) IsFollowingCreature() bool {
	return m.followingCreature != nil && m.follow
}

// SetCameraPosition pins the camera to a fixed position.
func (m *MapView) SetCameraPosition(pos world.Position) {
	m.follow = false
	m.customCameraPosition = pos
	m.requestVisibleTilesUpdate()
}

// ResetLastCamera forgets the previous camera so the next rebuild treats
// the camera as freshly placed.
func (m *MapView) ResetLastCamera() { m.lastCameraPosition = world.InvalidPosition }

// Move scrolls a fixed camera by pixels. Whole tiles of accumulated offset
// advance the camera position; the remainder carries as sub-tile offset.
func (m *MapView) Move(x, y int) {
	m.moveOffset.X += x
	m.moveOffset.Y += y

	requestUpdate := false
	if tiles := m.moveOffset.X / world.TilePixels; tiles != 0 {
		m.customCameraPosition.X += tiles
		m.moveOffset.X %= world.TilePixels
		requestUpdate = true
	}
	if tiles := m.moveOffset.Y / world.TilePixels; tiles != 0 {
		m.customCameraPosition.Y += tiles
		m.moveOffset.Y %= world.TilePixels
		requestUpdate = true
	}

	if requestUpdate {
		m.requestVisibleTilesUpdate()
	}
}

// PositionAt maps a point on a destination surface of mapSize back to the
// world position under it, or the invalid position when no camera is set.
func (m *MapView) PositionAt(point graphics.Point, mapSize graphics.Size) world.Position {
	camera := m.CameraPosition()
	if !camera.IsValid() {
		return world.InvalidPosition
	}

	srcRect := m.calcFramebufferSource(mapSize)
	sh := float64(srcRect.Width()) / float64(mapSize.Width)
	sv := float64(srcRect.Height()) / float64(mapSize.Height)

	framebufferPos := graphics.Point{X: int(float64(point.X) * sh), Y: int(float64(point.Y) * sv)}
	cell := framebufferPos.Add(srcRect.TopLeft()).Div(m.tileSize)

	pos := camera.Translated(cell.X-m.virtualCenterOffset.X, cell.Y-m.virtualCenterOffset.Y)
	if !pos.IsValid() {
		return world.InvalidPosition
	}
	return pos
}

// ===== floor visibility =====

// LockFirstVisibleFloor pins the first visible floor, disabling the
// occlusion scan until unlocked.
func (m *MapView) LockFirstVisibleFloor(floor int) {
	m.lockedFirstVisibleFloor = floor
	m.requestVisibleTilesUpdate()
}

// UnlockFirstVisibleFloor restores automatic floor resolution.
func (m *MapView) UnlockFirstVisibleFloor() {
	m.lockedFirstVisibleFloor = -1
	m.requestVisibleTilesUpdate()
}

// LockedFirstVisibleFloor returns the locked floor, -1 when unlocked.
func (m *MapView) LockedFirstVisibleFloor() int { return m.lockedFirstVisibleFloor }

// CachedFirstVisibleFloor returns the first floor of the last rebuild.
func (m *MapView) CachedFirstVisibleFloor() int { return m.cachedFirstVisibleFloor }

// CachedLastVisibleFloor returns the last floor of the last rebuild.
func (m *MapView) CachedLastVisibleFloor() int { return m.cachedLastVisibleFloor }

// IsMultifloor reports whether floors other than the camera's render.
func (m *MapView) IsMultifloor() bool { return m.multifloor }

// SetMultifloor toggles multi-floor rendering.
func (m *MapView) SetMultifloor(enable bool) {
	m.multifloor = enable
	m.requestVisibleTilesUpdate()
}

// ===== dimension / view mode =====

// SetVisibleDimension resizes the visible tile grid. Both extents must be
// odd (the camera tile sits at the exact center) and at least 3.
func (m *MapView) SetVisibleDimension(visibleDimension graphics.Size) error {
	if visibleDimension.Equals(m.visibleDimension) {
		return nil
	}

	if visibleDimension.Width%2 != 1 || visibleDimension.Height%2 != 1 {
		m.log.Errorf("mapview: %v: %dx%d", ErrInvalidDimension, visibleDimension.Width, visibleDimension.Height)
		return ErrInvalidDimension
	}
	if visibleDimension.Width < 3 || visibleDimension.Height < 3 {
		m.log.Errorf("mapview: %v: %dx%d", ErrInvalidDimension, visibleDimension.Width, visibleDimension.Height)
		return ErrInvalidDimension
	}

	return m.updateGeometry(visibleDimension, m.optimizedSize)
}

// VisibleDimension returns the current visible grid size in tiles.
func (m *MapView) VisibleDimension() graphics.Size { return m.visibleDimension }

// VisibleCenterOffset returns the camera tile's offset inside the grid.
func (m *MapView) VisibleCenterOffset() graphics.Point { return m.visibleCenterOffset }

// TileSize returns the current pixels-per-tile scale.
func (m *MapView) TileSize() int { return m.tileSize }

// ViewMode returns the current zoom classification.
func (m *MapView) ViewMode() ViewMode { return m.viewMode }

// SetViewMode forces a zoom classification.
func (m *MapView) SetViewMode(mode ViewMode) {
	m.viewMode = mode
	m.requestVisibleTilesUpdate()
}

// SetAutoViewMode toggles deriving the view mode from geometry.
func (m *MapView) SetAutoViewMode(enable bool) {
	m.autoViewMode = enable
	if enable {
		if err := m.updateGeometry(m.visibleDimension, m.optimizedSize); err != nil {
			m.log.Warnf("mapview: auto view mode kept previous geometry: %v", err)
		}
	}
}

// IsAutoViewMode reports whether the view mode follows geometry.
func (m *MapView) IsAutoViewMode() bool { return m.autoViewMode }

// OptimizeForSize hints the destination pixel size so geometry can pick
// the cheapest sufficient tile scale.
func (m *MapView) OptimizeForSize(visibleSize graphics.Size) error {
	return m.updateGeometry(m.visibleDimension, visibleSize)
}

// ===== draw toggles =====

func (m *MapView) SetDrawTexts(enable bool) { m.drawTexts = enable }
func (m *MapView) IsDrawingTexts() bool     { return m.drawTexts }

func (m *MapView) SetDrawNames(enable bool) {
	m.drawNames = enable
	m.SchedulePainting(RedrawCreatureInformation, MinTimeRender)
}
func (m *MapView) IsDrawingNames() bool { return m.drawNames }

func (m *MapView) SetDrawHealthBars(enable bool) {
	m.drawHealthBars = enable
	m.SchedulePainting(RedrawCreatureInformation, MinTimeRender)
}
func (m *MapView) IsDrawingHealthBars() bool { return m.drawHealthBars }

func (m *MapView) SetDrawManaBar(enable bool) {
	m.drawManaBar = enable
	m.SchedulePainting(RedrawCreatureInformation, MinTimeRender)
}
func (m *MapView) IsDrawingManaBar() bool { return m.drawManaBar }

// SetDrawLights toggles the light layer, allocating or dropping its buffer.
func (m *MapView) SetDrawLights(enable bool) {
	if enable == m.drawLights {
		return
	}

	if enable {
		m.lightView = newLightView(m.backend, m.frameCache.tile.Size())
	} else {
		m.lightView = nil
	}
	m.drawLights = enable

	m.SchedulePainting(RedrawAll, MinTimeRender)
}

// IsDrawingLights reports whether lights render this frame: the layer is
// enabled and the scene is dark enough to matter.
func (m *MapView) IsDrawingLights() bool {
	return m.drawLights && m.lightView.Dark()
}

func (m *MapView) SetDrawFloorShadowing(enable bool) {
	m.lastFloorShadowingColor = graphics.ColorWhite
	m.drawFloorShadowing = enable
	m.SchedulePainting(RedrawThing, MinTimeRender)
}
func (m *MapView) IsDrawingFloorShadowing() bool { return m.drawFloorShadowing }

// LastFloorShadowingColor returns the tint applied to the last floor drawn.
func (m *MapView) LastFloorShadowingColor() graphics.Color { return m.lastFloorShadowingColor }

func (m *MapView) SetDrawViewportEdge(enable bool) {
	m.drawViewportEdge = enable
	m.SchedulePainting(RedrawThing, MinTimeRender)
}
func (m *MapView) IsDrawingViewportEdge() bool { return m.drawViewportEdge }

// SetMinimumAmbientLight floors the global light intensity, 0 to 1.
func (m *MapView) SetMinimumAmbientLight(intensity float64) {
	m.minimumAmbientLight = intensity
	m.SchedulePainting(RedrawLight, 0)
}

// MinimumAmbientLight returns the ambient floor setting.
func (m *MapView) MinimumAmbientLight() float64 { return m.minimumAmbientLight }

// ===== shader =====

// SetShader switches the post-processing shader with a linear cross-fade:
// opacity ramps down over fadeOut seconds, the shader swaps once, then
// opacity ramps back up over fadeIn seconds. Zero durations skip phases.
func (m *MapView) SetShader(shader graphics.Shader, fadeIn, fadeOut float64) {
	if (m.shader == shader && m.shaderSwitchDone) || (m.nextShader == shader && !m.shaderSwitchDone) {
		return
	}

	if fadeOut > 0 && m.shader != nil {
		m.nextShader = shader
		m.shaderSwitchDone = false
	} else {
		m.shader = shader
		m.nextShader = nil
		m.shaderSwitchDone = true
	}
	m.fadeStart = m.clock.Now()
	m.fadeInTime = fadeIn
	m.fadeOutTime = fadeOut
}

// Shader returns the active post-processing shader, nil when none.
func (m *MapView) Shader() graphics.Shader { return m.shader }

// ===== crosshair =====

// SetCrosshairPosition moves the crosshair overlay; its buffer repaints on
// the next draw only if the position actually changed.
func (m *MapView) SetCrosshairPosition(pos world.Position) {
	if pos == m.crosshair.position {
		return
	}
	m.crosshair.position = pos
	m.crosshair.positionChanged = true
}

// SetCrosshairTexture installs the crosshair image, nil to hide it.
func (m *MapView) SetCrosshairTexture(tex graphics.Texture) {
	m.crosshair.texture = tex
	m.crosshair.positionChanged = true
}

// VisibleCreatures returns the creatures currently tracked for overlays.
func (m *MapView) VisibleCreatures() []world.Creature { return m.visibleCreatures }
