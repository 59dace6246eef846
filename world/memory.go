package world

import (
	"github.com/lixenwraith/mapview/graphics"
)

// TileMap is an in-memory Map implementation. It backs the demo command and
// the test suites; a networked client would substitute its own store.
//
// All access happens on the frame thread, so there is no locking here.
type TileMap struct {
	tiles     map[Position]*BasicTile
	creatures []Creature
	missiles  map[int][]Missile
	statics   []StaticText
	animated  []AnimatedText
	ambient   graphics.Light
	aware     AwareRange
	observers []Observer
}

// NewTileMap creates an empty world with the given aware range.
func NewTileMap(aware AwareRange) *TileMap {
	return &TileMap{
		tiles:    make(map[Position]*BasicTile),
		missiles: make(map[int][]Missile),
		ambient:  graphics.Light{Color: 215, Intensity: 255},
		aware:    aware,
	}
}

// AddObserver registers a mutation listener. Observers are notified
// synchronously, in registration order.
func (m *TileMap) AddObserver(o Observer) {
	m.observers = append(m.observers, o)
}

func (m *TileMap) notifyTileUpdate(pos Position, thing Thing, op Operation) {
	for _, o := range m.observers {
		o.OnTileUpdate(pos, thing, op)
	}
}

// SetTile places (or replaces) a tile and notifies observers of a clean.
func (m *TileMap) SetTile(t *BasicTile) {
	m.tiles[t.Pos] = t
	m.notifyTileUpdate(t.Pos, nil, OperationClean)
}

// RemoveTile deletes the tile at pos entirely.
func (m *TileMap) RemoveTile(pos Position) {
	if _, ok := m.tiles[pos]; !ok {
		return
	}
	delete(m.tiles, pos)
	m.notifyTileUpdate(pos, nil, OperationClean)
}

// AddThing places a thing on the tile at its position, creating an empty
// tile when needed.
func (m *TileMap) AddThing(thing Thing) {
	pos := thing.Position()
	tile, ok := m.tiles[pos]
	if !ok {
		tile = &BasicTile{Pos: pos}
		m.tiles[pos] = tile
	}
	tile.Things = append(tile.Things, thing)
	if c, isCreature := thing.(Creature); isCreature {
		m.creatures = append(m.creatures, c)
	}
	m.notifyTileUpdate(pos, thing, OperationAdd)
}

// RemoveThing detaches a thing from its tile.
func (m *TileMap) RemoveThing(thing Thing) {
	pos := thing.Position()
	tile, ok := m.tiles[pos]
	if !ok {
		return
	}
	for i, t := range tile.Things {
		if t == thing {
			tile.Things = append(tile.Things[:i], tile.Things[i+1:]...)
			break
		}
	}
	if c, isCreature := thing.(Creature); isCreature {
		for i, existing := range m.creatures {
			if existing == c {
				m.creatures = append(m.creatures[:i], m.creatures[i+1:]...)
				break
			}
		}
	}
	m.notifyTileUpdate(pos, thing, OperationRemove)
}

// SetAmbientLight replaces the world's global light.
func (m *TileMap) SetAmbientLight(l graphics.Light) { m.ambient = l }

// AddMissile places a projectile on its floor.
func (m *TileMap) AddMissile(missile Missile) {
	z := missile.Position().Z
	m.missiles[z] = append(m.missiles[z], missile)
}

// ClearMissiles drops all projectiles on a floor.
func (m *TileMap) ClearMissiles(floor int) { delete(m.missiles, floor) }

func (m *TileMap) AddStaticText(t StaticText)     { m.statics = append(m.statics, t) }
func (m *TileMap) AddAnimatedText(t AnimatedText) { m.animated = append(m.animated, t) }

// ===== Map interface =====

func (m *TileMap) Tile(pos Position) Tile {
	if t, ok := m.tiles[pos]; ok {
		return t
	}
	return nil
}

func (m *TileMap) IsCompletelyCovered(pos Position, firstFloor int) bool {
	for z := pos.Z - 1; z >= firstFloor; z-- {
		covering, ok := pos.CoveredUp(pos.Z - z)
		if !ok {
			break
		}
		if t, exists := m.tiles[covering]; exists && t.Opaque {
			return true
		}
	}
	return false
}

func (m *TileMap) IsLookPossible(pos Position) bool {
	t, ok := m.tiles[pos]
	return !ok || !t.BlockProjectile
}

func (m *TileMap) Spectators(center Position, multiFloor bool) []Creature {
	var out []Creature
	for _, c := range m.creatures {
		pos := c.Position()
		if !multiFloor && pos.Z != center.Z {
			continue
		}
		if center.IsInRange(pos, m.aware.Left, m.aware.Right, m.aware.Top, m.aware.Bottom) {
			out = append(out, c)
		}
	}
	return out
}

func (m *TileMap) AmbientLight() graphics.Light { return m.ambient }

func (m *TileMap) FloorMissiles(floor int) []Missile { return m.missiles[floor] }

func (m *TileMap) StaticTexts() []StaticText { return m.statics }
func (m *TileMap) AnimatedTexts() []AnimatedText { return m.animated }

func (m *TileMap) AwareRange() AwareRange { return m.aware }

// ===== Concrete tile =====

// BasicTile is the TileMap cell. Flags mirror the thing-type attributes the
// visibility logic cares about; the store aggregates them per tile.
type BasicTile struct {
	Pos   Position
	Color graphics.Color

	Ground          bool // has a ground layer
	OnBottom        bool // has a bottom-layer structure (walls, windows)
	BlockProjectile bool
	DontHide        bool
	Opaque          bool // fully hides tiles below it
	Wide            bool
	Tall            bool
	Displaced       bool
	Covered         bool

	Light  *graphics.Light
	Things []Thing

	visibleHits int
}

func (t *BasicTile) Position() Position { return t.Pos }

func (t *BasicTile) IsDrawable() bool {
	return t.Ground || t.OnBottom || t.Light != nil || len(t.Things) > 0
}

func (t *BasicTile) LimitsFloorView(freeView bool) bool {
	if t.DontHide {
		return false
	}
	if t.Ground {
		return true
	}
	if t.OnBottom {
		return freeView || t.BlockProjectile
	}
	return false
}

func (t *BasicTile) HasLight() bool { return t.Light != nil }
func (t *BasicTile) HasTallThings() bool { return t.Tall }
func (t *BasicTile) HasWideThings() bool { return t.Wide }
func (t *BasicTile) HasDisplacement() bool { return t.Displaced }
func (t *BasicTile) IsCovered() bool { return t.Covered }

func (t *BasicTile) EnterVisibleSet() { t.visibleHits++ }

// VisibleHits returns how many times the tile entered the visible set.
func (t *BasicTile) VisibleHits() int { return t.visibleHits }

func (t *BasicTile) Draw(ctx DrawContext) {
	edge := int(float64(TilePixels) * ctx.Scale)
	if edge < 1 {
		edge = 1
	}
	if t.Ground || t.OnBottom {
		ctx.Painter.SetColor(t.Color)
		ctx.Painter.DrawFilledRect(graphics.Rect{Pos: ctx.Dst, Size: graphics.Size{Width: edge, Height: edge}})
		ctx.Painter.ResetColor()
	}
	for _, thing := range t.Things {
		thing.Draw(ctx)
	}
	if t.Light != nil && ctx.Light != nil {
		center := ctx.Dst.AddXY(edge/2, edge/2)
		ctx.Light.AddLight(center, *t.Light, ctx.Scale)
	}
}

// ===== Concrete things =====

// BasicCreature is a minimal creature for the demo and tests.
type BasicCreature struct {
	Name        string
	Pos         Position
	Color       graphics.Color
	LocalPlayer bool
	Walking     bool
	Dir         Direction
	Health      float64 // 0..1, drawn as the overlay bar fill

	infoDirty bool
}

func (c *BasicCreature) Position() Position { return c.Pos }
func (c *BasicCreature) Occludes() bool { return false }
func (c *BasicCreature) IsCreature() bool { return true }
func (c *BasicCreature) IsLocalPlayer() bool {
	return c.LocalPlayer
}
func (c *BasicCreature) CanBeSeen() bool { return true }
func (c *BasicCreature) IsWalking() bool { return c.Walking }
func (c *BasicCreature) Direction() Direction { return c.Dir }

func (c *BasicCreature) WalkOffset() graphics.Point { return graphics.Point{} }
func (c *BasicCreature) DrawOffset() graphics.Point { return graphics.Point{} }
func (c *BasicCreature) Displacement() graphics.Point { return graphics.Point{} }

// SetHealth updates the bar fill and marks the overlay for redraw.
func (c *BasicCreature) SetHealth(h float64) {
	c.Health = h
	c.infoDirty = true
}

func (c *BasicCreature) NeedsInformationUpdate() bool { return c.infoDirty }
func (c *BasicCreature) InformationDrawn()            { c.infoDirty = false }

func (c *BasicCreature) Draw(ctx DrawContext) {
	edge := int(float64(TilePixels) * ctx.Scale)
	if edge < 1 {
		edge = 1
	}
	ctx.Painter.SetColor(c.Color)
	ctx.Painter.DrawFilledRect(graphics.Rect{Pos: ctx.Dst, Size: graphics.Size{Width: edge, Height: edge}})
	ctx.Painter.ResetColor()
}

func (c *BasicCreature) DrawInformation(ctx InfoContext) {
	if ctx.Flags&DrawBars == 0 {
		return
	}
	barWidth := 24
	fill := int(float64(barWidth) * c.Health)
	if fill < 0 {
		fill = 0
	} else if fill > barWidth {
		fill = barWidth
	}
	bar := graphics.Rect{Pos: ctx.Dst.AddXY(0, -4), Size: graphics.Size{Width: fill, Height: 2}}
	ctx.Painter.SetColor(graphics.Color{R: 0, G: 192, B: 0, A: 255})
	ctx.Painter.DrawFilledRect(bar)
	ctx.Painter.ResetColor()
}

// BasicMissile is a floor projectile placeholder.
type BasicMissile struct {
	Pos   Position
	Color graphics.Color
}

func (m *BasicMissile) Position() Position { return m.Pos }

func (m *BasicMissile) Draw(ctx DrawContext) {
	ctx.Painter.SetColor(m.Color)
	ctx.Painter.DrawFilledRect(graphics.Rect{Pos: ctx.Dst, Size: graphics.Size{Width: 2, Height: 2}})
	ctx.Painter.ResetColor()
}

// BasicStaticText anchors a string to a position.
type BasicStaticText struct {
	Pos       Position
	Text      string
	AllFloors bool
	DrawCalls int
}

func (t *BasicStaticText) Position() Position { return t.Pos }
func (t *BasicStaticText) CrossFloor() bool { return t.AllFloors }

func (t *BasicStaticText) DrawText(p graphics.Point, bounds graphics.Rect, painter graphics.Painter) {
	t.DrawCalls++
	painter.DrawFilledRect(graphics.Rect{Pos: p, Size: graphics.Size{Width: len(t.Text), Height: 1}})
}

// BasicAnimatedText is a floating text placeholder.
type BasicAnimatedText struct {
	Pos       Position
	Text      string
	DrawCalls int
}

func (t *BasicAnimatedText) Position() Position { return t.Pos }

func (t *BasicAnimatedText) DrawText(p graphics.Point, bounds graphics.Rect, painter graphics.Painter) {
	t.DrawCalls++
	painter.DrawFilledRect(graphics.Rect{Pos: p, Size: graphics.Size{Width: len(t.Text), Height: 1}})
}
