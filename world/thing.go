package world

import (
	"github.com/lixenwraith/mapview/graphics"
)

// Operation is the kind of structural mutation reported to observers.
type Operation int

const (
	OperationAdd Operation = iota
	OperationRemove
	// OperationClean means the tile content was replaced wholesale.
	OperationClean
)

// LightSink receives light contributions while the light layer is being
// redrawn. Nil when the light layer is reused from cache.
type LightSink interface {
	AddLight(center graphics.Point, light graphics.Light, scale float64)
}

// DrawContext is the per-call state handed to drawables. Dst is the target
// point inside the currently bound buffer, already parallax-adjusted.
type DrawContext struct {
	Dst     graphics.Point
	Scale   float64
	Painter graphics.Painter
	Light   LightSink
}

// Drawable is the capability every renderable entity implements.
type Drawable interface {
	Draw(ctx DrawContext)
}

// Thing is an entity placed on a tile.
type Thing interface {
	Drawable

	Position() Position

	// Occludes reports whether adding or removing this thing can change
	// what is visible around it (walls, roofs, large items).
	Occludes() bool

	IsCreature() bool
	IsLocalPlayer() bool
}

// Tile is a single world cell as seen by the renderer. References are
// borrowed from the store and must not be used across a mutation
// notification until the visible set is rebuilt.
type Tile interface {
	Drawable

	Position() Position

	// IsDrawable reports whether the tile has anything to paint.
	IsDrawable() bool

	// LimitsFloorView reports whether this tile stops the first-visible-
	// floor scan. freeView widens the rule to any bottom-layer thing;
	// otherwise only projectile-blocking ones count, so windows and
	// grates stay see-through.
	LimitsFloorView(freeView bool) bool

	HasLight() bool
	HasTallThings() bool
	HasWideThings() bool
	HasDisplacement() bool

	// IsCovered reports whether an upper floor hides this tile.
	IsCovered() bool

	// EnterVisibleSet notifies the tile it was placed on the visible
	// tile list, for its own per-visibility bookkeeping.
	EnterVisibleSet()
}

// InfoFlags select which creature overlay elements are drawn.
type InfoFlags int

const (
	DrawNames InfoFlags = 1 << iota
	DrawBars
	DrawManaBar
)

// InfoContext is the state handed to creature overlay drawing.
type InfoContext struct {
	Dst     graphics.Point
	Covered bool
	Bounds  graphics.Rect
	Flags   InfoFlags
	Painter graphics.Painter
}

// Creature is a thing that moves and carries overlay information.
type Creature interface {
	Thing

	CanBeSeen() bool
	IsWalking() bool
	Direction() Direction

	// WalkOffset is the sub-tile pixel offset of an in-progress step.
	WalkOffset() graphics.Point

	// DrawOffset shifts the overlay anchor (mounts, outfits).
	DrawOffset() graphics.Point

	// Displacement is the sprite displacement in pixels.
	Displacement() graphics.Point

	// NeedsInformationUpdate reports whether dynamic overlay data
	// (health, mana) changed since the overlay was last drawn.
	NeedsInformationUpdate() bool

	// InformationDrawn clears the dynamic-update mark.
	InformationDrawn()

	DrawInformation(ctx InfoContext)
}

// Missile is a floor-level projectile drawn after the floor's tiles.
type Missile interface {
	Drawable
	Position() Position
}

// StaticText is a persistent piece of text anchored to a position.
type StaticText interface {
	Position() Position

	// CrossFloor reports whether the text is drawn even when its floor
	// differs from the camera floor.
	CrossFloor() bool

	DrawText(p graphics.Point, bounds graphics.Rect, painter graphics.Painter)
}

// AnimatedText is a short-lived floating text (damage splashes and such).
type AnimatedText interface {
	Position() Position
	DrawText(p graphics.Point, bounds graphics.Rect, painter graphics.Painter)
}
