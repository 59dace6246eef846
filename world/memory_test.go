package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/mapview/graphics"
)

type recordingObserver struct {
	updates []Operation
	centers []Position
}

func (r *recordingObserver) OnTileUpdate(pos Position, thing Thing, op Operation) {
	r.updates = append(r.updates, op)
}

func (r *recordingObserver) OnMapCenterChange(pos Position) {
	r.centers = append(r.centers, pos)
}

func TestTileMapSetAndRemoveTile(t *testing.T) {
	m := NewTileMap(DefaultAwareRange)
	obs := &recordingObserver{}
	m.AddObserver(obs)

	pos := Position{X: 10, Y: 10, Z: 7}
	m.SetTile(&BasicTile{Pos: pos, Ground: true})

	require.NotNil(t, m.Tile(pos))
	assert.Equal(t, []Operation{OperationClean}, obs.updates)

	m.RemoveTile(pos)
	assert.Nil(t, m.Tile(pos))
	assert.Len(t, obs.updates, 2)

	// removing a missing tile is silent
	m.RemoveTile(pos)
	assert.Len(t, obs.updates, 2)
}

func TestTileMapAddRemoveThing(t *testing.T) {
	m := NewTileMap(DefaultAwareRange)
	obs := &recordingObserver{}
	m.AddObserver(obs)

	pos := Position{X: 10, Y: 10, Z: 7}
	npc := &BasicCreature{Name: "npc", Pos: pos}

	m.AddThing(npc)
	tile := m.Tile(pos)
	require.NotNil(t, tile, "adding a thing creates its tile")
	assert.True(t, tile.IsDrawable())
	assert.Equal(t, OperationAdd, obs.updates[len(obs.updates)-1])

	spectators := m.Spectators(pos, false)
	require.Len(t, spectators, 1)
	assert.Equal(t, npc, spectators[0])

	m.RemoveThing(npc)
	assert.Empty(t, m.Spectators(pos, false))
	assert.Equal(t, OperationRemove, obs.updates[len(obs.updates)-1])
}

func TestTileMapSpectatorsRange(t *testing.T) {
	m := NewTileMap(DefaultAwareRange)
	center := Position{X: 100, Y: 100, Z: 7}

	near := &BasicCreature{Name: "near", Pos: center.Translated(3, 3)}
	far := &BasicCreature{Name: "far", Pos: center.Translated(30, 0)}
	below := &BasicCreature{Name: "below", Pos: Position{X: 100, Y: 100, Z: 8}}
	m.AddThing(near)
	m.AddThing(far)
	m.AddThing(below)

	assert.Len(t, m.Spectators(center, false), 1, "same floor only")
	assert.Len(t, m.Spectators(center, true), 2, "multi-floor includes the one below")
}

func TestTileMapIsCompletelyCovered(t *testing.T) {
	m := NewTileMap(DefaultAwareRange)

	buried := Position{X: 100, Y: 100, Z: 10}
	m.SetTile(&BasicTile{Pos: buried, Ground: true})
	assert.False(t, m.IsCompletelyCovered(buried, 0))

	// the covering projection sits one diagonal step per floor above
	m.SetTile(&BasicTile{Pos: Position{X: 101, Y: 101, Z: 9}, Ground: true, Opaque: true})
	assert.True(t, m.IsCompletelyCovered(buried, 0))

	// the scan never looks above firstFloor
	assert.False(t, m.IsCompletelyCovered(buried, 10))

	// a non-opaque cover does not hide
	m.SetTile(&BasicTile{Pos: Position{X: 101, Y: 101, Z: 9}, Ground: true})
	assert.False(t, m.IsCompletelyCovered(buried, 0))
}

func TestTileMapIsLookPossible(t *testing.T) {
	m := NewTileMap(DefaultAwareRange)
	pos := Position{X: 10, Y: 10, Z: 7}

	assert.True(t, m.IsLookPossible(pos), "empty cells are transparent")

	m.SetTile(&BasicTile{Pos: pos, Ground: true})
	assert.True(t, m.IsLookPossible(pos))

	m.SetTile(&BasicTile{Pos: pos, OnBottom: true, BlockProjectile: true})
	assert.False(t, m.IsLookPossible(pos))
}

func TestBasicTileLimitsFloorView(t *testing.T) {
	tests := []struct {
		name     string
		tile     BasicTile
		freeView bool
		want     bool
	}{
		{"ground roof", BasicTile{Ground: true}, false, true},
		{"dont-hide ground", BasicTile{Ground: true, DontHide: true}, false, false},
		{"window without free view", BasicTile{OnBottom: true}, false, false},
		{"window with free view", BasicTile{OnBottom: true}, true, true},
		{"wall", BasicTile{OnBottom: true, BlockProjectile: true}, false, true},
		{"empty", BasicTile{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tile.LimitsFloorView(tt.freeView))
		})
	}
}

func TestBasicTileDrawable(t *testing.T) {
	assert.False(t, (&BasicTile{}).IsDrawable())
	assert.True(t, (&BasicTile{Ground: true}).IsDrawable())
	assert.True(t, (&BasicTile{OnBottom: true}).IsDrawable())
	assert.True(t, (&BasicTile{Light: &graphics.Light{Intensity: 10}}).IsDrawable())
	assert.True(t, (&BasicTile{Things: []Thing{&BasicCreature{}}}).IsDrawable())
}

func TestBasicCreatureInformationDirty(t *testing.T) {
	c := &BasicCreature{Name: "npc", Health: 1}

	assert.False(t, c.NeedsInformationUpdate())

	c.SetHealth(0.25)
	assert.True(t, c.NeedsInformationUpdate())

	c.InformationDrawn()
	assert.False(t, c.NeedsInformationUpdate())
}
