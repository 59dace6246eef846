package main

import (
	"github.com/aquilax/go-perlin"

	"github.com/lixenwraith/mapview/graphics"
	"github.com/lixenwraith/mapview/world"
)

const (
	worldMin  = 40
	worldMax  = 160
	spawnX    = 100
	spawnY    = 100
	noiseZoom = 18.0
)

var (
	colorWater = graphics.Color{R: 30, G: 60, B: 160, A: 255}
	colorSand  = graphics.Color{R: 194, G: 178, B: 128, A: 255}
	colorGrass = graphics.Color{R: 40, G: 120, B: 40, A: 255}
	colorRock  = graphics.Color{R: 110, G: 110, B: 110, A: 255}
	colorCave = graphics.Color{R: 60, G: 50, B: 40, A: 255}
)

// torchLight is a warm palette index with a radius of about 1.5 tiles.
var torchLight = graphics.Light{Color: 206, Intensity: 48}

// generateWorld fills the store with a noise-based island plus a cave
// floor underneath, and returns the player creature at the spawn point.
func generateWorld(store *world.TileMap, seed int64) *world.BasicCreature {
	p := perlin.NewPerlin(2, 2, 3, seed)
	caves := perlin.NewPerlin(2, 2, 3, seed+1)

	for y := worldMin; y <= worldMax; y++ {
		for x := worldMin; x <= worldMax; x++ {
			h := p.Noise2D(float64(x)/noiseZoom, float64(y)/noiseZoom)
			placeSurface(store, x, y, h)
			placeCave(store, caves, x, y, h)
		}
	}

	store.SetAmbientLight(graphics.Light{Color: 255, Intensity: 255})

	store.AddStaticText(&world.BasicStaticText{
		Pos:       world.Position{X: spawnX, Y: spawnY - 2, Z: world.SeaFloor},
		Text:      "spawn",
		AllFloors: true,
	})

	for i, offset := range []world.Position{{X: 5, Y: 3}, {X: -6, Y: -2}, {X: 8, Y: -5}} {
		store.AddThing(&world.BasicCreature{
			Name:   "wanderer",
			Pos:    world.Position{X: spawnX + offset.X, Y: spawnY + offset.Y, Z: world.SeaFloor},
			Color:  graphics.Color{R: 200, G: 60, B: uint8(60 * (i + 1)), A: 255},
			Health: 0.5 + 0.15*float64(i),
		})
	}

	player := &world.BasicCreature{
		Name:        "player",
		Pos:         world.Position{X: spawnX, Y: spawnY, Z: world.SeaFloor},
		Color:       graphics.Color{R: 240, G: 240, B: 240, A: 255},
		LocalPlayer: true,
		Health:      1,
	}
	store.AddThing(player)
	return player
}

// placeSurface writes the sea-floor tile and, on high ground, the hill
// tile one floor above it.
func placeSurface(store *world.TileMap, x, y int, h float64) {
	tile := &world.BasicTile{
		Pos:    world.Position{X: x, Y: y, Z: world.SeaFloor},
		Ground: true,
		Opaque: true,
	}
	switch {
	case h < -0.25:
		tile.Color = colorWater
	case h < -0.15:
		tile.Color = colorSand
	default:
		tile.Color = colorGrass
	}
	store.SetTile(tile)

	if h > 0.3 {
		store.SetTile(&world.BasicTile{
			Pos:    world.Position{X: x, Y: y, Z: world.SeaFloor - 1},
			Color:  colorRock,
			Ground: true,
			Opaque: true,
		})
		tile.Covered = true
	}
}

// placeCave carves the underground floor. Cave mouths on the surface are
// left without ground so the floor below shows through.
func placeCave(store *world.TileMap, caves *perlin.Perlin, x, y int, surface float64) {
	c := caves.Noise2D(float64(x)/noiseZoom, float64(y)/noiseZoom)
	if c < -0.1 {
		// Solid rock, no walkable cave tile here.
		store.SetTile(&world.BasicTile{
			Pos:             world.Position{X: x, Y: y, Z: world.UndergroundFloor},
			Color:           colorRock,
			OnBottom:        true,
			BlockProjectile: true,
			Opaque:          true,
		})
		return
	}

	cave := &world.BasicTile{
		Pos:    world.Position{X: x, Y: y, Z: world.UndergroundFloor},
		Color:  colorCave,
		Ground: true,
		Opaque: true,
	}
	if (x+y*3)%37 == 0 {
		light := torchLight
		cave.Light = &light
	}
	store.SetTile(cave)

	// Cave mouth: remove surface cover on dry, flat ground.
	if c > 0.45 && surface > -0.1 && surface < 0.25 {
		store.RemoveTile(world.Position{X: x, Y: y, Z: world.SeaFloor})
	}
}
