package mapview

import (
	"testing"

	"github.com/lixenwraith/mapview/graphics"
	"github.com/lixenwraith/mapview/world"
)

func countVisibleTiles(view *MapView) int {
	total := 0
	for z := range view.cachedVisibleTiles {
		total += len(view.cachedVisibleTiles[z])
	}
	return total
}

func TestVisibleTilesRebuildIsIdempotent(t *testing.T) {
	view, store, _, _ := newTestView(t)

	fillFloor(store, 100, 100, world.SeaFloor, 10)
	view.SetCameraPosition(world.Position{X: 100, Y: 100, Z: world.SeaFloor})

	view.updateVisibleTiles()
	first := countVisibleTiles(view)
	if first == 0 {
		t.Fatal("Expected a populated visible set")
	}

	seen := make(map[world.Position]bool)
	for _, tile := range view.cachedVisibleTiles[world.SeaFloor] {
		if seen[tile.Position()] {
			t.Fatalf("Tile %v appears twice in one rebuild", tile.Position())
		}
		seen[tile.Position()] = true
	}

	view.requestVisibleTilesUpdate()
	view.updateVisibleTiles()
	if second := countVisibleTiles(view); second != first {
		t.Errorf("Rebuild changed the visible set: %d then %d tiles", first, second)
	}

	// every visible tile entered the set exactly once per rebuild
	for _, tile := range view.cachedVisibleTiles[world.SeaFloor] {
		if hits := tile.(*world.BasicTile).VisibleHits(); hits != 2 {
			t.Fatalf("Tile %v entered the visible set %d times over two rebuilds", tile.Position(), hits)
		}
	}
}

func TestVisibleTilesDrawOrder(t *testing.T) {
	view, store, _, _ := newTestView(t)

	fillFloor(store, 100, 100, world.SeaFloor, 10)
	camera := world.Position{X: 100, Y: 100, Z: world.SeaFloor}
	view.SetCameraPosition(camera)
	view.updateVisibleTiles()

	tiles := view.cachedVisibleTiles[world.SeaFloor]
	if len(tiles) == 0 {
		t.Fatal("Expected a populated visible set")
	}

	// diagonal fill starts at the top-left corner of the draw grid and
	// ends at the bottom-right of the visible area
	wantFirst := camera.Translated(-8, -6)
	if got := tiles[0].Position(); got != wantFirst {
		t.Errorf("Expected first tile at %v, got %v", wantFirst, got)
	}
	wantLast := camera.Translated(8, 6)
	if got := tiles[len(tiles)-1].Position(); got != wantLast {
		t.Errorf("Expected last tile at %v, got %v", wantLast, got)
	}
}

func TestVisibleTilesCapInHugeView(t *testing.T) {
	view, store, _, _ := newTestView(t)

	fillFloor(store, 100, 100, world.SeaFloor, 70)
	view.SetCameraPosition(world.Position{X: 100, Y: 100, Z: world.SeaFloor})

	if err := view.SetVisibleDimension(graphics.Size{Width: 129, Height: 129}); err != nil {
		t.Fatalf("SetVisibleDimension failed: %v", err)
	}
	if got := view.ViewMode(); got != HugeView {
		t.Fatalf("Expected huge view for the cap test, got %v", got)
	}

	view.updateVisibleTiles()

	got := countVisibleTiles(view)
	if got > maxTileDraws+1 {
		t.Errorf("Visible set exceeded the draw cap: %d tiles", got)
	}
	if got < maxTileDraws/2 {
		t.Errorf("Visible set suspiciously small under the cap: %d tiles", got)
	}
}

func TestVisibleTilesNoCapInNearView(t *testing.T) {
	view, store, _, _ := newTestView(t)

	fillFloor(store, 100, 100, world.SeaFloor, 10)
	view.SetCameraPosition(world.Position{X: 100, Y: 100, Z: world.SeaFloor})
	view.updateVisibleTiles()

	// near view comfortably fits the whole visible grid
	want := 17 * 13
	if got := countVisibleTiles(view); got < want {
		t.Errorf("Expected at least the %d grid tiles in near view, got %d", want, got)
	}
}

func TestVisibleTilesInvalidCameraClears(t *testing.T) {
	view, store, _, _ := newTestView(t)

	fillFloor(store, 100, 100, world.SeaFloor, 10)
	view.SetCameraPosition(world.Position{X: 100, Y: 100, Z: world.SeaFloor})
	view.updateVisibleTiles()
	if countVisibleTiles(view) == 0 {
		t.Fatal("Expected a populated visible set")
	}

	view.SetCameraPosition(world.InvalidPosition)
	view.updateVisibleTiles()
	if got := countVisibleTiles(view); got != 0 {
		t.Errorf("Expected an empty visible set with no camera, got %d tiles", got)
	}
}

func TestVisibleTilesSkipCompletelyCovered(t *testing.T) {
	view, store, _, _ := newTestView(t)

	camera := world.Position{X: 100, Y: 100, Z: 9}
	groundTile(store, 100, 100, 9)
	buried := groundTile(store, 100, 100, 10)
	cover := groundTile(store, 101, 101, 9) // opaque, covers the tile below

	view.SetCameraPosition(camera)
	view.updateVisibleTiles()

	for _, tile := range view.cachedVisibleTiles[10] {
		if tile.Position() == buried.Pos {
			t.Fatal("Expected the covered tile to be skipped")
		}
	}

	store.RemoveTile(cover.Pos)
	view.updateVisibleTiles()

	found := false
	for _, tile := range view.cachedVisibleTiles[10] {
		if tile.Position() == buried.Pos {
			found = true
		}
	}
	if !found {
		t.Error("Expected the tile to become visible once uncovered")
	}
}

func TestVisibleTilesSkipEmptyTiles(t *testing.T) {
	view, store, _, _ := newTestView(t)

	groundTile(store, 100, 100, world.SeaFloor)
	store.SetTile(&world.BasicTile{Pos: world.Position{X: 101, Y: 100, Z: world.SeaFloor}})

	view.SetCameraPosition(world.Position{X: 100, Y: 100, Z: world.SeaFloor})
	view.updateVisibleTiles()

	for _, tile := range view.cachedVisibleTiles[world.SeaFloor] {
		if tile.Position() == (world.Position{X: 101, Y: 100, Z: world.SeaFloor}) {
			t.Fatal("Expected the flagless tile to be skipped as not drawable")
		}
	}
	if got := countVisibleTiles(view); got != 1 {
		t.Errorf("Expected exactly the one ground tile, got %d", got)
	}
}

func TestStructuralUpdateInvalidatesCache(t *testing.T) {
	view, store, _, _ := newTestView(t)

	fillFloor(store, 100, 100, world.SeaFloor, 5)
	view.SetCameraPosition(world.Position{X: 100, Y: 100, Z: world.SeaFloor})
	view.updateVisibleTiles()

	if view.mustUpdateVisibleTiles {
		t.Fatal("Expected a clean cache after rebuild")
	}

	// a tile replacement is structural and must flag a rebuild
	groundTile(store, 100, 100, world.SeaFloor)
	if !view.mustUpdateVisibleTiles {
		t.Error("Expected a tile replacement to invalidate the cache")
	}
}
