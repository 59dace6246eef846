package mapview

import (
	"testing"

	"github.com/lixenwraith/mapview/world"
)

func TestFirstVisibleFloorOpenSky(t *testing.T) {
	view, store, _, _ := newTestView(t)

	fillFloor(store, 100, 100, world.SeaFloor, 3)
	view.SetCameraPosition(world.Position{X: 100, Y: 100, Z: world.SeaFloor})

	if got := view.calcFirstVisibleFloor(); got != 0 {
		t.Errorf("Expected first visible floor 0 under open sky, got %d", got)
	}
	if got := view.calcLastVisibleFloor(); got != world.SeaFloor {
		t.Errorf("Expected last visible floor %d above ground, got %d", world.SeaFloor, got)
	}
}

func TestFirstVisibleFloorUnderRoof(t *testing.T) {
	view, store, _, _ := newTestView(t)

	fillFloor(store, 100, 100, world.SeaFloor, 3)
	// roof directly above the camera column
	groundTile(store, 100, 100, world.SeaFloor-1)
	view.SetCameraPosition(world.Position{X: 100, Y: 100, Z: world.SeaFloor})

	if got := view.calcFirstVisibleFloor(); got != world.SeaFloor {
		t.Errorf("Expected roof to clip the view to floor %d, got %d", world.SeaFloor, got)
	}
}

func TestFirstVisibleFloorRoofAboveNeighbor(t *testing.T) {
	view, store, _, _ := newTestView(t)

	fillFloor(store, 100, 100, world.SeaFloor, 3)
	// roof above the east neighbor, inside the 3x3 look-through scan
	groundTile(store, 101, 100, world.SeaFloor-1)
	view.SetCameraPosition(world.Position{X: 100, Y: 100, Z: world.SeaFloor})

	if got := view.calcFirstVisibleFloor(); got != world.SeaFloor {
		t.Errorf("Expected neighbor roof to clip the view to floor %d, got %d", world.SeaFloor, got)
	}
}

func TestFirstVisibleFloorBlockedNeighborIgnored(t *testing.T) {
	view, store, _, _ := newTestView(t)

	fillFloor(store, 100, 100, world.SeaFloor, 3)
	// a wall on the neighbor breaks the line of sight, so the roof two
	// floors above it must not clip the camera's view
	store.SetTile(&world.BasicTile{
		Pos:             world.Position{X: 101, Y: 100, Z: world.SeaFloor},
		OnBottom:        true,
		BlockProjectile: true,
	})
	groundTile(store, 101, 100, world.SeaFloor-2)
	view.SetCameraPosition(world.Position{X: 100, Y: 100, Z: world.SeaFloor})

	if got := view.calcFirstVisibleFloor(); got != 0 {
		t.Errorf("Expected blocked neighbor's roof to be ignored, got first floor %d", got)
	}

	// restore the line of sight and the same roof clips
	groundTile(store, 101, 100, world.SeaFloor)
	if got := view.calcFirstVisibleFloor(); got != world.SeaFloor-1 {
		t.Errorf("Expected roof to clip to floor %d once look-through opens, got %d", world.SeaFloor-1, got)
	}
}

func TestFirstVisibleFloorDiagonalNeighborIgnored(t *testing.T) {
	view, store, _, _ := newTestView(t)

	view.SetCameraPosition(world.Position{X: 100, Y: 100, Z: world.SeaFloor})

	// a roof only above a diagonal neighbor never clips; note the camera
	// column's covered projection walks diagonally, so keep it clear
	groundTile(store, 99, 101, world.SeaFloor-1)

	if got := view.calcFirstVisibleFloor(); got != 0 {
		t.Errorf("Expected diagonal neighbor's roof to be ignored, got first floor %d", got)
	}
}

func TestVisibleFloorsUnderground(t *testing.T) {
	view, _, _, _ := newTestView(t)

	tests := []struct {
		name      string
		cameraZ   int
		wantFirst int
		wantLast  int
	}{
		{"just below surface", world.UndergroundFloor, world.UndergroundFloor, world.UndergroundFloor + world.UndergroundRange},
		{"mid depth", 10, world.UndergroundFloor, 12},
		{"deep", 12, 10, 14},
		{"bottom", world.MaxFloor, 13, world.MaxFloor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view.SetCameraPosition(world.Position{X: 100, Y: 100, Z: tt.cameraZ})

			if got := view.calcFirstVisibleFloor(); got != tt.wantFirst {
				t.Errorf("first visible floor = %d, want %d", got, tt.wantFirst)
			}
			if got := view.calcLastVisibleFloor(); got != tt.wantLast {
				t.Errorf("last visible floor = %d, want %d", got, tt.wantLast)
			}
		})
	}
}

func TestLockedFirstVisibleFloor(t *testing.T) {
	view, store, _, _ := newTestView(t)

	fillFloor(store, 100, 100, world.SeaFloor, 3)
	groundTile(store, 100, 100, world.SeaFloor-1) // roof that would clip
	view.SetCameraPosition(world.Position{X: 100, Y: 100, Z: world.SeaFloor})

	view.LockFirstVisibleFloor(3)
	if got := view.calcFirstVisibleFloor(); got != 3 {
		t.Errorf("Expected locked floor 3 to bypass the occlusion scan, got %d", got)
	}

	// a lock below the natural last floor widens the window downward
	view.LockFirstVisibleFloor(10)
	if got := view.calcLastVisibleFloor(); got != 10 {
		t.Errorf("Expected last visible floor widened to the lock 10, got %d", got)
	}

	view.UnlockFirstVisibleFloor()
	if got := view.calcFirstVisibleFloor(); got != world.SeaFloor {
		t.Errorf("Expected unlock to restore the occlusion scan, got %d", got)
	}
	if got := view.LockedFirstVisibleFloor(); got != -1 {
		t.Errorf("Expected lock sentinel -1 after unlock, got %d", got)
	}
}

func TestSingleFloorWhenMultifloorOff(t *testing.T) {
	view, _, _, _ := newTestView(t)

	view.SetCameraPosition(world.Position{X: 100, Y: 100, Z: 10})
	view.SetMultifloor(false)

	if got := view.calcFirstVisibleFloor(); got != 10 {
		t.Errorf("Expected camera floor 10 with multifloor off, got %d", got)
	}
	if got := view.calcLastVisibleFloor(); got != 10 {
		t.Errorf("Expected camera floor 10 with multifloor off, got %d", got)
	}
}

func TestFloorWindowWithUnknownCamera(t *testing.T) {
	view, _, _, _ := newTestView(t)

	view.SetCameraPosition(world.InvalidPosition)

	if got := view.calcFirstVisibleFloor(); got != world.SeaFloor {
		t.Errorf("Expected sea floor default with no camera, got %d", got)
	}
	if got := view.calcLastVisibleFloor(); got != world.SeaFloor {
		t.Errorf("Expected sea floor default with no camera, got %d", got)
	}
}
