package collision

import (
	"math"
	"testing"

	"mazecaster/internal/world"
)

// mockGrid implements world.TileGrid for testing
type mockGrid struct {
	walls map[[2]int]bool
}

func newMockGrid() *mockGrid {
	return &mockGrid{walls: make(map[[2]int]bool)}
}

func (m *mockGrid) TileAt(x, z int) int {
	if m.walls[[2]int{x, z}] {
		return world.TileWall
	}
	return world.TileEmpty
}

func (m *mockGrid) setWall(x, z int) {
	m.walls[[2]int{x, z}] = true
}

func TestCanMoveTo(t *testing.T) {
	grid := newMockGrid()
	grid.setWall(5, 5)
	cs := NewCollisionSystem(grid)

	tests := []struct {
		name string
		x, z float64
		want bool
	}{
		{"open floor", 2.5, 2.5, true},
		{"centre in wall", 5.5, 5.5, false},
		{"corner overlaps wall", 4.7, 5.5, false},
		{"just clear of wall", 4.6, 5.5, true},
		{"negative coordinates", -3.2, -7.9, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := cs.CanMoveTo(NewBoundingBox(tc.x, tc.z, 0.35))
			if got != tc.want {
				t.Errorf("CanMoveTo(%v, %v) = %v, want %v", tc.x, tc.z, got, tc.want)
			}
		})
	}
}

func TestMoveSlidesAlongWalls(t *testing.T) {
	grid := newMockGrid()
	for x := 0; x < 10; x++ {
		grid.setWall(x, 6)
	}
	cs := NewCollisionSystem(grid)

	res := cs.Move(NewBoundingBox(3.5, 5.5, 0.35), 0.4, 0.4)
	if res.BlockedX {
		t.Error("x movement should not be blocked")
	}
	if !res.BlockedZ {
		t.Error("z movement into the wall should be blocked")
	}
	if math.Abs(res.X-3.9) > 1e-9 || res.Z != 5.5 {
		t.Errorf("position = (%v, %v), want (3.9, 5.5)", res.X, res.Z)
	}
}

func TestMoveUsesUpdatedX(t *testing.T) {
	grid := newMockGrid()
	// a pillar that blocks the diagonal only after x has moved
	grid.setWall(5, 6)
	cs := NewCollisionSystem(grid)

	res := cs.Move(NewBoundingBox(4.5, 5.5, 0.35), 0.5, 0.3)
	if res.BlockedX || !res.BlockedZ {
		t.Fatalf("blocked = (%v, %v), want (false, true)", res.BlockedX, res.BlockedZ)
	}
}

func TestUpdateGrid(t *testing.T) {
	blocked := newMockGrid()
	blocked.setWall(1, 1)
	cs := NewCollisionSystem(blocked)
	box := NewBoundingBox(1.5, 1.5, 0.2)
	if cs.CanMoveTo(box) {
		t.Fatal("expected wall")
	}
	cs.UpdateGrid(newMockGrid())
	if !cs.CanMoveTo(box) {
		t.Fatal("expected open floor after grid swap")
	}
}

func TestBoundingBox(t *testing.T) {
	a := NewBoundingBox(0, 0, 1)
	c := NewBoundingBox(3.5, 0, 1)

	if d := a.Distance(c); d != 3.5 {
		t.Errorf("distance = %v, want 3.5", d)
	}
	moved := a.MoveTo(2, 3)
	if moved.X != 2 || moved.Z != 3 || a.X != 0 {
		t.Errorf("MoveTo = %+v, original %+v", moved, a)
	}
	minX, minZ, maxX, maxZ := moved.GetBounds()
	if minX != 1 || minZ != 2 || maxX != 3 || maxZ != 4 {
		t.Errorf("bounds = %v %v %v %v", minX, minZ, maxX, maxZ)
	}
}
