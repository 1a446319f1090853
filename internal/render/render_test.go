package render

import (
	"math"
	"testing"

	"mazecaster/internal/config"
	"mazecaster/internal/texture"
	"mazecaster/internal/world"
)

const (
	wallColor  uint32 = 0xFF804020
	grateColor uint32 = 0xFF208040
	floorColor uint32 = 0xFF406080
	frontColor uint32 = 0xFF110000
	backColor  uint32 = 0xFF220000
	leftColor  uint32 = 0xFF330000
	rightColor uint32 = 0xFF440000
)

// gridFunc adapts a function to world.TileGrid.
type gridFunc func(x, z int) int

func (f gridFunc) TileAt(x, z int) int { return f(x, z) }

var emptyGrid = gridFunc(func(int, int) int { return world.TileEmpty })

// boxGrid encloses [1, size) on both axes with walls at 0 and size.
func boxGrid(size int) gridFunc {
	return func(x, z int) int {
		if x < 0 || z < 0 || x > size || z > size {
			return world.TileEmpty
		}
		if x == 0 || z == 0 || x == size || z == size {
			return world.TileWall
		}
		return world.TileEmpty
	}
}

func solid(col uint32) *texture.Texture {
	t := texture.New(8, 8)
	for i := range t.Pixels {
		t.Pixels[i] = col
	}
	return t
}

func testStore() *texture.Store {
	s := texture.NewStore()
	s.Set(texture.Wall, solid(wallColor))
	s.Set(texture.Grate, solid(grateColor))
	s.Set(texture.Floor, solid(floorColor))
	s.Set(texture.EnemyFront, solid(frontColor))
	s.Set(texture.EnemyBack, solid(backColor))
	s.Set(texture.EnemyLeft, solid(leftColor))
	s.Set(texture.EnemyRight, solid(rightColor))
	return s
}

func testConfig(width, height int) *config.Config {
	cfg := config.Default()
	cfg.Display.ScreenWidth = width
	cfg.Display.ScreenHeight = height
	return cfg
}

func newTestRenderer(t *testing.T, width, height int) *Renderer {
	t.Helper()
	r := NewRenderer(testConfig(width, height), testStore())
	t.Cleanup(r.Close)
	return r
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEmptyRegionNeverHits(t *testing.T) {
	r := newTestRenderer(t, 64, 48)
	positions := []struct{ x, z float64 }{
		{0.5, 0.5}, {100.25, -3.75}, {-50, -50}, {3, 7}, {1e4, 2e4},
	}
	for _, p := range positions {
		for yaw := 0.0; yaw < 2*math.Pi; yaw += 0.37 {
			cam := Camera{X: p.x, Z: p.z, Yaw: yaw}
			for col := 0; col < 64; col++ {
				if hit, ok := r.CastColumn(emptyGrid, cam, col); ok {
					t.Fatalf("unexpected hit at %+v col %d: %+v", cam, col, hit)
				}
			}
		}
	}
}

func TestEnclosedCellHitsInOneStep(t *testing.T) {
	r := newTestRenderer(t, 64, 48)
	grid := world.NewGrid([][]int{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	}, 1)

	for _, pos := range [][2]float64{{1.5, 1.5}, {1.2, 1.7}, {1.9, 1.1}} {
		for yaw := 0.0; yaw < 2*math.Pi; yaw += 0.21 {
			cam := Camera{X: pos[0], Z: pos[1], Yaw: yaw}
			for col := 0; col < 64; col++ {
				hit, ok := r.CastColumn(grid, cam, col)
				if !ok {
					t.Fatalf("no hit at %+v col %d", cam, col)
				}
				if hit.Steps != 1 {
					t.Fatalf("hit took %d steps at %+v col %d", hit.Steps, cam, col)
				}
			}
		}
	}
}

func TestEnclosedCellAxisAlignedDistances(t *testing.T) {
	r := newTestRenderer(t, 64, 48)
	grid := world.NewGrid([][]int{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	}, 1)
	center := 32 // cameraX == 0

	tests := []struct {
		name string
		yaw  float64
		want float64
	}{
		{"facing +z", 0, 2 - 1.7},
		{"facing +x", math.Pi / 2, 2 - 1.2},
		{"facing -z", math.Pi, 1.7 - 1},
		{"facing -x", 3 * math.Pi / 2, 1.2 - 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := Camera{X: 1.2, Z: 1.7, Yaw: tc.yaw}
			hit, ok := r.CastColumn(grid, cam, center)
			if !ok {
				t.Fatal("no hit")
			}
			if math.Abs(hit.Distance-tc.want) > 1e-9 {
				t.Errorf("distance = %v, want %v", hit.Distance, tc.want)
			}
		})
	}
}

func TestThreeByThreeRoomFixture(t *testing.T) {
	cells := [][]int{
		{1, 1, 1, 1, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 1, 1},
	}
	const width = 64

	for _, scale := range []int{1, 10} {
		s := float64(scale)
		grid := world.NewGrid(cells, scale)
		cfg := testConfig(width, 48)
		cfg.Render.MaxWallDistance = 1e6
		r := NewRenderer(cfg, testStore())

		cam := Camera{X: 2.5 * s, Z: 2.5 * s, Yaw: 0}

		hit, ok := r.CastColumn(grid, cam, width/2)
		if !ok {
			t.Fatalf("scale %d: center column missed", scale)
		}
		if !approx(hit.Distance, 1.5*s) {
			t.Errorf("scale %d: center distance = %v, want %v", scale, hit.Distance, 1.5*s)
		}
		if hit.Side != SideZ {
			t.Errorf("scale %d: center side = %v, want SideZ", scale, hit.Side)
		}

		// the outermost columns hit the same far wall, so the perpendicular
		// distance is unchanged while the ray itself is longer
		for _, col := range []int{0, width - 1} {
			edge, ok := r.CastColumn(grid, cam, col)
			if !ok {
				t.Fatalf("scale %d: column %d missed", scale, col)
			}
			if !approx(edge.Distance, 1.5*s) {
				t.Errorf("scale %d: column %d distance = %v, want %v", scale, col, edge.Distance, 1.5*s)
			}
			cameraX := 2*float64(col)/float64(width) - 1
			wantLen := 1.5 * s * math.Sqrt(1+cameraX*cameraX)
			if math.Abs(edge.RayLength()-wantLen) > 1e-9 {
				t.Errorf("scale %d: column %d ray length = %v, want %v", scale, col, edge.RayLength(), wantLen)
			}
			if edge.RayLength() <= hit.RayLength() {
				t.Errorf("scale %d: edge ray %v not longer than center %v", scale, edge.RayLength(), hit.RayLength())
			}
		}
		r.Close()
	}
}

func TestDepthRoundTrip(t *testing.T) {
	const width, height = 40, 120
	r := newTestRenderer(t, width, height)
	grid := boxGrid(20)
	cam := Camera{X: 10.3, Z: 4.6, Yaw: 0.4}

	frame := r.Render(Scene{Grid: grid, Camera: cam})

	for col := 0; col < width; col++ {
		hit, ok := r.CastColumn(grid, cam, col)
		if !ok {
			t.Fatalf("column %d missed inside box", col)
		}
		lineHeight := r.projectedHeight(hit.Distance)
		start := max(height/2-lineHeight/2, 0)
		end := min(height/2+lineHeight/2, height)
		if start >= end {
			t.Fatalf("column %d has empty span", col)
		}
		for y := start; y < end; y++ {
			if got := frame.DepthAt(col, y); got != hit.Distance {
				t.Fatalf("depth(%d,%d) = %v, want %v", col, y, got, hit.Distance)
			}
		}
	}
}

func TestWallTextureSelection(t *testing.T) {
	const width, height = 16, 64
	r := newTestRenderer(t, width, height)
	grid := gridFunc(func(x, z int) int {
		if z == 5 {
			return world.TileExit
		}
		if z == -5 {
			return world.TileWall
		}
		return world.TileEmpty
	})

	frame := r.Render(Scene{Grid: grid, Camera: Camera{X: 0.5, Z: 0.5}})
	if got := frame.Pixel(width/2, height/2); got != grateColor&0xFFFFFF {
		t.Errorf("exit tile drew %#06x, want grate %#06x", got, grateColor&0xFFFFFF)
	}

	frame = r.Render(Scene{Grid: grid, Camera: Camera{X: 0.5, Z: 0.5, Yaw: math.Pi}})
	if got := frame.Pixel(width/2, height/2); got != wallColor&0xFFFFFF {
		t.Errorf("wall tile drew %#06x, want wall %#06x", got, wallColor&0xFFFFFF)
	}
}

func TestTextureColumnMirroring(t *testing.T) {
	tests := []struct {
		name string
		hit  WallHit
		want int
	}{
		{"x side looking +x", WallHit{Side: SideX, RayX: 1, WallX: 0.25}, 47},
		{"x side looking -x", WallHit{Side: SideX, RayX: -1, WallX: 0.25}, 16},
		{"z side looking +z", WallHit{Side: SideZ, RayZ: 1, WallX: 0.25}, 16},
		{"z side looking -z", WallHit{Side: SideZ, RayZ: -1, WallX: 0.25}, 47},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.hit.TextureColumn(64); got != tc.want {
				t.Errorf("TextureColumn = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTexelRowStaysInRange(t *testing.T) {
	for span := 1; span < 3000; span += 37 {
		for offset := int64(-100000); offset < 1000000; offset += 4099 {
			row := texelRow(offset, span, 64)
			if row < 0 || row >= 64 {
				t.Fatalf("texelRow(%d, %d) = %d out of range", offset, span, row)
			}
		}
	}
	if texelRow(100, 0, 64) != 0 {
		t.Error("zero span should map to row 0")
	}
}

func TestRayDirectionGuardsZeroComponents(t *testing.T) {
	r := newTestRenderer(t, 64, 48)
	grid := boxGrid(10)
	// the centre column facing +z has an exactly zero x component, and the
	// camera sits on grid lines
	cam := Camera{X: 5, Z: 5, Yaw: 0}
	dirX, _ := cam.RayDirection(32, 64, 1)
	if dirX != 0 {
		t.Fatalf("expected zero x component, got %v", dirX)
	}
	hit, ok := r.CastColumn(grid, cam, 32)
	if !ok || hit.Side != SideZ || !approx(hit.Distance, 5) {
		t.Fatalf("hit = %+v ok=%v, want z wall at 5", hit, ok)
	}
	if math.IsNaN(hit.WallX) || math.IsInf(hit.WallX, 0) {
		t.Fatalf("wallX not finite: %v", hit.WallX)
	}
}

func TestFrameDepthsFiniteAndNonNegative(t *testing.T) {
	const width, height = 32, 50
	r := newTestRenderer(t, width, height)
	cams := []Camera{
		{X: 5.5, Z: 5.5},
		{X: -123.4, Z: -7.9, Yaw: 2},
		{X: 5.5, Z: 5.5, Height: 12, Pitch: 13.5},
		{X: 5.5, Z: 5.5, Height: -9, Pitch: -40},
		{X: 5, Z: 5, Pitch: 0.25},
	}
	for _, cam := range cams {
		frame := r.Render(Scene{Grid: boxGrid(10), Camera: cam})
		for i, d := range frame.Depth {
			if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
				t.Fatalf("camera %+v: depth[%d] = %v", cam, i, d)
			}
		}
		for i, c := range frame.Color {
			if c > 0xFFFFFF {
				t.Fatalf("camera %+v: color[%d] = %#x has alpha bits", cam, i, c)
			}
		}
	}
}

func TestFloorAndCeilingPlanes(t *testing.T) {
	const width, height = 20, 600
	r := newTestRenderer(t, width, height)
	frame := r.Render(Scene{Grid: emptyGrid, Camera: Camera{X: 3.5, Z: 3.5}})

	// horizon row is guarded, not infinite
	if got := frame.DepthAt(10, height/2); got != r.render.FloorCutoff {
		t.Errorf("horizon depth = %v, want cutoff %v", got, r.render.FloorCutoff)
	}
	if got := frame.Pixel(10, height/2); got != 0 {
		t.Errorf("horizon pixel = %#x, want black", got)
	}

	// plane distance = planeHeight / |rowFactor|
	bottom := frame.DepthAt(10, height-1)
	want := r.render.PlaneHeight / (float64(height-1-height/2) / height)
	if !approx(bottom, want) {
		t.Errorf("floor depth = %v, want %v", bottom, want)
	}
	top := frame.DepthAt(10, 0)
	want = r.render.PlaneHeight / 0.5
	if !approx(top, want) {
		t.Errorf("ceiling depth = %v, want %v", top, want)
	}
	if got := frame.Pixel(10, height-1); got != floorColor&0xFFFFFF {
		t.Errorf("near floor color = %#x, want %#x", got, floorColor&0xFFFFFF)
	}
}

func TestFloorCutoffIsBlack(t *testing.T) {
	const width, height = 20, 600
	cfg := testConfig(width, height)
	cfg.Render.FloorCutoff = 20
	r := NewRenderer(cfg, testStore())
	defer r.Close()

	frame := r.Render(Scene{Grid: emptyGrid, Camera: Camera{X: 3.5, Z: 3.5}})
	for y := 0; y < height; y++ {
		d := frame.DepthAt(5, y)
		if d > 20 && frame.Pixel(5, y) != 0 {
			t.Fatalf("row %d at depth %v beyond cutoff is not black", y, d)
		}
	}
}

func TestPooledRenderMatchesSequential(t *testing.T) {
	const width, height = 48, 90
	scene := Scene{
		Grid: boxGrid(30),
		Entities: world.Snapshot{
			Enemies: []world.Point{{X: 12, Z: 20}},
			Items:   []world.Point{{X: 14, Z: 12}, {X: 9, Z: 16}},
		},
		Camera: Camera{X: 11.3, Z: 3.7, Yaw: 0.2, Height: 0.3, Pitch: 4},
	}

	seq := newTestRenderer(t, width, height)
	want := seq.Render(scene)

	cfg := testConfig(width, height)
	cfg.Render.Workers = 4
	pooled := NewRenderer(cfg, testStore())
	defer pooled.Close()
	got := pooled.Render(scene)

	for i := range want.Color {
		if want.Color[i] != got.Color[i] || want.Depth[i] != got.Depth[i] {
			t.Fatalf("pixel %d differs: seq (%#x, %v) pooled (%#x, %v)",
				i, want.Color[i], want.Depth[i], got.Color[i], got.Depth[i])
		}
	}
}
