// Package world holds the tile grid and entity data the renderer reads each frame.
package world

// Tile values stored in the grid.
const (
	TileEmpty = 0
	TileWall  = 1
	TileExit  = 2
)

// TileGrid answers tile lookups in world units. Coordinates outside the grid
// are open (TileEmpty), never wall.
type TileGrid interface {
	TileAt(x, z int) int
}

// Grid expands a coarse cell map into world units. Each wall cell becomes a
// one-unit-thick wall line along its origin edges, extended towards wall
// neighbours to the right and below.
type Grid struct {
	cells  [][]int // cells[z][x], coarse
	scale  int
	width  int // world units
	height int // world units
	tiles  []int
}

// NewGrid builds the world-unit tile grid for cells at the given scale.
func NewGrid(cells [][]int, scale int) *Grid {
	if scale <= 0 {
		scale = 1
	}
	g := &Grid{
		cells: cells,
		scale: scale,
	}
	g.rebuild()
	return g
}

// TileAt returns the tile at world position (x, z).
func (g *Grid) TileAt(x, z int) int {
	if x < 0 || z < 0 || x >= g.width || z >= g.height {
		return TileEmpty
	}
	return g.tiles[x+z*g.width]
}

// Size returns the grid extent in world units.
func (g *Grid) Size() (int, int) {
	return g.width, g.height
}

// CellSize returns the coarse map size in cells.
func (g *Grid) CellSize() (int, int) {
	if len(g.cells) == 0 {
		return 0, 0
	}
	return len(g.cells[0]), len(g.cells)
}

// Scale returns the number of world units per coarse cell.
func (g *Grid) Scale() int {
	return g.scale
}

// CellAt returns the coarse cell at (cx, cz); outside the map counts as wall.
func (g *Grid) CellAt(cx, cz int) int {
	if cz < 0 || cz >= len(g.cells) || cx < 0 || cx >= len(g.cells[cz]) {
		return TileWall
	}
	return g.cells[cz][cx]
}

// OpenExit turns every exit cell into floor. It reports whether anything changed.
func (g *Grid) OpenExit() bool {
	changed := false
	for z := range g.cells {
		for x := range g.cells[z] {
			if g.cells[z][x] == TileExit {
				g.cells[z][x] = TileEmpty
				changed = true
			}
		}
	}
	if changed {
		g.rebuild()
	}
	return changed
}

func solid(cell int) bool {
	return cell == TileWall || cell == TileExit
}

func (g *Grid) rebuild() {
	rows := len(g.cells)
	cols := 0
	if rows > 0 {
		cols = len(g.cells[0])
	}
	g.width = cols * g.scale
	g.height = rows * g.scale
	g.tiles = make([]int, g.width*g.height)

	for z := 0; z < rows; z++ {
		for x := 0; x < cols; x++ {
			cell := g.cells[z][x]
			if !solid(cell) {
				continue
			}
			px, pz := x*g.scale, z*g.scale
			g.tiles[px+pz*g.width] = cell

			if x+1 < cols && solid(g.cells[z][x+1]) {
				fill := TileWall
				if cell == TileExit && g.cells[z][x+1] == TileExit {
					fill = TileExit
				}
				for i := 1; i < g.scale; i++ {
					g.tiles[(px+i)+pz*g.width] = fill
				}
			}
			if z+1 < rows && solid(g.cells[z+1][x]) {
				fill := TileWall
				if cell == TileExit && g.cells[z+1][x] == TileExit {
					fill = TileExit
				}
				for i := 1; i < g.scale; i++ {
					g.tiles[px+(pz+i)*g.width] = fill
				}
			}
		}
	}
}
