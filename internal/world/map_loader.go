package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Map symbols understood by LoadLevel.
const (
	symbolWall  = '#'
	symbolFloor = '.'
	symbolExit  = 'E'
	symbolSpawn = '@'
	symbolEnemy = 'm'
	symbolItem  = '*'
)

// Level is a loaded maze: the tile grid plus spawn, exit and starting entities.
type Level struct {
	Grid     *Grid
	Spawn    Point
	Exit     Point
	HasExit  bool
	Entities Snapshot
}

// LoadLevel loads a level from a text map file. Lines starting with "//" and
// blank lines are skipped.
func LoadLevel(mapPath string, scale int) (*Level, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	level, err := ParseLevel(file, scale)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", mapPath, err)
	}
	return level, nil
}

// ParseLevel reads a text map from r.
func ParseLevel(r io.Reader, scale int) (*Level, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %d", scale)
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("map contains no valid map data")
	}

	width := len(lines[0])
	for i, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("line %d has inconsistent width: expected %d, got %d", i+1, width, len(line))
		}
	}

	s := float64(scale)
	center := func(x, z int) Point {
		return Point{X: (float64(x) + 0.5) * s, Z: (float64(z) + 0.5) * s}
	}

	cells := make([][]int, len(lines))
	level := &Level{}
	hasSpawn := false
	var exitSum Point
	exitCount := 0

	for z, line := range lines {
		cells[z] = make([]int, width)
		for x, ch := range line {
			switch ch {
			case symbolWall:
				cells[z][x] = TileWall
			case symbolExit:
				cells[z][x] = TileExit
				c := center(x, z)
				exitSum.X += c.X
				exitSum.Z += c.Z
				exitCount++
			case symbolFloor:
			case symbolSpawn:
				level.Spawn = center(x, z)
				hasSpawn = true
			case symbolEnemy:
				level.Entities.Enemies = append(level.Entities.Enemies, center(x, z))
			case symbolItem:
				level.Entities.Items = append(level.Entities.Items, center(x, z))
			default:
				return nil, fmt.Errorf("line %d: unknown map symbol %q", z+1, ch)
			}
		}
	}

	if !hasSpawn {
		return nil, fmt.Errorf("map has no spawn point %q", symbolSpawn)
	}
	if exitCount > 0 {
		level.HasExit = true
		level.Exit = Point{X: exitSum.X / float64(exitCount), Z: exitSum.Z / float64(exitCount)}
	}

	level.Grid = NewGrid(cells, scale)
	return level, nil
}
