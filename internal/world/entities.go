package world

// Point is a position on the floor plane in world units.
type Point struct {
	X, Z float64
}

// Snapshot lists entity positions for one frame. List order is significant:
// the renderer breaks distance ties in favour of the earlier entry.
type Snapshot struct {
	Enemies []Point
	Items   []Point
}

// Clone copies the snapshot so later updates do not leak into a frame in progress.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Enemies: append([]Point(nil), s.Enemies...),
		Items:   append([]Point(nil), s.Items...),
	}
}

// RemoveItem drops the item at index i, keeping the order of the rest.
func (s *Snapshot) RemoveItem(i int) {
	if i < 0 || i >= len(s.Items) {
		return
	}
	s.Items = append(s.Items[:i], s.Items[i+1:]...)
}
