package engine

// CountTileKind counts the tiles of a specific kind in the maze
func CountTileKind(m *MapModel, kind TileKind) int {
	count := 0
	for y := 0; y < m.Rows(); y++ {
		for x := 0; x < m.Cols(); x++ {
			if m.KindAt(Position{X: x, Y: y}) == kind {
				count++
			}
		}
	}
	return count
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// ReachableFrom flood-fills the maze from a position, treating every
// non-wall tile as passable (gating ignored). Used by the analysis and
// validation tooling to prove that keys, doors, and the exit can be
// walked to at all.
func ReachableFrom(m *MapModel, from Position) map[Position]bool {
	visited := make(map[Position]bool)
	if !m.Walkable(from) {
		return visited
	}

	queue := []Position{from}
	visited[from] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range []Direction{DirLeft, DirRight, DirUp, DirDown} {
			dx, dy := d.Delta()
			next := Position{X: cur.X + dx, Y: cur.Y + dy}
			if visited[next] || !m.Walkable(next) {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return visited
}
