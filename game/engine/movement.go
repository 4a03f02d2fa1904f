package engine

// Mover converts directional input into discrete tile-to-tile transitions
// with smooth sub-tile interpolation. It reads the map for walkability and
// owns the player record inside each session snapshot.
type Mover struct {
	maze *MapModel
}

// NewMover creates a movement engine bound to a maze
func NewMover(maze *MapModel) *Mover {
	return &Mover{maze: maze}
}

// Tick advances the player by one frame and reports whether the player
// arrived on a new tile this tick.
//
// While in transit the sub-tile offset steps toward the target at the
// configured speed, clamped so it lands exactly; the tile position commits
// only on arrival, so no progression event can fire mid-transition. When
// idle, at most one held direction is honored (left, right, up, down
// precedence) and a transition begins only onto a non-wall tile.
func (mv *Mover) Tick(p Player, in InputState) (Player, bool) {
	if p.Moving {
		size := mv.maze.TileSize()
		speed := mv.maze.MoveSpeed()
		targetPX := p.Target.X * size
		targetPY := p.Target.Y * size

		p.PX = stepToward(p.PX, targetPX, speed)
		p.PY = stepToward(p.PY, targetPY, speed)

		if p.PX == targetPX && p.PY == targetPY {
			p.Tile = p.Target
			p.Moving = false
			return p, true
		}
		return p, false
	}

	dir, held := in.Direction()
	if !held {
		return p, false
	}

	dx, dy := dir.Delta()
	candidate := Position{X: p.Tile.X + dx, Y: p.Tile.Y + dy}
	if !mv.maze.Walkable(candidate) {
		return p, false
	}

	p.Moving = true
	p.Target = candidate
	return p, false
}

// Place moves the player instantly onto a tile, clearing any transition.
// Used for teleports and punitive resets.
func (mv *Mover) Place(p Player, pos Position) Player {
	size := mv.maze.TileSize()
	p.Tile = pos
	p.Target = pos
	p.PX = pos.X * size
	p.PY = pos.Y * size
	p.Moving = false
	return p
}

// stepToward moves cur one clamped step toward target
func stepToward(cur, target, speed int) int {
	if cur < target {
		cur += speed
		if cur > target {
			cur = target
		}
	} else if cur > target {
		cur -= speed
		if cur < target {
			cur = target
		}
	}
	return cur
}
