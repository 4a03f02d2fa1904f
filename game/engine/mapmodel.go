package engine

import (
	"fmt"
	"sort"
)

// Tile is one cell of the maze grid. Key and Door tiles carry their entity
// record so that tile kind and entity data can never disagree.
type Tile struct {
	Kind TileKind `json:"kind"`
	Key  *Key     `json:"key,omitempty"`
	Door *Door    `json:"door,omitempty"`
}

// MapModel is the static authored maze: the tile grid, the key and door
// records, and the start and exit tiles. It is immutable after
// construction; collected/used status lives on the session snapshot.
type MapModel struct {
	grid     [][]Tile
	cols     int
	rows     int
	start    Position
	exit     Position
	keys     map[int]*Key
	doors    map[int]*Door
	doorIDs  []int
	finalID  int
	tileSize int
	speed    int
}

// NewMapModel builds a MapModel from a validated configuration. A config
// that fails validation produces a construction error and no model.
func NewMapModel(config *MazeConfig) (*MapModel, error) {
	if err := ValidateMazeConfig(config); err != nil {
		return nil, err
	}

	rows := len(config.Layout)
	cols := len(config.Layout[0])

	m := &MapModel{
		cols:     cols,
		rows:     rows,
		keys:     make(map[int]*Key),
		doors:    make(map[int]*Door),
		tileSize: config.TileSize,
		speed:    config.MoveSpeed,
	}

	m.grid = make([][]Tile, rows)
	for y := 0; y < rows; y++ {
		m.grid[y] = make([]Tile, cols)
		for x := 0; x < cols; x++ {
			switch config.Layout[y][x] {
			case '#':
				m.grid[y][x] = Tile{Kind: TileWall}
			case 'S':
				m.grid[y][x] = Tile{Kind: TilePath}
				m.start = Position{X: x, Y: y}
			case 'E':
				m.grid[y][x] = Tile{Kind: TileExit}
				m.exit = Position{X: x, Y: y}
			default:
				m.grid[y][x] = Tile{Kind: TilePath}
			}
		}
	}

	for _, kc := range config.Keys {
		key := &Key{ID: kc.ID, Position: Position{X: kc.X, Y: kc.Y}, Clue: kc.Clue}
		m.keys[key.ID] = key
		m.grid[kc.Y][kc.X] = Tile{Kind: TileKey, Key: key}
	}

	for _, dc := range config.Doors {
		door := &Door{
			ID:            dc.ID,
			Position:      Position{X: dc.X, Y: dc.Y},
			RequiredKey:   dc.RequiredKey,
			Destination:   Position{X: dc.DestX, Y: dc.DestY},
			Portal:        dc.Portal,
			Final:         dc.Final,
			Prerequisites: append([]int(nil), dc.Prerequisites...),
		}
		m.doors[door.ID] = door
		m.doorIDs = append(m.doorIDs, door.ID)
		m.grid[dc.Y][dc.X] = Tile{Kind: TileDoor, Door: door}
		if door.Final {
			m.finalID = door.ID
		}
	}
	sort.Ints(m.doorIDs)

	return m, nil
}

// Cols returns the grid width in tiles
func (m *MapModel) Cols() int { return m.cols }

// Rows returns the grid height in tiles
func (m *MapModel) Rows() int { return m.rows }

// TileSize returns the tile edge length in pixels
func (m *MapModel) TileSize() int { return m.tileSize }

// MoveSpeed returns the per-tick sub-tile step in pixels
func (m *MapModel) MoveSpeed() int { return m.speed }

// Start returns the start tile position
func (m *MapModel) Start() Position { return m.start }

// Exit returns the exit tile position
func (m *MapModel) Exit() Position { return m.exit }

// TileAt returns the tile at the given position; out of bounds is a wall
func (m *MapModel) TileAt(pos Position) Tile {
	if pos.Y < 0 || pos.Y >= m.rows || pos.X < 0 || pos.X >= m.cols {
		return Tile{Kind: TileWall}
	}
	return m.grid[pos.Y][pos.X]
}

// KindAt returns the tile kind at the given position
func (m *MapModel) KindAt(pos Position) TileKind {
	return m.TileAt(pos).Kind
}

// Walkable reports whether the player may occupy the given tile
func (m *MapModel) Walkable(pos Position) bool {
	return m.KindAt(pos) != TileWall
}

// KeyByID returns the key record with the given id
func (m *MapModel) KeyByID(id int) (*Key, bool) {
	key, ok := m.keys[id]
	return key, ok
}

// DoorByID returns the door record with the given id
func (m *MapModel) DoorByID(id int) (*Door, bool) {
	door, ok := m.doors[id]
	return door, ok
}

// DoorIDs returns all door ids in ascending order
func (m *MapModel) DoorIDs() []int {
	return append([]int(nil), m.doorIDs...)
}

// FinalDoorID returns the id of the final door, or 0 when the map has none
func (m *MapModel) FinalDoorID() int { return m.finalID }

// KeyCount returns the number of keys in the maze
func (m *MapModel) KeyCount() int { return len(m.keys) }

// DoorCount returns the number of doors in the maze
func (m *MapModel) DoorCount() int { return len(m.doors) }

// String renders the maze as layout characters, useful in logs and tests
func (m *MapModel) String() string {
	out := make([]byte, 0, (m.cols+1)*m.rows)
	for y := 0; y < m.rows; y++ {
		for x := 0; x < m.cols; x++ {
			switch m.grid[y][x].Kind {
			case TileWall:
				out = append(out, '#')
			case TileExit:
				out = append(out, 'E')
			case TileKey:
				out = append(out, 'K')
			case TileDoor:
				out = append(out, 'D')
			default:
				if (Position{X: x, Y: y}) == m.start {
					out = append(out, 'S')
				} else {
					out = append(out, '.')
				}
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}

// mapQuestions assigns the ordered question list to door ids ascending.
// The question source contract is one entry per door id; anything shorter
// is treated as missing game data.
func mapQuestions(m *MapModel, questions []Question) (map[int]Question, error) {
	ids := m.DoorIDs()
	if len(questions) == 0 {
		return nil, fmt.Errorf("no game data: question set is empty")
	}
	if len(questions) < len(ids) {
		return nil, fmt.Errorf("no game data: %d questions for %d doors", len(questions), len(ids))
	}
	byDoor := make(map[int]Question, len(ids))
	for i, id := range ids {
		q := questions[i]
		if q.Correct < 0 || q.Correct >= ChoicesPerQuestion {
			return nil, fmt.Errorf("no game data: question %d has invalid correct answer %d", i+1, q.Correct)
		}
		byDoor[id] = q
	}
	return byDoor, nil
}
