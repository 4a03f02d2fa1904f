package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KeyConfig places a collectible key in the authored map
type KeyConfig struct {
	ID   int    `json:"id"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Clue string `json:"clue"`
}

// DoorConfig places a door in the authored map. Portal doors carry a
// destination; the final door carries the prerequisite door ids.
type DoorConfig struct {
	ID            int   `json:"id"`
	X             int   `json:"x"`
	Y             int   `json:"y"`
	RequiredKey   int   `json:"required_key,omitempty"`
	DestX         int   `json:"dest_x,omitempty"`
	DestY         int   `json:"dest_y,omitempty"`
	Portal        bool  `json:"portal"`
	Final         bool  `json:"final,omitempty"`
	Prerequisites []int `json:"prerequisites,omitempty"`
}

// MessageSet holds the user-facing strings shown by popups and events
type MessageSet struct {
	KeyFoundTitle  string `json:"key_found_title"`
	LockedTitle    string `json:"locked_title"`
	LockedText     string `json:"locked_text"`
	ShortcutDenied string `json:"shortcut_denied"`
	WrongAnswer    string `json:"wrong_answer"`
	WinTitle       string `json:"win_title"`
}

// MazeConfig represents an authored maze loaded from JSON
type MazeConfig struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	TileSize    int          `json:"tile_size"`
	MoveSpeed   int          `json:"move_speed"`
	Layout      []string     `json:"layout"`
	Keys        []KeyConfig  `json:"keys"`
	Doors       []DoorConfig `json:"doors"`
	Messages    MessageSet   `json:"messages"`
}

// ValidateMazeConfig validates a maze configuration for correctness and
// playability. Any failure here is fatal at load time; the engine never
// starts on a malformed map.
func ValidateMazeConfig(config *MazeConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}
	if config.TileSize <= 0 {
		return fmt.Errorf("config validation: tile_size must be positive, got %d", config.TileSize)
	}
	if config.MoveSpeed <= 0 || config.MoveSpeed > config.TileSize {
		return fmt.Errorf("config validation: move_speed must be between 1 and tile_size (%d), got %d",
			config.TileSize, config.MoveSpeed)
	}

	rows := len(config.Layout)
	if rows < MinGridSize || rows > MaxGridSize {
		return fmt.Errorf("config validation: layout must have between %d and %d rows, got %d",
			MinGridSize, MaxGridSize, rows)
	}
	cols := len(config.Layout[0])
	if cols < MinGridSize || cols > MaxGridSize {
		return fmt.Errorf("config validation: layout rows must have between %d and %d columns, got %d",
			MinGridSize, MaxGridSize, cols)
	}

	startCount := 0
	exitCount := 0
	for y, row := range config.Layout {
		if len(row) != cols {
			return fmt.Errorf("config validation: row %d must have %d characters, got %d", y+1, cols, len(row))
		}
		for x, ch := range row {
			switch ch {
			case '#', '.':
			case 'S':
				startCount++
			case 'E':
				exitCount++
			default:
				return fmt.Errorf("config validation: invalid character '%c' at row %d, col %d", ch, y+1, x+1)
			}
		}
	}
	if startCount != 1 {
		return fmt.Errorf("config validation: layout must contain exactly one start (S) tile, got %d", startCount)
	}
	if exitCount != 1 {
		return fmt.Errorf("config validation: layout must contain exactly one exit (E) tile, got %d", exitCount)
	}

	walkable := func(x, y int) bool {
		if y < 0 || y >= rows || x < 0 || x >= cols {
			return false
		}
		return config.Layout[y][x] != '#'
	}

	// Every key and door must sit on its own walkable tile
	occupied := make(map[Position]string)
	keyIDs := make(map[int]bool)
	for _, k := range config.Keys {
		if k.ID <= 0 {
			return fmt.Errorf("config validation: key ids must be positive, got %d", k.ID)
		}
		if keyIDs[k.ID] {
			return fmt.Errorf("config validation: duplicate key id %d", k.ID)
		}
		keyIDs[k.ID] = true
		pos := Position{X: k.X, Y: k.Y}
		if !walkable(k.X, k.Y) {
			return fmt.Errorf("config validation: key %d at (%d,%d) is not on a walkable tile", k.ID, k.X, k.Y)
		}
		if config.Layout[k.Y][k.X] != '.' {
			return fmt.Errorf("config validation: key %d at (%d,%d) overlaps a start or exit tile", k.ID, k.X, k.Y)
		}
		if prev, taken := occupied[pos]; taken {
			return fmt.Errorf("config validation: key %d at (%d,%d) overlaps %s", k.ID, k.X, k.Y, prev)
		}
		occupied[pos] = fmt.Sprintf("key %d", k.ID)
	}

	doorIDs := make(map[int]bool)
	portalIDs := make(map[int]bool)
	finalCount := 0
	for _, d := range config.Doors {
		if d.ID <= 0 {
			return fmt.Errorf("config validation: door ids must be positive, got %d", d.ID)
		}
		if doorIDs[d.ID] {
			return fmt.Errorf("config validation: duplicate door id %d", d.ID)
		}
		doorIDs[d.ID] = true
		pos := Position{X: d.X, Y: d.Y}
		if !walkable(d.X, d.Y) {
			return fmt.Errorf("config validation: door %d at (%d,%d) is not on a walkable tile", d.ID, d.X, d.Y)
		}
		if config.Layout[d.Y][d.X] != '.' {
			return fmt.Errorf("config validation: door %d at (%d,%d) overlaps a start or exit tile", d.ID, d.X, d.Y)
		}
		if prev, taken := occupied[pos]; taken {
			return fmt.Errorf("config validation: door %d at (%d,%d) overlaps %s", d.ID, d.X, d.Y, prev)
		}
		occupied[pos] = fmt.Sprintf("door %d", d.ID)

		if d.RequiredKey != 0 && !keyIDs[d.RequiredKey] {
			return fmt.Errorf("config validation: door %d requires unknown key %d", d.ID, d.RequiredKey)
		}
		if d.Portal {
			portalIDs[d.ID] = true
			if !walkable(d.DestX, d.DestY) {
				return fmt.Errorf("config validation: door %d destination (%d,%d) is not walkable", d.ID, d.DestX, d.DestY)
			}
		} else if d.Final {
			return fmt.Errorf("config validation: door %d is final but not a portal", d.ID)
		}
		if d.Final {
			finalCount++
		}
	}
	if len(config.Doors) > 0 && finalCount != 1 {
		return fmt.Errorf("config validation: exactly one final door is required, got %d", finalCount)
	}
	for _, d := range config.Doors {
		if !d.Final && len(d.Prerequisites) > 0 {
			return fmt.Errorf("config validation: door %d has prerequisites but is not the final door", d.ID)
		}
		for _, pre := range d.Prerequisites {
			if pre == d.ID {
				return fmt.Errorf("config validation: door %d lists itself as a prerequisite", d.ID)
			}
			if !portalIDs[pre] {
				return fmt.Errorf("config validation: door %d prerequisite %d is not a portal door", d.ID, pre)
			}
		}
	}

	// Messages shown by the state machine
	if config.Messages.KeyFoundTitle == "" || !strings.Contains(config.Messages.KeyFoundTitle, "%d") {
		return fmt.Errorf("config validation: messages.key_found_title must contain %%d for the key id")
	}
	if config.Messages.LockedTitle == "" {
		return fmt.Errorf("config validation: messages.locked_title is required")
	}
	if config.Messages.LockedText == "" || !strings.Contains(config.Messages.LockedText, "%d") {
		return fmt.Errorf("config validation: messages.locked_text must contain %%d for the key id")
	}
	if config.Messages.ShortcutDenied == "" {
		return fmt.Errorf("config validation: messages.shortcut_denied is required")
	}
	if config.Messages.WrongAnswer == "" {
		return fmt.Errorf("config validation: messages.wrong_answer is required")
	}
	if config.Messages.WinTitle == "" {
		return fmt.Errorf("config validation: messages.win_title is required")
	}

	return nil
}

// LoadMazeConfig loads a maze configuration from a JSON file
func LoadMazeConfig(filename string) (*MazeConfig, error) {
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config MazeConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateMazeConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a maze configuration by name from the configs directory
func LoadConfigByName(configName string) (*MazeConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	return LoadMazeConfig(configPath)
}

// DefaultMazeConfig returns the classic reference maze: a 20x19 grid with
// three keys, five doors (three portals, two plain locked doors), and an
// exit gated behind the final portal.
func DefaultMazeConfig() *MazeConfig {
	return &MazeConfig{
		Name:        "classic",
		Description: "The classic Maze Escape map: collect keys, answer door quizzes, portal to the exit.",
		TileSize:    DefaultTileSize,
		MoveSpeed:   DefaultMoveSpeed,
		Layout: []string{
			"####################",
			"#S#................#",
			"#.#.##############.#",
			"#.#.#....#.......#.#",
			"#.#.#.##.#######.#.#",
			"#...#.#..#.......#.#",
			"###.#.####.#######.#",
			"#.#...#....#...#...#",
			"#.########.#.#.#.###",
			"#.....#..#.#.#.#...#",
			"#.###.##.#.#.#.###.#",
			"#.#......#...#...#.#",
			"#.######.#######.#.#",
			"#.#....#.#.......#.#",
			"#.#.#.############.#",
			"#...#............#.#",
			"######.#############",
			"#.................E#",
			"####################",
		},
		Keys: []KeyConfig{
			{ID: 1, X: 7, Y: 5, Clue: "The first portal leads to a twisted path."},
			{ID: 2, X: 7, Y: 7, Clue: "The second door requires a sharp mind."},
			{ID: 3, X: 8, Y: 13, Clue: "Only those who have the final key may leave."},
		},
		Doors: []DoorConfig{
			{ID: 1, X: 18, Y: 15, RequiredKey: 1, DestX: 10, DestY: 3, Portal: true},
			{ID: 2, X: 10, Y: 7},
			{ID: 3, X: 10, Y: 13, RequiredKey: 2, DestX: 16, DestY: 15, Portal: true},
			{ID: 4, X: 5, Y: 11},
			{ID: 5, X: 17, Y: 17, RequiredKey: 3, DestX: 18, DestY: 17, Portal: true, Final: true, Prerequisites: []int{1, 3}},
		},
		Messages: MessageSet{
			KeyFoundTitle:  "KEY %d FOUND",
			LockedTitle:    "LOCKED",
			LockedText:     "You need to find KEY %d first!",
			ShortcutDenied: "Use previous portals first!",
			WrongAnswer:    "Wrong! Back to start.",
			WinTitle:       "CONGRATULATIONS!",
		},
	}
}

// InitSessionFromConfig creates the initial session snapshot for a maze.
// The session starts on the menu screen with the player on the start tile.
func InitSessionFromConfig(maze *MapModel) Session {
	start := maze.Start()
	return Session{
		Screen: ScreenMenu,
		Player: Player{
			Tile:   start,
			PX:     start.X * maze.TileSize(),
			PY:     start.Y * maze.TileSize(),
			Target: start,
		},
		CollectedKeys: make(map[int]bool),
		UsedDoors:     make(map[int]bool),
	}
}
