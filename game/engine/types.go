package engine

import "time"

// TileKind represents different kinds of maze tiles
type TileKind string

const (
	TilePath TileKind = "path"
	TileWall TileKind = "wall"
	TileKey  TileKind = "key"
	TileDoor TileKind = "door"
	TileExit TileKind = "exit"

	// Gameplay constants
	DefaultTileSize    = 30
	DefaultMoveSpeed   = 4
	ScorePerQuestion   = 100
	ChoicesPerQuestion = 4

	// Validation constants
	MinGridSize         = 5
	MaxGridSize         = 50
	WebSocketBufferSize = 256
)

// Position represents x,y grid coordinates (column, row)
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is one of the four cardinal movement directions
type Direction string

const (
	DirLeft  Direction = "left"
	DirRight Direction = "right"
	DirUp    Direction = "up"
	DirDown  Direction = "down"
)

// Delta returns the tile offset for the direction
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	}
	return 0, 0
}

// Valid reports whether d is one of the four cardinal directions
func (d Direction) Valid() bool {
	switch d {
	case DirLeft, DirRight, DirUp, DirDown:
		return true
	}
	return false
}

// InputState is the level-triggered held-key state sampled once per tick.
type InputState struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Up    bool `json:"up"`
	Down  bool `json:"down"`
}

// Direction resolves the held keys into at most one direction per tick.
// When several keys are held, precedence is left, right, up, down. The
// order is load-bearing for input compatibility with existing clients.
func (in InputState) Direction() (Direction, bool) {
	switch {
	case in.Left:
		return DirLeft, true
	case in.Right:
		return DirRight, true
	case in.Up:
		return DirUp, true
	case in.Down:
		return DirDown, true
	}
	return "", false
}

// Key is a collectible key placed on a path tile. Collecting it unlocks
// the door(s) that name its ID as their requirement.
type Key struct {
	ID       int      `json:"id"`
	Position Position `json:"position"`
	Clue     string   `json:"clue"`
}

// Door is a gated tile. Portal doors teleport to Destination once their
// quiz has been answered; the single final door additionally requires its
// prerequisite doors to be used before it teleports to the exit.
type Door struct {
	ID            int      `json:"id"`
	Position      Position `json:"position"`
	RequiredKey   int      `json:"required_key,omitempty"` // 0 means no key required
	Destination   Position `json:"destination,omitempty"`
	Portal        bool     `json:"portal"`
	Final         bool     `json:"final,omitempty"`
	Prerequisites []int    `json:"prerequisites,omitempty"`
}

// Question is a four-choice quiz question attached to a door
type Question struct {
	Text    string    `json:"question_text"`
	Choices [4]string `json:"choices"`
	Correct int       `json:"correct_answer"`
}

// Player holds the player's grid tile, sub-tile pixel offset, and the
// in-flight transition target. Exactly one instance exists per session.
type Player struct {
	Tile   Position `json:"tile"`
	PX     int      `json:"px"`
	PY     int      `json:"py"`
	Moving bool     `json:"moving"`
	Target Position `json:"target"`
}

// Screen identifies the current game screen
type Screen string

const (
	ScreenMenu     Screen = "menu"
	ScreenPlaying  Screen = "playing"
	ScreenClue     Screen = "clue"
	ScreenQuestion Screen = "question"
	ScreenWin      Screen = "win"
)

// PopupKind identifies the overlay currently shown on top of the board
type PopupKind string

const (
	PopupClue     PopupKind = "clue"
	PopupQuestion PopupKind = "question"
	PopupWin      PopupKind = "win"
)

// Popup is the variant payload rendered as an overlay. Clue popups carry a
// title and text, question popups carry the quiz for a door, and the win
// popup carries the final score and elapsed time.
type Popup struct {
	Kind     PopupKind `json:"kind"`
	Title    string    `json:"title,omitempty"`
	Text     string    `json:"text,omitempty"`
	DoorID   int       `json:"door_id,omitempty"`
	Question *Question `json:"question,omitempty"`
	Score    int       `json:"score,omitempty"`
	Time     int       `json:"time,omitempty"`
}

// SubmissionStatus tracks the one-shot score submission outcome
type SubmissionStatus string

const (
	SubmissionNone      SubmissionStatus = ""
	SubmissionSkipped   SubmissionStatus = "skipped"
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionSucceeded SubmissionStatus = "succeeded"
	SubmissionFailed    SubmissionStatus = "failed"
)

// Session is an immutable snapshot of a single play-through. Transitions
// never mutate a snapshot in place; each tick or answer produces a new
// value derived from the previous one.
type Session struct {
	Screen        Screen           `json:"screen"`
	Player        Player           `json:"player"`
	CollectedKeys map[int]bool     `json:"collected_keys"`
	UsedDoors     map[int]bool     `json:"used_doors"`
	Score         int              `json:"score"`
	StartTime     time.Time        `json:"start_time"`
	Ended         bool             `json:"ended"`
	Popup         *Popup           `json:"popup,omitempty"`
	Submission    SubmissionStatus `json:"submission,omitempty"`
	FinalTime     int              `json:"final_time,omitempty"`
}

// Clone returns a deep copy of the session so callers can hold snapshots
// without aliasing the engine's current key/door sets.
func (s Session) Clone() Session {
	out := s
	out.CollectedKeys = copySet(s.CollectedKeys)
	out.UsedDoors = copySet(s.UsedDoors)
	if s.Popup != nil {
		popup := *s.Popup
		out.Popup = &popup
	}
	return out
}

// withKeyCollected returns a copy with the key marked collected
func (s Session) withKeyCollected(id int) Session {
	out := s
	out.CollectedKeys = copySet(s.CollectedKeys)
	out.CollectedKeys[id] = true
	return out
}

// withDoorUsed returns a copy with the door marked used
func (s Session) withDoorUsed(id int) Session {
	out := s
	out.UsedDoors = copySet(s.UsedDoors)
	out.UsedDoors[id] = true
	return out
}

func copySet(set map[int]bool) map[int]bool {
	out := make(map[int]bool, len(set))
	for k, v := range set {
		out[k] = v
	}
	return out
}

// EventKind classifies events emitted by the progression gate
type EventKind string

const (
	EventClueFound      EventKind = "clue_found"
	EventDoorLocked     EventKind = "door_locked"
	EventQuizRequired   EventKind = "quiz_required"
	EventQuizCorrect    EventKind = "quiz_correct"
	EventQuizWrong      EventKind = "quiz_wrong"
	EventTeleport       EventKind = "teleport"
	EventShortcutDenied EventKind = "shortcut_denied"
	EventWin            EventKind = "win"
)

// Event records a single progression outcome for transports and tests
type Event struct {
	Kind        EventKind `json:"kind"`
	KeyID       int       `json:"key_id,omitempty"`
	DoorID      int       `json:"door_id,omitempty"`
	RequiredKey int       `json:"required_key,omitempty"`
	Position    Position  `json:"position,omitempty"`
	Message     string    `json:"message,omitempty"`
}
