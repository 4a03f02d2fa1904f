package session

import (
	"time"

	"github.com/arcads/maze-escape/game/engine"
)

// RunArchive defines the interface for recording completed runs
type RunArchive interface {
	// Save persists a run record, overwriting any previous record for
	// the same session
	Save(record *RunRecord) error

	// Load retrieves a run record by session ID
	Load(sessionID string) (*RunRecord, error)

	// Delete removes a run record
	Delete(sessionID string) error

	// ListAll returns all archived session IDs
	ListAll() ([]string, error)

	// Exists checks if a run record exists
	Exists(sessionID string) bool
}

// RunRecord is the JSON structure for an archived run
type RunRecord struct {
	SessionID   string                  `json:"session_id"`
	ConfigName  string                  `json:"config_name"`
	GameID      string                  `json:"game_id"`
	PlayerID    string                  `json:"player_id,omitempty"`
	Score       int                     `json:"score"`
	TimeTaken   int                     `json:"time_taken"`
	Submission  engine.SubmissionStatus `json:"submission,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	CompletedAt time.Time               `json:"completed_at"`
}
