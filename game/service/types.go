package service

import (
	"time"

	"github.com/arcads/maze-escape/game/engine"
)

// CreateSessionRequest carries the parameters for a new game session
type CreateSessionRequest struct {
	ConfigName string `json:"config_name,omitempty"`
	GameID     string `json:"game_id"`
	PlayerID   string `json:"player_id,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	GameID         string             `json:"game_id"`
	PlayerID       string             `json:"player_id,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Snapshot       *engine.Session    `json:"snapshot"`
	MazeConfig     *engine.MazeConfig `json:"maze_config,omitempty"`
}

// TickResult contains the snapshot and events produced by one frame or
// one answer resolution
type TickResult struct {
	Snapshot engine.Session `json:"snapshot"`
	Events   []engine.Event `json:"events,omitempty"`
}

// ConfigInfo provides information about a maze configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Cols        int    `json:"cols"`
	Rows        int    `json:"rows"`
	Keys        int    `json:"keys"`
	Doors       int    `json:"doors"`
}

// ScoreRecord is a finished run submitted to the score store. Field names
// follow the platform's scores table.
type ScoreRecord struct {
	StudentID string `json:"student_fid"`
	GameID    string `json:"game_id"`
	Score     int    `json:"score"`
	TimeTaken int    `json:"time_taken"`
}

// LeaderboardEntry is one row of a game's leaderboard, best score first
type LeaderboardEntry struct {
	StudentName    string `json:"student_name"`
	StudentSurname string `json:"student_surname"`
	Score          int    `json:"score"`
	TimeTaken      int    `json:"time_taken"`
}
