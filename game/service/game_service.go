package service

import (
	"context"
	"sync"
	"time"

	"github.com/arcads/maze-escape/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	StartGame(ctx context.Context, sessionID string) (*engine.Session, error)
	SetInput(ctx context.Context, sessionID string, input engine.InputState) error
	Step(ctx context.Context, sessionID string, input engine.InputState) (*TickResult, error)
	Answer(ctx context.Context, sessionID string, choice int) (*TickResult, error)
	Dismiss(ctx context.Context, sessionID string) (*engine.Session, error)
	GetState(ctx context.Context, sessionID string) (*engine.Session, error)

	// Platform Data
	Leaderboard(ctx context.Context, gameID string) ([]*LeaderboardEntry, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.MazeConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.MazeConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, configName, gameID, playerID string, eng *engine.GameEngine) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	ArchiveCompleted(id string) error
	Count() int
}

// ConfigManager handles maze configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.MazeConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.MazeConfig
	SaveConfig(name string, config *engine.MazeConfig) error
}

// QuestionSource fetches the quiz questions authored for a game instance
type QuestionSource interface {
	Questions(ctx context.Context, gameID string) ([]engine.Question, error)
}

// ScoreStore records finished runs and serves leaderboards
type ScoreStore interface {
	SaveScore(ctx context.Context, record *ScoreRecord) error
	Leaderboard(ctx context.Context, gameID string) ([]*LeaderboardEntry, error)
}

// Broadcaster pushes session snapshots to connected spectators
type Broadcaster interface {
	BroadcastState(sessionID string, snapshot engine.Session)
}

// BroadcasterSetter is implemented by services whose broadcaster is wired
// after construction, once the transport hub exists. Wire it before the
// first session is created.
type BroadcasterSetter interface {
	SetBroadcaster(b Broadcaster)
}

// Session represents an active game session. It wraps the single-threaded
// engine behind a mutex so the tick runner, transports, and the score
// submission callback can share it safely.
type Session struct {
	ID             string
	ConfigName     string
	GameID         string
	PlayerID       string
	Engine         *engine.GameEngine
	CreatedAt      time.Time
	LastAccessedAt time.Time

	mu    sync.Mutex
	input engine.InputState
}

// SetInput records the held-key state. Input is level-triggered: it stays
// in effect for every subsequent tick until replaced.
func (s *Session) SetInput(input engine.InputState) {
	s.mu.Lock()
	s.input = input
	s.mu.Unlock()
}

// Tick advances the engine one frame using the stored input state
func (s *Session) Tick() (engine.Session, []engine.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Engine.Tick(s.input)
}

// Step advances the engine one frame with an explicit input, bypassing
// the stored input state. Used by request-driven clients.
func (s *Session) Step(input engine.InputState) (engine.Session, []engine.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Engine.Tick(input)
}

// Start begins the run
func (s *Session) Start() engine.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Engine.StartGame()
}

// Answer resolves the active quiz popup
func (s *Session) Answer(choice int) (engine.Session, []engine.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Engine.Answer(choice)
}

// Dismiss closes an informational popup
func (s *Session) Dismiss() engine.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Engine.Dismiss()
}

// Snapshot returns the current session snapshot
func (s *Session) Snapshot() engine.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Engine.Snapshot()
}

// SetSubmissionOutcome records the score submission result
func (s *Session) SetSubmissionOutcome(ok bool) engine.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Engine.SetSubmissionOutcome(ok)
}
