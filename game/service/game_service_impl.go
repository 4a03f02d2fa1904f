package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/arcads/maze-escape/game/engine"
)

// DefaultTickInterval drives the realtime simulation at roughly 60 frames
// per second, matching the engine's movement speed constants.
const DefaultTickInterval = time.Second / 60

var ErrNoQuestionSource = errors.New("no question source configured")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions  SessionManager
	configs   ConfigManager
	questions QuestionSource
	scores    ScoreStore

	broadcaster  Broadcaster
	tickInterval time.Duration
	log          *logrus.Logger

	mu      sync.Mutex
	runners map[string]chan struct{}
}

// Option configures optional game service collaborators
type Option func(*gameServiceImpl)

// WithBroadcaster wires a snapshot broadcaster for connected spectators
func WithBroadcaster(b Broadcaster) Option {
	return func(s *gameServiceImpl) { s.broadcaster = b }
}

// SetBroadcaster wires the broadcaster after construction. Transports that
// need the service to exist first use this instead of WithBroadcaster.
func (s *gameServiceImpl) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	s.broadcaster = b
	s.mu.Unlock()
}

// WithTickInterval enables the per-session tick runner. A zero interval
// leaves sessions request-driven: clients advance frames through Step.
func WithTickInterval(interval time.Duration) Option {
	return func(s *gameServiceImpl) { s.tickInterval = interval }
}

// WithLogger sets the service logger
func WithLogger(log *logrus.Logger) Option {
	return func(s *gameServiceImpl) { s.log = log }
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, questions QuestionSource, scores ScoreStore, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions:  sessions,
		configs:   configs,
		questions: questions,
		scores:    scores,
		log:       logrus.StandardLogger(),
		runners:   make(map[string]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "classic"
	if configName == "" {
		return "classic"
	}
	return configName
}

// CreateSession creates a new game session. The question set for the game
// instance is fetched up front; a session never starts without game data.
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	if s.questions == nil {
		return nil, ErrNoQuestionSource
	}

	// Load configuration
	var config *engine.MazeConfig
	var err error
	if req.ConfigName != "" {
		config, err = s.configs.LoadConfig(req.ConfigName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", req.ConfigName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", req.ConfigName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", req.ConfigName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	questions, err := s.questions.Questions(ctx, req.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions for game %s: %w", req.GameID, err)
	}

	// The submission callback closes over the session pointer; it only
	// fires after the run ends, long after sess is assigned.
	var sess *Session
	submit := func(score, elapsed int) {
		go s.submitScore(sess, score, elapsed)
	}

	eng, err := engine.NewEngine(config, questions, req.PlayerID, submit)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	configID := req.ConfigName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	// Let the session manager generate a proper 4-character ID
	sess, err = s.sessions.Create("", configID, req.GameID, req.PlayerID, eng)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if s.tickInterval > 0 {
		s.startRunner(sess)
	}

	return s.sessionInfo(sess, config), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(sess, sess.Engine.Config()), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, nil))
	}

	return result, nil
}

// DeleteSession stops the session's tick runner and removes it
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.stopRunner(sessionID)
	return s.sessions.Delete(sessionID)
}

// StartGame transitions a session from the menu into play
func (s *gameServiceImpl) StartGame(ctx context.Context, sessionID string) (*engine.Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	snap := sess.Start()
	s.broadcast(sessionID, snap)
	return &snap, nil
}

// SetInput records the held-key state for the session's tick runner
func (s *gameServiceImpl) SetInput(ctx context.Context, sessionID string, input engine.InputState) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}

	sess.SetInput(input)
	return nil
}

// Step advances a session by one frame with an explicit input state.
// Request-driven clients use this instead of the tick runner.
func (s *gameServiceImpl) Step(ctx context.Context, sessionID string, input engine.InputState) (*TickResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	snap, events := sess.Step(input)
	s.archiveIfEnded(sessionID, snap)
	if len(events) > 0 {
		s.broadcast(sessionID, snap)
	}

	return &TickResult{Snapshot: snap, Events: events}, nil
}

// Answer resolves the session's active quiz popup
func (s *gameServiceImpl) Answer(ctx context.Context, sessionID string, choice int) (*TickResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	snap, events := sess.Answer(choice)
	s.archiveIfEnded(sessionID, snap)
	s.broadcast(sessionID, snap)

	return &TickResult{Snapshot: snap, Events: events}, nil
}

// Dismiss closes the session's informational popup
func (s *gameServiceImpl) Dismiss(ctx context.Context, sessionID string) (*engine.Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	snap := sess.Dismiss()
	s.broadcast(sessionID, snap)
	return &snap, nil
}

// GetState retrieves the current session snapshot
func (s *gameServiceImpl) GetState(ctx context.Context, sessionID string) (*engine.Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	snap := sess.Snapshot()
	return &snap, nil
}

// Leaderboard returns the best runs recorded for a game instance
func (s *gameServiceImpl) Leaderboard(ctx context.Context, gameID string) ([]*LeaderboardEntry, error) {
	if s.scores == nil {
		return nil, errors.New("no score store configured")
	}
	return s.scores.Leaderboard(ctx, gameID)
}

// ListConfigs returns available maze configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific maze configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.MazeConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a maze configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.MazeConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// sessionInfo builds the API view of a session
func (s *gameServiceImpl) sessionInfo(sess *Session, config *engine.MazeConfig) *SessionInfo {
	snap := sess.Snapshot()
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigName,
		GameID:         sess.GameID,
		PlayerID:       sess.PlayerID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Snapshot:       &snap,
		MazeConfig:     config,
	}
}

// submitScore delivers a finished run to the score store and reports the
// outcome back to the engine. Runs on its own goroutine: a slow or broken
// store never stalls the win transition.
func (s *gameServiceImpl) submitScore(sess *Session, score, elapsed int) {
	logger := s.log.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"game_id":    sess.GameID,
		"player_id":  sess.PlayerID,
		"score":      score,
		"time_taken": elapsed,
	})

	if s.scores == nil {
		logger.Warn("No score store configured, dropping score submission")
		sess.SetSubmissionOutcome(false)
		return
	}

	record := &ScoreRecord{
		StudentID: sess.PlayerID,
		GameID:    sess.GameID,
		Score:     score,
		TimeTaken: elapsed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.scores.SaveScore(ctx, record); err != nil {
		logger.WithError(err).Error("Failed to submit score")
		snap := sess.SetSubmissionOutcome(false)
		s.broadcast(sess.ID, snap)
		return
	}

	logger.Info("Score submitted")
	snap := sess.SetSubmissionOutcome(true)
	s.broadcast(sess.ID, snap)
}

// archiveIfEnded records a completed run. Archiving is idempotent, so
// every post-win call is safe.
func (s *gameServiceImpl) archiveIfEnded(sessionID string, snap engine.Session) {
	if !snap.Ended {
		return
	}
	if err := s.sessions.ArchiveCompleted(sessionID); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("Failed to archive completed run")
	}
}

func (s *gameServiceImpl) broadcast(sessionID string, snap engine.Session) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastState(sessionID, snap)
	}
}

// startRunner launches the session's tick loop
func (s *gameServiceImpl) startRunner(sess *Session) {
	stop := make(chan struct{})

	s.mu.Lock()
	s.runners[sess.ID] = stop
	s.mu.Unlock()

	go s.runTicker(sess, stop)
}

// stopRunner stops a session's tick loop if one is running
func (s *gameServiceImpl) stopRunner(sessionID string) {
	s.mu.Lock()
	stop, ok := s.runners[sessionID]
	if ok {
		delete(s.runners, sessionID)
	}
	s.mu.Unlock()

	if ok {
		close(stop)
	}
}

// runTicker advances the session at the configured frame rate and pushes
// snapshots to spectators whenever something visible changed.
func (s *gameServiceImpl) runTicker(sess *Session, stop chan struct{}) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	var last engine.Session
	archived := false

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			snap, events := sess.Tick()

			if snap.Ended && !archived {
				archived = true
				s.archiveIfEnded(sess.ID, snap)
			}

			if len(events) > 0 || snapshotChanged(last, snap) {
				s.broadcast(sess.ID, snap)
			}
			last = snap
		}
	}
}

// snapshotChanged reports whether two snapshots differ in anything a
// spectator can see
func snapshotChanged(prev, next engine.Session) bool {
	return prev.Screen != next.Screen ||
		prev.Player.PX != next.Player.PX ||
		prev.Player.PY != next.Player.PY ||
		prev.Score != next.Score ||
		prev.Submission != next.Submission
}
