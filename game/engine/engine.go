package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for maze game operations
type Engine interface {
	// Session state
	Snapshot() Session
	Screen() Screen
	Score() int
	PlayerPosition() Position
	Ended() bool

	// Game operations
	StartGame() Session
	Tick(in InputState) (Session, []Event)
	Answer(choice int) (Session, []Event)
	Dismiss() Session

	// Scoring
	SetSubmissionOutcome(ok bool) Session

	// Static data
	Map() *MapModel
	Config() *MazeConfig
}

// GameEngine implements the Engine interface. It is single-threaded and
// frame-driven: the host calls Tick once per rendered frame with the
// sampled key state, and Answer/Dismiss in response to overlay input.
type GameEngine struct {
	config  *MazeConfig
	model   *MapModel
	mover   *Mover
	gate    *Gate
	machine *Machine
	scoring *ScoringSession
	session Session
	clock   func() time.Time
}

// NewEngine creates a maze engine from a configuration and the question
// set fetched for this game instance. Construction fails on a malformed
// map or an incomplete question set; the engine never starts without
// game data.
func NewEngine(config *MazeConfig, questions []Question, playerID string, submit SubmitFunc) (*GameEngine, error) {
	model, err := NewMapModel(config)
	if err != nil {
		return nil, fmt.Errorf("failed to build map: %w", err)
	}

	byDoor, err := mapQuestions(model, questions)
	if err != nil {
		return nil, err
	}

	mover := NewMover(model)
	gate := NewGate(model, mover, byDoor, config.Messages)
	scoring := NewScoringSession(playerID, submit)

	e := &GameEngine{
		config:  config,
		model:   model,
		mover:   mover,
		gate:    gate,
		scoring: scoring,
		clock:   time.Now,
	}
	e.machine = NewMachine(gate, config.Messages, func() time.Time { return e.clock() })
	e.session = InitSessionFromConfig(model)
	return e, nil
}

// setClock swaps the time source, used by tests for deterministic timing
func (e *GameEngine) setClock(clock func() time.Time) {
	e.clock = clock
}

// Snapshot returns a deep copy of the current session snapshot
func (e *GameEngine) Snapshot() Session {
	return e.session.Clone()
}

// Screen returns the current screen
func (e *GameEngine) Screen() Screen {
	return e.session.Screen
}

// Score returns the current score
func (e *GameEngine) Score() int {
	return e.session.Score
}

// PlayerPosition returns the player's current grid tile
func (e *GameEngine) PlayerPosition() Position {
	return e.session.Player.Tile
}

// Ended reports whether the run has completed
func (e *GameEngine) Ended() bool {
	return e.session.Ended
}

// Map returns the static map model
func (e *GameEngine) Map() *MapModel {
	return e.model
}

// Config returns the maze configuration
func (e *GameEngine) Config() *MazeConfig {
	return e.config
}

// StartGame transitions from the menu into play and starts the run timer
func (e *GameEngine) StartGame() Session {
	next := e.machine.StartGame(e.session)
	if next.Screen == ScreenPlaying && e.session.Screen == ScreenMenu {
		e.scoring.Begin(next.StartTime)
	}
	e.session = next
	return e.Snapshot()
}

// Tick advances the simulation by one frame. Movement and tile events
// only happen while the screen is playing; every other screen freezes
// the simulation and ignores directional input.
func (e *GameEngine) Tick(in InputState) (Session, []Event) {
	if e.session.Screen != ScreenPlaying {
		return e.Snapshot(), nil
	}

	next := e.session
	player, arrived := e.mover.Tick(next.Player, in)
	next.Player = player

	var events []Event
	if arrived {
		next, events = e.gate.EvaluateTile(next)
		next = e.machine.Apply(next, events)
		next = e.finishIfWon(e.session, next)
	}

	e.session = next
	return e.Snapshot(), events
}

// Answer resolves the active quiz popup with the chosen answer index
func (e *GameEngine) Answer(choice int) (Session, []Event) {
	if e.session.Screen != ScreenQuestion {
		return e.Snapshot(), nil
	}

	next, events := e.gate.AnswerQuiz(e.session, choice)
	next = e.machine.Apply(next, events)
	next = e.finishIfWon(e.session, next)

	e.session = next
	return e.Snapshot(), events
}

// Dismiss closes an informational popup and resumes play
func (e *GameEngine) Dismiss() Session {
	e.session = e.machine.Dismiss(e.session)
	return e.Snapshot()
}

// SetSubmissionOutcome records the score submission result reported by
// the host and reflects it on the snapshot for display.
func (e *GameEngine) SetSubmissionOutcome(ok bool) Session {
	e.session.Submission = e.scoring.SetOutcome(ok)
	return e.Snapshot()
}

// finishIfWon triggers the one-shot score submission when this
// transition crossed into the terminal win state.
func (e *GameEngine) finishIfWon(prev, next Session) Session {
	if next.Ended && !prev.Ended {
		next.Submission = e.scoring.Finish(next.Score, e.clock())
	}
	return next
}
