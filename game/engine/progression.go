package engine

import "fmt"

// Gate is the progression rules engine for keys, doors, portals, and the
// exit. It consumes tile arrivals, decides what is required and what is
// unlocked, and emits the events the state machine reacts to.
type Gate struct {
	maze      *Mover
	model     *MapModel
	questions map[int]Question
	messages  MessageSet
}

// NewGate creates a progression gate for a maze. The questions map is
// keyed by door id and must contain one entry per door.
func NewGate(model *MapModel, mover *Mover, questions map[int]Question, messages MessageSet) *Gate {
	return &Gate{
		maze:      mover,
		model:     model,
		questions: questions,
		messages:  messages,
	}
}

// QuestionFor returns the quiz question attached to a door
func (g *Gate) QuestionFor(doorID int) (Question, bool) {
	q, ok := g.questions[doorID]
	return q, ok
}

// EvaluateTile resolves the tile the player just arrived on.
//
// Resolution order: key pickup first, then door gating, then the exit.
// A locked door punitively resets the player to the start tile; that is
// deliberate game design, not an error path.
func (g *Gate) EvaluateTile(s Session) (Session, []Event) {
	tile := g.model.TileAt(s.Player.Tile)

	switch tile.Kind {
	case TileKey:
		key := tile.Key
		if s.CollectedKeys[key.ID] {
			return s, nil // already collected, behaves as path
		}
		s = s.withKeyCollected(key.ID)
		return s, []Event{{
			Kind:     EventClueFound,
			KeyID:    key.ID,
			Position: key.Position,
			Message:  key.Clue,
		}}

	case TileDoor:
		return g.evaluateDoor(s, tile.Door)

	case TileExit:
		return g.evaluateExit(s)
	}

	return s, nil
}

// evaluateDoor applies the door gating rules on arrival
func (g *Gate) evaluateDoor(s Session, door *Door) (Session, []Event) {
	if door.RequiredKey != 0 && !s.CollectedKeys[door.RequiredKey] {
		// Punitive reset: back to start, door stays unused
		s.Player = g.maze.Place(s.Player, g.model.Start())
		return s, []Event{{
			Kind:        EventDoorLocked,
			DoorID:      door.ID,
			RequiredKey: door.RequiredKey,
			Position:    door.Position,
			Message:     fmt.Sprintf(g.messages.LockedText, door.RequiredKey),
		}}
	}

	if !s.UsedDoors[door.ID] {
		return s, []Event{{
			Kind:     EventQuizRequired,
			DoorID:   door.ID,
			Position: door.Position,
		}}
	}

	return g.resolveDestination(s, door)
}

// evaluateExit fires the win condition when, and only when, the final
// door has already been used. Otherwise the exit tile is inert path.
func (g *Gate) evaluateExit(s Session) (Session, []Event) {
	finalID := g.model.FinalDoorID()
	if finalID == 0 || !s.UsedDoors[finalID] || s.Ended {
		return s, nil
	}
	return s, []Event{{Kind: EventWin, Position: g.model.Exit()}}
}

// resolveDestination resolves where an already-used door leads.
//
// Plain doors lead nowhere. Ordinary portals teleport to their
// destination. The final portal only teleports once every prerequisite
// door has been used; an early shortcut attempt is rejected with a reset.
func (g *Gate) resolveDestination(s Session, door *Door) (Session, []Event) {
	if !door.Portal {
		return s, nil
	}

	if door.Final {
		for _, pre := range door.Prerequisites {
			if !s.UsedDoors[pre] {
				s.Player = g.maze.Place(s.Player, g.model.Start())
				return s, []Event{{
					Kind:     EventShortcutDenied,
					DoorID:   door.ID,
					Position: door.Position,
					Message:  g.messages.ShortcutDenied,
				}}
			}
		}
	}

	s.Player = g.maze.Place(s.Player, door.Destination)
	events := []Event{{
		Kind:     EventTeleport,
		DoorID:   door.ID,
		Position: door.Destination,
	}}

	// A portal that drops the player on the exit resolves the win gate
	// immediately; arrival is arrival, walked or teleported.
	if door.Destination == g.model.Exit() {
		var winEvents []Event
		s, winEvents = g.evaluateExit(s)
		events = append(events, winEvents...)
	}

	return s, events
}

// AnswerQuiz resolves a quiz answer for the door in the active question
// popup. A correct answer scores, marks the door used, and resolves the
// door's destination. A wrong answer resets the player to the start tile
// and leaves the door unused with no score change.
func (g *Gate) AnswerQuiz(s Session, choice int) (Session, []Event) {
	if s.Popup == nil || s.Popup.Kind != PopupQuestion {
		return s, nil
	}
	doorID := s.Popup.DoorID
	door, ok := g.model.DoorByID(doorID)
	if !ok {
		return s, nil
	}
	q, ok := g.questions[doorID]
	if !ok {
		return s, nil
	}

	if choice != q.Correct {
		s.Player = g.maze.Place(s.Player, g.model.Start())
		return s, []Event{{
			Kind:     EventQuizWrong,
			DoorID:   doorID,
			Position: g.model.Start(),
			Message:  g.messages.WrongAnswer,
		}}
	}

	s.Score += ScorePerQuestion
	s = s.withDoorUsed(doorID)
	events := []Event{{
		Kind:     EventQuizCorrect,
		DoorID:   doorID,
		Position: door.Position,
	}}

	s, destEvents := g.resolveDestination(s, door)
	return s, append(events, destEvents...)
}
