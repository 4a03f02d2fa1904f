package engine

import (
	"fmt"
	"time"
)

// Machine owns the screen state: menu -> playing -> {clue, question} ->
// playing -> win (terminal). Clue and question are overlay sub-states;
// simulation advances only while the screen is playing.
//
// Every transition is a pure function from a session snapshot plus events
// to a new snapshot.
type Machine struct {
	gate     *Gate
	messages MessageSet
	clock    func() time.Time
}

// NewMachine creates a state machine driven by gate events
func NewMachine(gate *Gate, messages MessageSet, clock func() time.Time) *Machine {
	if clock == nil {
		clock = time.Now
	}
	return &Machine{gate: gate, messages: messages, clock: clock}
}

// StartGame transitions menu -> playing and arms the run timer
func (m *Machine) StartGame(s Session) Session {
	if s.Screen != ScreenMenu {
		return s
	}
	s.Screen = ScreenPlaying
	s.Score = 0
	s.StartTime = m.clock()
	s.Popup = nil
	return s
}

// Dismiss closes an informational popup, returning clue -> playing.
// Question popups exit only through an answer; the win screen is terminal.
func (m *Machine) Dismiss(s Session) Session {
	if s.Screen != ScreenClue {
		return s
	}
	s.Screen = ScreenPlaying
	s.Popup = nil
	return s
}

// Apply folds gate events into the session, producing the next screen and
// overlay. Later events override earlier ones, so a correct answer
// followed by a shortcut denial lands on the clue popup, and one followed
// by a win lands on the terminal win screen.
func (m *Machine) Apply(s Session, events []Event) Session {
	for _, ev := range events {
		switch ev.Kind {
		case EventClueFound:
			s.Screen = ScreenClue
			s.Popup = &Popup{
				Kind:  PopupClue,
				Title: fmt.Sprintf(m.messages.KeyFoundTitle, ev.KeyID),
				Text:  ev.Message,
			}

		case EventDoorLocked:
			s.Screen = ScreenClue
			s.Popup = &Popup{
				Kind:  PopupClue,
				Title: m.messages.LockedTitle,
				Text:  ev.Message,
			}

		case EventShortcutDenied:
			s.Screen = ScreenClue
			s.Popup = &Popup{
				Kind:  PopupClue,
				Title: m.messages.LockedTitle,
				Text:  ev.Message,
			}

		case EventQuizRequired:
			q, ok := m.gate.QuestionFor(ev.DoorID)
			if !ok {
				continue
			}
			s.Screen = ScreenQuestion
			s.Popup = &Popup{
				Kind:     PopupQuestion,
				DoorID:   ev.DoorID,
				Question: &q,
			}

		case EventQuizCorrect, EventQuizWrong:
			s.Screen = ScreenPlaying
			s.Popup = nil

		case EventWin:
			// Terminal. Ended flips true exactly once; the gate never
			// re-emits a win for an ended session.
			s.Ended = true
			s.FinalTime = int(m.clock().Sub(s.StartTime).Seconds())
			s.Screen = ScreenWin
			s.Popup = &Popup{
				Kind:  PopupWin,
				Title: m.messages.WinTitle,
				Score: s.Score,
				Time:  s.FinalTime,
			}
		}
	}
	return s
}
