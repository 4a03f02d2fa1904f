package platform

import (
	"errors"

	"github.com/arcads/maze-escape/game/engine"
	"github.com/arcads/maze-escape/game/service"
)

// Store is the slice of the educational platform the game needs: the quiz
// questions a teacher authored for a game instance, and the score table
// the leaderboard is built from.
type Store interface {
	service.QuestionSource
	service.ScoreStore
}

// ErrNoQuestions is returned when a game instance has no authored
// questions. A session cannot start without game data.
var ErrNoQuestions = errors.New("no game data: game instance has no questions")

// QuestionRow mirrors one game_questions record in the wire format the
// platform stores and serves it: one column per choice.
type QuestionRow struct {
	QuestionText  string `json:"question_text"`
	ChoiceA       string `json:"choice_a"`
	ChoiceB       string `json:"choice_b"`
	ChoiceC       string `json:"choice_c"`
	ChoiceD       string `json:"choice_d"`
	CorrectAnswer int    `json:"correct_answer"`
}

// ToQuestion converts a platform row to the engine's question type
func (r QuestionRow) ToQuestion() engine.Question {
	return engine.Question{
		Text:    r.QuestionText,
		Choices: [4]string{r.ChoiceA, r.ChoiceB, r.ChoiceC, r.ChoiceD},
		Correct: r.CorrectAnswer,
	}
}

// NewQuestionRow converts an engine question to the platform wire format
func NewQuestionRow(q engine.Question) QuestionRow {
	return QuestionRow{
		QuestionText:  q.Text,
		ChoiceA:       q.Choices[0],
		ChoiceB:       q.Choices[1],
		ChoiceC:       q.Choices[2],
		ChoiceD:       q.Choices[3],
		CorrectAnswer: q.Correct,
	}
}
