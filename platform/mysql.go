package platform

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/arcads/maze-escape/game/engine"
	"github.com/arcads/maze-escape/game/service"
)

// leaderboardLimit caps leaderboard queries, matching the platform backend
const leaderboardLimit = 50

// MySQLStore implements Store against the platform's MySQL database. It
// reads the game_questions table the teacher dashboard writes, inserts
// into scores, and joins student for leaderboard display names.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore opens a connection pool to the platform database
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &MySQLStore{db: db}, nil
}

// Close releases the connection pool
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

// Questions returns the question set authored for a game instance, in
// authoring order
func (s *MySQLStore) Questions(ctx context.Context, gameID string) ([]engine.Question, error) {
	const query = `
		SELECT question_text, choice_a, choice_b, choice_c, choice_d, correct_answer
		FROM game_questions
		WHERE game_id = ?
		ORDER BY question_id`

	rows, err := s.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []engine.Question
	for rows.Next() {
		var row QuestionRow
		if err := rows.Scan(&row.QuestionText, &row.ChoiceA, &row.ChoiceB, &row.ChoiceC, &row.ChoiceD, &row.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, row.ToQuestion())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: game %s", ErrNoQuestions, gameID)
	}
	return questions, nil
}

// SaveScore inserts a finished run into the scores table
func (s *MySQLStore) SaveScore(ctx context.Context, record *service.ScoreRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}

	const query = `
		INSERT INTO scores (student_fid, game_id, score, time_taken)
		VALUES (?, ?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, record.StudentID, record.GameID, record.Score, record.TimeTaken); err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}
	return nil
}

// Leaderboard returns the best runs for a game instance, best score first
// and fastest time breaking ties
func (s *MySQLStore) Leaderboard(ctx context.Context, gameID string) ([]*service.LeaderboardEntry, error) {
	const query = `
		SELECT s.student_name, s.student_surname, sc.score, sc.time_taken
		FROM scores sc
		JOIN student s ON sc.student_fid = s.student_fid
		WHERE sc.game_id = ?
		ORDER BY sc.score DESC, sc.time_taken ASC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, gameID, leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*service.LeaderboardEntry
	for rows.Next() {
		var entry service.LeaderboardEntry
		if err := rows.Scan(&entry.StudentName, &entry.StudentSurname, &entry.Score, &entry.TimeTaken); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	return entries, nil
}
