package platform

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/arcads/maze-escape/game/engine"
	"github.com/arcads/maze-escape/game/service"
)

// MemoryStore is an in-memory Store for tests and development mode
type MemoryStore struct {
	mu        sync.RWMutex
	questions map[string][]engine.Question
	scores    []*service.ScoreRecord
	students  map[string]studentName
}

type studentName struct {
	Name    string
	Surname string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		questions: make(map[string][]engine.Question),
		students:  make(map[string]studentName),
	}
}

// AddQuestions registers the question set for a game instance
func (m *MemoryStore) AddQuestions(gameID string, questions []engine.Question) {
	m.mu.Lock()
	m.questions[gameID] = questions
	m.mu.Unlock()
}

// AddStudent registers a student name for leaderboard display
func (m *MemoryStore) AddStudent(studentID, name, surname string) {
	m.mu.Lock()
	m.students[studentID] = studentName{Name: name, Surname: surname}
	m.mu.Unlock()
}

// Questions returns the question set for a game instance
func (m *MemoryStore) Questions(ctx context.Context, gameID string) ([]engine.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	questions, ok := m.questions[gameID]
	if !ok || len(questions) == 0 {
		return nil, fmt.Errorf("%w: game %s", ErrNoQuestions, gameID)
	}

	result := make([]engine.Question, len(questions))
	copy(result, questions)
	return result, nil
}

// SaveScore records a finished run
func (m *MemoryStore) SaveScore(ctx context.Context, record *service.ScoreRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}

	m.mu.Lock()
	saved := *record
	m.scores = append(m.scores, &saved)
	m.mu.Unlock()
	return nil
}

// Leaderboard returns the best runs for a game instance, best score first
// and fastest time breaking ties, at most 50 rows. Scores for unknown
// students are skipped, matching the platform's inner join.
func (m *MemoryStore) Leaderboard(ctx context.Context, gameID string) ([]*service.LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []*service.LeaderboardEntry
	for _, record := range m.scores {
		if record.GameID != gameID {
			continue
		}
		student, ok := m.students[record.StudentID]
		if !ok {
			continue
		}
		entries = append(entries, &service.LeaderboardEntry{
			StudentName:    student.Name,
			StudentSurname: student.Surname,
			Score:          record.Score,
			TimeTaken:      record.TimeTaken,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].TimeTaken < entries[j].TimeTaken
	})

	if len(entries) > leaderboardLimit {
		entries = entries[:leaderboardLimit]
	}
	return entries, nil
}

// ScoreCount returns the number of recorded scores
func (m *MemoryStore) ScoreCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.scores)
}
