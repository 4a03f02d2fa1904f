package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/arcads/maze-escape/game/engine"
	"github.com/arcads/maze-escape/game/service"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrRunNotCompleted      = errors.New("run not completed")
)

// Manager handles game session lifecycle
type Manager struct {
	sessions map[string]*service.Session
	archive  RunArchive
	log      *logrus.Logger
	mu       sync.RWMutex
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
		log:      logrus.StandardLogger(),
	}
}

// NewManagerWithArchive creates a session manager that records completed
// runs to the given archive
func NewManagerWithArchive(archive RunArchive) *Manager {
	m := NewManager()
	m.archive = archive
	return m
}

// Create creates a new session with the given ID and engine. An empty ID
// gets a generated 4-character one.
func (m *Manager) Create(id, configName, gameID, playerID string, eng *engine.GameEngine) (*service.Session, error) {
	if id == "" {
		id = generateSessionID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Session IDs are case-insensitive
	if _, exists := m.sessions[strings.ToLower(id)]; exists {
		return nil, ErrSessionAlreadyExists
	}

	session := &service.Session{
		ID:             id,
		ConfigName:     configName,
		GameID:         gameID,
		PlayerID:       playerID,
		Engine:         eng,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[strings.ToLower(id)] = session
	return session, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

// Delete removes a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.sessions[lowerID]; !exists {
		return ErrSessionNotFound
	}

	delete(m.sessions, lowerID)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return ErrSessionNotFound
	}

	session.LastAccessedAt = time.Now()
	return nil
}

// ArchiveCompleted records a finished run to the archive. Repeat calls
// overwrite the same record, so post-win callers need not coordinate.
func (m *Manager) ArchiveCompleted(id string) error {
	session, err := m.Get(id)
	if err != nil {
		return err
	}

	snap := session.Snapshot()
	if !snap.Ended {
		return ErrRunNotCompleted
	}

	if m.archive == nil {
		return nil // archiving not configured
	}

	record := &RunRecord{
		SessionID:   session.ID,
		ConfigName:  session.ConfigName,
		GameID:      session.GameID,
		PlayerID:    session.PlayerID,
		Score:       snap.Score,
		TimeTaken:   snap.FinalTime,
		Submission:  snap.Submission,
		CreatedAt:   session.CreatedAt,
		CompletedAt: time.Now(),
	}

	if err := m.archive.Save(record); err != nil {
		return fmt.Errorf("failed to archive run: %w", err)
	}
	return nil
}

// ArchivedRuns returns every run recorded in the archive
func (m *Manager) ArchivedRuns() ([]*RunRecord, error) {
	if m.archive == nil {
		return nil, nil
	}

	ids, err := m.archive.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list archived runs: %w", err)
	}

	var records []*RunRecord
	for _, id := range ids {
		record, err := m.archive.Load(id)
		if err != nil {
			m.log.WithError(err).WithField("session_id", id).Warn("Failed to load archived run")
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in
// the given duration, archiving any completed runs first
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, session := range m.sessions {
		if !session.LastAccessedAt.Before(cutoff) {
			continue
		}

		if m.archive != nil {
			if snap := session.Snapshot(); snap.Ended {
				record := &RunRecord{
					SessionID:   session.ID,
					ConfigName:  session.ConfigName,
					GameID:      session.GameID,
					PlayerID:    session.PlayerID,
					Score:       snap.Score,
					TimeTaken:   snap.FinalTime,
					Submission:  snap.Submission,
					CreatedAt:   session.CreatedAt,
					CompletedAt: time.Now(),
				}
				if err := m.archive.Save(record); err != nil {
					m.log.WithError(err).WithField("session_id", session.ID).Warn("Failed to archive expired run")
				}
			}
		}

		delete(m.sessions, id)
		removed++
	}

	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID generates a random 4-character session ID
func generateSessionID() string {
	// 2 random bytes, 4 hex characters
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
