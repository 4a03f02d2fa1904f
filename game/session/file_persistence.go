package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileArchive implements RunArchive using file system storage, one JSON
// file per completed run
type FileArchive struct {
	runsDir string
}

// NewFileArchive creates a new file-based run archive
func NewFileArchive(runsDir string) (*FileArchive, error) {
	// Create runs directory if it doesn't exist
	if err := os.MkdirAll(runsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runs directory: %w", err)
	}

	return &FileArchive{runsDir: runsDir}, nil
}

// Save persists a run record to a JSON file
func (fa *FileArchive) Save(record *RunRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if record.SessionID == "" {
		return fmt.Errorf("record has no session ID")
	}

	jsonData, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	filePath := fa.getFilePath(record.SessionID)
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write run file: %w", err)
	}

	return nil
}

// Load retrieves a run record from a JSON file
func (fa *FileArchive) Load(sessionID string) (*RunRecord, error) {
	filePath := fa.getFilePath(sessionID)

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	var record RunRecord
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run record: %w", err)
	}

	return &record, nil
}

// Delete removes a run record file
func (fa *FileArchive) Delete(sessionID string) error {
	if !fa.Exists(sessionID) {
		return ErrSessionNotFound
	}

	if err := os.Remove(fa.getFilePath(sessionID)); err != nil {
		return fmt.Errorf("failed to remove run file: %w", err)
	}

	return nil
}

// ListAll returns all archived session IDs
func (fa *FileArchive) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fa.runsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			sessionIDs = append(sessionIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return sessionIDs, nil
}

// Exists checks if a run record exists
func (fa *FileArchive) Exists(sessionID string) bool {
	_, err := os.Stat(fa.getFilePath(sessionID))
	return err == nil
}

// getFilePath returns the full file path for a session ID
func (fa *FileArchive) getFilePath(sessionID string) string {
	return filepath.Join(fa.runsDir, fmt.Sprintf("%s.json", sessionID))
}
