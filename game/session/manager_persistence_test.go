package session

import (
	"testing"
	"time"
)

func TestManager_ArchiveCompleted(t *testing.T) {
	archive, err := NewFileArchive(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}
	manager := NewManagerWithArchive(archive)

	sess, _ := manager.Create("ab12", "classic", "42", "student-7", createTestEngine(t))
	playToCompletion(t, sess.Engine)

	if err := manager.ArchiveCompleted("ab12"); err != nil {
		t.Fatalf("Failed to archive run: %v", err)
	}

	record, err := archive.Load("ab12")
	if err != nil {
		t.Fatalf("Failed to load archived run: %v", err)
	}
	if record.SessionID != "ab12" || record.ConfigName != "classic" || record.GameID != "42" {
		t.Errorf("Unexpected record identity: %+v", record)
	}
	if record.PlayerID != "student-7" {
		t.Errorf("Expected player id kept, got %q", record.PlayerID)
	}
	if record.Score != 100 {
		t.Errorf("Expected score 100 from the single quiz, got %d", record.Score)
	}
	if record.CompletedAt.IsZero() {
		t.Error("Expected completion timestamp")
	}

	// Repeat archiving overwrites the same record
	if err := manager.ArchiveCompleted("ab12"); err != nil {
		t.Errorf("Expected idempotent archive, got %v", err)
	}
}

func TestManager_ArchivedRuns(t *testing.T) {
	archive, _ := NewFileArchive(t.TempDir())
	manager := NewManagerWithArchive(archive)

	for _, id := range []string{"ab12", "cd34"} {
		sess, _ := manager.Create(id, "classic", "42", "", createTestEngine(t))
		playToCompletion(t, sess.Engine)
		if err := manager.ArchiveCompleted(id); err != nil {
			t.Fatalf("Failed to archive %s: %v", id, err)
		}
	}

	records, err := manager.ArchivedRuns()
	if err != nil {
		t.Fatalf("Failed to list archived runs: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 archived runs, got %d", len(records))
	}
}

func TestManager_CleanupArchivesCompletedRuns(t *testing.T) {
	archive, _ := NewFileArchive(t.TempDir())
	manager := NewManagerWithArchive(archive)

	finished, _ := manager.Create("old1", "classic", "42", "", createTestEngine(t))
	playToCompletion(t, finished.Engine)
	finished.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	abandoned, _ := manager.Create("old2", "classic", "42", "", createTestEngine(t))
	abandoned.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	if removed != 2 {
		t.Errorf("Expected 2 removed sessions, got %d", removed)
	}

	// Only the completed run is archived
	if !archive.Exists("old1") {
		t.Error("Expected completed run archived")
	}
	if archive.Exists("old2") {
		t.Error("Expected abandoned run not archived")
	}
}
