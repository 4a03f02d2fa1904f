// Package session provides session management for the Maze Escape mini-game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management and expiration
//   - Archiving of completed runs
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each stored session wraps its own engine instance with metadata like the
// game instance, the authenticated player, creation time, and last access
// time. RunArchive records finished runs; FileArchive is the file-backed
// implementation, one JSON file per run.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. The manager treats
// IDs case-insensitively and generates them with cryptographic randomness.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and modify different
// sessions simultaneously. Internal locking ensures data consistency.
//
// Usage:
//
//	archive, err := session.NewFileArchive("runs")
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithArchive(archive)
//
//	// Create a new session
//	sess, err := manager.Create("", "classic", gameID, playerID, eng)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sess.ID)
//
// Cleanup:
//
// Sessions can be explicitly deleted or expire based on inactivity.
// CleanupExpiredSessions archives any completed run before dropping the
// session from memory.
package session
