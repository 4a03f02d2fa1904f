// Package service provides the business logic layer for the Maze Escape
// mini-game.
//
// The service package implements:
//   - Multi-session game management
//   - Question fetching for game instances
//   - Frame advancement: per-session tick runners and request-driven steps
//   - Score submission and leaderboard access
//   - Configuration management and loading
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager handles session creation, retrieval, and
// lifecycle. ConfigManager manages maze configuration loading and
// validation. QuestionSource and ScoreStore connect the game to the
// educational platform that authors the quizzes and records the scores.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the game engine, providing session isolation, question plumbing, and
// business logic orchestration. Each session maintains its own game engine
// instance with independent state, wrapped behind a mutex so the tick
// runner, transports, and the score submission callback can share it.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, store, store,
//		service.WithTickInterval(service.DefaultTickInterval))
//
//	// Create a new session
//	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{
//		GameID:   "42",
//		PlayerID: "student-7",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Drive the game
//	gameService.StartGame(ctx, info.ID)
//	gameService.SetInput(ctx, info.ID, engine.InputState{Right: true})
//
// Frame Advancement:
//
// With a tick interval configured, every session gets a runner goroutine
// that advances the engine at a fixed rate using the last input reported
// through SetInput, broadcasting snapshots to spectators. Without one,
// sessions are request-driven: clients advance frames explicitly through
// Step. The two modes share the same engine semantics.
//
// Score Submission:
//
// When a run ends, the engine fires its one-shot submission callback. The
// service delivers the score to the ScoreStore on a separate goroutine and
// reports the outcome back to the session; a slow or broken store never
// stalls the win transition.
package service
