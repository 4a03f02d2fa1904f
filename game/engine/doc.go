// Package engine provides the core game logic for the Maze Escape mini-game.
//
// The engine package implements the game mechanics including:
//   - Static map model: tile grid plus key/door/exit entity records
//   - Grid movement with smooth sub-tile interpolation
//   - Progression gating: keys, locked doors, quiz portals, final exit
//   - The screen state machine (menu, playing, clue, question, win)
//   - Scoring and one-shot score submission
//   - Configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. Session is an immutable snapshot of one
// play-through; every tick or answer produces a new snapshot rather than
// mutating shared state. MazeConfig defines the authored map loaded from
// JSON files.
//
// Usage:
//
//	config := engine.DefaultMazeConfig()
//	questions := fetchQuestionsSomehow()
//
//	game, err := engine.NewEngine(config, questions, playerID, submit)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game.StartGame()
//	snapshot, events := game.Tick(engine.InputState{Right: true})
//
// Game Rules:
//
// The player walks a tile maze collecting keys. Doors block progress: a
// door whose key is missing punts the player back to the start tile, and
// an unused door poses a four-choice quiz question. Correct answers score
// 100 points, mark the door used, and teleport through portal doors.
// The final portal only opens once its prerequisite portals have been
// used, and the exit tile only wins the game after the final portal has
// been used. The engine is frame-driven and single-threaded: the host
// calls Tick once per frame with the sampled key state.
package engine
