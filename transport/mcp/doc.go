// Package mcp exposes the maze game to AI agents over the Model Context
// Protocol.
//
// The package is a thin proxy: every tool call is translated into one or
// more REST calls against the game server, and the JSON responses are
// rendered as text an agent can reason about (an ASCII maze with the
// player, keys, and doors overlaid, plus the open popup if any).
//
// MCP Tools:
//   - create_session: Create a session for a game instance
//   - start_game: Leave the menu and begin the run
//   - game_state: Render the maze and current progress
//   - walk: Walk one or more tiles in a direction
//   - answer_question: Answer the quiz popup at a door
//   - dismiss_popup: Close a clue or information popup
//   - get_session / list_sessions: Inspect sessions
//   - list_configs: List available mazes
//   - leaderboard: Best runs for a game instance
//   - game_instructions: Full rules and map legend
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: The /mcp endpoint on the game server for remote integration
//
// The walk tool deserves a note: the engine simulates sub-tile movement
// frame by frame, so the proxy repeatedly posts the held direction to the
// step endpoint until the requested number of tiles is covered, a popup
// opens, or the player stops making progress against a wall.
package mcp
