// Package api provides the HTTP REST surface of the maze game server.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session for a game instance
//   - GET /api/sessions - List sessions (sort, order, limit query params)
//   - GET /api/sessions/{id} - Get a session with its maze config
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current session snapshot
//   - POST /api/sessions/{id}/start - Leave the menu and begin the run
//   - POST /api/sessions/{id}/input - Set held keys for the tick runner
//   - POST /api/sessions/{id}/step - Advance one frame (request-driven clients)
//   - POST /api/sessions/{id}/answer - Answer the active quiz popup
//   - POST /api/sessions/{id}/dismiss - Close an informational popup
//
// Platform:
//   - GET /api/game-questions/{game_id} - Question rows for a game instance
//   - POST /api/save-score - Record a finished run
//   - GET /api/leaderboard/{game_id} - Best runs, score desc then time asc
//
// Configuration:
//   - GET /api/configs - List available maze configurations
//   - GET /api/configs/{name} - Fetch one configuration
//   - POST /api/configs - Save a new configuration
//
// WebSocket:
//   - GET /ws?session={id} - Upgrade and receive live state pushes
//
// All endpoints accept and return JSON. The platform routes keep the
// exact shapes the existing web frontend consumes (question rows with
// choice_a..choice_d columns, score records with student_fid), so the
// server can stand in for the platform backend or proxy to it.
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
