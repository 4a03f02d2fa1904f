package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/arcads/maze-escape/game/engine"
	"github.com/arcads/maze-escape/game/service"
)

// maxWalkTicks bounds the walk tool's step loop. At the default speed a
// tile takes tile_size/move_speed ticks, so this covers any sane maze.
const maxWalkTicks = 400

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Maze Escape",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Maze Escape - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Collect all keys (k), answer the quiz at each door (digits), and use the
portal doors in order to reach the exit (E).

AVAILABLE TOOLS:
- create_session: Create a game session for a game instance
- start_game: Leave the menu and begin the run
- game_state: Render the maze with your position and progress
- walk: Walk one or more tiles in a direction
- answer_question: Answer the quiz popup at a door (choice 0-3)
- dismiss_popup: Close a clue or information popup
- get_session / list_sessions: Inspect sessions
- list_configs: List available mazes
- leaderboard: Best runs for a game instance
- game_instructions: Full rules and map legend

NOTE: Walking onto a door opens its quiz. A wrong answer sends you back
to the start tile, so read the question carefully before answering.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session for a game instance",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game instance whose questions gate the doors",
				},
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Maze configuration name (optional, defaults to classic)",
				},
				"player_id": map[string]interface{}{
					"type":        "string",
					"description": "Student id for score submission (optional)",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_game",
		Description: "Leave the menu screen and begin the run (starts the timer)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleStartGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Render the maze with the player position, keys, doors, and any open popup",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "walk",
		Description: "Walk in a direction. Stops at walls, popups, and after the requested number of tiles.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to walk",
				},
				"tiles": map[string]interface{}{
					"type":        "integer",
					"description": "Number of tiles to walk (default 1)",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleWalk)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "answer_question",
		Description: "Answer the quiz popup at a door. Wrong answers send you back to the start tile.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"choice": map[string]interface{}{
					"type":        "integer",
					"description": "Answer choice index (0-3)",
				},
			},
			Required: []string{"session_id", "choice"},
		},
	}, c.handleAnswerQuestion)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "dismiss_popup",
		Description: "Close a clue or information popup and resume play",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleDismissPopup)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available maze configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "leaderboard",
		Description: "Best runs for a game instance, best score first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game instance ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleLeaderboard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and the map legend",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func (c *Client) fetchSession(sessionID string) (*service.SessionInfo, error) {
	var info service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	configName, _ := args["config_name"].(string)
	playerID, _ := args["player_id"].(string)

	body := service.CreateSessionRequest{
		GameID:     gameID,
		ConfigName: configName,
		PlayerID:   playerID,
	}

	var info service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\nGame: %s\n\nCall start_game to begin the run.",
		info.ID, info.ConfigName, info.GameID)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Game: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.GameID, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	info, err := c.fetchSession(sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(info)), nil
}

func (c *Client) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var snap engine.Session
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/start", sessionID), nil, &snap); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := c.fetchSession(sessionID)
	if err != nil {
		return mcp.NewToolResultText("Game started.\n" + formatSnapshot(&snap)), nil
	}
	info.Snapshot = &snap

	return mcp.NewToolResultText("Game started.\n\n" + formatSessionInfo(info)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	info, err := c.fetchSession(sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(info)), nil
}

func (c *Client) handleWalk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	tiles := 1
	if raw, ok := args["tiles"].(float64); ok && int(raw) > 0 {
		tiles = int(raw)
	}

	input := inputForDirection(direction)
	if input == (engine.InputState{}) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown direction %q", direction)), nil
	}

	var last *service.TickResult
	var events []engine.Event
	walked := 0
	stopped := ""

	prevTile := engine.Position{X: -1, Y: -1}
	stall := 0

	for tick := 0; tick < maxWalkTicks; tick++ {
		var result service.TickResult
		if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/step", sessionID), input, &result); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		last = &result
		events = append(events, result.Events...)

		snap := result.Snapshot
		if prevTile == (engine.Position{X: -1, Y: -1}) {
			prevTile = snap.Player.Tile
		}
		if snap.Player.Tile != prevTile {
			walked++
			prevTile = snap.Player.Tile
		}

		if snap.Popup != nil {
			stopped = fmt.Sprintf("popup: %s", snap.Popup.Kind)
			break
		}
		if snap.Ended {
			stopped = "run finished"
			break
		}
		if walked >= tiles && !snap.Player.Moving {
			break
		}
		if !snap.Player.Moving {
			stall++
			if stall > 2 {
				stopped = "blocked"
				break
			}
		} else {
			stall = 0
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Walked %d/%d tiles %s\n", walked, tiles, direction)
	if stopped != "" {
		fmt.Fprintf(&b, "Stopped: %s\n", stopped)
	}
	if len(events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range events {
			fmt.Fprintf(&b, "- %s", event.Kind)
			if event.Message != "" {
				fmt.Fprintf(&b, ": %s", event.Message)
			}
			b.WriteString("\n")
		}
	}

	if info, err := c.fetchSession(sessionID); err == nil {
		b.WriteString("\n")
		b.WriteString(formatSessionInfo(info))
	} else if last != nil {
		b.WriteString("\n")
		b.WriteString(formatSnapshot(&last.Snapshot))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleAnswerQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	choice := -1
	if raw, ok := args["choice"].(float64); ok {
		choice = int(raw)
	}

	body := map[string]int{"choice": choice}

	var result service.TickResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/answer", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	outcome := "No quiz was open."
	for _, event := range result.Events {
		switch event.Kind {
		case engine.EventQuizCorrect:
			outcome = "Correct! +100 points."
		case engine.EventQuizWrong:
			outcome = "Wrong. Back to the start tile."
		case engine.EventShortcutDenied:
			outcome = "Correct, but the final door refused: use the earlier portals first."
		case engine.EventWin:
			outcome = "Correct! You escaped the maze!"
		}
	}
	b.WriteString(outcome)
	b.WriteString("\n")

	if info, err := c.fetchSession(sessionID); err == nil {
		b.WriteString("\n")
		b.WriteString(formatSessionInfo(info))
	} else {
		b.WriteString("\n")
		b.WriteString(formatSnapshot(&result.Snapshot))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleDismissPopup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var snap engine.Session
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/dismiss", sessionID), nil, &snap); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Popup dismissed.\n\n" + formatSnapshot(&snap)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s\n  %s\n  Grid: %dx%d, Keys: %d, Doors: %d\n\n",
			config.ConfigID, config.Description, config.Cols, config.Rows, config.Keys, config.Doors)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var entries []service.LeaderboardEntry
	if err := c.apiCall("GET", fmt.Sprintf("/api/leaderboard/%s", gameID), nil, &entries); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(entries) == 0 {
		return mcp.NewToolResultText("No scores recorded for this game yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Leaderboard for game %s:\n\n", gameID)
	for i, entry := range entries {
		fmt.Fprintf(&b, "%2d. %s %s - %d points in %ds\n",
			i+1, entry.StudentName, entry.StudentSurname, entry.Score, entry.TimeTaken)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Maze Escape - Complete Instructions

GAME OBJECTIVE:
Collect all keys, answer the quiz at each door, and reach the exit through
the final portal door. Each correct answer is worth 100 points.

MAP LEGEND:
- @ - Your current position
- # - Wall (impassable)
- . - Floor
- S - Start tile (you respawn here after mistakes)
- E - Exit tile
- k - Key still on the floor
- 1-9 - Door (the digit is the door id)
- o - Door already used

GAME MECHANICS:
- Walking onto a key collects it and shows a clue about the maze.
- Walking onto a door whose key you carry opens its quiz.
- Walking onto a locked door (key not collected) sends you back to start.
- A correct answer scores 100 points. Portal doors then teleport you.
- A wrong answer sends you back to the start tile. The door stays unused,
  so you can try its quiz again.
- The final door only teleports once every prerequisite portal has been
  used. Answering early still scores, but you are reset to start.
- The run ends when you stand on the exit after using the final door.

SCORING:
- 100 points per correctly answered door quiz.
- Time is measured from start_game to the win. Leaderboards rank by
  score first, then by time.

STRATEGY NOTES:
- The maze is split into zones that only portals connect. If an area
  seems unreachable, look for the portal door that leads there.
- Collect a door's key BEFORE touching the door, or you lose your
  position and any walking progress.
- Popups pause the simulation. Dismiss clues promptly; read quiz
  questions carefully since wrong answers cost you the walk back.

SESSION MANAGEMENT:
- Sessions are identified by a short 4-character ID.
- Each session has its own maze, question set, and timer.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func inputForDirection(direction string) engine.InputState {
	switch strings.ToLower(direction) {
	case "up":
		return engine.InputState{Up: true}
	case "down":
		return engine.InputState{Down: true}
	case "left":
		return engine.InputState{Left: true}
	case "right":
		return engine.InputState{Right: true}
	}
	return engine.InputState{}
}

func formatSessionInfo(info *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nConfig: %s\nGame: %s\nCreated: %s\n\n",
		info.ID, info.ConfigName, info.GameID,
		info.CreatedAt.Format("2006-01-02 15:04:05"))

	if info.Snapshot != nil && info.MazeConfig != nil {
		b.WriteString(renderMaze(info.MazeConfig, info.Snapshot))
		b.WriteString("\n")
	}
	if info.Snapshot != nil {
		b.WriteString(formatSnapshot(info.Snapshot))
	}
	return b.String()
}

// renderMaze draws the maze layout with entities overlaid. Collected keys
// and used doors change their glyph so progress is visible at a glance.
func renderMaze(config *engine.MazeConfig, snap *engine.Session) string {
	glyphs := make(map[engine.Position]byte)
	for _, k := range config.Keys {
		if !snap.CollectedKeys[k.ID] {
			glyphs[engine.Position{X: k.X, Y: k.Y}] = 'k'
		}
	}
	for _, d := range config.Doors {
		ch := byte('0' + d.ID%10)
		if snap.UsedDoors[d.ID] {
			ch = 'o'
		}
		glyphs[engine.Position{X: d.X, Y: d.Y}] = ch
	}

	var b strings.Builder
	for y, row := range config.Layout {
		for x := 0; x < len(row); x++ {
			pos := engine.Position{X: x, Y: y}
			switch {
			case pos == snap.Player.Tile:
				b.WriteByte('@')
			case glyphs[pos] != 0:
				b.WriteByte(glyphs[pos])
			default:
				b.WriteByte(row[x])
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatSnapshot(snap *engine.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Screen: %s | Position: (%d,%d) | Score: %d\n",
		snap.Screen, snap.Player.Tile.X, snap.Player.Tile.Y, snap.Score)

	if len(snap.CollectedKeys) > 0 {
		fmt.Fprintf(&b, "Keys: %s\n", formatIDSet(snap.CollectedKeys))
	}
	if len(snap.UsedDoors) > 0 {
		fmt.Fprintf(&b, "Doors used: %s\n", formatIDSet(snap.UsedDoors))
	}

	if snap.Popup != nil {
		p := snap.Popup
		fmt.Fprintf(&b, "\nPopup (%s): %s\n", p.Kind, p.Title)
		if p.Text != "" {
			fmt.Fprintf(&b, "%s\n", p.Text)
		}
		if p.Question != nil {
			fmt.Fprintf(&b, "Q: %s\n", p.Question.Text)
			for i, choice := range p.Question.Choices {
				fmt.Fprintf(&b, "  %d) %s\n", i, choice)
			}
		}
	}

	if snap.Ended {
		fmt.Fprintf(&b, "\nRUN COMPLETE: score %d in %ds", snap.Score, snap.FinalTime)
		if snap.Submission != engine.SubmissionNone {
			fmt.Fprintf(&b, " (submission: %s)", snap.Submission)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func formatIDSet(set map[int]bool) string {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
