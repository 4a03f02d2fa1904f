package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	cellSize     = 30
	headerHeight = 40
	screenWidth  = 800
	screenHeight = 680
	baseURL      = "http://localhost:8080"
	pollInterval = 100 * time.Millisecond
)

// ScreenType represents different screens in the app
type ScreenType int

const (
	ScreenWelcome ScreenType = iota
	ScreenGame
)

// Position represents a tile coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PlayerState mirrors the player portion of the server snapshot. PX and PY
// are sub-tile pixel offsets in the server's tile_size units.
type PlayerState struct {
	Tile   Position `json:"tile"`
	PX     int      `json:"px"`
	PY     int      `json:"py"`
	Moving bool     `json:"moving"`
	Target Position `json:"target"`
}

// Question carries the quiz shown at a locked door
type Question struct {
	Text    string    `json:"question_text"`
	Choices [4]string `json:"choices"`
}

// Popup mirrors the overlay payload from the server
type Popup struct {
	Kind     string    `json:"kind"`
	Title    string    `json:"title,omitempty"`
	Text     string    `json:"text,omitempty"`
	DoorID   int       `json:"door_id,omitempty"`
	Question *Question `json:"question,omitempty"`
	Score    int       `json:"score,omitempty"`
	Time     int       `json:"time,omitempty"`
}

// Snapshot mirrors the server's session snapshot
type Snapshot struct {
	Screen        string       `json:"screen"`
	Player        PlayerState  `json:"player"`
	CollectedKeys map[int]bool `json:"collected_keys"`
	UsedDoors     map[int]bool `json:"used_doors"`
	Score         int          `json:"score"`
	StartTime     time.Time    `json:"start_time"`
	Ended         bool         `json:"ended"`
	Popup         *Popup       `json:"popup,omitempty"`
	Submission    string       `json:"submission,omitempty"`
	FinalTime     int          `json:"final_time,omitempty"`
}

// KeyPlacement and DoorPlacement mirror the authored maze config
type KeyPlacement struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
}

type DoorPlacement struct {
	ID          int  `json:"id"`
	X           int  `json:"x"`
	Y           int  `json:"y"`
	RequiredKey int  `json:"required_key,omitempty"`
	Portal      bool `json:"portal"`
	Final       bool `json:"final,omitempty"`
}

// MazeLayout mirrors the authored maze configuration from the server
type MazeLayout struct {
	Name     string          `json:"name"`
	TileSize int             `json:"tile_size"`
	Layout   []string        `json:"layout"`
	Keys     []KeyPlacement  `json:"keys"`
	Doors    []DoorPlacement `json:"doors"`
}

// SessionInfo mirrors the server's session detail response
type SessionInfo struct {
	ID         string      `json:"id"`
	ConfigName string      `json:"config_name"`
	GameID     string      `json:"game_id"`
	Snapshot   *Snapshot   `json:"snapshot"`
	MazeConfig *MazeLayout `json:"maze_config,omitempty"`
}

// WSMessage represents the WebSocket message wrapper
type WSMessage struct {
	SessionID string    `json:"session_id"`
	State     *Snapshot `json:"state,omitempty"`
	Event     string    `json:"event,omitempty"`
}

// InputPayload is the held-key state posted to the input endpoint
type InputPayload struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Up    bool `json:"up"`
	Down  bool `json:"down"`
}

// ConfigListItem represents an available maze from the server
type ConfigListItem struct {
	ConfigID    string `json:"config_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Game represents the desktop game client
type Game struct {
	currentScreen ScreenType
	welcomeScreen *WelcomeScreen

	gameID   string
	playerID string

	sessionID string
	maze      *MazeLayout
	state     *Snapshot
	wsConn    *websocket.Conn

	stateMutex sync.RWMutex
	lastUpdate time.Time
	lastInput  InputPayload
	sentInput  bool
}

// WelcomeScreen manages the session selection screen state
type WelcomeScreen struct {
	availableSessions []SessionInfo
	availableConfigs  []ConfigListItem
	cursorPos         int
	newSessionConfig  string
	loading           bool
	errorMsg          string
}

// NewGame creates a new client. A non-empty sessionID skips the welcome
// screen and attaches to that session directly.
func NewGame(sessionID, gameID, playerID string) *Game {
	g := &Game{
		currentScreen: ScreenWelcome,
		gameID:        gameID,
		playerID:      playerID,
		welcomeScreen: &WelcomeScreen{},
	}

	if sessionID != "" {
		if err := g.attachSession(sessionID); err != nil {
			log.Printf("Failed to attach session %s: %v", sessionID, err)
		} else {
			g.currentScreen = ScreenGame
		}
	}
	if g.currentScreen == ScreenWelcome {
		g.loadWelcomeData()
	}

	return g
}

// attachSession loads the session detail (including the maze layout) and
// connects the state WebSocket.
func (g *Game) attachSession(sessionID string) error {
	resp, err := http.Get(fmt.Sprintf("%s/api/sessions/%s", baseURL, sessionID))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("session lookup failed: %s", strings.TrimSpace(string(body)))
	}

	var info SessionInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return fmt.Errorf("failed to parse session response: %v (body: %s)", err, string(body))
	}
	if info.MazeConfig == nil {
		return fmt.Errorf("session %s has no maze config", sessionID)
	}

	g.stateMutex.Lock()
	g.sessionID = info.ID
	g.maze = info.MazeConfig
	g.state = info.Snapshot
	g.lastUpdate = time.Now()
	g.sentInput = false
	g.stateMutex.Unlock()

	if err := g.connectWebSocket(); err != nil {
		log.Printf("WebSocket unavailable for %s: %v (falling back to polling)", sessionID, err)
	} else {
		go g.listenWebSocket()
	}

	return nil
}

// connectWebSocket establishes the state stream
func (g *Game) connectWebSocket() error {
	wsURL := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	q := wsURL.Query()
	q.Set("session", g.sessionID)
	wsURL.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		return err
	}

	g.wsConn = conn
	log.Printf("WebSocket connected for session %s", g.sessionID)
	return nil
}

// listenWebSocket consumes state updates. The stream may batch several
// newline-separated JSON messages into one frame.
func (g *Game) listenWebSocket() {
	conn := g.wsConn
	defer func() {
		conn.Close()
		g.stateMutex.Lock()
		if g.wsConn == conn {
			g.wsConn = nil
		}
		g.stateMutex.Unlock()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error for %s: %v", g.sessionID, err)
			return
		}

		for _, part := range strings.Split(string(message), "\n") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			var wsMsg WSMessage
			if err := json.Unmarshal([]byte(part), &wsMsg); err != nil {
				log.Printf("WebSocket JSON parse error: %v", err)
				continue
			}
			if wsMsg.State == nil {
				continue
			}

			g.stateMutex.Lock()
			if wsMsg.SessionID == g.sessionID {
				g.state = wsMsg.State
				g.lastUpdate = time.Now()
			}
			g.stateMutex.Unlock()
		}
	}
}

// fetchGameState polls the current snapshot from the server
func (g *Game) fetchGameState() error {
	resp, err := http.Get(fmt.Sprintf("%s/api/sessions/%s/state", baseURL, g.sessionID))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var state Snapshot
	if err := json.Unmarshal(body, &state); err != nil {
		return fmt.Errorf("failed to parse JSON: %v (body: %s)", err, string(body))
	}

	g.stateMutex.Lock()
	g.state = &state
	g.lastUpdate = time.Now()
	g.stateMutex.Unlock()
	return nil
}

// postAction sends a bodyless or JSON action to a session endpoint
func (g *Game) postAction(action, payload string) error {
	if payload == "" {
		payload = "{}"
	}
	endpoint := fmt.Sprintf("%s/api/sessions/%s/%s", baseURL, g.sessionID, action)
	resp, err := http.Post(endpoint, "application/json", strings.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

// sendInput posts the held-key state. Input is level-triggered on the
// server, so only changes need to go over the wire.
func (g *Game) sendInput(input InputPayload) {
	if g.sentInput && input == g.lastInput {
		return
	}
	g.lastInput = input
	g.sentInput = true

	data, _ := json.Marshal(input)
	if err := g.postAction("input", string(data)); err != nil {
		log.Printf("Failed to send input: %v", err)
		g.sentInput = false
	}
}

// loadWelcomeData fetches available sessions and configs from the server
func (g *Game) loadWelcomeData() {
	ws := g.welcomeScreen
	ws.loading = true
	ws.errorMsg = ""

	resp, err := http.Get(fmt.Sprintf("%s/api/sessions", baseURL))
	if err != nil {
		ws.errorMsg = fmt.Sprintf("Error loading sessions: %v", err)
		ws.loading = false
		return
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	var sessionsResp struct {
		Sessions []SessionInfo `json:"sessions"`
	}
	if err := json.Unmarshal(body, &sessionsResp); err == nil {
		ws.availableSessions = sessionsResp.Sessions
	}
	if ws.cursorPos >= len(ws.availableSessions) {
		ws.cursorPos = 0
	}

	resp, err = http.Get(fmt.Sprintf("%s/api/configs", baseURL))
	if err != nil {
		ws.errorMsg = fmt.Sprintf("Error loading configs: %v", err)
		ws.loading = false
		return
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()

	var configs []ConfigListItem
	if err := json.Unmarshal(body, &configs); err == nil {
		ws.availableConfigs = configs
	}

	ws.loading = false
}

// createNewSessionFromWelcome creates a session with the selected config
func (g *Game) createNewSessionFromWelcome() error {
	payload := map[string]string{"game_id": g.gameID}
	if g.playerID != "" {
		payload["player_id"] = g.playerID
	}
	if g.welcomeScreen.newSessionConfig != "" {
		payload["config_name"] = g.welcomeScreen.newSessionConfig
	}
	data, _ := json.Marshal(payload)

	resp, err := http.Post(fmt.Sprintf("%s/api/sessions", baseURL), "application/json", strings.NewReader(string(data)))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var info SessionInfo
	if err := json.Unmarshal(body, &info); err != nil || info.ID == "" {
		return fmt.Errorf("failed to parse session response (body: %s)", string(body))
	}

	log.Printf("Created new session: %s (config: %s)", info.ID, g.welcomeScreen.newSessionConfig)
	g.loadWelcomeData()
	return nil
}

// Update updates game logic
func (g *Game) Update() error {
	switch g.currentScreen {
	case ScreenWelcome:
		return g.updateWelcomeScreen()
	case ScreenGame:
		return g.updateGameScreen()
	}
	return nil
}

// updateWelcomeScreen handles session selection input
func (g *Game) updateWelcomeScreen() error {
	ws := g.welcomeScreen

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.loadWelcomeData()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && ws.cursorPos < len(ws.availableSessions)-1 {
		ws.cursorPos++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && ws.cursorPos > 0 {
		ws.cursorPos--
	}

	// Cycle the config used for new sessions with Tab
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(ws.availableConfigs) > 0 {
		currentIdx := -1
		for i, cfg := range ws.availableConfigs {
			if cfg.ConfigID == ws.newSessionConfig {
				currentIdx = i
				break
			}
		}
		currentIdx++
		if currentIdx >= len(ws.availableConfigs) {
			ws.newSessionConfig = "" // server default
		} else {
			ws.newSessionConfig = ws.availableConfigs[currentIdx].ConfigID
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := g.createNewSessionFromWelcome(); err != nil {
			ws.errorMsg = fmt.Sprintf("Failed to create session: %v", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if ws.cursorPos < len(ws.availableSessions) {
			sessionID := ws.availableSessions[ws.cursorPos].ID
			if err := g.attachSession(sessionID); err != nil {
				ws.errorMsg = fmt.Sprintf("Failed to attach session: %v", err)
			} else {
				g.currentScreen = ScreenGame
			}
		} else {
			ws.errorMsg = "No session selected. Press N to create one."
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.sessionID != "" {
		g.currentScreen = ScreenGame
	}

	return nil
}

// updateGameScreen handles gameplay input
func (g *Game) updateGameScreen() error {
	g.stateMutex.RLock()
	state := g.state
	wsConnected := g.wsConn != nil
	stale := time.Since(g.lastUpdate) > pollInterval
	g.stateMutex.RUnlock()

	// Poll when the WebSocket is down
	if !wsConnected && (state == nil || stale) {
		if err := g.fetchGameState(); err != nil {
			log.Printf("Error fetching state for %s: %v", g.sessionID, err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.currentScreen = ScreenWelcome
		g.loadWelcomeData()
		return nil
	}

	if state == nil {
		return nil
	}

	switch state.Screen {
	case "menu":
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			if err := g.postAction("start", ""); err != nil {
				log.Printf("Failed to start game: %v", err)
			}
		}

	case "playing":
		input := InputPayload{
			Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
			Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
			Up:    ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
			Down:  ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		}
		g.sendInput(input)

	case "clue":
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			if err := g.postAction("dismiss", ""); err != nil {
				log.Printf("Failed to dismiss popup: %v", err)
			}
		}

	case "question":
		for i := 0; i < 4; i++ {
			if inpututil.IsKeyJustPressed(ebiten.Key1+ebiten.Key(i)) ||
				inpututil.IsKeyJustPressed(ebiten.KeyNumpad1+ebiten.Key(i)) {
				payload := fmt.Sprintf(`{"choice":%d}`, i)
				if err := g.postAction("answer", payload); err != nil {
					log.Printf("Failed to answer: %v", err)
				}
			}
		}

	case "win":
		// Final screen; nothing to send
	}

	return nil
}

// Draw renders the client
func (g *Game) Draw(screen *ebiten.Image) {
	switch g.currentScreen {
	case ScreenWelcome:
		g.drawWelcomeScreen(screen)
	case ScreenGame:
		g.drawGameScreen(screen)
	}
}

// drawWelcomeScreen renders the session selection screen
func (g *Game) drawWelcomeScreen(screen *ebiten.Image) {
	ws := g.welcomeScreen

	screen.Fill(color.RGBA{20, 20, 30, 255})

	y := 20
	ebitenutil.DebugPrintAt(screen, "=== MAZE ESCAPE - SESSION SELECT ===", 240, y)
	y += 30

	if ws.loading {
		ebitenutil.DebugPrintAt(screen, "Loading sessions...", 20, y)
		return
	}

	if ws.errorMsg != "" {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("ERROR: %s", ws.errorMsg), 20, y)
		y += 20
	}

	ebitenutil.DebugPrintAt(screen, "Available Sessions:", 20, y)
	y += 20

	if len(ws.availableSessions) == 0 {
		ebitenutil.DebugPrintAt(screen, "  No sessions found. Press N to create one.", 20, y)
		y += 20
	} else {
		for i, session := range ws.availableSessions {
			cursor := "  "
			if i == ws.cursorPos {
				cursor = "> "
			}

			status := ""
			score := 0
			if session.Snapshot != nil {
				score = session.Snapshot.Score
				if session.Snapshot.Ended {
					status = " FINISHED"
				} else {
					status = fmt.Sprintf(" [%s]", session.Snapshot.Screen)
				}
			}

			line := fmt.Sprintf("%s%s | %s | game:%s | Score:%d%s",
				cursor, session.ID, session.ConfigName, session.GameID, score, status)
			ebitenutil.DebugPrintAt(screen, line, 20, y)
			y += 15
		}
	}

	y += 20
	configDisplay := "default"
	if ws.newSessionConfig != "" {
		configDisplay = ws.newSessionConfig
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("New session config: %s (game:%s)", configDisplay, g.gameID), 20, y)
	y += 15
	for _, cfg := range ws.availableConfigs {
		marker := "  "
		if cfg.ConfigID == ws.newSessionConfig {
			marker = "→ "
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("  %s%s - %s", marker, cfg.ConfigID, cfg.Description), 20, y)
		y += 15
	}

	y += 20
	ebitenutil.DebugPrintAt(screen, "CONTROLS:", 20, y)
	y += 20
	ebitenutil.DebugPrintAt(screen, "  ↑/↓    - Navigate sessions", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  TAB    - Cycle config for new session", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  N      - Create new session", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  ENTER  - Play the selected session", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  F5     - Refresh", 20, y)
	y += 15
	if g.sessionID != "" {
		ebitenutil.DebugPrintAt(screen, "  ESC    - Back to game", 20, y)
	}
}

// drawGameScreen renders the maze and the current overlay
func (g *Game) drawGameScreen(screen *ebiten.Image) {
	g.stateMutex.RLock()
	defer g.stateMutex.RUnlock()

	screen.Fill(color.RGBA{20, 20, 30, 255})

	if g.maze == nil || g.state == nil {
		ebitenutil.DebugPrint(screen, "Loading...")
		return
	}

	state := g.state
	g.drawHeader(screen, state)

	// Grid
	for y, row := range g.maze.Layout {
		for x := 0; x < len(row); x++ {
			cellColor := getTileColor(row[x])
			ebitenutil.DrawRect(screen,
				float64(x*cellSize),
				float64(y*cellSize+headerHeight),
				cellSize-1, cellSize-1, cellColor)
		}
	}

	// Keys still on the board
	for _, k := range g.maze.Keys {
		if state.CollectedKeys[k.ID] {
			continue
		}
		ebitenutil.DrawRect(screen,
			float64(k.X*cellSize)+8,
			float64(k.Y*cellSize+headerHeight)+8,
			cellSize-16, cellSize-16,
			color.RGBA{255, 215, 0, 255})
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", k.ID), k.X*cellSize+11, k.Y*cellSize+headerHeight+7)
	}

	// Doors
	for _, d := range g.maze.Doors {
		doorColor := color.RGBA{139, 69, 19, 255} // plain locked door
		if d.Portal {
			doorColor = color.RGBA{138, 43, 226, 255}
		}
		if d.Final {
			doorColor = color.RGBA{220, 20, 60, 255}
		}
		if state.UsedDoors[d.ID] {
			doorColor = color.RGBA{80, 80, 90, 255} // opened
		}
		ebitenutil.DrawRect(screen,
			float64(d.X*cellSize)+4,
			float64(d.Y*cellSize+headerHeight)+4,
			cellSize-8, cellSize-8, doorColor)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", d.ID), d.X*cellSize+11, d.Y*cellSize+headerHeight+7)
	}

	// Player at the sub-tile pixel position scaled to our cell size
	tileSize := g.maze.TileSize
	if tileSize <= 0 {
		tileSize = cellSize
	}
	scale := float64(cellSize) / float64(tileSize)
	px := float64(state.Player.PX) * scale
	py := float64(state.Player.PY)*scale + headerHeight
	ebitenutil.DrawRect(screen, px+5, py+5, cellSize-10, cellSize-10, color.RGBA{100, 149, 237, 255})

	// Overlay for the current popup
	if state.Popup != nil {
		g.drawPopup(screen, state.Popup)
	} else if state.Screen == "menu" {
		g.drawMenuOverlay(screen)
	}

	ebitenutil.DebugPrintAt(screen, "Arrows/WASD: Move | 1-4: Answer | ENTER: Confirm | ESC: Menu", 10, screenHeight-20)
}

// drawHeader shows the run stats above the board
func (g *Game) drawHeader(screen *ebiten.Image, state *Snapshot) {
	keys := 0
	for _, collected := range state.CollectedKeys {
		if collected {
			keys++
		}
	}

	elapsed := 0
	if state.Ended {
		elapsed = state.FinalTime
	} else if state.Screen != "menu" && !state.StartTime.IsZero() {
		elapsed = int(time.Since(state.StartTime).Seconds())
	}

	info := fmt.Sprintf("%s | %s | Score:%d Keys:%d/%d Time:%ds",
		g.sessionID, state.Screen, state.Score, keys, len(g.maze.Keys), elapsed)
	if state.Submission != "" {
		info += fmt.Sprintf(" | submission:%s", state.Submission)
	}
	ebitenutil.DebugPrintAt(screen, info, 10, 10)
}

// drawMenuOverlay prompts for the run start
func (g *Game) drawMenuOverlay(screen *ebiten.Image) {
	g.drawOverlayBox(screen)
	ebitenutil.DebugPrintAt(screen, "MAZE ESCAPE", 360, 280)
	ebitenutil.DebugPrintAt(screen, "Collect the keys, answer the door quizzes,", 270, 310)
	ebitenutil.DebugPrintAt(screen, "and reach the exit through the final portal.", 270, 325)
	ebitenutil.DebugPrintAt(screen, "Press ENTER to start", 330, 355)
}

// drawPopup renders the clue, question, or win overlay
func (g *Game) drawPopup(screen *ebiten.Image, popup *Popup) {
	g.drawOverlayBox(screen)

	switch popup.Kind {
	case "clue":
		ebitenutil.DebugPrintAt(screen, popup.Title, 340, 280)
		ebitenutil.DebugPrintAt(screen, popup.Text, 230, 310)
		ebitenutil.DebugPrintAt(screen, "Press ENTER to continue", 320, 360)

	case "question":
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("DOOR %d", popup.DoorID), 360, 270)
		if popup.Question != nil {
			ebitenutil.DebugPrintAt(screen, popup.Question.Text, 230, 295)
			for i, choice := range popup.Question.Choices {
				ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d) %s", i+1, choice), 250, 320+i*15)
			}
		}
		ebitenutil.DebugPrintAt(screen, "Press 1-4 to answer (wrong sends you back to start)", 230, 390)

	case "win":
		ebitenutil.DebugPrintAt(screen, popup.Title, 340, 280)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", popup.Score), 360, 310)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Time: %ds", popup.Time), 360, 325)
	}
}

// drawOverlayBox dims the board and draws the popup frame
func (g *Game) drawOverlayBox(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, screenWidth, screenHeight, color.RGBA{0, 0, 0, 140})
	ebitenutil.DrawRect(screen, 210, 250, 380, 170, color.RGBA{40, 40, 60, 245})
}

// Layout returns the game screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// getTileColor returns the color for each layout character
func getTileColor(tile byte) color.Color {
	switch tile {
	case '#':
		return color.RGBA{45, 45, 60, 255} // wall
	case 'S':
		return color.RGBA{60, 120, 60, 255} // start
	case 'E':
		return color.RGBA{180, 150, 40, 255} // exit
	default:
		return color.RGBA{128, 128, 128, 255} // floor
	}
}

func main() {
	sessionID := flag.String("session", "", "attach to an existing session id")
	gameID := flag.String("game", "dev", "game instance id for new sessions")
	playerID := flag.String("player", "", "student id for new sessions")
	flag.Parse()

	game := NewGame(*sessionID, *gameID, *playerID)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Maze Escape - Desktop Client")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
