package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arcads/maze-escape/game/engine"
	"github.com/arcads/maze-escape/game/service"
	"github.com/arcads/maze-escape/platform"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	CreateSessionFunc func(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error

	StartGameFunc func(ctx context.Context, sessionID string) (*engine.Session, error)
	SetInputFunc  func(ctx context.Context, sessionID string, input engine.InputState) error
	StepFunc      func(ctx context.Context, sessionID string, input engine.InputState) (*service.TickResult, error)
	AnswerFunc    func(ctx context.Context, sessionID string, choice int) (*service.TickResult, error)
	DismissFunc   func(ctx context.Context, sessionID string) (*engine.Session, error)
	GetStateFunc  func(ctx context.Context, sessionID string) (*engine.Session, error)

	LeaderboardFunc func(ctx context.Context, gameID string) ([]*service.LeaderboardEntry, error)

	ListConfigsFunc func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc  func(ctx context.Context, configName string) (*engine.MazeConfig, error)
	SaveConfigFunc  func(ctx context.Context, configName string, config *engine.MazeConfig) error
}

func (m *MockGameService) CreateSession(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, req)
	}
	return &service.SessionInfo{
		ID:         "test-session",
		ConfigName: req.ConfigName,
		GameID:     req.GameID,
		PlayerID:   req.PlayerID,
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{
		ID:         sessionID,
		ConfigName: "classic",
		GameID:     "42",
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockGameService) StartGame(ctx context.Context, sessionID string) (*engine.Session, error) {
	if m.StartGameFunc != nil {
		return m.StartGameFunc(ctx, sessionID)
	}
	return &engine.Session{Screen: engine.ScreenPlaying}, nil
}

func (m *MockGameService) SetInput(ctx context.Context, sessionID string, input engine.InputState) error {
	if m.SetInputFunc != nil {
		return m.SetInputFunc(ctx, sessionID, input)
	}
	return nil
}

func (m *MockGameService) Step(ctx context.Context, sessionID string, input engine.InputState) (*service.TickResult, error) {
	if m.StepFunc != nil {
		return m.StepFunc(ctx, sessionID, input)
	}
	return &service.TickResult{Snapshot: engine.Session{Screen: engine.ScreenPlaying}}, nil
}

func (m *MockGameService) Answer(ctx context.Context, sessionID string, choice int) (*service.TickResult, error) {
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, sessionID, choice)
	}
	return &service.TickResult{Snapshot: engine.Session{Screen: engine.ScreenPlaying}}, nil
}

func (m *MockGameService) Dismiss(ctx context.Context, sessionID string) (*engine.Session, error) {
	if m.DismissFunc != nil {
		return m.DismissFunc(ctx, sessionID)
	}
	return &engine.Session{Screen: engine.ScreenPlaying}, nil
}

func (m *MockGameService) GetState(ctx context.Context, sessionID string) (*engine.Session, error) {
	if m.GetStateFunc != nil {
		return m.GetStateFunc(ctx, sessionID)
	}
	return &engine.Session{Screen: engine.ScreenMenu}, nil
}

func (m *MockGameService) Leaderboard(ctx context.Context, gameID string) ([]*service.LeaderboardEntry, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx, gameID)
	}
	return []*service.LeaderboardEntry{}, nil
}

func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.MazeConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	return engine.DefaultMazeConfig(), nil
}

func (m *MockGameService) SaveConfig(ctx context.Context, configName string, config *engine.MazeConfig) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, config)
	}
	return nil
}

// MockStore implements platform.Store for testing
type MockStore struct {
	QuestionsFunc   func(ctx context.Context, gameID string) ([]engine.Question, error)
	SaveScoreFunc   func(ctx context.Context, record *service.ScoreRecord) error
	LeaderboardFunc func(ctx context.Context, gameID string) ([]*service.LeaderboardEntry, error)
}

func (m *MockStore) Questions(ctx context.Context, gameID string) ([]engine.Question, error) {
	if m.QuestionsFunc != nil {
		return m.QuestionsFunc(ctx, gameID)
	}
	return []engine.Question{
		{Text: "Q?", Choices: [4]string{"a", "b", "c", "d"}, Correct: 1},
	}, nil
}

func (m *MockStore) SaveScore(ctx context.Context, record *service.ScoreRecord) error {
	if m.SaveScoreFunc != nil {
		return m.SaveScoreFunc(ctx, record)
	}
	return nil
}

func (m *MockStore) Leaderboard(ctx context.Context, gameID string) ([]*service.LeaderboardEntry, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx, gameID)
	}
	return []*service.LeaderboardEntry{}, nil
}

func newTestServer(svc service.GameService, store platform.Store) *Server {
	return NewServer(svc, store, nil, nil)
}

func TestCreateSession(t *testing.T) {
	var gotReq service.CreateSessionRequest
	mock := &MockGameService{
		CreateSessionFunc: func(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error) {
			gotReq = req
			return &service.SessionInfo{ID: "abcd", ConfigName: "classic", GameID: req.GameID}, nil
		},
	}
	server := newTestServer(mock, &MockStore{})

	body := bytes.NewBufferString(`{"game_id":"42","player_id":"student-7","config_name":"classic"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", body)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotReq.GameID != "42" || gotReq.PlayerID != "student-7" || gotReq.ConfigName != "classic" {
		t.Errorf("Unexpected request passed to service: %+v", gotReq)
	}

	var info service.SessionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if info.ID != "abcd" {
		t.Errorf("Expected session id abcd, got %s", info.ID)
	}
}

func TestCreateSessionRequiresGameID(t *testing.T) {
	server := newTestServer(&MockGameService{}, &MockStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestCreateSessionServiceError(t *testing.T) {
	mock := &MockGameService{
		CreateSessionFunc: func(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error) {
			return nil, fmt.Errorf("no game data")
		},
	}
	server := newTestServer(mock, &MockStore{})

	body := bytes.NewBufferString(`{"game_id":"42"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", body)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
}

func TestListSessionsSortAndLimit(t *testing.T) {
	now := time.Now()
	mock := &MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "old", CreatedAt: now.Add(-2 * time.Hour), LastAccessedAt: now.Add(-2 * time.Hour)},
				{ID: "new", CreatedAt: now, LastAccessedAt: now},
				{ID: "mid", CreatedAt: now.Add(-time.Hour), LastAccessedAt: now.Add(-time.Hour)},
			}, nil
		},
	}
	server := newTestServer(mock, &MockStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions?sort=created&order=desc&limit=2", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Count    int                    `json:"count"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("Expected 2 sessions, got %d", resp.Count)
	}
	if resp.Sessions[0].ID != "new" || resp.Sessions[1].ID != "mid" {
		t.Errorf("Unexpected ordering: %s, %s", resp.Sessions[0].ID, resp.Sessions[1].ID)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	mock := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			return nil, fmt.Errorf("session not found: %s", sessionID)
		},
	}
	server := newTestServer(mock, &MockStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/missing", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestDeleteSession(t *testing.T) {
	deleted := ""
	mock := &MockGameService{
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			deleted = sessionID
			return nil
		},
	}
	server := newTestServer(mock, &MockStore{})

	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/abcd", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if deleted != "abcd" {
		t.Errorf("Expected abcd deleted, got %q", deleted)
	}
}

func TestStartGame(t *testing.T) {
	mock := &MockGameService{
		StartGameFunc: func(ctx context.Context, sessionID string) (*engine.Session, error) {
			return &engine.Session{Screen: engine.ScreenPlaying, StartTime: time.Now()}, nil
		},
	}
	server := newTestServer(mock, &MockStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/abcd/start", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var snap engine.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if snap.Screen != engine.ScreenPlaying {
		t.Errorf("Expected play screen, got %s", snap.Screen)
	}
}

func TestSetInput(t *testing.T) {
	var gotInput engine.InputState
	mock := &MockGameService{
		SetInputFunc: func(ctx context.Context, sessionID string, input engine.InputState) error {
			gotInput = input
			return nil
		},
	}
	server := newTestServer(mock, &MockStore{})

	body := bytes.NewBufferString(`{"right":true,"down":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/abcd/input", body)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !gotInput.Right || !gotInput.Down || gotInput.Left {
		t.Errorf("Unexpected input passed to service: %+v", gotInput)
	}
}

func TestSetInputInvalidBody(t *testing.T) {
	server := newTestServer(&MockGameService{}, &MockStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/abcd/input", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestStep(t *testing.T) {
	mock := &MockGameService{
		StepFunc: func(ctx context.Context, sessionID string, input engine.InputState) (*service.TickResult, error) {
			return &service.TickResult{
				Snapshot: engine.Session{Screen: engine.ScreenPlaying, Score: 100},
				Events:   []engine.Event{{Kind: engine.EventClueFound, KeyID: 1}},
			}, nil
		},
	}
	server := newTestServer(mock, &MockStore{})

	body := bytes.NewBufferString(`{"up":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/abcd/step", body)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var result service.TickResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Snapshot.Score != 100 {
		t.Errorf("Expected score 100, got %d", result.Snapshot.Score)
	}
	if len(result.Events) != 1 || result.Events[0].Kind != engine.EventClueFound {
		t.Errorf("Unexpected events: %+v", result.Events)
	}
}

func TestAnswer(t *testing.T) {
	gotChoice := -1
	mock := &MockGameService{
		AnswerFunc: func(ctx context.Context, sessionID string, choice int) (*service.TickResult, error) {
			gotChoice = choice
			return &service.TickResult{
				Snapshot: engine.Session{Screen: engine.ScreenPlaying, Score: 100},
				Events:   []engine.Event{{Kind: engine.EventQuizCorrect, DoorID: 1}},
			}, nil
		},
	}
	server := newTestServer(mock, &MockStore{})

	body := bytes.NewBufferString(`{"choice":2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/abcd/answer", body)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if gotChoice != 2 {
		t.Errorf("Expected choice 2, got %d", gotChoice)
	}
}

func TestDismiss(t *testing.T) {
	mock := &MockGameService{
		DismissFunc: func(ctx context.Context, sessionID string) (*engine.Session, error) {
			return &engine.Session{Screen: engine.ScreenPlaying}, nil
		},
	}
	server := newTestServer(mock, &MockStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/abcd/dismiss", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestGetState(t *testing.T) {
	mock := &MockGameService{
		GetStateFunc: func(ctx context.Context, sessionID string) (*engine.Session, error) {
			return &engine.Session{Screen: engine.ScreenWin, Score: 500, FinalTime: 150}, nil
		},
	}
	server := newTestServer(mock, &MockStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/abcd/state", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var snap engine.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if snap.Score != 500 || snap.FinalTime != 150 {
		t.Errorf("Unexpected snapshot: %+v", snap)
	}
}

func TestGameQuestions(t *testing.T) {
	store := &MockStore{
		QuestionsFunc: func(ctx context.Context, gameID string) ([]engine.Question, error) {
			if gameID != "42" {
				t.Errorf("Unexpected game id %s", gameID)
			}
			return []engine.Question{
				{Text: "Q1?", Choices: [4]string{"a", "b", "c", "d"}, Correct: 1},
				{Text: "Q2?", Choices: [4]string{"e", "f", "g", "h"}, Correct: 3},
			}, nil
		},
	}
	server := newTestServer(&MockGameService{}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/game-questions/42", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var rows []platform.QuestionRow
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].QuestionText != "Q1?" || rows[0].ChoiceB != "b" || rows[0].CorrectAnswer != 1 {
		t.Errorf("Unexpected row: %+v", rows[0])
	}
}

func TestGameQuestionsMissing(t *testing.T) {
	store := &MockStore{
		QuestionsFunc: func(ctx context.Context, gameID string) ([]engine.Question, error) {
			return nil, fmt.Errorf("%w: game %s", platform.ErrNoQuestions, gameID)
		},
	}
	server := newTestServer(&MockGameService{}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/game-questions/42", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestSaveScore(t *testing.T) {
	var got *service.ScoreRecord
	store := &MockStore{
		SaveScoreFunc: func(ctx context.Context, record *service.ScoreRecord) error {
			got = record
			return nil
		},
	}
	server := newTestServer(&MockGameService{}, store)

	body := bytes.NewBufferString(`{"student_fid":"st1","game_id":"42","score":500,"time_taken":90}`)
	req := httptest.NewRequest(http.MethodPost, "/api/save-score", body)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got == nil || got.StudentID != "st1" || got.Score != 500 || got.TimeTaken != 90 {
		t.Errorf("Unexpected record: %+v", got)
	}
}

func TestSaveScoreMissingFields(t *testing.T) {
	server := newTestServer(&MockGameService{}, &MockStore{})

	body := bytes.NewBufferString(`{"score":500}`)
	req := httptest.NewRequest(http.MethodPost, "/api/save-score", body)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestLeaderboard(t *testing.T) {
	mock := &MockGameService{
		LeaderboardFunc: func(ctx context.Context, gameID string) ([]*service.LeaderboardEntry, error) {
			return []*service.LeaderboardEntry{
				{StudentName: "Ada", StudentSurname: "Lovelace", Score: 500, TimeTaken: 80},
			}, nil
		},
	}
	server := newTestServer(mock, &MockStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard/42", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var entries []*service.LeaderboardEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(entries) != 1 || entries[0].StudentName != "Ada" {
		t.Errorf("Unexpected leaderboard: %+v", entries)
	}
}

func TestLeaderboardEmptyIsArray(t *testing.T) {
	mock := &MockGameService{
		LeaderboardFunc: func(ctx context.Context, gameID string) ([]*service.LeaderboardEntry, error) {
			return nil, nil
		},
	}
	server := newTestServer(mock, &MockStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard/42", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("Expected empty JSON array, got %q", body)
	}
}

func TestListConfigs(t *testing.T) {
	mock := &MockGameService{
		ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
			return []*service.ConfigInfo{
				{ConfigID: "classic", Name: "Classic Maze", Cols: 20, Rows: 19, Keys: 3, Doors: 5},
			}, nil
		},
	}
	server := newTestServer(mock, &MockStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/configs", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var configs []*service.ConfigInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &configs); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(configs) != 1 || configs[0].ConfigID != "classic" {
		t.Errorf("Unexpected configs: %+v", configs)
	}
}

func TestGetConfigStripsExtension(t *testing.T) {
	gotName := ""
	mock := &MockGameService{
		LoadConfigFunc: func(ctx context.Context, configName string) (*engine.MazeConfig, error) {
			gotName = configName
			return engine.DefaultMazeConfig(), nil
		},
	}
	server := newTestServer(mock, &MockStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/configs/classic.json", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if gotName != "classic" {
		t.Errorf("Expected name classic, got %q", gotName)
	}
}

func TestCreateConfig(t *testing.T) {
	savedName := ""
	mock := &MockGameService{
		SaveConfigFunc: func(ctx context.Context, configName string, config *engine.MazeConfig) error {
			savedName = configName
			return nil
		},
	}
	server := newTestServer(mock, &MockStore{})

	config := engine.DefaultMazeConfig()
	config.Name = "custom"
	body, _ := json.Marshal(config)

	req := httptest.NewRequest(http.MethodPost, "/api/configs", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if savedName != "custom" {
		t.Errorf("Expected name custom, got %q", savedName)
	}
}

func TestCreateConfigRequiresName(t *testing.T) {
	server := newTestServer(&MockGameService{}, &MockStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/configs", bytes.NewBufferString(`{"tile_size":30}`))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestWebSocketRequiresSession(t *testing.T) {
	server := newTestServer(&MockGameService{}, &MockStore{})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotImplemented {
		t.Errorf("Expected 501 with no hub configured, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	server := newTestServer(&MockGameService{}, &MockStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}
