package platform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arcads/maze-escape/game/service"
)

func TestClient_Questions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/game-questions/42" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]QuestionRow{
			{QuestionText: "First?", ChoiceA: "a", ChoiceB: "b", ChoiceC: "c", ChoiceD: "d", CorrectAnswer: 1},
			{QuestionText: "Second?", ChoiceA: "a", ChoiceB: "b", ChoiceC: "c", ChoiceD: "d", CorrectAnswer: 3},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	questions, err := client.Questions(context.Background(), "42")
	if err != nil {
		t.Fatalf("Failed to fetch questions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(questions))
	}
	if questions[0].Text != "First?" || questions[0].Correct != 1 {
		t.Errorf("Unexpected question: %+v", questions[0])
	}
	if questions[1].Choices != [4]string{"a", "b", "c", "d"} {
		t.Errorf("Unexpected choices: %v", questions[1].Choices)
	}
}

func TestClient_QuestionsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]QuestionRow{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Questions(context.Background(), "42"); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("Expected ErrNoQuestions, got %v", err)
	}
}

func TestClient_QuestionsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Questions(context.Background(), "42"); err == nil {
		t.Error("Expected error for server failure")
	}
}

func TestClient_SaveScore(t *testing.T) {
	var got service.ScoreRecord
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/save-score" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Unexpected content type %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Score saved!"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	record := &service.ScoreRecord{StudentID: "st1", GameID: "42", Score: 500, TimeTaken: 90}
	if err := client.SaveScore(context.Background(), record); err != nil {
		t.Fatalf("Failed to save score: %v", err)
	}
	if got != *record {
		t.Errorf("Server received %+v, want %+v", got, *record)
	}
}

func TestClient_SaveScoreRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	record := &service.ScoreRecord{StudentID: "st1", GameID: "42"}
	if err := client.SaveScore(context.Background(), record); err == nil {
		t.Error("Expected error for rejected score")
	}
}

func TestClient_Leaderboard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/leaderboard/42" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]*service.LeaderboardEntry{
			{StudentName: "Ada", StudentSurname: "Lovelace", Score: 500, TimeTaken: 80},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	entries, err := client.Leaderboard(context.Background(), "42")
	if err != nil {
		t.Fatalf("Failed to fetch leaderboard: %v", err)
	}
	if len(entries) != 1 || entries[0].StudentName != "Ada" {
		t.Errorf("Unexpected leaderboard: %+v", entries)
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Questions(ctx, "42"); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
