package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arcads/maze-escape/game/engine"
	"github.com/arcads/maze-escape/game/service"
)

// Client is an HTTP Store implementation against a running platform
// backend. It speaks the same routes the web frontend uses.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a platform API client. baseURL is the backend root,
// e.g. "http://localhost:8081".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Questions fetches the question set for a game instance
func (c *Client) Questions(ctx context.Context, gameID string) ([]engine.Question, error) {
	endpoint := fmt.Sprintf("%s/api/game-questions/%s", c.baseURL, url.PathEscape(gameID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("questions request failed: %s", resp.Status)
	}

	var rows []QuestionRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: game %s", ErrNoQuestions, gameID)
	}

	questions := make([]engine.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, row.ToQuestion())
	}
	return questions, nil
}

// SaveScore submits a finished run to the platform
func (c *Client) SaveScore(ctx context.Context, record *service.ScoreRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}

	endpoint := c.baseURL + "/api/save-score"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit score: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("score request failed: %s", resp.Status)
	}
	return nil
}

// Leaderboard fetches the best runs for a game instance
func (c *Client) Leaderboard(ctx context.Context, gameID string) ([]*service.LeaderboardEntry, error) {
	endpoint := fmt.Sprintf("%s/api/leaderboard/%s", c.baseURL, url.PathEscape(gameID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leaderboard request failed: %s", resp.Status)
	}

	var entries []*service.LeaderboardEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}
	return entries, nil
}
