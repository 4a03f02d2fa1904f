package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arcads/maze-escape/game/engine"
)

func TestFindTile(t *testing.T) {
	layout := []string{
		"#####",
		"#S.E#",
		"#####",
	}

	start, ok := findTile(layout, 'S')
	if !ok {
		t.Fatal("Expected to find start tile")
	}
	if start.X != 1 || start.Y != 1 {
		t.Errorf("Expected start at (1,1), got (%d,%d)", start.X, start.Y)
	}

	exit, ok := findTile(layout, 'E')
	if !ok {
		t.Fatal("Expected to find exit tile")
	}
	if exit.X != 3 || exit.Y != 1 {
		t.Errorf("Expected exit at (3,1), got (%d,%d)", exit.X, exit.Y)
	}

	if _, ok := findTile(layout, 'X'); ok {
		t.Error("Expected not to find 'X' tile")
	}
}

func TestReachableTiles(t *testing.T) {
	config := &engine.MazeConfig{
		Layout: []string{
			"#####",
			"#S..#",
			"###.#",
			"#E..#",
			"#####",
		},
	}

	reachable := reachableTiles(config, AnalysisPoint{1, 1})

	if !reachable[AnalysisPoint{3, 1}] {
		t.Error("Expected (3,1) to be reachable")
	}
	if !reachable[AnalysisPoint{1, 3}] {
		t.Error("Expected exit at (1,3) to be reachable through the corridor")
	}
	if reachable[AnalysisPoint{0, 0}] {
		t.Error("Expected wall at (0,0) to be unreachable")
	}
}

func TestReachableTiles_PortalBridgesRegions(t *testing.T) {
	// The exit row is walled off from the start; only the portal door at
	// (3,1) can cross over.
	config := &engine.MazeConfig{
		Layout: []string{
			"#####",
			"#S..#",
			"#####",
			"#..E#",
			"#####",
		},
		Doors: []engine.DoorConfig{
			{ID: 1, X: 3, Y: 1, Portal: true, DestX: 1, DestY: 3},
		},
	}

	withPortal := reachableTiles(config, AnalysisPoint{1, 1})
	if !withPortal[AnalysisPoint{3, 3}] {
		t.Error("Expected exit region to be reachable via the portal")
	}

	config.Doors = nil
	withoutPortal := reachableTiles(config, AnalysisPoint{1, 1})
	if withoutPortal[AnalysisPoint{3, 3}] {
		t.Error("Expected exit region to be unreachable without the portal")
	}
}

func TestAnalyzeConfig_ValidFile(t *testing.T) {
	validConfig := `{
		"name": "test",
		"description": "Test maze",
		"tile_size": 30,
		"move_speed": 4,
		"layout": [
			"#####",
			"#S..#",
			"#.#.#",
			"#..E#",
			"#####"
		],
		"keys": [
			{"id": 1, "x": 3, "y": 1, "clue": "hint"}
		],
		"doors": [],
		"messages": {
			"key_found_title": "KEY %d FOUND",
			"locked_title": "LOCKED",
			"locked_text": "You need KEY %d!",
			"shortcut_denied": "Not yet!",
			"wrong_answer": "Wrong!",
			"win_title": "WIN!"
		}
	}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(validConfig)); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpfile.Close()

	if err := analyzeConfig(tmpfile.Name(), false); err != nil {
		t.Errorf("Expected analysis to pass, got %v", err)
	}
}

func TestAnalyzeConfig_InvalidFile(t *testing.T) {
	if err := analyzeConfig("/non/existent/file.json", false); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestAnalyzeConfig_InvalidJSON(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(`{"name": "test", invalid json}`)); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpfile.Close()

	if err := analyzeConfig(tmpfile.Name(), false); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestAnalyzeConfig_UnreachableKey(t *testing.T) {
	// The key sits in a sealed chamber with no portal leading in.
	config := `{
		"name": "sealed",
		"description": "Key in a sealed chamber",
		"tile_size": 30,
		"move_speed": 4,
		"layout": [
			"#######",
			"#S...E#",
			"#######",
			"##.####",
			"#######"
		],
		"keys": [
			{"id": 1, "x": 2, "y": 3, "clue": "hint"}
		],
		"doors": [],
		"messages": {}
	}`

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sealed.json")
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if err := analyzeConfig(configPath, false); err == nil {
		t.Error("Expected analysis to flag the unreachable key")
	}
}

func TestAnalyzeConfig_StrictRejectsInvalid(t *testing.T) {
	// Structurally fine JSON that fails full validation (no messages).
	config := `{
		"name": "strict",
		"description": "Valid grid, missing messages",
		"tile_size": 30,
		"move_speed": 4,
		"layout": [
			"#####",
			"#S.E#",
			"#####"
		],
		"keys": [],
		"doors": [],
		"messages": {}
	}`

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "strict.json")
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if err := analyzeConfig(configPath, true); err == nil {
		t.Error("Expected strict analysis to fail validation")
	}
	if err := analyzeConfig(configPath, false); err != nil {
		t.Errorf("Expected non-strict analysis to pass, got %v", err)
	}
}

func TestAnalyzeConfig_ClassicMap(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "configs", "classic.json"))
	if err != nil {
		t.Skipf("classic.json not available: %v", err)
	}

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "classic.json")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("Failed to copy config: %v", err)
	}

	if err := analyzeConfig(configPath, true); err != nil {
		t.Errorf("Expected the classic map to pass strict analysis, got %v", err)
	}
}
