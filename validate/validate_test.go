package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arcads/maze-escape/game/engine"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

const validConfigJSON = `{
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

func TestValidateConfig_Valid(t *testing.T) {
	path := writeConfigFile(t, validConfigJSON)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, got errors: %v", result.Errors)
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/non/existent/config.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{"name": "test", invalid}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}
}

func TestValidateConfig_StructuralFailure(t *testing.T) {
	// Two start tiles
	path := writeConfigFile(t, `{
		"name": "test",
		"description": "Two starts",
		"tile_size": 30,
		"move_speed": 4,
		"layout": [
			"#####",
			"#SS.#",
			"#...#",
			"#..E#",
			"#####"
		],
		"keys": [],
		"doors": [],
		"messages": {
			"key_found_title": "KEY %d FOUND",
			"locked_title": "LOCKED",
			"locked_text": "You need KEY %d!",
			"shortcut_denied": "Not yet!",
			"wrong_answer": "Wrong!",
			"win_title": "WIN!"
		}
	}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected structural validation to reject two start tiles")
	}
}

func TestValidateConnectivity_AllReachable(t *testing.T) {
	config := &engine.MazeConfig{
		Layout: []string{
			"#####",
			"#S..#",
			"#.#.#",
			"#..E#",
			"#####",
		},
		Keys: []engine.KeyConfig{
			{ID: 1, X: 3, Y: 1},
		},
	}

	result := validateConnectivity(config)
	if !result.Valid {
		t.Errorf("Expected connectivity to pass, got %v", result.Errors)
	}
}

func TestValidateConnectivity_PortalBridgesRegions(t *testing.T) {
	// The exit row is sealed; only the portal door at (3,1) crosses over.
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

	result := validateConnectivity(config)
	if !result.Valid {
		t.Errorf("Expected portal to bridge the regions, got %v", result.Errors)
	}

	config.Doors = nil
	result = validateConnectivity(config)
	if result.Valid {
		t.Error("Expected connectivity to fail without the portal")
	}
}

func TestValidateConnectivity_UnreachableKey(t *testing.T) {
	config := &engine.MazeConfig{
		Layout: []string{
			"#######",
			"#S...E#",
			"#######",
			"##.####",
			"#######",
		},
		Keys: []engine.KeyConfig{
			{ID: 1, X: 2, Y: 3},
		},
	}

	result := validateConnectivity(config)
	if result.Valid {
		t.Error("Expected connectivity to flag the sealed key chamber")
	}
}

func TestValidateConfig_ClassicMap(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "configs", "classic.json"))
	if err != nil {
		t.Skipf("classic.json not available: %v", err)
	}
	path := writeConfigFile(t, string(data))

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected the classic map to validate, got %v", result.Errors)
	}
}
