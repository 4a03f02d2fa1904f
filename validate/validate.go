// Command validate checks the maze configuration JSON files in the
// ../configs directory. It runs the engine's structural validation (grid
// characters, single start and exit, entity placement, message strings)
// and then a connectivity pass: every key, door, and the exit must be
// reachable from the start, counting portal hops.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcads/maze-escape/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

type point struct {
	x, y int
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.MazeConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateMazeConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	connectivity := validateConnectivity(&config)
	if !connectivity.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, connectivity.Errors...)

	if result.Valid {
		portals := 0
		for _, d := range config.Doors {
			if d.Portal {
				portals++
			}
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", len(config.Layout[0]), len(config.Layout)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Keys: %d", len(config.Keys)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Doors: %d (%d portals)", len(config.Doors), portals))
	}

	return result
}

// validateConnectivity flood-fills from the start over walkable tiles,
// following portal destinations, and reports any key, door, or exit tile
// the fill never reaches. Locks and quizzes are ignored here: a door that
// can ever open counts as open.
func validateConnectivity(config *engine.MazeConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	height := len(config.Layout)
	width := len(config.Layout[0])

	walkable := func(x, y int) bool {
		if x < 0 || y < 0 || y >= height || x >= width {
			return false
		}
		return config.Layout[y][x] != '#'
	}

	var start point
	foundStart := false
	var exit point
	foundExit := false
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			switch config.Layout[y][x] {
			case 'S':
				start = point{x, y}
				foundStart = true
			case 'E':
				exit = point{x, y}
				foundExit = true
			}
		}
	}

	if !foundStart || !foundExit {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate connectivity: missing start or exit")
		return result
	}

	portalAt := make(map[point]point)
	for _, d := range config.Doors {
		if d.Portal {
			portalAt[point{d.X, d.Y}] = point{d.DestX, d.DestY}
		}
	}

	// Flood fill from the start
	visited := make(map[point]bool)
	queue := []point{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		neighbors := []point{
			{current.x - 1, current.y},
			{current.x + 1, current.y},
			{current.x, current.y - 1},
			{current.x, current.y + 1},
		}
		if dest, ok := portalAt[current]; ok {
			neighbors = append(neighbors, dest)
		}
		for _, n := range neighbors {
			if !visited[n] && walkable(n.x, n.y) {
				queue = append(queue, n)
			}
		}
	}

	unreachable := []string{}
	for _, k := range config.Keys {
		if !visited[point{k.X, k.Y}] {
			unreachable = append(unreachable, fmt.Sprintf("Key %d at (%d,%d)", k.ID, k.X, k.Y))
		}
	}
	for _, d := range config.Doors {
		if !visited[point{d.X, d.Y}] {
			unreachable = append(unreachable, fmt.Sprintf("Door %d at (%d,%d)", d.ID, d.X, d.Y))
		}
	}
	if !visited[exit] {
		unreachable = append(unreachable, fmt.Sprintf("Exit at (%d,%d)", exit.x, exit.y))
	}

	if len(unreachable) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d entities unreachable from start", len(unreachable)))
		for _, entity := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", entity))
		}
	} else {
		result.Errors = append(result.Errors, "✓ Connectivity: all keys, doors, and the exit reachable from start")
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
