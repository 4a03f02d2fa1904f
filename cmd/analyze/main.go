// Command analyze prints quick, human-readable heuristics about maze
// configuration files. It summarizes dimensions, entity counts, and the
// door gating order, and flags keys, doors, or the exit that cannot be
// reached from the start tile (portal hops included).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/arcads/maze-escape/game/engine"
)

func main() {
	cmd := &cli.Command{
		Name:      "analyze",
		Usage:     "inspect maze configuration files",
		ArgsUsage: "[config.json ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Value: "configs",
				Usage: "directory scanned when no files are given",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "run full config validation and fail on errors",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		matches, err := filepath.Glob(filepath.Join(cmd.String("config-dir"), "*.json"))
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("no config files found in %s", cmd.String("config-dir"))
		}
		files = matches
	}

	failed := 0
	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		if err := analyzeConfig(file, cmd.Bool("strict")); err != nil {
			fmt.Printf("❌ %v\n", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d configs failed analysis", failed, len(files))
	}
	return nil
}

// AnalysisPoint denotes a grid coordinate used during analysis output.
type AnalysisPoint struct {
	X, Y int
}

func analyzeConfig(path string, strict bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	var config engine.MazeConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}

	if strict {
		if err := engine.ValidateMazeConfig(&config); err != nil {
			return err
		}
	}

	if len(config.Layout) == 0 || len(config.Layout[0]) == 0 {
		return fmt.Errorf("layout is empty")
	}

	rows := len(config.Layout)
	cols := len(config.Layout[0])

	start, foundStart := findTile(config.Layout, 'S')
	exit, foundExit := findTile(config.Layout, 'E')

	portals := 0
	finals := 0
	for _, d := range config.Doors {
		if d.Portal {
			portals++
		}
		if d.Final {
			finals++
		}
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Grid: %d x %d\n", cols, rows)
	fmt.Printf("Keys: %d\n", len(config.Keys))
	fmt.Printf("Doors: %d (%d portals, %d final)\n", len(config.Doors), portals, finals)
	if foundStart {
		fmt.Printf("Start: (%d, %d)\n", start.X, start.Y)
	} else {
		fmt.Println("⚠️  WARNING: no start (S) tile")
	}
	if foundExit {
		fmt.Printf("Exit: (%d, %d)\n", exit.X, exit.Y)
	} else {
		fmt.Println("⚠️  WARNING: no exit (E) tile")
	}

	// Gating summary: which key opens which door, where portals lead, and
	// what the final door demands.
	for _, d := range config.Doors {
		line := fmt.Sprintf("Door %d at (%d, %d)", d.ID, d.X, d.Y)
		if d.RequiredKey != 0 {
			line += fmt.Sprintf(", needs key %d", d.RequiredKey)
		} else {
			line += ", quiz only"
		}
		if d.Portal {
			line += fmt.Sprintf(", teleports to (%d, %d)", d.DestX, d.DestY)
		}
		if d.Final {
			line += fmt.Sprintf(", final, prerequisites %v", d.Prerequisites)
		}
		fmt.Println(line)
	}

	if !foundStart {
		return fmt.Errorf("cannot check reachability without a start tile")
	}

	// Reachability ignores locks and quizzes: a door that can ever open is
	// treated as open, so anything unreachable here is unreachable period.
	reachable := reachableTiles(&config, start)

	unreachableKeys := []AnalysisPoint{}
	for _, k := range config.Keys {
		if !reachable[AnalysisPoint{k.X, k.Y}] {
			unreachableKeys = append(unreachableKeys, AnalysisPoint{k.X, k.Y})
		}
	}
	unreachableDoors := []AnalysisPoint{}
	for _, d := range config.Doors {
		if !reachable[AnalysisPoint{d.X, d.Y}] {
			unreachableDoors = append(unreachableDoors, AnalysisPoint{d.X, d.Y})
		}
	}

	if len(unreachableKeys) > 0 {
		fmt.Printf("⚠️  CRITICAL: %d keys cannot be reached from the start!\n", len(unreachableKeys))
		for _, p := range unreachableKeys {
			fmt.Printf("   Unreachable key at (%d, %d)\n", p.X, p.Y)
		}
	} else {
		fmt.Println("✅ All keys are reachable from the start")
	}

	if len(unreachableDoors) > 0 {
		fmt.Printf("⚠️  CRITICAL: %d doors cannot be reached from the start!\n", len(unreachableDoors))
		for _, p := range unreachableDoors {
			fmt.Printf("   Unreachable door at (%d, %d)\n", p.X, p.Y)
		}
	} else {
		fmt.Println("✅ All doors are reachable from the start")
	}

	if foundExit {
		if reachable[exit] {
			fmt.Println("✅ Exit is reachable from the start")
		} else {
			fmt.Println("⚠️  CRITICAL: exit cannot be reached from the start!")
		}
	}

	if len(unreachableKeys) > 0 || len(unreachableDoors) > 0 || (foundExit && !reachable[exit]) {
		return fmt.Errorf("map has unreachable entities")
	}
	return nil
}

func findTile(layout []string, want byte) (AnalysisPoint, bool) {
	for y, row := range layout {
		for x := 0; x < len(row); x++ {
			if row[x] == want {
				return AnalysisPoint{x, y}, true
			}
		}
	}
	return AnalysisPoint{}, false
}

// reachableTiles flood-fills walkable tiles from the start. Portal doors
// contribute an extra edge from the door tile to its destination, since a
// portal is the only way between some regions of the classic map.
func reachableTiles(config *engine.MazeConfig, start AnalysisPoint) map[AnalysisPoint]bool {
	rows := len(config.Layout)

	walkable := func(p AnalysisPoint) bool {
		if p.Y < 0 || p.Y >= rows || p.X < 0 || p.X >= len(config.Layout[p.Y]) {
			return false
		}
		return config.Layout[p.Y][p.X] != '#'
	}

	portalAt := make(map[AnalysisPoint]AnalysisPoint)
	for _, d := range config.Doors {
		if d.Portal {
			portalAt[AnalysisPoint{d.X, d.Y}] = AnalysisPoint{d.DestX, d.DestY}
		}
	}

	visited := make(map[AnalysisPoint]bool)
	queue := []AnalysisPoint{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] || !walkable(current) {
			continue
		}
		visited[current] = true

		neighbors := []AnalysisPoint{
			{current.X - 1, current.Y},
			{current.X + 1, current.Y},
			{current.X, current.Y - 1},
			{current.X, current.Y + 1},
		}
		if dest, ok := portalAt[current]; ok {
			neighbors = append(neighbors, dest)
		}
		for _, n := range neighbors {
			if !visited[n] && walkable(n) {
				queue = append(queue, n)
			}
		}
	}
	return visited
}
