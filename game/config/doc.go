// Package config provides configuration management for the Maze Escape mini-game.
//
// The config package handles:
//   - Loading maze configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Maze configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Tile layout using character mapping (#=wall, .=path, S=start, E=exit)
//   - Key placements with their clue texts
//   - Door placements: required keys, portal destinations, the final door
//     and its prerequisite portals
//   - Popup messages for pickups, locked doors, and the win screen
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	mazeConfig, err := manager.LoadConfig("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Rectangular layout with exactly one start and one exit
//   - Keys and doors placed on open, non-overlapping tiles
//   - Door key references and portal destinations
//   - Exactly one final portal with portal-only prerequisites
//   - Required message templates
package config
