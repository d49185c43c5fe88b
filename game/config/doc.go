// Package config provides level management for the labyrinth game.
//
// The config package handles:
//   - Loading levels from map files in the levels directory
//   - Optional YAML metadata next to each level
//   - Default level selection
//   - Level discovery and listing
//
// Level Format:
//
// Each level is stored as <id>.txt in the labyrinth map format: the width on
// the first line, the height on the second, then one line per row using
// W (wall), S (start), E (end) and . (empty). Any other character reads as an
// empty cell. An optional <id>.yaml holds display metadata:
//
//	name: The Classic
//	description: A small maze with a single exit
//
// Usage:
//
//	manager, err := config.NewManager("levels")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load a specific level
//	level, err := manager.LoadLevel("spiral")
//	if errors.Is(err, config.ErrLevelNotFound) {
//		level = manager.GetDefault()
//	}
//
//	// List available levels
//	levels, err := manager.ListLevels()
//
// The default level is "classic" when present, otherwise the first valid
// level in id order, otherwise a small built-in level.
package config
