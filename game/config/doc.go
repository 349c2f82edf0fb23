// Package config provides preset management for the Isolation game server.
//
// The config package handles:
//   - Loading game presets from JSON and YAML files
//   - Preset validation through the engine's rules
//   - Default preset selection
//   - Preset discovery and listing
//
// Preset Format:
//
// Presets live in a single directory (./configs, CONFIG_DIR, or
// $XDG_CONFIG_HOME/isolation/presets). Each file defines:
//   - board_size: 5, 7, 9 or 11
//   - game_mode: "pvp" or "ai"
//   - ai_difficulty: "easy", "medium" or "hard"
//   - optional player colors and AI pacing delays
//
// Usage:
//
//	dir, _ := config.ResolveDir(os.Getenv("CONFIG_DIR"))
//	manager, err := config.NewManager(dir)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("quick")
//	presets, err := manager.ListConfigs()
package config
