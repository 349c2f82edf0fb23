// Package engine provides the core game logic for Isolation.
//
// The engine package implements the game mechanics including:
//   - Board and square lifecycle with two protected starting squares
//   - Move and removal legality (king moves, one removal per turn)
//   - The two-phase turn state machine and win detection
//   - Bounded undo history
//   - A difficulty-tiered single-ply AI opponent
//   - Configuration validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState is the read-only snapshot handed to
// collaborators, while GameConfig describes a named preset.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultGameConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Move player One down, then remove a square
//	if _, err := gameEngine.SelectCell(1, 3); err != nil {
//		log.Println(engine.RejectionCode(err))
//	}
//	gameEngine.SelectCell(2, 3)
//	state := gameEngine.GetState()
//
// Game Rules:
//
// Each turn the current player moves one square in any of the 8 directions
// onto a present, unoccupied square, then removes any present square that is
// neither a starting square nor occupied. A player who begins a turn with no
// legal move loses, and the player who moved last wins the round.
package engine
