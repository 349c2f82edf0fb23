// Command validate checks the game presets in a directory (../configs by
// default, or the directories and files given as arguments). It checks:
//   - The file parses as JSON (.json) or YAML (.yaml, .yml) with no unknown keys
//   - Required fields and allowed values (board size, mode, AI tier, colors, delays)
//   - The preset builds a playable game: player 1 has an opening move
//   - No two files in a directory define the same preset ID
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/isolation-game/game/config"
	"github.com/wricardo/isolation-game/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Messages contains informational lines; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Messages []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Messages = append(r.Messages, "✓ "+fmt.Sprintf(format, args...))
}

// validatePreset loads and validates a single preset file
func validatePreset(filePath string) ValidationResult {
	result := ValidationResult{
		File:     filepath.Base(filePath),
		Valid:    true,
		Messages: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	if err := checkKnownFields(filePath, data); err != nil {
		result.fail("Unknown or malformed fields: %v", err)
		return result
	}

	preset, err := config.ReadPreset(filePath)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	result.info("Name: %s", preset.Name)
	if preset.Description == "" {
		result.Messages = append(result.Messages, "⚠ No description")
	}
	result.info("Board: %dx%d, mode %s, AI %s", preset.BoardSize, preset.BoardSize, preset.GameMode, preset.AIDifficulty)
	result.info("Colors: player 1 %s, player 2 %s", preset.Player1Color, preset.Player2Color)

	game, err := engine.NewEngine(preset)
	if err != nil {
		result.fail("Failed to start a game: %v", err)
		return result
	}
	opening := len(game.LegalMoves())
	if opening == 0 {
		result.fail("Player 1 has no opening move")
		return result
	}
	result.info("Playable: player 1 has %d opening moves", opening)

	return result
}

// checkKnownFields decodes data strictly so misspelled keys are reported
// instead of silently falling back to defaults
func checkKnownFields(path string, data []byte) error {
	var preset engine.GameConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		return dec.Decode(&preset)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(&preset)
	}
}

// presetFiles lists the preset files of dir, sorted by name
func presetFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// duplicateIDs reports preset IDs defined by more than one file, e.g.
// quick.json and quick.yaml
func duplicateIDs(files []string) map[string][]string {
	byID := make(map[string][]string)
	for _, file := range files {
		base := filepath.Base(file)
		id := strings.TrimSuffix(base, filepath.Ext(base))
		byID[id] = append(byID[id], base)
	}
	for id, names := range byID {
		if len(names) < 2 {
			delete(byID, id)
		}
	}
	return byID
}

// validateDir validates every preset in dir
func validateDir(dir string) ([]ValidationResult, error) {
	files, err := presetFiles(dir)
	if err != nil {
		return nil, err
	}

	dupes := duplicateIDs(files)
	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		result := validatePreset(file)
		base := filepath.Base(file)
		if names, ok := dupes[strings.TrimSuffix(base, filepath.Ext(base))]; ok {
			result.fail("Preset ID defined more than once: %s", strings.Join(names, ", "))
		}
		results = append(results, result)
	}
	return results, nil
}

// main validates the given directories or files (default ../configs),
// printing a concise report and exiting with non-zero status if any are invalid.
func main() {
	targets := os.Args[1:]
	if len(targets) == 0 {
		targets = []string{"../configs"}
	}

	var results []ValidationResult
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if !info.IsDir() {
			results = append(results, validatePreset(target))
			continue
		}
		dirResults, err := validateDir(target)
		if err != nil {
			fmt.Printf("Error finding preset files: %v\n", err)
			os.Exit(1)
		}
		results = append(results, dirResults...)
	}

	if !printReport(results) {
		os.Exit(1)
	}
}

// printReport prints every result and reports whether all were valid
func printReport(results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, msg := range result.Messages {
				fmt.Println("  " + msg)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, msg := range result.Messages {
				if !strings.HasPrefix(msg, "✓") {
					fmt.Println("  ❌ " + msg)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	switch {
	case len(results) == 0:
		fmt.Println("⚠ No preset files found")
	case allValid:
		fmt.Println("✅ All presets are valid!")
	default:
		fmt.Println("❌ Some presets have errors")
	}
	return allValid
}
