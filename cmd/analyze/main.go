// Command analyze plays AI-vs-AI tournaments and prints how each difficulty
// tier fares against the others on every board size. Use it to check that
// hard really beats medium and medium really beats easy after tuning the AI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/wricardo/isolation-game/game/engine"
)

// Matchup is one pairing on one board size. First moves first as player 1.
type Matchup struct {
	BoardSize engine.BoardSize  `json:"board_size"`
	First     engine.Difficulty `json:"first"`
	Second    engine.Difficulty `json:"second"`
}

// MatchupResult aggregates the games of a matchup
type MatchupResult struct {
	Matchup
	Games      int     `json:"games"`
	FirstWins  int     `json:"first_wins"`
	SecondWins int     `json:"second_wins"`
	AvgTurns   float64 `json:"avg_turns"`
}

// FirstWinRate is the share of games won by the first player
func (r MatchupResult) FirstWinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.FirstWins) / float64(r.Games)
}

// TournamentOptions controls a tournament run
type TournamentOptions struct {
	Sizes        []engine.BoardSize
	Difficulties []engine.Difficulty
	Games        int
	Seed         int64
	Parallel     int
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Play AI-vs-AI Isolation tournaments across difficulties and board sizes",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "games", Value: 20, Usage: "Games per matchup"},
			&cli.StringFlag{Name: "sizes", Value: "5,7,9,11", Usage: "Comma separated board sizes"},
			&cli.StringFlag{Name: "difficulties", Value: "easy,medium,hard", Usage: "Comma separated AI tiers"},
			&cli.IntFlag{Name: "seed", Value: 1, Usage: "Base seed; each matchup derives its own"},
			&cli.IntFlag{Name: "parallel", Value: 4, Usage: "Matchups played concurrently"},
			&cli.BoolFlag{Name: "json", Usage: "Print results as JSON"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sizes, err := parseSizes(cmd.String("sizes"))
			if err != nil {
				return err
			}
			difficulties, err := parseDifficulties(cmd.String("difficulties"))
			if err != nil {
				return err
			}

			results, err := runTournament(ctx, TournamentOptions{
				Sizes:        sizes,
				Difficulties: difficulties,
				Games:        cmd.Int("games"),
				Seed:         int64(cmd.Int("seed")),
				Parallel:     cmd.Int("parallel"),
			})
			if err != nil {
				return err
			}

			if cmd.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			printReport(os.Stdout, results)
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseSizes(s string) ([]engine.BoardSize, error) {
	var sizes []engine.BoardSize
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid board size %q", field)
		}
		size, err := engine.ParseBoardSize(n)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no board sizes given")
	}
	return sizes, nil
}

func parseDifficulties(s string) ([]engine.Difficulty, error) {
	var levels []engine.Difficulty
	for _, field := range strings.Split(s, ",") {
		level := engine.Difficulty(strings.ToLower(strings.TrimSpace(field)))
		if level == "" {
			continue
		}
		if !level.Valid() {
			return nil, fmt.Errorf("%w: %s", engine.ErrInvalidDifficulty, level)
		}
		levels = append(levels, level)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no difficulties given")
	}
	return levels, nil
}

// matchups pairs every difficulty with every other, both ways round, on every size
func matchups(sizes []engine.BoardSize, levels []engine.Difficulty) []Matchup {
	var out []Matchup
	for _, size := range sizes {
		for _, first := range levels {
			for _, second := range levels {
				out = append(out, Matchup{BoardSize: size, First: first, Second: second})
			}
		}
	}
	return out
}

// runTournament plays opts.Games games for every matchup. Matchup i uses seed
// opts.Seed+i, so results do not depend on scheduling.
func runTournament(ctx context.Context, opts TournamentOptions) ([]MatchupResult, error) {
	if opts.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", opts.Games)
	}

	all := matchups(opts.Sizes, opts.Difficulties)
	results := make([]MatchupResult, len(all))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}

	for i, m := range all {
		g.Go(func() error {
			ai := engine.NewSeededAIPlayer(opts.Seed + int64(i))
			result := MatchupResult{Matchup: m}
			totalTurns := 0

			for n := 0; n < opts.Games; n++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				winner, turns, err := playGame(ai, m)
				if err != nil {
					return fmt.Errorf("%dx%d %s vs %s: %w", m.BoardSize, m.BoardSize, m.First, m.Second, err)
				}
				result.Games++
				totalTurns += turns
				if winner == engine.PlayerOne {
					result.FirstWins++
				} else {
					result.SecondWins++
				}
			}

			result.AvgTurns = float64(totalTurns) / float64(result.Games)
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// playGame plays one game to the end and returns the winner and the number of
// finished turns
func playGame(ai *engine.AIPlayer, m Matchup) (engine.PlayerID, int, error) {
	config := &engine.GameConfig{
		Name:      "analyze",
		BoardSize: int(m.BoardSize),
		GameMode:  engine.PlayerVsPlayer,
	}
	config.ApplyDefaults()

	game, err := engine.NewEngine(config)
	if err != nil {
		return 0, 0, err
	}

	levels := map[engine.PlayerID]engine.Difficulty{
		engine.PlayerOne: m.First,
		engine.PlayerTwo: m.Second,
	}

	// every turn removes a square or ends the game, so this bounds the loop
	maxTurns := int(m.BoardSize) * int(m.BoardSize)
	for turns := 0; turns <= maxTurns; turns++ {
		if winner, over := game.Winner(); over {
			return winner, turns, nil
		}

		current := game.CurrentPlayer()
		self := game.PlayerState(current)
		opp := game.PlayerState(current.Other())

		to := ai.ChooseMove(game.Board(), self.Position, opp.Position, levels[current])
		if err := game.SubmitMove(to); err != nil {
			return 0, turns, fmt.Errorf("player %d move to %s: %w", current, to, err)
		}

		// the move finalizes on its own when nothing is left to remove
		if game.Phase() != engine.AwaitingRemoval {
			continue
		}
		p := ai.ChooseRemoval(game.Board(), to, opp.Position, levels[current])
		if err := game.SubmitRemoval(p); err != nil {
			return 0, turns, fmt.Errorf("player %d removal at %s: %w", current, p, err)
		}
	}
	return 0, maxTurns, fmt.Errorf("game did not finish within %d turns", maxTurns)
}

func printReport(w io.Writer, results []MatchupResult) {
	var size engine.BoardSize
	for _, r := range results {
		if r.BoardSize != size {
			size = r.BoardSize
			fmt.Fprintf(w, "\n=== %dx%d ===\n", size, size)
			fmt.Fprintf(w, "%-8s vs %-8s %6s %6s %6s %8s\n", "first", "second", "games", "P1", "P2", "turns")
		}
		fmt.Fprintf(w, "%-8s vs %-8s %6d %6d %6d %8.1f  (P1 %3.0f%%)\n",
			r.First, r.Second, r.Games, r.FirstWins, r.SecondWins, r.AvgTurns, 100*r.FirstWinRate())
	}
}
