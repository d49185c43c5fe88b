// Command analyze inspects labyrinth map files. It prints dimensions and cell
// counts, checks that the exit can be reached from the start, and renders the
// grid with the player marked.
//
//	analyze stats levels/*.txt
//	analyze validate levels/*.txt
//	analyze render levels/classic.txt
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/labyrinth/game/engine"
	"github.com/wricardo/mcp-training/labyrinth/game/labyrinth"
)

// LevelReport is what analyze learns about a single map file.
type LevelReport struct {
	File          string
	Level         *engine.Level
	Err           error
	Counts        map[labyrinth.CellType]int
	Starts        []labyrinth.Coordinate
	Ends          []labyrinth.Coordinate
	PossibleMoves []string
	Reachable     int
	ExitReachable bool
}

// Valid reports whether the map parsed and its exit can be reached
func (r *LevelReport) Valid() bool {
	return r.Err == nil && len(r.Starts) > 0 && len(r.Ends) > 0 && r.ExitReachable
}

// Problems lists why a report is not valid
func (r *LevelReport) Problems() []string {
	if r.Err != nil {
		return []string{r.Err.Error()}
	}
	var problems []string
	if len(r.Starts) == 0 {
		problems = append(problems, "no start cell (S)")
	}
	if len(r.Ends) == 0 {
		problems = append(problems, "no exit cell (E)")
	}
	if len(r.Starts) > 0 && len(r.Ends) > 0 && !r.ExitReachable {
		problems = append(problems, "exit is not reachable from the start")
	}
	return problems
}

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "analyze",
		Usage:  "inspect labyrinth map files",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:      "stats",
				Usage:     "print dimensions, cell counts and start/exit positions",
				ArgsUsage: "<file>...",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					files, err := fileArgs(cmd)
					if err != nil {
						return err
					}
					for _, file := range files {
						printStats(out, analyzeFile(file))
					}
					return nil
				},
			},
			{
				Name:      "validate",
				Usage:     "check that maps parse and their exit is reachable",
				ArgsUsage: "<file>...",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					files, err := fileArgs(cmd)
					if err != nil {
						return err
					}
					invalid := 0
					for _, file := range files {
						report := analyzeFile(file)
						printValidation(out, report)
						if !report.Valid() {
							invalid++
						}
					}
					fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
					if invalid > 0 {
						fmt.Fprintf(out, "❌ %d of %d maps have errors\n", invalid, len(files))
						return fmt.Errorf("%d invalid maps", invalid)
					}
					fmt.Fprintln(out, "✅ All maps are valid!")
					return nil
				},
			},
			{
				Name:      "render",
				Usage:     "print the grid with the player on the start cell",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "view",
						Usage: "print only the 3x3 view around the player",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("render takes exactly one map file")
					}
					return render(out, cmd.Args().First(), cmd.Bool("view"))
				},
			},
		},
	}
}

func fileArgs(cmd *cli.Command) ([]string, error) {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return nil, fmt.Errorf("%s needs at least one map file", cmd.Name)
	}
	return files, nil
}

// analyzeFile loads a map file and collects its report
func analyzeFile(path string) *LevelReport {
	report := &LevelReport{File: filepath.Base(path)}

	level, err := engine.LoadLevelFile(path)
	if err != nil {
		report.Err = err
		return report
	}
	report.Level = level

	lab, err := level.Build()
	if err != nil {
		report.Err = err
		return report
	}

	report.Counts = map[labyrinth.CellType]int{}
	for _, t := range []labyrinth.CellType{labyrinth.Empty, labyrinth.Wall, labyrinth.Start, labyrinth.End} {
		report.Counts[t] = lab.Count(t)
	}
	report.Starts = lab.Find(labyrinth.Start)
	report.Ends = lab.Find(labyrinth.End)

	if len(report.Starts) == 0 {
		return report
	}
	for _, d := range lab.PossibleMoves() {
		report.PossibleMoves = append(report.PossibleMoves, d.String())
	}

	visited := reachableFrom(lab, lab.PlayerPosition())
	report.Reachable = len(visited)
	for _, end := range report.Ends {
		if visited[end] {
			report.ExitReachable = true
			break
		}
	}
	return report
}

// reachableFrom flood fills the non-wall cells reachable from start
func reachableFrom(lab *labyrinth.Labyrinth, start labyrinth.Coordinate) map[labyrinth.Coordinate]bool {
	visited := map[labyrinth.Coordinate]bool{start: true}
	queue := []labyrinth.Coordinate{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range []labyrinth.Direction{labyrinth.North, labyrinth.South, labyrinth.East, labyrinth.West} {
			next := current.Step(d)
			if visited[next] {
				continue
			}
			t, err := lab.Cell(next)
			if err != nil || t == labyrinth.Wall {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return visited
}

func printStats(out io.Writer, r *LevelReport) {
	fmt.Fprintf(out, "\n=== Analyzing %s ===\n", r.File)
	if r.Err != nil {
		fmt.Fprintf(out, "Error: %v\n", r.Err)
		return
	}

	fmt.Fprintf(out, "Grid: %d x %d\n", r.Level.Width, r.Level.Height)
	fmt.Fprintf(out, "Walls: %d\n", r.Counts[labyrinth.Wall])
	fmt.Fprintf(out, "Empty: %d\n", r.Counts[labyrinth.Empty])
	fmt.Fprintf(out, "Start: %s\n", formatCoordinates(r.Starts))
	fmt.Fprintf(out, "Exit: %s\n", formatCoordinates(r.Ends))

	if len(r.Starts) == 0 {
		fmt.Fprintln(out, "⚠️  WARNING: no start cell, the player starts at (0,0)")
		return
	}
	if len(r.Starts) > 1 {
		fmt.Fprintf(out, "⚠️  WARNING: %d start cells, the last one wins\n", len(r.Starts))
	}

	moves := "none"
	if len(r.PossibleMoves) > 0 {
		moves = strings.Join(r.PossibleMoves, ", ")
	}
	fmt.Fprintf(out, "Moves from start: %s\n", moves)
	fmt.Fprintf(out, "Reachable cells: %d\n", r.Reachable)
	if r.ExitReachable {
		fmt.Fprintln(out, "✅ Exit is reachable from the start")
	} else {
		fmt.Fprintln(out, "⚠️  CRITICAL: exit is not reachable from the start")
	}
}

func printValidation(out io.Writer, r *LevelReport) {
	fmt.Fprintf(out, "\n%s %s\n", strings.Repeat("=", 20), r.File)
	if r.Valid() {
		fmt.Fprintln(out, "✅ VALID")
		fmt.Fprintf(out, "  ✓ Grid: %dx%d\n", r.Level.Width, r.Level.Height)
		fmt.Fprintf(out, "  ✓ Reachable cells: %d\n", r.Reachable)
		return
	}
	fmt.Fprintln(out, "❌ INVALID")
	for _, problem := range r.Problems() {
		fmt.Fprintln(out, "  ❌ "+problem)
	}
}

func render(out io.Writer, path string, viewOnly bool) error {
	level, err := engine.LoadLevelFile(path)
	if err != nil {
		return err
	}
	lab, err := level.Build()
	if err != nil {
		return err
	}

	if viewOnly {
		for _, line := range engine.LocalView(lab) {
			fmt.Fprintln(out, line)
		}
		return nil
	}

	player := lab.PlayerPosition()
	for r, row := range lab.Rows() {
		line := []byte(row)
		if r == player.Row && player.Col >= 0 && player.Col < len(line) {
			line[player.Col] = engine.PlayerViewChar
		}
		fmt.Fprintln(out, string(line))
	}
	return nil
}

func formatCoordinates(coords []labyrinth.Coordinate) string {
	if len(coords) == 0 {
		return "none"
	}
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
