// Headless soak test for the drifting maze. Runs the root walk and wall
// sync for many ticks and checks the tree and wall invariants after each.
//
// Usage: go run ./cmd/mazecheck -rows 9 -cols 15 -ticks 100000
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/driftmaze/config"
	"github.com/pthm-cable/driftmaze/game"
)

// formatDuration formats a duration as MM:SS or HH:MM:SS for longer runs.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run performs the soak check and returns the process exit code. Deferred
// cleanup runs before the caller exits.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mazecheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Base config YAML file (empty = use defaults)")
	rows := fs.Int("rows", 0, "Grid rows (0 = use config)")
	cols := fs.Int("cols", 0, "Grid columns (0 = use config)")
	ticks := fs.Int("ticks", 100000, "Ticks to run")
	seed := fs.Int64("seed", 1, "RNG seed")
	exclusion := fs.String("exclusion", "", "Walker exclusion policy: none or view_distance (empty = use config)")
	walkInterval := fs.Float64("walk-interval", 0, "Seconds between root relocations (0 = use config)")
	outputDir := fs.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	if *rows > 0 {
		cfg.Maze.Rows = *rows
	}
	if *cols > 0 {
		cfg.Maze.Cols = *cols
	}
	if *exclusion != "" {
		cfg.Walker.Exclusion = *exclusion
	}
	if *walkInterval > 0 {
		cfg.Walker.Interval = *walkInterval
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 1
	}
	cfg.Maze.Validate = true

	g, err := game.NewGameWithOptions(game.Options{Seed: *seed, Config: cfg, OutputDir: *outputDir})
	if err != nil {
		fmt.Fprintf(stderr, "failed to start: %v\n", err)
		return 1
	}
	defer g.Unload()

	fmt.Fprintf(stdout, "Checking %dx%d maze, %d ticks, seed %d, exclusion %s\n",
		cfg.Maze.Rows, cfg.Maze.Cols, *ticks, *seed, cfg.Walker.Exclusion)

	start := time.Now()
	lastRoot := g.Graph().Root()
	moves := 0
	for i := 0; i < *ticks; i++ {
		g.UpdateHeadless()

		if root := g.Graph().Root(); root != lastRoot {
			moves++
			lastRoot = root
		}
		if err := g.CheckInvariants(); err != nil {
			fmt.Fprintf(stderr, "invariant violated at tick %d: %v\n", g.Tick(), err)
			fmt.Fprint(stderr, g.MazeString())
			return 1
		}

		if (i+1)%10000 == 0 {
			fmt.Fprintf(stdout, "  tick %d  root moves %d  elapsed %s\n", i+1, moves, formatDuration(time.Since(start)))
		}
	}

	fmt.Fprintf(stdout, "OK: %d ticks, %d root moves, %s\n", g.Tick(), moves, formatDuration(time.Since(start)))
	fmt.Fprint(stdout, g.MazeString())
	return 0
}
