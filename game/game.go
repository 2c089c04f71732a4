// Package game wires the maze systems into a fixed-order simulation step.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/driftmaze/config"
	"github.com/pthm-cable/driftmaze/maze"
	"github.com/pthm-cable/driftmaze/systems"
	"github.com/pthm-cable/driftmaze/telemetry"
)

// Options configures a new game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	StepsPerUpdate int
	Config         *config.Config // nil uses config.Cfg()
}

// Game holds the maze world and every system that acts on it.
type Game struct {
	cfg *config.Config

	world *ecs.World
	grid  *maze.Grid
	graph *maze.Graph

	walker     *systems.RootWalker
	walls      *systems.WallSystem
	visibility *systems.VisibilitySampler
	fog        *systems.FogSystem
	observer   *systems.ObserverSystem
	autopilot  *autopilot

	rng     *rand.Rand
	rngSeed int64

	tick           int32
	paused         bool
	stepsPerUpdate int

	// Invariant checking
	validate      bool
	violations    int
	lastViolation error

	// Telemetry
	perfCollector    *telemetry.PerfCollector
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
	lastStats        telemetry.WindowStats
}

// NewGameWithOptions builds the grid, the initial tree and every system,
// then performs the first wall sync.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	policy, err := maze.ParseExclusionPolicy(cfg.Walker.Exclusion)
	if err != nil {
		return nil, fmt.Errorf("walker config: %w", err)
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	world := ecs.NewWorld()
	grid := maze.NewGrid(cfg.Maze.Rows, cfg.Maze.Cols, cfg.Derived.ScreenW32, cfg.Derived.ScreenH32)
	graph := maze.NewGraph(grid)
	cell := grid.CellSize()
	viewDistance := cell * float32(cfg.Maze.ViewDistance)
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:     cfg,
		world:   world,
		grid:    grid,
		graph:   graph,
		rng:     rng,
		rngSeed: opts.Seed,

		stepsPerUpdate: stepsPerUpdate,
		validate:       cfg.Maze.Validate,

		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:        telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		logStats:         opts.LogStats,
	}

	g.walker = systems.NewRootWalker(graph, rng, float32(cfg.Walker.Interval), policy, viewDistance)
	g.walls = systems.NewWallSystem(world, graph, float32(cfg.Maze.PathThickness), float32(cfg.Walls.SyncInterval))
	g.visibility = systems.NewVisibilitySampler(cfg.Visibility.NumRays, viewDistance)
	g.fog = systems.NewFogSystem(world, grid, cell*float32(cfg.Visibility.RevealRadius))

	start := grid.Node(grid.At(grid.Cols()/2, grid.Rows()/2)).Position
	g.observer = systems.NewObserverSystem(world, grid, observerParams(cfg, cell), start)
	g.autopilot = newAutopilot(grid, graph, rng, g.walls.PathWidth())

	res := g.walls.Setup()
	g.fog.Rebuild()
	g.visibility.Update(start, g.walls.Colliders())
	g.fog.Update(g.visibility.Points())

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		g.outputManager = om
	}

	slog.Info("maze ready",
		"rows", grid.Rows(),
		"cols", grid.Cols(),
		"cell_size", cell,
		"walls", res.Walls,
		"links", res.Links,
		"colliders", g.walls.Colliders().Len(),
		"exclusion", policy.String(),
		"seed", opts.Seed,
	)

	return g, nil
}

// observerParams converts cell-relative observer config to world units.
func observerParams(cfg *config.Config, cell float32) systems.ObserverParams {
	oc := cfg.Observer
	return systems.ObserverParams{
		Radius:         cell * float32(oc.Radius),
		Speed:          float32(oc.Speed),
		SprintFactor:   float32(oc.SprintFactor),
		SprintDrain:    float32(oc.SprintDrain),
		SprintRecovery: float32(oc.SprintRecovery),
		RecoveryDelay:  float32(oc.RecoveryDelay),
		RangeRadius:    cell * float32(oc.RangeCells),
	}
}

// Tick returns the number of completed simulation steps.
func (g *Game) Tick() int32 { return g.tick }

// Seed returns the RNG seed the game was built with.
func (g *Game) Seed() int64 { return g.rngSeed }

// Config returns the configuration in use.
func (g *Game) Config() *config.Config { return g.cfg }

// World returns the ECS world holding the maze geometry.
func (g *Game) World() *ecs.World { return g.world }

// Grid returns the maze grid.
func (g *Game) Grid() *maze.Grid { return g.grid }

// Graph returns the maze tree.
func (g *Game) Graph() *maze.Graph { return g.graph }

// Walker returns the root walker.
func (g *Game) Walker() *systems.RootWalker { return g.walker }

// Walls returns the wall synchronizer.
func (g *Game) Walls() *systems.WallSystem { return g.walls }

// Visibility returns the ray-cast sampler.
func (g *Game) Visibility() *systems.VisibilitySampler { return g.visibility }

// Fog returns the fog system.
func (g *Game) Fog() *systems.FogSystem { return g.fog }

// Observer returns the observer system.
func (g *Game) Observer() *systems.ObserverSystem { return g.observer }

// PerfCollector returns the per-phase timing collector.
func (g *Game) PerfCollector() *telemetry.PerfCollector { return g.perfCollector }

// LastStats returns the most recently flushed telemetry window.
func (g *Game) LastStats() telemetry.WindowStats { return g.lastStats }

// Paused reports whether maze mutation is suspended.
func (g *Game) Paused() bool { return g.paused }

// SetPaused suspends or resumes the root walk and wall sync.
func (g *Game) SetPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	slog.Info("pause toggled", "paused", paused, "tick", g.tick)
}

// TogglePaused flips the paused state and returns the new value.
func (g *Game) TogglePaused() bool {
	g.SetPaused(!g.paused)
	return g.paused
}

// StepsPerUpdate returns how many ticks each update advances.
func (g *Game) StepsPerUpdate() int { return g.stepsPerUpdate }

// SetStepsPerUpdate sets the ticks per update, clamped to [1, 10].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(1, min(n, 10))
}

// SetValidate enables or disables per-tick invariant checks.
func (g *Game) SetValidate(on bool) { g.validate = on }

// Validating reports whether per-tick invariant checks run.
func (g *Game) Validating() bool { return g.validate }

// Violations returns how many invariant checks have failed.
func (g *Game) Violations() int { return g.violations }

// LastViolation returns the most recent invariant failure, or nil.
func (g *Game) LastViolation() error { return g.lastViolation }

// SetStatsCallback registers fn to receive every flushed telemetry window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) { g.statsCallback = fn }

// Unload releases output files.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
		g.outputManager = nil
	}
}
