package game

import (
	"log/slog"

	"github.com/pthm-cable/driftmaze/maze"
	"github.com/pthm-cable/driftmaze/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.mazeSnapshot())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	// Check for bookmarks
	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// mazeSnapshot samples the maze state at a window boundary.
func (g *Game) mazeSnapshot() telemetry.MazeSnapshot {
	root := g.grid.Node(g.graph.Root())
	depthMean, depthMax := g.treeDepth()
	return telemetry.MazeSnapshot{
		RootX:       root.X,
		RootY:       root.Y,
		WallCount:   g.walls.WallCount(),
		LinkCount:   g.walls.LinkCount(),
		DepthMean:   depthMean,
		DepthMax:    depthMax,
		Visible:     g.fog.VisibleCount(),
		Explored:    g.fog.ExploredCount(),
		FogElements: g.fog.Indexed(),
		Stamina:     float64(g.observer.State().Stamina),
	}
}

// treeDepth returns the mean and max distance from every node to the root.
func (g *Game) treeDepth() (mean float64, maxDepth int) {
	n := g.grid.Len()
	if n == 0 {
		return 0, 0
	}
	total := 0
	for i := 0; i < n; i++ {
		d := g.graph.Depth(maze.NodeID(i))
		total += d
		if d > maxDepth {
			maxDepth = d
		}
	}
	return float64(total) / float64(n), maxDepth
}
