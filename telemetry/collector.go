package telemetry

import "math"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	relocations  int
	skippedWalks int
	syncs        int
	changedSyncs int
	violations   int
	sprintTicks  int

	// Per-tick visibility samples
	visRadius []float64
	visArea   []float64
	rayHits   int
	raysCast  int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		visRadius:           make([]float64, 0, ticksPerWindow),
		visArea:             make([]float64, 0, ticksPerWindow),
	}
}

// RecordWalk records one fired root walk.
func (c *Collector) RecordWalk(moved bool) {
	if moved {
		c.relocations++
	} else {
		c.skippedWalks++
	}
}

// RecordSync records one wall rebuild.
func (c *Collector) RecordSync(changed bool) {
	c.syncs++
	if changed {
		c.changedSyncs++
	}
}

// RecordViolation records a failed invariant check.
func (c *Collector) RecordViolation() {
	c.violations++
}

// RecordSprint records a tick spent sprinting.
func (c *Collector) RecordSprint() {
	c.sprintTicks++
}

// RecordVisibility records one visibility update.
func (c *Collector) RecordVisibility(meanRadius, area float64, hits, rays int) {
	c.visRadius = append(c.visRadius, meanRadius)
	c.visArea = append(c.visArea, area)
	c.rayHits += hits
	c.raysCast += rays
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// MazeSnapshot holds maze state sampled at window end.
type MazeSnapshot struct {
	RootX, RootY int
	WallCount    int
	LinkCount    int
	DepthMean    float64
	DepthMax     int
	Visible      int
	Explored     int
	FogElements  int
	Stamina      float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, snap MazeSnapshot) WindowStats {
	radius := Summarize(c.visRadius)
	area := Summarize(c.visArea)

	var hitRate, explored float64
	if c.raysCast > 0 {
		hitRate = float64(c.rayHits) / float64(c.raysCast)
	}
	if snap.FogElements > 0 {
		explored = float64(snap.Visible+snap.Explored) / float64(snap.FogElements)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Relocations:  c.relocations,
		SkippedWalks: c.skippedWalks,
		RootX:        snap.RootX,
		RootY:        snap.RootY,

		Syncs:        c.syncs,
		ChangedSyncs: c.changedSyncs,
		WallCount:    snap.WallCount,
		LinkCount:    snap.LinkCount,
		Violations:   c.violations,

		TreeDepthMean: snap.DepthMean,
		TreeDepthMax:  snap.DepthMax,

		VisRadiusMean: radius.Mean,
		VisRadiusStd:  radius.Std,
		VisRadiusP10:  radius.P10,
		VisRadiusP50:  radius.P50,
		VisRadiusP90:  radius.P90,
		VisAreaMean:   area.Mean,
		RayHitRate:    hitRate,

		VisibleGeometry:  snap.Visible,
		ExploredGeometry: snap.Explored,
		ExploredFraction: explored,

		SprintTicks: c.sprintTicks,
		Stamina:     snap.Stamina,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.relocations = 0
	c.skippedWalks = 0
	c.syncs = 0
	c.changedSyncs = 0
	c.violations = 0
	c.sprintTicks = 0
	c.visRadius = c.visRadius[:0]
	c.visArea = c.visArea[:0]
	c.rayHits = 0
	c.raysCast = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
