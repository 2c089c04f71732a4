package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/driftmaze/config"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	if c.WindowDurationTicks() != 10 {
		t.Fatalf("WindowDurationTicks = %d, want 10", c.WindowDurationTicks())
	}
	if c.ShouldFlush(9) {
		t.Error("ShouldFlush(9) = true, want false")
	}
	if !c.ShouldFlush(10) {
		t.Error("ShouldFlush(10) = false, want true")
	}
}

func TestCollectorWindowTicks(t *testing.T) {
	tests := []struct {
		name   string
		window float64
		dt     float32
		want   int32
	}{
		{"tenth second ticks", 1.0, 0.1, 10},
		{"default 60hz ten seconds", 10.0, 0.016666667, 600},
		{"60hz one second", 1.0, 1.0 / 60, 60},
		{"window below one tick", 0.001, 0.1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCollector(tc.window, tc.dt)
			if got := c.WindowDurationTicks(); got != tc.want {
				t.Errorf("WindowDurationTicks = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCollectorWindowFromDefaults(t *testing.T) {
	cfg := config.Default()
	c := NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT32)
	want := int32(math.Round(cfg.Telemetry.StatsWindow / cfg.Physics.DT))
	if got := c.WindowDurationTicks(); got != want {
		t.Errorf("WindowDurationTicks = %d, want %d", got, want)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.1)

	c.RecordWalk(true)
	c.RecordWalk(true)
	c.RecordWalk(false)
	c.RecordSync(true)
	c.RecordSync(false)
	c.RecordViolation()
	c.RecordSprint()
	c.RecordVisibility(100, 5000, 30, 90)
	c.RecordVisibility(200, 7000, 60, 90)

	stats := c.Flush(10, MazeSnapshot{RootX: 3, RootY: 4, FogElements: 10, Visible: 2, Explored: 3})

	if stats.Relocations != 2 || stats.SkippedWalks != 1 {
		t.Errorf("walks = %d/%d, want 2/1", stats.Relocations, stats.SkippedWalks)
	}
	if stats.Syncs != 2 || stats.ChangedSyncs != 1 {
		t.Errorf("syncs = %d/%d, want 2/1", stats.Syncs, stats.ChangedSyncs)
	}
	if stats.Violations != 1 || stats.SprintTicks != 1 {
		t.Errorf("violations=%d sprint=%d, want 1/1", stats.Violations, stats.SprintTicks)
	}
	if math.Abs(stats.VisRadiusMean-150) > 1e-9 {
		t.Errorf("VisRadiusMean = %v, want 150", stats.VisRadiusMean)
	}
	if math.Abs(stats.VisAreaMean-6000) > 1e-9 {
		t.Errorf("VisAreaMean = %v, want 6000", stats.VisAreaMean)
	}
	if math.Abs(stats.RayHitRate-0.5) > 1e-9 {
		t.Errorf("RayHitRate = %v, want 0.5", stats.RayHitRate)
	}
	if math.Abs(stats.ExploredFraction-0.5) > 1e-9 {
		t.Errorf("ExploredFraction = %v, want 0.5", stats.ExploredFraction)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-6 {
		t.Errorf("SimTimeSec = %v, want 1.0", stats.SimTimeSec)
	}

	// Counters reset for the next window
	next := c.Flush(20, MazeSnapshot{})
	if next.Relocations != 0 || next.Syncs != 0 || next.VisRadiusMean != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 10 {
		t.Errorf("WindowStartTick = %d, want 10", next.WindowStartTick)
	}
}
