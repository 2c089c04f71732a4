package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few ticks
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseWallSync)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseVisibility)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Verify we got timing data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}

	// Verify phases are tracked
	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}

	if _, ok := stats.PhaseAvg[PhaseWallSync]; !ok {
		t.Error("expected wall_sync phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseVisibility]; !ok {
		t.Error("expected visibility phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Fill window completely
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseWallSync)
		time.Sleep(10 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Should have data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}

	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	// Durations well above timer granularity so the split is unambiguous
	for i := 0; i < 3; i++ {
		pc.StartTick()
		pc.StartPhase("fast")
		time.Sleep(1 * time.Millisecond)
		pc.StartPhase("slow")
		time.Sleep(10 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	fastPct := stats.PhasePct["fast"]
	slowPct := stats.PhasePct["slow"]

	if slowPct <= fastPct {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", slowPct, fastPct)
	}
	if stats.PhaseAvg["slow"] < 10*time.Millisecond {
		t.Errorf("slow phase avg = %v, want >= 10ms", stats.PhaseAvg["slow"])
	}
	if sum := fastPct + slowPct; sum > 100.5 {
		t.Errorf("phase shares sum to %v%%, want <= 100", sum)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// First call establishes baseline
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond) // ~60fps frame time
	// Second call measures duration
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}

	if stats.FPS <= 0 {
		t.Error("expected positive FPS")
	}

	// With 16ms frames, expect ~60 FPS (allow range 40-80)
	if stats.FPS < 40 || stats.FPS > 80 {
		t.Errorf("expected FPS between 40-80 with 16ms frame time, got %v", stats.FPS)
	}
}

func TestPerfCollector_TailLatency(t *testing.T) {
	pc := NewPerfCollector(20)

	for i := 0; i < 20; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseFog)
		if i == 19 {
			time.Sleep(5 * time.Millisecond)
		}
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.MaxTickDuration < 5*time.Millisecond {
		t.Errorf("MaxTickDuration = %v, want >= 5ms", stats.MaxTickDuration)
	}
	if stats.P95TickDuration > stats.MaxTickDuration || stats.P95TickDuration < stats.MinTickDuration {
		t.Errorf("P95 %v outside [%v, %v]", stats.P95TickDuration, stats.MinTickDuration, stats.MaxTickDuration)
	}
	if stats.P95TickDuration >= 5*time.Millisecond {
		t.Errorf("P95 %v should ignore a single slow tick in 20", stats.P95TickDuration)
	}
}

func TestPerfCollector_UnusedPhasesOmitted(t *testing.T) {
	pc := NewPerfCollector(4)
	pc.StartTick()
	pc.StartPhase(PhaseVisibility)
	time.Sleep(50 * time.Microsecond)
	pc.EndTick()

	stats := pc.Stats()
	if _, ok := stats.PhaseAvg[PhaseRootWalk]; ok {
		t.Error("root_walk reported without being timed")
	}
	if stats.PhasePct[PhaseVisibility] <= 0 {
		t.Error("expected visibility share to be positive")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		PhasePct: map[string]float64{
			PhaseWallSync:   40,
			PhaseVisibility: 35,
			PhaseFog:        10,
		},
	}

	row := stats.ToCSV(600)
	if row.WindowEnd != 600 {
		t.Errorf("WindowEnd = %d, want 600", row.WindowEnd)
	}
	if row.AvgTickUS != 250 {
		t.Errorf("AvgTickUS = %d, want 250", row.AvgTickUS)
	}
	if row.WallSyncPct != 40 || row.VisibilityPct != 35 || row.FogPct != 10 {
		t.Errorf("phase percentages not carried over: %+v", row)
	}
	if row.RootWalkPct != 0 {
		t.Errorf("RootWalkPct = %f, want 0 for missing phase", row.RootWalkPct)
	}
}
