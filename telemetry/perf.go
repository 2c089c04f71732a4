package telemetry

import (
	"log/slog"
	"sort"
	"time"
)

// Phase names for the simulation step, in execution order.
const (
	PhaseObserver   = "observer"
	PhaseRootWalk   = "root_walk"
	PhaseWallSync   = "wall_sync"
	PhaseVisibility = "visibility"
	PhaseFog        = "fog"
	PhaseTelemetry  = "telemetry"
)

// Phases lists every step phase in execution order.
var Phases = []string{
	PhaseObserver, PhaseRootWalk, PhaseWallSync,
	PhaseVisibility, PhaseFog, PhaseTelemetry,
}

// PerfCollector times each step phase over a rolling window of ticks.
// Phases are indexed in first-seen order so a tick records into a slice.
type PerfCollector struct {
	window int
	count  int
	next   int

	ticks  []time.Duration   // ring of tick durations
	phases [][]time.Duration // ring per phase, aligned with ticks
	names  []string
	index  map[string]int

	current    []time.Duration
	tickStart  time.Time
	phaseStart time.Time
	phase      int // index of the running phase, -1 if none

	lastFrame     time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over window ticks
// (60 when window < 1). The step phases are registered up front.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	p := &PerfCollector{
		window: window,
		ticks:  make([]time.Duration, window),
		index:  make(map[string]int, len(Phases)),
		phase:  -1,
	}
	for _, name := range Phases {
		p.register(name)
	}
	return p
}

func (p *PerfCollector) register(name string) int {
	i := len(p.names)
	p.names = append(p.names, name)
	p.index[name] = i
	p.phases = append(p.phases, make([]time.Duration, p.window))
	p.current = append(p.current, 0)
	return i
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	clear(p.current)
	p.phase = -1
}

// StartPhase closes the running phase and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	i, ok := p.index[phase]
	if !ok {
		i = p.register(phase)
	}
	p.phase = i
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the running phase and stores the tick in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1

	p.ticks[p.next] = now.Sub(p.tickStart)
	for i, d := range p.current {
		p.phases[i][p.next] = d
	}
	p.next = (p.next + 1) % p.window
	if p.count < p.window {
		p.count++
	}
}

// RecordFrame measures the time since the previous frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated timing over the collector window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	// Mean duration and share of tick time per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Graphics mode only
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, len(p.names)),
		PhasePct:      make(map[string]float64, len(p.names)),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		out.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.count == 0 {
		return out
	}

	ticks := make([]float64, p.count)
	var total time.Duration
	for i, d := range p.ticks[:p.count] {
		ticks[i] = float64(d)
		total += d
	}
	sort.Float64s(ticks)
	n := time.Duration(p.count)
	avg := total / n

	out.AvgTickDuration = avg
	out.MinTickDuration = time.Duration(ticks[0])
	out.MaxTickDuration = time.Duration(ticks[len(ticks)-1])
	out.P95TickDuration = time.Duration(Quantile(ticks, 0.95))
	if avg > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(avg)
	}

	for i, name := range p.names {
		var sum time.Duration
		for _, d := range p.phases[i][:p.count] {
			sum += d
		}
		if sum == 0 {
			continue
		}
		out.PhaseAvg[name] = sum / n
		if avg > 0 {
			out.PhasePct[name] = float64(sum/n) / float64(avg) * 100
		}
	}
	return out
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"p95_tick_us", s.P95TickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     int32   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	P95TickUS     int64   `csv:"p95_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	ObserverPct   float64 `csv:"observer_pct"`
	RootWalkPct   float64 `csv:"root_walk_pct"`
	WallSyncPct   float64 `csv:"wall_sync_pct"`
	VisibilityPct float64 `csv:"visibility_pct"`
	FogPct        float64 `csv:"fog_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		P95TickUS:     s.P95TickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		ObserverPct:   s.PhasePct[PhaseObserver],
		RootWalkPct:   s.PhasePct[PhaseRootWalk],
		WallSyncPct:   s.PhasePct[PhaseWallSync],
		VisibilityPct: s.PhasePct[PhaseVisibility],
		FogPct:        s.PhasePct[PhaseFog],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
