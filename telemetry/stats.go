package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Root walk during window
	Relocations  int `csv:"relocations"`
	SkippedWalks int `csv:"skipped_walks"`
	RootX        int `csv:"root_x"`
	RootY        int `csv:"root_y"`

	// Wall sync during window
	Syncs        int `csv:"syncs"`
	ChangedSyncs int `csv:"changed_syncs"`
	WallCount    int `csv:"walls"`
	LinkCount    int `csv:"links"`
	Violations   int `csv:"violations"`

	// Tree shape at window end
	TreeDepthMean float64 `csv:"depth_mean"`
	TreeDepthMax  int     `csv:"depth_max"`

	// Visibility (sampled every tick)
	VisRadiusMean float64 `csv:"vis_radius_mean"`
	VisRadiusStd  float64 `csv:"vis_radius_std"`
	VisRadiusP10  float64 `csv:"vis_radius_p10"`
	VisRadiusP50  float64 `csv:"vis_radius_p50"`
	VisRadiusP90  float64 `csv:"vis_radius_p90"`
	VisAreaMean   float64 `csv:"vis_area_mean"`
	RayHitRate    float64 `csv:"ray_hit_rate"`

	// Fog at window end
	VisibleGeometry  int     `csv:"visible"`
	ExploredGeometry int     `csv:"explored"`
	ExploredFraction float64 `csv:"explored_fraction"`

	// Observer
	SprintTicks int     `csv:"sprint_ticks"`
	Stamina     float64 `csv:"stamina"`
}

// Quantile returns the p-th empirical quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = max(0, min(1, p))
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Summary holds the distribution of a sampled value.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes mean, standard deviation and percentiles of values.
// values is not modified.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Summary{
		Mean: mean,
		Std:  std,
		P10:  Quantile(sorted, 0.10),
		P50:  Quantile(sorted, 0.50),
		P90:  Quantile(sorted, 0.90),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("relocations", s.Relocations),
		slog.Int("skipped_walks", s.SkippedWalks),
		slog.Int("root_x", s.RootX),
		slog.Int("root_y", s.RootY),
		slog.Int("syncs", s.Syncs),
		slog.Int("changed_syncs", s.ChangedSyncs),
		slog.Int("walls", s.WallCount),
		slog.Int("links", s.LinkCount),
		slog.Int("violations", s.Violations),
		slog.Float64("depth_mean", s.TreeDepthMean),
		slog.Int("depth_max", s.TreeDepthMax),
		slog.Float64("vis_radius_mean", s.VisRadiusMean),
		slog.Float64("vis_radius_std", s.VisRadiusStd),
		slog.Float64("vis_radius_p50", s.VisRadiusP50),
		slog.Float64("vis_area_mean", s.VisAreaMean),
		slog.Float64("ray_hit_rate", s.RayHitRate),
		slog.Int("visible", s.VisibleGeometry),
		slog.Int("explored", s.ExploredGeometry),
		slog.Float64("explored_fraction", s.ExploredFraction),
		slog.Int("sprint_ticks", s.SprintTicks),
		slog.Float64("stamina", s.Stamina),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"relocations", s.Relocations,
		"skipped_walks", s.SkippedWalks,
		"syncs", s.Syncs,
		"walls", s.WallCount,
		"violations", s.Violations,
		"depth_mean", s.TreeDepthMean,
		"depth_max", s.TreeDepthMax,
		"vis_radius_mean", s.VisRadiusMean,
		"vis_area_mean", s.VisAreaMean,
		"ray_hit_rate", s.RayHitRate,
		"visible", s.VisibleGeometry,
		"explored_fraction", s.ExploredFraction,
	)
}
