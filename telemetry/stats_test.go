package telemetry

import (
	"math"
	"testing"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"clamped high", []float64{1, 2, 3}, 3, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Quantile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	values := []float64{10, 2, 8, 4, 6}
	s := Summarize(values)

	if math.Abs(s.Mean-6) > 1e-9 {
		t.Errorf("Mean = %v, want 6", s.Mean)
	}
	// Population std of {2,4,6,8,10} is sqrt(8)
	if math.Abs(s.Std-math.Sqrt(8)) > 1e-9 {
		t.Errorf("Std = %v, want %v", s.Std, math.Sqrt(8))
	}
	if math.Abs(s.P50-6) > 1e-9 {
		t.Errorf("P50 = %v, want 6", s.P50)
	}
	if s.P10 > s.P50 || s.P50 > s.P90 {
		t.Errorf("percentiles out of order: %+v", s)
	}
	if values[0] != 10 {
		t.Error("Summarize reordered its input")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", s)
	}
}
