package systems

import "testing"

func TestIntervalTimer(t *testing.T) {
	tests := []struct {
		name      string
		interval  float32
		steps     []float32
		wantFires int
	}{
		{"below interval", 0.1, []float32{0.05, 0.04}, 0},
		{"exact interval", 0.1, []float32{0.1}, 1},
		{"accumulates", 0.1, []float32{0.06, 0.06, 0.06, 0.06}, 2},
		{"overdue coalesces", 0.1, []float32{0.35}, 1},
		{"zero dt ignored", 0.1, []float32{0, 0, 0}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			timer := NewIntervalTimer(tc.interval)
			fires := 0
			for _, dt := range tc.steps {
				if timer.Tick(dt) {
					fires++
				}
			}
			if fires != tc.wantFires {
				t.Errorf("fires = %d, want %d", fires, tc.wantFires)
			}
			if timer.Fired() != fires {
				t.Errorf("Fired() = %d, want %d", timer.Fired(), fires)
			}
		})
	}
}

func TestIntervalTimerRemainder(t *testing.T) {
	timer := NewIntervalTimer(0.1)
	timer.Tick(0.35)
	// 0.05 carried over, so 0.06 more fires again
	if !timer.Tick(0.06) {
		t.Error("expected fire after remainder carried over")
	}
	if f := timer.Fraction(); f < 0 || f >= 1 {
		t.Errorf("Fraction() = %f, want [0, 1)", f)
	}

	timer.Reset()
	if timer.Fired() != 0 || timer.Fraction() != 0 {
		t.Error("Reset did not clear state")
	}
}
