package systems

import "math"

// IntervalTimer is a repeating timer driven by simulation time.
// A tick that spans several intervals fires once and keeps the remainder.
type IntervalTimer struct {
	interval float32
	elapsed  float32
	fired    int
}

// NewIntervalTimer creates a timer firing every interval seconds.
func NewIntervalTimer(interval float32) *IntervalTimer {
	t := &IntervalTimer{}
	t.SetInterval(interval)
	return t
}

// Tick advances the timer by dt seconds and reports whether it fired.
func (t *IntervalTimer) Tick(dt float32) bool {
	if dt <= 0 {
		return false
	}
	t.elapsed += dt
	if t.elapsed < t.interval {
		return false
	}
	t.elapsed = float32(math.Mod(float64(t.elapsed), float64(t.interval)))
	t.fired++
	return true
}

// SetInterval changes the period. Elapsed time carries over.
func (t *IntervalTimer) SetInterval(interval float32) {
	if interval <= 0 {
		interval = 1e-3
	}
	t.interval = interval
}

// Interval returns the period in seconds.
func (t *IntervalTimer) Interval() float32 { return t.interval }

// Fraction returns how far the timer is into the current period, in [0, 1).
func (t *IntervalTimer) Fraction() float32 {
	return clamp01(t.elapsed / t.interval)
}

// Fired returns how many times the timer has fired since creation or Reset.
func (t *IntervalTimer) Fired() int { return t.fired }

// Reset clears elapsed time and the fire count.
func (t *IntervalTimer) Reset() {
	t.elapsed = 0
	t.fired = 0
}
