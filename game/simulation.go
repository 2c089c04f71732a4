package game

import (
	"log/slog"

	"github.com/pthm-cable/driftmaze/systems"
	"github.com/pthm-cable/driftmaze/telemetry"
)

// Step advances the simulation by dt seconds. Phases run in a fixed order:
// observer, root walk, wall sync, visibility, fog, telemetry. While paused
// the root walk and wall sync do not advance.
func (g *Game) Step(dt float32, in systems.ObserverInput) {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseObserver)
	g.observer.Update(dt, in, g.walls.Colliders())
	if g.observer.State().Sprinting {
		g.collector.RecordSprint()
	}
	pos := g.observer.Position()

	g.perfCollector.StartPhase(telemetry.PhaseRootWalk)
	if !g.paused {
		if res := g.walker.Update(dt, pos); res.Fired {
			g.collector.RecordWalk(res.Moved)
			if res.Moved && g.validate {
				g.checkInvariants()
			}
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseWallSync)
	if !g.paused {
		if res, ok := g.walls.Update(dt); ok {
			g.fog.Rebuild()
			g.collector.RecordSync(res.Changed)
			if g.validate {
				g.checkInvariants()
			}
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseVisibility)
	g.visibility.Update(pos, g.walls.Colliders())
	g.collector.RecordVisibility(
		float64(g.visibility.MeanRadius()),
		g.visibility.Area(),
		g.visibility.Hits(),
		g.visibility.NumRays(),
	)

	g.perfCollector.StartPhase(telemetry.PhaseFog)
	g.fog.Update(g.visibility.Points())

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// UpdateHeadless runs stepsPerUpdate fixed-dt ticks with the autopilot
// steering the observer.
func (g *Game) UpdateHeadless() {
	dt := g.cfg.Derived.DT32
	for i := 0; i < g.stepsPerUpdate; i++ {
		in := g.autopilot.Input(g.observer.Position(), g.observer.State())
		g.Step(dt, in)
	}
}

// AutopilotInput returns the input the headless autopilot would apply now.
func (g *Game) AutopilotInput() systems.ObserverInput {
	return g.autopilot.Input(g.observer.Position(), g.observer.State())
}

// CheckInvariants validates the tree and, when the walls reflect the current
// tree, the wall/edge correspondence.
func (g *Game) CheckInvariants() error {
	if err := g.graph.Validate(); err != nil {
		return err
	}
	if g.walls.InSync() {
		if err := g.walls.Verify(); err != nil {
			return err
		}
	}
	return nil
}

// checkInvariants records and logs a failed invariant check.
func (g *Game) checkInvariants() {
	err := g.CheckInvariants()
	if err == nil {
		return
	}
	g.violations++
	g.lastViolation = err
	g.collector.RecordViolation()
	slog.Error("invariant violated", "tick", g.tick, "error", err)
}
